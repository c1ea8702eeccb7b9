package store

import (
	"context"
	"database/sql"
	"fmt"

	"admin-api/internal/models"

	"github.com/jmoiron/sqlx"
)

// GetReviewByID retrieves a review by ID
func (s *Store) GetReviewByID(ctx context.Context, id int64) (*models.Review, error) {
	var r models.Review
	err := s.db.GetContext(ctx, &r, "SELECT * FROM reviews WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// ListReviews retrieves a page of reviews, optionally filtered by product and
// approval state
func (s *Store) ListReviews(ctx context.Context, productID int64, approved *bool, limit, offset int) ([]models.Review, int, error) {
	where := "WHERE 1=1"
	args := []interface{}{}
	if productID > 0 {
		args = append(args, productID)
		where += fmt.Sprintf(" AND product_id = $%d", len(args))
	}
	if approved != nil {
		args = append(args, *approved)
		where += fmt.Sprintf(" AND is_approved = $%d", len(args))
	}

	var total int
	if err := s.db.GetContext(ctx, &total,
		fmt.Sprintf("SELECT COUNT(*) FROM reviews %s", where), args...); err != nil {
		return nil, 0, err
	}

	listQuery := fmt.Sprintf(
		"SELECT * FROM reviews %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	var reviews []models.Review
	if err := s.db.SelectContext(ctx, &reviews, listQuery, args...); err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}

// ApproveReviewTx marks a review approved inside the transaction
func (s *Store) ApproveReviewTx(ctx context.Context, tx *sqlx.Tx, id int64) error {
	_, err := tx.ExecContext(ctx,
		"UPDATE reviews SET is_approved = TRUE, updated_at = NOW() WHERE id = $1", id)
	return err
}

// DeleteReviewTx removes a review inside the transaction
func (s *Store) DeleteReviewTx(ctx context.Context, tx *sqlx.Tx, id int64) error {
	_, err := tx.ExecContext(ctx, "DELETE FROM reviews WHERE id = $1", id)
	return err
}

// RecomputeProductRatingTx recomputes a product's aggregate from the live set
// of approved reviews, rounded to one decimal, 0 when none remain. Runs in
// the same transaction as the moderation write so the aggregate cannot drift.
func (s *Store) RecomputeProductRatingTx(ctx context.Context, tx *sqlx.Tx, productID int64) error {
	query := `
		UPDATE products SET
			average_rating = COALESCE((
				SELECT ROUND(AVG(rating)::numeric, 1)
				FROM reviews WHERE product_id = $1 AND is_approved = TRUE), 0),
			review_count = (
				SELECT COUNT(*)
				FROM reviews WHERE product_id = $1 AND is_approved = TRUE),
			updated_at = NOW()
		WHERE id = $1`

	_, err := tx.ExecContext(ctx, query, productID)
	return err
}

// CountPendingReviews counts reviews awaiting moderation
func (s *Store) CountPendingReviews(ctx context.Context) (int, error) {
	var count int
	err := s.db.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM reviews WHERE is_approved = FALSE")
	return count, err
}
