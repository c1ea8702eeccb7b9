package store

import (
	"context"
	"database/sql"
	"fmt"

	"admin-api/internal/models"

	"github.com/jmoiron/sqlx"
)

// CreateCoupon inserts a new coupon. The caller normalizes the code.
func (s *Store) CreateCoupon(ctx context.Context, c *models.Coupon) error {
	query := `
		INSERT INTO coupons (code, discount_type, value, min_order_amount,
			max_discount_amount, usage_limit, user_limit, is_active, start_date, expiry_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, usage_count, created_at, updated_at`

	return s.db.GetContext(ctx, c, query,
		c.Code, c.DiscountType, c.Value, c.MinOrderAmount,
		c.MaxDiscountAmount, c.UsageLimit, c.UserLimit, c.IsActive, c.StartDate, c.ExpiryDate)
}

// UpdateCoupon updates coupon fields; usage_count is never written here.
func (s *Store) UpdateCoupon(ctx context.Context, c *models.Coupon) error {
	query := `
		UPDATE coupons SET
			code = $1, discount_type = $2, value = $3, min_order_amount = $4,
			max_discount_amount = $5, usage_limit = $6, user_limit = $7,
			is_active = $8, start_date = $9, expiry_date = $10, updated_at = NOW()
		WHERE id = $11`

	res, err := s.db.ExecContext(ctx, query,
		c.Code, c.DiscountType, c.Value, c.MinOrderAmount,
		c.MaxDiscountAmount, c.UsageLimit, c.UserLimit, c.IsActive,
		c.StartDate, c.ExpiryDate, c.ID)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteCoupon removes a coupon; usage records cascade at the schema level
func (s *Store) DeleteCoupon(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM coupons WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

// GetCouponByID retrieves a coupon by ID
func (s *Store) GetCouponByID(ctx context.Context, id int64) (*models.Coupon, error) {
	var c models.Coupon
	err := s.db.GetContext(ctx, &c, "SELECT * FROM coupons WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetCouponByCode retrieves a coupon by its (upper-cased) code
func (s *Store) GetCouponByCode(ctx context.Context, code string) (*models.Coupon, error) {
	var c models.Coupon
	err := s.db.GetContext(ctx, &c, "SELECT * FROM coupons WHERE code = $1", code)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListCoupons retrieves a page of coupons with optional code search and
// active filter
func (s *Store) ListCoupons(ctx context.Context, search string, isActive *bool, limit, offset int) ([]models.Coupon, int, error) {
	where := "WHERE 1=1"
	args := []interface{}{}
	if search != "" {
		args = append(args, "%"+search+"%")
		where += fmt.Sprintf(" AND code ILIKE $%d", len(args))
	}
	if isActive != nil {
		args = append(args, *isActive)
		where += fmt.Sprintf(" AND is_active = $%d", len(args))
	}

	var total int
	if err := s.db.GetContext(ctx, &total,
		fmt.Sprintf("SELECT COUNT(*) FROM coupons %s", where), args...); err != nil {
		return nil, 0, err
	}

	listQuery := fmt.Sprintf(
		"SELECT * FROM coupons %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	var coupons []models.Coupon
	if err := s.db.SelectContext(ctx, &coupons, listQuery, args...); err != nil {
		return nil, 0, err
	}
	return coupons, total, nil
}

// GetCouponForUpdateTx locks a coupon row for the duration of the transaction.
// Redemption takes this lock before the per-user count so concurrent
// redemptions by the same user serialize.
func (s *Store) GetCouponForUpdateTx(ctx context.Context, tx *sqlx.Tx, couponID int64) (*models.Coupon, error) {
	var c models.Coupon
	err := tx.GetContext(ctx, &c, "SELECT * FROM coupons WHERE id = $1 FOR UPDATE", couponID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// CountCouponUsageByUserTx counts redemptions of a coupon by one user, inside
// the redemption transaction
func (s *Store) CountCouponUsageByUserTx(ctx context.Context, tx *sqlx.Tx, couponID, userID int64) (int, error) {
	var count int
	err := tx.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM coupon_usages WHERE coupon_id = $1 AND user_id = $2",
		couponID, userID)
	return count, err
}

// CountCouponUsageByUser counts redemptions of a coupon by one user
func (s *Store) CountCouponUsageByUser(ctx context.Context, couponID, userID int64) (int, error) {
	var count int
	err := s.db.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM coupon_usages WHERE coupon_id = $1 AND user_id = $2",
		couponID, userID)
	return count, err
}

// IncrementCouponUsageTx conditionally increments the global usage counter.
// The WHERE clause re-checks the limit so two concurrent redemptions cannot
// both pass; the caller must check the returned flag.
func (s *Store) IncrementCouponUsageTx(ctx context.Context, tx *sqlx.Tx, couponID int64) (bool, error) {
	res, err := tx.ExecContext(ctx, `
		UPDATE coupons SET usage_count = usage_count + 1, updated_at = NOW()
		WHERE id = $1 AND (usage_limit IS NULL OR usage_count < usage_limit)`,
		couponID)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows == 1, nil
}

// CreateCouponUsageTx appends a redemption record inside the transaction
func (s *Store) CreateCouponUsageTx(ctx context.Context, tx *sqlx.Tx, usage *models.CouponUsage) error {
	query := `
		INSERT INTO coupon_usages (coupon_id, user_id, order_id)
		VALUES ($1, $2, $3)
		RETURNING id, used_at`

	return tx.GetContext(ctx, usage, query, usage.CouponID, usage.UserID, usage.OrderID)
}
