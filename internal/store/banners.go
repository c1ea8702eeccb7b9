package store

import (
	"context"
	"database/sql"

	"admin-api/internal/models"
)

// CreateBanner inserts a new banner
func (s *Store) CreateBanner(ctx context.Context, b *models.Banner) error {
	query := `
		INSERT INTO banners (title, image_url, link_url, position, is_active, starts_at, ends_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`

	return s.db.GetContext(ctx, b, query,
		b.Title, b.ImageURL, b.LinkURL, b.Position, b.IsActive, b.StartsAt, b.EndsAt)
}

// UpdateBanner updates banner fields
func (s *Store) UpdateBanner(ctx context.Context, b *models.Banner) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE banners SET
			title = $1, image_url = $2, link_url = $3, position = $4,
			is_active = $5, starts_at = $6, ends_at = $7, updated_at = NOW()
		WHERE id = $8`,
		b.Title, b.ImageURL, b.LinkURL, b.Position, b.IsActive, b.StartsAt, b.EndsAt, b.ID)
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

// GetBannerByID retrieves a banner by ID
func (s *Store) GetBannerByID(ctx context.Context, id int64) (*models.Banner, error) {
	var b models.Banner
	err := s.db.GetContext(ctx, &b, "SELECT * FROM banners WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// ListBanners retrieves all banners ordered by position
func (s *Store) ListBanners(ctx context.Context) ([]models.Banner, error) {
	var banners []models.Banner
	err := s.db.SelectContext(ctx, &banners,
		"SELECT * FROM banners ORDER BY position, id")
	return banners, err
}

// DeleteBanner hard-deletes a banner
func (s *Store) DeleteBanner(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM banners WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

// ToggleBannerStatus flips is_active and returns the updated row
func (s *Store) ToggleBannerStatus(ctx context.Context, id int64) (*models.Banner, error) {
	var b models.Banner
	err := s.db.GetContext(ctx, &b, `
		UPDATE banners SET is_active = NOT is_active, updated_at = NOW()
		WHERE id = $1
		RETURNING *`, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}
