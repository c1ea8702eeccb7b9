package store

import (
	"context"
	"database/sql"

	"admin-api/internal/models"
)

// CreateCategory inserts a new category
func (s *Store) CreateCategory(ctx context.Context, c *models.Category) error {
	query := `
		INSERT INTO categories (name, slug, is_active)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`

	return s.db.GetContext(ctx, c, query, c.Name, c.Slug, c.IsActive)
}

// UpdateCategory updates name and slug
func (s *Store) UpdateCategory(ctx context.Context, c *models.Category) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE categories SET name = $1, slug = $2, updated_at = NOW() WHERE id = $3",
		c.Name, c.Slug, c.ID)
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

// GetCategoryByID retrieves a category by ID
func (s *Store) GetCategoryByID(ctx context.Context, id int64) (*models.Category, error) {
	var c models.Category
	err := s.db.GetContext(ctx, &c, "SELECT * FROM categories WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListCategories retrieves all categories ordered by name
func (s *Store) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := s.db.SelectContext(ctx, &categories, "SELECT * FROM categories ORDER BY name")
	return categories, err
}

// CountProductsInCategory counts products referencing a category; the
// referential guard before hard delete
func (s *Store) CountProductsInCategory(ctx context.Context, categoryID int64) (int, error) {
	var count int
	err := s.db.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM products WHERE category_id = $1", categoryID)
	return count, err
}

// DeleteCategory hard-deletes a category
func (s *Store) DeleteCategory(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM categories WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

// ToggleCategoryStatus flips is_active and returns the updated row
func (s *Store) ToggleCategoryStatus(ctx context.Context, id int64) (*models.Category, error) {
	var c models.Category
	err := s.db.GetContext(ctx, &c, `
		UPDATE categories SET is_active = NOT is_active, updated_at = NOW()
		WHERE id = $1
		RETURNING *`, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}
