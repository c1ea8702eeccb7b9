package store

import (
	"context"
	"database/sql"
	"fmt"

	"admin-api/internal/models"

	"github.com/jmoiron/sqlx"
)

// CreateProduct inserts a new product; aggregate rating fields start at zero
func (s *Store) CreateProduct(ctx context.Context, p *models.Product) error {
	query := `
		INSERT INTO products (name, slug, description, price, stock, image_url, category_id, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, average_rating, review_count, created_at, updated_at`

	return s.db.GetContext(ctx, p, query,
		p.Name, p.Slug, p.Description, p.Price, p.Stock, p.ImageURL, p.CategoryID, p.IsActive)
}

// UpdateProduct updates operator-editable fields; average_rating and
// review_count are derived and excluded on purpose.
func (s *Store) UpdateProduct(ctx context.Context, p *models.Product) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE products SET
			name = $1, slug = $2, description = $3, price = $4, stock = $5,
			image_url = $6, category_id = $7, is_active = $8, updated_at = NOW()
		WHERE id = $9`,
		p.Name, p.Slug, p.Description, p.Price, p.Stock,
		p.ImageURL, p.CategoryID, p.IsActive, p.ID)
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

// GetProductForUpdateTx locks a product row for the duration of the
// transaction. Moderation takes this lock before touching reviews so
// concurrent recomputes of the same aggregate serialize.
func (s *Store) GetProductForUpdateTx(ctx context.Context, tx *sqlx.Tx, id int64) (*models.Product, error) {
	var p models.Product
	err := tx.GetContext(ctx, &p, "SELECT * FROM products WHERE id = $1 FOR UPDATE", id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetProductByID retrieves a product by ID
func (s *Store) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	var p models.Product
	err := s.db.GetContext(ctx, &p, "SELECT * FROM products WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListProducts retrieves a page of products with optional search, category
// and active filters
func (s *Store) ListProducts(ctx context.Context, search string, categoryID int64, isActive *bool, limit, offset int) ([]models.Product, int, error) {
	where := "WHERE 1=1"
	args := []interface{}{}
	if search != "" {
		args = append(args, "%"+search+"%")
		where += fmt.Sprintf(" AND name ILIKE $%d", len(args))
	}
	if categoryID > 0 {
		args = append(args, categoryID)
		where += fmt.Sprintf(" AND category_id = $%d", len(args))
	}
	if isActive != nil {
		args = append(args, *isActive)
		where += fmt.Sprintf(" AND is_active = $%d", len(args))
	}

	var total int
	if err := s.db.GetContext(ctx, &total,
		fmt.Sprintf("SELECT COUNT(*) FROM products %s", where), args...); err != nil {
		return nil, 0, err
	}

	listQuery := fmt.Sprintf(
		"SELECT * FROM products %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	var products []models.Product
	if err := s.db.SelectContext(ctx, &products, listQuery, args...); err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// DeleteProduct hard-deletes a product
func (s *Store) DeleteProduct(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

// CountProducts counts all products
func (s *Store) CountProducts(ctx context.Context) (int, error) {
	var count int
	err := s.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM products")
	return count, err
}
