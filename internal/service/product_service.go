package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"admin-api/internal/models"
	"admin-api/internal/store"
	"admin-api/internal/util"

	"go.uber.org/zap"
)

// ProductService manages catalog products. The derived rating fields are
// owned by the review workflow and never written here.
type ProductService struct {
	store  *store.Store
	logger *zap.Logger
}

// NewProductService creates a new product service
func NewProductService(store *store.Store) *ProductService {
	return &ProductService{
		store:  store,
		logger: util.GetLogger(),
	}
}

// UpsertProductRequest covers create and edit
type UpsertProductRequest struct {
	Name        string  `json:"name" binding:"required"`
	Slug        string  `json:"slug" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Stock       int     `json:"stock" binding:"gte=0"`
	ImageURL    string  `json:"image_url"`
	CategoryID  *int64  `json:"category_id"`
	IsActive    bool    `json:"is_active"`
}

func (r *UpsertProductRequest) toModel() *models.Product {
	p := &models.Product{
		Name:        r.Name,
		Slug:        r.Slug,
		Description: r.Description,
		Price:       r.Price,
		Stock:       r.Stock,
		ImageURL:    r.ImageURL,
		IsActive:    r.IsActive,
	}
	if r.CategoryID != nil {
		p.CategoryID = sql.NullInt64{Int64: *r.CategoryID, Valid: true}
	}
	return p
}

// CreateProduct creates a product after checking the category reference
func (s *ProductService) CreateProduct(ctx context.Context, req *UpsertProductRequest) (*models.Product, error) {
	if err := s.checkCategory(ctx, req.CategoryID); err != nil {
		return nil, err
	}

	product := req.toModel()
	if err := s.store.CreateProduct(ctx, product); err != nil {
		if store.IsUniqueViolation(err) {
			return nil, NewError(CodeConflict, "product slug already exists: %s", req.Slug)
		}
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Info("Product created", zap.Int64("product_id", product.ID))
	return product, nil
}

// UpdateProduct edits operator-editable fields
func (s *ProductService) UpdateProduct(ctx context.Context, id int64, req *UpsertProductRequest) (*models.Product, error) {
	if err := s.checkCategory(ctx, req.CategoryID); err != nil {
		return nil, err
	}

	product := req.toModel()
	product.ID = id
	if err := s.store.UpdateProduct(ctx, product); err != nil {
		if store.IsUniqueViolation(err) {
			return nil, NewError(CodeConflict, "product slug already exists: %s", req.Slug)
		}
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound("product", id)
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	updated, err := s.store.GetProductByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload product: %w", err)
	}
	return updated, nil
}

// GetProduct retrieves a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	product, err := s.store.GetProductByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return nil, ErrNotFound("product", id)
	}
	return product, nil
}

// ListProducts returns a page of products
func (s *ProductService) ListProducts(ctx context.Context, search string, categoryID int64, isActive *bool, limit, offset int) ([]models.Product, int, error) {
	products, total, err := s.store.ListProducts(ctx, search, categoryID, isActive, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	return products, total, nil
}

// DeleteProduct hard-deletes a product
func (s *ProductService) DeleteProduct(ctx context.Context, id int64) error {
	deleted, err := s.store.DeleteProduct(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if !deleted {
		return ErrNotFound("product", id)
	}
	s.logger.Info("Product deleted", zap.Int64("product_id", id))
	return nil
}

func (s *ProductService) checkCategory(ctx context.Context, categoryID *int64) error {
	if categoryID == nil {
		return nil
	}
	category, err := s.store.GetCategoryByID(ctx, *categoryID)
	if err != nil {
		return fmt.Errorf("failed to get category: %w", err)
	}
	if category == nil {
		return NewError(CodeValidationError, "category not found: %d", *categoryID)
	}
	return nil
}
