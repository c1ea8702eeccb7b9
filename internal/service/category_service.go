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

// CategoryService manages categories and guards referential integrity on
// delete.
type CategoryService struct {
	store  *store.Store
	logger *zap.Logger
}

// NewCategoryService creates a new category service
func NewCategoryService(store *store.Store) *CategoryService {
	return &CategoryService{
		store:  store,
		logger: util.GetLogger(),
	}
}

// UpsertCategoryRequest covers create and edit
type UpsertCategoryRequest struct {
	Name string `json:"name" binding:"required"`
	Slug string `json:"slug" binding:"required"`
}

// CreateCategory creates a category; duplicate slugs surface as CONFLICT
func (s *CategoryService) CreateCategory(ctx context.Context, req *UpsertCategoryRequest) (*models.Category, error) {
	category := &models.Category{Name: req.Name, Slug: req.Slug, IsActive: true}
	if err := s.store.CreateCategory(ctx, category); err != nil {
		if store.IsUniqueViolation(err) {
			return nil, NewError(CodeConflict, "category slug already exists: %s", req.Slug)
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	s.logger.Info("Category created", zap.Int64("category_id", category.ID))
	return category, nil
}

// UpdateCategory edits name and slug
func (s *CategoryService) UpdateCategory(ctx context.Context, id int64, req *UpsertCategoryRequest) (*models.Category, error) {
	category := &models.Category{ID: id, Name: req.Name, Slug: req.Slug}
	if err := s.store.UpdateCategory(ctx, category); err != nil {
		if store.IsUniqueViolation(err) {
			return nil, NewError(CodeConflict, "category slug already exists: %s", req.Slug)
		}
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound("category", id)
		}
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	updated, err := s.store.GetCategoryByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload category: %w", err)
	}
	return updated, nil
}

// ListCategories returns all categories
func (s *CategoryService) ListCategories(ctx context.Context) ([]models.Category, error) {
	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// GetCategory retrieves a category by ID
func (s *CategoryService) GetCategory(ctx context.Context, id int64) (*models.Category, error) {
	category, err := s.store.GetCategoryByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	if category == nil {
		return nil, ErrNotFound("category", id)
	}
	return category, nil
}

// DeleteCategory hard-deletes a category after the referential guard: a
// category still referenced by products cannot be deleted, only suspended.
func (s *CategoryService) DeleteCategory(ctx context.Context, id int64) error {
	category, err := s.store.GetCategoryByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get category: %w", err)
	}
	if category == nil {
		return ErrNotFound("category", id)
	}

	count, err := s.store.CountProductsInCategory(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count category products: %w", err)
	}
	if count > 0 {
		return NewError(CodeBadRequest,
			"category has %d product(s); move or delete them first, or suspend the category instead", count)
	}

	deleted, err := s.store.DeleteCategory(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if !deleted {
		return ErrNotFound("category", id)
	}

	s.logger.Info("Category deleted", zap.Int64("category_id", id))
	return nil
}

// ToggleStatus flips is_active; the non-destructive alternative to delete
func (s *CategoryService) ToggleStatus(ctx context.Context, id int64) (*models.Category, error) {
	category, err := s.store.ToggleCategoryStatus(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to toggle category status: %w", err)
	}
	if category == nil {
		return nil, ErrNotFound("category", id)
	}
	return category, nil
}
