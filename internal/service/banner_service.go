package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"admin-api/internal/models"
	"admin-api/internal/store"
	"admin-api/internal/util"

	"go.uber.org/zap"
)

// BannerService manages storefront banners
type BannerService struct {
	store  *store.Store
	logger *zap.Logger
}

// NewBannerService creates a new banner service
func NewBannerService(store *store.Store) *BannerService {
	return &BannerService{
		store:  store,
		logger: util.GetLogger(),
	}
}

// UpsertBannerRequest covers create and edit
type UpsertBannerRequest struct {
	Title    string     `json:"title" binding:"required"`
	ImageURL string     `json:"image_url" binding:"required,url"`
	LinkURL  string     `json:"link_url" binding:"omitempty,url"`
	Position int        `json:"position" binding:"gte=0"`
	IsActive bool       `json:"is_active"`
	StartsAt *time.Time `json:"starts_at"`
	EndsAt   *time.Time `json:"ends_at"`
}

func (r *UpsertBannerRequest) toModel() *models.Banner {
	b := &models.Banner{
		Title:    r.Title,
		ImageURL: r.ImageURL,
		LinkURL:  r.LinkURL,
		Position: r.Position,
		IsActive: r.IsActive,
	}
	if r.StartsAt != nil {
		b.StartsAt = sql.NullTime{Time: *r.StartsAt, Valid: true}
	}
	if r.EndsAt != nil {
		b.EndsAt = sql.NullTime{Time: *r.EndsAt, Valid: true}
	}
	return b
}

// CreateBanner creates a banner
func (s *BannerService) CreateBanner(ctx context.Context, req *UpsertBannerRequest) (*models.Banner, error) {
	if req.StartsAt != nil && req.EndsAt != nil && req.EndsAt.Before(*req.StartsAt) {
		return nil, NewError(CodeValidationError, "ends_at precedes starts_at")
	}

	banner := req.toModel()
	if err := s.store.CreateBanner(ctx, banner); err != nil {
		return nil, fmt.Errorf("failed to create banner: %w", err)
	}
	s.logger.Info("Banner created", zap.Int64("banner_id", banner.ID))
	return banner, nil
}

// UpdateBanner edits a banner
func (s *BannerService) UpdateBanner(ctx context.Context, id int64, req *UpsertBannerRequest) (*models.Banner, error) {
	if req.StartsAt != nil && req.EndsAt != nil && req.EndsAt.Before(*req.StartsAt) {
		return nil, NewError(CodeValidationError, "ends_at precedes starts_at")
	}

	banner := req.toModel()
	banner.ID = id
	if err := s.store.UpdateBanner(ctx, banner); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound("banner", id)
		}
		return nil, fmt.Errorf("failed to update banner: %w", err)
	}

	updated, err := s.store.GetBannerByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload banner: %w", err)
	}
	return updated, nil
}

// ListBanners returns all banners ordered by position
func (s *BannerService) ListBanners(ctx context.Context) ([]models.Banner, error) {
	banners, err := s.store.ListBanners(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list banners: %w", err)
	}
	return banners, nil
}

// GetBanner retrieves a banner by ID
func (s *BannerService) GetBanner(ctx context.Context, id int64) (*models.Banner, error) {
	banner, err := s.store.GetBannerByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get banner: %w", err)
	}
	if banner == nil {
		return nil, ErrNotFound("banner", id)
	}
	return banner, nil
}

// DeleteBanner hard-deletes a banner
func (s *BannerService) DeleteBanner(ctx context.Context, id int64) error {
	deleted, err := s.store.DeleteBanner(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete banner: %w", err)
	}
	if !deleted {
		return ErrNotFound("banner", id)
	}
	return nil
}

// ToggleStatus flips is_active
func (s *BannerService) ToggleStatus(ctx context.Context, id int64) (*models.Banner, error) {
	banner, err := s.store.ToggleBannerStatus(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to toggle banner status: %w", err)
	}
	if banner == nil {
		return nil, ErrNotFound("banner", id)
	}
	return banner, nil
}
