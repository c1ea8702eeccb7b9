package service

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"admin-api/internal/models"
	"admin-api/internal/redisclient"
	"admin-api/internal/store"
	"admin-api/internal/util"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// CouponService decides whether a coupon applies and records redemptions
type CouponService struct {
	store  *store.Store
	redis  *redisclient.Client
	logger *zap.Logger
}

// NewCouponService creates a new coupon service
func NewCouponService(store *store.Store, redis *redisclient.Client) *CouponService {
	return &CouponService{
		store:  store,
		redis:  redis,
		logger: util.GetLogger(),
	}
}

// UpsertCouponRequest covers both create and edit
type UpsertCouponRequest struct {
	Code              string    `json:"code" binding:"required"`
	DiscountType      string    `json:"discount_type" binding:"required,oneof=percentage fixed"`
	Value             float64   `json:"value" binding:"required,gt=0"`
	MinOrderAmount    *float64  `json:"min_order_amount" binding:"omitempty,gte=0"`
	MaxDiscountAmount *float64  `json:"max_discount_amount" binding:"omitempty,gt=0"`
	UsageLimit        *int64    `json:"usage_limit" binding:"omitempty,gt=0"`
	UserLimit         int       `json:"user_limit" binding:"required,gt=0"`
	IsActive          bool      `json:"is_active"`
	StartDate         time.Time `json:"start_date" binding:"required"`
	ExpiryDate        time.Time `json:"expiry_date" binding:"required"`
}

// ValidateRequest asks whether a code applies to a cart
type ValidateRequest struct {
	Code        string  `json:"code" binding:"required"`
	OrderAmount float64 `json:"order_amount" binding:"required,gt=0"`
	UserID      int64   `json:"user_id" binding:"required"`
}

// ValidateResponse is the validation outcome with the computed discount
type ValidateResponse struct {
	Valid    bool           `json:"valid"`
	Discount float64        `json:"discount"`
	Coupon   *models.Coupon `json:"coupon,omitempty"`
}

// RedeemRequest records a redemption committed by checkout
type RedeemRequest struct {
	Code        string  `json:"code" binding:"required"`
	OrderAmount float64 `json:"order_amount" binding:"required,gt=0"`
	UserID      int64   `json:"user_id" binding:"required"`
	OrderID     int64   `json:"order_id" binding:"required"`
}

func (r *UpsertCouponRequest) toModel() *models.Coupon {
	c := &models.Coupon{
		Code:         strings.ToUpper(strings.TrimSpace(r.Code)),
		DiscountType: r.DiscountType,
		Value:        r.Value,
		UserLimit:    r.UserLimit,
		IsActive:     r.IsActive,
		StartDate:    r.StartDate,
		ExpiryDate:   r.ExpiryDate,
	}
	if r.MinOrderAmount != nil {
		c.MinOrderAmount = sql.NullFloat64{Float64: *r.MinOrderAmount, Valid: true}
	}
	if r.MaxDiscountAmount != nil {
		c.MaxDiscountAmount = sql.NullFloat64{Float64: *r.MaxDiscountAmount, Valid: true}
	}
	if r.UsageLimit != nil {
		c.UsageLimit = sql.NullInt64{Int64: *r.UsageLimit, Valid: true}
	}
	return c
}

// CreateCoupon creates a coupon; duplicate codes surface as CONFLICT
func (s *CouponService) CreateCoupon(ctx context.Context, req *UpsertCouponRequest) (*models.Coupon, error) {
	coupon := req.toModel()
	if coupon.ExpiryDate.Before(coupon.StartDate) {
		return nil, NewError(CodeValidationError, "expiry_date precedes start_date")
	}

	if err := s.store.CreateCoupon(ctx, coupon); err != nil {
		if store.IsUniqueViolation(err) {
			return nil, NewError(CodeConflict, "coupon code already exists: %s", coupon.Code)
		}
		return nil, fmt.Errorf("failed to create coupon: %w", err)
	}

	s.logger.Info("Coupon created",
		zap.Int64("coupon_id", coupon.ID),
		zap.String("code", coupon.Code))
	return coupon, nil
}

// UpdateCoupon edits a coupon and drops it from the cache
func (s *CouponService) UpdateCoupon(ctx context.Context, id int64, req *UpsertCouponRequest) (*models.Coupon, error) {
	existing, err := s.store.GetCouponByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get coupon: %w", err)
	}
	if existing == nil {
		return nil, ErrNotFound("coupon", id)
	}

	coupon := req.toModel()
	coupon.ID = id
	if coupon.ExpiryDate.Before(coupon.StartDate) {
		return nil, NewError(CodeValidationError, "expiry_date precedes start_date")
	}

	if err := s.store.UpdateCoupon(ctx, coupon); err != nil {
		if store.IsUniqueViolation(err) {
			return nil, NewError(CodeConflict, "coupon code already exists: %s", coupon.Code)
		}
		return nil, fmt.Errorf("failed to update coupon: %w", err)
	}

	s.invalidateCache(ctx, existing.Code, coupon.Code)

	updated, err := s.store.GetCouponByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload coupon: %w", err)
	}
	return updated, nil
}

// DeleteCoupon removes a coupon
func (s *CouponService) DeleteCoupon(ctx context.Context, id int64) error {
	existing, err := s.store.GetCouponByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get coupon: %w", err)
	}
	if existing == nil {
		return ErrNotFound("coupon", id)
	}

	deleted, err := s.store.DeleteCoupon(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete coupon: %w", err)
	}
	if !deleted {
		return ErrNotFound("coupon", id)
	}

	s.invalidateCache(ctx, existing.Code)
	return nil
}

// GetCoupon retrieves a coupon by ID
func (s *CouponService) GetCoupon(ctx context.Context, id int64) (*models.Coupon, error) {
	coupon, err := s.store.GetCouponByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get coupon: %w", err)
	}
	if coupon == nil {
		return nil, ErrNotFound("coupon", id)
	}
	return coupon, nil
}

// ListCoupons returns a page of coupons
func (s *CouponService) ListCoupons(ctx context.Context, search string, isActive *bool, limit, offset int) ([]models.Coupon, int, error) {
	coupons, total, err := s.store.ListCoupons(ctx, strings.ToUpper(search), isActive, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list coupons: %w", err)
	}
	return coupons, total, nil
}

// Validate checks a code against a cart without consuming usage
func (s *CouponService) Validate(ctx context.Context, req *ValidateRequest) (*ValidateResponse, error) {
	ctx, span := util.StartSpan(ctx, "CouponService.Validate")
	defer span.End()

	coupon, err := s.lookupCoupon(ctx, strings.ToUpper(strings.TrimSpace(req.Code)))
	if err != nil {
		return nil, err
	}

	if err := checkCoupon(coupon, req.OrderAmount, time.Now()); err != nil {
		util.CouponValidationsTotal.WithLabelValues("rejected").Inc()
		return nil, err
	}

	used, err := s.store.CountCouponUsageByUser(ctx, coupon.ID, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to count coupon usage: %w", err)
	}
	if used >= coupon.UserLimit {
		util.CouponValidationsTotal.WithLabelValues("rejected").Inc()
		return nil, NewError(CodeBadRequest, "coupon usage limit reached for this user")
	}

	util.CouponValidationsTotal.WithLabelValues("accepted").Inc()
	return &ValidateResponse{
		Valid:    true,
		Discount: ComputeDiscount(coupon, req.OrderAmount),
		Coupon:   coupon,
	}, nil
}

// Redeem consumes one usage for a committed checkout. The conditional
// increment and the usage record land in one transaction, so concurrent
// redemptions cannot push usage_count past the limit.
func (s *CouponService) Redeem(ctx context.Context, req *RedeemRequest) (*ValidateResponse, error) {
	ctx, span := util.StartSpan(ctx, "CouponService.Redeem")
	defer span.End()

	code := strings.ToUpper(strings.TrimSpace(req.Code))
	coupon, err := s.store.GetCouponByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to get coupon: %w", err)
	}
	if coupon == nil {
		return nil, NewError(CodeNotFound, "coupon not found: %s", code)
	}

	if err := checkCoupon(coupon, req.OrderAmount, time.Now()); err != nil {
		return nil, err
	}

	err = s.store.WithTx(ctx, func(tx *sqlx.Tx) error {
		// Lock the coupon row before counting so two redemptions by the
		// same user cannot both read a stale per-user count.
		locked, err := s.store.GetCouponForUpdateTx(ctx, tx, coupon.ID)
		if err != nil {
			return fmt.Errorf("failed to lock coupon: %w", err)
		}
		if locked == nil {
			return NewError(CodeNotFound, "coupon not found: %s", code)
		}
		if err := checkCoupon(locked, req.OrderAmount, time.Now()); err != nil {
			return err
		}

		used, err := s.store.CountCouponUsageByUserTx(ctx, tx, locked.ID, req.UserID)
		if err != nil {
			return fmt.Errorf("failed to count coupon usage: %w", err)
		}
		if used >= locked.UserLimit {
			return NewError(CodeBadRequest, "coupon usage limit reached for this user")
		}

		incremented, err := s.store.IncrementCouponUsageTx(ctx, tx, locked.ID)
		if err != nil {
			return fmt.Errorf("failed to increment coupon usage: %w", err)
		}
		if !incremented {
			return NewError(CodeBadRequest, "coupon usage limit reached")
		}

		usage := &models.CouponUsage{
			CouponID: coupon.ID,
			UserID:   req.UserID,
			OrderID:  req.OrderID,
		}
		return s.store.CreateCouponUsageTx(ctx, tx, usage)
	})
	if err != nil {
		return nil, err
	}

	util.CouponRedemptionsTotal.Inc()
	s.invalidateCache(ctx, coupon.Code)
	s.logger.Info("Coupon redeemed",
		zap.String("code", coupon.Code),
		zap.Int64("user_id", req.UserID),
		zap.Int64("order_id", req.OrderID))

	return &ValidateResponse{
		Valid:    true,
		Discount: ComputeDiscount(coupon, req.OrderAmount),
	}, nil
}

// lookupCoupon reads through the Redis cache; validation is read-heavy and
// tolerates the short cache TTL.
func (s *CouponService) lookupCoupon(ctx context.Context, code string) (*models.Coupon, error) {
	cached, err := s.redis.GetCachedCoupon(ctx, code)
	if err != nil {
		s.logger.Warn("Coupon cache read failed", zap.Error(err))
	}
	if cached != nil {
		return cached, nil
	}

	coupon, err := s.store.GetCouponByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to get coupon: %w", err)
	}
	if coupon == nil {
		return nil, NewError(CodeNotFound, "coupon not found: %s", code)
	}

	if err := s.redis.CacheCoupon(ctx, coupon); err != nil {
		s.logger.Warn("Coupon cache write failed", zap.Error(err))
	}
	return coupon, nil
}

func (s *CouponService) invalidateCache(ctx context.Context, codes ...string) {
	for _, code := range codes {
		if err := s.redis.InvalidateCoupon(ctx, code); err != nil {
			s.logger.Warn("Coupon cache invalidation failed",
				zap.String("code", code), zap.Error(err))
		}
	}
}

// checkCoupon applies the stateless validity rules: active flag, validity
// window (inclusive at both ends) and minimum order amount.
func checkCoupon(c *models.Coupon, orderAmount float64, now time.Time) error {
	if !c.IsActive {
		return NewError(CodeBadRequest, "coupon is not active")
	}
	if now.Before(c.StartDate) {
		return NewError(CodeBadRequest, "coupon is not yet valid")
	}
	if now.After(c.ExpiryDate) {
		return NewError(CodeBadRequest, "coupon has expired")
	}
	if c.MinOrderAmount.Valid && orderAmount < c.MinOrderAmount.Float64 {
		return NewError(CodeBadRequest,
			"order amount %.2f below coupon minimum %.2f", orderAmount, c.MinOrderAmount.Float64)
	}
	if c.UsageLimit.Valid && int64(c.UsageCount) >= c.UsageLimit.Int64 {
		return NewError(CodeBadRequest, "coupon usage limit reached")
	}
	return nil
}

// ComputeDiscount computes the discount for an order amount. Percentage
// discounts clamp to max_discount_amount when set; fixed discounts never
// exceed the order total.
func ComputeDiscount(c *models.Coupon, orderAmount float64) float64 {
	switch c.DiscountType {
	case models.DiscountTypePercentage:
		discount := orderAmount * c.Value / 100
		if c.MaxDiscountAmount.Valid && discount > c.MaxDiscountAmount.Float64 {
			discount = c.MaxDiscountAmount.Float64
		}
		return discount
	case models.DiscountTypeFixed:
		if c.Value > orderAmount {
			return orderAmount
		}
		return c.Value
	}
	return 0
}
