package service

import (
	"context"
	"fmt"
	"time"

	"admin-api/internal/broker"
	"admin-api/internal/models"
	"admin-api/internal/store"
	"admin-api/internal/util"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// ReviewService moderates reviews and keeps product aggregates consistent
// with the approved-review set.
type ReviewService struct {
	store          *store.Store
	eventPublisher *broker.EventPublisher
	logger         *zap.Logger
}

// NewReviewService creates a new review service
func NewReviewService(store *store.Store, eventPublisher *broker.EventPublisher) *ReviewService {
	return &ReviewService{
		store:          store,
		eventPublisher: eventPublisher,
		logger:         util.GetLogger(),
	}
}

// ListReviews returns a page of reviews
func (s *ReviewService) ListReviews(ctx context.Context, productID int64, approved *bool, limit, offset int) ([]models.Review, int, error) {
	reviews, total, err := s.store.ListReviews(ctx, productID, approved, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, total, nil
}

// Approve marks a review approved and recomputes the product aggregate in
// the same transaction.
func (s *ReviewService) Approve(ctx context.Context, reviewID int64) (*models.Review, error) {
	ctx, span := util.StartSpan(ctx, "ReviewService.Approve")
	defer span.End()

	review, err := s.store.GetReviewByID(ctx, reviewID)
	if err != nil {
		return nil, fmt.Errorf("failed to get review: %w", err)
	}
	if review == nil {
		return nil, ErrNotFound("review", reviewID)
	}

	start := time.Now()
	err = s.store.WithTx(ctx, func(tx *sqlx.Tx) error {
		// Lock the product before the review write so concurrent
		// moderations of the same product recompute one after another,
		// each over the committed review set.
		if _, err := s.store.GetProductForUpdateTx(ctx, tx, review.ProductID); err != nil {
			return fmt.Errorf("failed to lock product: %w", err)
		}
		if err := s.store.ApproveReviewTx(ctx, tx, reviewID); err != nil {
			return fmt.Errorf("failed to approve review: %w", err)
		}
		return s.store.RecomputeProductRatingTx(ctx, tx, review.ProductID)
	})
	if err != nil {
		return nil, err
	}
	util.RatingRecomputeLatency.Observe(time.Since(start).Seconds())

	s.afterModeration(ctx, review, models.ReviewActionApproved)

	updated, err := s.store.GetReviewByID(ctx, reviewID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload review: %w", err)
	}
	return updated, nil
}

// Reject deletes the review outright. There is no hidden state for a
// rejected review.
func (s *ReviewService) Reject(ctx context.Context, reviewID int64) error {
	ctx, span := util.StartSpan(ctx, "ReviewService.Reject")
	defer span.End()

	return s.remove(ctx, reviewID, models.ReviewActionRejected)
}

// Delete removes any review, approved or not, recomputing the aggregate when
// the removed review had been feeding it.
func (s *ReviewService) Delete(ctx context.Context, reviewID int64) error {
	ctx, span := util.StartSpan(ctx, "ReviewService.Delete")
	defer span.End()

	return s.remove(ctx, reviewID, models.ReviewActionDeleted)
}

func (s *ReviewService) remove(ctx context.Context, reviewID int64, action string) error {
	review, err := s.store.GetReviewByID(ctx, reviewID)
	if err != nil {
		return fmt.Errorf("failed to get review: %w", err)
	}
	if review == nil {
		return ErrNotFound("review", reviewID)
	}

	start := time.Now()
	err = s.store.WithTx(ctx, func(tx *sqlx.Tx) error {
		if review.IsApproved {
			if _, err := s.store.GetProductForUpdateTx(ctx, tx, review.ProductID); err != nil {
				return fmt.Errorf("failed to lock product: %w", err)
			}
		}
		if err := s.store.DeleteReviewTx(ctx, tx, reviewID); err != nil {
			return fmt.Errorf("failed to delete review: %w", err)
		}
		if review.IsApproved {
			return s.store.RecomputeProductRatingTx(ctx, tx, review.ProductID)
		}
		return nil
	})
	if err != nil {
		return err
	}
	if review.IsApproved {
		util.RatingRecomputeLatency.Observe(time.Since(start).Seconds())
	}

	s.afterModeration(ctx, review, action)
	return nil
}

func (s *ReviewService) afterModeration(ctx context.Context, review *models.Review, action string) {
	util.ReviewsModeratedTotal.WithLabelValues(action).Inc()
	s.logger.Info("Review moderated",
		zap.Int64("review_id", review.ID),
		zap.Int64("product_id", review.ProductID),
		zap.String("action", action))

	event := &models.ReviewModeratedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeReviewModerated,
			Timestamp: time.Now(),
		},
		ReviewID:  review.ID,
		ProductID: review.ProductID,
		Action:    action,
	}
	if err := s.eventPublisher.PublishReviewModerated(ctx, event); err != nil {
		s.logger.Error("Failed to publish ReviewModerated event", zap.Error(err))
	}
}
