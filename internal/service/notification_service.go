package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"admin-api/internal/broker"
	"admin-api/internal/models"
	"admin-api/internal/store"
	"admin-api/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// NotificationService creates notification records and hands delivery to the
// dispatch worker via the broker.
type NotificationService struct {
	store          *store.Store
	eventPublisher *broker.EventPublisher
	logger         *zap.Logger
}

// NewNotificationService creates a new notification service
func NewNotificationService(store *store.Store, eventPublisher *broker.EventPublisher) *NotificationService {
	return &NotificationService{
		store:          store,
		eventPublisher: eventPublisher,
		logger:         util.GetLogger(),
	}
}

// CreateNotificationRequest is the operator-facing create body; UserID empty
// means a broadcast.
type CreateNotificationRequest struct {
	UserID *int64 `json:"user_id"`
	Title  string `json:"title" binding:"required"`
	Body   string `json:"body" binding:"required"`
}

// CreateNotification stores the record and publishes NotificationCreated
func (s *NotificationService) CreateNotification(ctx context.Context, req *CreateNotificationRequest) (*models.Notification, error) {
	ctx, span := util.StartSpan(ctx, "NotificationService.CreateNotification")
	defer span.End()

	notification := &models.Notification{Title: req.Title, Body: req.Body}
	if req.UserID != nil {
		user, err := s.store.GetUserByID(ctx, *req.UserID)
		if err != nil {
			return nil, fmt.Errorf("failed to get user: %w", err)
		}
		if user == nil {
			return nil, NewError(CodeValidationError, "user not found: %d", *req.UserID)
		}
		notification.UserID = sql.NullInt64{Int64: *req.UserID, Valid: true}
	}

	if err := s.store.CreateNotification(ctx, notification); err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}

	event := &models.NotificationCreatedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeNotificationCreated,
			Timestamp: time.Now(),
		},
		NotificationID: notification.ID,
		UserID:         notification.UserID.Int64,
		Title:          notification.Title,
		Body:           notification.Body,
	}
	if err := s.eventPublisher.PublishNotificationCreated(ctx, event); err != nil {
		s.logger.Error("Failed to publish NotificationCreated event", zap.Error(err))
	}

	return notification, nil
}

// ListNotifications returns a page of notifications
func (s *NotificationService) ListNotifications(ctx context.Context, limit, offset int) ([]models.Notification, int, error) {
	notifications, total, err := s.store.ListNotifications(ctx, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, total, nil
}

// MarkRead flips is_read
func (s *NotificationService) MarkRead(ctx context.Context, id int64) (*models.Notification, error) {
	notification, err := s.store.MarkNotificationRead(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to mark notification read: %w", err)
	}
	if notification == nil {
		return nil, ErrNotFound("notification", id)
	}
	return notification, nil
}

// NotifyOrderStatusChanged turns an order status change into a notification
// for the buyer. Guest orders carry no user and are skipped.
func (s *NotificationService) NotifyOrderStatusChanged(ctx context.Context, event *models.OrderStatusChangedEvent) error {
	if event.UserID == 0 {
		return nil
	}

	notification := &models.Notification{
		UserID: sql.NullInt64{Int64: event.UserID, Valid: true},
		Title:  "Order update",
		Body:   fmt.Sprintf("Order %s is now %s", event.OrderNumber, event.ToStatus),
	}
	if err := s.store.CreateNotification(ctx, notification); err != nil {
		return fmt.Errorf("failed to create order notification: %w", err)
	}

	created := &models.NotificationCreatedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeNotificationCreated,
			Timestamp: time.Now(),
		},
		NotificationID: notification.ID,
		UserID:         event.UserID,
		Title:          notification.Title,
		Body:           notification.Body,
	}
	if err := s.eventPublisher.PublishNotificationCreated(ctx, created); err != nil {
		s.logger.Error("Failed to publish NotificationCreated event", zap.Error(err))
	}
	return nil
}

// Dispatch hands a notification to the push gateway and stamps dispatched_at.
// The gateway call itself is an external collaborator; only the handoff is
// recorded here.
func (s *NotificationService) Dispatch(ctx context.Context, event *models.NotificationCreatedEvent) error {
	notification, err := s.store.GetNotificationByID(ctx, event.NotificationID)
	if err != nil {
		return fmt.Errorf("failed to get notification: %w", err)
	}
	if notification == nil {
		s.logger.Warn("Notification vanished before dispatch",
			zap.Int64("notification_id", event.NotificationID))
		return nil
	}
	if notification.DispatchedAt.Valid {
		return nil
	}

	s.logger.Info("Dispatching notification to push gateway",
		zap.Int64("notification_id", notification.ID),
		zap.String("title", notification.Title))

	if err := s.store.MarkNotificationDispatched(ctx, notification.ID); err != nil {
		return fmt.Errorf("failed to mark notification dispatched: %w", err)
	}

	util.NotificationsDispatchedTotal.Inc()
	return nil
}
