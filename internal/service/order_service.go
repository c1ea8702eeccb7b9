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

// transitions is the strict order-state machine. Cancelled and returned are
// reachable from any non-terminal state; delivered, cancelled and returned
// have no exits.
var transitions = map[string][]string{
	models.OrderStatusPlaced:         {models.OrderStatusConfirmed, models.OrderStatusCancelled, models.OrderStatusReturned},
	models.OrderStatusConfirmed:      {models.OrderStatusProcessing, models.OrderStatusCancelled, models.OrderStatusReturned},
	models.OrderStatusProcessing:     {models.OrderStatusShipped, models.OrderStatusCancelled, models.OrderStatusReturned},
	models.OrderStatusShipped:        {models.OrderStatusOutForDelivery, models.OrderStatusCancelled, models.OrderStatusReturned},
	models.OrderStatusOutForDelivery: {models.OrderStatusDelivered, models.OrderStatusCancelled, models.OrderStatusReturned},
	models.OrderStatusDelivered:      {},
	models.OrderStatusCancelled:      {},
	models.OrderStatusReturned:       {},
}

// IsValidStatus reports whether status is one of the enumerated order states
func IsValidStatus(status string) bool {
	_, ok := transitions[status]
	return ok
}

// IsTerminalStatus reports whether status allows no further transitions
func IsTerminalStatus(status string) bool {
	targets, ok := transitions[status]
	return ok && len(targets) == 0
}

// CanTransition reports whether an order may move from one status to another
func CanTransition(from, to string) bool {
	for _, target := range transitions[from] {
		if target == to {
			return true
		}
	}
	return false
}

// OrderService enforces the order status lifecycle
type OrderService struct {
	store          *store.Store
	eventPublisher *broker.EventPublisher
	logger         *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(store *store.Store, eventPublisher *broker.EventPublisher) *OrderService {
	return &OrderService{
		store:          store,
		eventPublisher: eventPublisher,
		logger:         util.GetLogger(),
	}
}

// TransitionRequest is the body of the status update endpoint
type TransitionRequest struct {
	Status string `json:"status" binding:"required"`
	Notes  string `json:"notes"`
}

// OrderDetail bundles an order with its items and the buyer snapshot
type OrderDetail struct {
	Order *models.Order      `json:"order"`
	Items []models.OrderItem `json:"items"`
	User  *models.User       `json:"user,omitempty"`
}

// ListOrders returns a page of orders filtered by status
func (s *OrderService) ListOrders(ctx context.Context, status string, limit, offset int) ([]models.Order, int, error) {
	if status != "" && !IsValidStatus(status) {
		return nil, 0, NewError(CodeValidationError, "unknown order status: %s", status)
	}
	orders, total, err := s.store.ListOrders(ctx, status, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, total, nil
}

// GetOrder retrieves an order with its items and user snapshot
func (s *OrderService) GetOrder(ctx context.Context, orderID int64) (*OrderDetail, error) {
	order, err := s.store.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil {
		return nil, ErrNotFound("order", orderID)
	}

	items, err := s.store.GetOrderItemsByOrderID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order items: %w", err)
	}

	detail := &OrderDetail{Order: order, Items: items}
	if order.UserID.Valid {
		user, err := s.store.GetUserByID(ctx, order.UserID.Int64)
		if err != nil {
			return nil, fmt.Errorf("failed to get order user: %w", err)
		}
		detail.User = user
	}
	return detail, nil
}

// Transition moves an order to the target status. The order row is locked for
// the duration of the transaction so the status check and the write cannot
// interleave with a concurrent transition; the status-specific timestamp and
// note land in the same statement.
func (s *OrderService) Transition(ctx context.Context, orderID int64, req *TransitionRequest) (*models.Order, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.Transition")
	defer span.End()

	if !IsValidStatus(req.Status) {
		util.OrderTransitionsRejected.WithLabelValues("unknown_status").Inc()
		return nil, NewError(CodeValidationError, "unknown order status: %s", req.Status)
	}

	var current *models.Order
	err := s.store.WithTx(ctx, func(tx *sqlx.Tx) error {
		order, err := s.store.GetOrderForUpdateTx(ctx, tx, orderID)
		if err != nil {
			return fmt.Errorf("failed to lock order: %w", err)
		}
		if order == nil {
			return ErrNotFound("order", orderID)
		}
		current = order

		if !CanTransition(order.Status, req.Status) {
			util.OrderTransitionsRejected.WithLabelValues("invalid_transition").Inc()
			return NewError(CodeBadRequest,
				"invalid status transition: %s -> %s", order.Status, req.Status)
		}

		return s.store.TransitionOrderStatusTx(ctx, tx, orderID, req.Status, req.Notes)
	})
	if err != nil {
		return nil, err
	}

	util.OrderTransitionsTotal.WithLabelValues(req.Status).Inc()
	s.logger.Info("Order status transitioned",
		zap.Int64("order_id", orderID),
		zap.String("from", current.Status),
		zap.String("to", req.Status))

	event := &models.OrderStatusChangedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeOrderStatusChanged,
			Timestamp: time.Now(),
		},
		OrderID:     orderID,
		OrderNumber: current.OrderNumber,
		UserID:      current.UserID.Int64,
		FromStatus:  current.Status,
		ToStatus:    req.Status,
	}
	if err := s.eventPublisher.PublishOrderStatusChanged(ctx, event); err != nil {
		s.logger.Error("Failed to publish OrderStatusChanged event", zap.Error(err))
	}

	order, err := s.store.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload order: %w", err)
	}
	return order, nil
}
