package models

import "time"

// Event types
const (
	EventTypeOrderStatusChanged  = "ORDER_STATUS_CHANGED"
	EventTypeReviewModerated     = "REVIEW_MODERATED"
	EventTypeNotificationCreated = "NOTIFICATION_CREATED"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// OrderStatusChangedEvent published after an order transitions status
type OrderStatusChangedEvent struct {
	BaseEvent
	OrderID     int64  `json:"order_id"`
	OrderNumber string `json:"order_number"`
	UserID      int64  `json:"user_id,omitempty"`
	FromStatus  string `json:"from_status"`
	ToStatus    string `json:"to_status"`
}

// ReviewModeratedEvent published after a review is approved, rejected or deleted
type ReviewModeratedEvent struct {
	BaseEvent
	ReviewID  int64  `json:"review_id"`
	ProductID int64  `json:"product_id"`
	Action    string `json:"action"`
}

// Review moderation actions
const (
	ReviewActionApproved = "approved"
	ReviewActionRejected = "rejected"
	ReviewActionDeleted  = "deleted"
)

// NotificationCreatedEvent published when an operator creates a notification;
// consumed by the dispatch worker.
type NotificationCreatedEvent struct {
	BaseEvent
	NotificationID int64  `json:"notification_id"`
	UserID         int64  `json:"user_id,omitempty"`
	Title          string `json:"title"`
	Body           string `json:"body"`
}
