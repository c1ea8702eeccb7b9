package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"admin-api/internal/models"

	"github.com/segmentio/kafka-go"
)

// EventPublisher handles publishing domain events, one producer per topic
type EventPublisher struct {
	orderProducer        *Producer
	reviewProducer       *Producer
	notificationProducer *Producer
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher(orderProducer, reviewProducer, notificationProducer *Producer) *EventPublisher {
	return &EventPublisher{
		orderProducer:        orderProducer,
		reviewProducer:       reviewProducer,
		notificationProducer: notificationProducer,
	}
}

// PublishOrderStatusChanged publishes OrderStatusChanged event
func (ep *EventPublisher) PublishOrderStatusChanged(ctx context.Context, event *models.OrderStatusChangedEvent) error {
	key := fmt.Sprintf("order-%d", event.OrderID)
	return ep.orderProducer.PublishEvent(ctx, key, event)
}

// PublishReviewModerated publishes ReviewModerated event
func (ep *EventPublisher) PublishReviewModerated(ctx context.Context, event *models.ReviewModeratedEvent) error {
	key := fmt.Sprintf("review-%d", event.ReviewID)
	return ep.reviewProducer.PublishEvent(ctx, key, event)
}

// PublishNotificationCreated publishes NotificationCreated event
func (ep *EventPublisher) PublishNotificationCreated(ctx context.Context, event *models.NotificationCreatedEvent) error {
	key := fmt.Sprintf("notification-%d", event.NotificationID)
	return ep.notificationProducer.PublishEvent(ctx, key, event)
}

// EventHandler routes incoming events to registered callbacks
type EventHandler struct {
	onNotificationCreated func(context.Context, *models.NotificationCreatedEvent) error
	onOrderStatusChanged  func(context.Context, *models.OrderStatusChangedEvent) error
}

// NewEventHandler creates a new event handler
func NewEventHandler() *EventHandler {
	return &EventHandler{}
}

// OnNotificationCreated registers a handler for NotificationCreated events
func (eh *EventHandler) OnNotificationCreated(handler func(context.Context, *models.NotificationCreatedEvent) error) {
	eh.onNotificationCreated = handler
}

// OnOrderStatusChanged registers a handler for OrderStatusChanged events
func (eh *EventHandler) OnOrderStatusChanged(handler func(context.Context, *models.OrderStatusChangedEvent) error) {
	eh.onOrderStatusChanged = handler
}

// HandleMessage routes messages to appropriate handlers
func (eh *EventHandler) HandleMessage(ctx context.Context, msg kafka.Message) error {
	var baseEvent models.BaseEvent
	if err := json.Unmarshal(msg.Value, &baseEvent); err != nil {
		return fmt.Errorf("failed to unmarshal base event: %w", err)
	}

	log.Printf("Handling event: type=%s, id=%s", baseEvent.EventType, baseEvent.EventID)

	switch baseEvent.EventType {
	case models.EventTypeNotificationCreated:
		if eh.onNotificationCreated != nil {
			var event models.NotificationCreatedEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				return fmt.Errorf("failed to unmarshal NotificationCreated event: %w", err)
			}
			return eh.onNotificationCreated(ctx, &event)
		}

	case models.EventTypeOrderStatusChanged:
		if eh.onOrderStatusChanged != nil {
			var event models.OrderStatusChangedEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				return fmt.Errorf("failed to unmarshal OrderStatusChanged event: %w", err)
			}
			return eh.onOrderStatusChanged(ctx, &event)
		}

	default:
		log.Printf("Unhandled event type: %s", baseEvent.EventType)
	}

	return nil
}
