package worker

import (
	"context"
	"log"

	"admin-api/internal/broker"
	"admin-api/internal/service"
)

// NotificationWorker consumes NotificationCreated events and hands each
// record to the push gateway via the notification service.
type NotificationWorker struct {
	consumer     *broker.Consumer
	eventHandler *broker.EventHandler
}

// NewNotificationWorker creates a new notification worker
func NewNotificationWorker(consumer *broker.Consumer, notificationService *service.NotificationService) *NotificationWorker {
	eventHandler := broker.NewEventHandler()
	eventHandler.OnNotificationCreated(notificationService.Dispatch)

	return &NotificationWorker{
		consumer:     consumer,
		eventHandler: eventHandler,
	}
}

// Start starts the worker
func (w *NotificationWorker) Start(ctx context.Context) error {
	log.Println("Starting notification worker...")
	return w.consumer.StartConsuming(ctx, w.eventHandler.HandleMessage)
}

// Stop stops the worker
func (w *NotificationWorker) Stop() error {
	log.Println("Stopping notification worker...")
	return w.consumer.Close()
}

// OrderEventsWorker consumes OrderStatusChanged events and fans each one out
// into a buyer notification.
type OrderEventsWorker struct {
	consumer     *broker.Consumer
	eventHandler *broker.EventHandler
}

// NewOrderEventsWorker creates a new order events worker
func NewOrderEventsWorker(consumer *broker.Consumer, notificationService *service.NotificationService) *OrderEventsWorker {
	eventHandler := broker.NewEventHandler()
	eventHandler.OnOrderStatusChanged(notificationService.NotifyOrderStatusChanged)

	return &OrderEventsWorker{
		consumer:     consumer,
		eventHandler: eventHandler,
	}
}

// Start starts the worker
func (w *OrderEventsWorker) Start(ctx context.Context) error {
	log.Println("Starting order events worker...")
	return w.consumer.StartConsuming(ctx, w.eventHandler.HandleMessage)
}

// Stop stops the worker
func (w *OrderEventsWorker) Stop() error {
	log.Println("Stopping order events worker...")
	return w.consumer.Close()
}
