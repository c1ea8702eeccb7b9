package store

import (
	"context"
	"database/sql"

	"admin-api/internal/models"
)

// CreateNotification inserts a new notification record
func (s *Store) CreateNotification(ctx context.Context, n *models.Notification) error {
	query := `
		INSERT INTO notifications (user_id, title, body)
		VALUES ($1, $2, $3)
		RETURNING id, is_read, created_at`

	return s.db.GetContext(ctx, n, query, n.UserID, n.Title, n.Body)
}

// GetNotificationByID retrieves a notification by ID
func (s *Store) GetNotificationByID(ctx context.Context, id int64) (*models.Notification, error) {
	var n models.Notification
	err := s.db.GetContext(ctx, &n, "SELECT * FROM notifications WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// ListNotifications retrieves a page of notifications, newest first
func (s *Store) ListNotifications(ctx context.Context, limit, offset int) ([]models.Notification, int, error) {
	var total int
	if err := s.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM notifications"); err != nil {
		return nil, 0, err
	}

	var notifications []models.Notification
	err := s.db.SelectContext(ctx, &notifications,
		"SELECT * FROM notifications ORDER BY created_at DESC LIMIT $1 OFFSET $2",
		limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return notifications, total, nil
}

// MarkNotificationRead flips is_read and returns the updated row
func (s *Store) MarkNotificationRead(ctx context.Context, id int64) (*models.Notification, error) {
	var n models.Notification
	err := s.db.GetContext(ctx, &n, `
		UPDATE notifications SET is_read = TRUE
		WHERE id = $1
		RETURNING *`, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// MarkNotificationDispatched stamps dispatched_at after push-gateway handoff
func (s *Store) MarkNotificationDispatched(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE notifications SET dispatched_at = NOW() WHERE id = $1", id)
	return err
}
