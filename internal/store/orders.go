package store

import (
	"context"
	"database/sql"
	"fmt"

	"admin-api/internal/models"

	"github.com/jmoiron/sqlx"
)

// GetOrderByID retrieves an order by ID
func (s *Store) GetOrderByID(ctx context.Context, id int64) (*models.Order, error) {
	var order models.Order
	err := s.db.GetContext(ctx, &order, "SELECT * FROM orders WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// ListOrders retrieves a page of orders, optionally filtered by status
func (s *Store) ListOrders(ctx context.Context, status string, limit, offset int) ([]models.Order, int, error) {
	where := ""
	args := []interface{}{}
	if status != "" {
		where = "WHERE status = $1"
		args = append(args, status)
	}

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM orders %s", where)
	if err := s.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	listQuery := fmt.Sprintf(
		"SELECT * FROM orders %s ORDER BY placed_at DESC LIMIT $%d OFFSET $%d",
		where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	var orders []models.Order
	if err := s.db.SelectContext(ctx, &orders, listQuery, args...); err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// GetOrderItemsByOrderID retrieves all items for an order
func (s *Store) GetOrderItemsByOrderID(ctx context.Context, orderID int64) ([]models.OrderItem, error) {
	var items []models.OrderItem
	err := s.db.SelectContext(ctx, &items,
		"SELECT * FROM order_items WHERE order_id = $1 ORDER BY id", orderID)
	return items, err
}

// TransitionOrderStatusTx updates status, stamps the status-specific timestamp
// and appends the note in a single statement so the write is atomic.
func (s *Store) TransitionOrderStatusTx(ctx context.Context, tx *sqlx.Tx, orderID int64, status, notes string) error {
	query := `
		UPDATE orders SET
			status = $1,
			shipped_at = CASE WHEN $1 = 'shipped' THEN NOW() ELSE shipped_at END,
			delivered_at = CASE WHEN $1 = 'delivered' THEN NOW() ELSE delivered_at END,
			cancelled_at = CASE WHEN $1 = 'cancelled' THEN NOW() ELSE cancelled_at END,
			notes = CASE WHEN $2 <> '' THEN CONCAT_WS(E'\n', notes, $2) ELSE notes END,
			updated_at = NOW()
		WHERE id = $3`

	_, err := tx.ExecContext(ctx, query, status, notes, orderID)
	return err
}

// GetOrderForUpdateTx locks an order row for the duration of the transaction
func (s *Store) GetOrderForUpdateTx(ctx context.Context, tx *sqlx.Tx, orderID int64) (*models.Order, error) {
	var order models.Order
	err := tx.GetContext(ctx, &order, "SELECT * FROM orders WHERE id = $1 FOR UPDATE", orderID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// CountOrdersByStatus returns order counts grouped by status
func (s *Store) CountOrdersByStatus(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryxContext(ctx,
		"SELECT status, COUNT(*) AS cnt FROM orders GROUP BY status")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var cnt int
		if err := rows.Scan(&status, &cnt); err != nil {
			return nil, err
		}
		counts[status] = cnt
	}
	return counts, rows.Err()
}

// SumDeliveredRevenue returns the total amount of delivered orders
func (s *Store) SumDeliveredRevenue(ctx context.Context) (float64, error) {
	var revenue float64
	err := s.db.GetContext(ctx, &revenue,
		"SELECT COALESCE(SUM(total_amount), 0) FROM orders WHERE status = $1",
		models.OrderStatusDelivered)
	return revenue, err
}
