package store

import (
	"context"
	"database/sql"
	"fmt"

	"admin-api/internal/models"
)

// GetUserByID retrieves a user by ID
func (s *Store) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	var u models.User
	err := s.db.GetContext(ctx, &u, "SELECT * FROM users WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetUserByEmail retrieves a user by email
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := s.db.GetContext(ctx, &u, "SELECT * FROM users WHERE email = $1", email)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// ListUsers retrieves a page of users with optional search and role filter
func (s *Store) ListUsers(ctx context.Context, search, role string, limit, offset int) ([]models.User, int, error) {
	where := "WHERE 1=1"
	args := []interface{}{}
	if search != "" {
		args = append(args, "%"+search+"%")
		where += fmt.Sprintf(" AND (email ILIKE $%d OR name ILIKE $%d)", len(args), len(args))
	}
	if role != "" {
		args = append(args, role)
		where += fmt.Sprintf(" AND role = $%d", len(args))
	}

	var total int
	if err := s.db.GetContext(ctx, &total,
		fmt.Sprintf("SELECT COUNT(*) FROM users %s", where), args...); err != nil {
		return nil, 0, err
	}

	listQuery := fmt.Sprintf(
		"SELECT * FROM users %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	var users []models.User
	if err := s.db.SelectContext(ctx, &users, listQuery, args...); err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// ToggleUserStatus flips is_active and returns the updated row
func (s *Store) ToggleUserStatus(ctx context.Context, id int64) (*models.User, error) {
	var u models.User
	err := s.db.GetContext(ctx, &u, `
		UPDATE users SET is_active = NOT is_active, updated_at = NOW()
		WHERE id = $1
		RETURNING *`, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// CountUsers counts users by role; empty role counts everyone
func (s *Store) CountUsers(ctx context.Context, role string) (int, error) {
	var count int
	if role == "" {
		err := s.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM users")
		return count, err
	}
	err := s.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM users WHERE role = $1", role)
	return count, err
}
