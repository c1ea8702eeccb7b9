package service

import (
	"context"
	"fmt"

	"admin-api/internal/models"
	"admin-api/internal/store"
	"admin-api/internal/util"

	"go.uber.org/zap"
)

// UserService exposes the read-mostly user surface of the console; accounts
// are suspended, never hard-deleted.
type UserService struct {
	store  *store.Store
	logger *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(store *store.Store) *UserService {
	return &UserService{
		store:  store,
		logger: util.GetLogger(),
	}
}

// ListUsers returns a page of users
func (s *UserService) ListUsers(ctx context.Context, search, role string, limit, offset int) ([]models.User, int, error) {
	if role != "" && role != models.RoleAdmin && role != models.RoleCustomer {
		return nil, 0, NewError(CodeValidationError, "unknown role: %s", role)
	}
	users, total, err := s.store.ListUsers(ctx, search, role, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, total, nil
}

// GetUser retrieves a user by ID
func (s *UserService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.store.GetUserByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrNotFound("user", id)
	}
	return user, nil
}

// ToggleStatus suspends or reactivates an account
func (s *UserService) ToggleStatus(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.store.ToggleUserStatus(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to toggle user status: %w", err)
	}
	if user == nil {
		return nil, ErrNotFound("user", id)
	}
	s.logger.Info("User status toggled",
		zap.Int64("user_id", id),
		zap.Bool("is_active", user.IsActive))
	return user, nil
}
