package service

import (
	"context"
	"fmt"
	"time"

	"admin-api/internal/models"
	"admin-api/internal/redisclient"
	"admin-api/internal/store"
	"admin-api/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthService issues and verifies opaque admin bearer tokens backed by Redis
type AuthService struct {
	store    *store.Store
	redis    *redisclient.Client
	tokenTTL time.Duration
	logger   *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(store *store.Store, redis *redisclient.Client, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		store:    store,
		redis:    redis,
		tokenTTL: tokenTTL,
		logger:   util.GetLogger(),
	}
}

// LoginRequest carries admin credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse returns the bearer token and the admin identity
type LoginResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Login verifies credentials against the users table and issues a token.
// Only active admin accounts may log into the console.
func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	ctx, span := util.StartSpan(ctx, "AuthService.Login")
	defer span.End()

	user, err := s.store.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		util.AuthFailuresTotal.WithLabelValues("unknown_email").Inc()
		return nil, NewError(CodeUnauthorized, "invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		util.AuthFailuresTotal.WithLabelValues("bad_password").Inc()
		return nil, NewError(CodeUnauthorized, "invalid credentials")
	}

	if user.Role != models.RoleAdmin {
		util.AuthFailuresTotal.WithLabelValues("not_admin").Inc()
		return nil, NewError(CodeForbidden, "admin role required")
	}
	if !user.IsActive {
		util.AuthFailuresTotal.WithLabelValues("inactive").Inc()
		return nil, NewError(CodeForbidden, "account is suspended")
	}

	token := uuid.New().String()
	if err := s.redis.SetSession(ctx, token, user.ID, s.tokenTTL); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	s.logger.Info("Admin logged in", zap.Int64("user_id", user.ID))
	return &LoginResponse{Token: token, User: user}, nil
}

// Authenticate resolves a bearer token to the admin user it belongs to
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	userID, err := s.redis.GetSession(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to look up session: %w", err)
	}
	if userID == 0 {
		util.AuthFailuresTotal.WithLabelValues("invalid_token").Inc()
		return nil, NewError(CodeUnauthorized, "invalid or expired token")
	}

	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil || !user.IsActive {
		return nil, NewError(CodeUnauthorized, "invalid or expired token")
	}
	if user.Role != models.RoleAdmin {
		return nil, NewError(CodeForbidden, "admin role required")
	}
	return user, nil
}

// Logout revokes a bearer token
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.redis.DeleteSession(ctx, token)
}
