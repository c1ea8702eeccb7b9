package service

import (
	"context"
	"fmt"

	"admin-api/internal/models"
	"admin-api/internal/store"
)

// DashboardService aggregates the console landing-page summary
type DashboardService struct {
	store *store.Store
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(store *store.Store) *DashboardService {
	return &DashboardService{store: store}
}

// DashboardSummary is the console landing-page payload
type DashboardSummary struct {
	OrdersByStatus map[string]int `json:"orders_by_status"`
	ProductCount   int            `json:"product_count"`
	CustomerCount  int            `json:"customer_count"`
	PendingReviews int            `json:"pending_reviews"`
	Revenue        float64        `json:"revenue"`
}

// Summary collects the dashboard counters
func (s *DashboardService) Summary(ctx context.Context) (*DashboardSummary, error) {
	ordersByStatus, err := s.store.CountOrdersByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	productCount, err := s.store.CountProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	customerCount, err := s.store.CountUsers(ctx, models.RoleCustomer)
	if err != nil {
		return nil, fmt.Errorf("failed to count customers: %w", err)
	}

	pendingReviews, err := s.store.CountPendingReviews(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count pending reviews: %w", err)
	}

	revenue, err := s.store.SumDeliveredRevenue(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to sum revenue: %w", err)
	}

	return &DashboardSummary{
		OrdersByStatus: ordersByStatus,
		ProductCount:   productCount,
		CustomerCount:  customerCount,
		PendingReviews: pendingReviews,
		Revenue:        revenue,
	}, nil
}
