package models

import (
	"database/sql"
	"time"
)

// User represents a store user; admins log into the console with role "admin".
type User struct {
	ID           int64     `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	Name         string    `db:"name" json:"name"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         string    `db:"role" json:"role"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// User roles
const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

// Category groups products; is_active decouples "hide" from "destroy".
type Category struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Slug      string    `db:"slug" json:"slug"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Product represents a catalog product. AverageRating and ReviewCount are
// derived from approved reviews and never written through product endpoints.
type Product struct {
	ID            int64         `db:"id" json:"id"`
	Name          string        `db:"name" json:"name"`
	Slug          string        `db:"slug" json:"slug"`
	Description   string        `db:"description" json:"description"`
	Price         float64       `db:"price" json:"price"`
	Stock         int           `db:"stock" json:"stock"`
	ImageURL      string        `db:"image_url" json:"image_url"`
	CategoryID    sql.NullInt64 `db:"category_id" json:"category_id"`
	AverageRating float64       `db:"average_rating" json:"average_rating"`
	ReviewCount   int           `db:"review_count" json:"review_count"`
	IsActive      bool          `db:"is_active" json:"is_active"`
	CreatedAt     time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time     `db:"updated_at" json:"updated_at"`
}

// Order represents a customer order. UserID is null for guest checkouts.
type Order struct {
	ID             int64          `db:"id" json:"id"`
	OrderNumber    string         `db:"order_number" json:"order_number"`
	UserID         sql.NullInt64  `db:"user_id" json:"user_id"`
	Status         string         `db:"status" json:"status"`
	Subtotal       float64        `db:"subtotal" json:"subtotal"`
	DiscountAmount float64        `db:"discount_amount" json:"discount_amount"`
	TotalAmount    float64        `db:"total_amount" json:"total_amount"`
	Notes          sql.NullString `db:"notes" json:"notes"`
	PlacedAt       time.Time      `db:"placed_at" json:"placed_at"`
	ShippedAt      sql.NullTime   `db:"shipped_at" json:"shipped_at"`
	DeliveredAt    sql.NullTime   `db:"delivered_at" json:"delivered_at"`
	CancelledAt    sql.NullTime   `db:"cancelled_at" json:"cancelled_at"`
	CreatedAt      time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at" json:"updated_at"`
}

// OrderItem is an immutable purchase-time snapshot of a product line.
type OrderItem struct {
	ID          int64   `db:"id" json:"id"`
	OrderID     int64   `db:"order_id" json:"order_id"`
	ProductID   int64   `db:"product_id" json:"product_id"`
	ProductName string  `db:"product_name" json:"product_name"`
	Variant     string  `db:"variant" json:"variant"`
	UnitPrice   float64 `db:"unit_price" json:"unit_price"`
	Quantity    int     `db:"quantity" json:"quantity"`
}

// Order statuses
const (
	OrderStatusPlaced         = "placed"
	OrderStatusConfirmed      = "confirmed"
	OrderStatusProcessing     = "processing"
	OrderStatusShipped        = "shipped"
	OrderStatusOutForDelivery = "out_for_delivery"
	OrderStatusDelivered      = "delivered"
	OrderStatusCancelled      = "cancelled"
	OrderStatusReturned       = "returned"
)

// Coupon represents a discount code. Codes are stored upper-cased and are
// unique case-insensitively.
type Coupon struct {
	ID                int64           `db:"id" json:"id"`
	Code              string          `db:"code" json:"code"`
	DiscountType      string          `db:"discount_type" json:"discount_type"`
	Value             float64         `db:"value" json:"value"`
	MinOrderAmount    sql.NullFloat64 `db:"min_order_amount" json:"min_order_amount"`
	MaxDiscountAmount sql.NullFloat64 `db:"max_discount_amount" json:"max_discount_amount"`
	UsageLimit        sql.NullInt64   `db:"usage_limit" json:"usage_limit"`
	UsageCount        int             `db:"usage_count" json:"usage_count"`
	UserLimit         int             `db:"user_limit" json:"user_limit"`
	IsActive          bool            `db:"is_active" json:"is_active"`
	StartDate         time.Time       `db:"start_date" json:"start_date"`
	ExpiryDate        time.Time       `db:"expiry_date" json:"expiry_date"`
	CreatedAt         time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time       `db:"updated_at" json:"updated_at"`
}

// Coupon discount types
const (
	DiscountTypePercentage = "percentage"
	DiscountTypeFixed      = "fixed"
)

// CouponUsage records a single redemption; append-only, enforces the
// per-user limit.
type CouponUsage struct {
	ID       int64     `db:"id" json:"id"`
	CouponID int64     `db:"coupon_id" json:"coupon_id"`
	UserID   int64     `db:"user_id" json:"user_id"`
	OrderID  int64     `db:"order_id" json:"order_id"`
	UsedAt   time.Time `db:"used_at" json:"used_at"`
}

// Review is a product review; only approved reviews feed the product
// aggregate rating.
type Review struct {
	ID         int64         `db:"id" json:"id"`
	ProductID  int64         `db:"product_id" json:"product_id"`
	UserID     sql.NullInt64 `db:"user_id" json:"user_id"`
	Rating     int           `db:"rating" json:"rating"`
	Title      string        `db:"title" json:"title"`
	Body       string        `db:"body" json:"body"`
	IsApproved bool          `db:"is_approved" json:"is_approved"`
	CreatedAt  time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time     `db:"updated_at" json:"updated_at"`
}

// Banner is a promotional banner shown on the storefront; the image lives in
// external object storage.
type Banner struct {
	ID        int64        `db:"id" json:"id"`
	Title     string       `db:"title" json:"title"`
	ImageURL  string       `db:"image_url" json:"image_url"`
	LinkURL   string       `db:"link_url" json:"link_url"`
	Position  int          `db:"position" json:"position"`
	IsActive  bool         `db:"is_active" json:"is_active"`
	StartsAt  sql.NullTime `db:"starts_at" json:"starts_at"`
	EndsAt    sql.NullTime `db:"ends_at" json:"ends_at"`
	CreatedAt time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt time.Time    `db:"updated_at" json:"updated_at"`
}

// Notification is an operator-authored message; delivery to the push gateway
// happens asynchronously and is recorded via DispatchedAt.
type Notification struct {
	ID           int64         `db:"id" json:"id"`
	UserID       sql.NullInt64 `db:"user_id" json:"user_id"`
	Title        string        `db:"title" json:"title"`
	Body         string        `db:"body" json:"body"`
	IsRead       bool          `db:"is_read" json:"is_read"`
	DispatchedAt sql.NullTime  `db:"dispatched_at" json:"dispatched_at"`
	CreatedAt    time.Time     `db:"created_at" json:"created_at"`
}
