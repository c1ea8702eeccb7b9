package api

import (
	"net/http"
	"time"

	"admin-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler contains HTTP handlers
type Handler struct {
	authService         *service.AuthService
	orderService        *service.OrderService
	couponService       *service.CouponService
	reviewService       *service.ReviewService
	categoryService     *service.CategoryService
	productService      *service.ProductService
	bannerService       *service.BannerService
	userService         *service.UserService
	notificationService *service.NotificationService
	dashboardService    *service.DashboardService

	defaultLimit int
	maxLimit     int
}

// HandlerConfig wires the services into the HTTP layer
type HandlerConfig struct {
	AuthService         *service.AuthService
	OrderService        *service.OrderService
	CouponService       *service.CouponService
	ReviewService       *service.ReviewService
	CategoryService     *service.CategoryService
	ProductService      *service.ProductService
	BannerService       *service.BannerService
	UserService         *service.UserService
	NotificationService *service.NotificationService
	DashboardService    *service.DashboardService
	DefaultPageLimit    int
	MaxPageLimit        int
}

// NewHandler creates a new HTTP handler
func NewHandler(cfg HandlerConfig) *Handler {
	return &Handler{
		authService:         cfg.AuthService,
		orderService:        cfg.OrderService,
		couponService:       cfg.CouponService,
		reviewService:       cfg.ReviewService,
		categoryService:     cfg.CategoryService,
		productService:      cfg.ProductService,
		bannerService:       cfg.BannerService,
		userService:         cfg.UserService,
		notificationService: cfg.NotificationService,
		dashboardService:    cfg.DashboardService,
		defaultLimit:        cfg.DefaultPageLimit,
		maxLimit:            cfg.MaxPageLimit,
	}
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())
	router.Use(prometheusMiddleware())
	router.Use(gin.Logger())

	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.POST("/admin/auth/login", h.login)

	admin := router.Group("/admin")
	admin.Use(h.authMiddleware())
	{
		admin.POST("/auth/logout", h.logout)
		admin.GET("/auth/me", h.me)

		admin.GET("/dashboard", h.dashboard)

		admin.GET("/orders", h.listOrders)
		admin.GET("/orders/:id", h.getOrder)
		admin.PUT("/orders/:id/status", h.updateOrderStatus)

		admin.GET("/coupons", h.listCoupons)
		admin.GET("/coupons/:id", h.getCoupon)
		admin.POST("/coupons", h.createCoupon)
		admin.PUT("/coupons/:id", h.updateCoupon)
		admin.DELETE("/coupons/:id", h.deleteCoupon)
		admin.POST("/coupons/validate", h.validateCoupon)
		admin.POST("/coupons/redeem", h.redeemCoupon)

		admin.GET("/reviews", h.listReviews)
		admin.PUT("/reviews/:id/approve", h.approveReview)
		admin.PUT("/reviews/:id/reject", h.rejectReview)
		admin.DELETE("/reviews/:id", h.deleteReview)

		admin.GET("/categories", h.listCategories)
		admin.GET("/categories/:id", h.getCategory)
		admin.POST("/categories", h.createCategory)
		admin.PUT("/categories/:id", h.updateCategory)
		admin.DELETE("/categories/:id", h.deleteCategory)
		admin.PATCH("/categories/:id/toggle-status", h.toggleCategoryStatus)

		admin.GET("/products", h.listProducts)
		admin.GET("/products/:id", h.getProduct)
		admin.POST("/products", h.createProduct)
		admin.PUT("/products/:id", h.updateProduct)
		admin.DELETE("/products/:id", h.deleteProduct)

		admin.GET("/banners", h.listBanners)
		admin.GET("/banners/:id", h.getBanner)
		admin.POST("/banners", h.createBanner)
		admin.PUT("/banners/:id", h.updateBanner)
		admin.DELETE("/banners/:id", h.deleteBanner)
		admin.PATCH("/banners/:id/toggle-status", h.toggleBannerStatus)

		admin.GET("/users", h.listUsers)
		admin.GET("/users/:id", h.getUser)
		admin.PATCH("/users/:id/toggle-status", h.toggleUserStatus)

		admin.GET("/notifications", h.listNotifications)
		admin.POST("/notifications", h.createNotification)
		admin.PUT("/notifications/:id/read", h.markNotificationRead)
	}
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

// readinessCheck handles readiness check requests
func (h *Handler) readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now().Unix(),
	})
}

func (h *Handler) login(c *gin.Context) {
	var req service.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, resp)
}

func (h *Handler) logout(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	token := ""
	if len(authHeader) > len("Bearer ") {
		token = authHeader[len("Bearer "):]
	}
	if err := h.authService.Logout(c.Request.Context(), token); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"logged_out": true})
}

func (h *Handler) me(c *gin.Context) {
	respondOK(c, adminFromContext(c))
}

func (h *Handler) dashboard(c *gin.Context) {
	summary, err := h.dashboardService.Summary(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, summary)
}
