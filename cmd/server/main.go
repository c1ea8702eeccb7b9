package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"admin-api/config"
	"admin-api/internal/api"
	"admin-api/internal/broker"
	"admin-api/internal/redisclient"
	"admin-api/internal/service"
	"admin-api/internal/store"
	"admin-api/internal/util"
	"admin-api/internal/worker"

	"github.com/gin-gonic/gin"
)

func main() {

	cfg := config.Load()

	if err := util.InitLogger("admin-api", cfg.Server.Env); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer util.SyncLogger()

	logger := util.GetLogger()
	logger.Info("Starting admin API")

	tp, err := util.InitTracer("admin-api", cfg.Observ.JaegerEndpoint)
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("Error shutting down tracer: %v", err)
		}
	}()

	db, err := store.NewStore(cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Println("Database connected")

	redisClient, err := redisclient.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	log.Println("Redis connected")

	orderProducer := broker.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.TopicOrderEvents)
	defer orderProducer.Close()
	reviewProducer := broker.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.TopicReviewEvents)
	defer reviewProducer.Close()
	notificationProducer := broker.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.TopicNotifications)
	defer notificationProducer.Close()
	log.Println("Kafka producers initialized")

	eventPublisher := broker.NewEventPublisher(orderProducer, reviewProducer, notificationProducer)

	authService := service.NewAuthService(db, redisClient, cfg.Auth.TokenTTL)
	orderService := service.NewOrderService(db, eventPublisher)
	couponService := service.NewCouponService(db, redisClient)
	reviewService := service.NewReviewService(db, eventPublisher)
	categoryService := service.NewCategoryService(db)
	productService := service.NewProductService(db)
	bannerService := service.NewBannerService(db)
	userService := service.NewUserService(db)
	notificationService := service.NewNotificationService(db, eventPublisher)
	dashboardService := service.NewDashboardService(db)

	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	notificationConsumer := broker.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.TopicNotifications, cfg.Kafka.ConsumerGroup)
	notificationWorker := worker.NewNotificationWorker(notificationConsumer, notificationService)
	go func() {
		if err := notificationWorker.Start(workerCtx); err != nil {
			log.Printf("Notification worker error: %v", err)
		}
	}()

	orderEventsConsumer := broker.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.TopicOrderEvents, cfg.Kafka.ConsumerGroup)
	orderEventsWorker := worker.NewOrderEventsWorker(orderEventsConsumer, notificationService)
	go func() {
		if err := orderEventsWorker.Start(workerCtx); err != nil {
			log.Printf("Order events worker error: %v", err)
		}
	}()

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	handler := api.NewHandler(api.HandlerConfig{
		AuthService:         authService,
		OrderService:        orderService,
		CouponService:       couponService,
		ReviewService:       reviewService,
		CategoryService:     categoryService,
		ProductService:      productService,
		BannerService:       bannerService,
		UserService:         userService,
		NotificationService: notificationService,
		DashboardService:    dashboardService,
		DefaultPageLimit:    cfg.API.DefaultPageLimit,
		MaxPageLimit:        cfg.API.MaxPageLimit,
	})
	handler.SetupRoutes(router)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting HTTP server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	workerCancel()
	notificationWorker.Stop()
	orderEventsWorker.Stop()

	log.Println("Server exited")
}
