package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	assistantapp "github.com/Lmt310104/BookNow-BE-sub000/internal/application/assistant"
	cartapp "github.com/Lmt310104/BookNow-BE-sub000/internal/application/cart"
	catalogapp "github.com/Lmt310104/BookNow-BE-sub000/internal/application/catalog"
	identityapp "github.com/Lmt310104/BookNow-BE-sub000/internal/application/identity"
	inventoryapp "github.com/Lmt310104/BookNow-BE-sub000/internal/application/inventory"
	messagingapp "github.com/Lmt310104/BookNow-BE-sub000/internal/application/messaging"
	orderapp "github.com/Lmt310104/BookNow-BE-sub000/internal/application/order"
	partnerapp "github.com/Lmt310104/BookNow-BE-sub000/internal/application/partner"
	reportapp "github.com/Lmt310104/BookNow-BE-sub000/internal/application/report"
	reviewapp "github.com/Lmt310104/BookNow-BE-sub000/internal/application/review"
	assistantinfra "github.com/Lmt310104/BookNow-BE-sub000/internal/infrastructure/assistant"
	"github.com/Lmt310104/BookNow-BE-sub000/internal/infrastructure/auth"
	"github.com/Lmt310104/BookNow-BE-sub000/internal/infrastructure/chat"
	"github.com/Lmt310104/BookNow-BE-sub000/internal/infrastructure/config"
	"github.com/Lmt310104/BookNow-BE-sub000/internal/infrastructure/logger"
	"github.com/Lmt310104/BookNow-BE-sub000/internal/infrastructure/notification"
	"github.com/Lmt310104/BookNow-BE-sub000/internal/infrastructure/persistence"
	"github.com/Lmt310104/BookNow-BE-sub000/internal/infrastructure/storage"
	"github.com/Lmt310104/BookNow-BE-sub000/internal/interfaces/http/handler"
	"github.com/Lmt310104/BookNow-BE-sub000/internal/interfaces/http/middleware"
	"github.com/Lmt310104/BookNow-BE-sub000/internal/interfaces/http/router"
)

//	@title			BookNow API
//	@version		1.0
//	@description	Online bookstore backend: catalog, cart, checkout, reviews and support chat.

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting BookNow backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize database connection with zap-backed GORM logging
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLogLevel)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Token blacklist backed by Redis; logout and forced session
	// revocation depend on it
	blacklist, err := auth.NewRedisTokenBlacklist(cfg.Redis)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	log.Info("Redis connected successfully")

	// Initialize repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	bookRepo := persistence.NewGormBookRepository(db.DB)
	authorRepo := persistence.NewGormAuthorRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	cartRepo := persistence.NewGormCartRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	reviewRepo := persistence.NewGormReviewRepository(db.DB)
	supplierRepo := persistence.NewGormSupplierRepository(db.DB)
	stockEntryRepo := persistence.NewGormStockEntryRepository(db.DB)
	statsRepo := persistence.NewGormStatisticsRepository(db.DB)
	conversationRepo := persistence.NewGormConversationRepository(db.DB)
	checkoutStore := persistence.NewGormCheckoutStore(db.DB)
	stockStore := persistence.NewGormStockStore(db.DB)

	// External integrations
	mailer := notification.NewSMTPMailer(cfg.SMTP, log)
	smsClient := notification.NewSMSClient(cfg.SMS, log)
	orderNotifier := notification.NewOrderNotifier(mailer, smsClient)

	var summarizer assistantapp.Summarizer
	if cfg.Assistant.Enabled {
		summarizer = assistantinfra.NewGenerativeClient(cfg.Assistant, log)
		log.Info("Assistant summaries enabled", zap.String("model", cfg.Assistant.Model))
	}

	var tokenIssuer messagingapp.TokenIssuer
	if cfg.Chat.Enabled {
		tokenIssuer = chat.NewTokenClient(cfg.Chat, log)
		log.Info("Chat token service enabled")
	}

	var objectStorage catalogapp.ObjectStorageService
	if cfg.Storage.Bucket != "" {
		objectStorage, err = storage.NewS3ObjectStorage(&cfg.Storage)
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		log.Info("Object storage enabled", zap.String("bucket", cfg.Storage.Bucket))
	} else {
		objectStorage = storage.NewStubObjectStorage()
		log.Warn("Object storage not configured, cover uploads disabled")
	}

	// Initialize application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, mailer,
		identityapp.DefaultAuthServiceConfig(), log)
	userService := identityapp.NewUserService(userRepo, log)
	bookService := catalogapp.NewBookService(bookRepo, authorRepo, categoryRepo)
	authorService := catalogapp.NewAuthorService(authorRepo)
	categoryService := catalogapp.NewCategoryService(categoryRepo)
	coverService := catalogapp.NewCoverService(bookRepo, objectStorage)
	cartService := cartapp.NewCartService(cartRepo, bookRepo)
	orderService := orderapp.NewOrderService(orderRepo, cartRepo, bookRepo, userRepo,
		checkoutStore, orderNotifier, log)
	reviewService := reviewapp.NewReviewService(reviewRepo, bookRepo, log)
	supplierService := partnerapp.NewSupplierService(supplierRepo)
	stockService := inventoryapp.NewStockService(stockEntryRepo, bookRepo, supplierRepo, stockStore, log)
	statsService := reportapp.NewStatisticsService(statsRepo)
	messageService := messagingapp.NewMessageService(conversationRepo, tokenIssuer, log)
	webhookService := assistantapp.NewWebhookService(bookRepo, orderRepo, summarizer, log)

	// Initialize HTTP handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	bookHandler := handler.NewBookHandler(bookService, coverService)
	authorHandler := handler.NewAuthorHandler(authorService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	cartHandler := handler.NewCartHandler(cartService)
	orderHandler := handler.NewOrderHandler(orderService)
	reviewHandler := handler.NewReviewHandler(reviewService)
	supplierHandler := handler.NewSupplierHandler(supplierService)
	inventoryHandler := handler.NewInventoryHandler(stockService)
	statsHandler := handler.NewStatisticsHandler(statsService)
	messageHandler := handler.NewMessageHandler(messageService)
	webhookHandler := handler.NewWebhookHandler(webhookService)
	systemHandler := handler.NewSystemHandler(db.DB)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack: request ID, panic recovery, request logging,
	// security headers, CORS, body limit, rate limiting
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Health check endpoints
	engine.GET("/health", systemHandler.Health)
	engine.GET("/api/v1/health", systemHandler.Health)

	// Setup API routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	jwtConfig := middleware.DefaultJWTConfig(jwtService)
	jwtConfig.TokenBlacklist = blacklist
	jwtConfig.Logger = log
	r.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	adminOnly := middleware.RequireAdmin()

	// Authentication
	authRoutes := router.NewDomainGroup("auth", "/auth")
	if cfg.HTTP.AuthRateLimitEnabled {
		authLimiter := middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		authRoutes.Use(middleware.AuthRateLimit(authLimiter))
	}
	authRoutes.POST("/register", authHandler.Register)
	authRoutes.POST("/login", authHandler.Login)
	authRoutes.POST("/refresh", authHandler.Refresh)
	authRoutes.POST("/logout", authHandler.Logout)
	authRoutes.POST("/logout-all", authHandler.LogoutAll)
	authRoutes.POST("/change-password", authHandler.ChangePassword)

	// Users
	userRoutes := router.NewDomainGroup("users", "/users")
	userRoutes.GET("/me", userHandler.Me)
	userRoutes.PATCH("/me", userHandler.UpdateMe)
	userRoutes.GET("", adminOnly, userHandler.List)
	userRoutes.GET("/:id", adminOnly, userHandler.GetByID)
	userRoutes.POST("/:id/disable", adminOnly, userHandler.Disable)
	userRoutes.POST("/:id/enable", adminOnly, userHandler.Enable)

	// Catalog
	bookRoutes := router.NewDomainGroup("books", "/books")
	bookRoutes.GET("", bookHandler.List)
	bookRoutes.GET("/:id", bookHandler.GetByID)
	bookRoutes.POST("", adminOnly, bookHandler.Create)
	bookRoutes.PATCH("/:id", adminOnly, bookHandler.Update)
	bookRoutes.PUT("/:id/discount", adminOnly, bookHandler.SetDiscount)
	bookRoutes.POST("/:id/activate", adminOnly, bookHandler.Activate)
	bookRoutes.POST("/:id/deactivate", adminOnly, bookHandler.Deactivate)
	bookRoutes.POST("/:id/covers/upload-url", adminOnly, bookHandler.RequestCoverUpload)
	bookRoutes.POST("/:id/covers", adminOnly, bookHandler.ConfirmCover)
	bookRoutes.GET("/:id/covers/download-url", bookHandler.CoverDownloadURL)
	bookRoutes.DELETE("/:id/covers", adminOnly, bookHandler.RemoveCover)

	authorRoutes := router.NewDomainGroup("authors", "/authors")
	authorRoutes.GET("", authorHandler.List)
	authorRoutes.GET("/:id", authorHandler.GetByID)
	authorRoutes.POST("", adminOnly, authorHandler.Create)
	authorRoutes.PATCH("/:id", adminOnly, authorHandler.Update)
	authorRoutes.POST("/:id/activate", adminOnly, authorHandler.Activate)
	authorRoutes.POST("/:id/deactivate", adminOnly, authorHandler.Deactivate)

	categoryRoutes := router.NewDomainGroup("categories", "/categories")
	categoryRoutes.GET("", categoryHandler.List)
	categoryRoutes.GET("/:id", categoryHandler.GetByID)
	categoryRoutes.POST("", adminOnly, categoryHandler.Create)
	categoryRoutes.PATCH("/:id", adminOnly, categoryHandler.Update)
	categoryRoutes.DELETE("/:id", adminOnly, categoryHandler.Delete)
	categoryRoutes.POST("/:id/activate", adminOnly, categoryHandler.Activate)
	categoryRoutes.POST("/:id/deactivate", adminOnly, categoryHandler.Deactivate)

	// Cart and checkout
	cartRoutes := router.NewDomainGroup("cart", "/cart")
	cartRoutes.GET("", cartHandler.Get)
	cartRoutes.DELETE("", cartHandler.Clear)
	cartRoutes.POST("/items", cartHandler.AddItem)
	cartRoutes.PUT("/items/:bookId", cartHandler.UpdateItem)
	cartRoutes.DELETE("/items/:bookId", cartHandler.RemoveItem)

	orderRoutes := router.NewDomainGroup("orders", "/orders")
	orderRoutes.POST("/checkout", orderHandler.Checkout)
	orderRoutes.GET("", orderHandler.List)
	orderRoutes.GET("/:id", orderHandler.GetByID)
	orderRoutes.PUT("/:id/status", adminOnly, orderHandler.UpdateStatus)
	orderRoutes.POST("/:id/cancel", orderHandler.Cancel)

	// Reviews
	reviewRoutes := router.NewDomainGroup("reviews", "/reviews")
	reviewRoutes.POST("", reviewHandler.Create)
	reviewRoutes.GET("", reviewHandler.List)
	reviewRoutes.GET("/:id", reviewHandler.GetByID)
	reviewRoutes.PUT("/:id", reviewHandler.Update)
	reviewRoutes.DELETE("/:id", reviewHandler.Delete)

	// Suppliers and inventory (admin only)
	supplierRoutes := router.NewDomainGroup("suppliers", "/suppliers")
	supplierRoutes.Use(adminOnly)
	supplierRoutes.POST("", supplierHandler.Create)
	supplierRoutes.GET("", supplierHandler.List)
	supplierRoutes.GET("/:id", supplierHandler.GetByID)
	supplierRoutes.PUT("/:id", supplierHandler.Update)
	supplierRoutes.POST("/:id/activate", supplierHandler.Activate)
	supplierRoutes.POST("/:id/deactivate", supplierHandler.Deactivate)

	inventoryRoutes := router.NewDomainGroup("inventory", "/inventory")
	inventoryRoutes.Use(adminOnly)
	inventoryRoutes.POST("/receipts", inventoryHandler.CreateReceipt)
	inventoryRoutes.POST("/adjustments", inventoryHandler.CreateAdjustment)
	inventoryRoutes.GET("/entries", inventoryHandler.List)
	inventoryRoutes.GET("/entries/:id", inventoryHandler.GetByID)

	// Statistics (admin only)
	statsRoutes := router.NewDomainGroup("statistics", "/statistics")
	statsRoutes.Use(adminOnly)
	statsRoutes.GET("/summary", statsHandler.Summary)
	statsRoutes.GET("/top-books", statsHandler.TopBooks)
	statsRoutes.GET("/revenue-by-customer", statsHandler.RevenueByCustomer)
	statsRoutes.GET("/revenue-by-category", statsHandler.RevenueByCategory)
	statsRoutes.GET("/revenue-by-date", statsHandler.RevenueByDate)

	// Support chat
	messageRoutes := router.NewDomainGroup("messages", "/messages")
	messageRoutes.POST("", messageHandler.Send)
	messageRoutes.GET("/conversation", messageHandler.MyConversation)
	messageRoutes.POST("/chat-token", messageHandler.ChatToken)
	messageRoutes.GET("/conversations", adminOnly, messageHandler.ListConversations)
	messageRoutes.GET("/conversations/:id", messageHandler.ListMessages)
	messageRoutes.POST("/conversations/:id", adminOnly, messageHandler.ShopSend)

	// Assistant fulfillment webhook (public, verified by the bot platform)
	assistantRoutes := router.NewDomainGroup("assistant", "/assistant")
	assistantRoutes.POST("/webhook", webhookHandler.Handle)

	r.Register(authRoutes).
		Register(userRoutes).
		Register(bookRoutes).
		Register(authorRoutes).
		Register(categoryRoutes).
		Register(cartRoutes).
		Register(orderRoutes).
		Register(reviewRoutes).
		Register(supplierRoutes).
		Register(inventoryRoutes).
		Register(statsRoutes).
		Register(messageRoutes).
		Register(assistantRoutes)

	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
