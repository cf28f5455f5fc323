package api

import (
	"context"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/rozgaar/marketplace/docs"
	"github.com/rozgaar/marketplace/internal/api/handler"
	"github.com/rozgaar/marketplace/internal/api/middleware"
	"github.com/rozgaar/marketplace/internal/core/domain"
	"github.com/rozgaar/marketplace/internal/core/ports"
	"github.com/rozgaar/marketplace/internal/core/service"
	mongodb "github.com/rozgaar/marketplace/internal/infrastructure/db/mongo"
	redisdb "github.com/rozgaar/marketplace/internal/infrastructure/db/redis"
	"github.com/rozgaar/marketplace/internal/infrastructure/queue"
)

// Dependencies carries the externally managed resources the router wires
// services onto.
type Dependencies struct {
	DB         *mongo.Database
	Redis      *redis.Client
	Files      ports.FileStore
	JWTSecret  string
	UploadsDir string
	Logger     zerolog.Logger
}

// NewRouter builds the Echo instance with all routes registered. The rating
// recompute workers run until ctx is cancelled.
func NewRouter(ctx context.Context, deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("marketplace"))

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(deps.DB)
	gigRepo := mongodb.NewGigRepository(deps.DB)
	orderRepo := mongodb.NewOrderRepository(deps.DB)
	reviewRepo := mongodb.NewReviewRepository(deps.DB)
	messageRepo := mongodb.NewMessageRepository(deps.DB)
	gigCache := redisdb.NewGigCache(deps.Redis)

	// --- Services ---
	authService := service.NewAuthService(userRepo, userRepo, deps.JWTSecret, 0)
	gigService := service.NewGigService(gigRepo, userRepo, gigCache, deps.Logger)
	orderService := service.NewOrderService(orderRepo, gigRepo, userRepo, reviewRepo, userRepo, deps.Logger)
	ratingService := service.NewRatingService(reviewRepo, orderRepo, gigRepo, gigCache, deps.Logger)
	dispatcher := queue.NewRatingDispatcher(0, ratingService, deps.Logger)
	dispatcher.Start(ctx)
	reviewService := service.NewReviewService(reviewRepo, orderRepo, gigRepo, userRepo, dispatcher, deps.Logger)
	messageService := service.NewMessageService(messageRepo, orderRepo, userRepo, deps.Logger)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	gigHandler := handler.NewGigHandler(gigService)
	orderHandler := handler.NewOrderHandler(orderService, reviewService, messageService, deps.Files)
	reviewHandler := handler.NewReviewHandler(reviewService)
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.DB, deps.Redis)

	authMW := middleware.Auth(deps.JWTSecret)
	clientOnly := middleware.RBAC(domain.RoleClient)
	freelancerOnly := middleware.RBAC(domain.RoleFreelancer)

	// --- Auth ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/auth/me", authHandler.Me, authMW)
	e.POST("/auth/add-balance", authHandler.AddBalance, authMW)

	// --- Gigs ---
	e.GET("/gigs", gigHandler.List)
	e.GET("/gigs/my", gigHandler.My, authMW, freelancerOnly)
	e.GET("/gigs/freelancer/:freelancerId", gigHandler.ByFreelancer)
	e.GET("/gigs/:id", gigHandler.Get)
	e.POST("/gigs", gigHandler.Create, authMW, freelancerOnly)
	e.PUT("/gigs/:id", gigHandler.Update, authMW, freelancerOnly)
	e.DELETE("/gigs/:id", gigHandler.Delete, authMW, freelancerOnly)

	// --- Orders ---
	orders := e.Group("/orders", authMW)
	orders.POST("", orderHandler.Create, clientOnly)
	orders.GET("", orderHandler.List)
	orders.GET("/:id", orderHandler.Get)
	orders.PATCH("/:id/status", orderHandler.UpdateStatus)
	orders.POST("/:id/deliver", orderHandler.Deliver, freelancerOnly)
	orders.POST("/:id/approve", orderHandler.ApproveDelivery, clientOnly)
	orders.POST("/:id/reject", orderHandler.RejectDelivery, clientOnly)
	orders.POST("/:id/cancel", orderHandler.RequestCancellation)
	orders.POST("/:id/approve-cancellation", orderHandler.ApproveCancellation)
	orders.POST("/:id/reject-cancellation", orderHandler.RejectCancellation)
	orders.POST("/:id/review", orderHandler.AddReview, clientOnly)
	orders.POST("/:id/messages", orderHandler.AddMessage)
	orders.GET("/:id/messages", orderHandler.ListMessages)

	// --- Reviews (public) ---
	e.GET("/reviews/gig/:gigId", reviewHandler.ByGig)
	e.GET("/reviews/freelancer/:freelancerId", reviewHandler.ByFreelancer)

	// --- Delivery files ---
	e.Static("/uploads", deps.UploadsDir)

	// --- Operability ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
