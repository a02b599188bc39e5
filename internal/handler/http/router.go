package http

import (
	"net/http"
	"time"

	"github.com/didip/tollbooth/v7"
	"github.com/didip/tollbooth/v7/limiter"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	ginprometheus "github.com/zsais/go-gin-prometheus"
	"go.uber.org/zap"

	"github.com/mikiasgoitom/BookSocialNetwork/internal/handler/http/middleware"
	usecasecontract "github.com/mikiasgoitom/BookSocialNetwork/internal/usecase/contract"
)

const (
	defaultAllowedOrigin = "http://localhost:4200"
	defaultRatePerSecond = 10
)

// RouterConfig holds the HTTP surface settings taken from the application config.
type RouterConfig struct {
	AppBaseURL         string
	AllowedOrigins     []string
	RateLimitPerSecond float64
	GoogleClientID     string
	GoogleClientSecret string
	// EnableRequestMetrics registers the per-route gin_* collectors and /metrics.
	EnableRequestMetrics bool
}

type Router struct {
	authHandler     *AuthHandler
	bookHandler     *BookHandler
	feedbackHandler *FeedbackHandler
	authUsecase     usecasecontract.IAuthUseCase
	logger          *zap.Logger
	cfg             RouterConfig
}

func NewRouter(authUsecase usecasecontract.IAuthUseCase, bookUsecase usecasecontract.IBookUseCase, lendingUsecase usecasecontract.ILendingUseCase, feedbackUsecase usecasecontract.IFeedbackUseCase, logger *zap.Logger, cfg RouterConfig) *Router {
	return &Router{
		authHandler:     NewAuthHandler(authUsecase, cfg.AppBaseURL, cfg.GoogleClientID, cfg.GoogleClientSecret),
		bookHandler:     NewBookHandler(bookUsecase, lendingUsecase),
		feedbackHandler: NewFeedbackHandler(feedbackUsecase),
		authUsecase:     authUsecase,
		logger:          logger,
		cfg:             cfg,
	}
}

func (r *Router) SetupRoutes(router *gin.Engine) {
	router.Use(middleware.ZapLogger(r.logger))
	router.Use(gin.Recovery())

	if r.cfg.EnableRequestMetrics {
		// must run before the routes below so that they are instrumented
		ginprometheus.NewPrometheus("gin").Use(router)
	}

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = r.cfg.AllowedOrigins
	if len(corsConfig.AllowOrigins) == 0 {
		corsConfig.AllowOrigins = []string{defaultAllowedOrigin}
		r.logger.Info("no CORS origins configured, allowing default", zap.String("origin", defaultAllowedOrigin))
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "Accept"}
	corsConfig.ExposeHeaders = []string{"Content-Length", middleware.RequestIDHeader}
	corsConfig.AllowCredentials = true
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// rate limiter configuration
	rate := r.cfg.RateLimitPerSecond
	if rate <= 0 {
		rate = defaultRatePerSecond
	}
	lmt := tollbooth.NewLimiter(rate, &limiter.ExpirableOptions{DefaultExpirationTTL: time.Hour})
	lmt.SetIPLookups([]string{"RemoteAddr", "X-Forwarded-For", "X-Real-IP"})
	lmt.SetMessage("Too many requests, please try again later.")
	router.Use(middleware.RateLimiter(lmt))

	health := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
	router.GET("/health", health)
	router.HEAD("/health", health)
	router.GET("/api/v1/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.Use(middleware.JWTFilter(r.authUsecase, r.logger))

	// Public routes (no authentication required)
	auth := v1.Group("/auth")
	{
		auth.POST("/register", r.authHandler.Register)
		auth.POST("/authenticate", r.authHandler.Authenticate)
		auth.GET("/activate-account", r.authHandler.ActivateAccount)

		// Google OAuth endpoints
		auth.GET("/google/login", r.authHandler.HandleGoogleLogin)
		auth.GET("/google/callback", r.authHandler.HandleGoogleCallback)
	}

	// Protected routes (authentication required)
	protected := v1.Group("")
	protected.Use(middleware.RequireAuthenticated())
	{
		books := protected.Group("/books")
		books.POST("", r.bookHandler.SaveBook)
		books.GET("", r.bookHandler.FindAllBooks)
		books.GET("/owner", r.bookHandler.FindAllBooksByOwner)
		books.GET("/borrowed", r.bookHandler.FindAllBorrowedBooks)
		books.GET("/returned", r.bookHandler.FindAllReturnedBooks)
		books.GET("/:bookID", r.bookHandler.FindBookByID)
		books.PATCH("/shareable/:bookID", r.bookHandler.UpdateShareableStatus)
		books.PATCH("/archived/:bookID", r.bookHandler.UpdateArchivedStatus)
		books.POST("/borrow/:bookID", r.bookHandler.BorrowBook)
		books.PATCH("/borrow/return/:bookID", r.bookHandler.ReturnBorrowedBook)
		books.PATCH("/borrow/return/approve/:bookID", r.bookHandler.ApproveReturnBorrowedBook)
		books.POST("/cover/:bookID", r.bookHandler.UploadBookCover)

		feedbacks := protected.Group("/feedbacks")
		feedbacks.POST("", r.feedbackHandler.SaveFeedback)
		feedbacks.GET("/book/:bookID", r.feedbackHandler.FindAllFeedbacksByBook)
	}
}
