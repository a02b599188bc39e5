package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	handlerHttp "github.com/mikiasgoitom/BookSocialNetwork/internal/handler/http"
	redisclient "github.com/mikiasgoitom/BookSocialNetwork/internal/infrastructure/cache"
	"github.com/mikiasgoitom/BookSocialNetwork/internal/infrastructure/config"
	database "github.com/mikiasgoitom/BookSocialNetwork/internal/infrastructure/database"
	"github.com/mikiasgoitom/BookSocialNetwork/internal/infrastructure/external_services"
	"github.com/mikiasgoitom/BookSocialNetwork/internal/infrastructure/filestorage"
	"github.com/mikiasgoitom/BookSocialNetwork/internal/infrastructure/jwt"
	"github.com/mikiasgoitom/BookSocialNetwork/internal/infrastructure/logger"
	passwordservice "github.com/mikiasgoitom/BookSocialNetwork/internal/infrastructure/password_service"
	randomgenerator "github.com/mikiasgoitom/BookSocialNetwork/internal/infrastructure/random_generator"
	"github.com/mikiasgoitom/BookSocialNetwork/internal/infrastructure/repository/mongodb"
	"github.com/mikiasgoitom/BookSocialNetwork/internal/infrastructure/store"
	"github.com/mikiasgoitom/BookSocialNetwork/internal/infrastructure/uuidgen"
	"github.com/mikiasgoitom/BookSocialNetwork/internal/infrastructure/validator"
	"github.com/mikiasgoitom/BookSocialNetwork/internal/usecase"
)

func main() {
	cfg, err := config.LoadConfig(".env")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{Level: cfg.LogLevel, Encoding: cfg.LogEncoding})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()
	zap.ReplaceGlobals(zapLogger)
	appLogger := logger.NewZapLogger(zapLogger)

	startupCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	// Establish MongoDB connection
	mongoClient, err := database.NewMongoDBClient(startupCtx, cfg.MongoURI)
	if err != nil {
		zap.L().Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	db := mongoClient.Client.Database(cfg.MongoDBName)
	if err := database.EnsureIndexes(startupCtx, db); err != nil {
		zap.L().Fatal("Failed to create MongoDB indexes", zap.Error(err))
	}
	zap.L().Info("Connected to MongoDB", zap.String("database", cfg.MongoDBName))

	// Register custom validators
	if err := validator.RegisterCustomValidators(); err != nil {
		zap.L().Fatal("Failed to register custom validators", zap.Error(err))
	}

	// Dependency Injection: Repositories
	userRepo := mongodb.NewMongoUserRepository(db.Collection(database.UsersCollection))
	roleRepo := mongodb.NewMongoRoleRepository(db.Collection(database.RolesCollection))
	tokenRepo := mongodb.NewTokenRepository(db.Collection(database.TokensCollection))
	bookRepo := mongodb.NewBookRepository(db.Collection(database.BooksCollection))
	feedbackRepo := mongodb.NewFeedbackRepository(db.Collection(database.FeedbacksCollection))
	txRepo := mongodb.NewBookTransactionRepository(db.Collection(database.TransactionsCollection))

	// Dependency Injection: Services
	hasher := passwordservice.NewHasher()
	jwtManager := jwt.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)
	jwtService := jwt.NewJWTService(jwtManager)
	mailService, err := external_services.NewEmailService(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom)
	if err != nil {
		zap.L().Fatal("Failed to initialize email service", zap.Error(err))
	}
	mailDispatcher := external_services.NewMailDispatcher(mailService, zapLogger.Named("MailDispatcher"), cfg.MailQueue, cfg.MailWorkers)
	randomGenerator := randomgenerator.NewRandomGenerator()
	appValidator := validator.NewValidator()
	uuidGenerator := uuidgen.NewGenerator()
	fileStorage := filestorage.NewLocalStorage(cfg.UploadPath)

	// Dependency Injection: Usecases
	activationUsecase := usecase.NewActivationUseCase(tokenRepo, userRepo, mailDispatcher, randomGenerator, uuidGenerator, cfg, appLogger)
	authUsecase := usecase.NewAuthUsecase(userRepo, roleRepo, activationUsecase, hasher, jwtService, appLogger, appValidator, uuidGenerator, randomGenerator)
	bookUsecase := usecase.NewBookUsecase(bookRepo, feedbackRepo, txRepo, userRepo, fileStorage, uuidGenerator, appLogger)
	lendingUsecase := usecase.NewLendingUsecase(bookRepo, txRepo, uuidGenerator, appLogger)
	feedbackUsecase := usecase.NewFeedbackUsecase(feedbackRepo, bookRepo, uuidGenerator, appLogger)

	if err := authUsecase.BootstrapDefaultRole(startupCtx); err != nil {
		zap.L().Fatal("Failed to bootstrap default role", zap.Error(err))
	}

	// Optional Dependency Injection: Redis cache
	if cfg.RedisURL != "" {
		rdb, err := redisclient.NewRedisFromURL(startupCtx, cfg.RedisURL)
		if err != nil {
			zap.L().Warn("Redis unavailable, running without book cache", zap.Error(err))
		} else {
			defer redisclient.Close(rdb)
			bookCache := store.NewBookCacheStore(rdb)
			bookUsecase.SetBookCache(bookCache)
			feedbackUsecase.SetBookCache(bookCache)
			zap.L().Info("Book cache enabled")
		}
	}

	gin.SetMode(gin.ReleaseMode)
	if cfg.Env == "development" {
		gin.SetMode(gin.DebugMode)
	}
	router := gin.New()

	// Setup API routes
	appRouter := handlerHttp.NewRouter(authUsecase, bookUsecase, lendingUsecase, feedbackUsecase, zapLogger, handlerHttp.RouterConfig{
		AppBaseURL:           cfg.AppBaseURL,
		AllowedOrigins:       cfg.GetAllowedOrigins(),
		RateLimitPerSecond:   cfg.RateLimitPerSecond,
		GoogleClientID:       cfg.GoogleClientID,
		GoogleClientSecret:   cfg.GoogleClientSecret,
		EnableRequestMetrics: true,
	})
	appRouter.SetupRoutes(router)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		zap.L().Info("Starting HTTP server", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.L().Fatal("HTTP server listen error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zap.L().Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Error("HTTP server forced to shutdown", zap.Error(err))
	}
	if err := mailDispatcher.Shutdown(shutdownCtx); err != nil {
		zap.L().Warn("Mail queue not fully drained", zap.Error(err))
	}
	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		zap.L().Error("Failed to disconnect from MongoDB", zap.Error(err))
	}

	zap.L().Info("Server exiting")
}
