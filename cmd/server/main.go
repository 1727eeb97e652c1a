package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"legalease.backend/internal/config"
	"legalease.backend/internal/infrastructure/datasources/postgres"
	"legalease.backend/internal/infrastructure/jobs"
	"legalease.backend/internal/infrastructure/mailer"
	"legalease.backend/internal/infrastructure/oauth"
	"legalease.backend/internal/infrastructure/paystack"
	"legalease.backend/internal/infrastructure/ratelimit"
	"legalease.backend/internal/infrastructure/repositories"
	"legalease.backend/internal/infrastructure/storage"
	"legalease.backend/internal/interfaces/http/handlers"
	"legalease.backend/internal/interfaces/http/middleware"
	"legalease.backend/internal/usecases"
	"legalease.backend/pkg/jwt"
	"legalease.backend/pkg/logger"
	"legalease.backend/pkg/redis"
)

var (
	loadDotenv       = godotenv.Load
	loadCfg          = config.Load
	initLog          = logger.Init
	initRedis        = redis.Init
	openDB           = postgres.OpenGorm
	newDocumentStore = func(cfg config.StorageConfig) (usecases.DocumentStorage, error) {
		return storage.NewS3DocumentStore(storage.Config{
			Endpoint:  cfg.Endpoint,
			Region:    cfg.Region,
			Bucket:    cfg.Bucket,
			AccessKey: cfg.AccessKey,
			SecretKey: cfg.SecretKey,
			PublicURL: cfg.PublicURL,
		})
	}
	runServer      = func(srv *http.Server) error { return srv.ListenAndServe() }
	getStdDB       = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
	shutdownSignal = func() <-chan os.Signal {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		return quit
	}
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func newMailer(cfg config.EmailConfig) usecases.Mailer {
	if cfg.Service == "smtp" {
		return mailer.NewSMTPMailer(&mailer.Config{
			SMTPHost:     cfg.SMTPHost,
			SMTPPort:     cfg.SMTPPort,
			SMTPUsername: cfg.SMTPUsername,
			SMTPPassword: cfg.SMTPPassword,
			FromEmail:    cfg.From,
			FromName:     cfg.FromName,
		})
	}
	return mailer.NewConsoleMailer(cfg.From)
}

// newOAuthProviders returns the sign-in providers that have credentials
func newOAuthProviders(cfg config.OAuthConfig) []usecases.OAuthProvider {
	var providers []usecases.OAuthProvider
	if cfg.GoogleEnabled() {
		providers = append(providers, oauth.NewGoogle(oauth.GoogleConfig{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
		}))
	}
	return providers
}

// newRateLimitStore returns the store and, for the memory backend, the job that sweeps it
func newRateLimitStore(cfg config.RateLimitConfig) (ratelimit.Store, *jobs.RateLimitSweepJob) {
	if cfg.Store == "memory" {
		store := ratelimit.NewMemoryStore()
		return store, jobs.NewRateLimitSweepJob(store)
	}
	return ratelimit.NewRedisStore(redis.GetClient()), nil
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	defer logger.Sync()
	ctx := context.Background()
	logger.Info(ctx, "Logger initialized", zap.String("env", cfg.Server.Env))

	for _, warning := range config.ValidateEnv(os.LookupEnv).Warnings {
		logger.Warn(ctx, "Environment", zap.String("warning", warning))
	}

	if err := initRedis(cfg.Redis.URL, cfg.Redis.PASSWORD); err != nil {
		logger.Error(ctx, "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	defer func() {
		if err := redis.Close(); err != nil {
			logger.Warn(ctx, "Failed to close Redis", zap.Error(err))
		}
	}()
	logger.Info(ctx, "Redis initialized")

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg.Database.URL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.PingContext(ctx); err != nil {
		logger.Warn(ctx, "Database not available, endpoints will return errors", zap.Error(err))
	} else {
		logger.Info(ctx, "Connected to PostgreSQL")
	}

	documents, err := newDocumentStore(cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiry, cfg.JWT.RefreshExpiry)
	gateway := paystack.NewClient(cfg.Paystack.BaseURL, cfg.Paystack.SecretKey)

	profileRepo := repositories.NewProfileRepository(db)
	kycRepo := repositories.NewKYCRepository(db)
	contractRepo := repositories.NewContractRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)
	contactRepo := repositories.NewContactMessageRepository(db)
	uow := repositories.NewUnitOfWork(db)

	notifier := usecases.NewNotificationService(newMailer(cfg.Email), profileRepo, usecases.NotificationConfig{
		AdminEmails:  cfg.Email.AdminEmails,
		AppURL:       cfg.App.URL,
		ContactEmail: cfg.Email.ContactEmail,
	})

	authUsecase := usecases.NewAuthUsecase(profileRepo, redis.NewTokenStore(), jwtService, notifier, cfg.App.URL).
		WithOAuthProviders(newOAuthProviders(cfg.OAuth)...)
	kycUsecase := usecases.NewKYCUsecase(kycRepo, profileRepo, documents, notifier)
	contractUsecase := usecases.NewContractUsecase(contractRepo, paymentRepo, profileRepo, uow, documents, gateway, notifier, cfg.App.URL)
	paymentUsecase := usecases.NewPaymentUsecase(paymentRepo, contractRepo, profileRepo, uow, gateway, notifier)
	contactUsecase := usecases.NewContactUsecase(contactRepo, notifier)
	adminUsecase := usecases.NewAdminUsecase(profileRepo)

	store, sweepJob := newRateLimitStore(cfg.RateLimit)
	jobCtx, cancelJobs := context.WithCancel(ctx)
	defer cancelJobs()
	if sweepJob != nil {
		go sweepJob.Start(jobCtx)
	}

	r := gin.New()
	r.MaxMultipartMemory = handlers.MaxMultipartMemory
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	applyCORSMiddleware(r, cfg.Server.AllowedOrigins)
	registerHealthRoute(r, cfg.Server.Version)
	registerMetricsRoute(r)
	registerAPIRoutes(r, routeDeps{
		authHandler:     handlers.NewAuthHandler(authUsecase),
		kycHandler:      handlers.NewKYCHandler(kycUsecase),
		contractHandler: handlers.NewContractHandler(contractUsecase),
		paystackHandler: handlers.NewPaystackHandler(paymentUsecase, cfg.Paystack.SecretKey),
		contactHandler:  handlers.NewContactHandler(contactUsecase),
		adminHandler:    handlers.NewAdminHandler(adminUsecase),
		healthHandler:   handlers.NewHealthHandler(os.LookupEnv, sqlDB.PingContext, cfg.Server.Version),
		authMiddleware:  middleware.AuthMiddleware(jwtService),
		limiter:         ratelimit.NewLimiter(store),
	})

	for _, route := range r.Routes() {
		logger.Debug(ctx, "Route registered", zap.String("method", route.Method), zap.String("path", route.Path))
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info(ctx, "LegalEase backend starting", zap.String("port", cfg.Server.Port), zap.String("version", cfg.Server.Version))
		serveErr <- runServer(srv)
	}()

	var runErr error
	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			runErr = fmt.Errorf("failed to start server: %w", err)
		}
	case sig := <-shutdownSignal():
		logger.Info(ctx, "Shutting down server", zap.String("signal", sig.String()))
		grace := cfg.Server.ShutdownGrace
		if grace <= 0 {
			grace = 10 * time.Second
		}
		shutdownCtx, cancel := context.WithTimeout(ctx, grace)
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error(ctx, "Server shutdown failed", zap.Error(err))
		}
		cancel()
	}

	if sweepJob != nil {
		sweepJob.Stop()
	}
	notifier.Wait()
	return runErr
}
