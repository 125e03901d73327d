// Package main is the entrypoint for the Mercato API server.
package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/mercato/mercato/internal/auth"
	"github.com/mercato/mercato/internal/cache"
	"github.com/mercato/mercato/internal/config"
	"github.com/mercato/mercato/internal/handler"
	"github.com/mercato/mercato/internal/metrics"
	"github.com/mercato/mercato/internal/middleware"
	"github.com/mercato/mercato/internal/repository"
	"github.com/mercato/mercato/internal/server"
	"github.com/mercato/mercato/internal/service"
	"github.com/mercato/mercato/internal/upload"
)

func main() {
	// Initialize context
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := initLogger(cfg)

	// Initialize database
	repo, err := repository.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error(
			"failed to connect to database",
			slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
			slog.String("database_url", redactURL(cfg.DatabaseURL)),
		)
		os.Exit(1)
	}
	defer repo.Close()
	logger.Info("connected to database")

	// Initialize cache
	cacheClient, err := cache.New(ctx, cfg.RedisURL)
	if err != nil {
		logger.Error(
			"failed to connect to Redis",
			slog.String("error", sanitizeError(err, cfg.RedisURL)),
			slog.String("redis_url", redactURL(cfg.RedisURL)),
		)
		os.Exit(1)
	}
	defer cacheClient.Close()
	logger.Info("connected to Redis")

	// Initialize image storage
	images, err := upload.NewStore(cfg.UploadDir)
	if err != nil {
		logger.Error("failed to initialize upload store", "error", err, "dir", cfg.UploadDir)
		os.Exit(1)
	}

	// Initialize auth
	tokens := auth.NewTokenService([]byte(cfg.JWTSecret), cfg.TokenTTL)
	resolver := auth.NewResolver(tokens, repo)

	// Initialize services
	metricsRecorder := metrics.NewNoop()
	userService := service.NewUserService(repo, tokens, metricsRecorder)
	catalogService := service.NewCatalogService(repo, cacheClient, images, metricsRecorder)
	cartService := service.NewCartService(repo, metricsRecorder)

	// Initialize handlers
	h := handler.New()
	healthHandler := handler.NewHealthHandler(repo, cacheClient)
	userHandler := handler.NewUserHandler(userService, logger)
	productHandler := handler.NewProductHandler(catalogService, logger, cfg.MaxUploadSize)
	cartHandler := handler.NewCartHandler(cartService, logger)

	// Setup router
	r := setupRouter(h, healthHandler, userHandler, productHandler, cartHandler, resolver, cfg, logger)

	// Create and run server
	srv := server.New(
		r,
		cfg.AppPort,
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)

	logger.Info("starting server",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	level := parseLogLevel(cfg.LogLevel)

	opts := &slog.HandlerOptions{
		Level: level,
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(
	h *handler.Handler,
	healthHandler *handler.HealthHandler,
	userHandler *handler.UserHandler,
	productHandler *handler.ProductHandler,
	cartHandler *handler.CartHandler,
	resolver *auth.Resolver,
	cfg *config.Config,
	logger *slog.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.Security(middleware.SecurityConfig{
		IsDevelopment: cfg.IsDevelopment(),
	}))

	corsCfg := middleware.DefaultCORSConfig()
	if origins := cfg.GetCORSAllowedOrigins(); len(origins) > 0 {
		corsCfg.AllowedOrigins = origins
	}
	r.Use(middleware.CORS(corsCfg))

	// Health endpoints (no auth required)
	r.Get("/healthz", healthHandler.Healthz)
	r.Get("/readyz", healthHandler.Readyz)

	// Root info endpoint
	r.Get("/", h.Hello)

	// Auth middleware configuration
	authCfg := middleware.AuthConfig{
		Logger:   logger,
		Resolver: resolver,
	}

	// Account endpoints (no auth required)
	r.With(middleware.MaxBodySize(cfg.MaxRequestBodySize)).Post("/register", userHandler.Register)
	r.With(middleware.MaxBodySize(cfg.MaxRequestBodySize)).Post("/login", userHandler.Login)

	// Catalog reads (no auth required)
	r.Get("/products", productHandler.List)
	r.Get("/products/total_pages", productHandler.TotalPages)
	r.Get("/products/{id}", productHandler.Get)

	// Catalog mutations (require authentication)
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(authCfg))

		// Uploads carry multipart bodies, so the limit is wider here.
		r.With(middleware.MaxBodySize(cfg.MaxUploadSize)).Post("/products", productHandler.Create)
		r.Delete("/products/{id}", productHandler.Delete)
	})

	// Cart endpoints (require authentication)
	r.Route("/cart", func(r chi.Router) {
		r.Use(middleware.Auth(authCfg))
		r.Use(middleware.MaxBodySize(cfg.MaxRequestBodySize))

		r.Post("/", cartHandler.Add)
		r.Get("/", cartHandler.View)
		r.Delete("/{product_id}", cartHandler.Remove)
	})

	// 404 and 405 handlers
	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	return r
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s]+`)

func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	return parsed.String()
}

func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}
