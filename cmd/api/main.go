// Package main provides the entrypoint for the FareDeck API server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/faredeck/faredeck/internal/api"
	"github.com/faredeck/faredeck/internal/api/middleware"
	"github.com/faredeck/faredeck/internal/auth"
	"github.com/faredeck/faredeck/internal/compare"
	"github.com/faredeck/faredeck/internal/database"
	"github.com/faredeck/faredeck/internal/distance"
	"github.com/faredeck/faredeck/internal/distance/googlemaps"
	"github.com/faredeck/faredeck/internal/fare"
	"github.com/faredeck/faredeck/internal/featureflags"
	"github.com/faredeck/faredeck/internal/provider/resilience"
	"github.com/faredeck/faredeck/internal/quotecache"
	"github.com/faredeck/faredeck/internal/routes"
	"github.com/faredeck/faredeck/internal/search"
	"github.com/faredeck/faredeck/internal/telemetry"
	"github.com/faredeck/faredeck/internal/user"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "faredeck-api"

	// Setup structured logging
	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting FareDeck API")

	// Get configuration from environment
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	otlpEndpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if otlpEndpoint == "" {
		otlpEndpoint = "localhost:4317"
	}

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}

	// Initialize OpenTelemetry
	ctx := context.Background()
	telemetryEnabled := os.Getenv("OTEL_ENABLED") == "true"

	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    env,
		OTLPEndpoint:   otlpEndpoint,
		Enabled:        telemetryEnabled,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	if telemetryEnabled {
		log.Info().
			Str("otlp_endpoint", otlpEndpoint).
			Msg("OpenTelemetry initialized")
	}

	// Initialize metrics
	metrics, err := middleware.NewMetrics()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize metrics")
		os.Exit(1) //nolint:gocritic // intentional exit, telemetry cleanup is best-effort
	}

	// Connect to database
	dbConfig := database.ConfigFromEnv()
	pool, err := database.Connect(ctx, dbConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	log.Info().
		Str("host", dbConfig.Host).
		Int("port", dbConfig.Port).
		Str("database", dbConfig.Database).
		Msg("database connected")

	// Initialize auth repositories and service
	authUserRepo := auth.NewPostgresUserRepository(pool)
	authRefreshRepo := auth.NewPostgresRefreshTokenRepository(pool)

	// Initialize JWT service (get signing key from environment)
	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		jwtSigningKey = "local-dev-signing-key-change-in-production"
		log.Warn().Msg("using default JWT signing key - not secure for production")
	}

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SigningKey: jwtSigningKey,
		Issuer:     "https://api.faredeck.in",
		Audience:   "faredeck-api",
	})

	authService := auth.NewService(auth.ServiceConfig{
		JWTService:  jwtService,
		UserRepo:    authUserRepo,
		RefreshRepo: authRefreshRepo,
	})
	log.Info().Msg("auth service initialized")

	// Initialize user repository and service
	userRepo := user.NewPostgresRepository(pool)
	userService := user.NewService(userRepo)
	log.Info().Msg("user service initialized")

	// Initialize saved routes repository and service
	routeRepo := routes.NewPostgresRepository(pool)
	routeService := routes.NewService(routeRepo)
	log.Info().Msg("route service initialized")

	// Initialize search history repository and service
	searchRepo := search.NewPostgresRepository(pool)
	searchService := search.NewService(searchRepo, log)
	log.Info().Msg("search service initialized")

	// Initialize feature flags repository and service
	ffRepo := featureflags.NewPostgresRepository(pool)
	ffService := featureflags.NewService(featureflags.ServiceConfig{
		Repository: ffRepo,
		Logger:     log,
		CacheTTL:   1 * time.Minute,
	})
	log.Info().Msg("feature flags service initialized")

	// Provider health registry feeds the ops status endpoint
	registry := resilience.NewRegistry()

	// Distance resolution: Google Maps when configured, deterministic
	// fallback otherwise
	var distanceProvider distance.Provider
	if mapsKey := os.Getenv("GOOGLE_MAPS_API_KEY"); mapsKey != "" {
		mapsClient, mapsErr := googlemaps.NewClient(googlemaps.ClientConfig{
			APIKey:   mapsKey,
			Registry: registry,
			Logger:   log,
		})
		if mapsErr != nil {
			log.Fatal().Err(mapsErr).Msg("failed to initialize Google Maps client")
		}
		distanceProvider = mapsClient
		log.Info().Msg("Google Maps distance provider initialized")
	} else {
		log.Warn().Msg("GOOGLE_MAPS_API_KEY not set - distances use the deterministic fallback")
	}

	distanceService := distance.NewService(distance.ServiceConfig{
		Provider: distanceProvider,
		Logger:   log,
	})

	// Quote cache: Redis when configured, disabled otherwise
	var quotes *quotecache.Cache
	if redisAddr := os.Getenv("REDIS_ADDR"); redisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     redisAddr,
			Password: os.Getenv("REDIS_PASSWORD"),
		})
		defer redisClient.Close()

		quotes = quotecache.New(quotecache.Config{
			Store:  quotecache.NewRedisStore(redisClient),
			Logger: log,
		})
		log.Info().Str("addr", redisAddr).Msg("quote cache initialized")
	} else {
		log.Warn().Msg("REDIS_ADDR not set - discount badges disabled")
	}

	// Fare engine and comparison orchestrator
	fareEngine := fare.NewEngine(fare.EngineConfig{})
	compareService := compare.NewService(compare.ServiceConfig{
		Engine:   fareEngine,
		Distance: distanceService,
		Flags:    ffService,
		Quotes:   quotes,
		Searches: searchService,
		Logger:   log,
	})
	log.Info().Msg("compare service initialized")

	// Create router with configuration
	router := api.NewRouter(api.RouterConfig{
		Version:            Version,
		BuildTime:          BuildTime,
		Logger:             log,
		ServiceName:        serviceName,
		Metrics:            metrics,
		Database:           pool,
		AuthService:        authService,
		UserService:        userService,
		FeatureFlagService: ffService,
		CompareService:     compareService,
		FareEngine:         fareEngine,
		SearchService:      searchService,
		RouteService:       routeService,
		DistanceService:    distanceService,
		ProviderRegistry:   registry,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("addr", server.Addr).
			Msg("server listening")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}

	log.Info().Msg("server stopped")
}
