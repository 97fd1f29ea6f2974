// Package api provides the HTTP API for FareDeck.
package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/faredeck/faredeck/internal/api/handler"
	"github.com/faredeck/faredeck/internal/api/middleware"
	"github.com/faredeck/faredeck/internal/auth"
	"github.com/faredeck/faredeck/internal/compare"
	"github.com/faredeck/faredeck/internal/distance"
	"github.com/faredeck/faredeck/internal/fare"
	"github.com/faredeck/faredeck/internal/featureflags"
	"github.com/faredeck/faredeck/internal/provider/resilience"
	"github.com/faredeck/faredeck/internal/routes"
	"github.com/faredeck/faredeck/internal/search"
	"github.com/faredeck/faredeck/internal/user"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version            string
	BuildTime          string
	Logger             zerolog.Logger
	ServiceName        string
	Metrics            *middleware.Metrics
	Database           handler.Pinger
	AuthService        *auth.Service
	UserService        *user.Service
	FeatureFlagService *featureflags.Service
	CompareService     *compare.Service
	FareEngine         *fare.Engine
	SearchService      *search.Service
	RouteService       *routes.Service
	DistanceService    *distance.Service
	ProviderRegistry   *resilience.Registry
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	// Set default service name if not provided
	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "faredeck-api"
	}

	// Global middleware - order matters
	r.Use(middleware.RequestID)            // Generate/propagate request ID first
	r.Use(middleware.Tracing(serviceName)) // Distributed tracing
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware()) // HTTP metrics
	}
	r.Use(middleware.Logger(cfg.Logger))   // Structured logging
	r.Use(middleware.Recovery(cfg.Logger)) // Panic recovery
	r.Use(chimiddleware.RealIP)            // Real IP extraction
	r.Use(middleware.SecurityHeaders)      // Security headers (HSTS, CSP, etc.)
	r.Use(middleware.RequireTLS)           // TLS enforcement (enabled via REQUIRE_TLS=true)
	r.Use(middleware.ContentTypeJSON)      // JSON content type

	// Initialize handlers
	opsHandler := handler.NewOpsHandler(handler.OpsConfig{
		Version:   cfg.Version,
		BuildTime: cfg.BuildTime,
		Database:  cfg.Database,
		Distance:  cfg.DistanceService,
		Registry:  cfg.ProviderRegistry,
	})
	authHandler := handler.NewAuthHandler(cfg.AuthService)
	meHandler := handler.NewMeHandler(cfg.AuthService, cfg.UserService)
	fareHandler := handler.NewFareHandler(cfg.CompareService, cfg.FareEngine)
	searchHandler := handler.NewSearchHandler(cfg.SearchService)
	routeHandler := handler.NewRouteHandler(cfg.RouteService)
	metadataHandler := handler.NewMetadataHandler()
	featureFlagsHandler := handler.NewFeatureFlagsHandler(cfg.FeatureFlagService)

	// Create auth middleware
	authMiddleware := middleware.Auth(cfg.AuthService)
	optionalAuth := middleware.OptionalAuth(cfg.AuthService)

	// Create rate limit middleware for different endpoint categories
	authRateLimit := middleware.RateLimitByIP(middleware.AuthRateLimit)           // 10 req/min
	expensiveRateLimit := middleware.RateLimitByIP(middleware.ExpensiveRateLimit) // 30 req/min
	standardRateLimit := middleware.RateLimitByIP(middleware.StandardRateLimit)   // 100 req/min

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		// Auth endpoints (public) - strict rate limiting
		r.Route("/auth", func(r chi.Router) {
			r.Use(authRateLimit) // 10 requests per minute per IP
			r.Post("/signup", authHandler.Signup)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.RefreshToken)
			r.Post("/logout", authHandler.Logout)
			// logout-all requires authentication
			r.With(authMiddleware).Post("/logout-all", authHandler.LogoutAll)
		})

		// Ops endpoints (public)
		r.Route("/ops", func(r chi.Router) {
			r.Get("/health", opsHandler.HealthCheck)
			r.Get("/ready", opsHandler.ReadinessCheck)
			// Status endpoint requires authentication
			r.With(authMiddleware).Get("/status", opsHandler.SystemStatus)
		})

		// Fare comparison - expensive compute, strict rate limiting.
		// Optional auth: authenticated comparisons land in search history.
		r.With(expensiveRateLimit, optionalAuth).Post("/fares:compare", fareHandler.CompareFares)

		r.Route("/fares", func(r chi.Router) {
			r.Use(standardRateLimit)
			r.Get("/surge", fareHandler.SurgeStatus)
			r.Post("/booking-link", fareHandler.BookingLink)
		})

		// Metadata endpoints (public) - standard rate limiting
		r.Route("/metadata", func(r chi.Router) {
			r.Use(standardRateLimit)
			r.Get("/cities", metadataHandler.ListCities)
			r.Get("/providers", metadataHandler.ListProviders)
			r.Get("/popular-routes", metadataHandler.ListPopularRoutes)
		})

		// Me endpoints (authenticated) - user-based rate limiting
		r.Route("/me", func(r chi.Router) {
			r.Use(authMiddleware)
			r.Use(middleware.RateLimitByUser(middleware.StandardRateLimit)) // 100 req/min per user
			r.Get("/", meHandler.GetMe)
			r.Put("/", meHandler.UpdateMe)

			// Search history
			r.Route("/searches", func(r chi.Router) {
				r.Get("/", searchHandler.ListSearches)
				r.Delete("/", searchHandler.ClearSearches)
				r.Delete("/{searchId}", searchHandler.DeleteSearch)
			})

			// Saved routes
			r.Route("/routes", func(r chi.Router) {
				r.Get("/", routeHandler.ListRoutes)
				r.Post("/", routeHandler.CreateRoute)
				r.Route("/{routeId}", func(r chi.Router) {
					r.Get("/", routeHandler.GetRoute)
					r.Put("/", routeHandler.UpdateRoute)
					r.Delete("/", routeHandler.DeleteRoute)
				})
			})
		})

		// Admin endpoints (authenticated) - for internal operations
		r.Route("/admin", func(r chi.Router) {
			r.Use(authMiddleware)
			r.Use(standardRateLimit)

			// Feature flags management
			r.Route("/feature-flags", func(r chi.Router) {
				r.Get("/", featureFlagsHandler.ListFeatureFlags)
				r.Put("/", featureFlagsHandler.UpsertFeatureFlags)
				r.Post("/invalidate", featureFlagsHandler.InvalidateCache)
			})
		})
	})

	return r
}
