// Package main provides the entrypoint for the FareDeck maintenance worker.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/faredeck/faredeck/internal/database"
	"github.com/faredeck/faredeck/internal/distance"
	"github.com/faredeck/faredeck/internal/distance/googlemaps"
	"github.com/faredeck/faredeck/internal/provider/resilience"
	"github.com/faredeck/faredeck/internal/search"
	"github.com/faredeck/faredeck/internal/worker"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "faredeck-worker"

	// Setup structured logging
	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting FareDeck worker")

	// Worker also exposes a health endpoint for Cloud Run
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Connect to database for history pruning
	dbConfig := database.ConfigFromEnv()
	pool, err := database.Connect(ctx, dbConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	log.Info().
		Str("host", dbConfig.Host).
		Str("database", dbConfig.Database).
		Msg("database connected")

	searchService := search.NewService(search.NewPostgresRepository(pool), log)

	// Distance resolution for cache warming
	registry := resilience.NewRegistry()
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
		log.Warn().Msg("GOOGLE_MAPS_API_KEY not set - warming uses the deterministic fallback")
	}

	distanceService := distance.NewService(distance.ServiceConfig{
		Provider: distanceProvider,
		Logger:   log,
	})

	maintenanceJob := worker.NewMaintenanceJob(worker.MaintenanceJobConfig{
		Config:          worker.DefaultMaintenanceConfig(),
		Logger:          log,
		SearchService:   searchService,
		DistanceService: distanceService,
	})

	// Health check server
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status":"healthy","version":"%s"}`, Version)
	})

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("health check server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("health server error")
		}
	}()

	// Pub/Sub driven when configured, interval driven otherwise
	projectID := os.Getenv("PUBSUB_PROJECT_ID")
	subscription := os.Getenv("PUBSUB_SUBSCRIPTION")

	if projectID != "" && subscription != "" {
		pubsubHandler, psErr := worker.NewPubSubHandler(ctx, worker.PubSubConfig{
			ProjectID:        projectID,
			SubscriptionName: subscription,
			MaintenanceJob:   maintenanceJob,
			Logger:           log,
		})
		if psErr != nil {
			log.Fatal().Err(psErr).Msg("failed to create pubsub handler")
		}
		defer pubsubHandler.Close()

		go func() {
			if receiveErr := pubsubHandler.Start(ctx); receiveErr != nil {
				log.Error().Err(receiveErr).Msg("pubsub receive stopped")
			}
		}()
		log.Info().
			Str("project", projectID).
			Str("subscription", subscription).
			Msg("worker listening for jobs")
	} else {
		interval := 6 * time.Hour
		if raw := os.Getenv("MAINTENANCE_INTERVAL"); raw != "" {
			if parsed, parseErr := time.ParseDuration(raw); parseErr == nil {
				interval = parsed
			}
		}

		go func() {
			log.Info().Dur("interval", interval).Msg("worker running on interval")
			ticker := time.NewTicker(interval)
			defer ticker.Stop()

			maintenanceJob.Run(ctx)
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					maintenanceJob.Run(ctx)
				}
			}
		}()
	}

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down worker")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("health server forced to shutdown")
	}

	log.Info().Msg("worker stopped")
}
