package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cloud.google.com/go/pubsub/v2"
	"github.com/rs/zerolog"
)

// PubSubHandler handles Pub/Sub messages for the worker.
type PubSubHandler struct {
	client           *pubsub.Client
	subscriber       *pubsub.Subscriber
	subscriptionName string
	maintenanceJob   *MaintenanceJob
	logger           zerolog.Logger
}

// PubSubConfig holds configuration for the Pub/Sub handler.
type PubSubConfig struct {
	ProjectID        string
	SubscriptionName string
	MaintenanceJob   *MaintenanceJob
	Logger           zerolog.Logger
}

// JobMessage represents a maintenance job message.
type JobMessage struct {
	JobType string `json:"job_type"`
}

// NewPubSubHandler creates a new Pub/Sub handler.
func NewPubSubHandler(ctx context.Context, cfg PubSubConfig) (*PubSubHandler, error) {
	client, err := pubsub.NewClient(ctx, cfg.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("creating pubsub client: %w", err)
	}

	subscriber := client.Subscriber(cfg.SubscriptionName)

	// Configure receive settings.
	subscriber.ReceiveSettings.MaxOutstandingMessages = 10
	subscriber.ReceiveSettings.MaxExtension = 10 * time.Minute

	return &PubSubHandler{
		client:           client,
		subscriber:       subscriber,
		subscriptionName: cfg.SubscriptionName,
		maintenanceJob:   cfg.MaintenanceJob,
		logger:           cfg.Logger,
	}, nil
}

// Start begins processing Pub/Sub messages.
func (h *PubSubHandler) Start(ctx context.Context) error {
	h.logger.Info().
		Str("subscription", h.subscriptionName).
		Msg("starting pubsub handler")

	return h.subscriber.Receive(ctx, func(ctx context.Context, msg *pubsub.Message) {
		h.handleMessage(ctx, msg)
	})
}

// Close closes the Pub/Sub client.
func (h *PubSubHandler) Close() error {
	return h.client.Close()
}

func (h *PubSubHandler) handleMessage(ctx context.Context, msg *pubsub.Message) {
	startTime := time.Now()

	logger := h.logger.With().
		Str("message_id", msg.ID).
		Str("publish_time", msg.PublishTime.Format(time.RFC3339)).
		Logger()

	logger.Debug().Msg("received pubsub message")

	// Parse message.
	var jobMsg JobMessage
	if err := json.Unmarshal(msg.Data, &jobMsg); err != nil {
		logger.Error().Err(err).Msg("failed to parse message")
		msg.Nack()
		return
	}

	// Handle based on job type.
	var err error
	switch jobMsg.JobType {
	case "maintenance":
		err = h.handleMaintenance(ctx)
	case "health_check":
		err = h.handleHealthCheck(ctx)
	default:
		logger.Warn().Str("job_type", jobMsg.JobType).Msg("unknown job type")
		msg.Ack() // Ack unknown messages to prevent redelivery
		return
	}

	if err != nil {
		logger.Error().Err(err).Msg("job failed")
		msg.Nack()
		return
	}

	duration := time.Since(startTime)
	logger.Info().
		Str("job_type", jobMsg.JobType).
		Dur("duration", duration).
		Msg("job completed successfully")

	msg.Ack()
}

func (h *PubSubHandler) handleMaintenance(ctx context.Context) error {
	h.logger.Info().Msg("starting maintenance run")

	result := h.maintenanceJob.Run(ctx)

	h.logger.Info().
		Dur("duration", result.Duration).
		Int64("pruned", result.Pruned).
		Int("warmed", result.Warmed).
		Int("failed_warms", result.FailedWarms).
		Msg("maintenance run completed")

	// A failed prune means the run must be retried.
	if result.PruneError != "" {
		return fmt.Errorf("history prune failed: %s", result.PruneError)
	}

	// Warming is best-effort, but give up when most routes fail.
	if result.FailedWarms > result.Warmed {
		return fmt.Errorf("too many warm failures: %d/%d", result.FailedWarms, result.WarmTargets)
	}

	return nil
}

func (h *PubSubHandler) handleHealthCheck(ctx context.Context) error {
	h.logger.Debug().Msg("running health check")

	// Warm a single route to verify distance resolution end to end.
	healthCheckJob := NewMaintenanceJob(MaintenanceJobConfig{
		Config: MaintenanceConfig{
			WarmTargets:       []WarmTarget{{Pickup: "Mumbai", Destination: "Pune"}},
			Concurrency:       1,
			Timeout:           10 * time.Second,
			PruneHistory:      false,
			WarmDistanceCache: true,
		},
		Logger:          h.logger,
		DistanceService: h.maintenanceJob.distanceService,
	})

	result := healthCheckJob.Run(ctx)

	if result.FailedWarms > 0 {
		return fmt.Errorf("health check failed: %d errors", result.FailedWarms)
	}

	h.logger.Debug().Msg("health check passed")
	return nil
}
