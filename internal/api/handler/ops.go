// Package handler provides HTTP handlers for the FareDeck API.
package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/faredeck/faredeck/internal/api/models"
	"github.com/faredeck/faredeck/internal/api/response"
	"github.com/faredeck/faredeck/internal/distance"
	"github.com/faredeck/faredeck/internal/provider/resilience"
)

// Pinger checks connectivity to a backing store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// OpsConfig holds the dependencies surfaced by the ops endpoints. All fields
// are optional; absent subsystems are simply not reported.
type OpsConfig struct {
	Version   string
	BuildTime string
	Database  Pinger
	Distance  *distance.Service
	Registry  *resilience.Registry
}

// OpsHandler handles operational endpoints.
type OpsHandler struct {
	version   string
	buildTime string
	database  Pinger
	distance  *distance.Service
	registry  *resilience.Registry
}

// NewOpsHandler creates a new OpsHandler.
func NewOpsHandler(cfg OpsConfig) *OpsHandler {
	return &OpsHandler{
		version:   cfg.Version,
		buildTime: cfg.BuildTime,
		database:  cfg.Database,
		distance:  cfg.Distance,
		registry:  cfg.Registry,
	}
}

// HealthCheck handles GET /v1/ops/health - liveness check.
func (h *OpsHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
		Details: map[string]interface{}{
			"version":   h.version,
			"buildTime": h.buildTime,
		},
	}
	response.JSON(w, r, http.StatusOK, health)
}

// ReadinessCheck handles GET /v1/ops/ready - readiness check. Fails when the
// database is unreachable.
func (h *OpsHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	status := models.HealthStatusOK
	code := http.StatusOK

	if h.database != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.database.Ping(ctx); err != nil {
			status = models.HealthStatusFail
			code = http.StatusServiceUnavailable
		}
	}

	health := models.Health{
		Status: status,
		Time:   models.Timestamp(time.Now()),
	}
	response.JSON(w, r, code, health)
}

// SystemStatus handles GET /v1/ops/status - provider and subsystem status.
func (h *OpsHandler) SystemStatus(w http.ResponseWriter, r *http.Request) {
	now := models.Timestamp(time.Now())
	overall := models.HealthStatusOK

	var subsystems []models.SubsystemStatus
	if h.database != nil {
		dbStatus := models.HealthStatusOK
		var detail *string
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		if err := h.database.Ping(ctx); err != nil {
			dbStatus = models.HealthStatusFail
			overall = models.HealthStatusDegraded
			msg := err.Error()
			detail = &msg
		}
		cancel()
		subsystems = append(subsystems, models.SubsystemStatus{
			Name: "postgres", Status: dbStatus, Detail: detail,
		})
	}

	if h.distance != nil {
		stats := h.distance.Stats()
		detail := fmt.Sprintf("%d cached routes (%d fresh), provider %s",
			stats.TotalEntries, stats.FreshEntries, stats.Provider)
		subsystems = append(subsystems, models.SubsystemStatus{
			Name: "distance-cache", Status: models.HealthStatusOK, Detail: &detail,
		})
	}

	var providers []models.ProviderStatus
	if h.registry != nil {
		for _, ph := range h.registry.AllHealth() {
			providers = append(providers, toProviderStatus(ph))
			if !ph.Healthy() {
				overall = models.HealthStatusDegraded
			}
		}
	}

	status := models.SystemStatus{
		Status:     overall,
		Time:       now,
		Subsystems: subsystems,
		Providers:  providers,
	}
	response.JSON(w, r, http.StatusOK, status)
}

func toProviderStatus(ph resilience.ProviderHealth) models.ProviderStatus {
	status := models.HealthStatusOK
	switch {
	case ph.Degraded():
		status = models.HealthStatusDegraded
	case !ph.Healthy():
		status = models.HealthStatusFail
	}

	out := models.ProviderStatus{
		Provider: ph.Name,
		Status:   status,
	}
	if ph.LastSuccessAt != nil {
		ts := models.Timestamp(*ph.LastSuccessAt)
		out.LastSuccessAt = &ts
	}
	if ph.LastFailureAt != nil {
		ts := models.Timestamp(*ph.LastFailureAt)
		out.LastFailureAt = &ts
	}
	if ph.LastError != "" {
		msg := ph.LastError
		out.Message = &msg
	}
	return out
}
