package worker

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/faredeck/faredeck/internal/distance"
	"github.com/faredeck/faredeck/internal/search"
)

// MaintenanceJob prunes stale search history and pre-warms the distance
// cache for popular routes.
type MaintenanceJob struct {
	config MaintenanceConfig
	logger zerolog.Logger

	// Services (optional, nil if not configured)
	searchService   *search.Service
	distanceService *distance.Service

	metrics *MaintenanceMetrics
}

// MaintenanceMetrics tracks maintenance job statistics.
type MaintenanceMetrics struct {
	mu sync.RWMutex

	TotalRuns     int64
	PrunedTotal   int64
	WarmedTotal   int64
	FailedWarms   int64
	LastRunAt     time.Time
	LastDuration  time.Duration
	TotalDuration time.Duration
}

// MaintenanceJobConfig holds configuration for creating a MaintenanceJob.
type MaintenanceJobConfig struct {
	Config          MaintenanceConfig
	Logger          zerolog.Logger
	SearchService   *search.Service
	DistanceService *distance.Service
}

// NewMaintenanceJob creates a new maintenance job processor.
func NewMaintenanceJob(cfg MaintenanceJobConfig) *MaintenanceJob {
	config := cfg.Config
	if config.Retention == 0 && len(config.WarmTargets) == 0 {
		config = DefaultMaintenanceConfig()
	}
	if config.Concurrency == 0 {
		config.Concurrency = 3
	}
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}

	return &MaintenanceJob{
		config:          config,
		logger:          cfg.Logger,
		searchService:   cfg.SearchService,
		distanceService: cfg.DistanceService,
		metrics:         &MaintenanceMetrics{},
	}
}

// MaintenanceResult contains the result of one maintenance run.
type MaintenanceResult struct {
	StartTime    time.Time
	EndTime      time.Time
	Duration     time.Duration
	Pruned       int64
	WarmTargets  int
	Warmed       int
	FailedWarms  int
	Errors       []WarmError
	PruneError   string
	PruneSkipped bool
}

// WarmError represents a failed cache warm for one route.
type WarmError struct {
	Target WarmTarget
	Error  string
}

// Run executes one maintenance pass: prune first, then warm.
func (j *MaintenanceJob) Run(ctx context.Context) *MaintenanceResult {
	startTime := time.Now()
	result := &MaintenanceResult{
		StartTime:   startTime,
		WarmTargets: len(j.config.WarmTargets),
	}

	j.logger.Info().
		Int("warm_targets", result.WarmTargets).
		Int("concurrency", j.config.Concurrency).
		Msg("starting maintenance job")

	j.prune(ctx, result)
	j.warm(ctx, result)

	result.EndTime = time.Now()
	result.Duration = result.EndTime.Sub(startTime)

	j.updateMetrics(result)

	j.logger.Info().
		Dur("duration", result.Duration).
		Int64("pruned", result.Pruned).
		Int("warmed", result.Warmed).
		Int("failed_warms", result.FailedWarms).
		Msg("maintenance job completed")

	return result
}

func (j *MaintenanceJob) prune(ctx context.Context, result *MaintenanceResult) {
	if !j.config.PruneHistory || j.searchService == nil {
		result.PruneSkipped = true
		return
	}

	pruned, err := j.searchService.Prune(ctx, j.config.Retention)
	if err != nil {
		j.logger.Error().Err(err).Msg("search history prune failed")
		result.PruneError = err.Error()
		return
	}
	result.Pruned = pruned
}

func (j *MaintenanceJob) warm(ctx context.Context, result *MaintenanceResult) {
	if !j.config.WarmDistanceCache || j.distanceService == nil || len(j.config.WarmTargets) == 0 {
		return
	}

	targetsChan := make(chan WarmTarget, len(j.config.WarmTargets))
	resultsChan := make(chan warmResult, len(j.config.WarmTargets))

	var wg sync.WaitGroup
	for i := 0; i < j.config.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			j.warmWorker(ctx, targetsChan, resultsChan)
		}()
	}

	for _, t := range j.config.WarmTargets {
		targetsChan <- t
	}
	close(targetsChan)

	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	for wr := range resultsChan {
		if wr.err == nil {
			result.Warmed++
			continue
		}
		result.FailedWarms++
		result.Errors = append(result.Errors, WarmError{
			Target: wr.target,
			Error:  wr.err.Error(),
		})
	}
}

type warmResult struct {
	target WarmTarget
	err    error
}

func (j *MaintenanceJob) warmWorker(ctx context.Context, targets <-chan WarmTarget, results chan<- warmResult) {
	for target := range targets {
		select {
		case <-ctx.Done():
			return
		default:
			targetCtx, cancel := context.WithTimeout(ctx, j.config.Timeout)
			err := j.distanceService.Warm(targetCtx, target.Pickup, target.Destination)
			cancel()
			results <- warmResult{target: target, err: err}
		}
	}
}

func (j *MaintenanceJob) updateMetrics(result *MaintenanceResult) {
	j.metrics.mu.Lock()
	defer j.metrics.mu.Unlock()

	j.metrics.TotalRuns++
	j.metrics.PrunedTotal += result.Pruned
	j.metrics.WarmedTotal += int64(result.Warmed)
	j.metrics.FailedWarms += int64(result.FailedWarms)
	j.metrics.LastRunAt = result.EndTime
	j.metrics.LastDuration = result.Duration
	j.metrics.TotalDuration += result.Duration
}

// GetMetrics returns a copy of the current metrics.
func (j *MaintenanceJob) GetMetrics() MaintenanceMetrics {
	j.metrics.mu.RLock()
	defer j.metrics.mu.RUnlock()

	return MaintenanceMetrics{
		TotalRuns:     j.metrics.TotalRuns,
		PrunedTotal:   j.metrics.PrunedTotal,
		WarmedTotal:   j.metrics.WarmedTotal,
		FailedWarms:   j.metrics.FailedWarms,
		LastRunAt:     j.metrics.LastRunAt,
		LastDuration:  j.metrics.LastDuration,
		TotalDuration: j.metrics.TotalDuration,
	}
}

// MetricsSnapshot returns a snapshot of the current metrics as a map.
func (j *MaintenanceJob) MetricsSnapshot() map[string]interface{} {
	m := j.GetMetrics()
	return map[string]interface{}{
		"total_runs":        m.TotalRuns,
		"pruned_total":      m.PrunedTotal,
		"warmed_total":      m.WarmedTotal,
		"failed_warms":      m.FailedWarms,
		"last_run_at":       m.LastRunAt,
		"last_run_duration": m.LastDuration.String(),
		"total_duration":    m.TotalDuration.String(),
	}
}
