// Package googlemaps provides a distance provider backed by the Google Maps
// Distance Matrix API.
package googlemaps

import (
	"context"
	"math"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"googlemaps.github.io/maps"

	"github.com/faredeck/faredeck/internal/distance"
	"github.com/faredeck/faredeck/internal/provider/resilience"
)

// ProviderName identifies this distance provider.
const ProviderName = "googlemaps"

// DefaultTimeout is the default request timeout.
const DefaultTimeout = 10 * time.Second

// ClientConfig holds configuration for the Google Maps client.
type ClientConfig struct {
	// APIKey is the Maps Platform server key (required).
	APIKey string

	// BaseURL overrides the API endpoint, for tests.
	BaseURL string

	// HTTPClient overrides the HTTP client. If nil, a resilient client with
	// retry and circuit breaking is used.
	HTTPClient *http.Client

	// Timeout is the request timeout (default: 10s).
	Timeout time.Duration

	// Registry tracks provider health (optional).
	Registry *resilience.Registry

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client resolves distances via the Distance Matrix API.
type Client struct {
	maps   *maps.Client
	logger zerolog.Logger
}

// NewClient creates a Google Maps distance client.
func NewClient(cfg ClientConfig) (*Client, error) {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = resilience.NewHTTPClient(resilience.TransportConfig{
			Name:     ProviderName,
			Registry: cfg.Registry,
		}, timeout)
	}

	opts := []maps.ClientOption{
		maps.WithAPIKey(cfg.APIKey),
		maps.WithHTTPClient(httpClient),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, maps.WithBaseURL(cfg.BaseURL))
	}

	client, err := maps.NewClient(opts...)
	if err != nil {
		return nil, err
	}

	return &Client{maps: client, logger: cfg.Logger}, nil
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

// Estimate returns the driving distance and duration between two free-text
// locations.
func (c *Client) Estimate(ctx context.Context, origin, destination string) (*distance.Estimate, error) {
	req := &maps.DistanceMatrixRequest{
		Origins:      []string{origin},
		Destinations: []string{destination},
		Mode:         maps.TravelModeDriving,
		Units:        maps.UnitsMetric,
	}

	resp, err := c.maps.DistanceMatrix(ctx, req)
	if err != nil {
		return nil, &distance.Error{
			Provider: ProviderName,
			Code:     "REQUEST_FAILED",
			Message:  "failed to reach distance provider",
			Err:      err,
		}
	}

	if len(resp.Rows) == 0 || len(resp.Rows[0].Elements) == 0 {
		return nil, &distance.Error{
			Provider: ProviderName,
			Code:     "NO_ROUTE",
			Message:  "no route data returned",
		}
	}

	element := resp.Rows[0].Elements[0]
	if element.Status != "OK" {
		return nil, &distance.Error{
			Provider: ProviderName,
			Code:     element.Status,
			Message:  "route element not resolvable",
		}
	}

	distanceKm := math.Round(float64(element.Distance.Meters)/1000*100) / 100
	durationMin := int(math.Round(element.Duration.Minutes()))

	c.logger.Debug().
		Str("origin", origin).
		Str("destination", destination).
		Float64("distance_km", distanceKm).
		Int("duration_min", durationMin).
		Msg("resolved route via distance matrix")

	return &distance.Estimate{
		DistanceKm:  distanceKm,
		DurationMin: durationMin,
		Source:      distance.SourceProvider,
	}, nil
}
