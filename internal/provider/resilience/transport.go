// Package resilience wraps outbound HTTP with a circuit breaker and
// exponential-backoff retries. It is shaped as an http.RoundTripper so it can
// sit underneath SDK clients (such as the Google Maps client) that only
// accept an *http.Client.
package resilience

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sony/gobreaker/v2"
)

// Predefined transport errors.
var (
	// ErrCircuitOpen is returned when the circuit breaker refuses the call.
	ErrCircuitOpen = errors.New("circuit breaker is open")
)

// ServerError marks an HTTP 5xx response so the breaker and retry loop treat
// it as a failure.
type ServerError struct {
	StatusCode int
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error: HTTP %d", e.StatusCode)
}

// TransportConfig holds configuration for the resilient transport.
type TransportConfig struct {
	// Name identifies the wrapped provider for breaker naming and health
	// tracking.
	Name string

	// Base is the underlying RoundTripper. Defaults to
	// http.DefaultTransport.
	Base http.RoundTripper

	// MaxRetries is the number of retry attempts after the first call.
	// Default: 3.
	MaxRetries uint64

	// InitialInterval is the first retry backoff delay. Default: 100ms.
	InitialInterval time.Duration

	// MaxInterval caps the backoff delay. Default: 5s.
	MaxInterval time.Duration

	// BreakerTimeout is how long the breaker stays open before probing.
	// Default: 60s.
	BreakerTimeout time.Duration

	// Registry receives success/failure records. Optional.
	Registry *Registry
}

// Transport is an http.RoundTripper with circuit breaking and retries.
type Transport struct {
	name     string
	base     http.RoundTripper
	breaker  *gobreaker.CircuitBreaker[*http.Response]
	config   TransportConfig
	registry *Registry
}

// NewTransport creates a resilient transport.
func NewTransport(cfg TransportConfig) *Transport {
	if cfg.Base == nil {
		cfg.Base = http.DefaultTransport
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}
	if cfg.InitialInterval == 0 {
		cfg.InitialInterval = 100 * time.Millisecond
	}
	if cfg.MaxInterval == 0 {
		cfg.MaxInterval = 5 * time.Second
	}
	if cfg.BreakerTimeout == 0 {
		cfg.BreakerTimeout = 60 * time.Second
	}

	breaker := gobreaker.NewCircuitBreaker[*http.Response](gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: 1,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 5 && ratio >= 0.5
		},
	})

	t := &Transport{
		name:     cfg.Name,
		base:     cfg.Base,
		breaker:  breaker,
		config:   cfg,
		registry: cfg.Registry,
	}
	if cfg.Registry != nil {
		cfg.Registry.Register(cfg.Name, t)
	}
	return t
}

// RoundTrip executes the request with breaker protection, retrying network
// failures and 5xx responses with exponential backoff. 4xx responses are
// returned as-is without retries.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = t.config.InitialInterval
	bo.MaxInterval = t.config.MaxInterval
	bo.MaxElapsedTime = 0

	policy := backoff.WithContext(backoff.WithMaxRetries(bo, t.config.MaxRetries), req.Context())

	var lastResp *http.Response

	operation := func() error {
		resp, err := t.breaker.Execute(func() (*http.Response, error) {
			r, err := t.base.RoundTrip(req.Clone(req.Context()))
			if err != nil {
				return nil, err
			}
			if r.StatusCode >= 500 {
				return r, &ServerError{StatusCode: r.StatusCode}
			}
			return r, nil
		})

		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
				return backoff.Permanent(ErrCircuitOpen)
			}
			if resp != nil {
				lastResp = resp
			}
			return err
		}

		lastResp = resp
		return nil
	}

	err := backoff.Retry(operation, policy)
	t.record(err)
	if err != nil {
		// A 5xx that exhausted retries still carries a usable response.
		if lastResp != nil {
			return lastResp, nil
		}
		return nil, err
	}

	return lastResp, nil
}

// State returns the current circuit breaker state.
func (t *Transport) State() gobreaker.State {
	return t.breaker.State()
}

// Counts returns circuit breaker statistics.
func (t *Transport) Counts() gobreaker.Counts {
	return t.breaker.Counts()
}

func (t *Transport) record(err error) {
	if t.registry == nil {
		return
	}
	if err != nil {
		t.registry.RecordFailure(t.name, err)
		return
	}
	t.registry.RecordSuccess(t.name)
}

// NewHTTPClient returns an *http.Client backed by a resilient transport,
// suitable for handing to SDK constructors.
func NewHTTPClient(cfg TransportConfig, timeout time.Duration) *http.Client {
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &http.Client{
		Transport: NewTransport(cfg),
		Timeout:   timeout,
	}
}
