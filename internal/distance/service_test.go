package distance_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faredeck/faredeck/internal/distance"
)

type fakeProvider struct {
	calls    int32
	estimate *distance.Estimate
	err      error
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Estimate(_ context.Context, _, _ string) (*distance.Estimate, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.err != nil {
		return nil, f.err
	}
	out := *f.estimate
	return &out, nil
}

func TestService_ResolveUsesProvider(t *testing.T) {
	provider := &fakeProvider{estimate: &distance.Estimate{
		DistanceKm:  148.2,
		DurationMin: 175,
		Source:      distance.SourceProvider,
	}}
	svc := distance.NewService(distance.ServiceConfig{
		Provider: provider,
		Logger:   zerolog.Nop(),
	})

	est, err := svc.Resolve(context.Background(), "Mumbai", "Pune")
	require.NoError(t, err)
	assert.Equal(t, 148.2, est.DistanceKm)
	assert.Equal(t, 175, est.DurationMin)
	assert.Equal(t, distance.SourceProvider, est.Source)
}

func TestService_ResolveCachesByNormalizedRoute(t *testing.T) {
	provider := &fakeProvider{estimate: &distance.Estimate{
		DistanceKm:  25,
		DurationMin: 40,
		Source:      distance.SourceProvider,
	}}
	svc := distance.NewService(distance.ServiceConfig{
		Provider: provider,
		Logger:   zerolog.Nop(),
	})

	_, err := svc.Resolve(context.Background(), "Delhi", "Noida")
	require.NoError(t, err)

	est, err := svc.Resolve(context.Background(), "  DELHI ", "noida")
	require.NoError(t, err)
	assert.Equal(t, distance.SourceCache, est.Source)
	assert.Equal(t, int32(1), atomic.LoadInt32(&provider.calls))
}

func TestService_ResolveFallsBackOnProviderError(t *testing.T) {
	provider := &fakeProvider{err: errors.New("quota exceeded")}
	svc := distance.NewService(distance.ServiceConfig{
		Provider: provider,
		Logger:   zerolog.Nop(),
	})

	est, err := svc.Resolve(context.Background(), "Mumbai", "Pune")
	require.NoError(t, err)
	assert.Equal(t, distance.SourceFallback, est.Source)
	assert.GreaterOrEqual(t, est.DistanceKm, 5.0)
	assert.LessOrEqual(t, est.DistanceKm, 55.0)
}

func TestService_ResolveServesStaleOnProviderError(t *testing.T) {
	provider := &fakeProvider{estimate: &distance.Estimate{
		DistanceKm:  18,
		DurationMin: 35,
		Source:      distance.SourceProvider,
	}}
	svc := distance.NewService(distance.ServiceConfig{
		Provider: provider,
		Logger:   zerolog.Nop(),
		CacheTTL: time.Nanosecond,
	})

	_, err := svc.Resolve(context.Background(), "Chennai", "Pondicherry")
	require.NoError(t, err)
	time.Sleep(time.Millisecond)

	provider.err = errors.New("provider down")
	est, err := svc.Resolve(context.Background(), "Chennai", "Pondicherry")
	require.NoError(t, err)
	assert.Equal(t, distance.SourceCache, est.Source)
	assert.Equal(t, 18.0, est.DistanceKm)
}

func TestService_ResolveWithoutProvider(t *testing.T) {
	svc := distance.NewService(distance.ServiceConfig{Logger: zerolog.Nop()})

	est, err := svc.Resolve(context.Background(), "Bangalore", "Mysore")
	require.NoError(t, err)
	assert.Equal(t, distance.SourceFallback, est.Source)
}

func TestService_ResolveRejectsBlankLocations(t *testing.T) {
	svc := distance.NewService(distance.ServiceConfig{Logger: zerolog.Nop()})

	_, err := svc.Resolve(context.Background(), "  ", "Pune")
	assert.ErrorIs(t, err, distance.ErrMissingLocation)

	_, err = svc.Resolve(context.Background(), "Mumbai", "")
	assert.ErrorIs(t, err, distance.ErrMissingLocation)
}

func TestService_Stats(t *testing.T) {
	provider := &fakeProvider{estimate: &distance.Estimate{
		DistanceKm:  10,
		DurationMin: 25,
		Source:      distance.SourceProvider,
	}}
	svc := distance.NewService(distance.ServiceConfig{
		Provider: provider,
		Logger:   zerolog.Nop(),
	})

	require.NoError(t, svc.Warm(context.Background(), "Mumbai", "Pune"))

	stats := svc.Stats()
	assert.Equal(t, 1, stats.TotalEntries)
	assert.Equal(t, 1, stats.FreshEntries)
	assert.Equal(t, "fake", stats.Provider)
}
