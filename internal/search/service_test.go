package search_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faredeck/faredeck/internal/fare"
	"github.com/faredeck/faredeck/internal/search"
)

func testOptions() []fare.RideOption {
	return []fare.RideOption{
		{Service: fare.ProviderRapido, Type: "Rapido Bike", Price: 95, Category: fare.CategoryBike},
		{Service: fare.ProviderOla, Type: "Ola Mini", Price: 180, Category: fare.CategoryCab},
		{Service: fare.ProviderUber, Type: "UberGo", Price: 195, Category: fare.CategoryCab},
	}
}

func newTestService() (*search.Service, *search.InMemoryRepository) {
	repo := search.NewInMemoryRepository()
	return search.NewService(repo, zerolog.Nop()), repo
}

func record(t *testing.T, svc *search.Service, userID string) *search.Search {
	t.Helper()
	s, err := svc.Record(context.Background(), &search.RecordInput{
		UserID:         userID,
		Pickup:         "Mumbai",
		Destination:    "Pune",
		DistanceKm:     148,
		DurationMin:    197,
		DistanceSource: "fallback",
		Options:        testOptions(),
	})
	require.NoError(t, err)
	require.NotNil(t, s)
	return s
}

func TestService_RecordSnapshotsCheapestOption(t *testing.T) {
	svc, _ := newTestService()

	s := record(t, svc, "usr_1")
	assert.Equal(t, 95, s.CheapestPrice)
	assert.Equal(t, fare.ProviderRapido, s.CheapestService)
	assert.Equal(t, 3, s.OptionCount)
	assert.NotEmpty(t, s.ID)
}

func TestService_RecordSkipsAnonymousAndEmpty(t *testing.T) {
	svc, _ := newTestService()

	s, err := svc.Record(context.Background(), &search.RecordInput{
		Pickup:      "Mumbai",
		Destination: "Pune",
		Options:     testOptions(),
	})
	require.NoError(t, err)
	assert.Nil(t, s)

	s, err = svc.Record(context.Background(), &search.RecordInput{
		UserID:      "usr_1",
		Pickup:      "Mumbai",
		Destination: "Pune",
	})
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestService_ListNewestFirst(t *testing.T) {
	svc, repo := newTestService()

	now := time.Now()
	for i, id := range []string{"sch_old", "sch_mid", "sch_new"} {
		require.NoError(t, repo.Create(context.Background(), &search.Search{
			ID:         id,
			UserID:     "usr_1",
			Pickup:     "Mumbai",
			SearchedAt: now.Add(time.Duration(i) * time.Minute),
		}))
	}

	result, err := svc.List(context.Background(), "usr_1", 10)
	require.NoError(t, err)
	require.Len(t, result.Items, 3)
	assert.Equal(t, "sch_new", result.Items[0].ID)
	assert.Equal(t, "sch_old", result.Items[2].ID)
}

func TestService_ListPagination(t *testing.T) {
	svc, _ := newTestService()

	for i := 0; i < 5; i++ {
		record(t, svc, "usr_1")
	}

	result, err := svc.List(context.Background(), "usr_1", 3)
	require.NoError(t, err)
	assert.Len(t, result.Items, 3)
	assert.NotEmpty(t, result.NextCursor)
}

func TestService_DeleteEnforcesOwnership(t *testing.T) {
	svc, _ := newTestService()

	s := record(t, svc, "usr_1")

	err := svc.Delete(context.Background(), "usr_2", s.ID)
	assert.ErrorIs(t, err, search.ErrSearchNotFound)

	require.NoError(t, svc.Delete(context.Background(), "usr_1", s.ID))

	result, err := svc.List(context.Background(), "usr_1", 10)
	require.NoError(t, err)
	assert.Empty(t, result.Items)
}

func TestService_Clear(t *testing.T) {
	svc, _ := newTestService()

	record(t, svc, "usr_1")
	record(t, svc, "usr_1")
	record(t, svc, "usr_2")

	require.NoError(t, svc.Clear(context.Background(), "usr_1"))

	mine, err := svc.List(context.Background(), "usr_1", 10)
	require.NoError(t, err)
	assert.Empty(t, mine.Items)

	theirs, err := svc.List(context.Background(), "usr_2", 10)
	require.NoError(t, err)
	assert.Len(t, theirs.Items, 1)
}

func TestService_PruneRemovesOnlyExpired(t *testing.T) {
	svc, repo := newTestService()

	require.NoError(t, repo.Create(context.Background(), &search.Search{
		ID:         "sch_ancient",
		UserID:     "usr_1",
		SearchedAt: time.Now().Add(-100 * 24 * time.Hour),
	}))
	record(t, svc, "usr_1")

	removed, err := svc.Prune(context.Background(), 90*24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	result, err := svc.List(context.Background(), "usr_1", 10)
	require.NoError(t, err)
	assert.Len(t, result.Items, 1)
}
