package fare_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faredeck/faredeck/internal/fare"
)

// fixedClock returns an engine pinned to the given hour on a fixed date.
func fixedClock(hour int) func() time.Time {
	return func() time.Time {
		return time.Date(2025, 1, 15, hour, 30, 0, 0, time.UTC)
	}
}

func newEngineAt(hour int) *fare.Engine {
	return fare.NewEngine(fare.EngineConfig{Clock: fixedClock(hour)})
}

func TestCalculateAllFares_Deterministic(t *testing.T) {
	engine := newEngineAt(14)

	first, err := engine.CalculateAllFares(12.5, "Mumbai Central", "Andheri, Mumbai", 0)
	require.NoError(t, err)

	second, err := engine.CalculateAllFares(12.5, "Mumbai Central", "Andheri, Mumbai", 0)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCalculateAllFares_RankingInvariant(t *testing.T) {
	engine := newEngineAt(14)

	rides, err := engine.CalculateAllFares(10, "Mumbai", "Pune", 0)
	require.NoError(t, err)
	require.NotEmpty(t, rides)

	assert.Equal(t, 0, rides[0].Savings, "cheapest option must have zero savings")

	cheapest := rides[0].Price
	for i, ride := range rides {
		if i > 0 {
			assert.GreaterOrEqual(t, ride.Price, rides[i-1].Price, "list must be sorted by price")
		}
		want := int(math.Round(float64(ride.Price-cheapest) / float64(cheapest) * 100))
		assert.Equal(t, want, ride.Savings, "savings for %s %s", ride.Service, ride.Type)
		assert.GreaterOrEqual(t, ride.Savings, 0)
	}
}

func TestCalculateAllFares_MumbaiPuneScenario(t *testing.T) {
	engine := newEngineAt(14)

	rides, err := engine.CalculateAllFares(10, "Mumbai", "Pune", 0)
	require.NoError(t, err)
	require.NotEmpty(t, rides)

	var foundUberGo, foundRapidoAuto bool
	for _, ride := range rides {
		if ride.Service == fare.ProviderUber && ride.Type == "UberGo" {
			foundUberGo = true
		}
		if ride.Service == fare.ProviderRapido && ride.Type == "Rapido Auto" {
			foundRapidoAuto = true
		}
	}
	assert.True(t, foundUberGo, "expected an Uber/UberGo entry")
	assert.True(t, foundRapidoAuto, "expected a Rapido/Rapido Auto entry")
	assert.Equal(t, 0, rides[0].Savings)
}

func TestCalculateAllFares_AvailabilityGating(t *testing.T) {
	engine := newEngineAt(14)

	t.Run("no bike or auto at 30km", func(t *testing.T) {
		rides, err := engine.CalculateAllFares(30, "Mumbai", "Pune", 0)
		require.NoError(t, err)
		for _, ride := range rides {
			assert.NotEqual(t, fare.CategoryBike, ride.Category, "%s %s", ride.Service, ride.Type)
			assert.NotEqual(t, fare.CategoryAuto, ride.Category, "%s %s", ride.Service, ride.Type)
		}
	})

	t.Run("economy cab survives 40km", func(t *testing.T) {
		rides, err := engine.CalculateAllFares(40, "Pune", "Mumbai", 0)
		require.NoError(t, err)

		var economyCab bool
		for _, ride := range rides {
			assert.NotEqual(t, fare.CategoryBike, ride.Category)
			assert.NotEqual(t, fare.CategoryAuto, ride.Category)
			if ride.Type == "Rapido Cab Economy" {
				economyCab = true
			}
		}
		assert.True(t, economyCab, "Rapido Cab Economy should still be offered at 40km")
	})

	t.Run("economy cab absent past 50km", func(t *testing.T) {
		rides, err := engine.CalculateAllFares(80, "Delhi", "Noida", 0)
		require.NoError(t, err)
		for _, ride := range rides {
			assert.NotEqual(t, "Rapido Cab Economy", ride.Type)
		}
	})

	t.Run("no bikes outside supported cities", func(t *testing.T) {
		rides, err := engine.CalculateAllFares(8, "Bhopal", "Indore", 0)
		require.NoError(t, err)
		require.NotEmpty(t, rides)
		for _, ride := range rides {
			assert.NotEqual(t, fare.CategoryBike, ride.Category, "%s %s", ride.Service, ride.Type)
		}
	})

	t.Run("bikes offered in metro pickup", func(t *testing.T) {
		rides, err := engine.CalculateAllFares(8, "Bangalore", "Whitefield, Bangalore", 0)
		require.NoError(t, err)

		var bikes int
		for _, ride := range rides {
			if ride.Category == fare.CategoryBike {
				bikes++
			}
		}
		assert.Equal(t, 3, bikes, "Uber Moto, Ola Bike and Rapido Bike expected")
	})
}

func TestCalculateAllFares_RapidoAutoNeverAboveCab(t *testing.T) {
	engine := newEngineAt(14)

	distances := []float64{1, 3, 5, 10, 15, 20, 25}
	cities := [][2]string{
		{"Mumbai", "Mumbai"},
		{"Bhopal", "Bhopal"},
		{"Delhi", "Gurgaon"},
		{"Somewhere", "Nowhere"},
	}

	for _, d := range distances {
		for _, c := range cities {
			rides, err := engine.CalculateAllFares(d, c[0], c[1], 0)
			require.NoError(t, err)

			autoPrice, cabPrice := 0, 0
			for _, ride := range rides {
				switch ride.Type {
				case "Rapido Auto":
					autoPrice = ride.Price
				case "Rapido Cab Economy":
					cabPrice = ride.Price
				}
			}
			if autoPrice > 0 && cabPrice > 0 {
				assert.LessOrEqual(t, autoPrice, cabPrice,
					"distance %.0f %s->%s", d, c[0], c[1])
			}
		}
	}
}

func TestCalculateAllFares_MinimumFarePrices(t *testing.T) {
	engine := newEngineAt(14)

	// At a near-zero distance every tier should be floored well above zero.
	rides, err := engine.CalculateAllFares(0.1, "Pune", "Pune", 0)
	require.NoError(t, err)
	require.NotEmpty(t, rides)

	for _, ride := range rides {
		assert.Greater(t, ride.Price, 15, "%s %s should be floored", ride.Service, ride.Type)
	}
}

func TestCalculateAllFares_ProvidedDurationUsedVerbatim(t *testing.T) {
	engine := newEngineAt(14)

	short, err := engine.CalculateAllFares(10, "Mumbai", "Pune", 10)
	require.NoError(t, err)
	long, err := engine.CalculateAllFares(10, "Mumbai", "Pune", 120)
	require.NoError(t, err)

	// Longer trips at the same distance must not be cheaper.
	assert.Greater(t, long[len(long)-1].Price, short[len(short)-1].Price)
}

func TestCalculateAllFares_LastCityMatchWins(t *testing.T) {
	engine := newEngineAt(14)

	// "delhi noida" picks up noida's multiplier (declared later), so prices
	// match a plain noida pickup, not a plain delhi one.
	mixed, err := engine.CalculateAllFares(10, "delhi noida border", "noida", 30)
	require.NoError(t, err)
	noida, err := engine.CalculateAllFares(10, "noida", "noida", 30)
	require.NoError(t, err)
	delhi, err := engine.CalculateAllFares(10, "delhi", "noida", 30)
	require.NoError(t, err)

	pick := func(rides []fare.RideOption) int {
		for _, r := range rides {
			if r.Type == "Uber XL" {
				return r.Price
			}
		}
		return -1
	}
	assert.Equal(t, pick(noida), pick(mixed))
	assert.NotEqual(t, pick(delhi), pick(mixed))
}

func TestCalculateAllFares_SurgeRaisesPrices(t *testing.T) {
	offPeak := newEngineAt(14)
	peak := newEngineAt(18)

	normal, err := offPeak.CalculateAllFares(10, "Mumbai", "Pune", 30)
	require.NoError(t, err)
	surged, err := peak.CalculateAllFares(10, "Mumbai", "Pune", 30)
	require.NoError(t, err)

	pick := func(rides []fare.RideOption, name string) int {
		for _, r := range rides {
			if r.Type == name {
				return r.Price
			}
		}
		return -1
	}

	assert.Greater(t, pick(surged, "UberGo"), pick(normal, "UberGo"))
	// Rapido quotes against a fixed factor and ignores the time surge.
	assert.Equal(t, pick(surged, "Rapido Cab Economy"), pick(normal, "Rapido Cab Economy"))
}

func TestCalculateAllFares_InvalidInput(t *testing.T) {
	engine := newEngineAt(14)

	tests := []struct {
		name     string
		distance float64
		pickup   string
		dest     string
		wantErr  error
	}{
		{"zero distance", 0, "Mumbai", "Pune", fare.ErrInvalidDistance},
		{"negative distance", -5, "Mumbai", "Pune", fare.ErrInvalidDistance},
		{"NaN distance", math.NaN(), "Mumbai", "Pune", fare.ErrInvalidDistance},
		{"infinite distance", math.Inf(1), "Mumbai", "Pune", fare.ErrInvalidDistance},
		{"empty pickup", 10, "", "Pune", fare.ErrEmptyLocation},
		{"blank destination", 10, "Mumbai", "   ", fare.ErrEmptyLocation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.CalculateAllFares(tt.distance, tt.pickup, tt.dest, 0)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCityKey(t *testing.T) {
	tests := []struct {
		location string
		want     string
	}{
		{"Mumbai Central Station", "mumbai"},
		{"HSR Layout, Bengaluru", "bengaluru"},
		{"delhi noida border", "delhi"}, // first declared match wins here
		{"Timbuktu", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, fare.CityKey(tt.location), tt.location)
	}
}

func TestETAByCategory(t *testing.T) {
	engine := newEngineAt(14)

	rides, err := engine.CalculateAllFares(9, "Mumbai", "Mumbai", 0)
	require.NoError(t, err)

	for _, ride := range rides {
		switch ride.Category {
		case fare.CategoryBike:
			assert.Equal(t, 4, ride.ETA) // max(2, round(9/3)+1)
		case fare.CategoryAuto:
			assert.Equal(t, 6, ride.ETA) // max(3, round(9/2)+1)
		case fare.CategoryCab:
			assert.Equal(t, 8, ride.ETA) // max(4, round(9/1.5)+2)
		}
	}
}
