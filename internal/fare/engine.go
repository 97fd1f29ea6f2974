package fare

import (
	"math"
	"sort"
	"strings"
	"time"
)

// Engine computes ride quotes. It is stateless apart from the injected clock
// and safe for concurrent use.
type Engine struct {
	clock func() time.Time
}

// EngineConfig holds configuration for the engine.
type EngineConfig struct {
	// Clock supplies the calculation instant for the time-of-day surge.
	// Defaults to time.Now. The hour is read exactly once per calculation so
	// a single quote never straddles an hour boundary.
	Clock func() time.Time
}

// NewEngine creates a fare engine.
func NewEngine(cfg EngineConfig) *Engine {
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}
	return &Engine{clock: clock}
}

// CalculateAllFares computes a quote for every available (provider, vehicle
// tier) pair and returns them sorted ascending by price, with savings
// percentages relative to the cheapest option.
//
// durationMin is the trip duration in minutes; pass 0 or less to derive it
// from the distance. The calculation is deterministic: identical inputs at
// the same wall-clock hour always produce identical output.
func (e *Engine) CalculateAllFares(distanceKm float64, pickup, destination string, durationMin int) ([]RideOption, error) {
	if distanceKm <= 0 || math.IsNaN(distanceKm) || math.IsInf(distanceKm, 0) {
		return nil, ErrInvalidDistance
	}
	if strings.TrimSpace(pickup) == "" || strings.TrimSpace(destination) == "" {
		return nil, ErrEmptyLocation
	}

	duration := durationMin
	if duration <= 0 {
		duration = EstimateDuration(distanceKm)
	}

	cityMultiplier := cityMultiplierFor(pickup, destination)
	timeSurge := surgeForHour(e.clock().Hour())

	bikeSupported := bikeCities[CityKey(pickup)]

	rides := make([]RideOption, 0, len(serviceTiers))
	rapido := map[string]int{}

	for _, tier := range serviceTiers {
		if !tierAvailable(tier, distanceKm, bikeSupported) {
			continue
		}

		raw := rawFare(tier.Config, distanceKm, duration, cityMultiplier,
			tier.Surge.apply(timeSurge), serviceAdjustment[tier.Provider])
		price := finalize(tier.Provider, raw)

		if tier.Provider == ProviderRapido {
			rapido[tier.Name] = len(rides)
		}

		rides = append(rides, RideOption{
			Service:      tier.Provider,
			ServiceLogo:  providerLogos[tier.Provider],
			ServiceColor: providerColors[tier.Provider],
			Type:         tier.Name,
			Icon:         tier.Icon,
			Price:        price,
			ETA:          etaFor(distanceKm, tier.Category),
			Category:     tier.Category,
		})
	}

	repairRapidoOrdering(rides, rapido)

	// Stable sort keeps emission order for equal prices.
	sort.SliceStable(rides, func(i, j int) bool { return rides[i].Price < rides[j].Price })

	return RecomputeSavings(rides), nil
}

// RecomputeSavings refreshes the savings percentages of an already-sorted
// option list against its cheapest entry. Call it after filtering options.
func RecomputeSavings(rides []RideOption) []RideOption {
	if len(rides) == 0 {
		return rides
	}

	cheapest := rides[0].Price
	for i := range rides {
		rides[i].Savings = int(math.Round(float64(rides[i].Price-cheapest) / float64(cheapest) * 100))
	}
	return rides
}

// tierAvailable applies the distance and city availability gates.
func tierAvailable(tier tierSpec, distanceKm float64, bikeSupported bool) bool {
	switch tier.Category {
	case CategoryBike:
		return distanceKm <= maxShortHaulKm && bikeSupported
	case CategoryAuto:
		return distanceKm <= maxShortHaulKm
	default:
		if tier.Provider == ProviderRapido && tier.Name == "Rapido Cab Economy" {
			return distanceKm <= maxEconomyCabKm
		}
		return true
	}
}

// rawFare computes the unrounded fare for one tier.
func rawFare(cfg Config, distanceKm float64, durationMin int, cityMultiplier, surge, adjust float64) float64 {
	total := (cfg.BaseFare + distanceKm*cfg.PerKmRate + float64(durationMin)*cfg.PerMinRate) *
		cityMultiplier * surge * adjust
	total += cfg.BookingFee * adjust

	if floor := cfg.MinimumFare * cityMultiplier * adjust; total < floor {
		total = floor
	}
	return total
}

// repairRapidoOrdering enforces that Rapido's auto fare never exceeds its cab
// fare. The two tiers are parameterized independently, so long high-traffic
// trips can invert the ordering a rider expects.
func repairRapidoOrdering(rides []RideOption, rapido map[string]int) {
	autoIdx, okAuto := rapido["Rapido Auto"]
	cabIdx, okCab := rapido["Rapido Cab Economy"]
	if !okAuto || !okCab {
		return
	}

	autoPrice := rides[autoIdx].Price
	cabPrice := rides[cabIdx].Price
	if autoPrice < cabPrice {
		return
	}

	corrected := cabPrice - 5
	if reduced := int(math.Ceil(float64(autoPrice) * 0.9)); reduced > corrected {
		corrected = reduced
	}
	if corrected < 1 {
		corrected = 1
	}
	rides[autoIdx].Price = corrected
}

// EstimateDuration derives trip minutes from distance using average city or
// intercity speeds. The traffic factor is fixed, not random, so repeated
// quotes for the same route agree.
func EstimateDuration(distanceKm float64) int {
	intercity := distanceKm > intercityCutoff

	speed := float64(cityTrafficSpeed)
	traffic := 1.05
	if intercity {
		speed = intercitySpeed
		traffic = 1.0
	}

	return int(math.Round(distanceKm / speed * 60 * traffic))
}

// cityMultiplierFor resolves the combined city multiplier as the mean of the
// pickup and destination multipliers.
func cityMultiplierFor(pickup, destination string) float64 {
	return (locationMultiplier(pickup) + locationMultiplier(destination)) / 2
}

// locationMultiplier scans the city table in declaration order; the last
// matching city wins, unmatched strings fall back to the default.
func locationMultiplier(location string) float64 {
	lower := strings.ToLower(location)
	multiplier := defaultCityMultiplier
	for _, c := range cityPricing {
		if strings.Contains(lower, c.Name) {
			multiplier = c.Multiplier
		}
	}
	return multiplier
}

// CityKey returns the first city key contained in the location string, or
// empty when none matches. Used for per-city availability such as bike
// support.
func CityKey(location string) string {
	lower := strings.ToLower(location)
	for _, c := range cityPricing {
		if strings.Contains(lower, c.Name) {
			return c.Name
		}
	}
	return ""
}

// etaFor estimates pickup wait in minutes by vehicle category.
func etaFor(distanceKm float64, category Category) int {
	switch category {
	case CategoryBike:
		return maxInt(2, int(math.Round(distanceKm/3))+1)
	case CategoryAuto:
		return maxInt(3, int(math.Round(distanceKm/2))+1)
	default:
		return maxInt(4, int(math.Round(distanceKm/1.5))+2)
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
