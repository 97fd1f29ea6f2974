package fare

// The lookup tables below are process-wide constants. They are never mutated
// after init, so concurrent reads need no locking.

// cityEntry maps a city name to its pricing tier and cost-of-living
// multiplier. City names are matched as lower-case substrings of the
// free-text pickup/destination strings.
type cityEntry struct {
	Name       string
	Tier       CityTier
	Multiplier float64
}

// defaultCityMultiplier covers locations that match no known city.
const defaultCityMultiplier = 0.75

// cityPricing is an ordered table: when a location string contains several
// city names, the multiplier of the city declared last wins, and the bike
// allow-list check uses the city declared first. Keep declaration order
// stable; it is part of the engine contract.
var cityPricing = []cityEntry{
	{"mumbai", TierMetro, 1.2},
	{"delhi", TierMetro, 1.15},
	{"bangalore", TierMetro, 1.25},
	{"bengaluru", TierMetro, 1.25},
	{"chennai", TierMetro, 1.1},
	{"kolkata", TierMetro, 1.05},
	{"hyderabad", TierMetro, 1.15},

	{"pune", Tier1, 1.0},
	{"ahmedabad", Tier1, 0.95},
	{"jaipur", Tier1, 0.9},
	{"lucknow", Tier1, 0.85},
	{"chandigarh", Tier1, 0.95},
	{"noida", Tier1, 1.1},
	{"gurgaon", Tier1, 1.15},
	{"gurugram", Tier1, 1.15},

	{"mysore", Tier2, 0.8},
	{"pondicherry", Tier2, 0.85},
	{"kochi", Tier2, 0.85},
	{"indore", Tier2, 0.8},
	{"nagpur", Tier2, 0.8},
	{"bhopal", Tier2, 0.75},
	{"coimbatore", Tier2, 0.8},
}

// bikeCities lists the city keys where two-wheeler tiers operate.
var bikeCities = map[string]bool{
	"mumbai":    true,
	"delhi":     true,
	"bangalore": true,
	"bengaluru": true,
	"pune":      true,
	"hyderabad": true,
	"chennai":   true,
	"kolkata":   true,
}

// serviceAdjustment is a fixed per-provider calibration scalar applied
// uniformly across that provider's vehicle tiers, tuned against publicly
// displayed fares.
var serviceAdjustment = map[Provider]float64{
	ProviderUber:    1.12,
	ProviderOla:     1.10,
	ProviderRapido:  1.25,
	ProviderInDrive: 1.0,
}

// surgeRule controls how the time-of-day surge applies to a tier. Two-wheeler
// and auto tiers are less exposed to car-traffic surge, so they scale it
// down; Rapido and InDrive quote against fixed factors instead.
type surgeRule struct {
	// Scale multiplies the time surge when Fixed is false, otherwise it is
	// used verbatim as the surge factor.
	Scale float64
	Fixed bool
}

func (r surgeRule) apply(timeSurge float64) float64 {
	if r.Fixed {
		return r.Scale
	}
	return timeSurge * r.Scale
}

// tierSpec is one row of the provider/tier pricing table.
type tierSpec struct {
	Provider Provider
	Name     string
	Icon     string
	Category Category
	Config   Config
	Surge    surgeRule
}

// Display metadata per provider.
var providerLogos = map[Provider]string{
	ProviderUber:    "🚗",
	ProviderOla:     "🟢",
	ProviderRapido:  "🟡",
	ProviderInDrive: "💚",
}

var providerColors = map[Provider]string{
	ProviderUber:    "bg-foreground",
	ProviderOla:     "bg-green-600",
	ProviderRapido:  "bg-yellow-500",
	ProviderInDrive: "bg-green-500",
}

// ProviderDisplay returns the logo and accent color for a provider.
func ProviderDisplay(p Provider) (logo, color string) {
	return providerLogos[p], providerColors[p]
}

// serviceTiers is the full pricing table in emission order: Uber, Ola,
// Rapido, InDrive, each in fixed tier order. Emission order is the tie-break
// for equal prices in the sorted result.
var serviceTiers = []tierSpec{
	{ProviderUber, "UberGo", "🚙", CategoryCab,
		Config{BaseFare: 40, PerKmRate: 11, PerMinRate: 1.5, MinimumFare: 50, BookingFee: 5},
		surgeRule{Scale: 1.0}},
	{ProviderUber, "Uber Premier", "🚘", CategoryCab,
		Config{BaseFare: 70, PerKmRate: 15, PerMinRate: 2, MinimumFare: 100, BookingFee: 10},
		surgeRule{Scale: 1.0}},
	{ProviderUber, "Uber XL", "🚐", CategoryCab,
		Config{BaseFare: 100, PerKmRate: 18, PerMinRate: 2.5, MinimumFare: 150, BookingFee: 15},
		surgeRule{Scale: 1.0}},
	{ProviderUber, "Uber Moto", "🏍️", CategoryBike,
		Config{BaseFare: 15, PerKmRate: 5, PerMinRate: 0.5, MinimumFare: 25, BookingFee: 2},
		surgeRule{Scale: 0.9}},
	{ProviderUber, "Uber Auto", "🛺", CategoryAuto,
		Config{BaseFare: 25, PerKmRate: 8, PerMinRate: 1, MinimumFare: 35, BookingFee: 3},
		surgeRule{Scale: 0.95}},

	{ProviderOla, "Ola Mini", "🚙", CategoryCab,
		Config{BaseFare: 35, PerKmRate: 10, PerMinRate: 1.25, MinimumFare: 45, BookingFee: 5},
		surgeRule{Scale: 0.98}},
	{ProviderOla, "Ola Prime Sedan", "🚘", CategoryCab,
		Config{BaseFare: 60, PerKmRate: 14, PerMinRate: 1.75, MinimumFare: 90, BookingFee: 8},
		surgeRule{Scale: 0.98}},
	{ProviderOla, "Ola Prime SUV", "🚐", CategoryCab,
		Config{BaseFare: 90, PerKmRate: 17, PerMinRate: 2.25, MinimumFare: 140, BookingFee: 12},
		surgeRule{Scale: 0.98}},
	{ProviderOla, "Ola Bike", "🏍️", CategoryBike,
		Config{BaseFare: 15, PerKmRate: 4.5, PerMinRate: 0.4, MinimumFare: 20, BookingFee: 2},
		surgeRule{Scale: 0.85}},
	{ProviderOla, "Ola Auto", "🛺", CategoryAuto,
		Config{BaseFare: 25, PerKmRate: 7.5, PerMinRate: 0.9, MinimumFare: 30, BookingFee: 3},
		surgeRule{Scale: 0.9}},

	{ProviderRapido, "Rapido Bike", "🏍️", CategoryBike,
		Config{BaseFare: 20, PerKmRate: 5, PerMinRate: 0.45, MinimumFare: 30, BookingFee: 2},
		surgeRule{Scale: 1.0, Fixed: true}},
	{ProviderRapido, "Rapido Auto", "🛺", CategoryAuto,
		Config{BaseFare: 35, PerKmRate: 8, PerMinRate: 1.0, MinimumFare: 45, BookingFee: 5},
		surgeRule{Scale: 1.0, Fixed: true}},
	{ProviderRapido, "Rapido Cab Economy", "🚗", CategoryCab,
		Config{BaseFare: 55, PerKmRate: 10, PerMinRate: 1.2, MinimumFare: 65, BookingFee: 8},
		surgeRule{Scale: 1.0, Fixed: true}},

	{ProviderInDrive, "InDrive Economy", "🚙", CategoryCab,
		Config{BaseFare: 30, PerKmRate: 8, PerMinRate: 1, MinimumFare: 40, BookingFee: 0},
		surgeRule{Scale: 0.95, Fixed: true}},
	{ProviderInDrive, "InDrive Comfort", "🚘", CategoryCab,
		Config{BaseFare: 50, PerKmRate: 12, PerMinRate: 1.5, MinimumFare: 70, BookingFee: 0},
		surgeRule{Scale: 0.95, Fixed: true}},
	{ProviderInDrive, "InDrive Business", "🚐", CategoryCab,
		Config{BaseFare: 80, PerKmRate: 16, PerMinRate: 2, MinimumFare: 120, BookingFee: 0},
		surgeRule{Scale: 0.95, Fixed: true}},
}

// Distance thresholds for availability gating (kilometers).
const (
	maxShortHaulKm   = 25 // bike and auto tiers
	maxEconomyCabKm  = 50 // Rapido's economy cab tier
	intercityCutoff  = 30 // above this a trip is priced as intercity
	intercitySpeed   = 45 // km/h
	cityTrafficSpeed = 22 // km/h
)

// City represents a known city for metadata listings.
type City struct {
	Name       string   `json:"name"`
	Tier       CityTier `json:"tier"`
	Multiplier float64  `json:"multiplier"`
	Bikes      bool     `json:"bikes"`
}

// Cities returns the known city table in declaration order.
func Cities() []City {
	out := make([]City, 0, len(cityPricing))
	for _, c := range cityPricing {
		out = append(out, City{
			Name:       c.Name,
			Tier:       c.Tier,
			Multiplier: c.Multiplier,
			Bikes:      bikeCities[c.Name],
		})
	}
	return out
}

// Providers returns the supported providers in emission order.
func Providers() []Provider {
	return []Provider{ProviderUber, ProviderOla, ProviderRapido, ProviderInDrive}
}

// PopularRoute is a well-known intercity route offered as a search shortcut.
type PopularRoute struct {
	From       string  `json:"from"`
	To         string  `json:"to"`
	DistanceKm float64 `json:"distanceKm"`
}

// PopularRoutes returns the curated quick-search routes.
func PopularRoutes() []PopularRoute {
	return []PopularRoute{
		{From: "Mumbai", To: "Pune", DistanceKm: 148},
		{From: "Delhi", To: "Noida", DistanceKm: 25},
		{From: "Bangalore", To: "Mysore", DistanceKm: 145},
		{From: "Chennai", To: "Pondicherry", DistanceKm: 150},
	}
}
