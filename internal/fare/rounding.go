package fare

import "math"

// slabSize is the rupee increment used by providers that display slab prices.
const slabSize = 5

// rapidoSlabThreshold is the raw fare above which Rapido switches from
// per-rupee rounding to 5-rupee slabs.
const rapidoSlabThreshold = 80

// finalize applies the provider's display rounding to a raw fare. The rules
// are provider identity, not incidental:
//
//	Uber    - round up to the next rupee
//	Ola     - round to the nearest rupee
//	Rapido  - below 80 round up per rupee, otherwise 5-rupee slabs
//	InDrive - 5-rupee slabs
func finalize(provider Provider, raw float64) int {
	switch provider {
	case ProviderUber:
		return int(math.Ceil(raw))
	case ProviderOla:
		return int(math.Round(raw))
	case ProviderRapido:
		if raw < rapidoSlabThreshold {
			return int(math.Ceil(raw))
		}
		return roundUpToSlab(raw)
	case ProviderInDrive:
		return roundUpToSlab(raw)
	default:
		return int(math.Round(raw))
	}
}

// roundUpToSlab returns the smallest multiple of slabSize >= raw.
func roundUpToSlab(raw float64) int {
	return int(math.Ceil(raw/slabSize)) * slabSize
}
