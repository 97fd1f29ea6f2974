package fare

import "time"

// Surge multipliers by time of day.
const (
	peakSurge      = 1.3
	lateNightSurge = 1.15
	noSurge        = 1.0
)

// surgeForHour maps an hour of day (0-23) to the surge multiplier. Peak
// commute windows are 08:00-10:59 and 17:00-20:59; late night runs
// 22:00-05:59. Purely a function of the hour, no randomness.
func surgeForHour(hour int) float64 {
	switch {
	case (hour >= 8 && hour <= 10) || (hour >= 17 && hour <= 20):
		return peakSurge
	case hour >= 22 || hour < 6:
		return lateNightSurge
	default:
		return noSurge
	}
}

// SurgeStatusAt reports the surge in effect at the given instant.
func SurgeStatusAt(at time.Time) SurgeStatus {
	switch surgeForHour(at.Hour()) {
	case peakSurge:
		return SurgeStatus{Active: true, Multiplier: peakSurge, Reason: "Peak hours - High demand"}
	case lateNightSurge:
		return SurgeStatus{Active: true, Multiplier: lateNightSurge, Reason: "Late night surcharge"}
	default:
		return SurgeStatus{Active: false, Multiplier: noSurge, Reason: "Normal pricing"}
	}
}

// SurgeStatus reports the surge in effect at the engine's current clock
// reading, for display alongside quotes.
func (e *Engine) SurgeStatus() SurgeStatus {
	return SurgeStatusAt(e.clock())
}
