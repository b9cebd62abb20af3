package sabermetrics

// PitchingStats holds the counting stats needed for pitching metrics.
type PitchingStats struct {
	HomeRunsAllowed int
	Walks           int
	HitByPitch      int
	Strikeouts      int
	InningsPitched  float64
}

// fipConstant is the 2024 league constant that scales FIP onto the ERA scale.
const fipConstant = 3.10

// FIP computes fielding independent pitching:
// (13*HR + 3*(BB+HBP) - 2*K) / IP + constant.
// Returns 0 when no innings have been pitched.
func FIP(stats PitchingStats) float64 {
	if stats.InningsPitched == 0 {
		return 0
	}
	raw := (13*float64(stats.HomeRunsAllowed) +
		3*float64(stats.Walks+stats.HitByPitch) -
		2*float64(stats.Strikeouts)) / stats.InningsPitched
	return raw + fipConstant
}
