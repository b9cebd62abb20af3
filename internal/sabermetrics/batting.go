// Package sabermetrics implements the batting and pitching rate statistics
// used to enrich team and player profiles.
package sabermetrics

// BattingStats holds the season counting stats needed for batting metrics.
type BattingStats struct {
	AtBats     int
	Hits       int
	Singles    int
	Doubles    int
	Triples    int
	HomeRuns   int
	Walks      int
	HitByPitch int
	SacFlies   int
	Strikeouts int
	AVG        float64
	SLG        float64
}

// 2024 linear weights for wOBA.
const (
	wobaWalk    = 0.692
	wobaHBP     = 0.723
	wobaSingle  = 0.888
	wobaDouble  = 1.271
	wobaTriple  = 1.616
	wobaHomeRun = 2.101
)

// WOBA computes weighted on-base average. Singles are derived from total hits
// when not supplied directly. Returns 0 when the plate-appearance denominator
// is empty.
func WOBA(stats BattingStats) float64 {
	singles := stats.Singles
	if singles == 0 {
		singles = stats.Hits - stats.Doubles - stats.Triples - stats.HomeRuns
	}

	numerator := wobaWalk*float64(stats.Walks) +
		wobaHBP*float64(stats.HitByPitch) +
		wobaSingle*float64(singles) +
		wobaDouble*float64(stats.Doubles) +
		wobaTriple*float64(stats.Triples) +
		wobaHomeRun*float64(stats.HomeRuns)

	denominator := float64(stats.AtBats + stats.Walks + stats.SacFlies + stats.HitByPitch)
	if denominator <= 0 {
		return 0
	}
	return numerator / denominator
}

// BABIP computes batting average on balls in play: (H-HR)/(AB-K-HR+SF).
// Returns 0 when no balls were put in play.
func BABIP(stats BattingStats) float64 {
	ballsInPlay := float64(stats.AtBats - stats.Strikeouts - stats.HomeRuns + stats.SacFlies)
	if ballsInPlay <= 0 {
		return 0
	}
	return float64(stats.Hits-stats.HomeRuns) / ballsInPlay
}

// ISO computes isolated power, slugging minus batting average.
func ISO(stats BattingStats) float64 {
	return stats.SLG - stats.AVG
}
