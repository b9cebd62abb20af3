// Package poisson estimates single-game run distributions and derived
// outcome probabilities for baseball matchups.
//
// Each side's scoring is modelled as a Poisson process whose rate blends the
// team's own runs-scored average with the opponent's runs-allowed average.
// The blend is a deliberate modelling simplification (plain average, no
// regression weighting) and is part of the contract: downstream consumers
// depend on the exact arithmetic.
//
// All functions are pure and safe for concurrent use.
package poisson

import (
	"fmt"
	"math"
)

// DefaultMaxRuns is the truncation bound used when enumerating run counts.
// Probability mass beyond the bound is discarded, never renormalized, so a
// distribution's total mass is strictly below 1.
const DefaultMaxRuns = 15

// RunDistribution maps a run count to its (truncated, unnormalized)
// probability mass.
type RunDistribution map[int]float64

// TotalMass returns the summed probability mass over the truncated support.
func (d RunDistribution) TotalMass() float64 {
	total := 0.0
	for _, p := range d {
		total += p
	}
	return total
}

// GameProbabilities holds the derived outcome model for a single matchup.
// All fields are computed once and never mutated.
type GameProbabilities struct {
	HomeWinProb       float64
	AwayWinProb       float64
	TieProb           float64
	HomeExpectedRuns  float64
	AwayExpectedRuns  float64
	TotalExpectedRuns float64
	TotalRunsProbs    map[int]float64
}

// EstimateRunDistribution returns the Poisson run distribution for a team
// scoring teamAvg runs per game against a defense allowing opponentAvg runs
// per game. The distribution covers run counts 0..maxRuns inclusive; the
// tail beyond maxRuns is dropped.
func EstimateRunDistribution(teamAvg, opponentAvg float64, maxRuns int) (RunDistribution, error) {
	if teamAvg < 0 {
		return nil, fmt.Errorf("%w: team average runs must be non-negative, got %v", ErrInvalidArgument, teamAvg)
	}
	if opponentAvg < 0 {
		return nil, fmt.Errorf("%w: opponent average runs allowed must be non-negative, got %v", ErrInvalidArgument, opponentAvg)
	}
	if maxRuns < 0 {
		return nil, fmt.Errorf("%w: max runs must be non-negative, got %d", ErrInvalidArgument, maxRuns)
	}

	expectedRuns := (teamAvg + opponentAvg) / 2

	dist := make(RunDistribution, maxRuns+1)
	for runs := 0; runs <= maxRuns; runs++ {
		dist[runs] = pmf(expectedRuns, runs)
	}
	return dist, nil
}

// EstimateGameProbabilities derives win/tie probabilities and the total-runs
// distribution for a matchup. Each side's expected rate pairs its own scoring
// average with the opposing defense's runs-allowed average.
func EstimateGameProbabilities(homeAvg, awayAvg, homeAllowedAvg, awayAllowedAvg float64, maxRuns int) (*GameProbabilities, error) {
	for _, in := range []struct {
		name  string
		value float64
	}{
		{"home average runs", homeAvg},
		{"away average runs", awayAvg},
		{"home average runs allowed", homeAllowedAvg},
		{"away average runs allowed", awayAllowedAvg},
	} {
		if in.value < 0 {
			return nil, fmt.Errorf("%w: %s must be non-negative, got %v", ErrInvalidArgument, in.name, in.value)
		}
	}
	if maxRuns < 0 {
		return nil, fmt.Errorf("%w: max runs must be non-negative, got %d", ErrInvalidArgument, maxRuns)
	}

	homeExpected := (homeAvg + awayAllowedAvg) / 2
	awayExpected := (awayAvg + homeAllowedAvg) / 2

	homeProbs := make([]float64, maxRuns+1)
	awayProbs := make([]float64, maxRuns+1)
	for runs := 0; runs <= maxRuns; runs++ {
		homeProbs[runs] = pmf(homeExpected, runs)
		awayProbs[runs] = pmf(awayExpected, runs)
	}

	result := &GameProbabilities{
		HomeExpectedRuns:  homeExpected,
		AwayExpectedRuns:  awayExpected,
		TotalExpectedRuns: homeExpected + awayExpected,
		TotalRunsProbs:    make(map[int]float64, 2*maxRuns+1),
	}

	for homeRuns := 0; homeRuns <= maxRuns; homeRuns++ {
		for awayRuns := 0; awayRuns <= maxRuns; awayRuns++ {
			prob := homeProbs[homeRuns] * awayProbs[awayRuns]
			switch {
			case homeRuns > awayRuns:
				result.HomeWinProb += prob
			case awayRuns > homeRuns:
				result.AwayWinProb += prob
			default:
				result.TieProb += prob
			}
		}
	}

	for total := 0; total <= 2*maxRuns; total++ {
		prob := 0.0
		for homeRuns := 0; homeRuns <= maxRuns && homeRuns <= total; homeRuns++ {
			awayRuns := total - homeRuns
			if awayRuns <= maxRuns {
				prob += homeProbs[homeRuns] * awayProbs[awayRuns]
			}
		}
		result.TotalRunsProbs[total] = prob
	}

	return result, nil
}

// ExpectedValue returns the expected net payoff of staking `stake` on an
// outcome with the given win probability at American odds. Positive odds
// quote the underdog payout per 100 staked; negative odds quote the stake
// required to win 100.
func ExpectedValue(probability, americanOdds, stake float64) (float64, error) {
	if probability < 0 || probability > 1 {
		return 0, fmt.Errorf("%w: probability must be in [0,1], got %v", ErrInvalidArgument, probability)
	}
	if americanOdds == 0 {
		return 0, fmt.Errorf("%w: american odds must be non-zero", ErrInvalidArgument)
	}
	if stake <= 0 {
		return 0, fmt.Errorf("%w: stake must be positive, got %v", ErrInvalidArgument, stake)
	}

	var payout float64
	if americanOdds > 0 {
		payout = stake * americanOdds / 100
	} else {
		payout = stake * 100 / math.Abs(americanOdds)
	}

	return probability*payout - (1-probability)*stake, nil
}

// pmf computes the Poisson probability mass lambda^k e^-lambda / k! in log
// space to avoid overflowing the factorial for larger run counts.
func pmf(lambda float64, k int) float64 {
	if k < 0 {
		return 0
	}
	if lambda == 0 {
		if k == 0 {
			return 1.0
		}
		return 0
	}
	logProb := float64(k)*math.Log(lambda) - lambda - logFactorial(k)
	return math.Exp(logProb)
}

func logFactorial(n int) float64 {
	if n <= 1 {
		return 0
	}
	result := 0.0
	for i := 2; i <= n; i++ {
		result += math.Log(float64(i))
	}
	return result
}
