package poisson

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimateRunDistributionBlendedRate(t *testing.T) {
	// Blended rate of (5+5)/2 = 5, so p(0) = e^-5.
	dist, err := EstimateRunDistribution(5, 5, DefaultMaxRuns)
	require.NoError(t, err)
	assert.InDelta(t, math.Exp(-5), dist[0], 1e-12)
	assert.Len(t, dist, DefaultMaxRuns+1)
}

func TestEstimateRunDistributionTruncatedMass(t *testing.T) {
	dist, err := EstimateRunDistribution(4.5, 4.1, DefaultMaxRuns)
	require.NoError(t, err)

	total := dist.TotalMass()
	assert.Less(t, total, 1.0, "truncated distribution must not be renormalized")
	assert.Greater(t, total, 0.99, "tail mass beyond 15 runs should be tiny at typical rates")
}

func TestEstimateRunDistributionMonotoneInBound(t *testing.T) {
	prev := 0.0
	for _, maxRuns := range []int{5, 10, 15, 25, 40} {
		dist, err := EstimateRunDistribution(6, 6, maxRuns)
		require.NoError(t, err)
		total := dist.TotalMass()
		assert.GreaterOrEqual(t, total, prev, "mass must grow with the truncation bound")
		assert.LessOrEqual(t, total, 1.0+1e-12)
		prev = total
	}
}

func TestEstimateRunDistributionZeroRate(t *testing.T) {
	dist, err := EstimateRunDistribution(0, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, 1.0, dist[0])
	for runs := 1; runs <= 10; runs++ {
		assert.Zero(t, dist[runs])
	}
}

func TestEstimateRunDistributionInvalidInputs(t *testing.T) {
	tests := []struct {
		name        string
		teamAvg     float64
		opponentAvg float64
		maxRuns     int
	}{
		{"negative team average", -1, 5, 15},
		{"negative opponent average", 5, -0.5, 15},
		{"negative max runs", 5, 5, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := EstimateRunDistribution(tt.teamAvg, tt.opponentAvg, tt.maxRuns)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidArgument))
		})
	}
}

func TestEstimateGameProbabilitiesSymmetricMatchup(t *testing.T) {
	probs, err := EstimateGameProbabilities(4.5, 4.5, 4.2, 4.2, DefaultMaxRuns)
	require.NoError(t, err)

	assert.InDelta(t, probs.HomeWinProb, probs.AwayWinProb, 1e-9,
		"symmetric inputs must produce symmetric win probabilities")
	assert.Equal(t, probs.HomeExpectedRuns, probs.AwayExpectedRuns)
}

func TestEstimateGameProbabilitiesOutcomeMassNearOne(t *testing.T) {
	// Typical MLB scoring rates: the truncation error at 15 runs is small.
	rates := []float64{2, 3.5, 4.5, 6, 8}
	for _, home := range rates {
		for _, away := range rates {
			probs, err := EstimateGameProbabilities(home, away, away, home, DefaultMaxRuns)
			require.NoError(t, err)

			total := probs.HomeWinProb + probs.AwayWinProb + probs.TieProb
			assert.GreaterOrEqual(t, total, 0.98)
			assert.LessOrEqual(t, total, 1.0)
		}
	}
}

func TestEstimateGameProbabilitiesExpectedRuns(t *testing.T) {
	probs, err := EstimateGameProbabilities(5.2, 4.8, 4.5, 4.9, DefaultMaxRuns)
	require.NoError(t, err)

	assert.InDelta(t, (5.2+4.9)/2, probs.HomeExpectedRuns, 1e-12)
	assert.InDelta(t, (4.8+4.5)/2, probs.AwayExpectedRuns, 1e-12)
	assert.InDelta(t, probs.HomeExpectedRuns+probs.AwayExpectedRuns, probs.TotalExpectedRuns, 1e-12)
}

func TestEstimateGameProbabilitiesTotalRunsConvolution(t *testing.T) {
	probs, err := EstimateGameProbabilities(4, 4, 4, 4, DefaultMaxRuns)
	require.NoError(t, err)

	require.Len(t, probs.TotalRunsProbs, 2*DefaultMaxRuns+1)

	// Total of 0 runs requires both sides to score 0 at rate 4.
	want := math.Exp(-4) * math.Exp(-4)
	assert.InDelta(t, want, probs.TotalRunsProbs[0], 1e-12)

	// The convolution carries the same truncation error as the outcome split.
	outcomeMass := probs.HomeWinProb + probs.AwayWinProb + probs.TieProb
	totalMass := 0.0
	for _, p := range probs.TotalRunsProbs {
		totalMass += p
	}
	assert.InDelta(t, outcomeMass, totalMass, 1e-9)
}

func TestEstimateGameProbabilitiesDeterministic(t *testing.T) {
	first, err := EstimateGameProbabilities(5.2, 4.8, 4.5, 4.9, DefaultMaxRuns)
	require.NoError(t, err)
	second, err := EstimateGameProbabilities(5.2, 4.8, 4.5, 4.9, DefaultMaxRuns)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestExpectedValueEvenMoney(t *testing.T) {
	ev, err := ExpectedValue(0.5, 100, 100)
	require.NoError(t, err)
	assert.Equal(t, 0.0, ev, "fair coin at even odds is exactly break-even")
}

func TestExpectedValueFavorite(t *testing.T) {
	// Payout at -150 is 100*100/150 = 66.67; EV = 0.6*66.67 - 0.4*100 = 0.
	ev, err := ExpectedValue(0.6, -150, 100)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, ev, 0.005)
}

func TestExpectedValueUnderdog(t *testing.T) {
	ev, err := ExpectedValue(0.55, 150, 100)
	require.NoError(t, err)
	assert.InDelta(t, 0.55*150-0.45*100, ev, 1e-9)
}

func TestExpectedValueInvalidInputs(t *testing.T) {
	tests := []struct {
		name        string
		probability float64
		odds        float64
		stake       float64
	}{
		{"zero odds", 0.5, 0, 100},
		{"probability above one", 1.1, 150, 100},
		{"negative probability", -0.1, 150, 100},
		{"zero stake", 0.5, 150, 0},
		{"negative stake", 0.5, 150, -50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExpectedValue(tt.probability, tt.odds, tt.stake)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidArgument))
		})
	}
}

func TestPMFExactValues(t *testing.T) {
	// p(k) = lambda^k e^-lambda / k!
	assert.InDelta(t, math.Exp(-3), pmf(3, 0), 1e-12)
	assert.InDelta(t, 3*math.Exp(-3), pmf(3, 1), 1e-12)
	assert.InDelta(t, 4.5*math.Exp(-3), pmf(3, 2), 1e-12)
	assert.Zero(t, pmf(3, -1))
}
