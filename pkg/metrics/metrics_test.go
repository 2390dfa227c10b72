package metrics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBattleResult(t *testing.T) {
	tests := []struct {
		name          string
		score         int
		opponentScore int
		expected      int
	}{
		{name: "win", score: 50000, opponentScore: 45000, expected: ResultWin},
		{name: "loss", score: 45000, opponentScore: 50000, expected: ResultLoss},
		{name: "tie", score: 45000, opponentScore: 45000, expected: ResultTie},
		{name: "zeroTie", score: 0, opponentScore: 0, expected: ResultTie},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, BattleResult(tt.score, tt.opponentScore))
		})
	}
}

// Reference battle: baseline FP 2500, 50000 x 45000.
func TestReferenceBattle(t *testing.T) {
	assert.Equal(t, ResultWin, BattleResult(50000, 45000))
	assert.InDelta(t, 10.0, MarginRatio(50000, 45000), 1e-9)
	assert.InDelta(t, 50000.0/2500.0*RatioScale, ClanRatio(50000, 2500), 1e-9)
}

func TestRatiosWithZeroDenominators(t *testing.T) {
	assert.Zero(t, ClanRatio(100, 0))
	assert.Zero(t, AverageRatio(100, 0))
	assert.Zero(t, PlayerRatio(100, 0))
	assert.Zero(t, MarginRatio(0, 45000))
	assert.Zero(t, FpMargin(0, 2500))
	assert.Zero(t, NonplayingFpRatio(100, 0))
	assert.Zero(t, ReserveFpRatio(100, 0))
	assert.Zero(t, ParticipationRate(5, 0))
}

func TestMarginRatio(t *testing.T) {
	tests := []struct {
		name          string
		score         int
		opponentScore int
		expected      float64
	}{
		{name: "tenPercentWin", score: 50000, opponentScore: 45000, expected: 10},
		{name: "loss", score: 40000, opponentScore: 50000, expected: -25},
		{name: "tie", score: 40000, opponentScore: 40000, expected: 0},
		{name: "zeroScore", score: 0, opponentScore: 50000, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, MarginRatio(tt.score, tt.opponentScore), 1e-9)
		})
	}
}

func TestFpMargin(t *testing.T) {
	assert.InDelta(t, 20, FpMargin(2500, 2000), 1e-9)
	assert.InDelta(t, -20, FpMargin(2500, 3000), 1e-9)
}

func TestProjectedScore(t *testing.T) {
	// 10% of the FP didn't play, so the score is projected 10% up.
	assert.InDelta(t, 55000, ProjectedScore(50000, 10), 1e-9)
	assert.InDelta(t, 50000, ProjectedScore(50000, 0), 1e-9)
}

func TestRatioRanks(t *testing.T) {
	entries := []PlayerRatioEntry{
		{PlayerId: "a", Ratio: 210.5},
		{PlayerId: "b", Ratio: 190.0},
		{PlayerId: "c", Ratio: 210.5},
		{PlayerId: "d", Ratio: 150.2},
	}

	ranks := RatioRanks(entries)

	// Standard competition ranking: the two tied leaders share rank 1
	// and the next distinct ratio gets rank 3, not 2.
	assert.Equal(t, 1, ranks["a"])
	assert.Equal(t, 1, ranks["c"])
	assert.Equal(t, 3, ranks["b"])
	assert.Equal(t, 4, ranks["d"])
}

func TestRatioRanksEmpty(t *testing.T) {
	assert.Empty(t, RatioRanks(nil))
}

func TestReductions(t *testing.T) {
	playerFps := []int{100, 120, 80}
	nonplayers := []NonplayerEntry{
		{Fp: 50, Reserve: false},
		{Fp: 70, Reserve: true},
		{Fp: 30, Reserve: false},
	}

	assert.Equal(t, 450, TotalFp(playerFps, nonplayers))
	assert.Equal(t, 2, NonplayingCount(nonplayers))
	assert.Equal(t, 1, ReserveCount(nonplayers))
	assert.Equal(t, 80, NonplayingFp(nonplayers))
	assert.Equal(t, 70, ReserveFp(nonplayers))
}

func TestMarginsAreAlwaysFinite(t *testing.T) {
	values := []float64{
		MarginRatio(0, 0),
		MarginRatio(0, 100),
		FpMargin(0, 0),
		FpMargin(0, 100),
		NonplayingFpRatio(0, 0),
		ReserveFpRatio(0, 0),
	}

	for _, v := range values {
		assert.False(t, math.IsNaN(v))
		assert.False(t, math.IsInf(v, 0))
	}
}
