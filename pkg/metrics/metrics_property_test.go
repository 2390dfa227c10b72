package metrics

import (
	"fmt"
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func genRatioEntries() gopter.Gen {
	return gen.SliceOf(gen.Float64Range(0, 1000)).Map(func(ratios []float64) []PlayerRatioEntry {
		entries := make([]PlayerRatioEntry, len(ratios))
		for i, r := range ratios {
			entries[i] = PlayerRatioEntry{
				PlayerId: fmt.Sprintf("player-%d", i),
				Ratio:    r,
			}
		}
		return entries
	})
}

// TestRatioRankProperties verifies the competition-ranking invariants over arbitrary ratio sets.
func TestRatioRankProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("every rank equals strictly-higher count plus one", prop.ForAll(
		func(entries []PlayerRatioEntry) bool {
			ranks := RatioRanks(entries)
			for _, entry := range entries {
				higher := 0
				for _, other := range entries {
					if other.Ratio > entry.Ratio {
						higher++
					}
				}
				if ranks[entry.PlayerId] != higher+1 {
					return false
				}
			}
			return true
		},
		genRatioEntries().SuchThat(func(entries []PlayerRatioEntry) bool {
			return len(entries) <= 60
		}),
	))

	properties.Property("equal ratios share a rank", prop.ForAll(
		func(entries []PlayerRatioEntry) bool {
			ranks := RatioRanks(entries)
			for _, a := range entries {
				for _, b := range entries {
					if a.Ratio == b.Ratio && ranks[a.PlayerId] != ranks[b.PlayerId] {
						return false
					}
				}
			}
			return true
		},
		genRatioEntries().SuchThat(func(entries []PlayerRatioEntry) bool {
			return len(entries) <= 60
		}),
	))

	properties.Property("best rank is 1 when any players exist", prop.ForAll(
		func(entries []PlayerRatioEntry) bool {
			ranks := RatioRanks(entries)
			best := len(entries) + 1
			for _, rank := range ranks {
				if rank < best {
					best = rank
				}
			}
			return best == 1
		},
		genRatioEntries().SuchThat(func(entries []PlayerRatioEntry) bool {
			return len(entries) > 0 && len(entries) <= 60
		}),
	))

	properties.TestingRun(t)
}

// TestMarginProperties verifies that the percentage formulas never produce NaN or Inf.
func TestMarginProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	finite := func(v float64) bool {
		return !math.IsNaN(v) && !math.IsInf(v, 0)
	}

	properties.Property("margins defined for any score pair", prop.ForAll(
		func(score, opponentScore int) bool {
			return finite(MarginRatio(score, opponentScore))
		},
		gen.IntRange(0, 10000000),
		gen.IntRange(0, 10000000),
	))

	properties.Property("fp margin defined for any fp pair", prop.ForAll(
		func(baselineFp, opponentFp int) bool {
			return finite(FpMargin(baselineFp, opponentFp))
		},
		gen.IntRange(0, 100000),
		gen.IntRange(0, 100000),
	))

	properties.Property("fp share ratios defined and bounded", prop.ForAll(
		func(part, total int) bool {
			v := NonplayingFpRatio(part, total)
			if !finite(v) {
				return false
			}
			if total >= part && v > 100 {
				return false
			}
			return true
		},
		gen.IntRange(0, 100000),
		gen.IntRange(0, 100000),
	))

	properties.TestingRun(t)
}
