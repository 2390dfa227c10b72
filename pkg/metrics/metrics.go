package metrics

// RatioScale is the multiplier applied to every score/FP ratio.
// It must match the scale of the ratios already stored in the database.
const RatioScale = 10.0

// Battle results as stored on the battle records.
const (
	ResultWin  = 1
	ResultTie  = 0
	ResultLoss = -1
)

// BattleResult compares both final scores.
func BattleResult(score, opponentScore int) int {
	switch {
	case score > opponentScore:
		return ResultWin
	case score < opponentScore:
		return ResultLoss
	default:
		return ResultTie
	}
}

// ClanRatio is the clan score normalized by the official (baseline) FP.
func ClanRatio(score, baselineFp int) float64 {
	if baselineFp == 0 {
		return 0
	}
	return float64(score) / float64(baselineFp) * RatioScale
}

// AverageRatio is the clan score normalized by the total FP of the full roster.
func AverageRatio(score, totalFp int) float64 {
	if totalFp == 0 {
		return 0
	}
	return float64(score) / float64(totalFp) * RatioScale
}

// PlayerRatio is a single player score normalized by that player's FP.
func PlayerRatio(playerScore, playerFp int) float64 {
	if playerFp == 0 {
		return 0
	}
	return float64(playerScore) / float64(playerFp) * RatioScale
}

// MarginRatio is the score spread as a percentage of the own score.
// A score of zero yields 0 instead of a division by zero.
func MarginRatio(score, opponentScore int) float64 {
	if score == 0 {
		return 0
	}
	return float64(score-opponentScore) / float64(score) * 100
}

// FpMargin is the FP advantage over the opponent as a percentage of the baseline FP.
func FpMargin(baselineFp, opponentFp int) float64 {
	if baselineFp == 0 {
		return 0
	}
	return float64(baselineFp-opponentFp) / float64(baselineFp) * 100
}

// NonplayingFpRatio is the share of the total FP held by members that didn't play.
func NonplayingFpRatio(nonplayingFp, totalFp int) float64 {
	if totalFp == 0 {
		return 0
	}
	return float64(nonplayingFp) / float64(totalFp) * 100
}

// ReserveFpRatio is the share of the total FP held by the reserves.
func ReserveFpRatio(reserveFp, totalFp int) float64 {
	if totalFp == 0 {
		return 0
	}
	return float64(reserveFp) / float64(totalFp) * 100
}

// ParticipationRate is the percentage of eligible members that played.
func ParticipationRate(playerCount, eligibleCount int) float64 {
	if eligibleCount == 0 {
		return 0
	}
	return float64(playerCount) / float64(eligibleCount) * 100
}

// ProjectedScore estimates the score if the idle FP had played as well.
// The nonplaying ratio is the percentage returned by NonplayingFpRatio.
func ProjectedScore(score int, nonplayingFpRatio float64) float64 {
	return float64(score) * (1 + nonplayingFpRatio/100)
}

// PlayerRatioEntry is the input for the ratio ranking.
type PlayerRatioEntry struct {
	PlayerId string
	Ratio    float64
}

// RatioRanks assigns a 1-based standard competition rank to each player,
// descending by ratio. Equal ratios share a rank and the next distinct
// ratio gets (count of strictly higher ratios) + 1.
func RatioRanks(entries []PlayerRatioEntry) map[string]int {
	ranks := make(map[string]int, len(entries))

	for _, entry := range entries {
		higher := 0
		for _, other := range entries {
			if other.Ratio > entry.Ratio {
				higher++
			}
		}
		ranks[entry.PlayerId] = higher + 1
	}

	return ranks
}

// NonplayerEntry is a roster member that didn't take part in the battle.
type NonplayerEntry struct {
	Fp      int
	Reserve bool
}

// TotalFp sums the FP of everyone on the roster, playing or not.
func TotalFp(playerFps []int, nonplayers []NonplayerEntry) int {
	total := 0
	for _, fp := range playerFps {
		total += fp
	}
	for _, np := range nonplayers {
		total += np.Fp
	}
	return total
}

// NonplayingCount counts the non-participants that weren't flagged as reserve.
func NonplayingCount(nonplayers []NonplayerEntry) int {
	count := 0
	for _, np := range nonplayers {
		if !np.Reserve {
			count++
		}
	}
	return count
}

// ReserveCount counts the non-participants flagged as reserve.
func ReserveCount(nonplayers []NonplayerEntry) int {
	count := 0
	for _, np := range nonplayers {
		if np.Reserve {
			count++
		}
	}
	return count
}

// NonplayingFp sums the FP of the non-participants that weren't reserves.
func NonplayingFp(nonplayers []NonplayerEntry) int {
	total := 0
	for _, np := range nonplayers {
		if !np.Reserve {
			total += np.Fp
		}
	}
	return total
}

// ReserveFp sums the FP of the reserves.
func ReserveFp(nonplayers []NonplayerEntry) int {
	total := 0
	for _, np := range nonplayers {
		if np.Reserve {
			total += np.Fp
		}
	}
	return total
}
