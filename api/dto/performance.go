package dto

import (
	"goclan/pkg/database/models"
)

// ClanPerformance is a clan rollup formatted for the API. Months carry
// the completion lock; years always report complete=false.
type ClanPerformance struct {
	ClanId uint   `json:"clanId"`
	Period string `json:"period"`

	Battles int `json:"battles"`
	Wins    int `json:"wins"`
	Losses  int `json:"losses"`
	Ties    int `json:"ties"`

	AvgScore             float64 `json:"avgScore"`
	AvgOpponentScore     float64 `json:"avgOpponentScore"`
	AvgBaselineFp        float64 `json:"avgBaselineFp"`
	AvgTotalFp           float64 `json:"avgTotalFp"`
	AvgOpponentFp        float64 `json:"avgOpponentFp"`
	AvgClanRatio         float64 `json:"avgClanRatio"`
	AvgAverageRatio      float64 `json:"avgAverageRatio"`
	AvgMarginRatio       float64 `json:"avgMarginRatio"`
	AvgFpMargin          float64 `json:"avgFpMargin"`
	AvgParticipationRate float64 `json:"avgParticipationRate"`
	AvgProjectedScore    float64 `json:"avgProjectedScore"`

	Complete bool `json:"complete"`
}

// IndividualPerformance is a player rollup formatted for the API.
type IndividualPerformance struct {
	PlayerId string `json:"playerId"`
	Period   string `json:"period"`

	Battles int `json:"battles"`

	AvgScore     float64 `json:"avgScore"`
	AvgFp        float64 `json:"avgFp"`
	AvgRatio     float64 `json:"avgRatio"`
	AvgRatioRank float64 `json:"avgRatioRank"`
}

// NewMonthlyClanPerformance formats a monthly clan rollup.
func NewMonthlyClanPerformance(rollup *models.MonthlyClanPerformance) *ClanPerformance {
	return &ClanPerformance{
		ClanId:               rollup.ClanId,
		Period:               rollup.Period,
		Battles:              rollup.Battles,
		Wins:                 rollup.Wins,
		Losses:               rollup.Losses,
		Ties:                 rollup.Ties,
		AvgScore:             Round2(rollup.AvgScore),
		AvgOpponentScore:     Round2(rollup.AvgOpponentScore),
		AvgBaselineFp:        Round2(rollup.AvgBaselineFp),
		AvgTotalFp:           Round2(rollup.AvgTotalFp),
		AvgOpponentFp:        Round2(rollup.AvgOpponentFp),
		AvgClanRatio:         Round2(rollup.AvgClanRatio),
		AvgAverageRatio:      Round2(rollup.AvgAverageRatio),
		AvgMarginRatio:       Round2(rollup.AvgMarginRatio),
		AvgFpMargin:          Round2(rollup.AvgFpMargin),
		AvgParticipationRate: Round2(rollup.AvgParticipationRate),
		AvgProjectedScore:    Round2(rollup.AvgProjectedScore),
		Complete:             rollup.Complete,
	}
}

// NewYearlyClanPerformance formats a yearly clan rollup.
func NewYearlyClanPerformance(rollup *models.YearlyClanPerformance) *ClanPerformance {
	return &ClanPerformance{
		ClanId:               rollup.ClanId,
		Period:               rollup.Period,
		Battles:              rollup.Battles,
		Wins:                 rollup.Wins,
		Losses:               rollup.Losses,
		Ties:                 rollup.Ties,
		AvgScore:             Round2(rollup.AvgScore),
		AvgOpponentScore:     Round2(rollup.AvgOpponentScore),
		AvgBaselineFp:        Round2(rollup.AvgBaselineFp),
		AvgTotalFp:           Round2(rollup.AvgTotalFp),
		AvgOpponentFp:        Round2(rollup.AvgOpponentFp),
		AvgClanRatio:         Round2(rollup.AvgClanRatio),
		AvgAverageRatio:      Round2(rollup.AvgAverageRatio),
		AvgMarginRatio:       Round2(rollup.AvgMarginRatio),
		AvgFpMargin:          Round2(rollup.AvgFpMargin),
		AvgParticipationRate: Round2(rollup.AvgParticipationRate),
		AvgProjectedScore:    Round2(rollup.AvgProjectedScore),
	}
}

// NewMonthlyIndividualPerformances formats the monthly player rollups.
func NewMonthlyIndividualPerformances(rollups []*models.MonthlyIndividualPerformance) []*IndividualPerformance {
	list := make([]*IndividualPerformance, 0, len(rollups))
	for _, rollup := range rollups {
		list = append(list, &IndividualPerformance{
			PlayerId:     rollup.PlayerId,
			Period:       rollup.Period,
			Battles:      rollup.Battles,
			AvgScore:     Round2(rollup.AvgScore),
			AvgFp:        Round2(rollup.AvgFp),
			AvgRatio:     Round2(rollup.AvgRatio),
			AvgRatioRank: Round2(rollup.AvgRatioRank),
		})
	}
	return list
}

// NewYearlyIndividualPerformances formats the yearly player rollups.
func NewYearlyIndividualPerformances(rollups []*models.YearlyIndividualPerformance) []*IndividualPerformance {
	list := make([]*IndividualPerformance, 0, len(rollups))
	for _, rollup := range rollups {
		list = append(list, &IndividualPerformance{
			PlayerId:     rollup.PlayerId,
			Period:       rollup.Period,
			Battles:      rollup.Battles,
			AvgScore:     Round2(rollup.AvgScore),
			AvgFp:        Round2(rollup.AvgFp),
			AvgRatio:     Round2(rollup.AvgRatio),
			AvgRatioRank: Round2(rollup.AvgRatioRank),
		})
	}
	return list
}
