package dto

import (
	"time"

	"goclan/pkg/database/models"
	"goclan/pkg/periods"
)

// BattleDetail is the full formatted battle with its stat lines.
type BattleDetail struct {
	Battle     *BattleData      `json:"battle"`
	Players    []*PlayerLine    `json:"players"`
	Nonplayers []*NonplayerLine `json:"nonplayers"`
}

// BattleData is the battle box score plus the derived metrics.
type BattleData struct {
	ClanId             uint      `json:"clanId"`
	BattleId           int       `json:"battleId"`
	Date               time.Time `json:"date"`
	OpponentName       string    `json:"opponentName"`
	OpponentCountry    string    `json:"opponentCountry"`
	OpponentExternalId string    `json:"opponentId"`
	Score              int       `json:"score"`
	OpponentScore      int       `json:"opponentScore"`
	BaselineFp         int       `json:"baselineFp"`
	TotalFp            int       `json:"totalFp"`
	OpponentFp         int       `json:"opponentFp"`
	Result             int       `json:"result"`
	ClanRatio          float64   `json:"clanRatio"`
	AverageRatio       float64   `json:"averageRatio"`
	MarginRatio        float64   `json:"marginRatio"`
	FpMargin           float64   `json:"fpMargin"`
	PlayerCount        int       `json:"playerCount"`
	NonplayingCount    int       `json:"nonplayingCount"`
	ReserveCount       int       `json:"reserveCount"`
	NonplayingFp       int       `json:"nonplayingFp"`
	ReserveFp          int       `json:"reserveFp"`
	NonplayingFpRatio  float64   `json:"nonplayingFpRatio"`
	ReserveFpRatio     float64   `json:"reserveFpRatio"`
	ParticipationRate  float64   `json:"participationRate"`
	ProjectedScore     float64   `json:"projectedScore"`
}

// PlayerLine is one participant line.
type PlayerLine struct {
	PlayerId  string  `json:"playerId"`
	Rank      int     `json:"rank"`
	Score     int     `json:"score"`
	Fp        int     `json:"fp"`
	Ratio     float64 `json:"ratio"`
	RatioRank int     `json:"ratioRank"`
}

// NonplayerLine is one non-participant line.
type NonplayerLine struct {
	PlayerId   string `json:"playerId"`
	Fp         int    `json:"fp"`
	Reserve    bool   `json:"reserve"`
	ActionCode string `json:"actionCode"`
}

// NewBattleData formats a stored battle record, rounding the metrics.
func NewBattleData(battle *models.BattleRecord) *BattleData {
	return &BattleData{
		ClanId:             battle.ClanId,
		BattleId:           battle.BattleId,
		Date:               periods.BattleDate(battle.BattleId),
		OpponentName:       battle.OpponentName,
		OpponentCountry:    battle.OpponentCountry,
		OpponentExternalId: battle.OpponentExternalId,
		Score:              battle.Score,
		OpponentScore:      battle.OpponentScore,
		BaselineFp:         battle.BaselineFp,
		TotalFp:            battle.TotalFp,
		OpponentFp:         battle.OpponentFp,
		Result:             battle.Result,
		ClanRatio:          Round2(battle.ClanRatio),
		AverageRatio:       Round2(battle.AverageRatio),
		MarginRatio:        Round2(battle.MarginRatio),
		FpMargin:           Round2(battle.FpMargin),
		PlayerCount:        battle.PlayerCount,
		NonplayingCount:    battle.NonplayingCount,
		ReserveCount:       battle.ReserveCount,
		NonplayingFp:       battle.NonplayingFp,
		ReserveFp:          battle.ReserveFp,
		NonplayingFpRatio:  Round2(battle.NonplayingFpRatio),
		ReserveFpRatio:     Round2(battle.ReserveFpRatio),
		ParticipationRate:  Round2(battle.ParticipationRate),
		ProjectedScore:     Round2(battle.ProjectedScore),
	}
}

// NewBattleDetail formats a battle with its stat lines.
func NewBattleDetail(battle *models.BattleRecord, players []*models.PlayerStat, nonplayers []*models.NonplayerStat) *BattleDetail {
	detail := &BattleDetail{
		Battle:     NewBattleData(battle),
		Players:    make([]*PlayerLine, 0, len(players)),
		Nonplayers: make([]*NonplayerLine, 0, len(nonplayers)),
	}

	for _, player := range players {
		detail.Players = append(detail.Players, &PlayerLine{
			PlayerId:  player.PlayerId,
			Rank:      player.Rank,
			Score:     player.Score,
			Fp:        player.Fp,
			Ratio:     Round2(player.Ratio),
			RatioRank: player.RatioRank,
		})
	}

	for _, nonplayer := range nonplayers {
		detail.Nonplayers = append(detail.Nonplayers, &NonplayerLine{
			PlayerId:   nonplayer.PlayerId,
			Fp:         nonplayer.Fp,
			Reserve:    nonplayer.Reserve,
			ActionCode: nonplayer.ActionCode,
		})
	}

	return detail
}

// NewBattleList formats a battle list without the stat lines.
func NewBattleList(battles []*models.BattleRecord) []*BattleData {
	list := make([]*BattleData, 0, len(battles))
	for _, battle := range battles {
		list = append(list, NewBattleData(battle))
	}
	return list
}
