package dto

import (
	"time"
)

// TrendPoint is one point of a metric time series.
type TrendPoint struct {
	Date  time.Time `json:"date"`
	Label string    `json:"label"`
	Value float64   `json:"value"`
}

// MarginPoint is a margin series point with its result direction.
// For monthly grouping the result is the majority vote of the group.
type MarginPoint struct {
	Date   time.Time `json:"date"`
	Label  string    `json:"label"`
	Margin float64   `json:"margin"`
	Result int       `json:"result"`
}

// TrendSummary is the aggregate block of a trend report.
type TrendSummary struct {
	Battles int `json:"battles"`
	Wins    int `json:"wins"`
	Losses  int `json:"losses"`
	Ties    int `json:"ties"`

	WinRate  float64 `json:"winRate"`
	LossRate float64 `json:"lossRate"`
	TieRate  float64 `json:"tieRate"`

	StartPower         float64 `json:"startPower"`
	EndPower           float64 `json:"endPower"`
	PowerChangePercent float64 `json:"powerChangePercent"`

	RatioMin float64 `json:"ratioMin"`
	RatioMax float64 `json:"ratioMax"`
	RatioAvg float64 `json:"ratioAvg"`

	ParticipationMin float64 `json:"participationMin"`
	ParticipationMax float64 `json:"participationMax"`
	ParticipationAvg float64 `json:"participationAvg"`

	// Averaged separately; 0 when that outcome never occurred.
	AvgWinMargin  float64 `json:"avgWinMargin"`
	AvgLossMargin float64 `json:"avgLossMargin"`

	Classification string `json:"classification"`
}

// TrendReport is the full response of the clan trend endpoint.
type TrendReport struct {
	ClanId uint   `json:"clanId"`
	Mode   string `json:"mode"`

	Power         []*TrendPoint  `json:"power"`
	Ratio         []*TrendPoint  `json:"ratio"`
	Participation []*TrendPoint  `json:"participation"`
	Margin        []*MarginPoint `json:"margin"`

	Summary *TrendSummary `json:"summary"`
}

// PlayerTrendReport is the per-player variant.
type PlayerTrendReport struct {
	ClanId   uint   `json:"clanId"`
	PlayerId string `json:"playerId"`

	Ratio []*TrendPoint `json:"ratio"`

	Battles        int     `json:"battles"`
	AvgScore       float64 `json:"avgScore"`
	AvgFp          float64 `json:"avgFp"`
	AvgRatio       float64 `json:"avgRatio"`
	Classification string  `json:"classification"`
}

// OpponentAggregate is one opponent's matchup line. Opponents met three
// times or more in range are flagged as rivals.
type OpponentAggregate struct {
	OpponentName string  `json:"opponentName"`
	Country      string  `json:"country"`
	Battles      int     `json:"battles"`
	Wins         int     `json:"wins"`
	Losses       int     `json:"losses"`
	Ties         int     `json:"ties"`
	AvgMargin    float64 `json:"avgMargin"`
	Rival        bool    `json:"rival"`
}

// CountryAggregate is the opponent-country reduction.
type CountryAggregate struct {
	Country string `json:"country"`
	Battles int    `json:"battles"`
	Wins    int    `json:"wins"`
	Losses  int    `json:"losses"`
	Ties    int    `json:"ties"`
}

// MatchupReport is the response of the matchup endpoint.
type MatchupReport struct {
	ClanId    uint                 `json:"clanId"`
	Opponents []*OpponentAggregate `json:"opponents"`
	Countries []*CountryAggregate  `json:"countries"`
}
