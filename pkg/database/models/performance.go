package models

import (
	"time"
)

// MonthlyClanPerformance is the materialized clan rollup for one month.
// Created lazily on first read, regenerated only through recalculation.
type MonthlyClanPerformance struct {
	ID     uint   `gorm:"primaryKey"`
	ClanId uint   `gorm:"not null;index:idx_monthly_clan,unique"`
	Period string `gorm:"type:varchar(6);not null;index:idx_monthly_clan,unique"`

	Battles int
	Wins    int
	Losses  int
	Ties    int

	AvgScore             float64
	AvgOpponentScore     float64
	AvgBaselineFp        float64
	AvgTotalFp           float64
	AvgOpponentFp        float64
	AvgClanRatio         float64
	AvgAverageRatio      float64
	AvgMarginRatio       float64
	AvgFpMargin          float64
	AvgParticipationRate float64
	AvgProjectedScore    float64

	// Two state lock: open (false) or complete (true).
	Complete bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// YearlyClanPerformance is the yearly clan rollup. Years carry no lock.
type YearlyClanPerformance struct {
	ID     uint   `gorm:"primaryKey"`
	ClanId uint   `gorm:"not null;index:idx_yearly_clan,unique"`
	Period string `gorm:"type:varchar(4);not null;index:idx_yearly_clan,unique"`

	Battles int
	Wins    int
	Losses  int
	Ties    int

	AvgScore             float64
	AvgOpponentScore     float64
	AvgBaselineFp        float64
	AvgTotalFp           float64
	AvgOpponentFp        float64
	AvgClanRatio         float64
	AvgAverageRatio      float64
	AvgMarginRatio       float64
	AvgFpMargin          float64
	AvgParticipationRate float64
	AvgProjectedScore    float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// MonthlyIndividualPerformance is one player's monthly rollup.
type MonthlyIndividualPerformance struct {
	ID       uint   `gorm:"primaryKey"`
	ClanId   uint   `gorm:"not null;index:idx_monthly_player,unique"`
	Period   string `gorm:"type:varchar(6);not null;index:idx_monthly_player,unique"`
	PlayerId string `gorm:"type:varchar(32);not null;index:idx_monthly_player,unique"`

	// Battles played, used as the participation denominator downstream.
	Battles int

	AvgScore     float64
	AvgFp        float64
	AvgRatio     float64
	AvgRatioRank float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// YearlyIndividualPerformance is one player's yearly rollup.
type YearlyIndividualPerformance struct {
	ID       uint   `gorm:"primaryKey"`
	ClanId   uint   `gorm:"not null;index:idx_yearly_player,unique"`
	Period   string `gorm:"type:varchar(4);not null;index:idx_yearly_player,unique"`
	PlayerId string `gorm:"type:varchar(32);not null;index:idx_yearly_player,unique"`

	Battles int

	AvgScore     float64
	AvgFp        float64
	AvgRatio     float64
	AvgRatioRank float64

	CreatedAt time.Time
	UpdatedAt time.Time
}
