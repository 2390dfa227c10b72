package models

import (
	"time"
)

// BattleRecord is the stored box score of a clan battle plus every
// derived metric. Derived fields are only ever written by the battle
// service; they are never hand-edited.
type BattleRecord struct {
	ID       uint `gorm:"primaryKey"`
	ClanId   uint `gorm:"not null;index:idx_clan_battle,unique"`
	BattleId int  `gorm:"not null;index:idx_clan_battle,unique"`

	// Opponent identity as reported by the game.
	OpponentName       string `gorm:"type:varchar(64)"`
	OpponentCountry    string `gorm:"type:varchar(8)"`
	OpponentExternalId string `gorm:"type:varchar(32)"`

	// Raw box score.
	Score         int
	OpponentScore int
	BaselineFp    int
	TotalFp       int
	OpponentFp    int

	// Derived battle metrics. Stored unrounded.
	Result            int
	ClanRatio         float64
	AverageRatio      float64
	MarginRatio       float64
	FpMargin          float64
	PlayerCount       int
	NonplayingCount   int
	ReserveCount      int
	NonplayingFp      int
	ReserveFp         int
	NonplayingFpRatio float64
	ReserveFpRatio    float64
	ParticipationRate float64
	ProjectedScore    float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PlayerStat is a participant's line in a battle.
type PlayerStat struct {
	ID       uint64 `gorm:"primaryKey"`
	ClanId   uint   `gorm:"not null;index:idx_player_stat,unique"`
	BattleId int    `gorm:"not null;index:idx_player_stat,unique"`
	PlayerId string `gorm:"type:varchar(32);not null;index:idx_player_stat,unique"`

	Rank  int
	Score int
	Fp    int

	// Derived ratio and the rank among all ratios of the battle.
	Ratio     float64
	RatioRank int

	CreatedAt time.Time
}

// NonplayerStat is a roster member that sat out a battle, with the
// administrative action taken on them.
type NonplayerStat struct {
	ID       uint64 `gorm:"primaryKey"`
	ClanId   uint   `gorm:"not null;index:idx_nonplayer_stat,unique"`
	BattleId int    `gorm:"not null;index:idx_nonplayer_stat,unique"`
	PlayerId string `gorm:"type:varchar(32);not null;index:idx_nonplayer_stat,unique"`

	Fp      int
	Reserve bool

	// hold, warn, kick, reserve, pass or left. Consumed by the churn analytics.
	ActionCode string `gorm:"type:varchar(16)"`

	CreatedAt time.Time
}
