package models

import (
	"time"
)

// BattleSchedule is the shared battle calendar. One entry serves every
// clan: start and end are fixed by the calendar, not by submitters.
type BattleSchedule struct {
	// Battle ids are calendar date codes (YYYYMMDD).
	BattleId  int `gorm:"primaryKey;autoIncrement:false"`
	StartTime time.Time
	EndTime   time.Time

	CreatedAt time.Time
}
