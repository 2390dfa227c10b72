package models

import (
	"time"
)

// RosterMember is a clan member lifecycle row. Exactly one of
// {Active, LeftDate set, KickedDate set} holds at any time.
type RosterMember struct {
	ID       uint   `gorm:"primaryKey"`
	ClanId   uint   `gorm:"not null;index:idx_roster_member,unique"`
	PlayerId string `gorm:"type:varchar(32);not null;index:idx_roster_member,unique"`

	Name string `gorm:"type:varchar(64)"`

	JoinedDate time.Time
	LeftDate   *time.Time
	KickedDate *time.Time
	Active     bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
