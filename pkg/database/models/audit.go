package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AuditLog is an append-only fact about a state-changing action.
// The engine only ever writes these, it never reads them back.
type AuditLog struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	ActorId    string    `gorm:"type:varchar(64);not null"`
	Action     string    `gorm:"type:varchar(64);not null"`
	EntityType string    `gorm:"type:varchar(32);not null"`
	EntityId   string    `gorm:"type:varchar(64)"`
	ClanId     uint      `gorm:"index"`
	Details    datatypes.JSON

	CreatedAt time.Time
}
