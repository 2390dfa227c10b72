package repositories

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"goclan/pkg/database/models"

	"gorm.io/datatypes"
)

// Append records one audit fact best effort. Audit is a side channel:
// a failed append is logged and must never fail the operation it records.
func Append(ctx context.Context, repo AuditRepository, actorId, action, entityType, entityId string, clanId uint, details map[string]any) {
	var blob datatypes.JSON
	if details != nil {
		if j, err := json.Marshal(details); err == nil {
			blob = datatypes.JSON(j)
		}
	}

	entry := &models.AuditLog{
		ActorId:    actorId,
		Action:     action,
		EntityType: entityType,
		EntityId:   entityId,
		ClanId:     clanId,
		Details:    blob,
		CreatedAt:  time.Now().UTC(),
	}

	if err := repo.Create(ctx, entry); err != nil {
		log.Printf("couldn't append the audit fact %s: %v", action, err)
	}
}
