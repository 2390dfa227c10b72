package repositories

import (
	"context"

	"goclan/pkg/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuditRepository is the append-only sink for audit facts.
type AuditRepository interface {
	Create(ctx context.Context, entry *models.AuditLog) error
}

// auditRepository repository structure.
type auditRepository struct {
	db *gorm.DB
}

// NewAuditRepository creates a audit repository.
func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &auditRepository{db: db}
}

// Create appends one audit fact.
func (ar *auditRepository) Create(ctx context.Context, entry *models.AuditLog) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}

	return ar.db.WithContext(ctx).Create(entry).Error
}
