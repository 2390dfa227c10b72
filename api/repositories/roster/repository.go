package repositories

import (
	"context"
	"errors"

	"goclan/pkg/database/models"

	"gorm.io/gorm"
)

// RosterRepository is the public interface for accessing the roster storage.
type RosterRepository interface {
	GetByClanAndPlayerId(ctx context.Context, clanId uint, playerId string) (*models.RosterMember, error)
	ListByClan(ctx context.Context, clanId uint) ([]*models.RosterMember, error)
	Create(ctx context.Context, member *models.RosterMember) error
	Save(ctx context.Context, member *models.RosterMember) error
}

// rosterRepository repository structure.
type rosterRepository struct {
	db *gorm.DB
}

// NewRosterRepository creates a roster repository.
func NewRosterRepository(db *gorm.DB) RosterRepository {
	return &rosterRepository{db: db}
}

// GetByClanAndPlayerId returns the member or nil when absent.
func (rr *rosterRepository) GetByClanAndPlayerId(ctx context.Context, clanId uint, playerId string) (*models.RosterMember, error) {
	var member models.RosterMember

	err := rr.db.WithContext(ctx).
		Where("clan_id = ? AND player_id = ?", clanId, playerId).
		First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &member, nil
}

// ListByClan returns every member row of the clan, past and present.
func (rr *rosterRepository) ListByClan(ctx context.Context, clanId uint) ([]*models.RosterMember, error) {
	var members []*models.RosterMember

	err := rr.db.WithContext(ctx).
		Where("clan_id = ?", clanId).
		Order("joined_date asc").
		Find(&members).Error
	if err != nil {
		return nil, err
	}

	return members, nil
}

// Create inserts a new member row.
func (rr *rosterRepository) Create(ctx context.Context, member *models.RosterMember) error {
	return rr.db.WithContext(ctx).Create(member).Error
}

// Save persists the full member row.
func (rr *rosterRepository) Save(ctx context.Context, member *models.RosterMember) error {
	return rr.db.WithContext(ctx).Save(member).Error
}
