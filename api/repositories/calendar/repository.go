package repositories

import (
	"context"
	"errors"

	"goclan/pkg/database/models"

	"gorm.io/gorm"
)

// CalendarRepository is the lookup into the shared battle schedule.
type CalendarRepository interface {
	GetByBattleId(ctx context.Context, battleId int) (*models.BattleSchedule, error)
	ListAll(ctx context.Context) ([]*models.BattleSchedule, error)
}

// calendarRepository repository structure.
type calendarRepository struct {
	db *gorm.DB
}

// NewCalendarRepository creates a calendar repository.
func NewCalendarRepository(db *gorm.DB) CalendarRepository {
	return &calendarRepository{db: db}
}

// GetByBattleId returns the schedule entry or nil when the battle id
// isn't on the calendar.
func (cr *calendarRepository) GetByBattleId(ctx context.Context, battleId int) (*models.BattleSchedule, error) {
	var schedule models.BattleSchedule

	err := cr.db.WithContext(ctx).
		Where("battle_id = ?", battleId).
		First(&schedule).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &schedule, nil
}

// ListAll returns the entire calendar, used by the cache revalidation.
func (cr *calendarRepository) ListAll(ctx context.Context) ([]*models.BattleSchedule, error) {
	var schedules []*models.BattleSchedule

	err := cr.db.WithContext(ctx).
		Order("battle_id asc").
		Find(&schedules).Error
	if err != nil {
		return nil, err
	}

	return schedules, nil
}
