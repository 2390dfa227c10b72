package repositories

import (
	"context"
	"errors"

	"goclan/pkg/database/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PerformanceRepository is the public interface for the four rollup tables.
//
// The Create* calls are conflict tolerant: two concurrent first readers of
// the same absent period may both compute the rollup, and the second insert
// must degrade to a no-op instead of erroring or duplicating. Callers
// re-fetch after creating. Clan and player rollups of a period always move
// together, one transaction per call, so a period is never observable half
// materialized.
type PerformanceRepository interface {
	GetMonthlyClan(ctx context.Context, clanId uint, period string) (*models.MonthlyClanPerformance, error)
	CreateMonthly(ctx context.Context, clan *models.MonthlyClanPerformance, players []*models.MonthlyIndividualPerformance) error
	SetMonthlyClanComplete(ctx context.Context, clanId uint, period string, complete bool) (int64, error)

	GetYearlyClan(ctx context.Context, clanId uint, period string) (*models.YearlyClanPerformance, error)
	CreateYearly(ctx context.Context, clan *models.YearlyClanPerformance, players []*models.YearlyIndividualPerformance) error

	ListMonthlyIndividual(ctx context.Context, clanId uint, period string) ([]*models.MonthlyIndividualPerformance, error)
	ListYearlyIndividual(ctx context.Context, clanId uint, period string) ([]*models.YearlyIndividualPerformance, error)

	ReplaceMonthly(ctx context.Context, clanId uint, period string, clan *models.MonthlyClanPerformance, players []*models.MonthlyIndividualPerformance) error
	ReplaceYearly(ctx context.Context, clanId uint, period string, clan *models.YearlyClanPerformance, players []*models.YearlyIndividualPerformance) error
}

// performanceRepository repository structure.
type performanceRepository struct {
	db *gorm.DB
}

// NewPerformanceRepository creates a performance repository.
func NewPerformanceRepository(db *gorm.DB) PerformanceRepository {
	return &performanceRepository{db: db}
}

// GetMonthlyClan returns the monthly clan rollup or nil when absent.
func (pr *performanceRepository) GetMonthlyClan(ctx context.Context, clanId uint, period string) (*models.MonthlyClanPerformance, error) {
	var rollup models.MonthlyClanPerformance

	err := pr.db.WithContext(ctx).
		Where("clan_id = ? AND period = ?", clanId, period).
		First(&rollup).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &rollup, nil
}

// CreateMonthly inserts the clan rollup and its player rollups in one
// transaction, ignoring concurrent duplicates. The clan row is the
// materialization marker, so it must never commit without its players.
func (pr *performanceRepository) CreateMonthly(ctx context.Context, clan *models.MonthlyClanPerformance, players []*models.MonthlyIndividualPerformance) error {
	return pr.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "clan_id"}, {Name: "period"}},
			DoNothing: true,
		}).Create(clan).Error
		if err != nil {
			return err
		}

		if len(players) == 0 {
			return nil
		}

		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "clan_id"}, {Name: "period"}, {Name: "player_id"}},
			DoNothing: true,
		}).Create(players).Error
	})
}

// SetMonthlyClanComplete flips the completion lock, returning how many rows matched.
func (pr *performanceRepository) SetMonthlyClanComplete(ctx context.Context, clanId uint, period string, complete bool) (int64, error) {
	result := pr.db.WithContext(ctx).
		Model(&models.MonthlyClanPerformance{}).
		Where("clan_id = ? AND period = ?", clanId, period).
		Update("complete", complete)

	return result.RowsAffected, result.Error
}

// GetYearlyClan returns the yearly clan rollup or nil when absent.
func (pr *performanceRepository) GetYearlyClan(ctx context.Context, clanId uint, period string) (*models.YearlyClanPerformance, error) {
	var rollup models.YearlyClanPerformance

	err := pr.db.WithContext(ctx).
		Where("clan_id = ? AND period = ?", clanId, period).
		First(&rollup).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &rollup, nil
}

// CreateYearly is the yearly counterpart of CreateMonthly.
func (pr *performanceRepository) CreateYearly(ctx context.Context, clan *models.YearlyClanPerformance, players []*models.YearlyIndividualPerformance) error {
	return pr.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "clan_id"}, {Name: "period"}},
			DoNothing: true,
		}).Create(clan).Error
		if err != nil {
			return err
		}

		if len(players) == 0 {
			return nil
		}

		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "clan_id"}, {Name: "period"}, {Name: "player_id"}},
			DoNothing: true,
		}).Create(players).Error
	})
}

// ListMonthlyIndividual returns every player rollup of the clan month.
func (pr *performanceRepository) ListMonthlyIndividual(ctx context.Context, clanId uint, period string) ([]*models.MonthlyIndividualPerformance, error) {
	var rollups []*models.MonthlyIndividualPerformance

	err := pr.db.WithContext(ctx).
		Where("clan_id = ? AND period = ?", clanId, period).
		Order("avg_ratio desc").
		Find(&rollups).Error
	if err != nil {
		return nil, err
	}

	return rollups, nil
}

// ListYearlyIndividual returns every player rollup of the clan year.
func (pr *performanceRepository) ListYearlyIndividual(ctx context.Context, clanId uint, period string) ([]*models.YearlyIndividualPerformance, error) {
	var rollups []*models.YearlyIndividualPerformance

	err := pr.db.WithContext(ctx).
		Where("clan_id = ? AND period = ?", clanId, period).
		Order("avg_ratio desc").
		Find(&rollups).Error
	if err != nil {
		return nil, err
	}

	return rollups, nil
}

// ReplaceMonthly swaps the clan and player rollups of a month inside one
// transaction, so other readers never observe the period as absent.
func (pr *performanceRepository) ReplaceMonthly(ctx context.Context, clanId uint, period string, clan *models.MonthlyClanPerformance, players []*models.MonthlyIndividualPerformance) error {
	return pr.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("clan_id = ? AND period = ?", clanId, period).
			Delete(&models.MonthlyClanPerformance{}).Error
		if err != nil {
			return err
		}

		err = tx.Where("clan_id = ? AND period = ?", clanId, period).
			Delete(&models.MonthlyIndividualPerformance{}).Error
		if err != nil {
			return err
		}

		if err := tx.Create(clan).Error; err != nil {
			return err
		}

		if len(players) > 0 {
			if err := tx.Create(players).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// ReplaceYearly swaps the clan and player rollups of a year inside one transaction.
func (pr *performanceRepository) ReplaceYearly(ctx context.Context, clanId uint, period string, clan *models.YearlyClanPerformance, players []*models.YearlyIndividualPerformance) error {
	return pr.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("clan_id = ? AND period = ?", clanId, period).
			Delete(&models.YearlyClanPerformance{}).Error
		if err != nil {
			return err
		}

		err = tx.Where("clan_id = ? AND period = ?", clanId, period).
			Delete(&models.YearlyIndividualPerformance{}).Error
		if err != nil {
			return err
		}

		if err := tx.Create(clan).Error; err != nil {
			return err
		}

		if len(players) > 0 {
			if err := tx.Create(players).Error; err != nil {
				return err
			}
		}

		return nil
	})
}
