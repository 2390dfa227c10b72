package repositories

import (
	"context"
	"errors"

	"goclan/pkg/database/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BattleRepository is the public interface for accessing the battle storage.
type BattleRepository interface {
	GetByClanAndBattleId(ctx context.Context, clanId uint, battleId int) (*models.BattleRecord, error)
	ListByClanAndRange(ctx context.Context, clanId uint, fromBattleId, toBattleId int) ([]*models.BattleRecord, error)
	ListPlayerStats(ctx context.Context, clanId uint, battleId int) ([]*models.PlayerStat, error)
	ListNonplayerStats(ctx context.Context, clanId uint, battleId int) ([]*models.NonplayerStat, error)
	ListPlayerStatsByRange(ctx context.Context, clanId uint, fromBattleId, toBattleId int) ([]*models.PlayerStat, error)
	ListPlayerStatsForPlayer(ctx context.Context, clanId uint, playerId string, fromBattleId, toBattleId int) ([]*models.PlayerStat, error)
	ListNonplayerStatsByRange(ctx context.Context, clanId uint, fromBattleId, toBattleId int) ([]*models.NonplayerStat, error)
	CreateWithStats(ctx context.Context, battle *models.BattleRecord, players []*models.PlayerStat, nonplayers []*models.NonplayerStat, newMembers []*models.RosterMember) error
	UpdateWithStats(ctx context.Context, battle *models.BattleRecord, players []*models.PlayerStat, nonplayers []*models.NonplayerStat) error
	DeleteWithStats(ctx context.Context, clanId uint, battleId int) (int64, error)
}

// battleRepository repository structure.
type battleRepository struct {
	db *gorm.DB
}

// NewBattleRepository creates a battle repository.
func NewBattleRepository(db *gorm.DB) BattleRepository {
	return &battleRepository{db: db}
}

// GetByClanAndBattleId returns the battle record or nil when absent.
func (br *battleRepository) GetByClanAndBattleId(ctx context.Context, clanId uint, battleId int) (*models.BattleRecord, error) {
	var battle models.BattleRecord

	err := br.db.WithContext(ctx).
		Where("clan_id = ? AND battle_id = ?", clanId, battleId).
		First(&battle).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &battle, nil
}

// ListByClanAndRange returns the clan battles inside the battle id bounds,
// ordered chronologically (battle ids are date codes).
func (br *battleRepository) ListByClanAndRange(ctx context.Context, clanId uint, fromBattleId, toBattleId int) ([]*models.BattleRecord, error) {
	var battles []*models.BattleRecord

	err := br.db.WithContext(ctx).
		Where("clan_id = ? AND battle_id BETWEEN ? AND ?", clanId, fromBattleId, toBattleId).
		Order("battle_id asc").
		Find(&battles).Error
	if err != nil {
		return nil, err
	}

	return battles, nil
}

// ListPlayerStats returns the participant lines of one battle.
func (br *battleRepository) ListPlayerStats(ctx context.Context, clanId uint, battleId int) ([]*models.PlayerStat, error) {
	var stats []*models.PlayerStat

	err := br.db.WithContext(ctx).
		Where("clan_id = ? AND battle_id = ?", clanId, battleId).
		Order("ratio_rank asc").
		Find(&stats).Error
	if err != nil {
		return nil, err
	}

	return stats, nil
}

// ListNonplayerStats returns the non-participant lines of one battle.
func (br *battleRepository) ListNonplayerStats(ctx context.Context, clanId uint, battleId int) ([]*models.NonplayerStat, error) {
	var stats []*models.NonplayerStat

	err := br.db.WithContext(ctx).
		Where("clan_id = ? AND battle_id = ?", clanId, battleId).
		Find(&stats).Error
	if err != nil {
		return nil, err
	}

	return stats, nil
}

// ListPlayerStatsByRange returns every participant line of the clan inside
// the battle id bounds, for the individual rollups.
func (br *battleRepository) ListPlayerStatsByRange(ctx context.Context, clanId uint, fromBattleId, toBattleId int) ([]*models.PlayerStat, error) {
	var stats []*models.PlayerStat

	err := br.db.WithContext(ctx).
		Where("clan_id = ? AND battle_id BETWEEN ? AND ?", clanId, fromBattleId, toBattleId).
		Order("battle_id asc").
		Find(&stats).Error
	if err != nil {
		return nil, err
	}

	return stats, nil
}

// ListPlayerStatsForPlayer returns one player's lines inside the battle id bounds.
func (br *battleRepository) ListPlayerStatsForPlayer(ctx context.Context, clanId uint, playerId string, fromBattleId, toBattleId int) ([]*models.PlayerStat, error) {
	var stats []*models.PlayerStat

	err := br.db.WithContext(ctx).
		Where("clan_id = ? AND player_id = ? AND battle_id BETWEEN ? AND ?", clanId, playerId, fromBattleId, toBattleId).
		Order("battle_id asc").
		Find(&stats).Error
	if err != nil {
		return nil, err
	}

	return stats, nil
}

// ListNonplayerStatsByRange returns every non-participant line of the clan
// inside the battle id bounds, for the churn analytics.
func (br *battleRepository) ListNonplayerStatsByRange(ctx context.Context, clanId uint, fromBattleId, toBattleId int) ([]*models.NonplayerStat, error) {
	var stats []*models.NonplayerStat

	err := br.db.WithContext(ctx).
		Where("clan_id = ? AND battle_id BETWEEN ? AND ?", clanId, fromBattleId, toBattleId).
		Order("battle_id asc").
		Find(&stats).Error
	if err != nil {
		return nil, err
	}

	return stats, nil
}

// CreateWithStats persists the battle, its stat rows and any first-seen
// roster members as a single transaction.
func (br *battleRepository) CreateWithStats(ctx context.Context, battle *models.BattleRecord, players []*models.PlayerStat, nonplayers []*models.NonplayerStat, newMembers []*models.RosterMember) error {
	return br.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(battle).Error; err != nil {
			return err
		}

		if len(players) > 0 {
			if err := tx.Create(players).Error; err != nil {
				return err
			}
		}

		if len(nonplayers) > 0 {
			if err := tx.Create(nonplayers).Error; err != nil {
				return err
			}
		}

		// Members already on the roster are left untouched.
		if len(newMembers) > 0 {
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "clan_id"}, {Name: "player_id"}},
				DoNothing: true,
			}).Create(newMembers).Error
			if err != nil {
				return err
			}
		}

		return nil
	})
}

// UpdateWithStats replaces the battle row and all its child stat rows
// as a single transaction.
func (br *battleRepository) UpdateWithStats(ctx context.Context, battle *models.BattleRecord, players []*models.PlayerStat, nonplayers []*models.NonplayerStat) error {
	return br.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(battle).Error; err != nil {
			return err
		}

		err := tx.Where("clan_id = ? AND battle_id = ?", battle.ClanId, battle.BattleId).
			Delete(&models.PlayerStat{}).Error
		if err != nil {
			return err
		}

		err = tx.Where("clan_id = ? AND battle_id = ?", battle.ClanId, battle.BattleId).
			Delete(&models.NonplayerStat{}).Error
		if err != nil {
			return err
		}

		if len(players) > 0 {
			if err := tx.Create(players).Error; err != nil {
				return err
			}
		}

		if len(nonplayers) > 0 {
			if err := tx.Create(nonplayers).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// DeleteWithStats removes the battle and its child stat rows, returning
// how many battle rows were removed.
func (br *battleRepository) DeleteWithStats(ctx context.Context, clanId uint, battleId int) (int64, error) {
	var deleted int64

	err := br.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("clan_id = ? AND battle_id = ?", clanId, battleId).
			Delete(&models.BattleRecord{})
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected

		err := tx.Where("clan_id = ? AND battle_id = ?", clanId, battleId).
			Delete(&models.PlayerStat{}).Error
		if err != nil {
			return err
		}

		return tx.Where("clan_id = ? AND battle_id = ?", clanId, battleId).
			Delete(&models.NonplayerStat{}).Error
	})

	return deleted, err
}
