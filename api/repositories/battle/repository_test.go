package repositories

import (
	"context"
	"testing"

	"goclan/internal/testutil"
	"goclan/pkg/database/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestNewBattleRepository(t *testing.T) {
	repository := NewBattleRepository(&gorm.DB{})
	assert.NotNil(t, repository)
}

func seedBattle(clanId uint, battleId int) (*models.BattleRecord, []*models.PlayerStat, []*models.NonplayerStat) {
	battle := &models.BattleRecord{
		ClanId:       clanId,
		BattleId:     battleId,
		OpponentName: "Night Owls",
		Score:        50000,
		BaselineFp:   2500,
		Result:       1,
	}

	players := []*models.PlayerStat{
		{ClanId: clanId, BattleId: battleId, PlayerId: "p1", Score: 30000, Fp: 1200, Ratio: 250, RatioRank: 1},
		{ClanId: clanId, BattleId: battleId, PlayerId: "p2", Score: 20000, Fp: 1000, Ratio: 200, RatioRank: 2},
	}

	nonplayers := []*models.NonplayerStat{
		{ClanId: clanId, BattleId: battleId, PlayerId: "p3", Fp: 200, ActionCode: "warn"},
	}

	return battle, players, nonplayers
}

func TestBattleLifecycle(t *testing.T) {
	db, cleanup := testutil.NewTestConnection(t)
	defer cleanup()

	repository := NewBattleRepository(db)
	ctx := context.Background()

	battle, players, nonplayers := seedBattle(7, 20240315)
	members := []*models.RosterMember{
		{ClanId: 7, PlayerId: "p1", Active: true},
		{ClanId: 7, PlayerId: "p2", Active: true},
		{ClanId: 7, PlayerId: "p3", Active: true},
	}

	err := repository.CreateWithStats(ctx, battle, players, nonplayers, members)
	assert.NoError(t, err)

	t.Run("fetch by clan and battle id", func(t *testing.T) {
		found, err := repository.GetByClanAndBattleId(ctx, 7, 20240315)

		assert.NoError(t, err)
		assert.NotNil(t, found)
		assert.Equal(t, "Night Owls", found.OpponentName)
	})

	t.Run("absent battle returns nil without error", func(t *testing.T) {
		found, err := repository.GetByClanAndBattleId(ctx, 7, 20240101)

		assert.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("duplicate insert violates the unique index", func(t *testing.T) {
		dup, dupPlayers, dupNonplayers := seedBattle(7, 20240315)

		err := repository.CreateWithStats(ctx, dup, dupPlayers, dupNonplayers, nil)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate key")
	})

	t.Run("known members survive a re-submission untouched", func(t *testing.T) {
		second, secondPlayers, secondNonplayers := seedBattle(7, 20240316)

		err := repository.CreateWithStats(ctx, second, secondPlayers, secondNonplayers, []*models.RosterMember{
			{ClanId: 7, PlayerId: "p1", Active: true},
			{ClanId: 7, PlayerId: "p9", Active: true},
		})
		assert.NoError(t, err)

		var count int64
		db.Model(&models.RosterMember{}).Where("clan_id = ?", 7).Count(&count)
		assert.Equal(t, int64(4), count)
	})

	t.Run("update replaces the stat lines", func(t *testing.T) {
		stored, err := repository.GetByClanAndBattleId(ctx, 7, 20240315)
		assert.NoError(t, err)

		stored.Score = 52000
		newPlayers := []*models.PlayerStat{
			{ClanId: 7, BattleId: 20240315, PlayerId: "p1", Score: 52000, Fp: 1200, Ratio: 433.33, RatioRank: 1},
		}

		err = repository.UpdateWithStats(ctx, stored, newPlayers, nil)
		assert.NoError(t, err)

		stats, err := repository.ListPlayerStats(ctx, 7, 20240315)
		assert.NoError(t, err)
		assert.Len(t, stats, 1)
		assert.Equal(t, 52000, stats[0].Score)
	})

	t.Run("range listing is ordered and bounded", func(t *testing.T) {
		battles, err := repository.ListByClanAndRange(ctx, 7, 20240301, 20240331)

		assert.NoError(t, err)
		assert.Len(t, battles, 2)
		assert.Equal(t, 20240315, battles[0].BattleId)
		assert.Equal(t, 20240316, battles[1].BattleId)
	})

	t.Run("delete removes the battle and its children", func(t *testing.T) {
		deleted, err := repository.DeleteWithStats(ctx, 7, 20240315)

		assert.NoError(t, err)
		assert.Equal(t, int64(1), deleted)

		stats, err := repository.ListPlayerStats(ctx, 7, 20240315)
		assert.NoError(t, err)
		assert.Empty(t, stats)

		// Deleting again reports zero rows.
		deleted, err = repository.DeleteWithStats(ctx, 7, 20240315)
		assert.NoError(t, err)
		assert.Equal(t, int64(0), deleted)
	})
}
