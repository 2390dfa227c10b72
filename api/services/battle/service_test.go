package battleservice

import (
	"context"
	"errors"
	"testing"
	"time"

	"goclan/api/filters"
	"goclan/api/services/testutil"
	"goclan/pkg/apperrors"
	"goclan/pkg/database/models"
	"goclan/pkg/messages"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func scheduleFor(battleId int) *models.BattleSchedule {
	return &models.BattleSchedule{
		BattleId:  battleId,
		StartTime: time.Date(2024, 3, 15, 20, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2024, 3, 15, 21, 0, 0, 0, time.UTC),
	}
}

func TestCreateBattleValidation(t *testing.T) {
	ctx := context.Background()

	t.Run("nil filter", func(t *testing.T) {
		service, _, _, _, _ := setupTestService()

		result, err := service.CreateBattle(ctx, nil)

		assert.Nil(t, result)
		assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	})

	t.Run("not on the calendar", func(t *testing.T) {
		service, _, calendarRepo, _, _ := setupTestService()
		filter := referenceSubmission(7, 20240315)

		calendarRepo.On("GetByBattleId", ctx, filter.BattleId).Return(nil, nil)

		result, err := service.CreateBattle(ctx, filter)

		assert.Nil(t, result)
		assert.Equal(t, apperrors.KindSchedule, apperrors.KindOf(err))
		assert.EqualError(t, err, messages.BattleNotScheduled)
		testutil.VerifyAllMocks(t, calendarRepo)
	})

	t.Run("already recorded", func(t *testing.T) {
		service, battleRepo, calendarRepo, _, _ := setupTestService()
		filter := referenceSubmission(7, 20240315)

		calendarRepo.On("GetByBattleId", ctx, filter.BattleId).Return(scheduleFor(filter.BattleId), nil)
		battleRepo.On("GetByClanAndBattleId", ctx, filter.ClanId, filter.BattleId).
			Return(&models.BattleRecord{ClanId: filter.ClanId, BattleId: filter.BattleId}, nil)

		result, err := service.CreateBattle(ctx, filter)

		assert.Nil(t, result)
		assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
		assert.EqualError(t, err, messages.BattleAlreadyRecorded)
		testutil.VerifyAllMocks(t, battleRepo, calendarRepo)
	})

	t.Run("concurrent duplicate collapses to conflict", func(t *testing.T) {
		service, battleRepo, calendarRepo, _, _ := setupTestService()
		filter := referenceSubmission(7, 20240315)

		calendarRepo.On("GetByBattleId", ctx, filter.BattleId).Return(scheduleFor(filter.BattleId), nil)
		battleRepo.On("GetByClanAndBattleId", ctx, filter.ClanId, filter.BattleId).Return(nil, nil)
		battleRepo.On("CreateWithStats", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(errors.New(`duplicate key value violates unique constraint "idx_clan_battle"`))

		result, err := service.CreateBattle(ctx, filter)

		assert.Nil(t, result)
		assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
		testutil.VerifyAllMocks(t, battleRepo, calendarRepo)
	})
}

func TestCreateBattleDerivation(t *testing.T) {
	ctx := context.Background()
	service, battleRepo, calendarRepo, auditRepo, trendCache := setupTestService()
	filter := referenceSubmission(7, 20240315)

	var persisted *models.BattleRecord
	var persistedPlayers []*models.PlayerStat
	var persistedMembers []*models.RosterMember

	calendarRepo.On("GetByBattleId", ctx, filter.BattleId).Return(scheduleFor(filter.BattleId), nil)
	battleRepo.On("GetByClanAndBattleId", ctx, filter.ClanId, filter.BattleId).Return(nil, nil)
	battleRepo.On("CreateWithStats", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			persisted = args.Get(1).(*models.BattleRecord)
			persistedPlayers = args.Get(2).([]*models.PlayerStat)
			persistedMembers = args.Get(4).([]*models.RosterMember)
		}).
		Return(nil)
	auditRepo.On("Create", ctx, mock.Anything).Return(nil)
	trendCache.On("Invalidate", ctx, filter.ClanId).Return(nil)

	result, err := service.CreateBattle(ctx, filter)

	assert.NoError(t, err)
	assert.NotNil(t, result)

	// Battle level derivation.
	assert.Equal(t, 1, persisted.Result)
	assert.Equal(t, 2500, persisted.TotalFp)
	assert.InDelta(t, 200.0, persisted.ClanRatio, 0.0001)
	assert.InDelta(t, 200.0, persisted.AverageRatio, 0.0001)
	assert.InDelta(t, 10.0, persisted.MarginRatio, 0.0001)
	assert.InDelta(t, -4.0, persisted.FpMargin, 0.0001)
	assert.Equal(t, 2, persisted.PlayerCount)
	assert.Equal(t, 1, persisted.NonplayingCount)
	assert.Equal(t, 1, persisted.ReserveCount)
	assert.Equal(t, 200, persisted.NonplayingFp)
	assert.Equal(t, 100, persisted.ReserveFp)
	assert.InDelta(t, 8.0, persisted.NonplayingFpRatio, 0.0001)
	assert.InDelta(t, 4.0, persisted.ReserveFpRatio, 0.0001)
	assert.InDelta(t, 50.0, persisted.ParticipationRate, 0.0001)
	assert.InDelta(t, 54000.0, persisted.ProjectedScore, 0.0001)

	// Player level derivation.
	assert.Len(t, persistedPlayers, 2)
	assert.InDelta(t, 250.0, persistedPlayers[0].Ratio, 0.0001)
	assert.Equal(t, 1, persistedPlayers[0].RatioRank)
	assert.InDelta(t, 200.0, persistedPlayers[1].Ratio, 0.0001)
	assert.Equal(t, 2, persistedPlayers[1].RatioRank)

	// Everyone on the submission becomes a roster candidate.
	assert.Len(t, persistedMembers, 4)
	assert.True(t, persistedMembers[0].Active)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), persistedMembers[0].JoinedDate)

	// The response is rounded, the stored record stays raw.
	assert.InDelta(t, 200.0, result.Battle.ClanRatio, 0.0001)

	testutil.VerifyAllMocks(t, battleRepo, calendarRepo, auditRepo, trendCache)
}

func TestCreateBattleAuditFailureIsNonFatal(t *testing.T) {
	ctx := context.Background()
	service, battleRepo, calendarRepo, auditRepo, trendCache := setupTestService()
	filter := referenceSubmission(7, 20240315)

	calendarRepo.On("GetByBattleId", ctx, filter.BattleId).Return(scheduleFor(filter.BattleId), nil)
	battleRepo.On("GetByClanAndBattleId", ctx, filter.ClanId, filter.BattleId).Return(nil, nil)
	battleRepo.On("CreateWithStats", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	auditRepo.On("Create", ctx, mock.Anything).Return(errors.New("audit sink down"))
	trendCache.On("Invalidate", ctx, filter.ClanId).Return(nil)

	result, err := service.CreateBattle(ctx, filter)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	testutil.VerifyAllMocks(t, battleRepo, calendarRepo, auditRepo, trendCache)
}

func TestUpdateBattle(t *testing.T) {
	ctx := context.Background()

	t.Run("battle not found", func(t *testing.T) {
		service, battleRepo, _, _, _ := setupTestService()
		filter := referenceSubmission(7, 20240315)

		battleRepo.On("GetByClanAndBattleId", ctx, filter.ClanId, filter.BattleId).Return(nil, nil)

		result, err := service.UpdateBattle(ctx, filter)

		assert.Nil(t, result)
		assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
		testutil.VerifyAllMocks(t, battleRepo)
	})

	t.Run("re-derives everything and keeps the row identity", func(t *testing.T) {
		service, battleRepo, _, auditRepo, trendCache := setupTestService()
		filter := referenceSubmission(7, 20240315)
		filter.Score = 40000
		filter.OpponentScore = 60000

		existing := &models.BattleRecord{
			ID:       42,
			ClanId:   filter.ClanId,
			BattleId: filter.BattleId,
			// Stale derived values that must not survive the update.
			Result:    1,
			ClanRatio: 999,
		}

		var persisted *models.BattleRecord
		battleRepo.On("GetByClanAndBattleId", ctx, filter.ClanId, filter.BattleId).Return(existing, nil)
		battleRepo.On("UpdateWithStats", ctx, mock.Anything, mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				persisted = args.Get(1).(*models.BattleRecord)
			}).
			Return(nil)
		auditRepo.On("Create", ctx, mock.Anything).Return(nil)
		trendCache.On("Invalidate", ctx, filter.ClanId).Return(nil)

		result, err := service.UpdateBattle(ctx, filter)

		assert.NoError(t, err)
		assert.NotNil(t, result)
		assert.Equal(t, uint(42), persisted.ID)
		assert.Equal(t, -1, persisted.Result)
		assert.InDelta(t, 160.0, persisted.ClanRatio, 0.0001)
		testutil.VerifyAllMocks(t, battleRepo, auditRepo, trendCache)
	})
}

func TestDeleteBattle(t *testing.T) {
	ctx := context.Background()

	t.Run("battle not found", func(t *testing.T) {
		service, battleRepo, _, _, _ := setupTestService()

		battleRepo.On("DeleteWithStats", ctx, uint(7), 20240315).Return(int64(0), nil)

		err := service.DeleteBattle(ctx, 7, 20240315, "officer-1")

		assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
		testutil.VerifyAllMocks(t, battleRepo)
	})

	t.Run("deletes and invalidates", func(t *testing.T) {
		service, battleRepo, _, auditRepo, trendCache := setupTestService()

		battleRepo.On("DeleteWithStats", ctx, uint(7), 20240315).Return(int64(1), nil)
		auditRepo.On("Create", ctx, mock.Anything).Return(nil)
		trendCache.On("Invalidate", ctx, uint(7)).Return(nil)

		err := service.DeleteBattle(ctx, 7, 20240315, "officer-1")

		assert.NoError(t, err)
		testutil.VerifyAllMocks(t, battleRepo, auditRepo, trendCache)
	})
}

func TestGetBattle(t *testing.T) {
	ctx := context.Background()

	t.Run("battle not found", func(t *testing.T) {
		service, battleRepo, _, _, _ := setupTestService()

		battleRepo.On("GetByClanAndBattleId", ctx, uint(7), 20240315).Return(nil, nil)

		result, err := service.GetBattle(ctx, 7, 20240315)

		assert.Nil(t, result)
		assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
		testutil.VerifyAllMocks(t, battleRepo)
	})

	t.Run("assembles the full detail", func(t *testing.T) {
		service, battleRepo, _, _, _ := setupTestService()

		battle := &models.BattleRecord{ClanId: 7, BattleId: 20240315, Score: 50000, ClanRatio: 200.123456}
		players := []*models.PlayerStat{{PlayerId: "p1", Ratio: 250.5555, RatioRank: 1}}
		nonplayers := []*models.NonplayerStat{{PlayerId: "p3", Fp: 200}}

		battleRepo.On("GetByClanAndBattleId", ctx, uint(7), 20240315).Return(battle, nil)
		battleRepo.On("ListPlayerStats", ctx, uint(7), 20240315).Return(players, nil)
		battleRepo.On("ListNonplayerStats", ctx, uint(7), 20240315).Return(nonplayers, nil)

		result, err := service.GetBattle(ctx, 7, 20240315)

		assert.NoError(t, err)
		assert.Equal(t, 20240315, result.Battle.BattleId)
		assert.Len(t, result.Players, 1)
		assert.Len(t, result.Nonplayers, 1)
		// Responses are rounded to two decimals.
		assert.Equal(t, 200.12, result.Battle.ClanRatio)
		assert.Equal(t, 250.56, result.Players[0].Ratio)
		testutil.VerifyAllMocks(t, battleRepo)
	})
}

func TestListBattles(t *testing.T) {
	ctx := context.Background()
	service, battleRepo, _, _, _ := setupTestService()

	battles := []*models.BattleRecord{
		{ClanId: 7, BattleId: 20240301},
		{ClanId: 7, BattleId: 20240315},
	}

	// No window means the full battle id range.
	battleRepo.On("ListByClanAndRange", ctx, uint(7), 0, 99999999).Return(battles, nil)

	result, err := service.ListBattles(ctx, &filters.ListBattlesFilter{ClanId: 7})

	assert.NoError(t, err)
	assert.Len(t, result, 2)
	assert.Equal(t, 20240301, result[0].BattleId)
	testutil.VerifyAllMocks(t, battleRepo)
}
