package trendservice

import (
	"context"
	"testing"

	"goclan/api/dto"
	"goclan/api/filters"
	"goclan/api/services/testutil"
	"goclan/pkg/apperrors"
	"goclan/pkg/database/models"
	"goclan/pkg/messages"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestGetTrendsBattleMode(t *testing.T) {
	ctx := context.Background()
	service, battleRepo, trendCache := setupTestService()

	battles := []*models.BattleRecord{
		battle(20240305, 1, 2500, 200, 10, 50, "Night Owls", "de"),
		battle(20240318, -1, 2600, 160, -50, 100, "Iron Pact", "fr"),
		battle(20240402, 0, 2700, 180, 0, 75, "Night Owls", "de"),
	}

	trendCache.On("Get", ctx, uint(7), mock.Anything, mock.Anything).Return(false)
	trendCache.On("Set", ctx, uint(7), mock.Anything, mock.Anything).Return(nil)
	battleRepo.On("ListByClanAndRange", ctx, uint(7), 0, 99999999).Return(battles, nil)

	report, err := service.GetTrends(ctx, &filters.TrendFilter{ClanId: 7, Mode: filters.TrendModeBattle})

	assert.NoError(t, err)
	assert.Equal(t, filters.TrendModeBattle, report.Mode)
	assert.Len(t, report.Power, 3)
	assert.Len(t, report.Ratio, 3)
	assert.Len(t, report.Participation, 3)
	assert.Len(t, report.Margin, 3)

	assert.Equal(t, "2024-03-05", report.Power[0].Label)
	assert.Equal(t, 2500.0, report.Power[0].Value)
	assert.Equal(t, 200.0, report.Ratio[0].Value)
	assert.Equal(t, 1, report.Margin[0].Result)
	assert.Equal(t, -50.0, report.Margin[1].Margin)

	summary := report.Summary
	assert.Equal(t, 3, summary.Battles)
	assert.Equal(t, 1, summary.Wins)
	assert.Equal(t, 1, summary.Losses)
	assert.Equal(t, 1, summary.Ties)
	// Rates and averages come back rounded to two decimals.
	assert.Equal(t, 33.33, summary.WinRate)
	assert.Equal(t, 2500.0, summary.StartPower)
	assert.Equal(t, 2700.0, summary.EndPower)
	assert.InDelta(t, 8.0, summary.PowerChangePercent, 0.0001)
	assert.Equal(t, 160.0, summary.RatioMin)
	assert.Equal(t, 200.0, summary.RatioMax)
	assert.InDelta(t, 180.0, summary.RatioAvg, 0.0001)
	assert.Equal(t, 10.0, summary.AvgWinMargin)
	assert.Equal(t, -50.0, summary.AvgLossMargin)

	testutil.VerifyAllMocks(t, battleRepo, trendCache)
}

func TestGetTrendsMonthlyMode(t *testing.T) {
	ctx := context.Background()
	service, battleRepo, trendCache := setupTestService()

	// March: two wins and one loss. April: one loss.
	battles := []*models.BattleRecord{
		battle(20240305, 1, 2500, 200, 10, 50, "a", ""),
		battle(20240312, 1, 2500, 220, 20, 60, "b", ""),
		battle(20240318, -1, 2500, 160, -30, 100, "c", ""),
		battle(20240402, -1, 2800, 150, -10, 80, "d", ""),
	}

	trendCache.On("Get", ctx, uint(7), mock.Anything, mock.Anything).Return(false)
	trendCache.On("Set", ctx, uint(7), mock.Anything, mock.Anything).Return(nil)
	battleRepo.On("ListByClanAndRange", ctx, uint(7), 0, 99999999).Return(battles, nil)

	report, err := service.GetTrends(ctx, &filters.TrendFilter{ClanId: 7, Mode: filters.TrendModeMonthly})

	assert.NoError(t, err)
	assert.Len(t, report.Power, 2)

	assert.Equal(t, "2024-03", report.Power[0].Label)
	// The point date is the date of the group's first battle.
	assert.Equal(t, "2024-03-05", report.Power[0].Date.Format("2006-01-02"))
	assert.InDelta(t, 2500.0, report.Power[0].Value, 0.0001)
	// Grouped means are rounded to two decimals.
	assert.Equal(t, 193.33, report.Ratio[0].Value)
	assert.InDelta(t, 70.0, report.Participation[0].Value, 0.0001)
	// March margin direction comes from the majority vote.
	assert.Equal(t, 1, report.Margin[0].Result)
	assert.InDelta(t, 0.0, report.Margin[0].Margin, 0.0001)

	assert.Equal(t, "2024-04", report.Margin[1].Label)
	assert.Equal(t, "2024-04-02", report.Margin[1].Date.Format("2006-01-02"))
	assert.Equal(t, -1, report.Margin[1].Result)

	testutil.VerifyAllMocks(t, battleRepo, trendCache)
}

func TestGetTrendsNoBattles(t *testing.T) {
	ctx := context.Background()
	service, battleRepo, trendCache := setupTestService()

	trendCache.On("Get", ctx, uint(7), mock.Anything, mock.Anything).Return(false)
	battleRepo.On("ListByClanAndRange", ctx, uint(7), 0, 99999999).Return([]*models.BattleRecord{}, nil)

	report, err := service.GetTrends(ctx, &filters.TrendFilter{ClanId: 7, Mode: filters.TrendModeBattle})

	assert.Nil(t, report)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	assert.EqualError(t, err, messages.NoBattlesInPeriod)
	trendCache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	testutil.VerifyAllMocks(t, battleRepo, trendCache)
}

func TestGetTrendsCacheHit(t *testing.T) {
	ctx := context.Background()
	service, battleRepo, trendCache := setupTestService()

	trendCache.On("Get", ctx, uint(7), mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			report := args.Get(3).(*dto.TrendReport)
			report.ClanId = 7
			report.Mode = filters.TrendModeBattle
			report.Summary = &dto.TrendSummary{Battles: 5}
		}).
		Return(true)

	report, err := service.GetTrends(ctx, &filters.TrendFilter{ClanId: 7, Mode: filters.TrendModeBattle})

	assert.NoError(t, err)
	assert.Equal(t, 5, report.Summary.Battles)
	battleRepo.AssertNotCalled(t, "ListByClanAndRange", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	testutil.VerifyAllMocks(t, battleRepo, trendCache)
}

func TestClassifyTrend(t *testing.T) {
	cases := []struct {
		name   string
		values []float64
		want   string
	}{
		{
			name:   "too short",
			values: []float64{100, 200},
			want:   TrendStable,
		},
		{
			name:   "improving",
			values: []float64{100, 100, 100, 110, 120, 120},
			want:   TrendImproving,
		},
		{
			name:   "declining",
			values: []float64{120, 120, 110, 100, 100, 100},
			want:   TrendDeclining,
		},
		{
			name:   "flat within the threshold",
			values: []float64{100, 101, 99, 100, 102, 101},
			want:   TrendStable,
		},
		{
			name:   "exactly at the threshold stays stable",
			values: []float64{100, 100, 100, 105, 105, 105},
			want:   TrendStable,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, classifyTrend(tc.values))
		})
	}
}

func TestGetMatchups(t *testing.T) {
	ctx := context.Background()
	service, battleRepo, trendCache := setupTestService()

	battles := []*models.BattleRecord{
		battle(20240305, 1, 2500, 200, 10, 50, "Night Owls", "de"),
		battle(20240312, -1, 2500, 160, -20, 60, "Night Owls", "de"),
		battle(20240318, 1, 2500, 210, 30, 70, "Night Owls", "de"),
		battle(20240402, 1, 2500, 190, 5, 80, "Iron Pact", "fr"),
	}

	trendCache.On("Get", ctx, uint(7), mock.Anything, mock.Anything).Return(false)
	trendCache.On("Set", ctx, uint(7), mock.Anything, mock.Anything).Return(nil)
	battleRepo.On("ListByClanAndRange", ctx, uint(7), 0, 99999999).Return(battles, nil)

	report, err := service.GetMatchups(ctx, &filters.ListBattlesFilter{ClanId: 7})

	assert.NoError(t, err)
	assert.Len(t, report.Opponents, 2)

	owls := report.Opponents[0]
	assert.Equal(t, "Night Owls", owls.OpponentName)
	assert.Equal(t, 3, owls.Battles)
	assert.Equal(t, 2, owls.Wins)
	assert.Equal(t, 1, owls.Losses)
	assert.Equal(t, 6.67, owls.AvgMargin)
	// Three meetings make a rival.
	assert.True(t, owls.Rival)

	pact := report.Opponents[1]
	assert.Equal(t, 1, pact.Battles)
	assert.False(t, pact.Rival)

	assert.Len(t, report.Countries, 2)
	assert.Equal(t, "de", report.Countries[0].Country)
	assert.Equal(t, 3, report.Countries[0].Battles)

	testutil.VerifyAllMocks(t, battleRepo, trendCache)
}

func TestGetPlayerTrend(t *testing.T) {
	ctx := context.Background()

	t.Run("no battles for the player", func(t *testing.T) {
		service, battleRepo, trendCache := setupTestService()

		trendCache.On("Get", ctx, uint(7), mock.Anything, mock.Anything).Return(false)
		battleRepo.On("ListPlayerStatsForPlayer", ctx, uint(7), "p9", 0, 99999999).Return([]*models.PlayerStat{}, nil)

		report, err := service.GetPlayerTrend(ctx, &filters.PlayerTrendFilter{ClanId: 7, PlayerId: "p9"})

		assert.Nil(t, report)
		assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
		testutil.VerifyAllMocks(t, battleRepo, trendCache)
	})

	t.Run("assembles the ratio series", func(t *testing.T) {
		service, battleRepo, trendCache := setupTestService()

		stats := []*models.PlayerStat{
			{BattleId: 20240305, PlayerId: "p1", Score: 30000, Fp: 1200, Ratio: 250},
			{BattleId: 20240312, PlayerId: "p1", Score: 24000, Fp: 1200, Ratio: 200},
			{BattleId: 20240318, PlayerId: "p1", Score: 27000, Fp: 1200, Ratio: 225},
		}

		trendCache.On("Get", ctx, uint(7), mock.Anything, mock.Anything).Return(false)
		trendCache.On("Set", ctx, uint(7), mock.Anything, mock.Anything).Return(nil)
		battleRepo.On("ListPlayerStatsForPlayer", ctx, uint(7), "p1", 0, 99999999).Return(stats, nil)

		report, err := service.GetPlayerTrend(ctx, &filters.PlayerTrendFilter{ClanId: 7, PlayerId: "p1"})

		assert.NoError(t, err)
		assert.Equal(t, 3, report.Battles)
		assert.Len(t, report.Ratio, 3)
		assert.Equal(t, "2024-03-05", report.Ratio[0].Label)
		assert.InDelta(t, 27000.0, report.AvgScore, 0.0001)
		assert.InDelta(t, 1200.0, report.AvgFp, 0.0001)
		assert.InDelta(t, 225.0, report.AvgRatio, 0.0001)
		assert.Equal(t, TrendDeclining, report.Classification)
		testutil.VerifyAllMocks(t, battleRepo, trendCache)
	})
}
