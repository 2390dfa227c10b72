package repositories

import (
	"context"
	"testing"

	"goclan/internal/testutil"
	"goclan/pkg/database/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestNewPerformanceRepository(t *testing.T) {
	repository := NewPerformanceRepository(&gorm.DB{})
	assert.NotNil(t, repository)
}

func TestMonthlyRollupLifecycle(t *testing.T) {
	db, cleanup := testutil.NewTestConnection(t)
	defer cleanup()

	repository := NewPerformanceRepository(db)
	ctx := context.Background()

	rollup := &models.MonthlyClanPerformance{
		ClanId:   7,
		Period:   "202403",
		Battles:  2,
		Wins:     1,
		Losses:   1,
		AvgScore: 45000,
	}

	t.Run("create materializes clan and players together", func(t *testing.T) {
		err := repository.CreateMonthly(ctx, rollup, []*models.MonthlyIndividualPerformance{
			{ClanId: 7, Period: "202403", PlayerId: "p1", Battles: 2, AvgRatio: 225},
		})
		assert.NoError(t, err)

		found, err := repository.GetMonthlyClan(ctx, 7, "202403")
		assert.NoError(t, err)
		assert.NotNil(t, found)
		assert.Equal(t, 2, found.Battles)
		assert.False(t, found.Complete)

		list, err := repository.ListMonthlyIndividual(ctx, 7, "202403")
		assert.NoError(t, err)
		assert.Len(t, list, 1)
	})

	t.Run("concurrent duplicate degrades to a no-op", func(t *testing.T) {
		loser := &models.MonthlyClanPerformance{
			ClanId:   7,
			Period:   "202403",
			Battles:  99,
			AvgScore: 1,
		}

		err := repository.CreateMonthly(ctx, loser, []*models.MonthlyIndividualPerformance{
			{ClanId: 7, Period: "202403", PlayerId: "p1", Battles: 99, AvgRatio: 999},
		})
		assert.NoError(t, err)

		// The first insert wins, player lines included.
		found, err := repository.GetMonthlyClan(ctx, 7, "202403")
		assert.NoError(t, err)
		assert.Equal(t, 2, found.Battles)

		list, err := repository.ListMonthlyIndividual(ctx, 7, "202403")
		assert.NoError(t, err)
		assert.Len(t, list, 1)
		assert.Equal(t, 225.0, list[0].AvgRatio)
	})

	t.Run("completion lock", func(t *testing.T) {
		matched, err := repository.SetMonthlyClanComplete(ctx, 7, "202403", true)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), matched)

		found, err := repository.GetMonthlyClan(ctx, 7, "202403")
		assert.NoError(t, err)
		assert.True(t, found.Complete)

		// An absent period matches nothing.
		matched, err = repository.SetMonthlyClanComplete(ctx, 7, "202412", true)
		assert.NoError(t, err)
		assert.Equal(t, int64(0), matched)
	})

	t.Run("replace swaps clan and player rollups atomically", func(t *testing.T) {
		rebuilt := &models.MonthlyClanPerformance{
			ClanId:   7,
			Period:   "202403",
			Battles:  3,
			AvgScore: 47000,
		}
		players := []*models.MonthlyIndividualPerformance{
			{ClanId: 7, Period: "202403", PlayerId: "p1", Battles: 3, AvgRatio: 230},
			{ClanId: 7, Period: "202403", PlayerId: "p2", Battles: 1, AvgRatio: 200},
		}

		err := repository.ReplaceMonthly(ctx, 7, "202403", rebuilt, players)
		assert.NoError(t, err)

		found, err := repository.GetMonthlyClan(ctx, 7, "202403")
		assert.NoError(t, err)
		assert.Equal(t, 3, found.Battles)
		// The replacement reopened the month.
		assert.False(t, found.Complete)

		list, err := repository.ListMonthlyIndividual(ctx, 7, "202403")
		assert.NoError(t, err)
		assert.Len(t, list, 2)
		assert.Equal(t, "p1", list[0].PlayerId)
	})
}

func TestYearlyRollupLifecycle(t *testing.T) {
	db, cleanup := testutil.NewTestConnection(t)
	defer cleanup()

	repository := NewPerformanceRepository(db)
	ctx := context.Background()

	err := repository.CreateYearly(ctx, &models.YearlyClanPerformance{
		ClanId:  7,
		Period:  "2024",
		Battles: 10,
	}, []*models.YearlyIndividualPerformance{
		{ClanId: 7, Period: "2024", PlayerId: "p1", Battles: 10, AvgRatio: 205},
	})
	assert.NoError(t, err)

	found, err := repository.GetYearlyClan(ctx, 7, "2024")
	assert.NoError(t, err)
	assert.Equal(t, 10, found.Battles)

	list, err := repository.ListYearlyIndividual(ctx, 7, "2024")
	assert.NoError(t, err)
	assert.Len(t, list, 1)

	err = repository.ReplaceYearly(ctx, 7, "2024", &models.YearlyClanPerformance{
		ClanId:  7,
		Period:  "2024",
		Battles: 12,
	}, []*models.YearlyIndividualPerformance{
		{ClanId: 7, Period: "2024", PlayerId: "p1", Battles: 12, AvgRatio: 210},
	})
	assert.NoError(t, err)

	found, err = repository.GetYearlyClan(ctx, 7, "2024")
	assert.NoError(t, err)
	assert.Equal(t, 12, found.Battles)

	list, err = repository.ListYearlyIndividual(ctx, 7, "2024")
	assert.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, 210.0, list[0].AvgRatio)
}
