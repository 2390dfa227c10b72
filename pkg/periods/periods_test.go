package periods

import (
	"testing"
	"time"

	"goclan/pkg/apperrors"

	"github.com/stretchr/testify/assert"
)

func TestParseMonthPeriod(t *testing.T) {
	period, err := Parse("202403")

	assert.NoError(t, err)
	assert.Equal(t, Month, period.Kind)
	assert.Equal(t, 20240301, period.FromBattleId)
	assert.Equal(t, 20240331, period.ToBattleId)
}

func TestParseYearPeriod(t *testing.T) {
	period, err := Parse("2024")

	assert.NoError(t, err)
	assert.Equal(t, Year, period.Kind)
	assert.Equal(t, 20240101, period.FromBattleId)
	assert.Equal(t, 20241231, period.ToBattleId)
}

func TestParseRejectsMalformedPeriods(t *testing.T) {
	tests := []string{"", "20241", "2024133", "202413", "202400", "abcd", "2024-03", "-202403"}

	for _, id := range tests {
		t.Run(id, func(t *testing.T) {
			_, err := Parse(id)
			assert.Error(t, err)
			assert.True(t, apperrors.IsValidation(err))
		})
	}
}

func TestParseMonthRejectsYear(t *testing.T) {
	_, err := ParseMonth("2024")
	assert.True(t, apperrors.IsValidation(err))
}

func TestBattleDate(t *testing.T) {
	date := BattleDate(20240315)
	assert.Equal(t, time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC), date)
	assert.Equal(t, "2024-03", MonthLabel(20240315))
}

func TestDateRangeBattleIds(t *testing.T) {
	from := time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, time.February, 20, 0, 0, 0, 0, time.UTC)

	fromId, toId := DateRangeBattleIds(from, to)
	assert.Equal(t, 20240105, fromId)
	assert.Equal(t, 20240220, toId)

	fromId, toId = DateRangeBattleIds(time.Time{}, time.Time{})
	assert.Equal(t, 0, fromId)
	assert.Equal(t, 99999999, toId)
}
