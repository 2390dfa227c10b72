package periods

import (
	"strconv"
	"time"

	"goclan/pkg/apperrors"
)

// Kind of a rollup period.
type Kind int

const (
	Month Kind = iota
	Year
)

// Period is a validated rollup period identifier.
// Months are "YYYYMM", years are "YYYY".
type Period struct {
	Kind Kind
	Id   string

	// Battle id bounds of the period. Battle ids are date codes (YYYYMMDD),
	// so the period membership check is a simple range check.
	FromBattleId int
	ToBattleId   int
}

// Parse validates a period identifier and resolves its battle id bounds.
func Parse(id string) (*Period, error) {
	value, err := strconv.Atoi(id)
	if err != nil || value <= 0 {
		return nil, apperrors.Newf(apperrors.KindValidation, "invalid period %q", id)
	}

	switch len(id) {
	case 4:
		return &Period{
			Kind:         Year,
			Id:           id,
			FromBattleId: value*10000 + 101,
			ToBattleId:   value*10000 + 1231,
		}, nil
	case 6:
		month := value % 100
		if month < 1 || month > 12 {
			return nil, apperrors.Newf(apperrors.KindValidation, "invalid period %q", id)
		}
		return &Period{
			Kind:         Month,
			Id:           id,
			FromBattleId: value*100 + 1,
			ToBattleId:   value*100 + 31,
		}, nil
	default:
		return nil, apperrors.Newf(apperrors.KindValidation, "invalid period %q", id)
	}
}

// ParseMonth parses a period identifier and requires it to be a month.
func ParseMonth(id string) (*Period, error) {
	period, err := Parse(id)
	if err != nil {
		return nil, err
	}
	if period.Kind != Month {
		return nil, apperrors.Newf(apperrors.KindValidation, "period %q is not a month", id)
	}
	return period, nil
}

// BattleDate converts a battle id date code into its UTC calendar date.
func BattleDate(battleId int) time.Time {
	year := battleId / 10000
	month := (battleId / 100) % 100
	day := battleId % 100
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// MonthLabel is the month grouping key for a battle id, e.g. "2024-03".
func MonthLabel(battleId int) string {
	return BattleDate(battleId).Format("2006-01")
}

// MonthOf is the month grouping key for an arbitrary timestamp.
func MonthOf(t time.Time) string {
	return t.UTC().Format("2006-01")
}

// DateRangeBattleIds converts an optional [from, to] date range into
// inclusive battle id bounds. Zero times widen to the full range.
func DateRangeBattleIds(from, to time.Time) (int, int) {
	fromId := 0
	toId := 99999999
	if !from.IsZero() {
		fromId = from.Year()*10000 + int(from.Month())*100 + from.Day()
	}
	if !to.IsZero() {
		toId = to.Year()*10000 + int(to.Month())*100 + to.Day()
	}
	return fromId, toId
}
