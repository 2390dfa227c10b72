package filters

import (
	"time"

	"goclan/pkg/apperrors"
)

// Trend aggregation modes.
const (
	TrendModeBattle  = "battle"
	TrendModeMonthly = "monthly"
)

// TrendQueryParams are the query params of the trend endpoints.
type TrendQueryParams struct {
	From string `form:"from"`
	To   string `form:"to"`
	Mode string `form:"mode"`
}

// TrendFilter is the service input for the trend assembly.
type TrendFilter struct {
	ClanId uint
	From   time.Time
	To     time.Time
	Mode   string
}

// NewTrendFilter validates the query params into a service filter.
func NewTrendFilter(clanId uint, qp *TrendQueryParams) (*TrendFilter, error) {
	rangeParams := DateRangeQueryParams{From: qp.From, To: qp.To}
	from, to, err := rangeParams.ParseDateRange()
	if err != nil {
		return nil, err
	}

	mode := qp.Mode
	if mode == "" {
		mode = TrendModeBattle
	}
	if mode != TrendModeBattle && mode != TrendModeMonthly {
		return nil, apperrors.Newf(apperrors.KindValidation, "invalid trend mode %q", qp.Mode)
	}

	return &TrendFilter{
		ClanId: clanId,
		From:   from,
		To:     to,
		Mode:   mode,
	}, nil
}

// PlayerTrendURIParams are the URI params of the player trend endpoint.
type PlayerTrendURIParams struct {
	ClanId   uint   `uri:"clanId" binding:"required"`
	PlayerId string `uri:"playerId" binding:"required"`
}

// PlayerTrendFilter is the service input for the player trend.
type PlayerTrendFilter struct {
	ClanId   uint
	PlayerId string
	From     time.Time
	To       time.Time
}
