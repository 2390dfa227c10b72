package trendservice

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"goclan/api/cache"
	"goclan/api/dto"
	"goclan/api/filters"
	battlerepo "goclan/api/repositories/battle"
	"goclan/pkg/apperrors"
	"goclan/pkg/database/models"
	"goclan/pkg/messages"
	"goclan/pkg/periods"

	"gorm.io/gorm"
)

const (
	// Relative change on the ratio series below which a trend is
	// still considered flat.
	trendThresholdPercent = 5.0

	// Opponents faced at least this often in range count as rivals.
	rivalMinBattles = 3

	battleDateLayout = "2006-01-02"
)

// Trend classifications.
const (
	TrendImproving = "improving"
	TrendDeclining = "declining"
	TrendStable    = "stable"
)

// TrendService assembles the time series reports on top of the stored
// battles. Reports are pure reads, so they cache aggressively and get
// invalidated whenever a battle of the clan changes.
type TrendService struct {
	db               *gorm.DB
	BattleRepository battlerepo.BattleRepository

	trendCache cache.TrendCache
}

// TrendServiceDeps is the dependency list for the trend service.
type TrendServiceDeps struct {
	DB         *gorm.DB
	TrendCache cache.TrendCache
}

// NewTrendService creates a trend service.
func NewTrendService(deps *TrendServiceDeps) *TrendService {
	return &TrendService{
		db:               deps.DB,
		BattleRepository: battlerepo.NewBattleRepository(deps.DB),
		trendCache:       deps.TrendCache,
	}
}

// GetTrends assembles the power, ratio, participation and margin series
// of a clan, per battle or grouped by month.
func (ts *TrendService) GetTrends(ctx context.Context, filter *filters.TrendFilter) (*dto.TrendReport, error) {
	if filter == nil {
		return nil, apperrors.New(apperrors.KindValidation, messages.FiltersNotNil)
	}

	fromId, toId := periods.DateRangeBattleIds(filter.From, filter.To)
	variant := fmt.Sprintf("trends:%s:%d-%d", filter.Mode, fromId, toId)

	var cached dto.TrendReport
	if ts.cacheGet(ctx, filter.ClanId, variant, &cached) {
		return &cached, nil
	}

	battles, err := ts.BattleRepository.ListByClanAndRange(ctx, filter.ClanId, fromId, toId)
	if err != nil {
		return nil, err
	}
	if len(battles) == 0 {
		return nil, apperrors.New(apperrors.KindNotFound, messages.NoBattlesInPeriod)
	}

	report := &dto.TrendReport{
		ClanId:  filter.ClanId,
		Mode:    filter.Mode,
		Summary: buildSummary(battles),
	}

	if filter.Mode == filters.TrendModeMonthly {
		report.Power, report.Ratio, report.Participation, report.Margin = monthlySeries(battles)
	} else {
		report.Power, report.Ratio, report.Participation, report.Margin = battleSeries(battles)
	}

	ts.cacheSet(ctx, filter.ClanId, variant, report)

	return report, nil
}

// GetMatchups reduces the battles of a window by opponent and by
// opponent country.
func (ts *TrendService) GetMatchups(ctx context.Context, filter *filters.ListBattlesFilter) (*dto.MatchupReport, error) {
	if filter == nil {
		return nil, apperrors.New(apperrors.KindValidation, messages.FiltersNotNil)
	}

	fromId, toId := periods.DateRangeBattleIds(filter.From, filter.To)
	variant := fmt.Sprintf("matchups:%d-%d", fromId, toId)

	var cached dto.MatchupReport
	if ts.cacheGet(ctx, filter.ClanId, variant, &cached) {
		return &cached, nil
	}

	battles, err := ts.BattleRepository.ListByClanAndRange(ctx, filter.ClanId, fromId, toId)
	if err != nil {
		return nil, err
	}
	if len(battles) == 0 {
		return nil, apperrors.New(apperrors.KindNotFound, messages.NoBattlesInPeriod)
	}

	report := &dto.MatchupReport{
		ClanId:    filter.ClanId,
		Opponents: buildOpponents(battles),
		Countries: buildCountries(battles),
	}

	ts.cacheSet(ctx, filter.ClanId, variant, report)

	return report, nil
}

// GetPlayerTrend assembles one player's ratio series and averages.
func (ts *TrendService) GetPlayerTrend(ctx context.Context, filter *filters.PlayerTrendFilter) (*dto.PlayerTrendReport, error) {
	if filter == nil {
		return nil, apperrors.New(apperrors.KindValidation, messages.FiltersNotNil)
	}

	fromId, toId := periods.DateRangeBattleIds(filter.From, filter.To)
	variant := fmt.Sprintf("player:%s:%d-%d", filter.PlayerId, fromId, toId)

	var cached dto.PlayerTrendReport
	if ts.cacheGet(ctx, filter.ClanId, variant, &cached) {
		return &cached, nil
	}

	stats, err := ts.BattleRepository.ListPlayerStatsForPlayer(ctx, filter.ClanId, filter.PlayerId, fromId, toId)
	if err != nil {
		return nil, err
	}
	if len(stats) == 0 {
		return nil, apperrors.New(apperrors.KindNotFound, messages.NoBattlesInPeriod)
	}

	report := &dto.PlayerTrendReport{
		ClanId:   filter.ClanId,
		PlayerId: filter.PlayerId,
		Battles:  len(stats),
		Ratio:    make([]*dto.TrendPoint, 0, len(stats)),
	}

	ratios := make([]float64, 0, len(stats))
	var scoreSum, fpSum, ratioSum float64
	for _, stat := range stats {
		date := periods.BattleDate(stat.BattleId)
		report.Ratio = append(report.Ratio, &dto.TrendPoint{
			Date:  date,
			Label: date.Format(battleDateLayout),
			Value: dto.Round2(stat.Ratio),
		})

		ratios = append(ratios, stat.Ratio)
		scoreSum += float64(stat.Score)
		fpSum += float64(stat.Fp)
		ratioSum += stat.Ratio
	}

	n := float64(len(stats))
	report.AvgScore = dto.Round2(scoreSum / n)
	report.AvgFp = dto.Round2(fpSum / n)
	report.AvgRatio = dto.Round2(ratioSum / n)
	report.Classification = classifyTrend(ratios)

	ts.cacheSet(ctx, filter.ClanId, variant, report)

	return report, nil
}

// battleSeries emits one point per battle.
func battleSeries(battles []*models.BattleRecord) ([]*dto.TrendPoint, []*dto.TrendPoint, []*dto.TrendPoint, []*dto.MarginPoint) {
	power := make([]*dto.TrendPoint, 0, len(battles))
	ratio := make([]*dto.TrendPoint, 0, len(battles))
	participation := make([]*dto.TrendPoint, 0, len(battles))
	margin := make([]*dto.MarginPoint, 0, len(battles))

	for _, battle := range battles {
		date := periods.BattleDate(battle.BattleId)
		label := date.Format(battleDateLayout)

		power = append(power, &dto.TrendPoint{Date: date, Label: label, Value: float64(battle.BaselineFp)})
		ratio = append(ratio, &dto.TrendPoint{Date: date, Label: label, Value: dto.Round2(battle.ClanRatio)})
		participation = append(participation, &dto.TrendPoint{Date: date, Label: label, Value: dto.Round2(battle.ParticipationRate)})
		margin = append(margin, &dto.MarginPoint{Date: date, Label: label, Margin: dto.Round2(battle.MarginRatio), Result: battle.Result})
	}

	return power, ratio, participation, margin
}

// monthlySeries averages the battles of each calendar month into one
// point. The margin direction of a month is the majority vote of its
// battle results.
func monthlySeries(battles []*models.BattleRecord) ([]*dto.TrendPoint, []*dto.TrendPoint, []*dto.TrendPoint, []*dto.MarginPoint) {
	type monthGroup struct {
		label string
		date  time.Time
		count int

		power, ratio, participation, margin float64
		wins, losses                        int
	}

	groups := make(map[string]*monthGroup)
	order := make([]string, 0)

	for _, battle := range battles {
		label := periods.MonthLabel(battle.BattleId)
		group, ok := groups[label]
		if !ok {
			// The group's first battle supplies the point date.
			group = &monthGroup{label: label, date: periods.BattleDate(battle.BattleId)}
			groups[label] = group
			order = append(order, label)
		}

		group.count++
		group.power += float64(battle.BaselineFp)
		group.ratio += battle.ClanRatio
		group.participation += battle.ParticipationRate
		group.margin += battle.MarginRatio

		switch battle.Result {
		case 1:
			group.wins++
		case -1:
			group.losses++
		}
	}

	power := make([]*dto.TrendPoint, 0, len(order))
	ratio := make([]*dto.TrendPoint, 0, len(order))
	participation := make([]*dto.TrendPoint, 0, len(order))
	margin := make([]*dto.MarginPoint, 0, len(order))

	for _, label := range order {
		group := groups[label]
		n := float64(group.count)

		direction := 0
		if group.wins > group.losses {
			direction = 1
		} else if group.losses > group.wins {
			direction = -1
		}

		// Grouped means are the one place averages get rounded.
		power = append(power, &dto.TrendPoint{Date: group.date, Label: label, Value: dto.Round2(group.power / n)})
		ratio = append(ratio, &dto.TrendPoint{Date: group.date, Label: label, Value: dto.Round2(group.ratio / n)})
		participation = append(participation, &dto.TrendPoint{Date: group.date, Label: label, Value: dto.Round2(group.participation / n)})
		margin = append(margin, &dto.MarginPoint{Date: group.date, Label: label, Margin: dto.Round2(group.margin / n), Result: direction})
	}

	return power, ratio, participation, margin
}

// buildSummary reduces the battle window into the aggregate block.
func buildSummary(battles []*models.BattleRecord) *dto.TrendSummary {
	summary := &dto.TrendSummary{Battles: len(battles)}

	ratios := make([]float64, 0, len(battles))
	var ratioSum, participationSum float64
	var winMarginSum, lossMarginSum float64

	summary.RatioMin = battles[0].ClanRatio
	summary.RatioMax = battles[0].ClanRatio
	summary.ParticipationMin = battles[0].ParticipationRate
	summary.ParticipationMax = battles[0].ParticipationRate

	for _, battle := range battles {
		switch battle.Result {
		case 1:
			summary.Wins++
			winMarginSum += battle.MarginRatio
		case -1:
			summary.Losses++
			lossMarginSum += battle.MarginRatio
		default:
			summary.Ties++
		}

		ratios = append(ratios, battle.ClanRatio)
		ratioSum += battle.ClanRatio
		participationSum += battle.ParticipationRate

		if battle.ClanRatio < summary.RatioMin {
			summary.RatioMin = battle.ClanRatio
		}
		if battle.ClanRatio > summary.RatioMax {
			summary.RatioMax = battle.ClanRatio
		}
		if battle.ParticipationRate < summary.ParticipationMin {
			summary.ParticipationMin = battle.ParticipationRate
		}
		if battle.ParticipationRate > summary.ParticipationMax {
			summary.ParticipationMax = battle.ParticipationRate
		}
	}

	n := float64(len(battles))
	summary.WinRate = dto.Round2(float64(summary.Wins) / n * 100)
	summary.LossRate = dto.Round2(float64(summary.Losses) / n * 100)
	summary.TieRate = dto.Round2(float64(summary.Ties) / n * 100)
	summary.RatioAvg = dto.Round2(ratioSum / n)
	summary.ParticipationAvg = dto.Round2(participationSum / n)

	summary.RatioMin = dto.Round2(summary.RatioMin)
	summary.RatioMax = dto.Round2(summary.RatioMax)
	summary.ParticipationMin = dto.Round2(summary.ParticipationMin)
	summary.ParticipationMax = dto.Round2(summary.ParticipationMax)

	if summary.Wins > 0 {
		summary.AvgWinMargin = dto.Round2(winMarginSum / float64(summary.Wins))
	}
	if summary.Losses > 0 {
		summary.AvgLossMargin = dto.Round2(lossMarginSum / float64(summary.Losses))
	}

	summary.StartPower = float64(battles[0].BaselineFp)
	summary.EndPower = float64(battles[len(battles)-1].BaselineFp)
	if summary.StartPower != 0 {
		summary.PowerChangePercent = dto.Round2((summary.EndPower - summary.StartPower) / summary.StartPower * 100)
	}

	// Classification reads the raw series, before any rounding.
	summary.Classification = classifyTrend(ratios)

	return summary
}

// classifyTrend compares the first and last third of a series. Short
// series can't show a direction and classify as stable.
func classifyTrend(values []float64) string {
	if len(values) < 3 {
		return TrendStable
	}

	third := len(values) / 3
	first := avg(values[:third])
	last := avg(values[len(values)-third:])

	if first == 0 {
		return TrendStable
	}

	change := (last - first) / first * 100
	switch {
	case change > trendThresholdPercent:
		return TrendImproving
	case change < -trendThresholdPercent:
		return TrendDeclining
	default:
		return TrendStable
	}
}

func avg(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// buildOpponents groups the battles by opponent name.
func buildOpponents(battles []*models.BattleRecord) []*dto.OpponentAggregate {
	type opponentGroup struct {
		agg       *dto.OpponentAggregate
		marginSum float64
	}

	groups := make(map[string]*opponentGroup)
	order := make([]string, 0)

	for _, battle := range battles {
		group, ok := groups[battle.OpponentName]
		if !ok {
			group = &opponentGroup{agg: &dto.OpponentAggregate{
				OpponentName: battle.OpponentName,
				Country:      battle.OpponentCountry,
			}}
			groups[battle.OpponentName] = group
			order = append(order, battle.OpponentName)
		}

		group.agg.Battles++
		group.marginSum += battle.MarginRatio
		switch battle.Result {
		case 1:
			group.agg.Wins++
		case -1:
			group.agg.Losses++
		default:
			group.agg.Ties++
		}
	}

	opponents := make([]*dto.OpponentAggregate, 0, len(order))
	for _, name := range order {
		group := groups[name]
		group.agg.AvgMargin = dto.Round2(group.marginSum / float64(group.agg.Battles))
		group.agg.Rival = group.agg.Battles >= rivalMinBattles
		opponents = append(opponents, group.agg)
	}

	sort.Slice(opponents, func(i, j int) bool {
		if opponents[i].Battles != opponents[j].Battles {
			return opponents[i].Battles > opponents[j].Battles
		}
		return opponents[i].OpponentName < opponents[j].OpponentName
	})

	return opponents
}

// buildCountries groups the battles by opponent country.
func buildCountries(battles []*models.BattleRecord) []*dto.CountryAggregate {
	groups := make(map[string]*dto.CountryAggregate)
	order := make([]string, 0)

	for _, battle := range battles {
		group, ok := groups[battle.OpponentCountry]
		if !ok {
			group = &dto.CountryAggregate{Country: battle.OpponentCountry}
			groups[battle.OpponentCountry] = group
			order = append(order, battle.OpponentCountry)
		}

		group.Battles++
		switch battle.Result {
		case 1:
			group.Wins++
		case -1:
			group.Losses++
		default:
			group.Ties++
		}
	}

	countries := make([]*dto.CountryAggregate, 0, len(order))
	for _, country := range order {
		countries = append(countries, groups[country])
	}

	sort.Slice(countries, func(i, j int) bool {
		if countries[i].Battles != countries[j].Battles {
			return countries[i].Battles > countries[j].Battles
		}
		return countries[i].Country < countries[j].Country
	})

	return countries
}

// Cache access is best effort on both sides.
func (ts *TrendService) cacheGet(ctx context.Context, clanId uint, variant string, out any) bool {
	if ts.trendCache == nil {
		return false
	}
	return ts.trendCache.Get(ctx, clanId, variant, out)
}

func (ts *TrendService) cacheSet(ctx context.Context, clanId uint, variant string, value any) {
	if ts.trendCache == nil {
		return
	}

	if err := ts.trendCache.Set(ctx, clanId, variant, value); err != nil {
		log.Printf("couldn't cache the trend variant %s: %v", variant, err)
	}
}
