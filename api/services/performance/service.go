package performanceservice

import (
	"context"
	"sort"

	"goclan/api/dto"
	"goclan/api/filters"
	auditrepo "goclan/api/repositories/audit"
	battlerepo "goclan/api/repositories/battle"
	perfrepo "goclan/api/repositories/performance"
	"goclan/pkg/apperrors"
	"goclan/pkg/database/models"
	"goclan/pkg/messages"
	"goclan/pkg/periods"

	"gorm.io/gorm"
)

// PerformanceService materializes and serves the period rollups.
//
// Rollups are created lazily on first read and never silently refreshed:
// once materialized, a period only changes through an explicit
// recalculation.
type PerformanceService struct {
	db                    *gorm.DB
	BattleRepository      battlerepo.BattleRepository
	PerformanceRepository perfrepo.PerformanceRepository
	AuditRepository       auditrepo.AuditRepository
}

// PerformanceServiceDeps is the dependency list for the performance service.
type PerformanceServiceDeps struct {
	DB *gorm.DB
}

// NewPerformanceService creates a performance service.
func NewPerformanceService(deps *PerformanceServiceDeps) *PerformanceService {
	return &PerformanceService{
		db:                    deps.DB,
		BattleRepository:      battlerepo.NewBattleRepository(deps.DB),
		PerformanceRepository: perfrepo.NewPerformanceRepository(deps.DB),
		AuditRepository:       auditrepo.NewAuditRepository(deps.DB),
	}
}

// GetMonthlyClan returns the clan rollup of a month, materializing it on
// first read.
func (ps *PerformanceService) GetMonthlyClan(ctx context.Context, clanId uint, periodId string) (*dto.ClanPerformance, error) {
	period, err := periods.ParseMonth(periodId)
	if err != nil {
		return nil, err
	}

	rollup, err := ps.ensureMonthly(ctx, clanId, period)
	if err != nil {
		return nil, err
	}

	return dto.NewMonthlyClanPerformance(rollup), nil
}

// GetYearlyClan returns the clan rollup of a year, materializing it on
// first read.
func (ps *PerformanceService) GetYearlyClan(ctx context.Context, clanId uint, periodId string) (*dto.ClanPerformance, error) {
	period, err := periods.Parse(periodId)
	if err != nil {
		return nil, err
	}
	if period.Kind != periods.Year {
		return nil, apperrors.Newf(apperrors.KindValidation, "period %q is not a year", periodId)
	}

	rollup, err := ps.ensureYearly(ctx, clanId, period)
	if err != nil {
		return nil, err
	}

	return dto.NewYearlyClanPerformance(rollup), nil
}

// GetMonthlyPlayers returns the player rollups of a month.
func (ps *PerformanceService) GetMonthlyPlayers(ctx context.Context, clanId uint, periodId string) ([]*dto.IndividualPerformance, error) {
	period, err := periods.ParseMonth(periodId)
	if err != nil {
		return nil, err
	}

	// The clan rollup is the materialization marker for the whole month.
	if _, err := ps.ensureMonthly(ctx, clanId, period); err != nil {
		return nil, err
	}

	rollups, err := ps.PerformanceRepository.ListMonthlyIndividual(ctx, clanId, period.Id)
	if err != nil {
		return nil, err
	}

	return dto.NewMonthlyIndividualPerformances(rollups), nil
}

// GetYearlyPlayers returns the player rollups of a year.
func (ps *PerformanceService) GetYearlyPlayers(ctx context.Context, clanId uint, periodId string) ([]*dto.IndividualPerformance, error) {
	period, err := periods.Parse(periodId)
	if err != nil {
		return nil, err
	}
	if period.Kind != periods.Year {
		return nil, apperrors.Newf(apperrors.KindValidation, "period %q is not a year", periodId)
	}

	if _, err := ps.ensureYearly(ctx, clanId, period); err != nil {
		return nil, err
	}

	rollups, err := ps.PerformanceRepository.ListYearlyIndividual(ctx, clanId, period.Id)
	if err != nil {
		return nil, err
	}

	return dto.NewYearlyIndividualPerformances(rollups), nil
}

// SetComplete flips the monthly completion lock. The rollup must already
// be materialized; completing a month nobody ever viewed is an error.
func (ps *PerformanceService) SetComplete(ctx context.Context, filter *filters.PerformanceFilter, complete bool) error {
	if filter == nil {
		return apperrors.New(apperrors.KindValidation, messages.FiltersNotNil)
	}

	period, err := periods.ParseMonth(filter.Period)
	if err != nil {
		return err
	}

	matched, err := ps.PerformanceRepository.SetMonthlyClanComplete(ctx, filter.ClanId, period.Id, complete)
	if err != nil {
		return err
	}
	if matched == 0 {
		return apperrors.New(apperrors.KindNotFound, messages.RollupNotMaterialized)
	}

	ps.emitAudit(ctx, filter.ActorId, "rollup.complete", filter.ClanId, period.Id, map[string]any{
		"complete": complete,
	})

	return nil
}

// Recalculate rebuilds a period rollup from the stored battles, replacing
// whatever was materialized before. Recalculating a month always reopens
// it. Recalculating twice in a row yields identical rollups.
func (ps *PerformanceService) Recalculate(ctx context.Context, filter *filters.PerformanceFilter) (*dto.ClanPerformance, error) {
	if filter == nil {
		return nil, apperrors.New(apperrors.KindValidation, messages.FiltersNotNil)
	}

	period, err := periods.Parse(filter.Period)
	if err != nil {
		return nil, err
	}

	battles, stats, err := ps.loadPeriod(ctx, filter.ClanId, period)
	if err != nil {
		return nil, err
	}
	if len(battles) == 0 {
		return nil, apperrors.New(apperrors.KindNotFound, messages.NoBattlesInPeriod)
	}

	var result *dto.ClanPerformance
	if period.Kind == periods.Month {
		clan := buildMonthlyClan(filter.ClanId, period.Id, battles)
		players := buildMonthlyPlayers(filter.ClanId, period.Id, stats)

		if err := ps.PerformanceRepository.ReplaceMonthly(ctx, filter.ClanId, period.Id, clan, players); err != nil {
			return nil, err
		}
		result = dto.NewMonthlyClanPerformance(clan)
	} else {
		clan := buildYearlyClan(filter.ClanId, period.Id, battles)
		players := buildYearlyPlayers(filter.ClanId, period.Id, stats)

		if err := ps.PerformanceRepository.ReplaceYearly(ctx, filter.ClanId, period.Id, clan, players); err != nil {
			return nil, err
		}
		result = dto.NewYearlyClanPerformance(clan)
	}

	ps.emitAudit(ctx, filter.ActorId, "rollup.recalculate", filter.ClanId, period.Id, map[string]any{
		"battles": len(battles),
		"players": len(stats),
	})

	return result, nil
}

// ensureMonthly returns the monthly clan rollup, materializing it when
// absent. Concurrent first readers race on the insert; the conflict
// tolerant create plus the re-fetch collapses them onto one rollup.
func (ps *PerformanceService) ensureMonthly(ctx context.Context, clanId uint, period *periods.Period) (*models.MonthlyClanPerformance, error) {
	rollup, err := ps.PerformanceRepository.GetMonthlyClan(ctx, clanId, period.Id)
	if err != nil {
		return nil, err
	}
	if rollup != nil {
		return rollup, nil
	}

	battles, stats, err := ps.loadPeriod(ctx, clanId, period)
	if err != nil {
		return nil, err
	}
	if len(battles) == 0 {
		return nil, apperrors.New(apperrors.KindNotFound, messages.NoBattlesInPeriod)
	}

	clan := buildMonthlyClan(clanId, period.Id, battles)
	if err := ps.PerformanceRepository.CreateMonthly(ctx, clan, buildMonthlyPlayers(clanId, period.Id, stats)); err != nil {
		return nil, err
	}

	rollup, err = ps.PerformanceRepository.GetMonthlyClan(ctx, clanId, period.Id)
	if err != nil {
		return nil, err
	}
	if rollup == nil {
		return nil, apperrors.New(apperrors.KindConsistency, "monthly rollup vanished after materialization")
	}

	return rollup, nil
}

// ensureYearly is the yearly counterpart of ensureMonthly.
func (ps *PerformanceService) ensureYearly(ctx context.Context, clanId uint, period *periods.Period) (*models.YearlyClanPerformance, error) {
	rollup, err := ps.PerformanceRepository.GetYearlyClan(ctx, clanId, period.Id)
	if err != nil {
		return nil, err
	}
	if rollup != nil {
		return rollup, nil
	}

	battles, stats, err := ps.loadPeriod(ctx, clanId, period)
	if err != nil {
		return nil, err
	}
	if len(battles) == 0 {
		return nil, apperrors.New(apperrors.KindNotFound, messages.NoBattlesInPeriod)
	}

	clan := buildYearlyClan(clanId, period.Id, battles)
	if err := ps.PerformanceRepository.CreateYearly(ctx, clan, buildYearlyPlayers(clanId, period.Id, stats)); err != nil {
		return nil, err
	}

	rollup, err = ps.PerformanceRepository.GetYearlyClan(ctx, clanId, period.Id)
	if err != nil {
		return nil, err
	}
	if rollup == nil {
		return nil, apperrors.New(apperrors.KindConsistency, "yearly rollup vanished after materialization")
	}

	return rollup, nil
}

// loadPeriod fetches the battles and participant lines of a period.
func (ps *PerformanceService) loadPeriod(ctx context.Context, clanId uint, period *periods.Period) ([]*models.BattleRecord, []*models.PlayerStat, error) {
	battles, err := ps.BattleRepository.ListByClanAndRange(ctx, clanId, period.FromBattleId, period.ToBattleId)
	if err != nil {
		return nil, nil, err
	}

	stats, err := ps.BattleRepository.ListPlayerStatsByRange(ctx, clanId, period.FromBattleId, period.ToBattleId)
	if err != nil {
		return nil, nil, err
	}

	return battles, stats, nil
}

// clanAccumulator carries the running sums of the clan aggregation.
type clanAccumulator struct {
	battles, wins, losses, ties int

	score, opponentScore, baselineFp, totalFp, opponentFp float64
	clanRatio, averageRatio, marginRatio, fpMargin        float64
	participationRate, projectedScore                     float64
}

func accumulateClan(battles []*models.BattleRecord) clanAccumulator {
	var acc clanAccumulator

	for _, battle := range battles {
		acc.battles++
		switch battle.Result {
		case 1:
			acc.wins++
		case -1:
			acc.losses++
		default:
			acc.ties++
		}

		acc.score += float64(battle.Score)
		acc.opponentScore += float64(battle.OpponentScore)
		acc.baselineFp += float64(battle.BaselineFp)
		acc.totalFp += float64(battle.TotalFp)
		acc.opponentFp += float64(battle.OpponentFp)
		acc.clanRatio += battle.ClanRatio
		acc.averageRatio += battle.AverageRatio
		acc.marginRatio += battle.MarginRatio
		acc.fpMargin += battle.FpMargin
		acc.participationRate += battle.ParticipationRate
		acc.projectedScore += battle.ProjectedScore
	}

	return acc
}

func buildMonthlyClan(clanId uint, period string, battles []*models.BattleRecord) *models.MonthlyClanPerformance {
	acc := accumulateClan(battles)
	n := float64(acc.battles)

	return &models.MonthlyClanPerformance{
		ClanId:               clanId,
		Period:               period,
		Battles:              acc.battles,
		Wins:                 acc.wins,
		Losses:               acc.losses,
		Ties:                 acc.ties,
		AvgScore:             acc.score / n,
		AvgOpponentScore:     acc.opponentScore / n,
		AvgBaselineFp:        acc.baselineFp / n,
		AvgTotalFp:           acc.totalFp / n,
		AvgOpponentFp:        acc.opponentFp / n,
		AvgClanRatio:         acc.clanRatio / n,
		AvgAverageRatio:      acc.averageRatio / n,
		AvgMarginRatio:       acc.marginRatio / n,
		AvgFpMargin:          acc.fpMargin / n,
		AvgParticipationRate: acc.participationRate / n,
		AvgProjectedScore:    acc.projectedScore / n,
		// New and recalculated months always start open.
		Complete: false,
	}
}

func buildYearlyClan(clanId uint, period string, battles []*models.BattleRecord) *models.YearlyClanPerformance {
	acc := accumulateClan(battles)
	n := float64(acc.battles)

	return &models.YearlyClanPerformance{
		ClanId:               clanId,
		Period:               period,
		Battles:              acc.battles,
		Wins:                 acc.wins,
		Losses:               acc.losses,
		Ties:                 acc.ties,
		AvgScore:             acc.score / n,
		AvgOpponentScore:     acc.opponentScore / n,
		AvgBaselineFp:        acc.baselineFp / n,
		AvgTotalFp:           acc.totalFp / n,
		AvgOpponentFp:        acc.opponentFp / n,
		AvgClanRatio:         acc.clanRatio / n,
		AvgAverageRatio:      acc.averageRatio / n,
		AvgMarginRatio:       acc.marginRatio / n,
		AvgFpMargin:          acc.fpMargin / n,
		AvgParticipationRate: acc.participationRate / n,
		AvgProjectedScore:    acc.projectedScore / n,
	}
}

// playerAccumulator carries the running sums of one player's aggregation.
type playerAccumulator struct {
	battles                     int
	score, fp, ratio, ratioRank float64
}

func accumulatePlayers(stats []*models.PlayerStat) map[string]*playerAccumulator {
	byPlayer := make(map[string]*playerAccumulator)

	for _, stat := range stats {
		acc, ok := byPlayer[stat.PlayerId]
		if !ok {
			acc = &playerAccumulator{}
			byPlayer[stat.PlayerId] = acc
		}

		acc.battles++
		acc.score += float64(stat.Score)
		acc.fp += float64(stat.Fp)
		acc.ratio += stat.Ratio
		acc.ratioRank += float64(stat.RatioRank)
	}

	return byPlayer
}

func buildMonthlyPlayers(clanId uint, period string, stats []*models.PlayerStat) []*models.MonthlyIndividualPerformance {
	byPlayer := accumulatePlayers(stats)

	rollups := make([]*models.MonthlyIndividualPerformance, 0, len(byPlayer))
	for playerId, acc := range byPlayer {
		n := float64(acc.battles)
		rollups = append(rollups, &models.MonthlyIndividualPerformance{
			ClanId:       clanId,
			Period:       period,
			PlayerId:     playerId,
			Battles:      acc.battles,
			AvgScore:     acc.score / n,
			AvgFp:        acc.fp / n,
			AvgRatio:     acc.ratio / n,
			AvgRatioRank: acc.ratioRank / n,
		})
	}

	// Map iteration is unordered; keep the insert order deterministic.
	sort.Slice(rollups, func(i, j int) bool {
		return rollups[i].PlayerId < rollups[j].PlayerId
	})

	return rollups
}

func buildYearlyPlayers(clanId uint, period string, stats []*models.PlayerStat) []*models.YearlyIndividualPerformance {
	byPlayer := accumulatePlayers(stats)

	rollups := make([]*models.YearlyIndividualPerformance, 0, len(byPlayer))
	for playerId, acc := range byPlayer {
		n := float64(acc.battles)
		rollups = append(rollups, &models.YearlyIndividualPerformance{
			ClanId:       clanId,
			Period:       period,
			PlayerId:     playerId,
			Battles:      acc.battles,
			AvgScore:     acc.score / n,
			AvgFp:        acc.fp / n,
			AvgRatio:     acc.ratio / n,
			AvgRatioRank: acc.ratioRank / n,
		})
	}

	sort.Slice(rollups, func(i, j int) bool {
		return rollups[i].PlayerId < rollups[j].PlayerId
	})

	return rollups
}

func (ps *PerformanceService) emitAudit(ctx context.Context, actorId, action string, clanId uint, period string, details map[string]any) {
	auditrepo.Append(ctx, ps.AuditRepository, actorId, action, "rollup", period, clanId, details)
}
