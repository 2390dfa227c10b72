package battleservice

import (
	"context"
	"errors"
	"log"
	"strconv"
	"strings"

	"goclan/api/cache"
	"goclan/api/dto"
	"goclan/api/filters"
	auditrepo "goclan/api/repositories/audit"
	battlerepo "goclan/api/repositories/battle"
	calendarrepo "goclan/api/repositories/calendar"
	"goclan/pkg/apperrors"
	"goclan/pkg/database/models"
	"goclan/pkg/messages"
	"goclan/pkg/metrics"
	"goclan/pkg/periods"

	"gorm.io/gorm"
)

// BattleService validates battle submissions against the shared calendar,
// derives every metric and persists the record atomically.
type BattleService struct {
	db                 *gorm.DB
	BattleRepository   battlerepo.BattleRepository
	CalendarRepository calendarrepo.CalendarRepository
	AuditRepository    auditrepo.AuditRepository

	scheduleCache *cache.ScheduleCache
	trendCache    cache.TrendCache
}

// BattleServiceDeps is the dependency list for the battle service.
type BattleServiceDeps struct {
	DB            *gorm.DB
	ScheduleCache *cache.ScheduleCache
	TrendCache    cache.TrendCache
}

// NewBattleService creates a battle service.
func NewBattleService(deps *BattleServiceDeps) *BattleService {
	return &BattleService{
		db:                 deps.DB,
		BattleRepository:   battlerepo.NewBattleRepository(deps.DB),
		CalendarRepository: calendarrepo.NewCalendarRepository(deps.DB),
		AuditRepository:    auditrepo.NewAuditRepository(deps.DB),
		scheduleCache:      deps.ScheduleCache,
		trendCache:         deps.TrendCache,
	}
}

// CreateBattle records a new battle with all derived fields.
func (bs *BattleService) CreateBattle(ctx context.Context, filter *filters.BattleFilter) (*dto.BattleDetail, error) {
	if filter == nil {
		return nil, apperrors.New(apperrors.KindValidation, messages.FiltersNotNil)
	}

	scheduled, err := bs.scheduleExists(ctx, filter.BattleId)
	if err != nil {
		return nil, err
	}
	if !scheduled {
		return nil, apperrors.New(apperrors.KindSchedule, messages.BattleNotScheduled)
	}

	existing, err := bs.BattleRepository.GetByClanAndBattleId(ctx, filter.ClanId, filter.BattleId)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.New(apperrors.KindConflict, messages.BattleAlreadyRecorded)
	}

	// All derivation happens before the first write, so a failure here
	// leaves no trace in storage.
	battle, players, nonplayers := buildBattleRecord(filter)
	newMembers := firstSeenMembers(filter)

	err = bs.BattleRepository.CreateWithStats(ctx, battle, players, nonplayers, newMembers)
	if err != nil {
		if isDuplicateKey(err) {
			return nil, apperrors.New(apperrors.KindConflict, messages.BattleAlreadyRecorded)
		}
		return nil, err
	}

	bs.emitAudit(ctx, filter.ActorId, "battle.create", filter.ClanId, filter.BattleId, map[string]any{
		"score":         filter.Score,
		"opponentScore": filter.OpponentScore,
		"opponentName":  filter.OpponentName,
	})
	bs.invalidateTrends(ctx, filter.ClanId)

	return dto.NewBattleDetail(battle, players, nonplayers), nil
}

// UpdateBattle replaces a battle from new raw inputs, re-deriving every
// computed field. Previously stored derived values are never reused.
func (bs *BattleService) UpdateBattle(ctx context.Context, filter *filters.BattleFilter) (*dto.BattleDetail, error) {
	if filter == nil {
		return nil, apperrors.New(apperrors.KindValidation, messages.FiltersNotNil)
	}

	existing, err := bs.BattleRepository.GetByClanAndBattleId(ctx, filter.ClanId, filter.BattleId)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, apperrors.New(apperrors.KindNotFound, messages.BattleNotFound)
	}

	battle, players, nonplayers := buildBattleRecord(filter)
	battle.ID = existing.ID
	battle.CreatedAt = existing.CreatedAt

	if err := bs.BattleRepository.UpdateWithStats(ctx, battle, players, nonplayers); err != nil {
		return nil, err
	}

	bs.emitAudit(ctx, filter.ActorId, "battle.update", filter.ClanId, filter.BattleId, map[string]any{
		"score":         filter.Score,
		"opponentScore": filter.OpponentScore,
	})
	bs.invalidateTrends(ctx, filter.ClanId)

	return dto.NewBattleDetail(battle, players, nonplayers), nil
}

// DeleteBattle removes a battle and its stat lines.
func (bs *BattleService) DeleteBattle(ctx context.Context, clanId uint, battleId int, actorId string) error {
	deleted, err := bs.BattleRepository.DeleteWithStats(ctx, clanId, battleId)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return apperrors.New(apperrors.KindNotFound, messages.BattleNotFound)
	}

	bs.emitAudit(ctx, actorId, "battle.delete", clanId, battleId, nil)
	bs.invalidateTrends(ctx, clanId)

	return nil
}

// GetBattle returns one battle with its stat lines.
func (bs *BattleService) GetBattle(ctx context.Context, clanId uint, battleId int) (*dto.BattleDetail, error) {
	battle, err := bs.BattleRepository.GetByClanAndBattleId(ctx, clanId, battleId)
	if err != nil {
		return nil, err
	}
	if battle == nil {
		return nil, apperrors.New(apperrors.KindNotFound, messages.BattleNotFound)
	}

	players, err := bs.BattleRepository.ListPlayerStats(ctx, clanId, battleId)
	if err != nil {
		return nil, err
	}

	nonplayers, err := bs.BattleRepository.ListNonplayerStats(ctx, clanId, battleId)
	if err != nil {
		return nil, err
	}

	return dto.NewBattleDetail(battle, players, nonplayers), nil
}

// ListBattles returns the clan battles of an optional date window.
func (bs *BattleService) ListBattles(ctx context.Context, filter *filters.ListBattlesFilter) ([]*dto.BattleData, error) {
	if filter == nil {
		return nil, apperrors.New(apperrors.KindValidation, messages.FiltersNotNil)
	}

	fromId, toId := periods.DateRangeBattleIds(filter.From, filter.To)

	battles, err := bs.BattleRepository.ListByClanAndRange(ctx, filter.ClanId, fromId, toId)
	if err != nil {
		return nil, err
	}

	return dto.NewBattleList(battles), nil
}

// Resolve the battle id against the calendar, through the cache when wired.
func (bs *BattleService) scheduleExists(ctx context.Context, battleId int) (bool, error) {
	if bs.scheduleCache != nil {
		schedule, err := bs.scheduleCache.GetSchedule(ctx, battleId, bs.CalendarRepository)
		return schedule != nil, err
	}

	schedule, err := bs.CalendarRepository.GetByBattleId(ctx, battleId)
	return schedule != nil, err
}

// buildBattleRecord derives every battle and player level field from the
// raw submission.
func buildBattleRecord(filter *filters.BattleFilter) (*models.BattleRecord, []*models.PlayerStat, []*models.NonplayerStat) {
	playerFps := make([]int, len(filter.Players))
	for i, player := range filter.Players {
		playerFps[i] = player.Fp
	}

	nonplayerEntries := make([]metrics.NonplayerEntry, len(filter.Nonplayers))
	for i, nonplayer := range filter.Nonplayers {
		nonplayerEntries[i] = metrics.NonplayerEntry{Fp: nonplayer.Fp, Reserve: nonplayer.Reserve}
	}

	totalFp := metrics.TotalFp(playerFps, nonplayerEntries)
	nonplayingFp := metrics.NonplayingFp(nonplayerEntries)
	reserveFp := metrics.ReserveFp(nonplayerEntries)
	nonplayingFpRatio := metrics.NonplayingFpRatio(nonplayingFp, totalFp)

	playerCount := len(filter.Players)
	eligibleCount := playerCount + len(filter.Nonplayers)

	battle := &models.BattleRecord{
		ClanId:             filter.ClanId,
		BattleId:           filter.BattleId,
		OpponentName:       filter.OpponentName,
		OpponentCountry:    filter.OpponentCountry,
		OpponentExternalId: filter.OpponentExternalId,
		Score:              filter.Score,
		OpponentScore:      filter.OpponentScore,
		BaselineFp:         filter.BaselineFp,
		TotalFp:            totalFp,
		OpponentFp:         filter.OpponentFp,
		Result:             metrics.BattleResult(filter.Score, filter.OpponentScore),
		ClanRatio:          metrics.ClanRatio(filter.Score, filter.BaselineFp),
		AverageRatio:       metrics.AverageRatio(filter.Score, totalFp),
		MarginRatio:        metrics.MarginRatio(filter.Score, filter.OpponentScore),
		FpMargin:           metrics.FpMargin(filter.BaselineFp, filter.OpponentFp),
		PlayerCount:        playerCount,
		NonplayingCount:    metrics.NonplayingCount(nonplayerEntries),
		ReserveCount:       metrics.ReserveCount(nonplayerEntries),
		NonplayingFp:       nonplayingFp,
		ReserveFp:          reserveFp,
		NonplayingFpRatio:  nonplayingFpRatio,
		ReserveFpRatio:     metrics.ReserveFpRatio(reserveFp, totalFp),
		ParticipationRate:  metrics.ParticipationRate(playerCount, eligibleCount),
		ProjectedScore:     metrics.ProjectedScore(filter.Score, nonplayingFpRatio),
	}

	ratioEntries := make([]metrics.PlayerRatioEntry, len(filter.Players))
	players := make([]*models.PlayerStat, len(filter.Players))
	for i, player := range filter.Players {
		ratio := metrics.PlayerRatio(player.Score, player.Fp)
		ratioEntries[i] = metrics.PlayerRatioEntry{PlayerId: player.PlayerId, Ratio: ratio}
		players[i] = &models.PlayerStat{
			ClanId:   filter.ClanId,
			BattleId: filter.BattleId,
			PlayerId: player.PlayerId,
			Rank:     player.Rank,
			Score:    player.Score,
			Fp:       player.Fp,
			Ratio:    ratio,
		}
	}

	ranks := metrics.RatioRanks(ratioEntries)
	for _, player := range players {
		player.RatioRank = ranks[player.PlayerId]
	}

	nonplayers := make([]*models.NonplayerStat, len(filter.Nonplayers))
	for i, nonplayer := range filter.Nonplayers {
		nonplayers[i] = &models.NonplayerStat{
			ClanId:     filter.ClanId,
			BattleId:   filter.BattleId,
			PlayerId:   nonplayer.PlayerId,
			Fp:         nonplayer.Fp,
			Reserve:    nonplayer.Reserve,
			ActionCode: nonplayer.ActionCode,
		}
	}

	return battle, players, nonplayers
}

// firstSeenMembers builds active roster rows for everyone on the
// submission. Members already on the roster are skipped on insert.
func firstSeenMembers(filter *filters.BattleFilter) []*models.RosterMember {
	joined := periods.BattleDate(filter.BattleId)
	members := make([]*models.RosterMember, 0, len(filter.Players)+len(filter.Nonplayers))

	for _, player := range filter.Players {
		members = append(members, &models.RosterMember{
			ClanId:     filter.ClanId,
			PlayerId:   player.PlayerId,
			JoinedDate: joined,
			Active:     true,
		})
	}

	for _, nonplayer := range filter.Nonplayers {
		members = append(members, &models.RosterMember{
			ClanId:     filter.ClanId,
			PlayerId:   nonplayer.PlayerId,
			JoinedDate: joined,
			Active:     true,
		})
	}

	return members
}

func (bs *BattleService) emitAudit(ctx context.Context, actorId, action string, clanId uint, battleId int, details map[string]any) {
	auditrepo.Append(ctx, bs.AuditRepository, actorId, action, "battle", strconv.Itoa(battleId), clanId, details)
}

func (bs *BattleService) invalidateTrends(ctx context.Context, clanId uint) {
	if bs.trendCache == nil {
		return
	}

	if err := bs.trendCache.Invalidate(ctx, clanId); err != nil {
		log.Printf("couldn't invalidate the trend cache for clan %d: %v", clanId, err)
	}
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "duplicate key")
}
