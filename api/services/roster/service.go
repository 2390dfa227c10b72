package rosterservice

import (
	"context"
	"sort"
	"time"

	"goclan/api/dto"
	"goclan/api/filters"
	auditrepo "goclan/api/repositories/audit"
	rosterrepo "goclan/api/repositories/roster"
	"goclan/pkg/apperrors"
	"goclan/pkg/database/models"
	"goclan/pkg/messages"
	"goclan/pkg/periods"

	"gorm.io/gorm"
)

// RosterService manages the member lifecycle and the turnover analytics.
//
// A member is either active, left or kicked. Left and kicked are mutually
// exclusive; moving between them goes through a reinstate.
type RosterService struct {
	db               *gorm.DB
	RosterRepository rosterrepo.RosterRepository
	AuditRepository  auditrepo.AuditRepository

	now func() time.Time
}

// RosterServiceDeps is the dependency list for the roster service.
type RosterServiceDeps struct {
	DB *gorm.DB
}

// NewRosterService creates a roster service.
func NewRosterService(deps *RosterServiceDeps) *RosterService {
	return &RosterService{
		db:               deps.DB,
		RosterRepository: rosterrepo.NewRosterRepository(deps.DB),
		AuditRepository:  auditrepo.NewAuditRepository(deps.DB),
		now:              func() time.Time { return time.Now().UTC() },
	}
}

// AddMember registers a member explicitly, ahead of their first battle.
func (rs *RosterService) AddMember(ctx context.Context, filter *filters.AddMemberFilter) (*dto.Member, error) {
	if filter == nil {
		return nil, apperrors.New(apperrors.KindValidation, messages.FiltersNotNil)
	}

	existing, err := rs.RosterRepository.GetByClanAndPlayerId(ctx, filter.ClanId, filter.PlayerId)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.New(apperrors.KindConflict, messages.MemberAlreadyExists)
	}

	member := &models.RosterMember{
		ClanId:     filter.ClanId,
		PlayerId:   filter.PlayerId,
		Name:       filter.Name,
		JoinedDate: filter.JoinedDate,
		Active:     true,
	}

	if err := rs.RosterRepository.Create(ctx, member); err != nil {
		return nil, err
	}

	rs.emitAudit(ctx, filter.ActorId, "member.add", filter.ClanId, filter.PlayerId, nil)

	return dto.NewMember(member), nil
}

// ListMembers returns the full roster, past and present.
func (rs *RosterService) ListMembers(ctx context.Context, clanId uint) ([]*dto.Member, error) {
	members, err := rs.RosterRepository.ListByClan(ctx, clanId)
	if err != nil {
		return nil, err
	}

	return dto.NewMemberList(members), nil
}

// MarkLeft records a voluntary departure.
func (rs *RosterService) MarkLeft(ctx context.Context, clanId uint, playerId, actorId string) (*dto.Member, error) {
	member, err := rs.getForLifecycleChange(ctx, clanId, playerId)
	if err != nil {
		return nil, err
	}
	if member.KickedDate != nil {
		return nil, apperrors.New(apperrors.KindConsistency, messages.MemberBrokenLifecycle)
	}

	left := rs.now()
	member.LeftDate = &left
	member.Active = false

	if err := rs.RosterRepository.Save(ctx, member); err != nil {
		return nil, err
	}

	rs.emitAudit(ctx, actorId, "member.left", clanId, playerId, nil)

	return dto.NewMember(member), nil
}

// MarkKicked records a removal by the clan.
func (rs *RosterService) MarkKicked(ctx context.Context, clanId uint, playerId, actorId string) (*dto.Member, error) {
	member, err := rs.getForLifecycleChange(ctx, clanId, playerId)
	if err != nil {
		return nil, err
	}
	if member.LeftDate != nil {
		return nil, apperrors.New(apperrors.KindConsistency, messages.MemberBrokenLifecycle)
	}

	kicked := rs.now()
	member.KickedDate = &kicked
	member.Active = false

	if err := rs.RosterRepository.Save(ctx, member); err != nil {
		return nil, err
	}

	rs.emitAudit(ctx, actorId, "member.kicked", clanId, playerId, nil)

	return dto.NewMember(member), nil
}

// Reinstate clears the departure state and reactivates the member.
func (rs *RosterService) Reinstate(ctx context.Context, clanId uint, playerId, actorId string) (*dto.Member, error) {
	member, err := rs.getForLifecycleChange(ctx, clanId, playerId)
	if err != nil {
		return nil, err
	}

	member.LeftDate = nil
	member.KickedDate = nil
	member.Active = true

	if err := rs.RosterRepository.Save(ctx, member); err != nil {
		return nil, err
	}

	rs.emitAudit(ctx, actorId, "member.reinstate", clanId, playerId, nil)

	return dto.NewMember(member), nil
}

// GetChurn aggregates the roster movement into monthly buckets. Joins,
// departures and kicks are three independent event streams, so one
// member can contribute to several buckets.
func (rs *RosterService) GetChurn(ctx context.Context, filter *filters.ChurnFilter) (*dto.ChurnReport, error) {
	if filter == nil {
		return nil, apperrors.New(apperrors.KindValidation, messages.FiltersNotNil)
	}

	members, err := rs.RosterRepository.ListByClan(ctx, filter.ClanId)
	if err != nil {
		return nil, err
	}

	report := &dto.ChurnReport{ClanId: filter.ClanId}
	buckets := make(map[string]*dto.ChurnBucket)

	bucketFor := func(t time.Time) *dto.ChurnBucket {
		month := periods.MonthOf(t)
		bucket, ok := buckets[month]
		if !ok {
			bucket = &dto.ChurnBucket{Month: month}
			buckets[month] = bucket
		}
		return bucket
	}

	inWindow := func(t time.Time) bool {
		if !filter.From.IsZero() && t.Before(filter.From) {
			return false
		}
		if !filter.To.IsZero() && t.After(filter.To) {
			return false
		}
		return true
	}

	var tenureDays float64
	now := rs.now()

	for _, member := range members {
		if inWindow(member.JoinedDate) {
			bucketFor(member.JoinedDate).Joined++
			report.TotalJoined++
		}
		if member.LeftDate != nil && inWindow(*member.LeftDate) {
			bucketFor(*member.LeftDate).Left++
		}
		if member.KickedDate != nil && inWindow(*member.KickedDate) {
			bucketFor(*member.KickedDate).Kicked++
		}

		if member.Active {
			report.ActiveMembers++
			tenureDays += now.Sub(member.JoinedDate).Hours() / 24
		}
	}

	report.Months = make([]*dto.ChurnBucket, 0, len(buckets))
	for _, bucket := range buckets {
		report.Months = append(report.Months, bucket)
	}
	sort.Slice(report.Months, func(i, j int) bool {
		return report.Months[i].Month < report.Months[j].Month
	})

	if report.TotalJoined > 0 {
		report.RetentionRate = float64(report.ActiveMembers) / float64(report.TotalJoined) * 100
	}
	if report.ActiveMembers > 0 {
		report.AvgTenureDays = tenureDays / float64(report.ActiveMembers)
	}

	return report, nil
}

func (rs *RosterService) getForLifecycleChange(ctx context.Context, clanId uint, playerId string) (*models.RosterMember, error) {
	member, err := rs.RosterRepository.GetByClanAndPlayerId(ctx, clanId, playerId)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, apperrors.New(apperrors.KindNotFound, messages.MemberNotFound)
	}

	return member, nil
}

func (rs *RosterService) emitAudit(ctx context.Context, actorId, action string, clanId uint, playerId string, details map[string]any) {
	auditrepo.Append(ctx, rs.AuditRepository, actorId, action, "member", playerId, clanId, details)
}
