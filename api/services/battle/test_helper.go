package battleservice

import (
	"goclan/api/filters"
	"goclan/api/services/testutil"

	"gorm.io/gorm"
)

// Helper to initialize the mocks.
func setupTestService() (
	*BattleService,
	*testutil.MockBattleRepository,
	*testutil.MockCalendarRepository,
	*testutil.MockAuditRepository,
	*testutil.MockTrendCache,
) {
	mockBattleRepo := new(testutil.MockBattleRepository)
	mockCalendarRepo := new(testutil.MockCalendarRepository)
	mockAuditRepo := new(testutil.MockAuditRepository)
	mockTrendCache := new(testutil.MockTrendCache)

	service := &BattleService{
		db:                 new(gorm.DB),
		BattleRepository:   mockBattleRepo,
		CalendarRepository: mockCalendarRepo,
		AuditRepository:    mockAuditRepo,
		trendCache:         mockTrendCache,
	}

	return service, mockBattleRepo, mockCalendarRepo, mockAuditRepo, mockTrendCache
}

// referenceSubmission is a small but complete battle submission whose
// derived values are easy to verify by hand.
func referenceSubmission(clanId uint, battleId int) *filters.BattleFilter {
	return &filters.BattleFilter{
		ClanId:        clanId,
		ActorId:       "officer-1",
		BattleId:      battleId,
		OpponentName:  "Night Owls",
		Score:         50000,
		OpponentScore: 45000,
		BaselineFp:    2500,
		OpponentFp:    2600,
		Players: []filters.BattlePlayerBody{
			{PlayerId: "p1", Rank: 1, Score: 30000, Fp: 1200},
			{PlayerId: "p2", Rank: 2, Score: 20000, Fp: 1000},
		},
		Nonplayers: []filters.BattleNonplayerBody{
			{PlayerId: "p3", Fp: 200, Reserve: false, ActionCode: "warn"},
			{PlayerId: "p4", Fp: 100, Reserve: true, ActionCode: "reserve"},
		},
	}
}
