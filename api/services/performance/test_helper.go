package performanceservice

import (
	"goclan/api/services/testutil"
	"goclan/pkg/database/models"

	"gorm.io/gorm"
)

// Helper to initialize the mocks.
func setupTestService() (
	*PerformanceService,
	*testutil.MockBattleRepository,
	*testutil.MockPerformanceRepository,
	*testutil.MockAuditRepository,
) {
	mockBattleRepo := new(testutil.MockBattleRepository)
	mockPerfRepo := new(testutil.MockPerformanceRepository)
	mockAuditRepo := new(testutil.MockAuditRepository)

	service := &PerformanceService{
		db:                    new(gorm.DB),
		BattleRepository:      mockBattleRepo,
		PerformanceRepository: mockPerfRepo,
		AuditRepository:       mockAuditRepo,
	}

	return service, mockBattleRepo, mockPerfRepo, mockAuditRepo
}

// marchBattles is a two battle month with round aggregate values:
// one win and one loss, average score 45000.
func marchBattles(clanId uint) []*models.BattleRecord {
	return []*models.BattleRecord{
		{
			ClanId:            clanId,
			BattleId:          20240305,
			Score:             50000,
			OpponentScore:     45000,
			BaselineFp:        2500,
			TotalFp:           2500,
			Result:            1,
			ClanRatio:         200,
			MarginRatio:       10,
			ParticipationRate: 50,
		},
		{
			ClanId:            clanId,
			BattleId:          20240318,
			Score:             40000,
			OpponentScore:     60000,
			BaselineFp:        2500,
			TotalFp:           2500,
			Result:            -1,
			ClanRatio:         160,
			MarginRatio:       -50,
			ParticipationRate: 100,
		},
	}
}

func marchPlayerStats(clanId uint) []*models.PlayerStat {
	return []*models.PlayerStat{
		{ClanId: clanId, BattleId: 20240305, PlayerId: "p1", Score: 30000, Fp: 1200, Ratio: 250, RatioRank: 1},
		{ClanId: clanId, BattleId: 20240305, PlayerId: "p2", Score: 20000, Fp: 1000, Ratio: 200, RatioRank: 2},
		{ClanId: clanId, BattleId: 20240318, PlayerId: "p1", Score: 24000, Fp: 1200, Ratio: 200, RatioRank: 1},
	}
}
