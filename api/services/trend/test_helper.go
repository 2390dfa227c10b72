package trendservice

import (
	"goclan/api/services/testutil"
	"goclan/pkg/database/models"

	"gorm.io/gorm"
)

// Helper to initialize the mocks.
func setupTestService() (
	*TrendService,
	*testutil.MockBattleRepository,
	*testutil.MockTrendCache,
) {
	mockBattleRepo := new(testutil.MockBattleRepository)
	mockTrendCache := new(testutil.MockTrendCache)

	service := &TrendService{
		db:               new(gorm.DB),
		BattleRepository: mockBattleRepo,
		trendCache:       mockTrendCache,
	}

	return service, mockBattleRepo, mockTrendCache
}

// battle is a shorthand for the fields the trend assembly reads.
func battle(battleId int, result int, baselineFp int, clanRatio, marginRatio, participation float64, opponent, country string) *models.BattleRecord {
	return &models.BattleRecord{
		ClanId:            7,
		BattleId:          battleId,
		OpponentName:      opponent,
		OpponentCountry:   country,
		BaselineFp:        baselineFp,
		Result:            result,
		ClanRatio:         clanRatio,
		MarginRatio:       marginRatio,
		ParticipationRate: participation,
	}
}
