package testutil

import (
	"context"
	"testing"

	"goclan/pkg/database/models"

	"github.com/stretchr/testify/mock"
)

// Assert the expectations of all mocks.
func VerifyAllMocks(t *testing.T, mocks ...any) {
	t.Helper()

	for _, m := range mocks {
		if mockObj, ok := m.(interface{ AssertExpectations(*testing.T) bool }); ok {
			mockObj.AssertExpectations(t)
		}
	}
}

// ============================================================================
// Mock Implementations used on the Battle service tests.
// ============================================================================

// Battle mock implementation.
type MockBattleRepository struct {
	mock.Mock
}

func (m *MockBattleRepository) GetByClanAndBattleId(ctx context.Context, clanId uint, battleId int) (*models.BattleRecord, error) {
	args := m.Called(ctx, clanId, battleId)
	battle, _ := args.Get(0).(*models.BattleRecord)
	return battle, args.Error(1)
}

func (m *MockBattleRepository) ListByClanAndRange(ctx context.Context, clanId uint, fromBattleId, toBattleId int) ([]*models.BattleRecord, error) {
	args := m.Called(ctx, clanId, fromBattleId, toBattleId)
	battles, _ := args.Get(0).([]*models.BattleRecord)
	return battles, args.Error(1)
}

func (m *MockBattleRepository) ListPlayerStats(ctx context.Context, clanId uint, battleId int) ([]*models.PlayerStat, error) {
	args := m.Called(ctx, clanId, battleId)
	stats, _ := args.Get(0).([]*models.PlayerStat)
	return stats, args.Error(1)
}

func (m *MockBattleRepository) ListNonplayerStats(ctx context.Context, clanId uint, battleId int) ([]*models.NonplayerStat, error) {
	args := m.Called(ctx, clanId, battleId)
	stats, _ := args.Get(0).([]*models.NonplayerStat)
	return stats, args.Error(1)
}

func (m *MockBattleRepository) ListPlayerStatsByRange(ctx context.Context, clanId uint, fromBattleId, toBattleId int) ([]*models.PlayerStat, error) {
	args := m.Called(ctx, clanId, fromBattleId, toBattleId)
	stats, _ := args.Get(0).([]*models.PlayerStat)
	return stats, args.Error(1)
}

func (m *MockBattleRepository) ListPlayerStatsForPlayer(ctx context.Context, clanId uint, playerId string, fromBattleId, toBattleId int) ([]*models.PlayerStat, error) {
	args := m.Called(ctx, clanId, playerId, fromBattleId, toBattleId)
	stats, _ := args.Get(0).([]*models.PlayerStat)
	return stats, args.Error(1)
}

func (m *MockBattleRepository) ListNonplayerStatsByRange(ctx context.Context, clanId uint, fromBattleId, toBattleId int) ([]*models.NonplayerStat, error) {
	args := m.Called(ctx, clanId, fromBattleId, toBattleId)
	stats, _ := args.Get(0).([]*models.NonplayerStat)
	return stats, args.Error(1)
}

func (m *MockBattleRepository) CreateWithStats(ctx context.Context, battle *models.BattleRecord, players []*models.PlayerStat, nonplayers []*models.NonplayerStat, newMembers []*models.RosterMember) error {
	args := m.Called(ctx, battle, players, nonplayers, newMembers)
	return args.Error(0)
}

func (m *MockBattleRepository) UpdateWithStats(ctx context.Context, battle *models.BattleRecord, players []*models.PlayerStat, nonplayers []*models.NonplayerStat) error {
	args := m.Called(ctx, battle, players, nonplayers)
	return args.Error(0)
}

func (m *MockBattleRepository) DeleteWithStats(ctx context.Context, clanId uint, battleId int) (int64, error) {
	args := m.Called(ctx, clanId, battleId)
	return args.Get(0).(int64), args.Error(1)
}

// Calendar mock implementation.
type MockCalendarRepository struct {
	mock.Mock
}

func (m *MockCalendarRepository) GetByBattleId(ctx context.Context, battleId int) (*models.BattleSchedule, error) {
	args := m.Called(ctx, battleId)
	schedule, _ := args.Get(0).(*models.BattleSchedule)
	return schedule, args.Error(1)
}

func (m *MockCalendarRepository) ListAll(ctx context.Context) ([]*models.BattleSchedule, error) {
	args := m.Called(ctx)
	schedules, _ := args.Get(0).([]*models.BattleSchedule)
	return schedules, args.Error(1)
}

// Audit mock implementation.
type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) Create(ctx context.Context, entry *models.AuditLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// ============================================================================
// Mock Implementations used on the Performance service tests.
// ============================================================================

// Performance mock implementation.
type MockPerformanceRepository struct {
	mock.Mock
}

func (m *MockPerformanceRepository) GetMonthlyClan(ctx context.Context, clanId uint, period string) (*models.MonthlyClanPerformance, error) {
	args := m.Called(ctx, clanId, period)
	rollup, _ := args.Get(0).(*models.MonthlyClanPerformance)
	return rollup, args.Error(1)
}

func (m *MockPerformanceRepository) CreateMonthly(ctx context.Context, clan *models.MonthlyClanPerformance, players []*models.MonthlyIndividualPerformance) error {
	args := m.Called(ctx, clan, players)
	return args.Error(0)
}

func (m *MockPerformanceRepository) SetMonthlyClanComplete(ctx context.Context, clanId uint, period string, complete bool) (int64, error) {
	args := m.Called(ctx, clanId, period, complete)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPerformanceRepository) GetYearlyClan(ctx context.Context, clanId uint, period string) (*models.YearlyClanPerformance, error) {
	args := m.Called(ctx, clanId, period)
	rollup, _ := args.Get(0).(*models.YearlyClanPerformance)
	return rollup, args.Error(1)
}

func (m *MockPerformanceRepository) CreateYearly(ctx context.Context, clan *models.YearlyClanPerformance, players []*models.YearlyIndividualPerformance) error {
	args := m.Called(ctx, clan, players)
	return args.Error(0)
}

func (m *MockPerformanceRepository) ListMonthlyIndividual(ctx context.Context, clanId uint, period string) ([]*models.MonthlyIndividualPerformance, error) {
	args := m.Called(ctx, clanId, period)
	rollups, _ := args.Get(0).([]*models.MonthlyIndividualPerformance)
	return rollups, args.Error(1)
}

func (m *MockPerformanceRepository) ListYearlyIndividual(ctx context.Context, clanId uint, period string) ([]*models.YearlyIndividualPerformance, error) {
	args := m.Called(ctx, clanId, period)
	rollups, _ := args.Get(0).([]*models.YearlyIndividualPerformance)
	return rollups, args.Error(1)
}

func (m *MockPerformanceRepository) ReplaceMonthly(ctx context.Context, clanId uint, period string, clan *models.MonthlyClanPerformance, players []*models.MonthlyIndividualPerformance) error {
	args := m.Called(ctx, clanId, period, clan, players)
	return args.Error(0)
}

func (m *MockPerformanceRepository) ReplaceYearly(ctx context.Context, clanId uint, period string, clan *models.YearlyClanPerformance, players []*models.YearlyIndividualPerformance) error {
	args := m.Called(ctx, clanId, period, clan, players)
	return args.Error(0)
}

// ============================================================================
// Mock Implementations used on the Roster service tests.
// ============================================================================

// Roster mock implementation.
type MockRosterRepository struct {
	mock.Mock
}

func (m *MockRosterRepository) GetByClanAndPlayerId(ctx context.Context, clanId uint, playerId string) (*models.RosterMember, error) {
	args := m.Called(ctx, clanId, playerId)
	member, _ := args.Get(0).(*models.RosterMember)
	return member, args.Error(1)
}

func (m *MockRosterRepository) ListByClan(ctx context.Context, clanId uint) ([]*models.RosterMember, error) {
	args := m.Called(ctx, clanId)
	members, _ := args.Get(0).([]*models.RosterMember)
	return members, args.Error(1)
}

func (m *MockRosterRepository) Create(ctx context.Context, member *models.RosterMember) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockRosterRepository) Save(ctx context.Context, member *models.RosterMember) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

// ============================================================================
// Mock Implementations used on the Trend service tests.
// ============================================================================

// TrendCache mock implementation.
type MockTrendCache struct {
	mock.Mock
}

func (m *MockTrendCache) Get(ctx context.Context, clanId uint, variant string, out any) bool {
	args := m.Called(ctx, clanId, variant, out)
	return args.Bool(0)
}

func (m *MockTrendCache) Set(ctx context.Context, clanId uint, variant string, value any) error {
	args := m.Called(ctx, clanId, variant, value)
	return args.Error(0)
}

func (m *MockTrendCache) Invalidate(ctx context.Context, clanId uint) error {
	args := m.Called(ctx, clanId)
	return args.Error(0)
}
