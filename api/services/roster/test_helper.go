package rosterservice

import (
	"time"

	"goclan/api/services/testutil"

	"gorm.io/gorm"
)

// Helper to initialize the mocks. The clock is pinned so tenure and
// lifecycle dates are deterministic.
func setupTestService() (
	*RosterService,
	*testutil.MockRosterRepository,
	*testutil.MockAuditRepository,
) {
	mockRosterRepo := new(testutil.MockRosterRepository)
	mockAuditRepo := new(testutil.MockAuditRepository)

	service := &RosterService{
		db:               new(gorm.DB),
		RosterRepository: mockRosterRepo,
		AuditRepository:  mockAuditRepo,
		now:              func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) },
	}

	return service, mockRosterRepo, mockAuditRepo
}
