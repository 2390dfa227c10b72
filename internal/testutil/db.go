package testutil

import (
	"context"
	"testing"
	"time"

	"goclan/pkg/database/models"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestConnection spins up a throwaway postgres container with the
// full schema migrated, returning the connection and its cleanup.
func NewTestConnection(t *testing.T) (*gorm.DB, func()) {
	t.Helper()

	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("goclan_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("couldn't start the postgres container: %v", err)
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("couldn't get the container connection string: %v", err)
	}

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("couldn't connect to the test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.BattleRecord{},
		&models.PlayerStat{},
		&models.NonplayerStat{},
		&models.MonthlyClanPerformance{},
		&models.YearlyClanPerformance{},
		&models.MonthlyIndividualPerformance{},
		&models.YearlyIndividualPerformance{},
		&models.RosterMember{},
		&models.BattleSchedule{},
		&models.AuditLog{},
	)
	if err != nil {
		t.Fatalf("couldn't migrate the test schema: %v", err)
	}

	cleanup := func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
		container.Terminate(ctx)
	}

	return db, cleanup
}
