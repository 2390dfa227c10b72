package jobs

import (
	"context"
	"fmt"
	"log"

	"goclan/api/cache"
	calendarrepo "goclan/api/repositories/calendar"
	"goclan/pkg/config"
	"goclan/pkg/database"
)

// RevalidateScheduleCache reloads the full battle calendar into memory
// and redis, so calendar updates surface without an API restart.
func RevalidateScheduleCache() error {
	log.Println("Starting schedule cache revalidation")

	// Create a new connection pool.
	db, err := database.NewConnection(config.Database.URL)
	if err != nil {
		return fmt.Errorf("couldn't get database connection: %w", err)
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}()

	repo := calendarrepo.NewCalendarRepository(db)
	if err := cache.GetScheduleCache().Initialize(context.Background(), repo); err != nil {
		return fmt.Errorf("schedule cache revalidation failed: %w", err)
	}

	log.Println("Schedule cache revalidation completed successfully")
	return nil
}
