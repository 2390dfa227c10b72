package database

import (
	"database/sql"
	"errors"
	"fmt"
	"log"

	"goclan/pkg/config"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// Advisory lock name shared by the api and scheduler binaries, so only
// one of them applies migrations when both start at once.
const migrationLockKey = "goclan_schema_migrations"

// RunMigrations applies every pending migration to the database.
func RunMigrations(db *sql.DB) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("couldn't create the migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://"+config.Database.MigrationsPath,
		config.Database.Database,
		driver,
	)
	if err != nil {
		return fmt.Errorf("couldn't create the migrate instance: %w", err)
	}

	var locked bool
	err = db.QueryRow("SELECT pg_try_advisory_lock(hashtext($1))", migrationLockKey).Scan(&locked)
	if err != nil {
		return fmt.Errorf("couldn't acquire the migration lock: %w", err)
	}
	if !locked {
		log.Println("Migrations already running in another process, skipping.")
		return nil
	}
	defer func() {
		var released bool
		err := db.QueryRow("SELECT pg_advisory_unlock(hashtext($1))", migrationLockKey).Scan(&released)
		if err != nil || !released {
			log.Printf("Couldn't release the migration lock: %v", err)
		}
	}()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("couldn't apply the migrations: %w", err)
	}

	return nil
}
