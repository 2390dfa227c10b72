package main

import (
	"log"
	"os"

	"goclan/api/modules"
	"goclan/api/routes"
	"goclan/pkg/config"
	"goclan/pkg/database"
	"goclan/pkg/redis"

	"github.com/joho/godotenv"
)

func main() {
	// Load the environment variables if not running on Docker.
	if os.Getenv("ENVIRONMENT") != "docker" {
		err := godotenv.Load()
		if err != nil {
			log.Fatal("Error loading .env file")
		}
	}

	if err := config.Load(); err != nil {
		log.Fatalf("Error loading the configuration: %v", err)
	}

	db, err := database.NewConnection(config.Database.URL)
	if err != nil {
		log.Fatalf("Error connecting to the database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Error getting the underlying database handle: %v", err)
	}

	if err := database.RunMigrations(sqlDB); err != nil {
		log.Fatalf("Error running the migrations: %v", err)
	}

	// Create a module with all necessary handlers.
	module := modules.NewModule(&modules.ModuleDependencies{
		DB:    db,
		Redis: redis.GetClient(),
	})

	// Create a new router with the routes setup.
	router := routes.NewRouter(module.Router)
	router.SetupRoutes(
		module.BattleHandler,
		module.PerformanceHandler,
		module.TrendHandler,
		module.RosterHandler,
	)

	// Start the server.
	if err := router.Run(":" + config.Server.Port); err != nil {
		log.Fatalf("Error starting the server: %v", err)
	}
}
