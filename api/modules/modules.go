package modules

import (
	"context"
	"log"

	"goclan/api/cache"
	"goclan/api/handlers"
	calendarrepo "goclan/api/repositories/calendar"
	"goclan/pkg/redis"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Module containing the necessary handlers.
type Module struct {
	Router *gin.Engine

	BattleHandler      *handlers.BattleHandler
	PerformanceHandler *handlers.PerformanceHandler
	TrendHandler       *handlers.TrendHandler
	RosterHandler      *handlers.RosterHandler
}

// ModuleDependencies are the shared resources of every handler.
type ModuleDependencies struct {
	DB    *gorm.DB
	Redis *redis.RedisClient

	ScheduleCache *cache.ScheduleCache
	TrendCache    cache.TrendCache
}

// NewModule creates a module with all the necessary handlers initialized.
func NewModule(deps *ModuleDependencies) *Module {
	router := gin.Default()

	if deps.ScheduleCache == nil {
		deps.ScheduleCache = cache.GetScheduleCache()
	}
	if deps.TrendCache == nil {
		deps.TrendCache = cache.NewTrendCache(deps.Redis)
	}

	// Preload the calendar; a cold cache still works through the fallbacks.
	err := deps.ScheduleCache.Initialize(context.Background(), calendarrepo.NewCalendarRepository(deps.DB))
	if err != nil {
		log.Printf("couldn't preload the schedule cache: %v", err)
	}

	return &Module{
		Router:             router,
		BattleHandler:      initializeBattleHandler(deps),
		PerformanceHandler: initializePerformanceHandler(deps),
		TrendHandler:       initializeTrendHandler(deps),
		RosterHandler:      initializeRosterHandler(deps),
	}
}
