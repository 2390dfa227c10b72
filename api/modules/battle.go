package modules

import (
	"goclan/api/handlers"
	battleservice "goclan/api/services/battle"
)

func initializeBattleHandler(deps *ModuleDependencies) *handlers.BattleHandler {
	// Initialize the battle service and handler.
	battleDeps := &battleservice.BattleServiceDeps{
		DB:            deps.DB,
		ScheduleCache: deps.ScheduleCache,
		TrendCache:    deps.TrendCache,
	}

	battleService := battleservice.NewBattleService(battleDeps)

	battleHandlerDeps := &handlers.BattleHandlerDependencies{
		BattleService: battleService,
	}

	return handlers.NewBattleHandler(battleHandlerDeps)
}
