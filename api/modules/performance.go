package modules

import (
	"goclan/api/handlers"
	performanceservice "goclan/api/services/performance"
)

func initializePerformanceHandler(deps *ModuleDependencies) *handlers.PerformanceHandler {
	// Initialize the performance service and handler.
	performanceDeps := &performanceservice.PerformanceServiceDeps{
		DB: deps.DB,
	}

	performanceService := performanceservice.NewPerformanceService(performanceDeps)

	performanceHandlerDeps := &handlers.PerformanceHandlerDependencies{
		PerformanceService: performanceService,
	}

	return handlers.NewPerformanceHandler(performanceHandlerDeps)
}
