package modules

import (
	"goclan/api/handlers"
	trendservice "goclan/api/services/trend"
)

func initializeTrendHandler(deps *ModuleDependencies) *handlers.TrendHandler {
	// Initialize the trend service and handler.
	trendDeps := &trendservice.TrendServiceDeps{
		DB:         deps.DB,
		TrendCache: deps.TrendCache,
	}

	trendService := trendservice.NewTrendService(trendDeps)

	trendHandlerDeps := &handlers.TrendHandlerDependencies{
		TrendService: trendService,
	}

	return handlers.NewTrendHandler(trendHandlerDeps)
}
