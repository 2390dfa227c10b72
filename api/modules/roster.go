package modules

import (
	"goclan/api/handlers"
	rosterservice "goclan/api/services/roster"
)

func initializeRosterHandler(deps *ModuleDependencies) *handlers.RosterHandler {
	// Initialize the roster service and handler.
	rosterDeps := &rosterservice.RosterServiceDeps{
		DB: deps.DB,
	}

	rosterService := rosterservice.NewRosterService(rosterDeps)

	rosterHandlerDeps := &handlers.RosterHandlerDependencies{
		RosterService: rosterService,
	}

	return handlers.NewRosterHandler(rosterHandlerDeps)
}
