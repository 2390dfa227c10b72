package routes

import (
	"testing"

	"goclan/api/handlers"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func setupTestRouter() *Router {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	return NewRouter(engine)
}

func TestNewRouter(t *testing.T) {
	router := setupTestRouter()

	assert.NotNil(t, router)
	assert.NotNil(t, router.Engine)
	assert.NotNil(t, router.api)
}

func TestSetupRoutes(t *testing.T) {
	router := setupTestRouter()

	battleHandler := &handlers.BattleHandler{}
	performanceHandler := &handlers.PerformanceHandler{}
	trendHandler := &handlers.TrendHandler{}
	rosterHandler := &handlers.RosterHandler{}

	router.SetupRoutes(battleHandler, performanceHandler, trendHandler, rosterHandler)

	routes := router.Engine.Routes()
	assert.Greater(t, len(routes), 0)

	paths := make(map[string]bool)
	for _, route := range routes {
		paths[route.Method+" "+route.Path] = true
	}

	assert.True(t, paths["POST /api/v1/clans/:clanId/battles"])
	assert.True(t, paths["GET /api/v1/clans/:clanId/performance/monthly/:period"])
	assert.True(t, paths["POST /api/v1/clans/:clanId/performance/recalculate/:period"])
	assert.True(t, paths["GET /api/v1/clans/:clanId/trends"])
	assert.True(t, paths["GET /api/v1/clans/:clanId/churn"])
}
