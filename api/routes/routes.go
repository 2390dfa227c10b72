package routes

import (
	"goclan/api/handlers"
	"goclan/api/middleware"

	"github.com/gin-gonic/gin"
)

type Router struct {
	Engine *gin.Engine
	api    *gin.RouterGroup
}

func NewRouter(engine *gin.Engine) *Router {
	api := engine.Group("/api/v1")
	api.Use(middleware.Auth())

	return &Router{
		Engine: engine,
		api:    api,
	}
}

func (r *Router) SetupRoutes(handlerList ...any) {
	for _, h := range handlerList {
		switch handler := h.(type) {
		case *handlers.BattleHandler:
			r.registerBattleHandler(handler)
		case *handlers.PerformanceHandler:
			r.registerPerformanceHandler(handler)
		case *handlers.TrendHandler:
			r.registerTrendHandler(handler)
		case *handlers.RosterHandler:
			r.registerRosterHandler(handler)
		}
	}
}

// Register the battle handler.
func (r *Router) registerBattleHandler(handler *handlers.BattleHandler) {
	battles := r.api.Group("/clans/:clanId/battles")
	{
		battles.POST("", handler.CreateBattle)
		battles.GET("", handler.ListBattles)
		battles.GET("/:battleId", handler.GetBattle)
		battles.PUT("/:battleId", handler.UpdateBattle)
		battles.DELETE("/:battleId", handler.DeleteBattle)
	}
}

// Register the performance handler. The lock and the rebuild are
// restricted to officers.
func (r *Router) registerPerformanceHandler(handler *handlers.PerformanceHandler) {
	performance := r.api.Group("/clans/:clanId/performance")
	{
		performance.GET("/monthly/:period", handler.GetMonthlyClan)
		performance.GET("/monthly/:period/players", handler.GetMonthlyPlayers)
		performance.GET("/yearly/:period", handler.GetYearlyClan)
		performance.GET("/yearly/:period/players", handler.GetYearlyPlayers)
		performance.PUT("/monthly/:period/complete", middleware.RequireRole("officer"), handler.SetComplete)
		performance.POST("/recalculate/:period", middleware.RequireRole("officer"), handler.Recalculate)
	}
}

// Register the trend handler.
func (r *Router) registerTrendHandler(handler *handlers.TrendHandler) {
	clans := r.api.Group("/clans/:clanId")
	{
		clans.GET("/trends", handler.GetTrends)
		clans.GET("/matchups", handler.GetMatchups)
		clans.GET("/players/:playerId/trends", handler.GetPlayerTrend)
	}
}

// Register the roster handler.
func (r *Router) registerRosterHandler(handler *handlers.RosterHandler) {
	clans := r.api.Group("/clans/:clanId")
	{
		clans.POST("/members", handler.AddMember)
		clans.GET("/members", handler.ListMembers)
		clans.PUT("/members/:playerId/left", handler.MarkLeft)
		clans.PUT("/members/:playerId/kicked", handler.MarkKicked)
		clans.PUT("/members/:playerId/reinstate", handler.Reinstate)
		clans.GET("/churn", handler.GetChurn)
	}
}

// Start the router.
func (r *Router) Run(addr string) error {
	return r.Engine.Run(addr)
}
