package handlers

import (
	"net/http"

	"goclan/api/filters"
	performanceservice "goclan/api/services/performance"

	"github.com/gin-gonic/gin"
)

// PerformanceHandler is the handler for the rollup endpoints.
type PerformanceHandler struct {
	PerformanceService *performanceservice.PerformanceService
}

type PerformanceHandlerDependencies struct {
	PerformanceService *performanceservice.PerformanceService
}

// NewPerformanceHandler creates a new instance of the performance handler.
func NewPerformanceHandler(deps *PerformanceHandlerDependencies) *PerformanceHandler {
	return &PerformanceHandler{
		PerformanceService: deps.PerformanceService,
	}
}

// Helper to bind the URI params shared by the performance endpoints.
func (h *PerformanceHandler) bindURIParams(c *gin.Context) (*filters.PerformanceURIParams, error) {
	var up filters.PerformanceURIParams
	if err := c.ShouldBindUri(&up); err != nil {
		return nil, err
	}
	return &up, nil
}

// GetMonthlyClan handles requests for a monthly clan rollup.
func (h *PerformanceHandler) GetMonthlyClan(c *gin.Context) {
	up, err := h.bindURIParams(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.PerformanceService.GetMonthlyClan(c.Request.Context(), up.ClanId, up.Period)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result})
}

// GetYearlyClan handles requests for a yearly clan rollup.
func (h *PerformanceHandler) GetYearlyClan(c *gin.Context) {
	up, err := h.bindURIParams(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.PerformanceService.GetYearlyClan(c.Request.Context(), up.ClanId, up.Period)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result})
}

// GetMonthlyPlayers handles requests for the monthly player rollups.
func (h *PerformanceHandler) GetMonthlyPlayers(c *gin.Context) {
	up, err := h.bindURIParams(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.PerformanceService.GetMonthlyPlayers(c.Request.Context(), up.ClanId, up.Period)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result})
}

// GetYearlyPlayers handles requests for the yearly player rollups.
func (h *PerformanceHandler) GetYearlyPlayers(c *gin.Context) {
	up, err := h.bindURIParams(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.PerformanceService.GetYearlyPlayers(c.Request.Context(), up.ClanId, up.Period)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result})
}

// SetComplete handles the monthly completion lock toggle.
func (h *PerformanceHandler) SetComplete(c *gin.Context) {
	up, err := h.bindURIParams(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body filters.SetCompleteBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	filter := &filters.PerformanceFilter{ClanId: up.ClanId, Period: up.Period, ActorId: actorId(c)}
	if err := h.PerformanceService.SetComplete(c.Request.Context(), filter, *body.Complete); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": gin.H{"complete": *body.Complete}})
}

// Recalculate handles an explicit rollup rebuild.
func (h *PerformanceHandler) Recalculate(c *gin.Context) {
	up, err := h.bindURIParams(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	filter := &filters.PerformanceFilter{ClanId: up.ClanId, Period: up.Period, ActorId: actorId(c)}
	result, err := h.PerformanceService.Recalculate(c.Request.Context(), filter)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result})
}
