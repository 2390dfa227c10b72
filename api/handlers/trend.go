package handlers

import (
	"net/http"

	"goclan/api/filters"
	trendservice "goclan/api/services/trend"

	"github.com/gin-gonic/gin"
)

// TrendHandler is the handler for the trend and matchup endpoints.
type TrendHandler struct {
	TrendService *trendservice.TrendService
}

type TrendHandlerDependencies struct {
	TrendService *trendservice.TrendService
}

// NewTrendHandler creates a new instance of the trend handler.
func NewTrendHandler(deps *TrendHandlerDependencies) *TrendHandler {
	return &TrendHandler{
		TrendService: deps.TrendService,
	}
}

// GetTrends handles requests for the clan trend report.
func (h *TrendHandler) GetTrends(c *gin.Context) {
	var up filters.ClanURIParams
	if err := c.ShouldBindUri(&up); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var qp filters.TrendQueryParams
	if err := c.ShouldBindQuery(&qp); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	filter, err := filters.NewTrendFilter(up.ClanId, &qp)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	result, err := h.TrendService.GetTrends(c.Request.Context(), filter)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result})
}

// GetMatchups handles requests for the opponent reduction.
func (h *TrendHandler) GetMatchups(c *gin.Context) {
	var up filters.ClanURIParams
	if err := c.ShouldBindUri(&up); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var qp filters.DateRangeQueryParams
	if err := c.ShouldBindQuery(&qp); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	from, to, err := qp.ParseDateRange()
	if err != nil {
		handleServiceError(c, err)
		return
	}

	result, err := h.TrendService.GetMatchups(c.Request.Context(), &filters.ListBattlesFilter{
		ClanId: up.ClanId,
		From:   from,
		To:     to,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result})
}

// GetPlayerTrend handles requests for one player's trend report.
func (h *TrendHandler) GetPlayerTrend(c *gin.Context) {
	var up filters.PlayerTrendURIParams
	if err := c.ShouldBindUri(&up); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var qp filters.DateRangeQueryParams
	if err := c.ShouldBindQuery(&qp); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	from, to, err := qp.ParseDateRange()
	if err != nil {
		handleServiceError(c, err)
		return
	}

	result, err := h.TrendService.GetPlayerTrend(c.Request.Context(), &filters.PlayerTrendFilter{
		ClanId:   up.ClanId,
		PlayerId: up.PlayerId,
		From:     from,
		To:       to,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result})
}
