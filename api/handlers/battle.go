package handlers

import (
	"net/http"

	"goclan/api/filters"
	battleservice "goclan/api/services/battle"

	"github.com/gin-gonic/gin"
)

// BattleHandler is the handler for the battle endpoints.
type BattleHandler struct {
	BattleService *battleservice.BattleService
}

type BattleHandlerDependencies struct {
	BattleService *battleservice.BattleService
}

// NewBattleHandler creates a new instance of the battle handler.
func NewBattleHandler(deps *BattleHandlerDependencies) *BattleHandler {
	return &BattleHandler{
		BattleService: deps.BattleService,
	}
}

// CreateBattle handles a new battle submission.
func (h *BattleHandler) CreateBattle(c *gin.Context) {
	var up filters.ClanURIParams
	if err := c.ShouldBindUri(&up); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body filters.BattleBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.BattleService.CreateBattle(c.Request.Context(), filters.NewBattleFilter(up.ClanId, actorId(c), &body))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"result": result})
}

// GetBattle handles requests for one battle with its stat lines.
func (h *BattleHandler) GetBattle(c *gin.Context) {
	var up filters.BattleURIParams
	if err := c.ShouldBindUri(&up); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.BattleService.GetBattle(c.Request.Context(), up.ClanId, up.BattleId)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result})
}

// ListBattles handles requests for the clan battle list.
func (h *BattleHandler) ListBattles(c *gin.Context) {
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

	result, err := h.BattleService.ListBattles(c.Request.Context(), &filters.ListBattlesFilter{
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

// UpdateBattle handles a full battle resubmission.
func (h *BattleHandler) UpdateBattle(c *gin.Context) {
	var up filters.BattleURIParams
	if err := c.ShouldBindUri(&up); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body filters.BattleBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	filter := filters.NewBattleFilter(up.ClanId, actorId(c), &body)
	// The URI wins over whatever battle id came in the body.
	filter.BattleId = up.BattleId

	result, err := h.BattleService.UpdateBattle(c.Request.Context(), filter)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result})
}

// DeleteBattle handles a battle removal.
func (h *BattleHandler) DeleteBattle(c *gin.Context) {
	var up filters.BattleURIParams
	if err := c.ShouldBindUri(&up); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.BattleService.DeleteBattle(c.Request.Context(), up.ClanId, up.BattleId, actorId(c)); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": "deleted"})
}
