package handlers

import (
	"context"
	"net/http"

	"goclan/api/dto"
	"goclan/api/filters"
	rosterservice "goclan/api/services/roster"

	"github.com/gin-gonic/gin"
)

// RosterHandler is the handler for the member endpoints.
type RosterHandler struct {
	RosterService *rosterservice.RosterService
}

type RosterHandlerDependencies struct {
	RosterService *rosterservice.RosterService
}

// NewRosterHandler creates a new instance of the roster handler.
func NewRosterHandler(deps *RosterHandlerDependencies) *RosterHandler {
	return &RosterHandler{
		RosterService: deps.RosterService,
	}
}

// AddMember handles an explicit roster addition.
func (h *RosterHandler) AddMember(c *gin.Context) {
	var up filters.ClanURIParams
	if err := c.ShouldBindUri(&up); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body filters.AddMemberBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	filter, err := filters.NewAddMemberFilter(up.ClanId, actorId(c), &body)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	result, err := h.RosterService.AddMember(c.Request.Context(), filter)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"result": result})
}

// ListMembers handles requests for the full roster.
func (h *RosterHandler) ListMembers(c *gin.Context) {
	var up filters.ClanURIParams
	if err := c.ShouldBindUri(&up); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.RosterService.ListMembers(c.Request.Context(), up.ClanId)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result})
}

// MarkLeft handles a voluntary departure.
func (h *RosterHandler) MarkLeft(c *gin.Context) {
	h.lifecycleChange(c, h.RosterService.MarkLeft)
}

// MarkKicked handles a removal by the clan.
func (h *RosterHandler) MarkKicked(c *gin.Context) {
	h.lifecycleChange(c, h.RosterService.MarkKicked)
}

// Reinstate handles a member reactivation.
func (h *RosterHandler) Reinstate(c *gin.Context) {
	h.lifecycleChange(c, h.RosterService.Reinstate)
}

// GetChurn handles requests for the roster turnover aggregate.
func (h *RosterHandler) GetChurn(c *gin.Context) {
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

	result, err := h.RosterService.GetChurn(c.Request.Context(), &filters.ChurnFilter{
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

// The three lifecycle endpoints only differ in the service call.
func (h *RosterHandler) lifecycleChange(
	c *gin.Context,
	change func(ctx context.Context, clanId uint, playerId, actorId string) (*dto.Member, error),
) {
	var up filters.MemberURIParams
	if err := c.ShouldBindUri(&up); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := change(c.Request.Context(), up.ClanId, up.PlayerId, actorId(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result})
}
