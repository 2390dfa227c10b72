package handlers

import (
	"net/http"

	"goclan/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// handleServiceError maps a service error onto its HTTP status.
func handleServiceError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	switch apperrors.KindOf(err) {
	case apperrors.KindValidation:
		status = http.StatusBadRequest
	case apperrors.KindNotFound:
		status = http.StatusNotFound
	case apperrors.KindConflict:
		status = http.StatusConflict
	case apperrors.KindSchedule:
		status = http.StatusUnprocessableEntity
	}

	c.JSON(status, gin.H{"error": err.Error()})
}

// actorId returns the authenticated actor set by the auth middleware.
func actorId(c *gin.Context) string {
	return c.GetString("actorId")
}
