package handlers

import (
	"errors"
	"net/http"

	"trimly/middleware"
	"trimly/models"
	"trimly/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// writeError maps domain errors to HTTP statuses. Anything outside the
// taxonomy is a 500 with a generic body; the detail goes to the log only.
func writeError(c *gin.Context, err error) {
	var (
		notFound   utils.NotFoundError
		invalid    utils.InvalidArgumentError
		forbidden  utils.ForbiddenError
		conflict   utils.SlotConflictError
		transition utils.InvalidTransitionError
		notOffered utils.SlotNotOfferedError
	)

	switch {
	case errors.As(err, &notFound):
		utils.JSONError(c, http.StatusNotFound, "Not found", err.Error())
	case errors.As(err, &invalid):
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
	case errors.As(err, &notOffered):
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
	case errors.As(err, &forbidden):
		utils.JSONError(c, http.StatusForbidden, "Forbidden", err.Error())
	case errors.As(err, &conflict):
		utils.JSONError(c, http.StatusConflict, "Slot conflict", err.Error())
	case errors.As(err, &transition):
		utils.JSONError(c, http.StatusConflict, "Invalid status change", err.Error())
	default:
		utils.GetLogger().Error("Request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse{
			Message: "Internal Server Error",
			Details: "An unexpected error occurred. Please try again later.",
		})
	}
}

// principal returns the authenticated principal or aborts with 401.
func principal(c *gin.Context) (models.Principal, bool) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
	}
	return p, ok
}
