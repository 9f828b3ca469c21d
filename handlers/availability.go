package handlers

import (
	"net/http"
	"strconv"

	availabilitySvc "trimly/services/availability"

	"github.com/gin-gonic/gin"
)

// DayAvailabilityHandler returns the open slots per stylist for one day.
func DayAvailabilityHandler(engine availabilitySvc.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		date := c.Query("date")
		if date == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter 'date' is required"})
			return
		}

		entries, err := engine.DayAvailability(c.Request.Context(), c.Param("id"), date)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, entries)
	}
}

// MonthAvailabilityHandler returns the per-day booking status for a month.
// Month is 1..12.
func MonthAvailabilityHandler(engine availabilitySvc.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		year, err := strconv.Atoi(c.Query("year"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter 'year' must be a number"})
			return
		}
		month, err := strconv.Atoi(c.Query("month"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter 'month' must be a number"})
			return
		}

		view, err := engine.MonthAvailability(c.Request.Context(), c.Param("id"), year, month)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, view)
	}
}
