package handlers

import (
	"net/http"

	bookingSvc "trimly/services/booking"

	"github.com/gin-gonic/gin"
)

// CreateAppointmentHandler books a slot for the authenticated user.
func CreateAppointmentHandler(ledger bookingSvc.Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}

		var input bookingSvc.CreateInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
			return
		}

		appt, err := ledger.Create(c.Request.Context(), p, input)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, appt)
	}
}

// ListAppointmentsHandler returns the caller's appointments, scoped by role.
func ListAppointmentsHandler(ledger bookingSvc.Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}

		views, err := ledger.List(c.Request.Context(), p)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, views)
	}
}

// DecideAppointmentHandler applies a stylist/owner status decision.
func DecideAppointmentHandler(ledger bookingSvc.Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}

		var decision bookingSvc.Decision
		if err := c.ShouldBindJSON(&decision); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
			return
		}

		appt, err := ledger.Decide(c.Request.Context(), p, c.Param("id"), decision)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, appt)
	}
}

// CancelAppointmentHandler cancels an appointment, releasing its slot.
func CancelAppointmentHandler(ledger bookingSvc.Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}

		appt, err := ledger.Cancel(c.Request.Context(), p, c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, appt)
	}
}
