package handlers

import (
	"fmt"
	"net/http"

	appointmentRepo "trimly/database/repository/appointment"
	notificationSvc "trimly/services/notification"
	paymentSvc "trimly/services/payment"
	"trimly/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CreateInvoiceHandler opens a deposit invoice for one of the caller's
// appointments.
func CreateInvoiceHandler(provider paymentSvc.Provider, appts appointmentRepo.AppointmentRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}

		appointmentID := c.Param("id")
		appt, err := appts.GetByID(appointmentID)
		if err != nil {
			writeError(c, err)
			return
		}
		if appt == nil || appt.UserID != p.ID {
			writeError(c, utils.NotFoundError{Resource: "appointment", ID: appointmentID})
			return
		}

		description := fmt.Sprintf("Booking deposit for %s %s", appt.Date, appt.StartTime)
		invoice, err := provider.CreateInvoice(c.Request.Context(), appt.ID, appt.Price, description)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, invoice)
	}
}

// PaymentCallbackHandler receives the provider's payment webhook. The
// provider retries on non-200, so the handler acknowledges even when the
// payment cannot be matched to an appointment.
func PaymentCallbackHandler(provider paymentSvc.Provider, appts appointmentRepo.AppointmentRepository, notifier notificationSvc.NotificationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		appointmentID := c.Query("appointment_id")
		invoiceID := c.Query("invoice_id")
		if appointmentID == "" || invoiceID == "" {
			c.JSON(http.StatusOK, gin.H{"status": "ignored"})
			return
		}

		logger := utils.GetLogger()

		appt, err := appts.GetByID(appointmentID)
		if err != nil || appt == nil {
			logger.Warn("payment callback for unknown appointment",
				zap.String("appointmentId", appointmentID), zap.Error(err))
			c.JSON(http.StatusOK, gin.H{"status": "ignored"})
			return
		}

		status, err := provider.CheckInvoice(c.Request.Context(), invoiceID)
		if err != nil {
			logger.Error("payment callback check failed",
				zap.String("invoiceId", invoiceID), zap.Error(err))
			c.JSON(http.StatusOK, gin.H{"status": "ignored"})
			return
		}

		if status.Paid {
			message := fmt.Sprintf("Deposit received for your appointment on %s at %s.", appt.Date, appt.StartTime)
			if err := notifier.Push(c.Request.Context(), appt.UserID, message); err != nil {
				logger.Warn("payment notification failed", zap.Error(err))
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// CheckInvoiceHandler reports whether an invoice has been paid.
func CheckInvoiceHandler(provider paymentSvc.Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		status, err := provider.CheckInvoice(c.Request.Context(), c.Param("invoiceId"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, status)
	}
}
