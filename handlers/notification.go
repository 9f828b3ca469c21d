package handlers

import (
	"net/http"

	notificationSvc "trimly/services/notification"

	"github.com/gin-gonic/gin"
)

// ListNotificationsHandler returns the caller's notifications, newest first.
func ListNotificationsHandler(notifications notificationSvc.NotificationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}

		list, err := notifications.ListForUser(c.Request.Context(), p.ID)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// MarkNotificationsReadHandler marks all of the caller's notifications read.
func MarkNotificationsReadHandler(notifications notificationSvc.NotificationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}

		updated, err := notifications.MarkAllRead(c.Request.Context(), p.ID)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"updated": updated})
	}
}
