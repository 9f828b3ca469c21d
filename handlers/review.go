package handlers

import (
	"net/http"

	reviewSvc "trimly/services/review"

	"github.com/gin-gonic/gin"
)

// CreateReviewHandler records a rating for a service the caller booked.
func CreateReviewHandler(reviews reviewSvc.Aggregator) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}

		var input reviewSvc.CreateInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
			return
		}
		input.ServiceID = c.Param("id")

		review, err := reviews.Create(c.Request.Context(), p, input)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, review)
	}
}

// ListReviewsHandler returns the reviews of one service, newest first.
func ListReviewsHandler(reviews reviewSvc.Aggregator) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := reviews.ListForService(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	}
}
