package handlers

import (
	"net/http"

	catalogSvc "trimly/services/catalog"

	"github.com/gin-gonic/gin"
)

// UpsertMySalonHandler creates or replaces the caller's salon profile.
func UpsertMySalonHandler(catalog catalogSvc.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}

		var input catalogSvc.SalonInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
			return
		}

		salon, err := catalog.UpsertSalon(c.Request.Context(), p, input)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, salon)
	}
}

// GetMySalonHandler returns the caller's salon.
func GetMySalonHandler(catalog catalogSvc.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}
		salon, err := catalog.MySalon(c.Request.Context(), p)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, salon)
	}
}

// GetSalonHandler returns one salon by id.
func GetSalonHandler(catalog catalogSvc.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		salon, err := catalog.GetSalon(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, salon)
	}
}

// ListSalonsHandler returns all salons.
func ListSalonsHandler(catalog catalogSvc.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		salons, err := catalog.ListSalons(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, salons)
	}
}

// ListMyStylistsHandler lists every stylist of the caller's salon,
// pending approvals included.
func ListMyStylistsHandler(catalog catalogSvc.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}

		stylists, err := catalog.ListSalonStylists(c.Request.Context(), p)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, stylists)
	}
}

// ListStylistsHandler lists the approved stylist accounts of a salon.
func ListStylistsHandler(catalog catalogSvc.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		stylists, err := catalog.ListStylists(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, stylists)
	}
}

// ApproveStylistHandler confirms a pending stylist assignment.
func ApproveStylistHandler(catalog catalogSvc.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}
		if err := catalog.ApproveStylist(c.Request.Context(), p, c.Param("stylistId")); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "approved"})
	}
}
