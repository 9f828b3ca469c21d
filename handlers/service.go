package handlers

import (
	"net/http"

	serviceRepo "trimly/database/repository/service"
	catalogSvc "trimly/services/catalog"

	"github.com/gin-gonic/gin"
)

// CreateServiceHandler adds a service under the caller's salon.
func CreateServiceHandler(catalog catalogSvc.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}

		var input catalogSvc.ServiceInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
			return
		}

		svc, err := catalog.CreateService(c.Request.Context(), p, input)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, svc)
	}
}

// GetServiceHandler returns one service by id.
func GetServiceHandler(catalog catalogSvc.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		svc, err := catalog.GetService(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, svc)
	}
}

// ListServicesHandler returns a salon's services with rating aggregates.
func ListServicesHandler(catalog catalogSvc.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		services, err := catalog.ListServices(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, services)
	}
}

// SearchServicesHandler searches services by name term and category.
func SearchServicesHandler(catalog catalogSvc.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := serviceRepo.SearchFilter{
			Term:       c.Query("term"),
			CategoryID: c.Query("categoryId"),
		}
		services, err := catalog.SearchServices(c.Request.Context(), filter)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, services)
	}
}

// AddTimeBlockHandler appends bookable slot times to a service.
func AddTimeBlockHandler(catalog catalogSvc.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}

		var input catalogSvc.TimeBlockInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
			return
		}

		if err := catalog.AddTimeBlock(c.Request.Context(), p, c.Param("id"), input); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "added"})
	}
}

// ListCategoriesHandler returns all service categories.
func ListCategoriesHandler(catalog catalogSvc.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		categories, err := catalog.ListCategories(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, categories)
	}
}
