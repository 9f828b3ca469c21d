package handlers

import (
	"net/http"

	userSvc "trimly/services/user"

	"github.com/gin-gonic/gin"
)

// RegisterHandler creates an account and returns a signed token.
func RegisterHandler(users userSvc.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input userSvc.RegisterInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
			return
		}

		result, err := users.Register(c.Request.Context(), input)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, result)
	}
}

// LoginHandler authenticates username/password credentials.
func LoginHandler(users userSvc.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
			return
		}

		result, err := users.Authenticate(c.Request.Context(), input.Username, input.Password)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// GetUserHandler returns the public profile for a username.
func GetUserHandler(users userSvc.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := users.GetByUsername(c.Request.Context(), c.Param("username"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, user)
	}
}
