package routes

import (
	"net/http"
	"time"

	"trimly/handlers"
	"trimly/middleware"
	"trimly/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers account endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", hb.RegisterHandler)
		api.POST("/login", hb.LoginHandler)

		api.Use(middleware.JWTAuthMiddleware())
		api.GET("/users/:username", hb.GetUserHandler)
	}
}

// RegisterSalonRoutes registers salon browsing and management endpoints.
func RegisterSalonRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/salons")
	{
		api.GET("", hb.ListSalonsHandler)
		api.GET("/:id", hb.GetSalonHandler)
		api.GET("/:id/services", hb.ListServicesHandler)
		api.GET("/:id/stylists", hb.ListStylistsHandler)

		// Owner management endpoints.
		owner := api.Group("")
		owner.Use(middleware.JWTAuthMiddleware(), middleware.RequireRole(models.RoleOwner))
		owner.PUT("/my-salon", hb.UpsertMySalonHandler)
		owner.GET("/my-salon", hb.GetMySalonHandler)
		owner.POST("/my-salon/services", hb.CreateServiceHandler)
		owner.GET("/my-salon/stylists", hb.ListMyStylistsHandler)
		owner.POST("/my-salon/stylists/:stylistId/approve", hb.ApproveStylistHandler)
	}
}

// RegisterServiceRoutes registers service detail, availability, review and
// slot-configuration endpoints.
func RegisterServiceRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/services")
	{
		api.GET("/search", hb.SearchServicesHandler)
		api.GET("/:id", hb.GetServiceHandler)
		api.GET("/:id/availability", hb.DayAvailabilityHandler)
		api.GET("/:id/availability/month", hb.MonthAvailabilityHandler)
		api.GET("/:id/reviews", hb.ListReviewsHandler)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthMiddleware())
		protected.POST("/:id/reviews", hb.CreateReviewHandler)
		protected.POST("/:id/time-blocks", middleware.RequireRole(models.RoleOwner), hb.AddTimeBlockHandler)
	}
}

// RegisterAppointmentRoutes registers the booking endpoints.
func RegisterAppointmentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/appointments")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.POST("", hb.CreateAppointmentHandler)
		api.GET("", hb.ListAppointmentsHandler)
		api.PATCH("/:id/status", middleware.RequireRole(models.RoleOwner, models.RoleStylist), hb.DecideAppointmentHandler)
		api.POST("/:id/cancel", hb.CancelAppointmentHandler)
		api.POST("/:id/invoice", hb.CreateInvoiceHandler)
	}
}

// RegisterNotificationRoutes registers in-app notification endpoints.
func RegisterNotificationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/notifications")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.GET("", hb.ListNotificationsHandler)
		api.POST("/read", hb.MarkNotificationsReadHandler)
	}
}

// RegisterPaymentRoutes registers invoice status endpoints.
func RegisterPaymentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/payments")
	{
		// The provider posts here; it cannot carry a user token.
		api.POST("/callback", hb.PaymentCallbackHandler)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthMiddleware())
		protected.GET("/invoices/:invoiceId", hb.CheckInvoiceHandler)
	}
}

// RegisterCategoryRoutes registers the category directory endpoint.
func RegisterCategoryRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/api/categories", hb.ListCategoriesHandler)
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Trimly"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAuthRoutes(r, hb)
	RegisterSalonRoutes(r, hb)
	RegisterServiceRoutes(r, hb)
	RegisterAppointmentRoutes(r, hb)
	RegisterNotificationRoutes(r, hb)
	RegisterPaymentRoutes(r, hb)
	RegisterCategoryRoutes(r, hb)
	RegisterHealthRoute(r)
}
