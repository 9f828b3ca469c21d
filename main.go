package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"trimly/config"
	"trimly/cron"
	"trimly/database"
	appointmentRepoPkg "trimly/database/repository/appointment"
	categoryRepoPkg "trimly/database/repository/category"
	notificationRepoPkg "trimly/database/repository/notification"
	reviewRepoPkg "trimly/database/repository/review"
	salonRepoPkg "trimly/database/repository/salon"
	serviceRepoPkg "trimly/database/repository/service"
	userRepoPkg "trimly/database/repository/user"
	"trimly/handlers"
	"trimly/middleware"
	"trimly/routes"
	"trimly/services/availability"
	"trimly/services/booking"
	"trimly/services/catalog"
	"trimly/services/notification"
	"trimly/services/payment"
	"trimly/services/review"
	"trimly/services/tasks"
	"trimly/services/user"
	"trimly/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	utils.InitializeLogger()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	salonRepo := salonRepoPkg.NewMongoSalonRepo()
	categoryRepo := categoryRepoPkg.NewMongoCategoryRepo()
	serviceRepo := serviceRepoPkg.NewMongoServiceRepo()
	appointmentRepo := appointmentRepoPkg.NewMongoAppointmentRepo()
	reviewRepo := reviewRepoPkg.NewMongoReviewRepo()
	notificationRepo := notificationRepoPkg.NewMongoNotificationRepo()

	// task queue client for appointment reminders.
	policy := booking.PolicyFromConfig()
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer asynqClient.Close()

	// services.
	notificationService := &notification.DefaultNotificationService{
		Repo: notificationRepo,
	}

	availabilityEngine := availability.NewDefaultEngine(
		serviceRepo,
		appointmentRepo,
		userRepo,
		utils.GetCacheClient(),
		config.AppConfig.GoingFastRemaining,
	)

	reminderScheduler := &tasks.AsynqReminderScheduler{
		Client: asynqClient,
		Lead:   policy.ReminderLead,
	}

	bookingLedger := &booking.DefaultLedger{
		Appointments: appointmentRepo,
		Services:     serviceRepo,
		Salons:       salonRepo,
		Users:        userRepo,
		Engine:       availabilityEngine,
		Notifier:     notificationService,
		Reminders:    reminderScheduler,
		Policy:       policy,
	}

	reviewAggregator := &review.DefaultAggregator{
		Reviews:      reviewRepo,
		Services:     serviceRepo,
		Appointments: appointmentRepo,
	}

	catalogService := &catalog.DefaultCatalog{
		Salons:     salonRepo,
		Services:   serviceRepo,
		Categories: categoryRepo,
		Users:      userRepo,
		Ratings:    reviewAggregator,
	}

	userService := &user.DefaultUserService{
		Users:  userRepo,
		Salons: salonRepo,
	}

	paymentProvider := payment.NewClient(payment.OptionsFromConfig())

	// Reminder worker consumes the queue in background.
	cron.InitReminderWorker(appointmentRepo, notificationService)

	// Assemble the handler bundle.
	handlerBundle := handlers.NewHandlerBundle(handlers.Services{
		Users:         userService,
		Catalog:       catalogService,
		Availability:  availabilityEngine,
		Booking:       bookingLedger,
		Reviews:       reviewAggregator,
		Notifications: notificationService,
		Payments:      paymentProvider,
		Appointments:  appointmentRepo,
	})

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
