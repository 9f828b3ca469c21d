package handlers

import (
	appointmentRepo "trimly/database/repository/appointment"
	availabilitySvc "trimly/services/availability"
	bookingSvc "trimly/services/booking"
	catalogSvc "trimly/services/catalog"
	notificationSvc "trimly/services/notification"
	paymentSvc "trimly/services/payment"
	reviewSvc "trimly/services/review"
	userSvc "trimly/services/user"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Auth endpoints
	RegisterHandler gin.HandlerFunc
	LoginHandler    gin.HandlerFunc
	GetUserHandler  gin.HandlerFunc

	// Salon endpoints
	UpsertMySalonHandler  gin.HandlerFunc
	GetMySalonHandler     gin.HandlerFunc
	GetSalonHandler       gin.HandlerFunc
	ListSalonsHandler     gin.HandlerFunc
	ListStylistsHandler   gin.HandlerFunc
	ListMyStylistsHandler gin.HandlerFunc
	ApproveStylistHandler gin.HandlerFunc

	// Service and category endpoints
	CreateServiceHandler  gin.HandlerFunc
	GetServiceHandler     gin.HandlerFunc
	ListServicesHandler   gin.HandlerFunc
	SearchServicesHandler gin.HandlerFunc
	AddTimeBlockHandler   gin.HandlerFunc
	ListCategoriesHandler gin.HandlerFunc

	// Availability endpoints
	DayAvailabilityHandler   gin.HandlerFunc
	MonthAvailabilityHandler gin.HandlerFunc

	// Appointment endpoints
	CreateAppointmentHandler gin.HandlerFunc
	ListAppointmentsHandler  gin.HandlerFunc
	DecideAppointmentHandler gin.HandlerFunc
	CancelAppointmentHandler gin.HandlerFunc

	// Review endpoints
	CreateReviewHandler gin.HandlerFunc
	ListReviewsHandler  gin.HandlerFunc

	// Notification endpoints
	ListNotificationsHandler     gin.HandlerFunc
	MarkNotificationsReadHandler gin.HandlerFunc

	// Payment endpoints
	CreateInvoiceHandler   gin.HandlerFunc
	CheckInvoiceHandler    gin.HandlerFunc
	PaymentCallbackHandler gin.HandlerFunc
}

// Services collects every service the handler bundle fronts.
type Services struct {
	Users         userSvc.UserService
	Catalog       catalogSvc.Catalog
	Availability  availabilitySvc.Engine
	Booking       bookingSvc.Ledger
	Reviews       reviewSvc.Aggregator
	Notifications notificationSvc.NotificationService
	Payments      paymentSvc.Provider
	Appointments  appointmentRepo.AppointmentRepository
}

// NewHandlerBundle wires every handler to its backing service.
func NewHandlerBundle(s Services) *HandlerBundle {
	return &HandlerBundle{
		RegisterHandler: RegisterHandler(s.Users),
		LoginHandler:    LoginHandler(s.Users),
		GetUserHandler:  GetUserHandler(s.Users),

		UpsertMySalonHandler:  UpsertMySalonHandler(s.Catalog),
		GetMySalonHandler:     GetMySalonHandler(s.Catalog),
		GetSalonHandler:       GetSalonHandler(s.Catalog),
		ListSalonsHandler:     ListSalonsHandler(s.Catalog),
		ListStylistsHandler:   ListStylistsHandler(s.Catalog),
		ListMyStylistsHandler: ListMyStylistsHandler(s.Catalog),
		ApproveStylistHandler: ApproveStylistHandler(s.Catalog),

		CreateServiceHandler:  CreateServiceHandler(s.Catalog),
		GetServiceHandler:     GetServiceHandler(s.Catalog),
		ListServicesHandler:   ListServicesHandler(s.Catalog),
		SearchServicesHandler: SearchServicesHandler(s.Catalog),
		AddTimeBlockHandler:   AddTimeBlockHandler(s.Catalog),
		ListCategoriesHandler: ListCategoriesHandler(s.Catalog),

		DayAvailabilityHandler:   DayAvailabilityHandler(s.Availability),
		MonthAvailabilityHandler: MonthAvailabilityHandler(s.Availability),

		CreateAppointmentHandler: CreateAppointmentHandler(s.Booking),
		ListAppointmentsHandler:  ListAppointmentsHandler(s.Booking),
		DecideAppointmentHandler: DecideAppointmentHandler(s.Booking),
		CancelAppointmentHandler: CancelAppointmentHandler(s.Booking),

		CreateReviewHandler: CreateReviewHandler(s.Reviews),
		ListReviewsHandler:  ListReviewsHandler(s.Reviews),

		ListNotificationsHandler:     ListNotificationsHandler(s.Notifications),
		MarkNotificationsReadHandler: MarkNotificationsReadHandler(s.Notifications),

		CreateInvoiceHandler:   CreateInvoiceHandler(s.Payments, s.Appointments),
		CheckInvoiceHandler:    CheckInvoiceHandler(s.Payments),
		PaymentCallbackHandler: PaymentCallbackHandler(s.Payments, s.Appointments, s.Notifications),
	}
}
