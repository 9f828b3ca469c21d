package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	appointmentRepo "trimly/database/repository/appointment"
	"trimly/models"
	"trimly/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Create validates the request against current availability and persists
// the appointment in the policy's initial state. The slot membership check
// always runs here, at booking time; conflict detection happens inside the
// store transaction so concurrent requests for the same triple cannot both
// win.
func (l *DefaultLedger) Create(ctx context.Context, principal models.Principal, input CreateInput) (*models.Appointment, error) {
	if input.ServiceID == "" || input.Date == "" || input.StartTime == "" {
		return nil, utils.InvalidArgumentError{Msg: "serviceId, date and startTime are required"}
	}

	svc, err := l.Services.GetByID(input.ServiceID)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, utils.NotFoundError{Resource: "service", ID: input.ServiceID}
	}

	if input.StylistID != nil {
		stylist, err := l.Users.GetByID(*input.StylistID)
		if err != nil {
			return nil, err
		}
		if stylist == nil || stylist.Role != models.RoleStylist {
			return nil, utils.InvalidArgumentError{Msg: "stylistId does not reference a stylist account"}
		}
	}

	if err := l.Engine.ValidateSlot(ctx, input.ServiceID, input.StylistID, input.Date, input.StartTime); err != nil {
		return nil, err
	}

	now := time.Now()
	appt := &models.Appointment{
		ID:        uuid.New().String(),
		UserID:    principal.ID,
		ServiceID: svc.ID,
		StylistID: input.StylistID,
		Date:      input.Date,
		StartTime: input.StartTime,
		Status:    l.Policy.InitialStatus,
		Active:    true,
		Price:     bookingPrice(svc),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := l.Appointments.Insert(ctx, appt, l.Policy.ConflictScope); err != nil {
		if errors.Is(err, appointmentRepo.ErrSlotTaken) {
			return nil, slotConflict(appt)
		}
		return nil, err
	}

	l.afterCreate(ctx, appt, svc)
	return appt, nil
}

// slotConflict shapes the typed conflict error for an appointment's
// (stylist, date, startTime) triple.
func slotConflict(appt *models.Appointment) utils.SlotConflictError {
	stylistID := ""
	if appt.StylistID != nil {
		stylistID = *appt.StylistID
	}
	return utils.SlotConflictError{StylistID: stylistID, Date: appt.Date, StartTime: appt.StartTime}
}

// bookingPrice derives the amount due at booking time. A configured
// deposit percentage turns the full price into an up-front deposit.
func bookingPrice(svc *models.Service) float64 {
	if svc.DepositPercent > 0 {
		return svc.Price * svc.DepositPercent / 100
	}
	return svc.Price
}

// afterCreate emits the side effects of a successful booking. Failures
// here never fail the booking itself.
func (l *DefaultLedger) afterCreate(ctx context.Context, appt *models.Appointment, svc *models.Service) {
	logger := utils.GetLogger()

	if appt.Status == models.StatusPending && appt.StylistID != nil {
		msg := fmt.Sprintf("New booking request for %s on %s at %s", svc.Name, appt.Date, appt.StartTime)
		if err := l.Notifier.Push(ctx, *appt.StylistID, msg); err != nil {
			logger.Warn("failed to notify stylist of booking request",
				zap.String("appointmentId", appt.ID), zap.Error(err))
		}
	}

	if appt.Status == models.StatusConfirmed {
		if err := l.Reminders.ScheduleReminder(*appt, svc.Name); err != nil {
			logger.Warn("failed to schedule appointment reminder",
				zap.String("appointmentId", appt.ID), zap.Error(err))
		}
	}
}
