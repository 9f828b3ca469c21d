package availability

import (
	"context"
	"time"

	appointmentRepo "trimly/database/repository/appointment"
	serviceRepo "trimly/database/repository/service"
	userRepo "trimly/database/repository/user"
	"trimly/models"
	"trimly/utils"

	"github.com/go-redis/redis/v8"
)

// Engine computes bookable slots from owner-configured time blocks and
// validates candidate bookings against them. All operations are read-only.
type Engine interface {
	DayAvailability(ctx context.Context, serviceID, date string) ([]models.StylistAvailability, error)
	MonthAvailability(ctx context.Context, serviceID string, year, month int) (*models.MonthAvailability, error)
	ValidateSlot(ctx context.Context, serviceID string, stylistID *string, date, startTime string) error
}

// DefaultEngine implements Engine over the catalog and ledger stores.
type DefaultEngine struct {
	Services     serviceRepo.ServiceRepository
	Appointments appointmentRepo.AppointmentRepository
	Users        userRepo.UserRepository
	// Cache holds month snapshots for a short TTL; nil disables caching.
	Cache *redis.Client
	// GoingFastRemaining is the remaining-slot count at or under which a
	// day is classified goingFast.
	GoingFastRemaining int

	now func() time.Time
}

// NewDefaultEngine wires an engine with the standard clock.
func NewDefaultEngine(services serviceRepo.ServiceRepository, appts appointmentRepo.AppointmentRepository,
	users userRepo.UserRepository, cache *redis.Client, goingFastRemaining int) *DefaultEngine {
	return &DefaultEngine{
		Services:           services,
		Appointments:       appts,
		Users:              users,
		Cache:              cache,
		GoingFastRemaining: goingFastRemaining,
		now:                time.Now,
	}
}

// DayAvailability returns, per stylist block, the concatenation of all slot
// times configured for the requested calendar day, in configured order.
// Days are compared as plain date strings, never as timestamps. A service
// with no matching blocks yields an empty list, not an error.
func (e *DefaultEngine) DayAvailability(ctx context.Context, serviceID, date string) ([]models.StylistAvailability, error) {
	if _, err := time.Parse(models.DateLayout, date); err != nil {
		return nil, utils.InvalidArgumentError{Msg: "date must be formatted YYYY-MM-DD"}
	}

	svc, err := e.Services.GetByID(serviceID)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, utils.NotFoundError{Resource: "service", ID: serviceID}
	}

	result := []models.StylistAvailability{}
	var stylistIDs []string
	for _, block := range svc.StylistBlocks {
		var slots []string
		for _, tb := range block.TimeBlocks {
			if tb.Date == date {
				slots = append(slots, tb.Times...)
			}
		}
		if len(slots) == 0 {
			continue
		}
		entry := models.StylistAvailability{Slots: slots}
		if block.StylistID != nil {
			entry.Stylist = &models.StylistRef{ID: *block.StylistID}
			stylistIDs = append(stylistIDs, *block.StylistID)
		}
		result = append(result, entry)
	}

	if err := e.fillStylistNames(result, stylistIDs); err != nil {
		return nil, err
	}
	return result, nil
}

func (e *DefaultEngine) fillStylistNames(entries []models.StylistAvailability, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	stylists, err := e.Users.GetManyByID(ids)
	if err != nil {
		return err
	}
	names := make(map[string]string, len(stylists))
	for _, s := range stylists {
		names[s.ID] = s.Username
	}
	for i := range entries {
		if entries[i].Stylist != nil {
			entries[i].Stylist.Name = names[entries[i].Stylist.ID]
		}
	}
	return nil
}

// ValidateSlot confirms the requested slot is currently offered for the
// stylist (nil matches the unassigned block). Callers re-run this at
// booking time; a slot list fetched earlier is never trusted.
func (e *DefaultEngine) ValidateSlot(ctx context.Context, serviceID string, stylistID *string, date, startTime string) error {
	if _, err := time.Parse(models.TimeLayout, startTime); err != nil {
		return utils.InvalidArgumentError{Msg: "startTime must be formatted HH:MM"}
	}

	entries, err := e.DayAvailability(ctx, serviceID, date)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if !sameStylist(entry.Stylist, stylistID) {
			continue
		}
		for _, slot := range entry.Slots {
			if slot == startTime {
				return nil
			}
		}
	}
	return utils.SlotNotOfferedError{Date: date, StartTime: startTime}
}

func sameStylist(ref *models.StylistRef, stylistID *string) bool {
	if ref == nil {
		return stylistID == nil
	}
	return stylistID != nil && ref.ID == *stylistID
}
