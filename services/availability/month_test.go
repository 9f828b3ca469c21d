package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"trimly/models"
	"trimly/utils"
)

func monthTestEngine(t *testing.T, now time.Time) (*DefaultEngine, *fakeAppointmentRepo) {
	t.Helper()
	svc := &models.Service{
		ID: "svc-1",
		StylistBlocks: []models.StylistBlock{
			{StylistID: nil, TimeBlocks: []models.TimeBlock{
				{Date: "2026-09-10", Times: []string{"10:00", "11:00", "12:00"}},
				{Date: "2026-09-11", Times: []string{"10:00"}},
			}},
		},
	}
	appts := &fakeAppointmentRepo{}
	engine := newTestEngine(svc, nil, appts)
	engine.now = func() time.Time { return now }
	return engine, appts
}

func dayStatus(t *testing.T, m *models.MonthAvailability, day int) string {
	t.Helper()
	for _, d := range m.Days {
		if d.Day == day {
			return d.Status
		}
	}
	t.Fatalf("day %d missing from month view", day)
	return ""
}

func TestMonthAvailabilityStatuses(t *testing.T) {
	now := time.Date(2026, time.September, 5, 12, 0, 0, 0, time.Local)
	engine, appts := monthTestEngine(t, now)

	appts.appointments = []models.Appointment{
		{ID: "a1", ServiceID: "svc-1", Date: "2026-09-10", StartTime: "10:00", Status: models.StatusConfirmed},
		{ID: "a2", ServiceID: "svc-1", Date: "2026-09-11", StartTime: "10:00", Status: models.StatusPending},
	}

	view, err := engine.MonthAvailability(context.Background(), "svc-1", 2026, 9)
	if err != nil {
		t.Fatalf("MonthAvailability: %v", err)
	}
	if len(view.Days) != 30 {
		t.Fatalf("September must have 30 days, got %d", len(view.Days))
	}

	if got := dayStatus(t, view, 4); got != models.DayPast {
		t.Errorf("day 4 = %s, want past", got)
	}
	// 3 slots, 1 booked: 2 remaining is within the going-fast threshold.
	if got := dayStatus(t, view, 10); got != models.DayGoingFast {
		t.Errorf("day 10 = %s, want goingFast", got)
	}
	// 1 slot, 1 pending booking: pending holds the slot.
	if got := dayStatus(t, view, 11); got != models.DayFullyBooked {
		t.Errorf("day 11 = %s, want fullyBooked", got)
	}
	// No capacity configured and nothing booked.
	if got := dayStatus(t, view, 12); got != models.DayFullyBooked {
		t.Errorf("day 12 = %s, want fullyBooked", got)
	}
}

func TestMonthAvailabilityAllFree(t *testing.T) {
	now := time.Date(2026, time.September, 5, 12, 0, 0, 0, time.Local)
	engine, _ := monthTestEngine(t, now)
	engine.GoingFastRemaining = 1

	view, err := engine.MonthAvailability(context.Background(), "svc-1", 2026, 9)
	if err != nil {
		t.Fatalf("MonthAvailability: %v", err)
	}
	if got := dayStatus(t, view, 10); got != models.DayAvailable {
		t.Errorf("day 10 = %s, want available", got)
	}
}

func TestMonthAvailabilityCanceledReleasesSlot(t *testing.T) {
	now := time.Date(2026, time.September, 5, 12, 0, 0, 0, time.Local)
	engine, appts := monthTestEngine(t, now)

	appts.appointments = []models.Appointment{
		{ID: "a1", ServiceID: "svc-1", Date: "2026-09-11", StartTime: "10:00", Status: models.StatusCanceled},
	}

	view, err := engine.MonthAvailability(context.Background(), "svc-1", 2026, 9)
	if err != nil {
		t.Fatalf("MonthAvailability: %v", err)
	}
	if got := dayStatus(t, view, 11); got == models.DayFullyBooked {
		t.Error("canceled appointment must not hold the slot")
	}
}

func TestMonthAvailabilityRejectsBadMonth(t *testing.T) {
	engine, _ := monthTestEngine(t, time.Now())
	var invalid utils.InvalidArgumentError
	if _, err := engine.MonthAvailability(context.Background(), "svc-1", 2026, 13); !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidArgumentError, got %v", err)
	}
	if _, err := engine.MonthAvailability(context.Background(), "svc-1", 2026, 0); !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidArgumentError, got %v", err)
	}
}
