package availability

import (
	"context"
	"errors"
	"testing"

	appointmentRepo "trimly/database/repository/appointment"
	serviceRepo "trimly/database/repository/service"
	"trimly/models"
	"trimly/utils"
)

type fakeServiceRepo struct {
	services map[string]*models.Service
}

func (f *fakeServiceRepo) Create(svc *models.Service) error {
	f.services[svc.ID] = svc
	return nil
}

func (f *fakeServiceRepo) GetByID(id string) (*models.Service, error) {
	return f.services[id], nil
}

func (f *fakeServiceRepo) ListBySalon(salonID string) ([]models.Service, error) {
	var out []models.Service
	for _, svc := range f.services {
		if svc.SalonID == salonID {
			out = append(out, *svc)
		}
	}
	return out, nil
}

func (f *fakeServiceRepo) Search(filter serviceRepo.SearchFilter) ([]models.Service, error) {
	var out []models.Service
	for _, svc := range f.services {
		out = append(out, *svc)
	}
	return out, nil
}

func (f *fakeServiceRepo) AddTimeBlock(serviceID string, stylistID *string, block models.TimeBlock) error {
	svc, ok := f.services[serviceID]
	if !ok {
		return errors.New("service not found")
	}
	for i := range svc.StylistBlocks {
		if sameStylistID(svc.StylistBlocks[i].StylistID, stylistID) {
			svc.StylistBlocks[i].TimeBlocks = append(svc.StylistBlocks[i].TimeBlocks, block)
			return nil
		}
	}
	svc.StylistBlocks = append(svc.StylistBlocks, models.StylistBlock{
		StylistID:  stylistID,
		TimeBlocks: []models.TimeBlock{block},
	})
	return nil
}

func sameStylistID(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

type fakeAppointmentRepo struct {
	appointments []models.Appointment
}

func (f *fakeAppointmentRepo) Insert(ctx context.Context, appt *models.Appointment, scope appointmentRepo.ConflictScope) error {
	f.appointments = append(f.appointments, *appt)
	return nil
}

func (f *fakeAppointmentRepo) SlotTaken(*models.Appointment, appointmentRepo.ConflictScope) (bool, error) {
	return false, nil
}

func (f *fakeAppointmentRepo) GetByID(id string) (*models.Appointment, error) {
	for i := range f.appointments {
		if f.appointments[i].ID == id {
			appt := f.appointments[i]
			return &appt, nil
		}
	}
	return nil, nil
}

func (f *fakeAppointmentRepo) ListByUser(userID string) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range f.appointments {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAppointmentRepo) ListByStylist(stylistID string) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range f.appointments {
		if a.StylistID != nil && *a.StylistID == stylistID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAppointmentRepo) ListByServices(serviceIDs []string) ([]models.Appointment, error) {
	ids := map[string]bool{}
	for _, id := range serviceIDs {
		ids[id] = true
	}
	var out []models.Appointment
	for _, a := range f.appointments {
		if ids[a.ServiceID] {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAppointmentRepo) UpdateStatusFrom(id string, from, to models.AppointmentStatus, newDate string) (*models.Appointment, error) {
	for i := range f.appointments {
		if f.appointments[i].ID == id && f.appointments[i].Status == from {
			f.appointments[i].Status = to
			f.appointments[i].Active = to != models.StatusCanceled
			if newDate != "" {
				f.appointments[i].Date = newDate
			}
			appt := f.appointments[i]
			return &appt, nil
		}
	}
	return nil, nil
}

func (f *fakeAppointmentRepo) CountActiveByServiceDate(serviceID, date string) (int, error) {
	count := 0
	for _, a := range f.appointments {
		if a.ServiceID == serviceID && a.Date == date && a.Status != models.StatusCanceled {
			count++
		}
	}
	return count, nil
}

func (f *fakeAppointmentRepo) HasActiveForUserService(userID, serviceID string) (bool, error) {
	for _, a := range f.appointments {
		if a.UserID == userID && a.ServiceID == serviceID && a.Status != models.StatusCanceled {
			return true, nil
		}
	}
	return false, nil
}

type fakeUserRepo struct {
	users map[string]*models.User
}

func (f *fakeUserRepo) Create(u *models.User) error {
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) GetByID(id string) (*models.User, error) {
	return f.users[id], nil
}

func (f *fakeUserRepo) GetByUsername(username string) (*models.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) ExistsByIdentity(username, email, phone string) (bool, error) {
	for _, u := range f.users {
		if u.Username == username || u.Email == email || (phone != "" && u.PhoneNumber == phone) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) GetManyByID(ids []string) ([]models.User, error) {
	var out []models.User
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) GetStylistsBySalon(salonID string) ([]models.User, error) {
	var out []models.User
	for _, u := range f.users {
		if u.Role == models.RoleStylist && u.SalonID == salonID {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) UpdateStylistStatus(id, status string) error {
	u, ok := f.users[id]
	if !ok {
		return errors.New("user not found")
	}
	u.StylistStatus = status
	return nil
}

func strPtr(s string) *string { return &s }

func newTestEngine(svc *models.Service, users map[string]*models.User, appts *fakeAppointmentRepo) *DefaultEngine {
	services := &fakeServiceRepo{services: map[string]*models.Service{}}
	if svc != nil {
		services.services[svc.ID] = svc
	}
	if users == nil {
		users = map[string]*models.User{}
	}
	if appts == nil {
		appts = &fakeAppointmentRepo{}
	}
	return NewDefaultEngine(services, appts, &fakeUserRepo{users: users}, nil, 2)
}

func TestDayAvailabilityEmptyDay(t *testing.T) {
	svc := &models.Service{
		ID: "svc-1",
		StylistBlocks: []models.StylistBlock{
			{StylistID: nil, TimeBlocks: []models.TimeBlock{
				{Date: "2026-09-01", Times: []string{"10:00"}},
			}},
		},
	}
	engine := newTestEngine(svc, nil, nil)

	entries, err := engine.DayAvailability(context.Background(), "svc-1", "2026-09-02")
	if err != nil {
		t.Fatalf("DayAvailability: %v", err)
	}
	if entries == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(entries) != 0 {
		t.Fatalf("expected no entries, got %d", len(entries))
	}
}

func TestDayAvailabilityConcatenatesBlocksInOrder(t *testing.T) {
	svc := &models.Service{
		ID: "svc-1",
		StylistBlocks: []models.StylistBlock{
			{StylistID: strPtr("sty-1"), TimeBlocks: []models.TimeBlock{
				{Date: "2026-09-01", Label: "morning", Times: []string{"09:00", "10:00"}},
				{Date: "2026-09-02", Times: []string{"14:00"}},
				{Date: "2026-09-01", Label: "afternoon", Times: []string{"15:00", "10:00"}},
			}},
		},
	}
	users := map[string]*models.User{
		"sty-1": {ID: "sty-1", Username: "amara", Role: models.RoleStylist},
	}
	engine := newTestEngine(svc, users, nil)

	entries, err := engine.DayAvailability(context.Background(), "svc-1", "2026-09-01")
	if err != nil {
		t.Fatalf("DayAvailability: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	got := entries[0].Slots
	want := []string{"09:00", "10:00", "15:00", "10:00"}
	if len(got) != len(want) {
		t.Fatalf("slots = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("slots = %v, want %v", got, want)
		}
	}
	if entries[0].Stylist == nil || entries[0].Stylist.Name != "amara" {
		t.Errorf("stylist name not resolved: %+v", entries[0].Stylist)
	}
}

func TestDayAvailabilityIsIdempotent(t *testing.T) {
	svc := &models.Service{
		ID: "svc-1",
		StylistBlocks: []models.StylistBlock{
			{StylistID: nil, TimeBlocks: []models.TimeBlock{
				{Date: "2026-09-01", Times: []string{"10:00", "11:00"}},
			}},
		},
	}
	engine := newTestEngine(svc, nil, nil)

	first, err := engine.DayAvailability(context.Background(), "svc-1", "2026-09-01")
	if err != nil {
		t.Fatalf("first read: %v", err)
	}
	second, err := engine.DayAvailability(context.Background(), "svc-1", "2026-09-01")
	if err != nil {
		t.Fatalf("second read: %v", err)
	}
	if len(first) != len(second) || len(first[0].Slots) != len(second[0].Slots) {
		t.Fatalf("repeated reads differ: %v vs %v", first, second)
	}
}

func TestDayAvailabilityRejectsBadDate(t *testing.T) {
	engine := newTestEngine(nil, nil, nil)
	_, err := engine.DayAvailability(context.Background(), "svc-1", "01-09-2026")
	var invalid utils.InvalidArgumentError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidArgumentError, got %v", err)
	}
}

func TestDayAvailabilityUnknownService(t *testing.T) {
	engine := newTestEngine(nil, nil, nil)
	_, err := engine.DayAvailability(context.Background(), "missing", "2026-09-01")
	var notFound utils.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestValidateSlot(t *testing.T) {
	svc := &models.Service{
		ID: "svc-1",
		StylistBlocks: []models.StylistBlock{
			{StylistID: strPtr("sty-1"), TimeBlocks: []models.TimeBlock{
				{Date: "2026-09-01", Times: []string{"10:00", "10:30"}},
			}},
			{StylistID: nil, TimeBlocks: []models.TimeBlock{
				{Date: "2026-09-01", Times: []string{"12:00"}},
			}},
		},
	}
	users := map[string]*models.User{
		"sty-1": {ID: "sty-1", Username: "amara", Role: models.RoleStylist},
	}
	engine := newTestEngine(svc, users, nil)
	ctx := context.Background()

	if err := engine.ValidateSlot(ctx, "svc-1", strPtr("sty-1"), "2026-09-01", "10:30"); err != nil {
		t.Errorf("offered stylist slot rejected: %v", err)
	}
	if err := engine.ValidateSlot(ctx, "svc-1", nil, "2026-09-01", "12:00"); err != nil {
		t.Errorf("offered unassigned slot rejected: %v", err)
	}

	// Unassigned request must not match a stylist block and vice versa.
	var notOffered utils.SlotNotOfferedError
	if err := engine.ValidateSlot(ctx, "svc-1", nil, "2026-09-01", "10:00"); !errors.As(err, &notOffered) {
		t.Errorf("expected SlotNotOfferedError for cross-block slot, got %v", err)
	}
	if err := engine.ValidateSlot(ctx, "svc-1", strPtr("sty-1"), "2026-09-01", "12:00"); !errors.As(err, &notOffered) {
		t.Errorf("expected SlotNotOfferedError for cross-block slot, got %v", err)
	}
	if err := engine.ValidateSlot(ctx, "svc-1", strPtr("sty-1"), "2026-09-01", "11:00"); !errors.As(err, &notOffered) {
		t.Errorf("expected SlotNotOfferedError for unknown time, got %v", err)
	}

	var invalid utils.InvalidArgumentError
	if err := engine.ValidateSlot(ctx, "svc-1", nil, "2026-09-01", "noon"); !errors.As(err, &invalid) {
		t.Errorf("expected InvalidArgumentError for bad time, got %v", err)
	}
}

func TestValidateSlotUsesCurrentConfiguration(t *testing.T) {
	svc := &models.Service{ID: "svc-1"}
	services := &fakeServiceRepo{services: map[string]*models.Service{"svc-1": svc}}
	engine := NewDefaultEngine(services, &fakeAppointmentRepo{}, &fakeUserRepo{users: map[string]*models.User{}}, nil, 2)
	ctx := context.Background()

	var notOffered utils.SlotNotOfferedError
	if err := engine.ValidateSlot(ctx, "svc-1", nil, "2026-09-01", "10:00"); !errors.As(err, &notOffered) {
		t.Fatalf("expected SlotNotOfferedError before configuration, got %v", err)
	}

	if err := services.AddTimeBlock("svc-1", nil, models.TimeBlock{Date: "2026-09-01", Times: []string{"10:00"}}); err != nil {
		t.Fatalf("AddTimeBlock: %v", err)
	}
	if err := engine.ValidateSlot(ctx, "svc-1", nil, "2026-09-01", "10:00"); err != nil {
		t.Fatalf("slot should be offered after configuration: %v", err)
	}
}
