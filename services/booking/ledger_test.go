package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	appointmentRepo "trimly/database/repository/appointment"
	serviceRepo "trimly/database/repository/service"
	"trimly/models"
	"trimly/services/availability"
	"trimly/utils"
)

type fakeAppointmentStore struct {
	appointments []models.Appointment
}

func (f *fakeAppointmentStore) conflicts(appt *models.Appointment, scope appointmentRepo.ConflictScope) bool {
	for _, existing := range f.appointments {
		if existing.ID == appt.ID {
			continue
		}
		if !existing.Active || existing.Date != appt.Date || existing.StartTime != appt.StartTime {
			continue
		}
		if appt.StylistID != nil {
			if existing.StylistID != nil && *existing.StylistID == *appt.StylistID {
				return true
			}
			continue
		}
		if scope == appointmentRepo.ScopePerSalon &&
			existing.StylistID == nil && existing.ServiceID == appt.ServiceID {
			return true
		}
	}
	return false
}

func (f *fakeAppointmentStore) Insert(ctx context.Context, appt *models.Appointment, scope appointmentRepo.ConflictScope) error {
	if f.conflicts(appt, scope) {
		return appointmentRepo.ErrSlotTaken
	}
	f.appointments = append(f.appointments, *appt)
	return nil
}

func (f *fakeAppointmentStore) SlotTaken(appt *models.Appointment, scope appointmentRepo.ConflictScope) (bool, error) {
	return f.conflicts(appt, scope), nil
}

func (f *fakeAppointmentStore) GetByID(id string) (*models.Appointment, error) {
	for i := range f.appointments {
		if f.appointments[i].ID == id {
			appt := f.appointments[i]
			return &appt, nil
		}
	}
	return nil, nil
}

func (f *fakeAppointmentStore) ListByUser(userID string) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range f.appointments {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAppointmentStore) ListByStylist(stylistID string) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range f.appointments {
		if a.StylistID != nil && *a.StylistID == stylistID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAppointmentStore) ListByServices(serviceIDs []string) ([]models.Appointment, error) {
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

func (f *fakeAppointmentStore) UpdateStatusFrom(id string, from, to models.AppointmentStatus, newDate string) (*models.Appointment, error) {
	for i := range f.appointments {
		if f.appointments[i].ID == id && f.appointments[i].Status == from {
			// Mirror the store's unique index on rescheduled triples.
			if newDate != "" {
				candidate := f.appointments[i]
				candidate.Date = newDate
				if candidate.StylistID != nil && f.conflicts(&candidate, appointmentRepo.ScopePerStylist) {
					return nil, appointmentRepo.ErrSlotTaken
				}
			}
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

func (f *fakeAppointmentStore) CountActiveByServiceDate(serviceID, date string) (int, error) {
	count := 0
	for _, a := range f.appointments {
		if a.ServiceID == serviceID && a.Date == date && a.Active {
			count++
		}
	}
	return count, nil
}

func (f *fakeAppointmentStore) HasActiveForUserService(userID, serviceID string) (bool, error) {
	for _, a := range f.appointments {
		if a.UserID == userID && a.ServiceID == serviceID && a.Active {
			return true, nil
		}
	}
	return false, nil
}

type fakeServiceStore struct {
	services map[string]*models.Service
}

func (f *fakeServiceStore) Create(svc *models.Service) error {
	f.services[svc.ID] = svc
	return nil
}

func (f *fakeServiceStore) GetByID(id string) (*models.Service, error) {
	return f.services[id], nil
}

func (f *fakeServiceStore) ListBySalon(salonID string) ([]models.Service, error) {
	var out []models.Service
	for _, svc := range f.services {
		if svc.SalonID == salonID {
			out = append(out, *svc)
		}
	}
	return out, nil
}

func (f *fakeServiceStore) Search(filter serviceRepo.SearchFilter) ([]models.Service, error) {
	var out []models.Service
	for _, svc := range f.services {
		out = append(out, *svc)
	}
	return out, nil
}

func (f *fakeServiceStore) AddTimeBlock(serviceID string, stylistID *string, block models.TimeBlock) error {
	svc, ok := f.services[serviceID]
	if !ok {
		return errors.New("service not found")
	}
	svc.StylistBlocks = append(svc.StylistBlocks, models.StylistBlock{
		StylistID:  stylistID,
		TimeBlocks: []models.TimeBlock{block},
	})
	return nil
}

type fakeSalonStore struct {
	salons map[string]*models.Salon
}

func (f *fakeSalonStore) Create(s *models.Salon) error { f.salons[s.ID] = s; return nil }
func (f *fakeSalonStore) Update(s *models.Salon) error { f.salons[s.ID] = s; return nil }

func (f *fakeSalonStore) GetByID(id string) (*models.Salon, error) {
	return f.salons[id], nil
}

func (f *fakeSalonStore) GetByOwner(ownerID string) (*models.Salon, error) {
	for _, s := range f.salons {
		if s.OwnerID == ownerID {
			return s, nil
		}
	}
	return nil, nil
}

func (f *fakeSalonStore) List() ([]models.Salon, error) {
	var out []models.Salon
	for _, s := range f.salons {
		out = append(out, *s)
	}
	return out, nil
}

type fakeUserStore struct {
	users map[string]*models.User
}

func (f *fakeUserStore) Create(u *models.User) error { f.users[u.ID] = u; return nil }

func (f *fakeUserStore) GetByID(id string) (*models.User, error) {
	return f.users[id], nil
}

func (f *fakeUserStore) GetByUsername(username string) (*models.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) ExistsByIdentity(username, email, phone string) (bool, error) {
	return false, nil
}

func (f *fakeUserStore) GetManyByID(ids []string) ([]models.User, error) {
	var out []models.User
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (f *fakeUserStore) GetStylistsBySalon(salonID string) ([]models.User, error) {
	var out []models.User
	for _, u := range f.users {
		if u.Role == models.RoleStylist && u.SalonID == salonID {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (f *fakeUserStore) UpdateStylistStatus(id, status string) error {
	u, ok := f.users[id]
	if !ok {
		return errors.New("user not found")
	}
	u.StylistStatus = status
	return nil
}

type recordingNotifier struct {
	pushes []struct{ UserID, Message string }
}

func (r *recordingNotifier) Push(ctx context.Context, userID, message string) error {
	r.pushes = append(r.pushes, struct{ UserID, Message string }{userID, message})
	return nil
}

type recordingScheduler struct {
	scheduled []models.Appointment
}

func (r *recordingScheduler) ScheduleReminder(appt models.Appointment, serviceName string) error {
	r.scheduled = append(r.scheduled, appt)
	return nil
}

type ledgerFixture struct {
	ledger    *DefaultLedger
	store     *fakeAppointmentStore
	notifier  *recordingNotifier
	scheduler *recordingScheduler
	users     *fakeUserStore
}

func strPtr(s string) *string { return &s }

// newLedgerFixture builds a ledger over one salon with one service offering
// 10:00 and 10:30 for stylist sty-1 and 12:00 unassigned on 2026-09-01.
func newLedgerFixture(policy Policy) *ledgerFixture {
	services := &fakeServiceStore{services: map[string]*models.Service{
		"svc-1": {
			ID:             "svc-1",
			SalonID:        "salon-1",
			Name:           "Fade Cut",
			Price:          100,
			DepositPercent: 0,
			StylistBlocks: []models.StylistBlock{
				{StylistID: strPtr("sty-1"), TimeBlocks: []models.TimeBlock{
					{Date: "2026-09-01", Times: []string{"10:00", "10:30"}},
					{Date: "2026-09-03", Times: []string{"10:00"}},
				}},
				{StylistID: nil, TimeBlocks: []models.TimeBlock{
					{Date: "2026-09-01", Times: []string{"12:00"}},
				}},
			},
		},
	}}
	salons := &fakeSalonStore{salons: map[string]*models.Salon{
		"salon-1": {ID: "salon-1", OwnerID: "owner-1", Name: "Shear Genius"},
	}}
	users := &fakeUserStore{users: map[string]*models.User{
		"user-1":  {ID: "user-1", Username: "noor", PhoneNumber: "555-0101", Role: models.RoleUser},
		"owner-1": {ID: "owner-1", Username: "dana", Role: models.RoleOwner},
		"sty-1": {ID: "sty-1", Username: "amara", PhoneNumber: "555-0102", Role: models.RoleStylist,
			SalonID: "salon-1", StylistStatus: models.StylistApproved},
	}}
	store := &fakeAppointmentStore{}
	notifier := &recordingNotifier{}
	scheduler := &recordingScheduler{}

	engine := availability.NewDefaultEngine(services, store, users, nil, 2)
	ledger := &DefaultLedger{
		Appointments: store,
		Services:     services,
		Salons:       salons,
		Users:        users,
		Engine:       engine,
		Notifier:     notifier,
		Reminders:    scheduler,
		Policy:       policy,
	}
	return &ledgerFixture{ledger: ledger, store: store, notifier: notifier, scheduler: scheduler, users: users}
}

func defaultPolicy() Policy {
	return Policy{
		InitialStatus:           models.StatusPending,
		StylistApprovalRequired: true,
		ConflictScope:           appointmentRepo.ScopePerStylist,
		ReminderLead:            30 * time.Minute,
	}
}

func TestCreateThenConflictThenAdjacentSlot(t *testing.T) {
	fx := newLedgerFixture(defaultPolicy())
	ctx := context.Background()
	user := models.Principal{ID: "user-1", Role: models.RoleUser}

	first, err := fx.ledger.Create(ctx, user, CreateInput{
		ServiceID: "svc-1", StylistID: strPtr("sty-1"), Date: "2026-09-01", StartTime: "10:00",
	})
	if err != nil {
		t.Fatalf("first booking: %v", err)
	}
	if first.Status != models.StatusPending {
		t.Errorf("initial status = %s, want pending", first.Status)
	}
	if first.Price != 100 {
		t.Errorf("price = %v, want 100", first.Price)
	}

	_, err = fx.ledger.Create(ctx, models.Principal{ID: "user-2", Role: models.RoleUser}, CreateInput{
		ServiceID: "svc-1", StylistID: strPtr("sty-1"), Date: "2026-09-01", StartTime: "10:00",
	})
	var conflict utils.SlotConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected SlotConflictError for held slot, got %v", err)
	}

	if _, err := fx.ledger.Create(ctx, models.Principal{ID: "user-2", Role: models.RoleUser}, CreateInput{
		ServiceID: "svc-1", StylistID: strPtr("sty-1"), Date: "2026-09-01", StartTime: "10:30",
	}); err != nil {
		t.Fatalf("adjacent slot must stay bookable: %v", err)
	}
}

func TestCreateRejectsUnofferedSlot(t *testing.T) {
	fx := newLedgerFixture(defaultPolicy())
	user := models.Principal{ID: "user-1", Role: models.RoleUser}

	_, err := fx.ledger.Create(context.Background(), user, CreateInput{
		ServiceID: "svc-1", StylistID: strPtr("sty-1"), Date: "2026-09-01", StartTime: "11:00",
	})
	var notOffered utils.SlotNotOfferedError
	if !errors.As(err, &notOffered) {
		t.Fatalf("expected SlotNotOfferedError, got %v", err)
	}
}

func TestCreateDepositPricing(t *testing.T) {
	fx := newLedgerFixture(defaultPolicy())
	fx.ledger.Services.(*fakeServiceStore).services["svc-1"].DepositPercent = 20

	appt, err := fx.ledger.Create(context.Background(), models.Principal{ID: "user-1", Role: models.RoleUser}, CreateInput{
		ServiceID: "svc-1", StylistID: strPtr("sty-1"), Date: "2026-09-01", StartTime: "10:00",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if appt.Price != 20 {
		t.Errorf("deposit price = %v, want 20", appt.Price)
	}
}

func TestCreateNotifiesStylistOfPendingRequest(t *testing.T) {
	fx := newLedgerFixture(defaultPolicy())

	if _, err := fx.ledger.Create(context.Background(), models.Principal{ID: "user-1", Role: models.RoleUser}, CreateInput{
		ServiceID: "svc-1", StylistID: strPtr("sty-1"), Date: "2026-09-01", StartTime: "10:00",
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(fx.notifier.pushes) != 1 || fx.notifier.pushes[0].UserID != "sty-1" {
		t.Errorf("expected one push to sty-1, got %+v", fx.notifier.pushes)
	}
	if len(fx.scheduler.scheduled) != 0 {
		t.Errorf("pending bookings must not schedule reminders")
	}
}

func TestCreateAutoConfirmSchedulesReminder(t *testing.T) {
	policy := defaultPolicy()
	policy.InitialStatus = models.StatusConfirmed
	fx := newLedgerFixture(policy)

	appt, err := fx.ledger.Create(context.Background(), models.Principal{ID: "user-1", Role: models.RoleUser}, CreateInput{
		ServiceID: "svc-1", StylistID: strPtr("sty-1"), Date: "2026-09-01", StartTime: "10:00",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if appt.Status != models.StatusConfirmed {
		t.Errorf("status = %s, want confirmed", appt.Status)
	}
	if len(fx.scheduler.scheduled) != 1 {
		t.Fatalf("expected one reminder, got %d", len(fx.scheduler.scheduled))
	}
}

func TestCreateUnassignedConflictScopes(t *testing.T) {
	ctx := context.Background()
	in := CreateInput{ServiceID: "svc-1", Date: "2026-09-01", StartTime: "12:00"}

	// perStylist: unassigned bookings never collide with each other.
	fx := newLedgerFixture(defaultPolicy())
	if _, err := fx.ledger.Create(ctx, models.Principal{ID: "user-1", Role: models.RoleUser}, in); err != nil {
		t.Fatalf("first unassigned booking: %v", err)
	}
	if _, err := fx.ledger.Create(ctx, models.Principal{ID: "user-2", Role: models.RoleUser}, in); err != nil {
		t.Fatalf("perStylist scope must allow parallel unassigned bookings: %v", err)
	}

	// perSalon: the same unassigned slot of the service can be sold once.
	policy := defaultPolicy()
	policy.ConflictScope = appointmentRepo.ScopePerSalon
	fx = newLedgerFixture(policy)
	if _, err := fx.ledger.Create(ctx, models.Principal{ID: "user-1", Role: models.RoleUser}, in); err != nil {
		t.Fatalf("first unassigned booking: %v", err)
	}
	_, err := fx.ledger.Create(ctx, models.Principal{ID: "user-2", Role: models.RoleUser}, in)
	var conflict utils.SlotConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("perSalon scope must reject the second unassigned booking, got %v", err)
	}
}

func TestCanceledSlotIsRebookable(t *testing.T) {
	fx := newLedgerFixture(defaultPolicy())
	ctx := context.Background()
	user := models.Principal{ID: "user-1", Role: models.RoleUser}
	in := CreateInput{ServiceID: "svc-1", StylistID: strPtr("sty-1"), Date: "2026-09-01", StartTime: "10:00"}

	appt, err := fx.ledger.Create(ctx, user, in)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := fx.ledger.Cancel(ctx, user, appt.ID); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if _, err := fx.ledger.Create(ctx, models.Principal{ID: "user-2", Role: models.RoleUser}, in); err != nil {
		t.Fatalf("canceled slot must be rebookable: %v", err)
	}
}

func TestDecideConfirmAndComplete(t *testing.T) {
	fx := newLedgerFixture(defaultPolicy())
	ctx := context.Background()
	stylist := models.Principal{ID: "sty-1", Role: models.RoleStylist}

	appt, err := fx.ledger.Create(ctx, models.Principal{ID: "user-1", Role: models.RoleUser}, CreateInput{
		ServiceID: "svc-1", StylistID: strPtr("sty-1"), Date: "2026-09-01", StartTime: "10:00",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	confirmed, err := fx.ledger.Decide(ctx, stylist, appt.ID, Decision{Status: models.StatusConfirmed})
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if confirmed.Status != models.StatusConfirmed {
		t.Errorf("status = %s, want confirmed", confirmed.Status)
	}
	if len(fx.scheduler.scheduled) != 1 {
		t.Errorf("confirmation must schedule a reminder")
	}

	completed, err := fx.ledger.Decide(ctx, stylist, appt.ID, Decision{Status: models.StatusCompleted})
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if completed.Status != models.StatusCompleted {
		t.Errorf("status = %s, want completed", completed.Status)
	}

	// Terminal; any further decision is rejected.
	_, err = fx.ledger.Decide(ctx, stylist, appt.ID, Decision{Status: models.StatusCanceled})
	var transition utils.InvalidTransitionError
	if !errors.As(err, &transition) {
		t.Fatalf("expected InvalidTransitionError on terminal appointment, got %v", err)
	}
}

func TestDecideConfirmWithReschedule(t *testing.T) {
	fx := newLedgerFixture(defaultPolicy())
	ctx := context.Background()

	appt, err := fx.ledger.Create(ctx, models.Principal{ID: "user-1", Role: models.RoleUser}, CreateInput{
		ServiceID: "svc-1", StylistID: strPtr("sty-1"), Date: "2026-09-01", StartTime: "10:00",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	stylist := models.Principal{ID: "sty-1", Role: models.RoleStylist}

	// 2026-09-02 offers no 10:00 slot for the stylist.
	_, err = fx.ledger.Decide(ctx, stylist, appt.ID, Decision{Status: models.StatusConfirmed, NewDate: "2026-09-02"})
	var notOffered utils.SlotNotOfferedError
	if !errors.As(err, &notOffered) {
		t.Fatalf("expected SlotNotOfferedError for unoffered new date, got %v", err)
	}

	updated, err := fx.ledger.Decide(ctx, stylist, appt.ID, Decision{Status: models.StatusConfirmed, NewDate: "2026-09-03"})
	if err != nil {
		t.Fatalf("confirm with reschedule: %v", err)
	}
	if updated.Date != "2026-09-03" {
		t.Errorf("date = %s, want 2026-09-03", updated.Date)
	}
}

func TestDecideRescheduleRejectsTakenSlot(t *testing.T) {
	fx := newLedgerFixture(defaultPolicy())
	ctx := context.Background()
	customer := models.Principal{ID: "user-1", Role: models.RoleUser}

	if _, err := fx.ledger.Create(ctx, customer, CreateInput{
		ServiceID: "svc-1", StylistID: strPtr("sty-1"), Date: "2026-09-03", StartTime: "10:00",
	}); err != nil {
		t.Fatalf("Create first: %v", err)
	}
	second, err := fx.ledger.Create(ctx, customer, CreateInput{
		ServiceID: "svc-1", StylistID: strPtr("sty-1"), Date: "2026-09-01", StartTime: "10:00",
	})
	if err != nil {
		t.Fatalf("Create second: %v", err)
	}

	owner := models.Principal{ID: "owner-1", Role: models.RoleOwner}
	_, err = fx.ledger.Decide(ctx, owner, second.ID, Decision{Status: models.StatusConfirmed, NewDate: "2026-09-03"})
	var conflict utils.SlotConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected SlotConflictError rescheduling into a held slot, got %v", err)
	}

	// The losing appointment keeps its original slot; the triple stays
	// held by exactly one active appointment.
	kept, _ := fx.store.GetByID(second.ID)
	if kept.Date != "2026-09-01" || kept.Status != models.StatusPending {
		t.Errorf("losing appointment = %s/%s, want 2026-09-01/pending", kept.Date, kept.Status)
	}
	holders := 0
	for _, a := range fx.store.appointments {
		if a.Active && a.StylistID != nil && *a.StylistID == "sty-1" &&
			a.Date == "2026-09-03" && a.StartTime == "10:00" {
			holders++
		}
	}
	if holders != 1 {
		t.Errorf("active holders of the slot = %d, want 1", holders)
	}
}

// blindConflictStore never sees a conflict up front, forcing the ledger to
// rely on the store's unique-index error from the update itself.
type blindConflictStore struct {
	*fakeAppointmentStore
}

func (s *blindConflictStore) SlotTaken(*models.Appointment, appointmentRepo.ConflictScope) (bool, error) {
	return false, nil
}

func TestDecideRescheduleLosesIndexRace(t *testing.T) {
	fx := newLedgerFixture(defaultPolicy())
	ctx := context.Background()
	customer := models.Principal{ID: "user-1", Role: models.RoleUser}

	if _, err := fx.ledger.Create(ctx, customer, CreateInput{
		ServiceID: "svc-1", StylistID: strPtr("sty-1"), Date: "2026-09-03", StartTime: "10:00",
	}); err != nil {
		t.Fatalf("Create first: %v", err)
	}
	second, err := fx.ledger.Create(ctx, customer, CreateInput{
		ServiceID: "svc-1", StylistID: strPtr("sty-1"), Date: "2026-09-01", StartTime: "10:00",
	})
	if err != nil {
		t.Fatalf("Create second: %v", err)
	}

	fx.ledger.Appointments = &blindConflictStore{fx.store}

	owner := models.Principal{ID: "owner-1", Role: models.RoleOwner}
	_, err = fx.ledger.Decide(ctx, owner, second.ID, Decision{Status: models.StatusConfirmed, NewDate: "2026-09-03"})
	var conflict utils.SlotConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected SlotConflictError from the index backstop, got %v", err)
	}
}

func TestDecideScopeAndRole(t *testing.T) {
	fx := newLedgerFixture(defaultPolicy())
	ctx := context.Background()

	appt, err := fx.ledger.Create(ctx, models.Principal{ID: "user-1", Role: models.RoleUser}, CreateInput{
		ServiceID: "svc-1", StylistID: strPtr("sty-1"), Date: "2026-09-01", StartTime: "10:00",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Customers cannot decide.
	_, err = fx.ledger.Decide(ctx, models.Principal{ID: "user-1", Role: models.RoleUser}, appt.ID, Decision{Status: models.StatusConfirmed})
	var forbidden utils.ForbiddenError
	if !errors.As(err, &forbidden) {
		t.Errorf("expected ForbiddenError for customer decision, got %v", err)
	}

	// Another stylist sees nothing.
	_, err = fx.ledger.Decide(ctx, models.Principal{ID: "sty-2", Role: models.RoleStylist}, appt.ID, Decision{Status: models.StatusConfirmed})
	var notFound utils.NotFoundError
	if !errors.As(err, &notFound) {
		t.Errorf("expected NotFoundError for out-of-scope stylist, got %v", err)
	}

	// Pending cannot jump straight to completed.
	_, err = fx.ledger.Decide(ctx, models.Principal{ID: "sty-1", Role: models.RoleStylist}, appt.ID, Decision{Status: models.StatusCompleted})
	var transition utils.InvalidTransitionError
	if !errors.As(err, &transition) {
		t.Errorf("expected InvalidTransitionError for pending->completed, got %v", err)
	}

	// The salon owner decides for every service of the salon.
	if _, err := fx.ledger.Decide(ctx, models.Principal{ID: "owner-1", Role: models.RoleOwner}, appt.ID, Decision{Status: models.StatusConfirmed}); err != nil {
		t.Errorf("owner decision failed: %v", err)
	}
}

func TestCancelByStranger(t *testing.T) {
	fx := newLedgerFixture(defaultPolicy())
	ctx := context.Background()

	appt, err := fx.ledger.Create(ctx, models.Principal{ID: "user-1", Role: models.RoleUser}, CreateInput{
		ServiceID: "svc-1", StylistID: strPtr("sty-1"), Date: "2026-09-01", StartTime: "10:00",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err = fx.ledger.Cancel(ctx, models.Principal{ID: "user-2", Role: models.RoleUser}, appt.ID)
	var forbidden utils.ForbiddenError
	if !errors.As(err, &forbidden) {
		t.Fatalf("expected ForbiddenError for stranger cancel, got %v", err)
	}
}

func TestListScoping(t *testing.T) {
	fx := newLedgerFixture(defaultPolicy())
	ctx := context.Background()

	if _, err := fx.ledger.Create(ctx, models.Principal{ID: "user-1", Role: models.RoleUser}, CreateInput{
		ServiceID: "svc-1", StylistID: strPtr("sty-1"), Date: "2026-09-01", StartTime: "10:00",
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	own, err := fx.ledger.List(ctx, models.Principal{ID: "user-1", Role: models.RoleUser})
	if err != nil {
		t.Fatalf("user list: %v", err)
	}
	if len(own) != 1 {
		t.Fatalf("user must see 1 appointment, got %d", len(own))
	}
	if own[0].ServiceName != "Fade Cut" || own[0].StylistName != "amara" {
		t.Errorf("expected denormalized names, got %+v", own[0])
	}

	other, err := fx.ledger.List(ctx, models.Principal{ID: "user-2", Role: models.RoleUser})
	if err != nil {
		t.Fatalf("other user list: %v", err)
	}
	if len(other) != 0 {
		t.Errorf("other user must see nothing, got %d", len(other))
	}

	mine, err := fx.ledger.List(ctx, models.Principal{ID: "sty-1", Role: models.RoleStylist})
	if err != nil {
		t.Fatalf("stylist list: %v", err)
	}
	if len(mine) != 1 {
		t.Errorf("approved stylist must see assignments, got %d", len(mine))
	}

	salonwide, err := fx.ledger.List(ctx, models.Principal{ID: "owner-1", Role: models.RoleOwner})
	if err != nil {
		t.Fatalf("owner list: %v", err)
	}
	if len(salonwide) != 1 {
		t.Errorf("owner must see salon appointments, got %d", len(salonwide))
	}
	if salonwide[0].UserName != "noor" || salonwide[0].UserPhone != "555-0101" {
		t.Errorf("owner view must carry customer contact, got %+v", salonwide[0])
	}
}

func TestListHidesAssignmentsFromPendingStylist(t *testing.T) {
	fx := newLedgerFixture(defaultPolicy())
	ctx := context.Background()
	fx.users.users["sty-1"].StylistStatus = models.StylistPending

	if _, err := fx.ledger.Create(ctx, models.Principal{ID: "user-1", Role: models.RoleUser}, CreateInput{
		ServiceID: "svc-1", StylistID: strPtr("sty-1"), Date: "2026-09-01", StartTime: "10:00",
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	mine, err := fx.ledger.List(ctx, models.Principal{ID: "sty-1", Role: models.RoleStylist})
	if err != nil {
		t.Fatalf("stylist list: %v", err)
	}
	if len(mine) != 0 {
		t.Fatalf("pending stylist must see nothing, got %d", len(mine))
	}

	// Approval makes the same assignments visible.
	fx.users.users["sty-1"].StylistStatus = models.StylistApproved
	mine, err = fx.ledger.List(ctx, models.Principal{ID: "sty-1", Role: models.RoleStylist})
	if err != nil {
		t.Fatalf("stylist list after approval: %v", err)
	}
	if len(mine) != 1 {
		t.Fatalf("approved stylist must see assignments, got %d", len(mine))
	}
}
