package booking

import (
	"context"

	"trimly/models"
)

// List returns the principal's appointments, scoped by role and
// denormalized for display. The read-side joins live here; storage keeps
// ids only.
func (l *DefaultLedger) List(ctx context.Context, principal models.Principal) ([]models.AppointmentView, error) {
	var (
		appts []models.Appointment
		err   error
	)
	switch principal.Role {
	case models.RoleOwner:
		appts, err = l.listForOwner(principal.ID)
	case models.RoleStylist:
		appts, err = l.listForStylist(principal.ID)
	default:
		appts, err = l.Appointments.ListByUser(principal.ID)
	}
	if err != nil {
		return nil, err
	}
	return l.denormalize(appts)
}

// listForOwner gathers every appointment of the owner's salon. An owner
// without a salon simply sees nothing.
func (l *DefaultLedger) listForOwner(ownerID string) ([]models.Appointment, error) {
	salon, err := l.Salons.GetByOwner(ownerID)
	if err != nil {
		return nil, err
	}
	if salon == nil {
		return nil, nil
	}
	services, err := l.Services.ListBySalon(salon.ID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(services))
	for _, svc := range services {
		ids = append(ids, svc.ID)
	}
	return l.Appointments.ListByServices(ids)
}

// listForStylist hides assignments until the salon owner has approved the
// stylist, when the policy demands approval.
func (l *DefaultLedger) listForStylist(stylistID string) ([]models.Appointment, error) {
	if l.Policy.StylistApprovalRequired {
		me, err := l.Users.GetByID(stylistID)
		if err != nil {
			return nil, err
		}
		if me == nil || me.StylistStatus != models.StylistApproved {
			return nil, nil
		}
	}
	return l.Appointments.ListByStylist(stylistID)
}

func (l *DefaultLedger) denormalize(appts []models.Appointment) ([]models.AppointmentView, error) {
	views := make([]models.AppointmentView, 0, len(appts))
	if len(appts) == 0 {
		return views, nil
	}

	serviceNames, err := l.serviceNames(appts)
	if err != nil {
		return nil, err
	}
	contacts, err := l.contacts(appts)
	if err != nil {
		return nil, err
	}

	for _, appt := range appts {
		view := models.AppointmentView{Appointment: appt, ServiceName: serviceNames[appt.ServiceID]}
		if u, ok := contacts[appt.UserID]; ok {
			view.UserName = u.Username
			view.UserPhone = u.PhoneNumber
		}
		if appt.StylistID != nil {
			if s, ok := contacts[*appt.StylistID]; ok {
				view.StylistName = s.Username
				view.StylistPhone = s.PhoneNumber
			}
		}
		views = append(views, view)
	}
	return views, nil
}

func (l *DefaultLedger) serviceNames(appts []models.Appointment) (map[string]string, error) {
	names := map[string]string{}
	for _, appt := range appts {
		if _, ok := names[appt.ServiceID]; ok {
			continue
		}
		svc, err := l.Services.GetByID(appt.ServiceID)
		if err != nil {
			return nil, err
		}
		if svc != nil {
			names[appt.ServiceID] = svc.Name
		} else {
			names[appt.ServiceID] = ""
		}
	}
	return names, nil
}

func (l *DefaultLedger) contacts(appts []models.Appointment) (map[string]models.User, error) {
	idSet := map[string]struct{}{}
	for _, appt := range appts {
		idSet[appt.UserID] = struct{}{}
		if appt.StylistID != nil {
			idSet[*appt.StylistID] = struct{}{}
		}
	}
	ids := make([]string, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	users, err := l.Users.GetManyByID(ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	return byID, nil
}
