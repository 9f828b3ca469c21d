package serviceRepo

import "trimly/models"

// SearchFilter narrows service listings. Zero values mean "no constraint".
type SearchFilter struct {
	Term       string // case-insensitive substring of the service name
	CategoryID string
}

// ServiceRepository defines data access for salon services and their
// configured availability blocks. Lookups return (nil, nil) when no
// document matches.
type ServiceRepository interface {
	// Create inserts a new service record.
	Create(service *models.Service) error
	// GetByID retrieves a service by its unique ID.
	GetByID(id string) (*models.Service, error)
	// ListBySalon returns the services of one salon.
	ListBySalon(salonID string) ([]models.Service, error)
	// Search returns services matching the filter, all services for the
	// zero filter.
	Search(filter SearchFilter) ([]models.Service, error)
	// AddTimeBlock appends a time block to the stylist's block on the
	// service, creating the stylist block on first use. A nil stylistID
	// targets the unassigned block.
	AddTimeBlock(serviceID string, stylistID *string, block models.TimeBlock) error
}
