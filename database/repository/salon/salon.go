package salonRepo

import "trimly/models"

// SalonRepository defines data access for salons. Lookups return (nil, nil)
// when no document matches.
type SalonRepository interface {
	// Create inserts a new salon record.
	Create(salon *models.Salon) error
	// Update replaces the mutable fields of an existing salon.
	Update(salon *models.Salon) error
	// GetByID retrieves a salon by its unique ID.
	GetByID(id string) (*models.Salon, error)
	// GetByOwner retrieves the single salon belonging to an owner account.
	GetByOwner(ownerID string) (*models.Salon, error)
	// List returns all salons.
	List() ([]models.Salon, error)
}
