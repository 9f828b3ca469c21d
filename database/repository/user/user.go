package userRepo

import "trimly/models"

// UserRepository defines methods for account data access. Lookups return
// (nil, nil) when no document matches.
type UserRepository interface {
	// Create inserts a new user record.
	Create(user *models.User) error
	// GetByID retrieves a user by their unique ID.
	GetByID(id string) (*models.User, error)
	// GetByUsername retrieves a user by username.
	GetByUsername(username string) (*models.User, error)
	// ExistsByIdentity reports whether any of username, email or phone is taken.
	ExistsByIdentity(username, email, phone string) (bool, error)
	// GetManyByID retrieves users for a set of IDs.
	GetManyByID(ids []string) ([]models.User, error)
	// GetStylistsBySalon lists stylist accounts assigned to a salon.
	GetStylistsBySalon(salonID string) ([]models.User, error)
	// UpdateStylistStatus moves a stylist's assignment status.
	UpdateStylistStatus(id, status string) error
}
