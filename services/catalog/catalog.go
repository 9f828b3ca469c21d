package catalog

import (
	"context"
	"time"

	categoryRepo "trimly/database/repository/category"
	salonRepo "trimly/database/repository/salon"
	serviceRepo "trimly/database/repository/service"
	userRepo "trimly/database/repository/user"
	"trimly/models"
	reviewSvc "trimly/services/review"
	"trimly/utils"

	"github.com/google/uuid"
)

// Defaults applied when an owner creates a service without them.
const (
	defaultDurationMinutes = 30
	defaultPrice           = 50
)

// SalonInput is the owner-editable surface of a salon profile.
type SalonInput struct {
	Name             string            `json:"name"`
	Location         string            `json:"location"`
	About            string            `json:"about"`
	Logo             string            `json:"logo"`
	CoverImage       string            `json:"coverImage"`
	CategoryID       string            `json:"categoryId"`
	HoursOfOperation map[string]string `json:"hoursOfOperation"`
	Lat              *float64          `json:"lat"`
	Lng              *float64          `json:"lng"`
}

// ServiceInput creates a service under the owner's salon.
type ServiceInput struct {
	Name            string  `json:"name"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
	DepositPercent  float64 `json:"depositPercent"`
	CategoryID      string  `json:"categoryId"`
}

// TimeBlockInput appends slot times on one calendar day, optionally pinned
// to a stylist.
type TimeBlockInput struct {
	StylistID *string  `json:"stylistId"`
	Date      string   `json:"date"`
	Label     string   `json:"label"`
	Times     []string `json:"times"`
}

// Catalog manages salon profiles, their services and the configured slot
// inventory, plus the category and stylist directories around them.
type Catalog interface {
	UpsertSalon(ctx context.Context, principal models.Principal, input SalonInput) (*models.Salon, error)
	MySalon(ctx context.Context, principal models.Principal) (*models.Salon, error)
	GetSalon(ctx context.Context, id string) (*models.Salon, error)
	ListSalons(ctx context.Context) ([]models.Salon, error)

	CreateService(ctx context.Context, principal models.Principal, input ServiceInput) (*models.Service, error)
	GetService(ctx context.Context, id string) (*models.Service, error)
	ListServices(ctx context.Context, salonID string) ([]models.RatedService, error)
	SearchServices(ctx context.Context, filter serviceRepo.SearchFilter) ([]models.RatedService, error)
	AddTimeBlock(ctx context.Context, principal models.Principal, serviceID string, input TimeBlockInput) error

	ListCategories(ctx context.Context) ([]models.Category, error)

	ListStylists(ctx context.Context, salonID string) ([]models.PublicUser, error)
	ListSalonStylists(ctx context.Context, principal models.Principal) ([]models.PublicUser, error)
	ApproveStylist(ctx context.Context, principal models.Principal, stylistID string) error
}

type DefaultCatalog struct {
	Salons     salonRepo.SalonRepository
	Services   serviceRepo.ServiceRepository
	Categories categoryRepo.CategoryRepository
	Users      userRepo.UserRepository
	Ratings    reviewSvc.Aggregator
}

// UpsertSalon creates the owner's salon on first call and replaces its
// profile afterwards. One salon per owner.
func (c *DefaultCatalog) UpsertSalon(ctx context.Context, principal models.Principal, input SalonInput) (*models.Salon, error) {
	if principal.Role != models.RoleOwner {
		return nil, utils.ForbiddenError{Msg: "only salon owners may manage a salon"}
	}
	if input.Name == "" {
		return nil, utils.InvalidArgumentError{Msg: "salon name is required"}
	}

	existing, err := c.Salons.GetByOwner(principal.ID)
	if err != nil {
		return nil, err
	}

	salon := &models.Salon{
		OwnerID:          principal.ID,
		Name:             input.Name,
		Location:         input.Location,
		About:            input.About,
		Logo:             input.Logo,
		CoverImage:       input.CoverImage,
		CategoryID:       input.CategoryID,
		HoursOfOperation: input.HoursOfOperation,
		Lat:              input.Lat,
		Lng:              input.Lng,
		UpdatedAt:        time.Now(),
	}

	if existing == nil {
		salon.ID = uuid.New().String()
		salon.CreatedAt = time.Now()
		if err := c.Salons.Create(salon); err != nil {
			return nil, err
		}
		return salon, nil
	}

	salon.ID = existing.ID
	salon.CreatedAt = existing.CreatedAt
	if err := c.Salons.Update(salon); err != nil {
		return nil, err
	}
	return salon, nil
}

func (c *DefaultCatalog) MySalon(ctx context.Context, principal models.Principal) (*models.Salon, error) {
	salon, err := c.Salons.GetByOwner(principal.ID)
	if err != nil {
		return nil, err
	}
	if salon == nil {
		return nil, utils.NotFoundError{Resource: "salon", ID: principal.ID}
	}
	return salon, nil
}

func (c *DefaultCatalog) GetSalon(ctx context.Context, id string) (*models.Salon, error) {
	salon, err := c.Salons.GetByID(id)
	if err != nil {
		return nil, err
	}
	if salon == nil {
		return nil, utils.NotFoundError{Resource: "salon", ID: id}
	}
	return salon, nil
}

func (c *DefaultCatalog) ListSalons(ctx context.Context) ([]models.Salon, error) {
	return c.Salons.List()
}

func (c *DefaultCatalog) CreateService(ctx context.Context, principal models.Principal, input ServiceInput) (*models.Service, error) {
	salon, err := c.ownedSalon(principal)
	if err != nil {
		return nil, err
	}
	if input.Name == "" {
		return nil, utils.InvalidArgumentError{Msg: "service name is required"}
	}
	if input.DepositPercent < 0 || input.DepositPercent > 100 {
		return nil, utils.InvalidArgumentError{Msg: "depositPercent must be between 0 and 100"}
	}

	svc := &models.Service{
		ID:              uuid.New().String(),
		SalonID:         salon.ID,
		Name:            input.Name,
		DurationMinutes: input.DurationMinutes,
		Price:           input.Price,
		DepositPercent:  input.DepositPercent,
		CategoryID:      input.CategoryID,
		StylistBlocks:   []models.StylistBlock{},
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}
	if svc.DurationMinutes <= 0 {
		svc.DurationMinutes = defaultDurationMinutes
	}
	if svc.Price <= 0 {
		svc.Price = defaultPrice
	}

	if err := c.Services.Create(svc); err != nil {
		return nil, err
	}
	return svc, nil
}

func (c *DefaultCatalog) GetService(ctx context.Context, id string) (*models.Service, error) {
	svc, err := c.Services.GetByID(id)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, utils.NotFoundError{Resource: "service", ID: id}
	}
	return svc, nil
}

func (c *DefaultCatalog) ListServices(ctx context.Context, salonID string) ([]models.RatedService, error) {
	salon, err := c.Salons.GetByID(salonID)
	if err != nil {
		return nil, err
	}
	if salon == nil {
		return nil, utils.NotFoundError{Resource: "salon", ID: salonID}
	}

	services, err := c.Services.ListBySalon(salonID)
	if err != nil {
		return nil, err
	}
	return c.decorateWithRatings(ctx, services)
}

func (c *DefaultCatalog) SearchServices(ctx context.Context, filter serviceRepo.SearchFilter) ([]models.RatedService, error) {
	services, err := c.Services.Search(filter)
	if err != nil {
		return nil, err
	}
	return c.decorateWithRatings(ctx, services)
}

// AddTimeBlock appends slot times for one day. Times must parse as HH:MM;
// the block is stored as configured, duplicates and all, and availability
// reads surface it exactly as stored.
func (c *DefaultCatalog) AddTimeBlock(ctx context.Context, principal models.Principal, serviceID string, input TimeBlockInput) error {
	salon, err := c.ownedSalon(principal)
	if err != nil {
		return err
	}

	svc, err := c.Services.GetByID(serviceID)
	if err != nil {
		return err
	}
	if svc == nil {
		return utils.NotFoundError{Resource: "service", ID: serviceID}
	}
	if svc.SalonID != salon.ID {
		return utils.ForbiddenError{Msg: "service belongs to a different salon"}
	}

	if _, err := time.Parse(models.DateLayout, input.Date); err != nil {
		return utils.InvalidArgumentError{Msg: "date must be formatted as YYYY-MM-DD"}
	}
	if len(input.Times) == 0 {
		return utils.InvalidArgumentError{Msg: "at least one slot time is required"}
	}
	for _, t := range input.Times {
		if _, err := time.Parse(models.TimeLayout, t); err != nil {
			return utils.InvalidArgumentError{Msg: "slot times must be formatted as HH:MM"}
		}
	}

	if input.StylistID != nil {
		stylist, err := c.Users.GetByID(*input.StylistID)
		if err != nil {
			return err
		}
		if stylist == nil || stylist.Role != models.RoleStylist || stylist.SalonID != salon.ID {
			return utils.InvalidArgumentError{Msg: "stylist is not part of this salon"}
		}
	}

	block := models.TimeBlock{Date: input.Date, Label: input.Label, Times: input.Times}
	return c.Services.AddTimeBlock(serviceID, input.StylistID, block)
}

func (c *DefaultCatalog) ListCategories(ctx context.Context) ([]models.Category, error) {
	return c.Categories.List()
}

// ListStylists is the public listing: only approved stylists are exposed.
func (c *DefaultCatalog) ListStylists(ctx context.Context, salonID string) ([]models.PublicUser, error) {
	stylists, err := c.Users.GetStylistsBySalon(salonID)
	if err != nil {
		return nil, err
	}
	public := make([]models.PublicUser, 0, len(stylists))
	for i := range stylists {
		if stylists[i].StylistStatus != models.StylistApproved {
			continue
		}
		public = append(public, stylists[i].Public())
	}
	return public, nil
}

// ListSalonStylists returns every stylist of the caller's salon, pending
// ones included, for the approval workflow.
func (c *DefaultCatalog) ListSalonStylists(ctx context.Context, principal models.Principal) ([]models.PublicUser, error) {
	salon, err := c.ownedSalon(principal)
	if err != nil {
		return nil, err
	}
	stylists, err := c.Users.GetStylistsBySalon(salon.ID)
	if err != nil {
		return nil, err
	}
	public := make([]models.PublicUser, 0, len(stylists))
	for i := range stylists {
		public = append(public, stylists[i].Public())
	}
	return public, nil
}

// ApproveStylist moves a pending stylist of the caller's salon to approved.
func (c *DefaultCatalog) ApproveStylist(ctx context.Context, principal models.Principal, stylistID string) error {
	salon, err := c.ownedSalon(principal)
	if err != nil {
		return err
	}

	stylist, err := c.Users.GetByID(stylistID)
	if err != nil {
		return err
	}
	if stylist == nil || stylist.Role != models.RoleStylist || stylist.SalonID != salon.ID {
		return utils.NotFoundError{Resource: "stylist", ID: stylistID}
	}
	return c.Users.UpdateStylistStatus(stylistID, models.StylistApproved)
}

func (c *DefaultCatalog) ownedSalon(principal models.Principal) (*models.Salon, error) {
	if principal.Role != models.RoleOwner {
		return nil, utils.ForbiddenError{Msg: "only salon owners may perform this action"}
	}
	salon, err := c.Salons.GetByOwner(principal.ID)
	if err != nil {
		return nil, err
	}
	if salon == nil {
		return nil, utils.NotFoundError{Resource: "salon", ID: principal.ID}
	}
	return salon, nil
}

func (c *DefaultCatalog) decorateWithRatings(ctx context.Context, services []models.Service) ([]models.RatedService, error) {
	ids := make([]string, 0, len(services))
	for i := range services {
		ids = append(ids, services[i].ID)
	}
	summaries, err := c.Ratings.RatingSummary(ctx, ids)
	if err != nil {
		return nil, err
	}

	rated := make([]models.RatedService, 0, len(services))
	for i := range services {
		summary := summaries[services[i].ID]
		rated = append(rated, models.RatedService{
			Service:       services[i],
			AverageRating: summary.AverageRating,
			ReviewCount:   summary.ReviewCount,
		})
	}
	return rated, nil
}
