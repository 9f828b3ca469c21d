package review

import (
	"context"
	"time"

	appointmentRepo "trimly/database/repository/appointment"
	reviewRepo "trimly/database/repository/review"
	serviceRepo "trimly/database/repository/service"
	"trimly/models"
	"trimly/utils"

	"github.com/google/uuid"
)

// CreateInput is a review submission after transport decoding.
type CreateInput struct {
	ServiceID string `json:"serviceId"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}

// Aggregator stores reviews and computes per-service rating statistics for
// listing and search responses.
type Aggregator interface {
	Create(ctx context.Context, principal models.Principal, input CreateInput) (*models.Review, error)
	ListForService(ctx context.Context, serviceID string) ([]models.Review, error)
	RatingSummary(ctx context.Context, serviceIDs []string) (map[string]models.RatingSummary, error)
}

// DefaultAggregator implements Aggregator.
type DefaultAggregator struct {
	Reviews      reviewRepo.ReviewRepository
	Services     serviceRepo.ServiceRepository
	Appointments appointmentRepo.AppointmentRepository
}

// Create accepts a 1..5 rating from a user who actually booked the
// service. Reviews are immutable; there is no update or delete path.
func (a *DefaultAggregator) Create(ctx context.Context, principal models.Principal, input CreateInput) (*models.Review, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, utils.InvalidArgumentError{Msg: "rating must be between 1 and 5"}
	}

	svc, err := a.Services.GetByID(input.ServiceID)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, utils.NotFoundError{Resource: "service", ID: input.ServiceID}
	}

	booked, err := a.Appointments.HasActiveForUserService(principal.ID, input.ServiceID)
	if err != nil {
		return nil, err
	}
	if !booked {
		return nil, utils.ForbiddenError{Msg: "only customers with an appointment may review this service"}
	}

	rev := &models.Review{
		ID:        uuid.New().String(),
		ServiceID: input.ServiceID,
		UserID:    principal.ID,
		Rating:    input.Rating,
		Comment:   input.Comment,
		CreatedAt: time.Now(),
	}
	if err := a.Reviews.Create(rev); err != nil {
		return nil, err
	}
	return rev, nil
}

func (a *DefaultAggregator) ListForService(ctx context.Context, serviceID string) ([]models.Review, error) {
	svc, err := a.Services.GetByID(serviceID)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, utils.NotFoundError{Resource: "service", ID: serviceID}
	}
	return a.Reviews.ListByService(serviceID)
}

// RatingSummary aggregates stored ratings. Every requested service gets an
// entry; no reviews means {0, 0}, never a missing key.
func (a *DefaultAggregator) RatingSummary(ctx context.Context, serviceIDs []string) (map[string]models.RatingSummary, error) {
	summaries := make(map[string]models.RatingSummary, len(serviceIDs))
	for _, id := range serviceIDs {
		summaries[id] = models.RatingSummary{}
	}
	if len(serviceIDs) == 0 {
		return summaries, nil
	}

	ratings, err := a.Reviews.ListRatings(serviceIDs)
	if err != nil {
		return nil, err
	}

	totals := map[string]int{}
	counts := map[string]int{}
	for _, r := range ratings {
		totals[r.ServiceID] += r.Rating
		counts[r.ServiceID]++
	}
	for id, count := range counts {
		if count == 0 {
			continue
		}
		summaries[id] = models.RatingSummary{
			AverageRating: float64(totals[id]) / float64(count),
			ReviewCount:   count,
		}
	}
	return summaries, nil
}
