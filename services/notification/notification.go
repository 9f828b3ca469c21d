package notification

import (
	"context"
	"time"

	notificationRepo "trimly/database/repository/notification"
	"trimly/models"

	"github.com/google/uuid"
)

// NotificationService delivers in-app notifications. Delivery is best-effort
// persistence; a failed push never blocks the operation that triggered it.
type NotificationService interface {
	Push(ctx context.Context, userID, message string) error
	ListForUser(ctx context.Context, userID string) ([]models.Notification, error)
	MarkAllRead(ctx context.Context, userID string) (int64, error)
}

type DefaultNotificationService struct {
	Repo notificationRepo.NotificationRepository
}

func (s *DefaultNotificationService) Push(ctx context.Context, userID, message string) error {
	return s.Repo.Create(&models.Notification{
		ID:        uuid.New().String(),
		UserID:    userID,
		Message:   message,
		Read:      false,
		CreatedAt: time.Now(),
	})
}

func (s *DefaultNotificationService) ListForUser(ctx context.Context, userID string) ([]models.Notification, error) {
	return s.Repo.ListByUser(userID)
}

func (s *DefaultNotificationService) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	return s.Repo.MarkAllRead(userID)
}
