package tasks

import (
	"encoding/json"
	"fmt"
	"time"

	"trimly/models"
	"trimly/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeReminderSend = "reminder:send"

// NewReminderTask builds the asynq task carrying a reminder payload.
func NewReminderTask(payload models.ReminderPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal reminder payload: %w", err)
	}
	return asynq.NewTask(TypeReminderSend, data), nil
}

// AsynqReminderScheduler enqueues appointment reminders on the task queue,
// delayed until lead time before the appointment starts.
type AsynqReminderScheduler struct {
	Client *asynq.Client
	Lead   time.Duration
}

func (s *AsynqReminderScheduler) ScheduleReminder(appt models.Appointment, serviceName string) error {
	logger := utils.GetLogger().With(zap.String("appointmentID", appt.ID))

	start, err := time.ParseInLocation(
		models.DateLayout+" "+models.TimeLayout,
		appt.Date+" "+appt.StartTime,
		time.Local,
	)
	if err != nil {
		return fmt.Errorf("appointment %s has unparseable start: %w", appt.ID, err)
	}

	fireAt := start.Add(-s.Lead)
	if fireAt.Before(time.Now()) {
		logger.Debug("Reminder window already passed, skipping", zap.Time("start", start))
		return nil
	}

	task, err := NewReminderTask(models.ReminderPayload{
		AppointmentID: appt.ID,
		UserID:        appt.UserID,
		ServiceName:   serviceName,
		Date:          appt.Date,
		StartTime:     appt.StartTime,
	})
	if err != nil {
		return err
	}

	info, err := s.Client.Enqueue(task, asynq.ProcessAt(fireAt), asynq.MaxRetry(3))
	if err != nil {
		return fmt.Errorf("failed to enqueue reminder: %w", err)
	}
	logger.Info("Reminder scheduled", zap.String("taskID", info.ID), zap.Time("fireAt", fireAt))
	return nil
}
