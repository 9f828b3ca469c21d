package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"trimly/config"
	appointmentRepo "trimly/database/repository/appointment"
	"trimly/models"
	"trimly/services/booking"
	"trimly/services/tasks"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

// InitReminderWorker runs the async worker in background.
func InitReminderWorker(appts appointmentRepo.AppointmentRepository, notifier booking.NotificationSink) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeReminderSend, handleReminderTask(appts, notifier))

	// Start Redis health monitor
	go monitorRedisConnection()

	// Start async worker with retry logic
	go func() {
		log.Println("[ReminderWorker] 🚀 Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ReminderWorker] ❌ Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ReminderWorker] ❗ Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

// handleReminderTask re-reads the appointment before firing: reminders for
// appointments canceled or completed after scheduling are dropped silently.
func handleReminderTask(appts appointmentRepo.AppointmentRepository, notifier booking.NotificationSink) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ReminderHandler] 🔴 Invalid payload: %v", err)
			return err
		}

		appt, err := appts.GetByID(p.AppointmentID)
		if err != nil {
			log.Printf("[ReminderHandler] ❌ Failed to load appointment %s: %v", p.AppointmentID, err)
			return err
		}
		if appt == nil || appt.Status != models.StatusConfirmed {
			log.Printf("[ReminderHandler] ⚠️ Appointment %s no longer confirmed, skipping reminder", p.AppointmentID)
			return nil
		}

		message := fmt.Sprintf("Reminder: your %s appointment starts at %s on %s.", p.ServiceName, p.StartTime, p.Date)
		if err := notifier.Push(ctx, p.UserID, message); err != nil {
			log.Printf("[ReminderHandler] ❌ Failed to push reminder: %v", err)
			return err
		}
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[ReminderWorker] ⚠️ Redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
