package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"lexaid/config"
	appointmentRepo "lexaid/database/repository/appointment"
	"lexaid/models"
	"lexaid/services/notification"
	"lexaid/services/tasks"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

// InitReminderWorker runs the async reminder worker in the background.
func InitReminderWorker(repo appointmentRepo.AppointmentRepository, notifSvc notification.NotificationService) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
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
	mux.HandleFunc(tasks.TypeSendReminder, handleReminderTask(repo, notifSvc))

	go monitorRedisConnection()

	go func() {
		log.Println("[ReminderWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ReminderWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ReminderWorker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

// handleReminderTask re-reads the appointment before sending: reschedules
// enqueue a fresh task, so a task whose fire date no longer matches the
// stored date is stale and gets dropped, as does anything no longer
// scheduled.
func handleReminderTask(repo appointmentRepo.AppointmentRepository, notifSvc notification.NotificationService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ReminderHandler] invalid payload: %v", err)
			return err
		}

		appt, err := repo.GetByID(ctx, p.AppointmentID)
		if err != nil {
			if err == appointmentRepo.ErrNotFound {
				return nil
			}
			return err
		}
		if appt.AppointmentStatus != models.StatusScheduled || appt.AppointmentDate == nil {
			return nil
		}
		if appt.AppointmentDate.Format(time.RFC3339) != p.FireDate {
			log.Printf("[ReminderHandler] stale reminder for %s, dropping", p.AppointmentID)
			return nil
		}

		when := appt.AppointmentDate.Format("January 2, 2006 at 3:04 PM")
		msg := fmt.Sprintf("Reminder: your consultation %s is tomorrow, %s (%s).",
			appt.ControlNumber, when, appt.ApptType)
		if err := notifSvc.Notify(ctx, appt.ApplicantID, msg, models.NotifAppointmentReminder, appt.ID); err != nil {
			log.Printf("[ReminderHandler] failed to notify applicant: %v", err)
			return err
		}
		if appt.AssignedLawyer != "" {
			lawyerMsg := fmt.Sprintf("Reminder: consultation %s is tomorrow, %s (%s).",
				appt.ControlNumber, when, appt.ApptType)
			if err := notifSvc.Notify(ctx, appt.AssignedLawyer, lawyerMsg, models.NotifAppointmentReminder, appt.ID); err != nil {
				log.Printf("[ReminderHandler] failed to notify lawyer: %v", err)
			}
		}
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[ReminderWorker] redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
