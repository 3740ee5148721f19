package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"lexaid/config"
	"lexaid/models"

	"github.com/hibiken/asynq"
)

const TypeSendReminder = "reminder:send"

// ReminderLead is how long before the appointment the reminder fires.
const ReminderLead = 24 * time.Hour

// NewReminderTask builds the asynq task for one appointment reminder.
func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSendReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}

// AsynqReminderScheduler enqueues appointment reminders on the reminder
// queue. Rescheduling enqueues a fresh task; the handler drops tasks whose
// fire date no longer matches the appointment.
type AsynqReminderScheduler struct {
	client *asynq.Client
}

func NewAsynqReminderScheduler() *AsynqReminderScheduler {
	return &AsynqReminderScheduler{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisReminderQueueDB,
		}),
	}
}

// ScheduleReminder enqueues one reminder to fire ReminderLead before the
// appointment date. Appointments closer than the lead get no reminder.
func (s *AsynqReminderScheduler) ScheduleReminder(ctx context.Context, appt models.Appointment) error {
	if appt.AppointmentDate == nil {
		return fmt.Errorf("reminder: appointment %s has no date", appt.ID)
	}
	fireAt := appt.AppointmentDate.Add(-ReminderLead)
	if fireAt.Before(time.Now()) {
		return nil
	}

	payload := models.ReminderPayload{
		AppointmentID: appt.ID,
		FireDate:      appt.AppointmentDate.Format(time.RFC3339),
	}
	task, opts, err := NewReminderTask(payload, fireAt)
	if err != nil {
		return fmt.Errorf("reminder: %w", err)
	}
	if _, err := s.client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("reminder: enqueue failed: %w", err)
	}
	return nil
}

// Close releases the queue client.
func (s *AsynqReminderScheduler) Close() error {
	return s.client.Close()
}
