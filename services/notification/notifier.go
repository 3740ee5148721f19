package notification

import (
	"context"
	"fmt"
	"time"

	notificationRepo "lexaid/database/repository/notification"
	userRepo "lexaid/database/repository/user"
	"lexaid/models"
	"lexaid/utils"

	"firebase.google.com/go/v4/messaging"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// DefaultNotificationService persists notification documents and mirrors
// them as FCM pushes when the recipient has a registered device token.
type DefaultNotificationService struct {
	Repo  notificationRepo.NotificationRepository
	Users userRepo.UserRepository
}

func NewDefaultNotificationService(repo notificationRepo.NotificationRepository, users userRepo.UserRepository) (*DefaultNotificationService, error) {
	if repo == nil || users == nil {
		return nil, fmt.Errorf("notification service initialization error: repository is nil")
	}
	return &DefaultNotificationService{Repo: repo, Users: users}, nil
}

// Notify appends one notification document. The document write is the
// acknowledged effect; the push mirror never fails the call.
func (s *DefaultNotificationService) Notify(ctx context.Context, userID, message, kind, relatedID string) error {
	doc := &models.Notification{
		ID:        uuid.New().String(),
		UserID:    userID,
		Message:   message,
		Type:      kind,
		RelatedID: relatedID,
		Read:      false,
		CreatedAt: time.Now(),
	}
	if err := s.Repo.Create(ctx, doc); err != nil {
		return fmt.Errorf("notify: %w", err)
	}

	s.push(ctx, userID, message, kind, relatedID)
	return nil
}

// push sends a best-effort FCM mirror of the notification document.
func (s *DefaultNotificationService) push(ctx context.Context, userID, message, kind, relatedID string) {
	if utils.FCMClient == nil {
		return
	}
	u, err := s.Users.GetByIDWithProjection(ctx, userID, bson.M{"fcmToken": 1})
	if err != nil || u.FCMToken == "" {
		return
	}

	msg := &messaging.Message{
		Token: u.FCMToken,
		Notification: &messaging.Notification{
			Title: pushTitle(kind),
			Body:  message,
		},
		Data: map[string]string{
			"type":      kind,
			"relatedId": relatedID,
		},
	}
	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		utils.GetLogger().Warn("push delivery failed",
			zap.String("userID", userID), zap.String("kind", kind), zap.Error(err))
	}
}

func pushTitle(kind string) string {
	switch kind {
	case models.NotifAppointmentApproved:
		return "Consultation approved"
	case models.NotifAppointmentDenied:
		return "Consultation update"
	case models.NotifAppointmentScheduled:
		return "Consultation scheduled"
	case models.NotifAppointmentMoved:
		return "Consultation rescheduled"
	case models.NotifAppointmentDone:
		return "Consultation completed"
	case models.NotifAppointmentReminder:
		return "Consultation reminder"
	default:
		return "Legal aid portal"
	}
}
