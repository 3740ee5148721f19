package user

import (
	"context"
	"fmt"
	"time"

	"lexaid/models"

	"go.mongodb.org/mongo-driver/bson"
)

// GetUserByID returns the account without credential fields.
func (s *DefaultUserService) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return s.Repo.GetByID(ctx, id)
}

// UpdateProfile applies the non-empty profile fields for the account.
func (s *DefaultUserService) UpdateProfile(ctx context.Context, userID string, in ProfileUpdate) (*models.User, error) {
	fields := bson.M{}
	if in.FirstName != "" {
		fields["firstName"] = in.FirstName
	}
	if in.LastName != "" {
		fields["lastName"] = in.LastName
	}
	if in.City != "" {
		fields["city"] = in.City
	}
	if in.ProfilePhoto != "" {
		fields["profilePhoto"] = in.ProfilePhoto
	}
	if in.FCMToken != "" {
		fields["fcmToken"] = in.FCMToken
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("no profile fields to update")
	}
	fields["updatedAt"] = time.Now()

	if err := s.Repo.UpdateFields(ctx, userID, fields); err != nil {
		return nil, fmt.Errorf("profile update failed: %w", err)
	}
	return s.Repo.GetByID(ctx, userID)
}

// ListLawyers returns the active lawyer accounts, for assignment pickers and
// the open-slot views.
func (s *DefaultUserService) ListLawyers(ctx context.Context) ([]models.User, error) {
	return s.Repo.ListByRole(ctx, models.RoleLawyer)
}

// GetAllUsers returns every account without credential fields.
func (s *DefaultUserService) GetAllUsers(ctx context.Context) ([]models.User, error) {
	return s.Repo.GetAllSafe(ctx)
}
