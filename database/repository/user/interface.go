package userRepo

import (
	"context"

	"lexaid/models"

	"go.mongodb.org/mongo-driver/bson"
)

// UserRepository defines data access for portal accounts.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByIDWithProjection(ctx context.Context, id string, projection bson.M) (*models.User, error)
	// GetByEmail returns (nil, nil) when no account exists for the email.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetAllSafe(ctx context.Context) ([]models.User, error)
	// ListByRole returns active users holding the given role.
	ListByRole(ctx context.Context, role string) ([]models.User, error)
	UpdateFields(ctx context.Context, id string, fields bson.M) error
}
