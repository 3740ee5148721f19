package user

import (
	"context"

	auditRepo "lexaid/database/repository/audit"
	userRepo "lexaid/database/repository/user"
	"lexaid/models"
)

// RegisterInput carries the fields of a self-service client registration.
type RegisterInput struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	City      string `json:"city,omitempty"`
}

// ProfileUpdate carries the self-editable profile fields. Zero values are
// left untouched.
type ProfileUpdate struct {
	FirstName    string `json:"firstName,omitempty"`
	LastName     string `json:"lastName,omitempty"`
	City         string `json:"city,omitempty"`
	ProfilePhoto string `json:"profilePhoto,omitempty"`
	FCMToken     string `json:"fcmToken,omitempty"`
}

type UserService interface {
	// Registration and authentication
	Register(ctx context.Context, in RegisterInput) (*AuthResponse, error)
	Authenticate(ctx context.Context, email, password string) (*AuthResponse, error)
	SignOut(ctx context.Context, userID string) error
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error

	// Account management
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID string, in ProfileUpdate) (*models.User, error)
	ListLawyers(ctx context.Context) ([]models.User, error)

	// Admin
	GetAllUsers(ctx context.Context) ([]models.User, error)
	CreateStaffAccount(ctx context.Context, actor models.User, in RegisterInput, role string) (*models.User, error)
	SetRole(ctx context.Context, actor models.User, userID, role string) (*models.User, error)
	SetStatus(ctx context.Context, actor models.User, userID, status string) (*models.User, error)
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo  userRepo.UserRepository
	Audit auditRepo.AuditRepository
}

// AuthResponse contains the account details handed back after a successful
// registration or sign-in.
type AuthResponse struct {
	ID         string `json:"id"`
	Token      string `json:"token"`
	Email      string `json:"email"`
	FirstName  string `json:"firstName,omitempty"`
	LastName   string `json:"lastName,omitempty"`
	MemberType string `json:"memberType"`
}
