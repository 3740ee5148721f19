package user

import (
	"context"
	"fmt"
	"time"

	"lexaid/models"
	"lexaid/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func validRole(role string) bool {
	switch role {
	case models.RoleClient, models.RoleLawyer, models.RoleAdmin, models.RoleFrontdesk, models.RoleHead:
		return true
	}
	return false
}

// CreateStaffAccount registers an account with a staff role. Only admins call
// this; the role gate lives in the route layer, this re-checks the role value.
func (s *DefaultUserService) CreateStaffAccount(ctx context.Context, actor models.User, in RegisterInput, role string) (*models.User, error) {
	if !validRole(role) || role == models.RoleClient {
		return nil, fmt.Errorf("invalid staff role %q", role)
	}
	if in.Email == "" || in.Password == "" || in.FirstName == "" || in.LastName == "" {
		return nil, fmt.Errorf("email, password and full name are required")
	}
	if err := VerifyPasswordComplexity(in.Password); err != nil {
		return nil, err
	}

	existing, err := s.Repo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, fmt.Errorf("staff account creation failed: %w", err)
	}
	if existing != nil {
		return nil, DuplicateEmailError{Email: in.Email}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.GetLogger().Error("CreateStaffAccount: failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("staff account creation failed, please try again")
	}

	now := time.Now()
	acct := models.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: string(hashed),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		City:         in.City,
		MemberType:   role,
		UserStatus:   models.UserActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Repo.Create(ctx, &acct); err != nil {
		return nil, fmt.Errorf("staff account creation failed: %w", err)
	}

	s.auditUser(ctx, actor, acct.ID, map[string]any{"created": true, "memberType": role})
	acct.PasswordHash = ""
	return &acct, nil
}

// SetRole changes an account's member type.
func (s *DefaultUserService) SetRole(ctx context.Context, actor models.User, userID, role string) (*models.User, error) {
	if !validRole(role) {
		return nil, fmt.Errorf("invalid role %q", role)
	}
	if err := s.Repo.UpdateFields(ctx, userID, bson.M{
		"memberType": role,
		"updatedAt":  time.Now(),
	}); err != nil {
		return nil, fmt.Errorf("role update failed: %w", err)
	}
	s.auditUser(ctx, actor, userID, map[string]any{"memberType": role})
	return s.Repo.GetByID(ctx, userID)
}

// SetStatus activates or deactivates an account. Deactivation also revokes
// the active token; accounts are never hard-deleted.
func (s *DefaultUserService) SetStatus(ctx context.Context, actor models.User, userID, status string) (*models.User, error) {
	if status != models.UserActive && status != models.UserInactive {
		return nil, fmt.Errorf("invalid status %q", status)
	}
	if err := s.Repo.UpdateFields(ctx, userID, bson.M{
		"userStatus": status,
		"updatedAt":  time.Now(),
	}); err != nil {
		return nil, fmt.Errorf("status update failed: %w", err)
	}
	if status == models.UserInactive {
		if err := s.SignOut(ctx, userID); err != nil {
			utils.GetLogger().Warn("SetStatus: failed to revoke token", zap.String("userID", userID), zap.Error(err))
		}
	}
	s.auditUser(ctx, actor, userID, map[string]any{"userStatus": status})
	return s.Repo.GetByID(ctx, userID)
}

// auditUser appends one account-change record; failures are logged, not
// surfaced.
func (s *DefaultUserService) auditUser(ctx context.Context, actor models.User, userID string, changes map[string]any) {
	rec := &models.AuditRecord{
		ID:         uuid.New().String(),
		ActorID:    actor.ID,
		Action:     models.AuditUserUpdate,
		Resource:   "user",
		ResourceID: userID,
		Changes:    changes,
		Timestamp:  time.Now(),
	}
	if err := s.Audit.Append(ctx, rec); err != nil {
		utils.GetLogger().Warn("audit append failed",
			zap.String("resourceID", userID), zap.Error(err))
	}
}
