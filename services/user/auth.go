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

// authTokenTTL bounds how long an issued token stays valid. The Redis auth
// cache holds the token hash for a shorter window; after it expires the
// middleware falls back to the stored hash.
const authTokenTTL = 72 * time.Hour

// Register creates a self-service client account and signs it in.
func (s *DefaultUserService) Register(ctx context.Context, in RegisterInput) (*AuthResponse, error) {
	if in.Email == "" || in.Password == "" || in.FirstName == "" || in.LastName == "" {
		return nil, fmt.Errorf("email, password and full name are required")
	}
	if err := VerifyPasswordComplexity(in.Password); err != nil {
		return nil, err
	}

	existing, err := s.Repo.GetByEmail(ctx, in.Email)
	if err != nil {
		utils.GetLogger().Error("Register: duplicate check failed", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}
	if existing != nil {
		return nil, DuplicateEmailError{Email: in.Email}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.GetLogger().Error("Register: failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	now := time.Now()
	acct := models.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: string(hashed),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		City:         in.City,
		MemberType:   models.RoleClient,
		UserStatus:   models.UserActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Repo.Create(ctx, &acct); err != nil {
		utils.GetLogger().Error("Register: failed to create account", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	return s.issueToken(ctx, &acct)
}

// Authenticate verifies credentials and issues a fresh token, rotating the
// stored token hash so earlier tokens stop working.
func (s *DefaultUserService) Authenticate(ctx context.Context, email, password string) (*AuthResponse, error) {
	acct, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		utils.GetLogger().Error("Authenticate: failed to fetch account", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	if acct == nil {
		return nil, fmt.Errorf("invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid email or password")
	}
	if acct.UserStatus != models.UserActive {
		return nil, AccountDisabledError{Email: acct.Email}
	}
	return s.issueToken(ctx, acct)
}

// issueToken generates a JWT, persists its hash on the account, and primes
// the auth cache so the middleware can validate without a DB read.
func (s *DefaultUserService) issueToken(ctx context.Context, acct *models.User) (*AuthResponse, error) {
	token, err := utils.GenerateToken(acct.ID, acct.Email, authTokenTTL)
	if err != nil {
		utils.GetLogger().Error("issueToken: failed to sign token", zap.String("userID", acct.ID), zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	tokenHash := utils.HashToken(token)

	if err := s.Repo.UpdateFields(ctx, acct.ID, bson.M{
		"tokenHash": tokenHash,
		"updatedAt": time.Now(),
	}); err != nil {
		return nil, fmt.Errorf("authentication failed, please try again")
	}

	cache := utils.GetAuthCacheClient()
	cacheKey := utils.AuthCachePrefix + acct.ID
	if err := cache.Set(ctx, cacheKey, tokenHash, utils.AuthCacheTTL).Err(); err != nil {
		// The middleware falls back to the stored hash.
		utils.GetLogger().Warn("issueToken: failed to prime auth cache", zap.String("userID", acct.ID), zap.Error(err))
	}

	return &AuthResponse{
		ID:         acct.ID,
		Token:      token,
		Email:      acct.Email,
		FirstName:  acct.FirstName,
		LastName:   acct.LastName,
		MemberType: acct.MemberType,
	}, nil
}

// SignOut revokes the current token by clearing both the stored hash and the
// cache entry.
func (s *DefaultUserService) SignOut(ctx context.Context, userID string) error {
	if err := s.Repo.UpdateFields(ctx, userID, bson.M{
		"tokenHash": "",
		"updatedAt": time.Now(),
	}); err != nil {
		return fmt.Errorf("sign out failed: %w", err)
	}
	cache := utils.GetAuthCacheClient()
	if err := cache.Del(ctx, utils.AuthCachePrefix+userID).Err(); err != nil {
		utils.GetLogger().Warn("SignOut: failed to clear auth cache", zap.String("userID", userID), zap.Error(err))
	}
	return nil
}

// ChangePassword rotates the password after verifying the current one, then
// revokes the active token so every session re-authenticates.
func (s *DefaultUserService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	acct, err := s.Repo.GetByIDWithProjection(ctx, userID, bson.M{})
	if err != nil {
		return fmt.Errorf("password change failed: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(currentPassword)); err != nil {
		return fmt.Errorf("current password is incorrect")
	}
	if err := VerifyPasswordComplexity(newPassword); err != nil {
		return err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		utils.GetLogger().Error("ChangePassword: failed to hash password", zap.Error(err))
		return fmt.Errorf("password change failed, please try again")
	}
	if err := s.Repo.UpdateFields(ctx, userID, bson.M{
		"passwordHash": string(hashed),
		"updatedAt":    time.Now(),
	}); err != nil {
		return fmt.Errorf("password change failed: %w", err)
	}
	return s.SignOut(ctx, userID)
}
