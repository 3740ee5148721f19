package handlers

import (
	"errors"
	"net/http"

	"lexaid/middleware"
	"lexaid/services/user"
	"lexaid/utils"

	"github.com/gin-gonic/gin"
)

// AuthHandler serves registration and sign-in endpoints.
type AuthHandler struct {
	Users user.UserService
}

func NewAuthHandler(users user.UserService) *AuthHandler {
	return &AuthHandler{Users: users}
}

// RegisterHandler creates a client account and signs it in.
func (h *AuthHandler) RegisterHandler(c *gin.Context) {
	var req user.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	resp, err := h.Users.Register(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// LoginHandler authenticates credentials and issues a token.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	resp, err := h.Users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		var disabled user.AccountDisabledError
		if errors.As(err, &disabled) {
			respondServiceError(c, err)
			return
		}
		// Credential failures stay 401 regardless of cause.
		utils.JSONError(c, http.StatusUnauthorized, "Authentication failed", "invalid email or password")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SignOutHandler revokes the caller's token.
func (h *AuthHandler) SignOutHandler(c *gin.Context) {
	acct, ok := middleware.CurrentUser(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Unauthorized", "authentication required")
		return
	}
	if err := h.Users.SignOut(c.Request.Context(), acct.ID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "signed out"})
}

// ChangePasswordHandler rotates the caller's password.
func (h *AuthHandler) ChangePasswordHandler(c *gin.Context) {
	acct, ok := middleware.CurrentUser(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Unauthorized", "authentication required")
		return
	}
	var req struct {
		CurrentPassword string `json:"currentPassword" binding:"required"`
		NewPassword     string `json:"newPassword" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	if err := h.Users.ChangePassword(c.Request.Context(), acct.ID, req.CurrentPassword, req.NewPassword); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Password change failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "password changed, please sign in again"})
}
