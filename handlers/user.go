package handlers

import (
	"net/http"

	"lexaid/middleware"
	"lexaid/services/user"
	"lexaid/utils"

	"github.com/gin-gonic/gin"
)

// UserHandler serves profile and account endpoints.
type UserHandler struct {
	Users user.UserService
}

func NewUserHandler(users user.UserService) *UserHandler {
	return &UserHandler{Users: users}
}

// GetProfileHandler returns the authenticated account's profile.
func (h *UserHandler) GetProfileHandler(c *gin.Context) {
	acct, ok := middleware.CurrentUser(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Unauthorized", "authentication required")
		return
	}
	profile, err := h.Users.GetUserByID(c.Request.Context(), acct.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateProfileHandler updates the authenticated account's profile fields.
func (h *UserHandler) UpdateProfileHandler(c *gin.Context) {
	acct, ok := middleware.CurrentUser(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Unauthorized", "authentication required")
		return
	}
	var req user.ProfileUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	updated, err := h.Users.UpdateProfile(c.Request.Context(), acct.ID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// ListLawyersHandler returns the active lawyers for assignment pickers.
func (h *UserHandler) ListLawyersHandler(c *gin.Context) {
	lawyers, err := h.Users.ListLawyers(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"lawyers": lawyers})
}
