package handlers

import (
	"net/http"
	"strconv"

	auditRepo "lexaid/database/repository/audit"
	"lexaid/middleware"
	"lexaid/services/user"
	"lexaid/utils"

	"github.com/gin-gonic/gin"
)

// AdminHandler serves account administration and audit trail endpoints.
type AdminHandler struct {
	Users user.UserService
	Audit auditRepo.AuditRepository
}

func NewAdminHandler(users user.UserService, audit auditRepo.AuditRepository) *AdminHandler {
	return &AdminHandler{Users: users, Audit: audit}
}

// GetAllUsersHandler lists every account without credential fields.
func (h *AdminHandler) GetAllUsersHandler(c *gin.Context) {
	users, err := h.Users.GetAllUsers(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// CreateStaffAccountHandler registers a staff account.
func (h *AdminHandler) CreateStaffAccountHandler(c *gin.Context) {
	actor, _ := middleware.CurrentUser(c)
	var req struct {
		user.RegisterInput
		Role string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	acct, err := h.Users.CreateStaffAccount(c.Request.Context(), actor, req.RegisterInput, req.Role)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, acct)
}

// SetRoleHandler changes an account's member type.
func (h *AdminHandler) SetRoleHandler(c *gin.Context) {
	actor, _ := middleware.CurrentUser(c)
	var req struct {
		Role string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	acct, err := h.Users.SetRole(c.Request.Context(), actor, c.Param("id"), req.Role)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, acct)
}

// SetStatusHandler activates or deactivates an account.
func (h *AdminHandler) SetStatusHandler(c *gin.Context) {
	actor, _ := middleware.CurrentUser(c)
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	acct, err := h.Users.SetStatus(c.Request.Context(), actor, c.Param("id"), req.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, acct)
}

// AuditTrailHandler returns the audit records for one resource.
func (h *AdminHandler) AuditTrailHandler(c *gin.Context) {
	resource := c.Param("resource")
	if resource != "appointment" && resource != "user" {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", "resource must be appointment or user")
		return
	}
	records, err := h.Audit.ListForResource(c.Request.Context(), resource, c.Param("id"), 200)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": records})
}

// RecentAuditHandler returns the most recent audit records across resources.
func (h *AdminHandler) RecentAuditHandler(c *gin.Context) {
	limit := int64(100)
	if limitStr := c.Query("limit"); limitStr != "" {
		parsed, err := strconv.ParseInt(limitStr, 10, 64)
		if err != nil || parsed <= 0 || parsed > 500 {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request", "limit must be between 1 and 500")
			return
		}
		limit = parsed
	}
	records, err := h.Audit.ListRecent(c.Request.Context(), limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": records})
}
