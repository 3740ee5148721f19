package handlers

import (
	"net/http"
	"strconv"

	notificationRepo "lexaid/database/repository/notification"
	"lexaid/middleware"
	"lexaid/utils"

	"github.com/gin-gonic/gin"
)

// NotificationHandler serves the in-app notification feed.
type NotificationHandler struct {
	Repo notificationRepo.NotificationRepository
}

func NewNotificationHandler(repo notificationRepo.NotificationRepository) *NotificationHandler {
	return &NotificationHandler{Repo: repo}
}

// ListHandler returns the caller's notifications, newest first.
func (h *NotificationHandler) ListHandler(c *gin.Context) {
	acct, ok := middleware.CurrentUser(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Unauthorized", "authentication required")
		return
	}
	limit := int64(50)
	if limitStr := c.Query("limit"); limitStr != "" {
		parsed, err := strconv.ParseInt(limitStr, 10, 64)
		if err != nil || parsed <= 0 || parsed > 200 {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request", "limit must be between 1 and 200")
			return
		}
		limit = parsed
	}
	items, err := h.Repo.ListForUser(c.Request.Context(), acct.ID, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	unread, err := h.Repo.CountUnread(c.Request.Context(), acct.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": items, "unread": unread})
}

// MarkReadHandler flips the read flag on one of the caller's notifications.
func (h *NotificationHandler) MarkReadHandler(c *gin.Context) {
	acct, ok := middleware.CurrentUser(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Unauthorized", "authentication required")
		return
	}
	if err := h.Repo.MarkRead(c.Request.Context(), c.Param("id"), acct.ID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "read"})
}
