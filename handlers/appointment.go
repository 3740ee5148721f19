package handlers

import (
	"net/http"
	"strconv"
	"time"

	"lexaid/middleware"
	"lexaid/models"
	"lexaid/services/appointment"
	"lexaid/utils"

	"github.com/gin-gonic/gin"
)

// AppointmentHandler serves the appointment lifecycle and query endpoints.
type AppointmentHandler struct {
	Svc appointment.AppointmentService
}

func NewAppointmentHandler(svc appointment.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{Svc: svc}
}

// IntakeHandler registers a new consultation request.
func (h *AppointmentHandler) IntakeHandler(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Unauthorized", "authentication required")
		return
	}
	var req appointment.IntakeInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	// Clients always file for themselves.
	if actor.MemberType == models.RoleClient {
		req.ApplicantID = actor.ID
		if req.ApplicantEmail == "" {
			req.ApplicantEmail = actor.Email
		}
	}

	appt, err := h.Svc.Intake(c.Request.Context(), actor, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, appt)
}

// ApproveHandler moves a pending request to approved.
func (h *AppointmentHandler) ApproveHandler(c *gin.Context) {
	actor, _ := middleware.CurrentUser(c)
	var req appointment.TriageInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	appt, err := h.Svc.Approve(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

// DenyHandler moves a pending request to denied.
func (h *AppointmentHandler) DenyHandler(c *gin.Context) {
	actor, _ := middleware.CurrentUser(c)
	var req appointment.TriageInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	appt, err := h.Svc.Deny(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

// ScheduleHandler books a slot for an approved request.
func (h *AppointmentHandler) ScheduleHandler(c *gin.Context) {
	actor, _ := middleware.CurrentUser(c)
	var req appointment.ScheduleInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	appt, err := h.Svc.Schedule(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

// RescheduleHandler moves a scheduled consultation to a new slot.
func (h *AppointmentHandler) RescheduleHandler(c *gin.Context) {
	actor, _ := middleware.CurrentUser(c)
	var req appointment.RescheduleInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	appt, err := h.Svc.Reschedule(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

// CompleteHandler closes out a scheduled consultation.
func (h *AppointmentHandler) CompleteHandler(c *gin.Context) {
	actor, _ := middleware.CurrentUser(c)
	var req appointment.CompleteInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	appt, err := h.Svc.Complete(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

// GetHandler fetches one appointment, scoped to the caller's role.
func (h *AppointmentHandler) GetHandler(c *gin.Context) {
	actor, _ := middleware.CurrentUser(c)
	appt, err := h.Svc.Get(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

// GetByControlNumberHandler resolves a control number at check-in.
func (h *AppointmentHandler) GetByControlNumberHandler(c *gin.Context) {
	appt, err := h.Svc.GetByControlNumber(c.Request.Context(), c.Param("controlNumber"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

// ListHandler returns a filtered, cursor-paged appointment listing.
func (h *AppointmentHandler) ListHandler(c *gin.Context) {
	actor, _ := middleware.CurrentUser(c)

	filter := models.AppointmentFilter{
		Status:   c.Query("status"),
		Category: c.Query("category"),
		Search:   c.Query("search"),
	}
	page := models.PageRequest{
		Cursor:   c.Query("cursor"),
		SortBy:   c.Query("sortBy"),
		Backward: c.Query("direction") == "backward",
	}
	if sizeStr := c.Query("size"); sizeStr != "" {
		size, err := strconv.ParseInt(sizeStr, 10, 64)
		if err != nil || size <= 0 || size > 100 {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request", "size must be between 1 and 100")
			return
		}
		page.Size = size
	}

	result, err := h.Svc.List(c.Request.Context(), actor, filter, page)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// SelectableDaysHandler lists calendar days still open for booking.
func (h *AppointmentHandler) SelectableDaysHandler(c *gin.Context) {
	actor, _ := middleware.CurrentUser(c)

	from := time.Now()
	if fromStr := c.Query("from"); fromStr != "" {
		parsed, err := time.Parse("2006-01-02", fromStr)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request", "from must be YYYY-MM-DD")
			return
		}
		from = parsed
	}
	days := 60
	if daysStr := c.Query("days"); daysStr != "" {
		parsed, err := strconv.Atoi(daysStr)
		if err != nil || parsed <= 0 || parsed > 180 {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request", "days must be between 1 and 180")
			return
		}
		days = parsed
	}

	result, err := h.Svc.SelectableDays(c.Request.Context(), actor, from, days)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": result})
}

// OpenSlotsHandler lists the bookable times for a lawyer on one day.
func (h *AppointmentHandler) OpenSlotsHandler(c *gin.Context) {
	actor, _ := middleware.CurrentUser(c)

	lawyerID := c.Query("lawyerId")
	if lawyerID == "" {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", "lawyerId is required")
		return
	}
	day, err := time.Parse("2006-01-02", c.Query("day"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", "day must be YYYY-MM-DD")
		return
	}

	slots, err := h.Svc.OpenSlots(c.Request.Context(), actor, lawyerID, day)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"slots": slots})
}
