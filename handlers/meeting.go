package handlers

import (
	"net/http"

	"lexaid/middleware"
	"lexaid/models"
	"lexaid/services/appointment"
	"lexaid/services/meeting"
	"lexaid/utils"

	"github.com/gin-gonic/gin"
)

// MeetingHandler serves the embedded meeting room endpoints.
type MeetingHandler struct {
	Appointments appointment.AppointmentService
}

func NewMeetingHandler(appts appointment.AppointmentService) *MeetingHandler {
	return &MeetingHandler{Appointments: appts}
}

// RoomTokenHandler mints a short-lived token for the embedded meeting view.
// Visibility rules from the appointment query layer apply, so clients can
// only join their own consultations.
func (h *MeetingHandler) RoomTokenHandler(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Unauthorized", "authentication required")
		return
	}

	appt, err := h.Appointments.Get(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if appt.AppointmentStatus != models.StatusScheduled || appt.ApptType != models.ApptTypeOnline {
		utils.JSONError(c, http.StatusConflict, "No meeting room", "the appointment is not a scheduled online consultation")
		return
	}

	token, err := meeting.GenerateRoomToken(appt.ID, actor.ID, actor.FullName())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"roomToken":   token,
		"meetingLink": appt.MeetingLink,
	})
}
