package handlers

import (
	"net/http"

	"lexaid/middleware"
	"lexaid/services/appointment"
	"lexaid/services/qr"
	"lexaid/utils"

	"github.com/gin-gonic/gin"
)

// QRHandler renders appointment tracking QR codes.
type QRHandler struct {
	Appointments appointment.AppointmentService
}

func NewQRHandler(appts appointment.AppointmentService) *QRHandler {
	return &QRHandler{Appointments: appts}
}

// ControlNumberQRHandler returns the tracking QR code for an appointment as
// a PNG. The confirmation view embeds it for printing.
func (h *QRHandler) ControlNumberQRHandler(c *gin.Context) {
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

	png, err := qr.ControlNumberPNG(appt.ControlNumber, 256)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}
