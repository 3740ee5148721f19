package handlers

import (
	"errors"
	"net/http"

	appointmentRepo "lexaid/database/repository/appointment"
	notificationRepo "lexaid/database/repository/notification"
	userRepo "lexaid/database/repository/user"
	"lexaid/services/appointment"
	"lexaid/services/user"
	"lexaid/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondServiceError maps service-layer errors onto HTTP statuses. Validation
// problems come back as 400, state races and duplicates as 409, everything
// unexpected as a generic 500 so internals never leak to the client.
func respondServiceError(c *gin.Context, err error) {
	var (
		verr     *appointment.ValidationError
		terr     *appointment.TransitionError
		serr     *appointment.SlotUnavailableError
		dupErr   user.DuplicateEmailError
		disabled user.AccountDisabledError
	)
	switch {
	case errors.As(err, &verr):
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", verr.Error())
	case errors.As(err, &terr):
		utils.JSONError(c, http.StatusConflict, "Invalid status transition", terr.Error())
	case errors.As(err, &serr):
		utils.JSONError(c, http.StatusConflict, "Slot unavailable", serr.Error())
	case errors.Is(err, appointmentRepo.ErrSlotTaken):
		utils.JSONError(c, http.StatusConflict, "Slot unavailable", "the selected slot was just taken")
	case errors.Is(err, appointmentRepo.ErrStatusConflict):
		utils.JSONError(c, http.StatusConflict, "Appointment changed", "the appointment was modified by another session, reload and retry")
	case errors.Is(err, appointmentRepo.ErrNotFound), errors.Is(err, userRepo.ErrNotFound), errors.Is(err, notificationRepo.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "Not found", err.Error())
	case errors.As(err, &dupErr):
		utils.JSONError(c, http.StatusConflict, "Duplicate account", dupErr.Error())
	case errors.As(err, &disabled):
		utils.JSONError(c, http.StatusForbidden, "Account deactivated", "this account has been deactivated")
	default:
		getLogger(c).Error("request failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Internal error", "the request could not be completed")
	}
}
