package handlers

import (
	"errors"
	"net/http"

	"curabot/services/booking"
	"curabot/services/doctor"
	ai "curabot/services/intelligence"
	"curabot/services/user"
	"curabot/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// statusFor maps a service error to the HTTP status it is reported with.
var statusFor = []struct {
	err    error
	status int
}{
	{booking.ErrDoctorNotFound, http.StatusNotFound},
	{booking.ErrAppointmentNotFound, http.StatusNotFound},
	{booking.ErrScheduleNotFound, http.StatusNotFound},
	{booking.ErrDayNotFound, http.StatusNotFound},
	{booking.ErrSlotUnavailable, http.StatusConflict},
	{booking.ErrBookedSlotRemoved, http.StatusConflict},
	{booking.ErrScheduleContention, http.StatusConflict},
	{booking.ErrUnauthorized, http.StatusForbidden},
	{booking.ErrNoScheduleForDate, http.StatusBadRequest},
	{booking.ErrInvalidInput, http.StatusBadRequest},

	{doctor.ErrDoctorNotFound, http.StatusNotFound},
	{doctor.ErrDoctorProfileNotFound, http.StatusNotFound},
	{doctor.ErrDoctorExists, http.StatusConflict},
	{doctor.ErrInvalidDoctorUser, http.StatusBadRequest},
	{doctor.ErrDateRequired, http.StatusBadRequest},
	{doctor.ErrInvalidDate, http.StatusBadRequest},

	{user.ErrUserExists, http.StatusBadRequest},
	{user.ErrInvalidCredentials, http.StatusBadRequest},
	{user.ErrMissingFields, http.StatusBadRequest},
	{user.ErrInvalidRole, http.StatusBadRequest},
	{user.ErrUserNotFound, http.StatusNotFound},

	{ai.ErrAppointmentNotFound, http.StatusNotFound},
	{ai.ErrPatientNotFound, http.StatusNotFound},
	{ai.ErrNoChatHistory, http.StatusNotFound},
	{ai.ErrNoChatMessages, http.StatusNotFound},
	{ai.ErrNotDoctorsPatient, http.StatusForbidden},
	{ai.ErrSummaryUnavailable, http.StatusBadGateway},
}

func errorStatus(err error) int {
	for _, m := range statusFor {
		if errors.Is(err, m.err) {
			return m.status
		}
	}
	return http.StatusInternalServerError
}

// respondError writes err with its mapped status. Internal errors are not echoed to the client.
func respondError(c *gin.Context, err error) {
	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		utils.GetLogger().Error("Request failed", zap.String("path", c.FullPath()), zap.Error(err))
		utils.JSONError(c, status, "Server Error", "")
		c.Abort()
		return
	}
	utils.JSONError(c, status, capitalize(err.Error()), "")
	c.Abort()
}

func capitalize(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
