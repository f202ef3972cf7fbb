package handlers

import (
	"net/http"

	"curabot/middleware"
	"curabot/models"
	"curabot/services/booking"
	"curabot/utils"

	"github.com/gin-gonic/gin"
)

type AppointmentHandler struct {
	Service booking.BookingService
}

// BookHandler handles POST /api/appointments/book.
func (h *AppointmentHandler) BookHandler(c *gin.Context) {
	var in models.BookingInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}
	date, err := utils.ParseCalendarDate(in.Date)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid date", in.Date)
		return
	}
	patientID, _ := middleware.CurrentUser(c)
	appt, err := h.Service.Book(c.Request.Context(), patientID, in.DoctorID, date, in.Time)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Appointment booked successfully", "appointment": appt})
}

func (h *AppointmentHandler) ListAllHandler(c *gin.Context) {
	appts, err := h.Service.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, appts)
}

func (h *AppointmentHandler) ListMineHandler(c *gin.Context) {
	patientID, _ := middleware.CurrentUser(c)
	appts, err := h.Service.ListForPatient(c.Request.Context(), patientID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, appts)
}

// CancelHandler handles PATCH /api/appointments/cancel/:id for the owner or an admin.
func (h *AppointmentHandler) CancelHandler(c *gin.Context) {
	userID, role := middleware.CurrentUser(c)
	if err := h.Service.Cancel(c.Request.Context(), userID, role, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Appointment cancelled successfully"})
}
