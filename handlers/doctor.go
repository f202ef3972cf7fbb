package handlers

import (
	"net/http"

	"curabot/middleware"
	"curabot/models"
	"curabot/services/doctor"
	"curabot/utils"

	"github.com/gin-gonic/gin"
)

type DoctorHandler struct {
	Service   doctor.DoctorService
	Summaries PatientSummarizer
}

func (h *DoctorHandler) ListDoctorsHandler(c *gin.Context) {
	doctors, err := h.Service.ListDoctors(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, doctors)
}

// GetDoctorHandler handles GET /api/doctors/:id where id is the doctor's user id.
func (h *DoctorHandler) GetDoctorHandler(c *gin.Context) {
	doc, err := h.Service.GetDoctorByUserID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

func (h *DoctorHandler) AddDoctorHandler(c *gin.Context) {
	var in models.DoctorInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}
	doc, err := h.Service.AddDoctor(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Doctor added successfully", "doctor": doc})
}

func (h *DoctorHandler) UpdateDoctorHandler(c *gin.Context) {
	var in models.DoctorInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}
	doc, err := h.Service.UpdateDoctor(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Doctor updated successfully", "doctor": doc})
}

func (h *DoctorHandler) DeleteDoctorHandler(c *gin.Context) {
	if err := h.Service.DeleteDoctor(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Doctor deleted successfully"})
}

func (h *DoctorHandler) TodayAppointmentsHandler(c *gin.Context) {
	userID, _ := middleware.CurrentUser(c)
	appts, err := h.Service.TodayAppointments(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, appts)
}

// AppointmentsByDateHandler handles GET /api/doctors/appointments?date=YYYY-MM-DD.
func (h *DoctorHandler) AppointmentsByDateHandler(c *gin.Context) {
	userID, _ := middleware.CurrentUser(c)
	appts, err := h.Service.AppointmentsByDate(c.Request.Context(), userID, c.Query("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, appts)
}

func (h *DoctorHandler) PatientSummaryHandler(c *gin.Context) {
	userID, _ := middleware.CurrentUser(c)
	summary, err := h.Summaries.PatientSummary(c.Request.Context(), userID, c.Param("appointmentId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
