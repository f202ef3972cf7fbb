package handlers

import (
	"net/http"

	"curabot/middleware"
	"curabot/models"
	"curabot/services/booking"
	"curabot/utils"

	"github.com/gin-gonic/gin"
)

type ScheduleHandler struct {
	Service booking.BookingService
}

// SetAvailabilityHandler handles POST /api/schedule for the calling doctor.
func (h *ScheduleHandler) SetAvailabilityHandler(c *gin.Context) {
	var in models.AvailabilityInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}
	userID, _ := middleware.CurrentUser(c)
	schedule, err := h.Service.SetAvailability(c.Request.Context(), userID, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Doctor availability set successfully", "schedule": schedule})
}

// UpdateAvailabilityHandler handles PATCH /api/schedule; the day must already exist.
func (h *ScheduleHandler) UpdateAvailabilityHandler(c *gin.Context) {
	var in models.AvailabilityInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}
	userID, _ := middleware.CurrentUser(c)
	schedule, err := h.Service.UpdateAvailability(c.Request.Context(), userID, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Doctor availability updated successfully", "schedule": schedule})
}

func (h *ScheduleHandler) GetAvailabilityHandler(c *gin.Context) {
	schedule, err := h.Service.GetAvailability(c.Request.Context(), c.Param("doctorId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, schedule)
}
