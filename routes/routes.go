package routes

import (
	"net/http"
	"time"

	"curabot/handlers"
	"curabot/middleware"
	"curabot/models"
	"curabot/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterAuthRoutes registers registration, login and identity endpoints.
func RegisterAuthRoutes(r *gin.RouterGroup, hb *handlers.HandlerBundle) {
	api := r.Group("/auth")
	{
		api.POST("/register", middleware.OptionalJWTAuth(), hb.Auth.RegisterHandler)
		api.POST("/login", hb.Auth.LoginHandler)
		api.GET("/me", middleware.JWTAuthMiddleware(), hb.Auth.MeHandler)
	}
}

// RegisterDoctorRoutes registers the public roster and the doctor dashboard.
func RegisterDoctorRoutes(r *gin.RouterGroup, hb *handlers.HandlerBundle) {
	api := r.Group("/doctors")
	{
		api.GET("", hb.Doctors.ListDoctorsHandler)

		dashboard := api.Group("")
		dashboard.Use(middleware.JWTAuthMiddleware(), middleware.Authorize(models.RoleDoctor))
		dashboard.GET("/appointments/today", hb.Doctors.TodayAppointmentsHandler)
		dashboard.GET("/appointments", hb.Doctors.AppointmentsByDateHandler)
		dashboard.GET("/appointment/:appointmentId/patient-summary", hb.Doctors.PatientSummaryHandler)

		api.GET("/:id", hb.Doctors.GetDoctorHandler)
	}
}

// RegisterAdminRoutes registers roster management for admins.
func RegisterAdminRoutes(r *gin.RouterGroup, hb *handlers.HandlerBundle) {
	api := r.Group("/admin")
	{
		api.Use(middleware.JWTAuthMiddleware(), middleware.Authorize(models.RoleAdmin))
		api.POST("/doctors/add", hb.Doctors.AddDoctorHandler)
		api.PATCH("/doctors/update/:id", hb.Doctors.UpdateDoctorHandler)
		api.DELETE("/doctors/delete/:id", hb.Doctors.DeleteDoctorHandler)
	}
}

// RegisterScheduleRoutes registers availability endpoints.
func RegisterScheduleRoutes(r *gin.RouterGroup, hb *handlers.HandlerBundle) {
	api := r.Group("/schedule")
	{
		doctorOnly := []gin.HandlerFunc{middleware.JWTAuthMiddleware(), middleware.Authorize(models.RoleDoctor)}
		api.POST("", append(doctorOnly, hb.Schedule.SetAvailabilityHandler)...)
		api.PATCH("", append(doctorOnly, hb.Schedule.UpdateAvailabilityHandler)...)
		api.GET("/:doctorId", hb.Schedule.GetAvailabilityHandler)
	}
}

// RegisterAppointmentRoutes registers booking, listing and cancellation.
func RegisterAppointmentRoutes(r *gin.RouterGroup, hb *handlers.HandlerBundle) {
	api := r.Group("/appointments")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.POST("/book", middleware.Authorize(models.RolePatient), hb.Appointments.BookHandler)
		api.GET("/all", middleware.Authorize(models.RoleAdmin, models.RoleDoctor), hb.Appointments.ListAllHandler)
		api.GET("/my", middleware.Authorize(models.RolePatient), hb.Appointments.ListMineHandler)
		api.PATCH("/cancel/:id", hb.Appointments.CancelHandler)
	}
}

// RegisterAIRoutes registers the chatbot endpoint.
func RegisterAIRoutes(r *gin.RouterGroup, hb *handlers.HandlerBundle) {
	r.POST("/ai/chatbot", hb.Chatbot.RespondHandler)
}

// RegisterHealthRoute registers the health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":       "ok",
			"message":      "Hi, I'm CuraBot",
			"dependencies": utils.GetHealthStatus(),
		})
	})
}

// RegisterMetricsRoute exposes the Prometheus registry.
func RegisterMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	RegisterAuthRoutes(api, hb)
	RegisterDoctorRoutes(api, hb)
	RegisterAdminRoutes(api, hb)
	RegisterScheduleRoutes(api, hb)
	RegisterAppointmentRoutes(api, hb)
	RegisterAIRoutes(api, hb)
	RegisterHealthRoute(r)
	RegisterMetricsRoute(r)
}
