package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"curabot/config"
	"curabot/cron"
	"curabot/database"
	appointmentRepo "curabot/database/repository/appointment"
	chatRepo "curabot/database/repository/chat"
	doctorRepo "curabot/database/repository/doctor"
	scheduleRepo "curabot/database/repository/schedule"
	userRepoPkg "curabot/database/repository/user"
	"curabot/handlers"
	"curabot/middleware"
	"curabot/routes"
	"curabot/services/booking"
	"curabot/services/doctor"
	ai "curabot/services/intelligence"
	"curabot/services/tasks"
	"curabot/services/user"
	"curabot/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer func() { _ = logger.Sync() }()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		if config.AppConfig.JWTSecret == "" {
			logger.Fatal("JWT_SECRET must be set in production")
		}
	}

	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()

	database.InitDB()
	db := database.Database()

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo(db)
	doctors := doctorRepo.NewMongoDoctorRepo(db)
	schedules := scheduleRepo.NewMongoScheduleRepo(db)
	appointments := appointmentRepo.NewMongoAppointmentRepo(db)
	chats := chatRepo.NewMongoChatRepo(db)

	indexCtx, cancelIndexes := context.WithTimeout(rootCtx, 30*time.Second)
	for name, repo := range map[string]interface {
		EnsureIndexes(context.Context) error
	}{
		"users": userRepo, "doctors": doctors, "schedules": schedules,
		"appointments": appointments, "chats": chats,
	} {
		if err := repo.EnsureIndexes(indexCtx); err != nil {
			logger.Fatal("Failed to ensure indexes", zap.String("collection", name), zap.Error(err))
		}
	}
	cancelIndexes()

	metrics := utils.NewMetrics(prometheus.DefaultRegisterer)

	// Redis-backed pieces: conversation sessions and reminder queue.
	var redisClients []*redis.Client
	var sessions ai.SessionStore
	switch config.AppConfig.SessionBackend {
	case "redis":
		client := utils.GetSessionCacheClient()
		redisClients = append(redisClients, client)
		sessions = ai.NewRedisSessionStore(client, config.AppConfig.SessionTTL)
	default:
		mem := ai.NewMemorySessionStore(config.AppConfig.SessionTTL)
		go mem.RunJanitor(rootCtx, time.Minute)
		sessions = mem
	}

	var reminders booking.ReminderScheduler
	var worker *cron.ReminderWorker
	if config.AppConfig.RemindersEnabled {
		redisOpts := asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisReminderQueueDB,
		}
		queue := asynq.NewClient(redisOpts)
		defer queue.Close()
		reminders = &tasks.AppointmentReminders{Client: queue, Lead: config.AppConfig.ReminderLead, Logger: logger}

		worker = cron.NewReminderWorker(redisOpts, appointments, doctors, chats, logger)
		worker.Start(rootCtx)

		redisClients = append(redisClients, redis.NewClient(&redis.Options{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisReminderQueueDB,
		}))
	}
	utils.StartHealthMonitor(rootCtx, redisClients, database.MongoClient)

	// completion service.
	var llmClient ai.LLMClient = ai.UnavailableLLMClient{}
	if config.AppConfig.GeminiAPIKey != "" {
		gemini, err := ai.NewGeminiLLMClient(rootCtx, config.AppConfig.GeminiAPIKey, config.AppConfig.GeminiModel)
		if err != nil {
			logger.Error("Gemini client unavailable, chatbot will use fallback replies", zap.Error(err))
		} else {
			defer gemini.Close()
			llmClient = gemini
		}
	} else {
		logger.Warn("GEMINI_API_KEY not set, chatbot will use fallback replies")
	}
	llm := ai.NewResilientLLM(llmClient, config.AppConfig.GeminiModel, logger,
		ai.WithCallTimeout(config.AppConfig.LLMTimeout),
		ai.WithMaxAttempts(config.AppConfig.LLMMaxAttempts),
		ai.WithMetrics(metrics),
	)

	// services.
	userService := &user.DefaultUserService{Repo: userRepo, Logger: logger, TokenTTL: config.AppConfig.JWTTTL}
	doctorService := &doctor.DefaultDoctorService{
		Doctors:      doctors,
		Users:        userRepo,
		Appointments: appointments,
		Logger:       logger,
	}
	bookingService := &booking.DefaultBookingService{
		Doctors:      doctors,
		Schedules:    schedules,
		Appointments: appointments,
		Users:        userRepo,
		Tx:           database.NewTransactor(database.MongoClient),
		Reminders:    reminders,
		Metrics:      metrics,
		Logger:       logger,
	}

	triage := ai.NewTriage(sessions, llm, doctors, userRepo, logger)
	dispatcher := ai.NewDispatcher(ai.DispatcherDeps{
		Triage:       triage,
		LLM:          llm,
		Doctors:      doctors,
		Schedules:    schedules,
		Appointments: appointments,
		Users:        userRepo,
		Logger:       logger,
	})
	chatService := ai.NewChatService(ai.NewIntentClassifier(llm), dispatcher, chats, userRepo, metrics, logger)
	summaryService := ai.NewSummaryService(appointments, doctors, userRepo, chats, llm, logger)

	handlerBundle := handlers.NewHandlerBundle(userService, doctorService, bookingService, chatService, summaryService)

	router := gin.New()
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))
	routes.RegisterRoutes(router, handlerBundle)

	srv := &http.Server{
		Addr:              "0.0.0.0:" + config.AppConfig.AppPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Starting server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	stop()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}
	if worker != nil {
		worker.Shutdown()
	}
	if err := database.Disconnect(shutdownCtx); err != nil {
		logger.Error("Failed to disconnect MongoDB", zap.Error(err))
	}
	logger.Info("Server exited")
}
