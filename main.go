package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookingagent/config"
	"bookingagent/database"
	bookingRepo "bookingagent/database/repository/booking"
	scheduleRepo "bookingagent/database/repository/schedule"
	"bookingagent/handlers"
	"bookingagent/middleware"
	"bookingagent/routes"
	"bookingagent/services/agent"
	"bookingagent/services/availability"
	"bookingagent/services/booking"
	"bookingagent/services/notification"
	"bookingagent/services/tasks"
	"bookingagent/utils"

	reminderWorker "bookingagent/cron"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	ctx := context.Background()
	mongoClient, err := database.Connect(ctx, config.AppConfig.DatabaseURL)
	if err != nil {
		logger.Sugar().Fatalf("main: %v", err)
	}
	db := mongoClient.Database(config.AppConfig.DatabaseName)

	// repositories.
	bookings := bookingRepo.NewMongoBookingRepo(db)
	schedules := scheduleRepo.NewMongoScheduleRepo(db)
	if err := bookings.EnsureIndexes(ctx); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure booking indexes: %v", err)
	}

	// Redis conversation store.
	conversationClient := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisConversationDB,
	})
	if err := conversationClient.Ping(ctx).Err(); err != nil {
		logger.Sugar().Fatalf("main: failed to connect to Redis: %v", err)
	}
	conversationStore := agent.NewRedisConversationStore(
		conversationClient,
		time.Duration(config.AppConfig.ConversationTTLMins)*time.Minute,
	)

	// Reminder queue + background worker.
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})
	defer asynqClient.Close()
	reminderScheduler := tasks.NewAsynqReminderScheduler(asynqClient)
	reminderWorker.InitReminderWorker(&notification.LogNotifier{Logger: logger})

	// services.
	slotCfg := availability.SlotConfig{
		Duration:       time.Duration(config.AppConfig.SlotDurationMinutes) * time.Minute,
		Buffer:         time.Duration(config.AppConfig.SlotBufferMinutes) * time.Minute,
		MaxDaysAhead:   config.AppConfig.MaxDaysAhead,
		MatchTolerance: time.Duration(config.AppConfig.MatchToleranceMins) * time.Minute,
	}
	availabilitySvc := &availability.DefaultAvailabilityService{
		Schedules: schedules,
		Bookings:  bookings,
		Cfg:       slotCfg,
	}
	ledger := &booking.DefaultLedgerService{
		Repo:         bookings,
		Availability: availabilitySvc,
		Logger:       logger,
	}

	chatModel, err := agent.NewGeminiChatModel(ctx, config.AppConfig.GeminiAPIKey, config.AppConfig.GeminiModel)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize Gemini client: %v", err)
	}
	defer chatModel.Close()

	dispatcher := agent.NewDispatcher(ledger, availabilitySvc, reminderScheduler, logger)
	orchestrator := &agent.Orchestrator{
		Model:       chatModel,
		Store:       conversationStore,
		Dispatcher:  dispatcher,
		Logger:      logger,
		MaxCycles:   config.AppConfig.AgentMaxCycles,
		TokenBudget: config.AppConfig.AgentTokenBudget,
	}

	agentHandler := handlers.NewAgentHandler(orchestrator, logger)

	utils.StartHealthMonitor(conversationClient, mongoClient)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	routes.RegisterRoutes(router, agentHandler)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}
	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		logger.Sugar().Warnf("main: failed to disconnect MongoDB: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
