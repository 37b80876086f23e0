package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"campuspilot/config"
	"campuspilot/cron"
	"campuspilot/database"
	bookingRepo "campuspilot/database/repository/booking"
	roomRepo "campuspilot/database/repository/room"
	userRepoPkg "campuspilot/database/repository/user"
	"campuspilot/handlers"
	"campuspilot/middleware"
	"campuspilot/routes"
	"campuspilot/services/booking"
	ai "campuspilot/services/intelligence"
	"campuspilot/services/notification"
	"campuspilot/services/user"
	"campuspilot/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()
	utils.FirebaseInit()
	bookingRepo.EnsureBookingIndexes()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	rooms := roomRepo.NewMongoRoomRepo()
	bookings := bookingRepo.NewMongoBookingRepo()
	users := userRepoPkg.NewMongoUserRepo()

	// services.
	userService := &user.DefaultUserService{
		Repo:    users,
		SendOTP: utils.LogOTPSender,
	}

	bookingService := &booking.DefaultBookingService{
		RoomRepo:    rooms,
		BookingRepo: bookings,
		Policy:      booking.PolicyFromConfig(),
	}

	var extractor ai.IntentExtractor = ai.NewRuleBasedExtractor()
	if config.AppConfig.GeminiAPIKey != "" {
		gem, err := ai.NewGeminiExtractor(config.AppConfig.GeminiAPIKey, ai.NewRuleBasedExtractor())
		if err != nil {
			logger.Sugar().Fatalf("main: failed to initialize gemini extractor: %v", err)
		}
		extractor = gem
	}

	ctxStore := ai.NewRedisContextStore(utils.GetChatContextClient(), 30*time.Minute)
	assistantService := ai.NewDefaultAssistantService(extractor, ctxStore, bookingService)

	notificationService := &notification.DefaultNotificationService{
		Users: userService,
	}

	// handlers.
	handlerBundle := &routes.HandlerBundle{
		Booking:   handlers.NewBookingHandler(bookingService, notificationService),
		Assistant: handlers.NewAssistantHandler(assistantService),
		Auth:      handlers.NewAuthHandler(userService),
		AuthMW:    middleware.JWTAuthMiddleware(users),
	}
	routes.RegisterRoutes(router, handlerBundle)

	// background workers.
	cron.InitReminderWorker(notificationService)
	cron.StartReminderSweep(bookings)
	utils.StartHealthMonitor(
		[]*redis.Client{utils.GetCacheClient(), utils.GetAuthCacheClient()},
		database.MongoClient,
	)

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

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
