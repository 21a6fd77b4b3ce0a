package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"hiring-api/config"
	"hiring-api/internal/app"
	"hiring-api/internal/database"
	"hiring-api/internal/logger"
	"hiring-api/internal/notify"
	"hiring-api/internal/server"
	"hiring-api/internal/storage/postgres"

	"github.com/go-playground/validator/v10"
)

// @title           Teacher Hiring API
// @version         1.0
// @description     Workflow backend for teacher hiring: applications, HR review, demo scheduling, rubric scoring and pre-employment requirements.

// @host      localhost:8080
// @BasePath  /api/v1
// @schemes   http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLog, err := logger.New(os.Getenv("DEBUG") == "true")
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLog.Sync()

	// --- Initialize Redis Client ---
	redisClient, err := database.NewRedisClient(cfg.Redis, appLog)
	if err != nil {
		appLog.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	db, err := database.NewPostgresDB(cfg.DB, appLog)
	if err != nil {
		appLog.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db, appLog); err != nil {
		appLog.Fatalf("Failed to migrate database: %v", err)
	}

	// --- Initialize Notification Dispatcher ---
	var mailer notify.Mailer
	if cfg.SES.Sender != "" {
		mailer, err = notify.NewSESMailer(context.Background(), cfg.SES.Region, cfg.SES.Sender)
		if err != nil {
			appLog.Fatalf("Failed to initialize SES mailer: %v", err)
		}
		appLog.Infof("SES mailer initialized: region=%s sender=%s", cfg.SES.Region, cfg.SES.Sender)
	} else {
		mailer = notify.NewLogMailer(appLog)
		appLog.Info("SES sender not configured, outgoing email will be logged only")
	}
	dispatcher := notify.NewDispatcher(mailer, postgres.NewNotificationRepo(db, appLog), appLog)

	validate := validator.New()

	application := &app.Application{
		Config:      cfg,
		DB:          db,
		RedisClient: redisClient,
		Validator:   validate,
		Log:         appLog,
		Dispatcher:  dispatcher,
	}

	srv := server.NewServer(application)

	// --- Graceful Shutdown Handling ---
	go func() {
		if err := srv.Start(); err != nil {
			appLog.Errorf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit // Block until a signal is received

	appLog.Info("Shutting down server...")

	// Let in-flight notifications settle before exiting.
	dispatcher.Wait()

	appLog.Info("Application gracefully stopped.")
}
