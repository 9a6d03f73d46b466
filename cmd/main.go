package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"parametric-service/internal/config"
	"parametric-service/internal/database/postgres"
	"parametric-service/internal/database/redis"
	"parametric-service/internal/event"
	"parametric-service/internal/handlers"
	"parametric-service/internal/payout"
	"parametric-service/internal/repository"
	"parametric-service/internal/services"

	"github.com/gofiber/fiber/v3"
)

func setupLogging() (*os.File, error) {
	logDir := filepath.Join("/parametric", "log", "insurance_service")
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %v", err)
	}

	logFileName := fmt.Sprintf("log_%s.log", time.Now().Format("2006-01-02"))
	file, err := os.OpenFile(filepath.Join(logDir, logFileName), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %v", err)
	}

	log.SetOutput(file)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	return file, nil
}

func main() {
	logFile, err := setupLogging()
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer logFile.Close()

	cfg := config.New()

	// Observation storage: Postgres when configured, in-memory otherwise.
	var observations repository.ObservationStore = repository.NewMemoryObservationStore()
	if cfg.PostgresCfg.Host != "" {
		db, err := postgres.ConnectAndCreateDB(cfg.PostgresCfg)
		if err != nil {
			log.Printf("error connecting to database: %s", err)
			go postgres.RetryConnectOnFailed(30*time.Second, &db, cfg.PostgresCfg)
		}
		if db != nil {
			observations = repository.NewPostgresObservationRepository(db)
		}
	}

	eventLog := event.NewLog()
	var sinks []event.Publisher
	if cfg.RedisCfg.Host != "" {
		redisClient, err := redis.NewRedisClient(cfg.RedisCfg)
		if err != nil {
			log.Printf("error connecting to redis: %s", err)
		} else {
			defer redisClient.Close()
			sinks = append(sinks, event.NewStreamPublisher(redisClient.GetClient()))
		}
	}
	emitter := event.NewEmitter(eventLog, sinks...)

	var notifier *event.NotificationPublisher
	if cfg.RabbitMQCfg.Host != "" {
		rmq, err := event.ConnectRabbitMQ(cfg.RabbitMQCfg)
		if err != nil {
			log.Printf("error connecting to rabbitmq: %s", err)
		} else {
			defer rmq.Close()
			notifier = event.NewNotificationPublisher(rmq)
		}
	}

	policies := repository.NewMemoryPolicyStore()
	customers := repository.NewMemoryCustomerStore()
	payouts := payout.NewRecorder()

	locks := services.NewLockTable()
	settingsService := services.NewSettingsService(cfg.InsuranceCfg)
	poolService := services.NewPoolService(payouts, emitter, cfg.OperatorID)
	policyService := services.NewPolicyService(policies, customers, poolService, settingsService, emitter, locks)
	observationService := services.NewObservationService(observations, emitter)
	eligibilityService := services.NewEligibilityService(policies, observations, settingsService)
	settlementService := services.NewSettlementService(
		policies, customers, poolService, eligibilityService, settingsService,
		payouts, emitter, notifier, locks)

	operator := handlers.RequireOperator(cfg.APIKey)

	app := fiber.New()
	app.Get("/checkhealth", func(c fiber.Ctx) error {
		return c.Status(fiber.StatusOK).SendString("Insurance service is healthy")
	})

	handlers.NewPolicyHandler(policyService, settlementService, eligibilityService).Register(app, operator)
	handlers.NewObservationHandler(observationService).Register(app, operator)
	handlers.NewPoolHandler(poolService, eventLog).Register(app, operator)
	handlers.NewSettingsHandler(settingsService).Register(app, operator)

	slog.Info("insurance service listening", "port", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
