package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/campusops/events-core/config"
	"github.com/campusops/events-core/internal/handler"
	"github.com/campusops/events-core/internal/middleware"
	"github.com/campusops/events-core/internal/repository"
	"github.com/campusops/events-core/internal/service"
	"github.com/campusops/events-core/internal/worker"
	"github.com/campusops/events-core/pkg/database"
	"github.com/campusops/events-core/pkg/logger"
	"github.com/campusops/events-core/pkg/rabbitmq"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.LogDevelopment)
	defer log.Sync()

	db := database.NewPostgresDB(cfg.DSN())

	publisher, err := rabbitmq.NewPublisher(cfg.RabbitURL, log)
	if err != nil {
		log.Fatal("failed to connect to RabbitMQ", zap.Error(err))
	}
	defer publisher.Close()

	// Repositories
	eventRepo := repository.NewEventRepository(db)
	regRepo := repository.NewRegistrationRepository(db)
	whitelistRepo := repository.NewWhitelistRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Services
	access := service.NewAccessResolver(userRepo, whitelistRepo)
	eventSvc := service.NewEventService(eventRepo, publisher)
	regSvc := service.NewRegistrationService(regRepo, eventRepo, access, publisher)
	whitelistSvc := service.NewWhitelistService(whitelistRepo, eventRepo)
	fulfillmentSvc := service.NewFulfillmentService(regRepo)

	// Workers own their own timers; a SIGTERM stops all three
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	worker.NewReminderWorker(fulfillmentSvc, publisher, cfg.ReminderInterval, cfg.ReminderWindow, log).Start(ctx)
	worker.NewCertificateWorker(eventSvc, fulfillmentSvc, publisher, cfg.CertificateInterval, log).Start(ctx)
	worker.NewCompletionWorker(eventSvc, cfg.CompletionInterval, log).Start(ctx)

	// Echo
	e := echo.New()
	e.HidePort = true
	e.HideBanner = true
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Validator = middleware.NewRequestValidator()
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
			)
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok", "service": "events-core"})
	})

	api := e.Group("/api/v1", middleware.Auth(cfg.JWTSecret))
	handler.NewEventHandler(eventSvc).RegisterRoutes(api.Group("/events"))
	handler.NewRegistrationHandler(regSvc).RegisterRoutes(api)
	handler.NewWhitelistHandler(whitelistSvc).RegisterRoutes(api.Group("/events"))
	handler.NewFulfillmentHandler(fulfillmentSvc).RegisterRoutes(api)

	log.Info("events-core starting", zap.String("port", cfg.ServerPort))
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
