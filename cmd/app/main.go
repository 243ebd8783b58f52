package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/j4ckson185/apk/cmd"
	"github.com/j4ckson185/apk/internal/adapters/out/postgres/courierrepo"
	"github.com/j4ckson185/apk/internal/adapters/out/postgres/orderrepo"
	"github.com/j4ckson185/apk/internal/core/application/usecases/commands"
	"github.com/j4ckson185/apk/internal/core/domain/model/kernel"
)

func main() {
	// A missing .env file is fine; the process environment still applies.
	_ = godotenv.Load(".env")

	configs, err := cmd.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB, err := gorm.Open(postgres.Open(configs.PostgresDSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := gormDB.AutoMigrate(&orderrepo.OrderDTO{}, &courierrepo.CourierLocationDTO{}); err != nil {
		log.Fatalf("Failed to migrate database schema: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     configs.RedisAddr,
		Password: configs.RedisPassword,
		DB:       configs.RedisDB,
	})

	app := cmd.NewCompositionRoot(configs, gormDB, redisClient, logger)

	// The tracker must be running before the flush job: it is what turns
	// reported GPS fixes into a retained last-known position.
	if err := app.Tracker().Start(func(position kernel.Position) {
		logger.Debug("Significant position change",
			"latitude", position.Location().Latitude(),
			"longitude", position.Location().Longitude())
	}); err != nil {
		log.Fatalf("Failed to start location tracking: %v", err)
	}

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}

	if err := app.Coordinator().Subscribe(context.Background(), configs.CourierID); err != nil {
		log.Fatalf("Failed to subscribe to the order feed: %v", err)
	}
	go watchOrderFeed(app, logger)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	app.CreateHTTPServer().RegisterRoutes(e)

	go func() {
		if startErr := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); startErr != nil {
			logger.Info("HTTP server stopped", "error", startErr)
		}
	}()

	waitForShutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	jobManager.StopAll()
	app.Tracker().Stop()
	app.Coordinator().Close()
	deactivateCourier(ctx, app, configs.CourierID, logger)

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}

	if err := redisClient.Close(); err != nil {
		logger.Error("Redis client close failed", "error", err)
	}
}

// watchOrderFeed drains the sync coordinator's channels. New incoming orders
// are worth a log line on their own; snapshots are consumed silently to keep
// the latest-wins channels flowing.
func watchOrderFeed(app *cmd.CompositionRoot, logger *slog.Logger) {
	coordinator := app.Coordinator()
	for {
		select {
		case snapshot := <-coordinator.Snapshots():
			logger.Debug("Order snapshot updated", "orders", len(snapshot))
		case count := <-coordinator.Arrivals():
			logger.Info("New incoming orders", "count", count)
		case err := <-coordinator.Errs():
			logger.Error("Order feed failed", "error", err)
		}
	}
}

func waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
}

// deactivateCourier marks the courier offline so dispatchers stop expecting
// position updates from this session.
func deactivateCourier(ctx context.Context, app *cmd.CompositionRoot, courierID string, logger *slog.Logger) {
	deactivate, err := commands.NewDeactivateCourierCommand(courierID)
	if err != nil {
		logger.Error("Failed to build deactivation command", "error", err)
		return
	}

	handler := app.CreateDeactivateCourierCommandHandler()
	if err := handler.Handle(ctx, deactivate); err != nil {
		logger.Error("Failed to deactivate courier", "error", err)
	}
}
