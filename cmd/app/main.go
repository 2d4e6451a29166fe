package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"depot/cmd"
	depothttp "depot/internal/adapters/in/http"
	"depot/internal/adapters/out/kafka"
	"depot/internal/adapters/out/postgres"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// .env is optional outside local development.
	_ = godotenv.Load(".env")

	configs, err := cmd.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB, err := openDatabase(configs)
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	apiDoc, err := depothttp.LoadSpec()
	if err != nil {
		log.Fatalf("Error loading API document: %v", err)
	}
	if err := depothttp.RegisterSwagger(apiDoc); err != nil {
		log.Fatalf("Error registering API document: %v", err)
	}

	app := cmd.NewCompositionRoot(configs, gormDB, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	publisher := kafka.NewEventPublisher(configs.KafkaBrokerList(), configs.KafkaEventsTopic)
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Error("Failed to close event publisher", "error", err)
		}
	}()

	jobManager := app.CreateJobManager(publisher)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}
	defer jobManager.StopAll()

	consumer := app.CreateGateConsumer()
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := consumer.Run(ctx); err != nil {
			logger.Error("Gate consumer stopped", "error", err)
		}
	}()

	startWebServer(ctx, app, configs.HTTPPort, logger)

	wg.Wait()
	if err := consumer.Close(); err != nil {
		logger.Error("Failed to close gate consumer", "error", err)
	}
}

func openDatabase(configs cmd.Config) (*gorm.DB, error) {
	gormDB, err := gorm.Open(pgdriver.Open(configs.DSN()), postgres.GormConfig())
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	if err := postgres.Migrate(gormDB); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return gormDB, nil
}

// startWebServer serves until ctx is cancelled, then drains open requests.
func startWebServer(ctx context.Context, app cmd.CompositionRoot, port string, logger *slog.Logger) {
	e := depothttp.NewRouter(app.CreateHTTPServer(), logger)

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Fatal(err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP shutdown failed", "error", err)
	}
}
