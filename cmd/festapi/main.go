package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/wb-go/wbf/config"
	"github.com/wb-go/wbf/zlog"

	"github.com/Mathew005/event-platform-sub000/internal/api"
	"github.com/Mathew005/event-platform-sub000/internal/files"
	"github.com/Mathew005/event-platform-sub000/internal/mailer"
	"github.com/Mathew005/event-platform-sub000/internal/queue"
	"github.com/Mathew005/event-platform-sub000/internal/service"
	"github.com/Mathew005/event-platform-sub000/internal/store"
	"github.com/Mathew005/event-platform-sub000/internal/worker"
)

func main() {
	zlog.Init()
	log := zlog.Logger

	cfg := config.New()
	if err := cfg.Load("config.yaml", "", "'"); err != nil {
		log.Fatal().Msgf("failed to load configuration: %v", err)
	}
	port := cfg.GetString("server.port")
	if port == "" {
		port = "8080"
	}

	recordStore := store.New(&log)

	uploadPath := cfg.GetString("upload.store_path")
	if uploadPath == "" {
		uploadPath = "data/uploads.db"
	}
	uploadStore, err := files.NewBoltStore(uploadPath, &log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open upload store")
	}
	defer uploadStore.Close()

	mail := mailer.Config{
		Host:     cfg.GetString("smtp.host"),
		Port:     cfg.GetString("smtp.port"),
		From:     cfg.GetString("smtp.from"),
		Password: cfg.GetString("smtp.password"),
	}

	paymentTimeout := cfg.GetInt("payment.timeout_minutes")
	if paymentTimeout <= 0 {
		paymentTimeout = 15
	}

	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	defer cancelWorkers()

	// Delayed lapse messages need a broker; without one the cron sweeper
	// covers expiry on its own.
	var rmq *queue.Client
	var lapseReader *worker.Reader
	if url := cfg.GetString("rabbit.url"); url != "" {
		rmq, err = queue.New(url, cfg.GetString("rabbit.exchange"), cfg.GetString("rabbit.queue"))
		if err != nil {
			log.Fatal().Msgf("failed to connect to RabbitMQ: %v", err)
		}
		defer rmq.Close()

		lapseReader = worker.NewReader(rmq, recordStore, mail)
		go lapseReader.Start(workerCtx)
	}

	cronSpec := cfg.GetString("sweep.cron")
	if cronSpec == "" {
		cronSpec = "*/5 * * * *"
	}
	sweeper, err := worker.NewSweeper(recordStore, mail, cronSpec)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up lapse sweeper")
	}
	sweeper.Start()

	serviceInstance := service.NewService(recordStore, uploadStore, rmq, mail, &log, paymentTimeout)
	app := api.NewRouters(&api.Routers{Service: serviceInstance})

	serverErrChan := make(chan error, 1)
	go func() {
		log.Info().Msgf("Starting server on %s", port)
		if err := app.Run(":" + port); err != nil {
			serverErrChan <- fmt.Errorf("failed to start server: %w", err)
		}
	}()

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-signalChan:
		log.Info().Msgf("Received signal %s. Initiating shutdown...", sig)
	case err := <-serverErrChan:
		log.Error().Msgf("Server error: %v", err)
	}

	cancelWorkers()
	sweeper.Stop()
	if lapseReader != nil {
		lapseReader.Stop()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if closer, ok := interface{}(app).(interface{ Close(context.Context) error }); ok {
		if err := closer.Close(shutdownCtx); err != nil {
			log.Error().Msgf("Error shutting down server: %v", err)
		}
	}

	log.Info().Msg("Shutdown complete")
}
