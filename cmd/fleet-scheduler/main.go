package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"fleet-service/internal/config"
	"fleet-service/internal/db"
	"fleet-service/internal/logger"
	"fleet-service/internal/repository"
	"fleet-service/internal/service"
)

const sweepSchedule = "0 0 * * *"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment, "fleet-scheduler")

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	fineRepo := repository.NewFineRepository(database)
	vehicleRepo := repository.NewVehicleRepository(database)
	fineService := service.NewFineService(fineRepo, vehicleRepo, log)

	sweep := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		count, err := fineService.SweepOverdue(ctx)
		if err != nil {
			log.Error().Err(err).Msg("overdue sweep failed")
			return
		}
		log.Info().Int("count", count).Msg("overdue sweep finished")
	}

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(sweepSchedule, sweep); err != nil {
		log.Fatal().Err(err).Msg("failed to register sweep job")
	}

	// Run once at startup so a restarted scheduler does not wait a full day.
	sweep()

	scheduler.Start()
	log.Info().Str("schedule", sweepSchedule).Msg("scheduler started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down scheduler")
	<-scheduler.Stop().Done()
}
