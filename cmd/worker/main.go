package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	zlog "github.com/rs/zerolog/log"

	"github.com/medagenda/clinic-api/config"
	"github.com/medagenda/clinic-api/internal/repository/postgres"
	appointmentService "github.com/medagenda/clinic-api/internal/service/appointment"
	"github.com/medagenda/clinic-api/pkg/logger"
	"github.com/medagenda/clinic-api/pkg/metrics"
	"github.com/medagenda/clinic-api/pkg/worker"
)

type workerConfig struct {
	SweepIntervalMinutes int `envconfig:"SWEEP_INTERVAL_MINUTES" default:"60"`
	MetricsPort          int `envconfig:"METRICS_PORT" default:"9091"`
}

func main() {
	var wcfg workerConfig
	if err := envconfig.Process("worker", &wcfg); err != nil {
		zlog.Fatal().Err(err).Msg("failed to process worker environment")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		zlog.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.NewLogger(nil)

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal(err, "failed to connect to database")
	}
	defer db.Close()

	m := metrics.NewMetrics("medagenda", "worker")

	svc := appointmentService.NewService(
		postgres.NewTemplateRepository(db),
		postgres.NewSlotRepository(db),
		postgres.NewDoctorRepository(db),
		postgres.NewPatientRepository(db),
		nil,
		log,
		m,
		appointmentService.Config{AllowCurrentMonth: cfg.Scheduling.AllowCurrentMonth},
	)

	go func() {
		http.Handle("/metrics", promhttp.Handler())
		addr := fmt.Sprintf(":%d", wcfg.MetricsPort)
		if err := http.ListenAndServe(addr, nil); err != nil {
			log.Error(err, "metrics server failed")
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sweeper := worker.NewNoShowWorker(
		svc,
		time.Duration(wcfg.SweepIntervalMinutes)*time.Minute,
		log,
	)
	go sweeper.Start(ctx)

	log.Info("worker started",
		"sweep_interval_minutes", wcfg.SweepIntervalMinutes)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("worker shutting down")
}
