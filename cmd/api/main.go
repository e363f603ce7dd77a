package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"github.com/medagenda/clinic-api/config"
	"github.com/medagenda/clinic-api/internal/email"
	authHandler "github.com/medagenda/clinic-api/internal/handler/auth"
	doctorHandler "github.com/medagenda/clinic-api/internal/handler/doctor"
	patientHandler "github.com/medagenda/clinic-api/internal/handler/patient"
	reportHandler "github.com/medagenda/clinic-api/internal/handler/report"
	scheduleHandler "github.com/medagenda/clinic-api/internal/handler/schedule"
	slotHandler "github.com/medagenda/clinic-api/internal/handler/slot"
	specialtyHandler "github.com/medagenda/clinic-api/internal/handler/specialty"
	visitHandler "github.com/medagenda/clinic-api/internal/handler/visit"
	"github.com/medagenda/clinic-api/internal/middleware"
	"github.com/medagenda/clinic-api/internal/repository/postgres"
	"github.com/medagenda/clinic-api/internal/router"
	appointmentService "github.com/medagenda/clinic-api/internal/service/appointment"
	authService "github.com/medagenda/clinic-api/internal/service/auth"
	doctorService "github.com/medagenda/clinic-api/internal/service/doctor"
	notificationService "github.com/medagenda/clinic-api/internal/service/notification"
	patientService "github.com/medagenda/clinic-api/internal/service/patient"
	reportService "github.com/medagenda/clinic-api/internal/service/report"
	specialtyService "github.com/medagenda/clinic-api/internal/service/specialty"
	visitService "github.com/medagenda/clinic-api/internal/service/visit"
	"github.com/medagenda/clinic-api/pkg/auth"
	"github.com/medagenda/clinic-api/pkg/logger"
	"github.com/medagenda/clinic-api/pkg/messaging"
	redisBroker "github.com/medagenda/clinic-api/pkg/messaging/redis"
	"github.com/medagenda/clinic-api/pkg/metrics"
)

func main() {
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

	templateRepo := postgres.NewTemplateRepository(db)
	slotRepo := postgres.NewSlotRepository(db)
	doctorRepo := postgres.NewDoctorRepository(db)
	patientRepo := postgres.NewPatientRepository(db)
	specialtyRepo := postgres.NewSpecialtyRepository(db)
	visitRepo := postgres.NewVisitRepository(db)

	m := metrics.NewMetrics("medagenda", "api")

	var mailer email.Sender
	if cfg.SMTP.Enabled {
		mailer = email.NewSMTPSender(email.Config{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
		})
	}

	var broker messaging.Broker
	if cfg.Redis.Enabled {
		zl := zerolog.New(os.Stdout).With().Timestamp().Logger()
		broker, err = redisBroker.NewRedisBroker(redisBroker.Config{
			URL:          cfg.Redis.URL,
			MaxRetries:   cfg.Redis.MaxRetries,
			RetryBackoff: 100 * time.Millisecond,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
		}, &zl)
		if err != nil {
			log.Fatal(err, "failed to connect to redis")
		}
		defer broker.Close()
	}

	notifier := notificationService.NewService(mailer, broker, log, m)

	appointmentSvc := appointmentService.NewService(
		templateRepo, slotRepo, doctorRepo, patientRepo,
		notifier, log, m,
		appointmentService.Config{AllowCurrentMonth: cfg.Scheduling.AllowCurrentMonth},
	)
	doctorSvc := doctorService.NewService(doctorRepo, specialtyRepo, log)
	patientSvc := patientService.NewService(patientRepo, log)
	specialtySvc := specialtyService.NewService(specialtyRepo, log)
	visitSvc := visitService.NewService(visitRepo, patientRepo, doctorRepo, log)
	reportSvc := reportService.NewService(slotRepo, specialtyRepo)

	jwtSvc := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpiryHours)
	authSvc := authService.NewService(doctorRepo, jwtSvc, log)
	authMW := middleware.NewAuthMiddleware(jwtSvc)

	r := router.New(
		router.Config{
			RateLimitRPS:   cfg.RateLimit.RPS,
			RateLimitBurst: cfg.RateLimit.Burst,
			RequestTimeout: time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
			CacheTTL:       time.Duration(cfg.Server.CacheTTLSecs) * time.Second,
			CORS:           middleware.DefaultCORSConfig(),
		},
		log,
		db,
		authMW,
		authHandler.NewHandler(authSvc, log),
		[]router.Handler{
			scheduleHandler.NewHandler(appointmentSvc, log),
			slotHandler.NewHandler(appointmentSvc, log),
			doctorHandler.NewHandler(doctorSvc, log),
			patientHandler.NewHandler(patientSvc, log),
			specialtyHandler.NewHandler(specialtySvc, log),
			visitHandler.NewHandler(visitSvc, log),
		},
		[]router.Handler{
			reportHandler.NewHandler(reportSvc, log),
		},
	)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	go func() {
		log.Info("server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err, "server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error(err, "forced shutdown")
	}
}
