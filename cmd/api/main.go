package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/mindwell-clinic/clinic-api/config"
	anamnesisHandler "github.com/mindwell-clinic/clinic-api/internal/handler/anamnesis"
	appointmentHandler "github.com/mindwell-clinic/clinic-api/internal/handler/appointment"
	auditHandler "github.com/mindwell-clinic/clinic-api/internal/handler/audit"
	authHandler "github.com/mindwell-clinic/clinic-api/internal/handler/auth"
	dashboardHandler "github.com/mindwell-clinic/clinic-api/internal/handler/dashboard"
	patientHandler "github.com/mindwell-clinic/clinic-api/internal/handler/patient"
	settingsHandler "github.com/mindwell-clinic/clinic-api/internal/handler/settings"
	"github.com/mindwell-clinic/clinic-api/internal/middleware"
	"github.com/mindwell-clinic/clinic-api/internal/repository/memory"
	"github.com/mindwell-clinic/clinic-api/internal/router"
	anamnesisService "github.com/mindwell-clinic/clinic-api/internal/service/anamnesis"
	auditService "github.com/mindwell-clinic/clinic-api/internal/service/audit"
	authService "github.com/mindwell-clinic/clinic-api/internal/service/auth"
	dashboardService "github.com/mindwell-clinic/clinic-api/internal/service/dashboard"
	patientService "github.com/mindwell-clinic/clinic-api/internal/service/patient"
	schedulingService "github.com/mindwell-clinic/clinic-api/internal/service/scheduling"
	"github.com/mindwell-clinic/clinic-api/pkg/auth"
	"github.com/mindwell-clinic/clinic-api/pkg/logger"
	"github.com/mindwell-clinic/clinic-api/pkg/metrics"
	"github.com/mindwell-clinic/clinic-api/pkg/security"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger.Setup(&logger.Config{
		Level:      logger.InfoLevel,
		TimeFormat: time.RFC3339,
		Output:     os.Stdout,
		Pretty:     cfg.LogPretty,
	})

	m := metrics.New("clinic", prometheus.DefaultRegisterer)

	// Repositories
	appointmentRepo := memory.NewAppointmentRepository()
	patientRepo := memory.NewPatientRepository()
	anamnesisRepo := memory.NewAnamnesisRepository()
	userRepo := memory.NewUserRepository()
	auditRepo := memory.NewAuditRepository()

	// Services
	auditor := auditService.NewService(auditRepo)
	schedulingSvc := schedulingService.NewService(appointmentRepo, cfg.Availability.Rules(), auditor, m)
	patientSvc := patientService.NewService(patientRepo, auditor)
	anamnesisSvc := anamnesisService.NewService(anamnesisRepo, auditor)
	dashboardSvc := dashboardService.NewService(appointmentRepo, patientRepo)

	jwtSvc := auth.NewJWTService(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiryHours)*time.Hour)
	hasher := security.NewBcryptHasher(0)
	authSvc := authService.NewService(userRepo, hasher, jwtSvc)

	if err := authSvc.SeedAdmin(context.Background(), cfg.Admin.Email, cfg.Admin.Password); err != nil {
		log.Fatal().Err(err).Msg("failed to seed admin user")
	}

	// Handlers
	r := router.New(
		middleware.NewAuthMiddleware(jwtSvc),
		appointmentHandler.NewHandler(schedulingSvc),
		patientHandler.NewHandler(patientSvc),
		anamnesisHandler.NewHandler(anamnesisSvc),
		authHandler.NewHandler(authSvc),
		dashboardHandler.NewHandler(dashboardSvc),
		settingsHandler.NewHandler(schedulingSvc),
		auditHandler.NewHandler(auditor),
		m,
		router.Config{
			RateLimit:  rate.Limit(cfg.RateLimit.RequestsPerSecond),
			RateBurst:  cfg.RateLimit.Burst,
			CORSConfig: middleware.DefaultCORSConfig(),
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
}
