package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/jwalitptl/clinic-portal/internal/config"
	"github.com/jwalitptl/clinic-portal/internal/email"
	"github.com/jwalitptl/clinic-portal/internal/handler"
	appointmentHandler "github.com/jwalitptl/clinic-portal/internal/handler/appointment"
	authHandler "github.com/jwalitptl/clinic-portal/internal/handler/auth"
	dashboardHandler "github.com/jwalitptl/clinic-portal/internal/handler/dashboard"
	patientHandler "github.com/jwalitptl/clinic-portal/internal/handler/patient"
	"github.com/jwalitptl/clinic-portal/internal/middleware"
	"github.com/jwalitptl/clinic-portal/internal/repository/postgres"
	"github.com/jwalitptl/clinic-portal/internal/router"
	appointmentService "github.com/jwalitptl/clinic-portal/internal/service/appointment"
	authService "github.com/jwalitptl/clinic-portal/internal/service/auth"
	patientService "github.com/jwalitptl/clinic-portal/internal/service/patient"
	"github.com/jwalitptl/clinic-portal/internal/service/stats"
	pkgauth "github.com/jwalitptl/clinic-portal/pkg/auth"
	"github.com/jwalitptl/clinic-portal/pkg/logger"
	"github.com/jwalitptl/clinic-portal/pkg/messaging/redis"
	"github.com/jwalitptl/clinic-portal/pkg/metrics"
	"github.com/jwalitptl/clinic-portal/pkg/security"
	"github.com/jwalitptl/clinic-portal/pkg/worker"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Initialize database
	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// Initialize repositories
	adminRepo := postgres.NewAdminRepository(db)
	patientRepo := postgres.NewPatientRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)
	outboxRepo := postgres.NewOutboxRepository(db)

	// Initialize services
	sessions := pkgauth.NewSessionManager(cfg.Session.Secret, cfg.Session.TTL)
	hasher := security.NewBcryptHasher(bcrypt.DefaultCost)
	authSvc := authService.NewService(adminRepo, hasher, sessions)
	statsCache := stats.NewCache(30 * time.Second)
	patientSvc := patientService.NewService(patientRepo, outboxRepo, statsCache)
	notifier := email.NewService(cfg.SMTP)
	appointmentSvc := appointmentService.NewService(appointmentRepo, patientRepo, outboxRepo, notifier, statsCache)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(authSvc)

	// Initialize handlers
	cookieTTL := int(cfg.Session.TTL / time.Second)
	authH := authHandler.NewHandler(authSvc, cookieTTL)
	dashboardH := dashboardHandler.NewHandler(appointmentSvc)
	patientH := patientHandler.NewHandler(patientSvc)
	appointmentH := appointmentHandler.NewHandler(appointmentSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	m := metrics.New("clinic_portal")
	r := router.NewRouter(
		authMiddleware,
		authH,
		dashboardH,
		patientH,
		appointmentH,
		healthH,
		m,
		router.Config{RateRPS: cfg.Rate.RPS, RateBurst: cfg.Rate.Burst},
	)
	r.Setup()

	// Create server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize Redis message broker and start the outbox processor. A
	// broker outage keeps the portal up; events stay pending until a worker
	// drains them.
	broker, err := redis.NewRedisBroker(cfg.Redis.URL, &log.Logger)
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, outbox events will stay pending")
	} else {
		defer broker.Close()
		processor := worker.NewOutboxProcessor(outboxRepo, broker, worker.OutboxProcessorConfig{
			BatchSize:     cfg.Outbox.BatchSize,
			PollInterval:  cfg.Outbox.PollInterval,
			RetryAttempts: cfg.Outbox.RetryAttempts,
			RetryDelay:    cfg.Outbox.RetryDelay,
		}, logger.NewLogger(nil), m)
		go processor.Start(ctx)
	}

	// Start server
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
