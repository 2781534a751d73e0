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
	"golang.org/x/time/rate"

	"github.com/medisys/hospital-api/config"
	"github.com/medisys/hospital-api/internal/cache"
	"github.com/medisys/hospital-api/internal/email"
	appointmentHandler "github.com/medisys/hospital-api/internal/handler/appointment"
	authHandler "github.com/medisys/hospital-api/internal/handler/auth"
	departmentHandler "github.com/medisys/hospital-api/internal/handler/department"
	doctorHandler "github.com/medisys/hospital-api/internal/handler/doctor"
	feedbackHandler "github.com/medisys/hospital-api/internal/handler/feedback"
	healthHandler "github.com/medisys/hospital-api/internal/handler/health"
	inventoryHandler "github.com/medisys/hospital-api/internal/handler/inventory"
	patientHandler "github.com/medisys/hospital-api/internal/handler/patient"
	prescriptionHandler "github.com/medisys/hospital-api/internal/handler/prescription"
	"github.com/medisys/hospital-api/internal/middleware"
	"github.com/medisys/hospital-api/internal/model"
	"github.com/medisys/hospital-api/internal/repository/postgres"
	"github.com/medisys/hospital-api/internal/router"
	appointmentService "github.com/medisys/hospital-api/internal/service/appointment"
	departmentService "github.com/medisys/hospital-api/internal/service/department"
	doctorService "github.com/medisys/hospital-api/internal/service/doctor"
	feedbackService "github.com/medisys/hospital-api/internal/service/feedback"
	inventoryService "github.com/medisys/hospital-api/internal/service/inventory"
	patientService "github.com/medisys/hospital-api/internal/service/patient"
	prescriptionService "github.com/medisys/hospital-api/internal/service/prescription"
	"github.com/medisys/hospital-api/pkg/auth"
	"github.com/medisys/hospital-api/pkg/logger"
	redisbroker "github.com/medisys/hospital-api/pkg/messaging/redis"
	"github.com/medisys/hospital-api/pkg/metrics"
	"github.com/medisys/hospital-api/pkg/security"
	"github.com/medisys/hospital-api/pkg/worker"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger.Setup(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	m := metrics.New("hospital_api")

	// Repositories
	departmentRepo := postgres.NewDepartmentRepository(db)
	doctorRepo := postgres.NewDoctorRepository(db)
	patientRepo := postgres.NewPatientRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)
	prescriptionRepo := postgres.NewPrescriptionRepository(db)
	prescriptionItemRepo := postgres.NewPrescriptionItemRepository(db)
	inventoryRepo := postgres.NewInventoryRepository(db)
	feedbackRepo := postgres.NewFeedbackRepository(db)
	outboxRepo := postgres.NewOutboxRepository(db)

	// Entity caches
	ttl, cleanup := cfg.Cache.TTL, cfg.Cache.CleanupInterval
	departmentCache := cache.New[*model.Department](ttl, cleanup).WithMetrics(m, "department")
	doctorCache := cache.New[*model.Doctor](ttl, cleanup).WithMetrics(m, "doctor")
	patientCache := cache.New[*model.Patient](ttl, cleanup).WithMetrics(m, "patient")
	appointmentCache := cache.New[*model.Appointment](ttl, cleanup).WithMetrics(m, "appointment")
	itemListCache := cache.New[[]*model.PrescriptionItem](ttl, cleanup).WithMetrics(m, "prescription_items")
	inventoryCache := cache.New[*model.MedicalInventory](ttl, cleanup).WithMetrics(m, "inventory")
	feedbackCache := cache.New[*model.PatientFeedback](ttl, cleanup).WithMetrics(m, "feedback")

	// Services
	emailSvc := email.NewService(cfg.Email, doctorRepo)
	departmentSvc := departmentService.NewService(departmentRepo, departmentCache)
	doctorSvc := doctorService.NewService(doctorRepo, appointmentRepo, doctorCache)
	patientSvc := patientService.NewService(patientRepo, appointmentRepo, patientCache)
	appointmentSvc := appointmentService.NewService(appointmentRepo, prescriptionRepo, emailSvc, appointmentCache)
	prescriptionSvc := prescriptionService.NewService(prescriptionRepo, prescriptionItemRepo, appointmentRepo, itemListCache)
	inventorySvc := inventoryService.NewService(inventoryRepo, prescriptionItemRepo, inventoryCache)
	feedbackSvc := feedbackService.NewService(feedbackRepo, patientRepo, feedbackCache)

	// Auth
	tokenSvc := auth.NewTokenService(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiryHours)*time.Hour, cfg.JWT.Issuer)
	hasher := security.NewBcryptHasher(bcrypt.DefaultCost)
	authMiddleware := middleware.NewAuthMiddleware(tokenSvc)

	// Handlers
	healthH := healthHandler.NewHandler(db)
	authH := authHandler.NewHandler(cfg.Auth, tokenSvc, hasher)
	departmentH := departmentHandler.NewHandler(departmentSvc, outboxRepo)
	doctorH := doctorHandler.NewHandler(doctorSvc, outboxRepo)
	patientH := patientHandler.NewHandler(patientSvc, appointmentSvc, feedbackSvc, outboxRepo)
	appointmentH := appointmentHandler.NewHandler(appointmentSvc, prescriptionSvc, outboxRepo)
	prescriptionH := prescriptionHandler.NewHandler(prescriptionSvc, outboxRepo)
	inventoryH := inventoryHandler.NewHandler(inventorySvc, outboxRepo)
	feedbackH := feedbackHandler.NewHandler(feedbackSvc, outboxRepo)

	r := router.New(authMiddleware, m, router.Config{
		RateLimitEnabled: cfg.RateLimit.Enabled,
		RateLimit:        rate.Limit(cfg.RateLimit.RequestsPerSecond),
		RateBurst:        cfg.RateLimit.Burst,
		CORSConfig:       middleware.DefaultCORSConfig(),
		MetricsEnabled:   cfg.Monitoring.PrometheusEnabled,
		MetricsPath:      cfg.Monitoring.MetricsPath,
		AuthEnabled:      cfg.Auth.Enabled,
		ReleaseMode:      true,
	})
	r.Setup(
		healthH,
		[]router.Handler{authH},
		[]router.Handler{departmentH, doctorH, patientH, appointmentH, prescriptionH, inventoryH, feedbackH},
	)

	srv := &http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:        r.Engine(),
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	// Outbox processor publishes entity-change events to Redis.
	processorCtx, stopProcessor := context.WithCancel(context.Background())
	defer stopProcessor()
	if cfg.Outbox.Enabled {
		broker, err := redisbroker.NewBroker(cfg.Redis.ToBrokerConfig(), log.Logger)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to Redis")
		}
		defer broker.Close()

		processor := worker.NewOutboxProcessor(outboxRepo, broker, cfg.Outbox.ToWorkerConfig(), log.Logger, m)
		go processor.Start(processorCtx)
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	stopProcessor()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
