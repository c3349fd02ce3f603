package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	_ "github.com/rdiaz1685-afk/diariopreescolar-sub000/api/swagger"
	"github.com/rdiaz1685-afk/diariopreescolar-sub000/internal/handler"
	"github.com/rdiaz1685-afk/diariopreescolar-sub000/internal/repository"
	"github.com/rdiaz1685-afk/diariopreescolar-sub000/internal/scheduler"
	"github.com/rdiaz1685-afk/diariopreescolar-sub000/internal/service"
	"github.com/rdiaz1685-afk/diariopreescolar-sub000/pkg/cache"
	"github.com/rdiaz1685-afk/diariopreescolar-sub000/pkg/config"
	"github.com/rdiaz1685-afk/diariopreescolar-sub000/pkg/database"
	"github.com/rdiaz1685-afk/diariopreescolar-sub000/pkg/jobs"
	"github.com/rdiaz1685-afk/diariopreescolar-sub000/pkg/logger"
	"github.com/rdiaz1685-afk/diariopreescolar-sub000/pkg/mailer"
	"github.com/rdiaz1685-afk/diariopreescolar-sub000/pkg/storage"
)

// @title Diario Preescolar API
// @version 1.0.0
// @description Daily activity reporting for preschool campuses
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	metrics := service.NewMetricsService()

	var cacheService *service.CacheService
	if cfg.Summary.CacheEnabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Fatalw("failed to connect to redis", "error", err)
		}
		defer redisClient.Close()
		cacheRepo := repository.NewCacheRepository(redisClient, logr)
		cacheService = service.NewCacheService(cacheRepo, metrics, cfg.Summary.CacheTTL, logr, true)
	} else {
		cacheService = service.NewCacheService(nil, metrics, cfg.Summary.CacheTTL, logr, false)
	}

	// repositories
	reportRepo := repository.NewDailyReportRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	campusRepo := repository.NewCampusRepository(db)
	guardianRepo := repository.NewGuardianRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)
	userRepo := repository.NewUserRepository(db)

	// services
	authService := service.NewAuthService(userRepo, cfg.JWT, nil, logr)
	reportService := service.NewReportService(reportRepo, studentRepo, cacheService, metrics, nil, logr)
	summaryService := service.NewSummaryService(reportRepo, groupRepo, studentRepo, cacheService, cfg.Summary.CacheTTL, logr)
	studentService := service.NewStudentService(studentRepo, groupRepo, nil, logr)
	guardianService := service.NewGuardianService(guardianRepo, studentRepo, nil)
	groupService := service.NewGroupService(groupRepo, campusRepo, nil)
	campusService := service.NewCampusService(campusRepo, nil)
	userService := service.NewUserService(userRepo, nil)
	feedbackService := service.NewFeedbackService(feedbackRepo, studentRepo, nil)

	var sender mailer.Sender = noopSender{}
	if cfg.Notifications.Enabled {
		sender = mailer.NewSendgridSender(cfg.Notifications.SendgridAPIKey, cfg.Notifications.FromName, cfg.Notifications.FromEmail)
	}
	notificationService := service.NewNotificationService(reportRepo, guardianRepo, sender, metrics, jobs.QueueConfig{
		Workers:    cfg.Notifications.WorkerConcurrency,
		MaxRetries: cfg.Notifications.WorkerRetries,
		RetryDelay: 5 * time.Second,
	}, logr)

	rootCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	notificationService.Start(rootCtx)
	defer notificationService.Stop()

	sched := scheduler.New(logr)

	var exportService *service.ExportService
	if cfg.Exports.Enabled {
		store, err := storage.NewLocalStorage(cfg.Exports.StorageDir)
		if err != nil {
			logr.Sugar().Fatalw("failed to init export storage", "error", err)
		}
		signer := storage.NewSignedURLSigner(cfg.Exports.SignedURLSecret, cfg.Exports.SignedURLTTL)
		exportService = service.NewExportService(reportRepo, store, signer, logr)

		// files stay around twice the link TTL, then the nightly sweep drops them
		if err := sched.AddExportSweep("30 3 * * *", func() (int, error) {
			return store.RemoveOlderThan(2 * cfg.Exports.SignedURLTTL)
		}); err != nil {
			logr.Sugar().Fatalw("invalid export sweep spec", "error", err)
		}
	}

	if cfg.Digest.Enabled {
		digestService := service.NewDigestService(reportRepo, groupRepo, studentRepo, userRepo, sender, metrics, logr)
		if err := sched.AddDigest(cfg.Digest.CronSpec, digestService); err != nil {
			logr.Sugar().Fatalw("invalid digest cron spec", "spec", cfg.Digest.CronSpec, "error", err)
		}
	}
	if cfg.Exports.Enabled || cfg.Digest.Enabled {
		sched.Start()
		defer sched.Stop()
	}

	handlers := routerHandlers{
		auth:      handler.NewAuthHandler(authService),
		reports:   handler.NewReportHandler(reportService, notificationService),
		summary:   handler.NewSummaryHandler(summaryService),
		students:  handler.NewStudentHandler(studentService, guardianService),
		groups:    handler.NewGroupHandler(groupService),
		campuses:  handler.NewCampusHandler(campusService),
		guardians: handler.NewGuardianHandler(guardianService),
		users:     handler.NewUserHandler(userService),
		feedback:  handler.NewFeedbackHandler(feedbackService),
		health:    handler.NewHealthHandler(db, metrics),
	}
	if exportService != nil {
		handlers.exports = handler.NewExportHandler(exportService)
	}

	router := newRouter(cfg, logr, handlers, authService, userRepo, metrics)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", server.Addr, "env", cfg.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logr.Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("forced shutdown", "error", err)
	}
}

// noopSender drops mail when notifications are disabled.
type noopSender struct{}

func (noopSender) Send(context.Context, mailer.Message) error { return nil }
