package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/cache"
	"github.com/BruksfildServices01/clinic-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/clinic-scheduler/internal/db"
	"github.com/BruksfildServices01/clinic-scheduler/internal/logger"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	"github.com/BruksfildServices01/clinic-scheduler/internal/notify"
	"github.com/BruksfildServices01/clinic-scheduler/internal/routes"
	"github.com/BruksfildServices01/clinic-scheduler/internal/storage"
	ucAvailability "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/availability"
)

func main() {

	cfg := config.Load()
	log := logger.New(cfg)
	defer func() { _ = log.Sync() }()

	db := dbpkg.NewDB(cfg, log)

	// --------------------------------------------------
	// Audit store: Mongo when configured, Postgres otherwise
	// --------------------------------------------------
	var auditStore audit.Store = audit.NewGormStore(db)
	mongoDB := dbpkg.NewMongo(cfg, log)
	if mongoDB != nil {
		ms := audit.NewMongoStore(mongoDB)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := ms.EnsureIndexes(ctx); err != nil {
			log.Warn("audit index creation failed", zap.Error(err))
		}
		cancel()
		auditStore = ms
	}
	auditLogger := audit.New(auditStore)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)

	// --------------------------------------------------
	// Slot cache
	// --------------------------------------------------
	var slotCache ucAvailability.SlotCache = cache.Nop{}
	if rdb := cache.NewRedis(cfg, log); rdb != nil {
		slotCache = cache.NewSlotCache(rdb, cfg.SlotCacheTTL(), cfg.SlotStepMinutes, log)
		log.Info("slot cache enabled", zap.String("addr", cfg.RedisAddr))
	}

	// --------------------------------------------------
	// Email
	// --------------------------------------------------
	var mailer notify.Mailer = notify.NewLogMailer(log)
	if cfg.SMTPHost != "" {
		mailer = notify.NewSMTPMailer(cfg, log)
	}
	notifier := notify.NewNotifier(mailer, cfg.ClinicEmail, log)

	// --------------------------------------------------
	// Images
	// --------------------------------------------------
	var images storage.ImageStore
	if s3 := storage.NewS3Store(cfg, log); s3 != nil {
		images = s3
	}

	// --------------------------------------------------
	// HTTP
	// --------------------------------------------------
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		middleware.RequestLogger(log),
		middleware.Recovery(log),
		middleware.CORSMiddleware(cfg.AllowedOrigins()),
	)

	if !routes.WebhookEnabled(cfg) {
		log.Warn("scheduling webhook disabled: WEBHOOK_SECRET is not set")
	}

	routes.RegisterRoutes(r, routes.Deps{
		DB:        db,
		Config:    cfg,
		Audit:     auditDispatcher,
		AuditLog:  auditLogger,
		Notifier:  notifier,
		SlotCache: slotCache,
		Images:    images,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server running", zap.String("addr", cfg.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server shutdown", zap.Error(err))
	}

	auditDispatcher.Close()
	notifier.Close()

	if mongoDB != nil {
		if err := mongoDB.Client().Disconnect(ctx); err != nil {
			log.Error("mongo disconnect", zap.Error(err))
		}
	}
}
