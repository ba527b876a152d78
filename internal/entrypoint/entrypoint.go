package entrypoint

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
	"go.uber.org/zap"

	"github.com/mrlokans/library/internal/audit"
	"github.com/mrlokans/library/internal/config"
	"github.com/mrlokans/library/internal/database"
	auditstore "github.com/mrlokans/library/internal/database/audit"
	"github.com/mrlokans/library/internal/database/authors"
	"github.com/mrlokans/library/internal/database/books"
	http_controllers "github.com/mrlokans/library/internal/http"
	"github.com/mrlokans/library/internal/logging"
	"github.com/mrlokans/library/internal/paging"
	"github.com/mrlokans/library/internal/scheduler"
	"github.com/mrlokans/library/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, logger *zap.Logger, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		logger.Info("starting server", zap.String("host", cfg.HTTP.Host), zap.Int32("port", cfg.HTTP.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen", zap.Error(err))
		}
	}()

	// kill (no param) sends SIGTERM, kill -2 is SIGINT; SIGKILL can't be caught
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server", zap.Duration("timeout", timeout))

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}

	// Stop background work once no requests are in flight
	if onShutdown != nil {
		onShutdown(ctx)
	}

	logger.Info("server exiting")
}

func Run(cfg *config.Config, version string) {
	logger, restore, err := logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	defer restore()

	logger.Info("starting library", zap.String("version", version))

	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		logger.Fatal("failed to initialize database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("error closing database", zap.Error(err))
		}
	}()

	if cfg.Database.SeedData {
		if _, err := db.Seed(); err != nil {
			logger.Fatal("failed to seed database", zap.Error(err))
		}
	}

	authorRepo := authors.NewRepository(db.DB)
	bookRepo := books.NewRepository(db.DB)
	auditService := audit.NewService(auditstore.NewRepository(db.DB), audit.NewAuditor(cfg.Audit.Dir))

	routerCfg := http_controllers.RouterConfig{
		AuthorStore: authorRepo,
		BookStore:   bookRepo,
		Database:    db,
		Limits: paging.Limits{
			DefaultPageSize: cfg.Paging.DefaultPageSize,
			MaxPageSize:     cfg.Paging.MaxPageSize,
		},
		HypermediaMediaType: cfg.Links.HypermediaMediaType,
		BaseURL:             cfg.Links.BaseURL,
		AuditLogger:         auditService,
		AuditReader:         auditService,
		Version:             version,
		Logger:              logger,
	}

	// Initialize task queue if enabled
	var taskClient *tasks.Client
	var purgeScheduler *scheduler.PurgeScheduler
	taskCtx, taskCtxCancel := context.WithCancel(context.Background())
	defer taskCtxCancel()

	if cfg.Tasks.Enabled {
		taskCfg := tasks.Config{
			Workers:         cfg.Tasks.Workers,
			ReleaseAfter:    cfg.Tasks.ReleaseAfter,
			CleanupInterval: cfg.Tasks.CleanupInterval,
		}

		taskClient, err = tasks.NewClient(cfg.Database.Path, taskCfg, logger)
		if err != nil {
			logger.Fatal("failed to initialize task queue", zap.Error(err))
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				logger.Error("error closing task client", zap.Error(err))
			}
		}()

		taskClient.Register(
			tasks.NewPurgeDeletedAuthorsQueue(authorRepo, auditService, logger),
			tasks.NewCleanupAuditEventsQueue(auditService, logger),
		)
		go taskClient.Start(taskCtx)

		purgeScheduler = scheduler.NewPurgeScheduler(taskClient, scheduler.PurgeConfig{
			Schedule:           cfg.Purge.Schedule,
			Retention:          cfg.Purge.Retention,
			AuditRetentionDays: cfg.Audit.RetentionDays,
		}, logger)
		if cfg.Purge.Enabled {
			if err := purgeScheduler.Start(taskCtx); err != nil {
				logger.Fatal("failed to start purge scheduler", zap.Error(err))
			}
		}

		routerCfg.TaskQueue = taskClient
		routerCfg.Maintenance = purgeScheduler
	}

	router, err := http_controllers.NewRouter(routerCfg)
	if err != nil {
		logger.Fatal("failed to build router", zap.Error(err))
	}

	onShutdown := func(ctx context.Context) {
		if purgeScheduler != nil {
			purgeScheduler.Stop()
		}
		if taskClient != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
		if err := auditService.Wait(ctx); err != nil {
			logger.Warn("pending audit writes abandoned", zap.Error(err))
		}
	}

	Serve(router, cfg, logger, onShutdown)
}
