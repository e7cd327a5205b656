package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shelfshare/shelfshare/internal/audit"
	"github.com/shelfshare/shelfshare/internal/comments"
	"github.com/shelfshare/shelfshare/internal/config"
	"github.com/shelfshare/shelfshare/internal/database"
	auditrepo "github.com/shelfshare/shelfshare/internal/database/audit"
	"github.com/shelfshare/shelfshare/internal/database/books"
	commentsrepo "github.com/shelfshare/shelfshare/internal/database/comments"
	"github.com/shelfshare/shelfshare/internal/database/users"
	http_controllers "github.com/shelfshare/shelfshare/internal/http"
	"github.com/shelfshare/shelfshare/internal/identity"
	"github.com/shelfshare/shelfshare/internal/lending"
	"github.com/shelfshare/shelfshare/internal/scheduler"
	"github.com/shelfshare/shelfshare/internal/tasks"
	"github.com/shelfshare/shelfshare/internal/wishlist"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// Serve runs the HTTP server until SIGINT/SIGTERM, then shuts down within
// the configured timeout.
func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Shutdown callback first (e.g., to stop the task queue)
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

// Run wires the full service: database, repositories, services, identity,
// background queue and router, then serves.
func Run(cfg *config.Config, version string) {
	log.Printf("Starting ShelfShare v%s", version)

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	bookRepo := books.NewRepository(db.DB)
	userRepo := users.NewRepository(db.DB)
	commentRepo := commentsrepo.NewRepository(db.DB)
	auditRepo := auditrepo.NewRepository(db.DB)

	auditor := audit.NewService(auditRepo)
	lendingService := lending.NewService(bookRepo, auditor, cfg.Lending.BorrowLimit)
	wishlistService := wishlist.NewService(bookRepo, userRepo, auditor)
	commentService := comments.NewService(bookRepo, userRepo, commentRepo, auditor)

	// Session store shares the main SQLite database
	sqlDB, err := db.DB.DB()
	if err != nil {
		log.Fatalf("Failed to get SQL DB for sessions: %v", err)
	}
	sessionManager, err := identity.NewSessionManager(sqlDB, cfg.Identity)
	if err != nil {
		log.Fatalf("Failed to initialize session manager: %v", err)
	}
	identityMiddleware := identity.NewMiddleware(userRepo, sessionManager)

	// Background queue for audit retention
	var taskClient *tasks.Client
	var taskCtxCancel context.CancelFunc
	var cleanupScheduler *scheduler.AuditCleanupScheduler
	if cfg.Tasks.Enabled {
		taskCfg := tasks.Config{
			Workers:           cfg.Tasks.Workers,
			ReleaseAfter:      cfg.Tasks.ReleaseAfter,
			CleanupInterval:   cfg.Tasks.CleanupInterval,
			RetentionDuration: cfg.Tasks.RetentionDuration,
		}

		taskClient, err = tasks.NewClient(cfg.Database.Path, taskCfg)
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		taskClient.Register(
			tasks.NewCleanupAuditEventsQueue(auditRepo),
		)

		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)

		cleanupScheduler = scheduler.NewAuditCleanupScheduler(taskClient, cfg.Audit.CleanupSchedule, cfg.Audit.RetentionDays)
		if err := cleanupScheduler.Start(); err != nil {
			log.Fatalf("Failed to start audit cleanup scheduler: %v", err)
		}
	}

	routerCfg := http_controllers.RouterConfig{
		Books:              bookRepo,
		Shelves:            bookRepo,
		Users:              userRepo,
		Listings:           lendingService,
		Lending:            lendingService,
		Wishlist:           wishlistService,
		Comments:           commentService,
		Database:           db,
		IdentityMiddleware: identityMiddleware,
		SessionManager:     sessionManager,
		CSRFSecret:         []byte(cfg.Identity.CSRFSecret),
		SecureCookies:      cfg.Identity.SecureCookies,
		Version:            version,
	}

	router := http_controllers.NewRouter(routerCfg)

	onShutdown := func(ctx context.Context) {
		if cleanupScheduler != nil {
			cleanupScheduler.Stop()
		}
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
	}

	Serve(router, cfg, onShutdown)
}
