package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/hireflow/hireflow/internal/attachments"
	"github.com/hireflow/hireflow/internal/auth"
	"github.com/hireflow/hireflow/internal/config"
	"github.com/hireflow/hireflow/internal/database"
	"github.com/hireflow/hireflow/internal/middleware"
	"github.com/hireflow/hireflow/internal/process"
)

const ChannelSize = 100

func setupLogger(cfg *config.LogConfig) {
	var out io.Writer = os.Stderr
	if cfg.File != "" {
		out = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
		}
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(out, nil)))
}

func main() {
	// Load configuration from environment variables
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	setupLogger(&cfg.Log)

	slog.Info("configuration loaded successfully",
		"db_host", cfg.Database.Host,
		"db_port", cfg.Database.Port,
		"db_name", cfg.Database.Name,
		"db_sslmode", cfg.Database.SSLMode,
	)

	slog.Info("server configuration",
		"port", cfg.Server.Port,
		"storage_type", cfg.Storage.Type,
	)

	// Initialize database connection
	db, err := database.New(&cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			slog.Error("failed to close database", "error", err)
		}
	}()

	// Perform health check
	if err := database.HealthCheck(db); err != nil {
		log.Fatalf("database health check failed: %v", err)
	}

	// Create saved-process notification channel
	ch := make(chan process.SavedNotification, ChannelSize)

	// Initialize process manager with database connection
	pm := process.NewManager(db, ch)
	slog.Info("starting saved notification listener...")
	pm.StartSavedNotificationListener()
	slog.Info("saved notification listener started")

	// Initialize attachment storage
	driver, err := attachments.NewDriverFromConfig(context.Background(), cfg.Storage)
	if err != nil {
		log.Fatalf("failed to initialize attachment storage: %v", err)
	}
	attachmentService := attachments.NewAttachmentService(db, driver)
	attachmentHandler := attachments.NewHTTPHandler(attachmentService)

	// Auth is optional on every route; handlers fall back to a demo
	// identity when no session is present.
	authService := auth.NewAuthService(db)
	tokenExtractor := auth.NewTokenExtractor()
	authMiddleware := auth.Middleware(authService, tokenExtractor)

	// Set up HTTP routes
	pr := pm.ProcessRouter()
	nr := pm.NodeRouter()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/processes", pr.HandleCreateProcess)
	mux.HandleFunc("GET /api/processes", pr.HandleListProcesses)
	mux.HandleFunc("GET /api/processes/{processID}", pr.HandleGetProcess)
	mux.HandleFunc("PUT /api/processes/{processID}", pr.HandleUpdateProcess)
	mux.HandleFunc("DELETE /api/processes/{processID}", pr.HandleDeleteProcess)
	mux.HandleFunc("POST /api/processes/{processID}/nodes", nr.HandleCreateNode)
	mux.HandleFunc("PUT /api/nodes/{nodeID}", nr.HandleUpdateNode)
	mux.HandleFunc("DELETE /api/nodes/{nodeID}", nr.HandleDeleteNode)
	mux.HandleFunc("GET /api/interviews/{interviewID}", nr.HandleGetInterview)
	mux.HandleFunc("GET /api/todos/{todoID}", nr.HandleGetTodo)
	mux.HandleFunc("POST /api/processes/{processID}/attachments", attachmentHandler.Upload)
	mux.HandleFunc("GET /api/processes/{processID}/attachments", attachmentHandler.List)
	mux.HandleFunc("GET /api/attachments/{attachmentID}", attachmentHandler.Download)

	// Set up graceful shutdown
	serverAddr := fmt.Sprintf(":%d", cfg.Server.Port)

	// Wrap handler with auth and CORS middleware
	handler := middleware.CORS(&cfg.CORS)(authMiddleware(mux))

	server := &http.Server{
		Addr:    serverAddr,
		Handler: handler,
	}

	// Channel to listen for interrupt signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Start server in a goroutine
	go func() {
		slog.Info("starting server", "port", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("failed to start server", "error", err)
			quit <- syscall.SIGTERM
		}
	}()

	// Wait for interrupt signal
	<-quit
	slog.Info("shutting down server...")

	// Create a context with timeout for graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Attempt graceful shutdown of HTTP server
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
	} else {
		slog.Info("server gracefully stopped")
	}

	// Stop the saved notification listener
	slog.Info("stopping saved notification listener...")
	pm.StopSavedNotificationListener()

	slog.Info("server stopped")
}
