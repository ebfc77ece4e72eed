package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/peoplecore/hrms-backend/internal/employee/bulkimport"
	"github.com/peoplecore/hrms-backend/internal/employee/consumers"
	"github.com/peoplecore/hrms-backend/internal/employee/events"
	"github.com/peoplecore/hrms-backend/internal/employee/handler"
	"github.com/peoplecore/hrms-backend/internal/employee/repository"
	"github.com/peoplecore/hrms-backend/internal/employee/service"
	"github.com/peoplecore/hrms-backend/pkg/config"
	"github.com/peoplecore/hrms-backend/pkg/database"
	"github.com/peoplecore/hrms-backend/pkg/httputil"
	"github.com/peoplecore/hrms-backend/pkg/logger"
	"github.com/peoplecore/hrms-backend/pkg/messaging"
)

func main() {
	// Load configuration
	cfg, err := config.LoadWithValidation("employee-service")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New("employee-service", cfg.Server.Environment)
	log.Info().Msg("starting Employee Service")

	// Connect to database
	db, err := database.New(&cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// Connect to RabbitMQ
	rmq, err := messaging.New(&cfg.RabbitMQ, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to RabbitMQ")
	}
	defer rmq.Close()

	// Initialize event publisher
	publisher, err := events.NewEmployeeEventPublisher(rmq, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create event publisher")
	}

	// Initialize repositories and the import engine
	store := repository.NewBulkStore(db)
	userCacheRepo := repository.NewUserCacheRepository(db)

	importer := bulkimport.NewImporter(store, log)
	importer.SetMaxRows(cfg.Import.MaxRows)

	// Initialize service
	employeeService := service.NewEmployeeService(store, importer, publisher, log)

	// Initialize handlers
	employeeHandler := handler.NewEmployeeHandler(employeeService, log)
	bulkHandler := handler.NewBulkUploadHandler(employeeService, cfg.Import.MaxUploadBytes, log)
	clientHandler := handler.NewClientHandler(employeeService, log)

	// Start user event consumer
	userConsumer, err := consumers.NewUserEventConsumer(rmq, userCacheRepo, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create user event consumer")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := userConsumer.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to start user event consumer")
	}

	// Create router
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RealIP)
	r.Use(httputil.RequestID)
	r.Use(httputil.Logger(log))
	r.Use(httputil.Recoverer(log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID", "X-Tenant-ID", "X-Tenant-Schema", "X-User-ID", "X-User-First-Name", "X-User-Last-Name", "X-User-Email", "X-User-Role"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(httputil.TenantMiddleware) // Tenant middleware with /health exception
	r.Use(httputil.ActorMiddleware)

	// Health check (no tenant required - handled by middleware)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.JSON(w, http.StatusOK, map[string]interface{}{
			"status":   "healthy",
			"service":  "employee-service",
			"database": db.Health(r.Context()),
			"rabbitmq": rmq.Health(),
		})
	})

	// API routes (tenant required)
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/employees", func(r chi.Router) {
			r.Get("/", employeeHandler.List)
			r.Post("/", employeeHandler.Create)
			r.Post("/bulk-upload", bulkHandler.Upload)
			r.Put("/bulk-upload", bulkHandler.UploadUpdate)
			r.Get("/{id}", employeeHandler.Get)
			r.Put("/{id}", employeeHandler.Update)
			r.Delete("/{id}", employeeHandler.Retire)
		})

		r.Get("/clients", clientHandler.List)
	})

	// Create server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server
	go func() {
		log.Info().Str("addr", addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Cancel context to stop consumers
	cancel()

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
