package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rpattn/roaslytics/internal/analytics"
	"github.com/rpattn/roaslytics/internal/config"
	"github.com/rpattn/roaslytics/internal/db"
	"github.com/rpattn/roaslytics/internal/export"
	"github.com/rpattn/roaslytics/internal/ingestion"
	"github.com/rpattn/roaslytics/internal/middleware"
	"github.com/rpattn/roaslytics/internal/repository"

	"github.com/rs/cors"
	"github.com/shopspring/decimal"
)

func main() {
	// Create context
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Ratios render as JSON numbers, matching the dashboard contract.
	decimal.MarshalJSONWithoutQuotes = true

	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Setup database connection
	conn, err := db.NewConnection(ctx, cfg.DB)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer conn.Close()

	// Run migrations
	if err := db.RunMigrations(ctx, conn.Pool, cfg.Server.MigrationsDir); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Create repositories and services
	store := repository.NewStore(conn.Pool)
	runner := repository.NewTxRunner(conn)

	ingestService := ingestion.NewService(runner)
	analyticsService := analytics.NewService(store.Tracking, store.Payouts)

	mux := http.NewServeMux()
	mux.Handle("/api/upload", ingestion.NewHTTPHandler(ingestService))
	mux.Handle("/api/clear", ingestion.NewClearHandler(ingestService))
	mux.Handle("/api/export", export.NewHTTPHandler(analyticsService))
	mux.Handle("/api/", analytics.NewHTTPHandler(analyticsService))

	// Setup CORS
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      corsHandler.Handler(middleware.LoggingMiddleware(mux)),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting ROAS analytics server on %s", cfg.Server.Addr)

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
