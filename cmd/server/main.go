package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "equipment-rental-backend/internal/api/http"
	"equipment-rental-backend/internal/config"
	"equipment-rental-backend/internal/logger"
	"equipment-rental-backend/internal/repository/postgres"
	"equipment-rental-backend/internal/service"

	_ "github.com/lib/pq"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	migrate := flag.Bool("migrate", false, "Create missing tables before serving")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting equipment rental backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress(), "allowed_origins", cfg.Server.AllowedOrigins)
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	rates := cfg.Pricing.QuoteRates()
	logger.Info("Quote pricing policy", "insurance_rate", rates.InsuranceRate, "tax_rate", rates.TaxRate)

	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	if *migrate {
		if err := postgres.EnsureSchema(context.Background(), db); err != nil {
			log.Fatalf("Failed to apply schema: %v", err)
		}
		logger.Info("Database schema is up to date")
	}

	store := postgres.NewStore(db)

	var emailSvc service.EmailService
	if cfg.Email.SendGridAPIKey != "" {
		logger.Info("Email delivery via SendGrid", "from", cfg.Email.FromEmail, "sales_inbox", cfg.Email.SalesInbox)
		emailSvc = service.NewSendGridEmailService(cfg.Email.SendGridAPIKey, cfg.Email.FromEmail, cfg.Email.FromName, cfg.Email.SalesInbox)
	} else {
		logger.Warn("SENDGRID_API_KEY not set, quote emails will only be logged")
		emailSvc = service.NewLogEmailService()
	}

	catalogSvc := service.NewCatalogService(store.EquipmentRepository, int32(cfg.Catalog.DefaultPageSize), int32(cfg.Catalog.MaxPageSize))
	inventorySvc := service.NewInventoryService(store.InventoryRepository, store.EquipmentRepository)
	quoteSvc := service.NewQuoteService(
		store.QuoteRepository,
		store.EquipmentRepository,
		store.InventoryRepository,
		emailSvc,
		rates,
		int32(cfg.Catalog.DefaultPageSize),
		int32(cfg.Catalog.MaxPageSize),
	)

	handler := httpapi.NewHandler(httpapi.Services{
		Catalog:   catalogSvc,
		Inventory: inventorySvc,
		Quotes:    quoteSvc,
	}, cfg.Server.AllowedOrigins)

	srv := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error", "error", err)
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down HTTP server...")
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeoutSeconds)*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}
	logger.Info("HTTP server stopped")
}
