package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stage5_report_service/internal/app"
	"stage5_report_service/internal/infra/config"
	idb "stage5_report_service/internal/infra/database"
	"stage5_report_service/internal/infra/httpapi"
	"stage5_report_service/internal/infra/logger"
	"stage5_report_service/internal/infra/scheduler"
	"stage5_report_service/internal/infra/sendgrid"
)

func main() {
	fmt.Println("Stage 5 Report Service starting...")

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Could not load application configuration: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg)
	log := logger.Get()
	log.Infof("Configuration loaded. LogLevel: %s, Environment: %s, Recipients: %d, CumulativeStartDate: %s",
		cfg.LogLevel, cfg.Environment, len(cfg.RecipientEmails), cfg.CumulativeStartDate.Format("2006-01-02"))

	// Initialize Database Connection
	db, err := idb.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Could not connect to database: %v", err)
	}
	defer db.Close()
	log.Info("Database connection established successfully.")

	// Initialize Repository
	recordRepo := idb.NewPostgresRecordRepository(db)
	log.Info("Record repository initialized.")

	// Initialize Email Transport
	mailClient := sendgrid.NewClient(cfg.SendGridEndpoint, cfg.SendGridBearerToken, cfg.SenderEmail)
	log.Info("SendGrid client initialized.")

	// Initialize Dispatcher and ReportService
	dispatcher := app.NewDispatcher(mailClient, cfg.RecipientEmails, log)
	reportService := app.NewReportService(recordRepo, dispatcher, cfg.CumulativeStartDate, log)
	log.Info("Report service initialized.")

	// Initialize ReportScheduler
	reportScheduler := scheduler.NewReportScheduler(reportService, log, cfg.CronSpecMonthly)
	reportScheduler.Start()

	// Initialize on-demand HTTP trigger
	server := httpapi.NewServer(cfg.HTTPListenAddr, reportService, log)
	go func() {
		if err := server.Start(); err != nil {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	log.Info("Application setup complete. Scheduler and HTTP trigger are running.")

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit // Block until a signal is received

	log.Info("Shutting down application...")
	reportScheduler.Stop()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorf("HTTP server shutdown error: %v", err)
	}
	// db.Close() is handled by defer
	log.Info("Application shut down gracefully.")
}
