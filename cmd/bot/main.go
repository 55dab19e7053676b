package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MATrsx/freegameping/internal/alerting"
	"github.com/MATrsx/freegameping/internal/config"
	"github.com/MATrsx/freegameping/internal/discord"
	"github.com/MATrsx/freegameping/internal/guilds"
	"github.com/MATrsx/freegameping/internal/interactions"
	"github.com/MATrsx/freegameping/internal/notify"
	"github.com/MATrsx/freegameping/internal/scan"
	"github.com/MATrsx/freegameping/internal/scheduler"
	"github.com/MATrsx/freegameping/internal/storage"
	"github.com/MATrsx/freegameping/internal/storefronts"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load environment variables from .env file if it exists
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using environment variables")
	}

	// Initialize configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set up logging
	logrus.SetLevel(logrus.InfoLevel)
	if cfg.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}
	logrus.SetFormatter(&logrus.JSONFormatter{})

	logrus.Info("Starting FreeGamePing")

	// Initialize storage: Azure Blob Storage in production, a local
	// directory when no storage account is configured
	var storageClient storage.Interface
	if cfg.StorageAccount != "" {
		storageClient, err = storage.NewAzureStorage(cfg.StorageAccount, cfg.StorageContainer)
	} else {
		logrus.Warnf("AZURE_STORAGE_ACCOUNT not set, using local storage in %s", cfg.DataDir)
		storageClient, err = storage.NewLocalStorage(cfg.DataDir)
	}
	if err != nil {
		logrus.Fatalf("Failed to initialize storage: %v", err)
	}

	// Initialize services
	guildStore := guilds.NewStore(storageClient)
	discordClient := discord.New(cfg.DiscordBotToken)
	notifyService := notify.NewService(discordClient)
	alertService := alerting.NewService(cfg)
	scanService := scan.NewService(guildStore, storageClient, storefronts.All(), notifyService, alertService)

	interactionHandler, err := interactions.NewHandler(cfg.DiscordPublicKey, cfg.DiscordAppID, guildStore, scanService, discordClient)
	if err != nil {
		logrus.Fatalf("Failed to initialize interaction handler: %v", err)
	}

	// Initialize scheduler
	schedulerService := scheduler.NewService(cfg, scanService)

	// Start scheduler
	if err := schedulerService.Start(); err != nil {
		logrus.Fatalf("Failed to start scheduler: %v", err)
	}
	defer schedulerService.Stop()

	// Set up HTTP server for interactions, health checks and metrics
	router := mux.NewRouter()

	// Discord interaction callbacks
	router.Handle("/interactions", interactionHandler).Methods("POST")

	// Health check endpoint
	router.HandleFunc("/health", healthCheckHandler).Methods("GET")

	// Metrics endpoint
	router.HandleFunc("/metrics", metricsHandler(scanService)).Methods("GET")

	// Manual trigger endpoint (for testing)
	router.HandleFunc("/trigger", triggerHandler(scanService)).Methods("POST")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start HTTP server in a goroutine
	go func() {
		logrus.Infof("HTTP server starting on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("HTTP server failed: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create a deadline for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	logrus.Info("Server exited")
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy","timestamp":"` + time.Now().Format(time.RFC3339) + `"}`))
}

func metricsHandler(scanService *scan.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		metrics := scanService.GetMetrics()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(metrics))
	}
}

func triggerHandler(scanService *scan.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		runID, started := scanService.TriggerAsync("manual")

		w.Header().Set("Content-Type", "application/json")
		if !started {
			w.WriteHeader(http.StatusConflict)
			w.Write([]byte(`{"message":"A scan is already running"}`))
			return
		}

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"message":"Scan triggered successfully","run_id":"` + runID + `"}`))
	}
}
