package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/nexahealth/nexahealth-api/config"
	"github.com/nexahealth/nexahealth-api/data"
	"github.com/nexahealth/nexahealth-api/logging"
	"github.com/nexahealth/nexahealth-api/refdata"
	"github.com/nexahealth/nexahealth-api/reports"
	"github.com/nexahealth/nexahealth-api/scheduler"
	"github.com/nexahealth/nexahealth-api/server"
)

func main() {
	// Env file is optional; real deployments set variables directly
	if err := godotenv.Load(); err != nil {
		logging.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		logging.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.InitLogger("logs", cfg.LogLevel, cfg.LogRetentionWeeks)

	dataContainer := data.NewDataContainer()
	dataContainer.SetServerStartTime(time.Now())

	loader := refdata.NewFileLoader(cfg.SymptomDataPath, cfg.DrugRegistryPath)

	// Initial load is fail-fast: the engines must not run without
	// valid reference data.
	sched := scheduler.NewScheduler(dataContainer, loader)
	if err := sched.Start(); err != nil {
		logging.Error("Failed to start scheduler", "error", err)
		os.Exit(1)
	}
	defer sched.Stop()

	reportStore := reports.NewInMemoryStore()

	srv := server.NewServer(cfg, dataContainer, reportStore)

	// Channel to listen for interrupt signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Start the server in a goroutine
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Block until a signal is received
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Error("Shutdown error", "error", err)
	}

	logging.Info("Server shutdown complete")
}
