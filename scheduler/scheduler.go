// Package scheduler provides automated reference data reloads and
// staleness monitoring for the drug-safety API. It handles cron-based
// reloads and coordinates table swaps with the data container using
// dependency injection.
package scheduler

import (
	"fmt"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/nexahealth/nexahealth-api/interfaces"
	"github.com/nexahealth/nexahealth-api/logging"
)

// Compile-time check to ensure Scheduler implements Scheduler interface
var _ interfaces.Scheduler = (*Scheduler)(nil)

// Scheduler handles reference data reloads and staleness monitoring
// using dependency injection.
type Scheduler struct {
	dataStore interfaces.DataStore
	loader    interfaces.ReferenceLoader
	scheduler *gocron.Scheduler
	done      chan struct{}
}

// NewScheduler creates a new scheduler instance with injected dependencies
func NewScheduler(dataStore interfaces.DataStore, loader interfaces.ReferenceLoader) *Scheduler {
	return &Scheduler{
		dataStore: dataStore,
		loader:    loader,
		scheduler: gocron.NewScheduler(time.Local),
		done:      make(chan struct{}),
	}
}

// Start performs the initial load and schedules daily reloads. The
// initial load is fail-fast: without valid reference data the process
// must not serve requests.
func (s *Scheduler) Start() error {
	if err := s.reload(); err != nil {
		logging.Error("Failed to perform initial data load", "error", err)
		return fmt.Errorf("initial data load failed: %w", err)
	}

	// Reload the published datasets daily at 06:00
	_, err := s.scheduler.Every(1).Days().At("06:00").Do(func() {
		if err := s.reload(); err != nil {
			logging.Error("Failed to reload reference data", "error", err)
		}
	})

	if err != nil {
		logging.Error("Failed to schedule reloads", "error", err)
		return fmt.Errorf("failed to schedule reloads: %w", err)
	}

	s.scheduler.StartAsync()

	s.startStalenessMonitoring()

	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	close(s.done)
	s.scheduler.Stop()
}

// reload loads both reference tables and swaps them in atomically.
func (s *Scheduler) reload() error {
	// Prevent concurrent updates
	if !s.dataStore.BeginUpdate() {
		logging.Info("Update already in progress, skipping...")
		return nil
	}
	defer s.dataStore.EndUpdate()

	logging.Info("Starting reference data reload")
	start := time.Now()

	table, registry, err := s.loader.Load()
	if err != nil {
		return fmt.Errorf("failed to load reference data: %w", err)
	}

	s.dataStore.UpdateData(table, registry)

	logging.Info("Reference data reload completed",
		"duration", time.Since(start).String(),
		"symptom_count", table.Len(),
		"drug_count", registry.Len())

	return nil
}

// startStalenessMonitoring warns when the data has not been refreshed
// within a full reload cycle plus slack.
func (s *Scheduler) startStalenessMonitoring() {
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		for {
			select {
			case <-s.done:
				return
			case <-ticker.C:
				lastUpdate := s.dataStore.GetLastUpdated()
				if time.Since(lastUpdate) > 25*time.Hour {
					logging.Warn("Reference data hasn't been updated in over 25 hours",
						"last_update", lastUpdate.Format(time.RFC3339))
				}
			}
		}
	}()
}
