package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// RotatingWriter appends to a weekly log file, switching files when the
// ISO week changes. Writes fall back to stderr if the file cannot be
// opened so logging never takes the process down.
type RotatingWriter struct {
	logDir         string
	retentionWeeks int
	currentFile    *os.File
	currentWeek    string
	mu             sync.Mutex
}

// NewRotatingWriter creates a rotating writer in logDir. Files older
// than retentionWeeks are removed on rotation.
func NewRotatingWriter(logDir string, retentionWeeks int) *RotatingWriter {
	return &RotatingWriter{logDir: logDir, retentionWeeks: retentionWeeks}
}

// getWeekKey returns the week key in YYYY-Www format (ISO week)
func getWeekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

func (rw *RotatingWriter) Write(p []byte) (int, error) {
	rw.mu.Lock()
	defer rw.mu.Unlock()

	week := getWeekKey(time.Now())
	if rw.currentFile == nil || week != rw.currentWeek {
		if err := rw.rotate(week); err != nil {
			return os.Stderr.Write(p)
		}
	}

	return rw.currentFile.Write(p)
}

// rotate opens the file for targetWeek (caller must hold the lock).
func (rw *RotatingWriter) rotate(targetWeek string) error {
	if rw.currentFile != nil {
		if err := rw.currentFile.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "failed to close log file during rotation: %v\n", err)
		}
		rw.currentFile = nil
	}

	if err := os.MkdirAll(rw.logDir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory %s: %w", rw.logDir, err)
	}

	logPath := filepath.Join(rw.logDir, fmt.Sprintf("app-%s.log", targetWeek))
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", logPath, err)
	}

	rw.currentFile = file
	rw.currentWeek = targetWeek

	rw.cleanup()
	return nil
}

// Close closes the current log file.
func (rw *RotatingWriter) Close() error {
	rw.mu.Lock()
	defer rw.mu.Unlock()

	if rw.currentFile == nil {
		return nil
	}
	err := rw.currentFile.Close()
	rw.currentFile = nil
	return err
}

// cleanup removes weekly log files older than retention. Runs during
// rotation with the lock held, so it must not log through the writer.
func (rw *RotatingWriter) cleanup() {
	if rw.retentionWeeks < 1 {
		return
	}
	cutoff := time.Now().AddDate(0, 0, -7*rw.retentionWeeks)

	entries, err := os.ReadDir(rw.logDir)
	if err != nil {
		return
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), "app-") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(rw.logDir, entry.Name())); err != nil {
				fmt.Fprintf(os.Stderr, "failed to remove old log file %s: %v\n", entry.Name(), err)
			}
		}
	}
}

// SetupLogger builds a slog logger that writes to the console and a
// weekly rotating file in logDir.
func SetupLogger(logDir string, level string, retentionWeeks int) *slog.Logger {
	var slogLevel slog.Level
	switch strings.ToLower(level) {
	case "debug":
		slogLevel = slog.LevelDebug
	case "warn":
		slogLevel = slog.LevelWarn
	case "error":
		slogLevel = slog.LevelError
	default:
		slogLevel = slog.LevelInfo
	}

	writer := io.MultiWriter(os.Stdout, NewRotatingWriter(logDir, retentionWeeks))
	handler := slog.NewJSONHandler(writer, &slog.HandlerOptions{Level: slogLevel})

	return slog.New(handler)
}
