package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Setup creates a new Logger that writes structured logs to a timestamped
// file under logDir. Returns nil, nil if logging is disabled (noLog=true).
// The returned file handle must be closed by the caller via Close.
func Setup(logDir string, verbose, noLog bool) (*Logger, error) {
	if noLog {
		return nil, nil
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory %s: %w", logDir, err)
	}

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("trailcam_run_%s.log", timestamp)
	filePath := filepath.Join(logDir, filename)

	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file %s: %w", filePath, err)
	}

	level := LevelInfo
	if verbose {
		level = LevelDebug
	}

	logger := New(Config{Level: level, Output: file, Enabled: true})
	logger.file = file
	logger.filePath = filePath

	logger.Info("trailcam run starting", "log_file", filePath, "verbose", verbose)

	return logger, nil
}

// Close closes the underlying log file, if any.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}

// FilePath returns the path to the log file, if this logger was created via Setup.
func (l *Logger) FilePath() string {
	if l == nil {
		return ""
	}
	return l.filePath
}
