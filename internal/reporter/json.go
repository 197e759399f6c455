package reporter

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// JSONReporter emits NDJSON host events compatible with a GUI shell
// driving the pipeline as a subprocess.
type JSONReporter struct {
	writer             io.Writer
	mu                 sync.Mutex
	lastProgressBucket int
	lastProgressTime   time.Time
}

// NewJSONReporter creates a JSON reporter that writes to stdout.
func NewJSONReporter() *JSONReporter {
	return &JSONReporter{writer: os.Stdout, lastProgressBucket: -1}
}

// NewJSONReporterWithWriter creates a JSON reporter with a custom writer.
func NewJSONReporterWithWriter(w io.Writer) *JSONReporter {
	return &JSONReporter{writer: w, lastProgressBucket: -1}
}

func (r *JSONReporter) timestamp() int64 {
	return time.Now().Unix()
}

func (r *JSONReporter) write(v interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	_, _ = fmt.Fprintln(r.writer, string(data))
}

func (r *JSONReporter) Hardware(summary HardwareSummary) {
	r.write(map[string]interface{}{
		"type":      "devices",
		"hostname":  summary.Hostname,
		"devices":   summary.Devices,
		"timestamp": r.timestamp(),
	})
}

// DetectProgress is throttled by an integer-percent bucket plus a
// minimum interval, so a full progress channel (or a very fast file
// set) can't flood the host with more than one message per bucket per
// 5 seconds. Once Percent reaches 99, every update is emitted.
func (r *JSONReporter) DetectProgress(progress ProgressSnapshot) {
	const bucketSize = 1
	const minInterval = 5 * time.Second

	bucket := int(progress.Percent) / bucketSize
	now := time.Now()

	r.mu.Lock()
	intervalElapsed := r.lastProgressTime.IsZero() || now.Sub(r.lastProgressTime) >= minInterval
	shouldEmit := bucket > r.lastProgressBucket || intervalElapsed || progress.Percent >= 99.0
	if !shouldEmit {
		r.mu.Unlock()
		return
	}
	if bucket > r.lastProgressBucket {
		r.lastProgressBucket = bucket
	}
	r.lastProgressTime = now
	r.mu.Unlock()

	r.write(map[string]interface{}{
		"type":           "detect-progress",
		"files_complete": progress.FilesComplete,
		"files_total":    progress.FilesTotal,
		"percent":        progress.Percent,
		"timestamp":      r.timestamp(),
	})
}

func (r *JSONReporter) DetectComplete(summary CompleteSummary) {
	r.write(map[string]interface{}{
		"type":            "detect-complete",
		"result_path":     summary.ResultPath,
		"files_processed": summary.FilesProcessed,
		"frames_exported": summary.FramesExported,
		"error_count":     summary.ErrorCount,
		"timestamp":       r.timestamp(),
	})
}

func (r *JSONReporter) DetectError(err ReporterError) {
	r.write(map[string]interface{}{
		"type":       "detect-error",
		"title":      err.Title,
		"message":    err.Message,
		"context":    err.Context,
		"suggestion": err.Suggestion,
		"timestamp":  r.timestamp(),
	})
}

func (r *JSONReporter) FileProgress(context FileProgressContext) {
	r.write(map[string]interface{}{
		"type":         "file_progress",
		"current_file": context.CurrentFile,
		"total_files":  context.TotalFiles,
		"timestamp":    r.timestamp(),
	})
}

func (r *JSONReporter) Verbose(message string) {
	r.write(map[string]interface{}{
		"type":      "verbose",
		"message":   message,
		"timestamp": r.timestamp(),
	})
}
