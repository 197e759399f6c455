// Package reporter provides progress reporting interfaces and
// implementations for the four host events the pipeline emits:
// devices, detect-progress, detect-complete, detect-error.
package reporter

// DeviceSummary names one enumerated accelerator for the `devices` event.
type DeviceSummary struct {
	Name string
	EP   string
	ID   int
}

// HardwareSummary is emitted once at startup with the enumerated
// accelerator set.
type HardwareSummary struct {
	Hostname string
	Devices  []DeviceSummary
}

// ProgressSnapshot carries `detect-progress` updates.
type ProgressSnapshot struct {
	FilesComplete int
	FilesTotal    int
	Percent       float32
}

// CompleteSummary carries the final `detect-complete` payload.
type CompleteSummary struct {
	ResultPath     string
	FilesProcessed int
	FramesExported int
	ErrorCount     int
}

// ReporterError carries the `detect-error` payload.
type ReporterError struct {
	Title      string
	Message    string
	Context    string
	Suggestion string
}

// FileProgressContext names the file currently being indexed/staged,
// used for verbose/diagnostic output only.
type FileProgressContext struct {
	CurrentFile int
	TotalFiles  int
}
