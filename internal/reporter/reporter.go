package reporter

// Reporter defines the interface for progress reporting, one method
// per host event the pipeline emits plus a couple of internal-only
// diagnostic hooks.
type Reporter interface {
	Hardware(summary HardwareSummary)
	DetectProgress(progress ProgressSnapshot)
	DetectComplete(summary CompleteSummary)
	DetectError(err ReporterError)
	FileProgress(context FileProgressContext)
	Verbose(message string)
}

// NullReporter is a no-op reporter that discards all updates.
type NullReporter struct{}

func (NullReporter) Hardware(HardwareSummary)        {}
func (NullReporter) DetectProgress(ProgressSnapshot) {}
func (NullReporter) DetectComplete(CompleteSummary)  {}
func (NullReporter) DetectError(ReporterError)       {}
func (NullReporter) FileProgress(FileProgressContext) {}
func (NullReporter) Verbose(string)                  {}
