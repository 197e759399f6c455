// This file re-exports the internal Reporter interface and associated
// types so callers can receive all run events directly.
package trailcam

import "github.com/five82/trailcam/internal/reporter"

// Reporter defines the interface for progress reporting during a run.
// Implement this interface to receive detailed events directly,
// bypassing the EventHandler abstraction.
type Reporter = reporter.Reporter

// NullReporter is a no-op reporter that discards all updates.
type NullReporter = reporter.NullReporter

// HardwareSummary contains the enumerated accelerator set.
type HardwareSummary = reporter.HardwareSummary

// DeviceSummary names one enumerated accelerator.
type DeviceSummary = reporter.DeviceSummary

// ProgressSnapshot contains detect-progress information.
type ProgressSnapshot = reporter.ProgressSnapshot

// CompleteSummary contains final run results.
type CompleteSummary = reporter.CompleteSummary

// ReporterError contains error information.
type ReporterError = reporter.ReporterError

// FileProgressContext contains the current file index within a run.
type FileProgressContext = reporter.FileProgressContext
