// Package config provides configuration types and defaults for trailcam.
package config

import (
	"github.com/five82/trailcam/internal/accel"
)

// Default constants for pipeline tuning knobs.
const (
	// DefaultBatchSize is the adaptive-batch target batch size.
	DefaultBatchSize int = 8

	// DefaultBatchTimeoutMs is how long a detect worker waits for a
	// batch to fill before flushing a partial batch.
	DefaultBatchTimeoutMs int = 50

	// DefaultConfThreshold is the minimum detection score kept.
	DefaultConfThreshold float32 = 0.2

	// DefaultIoUThreshold is the NMS suppression threshold.
	DefaultIoUThreshold float32 = 0.45

	// DefaultCheckpointEvery is how many export records accumulate
	// between checkpoint writes.
	DefaultCheckpointEvery int = 100

	// DefaultExporterWorkers is the fixed width of the exporter pool.
	DefaultExporterWorkers int = 4

	// DefaultRemoveRetries/DefaultRemoveRetryDelayMs govern deleting
	// staged scratch copies after decode.
	DefaultRemoveRetries      int = 3
	DefaultRemoveRetryDelayMs int = 1000
)

// AcceleratorConfig names one requested accelerator instance and how
// many detect workers should be bound to it.
type AcceleratorConfig struct {
	EP      accel.EP
	Device  int
	Workers int
}

// Config is the full set of options a run of the pipeline needs.
type Config struct {
	// InputDir is the folder to scan for media.
	InputDir string
	// ModelConfigPath is the TOML model descriptor path.
	ModelConfigPath string
	// ResultPath is where results are written (.json or .csv extension
	// selects the format).
	ResultPath string
	// ResumePath, if set, is a prior result file to resume from.
	ResumePath string
	// BufferDir, if set, enables staging: files are copied here before
	// decode and deleted after.
	BufferDir string

	Accelerators []AcceleratorConfig

	BatchSize      int
	BatchTimeoutMs int
	ConfThreshold  float32
	IoUThreshold   float32
	CheckpointEvery int
	ExporterWorkers int

	// MaxFrames caps how many frames are sampled per video (0 = all).
	MaxFrames int
	// IFrameOnly restricts video sampling to keyframes.
	IFrameOnly bool

	Verbose bool
	NoLog   bool
	LogDir  string
}

// NewConfig creates a Config with defaults applied, ready for the
// caller to override via the CLI or a config file.
func NewConfig(inputDir, modelConfigPath, resultPath string) *Config {
	return &Config{
		InputDir:        inputDir,
		ModelConfigPath: modelConfigPath,
		ResultPath:      resultPath,
		Accelerators:    []AcceleratorConfig{{EP: accel.EPCpu, Workers: 1}},
		BatchSize:       DefaultBatchSize,
		BatchTimeoutMs:  DefaultBatchTimeoutMs,
		ConfThreshold:   DefaultConfThreshold,
		IoUThreshold:    DefaultIoUThreshold,
		CheckpointEvery: DefaultCheckpointEvery,
		ExporterWorkers: DefaultExporterWorkers,
		LogDir:          ".",
	}
}

// Validate checks the configuration for internal consistency.
func (c *Config) Validate() error {
	if c.InputDir == "" {
		return ErrMissingInputDir
	}
	if c.ModelConfigPath == "" {
		return ErrMissingModelConfig
	}
	if c.ResultPath == "" {
		return ErrMissingResultPath
	}
	if c.CheckpointEvery <= 0 {
		return ErrInvalidCheckpoint
	}
	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}
	if len(c.Accelerators) == 0 {
		return ErrNoAccelerators
	}
	return nil
}
