package trailcam

import (
	"context"

	"github.com/five82/trailcam/internal/config"
	"github.com/five82/trailcam/internal/logging"
	"github.com/five82/trailcam/internal/modelconfig"
	"github.com/five82/trailcam/internal/orchestrator"
)

// SessionFactory constructs an accelerator inference session for one
// requested accelerator instance. Callers supply the actual runtime
// binding (ONNX Runtime, TensorRT, CoreML, ...); the library only
// drives batched tensors through whatever Session comes back.
type SessionFactory = orchestrator.SessionFactory

// Summary reports the outcome of a completed run.
type Summary = orchestrator.Summary

// Detector is the main entry point for running the detection pipeline
// over a folder of photos and videos.
type Detector struct {
	config   *config.Config
	model    modelconfig.ModelConfig
	sessions SessionFactory
}

// Option configures a Detector.
type Option func(*config.Config)

// New creates a Detector bound to inputDir, a TOML model descriptor at
// modelConfigPath, and a result file at resultPath. sessions
// constructs accelerator sessions on demand, one per configured
// accelerator.
func New(inputDir, modelConfigPath, resultPath string, sessions SessionFactory, opts ...Option) (*Detector, error) {
	cfg := config.NewConfig(inputDir, modelConfigPath, resultPath)
	for _, opt := range opts {
		opt(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	model, err := modelconfig.Load(modelConfigPath)
	if err != nil {
		return nil, err
	}

	return &Detector{config: cfg, model: model, sessions: sessions}, nil
}

// WithResume resumes a prior run from an existing JSON/CSV result file.
func WithResume(path string) Option {
	return func(c *config.Config) { c.ResumePath = path }
}

// WithBufferDir enables staging: files are copied to dir before
// decode and deleted after, so slow network storage doesn't stall the
// pipeline.
func WithBufferDir(dir string) Option {
	return func(c *config.Config) { c.BufferDir = dir }
}

// WithAccelerators overrides the default single-CPU accelerator set.
func WithAccelerators(accs []config.AcceleratorConfig) Option {
	return func(c *config.Config) { c.Accelerators = accs }
}

// WithBatchSize overrides the adaptive-batch target batch size.
func WithBatchSize(n int) Option {
	return func(c *config.Config) { c.BatchSize = n }
}

// WithBatchTimeoutMs overrides how long a detect worker waits for a
// batch to fill before flushing a partial batch.
func WithBatchTimeoutMs(ms int) Option {
	return func(c *config.Config) { c.BatchTimeoutMs = ms }
}

// WithThresholds overrides the confidence and IoU thresholds.
func WithThresholds(conf, iou float32) Option {
	return func(c *config.Config) {
		c.ConfThreshold = conf
		c.IoUThreshold = iou
	}
}

// WithCheckpointEvery overrides how many export records accumulate
// between checkpoint writes.
func WithCheckpointEvery(n int) Option {
	return func(c *config.Config) { c.CheckpointEvery = n }
}

// WithExporterWorkers overrides the width of the exporter pool.
func WithExporterWorkers(n int) Option {
	return func(c *config.Config) { c.ExporterWorkers = n }
}

// WithMaxFrames caps how many frames are sampled per video (0 = all).
func WithMaxFrames(n int) Option {
	return func(c *config.Config) { c.MaxFrames = n }
}

// WithIFrameOnly restricts video sampling to keyframes.
func WithIFrameOnly() Option {
	return func(c *config.Config) { c.IFrameOnly = true }
}

// WithLogging configures file logging for a run.
func WithLogging(logDir string, verbose, noLog bool) Option {
	return func(c *config.Config) {
		c.LogDir = logDir
		c.Verbose = verbose
		c.NoLog = noLog
	}
}

// Run executes the pipeline once, reporting progress and events to
// rep. A nil rep discards all updates.
func (d *Detector) Run(ctx context.Context, rep Reporter) (Summary, error) {
	logger, err := logging.Setup(d.config.LogDir, d.config.Verbose, d.config.NoLog)
	if err != nil {
		return Summary{}, err
	}
	defer func() { _ = logger.Close() }()

	pipeline := orchestrator.New(d.config, d.model, d.sessions, rep)
	return pipeline.Run(ctx)
}

// RunWithHandler adapts an EventHandler to Reporter and runs the
// pipeline, for callers who want typed Events rather than the raw
// Reporter interface.
func (d *Detector) RunWithHandler(ctx context.Context, handler EventHandler) (Summary, error) {
	var rep Reporter = NullReporter{}
	if handler != nil {
		rep = newEventReporter(handler)
	}
	return d.Run(ctx, rep)
}

// eventReporter adapts an EventHandler to the Reporter interface.
type eventReporter struct {
	handler EventHandler
}

func newEventReporter(handler EventHandler) *eventReporter {
	return &eventReporter{handler: handler}
}

func (r *eventReporter) Hardware(s HardwareSummary) {
	devices := make([]DeviceInfo, len(s.Devices))
	for i, d := range s.Devices {
		devices[i] = DeviceInfo{Name: d.Name, EP: d.EP, ID: d.ID}
	}
	_ = r.handler(DevicesEvent{
		BaseEvent: BaseEvent{EventType: EventTypeDevices, Time: NewTimestamp()},
		Hostname:  s.Hostname,
		Devices:   devices,
	})
}

func (r *eventReporter) DetectProgress(p ProgressSnapshot) {
	_ = r.handler(DetectProgressEvent{
		BaseEvent:     BaseEvent{EventType: EventTypeDetectProgress, Time: NewTimestamp()},
		FilesComplete: p.FilesComplete,
		FilesTotal:    p.FilesTotal,
		Percent:       p.Percent,
	})
}

func (r *eventReporter) DetectComplete(s CompleteSummary) {
	_ = r.handler(DetectCompleteEvent{
		BaseEvent:      BaseEvent{EventType: EventTypeDetectComplete, Time: NewTimestamp()},
		ResultPath:     s.ResultPath,
		FilesProcessed: s.FilesProcessed,
		FramesExported: s.FramesExported,
		ErrorCount:     s.ErrorCount,
	})
}

func (r *eventReporter) DetectError(e ReporterError) {
	_ = r.handler(DetectErrorEvent{
		BaseEvent:  BaseEvent{EventType: EventTypeDetectError, Time: NewTimestamp()},
		Title:      e.Title,
		Message:    e.Message,
		Context:    e.Context,
		Suggestion: e.Suggestion,
	})
}

func (r *eventReporter) FileProgress(FileProgressContext) {}
func (r *eventReporter) Verbose(string)                   {}
