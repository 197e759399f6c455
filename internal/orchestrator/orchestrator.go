// Package orchestrator wires the pipeline stages -- index, stage,
// decode, detect, export -- into one end-to-end run and reports
// progress back through a reporter.Reporter.
package orchestrator

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/five82/trailcam/internal/accel"
	"github.com/five82/trailcam/internal/config"
	"github.com/five82/trailcam/internal/detect"
	trailcamerrors "github.com/five82/trailcam/internal/errors"
	"github.com/five82/trailcam/internal/export"
	"github.com/five82/trailcam/internal/fileitem"
	"github.com/five82/trailcam/internal/indexer"
	"github.com/five82/trailcam/internal/media"
	"github.com/five82/trailcam/internal/modelconfig"
	"github.com/five82/trailcam/internal/reporter"
	"github.com/five82/trailcam/internal/stage"
)

// SessionFactory constructs an accelerator inference session for one
// requested accelerator instance. The actual runtime binding is
// injected by the caller; the pipeline only drives batched tensors
// through whatever Session comes back.
type SessionFactory func(opts accel.SessionOptions, modelPath string) (accel.Session, error)

// Pipeline wires one full run of the index -> stage -> decode ->
// detect -> export flow.
type Pipeline struct {
	cfg      *config.Config
	model    modelconfig.ModelConfig
	sessions SessionFactory
	reporter reporter.Reporter
}

// New creates a Pipeline ready to Run.
func New(cfg *config.Config, model modelconfig.ModelConfig, sessions SessionFactory, rep reporter.Reporter) *Pipeline {
	if rep == nil {
		rep = reporter.NullReporter{}
	}
	return &Pipeline{cfg: cfg, model: model, sessions: sessions, reporter: rep}
}

// Summary reports the outcome of a completed Run.
type Summary struct {
	FilesProcessed int
	FramesExported int
	ErrorCount     int
}

// Run executes one end-to-end pass: index the input directory,
// optionally resume from a prior checkpoint, decode and detect every
// pending file, and export results with periodic checkpointing.
func (p *Pipeline) Run(ctx context.Context) (Summary, error) {
	if err := p.cfg.Validate(); err != nil {
		return Summary{}, err
	}

	p.reportHardware()

	files, err := indexer.Index(p.cfg.InputDir)
	if err != nil {
		wrapped := trailcamerrors.NewIndexError("index input directory", err)
		p.reportFailure(wrapped)
		return Summary{}, wrapped
	}

	pending := files
	var seed []export.ExportFrame
	if p.cfg.ResumePath != "" {
		resume, err := export.LoadResume(p.cfg.ResumePath)
		if err != nil {
			p.reportFailure(err)
			return Summary{}, err
		}
		seed = resume.Accumulator
		pending = resume.FilterPending(files)
	}

	var stager *stage.Stager
	if p.cfg.BufferDir != "" {
		stager, err = stage.New(p.cfg.BufferDir)
		if err != nil {
			p.reportFailure(err)
			return Summary{}, err
		}
		if err := stager.Cleanup(); err != nil {
			p.reportFailure(err)
			return Summary{}, err
		}
		defer func() { _ = stager.Cleanup() }()
	}

	staged, err := p.stageFiles(stager, pending)
	if err != nil {
		p.reportFailure(err)
		return Summary{}, err
	}

	sessions, detectConfigs, err := p.buildDetectConfigs()
	if err != nil {
		p.reportFailure(err)
		return Summary{}, err
	}
	defer func() {
		for _, s := range sessions {
			_ = s.Close()
		}
	}()

	acc := export.NewAccumulator(seed)
	exporter := export.NewExporter(acc, p.cfg.ResultPath, p.cfg.CheckpointEvery)

	summary, err := p.runChannels(ctx, staged, stager != nil, detectConfigs, exporter)
	if err != nil {
		p.reportFailure(err)
		return Summary{}, err
	}

	if err := exporter.Final(); err != nil {
		p.reportFailure(err)
		return Summary{}, err
	}

	final := acc.Snapshot()
	errorCount := 0
	for _, f := range final {
		if f.Error != nil {
			errorCount++
		}
	}
	summary.FramesExported = len(final)
	summary.ErrorCount = errorCount

	p.reporter.DetectComplete(reporter.CompleteSummary{
		ResultPath:     p.cfg.ResultPath,
		FilesProcessed: summary.FilesProcessed,
		FramesExported: summary.FramesExported,
		ErrorCount:     summary.ErrorCount,
	})

	return summary, nil
}

func (p *Pipeline) stageFiles(stager *stage.Stager, pending []fileitem.FileItem) ([]fileitem.FileItem, error) {
	if stager == nil {
		return pending, nil
	}
	staged := make([]fileitem.FileItem, 0, len(pending))
	for _, f := range pending {
		copied, err := stager.Copy(f)
		if err != nil {
			return nil, err
		}
		staged = append(staged, copied)
	}
	return staged, nil
}

// buildDetectConfigs constructs one accel.Session per configured
// accelerator and one detect.Config per requested worker on that
// accelerator (workers on the same accelerator share its Session).
func (p *Pipeline) buildDetectConfigs() ([]accel.Session, []detect.Config, error) {
	modelCacheDir := filepath.Dir(p.model.ModelPath)
	classMap := p.model.ClassMap()

	var sessions []accel.Session
	var configs []detect.Config
	for _, a := range p.cfg.Accelerators {
		info := accel.EpInfo{Ep: a.EP, ID: a.Device}
		opts := accel.BuildSessionOptions(info, modelCacheDir, p.model.ImageSize)

		session, err := p.sessions(opts, p.model.ModelPath)
		if err != nil {
			for _, s := range sessions {
				_ = s.Close()
			}
			return nil, nil, trailcamerrors.NewModelError("create accelerator session", err)
		}
		sessions = append(sessions, session)

		workers := a.Workers
		if workers <= 0 {
			workers = 1
		}
		for i := 0; i < workers; i++ {
			configs = append(configs, detect.Config{
				Info:      info,
				Session:   session,
				ModelName: p.model.Name,
				ImageSize: p.model.ImageSize,
				ClassMap:  classMap,
				ConfThres: p.cfg.ConfThreshold,
				IoUThres:  p.cfg.IoUThreshold,
				BatchSize: p.cfg.BatchSize,
				Timeout:   msDuration(p.cfg.BatchTimeoutMs),
			})
		}
	}
	return sessions, configs, nil
}

// runChannels wires the decode -> detect -> export channel pipeline
// and blocks until every stage has drained.
func (p *Pipeline) runChannels(ctx context.Context, files []fileitem.FileItem, staged bool, detectConfigs []detect.Config, exporter *export.Exporter) (Summary, error) {
	tracker := newProgressTracker(len(files))

	mediaPool := media.NewPool(media.Config{
		ImageSize:        p.model.ImageSize,
		MaxFrames:        p.cfg.MaxFrames,
		IFrameOnly:       p.cfg.IFrameOnly,
		Workers:          detectWorkerCount(detectConfigs),
		Staged:           staged,
		RemoveRetries:    config.DefaultRemoveRetries,
		RemoveRetryDelay: msDuration(config.DefaultRemoveRetryDelayMs),
	})
	results := mediaPool.Run(ctx, files)

	frameCh := make(chan media.Frame, p.cfg.BatchSize*2)
	exportCh := make(chan export.ExportFrame, p.cfg.ExporterWorkers*2)
	exportWg := exporter.RunPool(exportCh, p.cfg.ExporterWorkers)

	detectChans := make([]<-chan detect.DetectFrame, len(detectConfigs))
	for i, cfg := range detectConfigs {
		detectChans[i] = detect.Run(cfg, frameCh)
	}
	detectOut := fanInDetect(detectChans)

	var feedWg sync.WaitGroup
	feedWg.Add(2)

	go func() {
		defer feedWg.Done()
		defer close(frameCh)
		for r := range results {
			if r.Err != nil {
				id := r.Err.File.Key()
				tracker.seedTotal(id, 1)
				exportCh <- export.FromErrFile(*r.Err)
				if tracker.markDone(id, 1) {
					p.reportProgress(tracker)
				}
				continue
			}
			if len(r.Frames) == 0 {
				continue
			}
			tracker.seedTotal(r.Frames[0].File.Key(), len(r.Frames))
			for _, f := range r.Frames {
				frameCh <- f
			}
		}
	}()

	classMap := p.model.ClassMap()
	go func() {
		defer feedWg.Done()
		for df := range detectOut {
			exportCh <- export.FromDetectFrame(df, classMap)
			if tracker.markDone(df.Frame.File.Key(), 1) {
				p.reportProgress(tracker)
			}
		}
	}()

	go func() {
		feedWg.Wait()
		close(exportCh)
	}()

	exportWg.Wait()

	done, _ := tracker.snapshot()
	return Summary{FilesProcessed: done}, nil
}

func fanInDetect(chans []<-chan detect.DetectFrame) <-chan detect.DetectFrame {
	out := make(chan detect.DetectFrame, len(chans)*4)
	var wg sync.WaitGroup
	wg.Add(len(chans))
	for _, ch := range chans {
		go func(c <-chan detect.DetectFrame) {
			defer wg.Done()
			for df := range c {
				out <- df
			}
		}(ch)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

func detectWorkerCount(configs []detect.Config) int {
	if len(configs) == 0 {
		return 1
	}
	return len(configs)
}

func msDuration(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

func (p *Pipeline) reportProgress(t *progressTracker) {
	done, total := t.snapshot()
	var percent float32
	if total > 0 {
		percent = float32(done) / float32(total) * 100
	}
	p.reporter.DetectProgress(reporter.ProgressSnapshot{FilesComplete: done, FilesTotal: total, Percent: percent})
}

func (p *Pipeline) reportHardware() {
	requested := make([]accel.EpInfo, 0, len(p.cfg.Accelerators))
	for _, a := range p.cfg.Accelerators {
		if a.EP == accel.EPCpu {
			continue
		}
		requested = append(requested, accel.EpInfo{Ep: a.EP, ID: a.Device})
	}
	devices := accel.EnumerateDevices(requested)
	summaries := make([]reporter.DeviceSummary, len(devices))
	for i, d := range devices {
		summaries[i] = reporter.DeviceSummary{Name: d.Name, EP: d.Info.Ep.String(), ID: d.Info.ID}
	}

	hostname, _ := os.Hostname()
	p.reporter.Hardware(reporter.HardwareSummary{Hostname: hostname, Devices: summaries})
}

func (p *Pipeline) reportFailure(err error) {
	p.reporter.DetectError(reporter.ReporterError{
		Title:   "detect run failed",
		Message: err.Error(),
	})
}
