package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/five82/trailcam"
	"github.com/five82/trailcam/internal/accel"
	"github.com/five82/trailcam/internal/config"
	"github.com/five82/trailcam/internal/reporter"
)

type detectArgs struct {
	inputDir        string
	modelConfigPath string
	resultPath      string
	resumePath      string
	bufferDir       string
	accelerators    []string

	batchSize      int
	batchTimeoutMs int
	confThreshold  float32
	iouThreshold   float32

	checkpointEvery int
	exporterWorkers int
	maxFrames       int
	iframeOnly      bool

	logDir  string
	verbose bool
	noLog   bool
	jsonOut bool
}

func newDetectCmd() *cobra.Command {
	var a detectArgs

	cmd := &cobra.Command{
		Use:   "detect",
		Short: "Run the detection pipeline over a folder of photos and videos",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDetect(a)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&a.inputDir, "input", "i", "", "Input directory of photos/videos (required)")
	flags.StringVarP(&a.modelConfigPath, "model", "m", "", "Model config TOML path (required)")
	flags.StringVarP(&a.resultPath, "output", "o", "result.json", "Result file path (.json or .csv)")
	flags.StringVar(&a.resumePath, "resume", "", "Resume from a prior result file")
	flags.StringVar(&a.bufferDir, "buffer-dir", "", "Stage files here before decode (for slow network storage)")
	flags.StringSliceVar(&a.accelerators, "accelerator", nil, "accelerator spec ep[:device[:workers]], repeatable (default cpu:0:1)")

	flags.IntVar(&a.batchSize, "batch-size", config.DefaultBatchSize, "Adaptive batch target size")
	flags.IntVar(&a.batchTimeoutMs, "batch-timeout-ms", config.DefaultBatchTimeoutMs, "Max wait for a batch to fill before flushing partial")
	flags.Float32Var(&a.confThreshold, "conf", config.DefaultConfThreshold, "Minimum detection confidence kept")
	flags.Float32Var(&a.iouThreshold, "iou", config.DefaultIoUThreshold, "NMS IoU suppression threshold")

	flags.IntVar(&a.checkpointEvery, "checkpoint-every", config.DefaultCheckpointEvery, "Export records between checkpoint writes")
	flags.IntVar(&a.exporterWorkers, "exporter-workers", config.DefaultExporterWorkers, "Width of the exporter pool")
	flags.IntVar(&a.maxFrames, "max-frames", 0, "Cap sampled frames per video (0 = all)")
	flags.BoolVar(&a.iframeOnly, "iframe-only", false, "Restrict video sampling to keyframes")

	flags.StringVar(&a.logDir, "log-dir", ".", "Log directory")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose output")
	flags.BoolVar(&a.noLog, "no-log", false, "Disable log file creation")
	flags.BoolVar(&a.jsonOut, "json", false, "Emit NDJSON host events on stdout instead of terminal output")

	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("model")

	return cmd
}

func runDetect(a detectArgs) error {
	accelerators, err := parseAccelerators(a.accelerators)
	if err != nil {
		return err
	}

	opts := []trailcam.Option{
		trailcam.WithBatchSize(a.batchSize),
		trailcam.WithBatchTimeoutMs(a.batchTimeoutMs),
		trailcam.WithThresholds(a.confThreshold, a.iouThreshold),
		trailcam.WithCheckpointEvery(a.checkpointEvery),
		trailcam.WithExporterWorkers(a.exporterWorkers),
		trailcam.WithMaxFrames(a.maxFrames),
		trailcam.WithLogging(a.logDir, a.verbose, a.noLog),
	}
	if a.resumePath != "" {
		opts = append(opts, trailcam.WithResume(a.resumePath))
	}
	if a.bufferDir != "" {
		opts = append(opts, trailcam.WithBufferDir(a.bufferDir))
	}
	if a.iframeOnly {
		opts = append(opts, trailcam.WithIFrameOnly())
	}
	if len(accelerators) > 0 {
		opts = append(opts, trailcam.WithAccelerators(accelerators))
	}

	detector, err := trailcam.New(a.inputDir, a.modelConfigPath, a.resultPath, unboundSessionFactory, opts...)
	if err != nil {
		return err
	}

	var rep trailcam.Reporter
	if a.jsonOut {
		rep = reporter.NewJSONReporter()
	} else {
		rep = reporter.NewCompositeReporter(reporter.NewTerminalReporter())
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	summary, err := detector.Run(ctx, rep)
	if err != nil {
		return err
	}

	if !a.jsonOut {
		fmt.Printf("\nprocessed %d files\n", summary.FilesProcessed)
	}
	return nil
}

// parseAccelerators parses ep[:device[:workers]] specs from the
// --accelerator flag, e.g. "cuda:0:2" or "cpu".
func parseAccelerators(specs []string) ([]config.AcceleratorConfig, error) {
	out := make([]config.AcceleratorConfig, 0, len(specs))
	for _, spec := range specs {
		parts := strings.Split(spec, ":")
		ep, err := accel.ParseEP(parts[0])
		if err != nil {
			return nil, err
		}
		acc := config.AcceleratorConfig{EP: ep, Workers: 1}
		if len(parts) > 1 {
			device, err := strconv.Atoi(parts[1])
			if err != nil {
				return nil, fmt.Errorf("invalid device id in accelerator spec %q: %w", spec, err)
			}
			acc.Device = device
		}
		if len(parts) > 2 {
			workers, err := strconv.Atoi(parts[2])
			if err != nil {
				return nil, fmt.Errorf("invalid worker count in accelerator spec %q: %w", spec, err)
			}
			acc.Workers = workers
		}
		out = append(out, acc)
	}
	return out, nil
}

// unboundSessionFactory is the default session factory for the CLI
// binary. It returns an error unconditionally: the actual inference
// runtime (ONNX Runtime, TensorRT, CoreML, ...) is not linked into
// this build. A real binary wiring a runtime would pass its own
// SessionFactory to trailcam.New instead of this one.
func unboundSessionFactory(opts accel.SessionOptions, modelPath string) (accel.Session, error) {
	return nil, fmt.Errorf("no inference runtime linked into this build (requested %s, model %s)", opts.Info, modelPath)
}
