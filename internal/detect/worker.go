package detect

import (
	"strings"
	"time"

	"github.com/five82/trailcam/internal/accel"
	"github.com/five82/trailcam/internal/media"
)

// Config configures one detect worker pool bound to a single
// accelerator instance.
type Config struct {
	Info        accel.EpInfo
	Session     accel.Session
	ModelName   string // substring-matched against "rtdetr" to select postprocessing mode
	ImageSize   int
	ClassMap    map[int]string
	ConfThres   float32
	IoUThres    float32
	BatchSize   int
	Timeout     time.Duration // default 50ms
}

// DetectFrame pairs a Bbox detection list (possibly empty -> "Blank")
// with the frame's identity and metadata, ready for export.
type DetectFrame struct {
	Frame  media.Frame
	Bboxes []Bbox
	Err    error
}

// isRTDETR reports whether cfg.ModelName names an RT-DETR model, which
// uses a distinct postprocessing path (no separate NMS stage, and the
// orig_target_sizes duplication documented in processBatch).
func (c Config) isRTDETR() bool {
	return strings.Contains(strings.ToLower(c.ModelName), "rtdetr")
}

// Run drains frameCh, batching frames up to BatchSize or until Timeout
// has elapsed since the last frame was received (whichever comes
// first), runs inference on each batch, and sends one DetectFrame per
// input frame to the returned channel.
func Run(cfg Config, frameCh <-chan media.Frame) <-chan DetectFrame {
	out := make(chan DetectFrame, cfg.BatchSize)

	go func() {
		defer close(out)
		if cfg.Timeout <= 0 {
			cfg.Timeout = 50 * time.Millisecond
		}

		var batch []media.Frame
		timer := time.NewTimer(cfg.Timeout)
		defer timer.Stop()

		flush := func() {
			if len(batch) == 0 {
				return
			}
			results := processBatch(cfg, batch)
			for _, r := range results {
				out <- r
			}
			batch = batch[:0]
		}

		for {
			select {
			case f, ok := <-frameCh:
				if !ok {
					flush()
					return
				}
				batch = append(batch, f)
				if len(batch) >= cfg.BatchSize {
					flush()
				}
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(cfg.Timeout)
			case <-timer.C:
				flush()
				timer.Reset(cfg.Timeout)
			}
		}
	}()

	return out
}
