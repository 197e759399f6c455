package export

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	trailcamerrors "github.com/five82/trailcam/internal/errors"
)

// Format selects the on-disk result file format.
type Format int

const (
	FormatJSON Format = iota
	FormatCSV
)

// ParseFormat selects a Format from a result file's extension.
func ParseFormat(path string) Format {
	if strings.ToLower(filepath.Ext(path)) == ".csv" {
		return FormatCSV
	}
	return FormatJSON
}

// Accumulator is the mutex-guarded shared state every exporter worker
// appends to: the full in-memory result set plus a running count used
// to decide when to checkpoint. A single shared accumulator behind a
// mutex, fed by a generously buffered channel, keeps the
// checkpoint-cadence logic in one place regardless of how many
// exporter goroutines feed it.
type Accumulator struct {
	mu      sync.Mutex
	frames  []ExportFrame
	counter int
}

// NewAccumulator creates an Accumulator seeded with any frames
// recovered from a checkpoint (see LoadResume).
func NewAccumulator(seed []ExportFrame) *Accumulator {
	return &Accumulator{frames: append([]ExportFrame(nil), seed...)}
}

// Snapshot returns a copy of the accumulated frames.
func (a *Accumulator) Snapshot() []ExportFrame {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]ExportFrame, len(a.frames))
	copy(out, a.frames)
	return out
}

// Exporter drains a channel of ExportFrames, appending each to a
// shared Accumulator and periodically writing a checkpoint snapshot
// to resultPath. Checkpointing happens every `checkpoint` frames; the
// counter is checked before the new frame is appended and before it is
// incremented, so the (N+1)th frame's arrival triggers a write of the
// first N frames; the arriving frame is not part of that snapshot.
type Exporter struct {
	acc        *Accumulator
	resultPath string
	format     Format
	checkpoint int
}

// NewExporter creates an Exporter.
func NewExporter(acc *Accumulator, resultPath string, checkpoint int) *Exporter {
	return &Exporter{acc: acc, resultPath: resultPath, format: ParseFormat(resultPath), checkpoint: checkpoint}
}

// RunPool starts `workers` exporter goroutines draining in, returning
// a WaitGroup the caller should Wait on after closing in.
func (e *Exporter) RunPool(in <-chan ExportFrame, workers int) *sync.WaitGroup {
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for frame := range in {
				e.handle(frame)
			}
		}()
	}
	return &wg
}

func (e *Exporter) handle(frame ExportFrame) {
	e.acc.mu.Lock()
	shouldCheckpoint := e.checkpoint > 0 && e.acc.counter%e.checkpoint == 0 && e.acc.counter != 0
	var snapshot []ExportFrame
	if shouldCheckpoint {
		snapshot = make([]ExportFrame, len(e.acc.frames))
		copy(snapshot, e.acc.frames)
	}
	e.acc.frames = append(e.acc.frames, frame)
	e.acc.counter++
	e.acc.mu.Unlock()

	if shouldCheckpoint {
		_ = e.write(snapshot)
	}
}

// Final writes the last, complete snapshot. Call once all exporter
// workers have exited.
func (e *Exporter) Final() error {
	return e.write(e.acc.Snapshot())
}

func (e *Exporter) write(frames []ExportFrame) error {
	f, err := os.Create(e.resultPath)
	if err != nil {
		return trailcamerrors.NewExportError("create result file", err)
	}
	defer f.Close()

	if e.format == FormatCSV {
		if err := WriteCSV(f, frames); err != nil {
			return trailcamerrors.NewExportError("write CSV result file", err)
		}
		return nil
	}
	return writeJSON(f, frames)
}

func writeJSON(w io.Writer, frames []ExportFrame) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(frames); err != nil {
		return trailcamerrors.NewExportError("write JSON result file", err)
	}
	return nil
}
