package media

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/five82/trailcam/internal/fileitem"
	"github.com/five82/trailcam/internal/util"
)

// Config configures the media worker pool.
type Config struct {
	ImageSize  int
	MaxFrames  int // 0 means sample all video frames
	IFrameOnly bool
	Workers    int
	Staged     bool // true when files were copied by a Stager and must be cleaned up after decode

	// RemoveRetries/RemoveRetryDelay govern deleting a staged scratch
	// copy after decode; zero values fall back to 3 retries at 1s.
	RemoveRetries    int
	RemoveRetryDelay time.Duration
}

// Pool decodes FileItems into Frames (or ErrFiles) using a fixed-width
// worker pool: a single dispatcher feeds a work channel, N workers
// drain it concurrently, and results are delivered on a single output
// channel.
type Pool struct {
	cfg Config
}

// NewPool creates a media worker pool.
func NewPool(cfg Config) *Pool {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.RemoveRetries <= 0 {
		cfg.RemoveRetries = 3
	}
	if cfg.RemoveRetryDelay <= 0 {
		cfg.RemoveRetryDelay = time.Second
	}
	return &Pool{cfg: cfg}
}

// Run processes every item in files and streams Results to the
// returned channel, closing it once all items are processed or ctx is
// cancelled. Order of results is not guaranteed.
func (p *Pool) Run(ctx context.Context, files []fileitem.FileItem) <-chan Result {
	workCh := make(chan fileitem.FileItem, p.cfg.Workers)
	out := make(chan Result, p.cfg.Workers)

	var wg sync.WaitGroup
	wg.Add(p.cfg.Workers)
	for i := 0; i < p.cfg.Workers; i++ {
		go func() {
			defer wg.Done()
			for item := range workCh {
				out <- p.process(item)
			}
		}()
	}

	go func() {
		defer close(workCh)
		for _, f := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- f:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(out)
	}()

	return out
}

func (p *Pool) process(file fileitem.FileItem) Result {
	ext := strings.ToLower(filepath.Ext(file.WorkingPath))

	var result Result
	switch ext {
	case ".jpg", ".jpeg", ".png":
		result = processImage(file, p.cfg.ImageSize)
	case ".mp4", ".avi", ".mkv", ".mov":
		result = processVideo(file, p.cfg.ImageSize, p.cfg.MaxFrames, p.cfg.IFrameOnly)
	default:
		result = Result{Err: &ErrFile{File: file, Err: fmt.Errorf("unsupported media extension %q", ext)}}
	}

	if p.cfg.Staged && file.WorkingPath != file.SourcePath {
		_ = util.RemoveWithRetries(file.WorkingPath, p.cfg.RemoveRetries, p.cfg.RemoveRetryDelay)
	}

	return result
}
