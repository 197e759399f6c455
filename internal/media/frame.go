// Package media decodes photos and videos into letterboxed tensors
// ready for batched inference, and records per-file decode failures
// without aborting the pipeline.
package media

import (
	"time"

	"github.com/five82/trailcam/internal/fileitem"
)

// Frame is one decoded, letterboxed image ready for the detect worker
// pool. Pixels is CHW float32 data scaled into [0,1], size
// ImageSize*ImageSize per channel.
type Frame struct {
	File        fileitem.FileItem
	Pixels      []float32
	Width       int // original (pre-resize) width
	Height      int // original (pre-resize) height
	ImageSize   int // target square size the model expects
	PadX        int
	PadY        int
	Ratio       float32
	FrameIndex  int
	TotalFrames int
	ShootTime   *time.Time
	IFrame      bool
}

// ErrFile records a file that failed to decode. It is exported as an
// ExportFrame with Error populated rather than aborting the pipeline.
type ErrFile struct {
	File fileitem.FileItem
	Err  error
}

// Result is the union type the media worker pool emits: exactly one of
// Frames (one or more decoded frames) or Err is populated.
type Result struct {
	Frames []Frame
	Err    *ErrFile
}
