package detect

import (
	trailcamerrors "github.com/five82/trailcam/internal/errors"
	"github.com/five82/trailcam/internal/media"
)

// processBatch builds the input tensor for one batch of frames, runs
// the accelerator session, and post-processes the raw output into
// per-frame detections.
func processBatch(cfg Config, batch []media.Frame) []DetectFrame {
	n := len(batch)
	s := cfg.ImageSize
	input := make([]float32, 0, n*3*s*s)
	for _, f := range batch {
		input = append(input, f.Pixels...)
	}

	extra := map[string][]float32{}
	if cfg.isRTDETR() {
		// Both components of orig_target_sizes are max(width, height),
		// not (width, height) -- a deliberately preserved quirk.
		sizes := make([]float32, 0, n*2)
		for _, f := range batch {
			m := float32(f.Width)
			if float32(f.Height) > m {
				m = float32(f.Height)
			}
			sizes = append(sizes, m, m)
		}
		extra["orig_target_sizes"] = sizes
	}

	output, numCandidates, err := cfg.Session.Run(input, n, extra)
	if err != nil {
		wrapped := trailcamerrors.NewInferenceError("accelerator session run", err)
		results := make([]DetectFrame, n)
		for i, f := range batch {
			results[i] = DetectFrame{Frame: f, Err: wrapped}
		}
		return results
	}

	results := make([]DetectFrame, n)
	for i, f := range batch {
		rows := extractRows(output, i, n, numCandidates)
		var boxes []Bbox
		if cfg.isRTDETR() {
			boxes = postprocessRTDETR(rows, f, cfg.ConfThres)
		} else {
			boxes = postprocessStandard(rows, f, cfg.ConfThres, cfg.IoUThres)
		}
		results[i] = DetectFrame{Frame: f, Bboxes: boxes}
	}
	return results
}

// row is one candidate detection: [x1,y1,x2,y2,prob,class_id] in
// model (letterboxed, imgsz x imgsz) coordinate space.
type row struct {
	x1, y1, x2, y2, prob float32
	class                int
}

// extractRows reads candidate rows for batch index b out of output0,
// which is laid out [batch, 6, numCandidates] row-major (i.e. the
// model's native [6, N, B] transposed to batch-major per frame).
func extractRows(output []float32, b, batch, numCandidates int) []row {
	rows := make([]row, numCandidates)
	stride := numCandidates
	for c := 0; c < numCandidates; c++ {
		base := b*6*numCandidates + c
		rows[c] = row{
			x1:    output[0*stride+base],
			y1:    output[1*stride+base],
			x2:    output[2*stride+base],
			y2:    output[3*stride+base],
			prob:  output[4*stride+base],
			class: int(output[5*stride+base]),
		}
	}
	return rows
}

// postprocessStandard un-projects model-space coordinates back to
// original-image pixel space with the standard letterbox inverse,
// (coord-pad)*ratio, clamps to the image bounds, and runs class-aware
// NMS.
func postprocessStandard(rows []row, f media.Frame, confThres, iouThres float32) []Bbox {
	var boxes []Bbox
	for _, r := range rows {
		if r.prob < confThres {
			continue
		}
		b := Bbox{
			X1:    clamp((r.x1-float32(f.PadX))*f.Ratio, 0, float32(f.Width)),
			Y1:    clamp((r.y1-float32(f.PadY))*f.Ratio, 0, float32(f.Height)),
			X2:    clamp((r.x2-float32(f.PadX))*f.Ratio, 0, float32(f.Width)),
			Y2:    clamp((r.y2-float32(f.PadY))*f.Ratio, 0, float32(f.Height)),
			Score: r.prob,
			Class: r.class,
		}
		boxes = append(boxes, b)
	}
	return ClassAwareNMS(boxes, iouThres)
}

// postprocessRTDETR un-projects RT-DETR output with its own inverse,
// coord - pad*ratio (no subtraction-then-multiply), clamps to image
// bounds, and skips NMS entirely -- RT-DETR is a query-based detector
// that does not emit duplicate/overlapping candidates per object, so
// no suppression pass runs on its output.
func postprocessRTDETR(rows []row, f media.Frame, confThres float32) []Bbox {
	var boxes []Bbox
	for _, r := range rows {
		if r.prob < confThres {
			continue
		}
		boxes = append(boxes, Bbox{
			X1:    clamp(r.x1-float32(f.PadX)*f.Ratio, 0, float32(f.Width)),
			Y1:    clamp(r.y1-float32(f.PadY)*f.Ratio, 0, float32(f.Height)),
			X2:    clamp(r.x2-float32(f.PadX)*f.Ratio, 0, float32(f.Width)),
			Y2:    clamp(r.y2-float32(f.PadY)*f.Ratio, 0, float32(f.Height)),
			Score: r.prob,
			Class: r.class,
		})
	}
	return boxes
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
