// Package export accumulates detection results and periodically
// checkpoints them to a JSON or CSV result file, and can resume a
// prior run from such a file.
package export

import (
	"github.com/five82/trailcam/internal/detect"
	"github.com/five82/trailcam/internal/fileitem"
	"github.com/five82/trailcam/internal/media"
)

// ExportFrame is one persisted detection record, the on-disk shape of
// a single Frame's results.
type ExportFrame struct {
	FolderID    uint64   `json:"folder_id"`
	FileID      uint64   `json:"file_id"`
	SourcePath  string   `json:"file_path"`
	ShootTime   *string  `json:"shoot_time"`
	FrameIndex  int      `json:"frame_index"`
	TotalFrames int      `json:"total_frames"`
	Bboxes      []detect.Bbox `json:"bboxes,omitempty"`
	Label       []string `json:"label,omitempty"`
	Error       *string  `json:"error,omitempty"`
}

// Identity returns the ExportFrame's source-file identity, matching
// fileitem.FileItem.Key for checkpoint tallying.
func (e ExportFrame) Identity() fileitem.Identity {
	return fileitem.Identity{FolderID: e.FolderID, FileID: e.FileID, SourcePath: e.SourcePath}
}

// FromDetectFrame converts a detect.DetectFrame into its persisted
// form. When df.Err is set, Bboxes/Label are omitted and Error is
// populated. When df.Bboxes is empty (no detections above threshold),
// Label is synthesized as {"Blank"} rather than an empty set.
func FromDetectFrame(df detect.DetectFrame, classMap map[int]string) ExportFrame {
	f := df.Frame
	var shootTime *string
	if f.ShootTime != nil {
		s := f.ShootTime.Format("2006-01-02 15:04:05")
		shootTime = &s
	}

	e := ExportFrame{
		FolderID:    f.File.FolderID,
		FileID:      f.File.FileID,
		SourcePath:  f.File.SourcePath,
		ShootTime:   shootTime,
		FrameIndex:  f.FrameIndex,
		TotalFrames: f.TotalFrames,
	}

	if df.Err != nil {
		msg := df.Err.Error()
		e.Error = &msg
		return e
	}

	e.Bboxes = df.Bboxes
	e.Label = labelsFor(df.Bboxes, classMap)
	return e
}

// FromErrFile converts a media decode failure into a persisted
// record: a decode/index failure is not fatal to the pipeline, it is
// simply recorded with Error populated.
func FromErrFile(ef media.ErrFile) ExportFrame {
	msg := ef.Err.Error()
	return ExportFrame{
		FolderID:    ef.File.FolderID,
		FileID:      ef.File.FileID,
		SourcePath:  ef.File.SourcePath,
		FrameIndex:  0,
		TotalFrames: 1,
		Error:       &msg,
	}
}

func labelsFor(boxes []detect.Bbox, classMap map[int]string) []string {
	if len(boxes) == 0 {
		return []string{"Blank"}
	}
	seen := make(map[string]bool)
	var labels []string
	for _, b := range boxes {
		name, ok := classMap[b.Class]
		if !ok {
			name = "unknown"
		}
		if !seen[name] {
			seen[name] = true
			labels = append(labels, name)
		}
	}
	return labels
}
