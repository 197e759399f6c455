package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	trailcamerrors "github.com/five82/trailcam/internal/errors"
	"github.com/five82/trailcam/internal/fileitem"
)

// ParseResultFile parses a checkpoint result file (JSON or CSV,
// determined by extension) into ExportFrames.
func ParseResultFile(path string) ([]ExportFrame, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".json" && ext != ".csv" {
		return nil, trailcamerrors.NewCheckpointError("checkpoint file must be .json or .csv", nil)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, trailcamerrors.NewCheckpointError("open checkpoint file", err)
	}
	defer f.Close()

	if ext == ".json" {
		var frames []ExportFrame
		if err := json.NewDecoder(f).Decode(&frames); err != nil {
			return nil, trailcamerrors.NewCheckpointError("parse checkpoint JSON", err)
		}
		return frames, nil
	}

	frames, err := ParseCSV(f)
	if err != nil {
		return nil, trailcamerrors.NewCheckpointError("parse checkpoint CSV", err)
	}
	return frames, nil
}

// Resume computes the resume state from a checkpoint: the set of
// already-fully-observed files (to remove from the pending work list)
// and the full accumulator seed (every frame parsed from the
// checkpoint, regardless of whether its file turned out to be
// complete -- a superset guarantee so no prior result is ever lost on
// resume).
type Resume struct {
	Accumulator []ExportFrame
	Complete    map[fileitem.Identity]bool
}

// LoadResume parses a checkpoint file and tallies, per source file,
// how many frames were observed against the file's declared
// total_frames. A file is considered complete only when every one of
// its declared frames was observed.
func LoadResume(path string) (Resume, error) {
	frames, err := ParseResultFile(path)
	if err != nil {
		return Resume{}, err
	}

	type tally struct {
		observed int
		total    int
	}
	tallies := make(map[fileitem.Identity]*tally)

	for _, f := range frames {
		id := f.Identity()
		t, ok := tallies[id]
		if !ok {
			t = &tally{}
			tallies[id] = t
		}
		t.observed++
		if f.TotalFrames > t.total {
			t.total = f.TotalFrames
		}
	}

	complete := make(map[fileitem.Identity]bool)
	for id, t := range tallies {
		if t.total > 0 && t.observed >= t.total {
			complete[id] = true
		}
	}

	return Resume{Accumulator: frames, Complete: complete}, nil
}

// FilterPending removes files whose identity is marked complete in r,
// preserving the input order of the remaining files.
func (r Resume) FilterPending(files []fileitem.FileItem) []fileitem.FileItem {
	pending := make([]fileitem.FileItem, 0, len(files))
	for _, f := range files {
		if r.Complete[f.Key()] {
			continue
		}
		pending = append(pending, f)
	}
	return pending
}
