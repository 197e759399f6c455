package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"github.com/five82/trailcam/internal/detect"
)

// csvColumns is the fixed 9-column layout of the CSV result format.
var csvColumns = []string{
	"folder_id", "file_id", "file_path", "shoot_time",
	"frame_index", "total_frames", "bboxes", "label", "error",
}

// WriteCSV writes the full snapshot of frames to w in the fixed
// 9-column layout. bboxes is serialized as JSON; encoding/csv quotes
// that field and doubles its embedded double quotes, which ParseCSV
// undoes when reading the file back.
func WriteCSV(w io.Writer, frames []ExportFrame) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvColumns); err != nil {
		return err
	}
	for _, f := range frames {
		record, err := csvRecord(f)
		if err != nil {
			return err
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func csvRecord(f ExportFrame) ([]string, error) {
	shootTime := ""
	if f.ShootTime != nil {
		shootTime = *f.ShootTime
	}

	bboxesJSON := ""
	if len(f.Bboxes) > 0 {
		b, err := json.Marshal(f.Bboxes)
		if err != nil {
			return nil, err
		}
		bboxesJSON = strings.ReplaceAll(string(b), `""`, `"`)
	}

	label := "\"\""
	if len(f.Label) > 0 {
		label = strings.Join(f.Label, ";")
	}

	errStr := ""
	if f.Error != nil {
		errStr = *f.Error
	}

	return []string{
		strconv.FormatUint(f.FolderID, 10),
		strconv.FormatUint(f.FileID, 10),
		f.SourcePath,
		shootTime,
		strconv.Itoa(f.FrameIndex),
		strconv.Itoa(f.TotalFrames),
		bboxesJSON,
		label,
		errStr,
	}, nil
}

// ParseCSV reads a previously-written result CSV back into
// ExportFrames, for checkpoint resume.
func ParseCSV(r io.Reader) ([]ExportFrame, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	frames := make([]ExportFrame, 0, len(records)-1)
	for _, rec := range records[1:] { // skip header
		if len(rec) < 9 {
			continue
		}
		frame, err := parseCSVRecord(rec)
		if err != nil {
			return nil, err
		}
		frames = append(frames, frame)
	}
	return frames, nil
}

func parseCSVRecord(rec []string) (ExportFrame, error) {
	folderID, _ := strconv.ParseUint(rec[0], 10, 64)
	fileID, _ := strconv.ParseUint(rec[1], 10, 64)
	frameIndex, _ := strconv.Atoi(rec[4])
	totalFrames, _ := strconv.Atoi(rec[5])

	f := ExportFrame{
		FolderID:    folderID,
		FileID:      fileID,
		SourcePath:  rec[2],
		FrameIndex:  frameIndex,
		TotalFrames: totalFrames,
	}
	if rec[3] != "" {
		shootTime := rec[3]
		f.ShootTime = &shootTime
	}
	if rec[6] != "" {
		var boxes []detect.Bbox
		if err := json.Unmarshal([]byte(rec[6]), &boxes); err == nil {
			f.Bboxes = boxes
		}
	}
	if rec[7] != "" && rec[7] != `""` {
		f.Label = strings.Split(rec[7], ";")
	}
	if rec[8] != "" {
		errStr := rec[8]
		f.Error = &errStr
	}
	return f, nil
}
