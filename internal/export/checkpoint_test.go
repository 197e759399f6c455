package export

import (
	"path/filepath"
	"testing"

	"github.com/five82/trailcam/internal/fileitem"
)

func writeResult(t *testing.T, path string, frames []ExportFrame) {
	t.Helper()
	acc := NewAccumulator(nil)
	exp := NewExporter(acc, path, 0)
	for _, f := range frames {
		exp.handle(f)
	}
	if err := exp.Final(); err != nil {
		t.Fatalf("Final: %v", err)
	}
}

func TestLoadResumeMarksOnlyFullyObservedFilesComplete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "result.json")
	writeResult(t, path, []ExportFrame{
		{FolderID: 1, FileID: 1, SourcePath: "a.jpg", FrameIndex: 0, TotalFrames: 1},
		{FolderID: 1, FileID: 2, SourcePath: "b.mp4", FrameIndex: 0, TotalFrames: 3},
		{FolderID: 1, FileID: 2, SourcePath: "b.mp4", FrameIndex: 1, TotalFrames: 3},
	})

	resume, err := LoadResume(path)
	if err != nil {
		t.Fatalf("LoadResume: %v", err)
	}

	complete := fileitem.Identity{FolderID: 1, FileID: 1, SourcePath: "a.jpg"}
	incomplete := fileitem.Identity{FolderID: 1, FileID: 2, SourcePath: "b.mp4"}

	if !resume.Complete[complete] {
		t.Fatalf("expected %v to be complete", complete)
	}
	if resume.Complete[incomplete] {
		t.Fatalf("expected %v to be incomplete (2 of 3 frames observed)", incomplete)
	}
	if len(resume.Accumulator) != 3 {
		t.Fatalf("expected every parsed frame preserved in Accumulator, got %d", len(resume.Accumulator))
	}
}

func TestFilterPendingDropsOnlyCompleteFiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "result.json")
	writeResult(t, path, []ExportFrame{
		{FolderID: 1, FileID: 1, SourcePath: "a.jpg", FrameIndex: 0, TotalFrames: 1},
	})
	resume, err := LoadResume(path)
	if err != nil {
		t.Fatalf("LoadResume: %v", err)
	}

	files := []fileitem.FileItem{
		fileitem.New(1, 1, "a.jpg"),
		fileitem.New(1, 2, "b.jpg"),
	}
	pending := resume.FilterPending(files)
	if len(pending) != 1 || pending[0].SourcePath != "b.jpg" {
		t.Fatalf("expected only b.jpg pending, got %+v", pending)
	}
}

func TestExporterCheckpointsBeforeNthFrameNotAfter(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "result.json")
	acc := NewAccumulator(nil)
	exp := NewExporter(acc, path, 2)

	exp.handle(ExportFrame{FolderID: 1, FileID: 1, SourcePath: "a.jpg"})
	exp.handle(ExportFrame{FolderID: 1, FileID: 2, SourcePath: "b.jpg"})
	exp.handle(ExportFrame{FolderID: 1, FileID: 3, SourcePath: "c.jpg"})

	frames, err := ParseResultFile(path)
	if err != nil {
		t.Fatalf("ParseResultFile: %v", err)
	}
	if len(frames) != 2 {
		t.Fatalf("expected checkpoint to have captured 2 frames (before the 3rd was appended), got %d", len(frames))
	}
}

func TestParseResultFileRejectsUnknownExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "result.txt")
	if _, err := ParseResultFile(path); err == nil {
		t.Fatalf("expected error for unsupported extension")
	}
}
