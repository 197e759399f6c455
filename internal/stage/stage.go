// Package stage copies files into a scratch directory before the media
// worker pool reads them, so slow network storage doesn't stall
// decode/inference. Each staged copy gets a UUID-derived name to avoid
// collisions, and the copy is deleted once the media worker has
// consumed it.
package stage

import (
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	trailcamerrors "github.com/five82/trailcam/internal/errors"
	"github.com/five82/trailcam/internal/fileitem"
)

// Stager copies FileItems into a buffer directory, producing a new
// FileItem whose WorkingPath points at the staged copy.
type Stager struct {
	bufferDir string
}

// New creates a Stager that stages copies under bufferDir. bufferDir
// is created if it does not already exist.
func New(bufferDir string) (*Stager, error) {
	if err := os.MkdirAll(bufferDir, 0755); err != nil {
		return nil, trailcamerrors.NewIOError("create buffer directory", err)
	}
	return &Stager{bufferDir: bufferDir}, nil
}

// Copy stages item.SourcePath into the buffer directory and returns a
// FileItem with WorkingPath set to the scratch copy.
func (s *Stager) Copy(item fileitem.FileItem) (fileitem.FileItem, error) {
	ext := filepath.Ext(item.SourcePath)
	name := uuid.NewString() + ext
	dst := filepath.Join(s.bufferDir, name)

	if err := copyFile(item.SourcePath, dst); err != nil {
		return fileitem.FileItem{}, trailcamerrors.NewIOError("stage file copy", err)
	}

	return item.WithWorkingPath(dst), nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}

// Cleanup removes every file currently in the buffer directory. Called
// before and after a pipeline run.
func (s *Stager) Cleanup() error {
	entries, err := os.ReadDir(s.bufferDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return trailcamerrors.NewIOError("read buffer directory", err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		_ = os.Remove(filepath.Join(s.bufferDir, e.Name()))
	}
	return nil
}
