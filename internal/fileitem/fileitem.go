// Package fileitem defines the identity of a single media file as it
// flows through the pipeline: an indexed source path and, when staged,
// a working copy path.
package fileitem

// FileItem identifies one discovered media file.
//
// FolderID increments for every directory visited during indexing
// (including skipped ones); FileID increments only for accepted media
// files. SourcePath is the file's original location; WorkingPath is
// either equal to SourcePath (no staging) or a scratch-directory copy
// produced by the Stager. Equality and serialization for checkpoint
// round-tripping are defined on SourcePath/FolderID/FileID only --
// WorkingPath is run-local and never persisted.
type FileItem struct {
	FolderID   uint64
	FileID     uint64
	SourcePath string
	WorkingPath string
}

// New creates a FileItem with WorkingPath defaulted to SourcePath.
func New(folderID, fileID uint64, sourcePath string) FileItem {
	return FileItem{
		FolderID:    folderID,
		FileID:      fileID,
		SourcePath:  sourcePath,
		WorkingPath: sourcePath,
	}
}

// WithWorkingPath returns a copy of f with WorkingPath replaced.
func (f FileItem) WithWorkingPath(path string) FileItem {
	f.WorkingPath = path
	return f
}

// Equal reports whether two FileItems refer to the same source file,
// ignoring WorkingPath (which is run-local scratch state).
func (f FileItem) Equal(other FileItem) bool {
	return f.FolderID == other.FolderID &&
		f.FileID == other.FileID &&
		f.SourcePath == other.SourcePath
}

// Identity is a comparable key for de-duplicating FileItems by source
// identity, independent of any staged WorkingPath.
type Identity struct {
	FolderID   uint64
	FileID     uint64
	SourcePath string
}

// Key returns the comparable identity of f.
func (f FileItem) Key() Identity {
	return Identity{FolderID: f.FolderID, FileID: f.FileID, SourcePath: f.SourcePath}
}
