// Package indexer walks a folder tree and produces the ordered list of
// media files the pipeline will process.
package indexer

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/five82/trailcam/internal/fileitem"
)

// resultFilenames are skipped so a prior run's own output is never
// re-ingested as input on a second pass over the same folder.
var resultFilenames = map[string]bool{
	"result.csv":  true,
	"result.json": true,
}

// skipDirNames are directory names the indexer never descends into --
// these match the labels the exporter itself might use to sort
// reviewed output alongside the source tree.
var skipDirNames = map[string]bool{
	"Animal": true,
	"Person": true,
	"Vehicle": true,
	"Blank":   true,
}

var mediaExtensions = map[string]bool{
	".mp4":  true,
	".avi":  true,
	".mkv":  true,
	".mov":  true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// IsMediaFile reports whether path has a recognized photo/video extension.
func IsMediaFile(path string) bool {
	return mediaExtensions[strings.ToLower(filepath.Ext(path))]
}

func isSkippedName(name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	if skipDirNames[name] {
		return true
	}
	return resultFilenames[strings.ToLower(name)]
}

// Index walks root recursively in lexical order, assigning a FolderID
// to every directory visited (skipped directories included) and a
// FileID to every accepted media file. Skipped directories are not
// descended into. The returned slice preserves sorted walk order,
// with a directory's own files interleaved against its sorted
// subdirectories exactly as a filesystem walk would encounter them.
func Index(root string) ([]fileitem.FileItem, error) {
	var items []fileitem.FileItem
	var folderID uint64
	var fileID uint64

	folderID++ // the walk root itself counts as folder 1
	if err := walk(root, folderID, &folderID, &fileID, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func walk(dir string, dirID uint64, folderID, fileID *uint64, items *[]fileitem.FileItem) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	for _, e := range entries {
		name := e.Name()
		full := filepath.Join(dir, name)

		if e.IsDir() {
			*folderID++
			if isSkippedName(name) {
				continue
			}
			if err := walk(full, *folderID, folderID, fileID, items); err != nil {
				return err
			}
			continue
		}

		if isSkippedName(name) || !IsMediaFile(full) {
			continue
		}

		*items = append(*items, fileitem.New(dirID, *fileID, full))
		*fileID++
	}
	return nil
}
