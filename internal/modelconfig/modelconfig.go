// Package modelconfig loads the TOML model descriptor that tells the
// detect worker pool which model to run, at what input size, against
// which class set.
package modelconfig

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/pelletier/go-toml/v2"

	trailcamerrors "github.com/five82/trailcam/internal/errors"
)

// ModelConfig describes one detection model.
type ModelConfig struct {
	Name      string
	ModelPath string
	ImageSize int
	// Classes is the sorted set of class names, matching the TOML
	// file's [model_config] classes array deduplicated and sorted --
	// class ids are assigned by this sorted order, not file order.
	Classes []string
}

// document mirrors the on-disk TOML shape.
//
//	[model_config]
//	name = "megadetector-v6"
//	path = "models/md_v6.onnx"
//	imgsz = 1280
//	classes = ["animal", "person", "vehicle"]
type document struct {
	ModelConfig struct {
		Name    string   `toml:"name"`
		Path    string   `toml:"path"`
		ImgSize int      `toml:"imgsz"`
		Classes []string `toml:"classes"`
	} `toml:"model_config"`
}

// Load reads and parses a model config TOML file at tomlPath. A
// relative `path` entry is resolved relative to the sibling directory
// of the TOML file's own parent directory (i.e. tomlPath's
// grandparent) -- the convention of keeping model configs under a
// `configs/` directory next to a `models/` directory.
func Load(tomlPath string) (ModelConfig, error) {
	data, err := os.ReadFile(tomlPath)
	if err != nil {
		return ModelConfig{}, trailcamerrors.NewModelError("read model config", err)
	}

	var doc document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return ModelConfig{}, trailcamerrors.NewModelError("parse model config TOML", err)
	}

	classSet := make(map[string]struct{}, len(doc.ModelConfig.Classes))
	for _, c := range doc.ModelConfig.Classes {
		classSet[c] = struct{}{}
	}
	classes := make([]string, 0, len(classSet))
	for c := range classSet {
		classes = append(classes, c)
	}
	sort.Strings(classes)

	modelPath := doc.ModelConfig.Path
	if !filepath.IsAbs(modelPath) {
		base := filepath.Dir(filepath.Dir(tomlPath))
		modelPath = filepath.Join(base, modelPath)
	}

	return ModelConfig{
		Name:      doc.ModelConfig.Name,
		ModelPath: modelPath,
		ImageSize: doc.ModelConfig.ImgSize,
		Classes:   classes,
	}, nil
}

// ClassMap builds the class-id -> class-name lookup used when turning
// a raw class index from the network output into a label. Ids are
// assigned by the sorted Classes order, matching Load.
func (m ModelConfig) ClassMap() map[int]string {
	out := make(map[int]string, len(m.Classes))
	for i, name := range m.Classes {
		out[i] = name
	}
	return out
}
