package loaders

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/spaghettifunk/meshgen/engine/core"
	"github.com/spaghettifunk/meshgen/engine/math"
	"github.com/spaghettifunk/meshgen/engine/renderer/metadata"
)

// ManifestDefaults fills the resolution of shapes that leave it out.
type ManifestDefaults struct {
	Segments    int `toml:"segments"`
	SphereDepth int `toml:"sphere_depth"`
}

// shapeDef is one entry of a manifest, e.g.
//
//	[[shape]]
//	name = "crate"
//	type = "cuboid"
//	size = [1, 2, 1]
type shapeDef struct {
	Name     string     `toml:"name" yaml:"name"`
	Type     string     `toml:"type" yaml:"type"`
	Size     [3]float32 `toml:"size" yaml:"size,omitempty"`
	Radius   float32    `toml:"radius" yaml:"radius,omitempty"`
	Height   float32    `toml:"height" yaml:"height,omitempty"`
	Segments int        `toml:"segments" yaml:"segments,omitempty"`
	// nil means default; 0 is a valid depth (the bare octahedron).
	Depth *int `toml:"depth" yaml:"depth,omitempty"`
}

type manifestFile struct {
	Shapes []shapeDef `toml:"shape" yaml:"shapes"`
}

type ManifestLoader struct {
	Defaults ManifestDefaults
}

func (ml *ManifestLoader) Load(path string, assetType metadata.ResourceType, params interface{}) (*metadata.Resource, error) {
	if assetType != metadata.ResourceTypeShapeManifest {
		return nil, fmt.Errorf("manifest loader cannot load resource type %d: %w", assetType, core.ErrInvalidParameter)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	defaults := ml.Defaults
	if d, ok := params.(ManifestDefaults); ok {
		defaults = d
	}

	shapes, err := DecodeManifest(data, filepath.Ext(path), defaults)
	if err != nil {
		return nil, fmt.Errorf("failed to load manifest '%s': %w", path, err)
	}

	return &metadata.Resource{
		Name:     strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		FullPath: path,
		Type:     metadata.ResourceTypeShapeManifest,
		DataSize: uint64(len(shapes)),
		Data:     shapes,
	}, nil
}

func (ml *ManifestLoader) Unload(resource *metadata.Resource) error {
	if resource == nil {
		return fmt.Errorf("cannot unload a nil resource: %w", core.ErrInvalidParameter)
	}
	resource.Data = nil
	resource.DataSize = 0
	return nil
}

/**
 * @brief Decodes the shape entries of a manifest.
 *
 * @param data The raw manifest.
 * @param ext The file extension selecting the format: .toml, .yaml or .yml.
 * @param defaults Applied to shapes that omit segments or depth.
 * @return The shapes in file order. Unknown shape types are reported together.
 */
func DecodeManifest(data []byte, ext string, defaults ManifestDefaults) ([]metadata.ShapeConfig, error) {
	var file manifestFile
	switch strings.ToLower(ext) {
	case ".toml":
		d := toml.NewDecoder(bytes.NewReader(data))
		d.DisallowUnknownFields()
		if err := d.Decode(&file); err != nil {
			return nil, err
		}
	case ".yaml", ".yml":
		d := yaml.NewDecoder(bytes.NewReader(data))
		d.KnownFields(true)
		// An empty document decodes to nothing.
		if err := d.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported manifest format %q: %w", ext, core.ErrInvalidParameter)
	}

	shapes := make([]metadata.ShapeConfig, 0, len(file.Shapes))
	var errs []error
	for i, def := range file.Shapes {
		kind, err := metadata.ParseShapeKind(def.Type)
		if err != nil {
			errs = append(errs, fmt.Errorf("shape #%d '%s': %w", i, def.Name, err))
			continue
		}
		if err := metadata.CheckGeometryName(def.Name); err != nil {
			errs = append(errs, fmt.Errorf("shape #%d: %w", i, err))
			continue
		}
		shape := metadata.ShapeConfig{
			Name:     def.Name,
			Kind:     kind,
			Size:     math.NewVec3(def.Size[0], def.Size[1], def.Size[2]),
			Radius:   def.Radius,
			Height:   def.Height,
			Segments: def.Segments,
			Depth:    defaults.SphereDepth,
		}
		if shape.Segments == 0 {
			shape.Segments = defaults.Segments
		}
		if def.Depth != nil {
			shape.Depth = *def.Depth
		}
		shapes = append(shapes, shape)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return shapes, nil
}
