package engine

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"

	"github.com/pelletier/go-toml/v2"

	"github.com/spaghettifunk/meshgen/engine/assets/exporters"
	"github.com/spaghettifunk/meshgen/engine/assets/loaders"
	"github.com/spaghettifunk/meshgen/engine/core"
	"github.com/spaghettifunk/meshgen/engine/generator"
	"github.com/spaghettifunk/meshgen/engine/math"
	"github.com/spaghettifunk/meshgen/engine/renderer/metadata"
)

// MaxWorkers bounds the generation pool whatever the config asks for.
const MaxWorkers = 64

type ApplicationConfig struct {
	// The application name, used in logs.
	Name     string `toml:"name"`
	LogLevel string `toml:"log_level"`
	// Generation workers. 0 picks the number of CPUs.
	Workers   int `toml:"workers"`
	QueueSize int `toml:"queue_size"`
	// Max number of geometries registered at once, across every manifest.
	MaxGeometryCount uint32 `toml:"max_geometry_count"`
	// Where shape manifests (.toml, .yaml, .yml) are read from.
	ManifestDir string `toml:"manifest_dir"`
	// Where exported meshes are written to.
	OutputDir string `toml:"output_dir"`
	// "obj", "bin" or empty to skip exporting.
	ExportFormat string `toml:"export_format"`
	// Keep running and regenerate manifests as they change.
	Watch    bool                     `toml:"watch"`
	Defaults loaders.ManifestDefaults `toml:"defaults"`
}

// DefaultApplicationConfig returns the configuration used for every key a config file leaves out.
func DefaultApplicationConfig() *ApplicationConfig {
	return &ApplicationConfig{
		Name:             "meshgen",
		LogLevel:         "info",
		Workers:          0,
		QueueSize:        64,
		MaxGeometryCount: 4096,
		ManifestDir:      "manifests",
		OutputDir:        "out",
		ExportFormat:     string(exporters.FormatOBJ),
		Watch:            false,
		Defaults: loaders.ManifestDefaults{
			Segments:    generator.DefaultSegments,
			SphereDepth: generator.DefaultSphereDepth,
		},
	}
}

/**
 * @brief Loads the application configuration from a TOML file. A missing file
 * yields the defaults; keys absent from the file keep their default value.
 *
 * @param path The config file path.
 * @return The validated configuration or an error.
 */
func LoadApplicationConfig(path string) (*ApplicationConfig, error) {
	config := DefaultApplicationConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		core.LogWarn("config file '%s' not found, using defaults", path)
		return config, config.Validate()
	}
	if err != nil {
		return nil, err
	}

	d := toml.NewDecoder(bytes.NewReader(data))
	d.DisallowUnknownFields()
	if err := d.Decode(config); err != nil {
		return nil, fmt.Errorf("failed to parse config '%s': %w", path, err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config '%s': %w", path, err)
	}
	return config, nil
}

// Validate normalizes the worker count and rejects values no system could run with.
func (c *ApplicationConfig) Validate() error {
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	c.Workers = math.Clamp(c.Workers, 1, MaxWorkers)

	if _, err := core.ParseLogLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level %q: %w", c.LogLevel, core.ErrInvalidParameter)
	}
	if _, err := exporters.ParseFormat(c.ExportFormat); err != nil {
		return err
	}
	if c.QueueSize < 0 {
		return fmt.Errorf("queue_size %d must not be negative: %w", c.QueueSize, core.ErrInvalidParameter)
	}
	if c.MaxGeometryCount == 0 {
		return fmt.Errorf("max_geometry_count must be > 0: %w", core.ErrInvalidParameter)
	}
	if len(c.ManifestDir) == 0 {
		return fmt.Errorf("manifest_dir must be set: %w", core.ErrInvalidParameter)
	}
	if c.Defaults.Segments < generator.MinSegments {
		return fmt.Errorf("defaults.segments %d must be at least %d: %w", c.Defaults.Segments, generator.MinSegments, core.ErrInvalidParameter)
	}
	if c.Defaults.SphereDepth < 0 || c.Defaults.SphereDepth > generator.MaxSphereDepth {
		return fmt.Errorf("defaults.sphere_depth %d must be within 0..%d: %w", c.Defaults.SphereDepth, generator.MaxSphereDepth, core.ErrInvalidParameter)
	}
	return nil
}

func (c *ApplicationConfig) geometrySystemConfig() *metadata.GeometrySystemConfig {
	return &metadata.GeometrySystemConfig{
		MaxGeometryCount: c.MaxGeometryCount,
		Workers:          c.Workers,
		QueueSize:        c.QueueSize,
	}
}
