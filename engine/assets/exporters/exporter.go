// Package exporters writes generated geometry to disk for hosts that do not
// link against the engine.
package exporters

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spaghettifunk/meshgen/engine/core"
	"github.com/spaghettifunk/meshgen/engine/renderer/metadata"
)

type Format string

const (
	FormatNone   Format = ""
	FormatOBJ    Format = "obj"
	FormatBinary Format = "bin"
)

// ParseFormat accepts "obj", "bin" or the empty string.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case FormatNone, FormatOBJ, FormatBinary:
		return f, nil
	default:
		return FormatNone, fmt.Errorf("export format %q: %w", name, core.ErrInvalidParameter)
	}
}

/**
 * @brief Writes the geometry to <dir>/<name>.<format>, creating dir if needed.
 *
 * @return The path written to.
 */
func Export(dir string, format Format, config *metadata.GeometryConfig) (string, error) {
	if config == nil {
		return "", fmt.Errorf("cannot export a nil geometry: %w", core.ErrInvalidParameter)
	}

	if len(config.Name) == 0 {
		return "", fmt.Errorf("cannot export an unnamed geometry: %w", core.ErrInvalidParameter)
	}
	if err := metadata.CheckGeometryName(config.Name); err != nil {
		return "", err
	}

	var write func(*bufio.Writer, *metadata.GeometryConfig) error
	switch format {
	case FormatOBJ:
		write = WriteOBJ
	case FormatBinary:
		write = WriteBinary
	default:
		return "", fmt.Errorf("cannot export '%s' as %q: %w", config.Name, format, core.ErrInvalidParameter)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, fmt.Sprintf("%s.%s", config.Name, format))
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := write(w, config); err != nil {
		return "", err
	}
	if err := w.Flush(); err != nil {
		return "", err
	}
	core.LogDebug("exported '%s' to %s", config.Name, path)
	return path, f.Close()
}
