package exporters

import (
	"bufio"
	"fmt"
	"strconv"

	"github.com/spaghettifunk/meshgen/engine/core"
	"github.com/spaghettifunk/meshgen/engine/renderer/metadata"
)

func formatFloat(f float32) string {
	return strconv.FormatFloat(float64(f), 'f', -1, 32)
}

/**
 * @brief Writes the geometry as a Wavefront OBJ object. Wireframes become `l`
 * records, solids `f v//vn` records. OBJ indices are 1-based.
 */
func WriteOBJ(w *bufio.Writer, config *metadata.GeometryConfig) error {
	stride := 2
	if config.Kind == metadata.MeshKindSolid {
		stride = 3
	}
	if len(config.Indices)%stride != 0 {
		return fmt.Errorf("'%s' has %d indices, not a multiple of %d: %w", config.Name, len(config.Indices), stride, core.ErrInvalidParameter)
	}

	fmt.Fprintf(w, "# meshgen %s %s\n", config.Kind, config.Shape.Kind)
	fmt.Fprintf(w, "o %s\n", config.Name)
	for i := 0; i+2 < len(config.Positions); i += 3 {
		fmt.Fprintf(w, "v %s %s %s\n", formatFloat(config.Positions[i]), formatFloat(config.Positions[i+1]), formatFloat(config.Positions[i+2]))
	}
	for i := 0; i+2 < len(config.Normals); i += 3 {
		fmt.Fprintf(w, "vn %s %s %s\n", formatFloat(config.Normals[i]), formatFloat(config.Normals[i+1]), formatFloat(config.Normals[i+2]))
	}

	for i := 0; i < len(config.Indices); i += stride {
		if stride == 2 {
			fmt.Fprintf(w, "l %d %d\n", config.Indices[i]+1, config.Indices[i+1]+1)
			continue
		}
		a, b, c := config.Indices[i]+1, config.Indices[i+1]+1, config.Indices[i+2]+1
		fmt.Fprintf(w, "f %d//%d %d//%d %d//%d\n", a, a, b, b, c, c)
	}
	// Reports the first failed write, if any.
	_, err := w.WriteString("")
	return err
}
