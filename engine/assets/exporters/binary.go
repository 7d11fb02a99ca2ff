package exporters

import (
	"bufio"
	"encoding/binary"

	"github.com/spaghettifunk/meshgen/engine/math"
	"github.com/spaghettifunk/meshgen/engine/renderer/metadata"
)

func vec3Array(v math.Vec3) [3]float32 {
	return [3]float32{v.X, v.Y, v.Z}
}

// WriteBinary writes the geometry in the layout read by loaders.DecodeMesh.
func WriteBinary(w *bufio.Writer, config *metadata.GeometryConfig) error {
	header := metadata.ResourceHeader{
		MagicNumber:  metadata.ResourceMagic,
		ResourceType: uint8(metadata.ResourceTypeMesh),
		Version:      metadata.ResourceVersion,
	}
	fields := []interface{}{
		header,
		uint32(config.Kind),
		uint32(len(config.Name)),
		[]byte(config.Name),
		uint32(len(config.Positions) / 3),
		uint32(len(config.Indices)),
		vec3Array(config.Center),
		vec3Array(config.MinExtents),
		vec3Array(config.MaxExtents),
		config.Positions,
	}
	if config.Kind == metadata.MeshKindSolid {
		fields = append(fields, config.Normals)
	}
	fields = append(fields, config.Indices)

	for _, f := range fields {
		if err := binary.Write(w, binary.LittleEndian, f); err != nil {
			return err
		}
	}
	return nil
}
