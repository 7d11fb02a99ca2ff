package loaders

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spaghettifunk/meshgen/engine/core"
	"github.com/spaghettifunk/meshgen/engine/math"
	"github.com/spaghettifunk/meshgen/engine/renderer/metadata"
)

const (
	// MaxMeshNameLength bounds the name stored in a binary mesh.
	MaxMeshNameLength = 1 << 10
	// MaxMeshVertices bounds the vertex count of a binary mesh.
	MaxMeshVertices = 1 << 24
	// MaxMeshIndices bounds the index count of a binary mesh.
	MaxMeshIndices = 1 << 26
)

// BinaryLoader reads meshes written by the binary exporter.
type BinaryLoader struct{}

func (bl *BinaryLoader) Load(path string, assetType metadata.ResourceType, params interface{}) (*metadata.Resource, error) {
	if assetType != metadata.ResourceTypeMesh {
		return nil, fmt.Errorf("binary loader cannot load resource type %d: %w", assetType, core.ErrInvalidParameter)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	config, err := DecodeMesh(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("failed to load mesh '%s': %w", path, err)
	}

	return &metadata.Resource{
		Name:     strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		FullPath: path,
		Type:     metadata.ResourceTypeMesh,
		DataSize: uint64(config.VertexCount),
		Data:     config,
	}, nil
}

func (bl *BinaryLoader) Unload(resource *metadata.Resource) error {
	if resource == nil {
		return fmt.Errorf("cannot unload a nil resource: %w", core.ErrInvalidParameter)
	}
	resource.Data = nil
	resource.DataSize = 0
	return nil
}

/**
 * @brief Reads a binary mesh. Layout, little endian:
 * header, kind u32, name length u32, name, vertex count u32, index count u32,
 * center, min and max extents (3 f32 each), positions, normals (solid only), indices.
 */
func DecodeMesh(r io.Reader) (*metadata.GeometryConfig, error) {
	var header metadata.ResourceHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, err
	}
	if header.MagicNumber != metadata.ResourceMagic {
		return nil, fmt.Errorf("bad magic number 0x%x: %w", header.MagicNumber, core.ErrInvalidParameter)
	}
	if header.Version != metadata.ResourceVersion {
		return nil, fmt.Errorf("unsupported mesh version %d: %w", header.Version, core.ErrInvalidParameter)
	}
	if metadata.ResourceType(header.ResourceType) != metadata.ResourceTypeMesh {
		return nil, fmt.Errorf("resource type %d is not a mesh: %w", header.ResourceType, core.ErrInvalidParameter)
	}

	var kind, nameLen uint32
	if err := readAll(r, &kind, &nameLen); err != nil {
		return nil, err
	}
	if nameLen > MaxMeshNameLength {
		return nil, fmt.Errorf("mesh name length %d exceeds %d: %w", nameLen, MaxMeshNameLength, core.ErrInvalidParameter)
	}
	name := make([]byte, nameLen)
	if _, err := io.ReadFull(r, name); err != nil {
		return nil, err
	}

	config := &metadata.GeometryConfig{
		Kind: metadata.MeshKind(kind),
		Name: string(name),
	}
	var center, minExtents, maxExtents [3]float32
	if err := readAll(r, &config.VertexCount, &config.IndexCount, &center, &minExtents, &maxExtents); err != nil {
		return nil, err
	}
	config.Center = math.NewVec3(center[0], center[1], center[2])
	config.MinExtents = math.NewVec3(minExtents[0], minExtents[1], minExtents[2])
	config.MaxExtents = math.NewVec3(maxExtents[0], maxExtents[1], maxExtents[2])

	if config.VertexCount > MaxMeshVertices {
		return nil, fmt.Errorf("vertex count %d exceeds %d: %w", config.VertexCount, MaxMeshVertices, core.ErrInvalidParameter)
	}
	if config.IndexCount > MaxMeshIndices {
		return nil, fmt.Errorf("index count %d exceeds %d: %w", config.IndexCount, MaxMeshIndices, core.ErrInvalidParameter)
	}
	floatCount := int(uint64(config.VertexCount) * 3)
	config.Positions = make([]float32, floatCount)
	if err := binary.Read(r, binary.LittleEndian, config.Positions); err != nil {
		return nil, err
	}
	if config.Kind == metadata.MeshKindSolid {
		config.Normals = make([]float32, floatCount)
		if err := binary.Read(r, binary.LittleEndian, config.Normals); err != nil {
			return nil, err
		}
	}

	raw := make([]byte, int(uint64(config.IndexCount)*4))
	if _, err := io.ReadFull(r, raw); err != nil {
		return nil, err
	}
	config.Indices = bytesToIndices(raw)
	vertices := uint64(len(config.Positions) / 3)
	for _, idx := range config.Indices {
		if uint64(idx) >= vertices {
			return nil, fmt.Errorf("index %d out of range (vertices=%d): %w", idx, vertices, core.ErrInvalidParameter)
		}
	}
	return config, nil
}

func readAll(r io.Reader, data ...interface{}) error {
	for _, d := range data {
		if err := binary.Read(r, binary.LittleEndian, d); err != nil {
			return err
		}
	}
	return nil
}

func bytesToIndices(b []byte) []uint32 {
	indices := make([]uint32, len(b)/4)
	for i := 0; i < len(indices); i++ {
		byteIndex := i * 4
		indices[i] = 0
		indices[i] |= uint32(b[byteIndex])
		indices[i] |= uint32(b[byteIndex+1]) << 8
		indices[i] |= uint32(b[byteIndex+2]) << 16
		indices[i] |= uint32(b[byteIndex+3]) << 24
	}

	return indices
}
