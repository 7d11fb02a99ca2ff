package loaders

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/meshgen/engine/core"
	"github.com/spaghettifunk/meshgen/engine/renderer/metadata"
)

// encodeMesh writes a wireframe mesh with the given header counts, independent
// of how many positions and indices follow.
func encodeMesh(t *testing.T, name string, vertexCount, indexCount uint32, positions []float32, indices []uint32) []byte {
	t.Helper()
	var buf bytes.Buffer
	header := metadata.ResourceHeader{
		MagicNumber:  metadata.ResourceMagic,
		ResourceType: uint8(metadata.ResourceTypeMesh),
		Version:      metadata.ResourceVersion,
	}
	var extents [9]float32
	for _, v := range []interface{}{
		header,
		uint32(metadata.MeshKindWireframe),
		uint32(len(name)),
		[]byte(name),
		vertexCount,
		indexCount,
		extents,
		positions,
		indices,
	} {
		require.NoError(t, binary.Write(&buf, binary.LittleEndian, v))
	}
	return buf.Bytes()
}

func TestDecodeMeshWireframe(t *testing.T) {
	data := encodeMesh(t, "edge", 2, 2, []float32{0, 0, 0, 1, 0, 0}, []uint32{0, 1})
	config, err := DecodeMesh(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, "edge", config.Name)
	assert.Equal(t, metadata.MeshKindWireframe, config.Kind)
	assert.Len(t, config.Positions, 6)
	assert.Nil(t, config.Normals)
	assert.Equal(t, []uint32{0, 1}, config.Indices)
}

func TestDecodeMeshRejectsOversizedCounts(t *testing.T) {
	tests := map[string][]byte{
		// 0x55555556*3 wraps to 2 in 32 bits.
		"wrapping vertex count": encodeMesh(t, "bad", 0x55555556, 2, []float32{0, 0}, []uint32{5, 1000000}),
		"vertex count":          encodeMesh(t, "bad", MaxMeshVertices+1, 0, nil, nil),
		"index count":           encodeMesh(t, "bad", 1, 0x40000001, []float32{0, 0, 0}, []uint32{0}),
		"name length":           encodeMesh(t, string(make([]byte, MaxMeshNameLength+1)), 0, 0, nil, nil),
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			config, err := DecodeMesh(bytes.NewReader(data))
			assert.ErrorIs(t, err, core.ErrInvalidParameter)
			assert.Nil(t, config)
		})
	}
}

func TestDecodeMeshRejectsDanglingIndex(t *testing.T) {
	data := encodeMesh(t, "edge", 2, 2, []float32{0, 0, 0, 1, 0, 0}, []uint32{0, 2})
	_, err := DecodeMesh(bytes.NewReader(data))
	assert.ErrorIs(t, err, core.ErrInvalidParameter)
}

func TestDecodeMeshTruncated(t *testing.T) {
	data := encodeMesh(t, "edge", 4, 2, []float32{0, 0, 0, 1, 0, 0}, []uint32{0, 1})
	_, err := DecodeMesh(bytes.NewReader(data))
	assert.Error(t, err)
}
