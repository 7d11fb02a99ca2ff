package exporters

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/meshgen/engine/assets/loaders"
	"github.com/spaghettifunk/meshgen/engine/core"
	"github.com/spaghettifunk/meshgen/engine/math"
	"github.com/spaghettifunk/meshgen/engine/renderer/metadata"
	"github.com/spaghettifunk/meshgen/engine/systems"
)

func generate(t *testing.T, shape metadata.ShapeConfig) *metadata.GeometryConfig {
	t.Helper()
	config, err := systems.GenerateGeometryConfig(shape)
	require.NoError(t, err)
	return config
}

func countPrefix(lines []string, prefix string) int {
	n := 0
	for _, l := range lines {
		if strings.HasPrefix(l, prefix) {
			n++
		}
	}
	return n
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(" OBJ ")
	require.NoError(t, err)
	assert.Equal(t, FormatOBJ, f)
	f, err = ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatNone, f)
	_, err = ParseFormat("fbx")
	assert.ErrorIs(t, err, core.ErrInvalidParameter)
}

func TestWriteOBJWireframe(t *testing.T) {
	config := generate(t, metadata.ShapeConfig{Name: "frame", Kind: metadata.ShapeKindCuboidWireframe, Size: math.NewVec3(2, 2, 2)})

	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	require.NoError(t, WriteOBJ(w, config))
	require.NoError(t, w.Flush())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, "o frame", lines[1])
	assert.Equal(t, 8, countPrefix(lines, "v "))
	assert.Equal(t, 0, countPrefix(lines, "vn "))
	assert.Equal(t, 24, countPrefix(lines, "l "))
	assert.Contains(t, lines, "v -1 -1 -1")
	// Indices are 1-based.
	assert.NotContains(t, buf.String(), " 0\n")
}

func TestWriteOBJSolid(t *testing.T) {
	config := generate(t, metadata.ShapeConfig{Name: "tip", Kind: metadata.ShapeKindCone, Radius: 1, Height: 1, Segments: 4})

	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	require.NoError(t, WriteOBJ(w, config))
	require.NoError(t, w.Flush())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, 24, countPrefix(lines, "v "))
	assert.Equal(t, 24, countPrefix(lines, "vn "))
	assert.Equal(t, 8, countPrefix(lines, "f "))
	assert.Contains(t, lines, "f 1//1 2//2 3//3")
	assert.Equal(t, "f 22//22 23//23 24//24", lines[len(lines)-1])
}

func TestWriteOBJRejectsRaggedIndices(t *testing.T) {
	config := &metadata.GeometryConfig{Kind: metadata.MeshKindSolid, Indices: []uint32{0, 1}}
	assert.ErrorIs(t, WriteOBJ(bufio.NewWriter(&bytes.Buffer{}), config), core.ErrInvalidParameter)
}

func TestBinaryRoundTrip(t *testing.T) {
	for _, shape := range []metadata.ShapeConfig{
		{Name: "frame", Kind: metadata.ShapeKindCuboidWireframe, Size: math.NewVec3(1, 2, 3)},
		{Name: "ball", Kind: metadata.ShapeKindSphere, Radius: 2, Depth: 2},
	} {
		t.Run(shape.Name, func(t *testing.T) {
			config := generate(t, shape)

			var buf bytes.Buffer
			w := bufio.NewWriter(&buf)
			require.NoError(t, WriteBinary(w, config))
			require.NoError(t, w.Flush())

			decoded, err := loaders.DecodeMesh(&buf)
			require.NoError(t, err)
			assert.Equal(t, config.Kind, decoded.Kind)
			assert.Equal(t, config.Name, decoded.Name)
			assert.Equal(t, config.VertexCount, decoded.VertexCount)
			assert.Equal(t, config.Positions, decoded.Positions)
			assert.Equal(t, len(config.Normals), len(decoded.Normals))
			assert.Equal(t, config.Indices, decoded.Indices)
			assert.Equal(t, config.MaxExtents, decoded.MaxExtents)
		})
	}
}

func TestDecodeMeshRejectsGarbage(t *testing.T) {
	_, err := loaders.DecodeMesh(bytes.NewReader([]byte{1, 2, 3, 4, 5, 6, 7, 8}))
	assert.ErrorIs(t, err, core.ErrInvalidParameter)
	_, err = loaders.DecodeMesh(bytes.NewReader(nil))
	assert.Error(t, err)
}

func TestExport(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	config := generate(t, metadata.ShapeConfig{Name: "pillar", Kind: metadata.ShapeKindCylinder, Radius: 1, Height: 2, Segments: 8})

	objPath, err := Export(dir, FormatOBJ, config)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "pillar.obj"), objPath)
	assert.FileExists(t, objPath)

	binPath, err := Export(dir, FormatBinary, config)
	require.NoError(t, err)
	resource, err := (&loaders.BinaryLoader{}).Load(binPath, metadata.ResourceTypeMesh, nil)
	require.NoError(t, err)
	assert.Equal(t, "pillar", resource.Name)
	assert.EqualValues(t, 96, resource.DataSize)

	_, err = Export(dir, FormatNone, config)
	assert.ErrorIs(t, err, core.ErrInvalidParameter)
	_, err = Export(dir, FormatOBJ, nil)
	assert.ErrorIs(t, err, core.ErrInvalidParameter)

	escaping := *config
	escaping.Name = "../pillar"
	_, err = Export(dir, FormatOBJ, &escaping)
	assert.ErrorIs(t, err, core.ErrInvalidParameter)
	assert.NoFileExists(t, filepath.Join(filepath.Dir(dir), "pillar.obj"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}
