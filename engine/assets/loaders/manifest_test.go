package loaders

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/meshgen/engine/core"
	"github.com/spaghettifunk/meshgen/engine/renderer/metadata"
)

var defaults = ManifestDefaults{Segments: 24, SphereDepth: 3}

const tomlManifest = `
[[shape]]
name = "crate"
type = "cuboid"
size = [1, 2, 0.5]

[[shape]]
name = "ball"
type = "sphere"
radius = 2.5
depth = 0

[[shape]]
type = "Cylinder"
radius = 1
height = 3
`

const yamlManifest = `
shapes:
  - name: frame
    type: cuboid-wireframe
    size: [2, 2, 2]
  - name: tip
    type: cone
    radius: 0.5
    height: 1
    segments: 6
  - name: planet
    type: sphere
    radius: 10
`

func TestDecodeManifestTOML(t *testing.T) {
	shapes, err := DecodeManifest([]byte(tomlManifest), ".toml", defaults)
	require.NoError(t, err)
	require.Len(t, shapes, 3)

	assert.Equal(t, "crate", shapes[0].Name)
	assert.Equal(t, metadata.ShapeKindCuboid, shapes[0].Kind)
	assert.InDelta(t, 2, shapes[0].Size.Y, 1e-6)
	assert.InDelta(t, 0.5, shapes[0].Size.Z, 1e-6)

	assert.Equal(t, metadata.ShapeKindSphere, shapes[1].Kind)
	assert.InDelta(t, 2.5, shapes[1].Radius, 1e-6)
	assert.Equal(t, 0, shapes[1].Depth, "an explicit depth of 0 is kept")

	assert.Empty(t, shapes[2].Name)
	assert.Equal(t, metadata.ShapeKindCylinder, shapes[2].Kind)
	assert.Equal(t, 24, shapes[2].Segments)
}

func TestDecodeManifestYAML(t *testing.T) {
	for _, ext := range []string{".yaml", ".yml"} {
		shapes, err := DecodeManifest([]byte(yamlManifest), ext, defaults)
		require.NoError(t, err)
		require.Len(t, shapes, 3)

		assert.Equal(t, metadata.ShapeKindCuboidWireframe, shapes[0].Kind)
		assert.InDelta(t, 2, shapes[0].Size.X, 1e-6)
		assert.Equal(t, 6, shapes[1].Segments)
		assert.Equal(t, 3, shapes[2].Depth)
	}
}

func TestDecodeManifestErrors(t *testing.T) {
	_, err := DecodeManifest([]byte(`[[shape]]
type = "torus"`), ".toml", defaults)
	assert.ErrorIs(t, err, core.ErrUnknownShape)

	_, err = DecodeManifest([]byte(`[[shape]]
type = "cone"
colour = "red"`), ".toml", defaults)
	assert.Error(t, err)

	_, err = DecodeManifest([]byte("shapes: [1"), ".yaml", defaults)
	assert.Error(t, err)

	_, err = DecodeManifest([]byte("{}"), ".json", defaults)
	assert.ErrorIs(t, err, core.ErrInvalidParameter)
}

func TestDecodeManifestRejectsPathNames(t *testing.T) {
	for _, name := range []string{"../escape", "props/crate", `props\crate`, "..", "."} {
		t.Run(name, func(t *testing.T) {
			data := []byte("shapes:\n  - name: '" + name + "'\n    type: cone\n    radius: 1\n    height: 1\n")
			shapes, err := DecodeManifest(data, ".yaml", defaults)
			assert.ErrorIs(t, err, core.ErrInvalidParameter)
			assert.Nil(t, shapes)
		})
	}

	shapes, err := DecodeManifest([]byte("shapes:\n  - name: crate.v2\n    type: cone\n    radius: 1\n    height: 1\n"), ".yaml", defaults)
	require.NoError(t, err)
	require.Len(t, shapes, 1)
	assert.Equal(t, "crate.v2", shapes[0].Name)
}

func TestDecodeManifestEmpty(t *testing.T) {
	shapes, err := DecodeManifest(nil, ".yaml", defaults)
	require.NoError(t, err)
	assert.Empty(t, shapes)

	shapes, err = DecodeManifest(nil, ".toml", defaults)
	require.NoError(t, err)
	assert.Empty(t, shapes)
}

func TestManifestLoader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.toml")
	require.NoError(t, os.WriteFile(path, []byte(tomlManifest), 0o644))

	loader := &ManifestLoader{Defaults: defaults}
	resource, err := loader.Load(path, metadata.ResourceTypeShapeManifest, nil)
	require.NoError(t, err)
	assert.Equal(t, "scene", resource.Name)
	assert.Equal(t, path, resource.FullPath)
	assert.EqualValues(t, 3, resource.DataSize)
	require.IsType(t, []metadata.ShapeConfig{}, resource.Data)

	// Params override the loader defaults.
	resource, err = loader.Load(path, metadata.ResourceTypeShapeManifest, ManifestDefaults{Segments: 8, SphereDepth: 1})
	require.NoError(t, err)
	assert.Equal(t, 8, resource.Data.([]metadata.ShapeConfig)[2].Segments)

	require.NoError(t, loader.Unload(resource))
	assert.Nil(t, resource.Data)

	_, err = loader.Load(path, metadata.ResourceTypeMesh, nil)
	assert.ErrorIs(t, err, core.ErrInvalidParameter)
	_, err = loader.Load(filepath.Join(t.TempDir(), "missing.toml"), metadata.ResourceTypeShapeManifest, nil)
	assert.Error(t, err)
}
