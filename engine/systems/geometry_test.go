package systems

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/meshgen/engine/core"
	"github.com/spaghettifunk/meshgen/engine/math"
	"github.com/spaghettifunk/meshgen/engine/renderer/metadata"
)

func newTestGeometrySystem(t *testing.T, max uint32, js *JobSystem) *GeometrySystem {
	t.Helper()
	gs, err := NewGeometrySystem(&metadata.GeometrySystemConfig{MaxGeometryCount: max}, js)
	require.NoError(t, err)
	t.Cleanup(func() { _ = gs.Shutdown() })
	return gs
}

func TestNewGeometrySystemNeedsCapacity(t *testing.T) {
	_, err := NewGeometrySystem(nil, nil)
	assert.ErrorIs(t, err, core.ErrInvalidParameter)
	_, err = NewGeometrySystem(&metadata.GeometrySystemConfig{}, nil)
	assert.ErrorIs(t, err, core.ErrInvalidParameter)
}

func TestGenerateGeometryConfig(t *testing.T) {
	tests := []struct {
		shape    metadata.ShapeConfig
		kind     metadata.MeshKind
		vertices uint32
		indices  uint32
	}{
		{metadata.ShapeConfig{Kind: metadata.ShapeKindCuboidWireframe, Size: math.NewVec3(1, 1, 1)}, metadata.MeshKindWireframe, 8, 48},
		{metadata.ShapeConfig{Kind: metadata.ShapeKindCuboid, Size: math.NewVec3(1, 1, 1)}, metadata.MeshKindSolid, 24, 36},
		{metadata.ShapeConfig{Kind: metadata.ShapeKindSphere, Radius: 1, Depth: 3}, metadata.MeshKindSolid, 1536, 1536},
		{metadata.ShapeConfig{Kind: metadata.ShapeKindCylinder, Radius: 1, Height: 2, Segments: 24}, metadata.MeshKindSolid, 288, 288},
		{metadata.ShapeConfig{Kind: metadata.ShapeKindCone, Radius: 1, Height: 2, Segments: 24}, metadata.MeshKindSolid, 144, 144},
	}
	for _, tt := range tests {
		t.Run(tt.shape.Kind.String(), func(t *testing.T) {
			config, err := GenerateGeometryConfig(tt.shape)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, config.Kind)
			assert.Equal(t, tt.vertices, config.VertexCount)
			assert.Equal(t, tt.indices, config.IndexCount)
			assert.Len(t, config.Positions, int(tt.vertices)*3)
			if tt.kind == metadata.MeshKindSolid {
				assert.Len(t, config.Normals, int(tt.vertices)*3)
			} else {
				assert.Empty(t, config.Normals)
			}
		})
	}
}

func TestGenerateGeometryConfigExtents(t *testing.T) {
	config, err := GenerateGeometryConfig(metadata.ShapeConfig{Kind: metadata.ShapeKindCuboid, Size: math.NewVec3(2, 4, 6)})
	require.NoError(t, err)
	assert.True(t, config.MinExtents.Compare(math.NewVec3(-1, -2, -3), 1e-6))
	assert.True(t, config.MaxExtents.Compare(math.NewVec3(1, 2, 3), 1e-6))
	assert.True(t, config.Center.Compare(math.NewVec3Zero(), 1e-6))

	config, err = GenerateGeometryConfig(metadata.ShapeConfig{Kind: metadata.ShapeKindCone, Radius: 1, Height: 2, Segments: 8})
	require.NoError(t, err)
	assert.InDelta(t, -1, config.MinExtents.Y, 1e-6)
	assert.InDelta(t, 1, config.MaxExtents.Y, 1e-6)
}

func TestGenerateGeometryConfigErrors(t *testing.T) {
	_, err := GenerateGeometryConfig(metadata.ShapeConfig{Kind: metadata.ShapeKindSphere, Radius: -1, Depth: 1})
	assert.ErrorIs(t, err, core.ErrInvalidParameter)
	_, err = GenerateGeometryConfig(metadata.ShapeConfig{Kind: metadata.ShapeKind(42)})
	assert.ErrorIs(t, err, core.ErrUnknownShape)
}

func TestAcquireAndRelease(t *testing.T) {
	gs := newTestGeometrySystem(t, 8, nil)

	g, err := gs.AcquireFromConfig(metadata.ShapeConfig{Kind: metadata.ShapeKindCuboid, Size: math.NewVec3One()}, true)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(g.Name, "cuboid-"), g.Name)
	assert.Equal(t, 1, gs.Count())
	assert.EqualValues(t, 1, gs.ReferenceCount(g.ID))

	same, err := gs.AcquireByID(g.ID)
	require.NoError(t, err)
	assert.Same(t, g, same)
	assert.EqualValues(t, 2, gs.ReferenceCount(g.ID))

	byName, err := gs.AcquireByName(g.Name)
	require.NoError(t, err)
	assert.Same(t, g, byName)

	gs.Release(g)
	gs.ReleaseByName(g.Name)
	assert.Equal(t, 1, gs.Count())
	gs.Release(g)
	assert.Equal(t, 0, gs.Count(), "auto-release geometry is destroyed at zero references")

	_, err = gs.AcquireByID(g.ID)
	assert.ErrorIs(t, err, core.ErrInvalidID)
	_, err = gs.AcquireByName("missing")
	assert.ErrorIs(t, err, core.ErrInvalidID)
}

func TestReleaseWithoutAutoReleaseKeepsGeometry(t *testing.T) {
	gs := newTestGeometrySystem(t, 8, nil)

	g, err := gs.AcquireFromConfig(metadata.ShapeConfig{Name: "ball", Kind: metadata.ShapeKindSphere, Radius: 1, Depth: 1}, false)
	require.NoError(t, err)
	gs.Release(g)
	got, ok := gs.Get("ball")
	require.True(t, ok)
	assert.Same(t, g, got)
	assert.EqualValues(t, 0, gs.ReferenceCount(g.ID))
}

func TestAcquireExistingNameReplaces(t *testing.T) {
	gs := newTestGeometrySystem(t, 8, nil)

	first, err := gs.AcquireFromConfig(metadata.ShapeConfig{Name: "pillar", Kind: metadata.ShapeKindCylinder, Radius: 1, Height: 1, Segments: 8}, true)
	require.NoError(t, err)
	second, err := gs.AcquireFromConfig(metadata.ShapeConfig{Name: "pillar", Kind: metadata.ShapeKindCylinder, Radius: 1, Height: 3, Segments: 8}, true)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.EqualValues(t, 1, second.Generation)
	assert.InDelta(t, 1.5, second.Extents.Max.Y, 1e-6)
	assert.EqualValues(t, 2, gs.ReferenceCount(second.ID))
	assert.Equal(t, []string{"pillar"}, gs.Names())
}

func TestGeometryLimit(t *testing.T) {
	gs := newTestGeometrySystem(t, 1, nil)

	_, err := gs.AcquireFromConfig(metadata.ShapeConfig{Kind: metadata.ShapeKindCuboidWireframe, Size: math.NewVec3One()}, true)
	require.NoError(t, err)
	_, err = gs.AcquireFromConfig(metadata.ShapeConfig{Kind: metadata.ShapeKindCuboidWireframe, Size: math.NewVec3One()}, true)
	assert.ErrorIs(t, err, core.ErrGeometryLimit)
}

func TestGeometryGeneratedEvent(t *testing.T) {
	require.True(t, core.EventSystemInitialize())
	gs := newTestGeometrySystem(t, 4, nil)

	var ctx core.EventContext
	fired := false
	listener := &struct{}{}
	require.True(t, core.EventRegister(core.EVENT_CODE_GEOMETRY_GENERATED, listener,
		func(code core.SystemEventCode, sender, inst interface{}, data core.EventContext) bool {
			fired = true
			ctx = data
			return true
		}))
	defer core.EventUnregister(core.EVENT_CODE_GEOMETRY_GENERATED, listener)

	g, err := gs.AcquireFromConfig(metadata.ShapeConfig{Name: "tip", Kind: metadata.ShapeKindCone, Radius: 1, Height: 1, Segments: 3}, true)
	require.NoError(t, err)
	require.True(t, fired)
	assert.Equal(t, g.ID, ctx.Data.U32[0])
	assert.EqualValues(t, 18, ctx.Data.U32[1])
	assert.EqualValues(t, 18, ctx.Data.U32[2])
	assert.Equal(t, "tip", ctx.Data.C[0])
}

func TestGenerateBatch(t *testing.T) {
	shapes := []metadata.ShapeConfig{
		{Name: "box", Kind: metadata.ShapeKindCuboid, Size: math.NewVec3One()},
		{Name: "bad", Kind: metadata.ShapeKindSphere, Radius: 1, Depth: -1},
		{Name: "cone", Kind: metadata.ShapeKindCone, Radius: 1, Height: 1, Segments: 5},
		{Name: "deep", Kind: metadata.ShapeKindSphere, Radius: 1, Depth: 30},
	}

	js, err := NewJobSystem(2, 4)
	require.NoError(t, err)
	defer js.Shutdown()

	for name, gs := range map[string]*GeometrySystem{
		"inline": newTestGeometrySystem(t, 8, nil),
		"jobs":   newTestGeometrySystem(t, 8, js),
	} {
		t.Run(name, func(t *testing.T) {
			configs, err := gs.GenerateBatch(shapes)
			assert.ErrorIs(t, err, core.ErrInvalidParameter)
			require.Len(t, configs, 4)
			require.NotNil(t, configs[0])
			assert.Equal(t, "box", configs[0].Name)
			assert.Nil(t, configs[1])
			require.NotNil(t, configs[2])
			assert.Equal(t, "cone", configs[2].Name)
			assert.EqualValues(t, 30, configs[2].VertexCount)
			assert.Nil(t, configs[3])
		})
	}
}

func TestGenerateConfigRecordsMetrics(t *testing.T) {
	core.MetricsReset()
	gs := newTestGeometrySystem(t, 4, nil)

	_, err := gs.GenerateConfig(metadata.ShapeConfig{Kind: metadata.ShapeKindCuboid, Size: math.NewVec3One()})
	require.NoError(t, err)
	snapshot := core.MetricsFrame()
	assert.EqualValues(t, 1, snapshot.Meshes)
	assert.EqualValues(t, 24, snapshot.Vertices)
	assert.EqualValues(t, 36, snapshot.Indices)
}
