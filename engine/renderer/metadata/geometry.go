package metadata

import (
	"fmt"
	"strings"

	"github.com/spaghettifunk/meshgen/engine/core"
	"github.com/spaghettifunk/meshgen/engine/math"
)

/** @brief The kind of primitive a mesh is made of. */
type MeshKind int

const (
	/** @brief Line segments, indices come in pairs. */
	MeshKindWireframe MeshKind = iota
	/** @brief Triangles, indices come in triples, each vertex has a normal. */
	MeshKindSolid
)

func (k MeshKind) String() string {
	switch k {
	case MeshKindWireframe:
		return "wireframe"
	case MeshKindSolid:
		return "solid"
	default:
		return fmt.Sprintf("MeshKind(%d)", int(k))
	}
}

/** @brief The canonical solids the generator knows how to build. */
type ShapeKind int

const (
	ShapeKindCuboidWireframe ShapeKind = iota
	ShapeKindCuboid
	ShapeKindSphere
	ShapeKindCylinder
	ShapeKindCone
)

var shapeKindNames = map[ShapeKind]string{
	ShapeKindCuboidWireframe: "cuboid-wireframe",
	ShapeKindCuboid:          "cuboid",
	ShapeKindSphere:          "sphere",
	ShapeKindCylinder:        "cylinder",
	ShapeKindCone:            "cone",
}

func (k ShapeKind) String() string {
	if name, ok := shapeKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ShapeKind(%d)", int(k))
}

// MeshKind returns the sink variant the shape is generated into.
func (k ShapeKind) MeshKind() MeshKind {
	if k == ShapeKindCuboidWireframe {
		return MeshKindWireframe
	}
	return MeshKindSolid
}

// ParseShapeKind accepts the names printed by ShapeKind.String, case-insensitively.
func ParseShapeKind(name string) (ShapeKind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for k, n := range shapeKindNames {
		if n == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("shape %q: %w", name, core.ErrUnknownShape)
}

/**
 * @brief Checks that a geometry name can be used as a file name inside the
 * export directory. The empty name is allowed, the geometry system assigns one.
 */
func CheckGeometryName(name string) error {
	if name == "." || name == ".." || strings.ContainsAny(name, "/\\") {
		return fmt.Errorf("geometry name %q must not be a path: %w", name, core.ErrInvalidParameter)
	}
	return nil
}

/**
 * @brief Describes a shape to generate. Only the fields relevant to Kind are read.
 */
type ShapeConfig struct {
	/** @brief The Name of the geometry. Generated when empty. */
	Name string
	/** @brief The kind of solid. */
	Kind ShapeKind
	/** @brief Cuboid size on x, y and z. */
	Size math.Vec3
	/** @brief Sphere, cylinder and cone radius. */
	Radius float32
	/** @brief Cylinder and cone height. */
	Height float32
	/** @brief Rim resolution of cylinders and cones. */
	Segments int
	/** @brief Subdivision passes of spheres. */
	Depth int
}

/**
 * @brief Represents the configuration for a geometry: the generated
 * buffers plus the data derived from them.
 */
type GeometryConfig struct {
	/** @brief Wireframe or solid. */
	Kind MeshKind
	/** @brief The shape this geometry was generated from. */
	Shape ShapeConfig
	/** @brief The number of vertices. */
	VertexCount uint32
	/** @brief Vertex positions as x, y, z triples. */
	Positions []float32
	/** @brief Vertex normals as x, y, z triples. Empty for wireframes. */
	Normals []float32
	/** @brief The number of indices. */
	IndexCount uint32
	/** @brief An array of Indices. */
	Indices []uint32

	Center     math.Vec3
	MinExtents math.Vec3
	MaxExtents math.Vec3

	/** @brief The Name of the geometry. */
	Name string
}

type GeometryReference struct {
	ReferenceCount uint64
	Geometry       *Geometry
	AutoRelease    bool
}

/**
 * @brief Represents generated geometry held by the geometry system.
 */
type Geometry struct {
	/** @brief The geometry identifier. */
	ID uint32
	/** @brief The geometry generation. Incremented every time the geometry changes. */
	Generation uint16
	/** @brief The center of the geometry in local coordinates. */
	Center math.Vec3
	/** @brief The extents of the geometry in local coordinates. */
	Extents math.Extents3D
	/** @brief The geometry name. */
	Name string
	/** @brief The generated data. */
	Config *GeometryConfig
}

/** @brief The configuration for the geometry system. */
type GeometrySystemConfig struct {
	/**
	 * @brief Max number of geometries that can be registered at once.
	 * NOTE: Should be significantly greater than the number of static meshes because
	 * there can and will be more than one of these per mesh.
	 */
	MaxGeometryCount uint32
	/** @brief Number of workers generating batches. */
	Workers int
	/** @brief Size of the job queue. */
	QueueSize int
}
