package metadata

// Input of MeshLoaderSystem.LoadFromResource.
type MeshLoadParams struct {
	ResourceName string
	OutMesh      *Mesh
	MeshResource *Resource
}

/**
 * @brief A named group of geometries generated from one shape manifest.
 */
type Mesh struct {
	UniqueID uint32
	/** @brief Incremented every time the mesh is (re)loaded. */
	Generation uint8
	/** @brief The manifest the mesh was loaded from. */
	Name       string
	Geometries []*Geometry
}

// GeometryCount returns the number of geometries in the mesh.
func (m *Mesh) GeometryCount() int {
	return len(m.Geometries)
}
