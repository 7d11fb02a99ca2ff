package systems

import (
	"errors"
	"fmt"

	"github.com/spaghettifunk/meshgen/engine/core"
	"github.com/spaghettifunk/meshgen/engine/renderer/metadata"
)

type MeshLoaderSystem struct {
	geometrySystem *GeometrySystem
}

func NewMeshLoaderSystem(gs *GeometrySystem) (*MeshLoaderSystem, error) {
	if gs == nil {
		return nil, fmt.Errorf("mesh loader needs a geometry system: %w", core.ErrInvalidParameter)
	}
	return &MeshLoaderSystem{
		geometrySystem: gs,
	}, nil
}

func (mls *MeshLoaderSystem) Shutdown() error {
	return nil
}

/**
 * @brief Generates every shape of a manifest resource and (re)fills the mesh
 * with the resulting geometries. Geometries the mesh held before are released
 * once the new set is registered, so shapes dropped from the manifest go away.
 * A shape that fails keeps the geometry its name held in the mesh.
 *
 * @param params The resource and the mesh to fill.
 * @return An error joining every shape that failed; the shapes that succeeded are kept.
 */
func (mls *MeshLoaderSystem) LoadFromResource(params *metadata.MeshLoadParams) error {
	if params == nil || params.MeshResource == nil || params.OutMesh == nil {
		return fmt.Errorf("mesh load params are incomplete: %w", core.ErrInvalidParameter)
	}
	shapes, ok := params.MeshResource.Data.([]metadata.ShapeConfig)
	if !ok {
		err := fmt.Errorf("resource '%s' does not hold shape configs", params.ResourceName)
		core.LogError(err.Error())
		return err
	}

	configs, genErr := mls.geometrySystem.GenerateBatch(shapes)

	var errs []error
	if genErr != nil {
		errs = append(errs, genErr)
	}
	// Names of shapes that failed this pass keep whatever the mesh held before.
	failed := make(map[string]bool)
	loaded := make(map[string]bool)
	geometries := make([]*metadata.Geometry, 0, len(configs))
	for i, config := range configs {
		if config == nil {
			failed[shapes[i].Name] = true
			continue
		}
		g, err := mls.geometrySystem.AcquireFromGenerated(config, true)
		if err != nil {
			errs = append(errs, err)
			failed[config.Name] = true
			continue
		}
		loaded[g.Name] = true
		geometries = append(geometries, g)
	}

	mesh := params.OutMesh
	previous := mesh.Geometries
	for _, g := range previous {
		if failed[g.Name] && !loaded[g.Name] {
			core.LogWarn("keeping previous geometry '%s' of mesh '%s'", g.Name, params.ResourceName)
			geometries = append(geometries, g)
			continue
		}
		mls.geometrySystem.Release(g)
	}
	mesh.Name = params.ResourceName
	mesh.Geometries = geometries
	mesh.Generation++

	if len(errs) > 0 {
		err := errors.Join(errs...)
		core.LogError("mesh '%s' loaded with errors: %s", params.ResourceName, err)
		return err
	}
	core.LogDebug("Successfully loaded mesh '%s' (%d geometries).", params.ResourceName, len(geometries))
	return nil
}

// Unload releases every geometry held by the mesh.
func (mls *MeshLoaderSystem) Unload(mesh *metadata.Mesh) {
	if mesh == nil {
		return
	}
	for _, g := range mesh.Geometries {
		mls.geometrySystem.Release(g)
	}
	mesh.Geometries = nil
}
