package systems

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/spaghettifunk/meshgen/engine/core"
	"github.com/spaghettifunk/meshgen/engine/generator"
	"github.com/spaghettifunk/meshgen/engine/math"
	"github.com/spaghettifunk/meshgen/engine/renderer/metadata"
)

type GeometrySystem struct {
	config    *metadata.GeometrySystemConfig
	jobSystem *JobSystem

	mutex sync.RWMutex
	// Registered geometries by id.
	registered map[uint32]*metadata.GeometryReference
	byName     map[string]uint32
}

/**
 * @brief Initializes the geometry system.
 *
 * @param config The configuration for this system.
 * @param js The job system batches are spread over. Can be nil, batches then run inline.
 */
func NewGeometrySystem(config *metadata.GeometrySystemConfig, js *JobSystem) (*GeometrySystem, error) {
	if config == nil || config.MaxGeometryCount == 0 {
		err := fmt.Errorf("func NewGeometrySystem - config.MaxGeometryCount must be > 0: %w", core.ErrInvalidParameter)
		core.LogWarn(err.Error())
		return nil, err
	}

	return &GeometrySystem{
		config:     config,
		jobSystem:  js,
		registered: make(map[uint32]*metadata.GeometryReference),
		byName:     make(map[string]uint32),
	}, nil
}

/**
 * @brief Shuts down the geometry system, destroying every registered geometry.
 */
func (gs *GeometrySystem) Shutdown() error {
	gs.mutex.Lock()
	defer gs.mutex.Unlock()

	for _, ref := range gs.registered {
		gs.destroyGeometry(ref.Geometry)
	}
	return nil
}

/**
 * @brief Generates the mesh described by shape into fresh buffers. This does
 * not register anything.
 *
 * @param shape The shape to generate.
 * @return The geometry configuration or an error wrapping ErrInvalidParameter / ErrUnknownShape.
 */
func GenerateGeometryConfig(shape metadata.ShapeConfig) (*metadata.GeometryConfig, error) {
	config := &metadata.GeometryConfig{
		Kind:  shape.Kind.MeshKind(),
		Shape: shape,
		Name:  shape.Name,
	}

	var err error
	switch shape.Kind {
	case metadata.ShapeKindCuboidWireframe:
		buf := &generator.WireframeBuffer{}
		err = generator.CuboidWireframe(buf, shape.Size)
		config.Positions, config.Indices = buf.Positions, buf.Indices
	case metadata.ShapeKindCuboid, metadata.ShapeKindSphere, metadata.ShapeKindCylinder, metadata.ShapeKindCone:
		buf := &generator.SolidBuffer{}
		switch shape.Kind {
		case metadata.ShapeKindCuboid:
			err = generator.Cuboid(buf, shape.Size)
		case metadata.ShapeKindSphere:
			err = generator.Sphere(buf, shape.Radius, shape.Depth)
		case metadata.ShapeKindCylinder:
			err = generator.Cylinder(buf, shape.Radius, shape.Height, shape.Segments)
		case metadata.ShapeKindCone:
			err = generator.Cone(buf, shape.Radius, shape.Height, shape.Segments)
		}
		config.Positions, config.Normals, config.Indices = buf.Positions, buf.Normals, buf.Indices
	default:
		err = fmt.Errorf("%s: %w", shape.Kind, core.ErrUnknownShape)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to generate %s '%s': %w", shape.Kind, shape.Name, err)
	}

	config.VertexCount = uint32(len(config.Positions) / 3)
	config.IndexCount = uint32(len(config.Indices))

	positions := make([]math.Vec3, config.VertexCount)
	for i := range positions {
		positions[i] = math.NewVec3(config.Positions[i*3], config.Positions[i*3+1], config.Positions[i*3+2])
	}
	extents, center := math.GeometryExtents(positions)
	config.MinExtents = extents.Min
	config.MaxExtents = extents.Max
	config.Center = center

	return config, nil
}

/**
 * @brief Generates a geometry configuration, timing it and recording the
 * result in the engine metrics.
 */
func (gs *GeometrySystem) GenerateConfig(shape metadata.ShapeConfig) (*metadata.GeometryConfig, error) {
	clock := core.NewClock()
	clock.Start()
	config, err := GenerateGeometryConfig(shape)
	clock.Stop()
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}
	core.MetricsRecordGeneration(int(config.VertexCount), int(config.IndexCount), clock.ElapsedMS())
	core.LogDebug("generated %s '%s': %d vertices, %d indices in %.3fms",
		shape.Kind, shape.Name, config.VertexCount, config.IndexCount, clock.ElapsedMS())
	return config, nil
}

/**
 * @brief Generates every shape, spreading the work over the job system. Each
 * job writes into its own buffers.
 *
 * @return The configurations in input order. Entries of failed shapes are nil
 * and their errors are joined into the returned error.
 */
func (gs *GeometrySystem) GenerateBatch(shapes []metadata.ShapeConfig) ([]*metadata.GeometryConfig, error) {
	configs := make([]*metadata.GeometryConfig, len(shapes))
	errs := make([]error, len(shapes))

	if gs.jobSystem == nil {
		for i, shape := range shapes {
			configs[i], errs[i] = gs.GenerateConfig(shape)
		}
		return configs, errors.Join(errs...)
	}

	var wg sync.WaitGroup
	for i, shape := range shapes {
		wg.Add(1)
		err := gs.jobSystem.Submit(metadata.JobTask{
			InputParams: shape,
			OnStart: func(params interface{}) (interface{}, error) {
				return gs.GenerateConfig(params.(metadata.ShapeConfig))
			},
			OnComplete: func(result interface{}) {
				configs[i] = result.(*metadata.GeometryConfig)
			},
			OnFailure: func(err error) {
				errs[i] = err
			},
			OnCompletionCallback: wg.Done,
		})
		if err != nil {
			errs[i] = err
			wg.Done()
		}
	}
	wg.Wait()

	return configs, errors.Join(errs...)
}

/**
 * @brief Generates and registers a new geometry using the given shape.
 *
 * @param shape The shape configuration.
 * @param autoRelease Indicates if the acquired geometry should be unloaded when its reference count reaches 0.
 * @return The acquired geometry or an error.
 */
func (gs *GeometrySystem) AcquireFromConfig(shape metadata.ShapeConfig, autoRelease bool) (*metadata.Geometry, error) {
	config, err := gs.GenerateConfig(shape)
	if err != nil {
		return nil, err
	}
	return gs.AcquireFromGenerated(config, autoRelease)
}

/**
 * @brief Registers already generated data. Unnamed configs get a generated
 * name. Registering a name that is already known replaces that geometry's data
 * in place, bumps its generation and takes a new reference.
 */
func (gs *GeometrySystem) AcquireFromGenerated(config *metadata.GeometryConfig, autoRelease bool) (*metadata.Geometry, error) {
	if config == nil {
		return nil, fmt.Errorf("cannot register a nil geometry config: %w", core.ErrInvalidParameter)
	}
	if len(config.Name) == 0 {
		config.Name = fmt.Sprintf("%s-%s", config.Shape.Kind, uuid.NewString())
	}

	gs.mutex.Lock()
	geometry, err := gs.acquire(config, autoRelease)
	gs.mutex.Unlock()
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}

	ctx := core.EventContext{}
	ctx.Data.U32[0] = geometry.ID
	ctx.Data.U32[1] = config.VertexCount
	ctx.Data.U32[2] = config.IndexCount
	ctx.Data.C[0] = geometry.Name
	core.EventFire(core.EVENT_CODE_GEOMETRY_GENERATED, gs, ctx)

	return geometry, nil
}

func (gs *GeometrySystem) acquire(config *metadata.GeometryConfig, autoRelease bool) (*metadata.Geometry, error) {
	if id, ok := gs.byName[config.Name]; ok {
		ref := gs.registered[id]
		ref.ReferenceCount++
		ref.AutoRelease = autoRelease
		gs.applyConfig(ref.Geometry, config)
		ref.Geometry.Generation++
		return ref.Geometry, nil
	}

	if uint32(len(gs.registered)) >= gs.config.MaxGeometryCount {
		return nil, fmt.Errorf("unable to obtain free slot for geometry '%s' (max=%d): %w",
			config.Name, gs.config.MaxGeometryCount, core.ErrGeometryLimit)
	}

	geometry := &metadata.Geometry{}
	geometry.ID = core.IdentifierAquireNewID(geometry)
	gs.applyConfig(geometry, config)
	gs.registered[geometry.ID] = &metadata.GeometryReference{
		ReferenceCount: 1,
		Geometry:       geometry,
		AutoRelease:    autoRelease,
	}
	gs.byName[geometry.Name] = geometry.ID
	return geometry, nil
}

func (gs *GeometrySystem) applyConfig(geometry *metadata.Geometry, config *metadata.GeometryConfig) {
	// Copy over extents, center, etc.
	geometry.Name = config.Name
	geometry.Config = config
	geometry.Center = config.Center
	geometry.Extents.Min = config.MinExtents
	geometry.Extents.Max = config.MaxExtents
}

/**
 * @brief Acquires an existing geometry by id.
 *
 * @param id The geometry identifier to acquire by.
 * @return The acquired geometry or ErrInvalidID.
 */
func (gs *GeometrySystem) AcquireByID(id uint32) (*metadata.Geometry, error) {
	gs.mutex.Lock()
	defer gs.mutex.Unlock()

	ref, ok := gs.registered[id]
	if !ok {
		err := fmt.Errorf("cannot acquire geometry id %d: %w", id, core.ErrInvalidID)
		core.LogError(err.Error())
		return nil, err
	}
	ref.ReferenceCount++
	return ref.Geometry, nil
}

// AcquireByName acquires an existing geometry by name.
func (gs *GeometrySystem) AcquireByName(name string) (*metadata.Geometry, error) {
	gs.mutex.RLock()
	id, ok := gs.byName[name]
	gs.mutex.RUnlock()
	if !ok {
		err := fmt.Errorf("cannot acquire geometry '%s': %w", name, core.ErrInvalidID)
		core.LogError(err.Error())
		return nil, err
	}
	return gs.AcquireByID(id)
}

/**
 * @brief Releases a reference to the provided geometry.
 *
 * @param geometry The geometry to be released.
 */
func (gs *GeometrySystem) Release(geometry *metadata.Geometry) {
	if geometry == nil {
		core.LogWarn("geometry system cannot release a nil geometry. Nothing was done.")
		return
	}

	gs.mutex.Lock()
	defer gs.mutex.Unlock()

	ref, ok := gs.registered[geometry.ID]
	if !ok || ref.Geometry != geometry {
		core.LogWarn("geometry system cannot release unknown geometry id %d. Nothing was done.", geometry.ID)
		return
	}

	if ref.ReferenceCount > 0 {
		ref.ReferenceCount--
	}
	if ref.ReferenceCount < 1 && ref.AutoRelease {
		gs.destroyGeometry(ref.Geometry)
	}
}

// ReleaseByName releases a reference to the geometry registered under name.
func (gs *GeometrySystem) ReleaseByName(name string) {
	geometry, ok := gs.Get(name)
	if !ok {
		core.LogWarn("geometry system cannot release unknown geometry '%s'. Nothing was done.", name)
		return
	}
	gs.Release(geometry)
}

// ReferenceCount returns the number of references held on the geometry with the given id.
func (gs *GeometrySystem) ReferenceCount(id uint32) uint64 {
	gs.mutex.RLock()
	defer gs.mutex.RUnlock()
	if ref, ok := gs.registered[id]; ok {
		return ref.ReferenceCount
	}
	return 0
}

// Get looks a geometry up by name without taking a reference.
func (gs *GeometrySystem) Get(name string) (*metadata.Geometry, bool) {
	gs.mutex.RLock()
	defer gs.mutex.RUnlock()
	id, ok := gs.byName[name]
	if !ok {
		return nil, false
	}
	return gs.registered[id].Geometry, true
}

// Count returns the number of registered geometries.
func (gs *GeometrySystem) Count() int {
	gs.mutex.RLock()
	defer gs.mutex.RUnlock()
	return len(gs.registered)
}

// Names returns the names of every registered geometry.
func (gs *GeometrySystem) Names() []string {
	gs.mutex.RLock()
	defer gs.mutex.RUnlock()
	names := make([]string, 0, len(gs.byName))
	for name := range gs.byName {
		names = append(names, name)
	}
	return names
}

// caller holds the lock
func (gs *GeometrySystem) destroyGeometry(geometry *metadata.Geometry) {
	delete(gs.registered, geometry.ID)
	delete(gs.byName, geometry.Name)
	if err := core.IdentifierReleaseID(geometry.ID); err != nil {
		core.LogWarn(err.Error())
	}
	geometry.Config = nil
	geometry.Generation = 0
	geometry.Name = ""
}
