package engine

import (
	"errors"
	"fmt"
	"sync"

	"github.com/spaghettifunk/meshgen/engine/assets"
	"github.com/spaghettifunk/meshgen/engine/assets/exporters"
	"github.com/spaghettifunk/meshgen/engine/core"
	"github.com/spaghettifunk/meshgen/engine/renderer/metadata"
	"github.com/spaghettifunk/meshgen/engine/systems"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
	// Engine released every system
	EngineStageShutdown
)

type Engine struct {
	currentStage  Stage
	config        *ApplicationConfig
	exportFormat  exporters.Format
	assetManager  *assets.AssetManager
	systemManager *systems.SystemManager
	clock         *core.Clock

	// One mesh per manifest, keyed by manifest path.
	meshes map[string]*metadata.Mesh

	quit     chan struct{}
	quitOnce sync.Once
}

func New(config *ApplicationConfig) (*Engine, error) {
	if config == nil {
		return nil, fmt.Errorf("engine needs a configuration: %w", core.ErrInvalidParameter)
	}
	if err := config.Validate(); err != nil {
		core.LogError(err.Error())
		return nil, err
	}
	format, err := exporters.ParseFormat(config.ExportFormat)
	if err != nil {
		return nil, err
	}

	am, err := assets.NewAssetManager()
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}

	sm, err := systems.NewSystemManager(config.geometrySystemConfig())
	if err != nil {
		core.LogError(err.Error())
		_ = am.Shutdown()
		return nil, err
	}

	return &Engine{
		currentStage:  EngineStageUninitialized,
		config:        config,
		exportFormat:  format,
		assetManager:  am,
		systemManager: sm,
		clock:         core.NewClock(),
		meshes:        make(map[string]*metadata.Mesh),
		quit:          make(chan struct{}),
	}, nil
}

func (e *Engine) Initialize() error {
	e.currentStage = EngineStageInitializing

	level, err := core.ParseLogLevel(e.config.LogLevel)
	if err != nil {
		return err
	}
	core.SetLogLevel(level)

	// initialize events
	if !core.EventSystemInitialize() {
		return fmt.Errorf("failed to initialize the event system")
	}
	if err := core.MetricsInitialize(); err != nil {
		return err
	}

	// register some events
	core.EventRegister(core.EVENT_CODE_APPLICATION_QUIT, e, e.onEvent)
	core.EventRegister(core.EVENT_CODE_MANIFEST_CHANGED, e, e.onEvent)

	// initialize subsystems
	if err := e.assetManager.Initialize(e.config.ManifestDir, e.config.Defaults); err != nil {
		core.LogError(err.Error())
		return err
	}

	core.LogInfo("%s initialized: %d workers, manifests in '%s'", e.config.Name, e.config.Workers, e.config.ManifestDir)
	e.currentStage = EngineStageInitialized
	return nil
}

/**
 * @brief Generates every known manifest, exporting the results if configured.
 * In watch mode it then keeps regenerating manifests as they change, until
 * EVENT_CODE_APPLICATION_QUIT is fired.
 *
 * @return The joined errors of the first pass. Errors while watching are only logged.
 */
func (e *Engine) Run() error {
	if e.currentStage != EngineStageInitialized {
		return fmt.Errorf("engine must be initialized before running")
	}
	e.currentStage = EngineStageRunning

	e.clock.Start()
	var errs []error
	for _, path := range e.assetManager.Assets(metadata.ResourceTypeShapeManifest) {
		if err := e.loadManifest(path); err != nil {
			errs = append(errs, err)
		}
	}
	e.clock.Stop()

	m := core.MetricsFrame()
	core.LogInfo("generated %d meshes (%d vertices, %d indices) from %d manifests in %.2fms, %.3fms per mesh",
		m.Meshes, m.Vertices, m.Indices, len(e.meshes), e.clock.ElapsedMS(), m.MSavg)

	if !e.config.Watch {
		return errors.Join(errs...)
	}

	core.LogInfo("watching '%s' for changes", e.config.ManifestDir)
	for {
		select {
		case change, ok := <-e.assetManager.Changes():
			if !ok {
				return nil
			}
			if change.Type != metadata.ResourceTypeShapeManifest {
				continue
			}
			if change.Removed {
				e.unloadManifest(change.Path)
				continue
			}
			if err := e.loadManifest(change.Path); err != nil {
				core.LogWarn("'%s' reloaded with errors, failed shapes keep their previous geometry", change.Path)
			}
		case <-e.quit:
			return nil
		}
	}
}

func (e *Engine) Shutdown() error {
	if e.currentStage == EngineStageShutdown {
		return nil
	}
	e.currentStage = EngineStageShuttingDown
	e.requestQuit()

	core.EventUnregister(core.EVENT_CODE_APPLICATION_QUIT, e)
	core.EventUnregister(core.EVENT_CODE_MANIFEST_CHANGED, e)

	if err := e.assetManager.Shutdown(); err != nil {
		return err
	}
	for path := range e.meshes {
		e.unloadManifest(path)
	}
	if err := e.systemManager.Shutdown(); err != nil {
		return err
	}
	e.currentStage = EngineStageShutdown
	return nil
}

// Mesh returns the mesh generated from the manifest at path.
func (e *Engine) Mesh(path string) (*metadata.Mesh, bool) {
	m, ok := e.meshes[path]
	return m, ok
}

func (e *Engine) SystemManager() *systems.SystemManager {
	return e.systemManager
}

func (e *Engine) loadManifest(path string) error {
	resource, err := e.assetManager.LoadAsset(path, e.config.Defaults)
	if err != nil {
		core.LogError(err.Error())
		return err
	}
	defer func() {
		if err := e.assetManager.UnloadAsset(resource); err != nil {
			core.LogWarn(err.Error())
		}
	}()

	mesh, ok := e.meshes[path]
	if !ok {
		mesh = &metadata.Mesh{UniqueID: core.IdentifierAquireNewID(path)}
		e.meshes[path] = mesh
	}

	err = e.systemManager.MeshLoaderSystem().LoadFromResource(&metadata.MeshLoadParams{
		ResourceName: path,
		OutMesh:      mesh,
		MeshResource: resource,
	})
	if exportErr := e.export(mesh); exportErr != nil {
		err = errors.Join(err, exportErr)
	}
	if err != nil {
		return err
	}
	core.LogInfo("loaded '%s': %d geometries (generation %d)", path, mesh.GeometryCount(), mesh.Generation)
	return nil
}

func (e *Engine) unloadManifest(path string) {
	mesh, ok := e.meshes[path]
	if !ok {
		return
	}
	e.systemManager.MeshLoaderSystem().Unload(mesh)
	if err := core.IdentifierReleaseID(mesh.UniqueID); err != nil {
		core.LogWarn(err.Error())
	}
	delete(e.meshes, path)
	core.LogInfo("unloaded '%s'", path)
}

func (e *Engine) export(mesh *metadata.Mesh) error {
	if e.exportFormat == exporters.FormatNone {
		return nil
	}
	var errs []error
	for _, g := range mesh.Geometries {
		if _, err := exporters.Export(e.config.OutputDir, e.exportFormat, g.Config); err != nil {
			core.LogError("failed to export '%s': %s", g.Name, err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (e *Engine) requestQuit() {
	e.quitOnce.Do(func() { close(e.quit) })
}

func (e *Engine) onEvent(code core.SystemEventCode, sender interface{}, listenerInst interface{}, context core.EventContext) bool {
	switch code {
	case core.EVENT_CODE_APPLICATION_QUIT:
		core.LogInfo("EVENT_CODE_APPLICATION_QUIT recieved, shutting down.")
		e.requestQuit()
		return true
	case core.EVENT_CODE_MANIFEST_CHANGED:
		core.LogDebug("manifest '%s' changed", context.Data.C[0])
	}
	return false
}
