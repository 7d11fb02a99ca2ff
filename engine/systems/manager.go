package systems

import (
	"github.com/spaghettifunk/meshgen/engine/renderer/metadata"
)

type SystemManager struct {
	jobSystem        *JobSystem
	geometrySystem   *GeometrySystem
	meshLoaderSystem *MeshLoaderSystem
}

func NewSystemManager(config *metadata.GeometrySystemConfig) (*SystemManager, error) {
	js, err := NewJobSystem(config.Workers, config.QueueSize)
	if err != nil {
		return nil, err
	}
	gs, err := NewGeometrySystem(config, js)
	if err != nil {
		_ = js.Shutdown()
		return nil, err
	}
	mls, err := NewMeshLoaderSystem(gs)
	if err != nil {
		_ = js.Shutdown()
		return nil, err
	}
	return &SystemManager{
		jobSystem:        js,
		geometrySystem:   gs,
		meshLoaderSystem: mls,
	}, nil
}

func (sm *SystemManager) GeometrySystem() *GeometrySystem {
	return sm.geometrySystem
}

func (sm *SystemManager) MeshLoaderSystem() *MeshLoaderSystem {
	return sm.meshLoaderSystem
}

func (sm *SystemManager) JobSystem() *JobSystem {
	return sm.jobSystem
}

func (sm *SystemManager) Shutdown() error {
	if err := sm.meshLoaderSystem.Shutdown(); err != nil {
		return err
	}
	if err := sm.geometrySystem.Shutdown(); err != nil {
		return err
	}
	if err := sm.jobSystem.Shutdown(); err != nil {
		return err
	}
	return nil
}
