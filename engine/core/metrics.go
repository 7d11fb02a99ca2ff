package core

import (
	"sync"

	"github.com/spaghettifunk/meshgen/engine/containers"
)

const AVG_COUNT int = 30

// MetricsSnapshot is a copy of the generation counters at one point in time.
type MetricsSnapshot struct {
	Meshes   uint64
	Vertices uint64
	Indices  uint64
	// Average generation time over the last AVG_COUNT meshes.
	MSavg float64
}

type metricsState struct {
	mutex    sync.Mutex
	msTimes  *containers.RingQueue[float64]
	meshes   uint64
	vertices uint64
	indices  uint64
	msAvg    float64
}

var onceMetrics sync.Once
var metrics *metricsState = nil

func MetricsInitialize() error {
	onceMetrics.Do(func() {
		metrics = &metricsState{
			msTimes: containers.NewRingQueue[float64](AVG_COUNT),
		}
	})
	return nil
}

// MetricsRecordGeneration accounts for one generated mesh.
func MetricsRecordGeneration(vertexCount, indexCount int, elapsedMS float64) {
	_ = MetricsInitialize()

	metrics.mutex.Lock()
	defer metrics.mutex.Unlock()

	metrics.meshes++
	metrics.vertices += uint64(vertexCount)
	metrics.indices += uint64(indexCount)

	metrics.msTimes.Push(elapsedMS)
	total := 0.0
	metrics.msTimes.Each(func(ms float64) { total += ms })
	metrics.msAvg = total / float64(metrics.msTimes.Len())
}

func MetricsFrame() MetricsSnapshot {
	_ = MetricsInitialize()

	metrics.mutex.Lock()
	defer metrics.mutex.Unlock()
	return MetricsSnapshot{
		Meshes:   metrics.meshes,
		Vertices: metrics.vertices,
		Indices:  metrics.indices,
		MSavg:    metrics.msAvg,
	}
}

// MetricsReset clears every counter and the timing window.
func MetricsReset() {
	_ = MetricsInitialize()

	metrics.mutex.Lock()
	defer metrics.mutex.Unlock()
	metrics.msTimes = containers.NewRingQueue[float64](AVG_COUNT)
	metrics.meshes = 0
	metrics.vertices = 0
	metrics.indices = 0
	metrics.msAvg = 0
}
