package generator

import (
	"fmt"

	"github.com/spaghettifunk/meshgen/engine/core"
	"github.com/spaghettifunk/meshgen/engine/math"
)

const (
	// DefaultSegments is the rim resolution of cylinders and cones (15° steps).
	DefaultSegments = 24
	// DefaultSphereDepth is the number of subdivision passes applied to the octahedron.
	DefaultSphereDepth = 3
	// MaxSphereDepth caps subdivision at 8·4^8 = 524288 triangles.
	MaxSphereDepth = 8
	// MinSegments is the smallest rim that still encloses a volume.
	MinSegments = 3
)

func invalid(name string, value interface{}, reason string) error {
	return fmt.Errorf("%s %v %s: %w", name, value, reason, core.ErrInvalidParameter)
}

func checkPositive(name string, v float32) error {
	if !math.IsFinite(v) || v <= 0 {
		return invalid(name, v, "must be positive and finite")
	}
	return nil
}

func checkSize(size math.Vec3) error {
	if err := checkPositive("size.x", size.X); err != nil {
		return err
	}
	if err := checkPositive("size.y", size.Y); err != nil {
		return err
	}
	return checkPositive("size.z", size.Z)
}

func checkSegments(segments int) error {
	if segments < MinSegments {
		return invalid("segments", segments, fmt.Sprintf("must be at least %d", MinSegments))
	}
	return nil
}

func checkDepth(depth int) error {
	if depth < 0 {
		return invalid("depth", depth, "must not be negative")
	}
	if depth > MaxSphereDepth {
		return invalid("depth", depth, fmt.Sprintf("must be at most %d", MaxSphereDepth))
	}
	return nil
}

func checkRound(radius, height float32, segments int) error {
	if err := checkPositive("radius", radius); err != nil {
		return err
	}
	if err := checkPositive("height", height); err != nil {
		return err
	}
	return checkSegments(segments)
}
