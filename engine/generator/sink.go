// Package generator builds flat-shaded meshes for canonical solids and writes
// them into caller-owned sinks.
//
// Generators are pure: they keep no state between calls, never read the sink
// back except for its vertex count, and validate every parameter before the
// first write so a rejected call leaves the sink untouched. Calls against
// distinct sinks may run concurrently.
package generator

import "github.com/spaghettifunk/meshgen/engine/math"

// Sink is the part shared by both mesh sink variants.
type Sink interface {
	// AppendPosition appends one vertex position.
	AppendPosition(x, y, z float32)
	// AppendIndices appends index values. Every value is smaller than VertexCount.
	AppendIndices(indices ...uint32)
	// VertexCount is the number of positions currently held.
	VertexCount() int
}

// WireframeSink receives positions and line-segment index pairs.
type WireframeSink interface {
	Sink
}

// SolidSink receives positions, a parallel list of normals and triangle
// index triples wound counter-clockwise as seen from outside.
type SolidSink interface {
	Sink
	// AppendNormal appends the normal of the vertex at the same position.
	AppendNormal(x, y, z float32)
}

// WireframeBuffer is an in-memory WireframeSink.
type WireframeBuffer struct {
	// Positions holds x, y, z triples.
	Positions []float32
	// Indices holds line segments as index pairs.
	Indices []uint32
}

func (b *WireframeBuffer) AppendPosition(x, y, z float32) {
	b.Positions = append(b.Positions, x, y, z)
}

func (b *WireframeBuffer) AppendIndices(indices ...uint32) {
	b.Indices = append(b.Indices, indices...)
}

func (b *WireframeBuffer) VertexCount() int {
	return len(b.Positions) / 3
}

// Position returns the i-th position.
func (b *WireframeBuffer) Position(i int) math.Vec3 {
	return vec3At(b.Positions, i)
}

// Reset empties the buffer, keeping its capacity.
func (b *WireframeBuffer) Reset() {
	b.Positions = b.Positions[:0]
	b.Indices = b.Indices[:0]
}

// SolidBuffer is an in-memory SolidSink.
type SolidBuffer struct {
	// Positions holds x, y, z triples.
	Positions []float32
	// Normals holds x, y, z triples, one per position.
	Normals []float32
	// Indices holds triangles as index triples.
	Indices []uint32
}

func (b *SolidBuffer) AppendPosition(x, y, z float32) {
	b.Positions = append(b.Positions, x, y, z)
}

func (b *SolidBuffer) AppendNormal(x, y, z float32) {
	b.Normals = append(b.Normals, x, y, z)
}

func (b *SolidBuffer) AppendIndices(indices ...uint32) {
	b.Indices = append(b.Indices, indices...)
}

func (b *SolidBuffer) VertexCount() int {
	return len(b.Positions) / 3
}

// Position returns the i-th position.
func (b *SolidBuffer) Position(i int) math.Vec3 {
	return vec3At(b.Positions, i)
}

// Normal returns the i-th normal.
func (b *SolidBuffer) Normal(i int) math.Vec3 {
	return vec3At(b.Normals, i)
}

// Reset empties the buffer, keeping its capacity.
func (b *SolidBuffer) Reset() {
	b.Positions = b.Positions[:0]
	b.Normals = b.Normals[:0]
	b.Indices = b.Indices[:0]
}

func vec3At(data []float32, i int) math.Vec3 {
	return math.NewVec3(data[i*3], data[i*3+1], data[i*3+2])
}

func appendVec3(dst Sink, v math.Vec3) {
	dst.AppendPosition(v.X, v.Y, v.Z)
}

// appendFlatTriangle emits three fresh vertices sharing normal n and their
// three sequential indices.
func appendFlatTriangle(dst SolidSink, v0, v1, v2, n math.Vec3) {
	offset := uint32(dst.VertexCount())
	for _, v := range [3]math.Vec3{v0, v1, v2} {
		dst.AppendPosition(v.X, v.Y, v.Z)
		dst.AppendNormal(n.X, n.Y, n.Z)
	}
	dst.AppendIndices(offset, offset+1, offset+2)
}
