package generator

import "github.com/spaghettifunk/meshgen/engine/math"

/*
	^
	| y
	|
	|     x
	------->
	\
	 \
	  \ z
	   V
	4------5
	|\     |\
	| 7------6
	| |    | |
	0-|----1 |
	 \|     \|
	  3------2
*/

// cuboidCorners returns the eight corners of a cuboid centered on the origin.
func cuboidCorners(size math.Vec3) [8]math.Vec3 {
	p := size.DivScalar(2)
	p6 := math.NewVec3(p.X, p.Y, p.Z)
	p7 := math.NewVec3(-p.X, p.Y, p.Z)
	p4 := math.NewVec3(-p.X, p.Y, -p.Z)
	p5 := math.NewVec3(p.X, p.Y, -p.Z)
	return [8]math.Vec3{
		p6.Negate(),
		p7.Negate(),
		p4.Negate(),
		p5.Negate(),
		p4,
		p5,
		p6,
		p7,
	}
}

// Outline of each face, as corner index pairs, in the order +x, +y, +z, -x, -y, -z.
// Edges shared by two faces appear in both tables.
var cuboidFaceEdges = [6][8]uint32{
	{1, 2, 2, 6, 6, 5, 5, 1},
	{4, 5, 5, 6, 6, 7, 7, 4},
	{2, 3, 3, 7, 7, 6, 6, 2},
	{0, 3, 3, 7, 7, 4, 4, 0},
	{0, 1, 1, 2, 2, 3, 3, 0},
	{0, 1, 1, 5, 5, 4, 4, 0},
}

type cuboidFace struct {
	normal  math.Vec3
	corners [4]int
}

// Corners of each face, counter-clockwise seen from outside.
var cuboidFaces = [6]cuboidFace{
	{math.NewVec3Right(), [4]int{2, 1, 5, 6}},
	{math.NewVec3Up(), [4]int{4, 7, 6, 5}},
	{math.NewVec3Back(), [4]int{3, 2, 6, 7}},
	{math.NewVec3Left(), [4]int{0, 3, 7, 4}},
	{math.NewVec3Down(), [4]int{0, 1, 2, 3}},
	{math.NewVec3Forward(), [4]int{1, 0, 4, 5}},
}

/**
 * @brief Generates the outline of a cuboid centered on the origin: 8 corners
 * and 24 line segments, four per face. Edges shared by adjacent faces are
 * emitted once per face.
 *
 * @param dst The wireframe sink receiving the mesh.
 * @param size The size of the cuboid on x, y and z. Every component must be positive.
 * @return ErrInvalidParameter if size is not positive; dst is left untouched.
 */
func CuboidWireframe(dst WireframeSink, size math.Vec3) error {
	if err := checkSize(size); err != nil {
		return err
	}

	offset := uint32(dst.VertexCount())
	for _, c := range cuboidCorners(size) {
		appendVec3(dst, c)
	}
	var edges [8]uint32
	for _, face := range cuboidFaceEdges {
		for i, idx := range face {
			edges[i] = offset + idx
		}
		dst.AppendIndices(edges[:]...)
	}
	return nil
}

/**
 * @brief Generates a solid cuboid centered on the origin. Every face gets 4
 * fresh vertices carrying its axis normal and two triangles.
 *
 * @param dst The solid sink receiving the mesh.
 * @param size The size of the cuboid on x, y and z. Every component must be positive.
 * @return ErrInvalidParameter if size is not positive; dst is left untouched.
 */
func Cuboid(dst SolidSink, size math.Vec3) error {
	if err := checkSize(size); err != nil {
		return err
	}

	corners := cuboidCorners(size)
	offset := uint32(dst.VertexCount())
	for _, face := range cuboidFaces {
		n := face.normal
		for _, c := range face.corners {
			appendVec3(dst, corners[c])
			dst.AppendNormal(n.X, n.Y, n.Z)
		}
		dst.AppendIndices(offset, offset+1, offset+2, offset, offset+2, offset+3)
		offset += 4
	}
	return nil
}
