package generator

import "github.com/spaghettifunk/meshgen/engine/math"

// Unit octahedron: 4 faces around the bottom pole, then 4 around the top pole.
var octahedron = func() [8]math.Triangle {
	v0 := math.NewVec3(0, -1, 0)
	v1 := math.NewVec3(1, 0, 0)
	v2 := math.NewVec3(0, 0, 1)
	v3 := math.NewVec3(-1, 0, 0)
	v4 := math.NewVec3(0, 0, -1)
	v5 := math.NewVec3(0, 1, 0)
	return [8]math.Triangle{
		math.NewTriangle(v0, v1, v2),
		math.NewTriangle(v0, v2, v3),
		math.NewTriangle(v0, v3, v4),
		math.NewTriangle(v0, v4, v1),
		math.NewTriangle(v1, v5, v2),
		math.NewTriangle(v2, v5, v3),
		math.NewTriangle(v3, v5, v4),
		math.NewTriangle(v4, v5, v1),
	}
}()

// SphereTriangleCount returns 8·4^depth.
func SphereTriangleCount(depth int) int {
	return len(octahedron) << (2 * depth)
}

// subdivideOctahedron splits the octahedron depth times. Each pass reads from
// one slice and writes into the other, then the two are swapped.
func subdivideOctahedron(depth int) []math.Triangle {
	total := SphereTriangleCount(depth)
	read := make([]math.Triangle, 0, total)
	write := make([]math.Triangle, 0, total)
	read = append(read, octahedron[:]...)
	for pass := 0; pass < depth; pass++ {
		write = write[:0]
		for _, t := range read {
			children := t.Subdivide()
			write = append(write, children[:]...)
		}
		read, write = write, read
	}
	return read
}

/**
 * @brief Generates a solid sphere centered on the origin by subdividing an
 * octahedron and projecting every vertex onto the sphere. Triangles share no
 * vertices; each carries its own outward flat normal.
 *
 * @param dst The solid sink receiving the mesh.
 * @param radius The radius of the sphere. Must be positive.
 * @param depth The number of subdivision passes, DefaultSphereDepth usually. Must not be negative.
 * @return ErrInvalidParameter on bad input; dst is left untouched.
 */
func Sphere(dst SolidSink, radius float32, depth int) error {
	if err := checkPositive("radius", radius); err != nil {
		return err
	}
	if err := checkDepth(depth); err != nil {
		return err
	}

	for _, t := range subdivideOctahedron(depth) {
		p := t.ProjectToSphere(radius)
		appendFlatTriangle(dst, p.V0, p.V1, p.V2, p.Normal())
	}
	return nil
}
