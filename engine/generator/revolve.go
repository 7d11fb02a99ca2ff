package generator

import "github.com/spaghettifunk/meshgen/engine/math"

// rim returns segments points on the circle of the given radius at height y,
// starting on +x and turning towards -z.
func rim(radius, y float32, segments int) []math.Vec3 {
	points := make([]math.Vec3, segments)
	step := math.K_PI_2 / float32(segments)
	for i := range points {
		angle := float32(i) * step
		points[i] = math.NewVec3(
			radius*math.Cos(angle),
			y,
			-radius*math.Sin(angle))
	}
	return points
}

/**
 * @brief Generates a solid cylinder centered on the origin, axis along y.
 * Every segment emits a top cap, a bottom cap and two side triangles, 12
 * vertices in all, with no sharing between triangles.
 *
 * @param dst The solid sink receiving the mesh.
 * @param radius The radius of the base and top. Must be positive.
 * @param height The distance from the base to the top. Must be positive.
 * @param segments The number of rim points, DefaultSegments usually. At least MinSegments.
 * @return ErrInvalidParameter on bad input; dst is left untouched.
 */
func Cylinder(dst SolidSink, radius, height float32, segments int) error {
	if err := checkRound(radius, height, segments); err != nil {
		return err
	}

	halfHeight := height / 2
	top := math.NewVec3(0, halfHeight, 0)
	bottom := math.NewVec3(0, -halfHeight, 0)
	topNormal := math.NewVec3Up()
	bottomNormal := math.NewVec3Down()

	rims := rim(radius, halfHeight, segments)
	for i := range rims {
		t0 := rims[i]
		t1 := rims[math.Wrap(i+1, segments)]
		b0 := math.NewVec3(t0.X, -t0.Y, t0.Z)
		b1 := math.NewVec3(t1.X, -t1.Y, t1.Z)
		// Both side triangles lie in the same plane, facing away from the axis.
		side := math.FaceNormal(t1, t0, b0)

		appendFlatTriangle(dst, t0, t1, top, topNormal)
		appendFlatTriangle(dst, b0, bottom, b1, bottomNormal)
		appendFlatTriangle(dst, t1, t0, b0, side)
		appendFlatTriangle(dst, t1, b0, b1, side)
	}
	return nil
}

/**
 * @brief Generates a solid cone centered on the origin with its apex on +y.
 * Every segment emits one base triangle and one side triangle.
 *
 * @param dst The solid sink receiving the mesh.
 * @param radius The radius of the base. Must be positive.
 * @param height The distance from the base to the apex. Must be positive.
 * @param segments The number of rim points, DefaultSegments usually. At least MinSegments.
 * @return ErrInvalidParameter on bad input; dst is left untouched.
 */
func Cone(dst SolidSink, radius, height float32, segments int) error {
	if err := checkRound(radius, height, segments); err != nil {
		return err
	}

	halfHeight := height / 2
	apex := math.NewVec3(0, halfHeight, 0)
	bottom := math.NewVec3(0, -halfHeight, 0)
	bottomNormal := math.NewVec3Down()

	rims := rim(radius, -halfHeight, segments)
	for i := range rims {
		b0 := rims[i]
		b1 := rims[math.Wrap(i+1, segments)]
		side := math.FaceNormal(b0, b1, apex)

		appendFlatTriangle(dst, b0, bottom, b1, bottomNormal)
		appendFlatTriangle(dst, apex, b0, b1, side)
	}
	return nil
}
