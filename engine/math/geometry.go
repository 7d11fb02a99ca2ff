package math

// NewTriangle copies the three corners into a new triangle.
func NewTriangle(v0, v1, v2 Vec3) Triangle {
	return Triangle{V0: v0, V1: v1, V2: v2}
}

// FaceNormal returns normalize(cross(v1-v0, v2-v0)).
func FaceNormal(v0, v1, v2 Vec3) Vec3 {
	return v1.Sub(v0).Cross(v2.Sub(v0)).Normalized()
}

// Normal returns the flat face normal of the triangle.
func (t Triangle) Normal() Vec3 {
	return FaceNormal(t.V0, t.V1, t.V2)
}

/**
 * @brief Splits the triangle in four by the midpoints of its edges. The
 * midpoints are not normalized. The three corner triangles come first, the
 * center triangle last; all four keep the parent's winding.
 */
func (t Triangle) Subdivide() [4]Triangle {
	va := t.V0.Add(t.V1.Sub(t.V0).DivScalar(2))
	vb := t.V1.Add(t.V2.Sub(t.V1).DivScalar(2))
	vc := t.V2.Add(t.V0.Sub(t.V2).DivScalar(2))
	return [4]Triangle{
		{t.V0, va, vc},
		{va, t.V1, vb},
		{vc, vb, t.V2},
		{va, vb, vc},
	}
}

// ProjectToSphere returns a copy of t with every corner normalized and scaled by radius.
func (t Triangle) ProjectToSphere(radius float32) Triangle {
	return Triangle{
		t.V0.Normalized().MulScalar(radius),
		t.V1.Normalized().MulScalar(radius),
		t.V2.Normalized().MulScalar(radius),
	}
}

// GeometryExtents returns the axis-aligned bounds and the center of the given positions.
func GeometryExtents(positions []Vec3) (Extents3D, Vec3) {
	if len(positions) == 0 {
		return Extents3D{}, NewVec3Zero()
	}
	ext := Extents3D{Min: positions[0], Max: positions[0]}
	for _, p := range positions[1:] {
		ext.Min = ext.Min.Min(p)
		ext.Max = ext.Max.Max(p)
	}
	center := ext.Min.Add(ext.Max).MulScalar(0.5)
	return ext, center
}
