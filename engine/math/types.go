package math

// Vec3 represents a 3D vector
type Vec3 struct {
	X, Y, Z float32
}

/**
 * @brief Represents the extents of a 3d object.
 */
type Extents3D struct {
	/** @brief The minimum extents of the object. */
	Min Vec3
	/** @brief The maximum extents of the object. */
	Max Vec3
}

/**
 * @brief A triangle made of three corners held by value. Winding order is
 * v0 -> v1 -> v2, counter-clockwise when seen from the front.
 */
type Triangle struct {
	V0 Vec3
	V1 Vec3
	V2 Vec3
}
