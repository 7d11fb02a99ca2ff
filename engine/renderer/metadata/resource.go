package metadata

type ResourceType int

/** @brief Pre-defined resource types. */
const (
	/** @brief Unknown resource type. */
	ResourceTypeNone ResourceType = iota
	/** @brief Shape manifest, a list of shapes to generate. */
	ResourceTypeShapeManifest
	/** @brief Mesh resource type (exported geometry). */
	ResourceTypeMesh
)

/** @brief A magic number indicating the file as a meshgen binary file. */
const ResourceMagic uint32 = 0xdaaaadd1

/** @brief The binary mesh format version. */
const ResourceVersion uint8 = 1

/**
 * @brief The header data for binary resource types.
 */
type ResourceHeader struct {
	/** @brief A magic number indicating the file as a meshgen binary file. */
	MagicNumber uint32
	/** @brief The resource type. Maps to the enum resource_type. */
	ResourceType uint8
	/** @brief The format version this resource uses. */
	Version uint8
	/** @brief Reserved for future header data.. */
	Reserved uint16
}

/**
 * @brief A generic structure for a resource. All resource loaders
 * load data into these.
 */
type Resource struct {
	/** @brief The name of the resource. */
	Name string
	/** @brief The full file path of the resource. */
	FullPath string
	/** @brief The resource type. */
	Type ResourceType
	/** @brief The size of the resource data, in items. */
	DataSize uint64
	/** @brief The resource data. */
	Data interface{}
}
