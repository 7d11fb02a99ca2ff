package assets

import "github.com/spaghettifunk/meshgen/engine/renderer/metadata"

// Loader reads one resource type from disk. The shape of Resource.Data is up
// to the loader: []metadata.ShapeConfig for manifests, *metadata.GeometryConfig for meshes.
type Loader interface {
	Load(path string, assetType metadata.ResourceType, params interface{}) (*metadata.Resource, error)
	// Unload drops the data held by the resource.
	Unload(*metadata.Resource) error
}
