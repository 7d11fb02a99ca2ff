package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/spaghettifunk/meshgen/engine/assets/loaders"
	"github.com/spaghettifunk/meshgen/engine/core"
	"github.com/spaghettifunk/meshgen/engine/renderer/metadata"
)

type AssetInfo struct {
	Path       string
	Type       metadata.ResourceType
	LastLoaded time.Time
}

// AssetChange reports an indexed file that was written, created or removed.
type AssetChange struct {
	Path    string
	Type    metadata.ResourceType
	Removed bool
}

type AssetManager struct {
	assets  map[string]AssetInfo
	loaders map[metadata.ResourceType]Loader

	mutex sync.RWMutex

	done     chan struct{}
	fsnotify *fsnotify.Watcher
	isClosed bool
	started  bool
	changes  chan AssetChange
	wg       sync.WaitGroup
}

func NewAssetManager() (*AssetManager, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &AssetManager{
		assets:   make(map[string]AssetInfo),
		loaders:  make(map[metadata.ResourceType]Loader),
		fsnotify: fsWatch,
		changes:  make(chan AssetChange, 16),
		done:     make(chan struct{}),
	}, nil
}

/**
 * @brief Indexes every manifest below manifestDir and starts watching it.
 *
 * @param manifestDir The directory holding the shape manifests.
 * @param defaults The resolution given to shapes that leave it out.
 */
func (am *AssetManager) Initialize(manifestDir string, defaults loaders.ManifestDefaults) error {
	// Register loaders
	am.registerLoader(metadata.ResourceTypeShapeManifest, &loaders.ManifestLoader{Defaults: defaults})
	am.registerLoader(metadata.ResourceTypeMesh, &loaders.BinaryLoader{})

	if err := am.addRecursive(manifestDir); err != nil {
		return err
	}

	am.mutex.Lock()
	am.started = true
	am.mutex.Unlock()
	am.wg.Add(1)
	go am.start()

	return nil
}

// Shutdown stops the watcher and closes the Changes channel.
func (am *AssetManager) Shutdown() error {
	am.mutex.Lock()
	if am.isClosed {
		am.mutex.Unlock()
		return nil
	}
	am.isClosed = true
	started := am.started
	am.mutex.Unlock()

	close(am.done)
	if !started {
		close(am.changes)
		return am.fsnotify.Close()
	}
	am.wg.Wait()
	return nil
}

// Changes delivers manifest changes until Shutdown.
func (am *AssetManager) Changes() <-chan AssetChange {
	return am.changes
}

// AddRecursive starts watching the named directory and all sub-directories.
func (am *AssetManager) addRecursive(name string) error {
	am.mutex.RLock()
	closed := am.isClosed
	am.mutex.RUnlock()
	if closed {
		return fmt.Errorf("asset manager: %w", core.ErrSystemClosed)
	}
	return am.watchRecursive(name)
}

// Register loaders for each asset type
func (am *AssetManager) registerLoader(assetType metadata.ResourceType, loader Loader) {
	am.mutex.Lock()
	defer am.mutex.Unlock()
	am.loaders[assetType] = loader
}

// Assets returns the indexed paths of the given type, sorted.
func (am *AssetManager) Assets(resourceType metadata.ResourceType) []string {
	am.mutex.RLock()
	defer am.mutex.RUnlock()

	paths := make([]string, 0, len(am.assets))
	for path, info := range am.assets {
		if info.Type == resourceType {
			paths = append(paths, path)
		}
	}
	sort.Strings(paths)
	return paths
}

// Load an asset using the appropriate loader
func (am *AssetManager) LoadAsset(path string, params interface{}) (*metadata.Resource, error) {
	path = filepath.Clean(path)

	am.mutex.Lock()
	asset, exists := am.assets[path]
	if !exists {
		am.mutex.Unlock()
		return nil, fmt.Errorf("asset not found: %s", path)
	}
	// Load or reload asset from disk if necessary
	asset.LastLoaded = time.Now()
	am.assets[path] = asset // Update the loaded time
	loader, loaderExists := am.loaders[asset.Type]
	am.mutex.Unlock()

	if !loaderExists {
		return nil, fmt.Errorf("no loader registered for asset type: %d", asset.Type)
	}

	return loader.Load(path, asset.Type, params)
}

func (am *AssetManager) UnloadAsset(asset *metadata.Resource) error {
	am.mutex.RLock()
	loader, ok := am.loaders[asset.Type]
	am.mutex.RUnlock()
	if !ok {
		return fmt.Errorf("no loader registered for asset type: %d", asset.Type)
	}
	return loader.Unload(asset)
}

func (am *AssetManager) start() {
	defer am.wg.Done()
	for {
		select {

		case e, ok := <-am.fsnotify.Events:
			if !ok {
				return
			}
			am.handleEvent(e)

		case e, ok := <-am.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError(e.Error())

		case <-am.done:
			am.fsnotify.Close()
			close(am.changes)
			return
		}
	}
}

func (am *AssetManager) handleEvent(e fsnotify.Event) {
	path := filepath.Clean(e.Name)

	s, err := os.Stat(path)
	if err == nil && s != nil && s.IsDir() {
		if e.Op&fsnotify.Create != 0 {
			if err := am.watchRecursive(path); err != nil {
				core.LogWarn("failed to watch '%s': %s", path, err)
			}
		}
		return
	}

	var change AssetChange
	switch {
	// Handle create or modify events
	case e.Op&(fsnotify.Create|fsnotify.Write) != 0:
		assetType := am.handleFileEvent(path)
		if assetType == metadata.ResourceTypeNone {
			return
		}
		change = AssetChange{Path: path, Type: assetType}
	// Editors often save by renaming over the old file, a rename is treated as a removal.
	case e.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
		assetType, known := am.removeAsset(path)
		// Can't stat a deleted directory, so just try to remove it from the watch list.
		_ = am.fsnotify.Remove(path)
		if !known {
			return
		}
		change = AssetChange{Path: path, Type: assetType, Removed: true}
	default:
		return
	}

	if change.Type == metadata.ResourceTypeShapeManifest {
		ctx := core.EventContext{}
		ctx.Data.C[0] = change.Path
		core.EventFire(core.EVENT_CODE_MANIFEST_CHANGED, am, ctx)
	}

	select {
	case am.changes <- change:
	case <-am.done:
	}
}

// watchRecursive adds all directories under the given one to the watch list.
// A file created before its directory watch is added is still indexed by the walk.
func (am *AssetManager) watchRecursive(path string) error {
	return filepath.Walk(path, func(walkPath string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() {
			return am.fsnotify.Add(walkPath)
		}
		am.handleFileEvent(filepath.Clean(walkPath))
		return nil
	})
}

// Handle the creation or modification of a file
func (am *AssetManager) handleFileEvent(path string) metadata.ResourceType {
	assetType := determineAssetType(path)
	if assetType == metadata.ResourceTypeNone {
		return assetType
	}

	am.mutex.Lock()
	defer am.mutex.Unlock()
	am.assets[path] = AssetInfo{
		Path: path,
		Type: assetType,
	}
	return assetType
}

// Remove the asset from the index if it was deleted
func (am *AssetManager) removeAsset(path string) (metadata.ResourceType, bool) {
	am.mutex.Lock()
	defer am.mutex.Unlock()

	info, ok := am.assets[path]
	delete(am.assets, path)
	return info.Type, ok
}

func determineAssetType(path string) metadata.ResourceType {
	switch filepath.Ext(path) {
	case ".toml", ".yaml", ".yml":
		return metadata.ResourceTypeShapeManifest
	case ".bin":
		return metadata.ResourceTypeMesh
	default:
		return metadata.ResourceTypeNone
	}
}
