package fcp

import (
	"fmt"
	"sync"

	"crosscut/timeline"
)

// ResourceRegistry indexes the resources of an FCPXML document and binds
// each referenced resource to a timeline clip. Clips are created on first
// use by a ClipFactory and stored in a timeline.ClipRegistry; the registry
// keeps the ref and name lookups the authoring side needs.
type ResourceRegistry struct {
	mu sync.RWMutex

	resources map[string]Resource
	nextID    int
	usedIDs   map[string]bool

	factory ClipFactory
	clips   *timeline.ClipRegistry
	byRef   map[string]timeline.ClipID
	byName  map[string]timeline.ClipID

	ml *FCPXML
}

// Resource represents any FCPXML resource
type Resource interface {
	GetID() string
	GetName() string
	GetType() ResourceType
}

// ResourceType defines the different types of FCPXML resources
type ResourceType int

const (
	AssetResource ResourceType = iota
	FormatResource
	EffectResource
	MediaResource
)

func (t ResourceType) String() string {
	switch t {
	case AssetResource:
		return "asset"
	case FormatResource:
		return "format"
	case EffectResource:
		return "effect"
	case MediaResource:
		return "media"
	}
	return fmt.Sprintf("ResourceType(%d)", int(t))
}

// ClipFactory creates the clip that renders a resource.
type ClipFactory func(res Resource) (timeline.Clip, error)

// NewResourceRegistry indexes the resources already present in ml.
// Clips are registered into clips, which must outlive every timeline
// built from this registry.
func NewResourceRegistry(ml *FCPXML, clips *timeline.ClipRegistry, factory ClipFactory) *ResourceRegistry {
	r := &ResourceRegistry{
		resources: make(map[string]Resource),
		usedIDs:   make(map[string]bool),
		factory:   factory,
		clips:     clips,
		byRef:     make(map[string]timeline.ClipID),
		byName:    make(map[string]timeline.ClipID),
		ml:        ml,
	}

	for i := range ml.Resources.Assets {
		r.add(&AssetWrapper{&ml.Resources.Assets[i]})
	}
	for i := range ml.Resources.Formats {
		r.add(&FormatWrapper{&ml.Resources.Formats[i]})
	}
	for i := range ml.Resources.Effects {
		r.add(&EffectWrapper{&ml.Resources.Effects[i]})
	}
	for i := range ml.Resources.Media {
		r.add(&MediaWrapper{&ml.Resources.Media[i]})
	}
	r.nextID = len(r.resources) + 1
	return r
}

func (r *ResourceRegistry) add(res Resource) {
	r.resources[res.GetID()] = res
	r.usedIDs[res.GetID()] = true
}

// ReserveIDs reserves multiple IDs in sequence to avoid collisions
func (r *ResourceRegistry) ReserveIDs(count int) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := make([]string, count)
	for i := 0; i < count; i++ {
		for {
			id := fmt.Sprintf("r%d", r.nextID)
			r.nextID++
			if !r.usedIDs[id] {
				r.usedIDs[id] = true
				ids[i] = id
				break
			}
		}
	}
	return ids
}

// RegisterAsset appends an asset to the document and indexes it.
func (r *ResourceRegistry) RegisterAsset(asset Asset) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.ml.Resources.Assets = append(r.ml.Resources.Assets, asset)
	r.reindexAssets()
}

// RegisterEffect appends an effect to the document and indexes it.
func (r *ResourceRegistry) RegisterEffect(effect Effect) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.ml.Resources.Effects = append(r.ml.Resources.Effects, effect)
	r.reindexEffects()
}

// Appending may move the backing arrays, so wrappers are rebuilt.
func (r *ResourceRegistry) reindexAssets() {
	for i := range r.ml.Resources.Assets {
		r.add(&AssetWrapper{&r.ml.Resources.Assets[i]})
	}
}

func (r *ResourceRegistry) reindexEffects() {
	for i := range r.ml.Resources.Effects {
		r.add(&EffectWrapper{&r.ml.Resources.Effects[i]})
	}
}

// ClipFor returns the clip bound to the resource ref, creating it with the
// factory on first use.
func (r *ResourceRegistry) ClipFor(ref string) (timeline.ClipID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if id, ok := r.byRef[ref]; ok {
		return id, nil
	}
	res, ok := r.resources[ref]
	if !ok {
		return 0, fmt.Errorf("unknown resource %q", ref)
	}
	if r.factory == nil {
		return 0, fmt.Errorf("no clip factory for resource %q", ref)
	}
	clip, err := r.factory(res)
	if err != nil {
		return 0, fmt.Errorf("failed to create clip for %s %q: %w", res.GetType(), ref, err)
	}

	id := r.clips.Register(clip)
	r.byRef[ref] = id
	if name := res.GetName(); name != "" {
		if _, taken := r.byName[name]; !taken {
			r.byName[name] = id
		}
	}
	return id, nil
}

// Lookup returns the clip bound to the resource with the given name. When
// several resources share a name the first one bound wins.
func (r *ResourceRegistry) Lookup(name string) (timeline.ClipID, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byName[name]
	return id, ok
}

// LookupRef returns the clip already bound to a resource ID.
func (r *ResourceRegistry) LookupRef(ref string) (timeline.ClipID, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byRef[ref]
	return id, ok
}

// Clips returns the clip registry the bindings point into.
func (r *ResourceRegistry) Clips() *timeline.ClipRegistry {
	return r.clips
}

// GetResourceCount returns the total number of resources
func (r *ResourceRegistry) GetResourceCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.resources)
}

// Wrapper types to implement Resource interface

type AssetWrapper struct {
	*Asset
}

func (a *AssetWrapper) GetID() string         { return a.ID }
func (a *AssetWrapper) GetName() string       { return a.Name }
func (a *AssetWrapper) GetType() ResourceType { return AssetResource }

type FormatWrapper struct {
	*Format
}

func (f *FormatWrapper) GetID() string         { return f.ID }
func (f *FormatWrapper) GetName() string       { return f.Name }
func (f *FormatWrapper) GetType() ResourceType { return FormatResource }

type EffectWrapper struct {
	*Effect
}

func (e *EffectWrapper) GetID() string         { return e.ID }
func (e *EffectWrapper) GetName() string       { return e.Name }
func (e *EffectWrapper) GetType() ResourceType { return EffectResource }

type MediaWrapper struct {
	*Media
}

func (m *MediaWrapper) GetID() string         { return m.ID }
func (m *MediaWrapper) GetName() string       { return m.Name }
func (m *MediaWrapper) GetType() ResourceType { return MediaResource }
