package timeline

// Frame is an opaque renderable handle produced by a Clip. The timeline
// never inspects it.
type Frame any

// Clip is a visual sequence: a deterministic, side-effect free mapping
// from local time to a frame. A Clip does not restrict its input range;
// callers only sample inside a Cut's declared sub-range.
type Clip interface {
	Sample(t Time) Frame
}

// ClipFunc adapts an ordinary function to the Clip interface.
type ClipFunc func(t Time) Frame

// Sample calls f(t).
func (f ClipFunc) Sample(t Time) Frame { return f(t) }

// ClipID is a stable handle into a ClipRegistry.
type ClipID int

// ClipRegistry owns Clips for the lifetime of a session. Cuts refer to
// clips by ClipID, so track storage never holds a clip directly.
type ClipRegistry struct {
	clips []Clip
}

// NewClipRegistry creates an empty registry.
func NewClipRegistry() *ClipRegistry {
	return &ClipRegistry{clips: make([]Clip, 0)}
}

// Register stores a clip and returns its handle. Handles are never reused.
func (r *ClipRegistry) Register(c Clip) ClipID {
	r.clips = append(r.clips, c)
	return ClipID(len(r.clips) - 1)
}

// Clip returns the clip registered under id.
func (r *ClipRegistry) Clip(id ClipID) (Clip, bool) {
	if id < 0 || int(id) >= len(r.clips) {
		return nil, false
	}
	return r.clips[id], true
}

// Len returns the number of registered clips.
func (r *ClipRegistry) Len() int {
	return len(r.clips)
}
