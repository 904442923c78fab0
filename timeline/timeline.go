package timeline

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// Option configures a Timeline.
type Option func(*Timeline)

// WithAutoBuild makes queries rebuild a stale index lazily instead of
// failing with ErrIndexNotReady.
func WithAutoBuild() Option {
	return func(tl *Timeline) {
		tl.autoBuild = true
	}
}

// Timeline owns a set of tracks and the region index derived from them.
//
// The index is replaced as a whole: Build constructs a new Index and swaps
// it in, so a query observes either the previous complete index or the new
// one. Queries fail closed with ErrIndexNotReady when the index is
// missing, failed to build, or predates the latest track mutation.
type Timeline struct {
	tracks     []*Track
	generation uint64
	index      atomic.Pointer[Index]
	autoBuild  bool
}

// NewTimeline creates an empty timeline.
func NewTimeline(opts ...Option) *Timeline {
	tl := &Timeline{tracks: make([]*Track, 0)}
	for _, opt := range opts {
		opt(tl)
	}
	return tl
}

// NewTimelineFrom creates a timeline holding the given tracks in order.
func NewTimelineFrom(tracks ...*Track) *Timeline {
	tl := NewTimeline()
	for _, tr := range tracks {
		tl.AddTrack(tr)
	}
	return tl
}

func (tl *Timeline) touch() {
	tl.generation++
}

// AddTrack takes ownership of tr and returns its track index. A track
// already owned by another timeline is copied instead.
func (tl *Timeline) AddTrack(tr *Track) int {
	if tr == nil {
		tr = NewTrack()
	}
	if tr.owner != nil && tr.owner != tl {
		tr = NewTrack(tr.cuts...)
	}
	tr.owner = tl
	tl.tracks = append(tl.tracks, tr)
	tl.touch()
	return len(tl.tracks) - 1
}

// NewTrack appends an empty track and returns it with its index.
func (tl *Timeline) NewTrack() (*Track, int) {
	tr := NewTrack()
	i := tl.AddTrack(tr)
	return tr, i
}

// Track returns the track at index i, or nil when out of range.
func (tl *Timeline) Track(i int) *Track {
	if i < 0 || i >= len(tl.tracks) {
		return nil
	}
	return tl.tracks[i]
}

// Tracks returns the tracks in index order.
func (tl *Timeline) Tracks() []*Track {
	out := make([]*Track, len(tl.tracks))
	copy(out, tl.tracks)
	return out
}

// Len returns the number of tracks.
func (tl *Timeline) Len() int {
	return len(tl.tracks)
}

// Build rebuilds the region index from the current tracks and swaps it
// in. On failure the index is cleared and queries report ErrIndexNotReady.
func (tl *Timeline) Build() error {
	gen := tl.generation
	ix, err := BuildIndex(tl.tracks)
	if err != nil {
		tl.index.Store(nil)
		Logger().Warn("timeline: index build failed", "tracks", len(tl.tracks), "err", err)
		return err
	}
	ix.generation = gen
	tl.index.Store(ix)

	if l := Logger(); l.Enabled(context.Background(), slog.LevelDebug) {
		start, end := ix.Span()
		l.Debug("timeline: index built",
			"tracks", len(tl.tracks),
			"cuts", ix.Cuts(),
			"regions", ix.Len(),
			"start", float64(start),
			"end", float64(end),
			"same_track_overlaps", ix.Overlaps())
	}
	return nil
}

// Ready reports whether the current index reflects the tracks.
func (tl *Timeline) Ready() bool {
	ix := tl.index.Load()
	return ix != nil && ix.generation == tl.generation
}

// Index returns the current index snapshot. It builds one first when the
// timeline was created WithAutoBuild.
func (tl *Timeline) Index() (*Index, error) {
	if tl.Ready() {
		return tl.index.Load(), nil
	}
	if !tl.autoBuild {
		return nil, ErrIndexNotReady
	}
	if err := tl.Build(); err != nil {
		return nil, err
	}
	return tl.index.Load(), nil
}

// CutsAt returns the cuts active at t. The only error is an index that is
// not ready (or, WithAutoBuild, a failed lazy build); any time value,
// including ones outside the indexed span, yields a result.
func (tl *Timeline) CutsAt(t Time) ([]Active, error) {
	ix, err := tl.Index()
	if err != nil {
		return nil, err
	}
	return ix.CutsAt(t), nil
}
