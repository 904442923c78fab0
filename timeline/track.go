package timeline

// Track is an append-only, insertion-ordered layer of cuts. Overlapping
// cuts are allowed; how they blend is up to the renderer.
//
// A track belongs to at most one Timeline. Adding a cut to an owned track
// invalidates that timeline's index until the next build.
type Track struct {
	cuts  []Cut
	owner *Timeline
}

// NewTrack creates a track holding the given cuts in order.
func NewTrack(cuts ...Cut) *Track {
	tr := &Track{cuts: make([]Cut, 0, len(cuts))}
	tr.cuts = append(tr.cuts, cuts...)
	return tr
}

// AddCut appends a cut. Validation happens when the index is built.
func (tr *Track) AddCut(c Cut) {
	tr.cuts = append(tr.cuts, c)
	if tr.owner != nil {
		tr.owner.touch()
	}
}

// Cut returns the i-th cut in insertion order.
func (tr *Track) Cut(i int) Cut {
	return tr.cuts[i]
}

// Cuts returns a copy of the track's cuts.
func (tr *Track) Cuts() []Cut {
	out := make([]Cut, len(tr.cuts))
	copy(out, tr.cuts)
	return out
}

// Len returns the number of cuts on the track.
func (tr *Track) Len() int {
	return len(tr.cuts)
}
