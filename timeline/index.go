package timeline

import (
	"cmp"
	"slices"
	"sort"
)

// Active identifies one cut instance: the cut's track and its insertion
// index within that track.
type Active struct {
	Track int
	Index int
	Cut   Cut
}

// Region is a maximal half-open interval [In, Out) over which the set of
// active cuts is constant. Active is ordered by (Track, Index) and never
// empty.
type Region struct {
	In     Time
	Out    Time
	Active []Active
}

// Contains reports whether t lies in [In, Out).
func (r Region) Contains(t Time) bool {
	return r.In <= t && t < r.Out
}

// Index is an immutable, sorted sequence of disjoint regions built from a
// set of tracks. It is safe to query from any number of goroutines.
type Index struct {
	regions    []Region
	cuts       int
	overlaps   int
	generation uint64
}

type eventKind int8

// End events sort before start events at the same instant, so a cut
// ending at T is inactive at T even when another one starts there.
const (
	endEvent eventKind = iota
	startEvent
)

type event struct {
	at    Time
	kind  eventKind
	track int
	index int
}

func compareEvents(a, b event) int {
	if c := cmp.Compare(a.at, b.at); c != 0 {
		return c
	}
	if c := cmp.Compare(a.kind, b.kind); c != 0 {
		return c
	}
	if c := cmp.Compare(a.track, b.track); c != 0 {
		return c
	}
	return cmp.Compare(a.index, b.index)
}

func compareActive(a Active, e event) int {
	if c := cmp.Compare(a.Track, e.track); c != 0 {
		return c
	}
	return cmp.Compare(a.Index, e.index)
}

// BuildIndex sweeps the active windows of every cut on every track and
// returns the resulting region index. Invalid cuts are collected into a
// single *BuildFailure; zero-length cuts are skipped.
func BuildIndex(tracks []*Track) (*Index, error) {
	var violations []*ConstraintViolation
	events := make([]event, 0)

	for ti, tr := range tracks {
		if tr == nil {
			continue
		}
		for ci, c := range tr.cuts {
			if v := c.check(ti, ci); v != nil {
				violations = append(violations, v)
				continue
			}
			// A window can also collapse when Inst dwarfs the duration.
			start, end := c.Window()
			if c.Empty() || end <= start {
				continue
			}
			events = append(events,
				event{at: start, kind: startEvent, track: ti, index: ci},
				event{at: end, kind: endEvent, track: ti, index: ci},
			)
		}
	}
	if len(violations) > 0 {
		return nil, &BuildFailure{Violations: violations}
	}

	slices.SortFunc(events, compareEvents)

	ix := &Index{cuts: len(events) / 2}
	if len(events) > 0 {
		ix.regions = make([]Region, 0, len(events)-1)
	}

	var (
		active []Active
		open   []Active
		openAt Time
	)
	for i := 0; i < len(events); {
		at := events[i].at
		for ; i < len(events) && events[i].at == at; i++ {
			e := events[i]
			pos, found := slices.BinarySearchFunc(active, e, compareActive)
			if e.kind == startEvent {
				c := tracks[e.track].cuts[e.index]
				active = slices.Insert(active, pos, Active{Track: e.track, Index: e.index, Cut: c})
			} else if found {
				active = slices.Delete(active, pos, pos+1)
			}
		}

		// Every batch changes the set: a cut never starts and ends at
		// the same instant.
		if open != nil {
			ix.regions = append(ix.regions, Region{In: openAt, Out: at, Active: open})
			if sharesTrack(open) {
				ix.overlaps++
			}
		}
		open = nil
		if len(active) > 0 {
			open = slices.Clone(active)
			openAt = at
		}
	}

	return ix, nil
}

// sharesTrack reports whether two active cuts come from the same track.
func sharesTrack(set []Active) bool {
	for i := 1; i < len(set); i++ {
		if set[i].Track == set[i-1].Track {
			return true
		}
	}
	return false
}

// search returns the position of the first region ending after t.
func (ix *Index) search(t Time) int {
	return sort.Search(len(ix.regions), func(i int) bool {
		return ix.regions[i].Out > t
	})
}

// CutsAt returns the cuts active at t, or nil when t falls in a gap or
// outside the indexed span. The returned slice belongs to the index and
// must not be modified.
func (ix *Index) CutsAt(t Time) []Active {
	i := ix.search(t)
	if i < len(ix.regions) && ix.regions[i].In <= t {
		return ix.regions[i].Active
	}
	return nil
}

// Regions returns a copy of the region sequence. The Active slices are
// shared with the index.
func (ix *Index) Regions() []Region {
	return slices.Clone(ix.regions)
}

// Region returns the i-th region.
func (ix *Index) Region(i int) Region {
	return ix.regions[i]
}

// Len returns the number of regions.
func (ix *Index) Len() int {
	return len(ix.regions)
}

// Cuts returns the number of non-empty cuts covered by the index.
func (ix *Index) Cuts() int {
	return ix.cuts
}

// Overlaps returns how many regions hold more than one cut from the same
// track.
func (ix *Index) Overlaps() int {
	return ix.overlaps
}

// Span returns the start of the first region and the end of the last.
// Both are zero for an empty index.
func (ix *Index) Span() (start, end Time) {
	if len(ix.regions) == 0 {
		return 0, 0
	}
	return ix.regions[0].In, ix.regions[len(ix.regions)-1].Out
}
