package fcp

import (
	"fmt"
	"slices"
	"sort"
	"strconv"

	"crosscut/timeline"
)

// Imported is a timeline built from one FCPXML sequence. Track i holds
// the clips of lane Lanes[i]; lanes are ascending so track order is
// bottom-to-top compositing order.
type Imported struct {
	Timeline *timeline.Timeline
	Lanes    []int
	Duration float64

	names [][]string
}

// Name returns the FCPXML element name of an active cut.
func (im *Imported) Name(a timeline.Active) string {
	if a.Track < 0 || a.Track >= len(im.names) || a.Index < 0 || a.Index >= len(im.names[a.Track]) {
		return ""
	}
	return im.names[a.Track][a.Index]
}

// element is the common shape of every spine item and connected clip.
type element struct {
	ref       string
	name      string
	lane      string
	offset    string
	start     string
	duration  string
	connected *Connected
}

type placement struct {
	lane int
	name string
	ref  string
	in   float64
	out  float64
	inst float64
}

func connectedElements(c *Connected) []element {
	var out []element
	for i := range c.AssetClips {
		v := &c.AssetClips[i]
		out = append(out, element{v.Ref, v.Name, v.Lane, v.Offset, v.Start, v.Duration, &v.Connected})
	}
	for i := range c.RefClips {
		v := &c.RefClips[i]
		out = append(out, element{v.Ref, v.Name, v.Lane, v.Offset, v.Start, v.Duration, &v.Connected})
	}
	for i := range c.Videos {
		v := &c.Videos[i]
		out = append(out, element{v.Ref, v.Name, v.Lane, v.Offset, v.Start, v.Duration, &v.Connected})
	}
	for _, v := range c.Titles {
		out = append(out, element{v.Ref, v.Name, v.Lane, v.Offset, v.Start, v.Duration, nil})
	}
	return out
}

func spineElements(s *Spine) []element {
	out := connectedElements(&Connected{
		AssetClips: s.AssetClips,
		RefClips:   s.RefClips,
		Videos:     s.Videos,
		Titles:     s.Titles,
	})
	for i := range s.Gaps {
		g := &s.Gaps[i]
		out = append(out, element{"", g.Name, "", g.Offset, g.Start, g.Duration, &g.Connected})
	}
	// Spine lanes are always the primary storyline.
	for i := range out {
		out[i].lane = ""
	}
	return out
}

// collect places el on the absolute timeline. base is the absolute time
// of the parent's source time zero and parentLane the parent's absolute
// lane; an element's own lane is relative to its parent.
func collect(el element, base float64, parentLane int, out []placement) ([]placement, error) {
	offset, err := ParseDuration(el.offset)
	if err != nil {
		return nil, fmt.Errorf("element %q offset: %w", el.name, err)
	}
	start, err := ParseDuration(el.start)
	if err != nil {
		return nil, fmt.Errorf("element %q start: %w", el.name, err)
	}
	duration, err := ParseDuration(el.duration)
	if err != nil {
		return nil, fmt.Errorf("element %q duration: %w", el.name, err)
	}
	lane := parentLane
	if el.lane != "" {
		rel, err := strconv.Atoi(el.lane)
		if err != nil {
			return nil, fmt.Errorf("element %q lane %q: %w", el.name, el.lane, err)
		}
		lane += rel
	}

	inst := base + offset
	if el.ref != "" {
		out = append(out, placement{
			lane: lane,
			name: el.name,
			ref:  el.ref,
			in:   start,
			out:  start + duration,
			inst: inst,
		})
	}
	if el.connected == nil {
		return out, nil
	}
	for _, child := range connectedElements(el.connected) {
		if out, err = collect(child, inst-start, lane, out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Import builds a timeline from the named project's sequence (the first
// project when name is empty). Every referenced resource is bound to a
// clip through reg.
func Import(ml *FCPXML, reg *ResourceRegistry, project string) (*Imported, error) {
	seq, err := ml.Sequence(project)
	if err != nil {
		return nil, err
	}

	elements := spineElements(&seq.Spine)
	offsets := make([]float64, len(elements))
	for i, el := range elements {
		if offsets[i], err = ParseDuration(el.offset); err != nil {
			return nil, fmt.Errorf("element %q offset: %w", el.name, err)
		}
	}
	order := make([]int, len(elements))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return offsets[order[a]] < offsets[order[b]]
	})

	var placements []placement
	for _, i := range order {
		if placements, err = collect(elements[i], 0, 0, placements); err != nil {
			return nil, err
		}
	}

	var lanes []int
	for _, p := range placements {
		if !slices.Contains(lanes, p.lane) {
			lanes = append(lanes, p.lane)
		}
	}
	slices.Sort(lanes)

	im := &Imported{
		Timeline: timeline.NewTimeline(),
		Lanes:    lanes,
		names:    make([][]string, len(lanes)),
	}
	tx := im.Timeline.Begin()
	defer tx.Rollback()

	for range lanes {
		if _, err := tx.AddTrack(); err != nil {
			return nil, err
		}
	}
	for _, p := range placements {
		clip, err := reg.ClipFor(p.ref)
		if err != nil {
			return nil, fmt.Errorf("element %q: %w", p.name, err)
		}
		cut, err := timeline.NewCut(timeline.Time(p.in), timeline.Time(p.out), timeline.Time(p.inst), clip)
		if err != nil {
			return nil, fmt.Errorf("element %q: %w", p.name, err)
		}
		track, _ := slices.BinarySearch(lanes, p.lane)
		if err := tx.AddCut(track, cut); err != nil {
			return nil, fmt.Errorf("element %q: %w", p.name, err)
		}
		im.names[track] = append(im.names[track], p.name)
		if end := p.inst + (p.out - p.in); end > im.Duration {
			im.Duration = end
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return im, nil
}
