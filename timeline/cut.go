package timeline

import "math"

// Time is a point or duration on the timeline, in seconds.
type Time float64

func (t Time) finite() bool {
	f := float64(t)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Cut places the [In, Out) sub-range of a clip on a track, starting at the
// absolute instance time Inst. A Cut is a value; once added to a track it
// is never modified.
type Cut struct {
	In   Time
	Out  Time
	Inst Time
	Clip ClipID
}

// NewCut returns a validated cut. It never clamps or reorders its input.
func NewCut(in, out, inst Time, clip ClipID) (Cut, error) {
	c := Cut{In: in, Out: out, Inst: inst, Clip: clip}
	if err := c.Validate(); err != nil {
		return Cut{}, err
	}
	return c, nil
}

// Validate reports a *ConstraintViolation when any time is non-finite,
// In > Out, or the window end overflows.
func (c Cut) Validate() error {
	if v := c.check(-1, -1); v != nil {
		return v
	}
	return nil
}

func (c Cut) check(track, index int) *ConstraintViolation {
	reason := ""
	switch {
	case !c.In.finite():
		reason = "in time is not finite"
	case !c.Out.finite():
		reason = "out time is not finite"
	case !c.Inst.finite():
		reason = "instance time is not finite"
	case c.In > c.Out:
		reason = "in time is after out time"
	default:
		if _, end := c.Window(); !end.finite() {
			reason = "window end is not finite"
		}
	}
	if reason == "" {
		return nil
	}
	return &ConstraintViolation{
		Track:  track,
		Index:  index,
		In:     c.In,
		Out:    c.Out,
		Inst:   c.Inst,
		Reason: reason,
	}
}

// Duration is the length of the placed sub-range.
func (c Cut) Duration() Time {
	return c.Out - c.In
}

// Window returns the absolute active window [start, end).
func (c Cut) Window() (start, end Time) {
	return c.Inst, c.Inst + (c.Out - c.In)
}

// Empty reports whether the cut has a zero-length window.
func (c Cut) Empty() bool {
	return c.In == c.Out
}

// Contains reports whether t lies in the cut's active window.
func (c Cut) Contains(t Time) bool {
	start, end := c.Window()
	return start <= t && t < end
}

// LocalTimeAt maps a global time to the clip's local time. It is only
// meaningful for t inside the cut's active window.
func (c Cut) LocalTimeAt(t Time) Time {
	return c.In + (t - c.Inst)
}
