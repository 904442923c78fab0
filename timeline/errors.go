package timeline

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrConstraintViolation matches every *ConstraintViolation.
	ErrConstraintViolation = errors.New("timeline: constraint violation")

	// ErrBuildFailure matches every *BuildFailure.
	ErrBuildFailure = errors.New("timeline: index build failed")

	// ErrIndexNotReady is returned by queries when the index was never
	// built, failed to build, or no longer reflects the tracks.
	ErrIndexNotReady = errors.New("timeline: index not ready")

	// ErrTransactionClosed is returned by a Transaction after Commit or Rollback.
	ErrTransactionClosed = errors.New("timeline: transaction closed")

	// ErrUnknownTrack is returned when a track index is out of range.
	ErrUnknownTrack = errors.New("timeline: unknown track")

	// ErrTransactionConflict is returned by Commit when the timeline's
	// track set changed after Begin.
	ErrTransactionConflict = errors.New("timeline: tracks changed during transaction")
)

// ConstraintViolation describes an invalid cut. Track and Index are -1
// when the violation is raised outside of an index build.
type ConstraintViolation struct {
	Track  int
	Index  int
	In     Time
	Out    Time
	Inst   Time
	Reason string
}

func (e *ConstraintViolation) Error() string {
	switch {
	case e.Track < 0:
		return fmt.Sprintf("timeline: invalid cut (in=%v out=%v inst=%v): %s", e.In, e.Out, e.Inst, e.Reason)
	case e.Index < 0:
		return fmt.Sprintf("timeline: invalid cut for track %d (in=%v out=%v inst=%v): %s",
			e.Track, e.In, e.Out, e.Inst, e.Reason)
	}
	return fmt.Sprintf("timeline: invalid cut %d on track %d (in=%v out=%v inst=%v): %s",
		e.Index, e.Track, e.In, e.Out, e.Inst, e.Reason)
}

func (e *ConstraintViolation) Is(target error) bool {
	return target == ErrConstraintViolation
}

// BuildFailure batches every violation found while building an index.
type BuildFailure struct {
	Violations []*ConstraintViolation
}

func (e *BuildFailure) Error() string {
	if len(e.Violations) == 1 {
		return "timeline: index build failed: " + e.Violations[0].Error()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "timeline: index build failed with %d violations", len(e.Violations))
	for _, v := range e.Violations {
		b.WriteString("\n\t")
		b.WriteString(v.Error())
	}
	return b.String()
}

func (e *BuildFailure) Is(target error) bool {
	return target == ErrBuildFailure
}

// Unwrap exposes the individual violations to errors.Is and errors.As.
func (e *BuildFailure) Unwrap() []error {
	errs := make([]error, len(e.Violations))
	for i, v := range e.Violations {
		errs[i] = v
	}
	return errs
}
