package timeline

import "fmt"

// Transaction stages an authoring batch against a Timeline. Nothing is
// visible to the timeline until Commit, which applies every staged edit
// and rebuilds the index in one step.
type Transaction struct {
	tl        *Timeline
	base      int
	newTracks int
	staged    []stagedCut
	closed    bool
}

type stagedCut struct {
	track int
	cut   Cut
}

// Begin starts a transaction on the timeline.
func (tl *Timeline) Begin() *Transaction {
	return &Transaction{
		tl:     tl,
		base:   tl.Len(),
		staged: make([]stagedCut, 0),
	}
}

// AddTrack stages a new empty track and returns the index it will have
// after Commit.
func (tx *Transaction) AddTrack() (int, error) {
	if tx.closed {
		return 0, ErrTransactionClosed
	}
	tx.newTracks++
	return tx.base + tx.newTracks - 1, nil
}

// AddCut validates the cut and stages it for the given track, which may
// be an existing track or one staged by AddTrack.
func (tx *Transaction) AddCut(track int, c Cut) error {
	if tx.closed {
		return ErrTransactionClosed
	}
	if track < 0 || track >= tx.base+tx.newTracks {
		return fmt.Errorf("%w: %d", ErrUnknownTrack, track)
	}
	if v := c.check(track, -1); v != nil {
		return v
	}
	tx.staged = append(tx.staged, stagedCut{track: track, cut: c})
	return nil
}

// Commit applies the staged tracks and cuts, then rebuilds the index.
// Nothing is applied when tracks were added to the timeline since Begin;
// the transaction is closed and ErrTransactionConflict returned.
func (tx *Transaction) Commit() error {
	if tx.closed {
		return ErrTransactionClosed
	}
	tx.closed = true
	if n := tx.tl.Len(); n != tx.base {
		return fmt.Errorf("%w: began with %d tracks, now %d", ErrTransactionConflict, tx.base, n)
	}

	for i := 0; i < tx.newTracks; i++ {
		tx.tl.AddTrack(NewTrack())
	}
	for _, s := range tx.staged {
		tx.tl.tracks[s.track].AddCut(s.cut)
	}
	Logger().Debug("timeline: transaction committed", "tracks", tx.newTracks, "cuts", len(tx.staged))
	return tx.tl.Build()
}

// Rollback discards the staged edits. It is safe to call after Commit.
func (tx *Transaction) Rollback() {
	if tx.closed {
		return
	}
	tx.closed = true
	tx.staged = nil
	tx.newTracks = 0
}
