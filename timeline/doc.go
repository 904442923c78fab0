// Package timeline places clips on parallel tracks and answers, in
// logarithmic time, which cut instances are active at a given instant.
//
// A Cut places the [In, Out) sub-range of a Clip on a Track starting at
// the absolute instance time Inst, so its active window is
// [Inst, Inst+(Out-In)). Clips live in a ClipRegistry and are referenced
// by ClipID.
//
// Building a Timeline sweeps every cut window into a sorted sequence of
// disjoint Regions, each holding the constant set of active cuts:
//
//	clips := timeline.NewClipRegistry()
//	a := clips.Register(clipA)
//	b := clips.Register(clipB)
//
//	cutA, _ := timeline.NewCut(0, 2, 0, a) // [0, 2)
//	cutB, _ := timeline.NewCut(0, 3, 1, b) // [1, 4)
//
//	tl := timeline.NewTimelineFrom(timeline.NewTrack(cutA), timeline.NewTrack(cutB))
//	if err := tl.Build(); err != nil {
//		return err
//	}
//	active, _ := tl.CutsAt(1.5) // both cuts
//
// Windows are half-open: a cut ending at T is not active at T, even when
// another cut starts at T.
//
// A frame loop issuing increasing query times can use Index.Cursor, which
// remembers the last region and resolves the common case without a search.
package timeline
