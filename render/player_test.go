package render

import (
	"context"
	"errors"
	"image"
	"os"
	"path/filepath"
	"testing"

	"crosscut/timeline"
)

func TestPlayerRun(t *testing.T) {
	tl, clips := twoTracks(t)
	p := &Player{Compositor: NewCompositor(tl, clips, 4, 4), FPS: 10, From: 0, To: 4}

	var times []timeline.Time
	stats, err := p.Run(context.Background(), func(n int, at timeline.Time, img *image.RGBA) error {
		if n != len(times) {
			t.Errorf("frame %d delivered out of order", n)
		}
		times = append(times, at)
		return nil
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if stats.Frames != 40 || len(times) != 40 {
		t.Fatalf("rendered %d frames (%d callbacks), want 40", stats.Frames, len(times))
	}
	if times[0] != 0 || times[39] >= 4 {
		t.Errorf("frame times span [%v, %v], want within [0, 4)", times[0], times[39])
	}
	if stats.QueryMax < stats.QueryAvg() {
		t.Errorf("QueryMax %v below QueryAvg %v", stats.QueryMax, stats.QueryAvg())
	}
}

func TestPlayerStopsOnError(t *testing.T) {
	tl, clips := twoTracks(t)
	p := &Player{Compositor: NewCompositor(tl, clips, 4, 4), FPS: 30, From: 0, To: 4}

	stop := errors.New("disk full")
	stats, err := p.Run(context.Background(), func(n int, _ timeline.Time, _ *image.RGBA) error {
		if n == 3 {
			return stop
		}
		return nil
	})
	if !errors.Is(err, stop) {
		t.Fatalf("Run error = %v, want %v", err, stop)
	}
	if stats.Frames != 4 {
		t.Errorf("rendered %d frames before stopping, want 4", stats.Frames)
	}
}

func TestPlayerCancel(t *testing.T) {
	tl, clips := twoTracks(t)
	p := &Player{Compositor: NewCompositor(tl, clips, 4, 4), FPS: 30, From: 0, To: 4}

	ctx, cancel := context.WithCancel(context.Background())
	stats, err := p.Run(ctx, func(n int, _ timeline.Time, _ *image.RGBA) error {
		if n == 1 {
			cancel()
		}
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run error = %v, want context.Canceled", err)
	}
	if stats.Frames != 2 {
		t.Errorf("rendered %d frames, want 2", stats.Frames)
	}
}

func TestPlayerRejectsBadInput(t *testing.T) {
	tl, clips := twoTracks(t)
	p := &Player{Compositor: NewCompositor(tl, clips, 4, 4), FPS: 0, To: 1}
	if _, err := p.Run(context.Background(), func(int, timeline.Time, *image.RGBA) error { return nil }); err == nil {
		t.Error("Run with zero fps succeeded")
	}

	tl.NewTrack()
	p.FPS = 30
	if _, err := p.Run(context.Background(), func(int, timeline.Time, *image.RGBA) error { return nil }); !errors.Is(err, timeline.ErrIndexNotReady) {
		t.Errorf("Run on stale timeline error = %v, want ErrIndexNotReady", err)
	}
}

func TestWritePNGSequence(t *testing.T) {
	tl, clips := twoTracks(t)
	p := &Player{Compositor: NewCompositor(tl, clips, 8, 8), FPS: 2, From: 1, To: 3}
	dir := filepath.Join(t.TempDir(), "frames")

	stats, err := p.WritePNGSequence(context.Background(), dir)
	if err != nil {
		t.Fatalf("WritePNGSequence failed: %v", err)
	}
	if stats.Frames != 4 {
		t.Fatalf("wrote %d frames, want 4", stats.Frames)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 4 || entries[0].Name() != "frame_00000.png" {
		t.Errorf("directory holds %d entries starting %q", len(entries), entries[0].Name())
	}
}
