package render

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"time"

	"crosscut/timeline"
)

// FrameFunc receives each rendered frame. The image is reused between
// calls and must be copied if retained.
type FrameFunc func(n int, t timeline.Time, img *image.RGBA) error

// Stats summarizes one run of the frame loop.
type Stats struct {
	Frames    int
	QueryMax  time.Duration
	QueryAll  time.Duration
	RenderAll time.Duration
}

// QueryAvg returns the mean time spent finding the active cuts per frame.
func (s Stats) QueryAvg() time.Duration {
	if s.Frames == 0 {
		return 0
	}
	return s.QueryAll / time.Duration(s.Frames)
}

// Player steps a Compositor through [From, To) at a fixed frame rate.
type Player struct {
	Compositor *Compositor
	FPS        float64
	From       timeline.Time
	To         timeline.Time
}

// frames estimates the number of frames in [From, To).
func (p *Player) frames() int {
	if p.To <= p.From {
		return 0
	}
	return int(math.Ceil(float64(p.To-p.From) * p.FPS))
}

// Run renders every frame in order and hands it to fn. The index snapshot
// is taken once, so the loop sees a consistent timeline even if it is
// rebuilt meanwhile. Run stops at the first error from fn or when ctx is
// done.
func (p *Player) Run(ctx context.Context, fn FrameFunc) (Stats, error) {
	var stats Stats
	if p.FPS <= 0 || math.IsNaN(p.FPS) || math.IsInf(p.FPS, 0) {
		return stats, fmt.Errorf("invalid frame rate %v", p.FPS)
	}
	ix, err := p.Compositor.tl.Index()
	if err != nil {
		return stats, err
	}
	cur := ix.Cursor()
	dst := image.NewRGBA(p.Compositor.Bounds())
	log := p.Compositor.log
	log.Debug("render: frame loop started", "frames", p.frames(), "fps", p.FPS,
		"from", float64(p.From), "to", float64(p.To))

	for n := 0; ; n++ {
		t := p.From + timeline.Time(float64(n)/p.FPS)
		if t >= p.To {
			break
		}
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		start := time.Now()
		active := cur.At(t)
		q := time.Since(start)

		p.Compositor.Compose(dst, active, t)
		stats.RenderAll += time.Since(start)
		stats.QueryAll += q
		stats.QueryMax = max(stats.QueryMax, q)
		stats.Frames++

		if err := fn(n, t, dst); err != nil {
			return stats, fmt.Errorf("frame %d: %w", n, err)
		}
	}

	log.Debug("render: frame loop finished", "frames", stats.Frames,
		"query_avg", stats.QueryAvg(), "query_max", stats.QueryMax)
	return stats, nil
}

// WritePNGSequence renders the range into dir as frame_00000.png,
// frame_00001.png and so on.
func (p *Player) WritePNGSequence(ctx context.Context, dir string) (Stats, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return Stats{}, fmt.Errorf("failed to create output directory: %w", err)
	}
	return p.Run(ctx, func(n int, t timeline.Time, img *image.RGBA) error {
		return writePNG(filepath.Join(dir, fmt.Sprintf("frame_%05d.png", n)), img)
	})
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
