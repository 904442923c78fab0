package cmd

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"crosscut/fcp"
	"crosscut/render"
	"crosscut/timeline"
	"crosscut/vtt"
)

// project is an imported sequence plus the clips it renders with. An
// optional caption track sits above every lane.
type project struct {
	*fcp.Imported
	clips     *timeline.ClipRegistry
	resources int

	captionTrack int
	captions     []string
}

func isImageFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg":
		return true
	}
	return false
}

// clipFactory renders image assets that exist on disk as stills and every
// other resource as a placeholder card.
func clipFactory(width, height int) fcp.ClipFactory {
	return func(res fcp.Resource) (timeline.Clip, error) {
		asset, ok := res.(*fcp.AssetWrapper)
		if !ok || !strings.HasPrefix(asset.MediaRep.Src, "file://") {
			return render.NewPlaceholder(res.GetName(), width, height), nil
		}
		path := strings.TrimPrefix(asset.MediaRep.Src, "file://")
		if !isImageFile(path) {
			return render.NewPlaceholder(res.GetName(), width, height), nil
		}
		f, err := os.Open(path)
		if err != nil {
			logger.Warn("image asset unavailable, using placeholder", "asset", asset.ID, "path", path, "err", err)
			return render.NewPlaceholder(res.GetName(), width, height), nil
		}
		defer f.Close()
		img, _, err := image.Decode(f)
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", path, err)
		}
		return render.NewImage(img, width, height), nil
	}
}

func loadProject(path, name, captions string, width, height int) (*project, error) {
	ml, err := fcp.ParseFile(path)
	if err != nil {
		return nil, err
	}
	clips := timeline.NewClipRegistry()
	reg := fcp.NewResourceRegistry(ml, clips, clipFactory(width, height))
	im, err := fcp.Import(ml, reg, name)
	if err != nil {
		return nil, fmt.Errorf("failed to import %s: %w", path, err)
	}
	p := &project{Imported: im, clips: clips, resources: reg.GetResourceCount(), captionTrack: -1}
	if captions != "" {
		if err := p.addCaptions(captions, width, height); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (p *project) addCaptions(path string, width, height int) error {
	cues, err := vtt.ParseFile(path)
	if err != nil {
		return err
	}
	track, err := vtt.Track(cues, p.clips, func(c vtt.Cue) timeline.Clip {
		p.captions = append(p.captions, c.Text)
		return render.NewCaption(c.Text, width, height)
	})
	if err != nil {
		return fmt.Errorf("failed to lay out captions: %w", err)
	}
	p.captionTrack = p.Timeline.AddTrack(track)
	for _, c := range cues {
		p.Duration = max(p.Duration, c.End.Seconds())
	}
	logger.Debug("captions loaded", "path", path, "cues", len(cues), "track", p.captionTrack)
	return p.Timeline.Build()
}

// lane names the lane of an active cut; the caption track is "cc".
func (p *project) lane(a timeline.Active) string {
	if a.Track == p.captionTrack {
		return "cc"
	}
	return strconv.Itoa(p.Lanes[a.Track])
}

func (p *project) name(a timeline.Active) string {
	if a.Track == p.captionTrack {
		return p.captions[a.Index]
	}
	return p.Name(a)
}

// describe formats the active set as lane:name pairs.
func (p *project) describe(active []timeline.Active) string {
	if len(active) == 0 {
		return StatusStyle.Render("(none)")
	}
	parts := make([]string, len(active))
	for i, a := range active {
		parts[i] = fmt.Sprintf("%s:%s", p.lane(a), p.name(a))
	}
	return strings.Join(parts, " ")
}
