package render

import (
	"fmt"
	"hash/fnv"
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"crosscut/timeline"
)

// SolidClip fills the frame with one color at every local time.
type SolidClip struct {
	frame *image.Uniform
}

// NewSolid returns a clip that always samples to c.
func NewSolid(c color.Color) *SolidClip {
	return &SolidClip{frame: image.NewUniform(c)}
}

func (s *SolidClip) Sample(timeline.Time) timeline.Frame {
	return s.frame
}

// FadeClip ramps a color's alpha from zero at local time From to full at
// local time To, holding the end values outside that range.
type FadeClip struct {
	Color    color.NRGBA
	From, To timeline.Time
}

func (f *FadeClip) Sample(t timeline.Time) timeline.Frame {
	k := 1.0
	if f.To > f.From {
		k = float64((t - f.From) / (f.To - f.From))
	}
	k = min(max(k, 0), 1)
	c := f.Color
	c.A = uint8(float64(c.A)*k + 0.5)
	return image.NewUniform(c)
}

// LabelClip draws a caption and the local timecode on a transparent frame.
type LabelClip struct {
	Text   string
	Color  color.Color
	Origin image.Point
	Size   image.Point
}

func (l *LabelClip) Sample(t timeline.Time) timeline.Frame {
	img := image.NewRGBA(image.Rectangle{Max: l.Size})
	drawText(img, l.Origin, l.Color, fmt.Sprintf("%s  %6.2fs", l.Text, float64(t)))
	return img
}

func drawText(dst xdraw.Image, at image.Point, c color.Color, s string) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(at.X, at.Y),
	}
	d.DrawString(s)
}

// ImageClip shows a still image scaled to the frame size.
type ImageClip struct {
	frame *image.RGBA
}

// NewImage scales src once into a width x height frame.
func NewImage(src image.Image, width, height int) *ImageClip {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return &ImageClip{frame: dst}
}

func (c *ImageClip) Sample(timeline.Time) timeline.Frame {
	return c.frame
}

// PlaceholderClip is a translucent card whose color is derived from its
// name, captioned with the name and local time. It stands in for media
// the renderer cannot decode.
type PlaceholderClip struct {
	card  *image.RGBA
	label LabelClip
}

// NewPlaceholder builds a placeholder card for a width x height frame.
func NewPlaceholder(name string, width, height int) *PlaceholderClip {
	h := fnv.New32a()
	h.Write([]byte(name))
	sum := h.Sum32()
	fill := color.NRGBA{R: uint8(sum >> 16), G: uint8(sum >> 8), B: uint8(sum), A: 0xa0}

	card := image.NewRGBA(image.Rect(0, 0, width, height))
	inset := image.Rect(width/8, height/8, width-width/8, height-height/8)
	xdraw.Draw(card, inset, image.NewUniform(fill), image.Point{}, xdraw.Src)

	// Offset captions by name so stacked cards stay readable.
	line := 13 * (1 + int(sum%uint32(max(1, inset.Dy()/13-1))))
	return &PlaceholderClip{
		card: card,
		label: LabelClip{
			Text:   name,
			Color:  color.White,
			Origin: image.Pt(inset.Min.X+8, inset.Min.Y+line),
			Size:   image.Pt(width, height),
		},
	}
}

func (p *PlaceholderClip) Sample(t timeline.Time) timeline.Frame {
	img := image.NewRGBA(p.card.Bounds())
	xdraw.Draw(img, img.Bounds(), p.card, image.Point{}, xdraw.Src)
	drawText(img, p.label.Origin, p.label.Color, fmt.Sprintf("%s  %6.2fs", p.label.Text, float64(t)))
	return img
}

// CaptionClip draws a line of subtitle text on a dark band along the
// bottom of the frame. The text does not change with local time.
type CaptionClip struct {
	frame *image.RGBA
}

// NewCaption renders text once into a width x height frame.
func NewCaption(text string, width, height int) *CaptionClip {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	band := image.Rect(0, max(0, height-28), width, height)
	xdraw.Draw(img, band, image.NewUniform(color.NRGBA{A: 0xb0}), image.Point{}, xdraw.Src)

	textWidth := font.MeasureString(basicfont.Face7x13, text).Round()
	x := max(4, (width-textWidth)/2)
	drawText(img, image.Pt(x, height-9), color.White, text)
	return &CaptionClip{frame: img}
}

func (c *CaptionClip) Sample(timeline.Time) timeline.Frame {
	return c.frame
}
