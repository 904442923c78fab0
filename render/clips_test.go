package render

import (
	"image"
	"image/color"
	"testing"

	"crosscut/timeline"
)

func TestFadeClip(t *testing.T) {
	f := &FadeClip{Color: color.NRGBA{R: 255, A: 255}, From: 0, To: 2}
	cases := map[timeline.Time]uint8{-1: 0, 0: 0, 1: 128, 2: 255, 5: 255}
	for at, want := range cases {
		u, ok := f.Sample(at).(*image.Uniform)
		if !ok {
			t.Fatalf("Sample(%v) is not a uniform image", at)
		}
		if got := u.C.(color.NRGBA).A; got != want {
			t.Errorf("Sample(%v) alpha = %d, want %d", at, got, want)
		}
	}

	instant := &FadeClip{Color: color.NRGBA{A: 200}, From: 1, To: 1}
	if got := instant.Sample(0).(*image.Uniform).C.(color.NRGBA).A; got != 200 {
		t.Errorf("zero-length fade alpha = %d, want 200", got)
	}
}

func TestImageClipScales(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for i := range src.Pix {
		src.Pix[i] = 0xff
	}
	c := NewImage(src, 10, 6)
	img := c.Sample(3).(*image.RGBA)
	if img.Bounds() != image.Rect(0, 0, 10, 6) {
		t.Fatalf("bounds = %v, want 10x6", img.Bounds())
	}
	if got := img.RGBAAt(5, 3); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("center pixel = %v, want white", got)
	}
	if c.Sample(0) != c.Sample(9) {
		t.Error("still image should sample to the same frame")
	}
}

func opaquePixels(img *image.RGBA) int {
	n := 0
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0 {
			n++
		}
	}
	return n
}

func TestLabelClipDrawsText(t *testing.T) {
	l := &LabelClip{Text: "intro", Color: color.White, Origin: image.Pt(2, 14), Size: image.Pt(160, 20)}
	img := l.Sample(1.5).(*image.RGBA)
	if opaquePixels(img) == 0 {
		t.Error("label frame is empty")
	}
}

func TestPlaceholderIsDeterministic(t *testing.T) {
	a := NewPlaceholder("intro", 64, 48).Sample(1).(*image.RGBA)
	b := NewPlaceholder("intro", 64, 48).Sample(1).(*image.RGBA)
	if string(a.Pix) != string(b.Pix) {
		t.Error("same name and time produced different frames")
	}
	other := NewPlaceholder("outro", 64, 48).Sample(1).(*image.RGBA)
	if other.RGBAAt(10, 40) == a.RGBAAt(10, 40) {
		t.Error("different names produced the same card color")
	}
	if got := a.RGBAAt(0, 0); got.A != 0 {
		t.Errorf("card border pixel = %v, want transparent", got)
	}
}

func TestCaptionClip(t *testing.T) {
	c := NewCaption("hello", 200, 60)
	img := c.Sample(0).(*image.RGBA)
	if img.Bounds() != image.Rect(0, 0, 200, 60) {
		t.Fatalf("bounds = %v, want 200x60", img.Bounds())
	}
	if got := img.RGBAAt(100, 5).A; got != 0 {
		t.Errorf("alpha above the band = %d, want 0", got)
	}
	if got := img.RGBAAt(1, 58).A; got == 0 {
		t.Error("band should be drawn along the bottom edge")
	}
	if c.Sample(0) != c.Sample(4) {
		t.Error("caption should sample to the same frame")
	}
}
