package fcp

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"crosscut/timeline"
)

// twoLaneXML is the two-track scenario: A on the spine over [0, 2) and B
// connected on lane 1 over [1, 4).
const twoLaneXML = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE fcpxml>
<fcpxml version="1.13">
    <resources>
        <format id="r1" name="FFVideoFormat720p2398" frameDuration="1001/24000s" width="1280" height="720"></format>
        <asset id="r2" name="A" start="0s" hasVideo="1" format="r1" duration="10s">
            <media-rep kind="original-media" src="file:///tmp/a.mov"></media-rep>
        </asset>
        <asset id="r3" name="B" start="0s" hasVideo="1" format="r1" duration="10s">
            <media-rep kind="original-media" src="file:///tmp/b.mov"></media-rep>
        </asset>
    </resources>
    <library>
        <event name="demo">
            <project name="demo">
                <sequence format="r1" duration="4s" tcStart="0s" tcFormat="NDF">
                    <spine>
                        <asset-clip ref="r2" offset="0s" name="A" duration="2s">
                            <asset-clip ref="r3" lane="1" offset="1s" name="B" duration="3s"></asset-clip>
                        </asset-clip>
                    </spine>
                </sequence>
            </project>
        </event>
    </library>
</fcpxml>`

type labelClip string

func (c labelClip) Sample(t timeline.Time) timeline.Frame { return string(c) }

func labelFactory(res Resource) (timeline.Clip, error) {
	return labelClip(res.GetName()), nil
}

func importString(t *testing.T, doc string) (*Imported, *ResourceRegistry) {
	t.Helper()
	ml, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	reg := NewResourceRegistry(ml, timeline.NewClipRegistry(), labelFactory)
	im, err := Import(ml, reg, "")
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	return im, reg
}

func names(im *Imported, set []timeline.Active) string {
	parts := make([]string, len(set))
	for i, a := range set {
		parts[i] = im.Name(a)
	}
	return "{" + strings.Join(parts, ",") + "}"
}

func TestImportTwoLanes(t *testing.T) {
	im, reg := importString(t, twoLaneXML)

	if fmt.Sprint(im.Lanes) != "[0 1]" {
		t.Fatalf("Lanes = %v, want [0 1]", im.Lanes)
	}
	if im.Duration != 4 {
		t.Errorf("Duration = %v, want 4", im.Duration)
	}
	if !im.Timeline.Ready() {
		t.Fatal("imported timeline index is not ready")
	}

	queries := map[timeline.Time]string{
		0.5:  "{A}",
		1.5:  "{A,B}",
		3.0:  "{B}",
		4.0:  "{}",
		-1.0: "{}",
	}
	for at, want := range queries {
		got, err := im.Timeline.CutsAt(at)
		if err != nil {
			t.Fatalf("CutsAt(%v) failed: %v", at, err)
		}
		if names(im, got) != want {
			t.Errorf("CutsAt(%v) = %s, want %s", at, names(im, got), want)
		}
	}

	idA, ok := reg.Lookup("A")
	if !ok {
		t.Fatal(`Lookup("A") not found`)
	}
	clip, ok := reg.Clips().Clip(idA)
	if !ok || clip.Sample(0) != "A" {
		t.Errorf("clip bound to A samples %v", clip.Sample(0))
	}
	if idB, _ := reg.LookupRef("r3"); idB == idA {
		t.Error("A and B share a clip")
	}
}

func TestImportNestedStartOffsets(t *testing.T) {
	// The parent starts 5s into its source, so the connected clip at
	// source offset 6s sits 1s after the parent's spine offset of 10s.
	doc := strings.Replace(twoLaneXML,
		`<asset-clip ref="r2" offset="0s" name="A" duration="2s">`,
		`<gap name="lead" offset="0s" duration="10s"></gap>
                        <asset-clip ref="r2" offset="10s" name="A" start="5s" duration="2s">`, 1)
	doc = strings.Replace(doc, `lane="1" offset="1s"`, `lane="1" offset="6s" start="1001/24000s"`, 1)

	im, _ := importString(t, doc)
	a := im.Timeline.Track(0).Cut(0)
	if a.In != 5 || a.Out != 7 || a.Inst != 10 {
		t.Errorf("A cut = %+v, want in=5 out=7 inst=10", a)
	}
	b := im.Timeline.Track(1).Cut(0)
	if b.Inst != 11 {
		t.Errorf("B inst = %v, want 11", b.Inst)
	}
	if got := b.LocalTimeAt(11); got != timeline.Time(1001.0/24000) {
		t.Errorf("B local time at 11 = %v, want its start", got)
	}

	got, err := im.Timeline.CutsAt(5)
	if err != nil {
		t.Fatalf("CutsAt failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("gap should not produce cuts, got %s", names(im, got))
	}
}

func TestImportNestedLanesAreRelative(t *testing.T) {
	// C sits one lane above its parent B, which is on lane 1.
	doc := strings.Replace(twoLaneXML,
		`<asset-clip ref="r3" lane="1" offset="1s" name="B" duration="3s"></asset-clip>`,
		`<asset-clip ref="r3" lane="1" offset="1s" name="B" duration="3s">
                                <asset-clip ref="r2" lane="1" offset="2s" name="C" duration="1s"></asset-clip>
                            </asset-clip>`, 1)

	im, _ := importString(t, doc)
	if fmt.Sprint(im.Lanes) != "[0 1 2]" {
		t.Fatalf("Lanes = %v, want [0 1 2]", im.Lanes)
	}
	c := im.Timeline.Track(2).Cut(0)
	if c.Inst != 3 {
		t.Errorf("C inst = %v, want 3", c.Inst)
	}
	got, _ := im.Timeline.CutsAt(3.5)
	if names(im, got) != "{B,C}" {
		t.Errorf("CutsAt(3.5) = %s, want {B,C}", names(im, got))
	}
}

func TestImportGapChildren(t *testing.T) {
	doc := strings.Replace(twoLaneXML,
		`<asset-clip ref="r2" offset="0s" name="A" duration="2s">`,
		`<gap name="hold" offset="0s" duration="2s">`, 1)
	doc = strings.Replace(doc, "</asset-clip>\n                        </asset-clip>", "</asset-clip>\n                        </gap>", 1)

	im, _ := importString(t, doc)
	if fmt.Sprint(im.Lanes) != "[1]" {
		t.Fatalf("Lanes = %v, want [1]", im.Lanes)
	}
	got, _ := im.Timeline.CutsAt(1.5)
	if names(im, got) != "{B}" {
		t.Errorf("CutsAt(1.5) = %s, want {B}", names(im, got))
	}
}

func TestImportErrors(t *testing.T) {
	cases := []struct {
		name    string
		old     string
		new     string
		wantErr error
	}{
		{"unknown ref", `ref="r3"`, `ref="r9"`, nil},
		{"bad lane", `lane="1"`, `lane="top"`, nil},
		{"bad offset", `offset="1s"`, `offset="1"`, nil},
		{"negative duration", `duration="3s"`, `duration="-3s"`, timeline.ErrConstraintViolation},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ml, err := Parse([]byte(strings.Replace(twoLaneXML, tc.old, tc.new, 1)))
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			reg := NewResourceRegistry(ml, timeline.NewClipRegistry(), labelFactory)
			_, err = Import(ml, reg, "")
			if err == nil {
				t.Fatal("Import succeeded, want error")
			}
			if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
				t.Errorf("Import error = %v, want %v", err, tc.wantErr)
			}
		})
	}

	ml, _ := Parse([]byte(twoLaneXML))
	reg := NewResourceRegistry(ml, timeline.NewClipRegistry(), labelFactory)
	if _, err := Import(ml, reg, "missing"); err == nil {
		t.Error("Import of a missing project succeeded")
	}
}

func TestWriteAndImport(t *testing.T) {
	ml := NewDocument("roundtrip")
	reg := NewResourceRegistry(ml, timeline.NewClipRegistry(), labelFactory)
	ids := reg.ReserveIDs(2)
	reg.RegisterAsset(Asset{ID: ids[0], Name: "A", Start: "0s", Duration: "10s"})
	reg.RegisterEffect(Effect{ID: ids[1], Name: "Caption"})

	seq, err := ml.Sequence("")
	if err != nil {
		t.Fatalf("Sequence failed: %v", err)
	}
	seq.Spine.AssetClips = append(seq.Spine.AssetClips, AssetClip{
		Ref:      ids[0],
		Offset:   FormatDuration(2),
		Name:     "A",
		Duration: FormatDuration(3),
		Connected: Connected{
			Titles: []Title{{Ref: ids[1], Lane: "2", Offset: "0s", Name: "Caption", Duration: "1s"}},
		},
	})
	seq.Spine.Gaps = append(seq.Spine.Gaps, Gap{Name: "Gap", Offset: "0s", Duration: FormatDuration(2)})

	path := filepath.Join(t.TempDir(), "roundtrip.fcpxml")
	if err := WriteToFile(ml, path); err != nil {
		t.Fatalf("WriteToFile failed: %v", err)
	}
	parsed, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile failed: %v", err)
	}
	im, err := Import(parsed, NewResourceRegistry(parsed, timeline.NewClipRegistry(), labelFactory), "roundtrip")
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if fmt.Sprint(im.Lanes) != "[0 2]" {
		t.Fatalf("Lanes = %v, want [0 2]", im.Lanes)
	}
	got, _ := im.Timeline.CutsAt(2.5)
	if names(im, got) != "{A,Caption}" {
		t.Errorf("CutsAt(2.5) = %s, want {A,Caption}", names(im, got))
	}
	got, _ = im.Timeline.CutsAt(3.5)
	if names(im, got) != "{A}" {
		t.Errorf("CutsAt(3.5) = %s, want {A}", names(im, got))
	}

	data, err := Marshal(parsed)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	out := string(data)
	if strings.Index(out, "<gap") > strings.Index(out, "<asset-clip") {
		t.Error("spine elements are not written in chronological order")
	}
}

func TestRegistryReserveIDsSkipsExisting(t *testing.T) {
	ml, _ := Parse([]byte(twoLaneXML))
	reg := NewResourceRegistry(ml, timeline.NewClipRegistry(), labelFactory)
	if reg.GetResourceCount() != 3 {
		t.Fatalf("GetResourceCount() = %d, want 3", reg.GetResourceCount())
	}
	ids := reg.ReserveIDs(2)
	if ids[0] != "r4" || ids[1] != "r5" {
		t.Errorf("ReserveIDs(2) = %v, want [r4 r5]", ids)
	}
	if _, err := reg.ClipFor("r1"); err != nil {
		t.Errorf("ClipFor(format) failed: %v", err)
	}
	first, _ := reg.ClipFor("r2")
	second, _ := reg.ClipFor("r2")
	if first != second {
		t.Error("ClipFor created two clips for one resource")
	}
}

func TestRegistryFactoryError(t *testing.T) {
	ml, _ := Parse([]byte(twoLaneXML))
	boom := errors.New("no decoder")
	reg := NewResourceRegistry(ml, timeline.NewClipRegistry(), func(Resource) (timeline.Clip, error) {
		return nil, boom
	})
	if _, err := reg.ClipFor("r2"); !errors.Is(err, boom) {
		t.Errorf("ClipFor error = %v, want %v", err, boom)
	}
	if _, err := Import(ml, reg, ""); !errors.Is(err, boom) {
		t.Errorf("Import error = %v, want %v", err, boom)
	}

	noFactory := NewResourceRegistry(ml, timeline.NewClipRegistry(), nil)
	if _, err := noFactory.ClipFor("r2"); err == nil {
		t.Error("ClipFor without a factory succeeded")
	}
}
