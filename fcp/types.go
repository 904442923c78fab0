// Package fcp reads and writes the subset of FCPXML needed to author a
// timeline: resources, one or more projects, and a spine whose elements
// may carry connected clips on numbered lanes.
//
// Times in FCPXML are rational strings such as "1001/24000s"; use
// ParseDuration and FormatDuration to convert to and from seconds.
package fcp

import (
	"encoding/xml"
	"sort"
)

type FCPXML struct {
	XMLName   xml.Name  `xml:"fcpxml"`
	Version   string    `xml:"version,attr"`
	Resources Resources `xml:"resources"`
	Library   Library   `xml:"library"`
}

// Resources contains all assets, formats, effects, and media definitions.
type Resources struct {
	Assets  []Asset  `xml:"asset,omitempty"`
	Formats []Format `xml:"format"`
	Effects []Effect `xml:"effect,omitempty"`
	Media   []Media  `xml:"media,omitempty"`
}

// Effect represents a Motion or standard FCP title effect referenced by <title ref="…"> elements.
type Effect struct {
	ID   string `xml:"id,attr"`
	Name string `xml:"name,attr"`
	UID  string `xml:"uid,attr,omitempty"`
}

type Format struct {
	ID            string `xml:"id,attr"`
	Name          string `xml:"name,attr,omitempty"`
	FrameDuration string `xml:"frameDuration,attr,omitempty"`
	Width         string `xml:"width,attr,omitempty"`
	Height        string `xml:"height,attr,omitempty"`
	ColorSpace    string `xml:"colorSpace,attr,omitempty"`
}

// Asset represents a media asset (video, audio, image).
type Asset struct {
	ID       string   `xml:"id,attr"`
	Name     string   `xml:"name,attr"`
	UID      string   `xml:"uid,attr,omitempty"`
	Start    string   `xml:"start,attr"`
	HasVideo string   `xml:"hasVideo,attr,omitempty"`
	Format   string   `xml:"format,attr,omitempty"`
	Duration string   `xml:"duration,attr"`
	MediaRep MediaRep `xml:"media-rep"`
}

type MediaRep struct {
	Kind string `xml:"kind,attr"`
	Src  string `xml:"src,attr"`
}

type Media struct {
	ID   string `xml:"id,attr"`
	Name string `xml:"name,attr"`
}

type Library struct {
	Events []Event `xml:"event"`
}

type Event struct {
	Name     string    `xml:"name,attr"`
	Projects []Project `xml:"project"`
}

type Project struct {
	Name      string     `xml:"name,attr"`
	Sequences []Sequence `xml:"sequence"`
}

type Sequence struct {
	Format   string `xml:"format,attr"`
	Duration string `xml:"duration,attr"`
	TCStart  string `xml:"tcStart,attr"`
	TCFormat string `xml:"tcFormat,attr"`
	Spine    Spine  `xml:"spine"`
}

// Spine is the primary storyline of a sequence.
type Spine struct {
	XMLName    xml.Name    `xml:"spine"`
	AssetClips []AssetClip `xml:"asset-clip,omitempty"`
	RefClips   []RefClip   `xml:"ref-clip,omitempty"`
	Videos     []Video     `xml:"video,omitempty"`
	Titles     []Title     `xml:"title,omitempty"`
	Gaps       []Gap       `xml:"gap,omitempty"`
}

// MarshalXML writes spine elements in chronological order regardless of
// their type.
func (s Spine) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	type elementWithOffset struct {
		offset  float64
		element interface{}
	}
	var elements []elementWithOffset
	add := func(offset string, el interface{}) {
		secs, _ := ParseDuration(offset)
		elements = append(elements, elementWithOffset{offset: secs, element: el})
	}
	for _, clip := range s.AssetClips {
		add(clip.Offset, clip)
	}
	for _, clip := range s.RefClips {
		add(clip.Offset, clip)
	}
	for _, video := range s.Videos {
		add(video.Offset, video)
	}
	for _, title := range s.Titles {
		add(title.Offset, title)
	}
	for _, gap := range s.Gaps {
		add(gap.Offset, gap)
	}

	sort.SliceStable(elements, func(i, j int) bool {
		return elements[i].offset < elements[j].offset
	})

	for _, elem := range elements {
		if err := e.Encode(elem.element); err != nil {
			return err
		}
	}
	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// Connected holds the clips attached to a spine element. Their offsets are
// in the parent's source time.
type Connected struct {
	AssetClips []AssetClip `xml:"asset-clip,omitempty"`
	RefClips   []RefClip   `xml:"ref-clip,omitempty"`
	Videos     []Video     `xml:"video,omitempty"`
	Titles     []Title     `xml:"title,omitempty"`
}

type AssetClip struct {
	XMLName  xml.Name `xml:"asset-clip"`
	Ref      string   `xml:"ref,attr"`
	Lane     string   `xml:"lane,attr,omitempty"`
	Offset   string   `xml:"offset,attr"`
	Name     string   `xml:"name,attr"`
	Start    string   `xml:"start,attr,omitempty"`
	Duration string   `xml:"duration,attr"`
	Format   string   `xml:"format,attr,omitempty"`
	TCFormat string   `xml:"tcFormat,attr,omitempty"`
	Connected
}

type RefClip struct {
	XMLName  xml.Name `xml:"ref-clip"`
	Ref      string   `xml:"ref,attr"`
	Lane     string   `xml:"lane,attr,omitempty"`
	Offset   string   `xml:"offset,attr"`
	Name     string   `xml:"name,attr"`
	Start    string   `xml:"start,attr,omitempty"`
	Duration string   `xml:"duration,attr"`
	Connected
}

// Video represents a video element (shapes, colors, stills).
type Video struct {
	XMLName  xml.Name `xml:"video"`
	Ref      string   `xml:"ref,attr"`
	Lane     string   `xml:"lane,attr,omitempty"`
	Offset   string   `xml:"offset,attr"`
	Name     string   `xml:"name,attr"`
	Start    string   `xml:"start,attr,omitempty"`
	Duration string   `xml:"duration,attr"`
	Connected
}

type Title struct {
	XMLName  xml.Name `xml:"title"`
	Ref      string   `xml:"ref,attr"`
	Lane     string   `xml:"lane,attr,omitempty"`
	Offset   string   `xml:"offset,attr"`
	Name     string   `xml:"name,attr"`
	Start    string   `xml:"start,attr,omitempty"`
	Duration string   `xml:"duration,attr"`
}

// Gap is an empty stretch of the spine. It produces no cut, but clips
// connected to it do.
type Gap struct {
	XMLName  xml.Name `xml:"gap"`
	Name     string   `xml:"name,attr"`
	Offset   string   `xml:"offset,attr"`
	Start    string   `xml:"start,attr,omitempty"`
	Duration string   `xml:"duration,attr"`
	Connected
}
