package fcp

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const documentVersion = "1.13"

// NewDocument returns an FCPXML document with one 720p format and an empty
// project sequence.
func NewDocument(project string) *FCPXML {
	return &FCPXML{
		Version: documentVersion,
		Resources: Resources{
			Formats: []Format{
				{
					ID:            "r1",
					Name:          "FFVideoFormat720p2398",
					FrameDuration: fmt.Sprintf("%d/%ds", frameDuration, timeBase),
					Width:         "1280",
					Height:        "720",
					ColorSpace:    "1-1-1 (Rec. 709)",
				},
			},
		},
		Library: Library{
			Events: []Event{
				{
					Name: project,
					Projects: []Project{
						{
							Name: project,
							Sequences: []Sequence{
								{
									Format:   "r1",
									Duration: "0s",
									TCStart:  "0s",
									TCFormat: "NDF",
								},
							},
						},
					},
				},
			},
		},
	}
}

// Sequence returns the first sequence of the named project, or of the
// first project when name is empty.
func (ml *FCPXML) Sequence(name string) (*Sequence, error) {
	for ei := range ml.Library.Events {
		event := &ml.Library.Events[ei]
		for pi := range event.Projects {
			project := &event.Projects[pi]
			if name != "" && project.Name != name {
				continue
			}
			if len(project.Sequences) == 0 {
				return nil, fmt.Errorf("no sequence found in project %q", project.Name)
			}
			return &project.Sequences[0], nil
		}
	}
	if name != "" {
		return nil, fmt.Errorf("project %q not found", name)
	}
	return nil, fmt.Errorf("no project found in FCPXML")
}

// Parse decodes an FCPXML document.
func Parse(data []byte) (*FCPXML, error) {
	var ml FCPXML
	if err := xml.Unmarshal(data, &ml); err != nil {
		return nil, fmt.Errorf("failed to parse XML: %w", err)
	}
	return &ml, nil
}

// ParseFile reads and decodes an FCPXML file.
func ParseFile(path string) (*FCPXML, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return Parse(data)
}

// Marshal encodes the document with the XML header and FCPXML doctype.
func Marshal(ml *FCPXML) ([]byte, error) {
	output, err := xml.MarshalIndent(ml, "", "    ")
	if err != nil {
		return nil, err
	}
	content := xml.Header + "<!DOCTYPE fcpxml>\n\n" + string(output)
	return []byte(content), nil
}

// WriteToFile writes the document to path.
func WriteToFile(ml *FCPXML, path string) error {
	data, err := Marshal(ml)
	if err != nil {
		return fmt.Errorf("failed to marshal FCPXML: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// GenerateUID derives a stable asset UID from a file name. Only the base
// name is hashed so the same media keeps its UID across directories.
func GenerateUID(path string) string {
	sum := md5.Sum([]byte("crosscut_asset_" + filepath.Base(path)))
	h := strings.ToUpper(hex.EncodeToString(sum[:]))
	return fmt.Sprintf("%s-%s-%s-%s-%s", h[0:8], h[8:12], h[12:16], h[16:20], h[20:32])
}
