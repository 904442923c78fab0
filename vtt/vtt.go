// Package vtt reads WebVTT subtitle files and lays their cues out as a
// caption track.
package vtt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"crosscut/timeline"
)

// Cue is one timed block of subtitle text.
type Cue struct {
	Start time.Duration
	End   time.Duration
	Text  string
}

var (
	timingRegex = regexp.MustCompile(`^((?:\d+:)?\d{2}:\d{2}\.\d{1,3})\s+-->\s+((?:\d+:)?\d{2}:\d{2}\.\d{1,3})`)
	tagRegex    = regexp.MustCompile(`<[^>]*>`)
)

// ParseTime parses a cue timestamp such as "00:00:02.350" or "01:02.5".
// The hour field is optional.
func ParseTime(s string) (time.Duration, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("invalid time format: %s", s)
	}

	var hours int
	if len(parts) == 3 {
		h, err := strconv.Atoi(parts[0])
		if err != nil {
			return 0, fmt.Errorf("invalid hours in %s: %w", s, err)
		}
		hours = h
		parts = parts[1:]
	}
	minutes, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid minutes in %s: %w", s, err)
	}

	secs, frac, _ := strings.Cut(parts[1], ".")
	seconds, err := strconv.Atoi(secs)
	if err != nil {
		return 0, fmt.Errorf("invalid seconds in %s: %w", s, err)
	}
	// Pad or truncate to milliseconds.
	for len(frac) < 3 {
		frac += "0"
	}
	ms, err := strconv.Atoi(frac[:3])
	if err != nil {
		return 0, fmt.Errorf("invalid milliseconds in %s: %w", s, err)
	}

	return time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second +
		time.Duration(ms)*time.Millisecond, nil
}

// Parse reads cues from r. Inline tags are stripped and multi-line cue
// text is joined with spaces. Cues with no text are dropped.
func Parse(r io.Reader) ([]Cue, error) {
	var cues []Cue
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		m := timingRegex.FindStringSubmatch(strings.TrimSpace(scanner.Text()))
		if m == nil {
			continue
		}
		start, err := ParseTime(m[1])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		end, err := ParseTime(m[2])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		var text []string
		for scanner.Scan() {
			line++
			l := strings.TrimSpace(scanner.Text())
			if l == "" {
				break
			}
			if clean := strings.TrimSpace(tagRegex.ReplaceAllString(l, "")); clean != "" {
				text = append(text, clean)
			}
		}
		if len(text) > 0 {
			cues = append(cues, Cue{Start: start, End: end, Text: strings.Join(text, " ")})
		}
	}
	return cues, scanner.Err()
}

func ParseFile(path string) ([]Cue, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cues, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return cues, nil
}

// Track lays cues out in start order on a new track, one cut per cue,
// each bound to the clip mk returns for it. Overlapping cues stay
// overlapping. Cues that end before they start are reported as
// constraint violations.
func Track(cues []Cue, clips *timeline.ClipRegistry, mk func(Cue) timeline.Clip) (*timeline.Track, error) {
	sorted := make([]Cue, len(cues))
	copy(sorted, cues)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})

	track := timeline.NewTrack()
	for _, c := range sorted {
		length := (c.End - c.Start).Seconds()
		cut, err := timeline.NewCut(0, timeline.Time(length), timeline.Time(c.Start.Seconds()), 0)
		if err != nil {
			return nil, fmt.Errorf("cue %q at %v: %w", c.Text, c.Start, err)
		}
		cut.Clip = clips.Register(mk(c))
		track.AddCut(cut)
	}
	return track, nil
}
