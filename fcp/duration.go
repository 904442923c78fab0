package fcp

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Sequence time base: 1001/24000s per frame, about 23.976 fps.
const (
	timeBase      = 24000
	frameDuration = 1001
)

// ParseDuration converts an FCPXML time value ("0s", "5s", "2.5s",
// "1001/24000s") into seconds.
func ParseDuration(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	if !strings.HasSuffix(s, "s") {
		return 0, fmt.Errorf("invalid FCPXML time %q: missing 's' suffix", s)
	}
	body := strings.TrimSuffix(s, "s")

	num, den, rational := strings.Cut(body, "/")
	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid FCPXML time %q: %w", s, err)
	}
	if !rational {
		return n, nil
	}
	d, err := strconv.ParseFloat(den, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid FCPXML time %q: %w", s, err)
	}
	if d == 0 {
		return 0, fmt.Errorf("invalid FCPXML time %q: zero denominator", s)
	}
	return n / d, nil
}

// FormatDuration converts seconds into a frame-aligned FCPXML time on the
// 1001/24000s time base, rounding to the nearest frame.
func FormatDuration(seconds float64) string {
	frames := int64(math.Round(seconds * timeBase / frameDuration))
	if frames == 0 {
		return "0s"
	}
	return fmt.Sprintf("%d/%ds", frames*frameDuration, timeBase)
}
