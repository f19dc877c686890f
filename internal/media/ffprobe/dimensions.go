package ffprobe

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Dimensions is a width/height pair in pixels.
type Dimensions struct {
	Width  int
	Height int
}

func (d Dimensions) String() string {
	return fmt.Sprintf("%dx%d", d.Width, d.Height)
}

// ParseDimensions parses ffprobe's compact "WxH" output. Only the first
// non-empty line is considered.
func ParseDimensions(output string) (Dimensions, error) {
	line := ""
	for candidate := range strings.Lines(output) {
		if trimmed := strings.TrimSpace(candidate); trimmed != "" {
			line = trimmed
			break
		}
	}
	if line == "" {
		return Dimensions{}, errors.New("empty dimension output")
	}
	width, height, ok := strings.Cut(line, "x")
	if !ok {
		return Dimensions{}, fmt.Errorf("malformed dimension output %q", line)
	}
	w, err := strconv.Atoi(strings.TrimSpace(width))
	if err != nil {
		return Dimensions{}, fmt.Errorf("parse width %q: %w", width, err)
	}
	// Some containers append a trailing separator after the height.
	h, err := strconv.Atoi(strings.TrimRight(strings.TrimSpace(height), "x"))
	if err != nil {
		return Dimensions{}, fmt.Errorf("parse height %q: %w", height, err)
	}
	if w < 0 || h < 0 {
		return Dimensions{}, fmt.Errorf("negative dimensions %q", line)
	}
	return Dimensions{Width: w, Height: h}, nil
}
