package concat

import (
	"fmt"
	"strings"

	"ffkit/internal/media/ffprobe"
)

// MaxDimensions returns the largest width and the largest height across dims.
// The two maxima may come from different inputs.
func MaxDimensions(dims []ffprobe.Dimensions) ffprobe.Dimensions {
	var target ffprobe.Dimensions
	for _, d := range dims {
		target.Width = max(target.Width, d.Width)
		target.Height = max(target.Height, d.Height)
	}
	return target
}

// BuildFiltergraph renders the scale/pad/concat graph for n inputs onto a
// target frame. The final video pad is labelled [outv].
func BuildFiltergraph(n int, target ffprobe.Dimensions) string {
	var b strings.Builder
	w, h := target.Width, target.Height
	for i := range n {
		fmt.Fprintf(&b, "[%d:v]scale=%d:%d:force_original_aspect_ratio=decrease,pad=%d:%d:(ow-iw)/2:(oh-ih)/2,setsar=1[v%d];", i, w, h, w, h, i)
	}
	for i := range n {
		fmt.Fprintf(&b, "[v%d]", i)
	}
	fmt.Fprintf(&b, "concat=n=%d:v=1[%s]", n, OutputLabel)
	return b.String()
}
