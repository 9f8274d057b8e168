package supervisor

import "strconv"

// Geometry is the rectangle of the secondary display.
type Geometry struct {
	X, Y, Width, Height int
}

// PlayerArgs builds the player command line: borderless, no subtitles, exit at
// end of stream, full screen on the given geometry, target last.
func PlayerArgs(g Geometry, target string) []string {
	return []string{
		"-noborder",
		"-sn",
		"-autoexit",
		"-fs",
		"-left", strconv.Itoa(g.X),
		"-top", strconv.Itoa(g.Y),
		"-x", strconv.Itoa(g.Width),
		"-y", strconv.Itoa(g.Height),
		target,
	}
}
