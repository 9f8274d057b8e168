// Package display models what currently owns the secondary screen and the
// presentation collaborator the core drives.
package display

import "fmt"

// Mode is the mutually exclusive owner of the display.
type Mode int

const (
	Panel Mode = iota
	SpotLoop
	LiveCamera
	Slideshow
)

func (m Mode) String() string {
	switch m {
	case Panel:
		return "panel"
	case SpotLoop:
		return "spotloop"
	case LiveCamera:
		return "livecamera"
	case Slideshow:
		return "slideshow"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ProcessMode reports whether m is backed by an external player process.
func (m Mode) ProcessMode() bool { return m == SpotLoop || m == LiveCamera }

// Tracker holds the single current Mode. It is only touched from the event
// loop.
type Tracker struct {
	mode     Mode
	onChange func(from, to Mode)
}

func NewTracker(onChange func(from, to Mode)) *Tracker {
	return &Tracker{onChange: onChange}
}

func (t *Tracker) Mode() Mode { return t.mode }

func (t *Tracker) Is(m Mode) bool { return t.mode == m }

// Set switches to m and reports whether the mode changed.
func (t *Tracker) Set(m Mode) bool {
	if t.mode == m {
		return false
	}
	from := t.mode
	t.mode = m
	if t.onChange != nil {
		t.onChange(from, m)
	}
	return true
}
