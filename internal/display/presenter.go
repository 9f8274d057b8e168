package display

import (
	"image"
	"sync"
)

// Presenter is the opaque rendering side of the panel. Implementations draw the
// scoreboard, raise or lower the panel window and show slideshow frames.
type Presenter interface {
	// ShowPanel restores the panel full-screen.
	ShowPanel()
	// HidePanel lowers the panel so an external player can take the screen.
	HidePanel()
	SetMirrored(mirrored bool)
	SetLanguage(lang string)
	// SetField forwards a scoreboard field. Values are already clamped.
	SetField(name, value string)
	ShowFrame(frame image.Image)
}

// State is a copy of what a Headless presenter currently shows.
type State struct {
	PanelVisible bool
	Mirrored     bool
	Language     string
	Fields       map[string]string
	Labels       map[string]string
	Frames       int
}

// Headless is a Presenter without a window. It keeps the latest values and
// frame so they can be inspected over the status API and in tests.
type Headless struct {
	mu    sync.Mutex
	state State
	frame image.Image
	calls []string
}

func NewHeadless() *Headless {
	h := &Headless{state: State{PanelVisible: true, Fields: map[string]string{}}}
	h.state.Language = LanguageName(Tag(""))
	h.state.Labels = Labels(h.state.Language)
	return h
}

func (h *Headless) ShowPanel() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.state.PanelVisible = true
	h.calls = append(h.calls, "show")
}

func (h *Headless) HidePanel() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.state.PanelVisible = false
	h.calls = append(h.calls, "hide")
}

func (h *Headless) SetMirrored(mirrored bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.state.Mirrored = mirrored
	h.calls = append(h.calls, "mirror")
}

func (h *Headless) SetLanguage(lang string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.state.Language = lang
	h.state.Labels = Labels(lang)
	h.calls = append(h.calls, "language")
}

func (h *Headless) SetField(name, value string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.state.Fields[name] = value
}

func (h *Headless) ShowFrame(frame image.Image) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.frame = frame
	h.state.Frames++
}

// Snapshot returns a deep copy of the current state.
func (h *Headless) Snapshot() State {
	h.mu.Lock()
	defer h.mu.Unlock()
	s := h.state
	s.Fields = make(map[string]string, len(h.state.Fields))
	for k, v := range h.state.Fields {
		s.Fields[k] = v
	}
	s.Labels = make(map[string]string, len(h.state.Labels))
	for k, v := range h.state.Labels {
		s.Labels[k] = v
	}
	return s
}

// Frame returns the last frame shown, or nil.
func (h *Headless) Frame() image.Image {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.frame
}

// Calls lists the visibility, mirror and language calls in order.
func (h *Headless) Calls() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.calls...)
}
