package display

import (
	"image"
	"testing"
)

func TestMode_String(t *testing.T) {
	cases := map[Mode]string{Panel: "panel", SpotLoop: "spotloop", LiveCamera: "livecamera", Slideshow: "slideshow", Mode(9): "mode(9)"}
	for m, want := range cases {
		if m.String() != want {
			t.Fatalf("%d: got %q want %q", int(m), m.String(), want)
		}
	}
	if !SpotLoop.ProcessMode() || !LiveCamera.ProcessMode() || Slideshow.ProcessMode() || Panel.ProcessMode() {
		t.Fatalf("unexpected ProcessMode classification")
	}
}

func TestTracker(t *testing.T) {
	var changes [][2]Mode
	tr := NewTracker(func(from, to Mode) { changes = append(changes, [2]Mode{from, to}) })
	if !tr.Is(Panel) {
		t.Fatalf("tracker must start in Panel")
	}
	if !tr.Set(Slideshow) || tr.Set(Slideshow) {
		t.Fatalf("expected a single change")
	}
	tr.Set(Panel)
	if len(changes) != 2 || changes[0] != [2]Mode{Panel, Slideshow} || changes[1] != [2]Mode{Slideshow, Panel} {
		t.Fatalf("changes: %v", changes)
	}
}

func TestHeadless(t *testing.T) {
	h := NewHeadless()
	s := h.Snapshot()
	if !s.PanelVisible || s.Language != "Italiano" || s.Labels[MsgScore] != "Punti" {
		t.Fatalf("initial state: %+v", s)
	}
	h.HidePanel()
	h.SetField("score0", "12")
	h.SetLanguage("English")
	h.SetMirrored(true)
	h.ShowFrame(image.NewRGBA(image.Rect(0, 0, 2, 2)))
	h.ShowPanel()

	s = h.Snapshot()
	if !s.PanelVisible || !s.Mirrored || s.Fields["score0"] != "12" || s.Frames != 1 {
		t.Fatalf("state: %+v", s)
	}
	if s.Labels[MsgScore] != "Score" {
		t.Fatalf("labels not switched: %v", s.Labels)
	}
	s.Fields["score0"] = "mutated"
	if h.Snapshot().Fields["score0"] != "12" {
		t.Fatalf("snapshot shares map with presenter")
	}
	if h.Frame() == nil {
		t.Fatalf("frame not kept")
	}
	want := []string{"hide", "language", "mirror", "show"}
	got := h.Calls()
	if len(got) != len(want) {
		t.Fatalf("calls: %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("calls: %v", got)
		}
	}
}

func TestCaption(t *testing.T) {
	if got := Caption("English", MsgNoSlides); got != "No slides to show" {
		t.Fatalf("english: %q", got)
	}
	if got := Caption("Klingon", MsgNoSlides); got != "Nessuna immagine da mostrare" {
		t.Fatalf("fallback: %q", got)
	}
	if Tag("English") == Tag("Italiano") {
		t.Fatalf("tags must differ")
	}
}
