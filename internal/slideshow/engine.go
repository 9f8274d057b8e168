// Package slideshow cycles through the images of a directory with timed
// transitions, producing one composited frame per tick for the presenter.
package slideshow

import (
	"image"
	"time"

	"github.com/rs/zerolog"

	"scorepanel/internal/display"
	"scorepanel/internal/eventloop"
	"scorepanel/internal/mediaqueue"
	"scorepanel/internal/metrics"
)

// Timing of a slide cycle.
const (
	SteadyPeriod       = 5000 * time.Millisecond
	TransitionDuration = 3000 * time.Millisecond
	Granularity        = 30
)

// Timer names registered with the clock.
const (
	SteadyTimer     = "slideshow.steady"
	TransitionTimer = "slideshow.transition"
)

// Config wires an Engine.
type Config struct {
	Dir        string
	Transition Transition
	Size       image.Point
	Clock      eventloop.Clock
	Presenter  display.Presenter
	Logger     zerolog.Logger
	// Language returns the current UI language for the placeholder caption.
	Language func() string
	// Decode loads an image file; defaults to LoadImage.
	Decode func(path string) (image.Image, error)
}

// slide is a decoded image and its copy fitted to the viewport.
type slide struct {
	path string
	src  image.Image
	buf  *image.RGBA
}

// Engine must only be used from the event loop.
type Engine struct {
	cfg        Config
	log        zerolog.Logger
	scanner    mediaqueue.Scanner
	queue      mediaqueue.Queue
	running    bool
	present    *slide
	next       *slide
	step       int
	frame      *image.RGBA
	steady     eventloop.Timer
	transition eventloop.Timer
}

func New(cfg Config) *Engine {
	if cfg.Decode == nil {
		cfg.Decode = LoadImage
	}
	if cfg.Language == nil {
		cfg.Language = func() string { return "" }
	}
	e := &Engine{
		cfg:     cfg,
		log:     cfg.Logger.With().Str("component", "slideshow").Logger(),
		scanner: mediaqueue.NewSlideScanner(),
	}
	e.steady = cfg.Clock.NewTimer(SteadyTimer, e.onSteady)
	e.transition = cfg.Clock.NewTimer(TransitionTimer, e.onTransition)
	return e
}

// SetDir switches the slide directory. Changing it drops the loaded slides and
// restarts from the first file; a running slideshow abandons any transition
// in progress and shows the new directory at once.
func (e *Engine) SetDir(dir string) {
	if dir == e.cfg.Dir {
		return
	}
	e.cfg.Dir = dir
	e.queue = mediaqueue.Queue{}
	e.present, e.next = nil, nil
	if !e.running {
		e.step = 0
		return
	}
	e.Stop()
	e.Start()
}

func (e *Engine) Dir() string { return e.cfg.Dir }

func (e *Engine) Running() bool { return e.running }

// Step is the current transition step, 0 between transitions.
func (e *Engine) Step() int { return e.step }

// NextOpacity is the coverage of the incoming slide in the current frame.
func (e *Engine) NextOpacity() float64 { return float64(e.step) / float64(Granularity) }

// Frame returns the last composited frame, or nil.
func (e *Engine) Frame() image.Image {
	if e.frame == nil {
		return nil
	}
	return e.frame
}

// Slides returns the paths of the loaded present and next slides.
func (e *Engine) Slides() (present, next string) {
	if e.present != nil {
		present = e.present.path
	}
	if e.next != nil {
		next = e.next.path
	}
	return present, next
}

// Start begins the slideshow. With an empty directory it keeps polling on the
// steady period and shows a placeholder.
func (e *Engine) Start() {
	if e.running {
		return
	}
	e.running = true
	e.rescan()
	if e.queue.Empty() {
		e.showPlaceholder()
		e.steady.Start(SteadyPeriod)
		return
	}
	if e.present == nil {
		e.loadInitial()
	}
	e.render()
	e.steady.Start(SteadyPeriod)
}

// Stop halts both timers. Loaded slides are kept so a later Start resumes.
func (e *Engine) Stop() {
	e.steady.Stop()
	e.transition.Stop()
	e.step = 0
	e.running = false
}

// Pause is Stop.
func (e *Engine) Pause() { e.Stop() }

// Resize refits both slides and redraws the current frame at the new size.
func (e *Engine) Resize(size image.Point) {
	if size == e.cfg.Size {
		return
	}
	e.cfg.Size = size
	if e.present == nil || e.next == nil {
		if e.running {
			e.showPlaceholder()
		}
		return
	}
	e.present.buf = fit(e.present.src, size)
	e.next.buf = fit(e.next.src, size)
	e.render()
}

func (e *Engine) onSteady() {
	e.rescan()
	if e.queue.Empty() {
		if e.present == nil {
			e.showPlaceholder()
		}
		return
	}
	if e.present == nil {
		e.loadInitial()
		e.render()
	}
	switch e.cfg.Transition {
	case Abrupt:
		e.step = 0
		e.commit()
		metrics.SlideTransition(Abrupt.String())
	default:
		e.steady.Stop()
		e.step = 0
		e.transition.Start(TransitionDuration / Granularity)
	}
}

func (e *Engine) onTransition() {
	if e.present == nil || e.next == nil {
		// nothing to blend; go back to polling
		e.transition.Stop()
		e.step = 0
		e.steady.Start(SteadyPeriod)
		return
	}
	e.step++
	if e.step > Granularity {
		e.transition.Stop()
		e.step = 0
		e.commit()
		metrics.SlideTransition(e.cfg.Transition.String())
		e.steady.Start(SteadyPeriod)
		return
	}
	e.render()
}

// commit makes the incoming slide current and loads the one after it. When the
// directory emptied meanwhile the new slide stays on screen and nothing is
// loaded.
func (e *Engine) commit() {
	e.present = e.next
	e.rescan()
	if e.queue.Empty() {
		e.render()
		return
	}
	e.queue = e.queue.Advance()
	path, _ := e.queue.Current()
	e.next = e.load(path)
	e.render()
}

func (e *Engine) loadInitial() {
	path, _ := e.queue.Current()
	e.present = e.load(path)
	e.queue = e.queue.Advance()
	path, _ = e.queue.Current()
	e.next = e.load(path)
}

func (e *Engine) load(path string) *slide {
	img, err := e.cfg.Decode(path)
	if err != nil {
		e.log.Warn().Err(err).Str("path", path).Msg("unable to load slide")
		img = nil
	}
	return &slide{path: path, src: img, buf: fit(img, e.cfg.Size)}
}

func (e *Engine) rescan() {
	q, err := e.queue.Rescan(e.scanner, e.cfg.Dir)
	if err != nil {
		e.log.Debug().Err(err).Str("dir", e.cfg.Dir).Msg("scan slides")
	}
	e.queue = q
}

// render composes the frame for the current step and hands it to the
// presenter. Every call allocates a fresh frame so a presenter may keep it.
func (e *Engine) render() {
	frame := image.NewRGBA(image.Rectangle{Max: e.cfg.Size})
	present, next := e.present.buf, e.next.buf
	switch e.cfg.Transition {
	case Fade:
		composeFade(frame, present, next, e.step, Granularity)
	case FromLeft:
		composeFromLeft(frame, present, next, e.step, Granularity)
	case Abrupt:
		composeFromLeft(frame, present, next, 0, Granularity)
	}
	e.show(frame)
}

func (e *Engine) showPlaceholder() {
	e.show(Placeholder(e.cfg.Size, display.Caption(e.cfg.Language(), display.MsgNoSlides)))
}

func (e *Engine) show(frame *image.RGBA) {
	e.frame = frame
	e.cfg.Presenter.ShowFrame(frame)
}
