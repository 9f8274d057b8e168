// Package dispatch applies controller commands to the panel: it decodes every
// recognised token of an inbound frame and drives the link, the player
// supervisor, the slideshow, the settings and the presenter accordingly.
package dispatch

import (
	"os/exec"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"scorepanel/internal/display"
	"scorepanel/internal/metrics"
	"scorepanel/internal/protocol"
	"scorepanel/internal/settings"
	"scorepanel/internal/supervisor"
)

// Link is the outbound side of the controller connection.
type Link interface {
	Send(text string) error
	Disconnect()
}

// Players is the external player supervisor.
type Players interface {
	StartSpotLoop() error
	StopSpotLoop()
	StartLiveCamera() error
	StopLiveCamera()
	SetSpotDir(dir string)
	Busy() bool
	TerminateAll()
	Cleanup()
}

// Slides is the slideshow engine.
type Slides interface {
	Start()
	Stop()
	SetDir(dir string)
	Running() bool
}

// Exit codes handed to Config.Exit.
const (
	ExitKilled      = 0
	ExitPanelClosed = 1
)

// Config wires a Dispatcher.
type Config struct {
	Link      Link
	Players   Players
	Slides    Slides
	Mode      *display.Tracker
	Presenter display.Presenter
	Store     settings.Store
	Settings  settings.PanelSettings
	SlideDir  string
	// HaltCommand is run after a kill teardown when non-empty.
	HaltCommand string
	RunHalt     func(cmd string) error
	// Exit is called once, after teardown, to end the host process.
	Exit   func(code int)
	Logger zerolog.Logger
}

// Dispatcher must only be used from the event loop.
type Dispatcher struct {
	cfg      Config
	log      zerolog.Logger
	settings settings.PanelSettings
	slideDir string
	done     bool
}

func New(cfg Config) *Dispatcher {
	if cfg.RunHalt == nil {
		cfg.RunHalt = runCommand
	}
	if cfg.Exit == nil {
		cfg.Exit = func(int) {}
	}
	d := &Dispatcher{
		cfg:      cfg,
		log:      cfg.Logger.With().Str("component", "dispatch").Logger(),
		settings: cfg.Settings,
		slideDir: cfg.SlideDir,
	}
	d.settings.Language = settings.NormalizeLanguage(d.settings.Language)
	return d
}

// Settings returns the current session settings.
func (d *Dispatcher) Settings() settings.PanelSettings { return d.settings }

func (d *Dispatcher) SlideDir() string { return d.slideDir }

// ApplySettings pushes the session settings to the presenter. Called once at
// startup.
func (d *Dispatcher) ApplySettings() {
	d.cfg.Presenter.SetMirrored(d.settings.Mirrored)
	d.cfg.Presenter.SetLanguage(d.settings.Language)
	d.save()
}

// HandleMessage applies one inbound frame. Each recognised token takes effect
// independently; unknown tokens are ignored.
func (d *Dispatcher) HandleMessage(msg string) {
	if d.done {
		return
	}
	d.applyFields(msg)

	if v, ok := protocol.Parse(msg, protocol.TokenKill); ok {
		if protocol.ParseInt(v, 0, 1, 0) == 1 {
			metrics.Token(protocol.TokenKill, "applied")
			d.kill()
			return
		}
		metrics.Token(protocol.TokenKill, "dropped")
	}

	if v, ok := protocol.Parse(msg, protocol.TokenSpotDir); ok {
		d.cfg.Players.SetSpotDir(v)
		metrics.Token(protocol.TokenSpotDir, "applied")
	}
	if has(msg, protocol.TokenSpotLoop) {
		d.startPlayer(protocol.TokenSpotLoop, d.cfg.Players.StartSpotLoop)
	}
	if has(msg, protocol.TokenEndSpotLoop) {
		d.cfg.Players.StopSpotLoop()
		metrics.Token(protocol.TokenEndSpotLoop, "applied")
	}
	if v, ok := protocol.Parse(msg, protocol.TokenSlideDir); ok {
		d.slideDir = v
		metrics.Token(protocol.TokenSlideDir, "applied")
	}
	if has(msg, protocol.TokenSlideshow) {
		d.startSlideshow()
	}
	if has(msg, protocol.TokenEndSlideshow) {
		d.stopSlideshow()
		metrics.Token(protocol.TokenEndSlideshow, "applied")
	}
	if has(msg, protocol.TokenLive) {
		d.startPlayer(protocol.TokenLive, d.cfg.Players.StartLiveCamera)
	}
	if has(msg, protocol.TokenEndLive) {
		d.cfg.Players.StopLiveCamera()
		metrics.Token(protocol.TokenEndLive, "applied")
	}
	// camera pan/tilt are part of the protocol but there is no camera head
	for _, tok := range []string{protocol.TokenPan, protocol.TokenTilt, protocol.TokenGetPanTilt} {
		if has(msg, tok) {
			metrics.Token(tok, "dropped")
		}
	}

	if has(msg, protocol.TokenGetOrientation) {
		d.send(protocol.Orientation(d.settings.Mirrored))
		metrics.Token(protocol.TokenGetOrientation, "applied")
	}
	if v, ok := protocol.Parse(msg, protocol.TokenSetOrientation); ok {
		d.setOrientation(v)
	}
	if has(msg, protocol.TokenGetScoreOnly) {
		d.send(protocol.ScoreOnly(d.settings.ScoreOnly))
		metrics.Token(protocol.TokenGetScoreOnly, "applied")
	}
	if v, ok := protocol.Parse(msg, protocol.TokenSetScoreOnly); ok {
		d.setScoreOnly(v)
	}
	if v, ok := protocol.Parse(msg, protocol.TokenLanguage); ok {
		d.settings.Language = settings.NormalizeLanguage(v)
		d.cfg.Presenter.SetLanguage(d.settings.Language)
		d.save()
		d.log.Info().Str("language", d.settings.Language).Msg("new language")
		metrics.Token(protocol.TokenLanguage, "applied")
	}
}

// PanelClosed is called by the link when the controller stopped answering.
func (d *Dispatcher) PanelClosed() {
	if d.done {
		return
	}
	d.log.Error().Msg("controller lost, closing panel")
	d.teardown()
	d.cfg.Exit(ExitPanelClosed)
}

// PlayerClosed tells the controller a player gave the display back.
func (d *Dispatcher) PlayerClosed(slot supervisor.Slot) {
	if slot == supervisor.CameraSlot {
		d.send(protocol.ClosedLive())
		return
	}
	d.send(protocol.ClosedSpot())
}

// Shutdown tears everything down without exiting. Used on signals.
func (d *Dispatcher) Shutdown() {
	if d.done {
		return
	}
	d.teardown()
	d.cfg.Link.Disconnect()
}

func (d *Dispatcher) kill() {
	d.log.Warn().Msg("kill requested")
	d.teardown()
	d.cfg.Link.Disconnect()
	if d.cfg.HaltCommand != "" {
		if err := d.cfg.RunHalt(d.cfg.HaltCommand); err != nil {
			d.log.Error().Err(err).Str("cmd", d.cfg.HaltCommand).Msg("halt")
		}
	}
	d.cfg.Exit(ExitKilled)
}

func (d *Dispatcher) teardown() {
	d.done = true
	d.cfg.Slides.Stop()
	d.cfg.Players.Cleanup()
	d.cfg.Mode.Set(display.Panel)
	d.save()
}

func (d *Dispatcher) startPlayer(token string, start func() error) {
	if d.settings.ScoreOnly {
		metrics.Token(token, "dropped")
		return
	}
	if err := start(); err != nil {
		if supervisor.IsRejected(err) {
			metrics.Token(token, "dropped")
		} else {
			metrics.Token(token, "failed")
		}
		d.log.Info().Err(err).Str("token", token).Msg("player not started")
		return
	}
	metrics.Token(token, "applied")
}

func (d *Dispatcher) startSlideshow() {
	if d.settings.ScoreOnly || d.cfg.Players.Busy() || d.cfg.Mode.Mode().ProcessMode() {
		metrics.Token(protocol.TokenSlideshow, "dropped")
		return
	}
	d.cfg.Slides.SetDir(d.slideDir)
	d.cfg.Mode.Set(display.Slideshow)
	d.cfg.Presenter.HidePanel()
	d.cfg.Slides.Start()
	metrics.Token(protocol.TokenSlideshow, "applied")
}

func (d *Dispatcher) stopSlideshow() {
	d.cfg.Slides.Stop()
	if d.cfg.Mode.Is(display.Slideshow) {
		d.cfg.Mode.Set(display.Panel)
	}
	if !d.cfg.Mode.Mode().ProcessMode() {
		d.cfg.Presenter.ShowPanel()
	}
}

func (d *Dispatcher) setOrientation(v string) {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		d.log.Warn().Str("value", v).Msg("illegal orientation value")
		metrics.Token(protocol.TokenSetOrientation, "invalid")
		return
	}
	d.settings.Mirrored = n == protocol.OrientationReflected
	d.cfg.Presenter.SetMirrored(d.settings.Mirrored)
	d.save()
	metrics.Token(protocol.TokenSetOrientation, "applied")
}

func (d *Dispatcher) setScoreOnly(v string) {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		d.log.Warn().Str("value", v).Msg("illegal score only value")
		metrics.Token(protocol.TokenSetScoreOnly, "invalid")
		return
	}
	d.settings.ScoreOnly = n != 0
	if d.settings.ScoreOnly {
		d.stopSlideshow()
		d.cfg.Players.TerminateAll()
	}
	d.save()
	metrics.Token(protocol.TokenSetScoreOnly, "applied")
}

// SaveSettings persists the session settings.
func (d *Dispatcher) SaveSettings() { d.save() }

func (d *Dispatcher) send(text string) {
	// failures are logged and counted by the link
	_ = d.cfg.Link.Send(text)
}

func (d *Dispatcher) save() {
	if d.cfg.Store == nil {
		return
	}
	if err := settings.Save(d.cfg.Store, d.settings); err != nil {
		d.log.Error().Err(err).Msg("save settings")
	}
}

func has(msg, token string) bool {
	_, ok := protocol.Parse(msg, token)
	return ok
}

func runCommand(cmd string) error {
	f := strings.Fields(cmd)
	if len(f) == 0 {
		return nil
	}
	return exec.Command(f[0], f[1:]...).Run()
}
