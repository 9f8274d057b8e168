// Package supervisor runs the external player that takes over the display for
// spot videos and the live camera. At most one player runs at a time, and never
// while the slideshow owns the display.
package supervisor

import (
	"time"

	"github.com/rs/zerolog"

	"scorepanel/internal/display"
	"scorepanel/internal/eventloop"
	"scorepanel/internal/mediaqueue"
	"scorepanel/internal/metrics"
)

// Slot identifies a player role.
type Slot int

const (
	SpotSlot Slot = iota
	CameraSlot
)

func (s Slot) String() string {
	if s == CameraSlot {
		return "camera"
	}
	return "spot"
}

// DefaultStopTimeout bounds the wait for a terminated player during Cleanup.
const DefaultStopTimeout = 3000 * time.Millisecond

// A spot that exits within RapidExitWindow of its launch counts as a rapid
// exit. Once every spot of the queue exited rapidly in a row, the next launch
// waits RelaunchDelay.
const (
	RapidExitWindow = 1000 * time.Millisecond
	RelaunchDelay   = 2000 * time.Millisecond
	RelaunchTimer   = "supervisor.relaunch"
)

// Listener is told when a player gave the display back.
type Listener interface {
	PlayerClosed(slot Slot)
}

// Config wires a Supervisor.
type Config struct {
	Player string
	// CameraSource, when set, is played in the camera slot by StartLiveCamera.
	// When empty, StartLiveCamera starts the spot loop instead.
	CameraSource string
	SpotDir      string
	Geometry     Geometry
	Launcher     Launcher
	Loop         eventloop.Poster
	Mode         *display.Tracker
	Presenter    display.Presenter
	Listener     Listener
	Logger       zerolog.Logger
	StopTimeout  time.Duration
	// Clock arms the relaunch delay. Without it spots are relaunched at once.
	Clock eventloop.Clock
	// Now defaults to time.Now.
	Now func() time.Time
}

type slotState struct {
	proc   Process
	gen    uint64
	target string
	args   []string
	start  time.Time
	// stop is set when the exit must not start the next spot.
	stop bool
	// silent suppresses the closed notification.
	silent bool
}

// Handle describes a running player.
type Handle struct {
	Slot   Slot
	PID    int
	Path   string
	Args   []string
	Target string
}

// Supervisor must only be used from the event loop.
type Supervisor struct {
	cfg     Config
	log     zerolog.Logger
	scanner mediaqueue.Scanner
	queue   mediaqueue.Queue
	gen     uint64
	slots   [2]slotState
	// rapid counts consecutive rapid spot exits.
	rapid int
	// pending is set while the spot loop waits out RelaunchDelay.
	pending  bool
	relaunch eventloop.Timer
}

func New(cfg Config) *Supervisor {
	if cfg.StopTimeout <= 0 {
		cfg.StopTimeout = DefaultStopTimeout
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	s := &Supervisor{
		cfg:     cfg,
		log:     cfg.Logger.With().Str("component", "supervisor").Logger(),
		scanner: mediaqueue.NewSpotScanner(),
	}
	if cfg.Clock != nil {
		s.relaunch = cfg.Clock.NewTimer(RelaunchTimer, s.onRelaunch)
	}
	return s
}

func (s *Supervisor) SetSpotDir(dir string) { s.cfg.SpotDir = dir }

func (s *Supervisor) SpotDir() string { return s.cfg.SpotDir }

// Busy reports whether any player is running or the spot loop is waiting to
// relaunch.
func (s *Supervisor) Busy() bool {
	return s.pending || s.slots[SpotSlot].proc != nil || s.slots[CameraSlot].proc != nil
}

// Running returns the handle of the player in slot, if any.
func (s *Supervisor) Running(slot Slot) (Handle, bool) {
	st := s.slots[slot]
	if st.proc == nil {
		return Handle{}, false
	}
	return Handle{
		Slot:   slot,
		PID:    st.proc.PID(),
		Path:   s.cfg.Player,
		Args:   append([]string(nil), st.args...),
		Target: st.target,
	}, true
}

// StartSpotLoop plays the spot under the cursor and keeps cycling through the
// spot directory until stopped. It is a no-op while a player runs or while the
// slideshow owns the display.
func (s *Supervisor) StartSpotLoop() error {
	if err := s.checkStart(); err != nil {
		return err
	}
	return s.playNextSpot()
}

// StopSpotLoop terminates the spot player. The slot is released when the exit
// arrives.
func (s *Supervisor) StopSpotLoop() {
	if s.cancelRelaunch() {
		s.restorePanel()
		s.cfg.Listener.PlayerClosed(SpotSlot)
		return
	}
	s.stop(SpotSlot)
}

// StartLiveCamera shows the camera. Without a configured camera source it
// behaves exactly like StartSpotLoop.
func (s *Supervisor) StartLiveCamera() error {
	if s.cfg.CameraSource == "" {
		return s.StartSpotLoop()
	}
	if err := s.checkStart(); err != nil {
		return err
	}
	return s.launch(CameraSlot, s.cfg.CameraSource, display.LiveCamera)
}

// StopLiveCamera terminates the camera player. When no camera is running the
// controller is told the live view is closed and the spot loop is stopped.
func (s *Supervisor) StopLiveCamera() {
	if s.slots[CameraSlot].proc != nil {
		s.stop(CameraSlot)
		return
	}
	s.cfg.Listener.PlayerClosed(CameraSlot)
	s.StopSpotLoop()
}

// TerminateAll stops every player without notifying the controller.
func (s *Supervisor) TerminateAll() {
	if s.cancelRelaunch() {
		s.restorePanel()
	}
	for i := range s.slots {
		st := &s.slots[i]
		if st.proc == nil {
			continue
		}
		st.stop, st.silent = true, true
		if err := st.proc.Terminate(); err != nil {
			s.log.Warn().Err(err).Str("slot", Slot(i).String()).Msg("terminate")
		}
	}
}

// Cleanup terminates every player, waits a bounded time for each to exit,
// kills stragglers and forgets them. Exits arriving afterwards are ignored.
func (s *Supervisor) Cleanup() {
	s.cancelRelaunch()
	for i := range s.slots {
		st := &s.slots[i]
		if st.proc == nil {
			continue
		}
		slot := Slot(i)
		_ = st.proc.Terminate()
		if !st.proc.Wait(s.cfg.StopTimeout) {
			s.log.Warn().Str("slot", slot.String()).Int("pid", st.proc.PID()).Msg("player ignored terminate, killing")
			_ = st.proc.Kill()
			_ = st.proc.Wait(time.Second)
		}
		metrics.ProcessEvent(slot.String(), "cleanup")
		*st = slotState{}
	}
	if s.cfg.Mode.Mode().ProcessMode() {
		s.cfg.Mode.Set(display.Panel)
	}
}

func (s *Supervisor) checkStart() error {
	if s.Busy() {
		return rejectedError{reason: "player already running"}
	}
	if s.cfg.Mode.Is(display.Slideshow) {
		return rejectedError{reason: "slideshow active"}
	}
	return nil
}

func (s *Supervisor) playNextSpot() error {
	q, err := s.queue.Rescan(s.scanner, s.cfg.SpotDir)
	s.queue = q
	if err != nil {
		s.log.Warn().Err(err).Str("dir", s.cfg.SpotDir).Msg("scan spots")
	}
	target, ok := q.Current()
	if !ok {
		s.log.Info().Str("dir", s.cfg.SpotDir).Msg("no spots available")
		s.restorePanel()
		s.cfg.Listener.PlayerClosed(SpotSlot)
		return noMediaError{dir: s.cfg.SpotDir}
	}
	s.queue = q.Advance()
	return s.launch(SpotSlot, target, display.SpotLoop)
}

func (s *Supervisor) launch(slot Slot, target string, mode display.Mode) error {
	args := PlayerArgs(s.cfg.Geometry, target)
	s.gen++
	gen := s.gen
	proc, err := s.cfg.Launcher.Launch(s.cfg.Player, args, func(ex Exit) {
		s.cfg.Loop.Post(func() { s.onExit(slot, gen, ex) })
	})
	if err != nil {
		metrics.ProcessEvent(slot.String(), "launch_failed")
		s.log.Error().Err(err).Str("slot", slot.String()).Str("target", target).Msg("unable to start player")
		s.slots[slot] = slotState{}
		s.restorePanel()
		s.cfg.Listener.PlayerClosed(slot)
		return err
	}
	metrics.ProcessEvent(slot.String(), "launch")
	s.slots[slot] = slotState{proc: proc, gen: gen, target: target, args: args, start: s.cfg.Now()}
	s.log.Info().Str("slot", slot.String()).Str("target", target).Int("pid", proc.PID()).Msg("now playing")
	s.cfg.Mode.Set(mode)
	s.cfg.Presenter.HidePanel()
	return nil
}

func (s *Supervisor) stop(slot Slot) {
	st := &s.slots[slot]
	if st.proc == nil {
		return
	}
	st.stop = true
	if err := st.proc.Terminate(); err != nil {
		s.log.Warn().Err(err).Str("slot", slot.String()).Msg("terminate")
	}
}

func (s *Supervisor) onExit(slot Slot, gen uint64, ex Exit) {
	st := s.slots[slot]
	if st.proc == nil || st.gen != gen {
		return
	}
	metrics.ProcessEvent(slot.String(), "exit_"+ex.Status.String())
	s.log.Debug().Str("slot", slot.String()).Int("code", ex.Code).Str("status", ex.Status.String()).Msg("player exited")
	s.slots[slot] = slotState{}
	if slot == SpotSlot && !st.stop {
		if s.backoff(s.cfg.Now().Sub(st.start)) {
			return
		}
		_ = s.playNextSpot()
		return
	}
	s.restorePanel()
	if !st.silent {
		s.cfg.Listener.PlayerClosed(slot)
	}
}

func (s *Supervisor) restorePanel() {
	if s.cfg.Mode.Mode().ProcessMode() {
		s.cfg.Mode.Set(display.Panel)
	}
	s.cfg.Presenter.ShowPanel()
}

// backoff records a spot exit after lived and reports whether the next launch
// was deferred.
func (s *Supervisor) backoff(lived time.Duration) bool {
	if lived >= RapidExitWindow {
		s.rapid = 0
		return false
	}
	s.rapid++
	if s.relaunch == nil || s.rapid < max(s.queue.Len(), 1) {
		return false
	}
	if s.rapid == max(s.queue.Len(), 1) {
		s.log.Warn().Str("dir", s.cfg.SpotDir).Dur("delay", RelaunchDelay).Msg("every spot exited right after launch, slowing down")
	}
	metrics.ProcessEvent(SpotSlot.String(), "relaunch_delayed")
	s.pending = true
	s.relaunch.Start(RelaunchDelay)
	return true
}

func (s *Supervisor) onRelaunch() {
	s.relaunch.Stop()
	if !s.pending {
		return
	}
	s.pending = false
	_ = s.playNextSpot()
}

// cancelRelaunch drops a deferred launch and reports whether one was pending.
func (s *Supervisor) cancelRelaunch() bool {
	if !s.pending {
		return false
	}
	s.pending = false
	s.rapid = 0
	s.relaunch.Stop()
	return true
}
