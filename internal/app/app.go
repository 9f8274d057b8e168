// Package app assembles the panel: one event loop owning the link, the player
// supervisor, the slideshow and the command dispatcher, plus the optional
// status API.
package app

import (
	"context"
	"errors"
	"image"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"scorepanel/internal/config"
	"scorepanel/internal/dispatch"
	"scorepanel/internal/display"
	"scorepanel/internal/eventloop"
	"scorepanel/internal/httpapi"
	"scorepanel/internal/link"
	"scorepanel/internal/metrics"
	"scorepanel/internal/settings"
	"scorepanel/internal/slideshow"
	"scorepanel/internal/supervisor"
	"scorepanel/pkg/types"
)

var modeNames = []string{
	display.Panel.String(),
	display.SpotLoop.String(),
	display.LiveCamera.String(),
	display.Slideshow.String(),
}

// Options wires an App. Nil collaborators get production defaults.
type Options struct {
	Config    config.Config
	Logger    zerolog.Logger
	Transport link.Transport
	Launcher  supervisor.Launcher
	// Store defaults to a bbolt file at Config.SettingsDB, or memory when
	// that is empty.
	Store     settings.Store
	Presenter *display.Headless
	// HeartbeatPeriod overrides the random heartbeat, for tests.
	HeartbeatPeriod func() time.Duration
}

type App struct {
	cfg        config.Config
	log        zerolog.Logger
	loop       *eventloop.Loop
	store      settings.Store
	presenter  *display.Headless
	mode       *display.Tracker
	link       *link.Manager
	players    *supervisor.Supervisor
	slides     *slideshow.Engine
	dispatcher *dispatch.Dispatcher
	transition slideshow.Transition
	linkState  atomic.Int32
	exit       chan int
	started    time.Time
}

func New(opts Options) (*App, error) {
	cfg := opts.Config
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	transition, err := slideshow.ParseTransition(cfg.Slideshow.Transition)
	if err != nil {
		return nil, err
	}
	a := &App{
		cfg:        cfg,
		log:        opts.Logger,
		loop:       eventloop.New(),
		presenter:  opts.Presenter,
		transition: transition,
		exit:       make(chan int, 1),
		started:    time.Now(),
	}
	if a.presenter == nil {
		a.presenter = display.NewHeadless()
	}
	a.store = opts.Store
	if a.store == nil {
		if a.store, err = openStore(cfg.SettingsDB); err != nil {
			return nil, err
		}
	}
	initial, err := settings.Load(a.store)
	if err != nil {
		a.log.Warn().Err(err).Msg("load settings, using defaults")
		initial = settings.Default()
	}

	transport := opts.Transport
	if transport == nil {
		transport = link.NewWebSocketTransport(a.log)
	}
	launcher := opts.Launcher
	if launcher == nil {
		launcher = supervisor.ExecLauncher{}
	}

	a.mode = display.NewTracker(a.onModeChange)
	metrics.SetDisplayMode(display.Panel.String(), modeNames)

	a.slides = slideshow.New(slideshow.Config{
		Dir:        cfg.SlideDir,
		Transition: transition,
		Size:       image.Pt(cfg.Display.Width, cfg.Display.Height),
		Clock:      a.loop,
		Presenter:  a.presenter,
		Logger:     a.log,
		Language:   func() string { return a.dispatcher.Settings().Language },
	})
	a.players = supervisor.New(supervisor.Config{
		Player:       cfg.Player,
		CameraSource: cfg.CameraSource,
		SpotDir:      cfg.SpotDir,
		Geometry: supervisor.Geometry{
			X: cfg.Display.X, Y: cfg.Display.Y,
			Width: cfg.Display.Width, Height: cfg.Display.Height,
		},
		Launcher:  launcher,
		Loop:      a.loop,
		Mode:      a.mode,
		Presenter: a.presenter,
		Listener:  playerListener{a},
		Logger:    a.log,
		Clock:     a.loop,
	})
	a.link = link.NewManager(link.Config{
		URL:             cfg.ServerURL,
		Host:            cfg.Hostname,
		Transport:       transport,
		Loop:            a.loop,
		Clock:           a.loop,
		Listener:        linkListener{a},
		Logger:          a.log,
		HeartbeatPeriod: opts.HeartbeatPeriod,
		OnState:         func(s link.State) { a.linkState.Store(int32(s)) },
	})
	a.dispatcher = dispatch.New(dispatch.Config{
		Link:        a.link,
		Players:     a.players,
		Slides:      a.slides,
		Mode:        a.mode,
		Presenter:   a.presenter,
		Store:       a.store,
		Settings:    initial,
		SlideDir:    cfg.SlideDir,
		HaltCommand: cfg.HaltCommand,
		Exit:        a.requestExit,
		Logger:      a.log,
	})
	return a, nil
}

func openStore(path string) (settings.Store, error) {
	if path == "" {
		return settings.NewMemoryStore(), nil
	}
	return settings.NewBoltStore(path)
}

// playerListener and linkListener forward to the dispatcher, which is built
// after the components that call back into it.
type playerListener struct{ a *App }

func (l playerListener) PlayerClosed(slot supervisor.Slot) { l.a.dispatcher.PlayerClosed(slot) }

type linkListener struct{ a *App }

func (l linkListener) HandleMessage(text string) { l.a.dispatcher.HandleMessage(text) }
func (l linkListener) PanelClosed()              { l.a.dispatcher.PanelClosed() }

func (a *App) onModeChange(from, to display.Mode) {
	a.log.Info().Str("from", from.String()).Str("to", to.String()).Msg("display mode")
	metrics.SetDisplayMode(to.String(), modeNames)
	if a.dispatcher != nil {
		a.dispatcher.SaveSettings()
	}
}

func (a *App) requestExit(code int) {
	select {
	case a.exit <- code:
	default:
	}
}

// Run starts the loop, the link and the status API, and blocks until the
// controller ends the session or ctx is canceled. It returns the process exit
// code.
func (a *App) Run(ctx context.Context) (int, error) {
	loopCtx, stopLoop := context.WithCancel(context.Background())
	defer stopLoop()
	go func() { _ = a.loop.Run(loopCtx) }()

	httpapi.SetBaseContext(loopCtx)
	var srv *http.Server
	serveErr := make(chan error, 1)
	if a.cfg.HTTPAddr != "" {
		httpapi.SetLogger(a.log)
		httpapi.SetStatusTimeout(a.cfg.StatusTimeout())
		httpapi.SetCORSOptions(a.cfg.CORS.Enabled, a.cfg.CORS.Origins, a.cfg.CORS.Methods, a.cfg.CORS.Headers)
		srv = &http.Server{Addr: a.cfg.HTTPAddr, Handler: httpapi.NewMux(a), ReadHeaderTimeout: 5 * time.Second}
		go func() {
			a.log.Info().Str("addr", a.cfg.HTTPAddr).Msg("status api listening")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				serveErr <- err
			}
		}()
	}

	a.loop.Post(func() {
		a.dispatcher.ApplySettings()
		a.link.Start()
	})
	a.log.Info().Str("url", a.cfg.ServerURL).Str("host", a.cfg.Hostname).Msg("panel started")

	code := 0
	var runErr error
	select {
	case code = <-a.exit:
	case <-ctx.Done():
		a.log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*supervisor.DefaultStopTimeout)
		if err := a.loop.Call(shutdownCtx, a.dispatcher.Shutdown); err != nil {
			a.log.Warn().Err(err).Msg("shutdown")
		}
		cancel()
	case runErr = <-serveErr:
		a.log.Error().Err(runErr).Msg("status api")
		_ = a.loop.Call(context.Background(), a.dispatcher.Shutdown)
		code = 1
	}

	stopLoop()
	<-a.loop.Done()
	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := srv.Shutdown(shutdownCtx); err != nil {
			a.log.Warn().Err(err).Msg("status api shutdown")
		}
		cancel()
	}
	if err := a.store.Close(); err != nil {
		a.log.Warn().Err(err).Msg("close settings store")
	}
	return code, runErr
}

// Ready reports whether the controller link is up.
func (a *App) Ready() bool {
	s := link.State(a.linkState.Load())
	return s == link.StateConnected || s == link.AwaitingHeartbeat
}

// Status snapshots the panel on the event loop.
func (a *App) Status(ctx context.Context) (types.StatusResponse, error) {
	var st types.StatusResponse
	err := a.loop.Call(ctx, func() { st = a.snapshot() })
	if errors.Is(err, eventloop.ErrStopped) {
		return st, httpapi.ErrUnavailable("panel is shutting down")
	}
	return st, err
}

// Frame returns the latest slideshow frame, nil when none was rendered.
func (a *App) Frame(ctx context.Context) (image.Image, error) {
	var img image.Image
	err := a.loop.Call(ctx, func() { img = a.slides.Frame() })
	if errors.Is(err, eventloop.ErrStopped) {
		return nil, httpapi.ErrUnavailable("panel is shutting down")
	}
	return img, err
}

func (a *App) snapshot() types.StatusResponse {
	ps := a.dispatcher.Settings()
	view := a.presenter.Snapshot()
	present, next := a.slides.Slides()
	st := types.StatusResponse{
		Host: a.cfg.Hostname,
		Link: types.LinkStatus{
			URL:     a.cfg.ServerURL,
			State:   a.link.State().String(),
			Session: a.link.SessionID(),
		},
		Mode:     a.mode.Mode().String(),
		Settings: types.PanelSettings{ScoreOnly: ps.ScoreOnly, Mirrored: ps.Mirrored, Language: ps.Language},
		Players:  []types.PlayerStatus{},
		Slideshow: types.SlideshowStatus{
			Running:    a.slides.Running(),
			Dir:        a.dispatcher.SlideDir(),
			Transition: a.transition.String(),
			Present:    present,
			Next:       next,
			Step:       a.slides.Step(),
		},
		Fields:         view.Fields,
		UptimeSeconds:  int64(time.Since(a.started).Seconds()),
		ServerTimeUnix: time.Now().Unix(),
	}
	for _, slot := range []supervisor.Slot{supervisor.SpotSlot, supervisor.CameraSlot} {
		if h, ok := a.players.Running(slot); ok {
			st.Players = append(st.Players, types.PlayerStatus{Slot: slot.String(), PID: h.PID, Target: h.Target})
		}
	}
	return st
}
