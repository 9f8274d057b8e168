// Package link keeps the connection to the controller alive: it retries the
// dial on a fixed period, polls the controller with a randomized heartbeat and
// declares the panel closed when a poll goes unanswered.
package link

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/rs/zerolog"

	"scorepanel/internal/eventloop"
	"scorepanel/internal/metrics"
	"scorepanel/internal/protocol"
)

// State of the link.
type State int

const (
	StateDisconnected State = iota
	Connecting
	StateConnected
	AwaitingHeartbeat
	// Closed is terminal.
	Closed
)

var stateNames = []string{"disconnected", "connecting", "connected", "awaiting_heartbeat", "closed"}

func (s State) String() string {
	if int(s) < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("state(%d)", int(s))
	}
	return stateNames[s]
}

// Timing of the link.
const (
	RetryPeriod        = 1000 * time.Millisecond
	HeartbeatMin       = 3000 * time.Millisecond
	HeartbeatJitterMax = 2000 * time.Millisecond
)

// Timer names registered with the clock.
const (
	RetryTimer     = "link.retry"
	HeartbeatTimer = "link.heartbeat"
)

// Listener receives inbound text and the terminal closed notification.
type Listener interface {
	HandleMessage(text string)
	// PanelClosed is called once when the heartbeat goes unanswered.
	PanelClosed()
}

// Config wires a Manager. Loop and Clock must refer to the same event loop.
type Config struct {
	URL       string
	Host      string
	Transport Transport
	Loop      eventloop.Poster
	Clock     eventloop.Clock
	Listener  Listener
	Logger    zerolog.Logger
	// HeartbeatPeriod overrides the random period source. Values must lie in
	// [HeartbeatMin, HeartbeatMin+HeartbeatJitterMax).
	HeartbeatPeriod func() time.Duration
	// OnState, when set, observes every state assignment on the loop.
	OnState func(State)
}

// Manager owns the link state. All methods except Deliver must run on the
// event loop.
type Manager struct {
	cfg       Config
	log       zerolog.Logger
	state     State
	conn      Conn
	retry     eventloop.Timer
	heartbeat eventloop.Timer
	notified  bool
}

func NewManager(cfg Config) *Manager {
	if cfg.HeartbeatPeriod == nil {
		cfg.HeartbeatPeriod = RandomHeartbeat
	}
	m := &Manager{cfg: cfg, log: cfg.Logger.With().Str("component", "link").Logger()}
	m.retry = cfg.Clock.NewTimer(RetryTimer, m.onRetry)
	m.heartbeat = cfg.Clock.NewTimer(HeartbeatTimer, m.onHeartbeat)
	return m
}

// RandomHeartbeat draws uniformly from [3000, 5000) ms.
func RandomHeartbeat() time.Duration {
	return HeartbeatMin + rand.N(HeartbeatJitterMax)
}

// Start arms the retry timer and makes the first connection attempt.
func (m *Manager) Start() {
	m.setState(StateDisconnected)
	m.retry.Start(RetryPeriod)
	m.onRetry()
}

// Deliver posts ev onto the loop. Safe from any goroutine.
func (m *Manager) Deliver(ev Event) {
	m.cfg.Loop.Post(func() { m.Handle(ev) })
}

// Handle applies one transport event.
func (m *Manager) Handle(ev Event) {
	switch e := ev.(type) {
	case Connected:
		m.onConnected(e.Conn)
	case ConnectFailed:
		m.onConnectFailed(e.Err)
	case Message:
		m.onMessage(e.Conn, e.Text)
	case Disconnected:
		m.onDisconnected(e.Conn, e.Err)
	}
}

func (m *Manager) State() State { return m.state }

// Awaiting reports whether a status request is outstanding.
func (m *Manager) Awaiting() bool { return m.state == AwaitingHeartbeat }

// SessionID is the id of the current connection, or "".
func (m *Manager) SessionID() string {
	if m.conn == nil {
		return ""
	}
	return m.conn.ID()
}

// Send writes text to the controller. Failures are logged and returned but
// never tear the link down.
func (m *Manager) Send(text string) error {
	if m.conn == nil {
		m.log.Debug().Str("msg", text).Msg("drop outbound, not connected")
		return notConnectedError{}
	}
	n, err := m.conn.Send(text)
	if err == nil && n != len(text) {
		err = shortWriteError{wrote: n, want: len(text)}
	}
	if err != nil {
		metrics.LinkEvent("send_error")
		m.log.Warn().Err(err).Str("session", m.conn.ID()).Msg("send failed")
		return err
	}
	return nil
}

// Disconnect closes the link for good without notifying the listener.
func (m *Manager) Disconnect() {
	if m.state == Closed {
		return
	}
	m.retry.Stop()
	m.heartbeat.Stop()
	m.closeConn()
	m.setState(Closed)
	m.log.Info().Msg("link closed on request")
}

func (m *Manager) onRetry() {
	if m.state != StateDisconnected {
		return
	}
	m.setState(Connecting)
	m.log.Debug().Str("url", m.cfg.URL).Msg("connecting")
	m.cfg.Transport.Connect(m.cfg.URL, m.Deliver)
}

func (m *Manager) onConnected(c Conn) {
	if m.state != Connecting {
		// a dial that completed after teardown
		_ = c.Close()
		return
	}
	metrics.LinkEvent("connect")
	m.retry.Stop()
	m.conn = c
	m.log.Info().Str("session", c.ID()).Str("url", m.cfg.URL).Msg("connected")
	_ = m.Send(protocol.StatusRequest(m.cfg.Host))
	m.setState(AwaitingHeartbeat)
	m.heartbeat.Start(m.cfg.HeartbeatPeriod())
}

func (m *Manager) onConnectFailed(err error) {
	if m.state != Connecting {
		return
	}
	metrics.LinkEvent("connect_failed")
	m.log.Debug().Err(err).Msg("connect failed")
	m.setState(StateDisconnected)
	if !m.retry.Active() {
		m.retry.Start(RetryPeriod)
	}
}

func (m *Manager) onMessage(c Conn, text string) {
	if c != m.conn || (m.state != StateConnected && m.state != AwaitingHeartbeat) {
		return
	}
	metrics.LinkEvent("message")
	m.setState(StateConnected)
	m.heartbeat.Start(m.cfg.HeartbeatPeriod())
	m.cfg.Listener.HandleMessage(text)
}

func (m *Manager) onDisconnected(c Conn, err error) {
	if c != m.conn || m.state == Closed {
		return
	}
	metrics.LinkEvent("disconnect")
	m.log.Warn().Err(err).Str("session", c.ID()).Msg("controller disconnected")
	m.heartbeat.Stop()
	m.closeConn()
	m.setState(StateDisconnected)
	m.retry.Start(RetryPeriod)
}

func (m *Manager) onHeartbeat() {
	switch m.state {
	case AwaitingHeartbeat:
		metrics.LinkEvent("heartbeat_timeout")
		m.log.Error().Str("session", m.SessionID()).Msg("no answer to status request, closing panel")
		m.retry.Stop()
		m.heartbeat.Stop()
		m.closeConn()
		m.setState(Closed)
		if !m.notified {
			m.notified = true
			m.cfg.Listener.PanelClosed()
		}
	case StateConnected:
		metrics.LinkEvent("heartbeat")
		_ = m.Send(protocol.StatusRequest(m.cfg.Host))
		m.setState(AwaitingHeartbeat)
		m.heartbeat.Start(m.cfg.HeartbeatPeriod())
	default:
		m.heartbeat.Stop()
	}
}

func (m *Manager) closeConn() {
	if m.conn == nil {
		return
	}
	if err := m.conn.Close(); err != nil {
		m.log.Debug().Err(err).Msg("close")
	}
	m.conn = nil
}

func (m *Manager) setState(s State) {
	if m.state != s {
		m.log.Debug().Str("from", m.state.String()).Str("to", s.String()).Msg("link state")
	}
	m.state = s
	metrics.SetLinkState(s.String(), stateNames)
	if m.cfg.OnState != nil {
		m.cfg.OnState(s)
	}
}
