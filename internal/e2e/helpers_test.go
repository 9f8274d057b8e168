package e2e

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"scorepanel/internal/app"
	"scorepanel/internal/config"
	"scorepanel/internal/httpapi"
	"scorepanel/internal/protocol"
	"scorepanel/internal/settings"
	"scorepanel/internal/supervisor"
	"scorepanel/pkg/types"
)

// The test binary doubles as the external player when SCOREPANEL_FAKE_PLAYER
// is set; the player arguments are never parsed.
func TestMain(m *testing.M) {
	if os.Getenv("SCOREPANEL_FAKE_PLAYER") == "hang" {
		time.Sleep(time.Minute)
		os.Exit(0)
	}
	os.Exit(m.Run())
}

// controller is a WebSocket stub of the scoreboard controller. It answers
// every status request unless silent is set.
type controller struct {
	t      *testing.T
	srv    *httptest.Server
	inbox  chan string
	closed chan struct{}
	silent bool

	mu   sync.Mutex
	conn *websocket.Conn
}

func newController(t *testing.T, silent bool) *controller {
	t.Helper()
	c := &controller{t: t, inbox: make(chan string, 64), closed: make(chan struct{}), silent: silent}
	up := websocket.Upgrader{}
	c.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := up.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		c.mu.Lock()
		c.conn = ws
		c.mu.Unlock()
		defer close(c.closed)
		for {
			_, data, err := ws.ReadMessage()
			if err != nil {
				return
			}
			text := string(data)
			if _, ok := protocol.Parse(text, protocol.TokenGetStatus); ok && !c.silent {
				c.send(protocol.Encode("status", "ok"))
			}
			c.inbox <- text
		}
	}))
	t.Cleanup(c.srv.Close)
	return c
}

func (c *controller) url() string { return "ws" + strings.TrimPrefix(c.srv.URL, "http") }

func (c *controller) send(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		c.t.Errorf("controller not connected")
		return
	}
	if err := c.conn.WriteMessage(websocket.TextMessage, []byte(text)); err != nil {
		c.t.Errorf("controller write: %v", err)
	}
}

// expect waits for a frame containing token, skipping everything else.
func (c *controller) expect(token string) string {
	c.t.Helper()
	deadline := time.After(10 * time.Second)
	for {
		select {
		case msg := <-c.inbox:
			if _, ok := protocol.Parse(msg, token); ok {
				return msg
			}
		case <-deadline:
			c.t.Fatalf("no %s frame from the panel", token)
			return ""
		}
	}
}

type panel struct {
	app      *app.App
	api      *httptest.Server
	done     chan int
	finished chan struct{}
}

func writeMedia(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, n := range names {
		if err := os.WriteFile(filepath.Join(dir, n), nil, 0o644); err != nil {
			t.Fatalf("write %s: %v", n, err)
		}
	}
	return dir
}

func startPanel(t *testing.T, ctl *controller, spotDir string, heartbeat func() time.Duration) *panel {
	t.Helper()
	cfg := config.Config{
		ServerURL: ctl.url(),
		Hostname:  "panel-e2e",
		SpotDir:   spotDir,
		SlideDir:  t.TempDir(),
		Player:    os.Args[0],
		Display:   config.Display{Width: 64, Height: 36},
	}
	a, err := app.New(app.Options{
		Config:          cfg,
		Logger:          zerolog.Nop(),
		Store:           settings.NewMemoryStore(),
		Launcher:        supervisor.ExecLauncher{StartTimeout: 5 * time.Second, Env: []string{"SCOREPANEL_FAKE_PLAYER=hang"}},
		HeartbeatPeriod: heartbeat,
	})
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	p := &panel{app: a, api: httptest.NewServer(httpapi.NewMux(a)), done: make(chan int, 1), finished: make(chan struct{})}
	t.Cleanup(p.api.Close)
	go func() {
		code, _ := a.Run(ctx)
		p.done <- code
		close(p.finished)
	}()
	t.Cleanup(func() {
		cancel()
		select {
		case <-p.finished:
		case <-time.After(10 * time.Second):
		}
	})
	ctl.expect(protocol.TokenGetStatus)
	return p
}

func (p *panel) status(t *testing.T) types.StatusResponse {
	t.Helper()
	resp, err := http.Get(p.api.URL + "/status")
	if err != nil {
		t.Fatalf("GET /status: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /status: %d", resp.StatusCode)
	}
	var st types.StatusResponse
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	return st
}

// waitStatus polls /status until ok accepts it.
func (p *panel) waitStatus(t *testing.T, what string, ok func(types.StatusResponse) bool) types.StatusResponse {
	t.Helper()
	deadline := time.Now().Add(10 * time.Second)
	for {
		st := p.status(t)
		if ok(st) {
			return st
		}
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s; last status %+v", what, st)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func (p *panel) waitExit(t *testing.T) int {
	t.Helper()
	select {
	case code := <-p.done:
		return code
	case <-time.After(10 * time.Second):
		t.Fatalf("panel did not exit")
		return -1
	}
}
