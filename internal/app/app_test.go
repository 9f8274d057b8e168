package app

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scorepanel/internal/config"
	"scorepanel/internal/dispatch"
	"scorepanel/internal/display"
	"scorepanel/internal/httpapi"
	"scorepanel/internal/link"
	"scorepanel/internal/protocol"
	"scorepanel/internal/settings"
)

type chanConn struct {
	mu   sync.Mutex
	sent []string
}

func (c *chanConn) ID() string { return "test" }

func (c *chanConn) Send(text string) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, text)
	return len(text), nil
}

func (c *chanConn) Close() error { return nil }

func (c *chanConn) Sent() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.sent...)
}

// instantTransport connects on the first dial and remembers deliver so the
// test can inject controller frames.
type instantTransport struct {
	mu      sync.Mutex
	conn    *chanConn
	deliver func(link.Event)
}

func (t *instantTransport) Connect(url string, deliver func(link.Event)) {
	t.mu.Lock()
	t.deliver = deliver
	t.mu.Unlock()
	deliver(link.Connected{Conn: t.conn})
}

func (t *instantTransport) send(text string) {
	t.mu.Lock()
	d := t.deliver
	t.mu.Unlock()
	d(link.Message{Conn: t.conn, Text: text})
}

func testConfig(t *testing.T) config.Config {
	return config.Config{
		ServerURL: "ws://controller:45454",
		Hostname:  "panel-1",
		SpotDir:   t.TempDir(),
		SlideDir:  t.TempDir(),
		Player:    "/bin/true",
	}
}

type runResult struct {
	code int
	err  error
}

func start(t *testing.T, opts Options) (*App, *instantTransport, chan runResult, context.CancelFunc) {
	t.Helper()
	tr := &instantTransport{conn: &chanConn{}}
	opts.Transport = tr
	opts.Logger = zerolog.Nop()
	a, err := New(opts)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan runResult, 1)
	go func() {
		code, err := a.Run(ctx)
		done <- runResult{code, err}
	}()
	require.Eventually(t, func() bool {
		return len(tr.conn.Sent()) > 0
	}, 2*time.Second, 5*time.Millisecond, "status request never sent")
	return a, tr, done, cancel
}

func TestApp_KillPersistsAndExitsZero(t *testing.T) {
	store := settings.NewMemoryStore()
	a, tr, done, cancel := start(t, Options{Config: testConfig(t), Store: store})
	defer cancel()

	assert.Equal(t, protocol.StatusRequest("panel-1"), tr.conn.Sent()[0])
	require.Eventually(t, a.Ready, time.Second, 5*time.Millisecond)

	tr.send("<team0>Home</team0><setOrientation>1</setOrientation><getOrientation>1</getOrientation>")
	require.Eventually(t, func() bool {
		st, err := a.Status(context.Background())
		return err == nil && st.Fields[protocol.TokenTeam0] == "Home" && st.Settings.Mirrored
	}, time.Second, 5*time.Millisecond)
	assert.Contains(t, tr.conn.Sent(), protocol.Orientation(true))

	tr.send("<kill>1</kill>")
	select {
	case res := <-done:
		require.NoError(t, res.err)
		assert.Equal(t, dispatch.ExitKilled, res.code)
	case <-time.After(2 * time.Second):
		t.Fatal("app did not exit on kill")
	}
	saved, err := settings.Load(store)
	require.NoError(t, err)
	assert.True(t, saved.Mirrored)

	_, err = a.Status(context.Background())
	assert.Error(t, err, "status after exit must fail")
}

func TestApp_HeartbeatTimeoutExitsNonZero(t *testing.T) {
	_, _, done, cancel := start(t, Options{
		Config:          testConfig(t),
		Store:           settings.NewMemoryStore(),
		HeartbeatPeriod: func() time.Duration { return 20 * time.Millisecond },
	})
	defer cancel()
	select {
	case res := <-done:
		assert.Equal(t, dispatch.ExitPanelClosed, res.code)
	case <-time.After(2 * time.Second):
		t.Fatal("app did not exit after unanswered heartbeat")
	}
}

func TestApp_SlideshowFrameAndStatus(t *testing.T) {
	pres := display.NewHeadless()
	a, tr, done, cancel := start(t, Options{Config: testConfig(t), Store: settings.NewMemoryStore(), Presenter: pres})

	img, err := a.Frame(context.Background())
	require.NoError(t, err)
	assert.Nil(t, img, "no frame before the slideshow runs")

	tr.send("<slideshow>1</slideshow>")
	require.Eventually(t, func() bool {
		st, err := a.Status(context.Background())
		return err == nil && st.Mode == "slideshow" && st.Slideshow.Running
	}, time.Second, 5*time.Millisecond)

	img, err = a.Frame(context.Background())
	require.NoError(t, err)
	require.NotNil(t, img, "empty directory shows a placeholder")
	assert.False(t, pres.Snapshot().PanelVisible)

	cancel()
	select {
	case res := <-done:
		assert.Equal(t, 0, res.code)
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop on cancel")
	}
}

func TestApp_StatusTimeoutFromConfig(t *testing.T) {
	t.Cleanup(func() { httpapi.SetStatusTimeout(httpapi.DefaultStatusTimeout) })
	cfg := testConfig(t)
	cfg.HTTPAddr = "127.0.0.1:0"
	cfg.StatusTimeoutMS = 750
	_, _, done, cancel := start(t, Options{Config: cfg, Store: settings.NewMemoryStore()})
	assert.Equal(t, 750*time.Millisecond, httpapi.StatusTimeout())

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop on cancel")
	}
}

func TestNew_RejectsBadConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.ServerURL = "http://controller"
	_, err := New(Options{Config: cfg, Store: settings.NewMemoryStore(), Logger: zerolog.Nop()})
	require.Error(t, err)
	assert.True(t, config.IsInvalid(err))

	cfg = testConfig(t)
	cfg.Slideshow.Transition = "wipe"
	_, err = New(Options{Config: cfg, Store: settings.NewMemoryStore(), Logger: zerolog.Nop()})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "wipe"))
}
