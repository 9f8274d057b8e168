package link

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

func echoServer(t *testing.T) *httptest.Server {
	t.Helper()
	up := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := up.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer c.Close()
		_ = c.WriteMessage(websocket.BinaryMessage, []byte{1, 2})
		typ, data, err := c.ReadMessage()
		if err != nil {
			return
		}
		_ = c.WriteMessage(typ, data)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func wsURL(srv *httptest.Server) string { return "ws" + strings.TrimPrefix(srv.URL, "http") }

func next(t *testing.T, ch <-chan Event) Event {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for event")
		return nil
	}
}

func TestWebSocketTransport_RoundTrip(t *testing.T) {
	srv := echoServer(t)
	events := make(chan Event, 8)
	tr := NewWebSocketTransport(zerolog.Nop())
	tr.Connect(wsURL(srv), func(ev Event) { events <- ev })

	ev := next(t, events)
	conn, ok := ev.(Connected)
	if !ok {
		t.Fatalf("expected Connected, got %T", ev)
	}
	if conn.Conn.ID() == "" {
		t.Fatalf("missing session id")
	}
	msg := "<getStatus>panel</getStatus>"
	n, err := conn.Conn.Send(msg)
	if err != nil || n != len(msg) {
		t.Fatalf("send n=%d err=%v", n, err)
	}
	ev = next(t, events)
	m, ok := ev.(Message)
	if !ok || m.Text != msg || m.Conn != conn.Conn {
		t.Fatalf("expected echoed message, got %#v", ev)
	}
	ev = next(t, events)
	if _, ok := ev.(Disconnected); !ok {
		t.Fatalf("expected Disconnected, got %T", ev)
	}
	_ = conn.Conn.Close()
	_ = conn.Conn.Close()
}

func TestWebSocketTransport_ConnectFailed(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()
	events := make(chan Event, 1)
	NewWebSocketTransport(zerolog.Nop()).Connect(wsURL(srv), func(ev Event) { events <- ev })
	if _, ok := next(t, events).(ConnectFailed); !ok {
		t.Fatalf("expected ConnectFailed")
	}
}
