package link

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	defaultHandshakeTimeout = 5 * time.Second
	writeTimeout            = 5 * time.Second
)

// WebSocketTransport dials the controller over WebSocket and exchanges text
// frames.
type WebSocketTransport struct {
	Dialer *websocket.Dialer
	Logger zerolog.Logger
}

func NewWebSocketTransport(log zerolog.Logger) *WebSocketTransport {
	d := *websocket.DefaultDialer
	d.HandshakeTimeout = defaultHandshakeTimeout
	return &WebSocketTransport{Dialer: &d, Logger: log}
}

func (t *WebSocketTransport) Connect(url string, deliver func(Event)) {
	go func() {
		c, _, err := t.Dialer.Dial(url, nil)
		if err != nil {
			deliver(ConnectFailed{Err: err})
			return
		}
		wc := &wsConn{c: c, id: uuid.NewString()}
		deliver(Connected{Conn: wc})
		t.readLoop(wc, deliver)
	}()
}

func (t *WebSocketTransport) readLoop(wc *wsConn, deliver func(Event)) {
	for {
		typ, data, err := wc.c.ReadMessage()
		if err != nil {
			deliver(Disconnected{Conn: wc, Err: err})
			return
		}
		if typ != websocket.TextMessage {
			t.Logger.Debug().Str("session", wc.id).Int("type", typ).Msg("ignoring non-text frame")
			continue
		}
		deliver(Message{Conn: wc, Text: string(data)})
	}
}

type wsConn struct {
	c    *websocket.Conn
	id   string
	mu   sync.Mutex
	once sync.Once
}

func (w *wsConn) ID() string { return w.id }

func (w *wsConn) Send(text string) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	_ = w.c.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := w.c.WriteMessage(websocket.TextMessage, []byte(text)); err != nil {
		return 0, err
	}
	return len(text), nil
}

func (w *wsConn) Close() error {
	var err error
	w.once.Do(func() {
		w.mu.Lock()
		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
		_ = w.c.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
		w.mu.Unlock()
		err = w.c.Close()
	})
	return err
}
