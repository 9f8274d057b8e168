package link

// Conn is one established connection to the controller.
type Conn interface {
	// ID identifies the connection in logs.
	ID() string
	// Send writes one text frame and returns the number of bytes accepted.
	Send(text string) (int, error)
	Close() error
}

// Transport dials the controller. Connect must not block: it delivers exactly
// one Connected or ConnectFailed, and after Connected any number of Message
// events followed by a single Disconnected.
type Transport interface {
	Connect(url string, deliver func(Event))
}
