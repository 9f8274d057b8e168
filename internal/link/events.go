package link

// Event is a transport notification delivered to Manager.Handle on the loop.
type Event interface {
	event()
}

// Connected reports a successful dial.
type Connected struct {
	Conn Conn
}

// ConnectFailed reports a dial that did not produce a connection.
type ConnectFailed struct {
	Err error
}

// Message carries one inbound text frame.
type Message struct {
	Conn Conn
	Text string
}

// Disconnected reports that Conn was closed by the peer or failed.
type Disconnected struct {
	Conn Conn
	Err  error
}

func (Connected) event()     {}
func (ConnectFailed) event() {}
func (Message) event()       {}
func (Disconnected) event()  {}
