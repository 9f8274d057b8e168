package link

import (
	"errors"
	"fmt"
)

type notConnectedError struct{}

func (notConnectedError) Error() string { return "link: not connected" }

// IsNotConnected reports whether a send was attempted without a connection.
func IsNotConnected(err error) bool {
	var e notConnectedError
	return errors.As(err, &e)
}

type shortWriteError struct {
	wrote, want int
}

func (e shortWriteError) Error() string {
	return fmt.Sprintf("link: short write: sent %d of %d bytes", e.wrote, e.want)
}

// IsShortWrite reports whether the transport accepted fewer bytes than the
// encoded message length.
func IsShortWrite(err error) bool {
	var e shortWriteError
	return errors.As(err, &e)
}
