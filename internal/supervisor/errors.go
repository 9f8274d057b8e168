package supervisor

import (
	"errors"
	"fmt"
)

// rejectedError is returned when a start request conflicts with the current
// display mode.
type rejectedError struct{ reason string }

func (e rejectedError) Error() string { return "start rejected: " + e.reason }

func IsRejected(err error) bool {
	var e rejectedError
	return errors.As(err, &e)
}

type noMediaError struct{ dir string }

func (e noMediaError) Error() string { return fmt.Sprintf("no spots in %s", e.dir) }

// IsNoMedia reports whether a start found nothing to play.
func IsNoMedia(err error) bool {
	var e noMediaError
	return errors.As(err, &e)
}

type launchFailedError struct {
	path string
	err  error
}

func (e launchFailedError) Error() string { return fmt.Sprintf("launch %s: %v", e.path, e.err) }
func (e launchFailedError) Unwrap() error { return e.err }

func IsLaunchFailed(err error) bool {
	var e launchFailedError
	return errors.As(err, &e)
}
