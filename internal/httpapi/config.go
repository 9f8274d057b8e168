package httpapi

import "time"

// DefaultStatusTimeout bounds how long /status and /frame.png wait for the
// event loop.
const DefaultStatusTimeout = 2 * time.Second

var statusTimeout = DefaultStatusTimeout

// SetStatusTimeout sets the wait for event loop snapshots (0 disables).
func SetStatusTimeout(d time.Duration) {
	if d < 0 {
		d = 0
	}
	statusTimeout = d
}

// StatusTimeout reports the configured wait for event loop snapshots.
func StatusTimeout() time.Duration { return statusTimeout }

// CORS configuration (opt-in). If disabled, no CORS middleware is added.
var (
	corsEnabled        bool
	corsAllowedOrigins []string
	corsAllowedMethods []string
	corsAllowedHeaders []string
)

// SetCORSOptions configures CORS behavior for the HTTP server.
func SetCORSOptions(enabled bool, origins, methods, headers []string) {
	corsEnabled = enabled
	corsAllowedOrigins = append([]string(nil), origins...)
	corsAllowedMethods = append([]string(nil), methods...)
	corsAllowedHeaders = append([]string(nil), headers...)
}
