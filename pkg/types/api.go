package types

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: panel is shutting down
	Error string `json:"error" example:"panel is shutting down"`
	// HTTP status code.
	// example: 503
	Code int `json:"code" example:"503"`
}

// StatusResponse is returned by GET /status.
type StatusResponse struct {
	// Hostname announced to the controller.
	// example: panel-1
	Host string `json:"host" example:"panel-1"`
	// Controller connection.
	Link LinkStatus `json:"link"`
	// Current owner of the display (panel, spotloop, livecamera, slideshow).
	// example: panel
	Mode string `json:"mode" example:"panel"`
	// Persisted preferences in effect for this session.
	Settings PanelSettings `json:"settings"`
	// Running external players.
	Players []PlayerStatus `json:"players"`
	Slideshow SlideshowStatus `json:"slideshow"`
	// Scoreboard fields as last shown, after clamping.
	Fields map[string]string `json:"fields,omitempty"`
	// Uptime of the process in seconds.
	// example: 3600
	UptimeSeconds int64 `json:"uptime_seconds" example:"3600"`
	// Server time in unix seconds.
	// example: 1700000000
	ServerTimeUnix int64 `json:"server_time_unix" example:"1700000000"`
}
