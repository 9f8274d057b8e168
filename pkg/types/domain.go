package types

// LinkStatus describes the controller connection.
type LinkStatus struct {
	// Controller URL.
	// example: ws://192.168.1.10:54321
	URL string `json:"url" example:"ws://192.168.1.10:54321"`
	// Connection state (disconnected, connecting, connected, awaiting_heartbeat, closed).
	// example: connected
	State string `json:"state" example:"connected"`
	// Id of the current connection, empty when not connected.
	Session string `json:"session,omitempty"`
}

// PanelSettings mirrors the persisted preferences.
type PanelSettings struct {
	ScoreOnly bool `json:"score_only"`
	Mirrored  bool `json:"mirrored"`
	// example: Italiano
	Language string `json:"language" example:"Italiano"`
}

// PlayerStatus summarizes one external player process.
type PlayerStatus struct {
	// Slot the player occupies (spot or camera).
	// example: spot
	Slot string `json:"slot" example:"spot"`
	// example: 12345
	PID int `json:"pid" example:"12345"`
	// Media the player was started with.
	Target string `json:"target"`
}

// SlideshowStatus describes the slideshow engine.
type SlideshowStatus struct {
	Running bool   `json:"running"`
	Dir     string `json:"dir"`
	// example: fade
	Transition string `json:"transition" example:"fade"`
	Present    string `json:"present,omitempty"`
	Next       string `json:"next,omitempty"`
	Step       int    `json:"step"`
}
