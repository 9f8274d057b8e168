package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

// Defaults applied when the corresponding Config fields are unset.
const (
	DefaultServerURL  = "ws://localhost:45454"
	DefaultTransition = "fade"
	defaultWidth      = 1920
	defaultHeight     = 1080
)

// DefaultStatusTimeoutMS matches httpapi.DefaultStatusTimeout.
const DefaultStatusTimeoutMS = 2000

// DefaultPlayer is the external player used for spots and the live camera.
func DefaultPlayer() string {
	if runtime.GOOS == "windows" {
		return "ffplay.exe"
	}
	return "/usr/bin/ffplay"
}

// Default returns a fully populated configuration rooted at the user's home.
func Default() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	host, _ := os.Hostname()
	return Config{
		ServerURL:  DefaultServerURL,
		Hostname:   host,
		SpotDir:    filepath.Join(home, "spots"),
		SlideDir:   filepath.Join(home, "slides"),
		Player:     DefaultPlayer(),
		SettingsDB: filepath.Join(home, ".scorepanel.db"),
		LogLevel:   "info",
		Display:    Display{Width: defaultWidth, Height: defaultHeight},
		Slideshow:  Slideshow{Transition: DefaultTransition},

		StatusTimeoutMS: DefaultStatusTimeoutMS,
	}
}

// ApplyDefaults fills every unset field of cfg from Default().
func (c *Config) ApplyDefaults() {
	d := Default()
	if c.ServerURL == "" {
		c.ServerURL = d.ServerURL
	}
	if c.Hostname == "" {
		c.Hostname = d.Hostname
	}
	if c.SpotDir == "" {
		c.SpotDir = d.SpotDir
	}
	if c.SlideDir == "" {
		c.SlideDir = d.SlideDir
	}
	if c.Player == "" {
		c.Player = d.Player
	}
	if c.SettingsDB == "" {
		c.SettingsDB = d.SettingsDB
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	if c.Display.Width <= 0 || c.Display.Height <= 0 {
		c.Display.Width = d.Display.Width
		c.Display.Height = d.Display.Height
	}
	if c.Slideshow.Transition == "" {
		c.Slideshow.Transition = d.Slideshow.Transition
	}
	if c.StatusTimeoutMS == 0 {
		c.StatusTimeoutMS = d.StatusTimeoutMS
	}
}

// StatusTimeout is StatusTimeoutMS as a duration, 0 when disabled.
func (c Config) StatusTimeout() time.Duration {
	if c.StatusTimeoutMS <= 0 {
		return 0
	}
	return time.Duration(c.StatusTimeoutMS) * time.Millisecond
}

// invalidConfigError reports a field that cannot be used as given.
type invalidConfigError struct {
	field string
	msg   string
}

func (e invalidConfigError) Error() string { return "invalid config " + e.field + ": " + e.msg }

// IsInvalid reports whether err came from Validate.
func IsInvalid(err error) bool {
	_, ok := err.(invalidConfigError)
	return ok
}

// Validate checks the fields that have no sensible fallback.
func (c Config) Validate() error {
	u, err := url.Parse(c.ServerURL)
	if err != nil {
		return invalidConfigError{field: "server_url", msg: err.Error()}
	}
	if u.Scheme != "ws" && u.Scheme != "wss" {
		return invalidConfigError{field: "server_url", msg: fmt.Sprintf("scheme %q is not ws or wss", u.Scheme)}
	}
	if c.Display.Width <= 0 || c.Display.Height <= 0 {
		return invalidConfigError{field: "display", msg: "width and height must be positive"}
	}
	switch strings.ToLower(c.Slideshow.Transition) {
	case "fade", "fromleft", "abrupt":
	default:
		return invalidConfigError{field: "slideshow.transition", msg: fmt.Sprintf("unknown transition %q", c.Slideshow.Transition)}
	}
	if strings.TrimSpace(c.Player) == "" {
		return invalidConfigError{field: "player", msg: "empty"}
	}
	return nil
}
