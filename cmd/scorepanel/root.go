package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"scorepanel/internal/app"
	"scorepanel/internal/config"
	"scorepanel/internal/logging"
)

// stringFlag binds a string flag, its environment default and the config
// field it overrides.
type stringFlag struct {
	name   string
	env    string
	usage  string
	target func(*config.Config) *string
}

var stringFlags = []stringFlag{
	{"server-url", "SCOREPANEL_SERVER_URL", "Controller WebSocket URL, e.g. ws://10.0.0.2:45454", func(c *config.Config) *string { return &c.ServerURL }},
	{"hostname", "SCOREPANEL_HOSTNAME", "Name announced in status requests (defaults to the OS hostname)", func(c *config.Config) *string { return &c.Hostname }},
	{"spot-dir", "SCOREPANEL_SPOT_DIR", "Directory of spot videos", func(c *config.Config) *string { return &c.SpotDir }},
	{"slide-dir", "SCOREPANEL_SLIDE_DIR", "Directory of slideshow images", func(c *config.Config) *string { return &c.SlideDir }},
	{"player", "SCOREPANEL_PLAYER", "External player executable", func(c *config.Config) *string { return &c.Player }},
	{"camera-source", "SCOREPANEL_CAMERA_SOURCE", "Stream played for the live camera (empty plays the spot loop)", func(c *config.Config) *string { return &c.CameraSource }},
	{"settings-db", "SCOREPANEL_SETTINGS_DB", "bbolt file holding the panel preferences", func(c *config.Config) *string { return &c.SettingsDB }},
	{"http-addr", "SCOREPANEL_ADDR", "Status API listen address, e.g. :8080 (empty disables)", func(c *config.Config) *string { return &c.HTTPAddr }},
	{"log-level", "SCOREPANEL_LOG_LEVEL", "Log level: debug|info|warn|error|off", func(c *config.Config) *string { return &c.LogLevel }},
	{"halt-command", "SCOREPANEL_HALT_COMMAND", "Command run after a kill request, e.g. \"sudo halt\"", func(c *config.Config) *string { return &c.HaltCommand }},
	{"transition", "SCOREPANEL_TRANSITION", "Slide transition: fade|fromleft|abrupt", func(c *config.Config) *string { return &c.Slideshow.Transition }},
}

type intFlag struct {
	name   string
	usage  string
	target func(*config.Config) *int
}

var intFlags = []intFlag{
	{"x", "Left edge of the secondary display", func(c *config.Config) *int { return &c.Display.X }},
	{"y", "Top edge of the secondary display", func(c *config.Config) *int { return &c.Display.Y }},
	{"width", "Width of the secondary display", func(c *config.Config) *int { return &c.Display.Width }},
	{"height", "Height of the secondary display", func(c *config.Config) *int { return &c.Display.Height }},
	{"status-timeout-ms", "How long a status API request waits for the panel, in ms (negative disables)", func(c *config.Config) *int { return &c.StatusTimeoutMS }},
}

func buildRootCmd(exitCode *int) *cobra.Command {
	root := &cobra.Command{
		Use:           "scorepanel",
		Short:         "Scoreboard panel client for a remote controller",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd.Flags())
			if err != nil {
				return err
			}
			log := logging.New(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogPretty)
			a, err := app.New(app.Options{Config: cfg, Logger: log})
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			code, err := a.Run(ctx)
			*exitCode = code
			return err
		},
	}

	fs := root.Flags()
	fs.StringP("config", "c", os.Getenv("SCOREPANEL_CONFIG"), "Config file (.yaml, .json or .toml)")
	for _, f := range stringFlags {
		fs.String(f.name, os.Getenv(f.env), f.usage+" (env "+f.env+")")
	}
	for _, f := range intFlags {
		fs.Int(f.name, 0, f.usage)
	}
	fs.Bool("log-pretty", false, "Human readable console logs")
	fs.String("cors-origins", "", "Comma separated origins allowed by the status API (enables CORS)")

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "scorepanel", version)
		},
	})
	return root
}

// resolveConfig layers the config file, environment defaults and explicit
// flags, then fills the remaining defaults and validates the result.
func resolveConfig(fs *pflag.FlagSet) (config.Config, error) {
	var cfg config.Config
	if path, _ := fs.GetString("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}
	for _, f := range stringFlags {
		v, _ := fs.GetString(f.name)
		if fs.Changed(f.name) || os.Getenv(f.env) != "" {
			*f.target(&cfg) = v
		}
	}
	for _, f := range intFlags {
		if fs.Changed(f.name) {
			*f.target(&cfg), _ = fs.GetInt(f.name)
		}
	}
	if fs.Changed("log-pretty") {
		cfg.LogPretty, _ = fs.GetBool("log-pretty")
	}
	if fs.Changed("cors-origins") {
		v, _ := fs.GetString("cors-origins")
		cfg.CORS.Origins = splitCSV(v)
		cfg.CORS.Enabled = len(cfg.CORS.Origins) > 0
		if len(cfg.CORS.Methods) == 0 {
			cfg.CORS.Methods = []string{"GET", "OPTIONS"}
		}
	}
	cfg.ApplyDefaults()
	return cfg, cfg.Validate()
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
