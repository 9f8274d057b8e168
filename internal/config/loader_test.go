package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestLoadYAML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.yaml", "server_url: ws://ctl:45454\nspot_dir: /media/spots\nplayer: /opt/ffplay\ndisplay:\n  x: 1920\n  width: 1280\n  height: 720\nslideshow:\n  transition: fromleft\n")
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ServerURL != "ws://ctl:45454" || cfg.SpotDir != "/media/spots" || cfg.Player != "/opt/ffplay" {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
	if cfg.Display.X != 1920 || cfg.Display.Width != 1280 || cfg.Display.Height != 720 || cfg.Slideshow.Transition != "fromleft" {
		t.Fatalf("unexpected nested cfg: %+v", cfg)
	}
}

func TestLoadJSON(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.json", `{"server_url":"ws://a:1","slide_dir":"/s","http_addr":":9090","cors":{"enabled":true,"origins":["*"]}}`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ServerURL != "ws://a:1" || cfg.SlideDir != "/s" || cfg.HTTPAddr != ":9090" || !cfg.CORS.Enabled || len(cfg.CORS.Origins) != 1 {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestLoadTOML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.toml", "server_url=\"wss://b:2\"\nhalt_command=\"sudo halt\"\n[display]\nwidth=800\nheight=600\n")
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ServerURL != "wss://b:2" || cfg.HaltCommand != "sudo halt" || cfg.Display.Width != 800 || cfg.Display.Height != 600 {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}
