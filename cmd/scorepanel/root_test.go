package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSplitCSV(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"a,b,c", []string{"a", "b", "c"}},
		{" a , b , c ", []string{"a", "b", "c"}},
		{"a,,c", []string{"a", "c"}},
		{"", nil},
	}
	for _, c := range cases {
		got := splitCSV(c.in)
		if len(got) != len(c.want) {
			t.Fatalf("%q -> %v, want %v", c.in, got, c.want)
		}
		for i := range got {
			if got[i] != c.want[i] {
				t.Fatalf("%q -> %v, want %v", c.in, got, c.want)
			}
		}
	}
}

func TestResolveConfig_FileThenEnvThenFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "panel.yaml")
	body := "server_url: ws://file:1\nplayer: /usr/bin/mpv\nslide_dir: /file/slides\ndisplay:\n  width: 800\n  height: 600\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("SCOREPANEL_SLIDE_DIR", "/env/slides")

	cmd := buildRootCmd(new(int))
	if err := cmd.ParseFlags([]string{"--config", path, "--server-url", "ws://flag:2", "--width", "1024", "--cors-origins", "http://a, http://b"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	cfg, err := resolveConfig(cmd.Flags())
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.ServerURL != "ws://flag:2" {
		t.Fatalf("flag must win over file: %q", cfg.ServerURL)
	}
	if cfg.SlideDir != "/env/slides" {
		t.Fatalf("env must win over file: %q", cfg.SlideDir)
	}
	if cfg.Player != "/usr/bin/mpv" {
		t.Fatalf("file value lost: %q", cfg.Player)
	}
	if cfg.Display.Width != 1024 || cfg.Display.Height != 600 {
		t.Fatalf("display %+v", cfg.Display)
	}
	if !cfg.CORS.Enabled || len(cfg.CORS.Origins) != 2 || cfg.CORS.Origins[1] != "http://b" {
		t.Fatalf("cors %+v", cfg.CORS)
	}
	if cfg.Slideshow.Transition != "fade" || cfg.LogLevel != "info" {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
}

func TestRun_InvalidConfigExitsNonZero(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"--server-url", "http://controller"}, &stdout, &stderr)
	if code != 1 {
		t.Fatalf("exit code %d", code)
	}
	if !strings.Contains(stderr.String(), "server_url") {
		t.Fatalf("stderr=%q", stderr.String())
	}
}

func TestRun_Version(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"version"}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit code %d stderr=%q", code, stderr.String())
	}
	if !strings.HasPrefix(stdout.String(), "scorepanel ") {
		t.Fatalf("stdout=%q", stdout.String())
	}
}
