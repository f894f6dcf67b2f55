package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"vkdebug/internal/messenger"
	"vkdebug/internal/sink"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDiscoverWalksUp(t *testing.T) {
	root := t.TempDir()
	path := writeConfig(t, root, "[filter]\nseverity = \"all\"\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	cfg, err := Discover(nested)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if cfg.Path != path {
		t.Fatalf("Path = %q, want %q", cfg.Path, path)
	}
	if cfg.Severity != messenger.SeverityAll {
		t.Errorf("Severity = %v", cfg.Severity)
	}
	// untouched keys keep their defaults
	def := Defaults()
	if cfg.Category != def.Category || cfg.Jobs != def.Jobs || cfg.Output != def.Output ||
		cfg.Mode != sink.ModeStream || cfg.RingSize != def.RingSize {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadAllKeys(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
[filter]
severity = "error|verbose"
category = "validation, performance"

[output]
format = "ndjson"
path = "out.ndjson"
color = "off"
mode = "both"
ring_size = 16

[replay]
jobs = 4
ui = "on"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Severity != messenger.SeverityError|messenger.SeverityVerbose ||
		cfg.Category != messenger.CategoryValidation|messenger.CategoryPerformance {
		t.Errorf("filter = %v / %v", cfg.Severity, cfg.Category)
	}
	if cfg.Format != sink.FormatNDJSON || cfg.Output != "out.ndjson" || cfg.Color != "off" {
		t.Errorf("output = %+v", cfg)
	}
	if cfg.Mode != sink.ModeBoth || cfg.RingSize != 16 {
		t.Errorf("sink = %v / %d", cfg.Mode, cfg.RingSize)
	}
	if cfg.Jobs != 4 || cfg.UI != "on" {
		t.Errorf("replay = %+v", cfg)
	}
}

func TestLoadExplicitNone(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "[filter]\nseverity = \"none\"\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Severity != messenger.SeverityNone {
		t.Fatalf("Severity = %v", cfg.Severity)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name, body, want string
	}{
		{"syntax", "[filter\n", "failed to parse TOML"},
		{"bad severity", "[filter]\nseverity = \"fatal\"\n", "fatal"},
		{"bad format", "[output]\nformat = \"xml\"\n", "[output].format"},
		{"bad color", "[output]\ncolor = \"always\"\n", "[output].color"},
		{"bad mode", "[output]\nmode = \"tape\"\n", "[output].mode"},
		{"ring size", "[output]\nring_size = 0\n", "[output].ring_size"},
		{"empty path", "[output]\npath = \" \"\n", "[output].path"},
		{"jobs", "[replay]\njobs = 0\n", "[replay].jobs"},
		{"ui", "[replay]\nui = true\n", "failed to parse TOML"},
		{"ui mode", "[replay]\nui = \"sometimes\"\n", "[replay].ui"},
		{"unknown key", "[replay]\nworkers = 2\n", "unknown keys: replay.workers"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), tt.body)
			_, err := Load(path)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("Load = %v, want error containing %q", err, tt.want)
			}
		})
	}
}
