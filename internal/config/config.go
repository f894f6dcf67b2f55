// Package config loads vkdebug.toml.
//
// The file is looked up from the working directory upwards. Every key is optional;
// keys that are absent keep their defaults and command-line flags override both.
//
//	[filter]
//	severity = "errors-and-warnings"
//	category = "all"
//
//	[output]
//	format = "text"     # auto | text | ndjson
//	path = "-"
//	color = "auto"      # auto | on | off
//	mode = "stream"     # stream | ring | both
//	ring_size = 1024    # records kept by ring and both
//
//	[replay]
//	jobs = 4
//	ui = "off"          # auto | on | off
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"vkdebug/internal/messenger"
	"vkdebug/internal/sink"
)

// FileName is the name searched for by Find.
const FileName = "vkdebug.toml"

// Config is the effective configuration.
type Config struct {
	Path string // file it was loaded from, empty for defaults

	Severity messenger.Severity
	Category messenger.Category

	Format   sink.Format
	Output   string
	Color    string
	Mode     sink.StorageMode
	RingSize int

	Jobs int
	UI   string
}

// Defaults returns the configuration used when no file is found.
func Defaults() Config {
	return Config{
		Severity: messenger.SeverityErrorsAndWarnings,
		Category: messenger.CategoryAll,
		Format:   sink.FormatAuto,
		Output:   "-",
		Color:    "auto",
		Mode:     sink.ModeStream,
		RingSize: 1024,
		Jobs:     1,
		UI:       "off",
	}
}

type fileConfig struct {
	Filter struct {
		Severity messenger.Severity `toml:"severity"`
		Category messenger.Category `toml:"category"`
	} `toml:"filter"`
	Output struct {
		Format   string `toml:"format"`
		Path     string `toml:"path"`
		Color    string `toml:"color"`
		Mode     string `toml:"mode"`
		RingSize int    `toml:"ring_size"`
	} `toml:"output"`
	Replay struct {
		Jobs int    `toml:"jobs"`
		UI   string `toml:"ui"`
	} `toml:"replay"`
}

// Find walks up from startDir looking for FileName.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Discover loads the nearest FileName above startDir, or Defaults when there is none.
func Discover(startDir string) (Config, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Defaults(), nil
	}
	return Load(path)
}

// Load reads path on top of Defaults.
func Load(path string) (Config, error) {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	cfg := Defaults()
	cfg.Path = path
	if meta.IsDefined("filter", "severity") {
		cfg.Severity = raw.Filter.Severity
	}
	if meta.IsDefined("filter", "category") {
		cfg.Category = raw.Filter.Category
	}
	if meta.IsDefined("output", "format") {
		f, err := sink.ParseFormat(raw.Output.Format)
		if err != nil {
			return Config{}, fmt.Errorf("%s: [output].format: %w", path, err)
		}
		cfg.Format = f
	}
	if meta.IsDefined("output", "path") {
		if strings.TrimSpace(raw.Output.Path) == "" {
			return Config{}, fmt.Errorf("%s: [output].path is empty", path)
		}
		cfg.Output = raw.Output.Path
	}
	if meta.IsDefined("output", "color") {
		if err := CheckMode(raw.Output.Color); err != nil {
			return Config{}, fmt.Errorf("%s: [output].color: %w", path, err)
		}
		cfg.Color = raw.Output.Color
	}
	if meta.IsDefined("output", "mode") {
		m, err := sink.ParseMode(raw.Output.Mode)
		if err != nil {
			return Config{}, fmt.Errorf("%s: [output].mode: %w", path, err)
		}
		cfg.Mode = m
	}
	if meta.IsDefined("output", "ring_size") {
		if raw.Output.RingSize < 1 {
			return Config{}, fmt.Errorf("%s: [output].ring_size must be at least 1, got %d", path, raw.Output.RingSize)
		}
		cfg.RingSize = raw.Output.RingSize
	}
	if meta.IsDefined("replay", "jobs") {
		if raw.Replay.Jobs < 1 {
			return Config{}, fmt.Errorf("%s: [replay].jobs must be at least 1, got %d", path, raw.Replay.Jobs)
		}
		cfg.Jobs = raw.Replay.Jobs
	}
	if meta.IsDefined("replay", "ui") {
		if err := CheckMode(raw.Replay.UI); err != nil {
			return Config{}, fmt.Errorf("%s: [replay].ui: %w", path, err)
		}
		cfg.UI = raw.Replay.UI
	}
	return cfg, nil
}

// CheckMode validates an auto|on|off switch.
func CheckMode(mode string) error {
	switch mode {
	case "auto", "on", "off":
		return nil
	default:
		return fmt.Errorf("invalid mode %q (expected: auto|on|off)", mode)
	}
}
