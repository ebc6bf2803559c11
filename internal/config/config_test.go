package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"clipforge/internal/config"
)

func TestLoadDefaultsAndExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantStore := filepath.Join(tempHome, ".local", "share", "clipforge")
	if cfg.Paths.StoreDir != wantStore {
		t.Fatalf("unexpected store dir: got %q want %q", cfg.Paths.StoreDir, wantStore)
	}
	if cfg.Logging.Format != "console" {
		t.Fatalf("unexpected log format: %q", cfg.Logging.Format)
	}
	if cfg.Audio.SpikeMultiplier != 3.0 {
		t.Fatalf("unexpected spike multiplier: %v", cfg.Audio.SpikeMultiplier)
	}
	if cfg.Clips.MaxHighlights != 8 {
		t.Fatalf("unexpected max highlights: %d", cfg.Clips.MaxHighlights)
	}
	if cfg.Clips.AnalysisPrefixSeconds != 0 {
		t.Fatalf("expected full-duration analysis by default, got %v", cfg.Clips.AnalysisPrefixSeconds)
	}
	if cfg.FFmpegBinary() != "ffmpeg" || cfg.FFprobeBinary() != "ffprobe" {
		t.Fatalf("unexpected tool binaries: %q %q", cfg.FFmpegBinary(), cfg.FFprobeBinary())
	}
}

func TestLoadOverridesFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	body := strings.Join([]string{
		"[clips]",
		"min_clip_seconds = 5.0",
		"max_clip_seconds = 20.0",
		"max_highlights = 3",
		"",
		"[audio]",
		"spike_multiplier = 4.5",
		"",
		"[tools]",
		`tesseract = ""`,
	}, "\n")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to exist")
	}
	if cfg.Clips.MinClipSeconds != 5.0 || cfg.Clips.MaxClipSeconds != 20.0 {
		t.Fatalf("clip bounds not honored: %+v", cfg.Clips)
	}
	if cfg.Clips.MaxHighlights != 3 {
		t.Fatalf("max highlights not honored: %d", cfg.Clips.MaxHighlights)
	}
	if cfg.Audio.SpikeMultiplier != 4.5 {
		t.Fatalf("spike multiplier not honored: %v", cfg.Audio.SpikeMultiplier)
	}
	if cfg.TesseractBinary() != "" {
		t.Fatalf("expected empty tesseract binary to disable recognition, got %q", cfg.TesseractBinary())
	}
}

func TestValidateRejectsInvertedClipBounds(t *testing.T) {
	cfg := config.Default()
	cfg.Clips.MinClipSeconds = 30
	cfg.Clips.MaxClipSeconds = 10
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error when min_clip_seconds exceeds max_clip_seconds")
	}
}

func TestValidateRejectsBadThresholds(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"spike multiplier too low", func(c *config.Config) { c.Audio.SpikeMultiplier = 1.0 }},
		{"hop exceeds window", func(c *config.Config) { c.Audio.HopSeconds = 5 }},
		{"overlap fraction zero", func(c *config.Config) { c.Clips.MinGameplayOverlap = 0 }},
		{"negative prefix", func(c *config.Config) { c.Clips.AnalysisPrefixSeconds = -1 }},
		{"bad matched regions", func(c *config.Config) { c.HUD.MinMatchedRegions = 4 }},
		{"confidence floor above one", func(c *config.Config) { c.Events.ConfidenceFloor = 1.5 }},
	}
	for _, tc := range cases {
		cfg := config.Default()
		tc.mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Fatalf("%s: expected validation error", tc.name)
		}
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(data), "[clips]") {
		t.Fatalf("sample config missing clips section")
	}
}
