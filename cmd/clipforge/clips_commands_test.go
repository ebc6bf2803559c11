package main

import (
	"context"
	"testing"
	"time"

	"clipforge/internal/config"
	"clipforge/internal/store"
)

func seedRun(t *testing.T, configPath, runID string) {
	t.Helper()

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	st, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer st.Close()

	run := store.Run{
		ID:              runID,
		SourcePath:      "/videos/scrim.mp4",
		DurationSeconds: 900,
		AnalyzedSeconds: 900,
		ClipCount:       1,
		CreatedAt:       time.Now().UTC(),
	}
	clips := []store.Clip{{
		RunID:     runID,
		Start:     120,
		End:       132,
		Peak:      126,
		Score:     0.77,
		Signals:   []string{"audio:volume_spike", "event:kill"},
		Rationale: "audio volume spike; corroborated by kill",
	}}
	if err := st.SaveRun(context.Background(), run, clips); err != nil {
		t.Fatalf("seed run: %v", err)
	}
}

func TestClipsListAndShow(t *testing.T) {
	configPath := writeTestConfig(t)
	seedRun(t, configPath, "run-cli-1")

	out, _, err := runCLI(t, configPath, "clips", "list")
	if err != nil {
		t.Fatalf("clips list: %v", err)
	}
	requireContains(t, out, "run-cli-1")
	requireContains(t, out, "/videos/scrim.mp4")

	out, _, err = runCLI(t, configPath, "clips", "show", "run-cli-1")
	if err != nil {
		t.Fatalf("clips show: %v", err)
	}
	requireContains(t, out, "2:00")
	requireContains(t, out, "corroborated by kill")
}

func TestClipsShowUnknownRun(t *testing.T) {
	configPath := writeTestConfig(t)

	if _, _, err := runCLI(t, configPath, "clips", "show", "missing-run"); err == nil {
		t.Fatal("expected error for unknown run")
	}
}

func TestClipsDelete(t *testing.T) {
	configPath := writeTestConfig(t)
	seedRun(t, configPath, "run-cli-2")

	out, _, err := runCLI(t, configPath, "clips", "delete", "run-cli-2")
	if err != nil {
		t.Fatalf("clips delete: %v", err)
	}
	requireContains(t, out, "Deleted run run-cli-2")

	out, _, err = runCLI(t, configPath, "clips", "list")
	if err != nil {
		t.Fatalf("clips list: %v", err)
	}
	requireContains(t, out, "No stored runs")
}
