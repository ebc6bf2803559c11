package main

import "testing"

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "0:00"},
		{59.4, "0:59"},
		{126, "2:06"},
		{3725, "1:02:05"},
		{-3, "0:00"},
	}
	for _, tt := range tests {
		if got := formatTimestamp(tt.seconds); got != tt.want {
			t.Fatalf("formatTimestamp(%f) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestSignalSummary(t *testing.T) {
	tests := []struct {
		name    string
		signals []string
		want    string
	}{
		{"empty", nil, ""},
		{"single", []string{"audio:volume_spike"}, "Volume Spike"},
		{"mixed", []string{"audio:density", "event:multi_kill"}, "Density + Multi Kill"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := signalSummary(tt.signals); got != tt.want {
				t.Fatalf("signalSummary(%v) = %q, want %q", tt.signals, got, tt.want)
			}
		})
	}
}
