package eventtext

import "testing"

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"lowercases", "DOUBLE KILL", "double kill"},
		{"collapses whitespace", "  an   ally has\nbeen  slain ", "an ally has been slain"},
		{"strips diacritics", "Pentá Kíll", "penta kill"},
		{"empty", "   \n\t ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizeText(tt.raw); got != tt.want {
				t.Fatalf("normalizeText(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestClassifyText(t *testing.T) {
	tests := []struct {
		name           string
		text           string
		wantType       EventType
		wantConfidence float64
		wantMatch      bool
	}{
		{"exact kill", "you have slain an enemy", EventKill, exactMatchConfidence, true},
		{"exact multi kill", "double kill", EventMultiKill, exactMatchConfidence, true},
		{"exact shutdown", "enemy shutdown", EventShutdown, exactMatchConfidence, true},
		{"exact baron", "your team has slain baron nashor", EventBaron, exactMatchConfidence, true},
		{"exact dragon", "your team has slain the dragon", EventDragon, exactMatchConfidence, true},
		{"exact turret", "turret destroyed", EventTurret, exactMatchConfidence, true},
		{"multi kill outranks kill", "penta kill you have slain an enemy", EventMultiKill, exactMatchConfidence, true},
		{"fuzzy token match", "kill streak double bonus", EventMultiKill, fuzzyMatchConfidence, true},
		{"no match", "welcome to the arena", "", 0, false},
		{"single stray token", "kill", "", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotType, gotConfidence, gotMatch := classifyText(tt.text)
			if gotMatch != tt.wantMatch {
				t.Fatalf("classifyText(%q) match = %v, want %v", tt.text, gotMatch, tt.wantMatch)
			}
			if !tt.wantMatch {
				return
			}
			if gotType != tt.wantType || gotConfidence != tt.wantConfidence {
				t.Fatalf("classifyText(%q) = (%s, %f), want (%s, %f)",
					tt.text, gotType, gotConfidence, tt.wantType, tt.wantConfidence)
			}
		})
	}
}
