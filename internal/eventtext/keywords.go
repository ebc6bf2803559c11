package eventtext

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	exactMatchConfidence = 0.9
	fuzzyMatchConfidence = 0.65
)

// keywordEntry binds one event type to the announcement phrases that signal
// it. Entries are checked in order, most specific first, so "penta kill"
// never degrades to a plain kill and "baron" outranks the generic slain
// phrasing.
type keywordEntry struct {
	eventType EventType
	phrases   []string
}

var keywordTable = []keywordEntry{
	{EventMultiKill, []string{"double kill", "triple kill", "quadra kill", "penta kill", "killing spree"}},
	{EventShutdown, []string{"shutdown", "shut down"}},
	{EventBaron, []string{"baron nashor", "slain baron", "baron"}},
	{EventDragon, []string{"elder dragon", "slain the dragon", "dragon"}},
	{EventTurret, []string{"turret destroyed", "tower destroyed", "turret"}},
	{EventKill, []string{"has slain", "enemy slain", "you have slain", "an ally has been slain"}},
}

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// normalizeText lowercases recognizer output, strips diacritics, and
// collapses runs of whitespace so keyword matching sees a stable form.
func normalizeText(raw string) string {
	clean, _, err := transform.String(stripMarks, raw)
	if err != nil {
		clean = raw
	}
	return strings.Join(strings.Fields(strings.ToLower(clean)), " ")
}

// classifyText matches normalized text against the keyword table. Exact
// substring matches score higher than fuzzy all-tokens-present matches.
func classifyText(text string) (EventType, float64, bool) {
	for _, entry := range keywordTable {
		for _, phrase := range entry.phrases {
			if strings.Contains(text, phrase) {
				return entry.eventType, exactMatchConfidence, true
			}
		}
	}
	for _, entry := range keywordTable {
		for _, phrase := range entry.phrases {
			if containsAllTokens(text, phrase) {
				return entry.eventType, fuzzyMatchConfidence, true
			}
		}
	}
	return "", 0, false
}

func containsAllTokens(text, phrase string) bool {
	tokens := strings.Fields(phrase)
	if len(tokens) < 2 {
		return false
	}
	for _, token := range tokens {
		if !strings.Contains(text, token) {
			return false
		}
	}
	return true
}
