package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func stderrIsTerminal() bool {
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// formatTimestamp renders seconds as m:ss or h:mm:ss.
func formatTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(seconds + 0.5)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// signalSummary renders a signal list like "Volume Spike + Multi Kill" for
// table cells.
func signalSummary(signals []string) string {
	if len(signals) == 0 {
		return ""
	}
	labels := make([]string, 0, len(signals))
	for _, s := range signals {
		if _, name, ok := strings.Cut(s, ":"); ok {
			s = name
		}
		labels = append(labels, titleCaser.String(strings.ReplaceAll(s, "_", " ")))
	}
	return strings.Join(labels, " + ")
}
