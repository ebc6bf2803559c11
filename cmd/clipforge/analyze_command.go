package main

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"clipforge/internal/config"
	"clipforge/internal/highlight"
	"clipforge/internal/media/ffmpegsrc"
	"clipforge/internal/store"
)

func newAnalyzeCommand(ctx *commandContext) *cobra.Command {
	var (
		jsonOut bool
		prefix  float64
		noStore bool
	)

	cmd := &cobra.Command{
		Use:   "analyze <video>",
		Short: "Detect highlights in a recorded gameplay video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if prefix > 0 {
				cfg.Clips.AnalysisPrefixSeconds = prefix
			}

			path, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}
			if _, err := os.Stat(path); err != nil {
				return fmt.Errorf("inspect video %q: %w", path, err)
			}

			logger, err := ctx.newLogger(cfg)
			if err != nil {
				return fmt.Errorf("build logger: %w", err)
			}

			src, err := ffmpegsrc.Open(cmd.Context(), cfg, logger, path)
			if err != nil {
				return err
			}

			engine := highlight.New(cfg, logger)
			if !jsonOut && stderrIsTerminal() {
				engine.SetProgress(func(stage string) {
					fmt.Fprintf(cmd.ErrOrStderr(), "  %s done\n", stage)
				})
			}

			report, err := engine.Detect(cmd.Context(), src)
			if err != nil {
				return err
			}

			runID := uuid.NewString()
			run := runFromReport(runID, path, src.Duration(), cfg, report)

			if !noStore {
				st, err := store.Open(cfg)
				if err != nil {
					return err
				}
				defer st.Close()
				if err := st.SaveRun(cmd.Context(), run, clipsFromReport(runID, report)); err != nil {
					return err
				}
			}

			if jsonOut {
				return writeJSON(cmd, analyzeOutput{Run: run, Windows: report.Windows})
			}
			renderReport(cmd, run, report, noStore)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit machine-readable JSON")
	cmd.Flags().Float64Var(&prefix, "prefix", 0, "Analyze only the first N seconds")
	cmd.Flags().BoolVar(&noStore, "no-store", false, "Skip persisting results")
	return cmd
}

type analyzeOutput struct {
	Run     store.Run          `json:"run"`
	Windows []highlight.Window `json:"windows"`
}

func runFromReport(runID, path string, duration float64, cfg *config.Config, report highlight.Report) store.Run {
	return store.Run{
		ID:               runID,
		SourcePath:       path,
		DurationSeconds:  duration,
		AnalyzedSeconds:  report.AnalyzedSeconds,
		PrefixSeconds:    cfg.Clips.AnalysisPrefixSeconds,
		ClipCount:        len(report.Windows),
		DegradedAudio:    report.DegradedAudio,
		GameplayFallback: report.GameplayFallback,
		CreatedAt:        time.Now().UTC(),
	}
}

func clipsFromReport(runID string, report highlight.Report) []store.Clip {
	clips := make([]store.Clip, 0, len(report.Windows))
	for _, w := range report.Windows {
		clips = append(clips, store.Clip{
			RunID:     runID,
			Start:     w.Start,
			End:       w.End,
			Peak:      w.Peak,
			Score:     w.Score,
			Signals:   w.Signals,
			Rationale: w.Rationale,
		})
	}
	return clips
}

func renderReport(cmd *cobra.Command, run store.Run, report highlight.Report, noStore bool) {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Analyzed %s of %s\n",
		formatTimestamp(report.AnalyzedSeconds), run.SourcePath)
	if report.DegradedAudio {
		fmt.Fprintln(out, "Warning: no decodable audio track; detection used video evidence only")
	}
	if report.GameplayFallback {
		fmt.Fprintln(out, "Warning: no HUD detected; gameplay bounds are unverified")
	}
	if report.AudioFallback {
		fmt.Fprintln(out, "Note: sparse audio detections; periodic sampling filled the candidate pool")
	}

	if len(report.Windows) == 0 {
		fmt.Fprintln(out, "No highlights found")
		return
	}

	rows := make([][]string, 0, len(report.Windows))
	for i, w := range report.Windows {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			formatTimestamp(w.Start),
			formatTimestamp(w.End),
			fmt.Sprintf("%.0fs", w.Duration()),
			fmt.Sprintf("%.2f", w.Score),
			signalSummary(w.Signals),
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"#", "Start", "End", "Length", "Score", "Signals"},
		rows,
		[]columnAlignment{alignRight, alignRight, alignRight, alignRight, alignRight, alignLeft},
	))

	if noStore {
		fmt.Fprintln(out, "Results not stored (--no-store)")
		return
	}
	fmt.Fprintf(out, "Saved run %s (%d clips)\n", run.ID, run.ClipCount)
}
