package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"clipforge/internal/store"
)

func newClipsCommand(ctx *commandContext) *cobra.Command {
	clipsCmd := &cobra.Command{
		Use:   "clips",
		Short: "Browse stored analysis runs",
	}

	clipsCmd.AddCommand(newClipsListCommand(ctx))
	clipsCmd.AddCommand(newClipsShowCommand(ctx))
	clipsCmd.AddCommand(newClipsDeleteCommand(ctx))
	return clipsCmd
}

func newClipsListCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored runs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(ctx, func(st *store.Store) error {
				runs, err := st.ListRuns(cmd.Context(), limit)
				if err != nil {
					return err
				}
				if jsonOut {
					return writeJSON(cmd, runs)
				}
				if len(runs) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No stored runs")
					return nil
				}

				rows := make([][]string, 0, len(runs))
				for _, run := range runs {
					rows = append(rows, []string{
						run.ID,
						run.SourcePath,
						formatTimestamp(run.DurationSeconds),
						fmt.Sprintf("%d", run.ClipCount),
						run.CreatedAt.Local().Format("2006-01-02 15:04"),
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"Run", "Source", "Duration", "Clips", "Created"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignLeft},
				))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit machine-readable JSON")
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum runs to list (0 for all)")
	return cmd
}

func newClipsShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show the clips of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(ctx, func(st *store.Store) error {
				run, err := st.GetRun(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				clips, err := st.ClipsForRun(cmd.Context(), run.ID)
				if err != nil {
					return err
				}
				if jsonOut {
					return writeJSON(cmd, struct {
						Run   store.Run    `json:"run"`
						Clips []store.Clip `json:"clips"`
					}{run, clips})
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Run %s\n", run.ID)
				fmt.Fprintf(out, "Source: %s\n", run.SourcePath)
				fmt.Fprintf(out, "Analyzed: %s of %s\n",
					formatTimestamp(run.AnalyzedSeconds), formatTimestamp(run.DurationSeconds))
				if run.DegradedAudio {
					fmt.Fprintln(out, "Audio was degraded for this run")
				}
				if run.GameplayFallback {
					fmt.Fprintln(out, "Gameplay bounds were unverified for this run")
				}

				if len(clips) == 0 {
					fmt.Fprintln(out, "No clips recorded")
					return nil
				}
				rows := make([][]string, 0, len(clips))
				for i, clip := range clips {
					rows = append(rows, []string{
						fmt.Sprintf("%d", i+1),
						formatTimestamp(clip.Start),
						formatTimestamp(clip.End),
						fmt.Sprintf("%.2f", clip.Score),
						clip.Rationale,
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"#", "Start", "End", "Score", "Why"},
					rows,
					[]columnAlignment{alignRight, alignRight, alignRight, alignRight, alignLeft},
				))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit machine-readable JSON")
	return cmd
}

func newClipsDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <run-id>",
		Short: "Delete a stored run and its clips",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(ctx, func(st *store.Store) error {
				if err := st.DeleteRun(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted run %s\n", args[0])
				return nil
			})
		},
	}
}

func withStore(ctx *commandContext, fn func(*store.Store) error) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	st, err := store.Open(cfg)
	if err != nil {
		return err
	}
	defer st.Close()
	return fn(st)
}
