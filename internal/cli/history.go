package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/weftdocs/weft/internal/manifest"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Limit int
}

// NewHistoryCommand creates the history command, which lists recent compile
// runs from the manifest.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "history",
		Short:         "List recent compile runs from the manifest",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 10, "number of runs to show")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	cfg, err := loadConfig(opts.RootOptions, formatter)
	if err != nil {
		return err
	}
	if cfg.Manifest == "" {
		return outputCommandError(formatter, ErrCodeManifest, "no manifest configured (set manifest in the config file or pass --manifest)")
	}

	store, err := manifest.Open(cfg.Manifest)
	if err != nil {
		return outputCommandError(formatter, ErrCodeManifest, fmt.Sprintf("opening manifest: %v", err))
	}
	defer store.Close()

	runs, err := store.RecentRuns(cmd.Context(), opts.Limit)
	if err != nil {
		return outputCommandError(formatter, ErrCodeManifest, fmt.Sprintf("reading manifest: %v", err))
	}

	if formatter.Format == "json" {
		return formatter.Success(runs)
	}

	if len(runs) == 0 {
		fmt.Fprintln(formatter.Writer, "No recorded runs")
		return nil
	}

	for _, r := range runs {
		mark := "✓"
		if r.Failed > 0 {
			mark = "✗"
		}
		finished := r.FinishedAt
		if finished == "" {
			finished = "(unfinished)"
		}
		fmt.Fprintf(formatter.Writer, "%s %s  %s  %d entr(ies), %d failed\n",
			mark, r.ID, finished, r.Entries, r.Failed)
	}
	return nil
}
