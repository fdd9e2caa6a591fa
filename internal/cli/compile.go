package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/weftdocs/weft/internal/batch"
	"github.com/weftdocs/weft/internal/config"
	"github.com/weftdocs/weft/internal/docstore"
	"github.com/weftdocs/weft/internal/manifest"
)

// runCompile implements the root command: full-batch with no arguments,
// single-entry with one.
func runCompile(opts *RootOptions, args []string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}

	cfg, err := loadConfig(opts, formatter)
	if err != nil {
		return err
	}

	store := docstore.NewFS()

	var man *manifest.Store
	if cfg.Manifest != "" {
		man, err = manifest.Open(cfg.Manifest)
		if err != nil {
			return outputCommandError(formatter, ErrCodeManifest, fmt.Sprintf("opening manifest: %v", err))
		}
		defer man.Close()
	}

	driver := batch.New(store, cfg, man)
	ctx := cmd.Context()

	var sum *batch.Summary
	if len(args) == 1 {
		entry, absErr := filepath.Abs(args[0])
		if absErr != nil {
			return outputCommandError(formatter, ErrCodeBadPath, fmt.Sprintf("resolving entry path: %v", absErr))
		}
		formatter.VerboseLog("Compiling single entry %s", entry)
		sum, err = driver.Single(ctx, entry)
	} else {
		formatter.VerboseLog("Compiling %d collection(s) from %s", len(cfg.Collections), opts.Config)
		sum, err = driver.Run(ctx)
	}
	if err != nil {
		return outputCommandError(formatter, ErrCodeGeneric, err.Error())
	}

	return outputSummary(formatter, sum)
}

// loadConfig loads the project config and applies flag overrides.
func loadConfig(opts *RootOptions, formatter *OutputFormatter) (*config.Config, error) {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		var cfgErr *config.ConfigError
		if errors.As(err, &cfgErr) {
			return nil, outputCommandError(formatter, cfgErr.Code, cfgErr.Message)
		}
		return nil, outputCommandError(formatter, ErrCodeGeneric, err.Error())
	}
	if opts.FailFast {
		cfg.FailFast = true
	}
	if opts.Manifest != "" {
		cfg.Manifest = opts.Manifest
	}
	return cfg, nil
}

// outputSummary renders the batch summary and maps failures to exit codes.
func outputSummary(formatter *OutputFormatter, sum *batch.Summary) error {
	if formatter.Format == "json" {
		if err := formatter.Success(sum); err != nil {
			return err
		}
	} else {
		renderSummaryText(formatter, sum)
	}

	if sum.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d entr(ies) failed to compile", sum.Failed))
	}
	return nil
}

// renderSummaryText writes the human-readable summary.
func renderSummaryText(formatter *OutputFormatter, sum *batch.Summary) {
	mark := "✓"
	if sum.Failed > 0 {
		mark = "✗"
	}
	fmt.Fprintf(formatter.Writer, "%s Compiled %d entr(ies), %d failed\n\n", mark, len(sum.Results), sum.Failed)

	for _, res := range sum.Results {
		switch {
		case res.Err != nil:
			fmt.Fprintf(formatter.Writer, "  %s: failed: %v\n", res.Entry, res.Err)
		default:
			fmt.Fprintf(formatter.Writer, "  %s → %s\n", res.Entry, res.Output)
		}
	}

	diagCount := 0
	for _, res := range sum.Results {
		diagCount += len(res.Diags)
	}
	if diagCount > 0 {
		fmt.Fprintf(formatter.Writer, "\nDiagnostics:\n")
		for _, res := range sum.Results {
			for _, d := range res.Diags {
				fmt.Fprintf(formatter.Writer, "  %s\n", d)
			}
		}
	}

	if sum.Aborted {
		fmt.Fprintln(formatter.Writer, "\nBatch aborted after first failure (fail-fast)")
	}
	if sum.RunID != "" {
		fmt.Fprintf(formatter.Writer, "\nRecorded run %s\n", sum.RunID)
	}
}

// outputCommandError renders a command-level error and wraps it with the
// command-error exit code.
func outputCommandError(formatter *OutputFormatter, code, message string) error {
	_ = formatter.Error(code, message, nil)
	return WrapExitError(ExitCommandError, fmt.Sprintf("%s: %s", code, message), nil)
}

// Error code constants - unified across all CLI commands. Config loading
// uses the config package's C0xx codes; these cover the rest.
const (
	ErrCodeGeneric  = "E001" // Generic/unknown error
	ErrCodeBadPath  = "E002" // Entry path could not be resolved
	ErrCodeManifest = "E003" // Manifest database error
)
