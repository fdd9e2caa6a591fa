package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewValidateCommand creates the validate command, which loads the project
// config and reports what a batch run would see without compiling anything.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the project configuration",
		Long: `Load the project config file, validate it against the schema, and
list the configured collections and their destination rules.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, cmd)
		},
	}
}

func runValidate(opts *RootOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	cfg, err := loadConfig(opts, formatter)
	if err != nil {
		return err
	}

	if formatter.Format == "json" {
		return formatter.Success(cfg)
	}

	fmt.Fprintf(formatter.Writer, "✓ %s is valid: %d collection(s)\n\n", opts.Config, len(cfg.Collections))
	for _, col := range cfg.Collections {
		switch col.Transform {
		case "suffix":
			fmt.Fprintf(formatter.Writer, "  %s: %s/*%s → %s/*%s\n",
				col.Name, col.Dir, col.Suffix, col.Out, col.OutSuffix)
		case "dirname":
			fmt.Fprintf(formatter.Writer, "  %s: %s/**%s → %s/<dir>/%s\n",
				col.Name, col.Dir, col.Suffix, col.Out, col.OutName)
		}
	}
	if cfg.FailFast {
		fmt.Fprintln(formatter.Writer, "\nfail-fast enabled")
	}
	if cfg.Manifest != "" {
		fmt.Fprintf(formatter.Writer, "\nmanifest: %s\n", cfg.Manifest)
	}
	return nil
}
