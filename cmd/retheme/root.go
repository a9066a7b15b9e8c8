package main

import (
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/tsawler/retheme/internal/logging"
	"github.com/tsawler/retheme/opc"
	"github.com/tsawler/retheme/theme"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "retheme",
		Short: "Apply a template's slide master and theme to a presentation",
		Long: `retheme replaces the slide master and theme of a presentation with those of
a template and binds every slide to a layout of the new master: the first
slide to the title layout, the last to the closing layout, and the others to
the layout of the same name or the default layout.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Persistent flags (available to all commands)
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Log progress to stderr")
	cmd.PersistentFlags().Bool("debug", false, "Log every slide decision to stderr")

	cmd.AddCommand(
		newApplyCmd(),
		newLayoutsCmd(),
		newInspectCmd(),
		newVersionCmd(),
	)
	return cmd
}

// loggerFor builds the logger selected by the persistent flags.
func loggerFor(cmd *cobra.Command) *slog.Logger {
	verbose, _ := cmd.Flags().GetBool("verbose")
	debug, _ := cmd.Flags().GetBool("debug")
	return logging.NewWriter(cmd.ErrOrStderr(), logging.LevelFor(verbose, debug))
}

// describeError adds a hint to the engine errors a user can act on.
func describeError(err error) string {
	msg := err.Error()

	var missing *theme.DefaultLayoutMissingError
	var ambiguous *theme.AmbiguousMasterError
	var malformed *theme.MalformedDocumentError
	var notFound *opc.PartNotFoundError
	switch {
	case errors.As(err, &missing):
		return msg + " (run 'retheme layouts THEME' to list the available names)"
	case errors.Is(err, theme.ErrInvalidConfig):
		return msg + " (set --title, --closing and --default, or use --profile or --config)"
	case errors.As(err, &ambiguous):
		return msg + " (only single-master documents are supported)"
	case errors.As(err, &malformed), errors.As(err, &notFound), errors.Is(err, opc.ErrNotAPackage):
		return msg + " (the file is not a well-formed presentation)"
	}
	return msg
}
