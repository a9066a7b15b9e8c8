package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/tsawler/retheme/pptx"
	"github.com/tsawler/retheme/theme"
)

func newLayoutsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "layouts THEME",
		Short: "List the layout names of a theme's slide master",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := pptx.Open(args[0])
			if err != nil {
				return err
			}
			masters := doc.Masters()
			if len(masters) != 1 {
				return &theme.AmbiguousMasterError{Document: "theme", Count: len(masters)}
			}

			cat := theme.BuildCatalog(masters[0])
			out := cmd.OutOrStdout()
			for i, name := range cat.Names() {
				layout, _ := cat.Lookup(name)
				_, _ = fmt.Fprintf(out, "%d\t%s\t%s\n", i+1, pptx.LayoutType(layout), name)
			}

			warn := color.New(color.FgYellow)
			for _, skipped := range cat.Skipped {
				_, _ = warn.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", skipped)
			}
			return nil
		},
	}
}
