package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tsawler/retheme/pptx"
	"github.com/tsawler/retheme/theme"
)

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect DECK",
		Short: "Show each slide with its role, current layout and title",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := pptx.Open(args[0])
			if err != nil {
				return err
			}
			order, err := theme.Classify(doc)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, s := range doc.Slides() {
				layout := s.Layout
				if layout == "" {
					layout = "-"
				}
				line := fmt.Sprintf("%d\t%s\t%s\t%s", s.Index+1, order.RoleOf(s.RelID), layout, s.Title)
				if s.Hidden {
					line += "\t(hidden)"
				}
				_, _ = fmt.Fprintln(out, line)
			}
			return nil
		},
	}
}
