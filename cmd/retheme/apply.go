package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/tsawler/retheme"
	"github.com/tsawler/retheme/internal/config"
	"github.com/tsawler/retheme/theme"
)

type applyOptions struct {
	theme      string
	configFile string
	profile    string
	title      string
	closing    string
	deflt      string
	output     string
	force      bool
}

func newApplyCmd() *cobra.Command {
	var opts applyOptions

	cmd := &cobra.Command{
		Use:   "apply DECK",
		Short: "Apply a theme to a presentation",
		Long: `Apply replaces the slide master and theme of DECK with those of --theme and
writes the result to --output (default: DECK_fixed with the same extension).

Layout names come from, in order of precedence: --title/--closing/--default,
the --config file (or $` + config.EnvConfig + `), and the built-in --profile.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApply(cmd, args[0], opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.theme, "theme", "t", "", "Template or presentation providing the new master (required)")
	f.StringVarP(&opts.configFile, "config", "c", "", "Layout profile file (YAML or TOML)")
	f.StringVarP(&opts.profile, "profile", "p", "", "Built-in layout profile ("+strings.Join(config.ProfileNames(), ", ")+")")
	f.StringVar(&opts.title, "title", "", "Layout name for the first slide")
	f.StringVar(&opts.closing, "closing", "", "Layout name for the last slide")
	f.StringVar(&opts.deflt, "default", "", "Layout name for slides without a matching layout")
	f.StringVarP(&opts.output, "output", "o", "", "Output file")
	f.BoolVarP(&opts.force, "force", "f", false, "Process files whose name contains \"template\"")
	_ = cmd.MarkFlagRequired("theme")

	return cmd
}

func runApply(cmd *cobra.Command, deck string, opts applyOptions) error {
	if !opts.force && isTemplateName(deck) {
		return fmt.Errorf("%s looks like a template and is not processed (use --force to override)", deck)
	}

	fileCfg, _, err := config.LoadDefault(opts.configFile)
	if err != nil {
		return err
	}
	cfg := theme.Config{
		TitleLayout:   opts.title,
		ClosingLayout: opts.closing,
		DefaultLayout: opts.deflt,
	}.Merge(fileCfg)

	out := opts.output
	if out == "" {
		out = fixedName(deck)
	}

	t := retheme.Open(deck).
		Theme(opts.theme).
		Layouts(cfg).
		Logger(loggerFor(cmd))
	if opts.profile != "" {
		t = t.Profile(opts.profile)
	}

	report, err := t.SaveAs(out)
	if err != nil {
		return err
	}

	printReport(cmd.OutOrStdout(), cmd.ErrOrStderr(), report)
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", color.GreenString("wrote"), out)
	return nil
}

// printReport lists each slide's binding and any warnings.
func printReport(out, errOut io.Writer, report *theme.Report) {
	for _, b := range report.Bindings {
		old := b.OldLayout
		if old == "" {
			old = "-"
		}
		_, _ = fmt.Fprintf(out, "%d\t%s\t%s -> %s\n", b.Index+1, b.Rule, old, b.NewLayout)
	}
	warn := color.New(color.FgYellow)
	for _, w := range report.Warnings {
		_, _ = warn.Fprintf(errOut, "warning: %v\n", w)
	}
}

// isTemplateName reports whether the file's base name mentions "template".
func isTemplateName(filename string) bool {
	return strings.Contains(strings.ToLower(filepath.Base(filename)), "template")
}

// fixedName derives the default output name: deck.pptx -> deck_fixed.pptx.
func fixedName(filename string) string {
	ext := filepath.Ext(filename)
	if ext == "" {
		ext = ".pptx"
	}
	return strings.TrimSuffix(filename, filepath.Ext(filename)) + "_fixed" + ext
}
