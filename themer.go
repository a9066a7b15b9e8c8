package retheme

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/tsawler/retheme/format"
	"github.com/tsawler/retheme/internal/config"
	"github.com/tsawler/retheme/pptx"
	"github.com/tsawler/retheme/theme"
)

// Themer provides a fluent interface for applying a theme to a
// presentation. Each configuration method returns a new Themer instance,
// so a partially configured Themer can be reused as a base.
type Themer struct {
	// Target deck
	filename string
	deck     *pptx.Presentation

	// Theme source
	themeFile string
	theme     *pptx.Presentation

	// Configuration
	options ApplyOptions
}

// clone creates a shallow copy of the Themer with a copy of options.
func (t *Themer) clone() *Themer {
	return &Themer{
		filename:  t.filename,
		deck:      t.deck,
		themeFile: t.themeFile,
		theme:     t.theme,
		options:   t.options.clone(),
	}
}

// ============================================================================
// Configuration Methods (return new Themer instance)
// ============================================================================

// Theme sets the file whose master and theme are applied. Any PresentationML
// package works; templates (.potx) are the usual choice.
//
// Example:
//
//	retheme.Open("deck.pptx").Theme("brand.potx")
func (t *Themer) Theme(filename string) *Themer {
	n := t.clone()
	n.themeFile = filename
	n.theme = nil
	return n
}

// ThemeFrom sets an already opened theme source. It is only read.
func (t *Themer) ThemeFrom(p *pptx.Presentation) *Themer {
	n := t.clone()
	n.themeFile = ""
	n.theme = p
	return n
}

// TitleLayout sets the layout name for the first slide.
func (t *Themer) TitleLayout(name string) *Themer {
	n := t.clone()
	n.options.layouts.TitleLayout = name
	return n
}

// ClosingLayout sets the layout name for the last slide.
func (t *Themer) ClosingLayout(name string) *Themer {
	n := t.clone()
	n.options.layouts.ClosingLayout = name
	return n
}

// DefaultLayout sets the layout name for slides whose old layout has no
// counterpart in the theme.
func (t *Themer) DefaultLayout(name string) *Themer {
	n := t.clone()
	n.options.layouts.DefaultLayout = name
	return n
}

// Layouts sets all layout names at once. Empty fields in cfg leave the
// current value in place.
func (t *Themer) Layouts(cfg theme.Config) *Themer {
	n := t.clone()
	n.options.layouts = cfg.Merge(n.options.layouts)
	return n
}

// Profile fills layout names that were not set explicitly from a built-in
// profile such as "zh-CN" or "en-US".
func (t *Themer) Profile(name string) *Themer {
	n := t.clone()
	n.options.profile = name
	return n
}

// Logger sets the logger for progress messages.
func (t *Themer) Logger(l *slog.Logger) *Themer {
	n := t.clone()
	if l != nil {
		n.options.logger = l
	}
	return n
}

// ============================================================================
// Terminal Methods
// ============================================================================

// Config returns the layout configuration Apply would use.
func (t *Themer) Config() (theme.Config, error) {
	cfg := t.options.layouts
	if t.options.profile != "" {
		base, err := config.Profile(t.options.profile)
		if err != nil {
			return theme.Config{}, err
		}
		cfg = cfg.Merge(base)
	}
	return cfg, cfg.Validate()
}

// Apply opens the inputs as needed and applies the theme. The returned
// presentation holds the result in memory.
func (t *Themer) Apply() (*pptx.Presentation, *theme.Report, error) {
	cfg, err := t.Config()
	if err != nil {
		return nil, nil, err
	}

	deck := t.deck
	if deck == nil {
		if deck, err = openPresentation(t.filename, "presentation"); err != nil {
			return nil, nil, err
		}
	}

	src := t.theme
	if src == nil {
		if t.themeFile == "" {
			return nil, nil, fmt.Errorf("no theme specified")
		}
		if src, err = openPresentation(t.themeFile, "theme"); err != nil {
			return nil, nil, err
		}
	}

	report, err := theme.Apply(deck, src, cfg, theme.WithLogger(t.options.logger))
	if err != nil {
		return nil, report, err
	}
	return deck, report, nil
}

// SaveAs applies the theme and writes the result to filename. Nothing is
// written if Apply fails.
//
// Example:
//
//	report, err := retheme.Open("deck.pptx").Theme("brand.potx").Profile("zh-CN").SaveAs("deck_fixed.pptx")
func (t *Themer) SaveAs(filename string) (*theme.Report, error) {
	deck, report, err := t.Apply()
	if err != nil {
		return report, err
	}
	if err := deck.SaveFile(filename); err != nil {
		return report, fmt.Errorf("failed to save %s: %w", filename, err)
	}
	return report, nil
}

// Write applies the theme and writes the resulting package to w.
func (t *Themer) Write(w io.Writer) (*theme.Report, error) {
	deck, report, err := t.Apply()
	if err != nil {
		return report, err
	}
	if err := deck.Save(w); err != nil {
		return report, err
	}
	return report, nil
}

// openPresentation opens filename after checking it holds a PresentationML
// package. Unrecognised extensions fall back to content detection.
func openPresentation(filename, role string) (*pptx.Presentation, error) {
	if filename == "" {
		return nil, fmt.Errorf("no %s filename specified", role)
	}
	f := format.Detect(filename)
	if f == format.Unknown {
		var err error
		if f, err = format.DetectFile(filename); err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", role, err)
		}
	}
	if !f.IsPresentation() {
		return nil, fmt.Errorf("unsupported %s format: %s", role, f)
	}
	p, err := pptx.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", role, err)
	}
	return p, nil
}
