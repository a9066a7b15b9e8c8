package theme

import (
	"fmt"
	"strings"
)

// Config names the layouts the resolver falls back on. The names are
// template and locale specific and must match cSld names in the theme.
type Config struct {
	TitleLayout   string // Layout for the first slide
	ClosingLayout string // Layout for the last slide
	DefaultLayout string // Layout for slides whose old layout name is unknown
}

// Validate checks that every layout name is set.
func (c Config) Validate() error {
	var missing []string
	if strings.TrimSpace(c.TitleLayout) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(c.ClosingLayout) == "" {
		missing = append(missing, "closing")
	}
	if strings.TrimSpace(c.DefaultLayout) == "" {
		missing = append(missing, "default")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s layout name", ErrInvalidConfig, strings.Join(missing, ", "))
	}
	return nil
}

// Merge returns c with every empty field filled from other.
func (c Config) Merge(other Config) Config {
	if c.TitleLayout == "" {
		c.TitleLayout = other.TitleLayout
	}
	if c.ClosingLayout == "" {
		c.ClosingLayout = other.ClosingLayout
	}
	if c.DefaultLayout == "" {
		c.DefaultLayout = other.DefaultLayout
	}
	return c
}
