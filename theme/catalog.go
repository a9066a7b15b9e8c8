package theme

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/retheme/opc"
	"github.com/tsawler/retheme/pptx"
)

// Catalog maps layout names to the layout parts of one slide master.
type Catalog struct {
	master  *opc.Part
	layouts map[string]*opc.Part
	names   []string

	// Skipped lists layouts left out because they have no usable name.
	Skipped []*MissingNameError
}

// BuildCatalog indexes the layouts of master by name. When two layouts
// share a name the later one wins.
func BuildCatalog(master *opc.Part) *Catalog {
	c := &Catalog{
		master:  master,
		layouts: make(map[string]*opc.Part),
	}
	for _, layout := range pptx.Layouts(master) {
		name, err := pptx.LayoutName(layout)
		if err != nil {
			c.Skipped = append(c.Skipped, &MissingNameError{Layout: layout.Name(), Err: err})
			continue
		}
		key := normalizeName(name)
		if _, dup := c.layouts[key]; !dup {
			c.names = append(c.names, name)
		}
		c.layouts[key] = layout
	}
	return c
}

// Master returns the slide master the catalog was built from.
func (c *Catalog) Master() *opc.Part {
	return c.master
}

// Lookup returns the layout registered under name.
func (c *Catalog) Lookup(name string) (*opc.Part, bool) {
	if name == "" {
		return nil, false
	}
	layout, ok := c.layouts[normalizeName(name)]
	return layout, ok
}

// Contains reports whether name is in the catalog.
func (c *Catalog) Contains(name string) bool {
	_, ok := c.Lookup(name)
	return ok
}

// Names returns the distinct layout names in master order.
func (c *Catalog) Names() []string {
	return append([]string(nil), c.names...)
}

// Len returns the number of distinct names.
func (c *Catalog) Len() int {
	return len(c.layouts)
}

// normalizeName trims surrounding space and puts names in NFC so that
// composed and decomposed forms of the same text match.
func normalizeName(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}
