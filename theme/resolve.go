package theme

import (
	"fmt"

	"github.com/tsawler/retheme/opc"
	"github.com/tsawler/retheme/pptx"
)

// Rule identifies which step of the resolution cascade chose a layout.
type Rule int

const (
	// RuleTitle binds the first slide to the configured title layout.
	RuleTitle Rule = iota + 1
	// RuleClosing binds the last slide to the configured closing layout.
	RuleClosing
	// RuleSameName keeps a slide on the layout with its old layout's name.
	RuleSameName
	// RuleDefault binds everything else to the configured default layout.
	RuleDefault
)

// String returns the rule name.
func (r Rule) String() string {
	switch r {
	case RuleTitle:
		return "title"
	case RuleClosing:
		return "closing"
	case RuleSameName:
		return "same-name"
	case RuleDefault:
		return "default"
	default:
		return "unknown"
	}
}

// Resolve picks the layout for a slide. The first matching rule wins:
//
//  1. First slide: the title layout.
//  2. Last slide: the closing layout.
//  3. The old layout's name, if the catalog has it.
//  4. The default layout.
//
// oldName is empty when the slide had no layout or an unnamed one.
func Resolve(role Role, oldName string, cat *Catalog, cfg Config) (*opc.Part, Rule, error) {
	switch {
	case role == First:
		return lookupConfigured(cat, cfg.TitleLayout, RuleTitle)
	case role == Last:
		return lookupConfigured(cat, cfg.ClosingLayout, RuleClosing)
	}
	if layout, ok := cat.Lookup(oldName); ok {
		return layout, RuleSameName, nil
	}
	return lookupConfigured(cat, cfg.DefaultLayout, RuleDefault)
}

func lookupConfigured(cat *Catalog, name string, rule Rule) (*opc.Part, Rule, error) {
	layout, ok := cat.Lookup(name)
	if !ok {
		return nil, rule, &DefaultLayoutMissingError{Name: name, Rule: rule}
	}
	return layout, rule, nil
}

// Binding records the layout decision for one slide.
type Binding struct {
	Index      int    // Position in processing order
	SlideRelID string // Relationship ID from the presentation part
	Slide      string // Slide part name
	Role       Role
	Rule       Rule
	OldLayout  string // Name of the previous layout, empty if none or unnamed
	NewLayout  string // Name of the bound layout
	LayoutPart string // Part name of the bound layout
}

// currentLayoutName returns the name of the slide's current layout, or ""
// when it has none or the layout is unnamed.
func currentLayoutName(slide *opc.Part) (string, *opc.Part) {
	layout := pptx.LayoutOf(slide)
	if layout == nil {
		return "", nil
	}
	name, err := pptx.LayoutName(layout)
	if err != nil {
		return "", layout
	}
	return name, layout
}

// Relink rebinds one slide to a layout from cat. Every existing layout
// relationship is replaced by a single one that keeps the first one's ID,
// dangling relationships included. The slide is left unchanged when no
// layout resolves.
func Relink(doc *pptx.Presentation, slide *opc.Part, role Role, cat *Catalog, cfg Config) (Binding, error) {
	pkg := doc.Package()
	b := Binding{Slide: slide.Name(), Role: role}

	relType := pptx.RelSlideLayout
	old := pptx.LayoutRelationships(slide)
	if len(old) > 0 {
		relType = old[0].Type
	}
	oldName, _ := currentLayoutName(slide)
	b.OldLayout = oldName

	layout, rule, err := Resolve(role, oldName, cat, cfg)
	b.Rule = rule
	if err != nil {
		return b, err
	}

	id, err := pkg.ReplaceRelationship(slide, relType, layout)
	if err != nil {
		return b, fmt.Errorf("binding layout of %s: %w", slide.Name(), err)
	}

	bound := slide.Target(id)
	b.LayoutPart = bound.Name()
	b.NewLayout, _ = pptx.LayoutName(bound)
	return b, nil
}
