// Package theme swaps the slide master and theme of a presentation and
// re-pairs every slide with a layout from the new master.
//
// # Basic Usage
//
//	deck, err := pptx.Open("deck.pptx")
//	tpl, err := pptx.Open("corporate.potx")
//	report, err := theme.Apply(deck, tpl, theme.Config{
//	    TitleLayout:   "Title Slide",
//	    ClosingLayout: "Closing",
//	    DefaultLayout: "Title and Content",
//	})
//	err = deck.SaveFile("deck_fixed.pptx")
//
// # Layout Resolution
//
// Each slide is bound by the first matching rule:
//   - the first slide gets the title layout
//   - the last slide gets the closing layout
//   - a slide whose old layout name exists in the new master keeps that name
//   - anything else gets the default layout
//
// A one-slide deck's slide counts as first.
//
// # Building Blocks
//
// Apply is built from functions that can be used on their own:
//   - Classify: snapshot first/last slide from the slide list
//   - SwapMaster: replace master and theme, keeping the master's relationship ID
//   - BuildCatalog: index a master's layouts by name
//   - Resolve and Relink: choose and bind a slide's layout
package theme
