// Package retheme provides a fluent API for applying the slide master and
// theme of one presentation to another.
//
// Basic usage:
//
//	report, err := retheme.Open("deck.pptx").
//	    Theme("brand.potx").
//	    TitleLayout("Title Slide").
//	    ClosingLayout("Closing").
//	    DefaultLayout("Title and Content").
//	    SaveAs("deck_fixed.pptx")
//	if err != nil {
//	    // handle error
//	}
//	if len(report.Warnings) > 0 {
//	    log.Println("Warnings:", retheme.FormatWarnings(report.Warnings))
//	}
//
// Every slide ends up on a layout of the new master: the first slide on the
// title layout, the last on the closing layout, and the rest on the layout
// with the same name as before or, failing that, the default layout.
//
// For lower-level control, see the theme, pptx and opc packages.
package retheme

import (
	"strings"

	"github.com/tsawler/retheme/pptx"
)

// Open returns a Themer for the presentation at filename. The file is read
// when a terminal operation such as Apply or SaveAs runs.
//
// Example:
//
//	report, err := retheme.Open("deck.pptx").Theme("brand.potx").Profile("zh-CN").SaveAs("out.pptx")
func Open(filename string) *Themer {
	return &Themer{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromPresentation returns a Themer for an already opened presentation.
// Apply mutates p in place.
func FromPresentation(p *pptx.Presentation) *Themer {
	return &Themer{
		deck:    p,
		options: defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	report := retheme.Must(retheme.Open("deck.pptx").Theme("brand.potx").Profile("en-US").SaveAs("out.pptx"))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// FormatWarnings joins warning messages into a single line.
func FormatWarnings(warnings []error) string {
	msgs := make([]string, 0, len(warnings))
	for _, w := range warnings {
		msgs = append(msgs, w.Error())
	}
	return strings.Join(msgs, "; ")
}
