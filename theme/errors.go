package theme

import (
	"errors"
	"fmt"

	"github.com/tsawler/retheme/opc"
)

// ErrInvalidConfig wraps layout configuration problems.
var ErrInvalidConfig = errors.New("invalid layout configuration")

// PartNotFoundError reports a part that is not reachable from the part it
// was looked up through.
type PartNotFoundError = opc.PartNotFoundError

// AmbiguousMasterError reports a document that does not have exactly one
// slide master.
type AmbiguousMasterError struct {
	Document string // "target" or "theme"
	Count    int
}

func (e *AmbiguousMasterError) Error() string {
	return fmt.Sprintf("%s document has %d slide masters, want exactly 1", e.Document, e.Count)
}

// MalformedDocumentError reports a structural precondition the document
// does not meet.
type MalformedDocumentError struct {
	Reason string
}

func (e *MalformedDocumentError) Error() string {
	return "malformed document: " + e.Reason
}

// DefaultLayoutMissingError reports a configured layout name that the new
// theme's catalog does not contain.
type DefaultLayoutMissingError struct {
	Name string
	Rule Rule
}

func (e *DefaultLayoutMissingError) Error() string {
	return fmt.Sprintf("%s layout %q not found in theme", e.Rule, e.Name)
}

// MissingNameError reports a layout without a name. It is collected as a
// warning; the layout is left out of the catalog.
type MissingNameError struct {
	Layout string // Part name of the layout
	Err    error
}

func (e *MissingNameError) Error() string {
	return fmt.Sprintf("layout %s has no usable name: %v", e.Layout, e.Err)
}

func (e *MissingNameError) Unwrap() error {
	return e.Err
}
