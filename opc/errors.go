package opc

import (
	"errors"
	"fmt"
)

// ErrNotAPackage is returned when a ZIP archive has no [Content_Types].xml.
var ErrNotAPackage = errors.New("not an OPC package: missing [Content_Types].xml")

// ErrDuplicateRelationshipID is returned when AddPart is asked to reuse a
// relationship ID the owner already has.
var ErrDuplicateRelationshipID = errors.New("relationship ID already in use")

// ErrForeignPart is returned when a part from another package is used where
// a part of this package is required.
var ErrForeignPart = errors.New("part belongs to a different package")

// PartNotFoundError reports a part that is not reachable from the owner it
// was looked up through.
type PartNotFoundError struct {
	Owner string // Part name of the owner ("/" for the package root)
	Part  string // Part name that was looked up
}

func (e *PartNotFoundError) Error() string {
	return fmt.Sprintf("part %s not found from %s", e.Part, e.Owner)
}
