package theme

import "github.com/tsawler/retheme/pptx"

// Role is a slide's position-derived classification.
type Role int

const (
	// Interior is any slide that is neither first nor last.
	Interior Role = iota
	// First is the first slide of the slide list.
	First
	// Last is the last slide of the slide list.
	Last
)

// String returns the role name.
func (r Role) String() string {
	switch r {
	case First:
		return "first"
	case Last:
		return "last"
	default:
		return "interior"
	}
}

// SlideOrder is a snapshot of the presentation's ordered slide list.
type SlideOrder struct {
	First   string // Relationship ID of the first slide
	Last    string // Relationship ID of the last slide
	Ordered []pptx.SlideRef
}

// Classify snapshots the slide list of doc. It must run before the document
// is mutated.
func Classify(doc *pptx.Presentation) (*SlideOrder, error) {
	refs, ok := doc.SlideRefs()
	if !ok {
		return nil, &MalformedDocumentError{Reason: "presentation has no slide list"}
	}
	if len(refs) == 0 {
		return nil, &MalformedDocumentError{Reason: "presentation slide list is empty"}
	}
	return &SlideOrder{
		First:   refs[0].RelID,
		Last:    refs[len(refs)-1].RelID,
		Ordered: refs,
	}, nil
}

// RoleOf returns the role of the slide with the given relationship ID. A
// single-slide deck's only slide is First.
func (o *SlideOrder) RoleOf(relID string) Role {
	switch relID {
	case o.First:
		return First
	case o.Last:
		return Last
	default:
		return Interior
	}
}
