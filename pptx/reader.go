package pptx

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tsawler/retheme/opc"
)

// ErrNotPresentation is returned when a package's main part is not a
// PresentationML presentation.
var ErrNotPresentation = errors.New("package does not contain a presentation")

// ErrNoName is returned by LayoutName for layouts without a cSld name.
var ErrNoName = errors.New("layout has no name")

// Presentation is a PresentationML view over an opc.Package.
type Presentation struct {
	pkg          *opc.Package
	part         *opc.Part
	presentation *presentationXML
}

// SlideRef is one entry of the presentation's ordered slide list.
type SlideRef struct {
	ID    string // p:sldId/@id
	RelID string // r:id from the presentation part to the slide part
}

// Open opens a PPTX, POTX or PPSX file.
func Open(filename string) (*Presentation, error) {
	pkg, err := opc.Open(filename)
	if err != nil {
		return nil, err
	}
	return FromPackage(pkg)
}

// OpenReader opens a presentation from r, which holds size bytes.
func OpenReader(r io.ReaderAt, size int64) (*Presentation, error) {
	pkg, err := opc.OpenReader(r, size)
	if err != nil {
		return nil, err
	}
	return FromPackage(pkg)
}

// FromPackage locates and parses the presentation main part of pkg.
func FromPackage(pkg *opc.Package) (*Presentation, error) {
	var part *opc.Part
	for _, t := range pkg.Root().Targets(opc.RelOfficeDocument) {
		if IsPresentationContentType(t.ContentType()) {
			part = t
			break
		}
	}
	if part == nil {
		return nil, ErrNotPresentation
	}

	p := &Presentation{pkg: pkg, part: part}
	if err := p.parsePresentation(); err != nil {
		return nil, fmt.Errorf("parsing presentation: %w", err)
	}
	return p, nil
}

// IsPresentationContentType reports whether ct is the content type of a
// presentation, template, slideshow or macro-enabled presentation main part.
func IsPresentationContentType(ct string) bool {
	switch ct {
	case ContentTypePresentation, ContentTypeTemplate, ContentTypeSlideshow,
		ContentTypeMacroEnabled, ContentTypeMacroTemplate:
		return true
	}
	return false
}

// parsePresentation parses the main presentation part.
func (p *Presentation) parsePresentation() error {
	p.presentation = &presentationXML{}
	return xml.Unmarshal(p.part.Data(), p.presentation)
}

// Package returns the underlying package.
func (p *Presentation) Package() *opc.Package {
	return p.pkg
}

// Part returns the presentation main part.
func (p *Presentation) Part() *opc.Part {
	return p.part
}

// Save writes the presentation package.
func (p *Presentation) Save(w io.Writer) error {
	return p.pkg.Save(w)
}

// SaveFile writes the presentation package to filename.
func (p *Presentation) SaveFile(filename string) error {
	return p.pkg.SaveFile(filename)
}

// SlideRefs returns the ordered slide list (p:sldIdLst). ok is false when
// the presentation has no slide list element at all.
func (p *Presentation) SlideRefs() (refs []SlideRef, ok bool) {
	if p.presentation.SlideIdList == nil {
		return nil, false
	}
	refs = make([]SlideRef, 0, len(p.presentation.SlideIdList.SlideId))
	for _, s := range p.presentation.SlideIdList.SlideId {
		refs = append(refs, SlideRef{ID: s.ID, RelID: s.RID})
	}
	return refs, true
}

// SlideCount returns the number of entries in the slide list.
func (p *Presentation) SlideCount() int {
	if p.presentation.SlideIdList == nil {
		return 0
	}
	return len(p.presentation.SlideIdList.SlideId)
}

// Slide returns the slide part referenced by ref, or nil.
func (p *Presentation) Slide(ref SlideRef) *opc.Part {
	return p.part.Target(ref.RelID)
}

// SlideRelationships returns the presentation's relationships to slide
// parts in relationship order.
func (p *Presentation) SlideRelationships() []opc.Relationship {
	return relationshipsOfKind(p.part, RelSlide)
}

// Masters returns the slide master parts referenced by the presentation.
func (p *Presentation) Masters() []*opc.Part {
	return targetsOfKind(p.part, RelSlideMaster)
}

// MasterRelIDs returns the r:id values listed in p:sldMasterIdLst.
func (p *Presentation) MasterRelIDs() []string {
	if p.presentation.SlideMasterIdList == nil {
		return nil
	}
	ids := make([]string, 0, len(p.presentation.SlideMasterIdList.SlideMasterId))
	for _, m := range p.presentation.SlideMasterIdList.SlideMasterId {
		ids = append(ids, m.RID)
	}
	return ids
}

// Theme returns the theme part referenced directly by the presentation, or
// nil.
func (p *Presentation) Theme() *opc.Part {
	if themes := targetsOfKind(p.part, RelTheme); len(themes) > 0 {
		return themes[0]
	}
	return nil
}

// ThemeRelationship returns the presentation's theme relationship.
func (p *Presentation) ThemeRelationship() (opc.Relationship, bool) {
	if rels := relationshipsOfKind(p.part, RelTheme); len(rels) > 0 {
		return rels[0], true
	}
	return opc.Relationship{}, false
}

// Layouts returns the layout parts owned by a slide master in relationship
// order.
func Layouts(master *opc.Part) []*opc.Part {
	return targetsOfKind(master, RelSlideLayout)
}

// LayoutRelationships returns the slide's layout relationships, including
// ones whose target part is missing.
func LayoutRelationships(slide *opc.Part) []opc.Relationship {
	return relationshipsOfKind(slide, RelSlideLayout)
}

// LayoutOf returns the layout a slide references, or nil.
func LayoutOf(slide *opc.Part) *opc.Part {
	if layouts := targetsOfKind(slide, RelSlideLayout); len(layouts) > 0 {
		return layouts[0]
	}
	return nil
}

// MasterOf returns the master a layout references, or nil.
func MasterOf(layout *opc.Part) *opc.Part {
	if masters := targetsOfKind(layout, RelSlideMaster); len(masters) > 0 {
		return masters[0]
	}
	return nil
}

// ThemeOf returns the theme a master references, or nil.
func ThemeOf(master *opc.Part) *opc.Part {
	if themes := targetsOfKind(master, RelTheme); len(themes) > 0 {
		return themes[0]
	}
	return nil
}

// LayoutName returns the human-readable name of a layout (p:cSld/@name).
// It returns ErrNoName when the attribute is missing or empty.
func LayoutName(layout *opc.Part) (string, error) {
	var l slideLayoutXML
	if err := xml.Unmarshal(layout.Data(), &l); err != nil {
		return "", fmt.Errorf("parsing %s: %w", layout.Name(), err)
	}
	if strings.TrimSpace(l.CSld.Name) == "" {
		return "", ErrNoName
	}
	return l.CSld.Name, nil
}

// LayoutType returns the layout's predefined type (p:sldLayout/@type), such
// as "title" or "obj". Layouts without the attribute are "cust".
func LayoutType(layout *opc.Part) string {
	var l slideLayoutXML
	if err := xml.Unmarshal(layout.Data(), &l); err != nil || l.Type == "" {
		return "cust"
	}
	return l.Type
}

// relationshipsOfKind matches relationship types by their final segment so
// that both transitional and strict namespaces are recognised.
func relationshipsOfKind(part *opc.Part, relType string) []opc.Relationship {
	if part == nil {
		return nil
	}
	suffix := relType[strings.LastIndex(relType, "/"):]
	var out []opc.Relationship
	for _, rel := range part.Relationships() {
		if !rel.External && strings.HasSuffix(rel.Type, suffix) {
			out = append(out, rel)
		}
	}
	return out
}

func targetsOfKind(part *opc.Part, relType string) []*opc.Part {
	var out []*opc.Part
	for _, rel := range relationshipsOfKind(part, relType) {
		if t := part.Target(rel.ID); t != nil {
			out = append(out, t)
		}
	}
	return out
}
