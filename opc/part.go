package opc

import (
	"fmt"
	"strconv"
	"strings"
)

// Relationship is a directed, identified edge from one part to another.
type Relationship struct {
	ID       string // Unique within the owning part
	Type     string // Relationship type URI
	Target   string // Absolute part name, or the raw URI when External
	External bool   // TargetMode="External"
}

// Part is a named unit of content within a package.
type Part struct {
	name        string
	contentType string
	data        []byte
	rels        []*Relationship
	pkg         *Package
}

// Name returns the absolute part name. The package root is "/".
func (p *Part) Name() string {
	return p.name
}

// ContentType returns the part's content type.
func (p *Part) ContentType() string {
	return p.contentType
}

// Data returns the raw part content. The returned slice must not be modified.
func (p *Part) Data() []byte {
	return p.data
}

// SetData replaces the part content.
func (p *Part) SetData(data []byte) {
	p.data = data
}

// Package returns the package the part belongs to.
func (p *Part) Package() *Package {
	return p.pkg
}

// IsRoot reports whether the part is the package root pseudo-part.
func (p *Part) IsRoot() bool {
	return p.name == "/"
}

// Relationships returns a copy of the part's outgoing relationships in
// document order.
func (p *Part) Relationships() []Relationship {
	out := make([]Relationship, 0, len(p.rels))
	for _, rel := range p.rels {
		out = append(out, *rel)
	}
	return out
}

// RelationshipsByType returns the outgoing relationships with the given type.
func (p *Part) RelationshipsByType(relType string) []Relationship {
	var out []Relationship
	for _, rel := range p.rels {
		if rel.Type == relType {
			out = append(out, *rel)
		}
	}
	return out
}

// Relationship returns the relationship with the given ID.
func (p *Part) Relationship(id string) (Relationship, bool) {
	for _, rel := range p.rels {
		if rel.ID == id {
			return *rel, true
		}
	}
	return Relationship{}, false
}

// Target returns the part the relationship with the given ID points to, or
// nil if the ID is unknown, external, or dangling.
func (p *Part) Target(id string) *Part {
	rel, ok := p.Relationship(id)
	if !ok || rel.External || p.pkg == nil {
		return nil
	}
	return p.pkg.parts[rel.Target]
}

// Targets returns the parts referenced by relationships of the given type,
// in relationship order. Dangling relationships are skipped.
func (p *Part) Targets(relType string) []*Part {
	var out []*Part
	for _, rel := range p.rels {
		if rel.Type != relType || rel.External {
			continue
		}
		if t := p.pkg.parts[rel.Target]; t != nil {
			out = append(out, t)
		}
	}
	return out
}

// hasRelationshipID reports whether id is used by one of the part's
// relationships.
func (p *Part) hasRelationshipID(id string) bool {
	for _, rel := range p.rels {
		if rel.ID == id {
			return true
		}
	}
	return false
}

// nextRelationshipID allocates "rIdN" one above the highest N in use.
func (p *Part) nextRelationshipID() string {
	highest := 0
	for _, rel := range p.rels {
		if !strings.HasPrefix(rel.ID, "rId") {
			continue
		}
		if n, err := strconv.Atoi(rel.ID[3:]); err == nil && n > highest {
			highest = n
		}
	}
	for n := highest + 1; ; n++ {
		id := fmt.Sprintf("rId%d", n)
		if !p.hasRelationshipID(id) {
			return id
		}
	}
}

// removeRelationships drops every relationship for which drop returns true
// and reports how many were removed.
func (p *Part) removeRelationships(drop func(*Relationship) bool) int {
	kept := p.rels[:0]
	removed := 0
	for _, rel := range p.rels {
		if drop(rel) {
			removed++
			continue
		}
		kept = append(kept, rel)
	}
	for i := len(kept); i < len(p.rels); i++ {
		p.rels[i] = nil
	}
	p.rels = kept
	return removed
}
