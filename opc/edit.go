package opc

import (
	"fmt"
	"path"
	"strings"
)

// RelationshipID returns the ID of the first relationship from owner to
// target.
func (p *Package) RelationshipID(owner, target *Part) (string, error) {
	if owner == nil || target == nil {
		return "", &PartNotFoundError{Owner: nameOf(owner), Part: nameOf(target)}
	}
	for _, rel := range owner.rels {
		if !rel.External && rel.Target == target.name && target.pkg == p {
			return rel.ID, nil
		}
	}
	return "", &PartNotFoundError{Owner: owner.name, Part: target.name}
}

// DeletePart removes every relationship from owner to target, then sweeps
// parts that are no longer reachable from the package root. The target
// survives if other reachable parts still reference it.
func (p *Package) DeletePart(owner, target *Part) error {
	if err := p.checkOwner(owner); err != nil {
		return err
	}
	if target == nil || target.pkg != p {
		return &PartNotFoundError{Owner: owner.name, Part: nameOf(target)}
	}

	removed := owner.removeRelationships(func(rel *Relationship) bool {
		return !rel.External && rel.Target == target.name
	})
	if removed == 0 {
		return &PartNotFoundError{Owner: owner.name, Part: target.name}
	}

	p.sweep()
	return nil
}

// AddPart creates a relationship of type relType from owner to part and
// returns the part as it exists in this package.
//
// If part belongs to another package it is grafted first: the part and
// every part it references are copied in, each source part exactly once.
// Relationship IDs inside the copied subtree are preserved. Copies whose
// name is already taken are renamed by numeric suffix.
//
// relID is used as the new relationship's ID when non-empty; otherwise the
// next free "rIdN" is allocated.
func (p *Package) AddPart(owner *Part, relType string, part *Part, relID string) (*Part, error) {
	if err := p.checkOwner(owner); err != nil {
		return nil, err
	}
	if part == nil || part.IsRoot() {
		return nil, fmt.Errorf("adding part to %s: invalid part", owner.name)
	}
	if relID != "" && owner.hasRelationshipID(relID) {
		return nil, fmt.Errorf("%s on %s: %w", relID, owner.name, ErrDuplicateRelationshipID)
	}

	target := part
	if part.pkg != p {
		target = p.graft(part, make(map[*Part]*Part))
	}

	if relID == "" {
		relID = owner.nextRelationshipID()
	}
	owner.rels = append(owner.rels, &Relationship{
		ID:     relID,
		Type:   relType,
		Target: target.name,
	})
	return target, nil
}

// ReplaceRelationship removes every relationship of relType from owner and
// points a single new one at newTarget, grafting it if it is foreign. The
// new relationship takes the ID of the first one removed, dangling or not,
// so callers keep a stable ID. The old targets are swept if nothing else
// reaches them. It returns the ID of the new relationship.
func (p *Package) ReplaceRelationship(owner *Part, relType string, newTarget *Part) (string, error) {
	if err := p.checkOwner(owner); err != nil {
		return "", err
	}
	if newTarget == nil {
		return "", fmt.Errorf("replacing %s on %s: nil target", relType, owner.name)
	}

	relID := ""
	owner.removeRelationships(func(rel *Relationship) bool {
		if rel.Type != relType {
			return false
		}
		if relID == "" {
			relID = rel.ID
		}
		return true
	})
	target, err := p.AddPart(owner, relType, newTarget, relID)
	if err != nil {
		return "", err
	}
	p.sweep()
	return p.RelationshipID(owner, target)
}

// checkOwner verifies that owner is part of this package.
func (p *Package) checkOwner(owner *Part) error {
	if owner == nil {
		return fmt.Errorf("nil owner part")
	}
	if owner.pkg != p {
		return fmt.Errorf("owner %s: %w", owner.name, ErrForeignPart)
	}
	if !owner.IsRoot() && p.parts[owner.name] != owner {
		return &PartNotFoundError{Owner: "/", Part: owner.name}
	}
	return nil
}

// graft copies src and everything reachable from it into p.
func (p *Package) graft(src *Part, copies map[*Part]*Part) *Part {
	if c, ok := copies[src]; ok {
		return c
	}

	c := &Part{
		name:        p.uniqueName(src.name),
		contentType: src.contentType,
		data:        append([]byte(nil), src.data...),
		pkg:         p,
	}
	copies[src] = c
	p.parts[c.name] = c

	ext := extension(src.name)
	if _, ok := p.defaults[ext]; !ok && src.pkg != nil {
		if ct, ok := src.pkg.defaults[ext]; ok {
			p.defaults[ext] = ct
		}
	}

	for _, rel := range src.rels {
		if rel.External {
			r := *rel
			c.rels = append(c.rels, &r)
			continue
		}
		srcTarget := src.pkg.parts[rel.Target]
		if srcTarget == nil {
			continue // dangling in the source package
		}
		t := p.graft(srcTarget, copies)
		c.rels = append(c.rels, &Relationship{
			ID:     rel.ID,
			Type:   rel.Type,
			Target: t.name,
		})
	}
	return c
}

// uniqueName returns name if it is free, otherwise the first free variant
// with a numeric suffix: "/ppt/theme/theme1.xml" -> "/ppt/theme/theme2.xml".
// A name is taken when a part has it or any relationship targets it, so a
// dangling relationship never picks up a new part.
func (p *Package) uniqueName(name string) string {
	taken := p.targetedNames()
	for n := range p.parts {
		taken[n] = true
	}
	if !taken[name] {
		return name
	}
	ext := path.Ext(name)
	stem := strings.TrimRight(strings.TrimSuffix(name, ext), "0123456789")
	for n := 1; ; n++ {
		candidate := fmt.Sprintf("%s%d%s", stem, n, ext)
		if !taken[candidate] {
			return candidate
		}
	}
}

// targetedNames returns every internal relationship target in the package,
// including targets with no part behind them.
func (p *Package) targetedNames() map[string]bool {
	names := make(map[string]bool)
	collect := func(part *Part) {
		for _, rel := range part.rels {
			if !rel.External {
				names[rel.Target] = true
			}
		}
	}
	collect(p.root)
	for _, part := range p.parts {
		collect(part)
	}
	return names
}

// sweep removes parts that cannot be reached from the package root.
func (p *Package) sweep() {
	reachable := p.reachable()
	for name := range p.parts {
		if !reachable[name] {
			delete(p.parts, name)
		}
	}
}

// reachable returns the names of all parts reachable from the root.
func (p *Package) reachable() map[string]bool {
	seen := make(map[string]bool, len(p.parts))
	queue := []*Part{p.root}
	for len(queue) > 0 {
		part := queue[0]
		queue = queue[1:]
		for _, rel := range part.rels {
			if rel.External || seen[rel.Target] {
				continue
			}
			t := p.parts[rel.Target]
			if t == nil {
				continue
			}
			seen[rel.Target] = true
			queue = append(queue, t)
		}
	}
	return seen
}

func nameOf(part *Part) string {
	if part == nil {
		return "<nil>"
	}
	return part.name
}
