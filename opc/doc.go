// Package opc implements the Open Packaging Conventions container used by
// Office Open XML documents (PPTX, POTX, DOCX, XLSX).
//
// A Package is an in-memory graph of parts. Parts are keyed by their absolute
// part name (for example "/ppt/slides/slide1.xml") and connect to each other
// through relationships, each carrying an ID that is unique within its owning
// part and stable across edits.
//
// # Basic Usage
//
//	pkg, err := opc.Open("deck.pptx")
//	if err != nil {
//	    // handle error
//	}
//	pres := pkg.Root().Target(pkg.Root().RelationshipsByType(opc.RelOfficeDocument)[0].ID)
//
// # Editing
//
// Relationships are edited through the Package so that parts which are no
// longer reachable from the package root are swept away:
//
//	err := pkg.DeletePart(owner, target)
//	part, err := pkg.AddPart(owner, relType, foreignPart, "rId7")
//	id, err := pkg.ReplaceRelationship(owner, relType, newTarget)
//
// AddPart grafts parts that belong to a different package, copying the part
// and everything it references. Relationship IDs inside the copied subtree
// are preserved, so XML that refers to them by r:id keeps working.
//
// Nothing is written to disk until Save or SaveFile is called.
package opc
