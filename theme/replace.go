package theme

import (
	"fmt"

	"github.com/tsawler/retheme/opc"
	"github.com/tsawler/retheme/pptx"
)

// SwapMaster replaces target's slide master and theme with those of source.
// The new master is linked under the relationship ID the old master had, so
// p:sldMasterIdLst and anything else that cached the ID keeps resolving.
//
// The old master stays in the package while slides still reach it through
// their layouts; it is swept once every slide has been relinked.
func SwapMaster(target, source *pptx.Presentation) (*opc.Part, error) {
	oldMaster, err := singleMaster(target, "target")
	if err != nil {
		return nil, err
	}
	srcMaster, err := singleMaster(source, "theme")
	if err != nil {
		return nil, err
	}
	if pptx.ThemeOf(srcMaster) == nil {
		return nil, &MalformedDocumentError{Reason: "theme slide master has no theme part"}
	}

	pkg := target.Package()
	pres := target.Part()

	relID, err := pkg.RelationshipID(pres, oldMaster)
	if err != nil {
		return nil, err
	}
	masterRel, _ := pres.Relationship(relID)

	// Detach the theme before its owner.
	themeRelType := pptx.RelTheme
	if rel, ok := target.ThemeRelationship(); ok {
		themeRelType = rel.Type
		if err := pkg.DeletePart(pres, target.Theme()); err != nil {
			return nil, fmt.Errorf("removing theme: %w", err)
		}
	}
	if err := pkg.DeletePart(pres, oldMaster); err != nil {
		return nil, fmt.Errorf("removing slide master: %w", err)
	}

	newMaster, err := pkg.AddPart(pres, masterRel.Type, srcMaster, relID)
	if err != nil {
		return nil, fmt.Errorf("importing slide master: %w", err)
	}

	if _, err := pkg.ReplaceRelationship(pres, themeRelType, pptx.ThemeOf(newMaster)); err != nil {
		return nil, fmt.Errorf("linking theme: %w", err)
	}

	return newMaster, nil
}

// singleMaster returns doc's only slide master.
func singleMaster(doc *pptx.Presentation, which string) (*opc.Part, error) {
	masters := doc.Masters()
	if len(masters) != 1 {
		return nil, &AmbiguousMasterError{Document: which, Count: len(masters)}
	}
	return masters[0], nil
}
