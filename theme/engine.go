package theme

import (
	"fmt"
	"log/slog"

	"github.com/tsawler/retheme/internal/logging"
	"github.com/tsawler/retheme/opc"
	"github.com/tsawler/retheme/pptx"
)

// Option configures Apply.
type Option func(*engine)

// WithLogger sets the logger used for progress messages (default: discard).
func WithLogger(l *slog.Logger) Option {
	return func(e *engine) {
		if l != nil {
			e.log = l
		}
	}
}

type engine struct {
	log *slog.Logger
}

// Report describes the outcome of Apply.
type Report struct {
	MasterRelID string    // Relationship ID of the master, unchanged by the swap
	OldMaster   string    // Part name of the replaced master
	NewMaster   string    // Part name of the grafted master
	Theme       string    // Part name of the new theme
	Layouts     []string  // Catalog names of the new master
	Bindings    []Binding // One per slide, in processing order
	Warnings    []error   // Soft failures, such as unnamed layouts
}

// plannedSlide is a slide to relink together with its role.
type plannedSlide struct {
	relID string
	part  *opc.Part
	role  Role
}

// Apply replaces target's master and theme with those of source and binds
// every slide to a layout of the new master. target is mutated in place;
// source is only read.
//
// Configured layout names are checked against the theme before target is
// touched. A failure after that point leaves target partially migrated and
// it should be discarded.
func Apply(target, source *pptx.Presentation, cfg Config, opts ...Option) (*Report, error) {
	e := &engine{log: logging.NewNop()}
	for _, opt := range opts {
		opt(e)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Roles are fixed before anything is deleted.
	order, err := Classify(target)
	if err != nil {
		return nil, err
	}
	plan, err := planSlides(target, order)
	if err != nil {
		return nil, err
	}

	oldMaster, err := singleMaster(target, "target")
	if err != nil {
		return nil, err
	}
	srcMaster, err := singleMaster(source, "theme")
	if err != nil {
		return nil, err
	}
	if err := preflight(plan, BuildCatalog(srcMaster), cfg); err != nil {
		return nil, err
	}

	relID, err := target.Package().RelationshipID(target.Part(), oldMaster)
	if err != nil {
		return nil, err
	}
	report := &Report{MasterRelID: relID, OldMaster: oldMaster.Name()}

	newMaster, err := SwapMaster(target, source)
	if err != nil {
		return nil, err
	}
	report.NewMaster = newMaster.Name()
	if t := target.Theme(); t != nil {
		report.Theme = t.Name()
	}
	e.log.Info("slide master replaced",
		"rel_id", relID,
		"old", report.OldMaster,
		"new", report.NewMaster,
		"theme", report.Theme)

	cat := BuildCatalog(newMaster)
	report.Layouts = cat.Names()
	for _, skipped := range cat.Skipped {
		e.log.Warn("layout skipped", "layout", skipped.Layout, "err", skipped.Err)
		report.Warnings = append(report.Warnings, skipped)
	}

	for i, s := range plan {
		b, err := Relink(target, s.part, s.role, cat, cfg)
		if err != nil {
			return report, fmt.Errorf("slide %d (%s): %w", i+1, s.relID, err)
		}
		b.Index = i
		b.SlideRelID = s.relID
		report.Bindings = append(report.Bindings, b)
		e.log.Debug("slide relinked",
			"slide", b.Slide,
			"role", b.Role.String(),
			"rule", b.Rule.String(),
			"old_layout", b.OldLayout,
			"new_layout", b.NewLayout)
	}

	e.log.Info("theme applied", "slides", len(report.Bindings), "layouts", len(report.Layouts))
	return report, nil
}

// planSlides lists the slides to relink: the slide list in order, followed
// by slide relationships the list does not mention.
func planSlides(doc *pptx.Presentation, order *SlideOrder) ([]plannedSlide, error) {
	pres := doc.Part()
	seen := make(map[string]bool, len(order.Ordered))
	var plan []plannedSlide

	for _, ref := range order.Ordered {
		if seen[ref.RelID] {
			continue
		}
		seen[ref.RelID] = true
		part := pres.Target(ref.RelID)
		if part == nil {
			return nil, &MalformedDocumentError{Reason: fmt.Sprintf("slide %s references missing relationship %s", ref.ID, ref.RelID)}
		}
		plan = append(plan, plannedSlide{relID: ref.RelID, part: part, role: order.RoleOf(ref.RelID)})
	}

	for _, rel := range doc.SlideRelationships() {
		if seen[rel.ID] {
			continue
		}
		seen[rel.ID] = true
		if part := pres.Target(rel.ID); part != nil {
			plan = append(plan, plannedSlide{relID: rel.ID, part: part, role: Interior})
		}
	}
	return plan, nil
}

// preflight runs the resolution cascade against the theme's own catalog so
// that missing configured layouts are reported before target is mutated.
func preflight(plan []plannedSlide, cat *Catalog, cfg Config) error {
	for i, s := range plan {
		oldName, _ := currentLayoutName(s.part)
		if _, _, err := Resolve(s.role, oldName, cat, cfg); err != nil {
			return fmt.Errorf("slide %d (%s): %w", i+1, s.relID, err)
		}
	}
	return nil
}
