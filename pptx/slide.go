package pptx

import (
	"encoding/xml"
	"strings"

	"github.com/tsawler/retheme/opc"
)

// SlideInfo summarises one slide of the ordered slide list.
type SlideInfo struct {
	Index      int    // 0-indexed position in the slide list
	ID         string // p:sldId/@id
	RelID      string // Relationship ID from the presentation part
	Part       string // Slide part name, empty if the relationship dangles
	Title      string // Slide title (from title placeholder)
	Hidden     bool   // show="0"
	Layout     string // Current layout name, empty if none or unnamed
	LayoutPart string // Current layout part name, empty if none
}

// Slides returns a summary of every slide in presentation order.
func (p *Presentation) Slides() []SlideInfo {
	refs, _ := p.SlideRefs()
	infos := make([]SlideInfo, 0, len(refs))
	for i, ref := range refs {
		info := SlideInfo{Index: i, ID: ref.ID, RelID: ref.RelID}
		slide := p.Slide(ref)
		if slide != nil {
			info.Part = slide.Name()
			info.Title, info.Hidden = parseSlideSummary(slide)
			if layout := LayoutOf(slide); layout != nil {
				info.LayoutPart = layout.Name()
				info.Layout, _ = LayoutName(layout)
			}
		}
		infos = append(infos, info)
	}
	return infos
}

// SlideTitle returns the text of a slide's title placeholder, or "".
func SlideTitle(slide *opc.Part) string {
	title, _ := parseSlideSummary(slide)
	return title
}

// parseSlideSummary extracts the title and hidden flag from a slide part.
func parseSlideSummary(slide *opc.Part) (title string, hidden bool) {
	var s slideXML
	if err := xml.Unmarshal(slide.Data(), &s); err != nil {
		return "", false
	}
	if s.Show != nil && !*s.Show {
		hidden = true
	}
	return findTitle(s.CSld.SpTree.Sp, s.CSld.SpTree.GrpSp), hidden
}

// findTitle searches shapes, then grouped shapes recursively, for the first
// title placeholder with text.
func findTitle(shapes []spXML, groups []grpSpXML) string {
	for _, sp := range shapes {
		if sp.NvSpPr.NvPr.Ph == nil || sp.TxBody == nil {
			continue
		}
		phType := sp.NvSpPr.NvPr.Ph.Type
		if phType != "title" && phType != "ctrTitle" {
			continue
		}
		if text := placeholderText(sp.TxBody); text != "" {
			return text
		}
	}
	for _, grp := range groups {
		if text := findTitle(grp.Sp, grp.GrpSp); text != "" {
			return text
		}
	}
	return ""
}

// placeholderText joins the paragraphs of a text body with spaces.
func placeholderText(body *txBodyXML) string {
	var paras []string
	for _, p := range body.P {
		var text strings.Builder
		for _, run := range p.R {
			text.WriteString(run.T)
		}
		for _, fld := range p.Fld {
			text.WriteString(fld.T)
		}
		if t := strings.TrimSpace(text.String()); t != "" {
			paras = append(paras, t)
		}
	}
	return strings.Join(paras, " ")
}
