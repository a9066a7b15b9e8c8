// Package pptx provides PPTX (Office Open XML Presentation) document access
// on top of the opc part graph.
package pptx

import "encoding/xml"

// Relationship types used by PresentationML parts.
const (
	nsRelationships = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"

	RelSlide       = nsRelationships + "/slide"
	RelSlideLayout = nsRelationships + "/slideLayout"
	RelSlideMaster = nsRelationships + "/slideMaster"
	RelTheme       = nsRelationships + "/theme"
)

// Content types of the presentation main part.
const (
	ContentTypePresentation  = "application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"
	ContentTypeTemplate      = "application/vnd.openxmlformats-officedocument.presentationml.template.main+xml"
	ContentTypeSlideshow     = "application/vnd.openxmlformats-officedocument.presentationml.slideshow.main+xml"
	ContentTypeMacroEnabled  = "application/vnd.ms-powerpoint.presentation.macroEnabled.main+xml"
	ContentTypeMacroTemplate = "application/vnd.ms-powerpoint.template.macroEnabled.main+xml"
)

// presentationXML represents the ppt/presentation.xml file structure.
type presentationXML struct {
	XMLName           xml.Name              `xml:"presentation"`
	SlideMasterIdList *slideMasterIdListXML `xml:"sldMasterIdLst"`
	SlideIdList       *slideIdListXML       `xml:"sldIdLst"`
}

type slideMasterIdListXML struct {
	SlideMasterId []slideMasterIdXML `xml:"sldMasterId"`
}

type slideMasterIdXML struct {
	ID  string `xml:"id,attr"`
	RID string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
}

type slideIdListXML struct {
	SlideId []slideIdXML `xml:"sldId"`
}

type slideIdXML struct {
	ID  string `xml:"id,attr"`
	RID string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"` // r:id attribute for relationship
}

// slideXML represents a ppt/slides/slide*.xml file structure.
type slideXML struct {
	XMLName xml.Name `xml:"sld"`
	Show    *bool    `xml:"show,attr"`
	CSld    cSldXML  `xml:"cSld"`
}

// slideLayoutXML represents a ppt/slideLayouts/slideLayout*.xml file.
type slideLayoutXML struct {
	XMLName xml.Name `xml:"sldLayout"`
	Type    string   `xml:"type,attr"` // title, obj, blank, cust, ...
	CSld    cSldXML  `xml:"cSld"`
}

type cSldXML struct {
	Name   string    `xml:"name,attr"`
	SpTree spTreeXML `xml:"spTree"`
}

// spTreeXML represents the shape tree containing all shapes on a slide.
type spTreeXML struct {
	Sp    []spXML    `xml:"sp"`    // Regular shapes
	GrpSp []grpSpXML `xml:"grpSp"` // Grouped shapes
}

// spXML represents a shape element.
type spXML struct {
	NvSpPr nvSpPrXML  `xml:"nvSpPr"`
	TxBody *txBodyXML `xml:"txBody"`
}

type nvSpPrXML struct {
	NvPr nvPrXML `xml:"nvPr"`
}

type nvPrXML struct {
	Ph *phXML `xml:"ph"` // Placeholder info
}

type phXML struct {
	Type string `xml:"type,attr"` // title, body, subTitle, ctrTitle, etc.
}

type txBodyXML struct {
	P []pXML `xml:"p"` // Paragraphs
}

type pXML struct {
	R   []rXML   `xml:"r"`   // Text runs
	Fld []fldXML `xml:"fld"` // Fields (like slide number)
}

type rXML struct {
	T string `xml:"t"`
}

type fldXML struct {
	T string `xml:"t"`
}

// grpSpXML represents a group of shapes.
type grpSpXML struct {
	Sp    []spXML    `xml:"sp"`
	GrpSp []grpSpXML `xml:"grpSp"` // Nested groups
}
