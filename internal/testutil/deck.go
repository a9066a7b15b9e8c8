// Package testutil builds synthetic presentation packages for tests.
package testutil

import (
	"archive/zip"
	"bytes"
	"fmt"
	"os"
	"slices"
	"strings"
)

const (
	nsP = "http://schemas.openxmlformats.org/presentationml/2006/main"
	nsA = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsR = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"

	relBase        = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/"
	ctPresentation = "application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"
	ctTemplate     = "application/vnd.openxmlformats-officedocument.presentationml.template.main+xml"
	ctSlide        = "application/vnd.openxmlformats-officedocument.presentationml.slide+xml"
	ctMaster       = "application/vnd.openxmlformats-officedocument.presentationml.slideMaster+xml"
	ctLayout       = "application/vnd.openxmlformats-officedocument.presentationml.slideLayout+xml"
	ctTheme        = "application/vnd.openxmlformats-officedocument.theme+xml"
)

// NoLayout marks a slide without a layout relationship.
const NoLayout = -1

// Slide describes one slide of a Deck.
type Slide struct {
	Title  string
	Layout int // Index into Deck.Layouts, or NoLayout
}

// Deck describes a presentation package. The first master owns Layouts; any
// extra masters get a single layout named "Extra N".
type Deck struct {
	Theme       string   // Theme name written to theme1.xml
	Layouts     []string // Layout names on the first master; "" writes no name
	Slides      []Slide
	Masters     int  // Number of masters, 0 means 1
	NoSlideList bool // Omit p:sldIdLst
	NoMaster    bool // Write no master at all
	Template    bool // Use the template main content type (.potx)

	// Omit lists zip entry names to leave out, so relationships that point
	// at them dangle.
	Omit []string
}

type entry struct {
	name    string
	content string
}

// Bytes renders the deck as a ZIP archive.
func (d Deck) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, e := range d.entries() {
		if slices.Contains(d.Omit, e.name) {
			continue
		}
		w, err := zw.Create(e.name)
		if err != nil {
			return nil, err
		}
		if _, err := w.Write([]byte(e.content)); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile renders the deck to filename.
func (d Deck) WriteFile(filename string) error {
	data, err := d.Bytes()
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0o644)
}

func (d Deck) masterCount() int {
	if d.NoMaster {
		return 0
	}
	if d.Masters <= 0 {
		return 1
	}
	return d.Masters
}

func (d Deck) entries() []entry {
	masters := d.masterCount()
	themeName := d.Theme
	if themeName == "" {
		themeName = "Office Theme"
	}

	// Layout names per master, numbered globally.
	var layoutNames [][]string
	for m := 0; m < masters; m++ {
		if m == 0 {
			layoutNames = append(layoutNames, d.Layouts)
		} else {
			layoutNames = append(layoutNames, []string{fmt.Sprintf("Extra %d", m)})
		}
	}

	var files []entry
	var overrides []string
	override := func(name, ct string) {
		overrides = append(overrides, fmt.Sprintf(`<Override PartName="/%s" ContentType="%s"/>`, name, ct))
	}

	mainCT := ctPresentation
	if d.Template {
		mainCT = ctTemplate
	}
	override("ppt/presentation.xml", mainCT)

	// Presentation relationships: masters, slides, theme.
	var presRels []string
	var masterIDs, slideIDs []string
	relN := 0
	nextRel := func() string {
		relN++
		return fmt.Sprintf("rId%d", relN)
	}
	for m := 1; m <= masters; m++ {
		id := nextRel()
		presRels = append(presRels, rel(id, "slideMaster", fmt.Sprintf("slideMasters/slideMaster%d.xml", m)))
		masterIDs = append(masterIDs, fmt.Sprintf(`<p:sldMasterId id="%d" r:id="%s"/>`, 2147483648+m-1, id))
	}
	for i := range d.Slides {
		id := nextRel()
		presRels = append(presRels, rel(id, "slide", fmt.Sprintf("slides/slide%d.xml", i+1)))
		slideIDs = append(slideIDs, fmt.Sprintf(`<p:sldId id="%d" r:id="%s"/>`, 256+i, id))
	}
	if masters > 0 {
		presRels = append(presRels, rel(nextRel(), "theme", "theme/theme1.xml"))
	}

	var pres strings.Builder
	fmt.Fprintf(&pres, `<?xml version="1.0" encoding="UTF-8" standalone="yes"?><p:presentation xmlns:p="%s" xmlns:r="%s">`, nsP, nsR)
	if len(masterIDs) > 0 {
		pres.WriteString("<p:sldMasterIdLst>" + strings.Join(masterIDs, "") + "</p:sldMasterIdLst>")
	}
	if !d.NoSlideList {
		pres.WriteString("<p:sldIdLst>" + strings.Join(slideIDs, "") + "</p:sldIdLst>")
	}
	pres.WriteString(`<p:sldSz cx="12192000" cy="6858000"/></p:presentation>`)

	files = append(files,
		entry{"_rels/.rels", rels(rel("rId1", "officeDocument", "ppt/presentation.xml"))},
		entry{"ppt/presentation.xml", pres.String()},
		entry{"ppt/_rels/presentation.xml.rels", rels(presRels...)},
	)

	layoutNum := 0
	firstLayout := 0
	for m := 1; m <= masters; m++ {
		names := layoutNames[m-1]
		var masterRels, layoutIDs []string
		for i, name := range names {
			layoutNum++
			if m == 1 && i == 0 {
				firstLayout = layoutNum
			}
			layoutFile := fmt.Sprintf("ppt/slideLayouts/slideLayout%d.xml", layoutNum)
			rid := fmt.Sprintf("rId%d", i+1)
			masterRels = append(masterRels, rel(rid, "slideLayout", fmt.Sprintf("../slideLayouts/slideLayout%d.xml", layoutNum)))
			layoutIDs = append(layoutIDs, fmt.Sprintf(`<p:sldLayoutId id="%d" r:id="%s"/>`, 2147483649+layoutNum, rid))
			files = append(files,
				entry{layoutFile, layoutXML(name)},
				entry{fmt.Sprintf("ppt/slideLayouts/_rels/slideLayout%d.xml.rels", layoutNum),
					rels(rel("rId1", "slideMaster", fmt.Sprintf("../slideMasters/slideMaster%d.xml", m)))},
			)
			override(layoutFile, ctLayout)
		}
		masterRels = append(masterRels, rel(fmt.Sprintf("rId%d", len(names)+1), "theme", fmt.Sprintf("../theme/theme%d.xml", m)))

		masterFile := fmt.Sprintf("ppt/slideMasters/slideMaster%d.xml", m)
		files = append(files,
			entry{masterFile, fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?><p:sldMaster xmlns:p="%s" xmlns:r="%s"><p:cSld><p:spTree/></p:cSld><p:sldLayoutIdLst>%s</p:sldLayoutIdLst></p:sldMaster>`, nsP, nsR, strings.Join(layoutIDs, ""))},
			entry{fmt.Sprintf("ppt/slideMasters/_rels/slideMaster%d.xml.rels", m), rels(masterRels...)},
			entry{fmt.Sprintf("ppt/theme/theme%d.xml", m), fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?><a:theme xmlns:a="%s" name="%s"><a:themeElements/></a:theme>`, nsA, themeName)},
		)
		override(masterFile, ctMaster)
		override(fmt.Sprintf("ppt/theme/theme%d.xml", m), ctTheme)
	}

	for i, s := range d.Slides {
		slideFile := fmt.Sprintf("ppt/slides/slide%d.xml", i+1)
		files = append(files, entry{slideFile, slideXML(s.Title)})
		if s.Layout != NoLayout && s.Layout >= 0 && s.Layout < len(d.Layouts) && masters > 0 {
			files = append(files, entry{
				fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", i+1),
				rels(rel("rId1", "slideLayout", fmt.Sprintf("../slideLayouts/slideLayout%d.xml", firstLayout+s.Layout))),
			})
		}
		override(slideFile, ctSlide)
	}

	contentTypes := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
		`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
		`<Default Extension="xml" ContentType="application/xml"/>` +
		strings.Join(overrides, "") + `</Types>`

	return append([]entry{{"[Content_Types].xml", contentTypes}}, files...)
}

func layoutXML(name string) string {
	nameAttr := ""
	if name != "" {
		nameAttr = fmt.Sprintf(` name="%s"`, xmlEscape(name))
	}
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?><p:sldLayout xmlns:p="%s" xmlns:a="%s" xmlns:r="%s" type="obj"><p:cSld%s><p:spTree/></p:cSld></p:sldLayout>`, nsP, nsA, nsR, nameAttr)
}

func slideXML(title string) string {
	shape := ""
	if title != "" {
		shape = fmt.Sprintf(`<p:sp><p:nvSpPr><p:cNvPr id="2" name="Title 1"/><p:cNvSpPr/><p:nvPr><p:ph type="title"/></p:nvPr></p:nvSpPr><p:spPr/><p:txBody><a:bodyPr/><a:p><a:r><a:t>%s</a:t></a:r></a:p></p:txBody></p:sp>`, xmlEscape(title))
	}
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?><p:sld xmlns:p="%s" xmlns:a="%s" xmlns:r="%s"><p:cSld><p:spTree><p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr>%s</p:spTree></p:cSld></p:sld>`, nsP, nsA, nsR, shape)
}

func rels(entries ...string) string {
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
		strings.Join(entries, "") + `</Relationships>`
}

func rel(id, kind, target string) string {
	return fmt.Sprintf(`<Relationship Id="%s" Type="%s%s" Target="%s"/>`, id, relBase, kind, target)
}

func xmlEscape(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return r.Replace(s)
}
