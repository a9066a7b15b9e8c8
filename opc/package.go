package opc

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path"
	"sort"
	"strings"
)

const xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

// Package is an in-memory OPC package.
type Package struct {
	parts    map[string]*Part
	root     *Part
	defaults map[string]string // Lower-case extension -> content type
}

// New returns an empty package with the standard content type defaults.
func New() *Package {
	p := &Package{
		parts: make(map[string]*Part),
		defaults: map[string]string{
			"rels": ContentTypeRelationships,
			"xml":  ContentTypeXML,
		},
	}
	p.root = &Part{name: "/", pkg: p}
	return p
}

// Open reads an OPC package from a file.
func Open(filename string) (*Package, error) {
	zr, err := zip.OpenReader(filename)
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}
	defer zr.Close()

	return load(&zr.Reader)
}

// OpenReader reads an OPC package from r, which holds size bytes.
func OpenReader(r io.ReaderAt, size int64) (*Package, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}
	return load(zr)
}

// OpenBytes reads an OPC package from an in-memory archive.
func OpenBytes(data []byte) (*Package, error) {
	return OpenReader(bytes.NewReader(data), int64(len(data)))
}

// load builds the part graph from the archive entries.
func load(zr *zip.Reader) (*Package, error) {
	files := make(map[string][]byte, len(zr.File))
	for _, f := range zr.File {
		if strings.HasSuffix(f.Name, "/") {
			continue // directory entry
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", f.Name, err)
		}
		files["/"+f.Name] = data
	}

	ctData, ok := files["/"+contentTypesZip]
	if !ok {
		return nil, ErrNotAPackage
	}
	var ct contentTypesXML
	if err := xml.Unmarshal(ctData, &ct); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", contentTypesZip, err)
	}

	p := New()
	for _, d := range ct.Default {
		p.defaults[strings.ToLower(d.Extension)] = d.ContentType
	}
	overrides := make(map[string]string, len(ct.Override))
	for _, o := range ct.Override {
		overrides[strings.ToLower(o.PartName)] = o.ContentType
	}

	// Parts first, so relationships can be checked against them.
	for name, data := range files {
		if name == "/"+contentTypesZip || isRelsName(name) {
			continue
		}
		contentType, ok := overrides[strings.ToLower(name)]
		if !ok {
			contentType = p.defaults[extension(name)]
		}
		p.parts[name] = &Part{
			name:        name,
			contentType: contentType,
			data:        data,
			pkg:         p,
		}
	}

	for name, data := range files {
		if !isRelsName(name) {
			continue
		}
		source := sourceOfRels(name)
		owner := p.root
		if source != "/" {
			owner = p.parts[source]
		}
		if owner == nil {
			continue // relationships of a part that does not exist
		}
		var rels relationshipsXML
		if err := xml.Unmarshal(data, &rels); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", name, err)
		}
		for _, r := range rels.Relationship {
			rel := &Relationship{ID: r.ID, Type: r.Type}
			if r.TargetMode == targetModeExternal {
				rel.External = true
				rel.Target = r.Target
			} else {
				rel.Target = resolveTarget(source, r.Target)
			}
			owner.rels = append(owner.rels, rel)
		}
	}

	return p, nil
}

// Root returns the package root pseudo-part that owns the package-level
// relationships (/_rels/.rels).
func (p *Package) Root() *Part {
	return p.root
}

// Part returns the part with the given absolute name, or nil.
func (p *Package) Part(name string) *Part {
	if name == "/" {
		return p.root
	}
	return p.parts[name]
}

// Parts returns all parts sorted by name. The root pseudo-part is excluded.
func (p *Package) Parts() []*Part {
	out := make([]*Part, 0, len(p.parts))
	for _, part := range p.parts {
		out = append(out, part)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].name < out[j].name
	})
	return out
}

// CreatePart adds a new, unreferenced part. Link it with AddPart to keep it
// alive across sweeps.
func (p *Package) CreatePart(name, contentType string, data []byte) (*Part, error) {
	if !strings.HasPrefix(name, "/") || name == "/" {
		return nil, fmt.Errorf("invalid part name %q", name)
	}
	if _, exists := p.parts[name]; exists {
		return nil, fmt.Errorf("part %s already exists", name)
	}
	part := &Part{name: name, contentType: contentType, data: data, pkg: p}
	p.parts[name] = part
	return part, nil
}

// Save writes the package as a ZIP archive.
func (p *Package) Save(w io.Writer) error {
	zw := zip.NewWriter(w)

	ctData, err := p.marshalContentTypes()
	if err != nil {
		return err
	}
	if err := writeEntry(zw, contentTypesZip, ctData); err != nil {
		return err
	}

	owners := append([]*Part{p.root}, p.Parts()...)
	for _, part := range owners {
		if !part.IsRoot() {
			if err := writeEntry(zw, strings.TrimPrefix(part.name, "/"), part.data); err != nil {
				return err
			}
		}
		if len(part.rels) == 0 {
			continue
		}
		relsData, err := p.marshalRelationships(part)
		if err != nil {
			return err
		}
		if err := writeEntry(zw, strings.TrimPrefix(relsName(part.name), "/"), relsData); err != nil {
			return err
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("closing ZIP archive: %w", err)
	}
	return nil
}

// SaveFile writes the package to filename, replacing any existing file.
func (p *Package) SaveFile(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating %s: %w", filename, err)
	}
	if err := p.Save(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// marshalContentTypes builds [Content_Types].xml. Every part whose content
// type differs from its extension default gets an Override.
func (p *Package) marshalContentTypes() ([]byte, error) {
	ct := contentTypesXML{}

	exts := make([]string, 0, len(p.defaults))
	for ext := range p.defaults {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	for _, ext := range exts {
		ct.Default = append(ct.Default, defaultXML{Extension: ext, ContentType: p.defaults[ext]})
	}

	for _, part := range p.Parts() {
		if part.contentType == "" || p.defaults[extension(part.name)] == part.contentType {
			continue
		}
		ct.Override = append(ct.Override, overrideXML{PartName: part.name, ContentType: part.contentType})
	}

	return marshalXML(ct)
}

// marshalRelationships builds the .rels content for a part.
func (p *Package) marshalRelationships(part *Part) ([]byte, error) {
	rels := relationshipsXML{}
	for _, rel := range part.rels {
		r := relationshipXML{ID: rel.ID, Type: rel.Type}
		if rel.External {
			r.Target = rel.Target
			r.TargetMode = targetModeExternal
		} else {
			r.Target = relativeTarget(part.name, rel.Target)
		}
		rels.Relationship = append(rels.Relationship, r)
	}
	return marshalXML(rels)
}

func marshalXML(v any) ([]byte, error) {
	data, err := xml.Marshal(v)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(xmlHeader)+len(data))
	out = append(out, xmlHeader...)
	return append(out, data...), nil
}

func writeEntry(zw *zip.Writer, name string, data []byte) error {
	w, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("creating %s in archive: %w", name, err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}

// extension returns the lower-case extension of a part name without the dot.
func extension(name string) string {
	return strings.ToLower(strings.TrimPrefix(path.Ext(name), "."))
}

// isRelsName reports whether name is a relationships part.
func isRelsName(name string) bool {
	return strings.HasSuffix(name, ".rels") && path.Base(path.Dir(name)) == "_rels"
}

// relsName returns the relationships part name for a source part, e.g.
// "/ppt/slides/slide1.xml" -> "/ppt/slides/_rels/slide1.xml.rels".
func relsName(source string) string {
	if source == "/" {
		return "/_rels/.rels"
	}
	return path.Join(path.Dir(source), "_rels", path.Base(source)+".rels")
}

// sourceOfRels is the inverse of relsName.
func sourceOfRels(name string) string {
	dir := path.Dir(path.Dir(name))
	base := strings.TrimSuffix(path.Base(name), ".rels")
	if base == "" {
		return "/"
	}
	return path.Join(dir, base)
}

// resolveTarget turns a relationship target into an absolute part name.
func resolveTarget(source, target string) string {
	if strings.HasPrefix(target, "/") {
		return path.Clean(target)
	}
	base := "/"
	if source != "/" {
		base = path.Dir(source)
	}
	return path.Join(base, target)
}

// relativeTarget expresses target relative to the directory of source.
func relativeTarget(source, target string) string {
	if source == "/" {
		return strings.TrimPrefix(target, "/")
	}
	from := splitPath(path.Dir(source))
	to := splitPath(path.Dir(target))

	common := 0
	for common < len(from) && common < len(to) && from[common] == to[common] {
		common++
	}

	var segs []string
	for i := common; i < len(from); i++ {
		segs = append(segs, "..")
	}
	segs = append(segs, to[common:]...)
	segs = append(segs, path.Base(target))
	return strings.Join(segs, "/")
}

func splitPath(dir string) []string {
	dir = strings.Trim(dir, "/")
	if dir == "" {
		return nil
	}
	return strings.Split(dir, "/")
}
