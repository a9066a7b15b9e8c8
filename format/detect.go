// Package format provides file format detection for Office Open XML packages.
package format

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Format represents a recognised package format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// PPTX indicates a PowerPoint presentation (.pptx).
	PPTX
	// PPTM indicates a macro-enabled presentation (.pptm).
	PPTM
	// POTX indicates a PowerPoint template (.potx).
	POTX
	// POTM indicates a macro-enabled template (.potm).
	POTM
	// PPSX indicates a PowerPoint slide show (.ppsx).
	PPSX
	// DOCX indicates a Word document (.docx).
	DOCX
	// XLSX indicates an Excel workbook (.xlsx).
	XLSX
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case PPTX:
		return "PPTX"
	case PPTM:
		return "PPTM"
	case POTX:
		return "POTX"
	case POTM:
		return "POTM"
	case PPSX:
		return "PPSX"
	case DOCX:
		return "DOCX"
	case XLSX:
		return "XLSX"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case Unknown:
		return ""
	default:
		return "." + strings.ToLower(f.String())
	}
}

// IsPresentation reports whether f is a PresentationML package, which is
// what both decks and theme sources must be.
func (f Format) IsPresentation() bool {
	switch f {
	case PPTX, PPTM, POTX, POTM, PPSX:
		return true
	}
	return false
}

// IsTemplate reports whether f is a template format.
func (f Format) IsTemplate() bool {
	return f == POTX || f == POTM
}

var byExtension = map[string]Format{
	".pptx": PPTX,
	".pptm": PPTM,
	".potx": POTX,
	".potm": POTM,
	".ppsx": PPSX,
	".docx": DOCX,
	".xlsx": XLSX,
}

// Main-part content types, keyed to the format they identify.
var byContentType = map[string]Format{
	"application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml": PPTX,
	"application/vnd.ms-powerpoint.presentation.macroEnabled.main+xml":                   PPTM,
	"application/vnd.openxmlformats-officedocument.presentationml.template.main+xml":     POTX,
	"application/vnd.ms-powerpoint.template.macroEnabled.main+xml":                       POTM,
	"application/vnd.openxmlformats-officedocument.presentationml.slideshow.main+xml":    PPSX,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml":   DOCX,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet.main+xml":         XLSX,
}

// Detect determines file format from filename extension.
func Detect(filename string) Format {
	return byExtension[strings.ToLower(filepath.Ext(filename))]
}

// DetectFromMagic reports whether data starts with the ZIP local file
// header that every OOXML package begins with.
func DetectFromMagic(data []byte) bool {
	return len(data) >= 4 && data[0] == 0x50 && data[1] == 0x4B && data[2] == 0x03 && data[3] == 0x04
}

// DetectFile opens filename and inspects its contents.
func DetectFile(filename string) (Format, error) {
	f, err := os.Open(filename)
	if err != nil {
		return Unknown, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return Unknown, err
	}
	return DetectFromReader(f, info.Size())
}

// DetectFromReader inspects the content to determine format. It reads
// [Content_Types].xml and looks for a known main-part content type, falling
// back to the top-level folder names when none is declared.
func DetectFromReader(r io.ReaderAt, size int64) (Format, error) {
	magic := make([]byte, 4)
	n, err := r.ReadAt(magic, 0)
	if err != nil && err != io.EOF {
		return Unknown, err
	}
	if !DetectFromMagic(magic[:n]) {
		return Unknown, nil
	}

	zr, err := zip.NewReader(r, size)
	if err != nil {
		return Unknown, err
	}
	return detectZIPFormat(zr)
}

type contentTypes struct {
	Overrides []struct {
		ContentType string `xml:"ContentType,attr"`
	} `xml:"Override"`
}

// detectZIPFormat inspects a ZIP archive to determine which OOXML format it is.
func detectZIPFormat(zr *zip.Reader) (Format, error) {
	for _, f := range zr.File {
		if f.Name != "[Content_Types].xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return Unknown, err
		}
		var ct contentTypes
		err = xml.NewDecoder(rc).Decode(&ct)
		rc.Close()
		if err != nil {
			return Unknown, fmt.Errorf("parsing content types: %w", err)
		}
		for _, o := range ct.Overrides {
			if format, ok := byContentType[o.ContentType]; ok {
				return format, nil
			}
		}
	}

	for _, f := range zr.File {
		switch {
		case strings.HasPrefix(f.Name, "ppt/"):
			return PPTX, nil
		case strings.HasPrefix(f.Name, "word/"):
			return DOCX, nil
		case strings.HasPrefix(f.Name, "xl/"):
			return XLSX, nil
		}
	}

	return Unknown, nil
}
