package format

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/retheme/internal/testutil"
)

func TestFormat_String(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{PPTX, "PPTX"},
		{PPTM, "PPTM"},
		{POTX, "POTX"},
		{POTM, "POTM"},
		{PPSX, "PPSX"},
		{DOCX, "DOCX"},
		{XLSX, "XLSX"},
		{Unknown, "Unknown"},
		{Format(99), "Unknown"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.format.String(), "Format(%d)", tt.format)
	}
}

func TestFormat_Extension(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{PPTX, ".pptx"},
		{POTX, ".potx"},
		{PPSX, ".ppsx"},
		{DOCX, ".docx"},
		{Unknown, ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.format.Extension(), "Format(%d)", tt.format)
	}
}

func TestFormat_IsPresentation(t *testing.T) {
	for _, f := range []Format{PPTX, PPTM, POTX, POTM, PPSX} {
		assert.True(t, f.IsPresentation(), f.String())
	}
	for _, f := range []Format{Unknown, DOCX, XLSX} {
		assert.False(t, f.IsPresentation(), f.String())
	}
	assert.True(t, POTX.IsTemplate())
	assert.False(t, PPTX.IsTemplate())
}

func TestDetect(t *testing.T) {
	tests := []struct {
		filename string
		want     Format
	}{
		{"deck.pptx", PPTX},
		{"deck.PPTX", PPTX},
		{"deck.Pptx", PPTX},
		{"deck.pptm", PPTM},
		{"brand.potx", POTX},
		{"brand.POTX", POTX},
		{"brand.potm", POTM},
		{"show.ppsx", PPSX},
		{"notes.docx", DOCX},
		{"sheet.xlsx", XLSX},
		{"deck.pdf", Unknown},
		{"deck", Unknown},
		{"", Unknown},
		{"/path/to/deck.pptx", PPTX},
		{"/path/to.potx/deck", Unknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Detect(tt.filename), "Detect(%q)", tt.filename)
	}
}

func TestDetectFromMagic(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want bool
	}{
		{"zip", []byte{0x50, 0x4B, 0x03, 0x04, 0x00}, true},
		{"pdf", []byte("%PDF-1.4"), false},
		{"short", []byte{0x50, 0x4B}, false},
		{"empty", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectFromMagic(tt.data))
		})
	}
}

func TestDetectFromReader(t *testing.T) {
	deck, err := testutil.Deck{Layouts: []string{"Title"}}.Bytes()
	require.NoError(t, err)
	tpl, err := testutil.Deck{Layouts: []string{"Title"}, Template: true}.Bytes()
	require.NoError(t, err)

	tests := []struct {
		name string
		data []byte
		want Format
	}{
		{"presentation", deck, PPTX},
		{"template", tpl, POTX},
		{"folder fallback", zipOf(t, map[string]string{"word/document.xml": "<w:document/>"}), DOCX},
		{"plain zip", zipOf(t, map[string]string{"readme.txt": "hi"}), Unknown},
		{"not a zip", []byte("Hello, World!"), Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DetectFromReader(bytes.NewReader(tt.data), int64(len(tt.data)))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "brand.bin")
	require.NoError(t, testutil.Deck{Layouts: []string{"Title"}, Template: true}.WriteFile(path))

	got, err := DetectFile(path)
	require.NoError(t, err)
	assert.Equal(t, POTX, got)

	_, err = DetectFile(filepath.Join(t.TempDir(), "missing.pptx"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func zipOf(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}
