package theme

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tsawler/retheme/internal/testutil"
	"github.com/tsawler/retheme/opc"
	"github.com/tsawler/retheme/pptx"
)

const (
	zhTitle   = "标题幻灯片"
	zhContent = "标题和内容"
	zhCustom  = "自定义版式"
)

func openDeck(t *testing.T, d testutil.Deck) *pptx.Presentation {
	t.Helper()
	data, err := d.Bytes()
	require.NoError(t, err)
	p, err := pptx.OpenReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	return p
}

// scenarioDeck is the four-slide deck: S1 "Title", S2 and S3 "标题和内容",
// S4 "自定义版式".
func scenarioDeck() testutil.Deck {
	return testutil.Deck{
		Theme:   "Old Theme",
		Layouts: []string{"Title", zhContent, zhCustom},
		Slides: []testutil.Slide{
			{Title: "S1", Layout: 0},
			{Title: "S2", Layout: 1},
			{Title: "S3", Layout: 1},
			{Title: "S4", Layout: 2},
		},
	}
}

// scenarioTheme is a template whose master has the three zh-CN layouts.
func scenarioTheme() testutil.Deck {
	return testutil.Deck{
		Theme:    "New Theme",
		Layouts:  []string{zhTitle, zhContent, zhCustom},
		Template: true,
	}
}

func scenarioConfig() Config {
	return Config{
		TitleLayout:   zhTitle,
		ClosingLayout: zhCustom,
		DefaultLayout: zhContent,
	}
}

// layoutRelationships returns the slide's layout relationships.
func layoutRelationships(slide *opc.Part) []opc.Relationship {
	var out []opc.Relationship
	for _, rel := range slide.Relationships() {
		if rel.Type == pptx.RelSlideLayout {
			out = append(out, rel)
		}
	}
	return out
}

// slideParts returns the slide parts of doc in slide-list order.
func slideParts(t *testing.T, doc *pptx.Presentation) []*opc.Part {
	t.Helper()
	refs, ok := doc.SlideRefs()
	require.True(t, ok)
	parts := make([]*opc.Part, 0, len(refs))
	for _, ref := range refs {
		slide := doc.Slide(ref)
		require.NotNil(t, slide, ref.RelID)
		parts = append(parts, slide)
	}
	return parts
}

func layoutName(t *testing.T, layout *opc.Part) string {
	t.Helper()
	require.NotNil(t, layout)
	name, err := pptx.LayoutName(layout)
	require.NoError(t, err)
	return name
}
