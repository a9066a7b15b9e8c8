package theme

import (
	"bytes"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/retheme/internal/logging"
	"github.com/tsawler/retheme/internal/testutil"
	"github.com/tsawler/retheme/pptx"
)

func TestApply_Scenario(t *testing.T) {
	target := openDeck(t, scenarioDeck())
	source := openDeck(t, scenarioTheme())

	report, err := Apply(target, source, scenarioConfig())
	require.NoError(t, err)
	require.Len(t, report.Bindings, 4)

	want := []struct {
		layout string
		rule   Rule
		role   Role
	}{
		{zhTitle, RuleTitle, First},
		{zhContent, RuleSameName, Interior},
		{zhContent, RuleSameName, Interior},
		{zhCustom, RuleClosing, Last},
	}
	for i, w := range want {
		b := report.Bindings[i]
		assert.Equal(t, i, b.Index)
		assert.Equal(t, w.layout, b.NewLayout, "slide %d", i+1)
		assert.Equal(t, w.rule, b.Rule, "slide %d", i+1)
		assert.Equal(t, w.role, b.Role, "slide %d", i+1)
	}
	assert.Equal(t, "Title", report.Bindings[0].OldLayout)
	assert.Equal(t, zhCustom, report.Bindings[3].OldLayout)

	// S2 and S3 share the same new layout part.
	slides := slideParts(t, target)
	assert.Same(t, pptx.LayoutOf(slides[1]), pptx.LayoutOf(slides[2]))

	assert.Equal(t, []string{zhTitle, zhContent, zhCustom}, report.Layouts)
	assert.Empty(t, report.Warnings)
}

func TestApply_TotalCoverage(t *testing.T) {
	target := openDeck(t, scenarioDeck())
	source := openDeck(t, scenarioTheme())

	_, err := Apply(target, source, scenarioConfig())
	require.NoError(t, err)

	newMaster := target.Masters()[0]
	cat := BuildCatalog(newMaster)
	for _, slide := range slideParts(t, target) {
		rels := layoutRelationships(slide)
		require.Len(t, rels, 1, slide.Name())

		layout := pptx.LayoutOf(slide)
		require.NotNil(t, layout)
		got, ok := cat.Lookup(layoutName(t, layout))
		require.True(t, ok)
		assert.Same(t, got, layout)
	}
}

func TestApply_RelationshipIDStable(t *testing.T) {
	target := openDeck(t, scenarioDeck())
	pkg := target.Package()

	before, err := pkg.RelationshipID(target.Part(), target.Masters()[0])
	require.NoError(t, err)

	report, err := Apply(target, openDeck(t, scenarioTheme()), scenarioConfig())
	require.NoError(t, err)

	after, err := pkg.RelationshipID(target.Part(), target.Masters()[0])
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Equal(t, before, report.MasterRelID)
}

func TestApply_OldPartsSwept(t *testing.T) {
	target := openDeck(t, scenarioDeck())

	report, err := Apply(target, openDeck(t, scenarioTheme()), scenarioConfig())
	require.NoError(t, err)

	pkg := target.Package()
	assert.Nil(t, pkg.Part(report.OldMaster))
	assert.NotNil(t, pkg.Part(report.NewMaster))
	assert.Nil(t, pkg.Part("/ppt/theme/theme1.xml"))
	for i := 1; i <= 3; i++ {
		assert.Nil(t, pkg.Part(fmt.Sprintf("/ppt/slideLayouts/slideLayout%d.xml", i)))
	}
}

func TestApply_SingleSlideGetsTitle(t *testing.T) {
	target := openDeck(t, testutil.Deck{
		Layouts: []string{zhContent},
		Slides:  []testutil.Slide{{Title: "Only", Layout: 0}},
	})

	report, err := Apply(target, openDeck(t, scenarioTheme()), scenarioConfig())
	require.NoError(t, err)
	require.Len(t, report.Bindings, 1)
	assert.Equal(t, First, report.Bindings[0].Role)
	assert.Equal(t, RuleTitle, report.Bindings[0].Rule)
	assert.Equal(t, zhTitle, report.Bindings[0].NewLayout)
}

func TestApply_Fallback(t *testing.T) {
	target := openDeck(t, testutil.Deck{
		Layouts: []string{"Title", "Two Content", zhCustom},
		Slides: []testutil.Slide{
			{Title: "Open", Layout: 0},
			{Title: "Unknown name", Layout: 1},
			{Title: "No layout", Layout: testutil.NoLayout},
			{Title: "Known name", Layout: 2},
			{Title: "Close", Layout: 1},
		},
	})

	report, err := Apply(target, openDeck(t, scenarioTheme()), scenarioConfig())
	require.NoError(t, err)
	require.Len(t, report.Bindings, 5)

	assert.Equal(t, RuleDefault, report.Bindings[1].Rule)
	assert.Equal(t, zhContent, report.Bindings[1].NewLayout)
	assert.Equal(t, "Two Content", report.Bindings[1].OldLayout)

	assert.Equal(t, RuleDefault, report.Bindings[2].Rule)
	assert.Equal(t, zhContent, report.Bindings[2].NewLayout)
	assert.Empty(t, report.Bindings[2].OldLayout)

	assert.Equal(t, RuleSameName, report.Bindings[3].Rule)
	assert.Equal(t, zhCustom, report.Bindings[3].NewLayout)

	assert.Equal(t, RuleClosing, report.Bindings[4].Rule)
}

func TestApply_DanglingLayoutFallsBackToDefault(t *testing.T) {
	d := scenarioDeck()
	d.Omit = []string{"ppt/slideLayouts/slideLayout2.xml"}
	target := openDeck(t, d)
	slides := slideParts(t, target)
	require.Nil(t, pptx.LayoutOf(slides[1]))
	oldRels := layoutRelationships(slides[1])
	require.Len(t, oldRels, 1)

	report, err := Apply(target, openDeck(t, scenarioTheme()), scenarioConfig())
	require.NoError(t, err)
	require.Len(t, report.Bindings, 4)

	for _, b := range report.Bindings[1:3] {
		assert.Equal(t, RuleDefault, b.Rule, b.Slide)
		assert.Empty(t, b.OldLayout, b.Slide)
		assert.Equal(t, zhContent, b.NewLayout, b.Slide)
		assert.NotEqual(t, "/ppt/slideLayouts/slideLayout2.xml", b.LayoutPart, "dangling target reused")
	}

	rels := layoutRelationships(slides[1])
	require.Len(t, rels, 1)
	assert.Equal(t, oldRels[0].ID, rels[0].ID)
	assert.Equal(t, zhContent, layoutName(t, pptx.LayoutOf(slides[1])))
}

func TestApply_MissingConfiguredLayoutLeavesTargetUntouched(t *testing.T) {
	target := openDeck(t, scenarioDeck())
	pkg := target.Package()
	partsBefore := len(pkg.Parts())
	masterBefore := target.Masters()[0]

	cfg := scenarioConfig()
	cfg.ClosingLayout = "Thank You"

	_, err := Apply(target, openDeck(t, scenarioTheme()), cfg)
	var missing *DefaultLayoutMissingError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "Thank You", missing.Name)
	assert.Equal(t, RuleClosing, missing.Rule)

	assert.Len(t, pkg.Parts(), partsBefore)
	assert.Same(t, masterBefore, target.Masters()[0])
}

func TestApply_DefaultOnlyNeededWhenUsed(t *testing.T) {
	// Every interior slide matches by name, so a bad default is harmless.
	target := openDeck(t, scenarioDeck())
	cfg := scenarioConfig()
	cfg.DefaultLayout = "Missing"

	_, err := Apply(target, openDeck(t, scenarioTheme()), cfg)
	require.NoError(t, err)
}

func TestApply_InvalidConfig(t *testing.T) {
	target := openDeck(t, scenarioDeck())

	_, err := Apply(target, openDeck(t, scenarioTheme()), Config{TitleLayout: zhTitle})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestApply_StructuralErrors(t *testing.T) {
	t.Run("no slide list", func(t *testing.T) {
		d := scenarioDeck()
		d.NoSlideList = true
		_, err := Apply(openDeck(t, d), openDeck(t, scenarioTheme()), scenarioConfig())
		var malformed *MalformedDocumentError
		assert.ErrorAs(t, err, &malformed)
	})

	t.Run("ambiguous theme master", func(t *testing.T) {
		src := scenarioTheme()
		src.Masters = 2
		_, err := Apply(openDeck(t, scenarioDeck()), openDeck(t, src), scenarioConfig())
		var ambiguous *AmbiguousMasterError
		require.ErrorAs(t, err, &ambiguous)
		assert.Equal(t, "theme", ambiguous.Document)
	})
}

func TestApply_UnnamedThemeLayoutsWarn(t *testing.T) {
	src := scenarioTheme()
	src.Layouts = append(src.Layouts, "")

	report, err := Apply(openDeck(t, scenarioDeck()), openDeck(t, src), scenarioConfig())
	require.NoError(t, err)
	require.Len(t, report.Warnings, 1)
	var missing *MissingNameError
	assert.ErrorAs(t, report.Warnings[0], &missing)
}

func TestApply_SaveAndReopen(t *testing.T) {
	target := openDeck(t, scenarioDeck())
	_, err := Apply(target, openDeck(t, scenarioTheme()), scenarioConfig())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, target.Save(&buf))
	again, err := pptx.OpenReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)

	ids := again.MasterRelIDs()
	require.Len(t, ids, 1)
	master := again.Part().Target(ids[0])
	require.NotNil(t, master)
	assert.Len(t, pptx.Layouts(master), 3)

	var names []string
	for _, s := range again.Slides() {
		names = append(names, s.Layout)
	}
	assert.Equal(t, []string{zhTitle, zhContent, zhContent, zhCustom}, names)
	assert.Contains(t, string(again.Theme().Data()), "New Theme")
}

func TestApply_Logs(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWriter(&buf, slog.LevelDebug)

	_, err := Apply(openDeck(t, scenarioDeck()), openDeck(t, scenarioTheme()), scenarioConfig(), WithLogger(logger))
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "slide master replaced")
	assert.Contains(t, out, "slide relinked")
	assert.Contains(t, out, "rule=same-name")
	assert.Contains(t, out, "theme applied")
}
