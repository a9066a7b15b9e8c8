package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/retheme/internal/testutil"
	"github.com/tsawler/retheme/pptx"
)

func TestResolve_Cascade(t *testing.T) {
	cat := BuildCatalog(openDeck(t, scenarioTheme()).Masters()[0])
	cfg := scenarioConfig()

	tests := []struct {
		name     string
		role     Role
		oldName  string
		wantName string
		wantRule Rule
	}{
		{"first slide", First, zhContent, zhTitle, RuleTitle},
		{"first slide without layout", First, "", zhTitle, RuleTitle},
		{"last slide overrides name match", Last, zhContent, zhCustom, RuleClosing},
		{"interior name match", Interior, zhContent, zhContent, RuleSameName},
		{"interior name match on title layout", Interior, zhTitle, zhTitle, RuleSameName},
		{"interior unknown name", Interior, "Two Content", zhContent, RuleDefault},
		{"interior without layout", Interior, "", zhContent, RuleDefault},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			layout, rule, err := Resolve(tt.role, tt.oldName, cat, cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.wantRule, rule)
			assert.Equal(t, tt.wantName, layoutName(t, layout))
		})
	}
}

func TestResolve_MissingConfiguredLayout(t *testing.T) {
	cat := BuildCatalog(openDeck(t, scenarioTheme()).Masters()[0])

	tests := []struct {
		name string
		role Role
		cfg  Config
		rule Rule
	}{
		{"title", First, Config{TitleLayout: "Nope", ClosingLayout: zhCustom, DefaultLayout: zhContent}, RuleTitle},
		{"closing", Last, Config{TitleLayout: zhTitle, ClosingLayout: "Nope", DefaultLayout: zhContent}, RuleClosing},
		{"default", Interior, Config{TitleLayout: zhTitle, ClosingLayout: zhCustom, DefaultLayout: "Nope"}, RuleDefault},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Resolve(tt.role, "Unknown", cat, tt.cfg)
			var missing *DefaultLayoutMissingError
			require.ErrorAs(t, err, &missing)
			assert.Equal(t, "Nope", missing.Name)
			assert.Equal(t, tt.rule, missing.Rule)
			assert.Contains(t, err.Error(), tt.rule.String())
		})
	}
}

func TestResolve_NameMatchNeedsNoDefault(t *testing.T) {
	cat := BuildCatalog(openDeck(t, scenarioTheme()).Masters()[0])
	cfg := Config{TitleLayout: zhTitle, ClosingLayout: zhCustom, DefaultLayout: "Nope"}

	layout, rule, err := Resolve(Interior, zhCustom, cat, cfg)
	require.NoError(t, err)
	assert.Equal(t, RuleSameName, rule)
	assert.Equal(t, zhCustom, layoutName(t, layout))
}

func TestRule_String(t *testing.T) {
	assert.Equal(t, "title", RuleTitle.String())
	assert.Equal(t, "closing", RuleClosing.String())
	assert.Equal(t, "same-name", RuleSameName.String())
	assert.Equal(t, "default", RuleDefault.String())
	assert.Equal(t, "unknown", Rule(0).String())
}

func TestRelink(t *testing.T) {
	target := openDeck(t, scenarioDeck())
	newMaster, err := SwapMaster(target, openDeck(t, scenarioTheme()))
	require.NoError(t, err)
	cat := BuildCatalog(newMaster)
	slides := slideParts(t, target)

	oldRels := layoutRelationships(slides[1])
	require.Len(t, oldRels, 1)

	b, err := Relink(target, slides[1], Interior, cat, scenarioConfig())
	require.NoError(t, err)
	assert.Equal(t, RuleSameName, b.Rule)
	assert.Equal(t, zhContent, b.OldLayout)
	assert.Equal(t, zhContent, b.NewLayout)
	assert.Equal(t, slides[1].Name(), b.Slide)

	rels := layoutRelationships(slides[1])
	require.Len(t, rels, 1)
	assert.Equal(t, oldRels[0].ID, rels[0].ID, "relationship ID reused")

	layout := pptx.LayoutOf(slides[1])
	assert.Equal(t, b.LayoutPart, layout.Name())
	assert.Same(t, newMaster, pptx.MasterOf(layout))

	// Relinking again keeps a single layout relationship.
	b, err = Relink(target, slides[1], Interior, cat, scenarioConfig())
	require.NoError(t, err)
	assert.Equal(t, RuleSameName, b.Rule)
	assert.Len(t, layoutRelationships(slides[1]), 1)
}

func TestRelink_SlideWithoutLayout(t *testing.T) {
	target := openDeck(t, testutil.Deck{
		Layouts: []string{"Title"},
		Slides: []testutil.Slide{
			{Title: "A", Layout: 0},
			{Title: "B", Layout: testutil.NoLayout},
			{Title: "C", Layout: 0},
		},
	})
	newMaster, err := SwapMaster(target, openDeck(t, scenarioTheme()))
	require.NoError(t, err)
	cat := BuildCatalog(newMaster)
	slide := slideParts(t, target)[1]

	b, err := Relink(target, slide, Interior, cat, scenarioConfig())
	require.NoError(t, err)
	assert.Equal(t, RuleDefault, b.Rule)
	assert.Empty(t, b.OldLayout)
	assert.Equal(t, zhContent, b.NewLayout)

	rels := layoutRelationships(slide)
	require.Len(t, rels, 1)
	assert.Equal(t, "rId1", rels[0].ID)
}
