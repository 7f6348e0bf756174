package document

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAttrs(t *testing.T) {
	n := Node{Attrs: map[string]any{
		"level":    float64(3),
		"count":    2,
		"language": "go",
		"scale":    1.5,
	}}

	assert.Equal(t, "go", n.GetStringAttr("language", ""))
	assert.Equal(t, "fallback", n.GetStringAttr("missing", "fallback"))
	assert.Equal(t, 3, n.GetIntAttr("level", 1))
	assert.Equal(t, 2, n.GetIntAttr("count", 0))
	assert.Equal(t, 9, n.GetIntAttr("missing", 9))
	assert.Equal(t, 1.5, n.GetFloat64Attr("scale", 0))
	assert.Equal(t, 2.0, n.GetFloat64Attr("count", 0))

	var empty Node
	assert.Equal(t, "d", empty.GetStringAttr("x", "d"))
	assert.Equal(t, 4, empty.GetIntAttr("x", 4))
}

func TestGetIntAttrFromJSON(t *testing.T) {
	var n Node
	require.NoError(t, json.Unmarshal([]byte(`{"kind":"heading","attrs":{"level":2}}`), &n))

	// JSON numbers decode as float64; the accessor must still read them.
	assert.Equal(t, 2, n.GetIntAttr("level", 1))
}

func TestKindClassification(t *testing.T) {
	blocks := []Kind{
		KindParagraph, KindHeading, KindBulletList, KindOrderedList,
		KindListItem, KindCodeBlock, KindBlockquote, KindHorizontalRule,
		KindImage, KindTable, KindTableRow, KindTableCell,
		KindTableHeaderCell, KindAdmonition, KindInclude, KindRawBlock,
	}
	for _, k := range blocks {
		assert.True(t, k.IsBlock(), "%s should be block-level", k)
		assert.False(t, k.IsInline(), "%s should not be inline", k)
	}

	assert.True(t, KindText.IsInline())
	assert.False(t, KindText.IsBlock())
	assert.False(t, Kind("hologram").IsBlock())
}

func TestHasMark(t *testing.T) {
	n := Node{Kind: KindText, Text: "x", Marks: []Mark{{Type: MarkBold}}}
	assert.True(t, n.HasMark(MarkBold))
	assert.False(t, n.HasMark(MarkItalic))
}

func TestMarkGetStringAttr(t *testing.T) {
	m := Mark{Type: MarkLink, Attrs: map[string]any{"href": "https://example.com"}}
	assert.Equal(t, "https://example.com", m.GetStringAttr("href", ""))
	assert.Equal(t, "none", Mark{Type: MarkLink}.GetStringAttr("href", "none"))
}
