package serializer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weiguanght/adocsync/document"
)

func TestSerializeCodeBlock(t *testing.T) {
	ser := newTestSerializer(t, Config{})

	tests := []struct {
		name string
		node document.Node
		want string
	}{
		{
			"with language",
			document.Node{
				Kind:     document.KindCodeBlock,
				ID:       "c1",
				Attrs:    map[string]any{"language": "go"},
				Children: []document.Node{text("func main() {}\n")},
			},
			"[source,go]\n----\nfunc main() {}\n----\n\n",
		},
		{
			"without language",
			document.Node{
				Kind:     document.KindCodeBlock,
				ID:       "c1",
				Children: []document.Node{text("plain")},
			},
			"----\nplain\n----\n\n",
		},
		{
			"empty body keeps fences",
			document.Node{Kind: document.KindCodeBlock, ID: "c1"},
			"----\n----\n\n",
		},
		{
			"multiline body verbatim",
			document.Node{
				Kind:     document.KindCodeBlock,
				ID:       "c1",
				Children: []document.Node{text("a := 1\n\nb := *a\n")},
			},
			"----\na := 1\n\nb := *a\n----\n\n",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result, err := ser.Serialize(root(tc.node))
			require.NoError(t, err)
			assert.Equal(t, tc.want, result.Text)
			assert.Equal(t, 1, result.SourceMap.BlockToLine["c1"])
		})
	}
}

func TestSerializeCodeBlockLanguageMap(t *testing.T) {
	ser := newTestSerializer(t, Config{LanguageMap: map[string]string{"golang": "go"}})

	result, err := ser.Serialize(root(document.Node{
		Kind:     document.KindCodeBlock,
		Attrs:    map[string]any{"language": "golang"},
		Children: []document.Node{text("x")},
	}))
	require.NoError(t, err)
	assert.Equal(t, "[source,go]\n----\nx\n----\n\n", result.Text)
}

func TestSerializeBlockquote(t *testing.T) {
	ser := newTestSerializer(t, Config{})

	tree := root(document.Node{
		Kind: document.KindBlockquote,
		ID:   "q1",
		Children: []document.Node{
			paragraph("p1", text("first")),
			paragraph("p2", text("second")),
		},
	})

	result, err := ser.Serialize(tree)
	require.NoError(t, err)

	assert.Equal(t, "____\nfirst\n\nsecond\n____\n\n", result.Text)
	assert.Equal(t, 1, result.SourceMap.BlockToLine["q1"])
	assert.Equal(t, 2, result.SourceMap.BlockToLine["p1"])
	assert.Equal(t, 4, result.SourceMap.BlockToLine["p2"])
}

func TestSerializeRule(t *testing.T) {
	ser := newTestSerializer(t, Config{})

	result, err := ser.Serialize(root(document.Node{Kind: document.KindHorizontalRule, ID: "hr1"}))
	require.NoError(t, err)

	assert.Equal(t, "'''\n\n", result.Text)
	assert.Equal(t, 1, result.SourceMap.BlockToLine["hr1"])
}

func TestSerializeImage(t *testing.T) {
	ser := newTestSerializer(t, Config{})

	t.Run("with caption", func(t *testing.T) {
		result, err := ser.Serialize(root(document.Node{
			Kind:  document.KindImage,
			ID:    "img1",
			Attrs: map[string]any{"src": "diagram.png", "alt": "flow", "title": "The flow"},
		}))
		require.NoError(t, err)
		assert.Equal(t, ".The flow\nimage::diagram.png[flow]\n\n", result.Text)
		assert.Equal(t, 1, result.SourceMap.BlockToLine["img1"])
	})

	t.Run("missing src warns", func(t *testing.T) {
		result, err := ser.Serialize(root(document.Node{Kind: document.KindImage, ID: "img1"}))
		require.NoError(t, err)
		assert.Equal(t, "image::[]\n\n", result.Text)
		require.Len(t, result.Warnings, 1)
		assert.Equal(t, WarningMissingAttribute, result.Warnings[0].Type)
	})
}

func TestSerializeAdmonition(t *testing.T) {
	ser := newTestSerializer(t, Config{})

	t.Run("warning type", func(t *testing.T) {
		result, err := ser.Serialize(root(document.Node{
			Kind:     document.KindAdmonition,
			ID:       "a1",
			Attrs:    map[string]any{"type": "warning"},
			Children: []document.Node{paragraph("p1", text("careful"))},
		}))
		require.NoError(t, err)
		assert.Equal(t, "[WARNING]\n====\ncareful\n====\n\n", result.Text)
		assert.Equal(t, 1, result.SourceMap.BlockToLine["a1"])
		assert.Equal(t, 3, result.SourceMap.BlockToLine["p1"])
	})

	t.Run("unknown type falls back to NOTE", func(t *testing.T) {
		result, err := ser.Serialize(root(document.Node{
			Kind:     document.KindAdmonition,
			Attrs:    map[string]any{"type": "rumor"},
			Children: []document.Node{paragraph("p1", text("x"))},
		}))
		require.NoError(t, err)
		assert.Equal(t, "[NOTE]\n====\nx\n====\n\n", result.Text)
		require.Len(t, result.Warnings, 1)
	})
}

func TestSerializeInclude(t *testing.T) {
	ser := newTestSerializer(t, Config{})

	tests := []struct {
		name  string
		attrs map[string]any
		want  string
	}{
		{
			"bare path",
			map[string]any{"path": "chapter.adoc"},
			"include::chapter.adoc[]\n\n",
		},
		{
			"all attributes in fixed order",
			map[string]any{"path": "chapter.adoc", "levelOffset": 2, "lineRange": "1..10", "tag": "intro"},
			"include::chapter.adoc[leveloffset=+2,lines=1..10,tag=intro]\n\n",
		},
		{
			"negative offset",
			map[string]any{"path": "chapter.adoc", "levelOffset": -1},
			"include::chapter.adoc[leveloffset=-1]\n\n",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result, err := ser.Serialize(root(document.Node{
				Kind:  document.KindInclude,
				ID:    "inc1",
				Attrs: tc.attrs,
			}))
			require.NoError(t, err)
			assert.Equal(t, tc.want, result.Text)
			assert.Equal(t, 1, result.SourceMap.BlockToLine["inc1"])
		})
	}
}

func TestSerializeRawBlock(t *testing.T) {
	ser := newTestSerializer(t, Config{})

	result, err := ser.Serialize(root(document.Node{
		Kind:  document.KindRawBlock,
		ID:    "raw1",
		Attrs: map[string]any{"source": "ifdef::env[]\ncontent\nendif::[]\n"},
	}))
	require.NoError(t, err)

	assert.Equal(t, "ifdef::env[]\ncontent\nendif::[]\n\n", result.Text)
	assert.Equal(t, 1, result.SourceMap.BlockToLine["raw1"])
	// Only the first line of the replayed source carries the identity.
	assert.Equal(t, "raw1", result.SourceMap.LineToBlock[1])
	_, mapped := result.SourceMap.BlockForLine(2)
	assert.False(t, mapped)
}

func TestSerializeRawBlockNewlineOnlySource(t *testing.T) {
	ser := newTestSerializer(t, Config{})

	result, err := ser.Serialize(root(
		document.Node{Kind: document.KindRawBlock, ID: "raw1", Attrs: map[string]any{"source": "\n"}},
		paragraph("p1", text("kept")),
	))
	require.NoError(t, err)

	// A newline-only source must not claim an empty output line.
	assert.Equal(t, "kept\n\n", result.Text)
	_, mapped := result.SourceMap.LineForBlock("raw1")
	assert.False(t, mapped)
}

func TestSerializeUnknownNodeNewlineOnlySource(t *testing.T) {
	ser := newTestSerializer(t, Config{})

	result, err := ser.Serialize(root(
		document.Node{Kind: "hologram", ID: "x1", Attrs: map[string]any{"rawSource": "\n\n"}},
		paragraph("p1", text("kept")),
	))
	require.NoError(t, err)

	assert.Equal(t, "kept\n\n", result.Text)
	_, mapped := result.SourceMap.LineForBlock("x1")
	assert.False(t, mapped)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, WarningUnknownNode, result.Warnings[0].Type)
}

func TestSerializeNestedContainers(t *testing.T) {
	ser := newTestSerializer(t, Config{})

	tree := root(document.Node{
		Kind: document.KindAdmonition,
		ID:   "a1",
		Attrs: map[string]any{"type": "tip"},
		Children: []document.Node{
			document.Node{
				Kind:     document.KindBlockquote,
				ID:       "q1",
				Children: []document.Node{paragraph("p1", text("deep"))},
			},
		},
	})

	result, err := ser.Serialize(tree)
	require.NoError(t, err)

	assert.Equal(t, "[TIP]\n====\n____\ndeep\n____\n====\n\n", result.Text)
	assert.Equal(t, 3, result.SourceMap.BlockToLine["q1"])
	assert.Equal(t, 4, result.SourceMap.BlockToLine["p1"])
}
