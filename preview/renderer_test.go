package preview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, markup string) string {
	t.Helper()

	out, err := NewRenderer().Render(markup)
	require.NoError(t, err)
	return out
}

func TestRenderHeadingAndParagraph(t *testing.T) {
	out := render(t, "= Title\n\nHello *world*\n\n")

	want := `<h1 id="adoc-b1" data-line="1">Title</h1>` +
		`<p id="adoc-b2" data-line="3">Hello <strong>world</strong></p>`
	assert.Equal(t, want, out)
}

func TestRenderHeadingLevels(t *testing.T) {
	out := render(t, "=== Deep\n")
	assert.Equal(t, `<h3 id="adoc-b1" data-line="1">Deep</h3>`, out)
}

func TestRenderCodeBlock(t *testing.T) {
	out := render(t, "[source,go]\n----\nx := 1 < 2\n----\n\n")
	assert.Equal(t, `<pre id="adoc-b1" data-line="1"><code>x := 1 &lt; 2</code></pre>`, out)
}

func TestRenderCodeBlockWithoutLanguage(t *testing.T) {
	out := render(t, "----\nplain\n----\n")
	assert.Equal(t, `<pre id="adoc-b1" data-line="1"><code>plain</code></pre>`, out)
}

func TestRenderBlockquoteKeepsAbsoluteLines(t *testing.T) {
	out := render(t, "one\n\n____\nquoted\n____\n\n")

	want := `<p id="adoc-b1" data-line="1">one</p>` +
		`<blockquote id="adoc-b2" data-line="3">` +
		`<p id="adoc-b3" data-line="4">quoted</p>` +
		`</blockquote>`
	assert.Equal(t, want, out)
}

func TestRenderAdmonition(t *testing.T) {
	out := render(t, "[WARNING]\n====\ncareful\n====\n\n")

	assert.Contains(t, out, `class="admonition admonition-warning"`)
	assert.Contains(t, out, `<p class="admonition-title">WARNING</p>`)
	assert.Contains(t, out, `data-line="3">careful</p>`)
}

func TestRenderTable(t *testing.T) {
	out := render(t, "[cols=\"2*\", options=\"header\"]\n|===\n| A | B\n\n| 1 | 2\n|===\n\n")

	want := `<table id="adoc-b1" data-line="1">` +
		`<tr id="adoc-b2" data-line="3"><th>A</th><th>B</th></tr>` +
		`<tr id="adoc-b3" data-line="5"><td>1</td><td>2</td></tr>` +
		`</table>`
	assert.Equal(t, want, out)
}

func TestRenderTableSpans(t *testing.T) {
	out := render(t, "[cols=\"2*\"]\n|===\n2+| wide .3+| tall\n|===\n\n")

	assert.Contains(t, out, `<td colspan="2">wide</td>`)
	assert.Contains(t, out, `<td rowspan="3">tall</td>`)
}

func TestRenderTableCombinedSpanPrefix(t *testing.T) {
	out := render(t, "[cols=\"2*\"]\n|===\n2+.2+| both | plain\n|===\n\n")

	assert.Contains(t, out, `<td colspan="2" rowspan="2">both</td>`)
	assert.Contains(t, out, `<td>plain</td>`)
}

func TestSplitCells(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []tableCell
	}{
		{
			"plain row",
			"| A | B",
			[]tableCell{{text: "A", colspan: 1, rowspan: 1}, {text: "B", colspan: 1, rowspan: 1}},
		},
		{
			"non-leading colspan",
			"| A 2+| B",
			[]tableCell{{text: "A", colspan: 1, rowspan: 1}, {text: "B", colspan: 2, rowspan: 1}},
		},
		{
			"rowspan then colspan cells",
			".3+| tall 2+| wide",
			[]tableCell{{text: "tall", colspan: 1, rowspan: 3}, {text: "wide", colspan: 2, rowspan: 1}},
		},
		{
			"empty cell",
			"| | B",
			[]tableCell{{text: "", colspan: 1, rowspan: 1}, {text: "B", colspan: 1, rowspan: 1}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, splitCells(tc.line))
		})
	}
}

func TestRenderLists(t *testing.T) {
	t.Run("flat bullet", func(t *testing.T) {
		out := render(t, "* alpha\n* beta\n\n")
		want := `<ul id="adoc-b1" data-line="1">` +
			`<li id="adoc-b2" data-line="1">alpha</li>` +
			`<li id="adoc-b3" data-line="2">beta</li>` +
			`</ul>`
		assert.Equal(t, want, out)
	})

	t.Run("nested ordered under bullet", func(t *testing.T) {
		out := render(t, "* outer\n.. inner\n* after\n\n")
		assert.Contains(t, out, "<ol")
		assert.Contains(t, out, `data-line="2">inner</li>`)
		assert.Contains(t, out, `data-line="3">after</li>`)
	})
}

func TestRenderRule(t *testing.T) {
	out := render(t, "'''\n\n")
	assert.Equal(t, `<hr id="adoc-b1" data-line="1"/>`, out)
}

func TestRenderImage(t *testing.T) {
	t.Run("bare", func(t *testing.T) {
		out := render(t, "image::diagram.png[flow]\n\n")
		assert.Equal(t, `<figure id="adoc-b1" data-line="1"><img src="diagram.png" alt="flow"/></figure>`, out)
	})

	t.Run("with caption", func(t *testing.T) {
		out := render(t, ".The flow\nimage::diagram.png[flow]\n\n")
		assert.Contains(t, out, "<figcaption>The flow</figcaption>")
		assert.Contains(t, out, `data-line="1"`)
	})
}

func TestRenderInclude(t *testing.T) {
	out := render(t, "include::chapter.adoc[leveloffset=+1]\n\n")
	assert.Contains(t, out, `class="include"`)
	assert.Contains(t, out, "include::chapter.adoc[leveloffset=+1]")
}

func TestRenderInlineMarks(t *testing.T) {
	tests := []struct {
		name   string
		markup string
		want   string
	}{
		{"bold", "a *b* c\n", "a <strong>b</strong> c"},
		{"italic", "a _b_ c\n", "a <em>b</em> c"},
		{"code", "a `b` c\n", "a <code>b</code> c"},
		{"link", "see link:https://a.io[docs]\n", `see <a href="https://a.io">docs</a>`},
		{"underline", "[.underline]#u#\n", `<span class="underline">u</span>`},
		{"strike", "[.line-through]#s#\n", `<span class="line-through">s</span>`},
		{"highlight", "a #h# b\n", "a <mark>h</mark> b"},
		{"escaping", "1 < 2 & 3\n", "1 &lt; 2 &amp; 3"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Contains(t, render(t, tc.markup), tc.want)
		})
	}
}

func TestRenderEveryBlockCarriesLineAttribute(t *testing.T) {
	markup := "= T\n\npara\n\n----\ncode\n----\n\n* item\n\n'''\n\n"
	out := render(t, markup)

	ids := blockIDRe.FindAllString(out, -1)
	linesAttrs := dataLineRe.FindAllString(out, -1)
	require.NotEmpty(t, ids)
	assert.Equal(t, len(ids), len(linesAttrs))
}

func TestRenderUnknownLineFallsBackToParagraph(t *testing.T) {
	out := render(t, "|=== stray\n")
	assert.Contains(t, out, "<p")
}
