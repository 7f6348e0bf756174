package preview

import (
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"
)

// Renderer converts serialized markup into a read-only HTML projection.
// Every block-level element carries a data-line attribute holding the
// 1-based source line it was produced from, plus a stable sequential id,
// so clicks in the rendered pane can be resolved back to text lines.
type Renderer struct{}

// NewRenderer creates a preview renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

type renderState struct {
	sb      strings.Builder
	blockID int
}

// openTag writes an opening tag stamped with the block id and source line.
func (rs *renderState) openTag(tag string, line int, class string) {
	rs.blockID++
	if class != "" {
		fmt.Fprintf(&rs.sb, `<%s id="adoc-b%d" data-line="%d" class="%s">`, tag, rs.blockID, line, class)
		return
	}
	fmt.Fprintf(&rs.sb, `<%s id="adoc-b%d" data-line="%d">`, tag, rs.blockID, line)
}

// Render is a pure function of the markup text. It understands the subset of
// syntax the serializer produces; anything unrecognized renders as a plain
// paragraph so no input is ever dropped.
func (r *Renderer) Render(markup string) (string, error) {
	lines := strings.Split(strings.TrimRight(markup, "\n"), "\n")
	rs := &renderState{}

	i := 0
	for i < len(lines) {
		line := lines[i]
		switch {
		case line == "":
			i++
		case strings.HasPrefix(line, "="):
			i = r.renderHeading(rs, lines, i)
		case line == "----" || strings.HasPrefix(line, "[source"):
			i = r.renderCodeBlock(rs, lines, i)
		case line == "____":
			i = r.renderDelimited(rs, lines, i, "____", "blockquote", "")
		case isAdmonitionLabel(line) && i+1 < len(lines) && lines[i+1] == "====":
			label := strings.Trim(line, "[]")
			rs.openTag("div", i+1, "admonition admonition-"+strings.ToLower(label))
			fmt.Fprintf(&rs.sb, `<p class="admonition-title">%s</p>`, label)
			i = r.renderInner(rs, lines, i+2, "====")
			rs.sb.WriteString("</div>")
		case strings.HasPrefix(line, "[cols="):
			i = r.renderTable(rs, lines, i)
		case line == "'''":
			rs.blockID++
			fmt.Fprintf(&rs.sb, `<hr id="adoc-b%d" data-line="%d"/>`, rs.blockID, i+1)
			i++
		case strings.HasPrefix(line, "image::"):
			i = r.renderImage(rs, lines, i, "")
		case strings.HasPrefix(line, ".") && i+1 < len(lines) && strings.HasPrefix(lines[i+1], "image::"):
			i = r.renderImage(rs, lines, i+1, strings.TrimPrefix(line, "."))
		case strings.HasPrefix(line, "include::"):
			rs.openTag("div", i+1, "include")
			rs.sb.WriteString(html.EscapeString(line))
			rs.sb.WriteString("</div>")
			i++
		case listMarkerLen(line, '*') > 0 || listMarkerLen(line, '.') > 0:
			i = r.renderList(rs, lines, i, 1)
		default:
			rs.openTag("p", i+1, "")
			rs.sb.WriteString(renderInline(line))
			rs.sb.WriteString("</p>")
			i++
		}
	}

	return rs.sb.String(), nil
}

func (r *Renderer) renderHeading(rs *renderState, lines []string, i int) int {
	line := lines[i]
	level := 0
	for level < len(line) && line[level] == '=' {
		level++
	}
	if level > 6 || level >= len(line) || line[level] != ' ' {
		rs.openTag("p", i+1, "")
		rs.sb.WriteString(renderInline(line))
		rs.sb.WriteString("</p>")
		return i + 1
	}
	tag := fmt.Sprintf("h%d", level)
	rs.openTag(tag, i+1, "")
	rs.sb.WriteString(renderInline(line[level+1:]))
	fmt.Fprintf(&rs.sb, "</%s>", tag)
	return i + 1
}

func (r *Renderer) renderCodeBlock(rs *renderState, lines []string, i int) int {
	start := i
	if strings.HasPrefix(lines[i], "[source") {
		i++
	}
	if i >= len(lines) || lines[i] != "----" {
		rs.openTag("p", start+1, "")
		rs.sb.WriteString(renderInline(lines[start]))
		rs.sb.WriteString("</p>")
		return start + 1
	}
	i++
	var body []string
	for i < len(lines) && lines[i] != "----" {
		body = append(body, lines[i])
		i++
	}
	if i < len(lines) {
		i++ // closing fence
	}
	rs.openTag("pre", start+1, "")
	rs.sb.WriteString("<code>")
	rs.sb.WriteString(html.EscapeString(strings.Join(body, "\n")))
	rs.sb.WriteString("</code></pre>")
	return i
}

// renderDelimited wraps the lines between matching delimiters in a container
// element and renders them recursively.
func (r *Renderer) renderDelimited(rs *renderState, lines []string, i int, delim, tag, class string) int {
	rs.openTag(tag, i+1, class)
	end := r.renderInner(rs, lines, i+1, delim)
	fmt.Fprintf(&rs.sb, "</%s>", tag)
	return end
}

// renderInner renders lines until the closing delimiter, preserving absolute
// source line numbers for the nested blocks.
func (r *Renderer) renderInner(rs *renderState, lines []string, start int, delim string) int {
	end := start
	for end < len(lines) && lines[end] != delim {
		end++
	}
	inner, err := r.renderOffset(lines[start:end], start, rs)
	if err == nil {
		rs.sb.WriteString(inner)
	}
	if end < len(lines) {
		end++ // closing delimiter
	}
	return end
}

// renderOffset renders a slice of lines with line numbers shifted so nested
// content still maps to its absolute position in the full text.
func (r *Renderer) renderOffset(lines []string, offset int, rs *renderState) (string, error) {
	sub, err := r.Render(strings.Join(lines, "\n") + "\n")
	if err != nil {
		return "", err
	}
	// Rebase data-line attributes and block ids emitted by the sub-render.
	sub = rebaseLines(sub, offset)
	sub, rs.blockID = rebaseIDs(sub, rs.blockID)
	return sub, nil
}

func (r *Renderer) renderImage(rs *renderState, lines []string, i int, caption string) int {
	line := lines[i]
	src := strings.TrimPrefix(line, "image::")
	alt := ""
	if open := strings.Index(src, "["); open >= 0 {
		alt = strings.TrimSuffix(src[open+1:], "]")
		src = src[:open]
	}
	startLine := i + 1
	if caption != "" {
		startLine = i // caption line precedes the directive
	}
	rs.openTag("figure", startLine, "")
	fmt.Fprintf(&rs.sb, `<img src="%s" alt="%s"/>`, html.EscapeString(src), html.EscapeString(alt))
	if caption != "" {
		fmt.Fprintf(&rs.sb, "<figcaption>%s</figcaption>", html.EscapeString(caption))
	}
	rs.sb.WriteString("</figure>")
	return i + 1
}

func (r *Renderer) renderTable(rs *renderState, lines []string, i int) int {
	start := i
	hasHeader := strings.Contains(lines[i], `options="header"`)
	i++
	if i >= len(lines) || lines[i] != "|===" {
		rs.openTag("p", start+1, "")
		rs.sb.WriteString(renderInline(lines[start]))
		rs.sb.WriteString("</p>")
		return start + 1
	}
	i++

	rs.openTag("table", start+1, "")
	rowIndex := 0
	for i < len(lines) && lines[i] != "|===" {
		if lines[i] == "" {
			i++
			continue
		}
		cellTag := "td"
		if hasHeader && rowIndex == 0 {
			cellTag = "th"
		}
		rs.openTag("tr", i+1, "")
		for _, cell := range splitCells(lines[i]) {
			fmt.Fprintf(&rs.sb, "<%s", cellTag)
			if cell.colspan > 1 {
				fmt.Fprintf(&rs.sb, ` colspan="%d"`, cell.colspan)
			}
			if cell.rowspan > 1 {
				fmt.Fprintf(&rs.sb, ` rowspan="%d"`, cell.rowspan)
			}
			fmt.Fprintf(&rs.sb, ">%s</%s>", renderInline(cell.text), cellTag)
		}
		rs.sb.WriteString("</tr>")
		rowIndex++
		i++
	}
	if i < len(lines) {
		i++ // closing delimiter
	}
	rs.sb.WriteString("</table>")
	return i
}

func (r *Renderer) renderList(rs *renderState, lines []string, i, depth int) int {
	marker := byte('*')
	tag := "ul"
	if listMarkerLen(lines[i], '.') > 0 {
		marker = '.'
		tag = "ol"
	}

	rs.openTag(tag, i+1, "")
	for i < len(lines) {
		n := listMarkerLen(lines[i], marker)
		other := listMarkerLen(lines[i], otherMarker(marker))
		switch {
		case n == depth:
			rs.openTag("li", i+1, "")
			rs.sb.WriteString(renderInline(strings.TrimSpace(lines[i][n:])))
			rs.sb.WriteString("</li>")
			i++
		case n > depth || other > depth:
			i = r.renderList(rs, lines, i, depth+1)
		default:
			fmt.Fprintf(&rs.sb, "</%s>", tag)
			return i
		}
	}
	fmt.Fprintf(&rs.sb, "</%s>", tag)
	return i
}

func otherMarker(m byte) byte {
	if m == '*' {
		return '.'
	}
	return '*'
}

// listMarkerLen returns the marker run length when the line is a list item
// of the given marker, zero otherwise.
func listMarkerLen(line string, marker byte) int {
	n := 0
	for n < len(line) && line[n] == marker {
		n++
	}
	if n == 0 || n >= len(line) || line[n] != ' ' {
		return 0
	}
	return n
}

type tableCell struct {
	text    string
	colspan int
	rowspan int
}

// cellStartRe matches the start of a cell: an optional colspan prefix
// (N+), an optional rowspan prefix (.N+), then the separator.
var cellStartRe = regexp.MustCompile(`(?:(\d+)\+)?(?:\.(\d+)\+)?\|`)

// splitCells parses one table row line into cells, reading the span prefixes
// that may precede any separator, not just the first.
func splitCells(line string) []tableCell {
	matches := cellStartRe.FindAllStringSubmatchIndex(line, -1)
	cells := make([]tableCell, 0, len(matches))
	for idx, m := range matches {
		cell := tableCell{colspan: 1, rowspan: 1}
		if m[2] >= 0 {
			cell.colspan, _ = strconv.Atoi(line[m[2]:m[3]])
		}
		if m[4] >= 0 {
			cell.rowspan, _ = strconv.Atoi(line[m[4]:m[5]])
		}
		end := len(line)
		if idx+1 < len(matches) {
			end = matches[idx+1][0]
		}
		cell.text = strings.TrimSpace(line[m[1]:end])
		cells = append(cells, cell)
	}
	return cells
}

var (
	boldRe      = regexp.MustCompile(`\*([^*]+)\*`)
	italicRe    = regexp.MustCompile(`_([^_]+)_`)
	codeRe      = regexp.MustCompile("`([^`]+)`")
	linkRe      = regexp.MustCompile(`link:([^\[]+)\[([^\]]*)\]`)
	roleSpanRe  = regexp.MustCompile(`\[\.([a-zA-Z0-9-]+)\]#([^#]+)#`)
	highlightRe = regexp.MustCompile(`#([^#]+)#`)
)

// renderInline applies the inline mark syntax the serializer emits. Escaping
// happens first so delimiters survive untouched.
func renderInline(text string) string {
	out := html.EscapeString(text)
	out = linkRe.ReplaceAllString(out, `<a href="$1">$2</a>`)
	out = codeRe.ReplaceAllString(out, "<code>$1</code>")
	out = boldRe.ReplaceAllString(out, "<strong>$1</strong>")
	out = italicRe.ReplaceAllString(out, "<em>$1</em>")
	out = roleSpanRe.ReplaceAllString(out, `<span class="$1">$2</span>`)
	out = highlightRe.ReplaceAllString(out, "<mark>$1</mark>")
	return out
}

func isAdmonitionLabel(line string) bool {
	switch line {
	case "[NOTE]", "[TIP]", "[WARNING]", "[CAUTION]", "[IMPORTANT]":
		return true
	}
	return false
}

var dataLineRe = regexp.MustCompile(`data-line="(\d+)"`)

func rebaseLines(htmlStr string, offset int) string {
	return dataLineRe.ReplaceAllStringFunc(htmlStr, func(m string) string {
		var n int
		fmt.Sscanf(m, `data-line="%d"`, &n)
		return fmt.Sprintf(`data-line="%d"`, n+offset)
	})
}

var blockIDRe = regexp.MustCompile(`id="adoc-b(\d+)"`)

func rebaseIDs(htmlStr string, base int) (string, int) {
	max := base
	out := blockIDRe.ReplaceAllStringFunc(htmlStr, func(m string) string {
		var n int
		fmt.Sscanf(m, `id="adoc-b%d"`, &n)
		if n+base > max {
			max = n + base
		}
		return fmt.Sprintf(`id="adoc-b%d"`, n+base)
	})
	return out, max
}
