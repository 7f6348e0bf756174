package serializer

import (
	"fmt"
	"strings"

	"github.com/weiguanght/adocsync/document"
)

// emitParagraph emits a paragraph as a single line of encoded inline content.
func (st *state) emitParagraph(n document.Node) {
	content := st.inlineContent(n.Children)
	if content == "" {
		return
	}
	st.recordBlock(n)
	st.emit(content)
	st.blank()
}

// emitHeading emits a level-repeated "=" marker followed by the inline
// content. Heading children are inline-only by tree invariant.
func (st *state) emitHeading(n document.Node) {
	level := n.GetIntAttr("level", 1)
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}

	content := st.inlineContent(n.Children)
	if content == "" {
		return
	}

	st.recordBlock(n)
	st.emit(strings.Repeat("=", level) + " " + content)
	st.blank()
}

// emitCodeBlock emits an optional language declaration, the fenced body
// verbatim and unmarked, and a trailing blank line.
func (st *state) emitCodeBlock(n document.Node) {
	language := n.GetStringAttr("language", "")
	if mapped, ok := st.config.LanguageMap[language]; ok {
		language = mapped
	}

	st.recordBlock(n)
	if language != "" {
		st.emit("[source," + language + "]")
	}
	st.emit("----")
	body := strings.TrimRight(st.plainContent(n.Children), "\n")
	if body != "" {
		for _, line := range strings.Split(body, "\n") {
			st.emit(line)
		}
	}
	st.emit("----")
	st.blank()
}

// emitBlockquote wraps its children in quote-block delimiters. The last
// child's trailing blank line is trimmed before the closer.
func (st *state) emitBlockquote(n document.Node) error {
	st.recordBlock(n)
	st.emit("____")
	for _, child := range n.Children {
		if err := st.emitBlock(child); err != nil {
			return err
		}
	}
	st.trimTrailingBlank()
	st.emit("____")
	st.blank()
	return nil
}

// emitRule emits a horizontal rule.
func (st *state) emitRule(n document.Node) {
	st.recordBlock(n)
	st.emit("'''")
	st.blank()
}

// emitImage emits an optional caption line followed by the image directive.
func (st *state) emitImage(n document.Node) {
	src := n.GetStringAttr("src", "")
	alt := n.GetStringAttr("alt", "")
	title := n.GetStringAttr("title", "")

	if src == "" {
		st.addWarning(WarningMissingAttribute, n.Kind, "image node missing src")
	}

	st.recordBlock(n)
	if title != "" {
		st.emit("." + title)
	}
	st.emit("image::" + src + "[" + alt + "]")
	st.blank()
}

// emitAdmonition emits a type declaration line and an example-block wrapper
// around the children, trimming the last child's trailing blank line.
func (st *state) emitAdmonition(n document.Node) error {
	admonitionType := strings.ToUpper(n.GetStringAttr("type", ""))
	if !isAdmonitionType(admonitionType) {
		st.addWarning(WarningMissingAttribute, n.Kind, fmt.Sprintf("admonition type %q unknown, using NOTE", admonitionType))
		admonitionType = "NOTE"
	}

	st.recordBlock(n)
	st.emit("[" + admonitionType + "]")
	st.emit("====")
	for _, child := range n.Children {
		if err := st.emitBlock(child); err != nil {
			return err
		}
	}
	st.trimTrailingBlank()
	st.emit("====")
	st.blank()
	return nil
}

func isAdmonitionType(t string) bool {
	for _, known := range document.AdmonitionTypes {
		if t == known {
			return true
		}
	}
	return false
}

// emitInclude emits a single include directive. Optional attributes are
// serialized comma-joined in fixed order: leveloffset, lines, tag.
func (st *state) emitInclude(n document.Node) {
	path := n.GetStringAttr("path", "")
	if path == "" {
		st.addWarning(WarningMissingAttribute, n.Kind, "include node missing path")
	}

	var attrs []string
	if _, present := n.Attrs["levelOffset"]; present {
		attrs = append(attrs, fmt.Sprintf("leveloffset=%+d", n.GetIntAttr("levelOffset", 0)))
	}
	if lines := n.GetStringAttr("lineRange", ""); lines != "" {
		attrs = append(attrs, "lines="+lines)
	}
	if tag := n.GetStringAttr("tag", ""); tag != "" {
		attrs = append(attrs, "tag="+tag)
	}

	st.recordBlock(n)
	st.emit("include::" + path + "[" + strings.Join(attrs, ",") + "]")
	st.blank()
}

// emitRawBlock replays saved source text verbatim. Only the first emitted
// line is mapped to the block's identity.
func (st *state) emitRawBlock(n document.Node) {
	// Trim before the empty check so a newline-only source emits nothing
	// instead of mapping the identity to an empty line.
	source := strings.TrimRight(n.GetStringAttr("source", ""), "\n")
	if source == "" {
		return
	}
	st.recordBlock(n)
	for _, line := range strings.Split(source, "\n") {
		st.emit(line)
	}
	st.blank()
}

// emitUnknown is the forward-compatibility fallback: an unrecognized block
// degrades to raw emission instead of crashing or silently losing data.
func (st *state) emitUnknown(n document.Node) {
	source := strings.TrimRight(n.GetStringAttr("rawSource", ""), "\n")
	if source == "" {
		source = strings.TrimRight(flattenText(n), "\n")
	}
	if source == "" {
		return
	}
	st.recordBlock(n)
	for _, line := range strings.Split(source, "\n") {
		st.emit(line)
	}
	st.blank()
}
