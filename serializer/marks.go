package serializer

import (
	"fmt"

	"github.com/weiguanght/adocsync/document"
)

// markPriority is the fixed wrapping order, outermost first. Link wraps
// everything so the whole styled run becomes the link target.
var markPriority = []document.MarkType{
	document.MarkLink,
	document.MarkBold,
	document.MarkItalic,
	document.MarkCode,
	document.MarkUnderline,
	document.MarkStrike,
	document.MarkHighlight,
}

// ApplyMarks wraps text in AsciiDoc delimiters for each mark, innermost to
// outermost in the fixed priority order, regardless of input order. Duplicate
// mark types keep the first occurrence. Delimiter characters inside text are
// not escaped; callers control the surrounding block context.
func ApplyMarks(text string, marks []document.Mark) string {
	st := &state{config: Config{}.applyDefaults()}
	st.logger = st.config.Logger
	return st.applyMarks(text, marks)
}

func (st *state) applyMarks(text string, marks []document.Mark) string {
	if len(marks) == 0 {
		return text
	}

	byType := make(map[document.MarkType]document.Mark, len(marks))
	for _, m := range marks {
		if _, seen := byType[m.Type]; !seen {
			byType[m.Type] = m
		}
	}

	// Wrap from the lowest-priority mark outward so the highest ends up
	// outermost.
	for i := len(markPriority) - 1; i >= 0; i-- {
		mark, ok := byType[markPriority[i]]
		if !ok {
			continue
		}
		opening, closing := st.markDelimiters(mark)
		text = opening + text + closing
		delete(byType, markPriority[i])
	}

	for t := range byType {
		st.addWarning(WarningUnknownMark, document.KindText, fmt.Sprintf("unknown mark %q skipped", t))
	}

	return text
}

// markDelimiters returns the opening and closing delimiter for a mark.
func (st *state) markDelimiters(mark document.Mark) (string, string) {
	switch mark.Type {
	case document.MarkBold:
		return "*", "*"
	case document.MarkItalic:
		return "_", "_"
	case document.MarkCode:
		return "`", "`"
	case document.MarkUnderline:
		return "[.underline]#", "#"
	case document.MarkStrike:
		return "[.line-through]#", "#"
	case document.MarkHighlight:
		color := mark.GetStringAttr("color", "")
		if color != "" {
			return "[.highlight-" + color + "]#", "#"
		}
		if st.config.HighlightStyle == HighlightRole {
			return "[.highlight]#", "#"
		}
		return "#", "#"
	case document.MarkLink:
		href := mark.GetStringAttr("href", "")
		if href == "" {
			// No target - leave the run as plain text.
			return "", ""
		}
		return "link:" + href + "[", "]"
	default:
		return "", ""
	}
}

// inlineContent flattens a block's inline children, applying marks per run.
// Non-text children degrade to their raw text with a warning.
func (st *state) inlineContent(children []document.Node) string {
	var out string
	for _, child := range children {
		if child.Kind == document.KindText {
			out += st.applyMarks(child.Text, child.Marks)
			continue
		}
		st.addWarning(WarningUnknownNode, child.Kind, fmt.Sprintf("non-text inline node %q flattened", child.Kind))
		out += flattenText(child)
	}
	return out
}

// plainContent flattens children to unmarked text, for code blocks.
func (st *state) plainContent(children []document.Node) string {
	var out string
	for _, child := range children {
		out += flattenText(child)
	}
	return out
}

func flattenText(n document.Node) string {
	if n.Kind == document.KindText {
		return n.Text
	}
	var out string
	for _, child := range n.Children {
		out += flattenText(child)
	}
	return out
}
