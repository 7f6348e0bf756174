package document

// Kind discriminates node types in the document tree.
type Kind string

const (
	KindParagraph       Kind = "paragraph"
	KindHeading         Kind = "heading"
	KindBulletList      Kind = "bulletList"
	KindOrderedList     Kind = "orderedList"
	KindListItem        Kind = "listItem"
	KindCodeBlock       Kind = "codeBlock"
	KindBlockquote      Kind = "blockquote"
	KindHorizontalRule  Kind = "horizontalRule"
	KindImage           Kind = "image"
	KindTable           Kind = "table"
	KindTableRow        Kind = "tableRow"
	KindTableCell       Kind = "tableCell"
	KindTableHeaderCell Kind = "tableHeaderCell"
	KindAdmonition      Kind = "admonition"
	KindInclude         Kind = "include"
	KindRawBlock        Kind = "rawBlock"
	KindText            Kind = "text"
)

// AdmonitionTypes are the callout labels accepted on an admonition node.
var AdmonitionTypes = []string{"NOTE", "TIP", "WARNING", "CAUTION", "IMPORTANT"}

// Node represents any node in the document tree (e.g., paragraph, text, etc.).
// Block-level nodes may carry an ID assigned by the editing surface; it is the
// key used for source mapping. Leaf text nodes carry Text and Marks.
type Node struct {
	Kind     Kind           `json:"kind"`
	ID       string         `json:"id,omitempty"`
	Text     string         `json:"text,omitempty"`
	Children []Node         `json:"children,omitempty"`
	Marks    []Mark         `json:"marks,omitempty"`
	Attrs    map[string]any `json:"attrs,omitempty"`
}

// MarkType discriminates formatting instructions on a text run.
type MarkType string

const (
	MarkBold      MarkType = "bold"
	MarkItalic    MarkType = "italic"
	MarkCode      MarkType = "code"
	MarkUnderline MarkType = "underline"
	MarkStrike    MarkType = "strike"
	MarkLink      MarkType = "link"
	MarkHighlight MarkType = "highlight"
)

// Mark represents text formatting applied to a text node (e.g., bold, link).
type Mark struct {
	Type  MarkType       `json:"type"`
	Attrs map[string]any `json:"attrs,omitempty"`
}

// GetStringAttr returns a string attribute or the given default.
func (n Node) GetStringAttr(name, def string) string {
	if n.Attrs == nil {
		return def
	}
	if v, ok := n.Attrs[name].(string); ok {
		return v
	}
	return def
}

// GetIntAttr returns an integer attribute or the given default.
// JSON numbers arrive as float64, so both representations are accepted.
func (n Node) GetIntAttr(name string, def int) int {
	if n.Attrs == nil {
		return def
	}
	switch v := n.Attrs[name].(type) {
	case int:
		return v
	case float64:
		return int(v)
	}
	return def
}

// GetFloat64Attr returns a float attribute or the given default.
func (n Node) GetFloat64Attr(name string, def float64) float64 {
	if n.Attrs == nil {
		return def
	}
	switch v := n.Attrs[name].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return def
}

// GetStringAttr returns a string attribute of a mark or the given default.
func (m Mark) GetStringAttr(name, def string) string {
	if m.Attrs == nil {
		return def
	}
	if v, ok := m.Attrs[name].(string); ok {
		return v
	}
	return def
}

// IsBlock reports whether the kind is a block-level construct.
func (k Kind) IsBlock() bool {
	switch k {
	case KindParagraph, KindHeading, KindBulletList, KindOrderedList,
		KindListItem, KindCodeBlock, KindBlockquote, KindHorizontalRule,
		KindImage, KindTable, KindTableRow, KindTableCell,
		KindTableHeaderCell, KindAdmonition, KindInclude, KindRawBlock:
		return true
	}
	return false
}

// IsInline reports whether the kind may appear inside inline content.
func (k Kind) IsInline() bool {
	return k == KindText
}

// HasMark reports whether a mark of the given type is present.
func (n Node) HasMark(t MarkType) bool {
	for _, m := range n.Marks {
		if m.Type == t {
			return true
		}
	}
	return false
}
