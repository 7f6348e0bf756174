package serializer

import (
	"fmt"
	"strings"

	"github.com/weiguanght/adocsync/document"
)

// emitTable serializes a table. The column count is derived from the first
// row; ragged rows are emitted as-is (the editing surface owns padding).
// A header is detected from the first row's cell kind, declared via the
// options attribute, and separated from the body by exactly one blank line.
func (st *state) emitTable(n document.Node) {
	var rows []document.Node
	for _, child := range n.Children {
		if child.Kind != document.KindTableRow {
			st.addWarning(WarningUnknownNode, child.Kind, fmt.Sprintf("table expects tableRow child, got %s", child.Kind))
			continue
		}
		rows = append(rows, child)
	}
	if len(rows) == 0 {
		return
	}

	colCount := len(rows[0].Children)
	hasHeader := false
	if len(rows[0].Children) > 0 && rows[0].Children[0].Kind == document.KindTableHeaderCell {
		hasHeader = true
	}

	st.recordBlock(n)
	if hasHeader {
		st.emit(fmt.Sprintf("[cols=\"%d*\", options=\"header\"]", colCount))
	} else {
		st.emit(fmt.Sprintf("[cols=\"%d*\"]", colCount))
	}
	st.emit("|===")

	for i, row := range rows {
		st.emitTableRow(row)
		if i == 0 && hasHeader {
			st.blank()
		}
	}

	st.emit("|===")
	st.blank()
}

// emitTableRow emits one line holding every cell of the row. Cells do not
// produce lines of their own; they are recorded at the row's line.
func (st *state) emitTableRow(row document.Node) {
	st.recordBlock(row)

	var cells []string
	for _, cell := range row.Children {
		if cell.Kind != document.KindTableCell && cell.Kind != document.KindTableHeaderCell {
			st.addWarning(WarningUnknownNode, cell.Kind, fmt.Sprintf("tableRow expects cell child, got %s", cell.Kind))
			continue
		}
		if cell.ID != "" {
			st.reg.record(cell.ID, st.offset, st.nextLine())
		}
		cells = append(cells, st.cellText(cell))
	}

	st.emit(strings.Join(cells, " "))
}

// cellText renders one cell: span prefixes, the cell separator, then the
// cell's inline content flattened to a single line.
func (st *state) cellText(cell document.Node) string {
	var prefix string
	if colspan := cell.GetIntAttr("colspan", 1); colspan > 1 {
		prefix += fmt.Sprintf("%d+", colspan)
	}
	if rowspan := cell.GetIntAttr("rowspan", 1); rowspan > 1 {
		prefix += fmt.Sprintf(".%d+", rowspan)
	}

	var parts []string
	for _, child := range cell.Children {
		var content string
		switch child.Kind {
		case document.KindParagraph:
			content = st.inlineContent(child.Children)
		case document.KindText:
			content = st.applyMarks(child.Text, child.Marks)
		default:
			content = flattenText(child)
		}
		if content != "" {
			parts = append(parts, content)
		}
	}

	text := strings.Join(parts, " ")
	if text == "" {
		return prefix + "|"
	}
	return prefix + "| " + text
}
