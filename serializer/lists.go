package serializer

import (
	"fmt"
	"strings"

	"github.com/weiguanght/adocsync/document"
)

// emitList serializes a bullet or ordered list. The marker character and the
// nesting depth are ambient state, never stored per node. Only the outermost
// list is followed by a blank line; a nested sublist sits directly under its
// parent item.
func (st *state) emitList(n document.Node) error {
	marker := byte('*')
	if n.Kind == document.KindOrderedList {
		marker = '.'
	}

	st.recordBlock(n)
	st.listMarkers = append(st.listMarkers, marker)

	for _, item := range n.Children {
		if item.Kind != document.KindListItem {
			st.addWarning(WarningUnknownNode, item.Kind, fmt.Sprintf("%s expects listItem child, got %s", n.Kind, item.Kind))
			continue
		}
		if err := st.emitListItem(item); err != nil {
			return err
		}
	}

	st.listMarkers = st.listMarkers[:len(st.listMarkers)-1]
	if len(st.listMarkers) == 0 {
		st.blank()
	}
	return nil
}

// emitListItem emits the item's first paragraph-like child on a single
// marker-prefixed line, then recurses into any nested lists before the item
// closes.
func (st *state) emitListItem(item document.Node) error {
	depth := len(st.listMarkers)
	marker := strings.Repeat(string(st.listMarkers[depth-1]), depth)

	wroteMarker := false
	for _, child := range item.Children {
		switch child.Kind {
		case document.KindParagraph:
			if !wroteMarker {
				st.recordBlock(item)
				if child.ID != "" {
					st.reg.record(child.ID, st.offset, st.nextLine())
				}
				st.emit(marker + " " + st.inlineContent(child.Children))
				wroteMarker = true
				continue
			}
			st.emitParagraph(child)
		case document.KindText:
			if !wroteMarker {
				st.recordBlock(item)
				st.emit(marker + " " + st.applyMarks(child.Text, child.Marks))
				wroteMarker = true
				continue
			}
			st.emit(st.applyMarks(child.Text, child.Marks))
		case document.KindBulletList, document.KindOrderedList:
			if !wroteMarker {
				st.recordBlock(item)
				st.emit(marker)
				wroteMarker = true
			}
			if err := st.emitList(child); err != nil {
				return err
			}
		default:
			if err := st.emitBlock(child); err != nil {
				return err
			}
		}
	}
	return nil
}
