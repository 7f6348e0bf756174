package bridge

import "github.com/weiguanght/adocsync/document"

// Side identifies which view a change or click originated from.
type Side string

const (
	// SideTree is the rich, block-structured view.
	SideTree Side = "tree"
	// SideText is the plain markup text view.
	SideText Side = "text"
)

// Mode selects how the non-text pane behaves.
type Mode string

const (
	// ModeRich keeps a live editable tree in the opposite pane; text edits
	// propagate back to it through the render-then-reabsorb path.
	ModeRich Mode = "rich"
	// ModePreview keeps a read-only rendered projection of the text; no
	// reverse propagation to a tree happens at all.
	ModePreview Mode = "preview"
)

// EditorSurface is the rich editing collaborator. Implementations must not
// re-emit change events for programmatic updates made with emitEvents=false;
// that flag is the controller's guard against feedback loops.
type EditorSurface interface {
	// Tree returns the current live document tree.
	Tree() document.Node
	// SetTree replaces the displayed tree.
	SetTree(tree document.Node, emitEvents bool)
	// SetHTML replaces the displayed content from rendered HTML. This is
	// the lossy reverse path for text-originated edits.
	SetHTML(rendered string, emitEvents bool)
	// ScrollToLine scrolls the block mapped to the given source line into
	// centered view.
	ScrollToLine(line int)
}

// TextSurface is the plain markup text collaborator. SetText must not
// trigger the surface's own edit callback.
type TextSurface interface {
	Text() string
	SetText(text string)
	// ScrollToLine scrolls the given line into centered view.
	ScrollToLine(line int)
}

// Renderer converts markup text to HTML whose block elements carry line
// attribution, used identically to block identities for click resolution.
type Renderer interface {
	Render(markup string) (string, error)
}
