package bridge

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/weiguanght/adocsync/document"
	"github.com/weiguanght/adocsync/preview"
	"github.com/weiguanght/adocsync/serializer"
)

const (
	defaultDebounce          = 300 * time.Millisecond
	defaultHighlightDuration = 2000 * time.Millisecond
)

// Navigation is a pending jump into the destination view, delivered at most
// once through ConsumeNavigation.
type Navigation struct {
	Line        int  `json:"line"`
	Destination Side `json:"destination"`
}

// Highlight is the transient marker a pane shows after navigation; it
// auto-clears after the configured duration.
type Highlight struct {
	Line int  `json:"line"`
	Side Side `json:"side"`
}

// ClickInfo describes a click in either pane. For the rendered pane the
// chrome passes the clicked element's id (and, when known, the block
// identity) plus the click's vertical proportion; for the text pane it
// passes the caret's byte offset.
type ClickInfo struct {
	BlockID     string
	ElementID   string
	FractionY   float64
	CaretOffset int
}

// Options configures a Controller.
type Options struct {
	Mode              Mode
	Debounce          time.Duration
	HighlightDuration time.Duration
	Logger            *zap.Logger
}

func (o Options) applyDefaults() Options {
	if o.Mode == "" {
		o.Mode = ModeRich
	}
	if o.Debounce <= 0 {
		o.Debounce = defaultDebounce
	}
	if o.HighlightDuration <= 0 {
		o.HighlightDuration = defaultHighlightDuration
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// Controller owns the synchronization state between the two views: which
// side changed last, the source map from the latest serialization pass, and
// pending navigation/highlight requests. One controller exists per editing
// session; collaborators are passed in explicitly, never looked up from
// ambient state. Methods are safe for concurrent use: UI callers and the
// scheduler's timer callbacks serialize on one mutex, and collaborators are
// invoked with it held.
type Controller struct {
	mu        sync.Mutex
	sessionID string
	editor    EditorSurface
	text      TextSurface
	renderer  Renderer
	ser       *serializer.Serializer
	sched     Scheduler
	opts      Options
	logger    *zap.Logger

	lastChanged   Side
	sourceMap     serializer.SourceMap
	lastText      string
	renderedHTML  string
	pendingNav    *Navigation
	highlight     *Highlight
	highlightTask Task
	pendingText   *string
	debounceTask  Task
	closed        bool
}

// New creates a controller for one editing session.
func New(editor EditorSurface, text TextSurface, renderer Renderer, ser *serializer.Serializer, sched Scheduler, opts Options) (*Controller, error) {
	if editor == nil || text == nil || renderer == nil || ser == nil || sched == nil {
		return nil, fmt.Errorf("bridge: all collaborators are required")
	}
	opts = opts.applyDefaults()
	sessionID := uuid.NewString()
	return &Controller{
		sessionID: sessionID,
		editor:    editor,
		text:      text,
		renderer:  renderer,
		ser:       ser,
		sched:     sched,
		opts:      opts,
		logger:    opts.Logger.With(zap.String("session", sessionID)),
	}, nil
}

// SessionID returns the controller's session identifier.
func (c *Controller) SessionID() string { return c.sessionID }

// SourceMap returns the map from the latest completed serialization pass.
func (c *Controller) SourceMap() serializer.SourceMap {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sourceMap
}

// Text returns the latest committed markup text.
func (c *Controller) Text() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastText
}

// PreviewHTML returns the latest rendered projection of the text.
func (c *Controller) PreviewHTML() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.renderedHTML
}

// OnEdit is the generic entry point chrome wires to change events. The
// payload is a document.Node for SideTree and a string for SideText.
func (c *Controller) OnEdit(side Side, payload any) error {
	switch side {
	case SideTree:
		tree, ok := payload.(document.Node)
		if !ok {
			return fmt.Errorf("bridge: tree edit payload must be document.Node, got %T", payload)
		}
		return c.OnTreeEdit(tree)
	case SideText:
		text, ok := payload.(string)
		if !ok {
			return fmt.Errorf("bridge: text edit payload must be string, got %T", payload)
		}
		c.OnTextEdit(text)
		return nil
	default:
		return fmt.Errorf("bridge: unknown side %q", side)
	}
}

// OnTreeEdit handles a change originating in the rich view: re-serialize,
// mark the tree as last changed, and push the text across exactly once. The
// push is suppressed while the text surface has an uncommitted edit of its
// own; the check is by side, not by content diff, so the propagation can
// never re-enter itself. The source map is only swapped after serialization
// completes.
func (c *Controller) OnTreeEdit(tree document.Node) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}

	result, err := c.ser.Serialize(tree)
	if err != nil {
		return err
	}

	composingOnText := c.pendingText != nil
	c.lastChanged = SideTree
	c.sourceMap = result.SourceMap
	c.lastText = result.Text

	if !composingOnText {
		c.text.SetText(result.Text)
	}

	if html, rerr := c.renderer.Render(result.Text); rerr == nil {
		c.renderedHTML = html
	} else {
		c.logger.Warn("preview render failed", zap.Error(rerr))
	}

	c.logger.Debug("tree edit propagated",
		zap.Int("lines", strings.Count(result.Text, "\n")),
		zap.Int("warnings", len(result.Warnings)),
		zap.Bool("pushed", !composingOnText))
	return nil
}

// OnTextEdit coalesces text-surface keystrokes behind a debounce window. A
// new edit resets the pending timer; Flush and Close commit immediately so
// no edit is dropped when the view disappears mid-debounce.
func (c *Controller) OnTextEdit(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	if c.debounceTask != nil {
		c.debounceTask.Cancel()
	}
	c.pendingText = &text

	// The callback only commits while its own task is still current; a
	// timer that fired but lost the lock to a newer edit or a Flush must
	// not commit on their behalf.
	var task Task
	task = c.sched.Schedule(c.opts.Debounce, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.debounceTask == task {
			c.commitText()
		}
	})
	c.debounceTask = task
}

// Flush commits a pending text edit immediately. Chrome calls it on loss of
// focus and on explicit search/replace commits.
func (c *Controller) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.flush()
}

func (c *Controller) flush() {
	if c.debounceTask != nil {
		c.debounceTask.Cancel()
		c.debounceTask = nil
	}
	c.commitText()
}

// commitText moves the debounced text into shared state. In rich mode the
// text is rendered and handed to the editor surface with events suppressed
// (the lossy render-then-reabsorb path); in preview mode the rendered pane
// is an independent projection and nothing propagates back to a tree.
// Callers hold the mutex.
func (c *Controller) commitText() {
	if c.pendingText == nil {
		return
	}
	text := *c.pendingText
	c.pendingText = nil
	c.debounceTask = nil

	c.lastChanged = SideText
	c.lastText = text

	html, err := c.renderer.Render(text)
	if err != nil {
		c.logger.Warn("preview render failed", zap.Error(err))
		return
	}
	c.renderedHTML = html

	if c.opts.Mode == ModeRich {
		c.editor.SetHTML(html, false)
	}

	c.logger.Debug("text edit committed", zap.String("mode", string(c.opts.Mode)))
}

// OnClick is the generic entry point chrome wires to click events.
func (c *Controller) OnClick(side Side, info ClickInfo) {
	switch side {
	case SideTree:
		c.OnRenderedClick(info)
	case SideText:
		c.OnTextClick(info.CaretOffset)
	}
}

// OnRenderedClick resolves a click in the rendered pane to a text line:
// first through the block identity, then by walking the rendered HTML up to
// the nearest line-attributed ancestor, finally by proportional estimate.
// The resolved line becomes a pending navigation into the text pane and a
// transient highlight in the rendered pane.
func (c *Controller) OnRenderedClick(info ClickInfo) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}

	line, ok := 0, false
	if info.BlockID != "" {
		line, ok = c.sourceMap.LineForBlock(info.BlockID)
	}
	if !ok && info.ElementID != "" && c.renderedHTML != "" {
		if resolver, err := preview.NewResolver(c.renderedHTML); err == nil {
			line, ok = resolver.LineFor(info.ElementID)
		}
	}
	if !ok {
		line = preview.EstimateLine(info.FractionY, c.lineCount())
		c.logger.Debug("click unattributed, using proportional estimate", zap.Int("line", line))
	}

	c.pendingNav = &Navigation{Line: line, Destination: SideText}
	c.setHighlight(SideTree, line)
}

// OnTextClick resolves the caret offset to a line by counting preceding
// newlines, requests navigation into the rendered pane, and highlights the
// clicked line in the text pane.
func (c *Controller) OnTextClick(caretOffset int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}

	line := c.lineForOffset(caretOffset)
	c.pendingNav = &Navigation{Line: line, Destination: SideTree}
	c.setHighlight(SideText, line)
}

// LineForOffset converts a caret byte offset into a 1-based line number.
func (c *Controller) LineForOffset(caretOffset int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lineForOffset(caretOffset)
}

func (c *Controller) lineForOffset(caretOffset int) int {
	text := c.currentText()
	if caretOffset < 0 {
		caretOffset = 0
	}
	if caretOffset > len(text) {
		caretOffset = len(text)
	}
	return strings.Count(text[:caretOffset], "\n") + 1
}

// ConsumeNavigation delivers the pending navigation at most once. The
// destination view is scrolled to the target line and receives the transient
// highlight.
func (c *Controller) ConsumeNavigation() (Navigation, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pendingNav == nil {
		return Navigation{}, false
	}
	nav := *c.pendingNav
	c.pendingNav = nil

	switch nav.Destination {
	case SideText:
		c.text.ScrollToLine(nav.Line)
	case SideTree:
		c.editor.ScrollToLine(nav.Line)
	}
	c.setHighlight(nav.Destination, nav.Line)
	return nav, true
}

// HighlightState returns the transient highlight, or nil once it cleared.
func (c *Controller) HighlightState() *Highlight {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.highlight == nil {
		return nil
	}
	h := *c.highlight
	return &h
}

// LastChangedSide reports which side most recently mutated shared state.
func (c *Controller) LastChangedSide() Side {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastChanged
}

// setHighlight installs a fresh highlight with a full auto-clear window.
// The clear callback only removes the highlight it was armed for, so a timer
// that fired while being replaced cannot clear its successor. Callers hold
// the mutex.
func (c *Controller) setHighlight(side Side, line int) {
	if c.highlightTask != nil {
		c.highlightTask.Cancel()
	}
	h := &Highlight{Line: line, Side: side}
	c.highlight = h
	c.highlightTask = c.sched.Schedule(c.opts.HighlightDuration, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.highlight == h {
			c.highlight = nil
			c.highlightTask = nil
		}
	})
}

// Close flushes any pending edit and releases timers. The controller ignores
// further events afterwards.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.flush()
	if c.highlightTask != nil {
		c.highlightTask.Cancel()
		c.highlightTask = nil
	}
	c.highlight = nil
	c.closed = true
}

func (c *Controller) currentText() string {
	if c.pendingText != nil {
		return *c.pendingText
	}
	return c.lastText
}

func (c *Controller) lineCount() int {
	text := c.currentText()
	if text == "" {
		return 0
	}
	return strings.Count(strings.TrimSuffix(text, "\n"), "\n") + 1
}
