package serializer

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/weiguanght/adocsync/document"
)

// Serializer converts a document tree to AsciiDoc text together with a
// source map from block identities to output lines.
type Serializer struct {
	config Config
}

// New creates a new Serializer with the given config.
func New(config Config) (*Serializer, error) {
	config = config.applyDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Serializer{config: config}, nil
}

// Serialize walks the tree depth-first and emits AsciiDoc lines, recording
// each block in the source map immediately before its first line. Every pass
// builds a fresh registry; serializing the same tree twice yields identical
// output and an identical map.
func (s *Serializer) Serialize(root document.Node) (Result, error) {
	st := &state{
		config: s.config.clone(),
		logger: s.config.Logger,
		reg:    newRegistry(),
	}

	for _, child := range root.Children {
		if err := st.emitBlock(child); err != nil {
			return Result{}, err
		}
	}

	return Result{
		Text:      st.text(),
		SourceMap: st.reg.snapshot(),
		Warnings:  st.warnings,
	}, nil
}

// state is the per-pass accumulator. It is passed down the recursion instead
// of living on the Serializer so individual passes stay re-entrant.
type state struct {
	config   Config
	logger   *zap.Logger
	lines    []string
	offset   int
	reg      *registry
	warnings []Warning

	// listMarkers holds one marker character per open list; its length is
	// the ambient nesting depth.
	listMarkers []byte
}

// emit appends one output line and advances the legacy byte offset.
func (st *state) emit(line string) {
	st.lines = append(st.lines, line)
	st.offset += len(line) + 1
}

// blank appends exactly one blank separator line.
func (st *state) blank() {
	st.emit("")
}

// nextLine is the 1-based number of the line about to be written.
func (st *state) nextLine() int {
	return len(st.lines) + 1
}

// recordBlock registers a block at the line about to be written.
func (st *state) recordBlock(n document.Node) {
	st.reg.record(n.ID, st.offset, st.nextLine())
}

// trimTrailingBlank removes a single trailing blank line, used by delimited
// blocks whose last child already emitted its separator.
func (st *state) trimTrailingBlank() {
	if len(st.lines) > 0 && st.lines[len(st.lines)-1] == "" {
		last := len(st.lines) - 1
		st.lines = st.lines[:last]
		st.offset--
	}
}

func (st *state) text() string {
	return strings.Join(st.lines, "\n") + "\n"
}

func (st *state) addWarning(t WarningType, kind document.Kind, msg string) {
	st.warnings = append(st.warnings, Warning{Type: t, NodeKind: string(kind), Message: msg})
	st.logger.Warn(msg, zap.String("kind", string(kind)), zap.String("warning", string(t)))
}

// emitBlock dispatches one block-level node. Unknown kinds degrade to raw
// emission so forward-compatible trees never crash the serializer.
func (st *state) emitBlock(n document.Node) error {
	switch n.Kind {
	case document.KindParagraph:
		st.emitParagraph(n)
	case document.KindHeading:
		st.emitHeading(n)
	case document.KindBulletList, document.KindOrderedList:
		return st.emitList(n)
	case document.KindCodeBlock:
		st.emitCodeBlock(n)
	case document.KindBlockquote:
		return st.emitBlockquote(n)
	case document.KindHorizontalRule:
		st.emitRule(n)
	case document.KindImage:
		st.emitImage(n)
	case document.KindTable:
		st.emitTable(n)
	case document.KindAdmonition:
		return st.emitAdmonition(n)
	case document.KindInclude:
		st.emitInclude(n)
	case document.KindRawBlock:
		st.emitRawBlock(n)
	default:
		switch st.config.UnknownBlocks {
		case UnknownError:
			return fmt.Errorf("unknown node kind: %s", n.Kind)
		case UnknownSkip:
			st.addWarning(WarningSkippedNode, n.Kind, fmt.Sprintf("unknown node %q skipped", n.Kind))
		default:
			st.addWarning(WarningUnknownNode, n.Kind, fmt.Sprintf("unknown node %q emitted verbatim", n.Kind))
			st.emitUnknown(n)
		}
	}
	return nil
}
