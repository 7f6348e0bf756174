package serializer

// SourceMap is the bidirectional index between block identities and the
// 1-based output lines they produced, plus a legacy byte-offset pair for
// nodes that carry no stable identity. It is an immutable snapshot; a fresh
// one is built on every Serialize call.
type SourceMap struct {
	BlockToLine  map[string]int `json:"blockToLine"`
	LineToBlock  map[int]string `json:"lineToBlock"`
	OffsetToLine map[int]int    `json:"offsetToLine"`
	LineToOffset map[int]int    `json:"lineToOffset"`
}

// LineForBlock returns the output line a block identity maps to.
func (m SourceMap) LineForBlock(id string) (int, bool) {
	line, ok := m.BlockToLine[id]
	return line, ok
}

// BlockForLine returns the block identity recorded at an output line.
func (m SourceMap) BlockForLine(line int) (string, bool) {
	id, ok := m.LineToBlock[line]
	return id, ok
}

// NearestMappedLine returns the mapped line closest to the given line.
// Used when a navigation target lands between recorded blocks.
func (m SourceMap) NearestMappedLine(line int) (int, bool) {
	if _, ok := m.LineToBlock[line]; ok {
		return line, true
	}
	best, found := 0, false
	for mapped := range m.LineToBlock {
		if !found || abs(mapped-line) < abs(best-line) {
			best, found = mapped, true
		}
	}
	return best, found
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// registry accumulates source-map entries during a single serialization pass.
// It is owned by the pass's state and never shared between passes.
type registry struct {
	blockToLine  map[string]int
	lineToBlock  map[int]string
	offsetToLine map[int]int
	lineToOffset map[int]int
}

func newRegistry() *registry {
	return &registry{
		blockToLine:  make(map[string]int),
		lineToBlock:  make(map[int]string),
		offsetToLine: make(map[int]int),
		lineToOffset: make(map[int]int),
	}
}

// record registers a block at the line about to be written. A duplicate
// identity keeps the first occurrence; the second write is a no-op. The
// offset pair is always recorded so identity-less nodes remain addressable.
func (r *registry) record(id string, offset, line int) {
	if id != "" {
		if _, exists := r.blockToLine[id]; !exists {
			r.blockToLine[id] = line
		}
		if _, exists := r.lineToBlock[line]; !exists {
			r.lineToBlock[line] = id
		}
	}
	if _, exists := r.offsetToLine[offset]; !exists {
		r.offsetToLine[offset] = line
	}
	if _, exists := r.lineToOffset[line]; !exists {
		r.lineToOffset[line] = offset
	}
}

// snapshot returns an immutable deep copy of all four maps.
func (r *registry) snapshot() SourceMap {
	m := SourceMap{
		BlockToLine:  make(map[string]int, len(r.blockToLine)),
		LineToBlock:  make(map[int]string, len(r.lineToBlock)),
		OffsetToLine: make(map[int]int, len(r.offsetToLine)),
		LineToOffset: make(map[int]int, len(r.lineToOffset)),
	}
	for k, v := range r.blockToLine {
		m.BlockToLine[k] = v
	}
	for k, v := range r.lineToBlock {
		m.LineToBlock[k] = v
	}
	for k, v := range r.offsetToLine {
		m.OffsetToLine[k] = v
	}
	for k, v := range r.lineToOffset {
		m.LineToOffset[k] = v
	}
	return m
}
