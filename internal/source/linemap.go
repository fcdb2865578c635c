package source

import (
	"bytes"
	"fmt"

	"fortio.org/safecast"
)

// noNewline is the key used when no '\n' precedes an offset.
const noNewline = -1

// LineMap resolves byte offsets into (line, column) pairs for one buffer.
//
// The map is keyed by the offset of each '\n' and stores the number of the
// line that starts right after it. It is filled once, front to back, and only
// up to the last offset the caller intends to resolve.
type LineMap struct {
	content []byte
	lines   map[int]uint32
	// scanned is the offset from which the forward newline scan resumes.
	scanned int
	line    uint32
	limit   int
}

// NewLineMap indexes newlines in content up to and including lastOffset.
// Newlines after lastOffset are not visited.
func NewLineMap(content []byte, lastOffset int) *LineMap {
	m := &LineMap{
		content: content,
		lines:   map[int]uint32{noNewline: 1},
		line:    1,
		limit:   lastOffset,
	}
	m.extend(lastOffset)
	return m
}

// extend continues the forward scan until a newline lies past upTo.
func (m *LineMap) extend(upTo int) {
	for m.scanned < len(m.content) {
		i := bytes.IndexByte(m.content[m.scanned:], '\n')
		if i < 0 {
			m.scanned = len(m.content)
			return
		}
		nl := m.scanned + i
		if nl > upTo {
			return
		}
		m.line++
		m.lines[nl] = m.line
		m.scanned = nl + 1
	}
}

// Position returns the 1-based line and 0-based column of offset.
// Column counts bytes from the first byte of the line.
func (m *LineMap) Position(offset int) (line, column uint32) {
	if offset < 0 || offset > len(m.content) {
		panic(fmt.Errorf("offset %d out of range [0, %d]", offset, len(m.content)))
	}
	if offset > m.limit {
		// обычно не случается: сканер не спрашивает дальше последнего совпадения
		m.limit = offset
		m.extend(offset)
	}

	nl := bytes.LastIndexByte(m.content[:offset], '\n')
	line, ok := m.lines[nl]
	if !ok {
		line = m.lines[noNewline]
	}

	column, err := safecast.Conv[uint32](offset - (nl + 1))
	if err != nil {
		panic(fmt.Errorf("column overflow: %w", err))
	}
	return line, column
}

// Lines reports how many newline entries were indexed (excluding the seed).
func (m *LineMap) Lines() int {
	return len(m.lines) - 1
}
