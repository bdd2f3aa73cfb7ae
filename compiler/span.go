package compiler

import "fmt"

// ---------------------------------------------------------------------------
// Source spans
// ---------------------------------------------------------------------------

// Span is a half-open byte offset range [Start, End) into a source file.
type Span struct {
	Start  uint32
	End    uint32
	FileID uint32
}

// DummySpan is the sentinel span attached to synthesized nodes.
var DummySpan = Span{}

// IsDummy reports whether the span is the synthesized-node sentinel.
func (s Span) IsDummy() bool {
	return s == DummySpan
}

func (s Span) String() string {
	return fmt.Sprintf("%d..%d", s.Start, s.End)
}

// MakeSpan creates a span covering [start, end) in the given file.
func MakeSpan(start, end, fileID uint32) Span {
	return Span{Start: start, End: end, FileID: fileID}
}

// Cover returns the smallest span containing both s and other.
// Both spans must belong to the same file.
func (s Span) Cover(other Span) Span {
	start := s.Start
	if other.Start < start {
		start = other.Start
	}
	end := s.End
	if other.End > end {
		end = other.End
	}
	return Span{Start: start, End: end, FileID: s.FileID}
}

// LineIndex resolves byte offsets to 0-based line/column pairs.
// Columns are byte offsets within the line, which is what the LSP
// collaborator needs for UTF-8 position encodings.
type LineIndex struct {
	lineStarts []uint32
}

// NewLineIndex builds a line index for the given source text.
func NewLineIndex(source string) *LineIndex {
	starts := []uint32{0}
	for i := 0; i < len(source); i++ {
		if source[i] == '\n' {
			starts = append(starts, uint32(i+1))
		}
	}
	return &LineIndex{lineStarts: starts}
}

// Position returns the 0-based line and column of the given byte offset.
func (ix *LineIndex) Position(offset uint32) (line, column uint32) {
	lo, hi := 0, len(ix.lineStarts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if ix.lineStarts[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return uint32(lo), offset - ix.lineStarts[lo]
}
