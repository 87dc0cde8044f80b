package editor

import (
	"strings"
	"unicode/utf8"

	"github.com/ealmloff/linknotes/internal/types"
)

type BlockKind int

const (
	BlockParagraph BlockKind = iota
	BlockHeading
)

// Block is one line of the document. Heading blocks carry their text
// without the leading marker.
type Block struct {
	Kind BlockKind
	Text string
}

// Document is an immutable sequence of blocks. Every operation returns
// derived values; nothing mutates a Document after Parse.
type Document struct {
	source string
	blocks []Block
}

// Parse builds a document from editor text: one block per line, lines
// starting with '#' become headings with the marker stripped and the
// remainder trimmed.
func Parse(raw string) Document {
	lines := strings.Split(raw, "\n")
	blocks := make([]Block, 0, len(lines))
	for _, line := range lines {
		if strings.HasPrefix(line, "#") {
			text := strings.TrimSpace(strings.TrimLeft(line, "#"))
			blocks = append(blocks, Block{Kind: BlockHeading, Text: text})
			continue
		}
		blocks = append(blocks, Block{Kind: BlockParagraph, Text: line})
	}
	return Document{source: raw, blocks: blocks}
}

func (d Document) Blocks() []Block {
	return append([]Block(nil), d.blocks...)
}

func (d Document) BlockCount() int {
	return len(d.blocks)
}

// Encode renders the document back to editor text, headings with a
// "# " marker.
func (d Document) Encode() string {
	var b strings.Builder
	for i, block := range d.blocks {
		if i > 0 {
			b.WriteByte('\n')
		}
		if block.Kind == BlockHeading {
			b.WriteString("# ")
		}
		b.WriteString(block.Text)
	}
	return b.String()
}

// ExtractText is what gets persisted: paragraph lines only, each
// followed by a newline, with surrounding whitespace trimmed off the
// result. Headings stay out of the saved body.
func (d Document) ExtractText() string {
	var b strings.Builder
	for _, block := range d.blocks {
		if block.Kind != BlockParagraph {
			continue
		}
		b.WriteString(block.Text)
		b.WriteByte('\n')
	}
	return strings.TrimSpace(b.String())
}

// Source is the raw text the document was parsed from. Cursor offsets
// index into it, so heading markers and newlines count.
func (d Document) Source() string {
	return d.source
}

// Len is the source length in runes.
func (d Document) Len() int {
	return utf8.RuneCountInString(d.source)
}

// UTF16Len is the source length in UTF-16 code units.
func (d Document) UTF16Len() int {
	return types.UTF16Len(d.source)
}

func (d Document) IsEmpty() bool {
	return d.source == ""
}

// OffsetAt converts a (row, rune column) cursor position to a linear
// rune offset into the source, the newline between rows counting as
// one rune. Out-of-range rows clamp to the document edges;
// out-of-range columns clamp to the line edges.
func (d Document) OffsetAt(row, col int) int {
	lines := strings.Split(d.source, "\n")
	row, col = clampPosition(lines, row, col)
	offset := 0
	for _, line := range lines[:row] {
		offset += utf8.RuneCountInString(line) + 1
	}
	return offset + col
}

// UTF16OffsetAt is OffsetAt in UTF-16 code units, the unit the wire
// format uses for cursor positions.
func (d Document) UTF16OffsetAt(row, col int) int {
	lines := strings.Split(d.source, "\n")
	row, col = clampPosition(lines, row, col)
	offset := 0
	for _, line := range lines[:row] {
		offset += types.UTF16Len(line) + 1
	}
	return offset + types.RuneToUTF16(lines[row], col)
}

// clampPosition pins a (row, rune column) position inside the lines.
func clampPosition(lines []string, row, col int) (int, int) {
	if row < 0 {
		row = 0
	}
	if row >= len(lines) {
		row = len(lines) - 1
	}
	if col < 0 {
		col = 0
	}
	if n := utf8.RuneCountInString(lines[row]); col > n {
		col = n
	}
	return row, col
}
