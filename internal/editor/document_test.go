package editor

import "testing"

func TestParseBlocks(t *testing.T) {
	doc := Parse("# Title\nfirst paragraph\n## Sub  \nsecond")
	blocks := doc.Blocks()
	if len(blocks) != 4 {
		t.Fatalf("block count = %d, want 4", len(blocks))
	}
	if blocks[0].Kind != BlockHeading || blocks[0].Text != "Title" {
		t.Fatalf("block[0] = %+v", blocks[0])
	}
	if blocks[1].Kind != BlockParagraph || blocks[1].Text != "first paragraph" {
		t.Fatalf("block[1] = %+v", blocks[1])
	}
	if blocks[2].Kind != BlockHeading || blocks[2].Text != "Sub" {
		t.Fatalf("block[2] = %+v", blocks[2])
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	raw := "# Title\nbody line\n# Another\nlast"
	encoded := Parse(raw).Encode()
	if encoded != raw {
		t.Fatalf("Encode = %q, want %q", encoded, raw)
	}
	// Encoding normalizes heading markers.
	if got := Parse("##Heading\ntext").Encode(); got != "# Heading\ntext" {
		t.Fatalf("Encode = %q", got)
	}
}

func TestExtractTextSkipsHeadings(t *testing.T) {
	doc := Parse("# Title\nfirst\n# Sub\nsecond\n")
	if got := doc.ExtractText(); got != "first\nsecond" {
		t.Fatalf("ExtractText = %q", got)
	}
}

func TestOffsetAtClamping(t *testing.T) {
	doc := Parse("abc\ndef")
	cases := []struct {
		row, col, want int
	}{
		{0, 0, 0},
		{0, 2, 2},
		{0, 99, 3},  // column clamps to line end
		{1, 1, 5},   // the newline counts as one rune
		{5, 0, 4},   // row clamps to the last line
		{-1, -1, 0}, // negative clamps to start
	}
	for _, tc := range cases {
		if got := doc.OffsetAt(tc.row, tc.col); got != tc.want {
			t.Fatalf("OffsetAt(%d, %d) = %d, want %d", tc.row, tc.col, got, tc.want)
		}
	}
}

func TestOffsetAtEmpty(t *testing.T) {
	var doc Document
	if got := doc.OffsetAt(3, 3); got != 0 {
		t.Fatalf("OffsetAt on empty doc = %d", got)
	}
}

func TestUTF16OffsetAt(t *testing.T) {
	cases := []struct {
		name string
		text string
		row  int
		col  int
		want int
	}{
		{"start", "ab\ncd", 0, 0, 0},
		{"mid first line", "ab\ncd", 0, 1, 1},
		{"second line", "ab\ncd", 1, 1, 4},
		{"astral plane counts double", "a𝄞b\ncd", 1, 1, 6},
		{"heading marker counts", "# H\nabc", 1, 1, 5},
		{"col clamped to line", "ab\ncd", 0, 99, 2},
		{"row clamped to document", "ab\ncd", 9, 0, 3},
		{"negative row", "ab", -3, 1, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Parse(tc.text).UTF16OffsetAt(tc.row, tc.col); got != tc.want {
				t.Fatalf("UTF16OffsetAt(%d, %d) over %q = %d, want %d", tc.row, tc.col, tc.text, got, tc.want)
			}
		})
	}
}

func TestSourceAndLengths(t *testing.T) {
	if !Parse("").IsEmpty() {
		t.Fatal("expected empty document")
	}
	doc := Parse("ab\ncd")
	if doc.Source() != "ab\ncd" {
		t.Fatalf("Source = %q", doc.Source())
	}
	if doc.Len() != 5 {
		t.Fatalf("Len = %d, want 5", doc.Len())
	}
	if got := Parse("a𝄞").UTF16Len(); got != 3 {
		t.Fatalf("UTF16Len = %d, want 3", got)
	}
}
