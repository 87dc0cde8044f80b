package semantic

import "testing"

func chunkTexts(text string) []string {
	spans := Chunk(text)
	out := make([]string, len(spans))
	for i, s := range spans {
		out[i] = text[s.Start:s.End]
	}
	return out
}

func TestChunkMixedListsAndProse(t *testing.T) {
	text := "- this is a note\n    \t- this is a nested note\n- this is another note. This is another\n\r\t12. hello world\n\t3) this is a numbered list\n- this is another note\nThis\nis\na\nnote\n   "
	want := []string{
		"this is a note",
		"this is a nested note",
		"this is another note. ",
		"This is another",
		"hello world",
		"this is a numbered list",
		"this is another note",
		"This\nis\na\nnote",
	}
	got := chunkTexts(text)
	if len(got) != len(want) {
		t.Fatalf("chunk count = %d, want %d: %q", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("chunk[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestChunkPlainProse(t *testing.T) {
	got := chunkTexts("First sentence. Second sentence! Third?")
	want := []string{"First sentence. ", "Second sentence! ", "Third?"}
	if len(got) != len(want) {
		t.Fatalf("chunk count = %d, want %d: %q", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("chunk[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestChunkDecimalDoesNotSplit(t *testing.T) {
	got := chunkTexts("pi is 3.14 roughly")
	if len(got) != 1 || got[0] != "pi is 3.14 roughly" {
		t.Fatalf("unexpected chunks: %q", got)
	}
}

func TestChunkTerminatorWithClosingQuote(t *testing.T) {
	got := chunkTexts(`He said "stop." Then left.`)
	want := []string{`He said "stop." `, "Then left."}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("unexpected chunks: %q", got)
	}
}

func TestChunkEmpty(t *testing.T) {
	if got := Chunk(""); len(got) != 0 {
		t.Fatalf("expected no chunks, got %v", got)
	}
	if got := Chunk("   \n \t "); len(got) != 0 {
		t.Fatalf("expected no chunks for whitespace, got %v", got)
	}
}

func TestSpanContains(t *testing.T) {
	s := Span{Start: 2, End: 5}
	if !s.Contains(2) || !s.Contains(4) {
		t.Fatal("expected offsets inside span")
	}
	if s.Contains(5) || s.Contains(1) {
		t.Fatal("expected offsets outside span")
	}
}

func TestSentenceWindow(t *testing.T) {
	cases := []struct {
		count, target, include int
		wantStart, wantEnd     int
	}{
		{10, 5, 3, 3, 6},
		{10, 5, 2, 4, 6},
		{10, 0, 3, 0, 1},
		{10, 9, 2, 8, 10},
		{10, 5, 1, 4, 5},
		{2, 1, 6, 0, 2},
		{1, 0, 3, 0, 1},
		{5, 4, 4, 1, 5},
	}
	for _, tc := range cases {
		start, end := SentenceWindow(tc.count, tc.target, tc.include)
		if start != tc.wantStart || end != tc.wantEnd {
			t.Fatalf("SentenceWindow(%d, %d, %d) = (%d, %d), want (%d, %d)",
				tc.count, tc.target, tc.include, start, end, tc.wantStart, tc.wantEnd)
		}
	}
}
