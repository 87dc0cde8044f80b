package types

import "testing"

func TestUTF16Len(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"abc", 3},
		{"héllo", 5},
		{"日本語", 3},
		{"a𝄞b", 4}, // musical symbol takes a surrogate pair
	}
	for _, tc := range cases {
		if got := UTF16Len(tc.in); got != tc.want {
			t.Fatalf("UTF16Len(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestRuneToUTF16(t *testing.T) {
	s := "a𝄞b"
	cases := []struct {
		runeOffset int
		want       int
	}{
		{0, 0},
		{1, 1},
		{2, 3},
		{3, 4},
		{10, 4}, // clamps past the end
		{-1, 0},
	}
	for _, tc := range cases {
		if got := RuneToUTF16(s, tc.runeOffset); got != tc.want {
			t.Fatalf("RuneToUTF16(%q, %d) = %d, want %d", s, tc.runeOffset, got, tc.want)
		}
	}
}

func TestUTF16RangeToBytes(t *testing.T) {
	s := "a𝄞bc"
	start, end := UTF16RangeToBytes(s, CharRange{Start: 1, End: 3})
	if s[start:end] != "𝄞" {
		t.Fatalf("range [1,3) = %q, want the surrogate pair rune", s[start:end])
	}
	start, end = UTF16RangeToBytes(s, CharRange{Start: 0, End: 1})
	if s[start:end] != "a" {
		t.Fatalf("range [0,1) = %q", s[start:end])
	}
	start, end = UTF16RangeToBytes(s, CharRange{Start: 3, End: 100})
	if s[start:end] != "bc" {
		t.Fatalf("range [3,100) = %q", s[start:end])
	}
}

func TestHasTagCaseInsensitive(t *testing.T) {
	rec := NoteRecord{Tags: []Tag{{Name: " Math ", Manual: true}}}
	if !rec.HasTag("math") {
		t.Fatal("expected case-insensitive tag match")
	}
	if rec.HasTag("physics") {
		t.Fatal("unexpected tag match")
	}
}
