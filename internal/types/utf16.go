package types

import "unicode/utf16"

// UTF16Len returns the length of s in UTF-16 code units.
func UTF16Len(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

// RuneToUTF16 converts a rune offset into s to a UTF-16 code unit
// offset, clamping past-the-end offsets to the full length.
func RuneToUTF16(s string, runeOffset int) int {
	if runeOffset <= 0 {
		return 0
	}
	n, seen := 0, 0
	for _, r := range s {
		if seen >= runeOffset {
			return n
		}
		n += utf16.RuneLen(r)
		seen++
	}
	return n
}

// UTF16RangeToBytes maps a UTF-16 code unit range over s to byte
// offsets, clamping both ends into the string.
func UTF16RangeToBytes(s string, r CharRange) (int, int) {
	startB, endB := len(s), len(s)
	u16 := 0
	for i, ch := range s {
		if u16 >= r.Start && startB == len(s) {
			startB = i
		}
		if u16 >= r.End {
			endB = i
			break
		}
		u16 += utf16.RuneLen(ch)
	}
	if r.Start <= 0 {
		startB = 0
	}
	if startB > endB {
		startB = endB
	}
	return startB, endB
}
