package semantic

import (
	"unicode"
	"unicode/utf8"
)

// Span is a half-open byte range into the source text.
type Span struct {
	Start int
	End   int
}

func (s Span) Contains(byteOffset int) bool {
	return byteOffset >= s.Start && byteOffset < s.End
}

// Chunk splits text into sentence-sized spans. List items (bulleted or
// numbered lines) are split out first with their markers stripped, then
// every segment is split on sentence boundaries. Spans index into the
// original text so callers can recover exact positions.
func Chunk(text string) []Span {
	var spans []Span
	for _, seg := range splitListSegments(text) {
		for _, s := range splitSentences(text[seg.Start:seg.End]) {
			spans = append(spans, Span{Start: seg.Start + s.Start, End: seg.Start + s.End})
		}
	}
	return spans
}

// splitListSegments pulls out bulleted ("- item") and numbered
// ("12. item", "3) item") lines as their own segments, marker stripped.
// Everything left over becomes one trailing segment, trimmed of
// surrounding whitespace. A plain line ends the per-line scan: it and
// everything after it fall into the trailing segment.
func splitListSegments(text string) []Span {
	var segments []Span
	lastIdx := 0

	addLine := func(start, end int) {
		line := text[start:end]
		i := 0
		for i < len(line) {
			r, size := utf8.DecodeRuneInString(line[i:])
			if !unicode.IsSpace(r) {
				break
			}
			i += size
		}
		if i >= len(line) {
			return
		}
		r, size := utf8.DecodeRuneInString(line[i:])
		var body int
		switch {
		case r == '-':
			body = markerEnd(line, i+size, func(r rune) bool { return unicode.IsSpace(r) })
		case unicode.IsDigit(r):
			body = markerEnd(line, i+size, func(r rune) bool {
				return unicode.IsDigit(r) || r == ')' || r == '.' || unicode.IsSpace(r)
			})
		default:
			return
		}
		if body < i {
			body = i
		}
		segments = append(segments, Span{Start: start + body, End: end})
		lastIdx = end
	}

	for i, r := range text {
		if r == '\n' {
			addLine(lastIdx, i)
		}
	}
	addLine(lastIdx, len(text))

	if lastIdx < len(text) {
		rem := text[lastIdx:]
		start := lastIdx
		for start < len(text) {
			r, size := utf8.DecodeRuneInString(text[start:])
			if !unicode.IsSpace(r) {
				break
			}
			start += size
		}
		end := lastIdx + len(rem)
		for end > start {
			r, size := utf8.DecodeLastRuneInString(text[start:end])
			if !unicode.IsSpace(r) {
				break
			}
			end -= size
		}
		if start < end {
			segments = append(segments, Span{Start: start, End: end})
		}
	}
	return segments
}

// markerEnd scans from offset while isMarker holds and returns the byte
// offset of the first character past the marker run. If the line is
// nothing but marker characters it returns the offset of the last one.
func markerEnd(line string, offset int, isMarker func(rune) bool) int {
	idx := offset
	j := offset
	for j < len(line) {
		r, size := utf8.DecodeRuneInString(line[j:])
		idx = j
		if !isMarker(r) {
			break
		}
		j += size
	}
	if j >= len(line) {
		return idx
	}
	return idx
}

// splitSentences returns byte spans of the sentences in s. A sentence
// ends after a terminator (., !, ?) plus any closing punctuation,
// provided whitespace follows; the whitespace belongs to the preceding
// sentence. Terminators followed by non-space (e.g. "3.14") do not
// split.
func splitSentences(s string) []Span {
	var out []Span
	start := 0
	i := 0
	for i < len(s) {
		r, size := utf8.DecodeRuneInString(s[i:])
		i += size
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		j := i
		for j < len(s) {
			r2, s2 := utf8.DecodeRuneInString(s[j:])
			if r2 == '.' || r2 == '!' || r2 == '?' || r2 == '"' || r2 == '\'' || r2 == ')' || r2 == ']' {
				j += s2
				continue
			}
			break
		}
		if j >= len(s) {
			i = j
			continue
		}
		r2, _ := utf8.DecodeRuneInString(s[j:])
		if !unicode.IsSpace(r2) {
			i = j
			continue
		}
		for j < len(s) {
			r3, s3 := utf8.DecodeRuneInString(s[j:])
			if !unicode.IsSpace(r3) {
				break
			}
			j += s3
		}
		out = append(out, Span{Start: start, End: j})
		start = j
		i = j
	}
	if start < len(s) {
		out = append(out, Span{Start: start, End: len(s)})
	}
	return out
}

// SentenceWindow returns the [start, end) index range of up to include
// sentences around the target sentence: half of include past the
// target (capped at the end), the rest reaching back. A window
// narrower than two sentences can land entirely before the target.
func SentenceWindow(sentenceCount, target, include int) (int, int) {
	end := target + include/2
	if end > sentenceCount {
		end = sentenceCount
	}
	start := end - include
	if start < 0 {
		start = 0
	}
	return start, end
}
