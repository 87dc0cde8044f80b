package semantic

import (
	"hash/fnv"
	"math"
	"strings"
	"unicode"
)

// Embeddings are hashed bag-of-words vectors: each token (and each
// adjacent token pair, at half weight) is hashed into a fixed number of
// buckets and the result L2-normalized. Cheap, deterministic, and good
// enough for nearest-neighbor ranking over note-sized text.

const vectorDim = 384

const pairWeight = 0.5

type Vector []float32

var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {},
	"by": {}, "for": {}, "from": {}, "in": {}, "is": {}, "it": {}, "of": {},
	"on": {}, "or": {}, "that": {}, "the": {}, "this": {}, "to": {}, "was": {},
	"with": {},
}

// Embed converts text to its embedding vector. Empty or all-stopword
// text yields the zero vector.
func Embed(text string) Vector {
	v := make(Vector, vectorDim)
	tokens := tokenize(text)
	for i, tok := range tokens {
		v[bucket(tok)] += 1
		if i > 0 {
			v[bucket(tokens[i-1]+" "+tok)] += pairWeight
		}
	}
	return v.normalize()
}

// EmbedSpans embeds each span of text independently.
func EmbedSpans(text string, spans []Span) []Vector {
	out := make([]Vector, len(spans))
	for i, s := range spans {
		out[i] = Embed(text[s.Start:s.End])
	}
	return out
}

func bucket(token string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(token))
	return int(h.Sum32() % vectorDim)
}

func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	out := fields[:0]
	for _, f := range fields {
		if _, skip := stopwords[f]; skip {
			continue
		}
		out = append(out, f)
	}
	return out
}

func (v Vector) normalize() Vector {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		return v
	}
	inv := float32(1 / math.Sqrt(sum))
	for i := range v {
		v[i] *= inv
	}
	return v
}

// Dot returns the inner product. Inputs are normalized, so this is the
// cosine similarity.
func Dot(a, b Vector) float64 {
	if len(a) != len(b) {
		return 0
	}
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}

// Distance is the cosine distance in [0, 2]; lower is closer.
func Distance(a, b Vector) float64 {
	return 1 - Dot(a, b)
}
