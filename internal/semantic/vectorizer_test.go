package semantic

import (
	"math"
	"testing"
)

func TestEmbedNormalized(t *testing.T) {
	v := Embed("integration by parts evaluates integrals")
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if math.Abs(sum-1) > 1e-4 {
		t.Fatalf("expected unit vector, got squared norm %f", sum)
	}
}

func TestEmbedEmptyIsZero(t *testing.T) {
	for _, text := range []string{"", "   ", "the a an of"} {
		v := Embed(text)
		for i, x := range v {
			if x != 0 {
				t.Fatalf("Embed(%q)[%d] = %f, want 0", text, i, x)
			}
		}
	}
}

func TestEmbedDeterministic(t *testing.T) {
	a := Embed("graph theory and vertices")
	b := Embed("graph theory and vertices")
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("embeddings differ at %d", i)
		}
	}
}

func TestDistanceOrdering(t *testing.T) {
	query := Embed("derivative of a function in calculus")
	related := Embed("the derivative measures how a function changes")
	unrelated := Embed("steam engines powered the industrial revolution")
	if Distance(query, related) >= Distance(query, unrelated) {
		t.Fatalf("related text should be closer: related=%f unrelated=%f",
			Distance(query, related), Distance(query, unrelated))
	}
}

func TestDistanceSelf(t *testing.T) {
	v := Embed("some note text here")
	if d := Distance(v, v); math.Abs(d) > 1e-4 {
		t.Fatalf("self distance = %f, want 0", d)
	}
}

func TestEmbedSpans(t *testing.T) {
	text := "First sentence. Second part entirely different."
	spans := Chunk(text)
	vectors := EmbedSpans(text, spans)
	if len(vectors) != len(spans) {
		t.Fatalf("got %d vectors for %d spans", len(vectors), len(spans))
	}
}
