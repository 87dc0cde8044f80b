package semantic

import (
	"errors"
	"testing"
)

func TestClassifySeedSubjects(t *testing.T) {
	c := NewClassifier(nil)
	cases := []struct {
		text string
		want string
	}{
		{"Evaluating the integral by substitution gives the antiderivative.", "Math"},
		{"The kernel schedules threads and handles system calls and virtual memory pages.", "Computer Science"},
		{"The treaty redrew borders after the war and the empire fell.", "History"},
	}
	for _, tc := range cases {
		got, err := c.Classify(tc.text)
		if err != nil {
			t.Fatalf("Classify(%q): %v", tc.text, err)
		}
		if got != tc.want {
			t.Fatalf("Classify(%q) = %q, want %q", tc.text, got, tc.want)
		}
	}
}

func TestClassifyEmpty(t *testing.T) {
	c := NewClassifier(nil)
	if _, err := c.Classify("   "); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
}

func TestClassifierExtraDocsAddTags(t *testing.T) {
	extra := []TrainingDoc{
		{Tags: []string{"Cooking"}, Body: "Simmer the onions in butter. Season the sauce with salt and fresh basil. Whisk the eggs before folding them into the batter."},
	}
	c := NewClassifier(extra)
	found := false
	for _, tag := range c.Tags() {
		if tag == "Cooking" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected Cooking tag, have %v", c.Tags())
	}
	got, err := c.Classify("Whisk eggs and simmer the sauce with basil and butter.")
	if err != nil {
		t.Fatal(err)
	}
	if got != "Cooking" {
		t.Fatalf("Classify = %q, want Cooking", got)
	}
}
