package semantic

import (
	"errors"
	"strings"
)

// The classifier assigns a subject tag to untagged notes. It is a
// nearest-centroid model: every tag gets the mean embedding of the
// sentence chunks of its training documents, and classification picks
// the tag whose centroid is closest to the note's chunks. Training data
// is a built-in seed corpus plus whatever manually tagged documents the
// workspace already holds, so the model improves as the user tags
// notes.

type TrainingDoc struct {
	Body string
	Tags []string
}

type Classifier struct {
	tags      []string
	centroids []Vector
}

var ErrEmptyInput = errors.New("empty input for classification")

// NewClassifier trains on the seed corpus plus extra workspace
// documents.
func NewClassifier(extra []TrainingDoc) *Classifier {
	type acc struct {
		sum   []float64
		count int
	}
	byTag := map[string]*acc{}
	var order []string

	add := func(doc TrainingDoc) {
		spans := Chunk(doc.Body)
		vectors := EmbedSpans(doc.Body, spans)
		for _, name := range doc.Tags {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			a := byTag[name]
			if a == nil {
				a = &acc{sum: make([]float64, vectorDim)}
				byTag[name] = a
				order = append(order, name)
			}
			for _, v := range vectors {
				for i, x := range v {
					a.sum[i] += float64(x)
				}
				a.count++
			}
		}
	}

	for _, doc := range seedDocuments() {
		add(doc)
	}
	for _, doc := range extra {
		add(doc)
	}

	c := &Classifier{}
	for _, name := range order {
		a := byTag[name]
		if a.count == 0 {
			continue
		}
		centroid := make(Vector, vectorDim)
		for i, x := range a.sum {
			centroid[i] = float32(x / float64(a.count))
		}
		c.tags = append(c.tags, name)
		c.centroids = append(c.centroids, centroid.normalize())
	}
	return c
}

// Classify returns the best-fitting tag name for the text, scoring each
// tag by summed similarity over the text's sentence chunks.
func (c *Classifier) Classify(text string) (string, error) {
	spans := Chunk(text)
	if len(spans) == 0 || len(c.tags) == 0 {
		return "", ErrEmptyInput
	}
	scores := make([]float64, len(c.tags))
	for _, v := range EmbedSpans(text, spans) {
		for i, centroid := range c.centroids {
			scores[i] += Dot(v, centroid)
		}
	}
	best := 0
	for i, s := range scores {
		if s > scores[best] {
			best = i
		}
	}
	return c.tags[best], nil
}

// Tags returns the tag names the classifier can assign.
func (c *Classifier) Tags() []string {
	return append([]string(nil), c.tags...)
}

func seedDocuments() []TrainingDoc {
	return []TrainingDoc{
		{Tags: []string{"Math"}, Body: "An integral measures the area under a curve. The fundamental theorem of calculus connects differentiation and integration. Definite integrals have bounds while indefinite integrals produce an antiderivative plus a constant. Substitution and integration by parts are the standard techniques for evaluating integrals."},
		{Tags: []string{"Math"}, Body: "Discrete math covers logic, sets, relations, and graph theory. A proof by induction establishes a base case and an inductive step. Combinatorics counts permutations and combinations. Graphs have vertices and edges, and trees are acyclic connected graphs."},
		{Tags: []string{"Math"}, Body: "Statistics describes data with the mean, median, and standard deviation. A probability distribution assigns likelihoods to outcomes. The normal distribution is symmetric around its mean. Hypothesis tests compare a sample statistic against a null hypothesis using p values and confidence intervals."},
		{Tags: []string{"Computer Science"}, Body: "SIMD instructions apply one operation to multiple lanes of data at once. Vector registers hold packed integers or floats. Compilers can auto vectorize loops when iterations are independent. Alignment and data layout decide how well code uses the vector units of the processor."},
		{Tags: []string{"Computer Science"}, Body: "Reactivity systems track reads of state and rerun computations when that state changes. Signals hold values and effects subscribe to them. Fine grained reactivity updates only the parts of the interface that depend on changed data, avoiding a full rerender of the tree."},
		{Tags: []string{"Computer Science"}, Body: "An operating system schedules processes and threads onto the CPU. Virtual memory gives each process its own address space backed by pages. System calls cross from user mode into the kernel. File systems, drivers, and interrupt handlers round out the kernel's responsibilities."},
		{Tags: []string{"History"}, Body: "The industrial revolution moved production from hand work to machines powered by steam. Empires rose and fell through conquest and trade. The printing press spread literacy across Europe. Treaties ended wars and redrew borders, and revolutions replaced monarchies with republics."},
		{Tags: []string{"Philosophy"}, Body: "Epistemology asks what knowledge is and how belief can be justified. Ethics weighs consequentialist and deontological accounts of right action. Metaphysics studies existence, identity, and causation. Philosophers argue from premises to conclusions and test them against counterexamples."},
		{Tags: []string{"Science"}, Body: "The scientific method forms hypotheses and tests them with controlled experiments. Cells are the basic unit of living organisms and DNA carries heredity. Chemical reactions rearrange atoms while conserving mass. Evolution by natural selection explains the diversity of species."},
		{Tags: []string{"Physics"}, Body: "Newton's laws relate force, mass, and acceleration. Energy is conserved and transforms between kinetic and potential forms. Electric and magnetic fields propagate as light. Quantum mechanics describes particles with wavefunctions, and relativity ties space and time together."},
	}
}
