package app

import "testing"

func TestCoordinatorGatesOnThreshold(t *testing.T) {
	c := NewContextSearchCoordinator(20)

	if c.ShouldQuery(15, 100) {
		t.Fatal("offset 15 is within the threshold of 0")
	}
	if !c.ShouldQuery(21, 100) {
		t.Fatal("offset 21 should warrant a query")
	}

	seq := c.Begin()
	if !c.Accept(seq, 100) {
		t.Fatal("current response rejected")
	}

	if c.ShouldQuery(115, 200) {
		t.Fatal("offset 115 is within 20 of 100")
	}
	if !c.ShouldQuery(121, 200) {
		t.Fatal("offset 121 is past the threshold from 100")
	}
	if !c.ShouldQuery(79, 200) {
		t.Fatal("moving backwards past the threshold should also query")
	}
}

func TestCoordinatorEmptyDocumentNeverQueries(t *testing.T) {
	c := NewContextSearchCoordinator(20)
	if c.ShouldQuery(50, 0) {
		t.Fatal("empty document queried")
	}
}

func TestCoordinatorBlocksWhileQuerying(t *testing.T) {
	c := NewContextSearchCoordinator(20)
	seq := c.Begin()
	if !c.Querying() {
		t.Fatal("not querying after Begin")
	}
	if c.ShouldQuery(200, 500) {
		t.Fatal("queried while a lookup is in flight")
	}
	if !c.Accept(seq, 30) {
		t.Fatal("current response rejected")
	}
	if c.Querying() {
		t.Fatal("still querying after Accept")
	}
}

func TestCoordinatorFailKeepsReferenceOffset(t *testing.T) {
	c := NewContextSearchCoordinator(20)
	seq := c.Begin()
	if !c.Accept(seq, 100) {
		t.Fatal("accept failed")
	}

	seq = c.Begin()
	if !c.Fail(seq) {
		t.Fatal("fail rejected current seq")
	}
	// Reference stays at 100, so 150 still clears the gate and can retry.
	if !c.ShouldQuery(150, 500) {
		t.Fatal("failed lookup should be retryable from the same offset")
	}
}

func TestCoordinatorStaleResponsesDropped(t *testing.T) {
	c := NewContextSearchCoordinator(20)
	stale := c.Begin()
	c.Reset()
	if c.Accept(stale, 50) {
		t.Fatal("stale response accepted after Reset")
	}
	if c.Fail(stale) {
		t.Fatal("stale failure accepted after Reset")
	}
	if c.Querying() {
		t.Fatal("Reset left the coordinator querying")
	}
}

func TestCoordinatorResetClearsReference(t *testing.T) {
	c := NewContextSearchCoordinator(20)
	seq := c.Begin()
	c.Accept(seq, 500)
	c.Reset()
	if !c.ShouldQuery(21, 100) {
		t.Fatal("reference offset not cleared by Reset")
	}
}
