package app

import (
	"errors"
	"testing"
)

func TestCopyWithToastReportsOutcome(t *testing.T) {
	orig := clipboardWrite
	defer func() { clipboardWrite = orig }()

	m := readyModel(t, &fakeAPI{})

	clipboardWrite = func(string) error { return nil }
	if !m.copyWithToast("note body", "note copied") {
		t.Fatal("successful copy reported as failure")
	}
	if m.toastLevel != toastLevelInfo || m.toastText != "note copied" {
		t.Fatalf("toast = %q level %v", m.toastText, m.toastLevel)
	}

	clipboardWrite = func(string) error { return errors.New("no tty") }
	if m.copyWithToast("note body", "note copied") {
		t.Fatal("failed copy reported as success")
	}
	if m.toastLevel != toastLevelError {
		t.Fatalf("toastLevel = %v, want error", m.toastLevel)
	}
}

func TestOSC52SequenceSelection(t *testing.T) {
	t.Setenv("TMUX", "")
	t.Setenv("TERM", "xterm-256color")
	if got := len(oscSequences("x")); got != 1 {
		t.Fatalf("plain terminal sequences = %d, want 1", got)
	}

	t.Setenv("TMUX", "/tmp/tmux-0/default,123,0")
	if got := len(oscSequences("x")); got != 2 {
		t.Fatalf("tmux sequences = %d, want 2", got)
	}

	t.Setenv("TMUX", "")
	t.Setenv("TERM", "screen-256color")
	if got := len(oscSequences("x")); got != 1 {
		t.Fatalf("screen sequences = %d, want 1", got)
	}
}

func TestOSC52Unusable(t *testing.T) {
	t.Setenv("LINKNOTES_DISABLE_OSC52", "")
	t.Setenv("TERM", "xterm")
	if osc52Unusable() {
		t.Fatal("usable terminal reported unusable")
	}
	t.Setenv("TERM", "dumb")
	if !osc52Unusable() {
		t.Fatal("dumb terminal not rejected")
	}
	t.Setenv("TERM", "xterm")
	t.Setenv("LINKNOTES_DISABLE_OSC52", "1")
	if !osc52Unusable() {
		t.Fatal("explicit disable ignored")
	}
}
