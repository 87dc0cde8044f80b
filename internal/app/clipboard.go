package app

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	osc52 "github.com/aymanbagabas/go-osc52/v2"
)

// copyWithToast puts text on the clipboard and reports the outcome as
// a toast. The system clipboard is tried first; terminals without one
// (SSH sessions, headless boxes) get an OSC52 escape sequence instead.
func (m *Model) copyWithToast(text, success string) bool {
	if err := clipboardWrite(text); err != nil {
		m.showErrorToast("copy failed: " + err.Error())
		return false
	}
	m.showInfoToast(success)
	return true
}

// clipboardWrite is a variable so tests can stub the clipboard out.
var clipboardWrite = func(text string) error {
	sysErr := clipboard.WriteAll(text)
	if sysErr == nil {
		return nil
	}
	oscErr := oscCopy(text)
	if oscErr == nil {
		return nil
	}
	return copyFailure(sysErr, oscErr)
}

func oscCopy(text string) error {
	if osc52Unusable() {
		return errors.New("OSC52 disabled or unsupported terminal")
	}
	tty, err := os.OpenFile("/dev/tty", os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("open /dev/tty: %w", err)
	}
	defer tty.Close()
	for _, seq := range oscSequences(text) {
		if _, err := seq.WriteTo(tty); err != nil {
			return err
		}
	}
	return nil
}

// oscSequences picks the escape flavor for the current terminal.
// Inside tmux both the plain and the tmux-wrapped forms go out, since
// which one reaches the outer terminal depends on its set-clipboard
// setting.
func oscSequences(text string) []osc52.Sequence {
	base := osc52.New(text)
	if os.Getenv("TMUX") != "" {
		return []osc52.Sequence{base, base.Tmux()}
	}
	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	if strings.HasPrefix(term, "screen") {
		return []osc52.Sequence{base.Screen()}
	}
	return []osc52.Sequence{base}
}

func osc52Unusable() bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("LINKNOTES_DISABLE_OSC52"))) {
	case "1", "true", "yes", "on":
		return true
	}
	term := strings.TrimSpace(os.Getenv("TERM"))
	return term == "" || strings.EqualFold(term, "dumb")
}

// copyFailure folds both failures into one message, translating the
// bare "exit status 1" the clipboard helpers exit with on headless
// machines into something actionable.
func copyFailure(sysErr, oscErr error) error {
	sysMsg := strings.TrimSpace(sysErr.Error())
	if sysMsg == "exit status 1" && headless() {
		sysMsg = "no GUI clipboard available (DISPLAY and WAYLAND_DISPLAY unset)"
	}
	return fmt.Errorf("%s; OSC52 fallback: %v", sysMsg, oscErr)
}

func headless() bool {
	return os.Getenv("DISPLAY") == "" && os.Getenv("WAYLAND_DISPLAY") == ""
}
