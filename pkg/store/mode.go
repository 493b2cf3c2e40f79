package store

import (
	"errors"
	"fmt"
)

// Mode identifies which writing workflow a session runs.
type Mode string

const (
	ModeGrammar Mode = "grammar"
	ModeContent Mode = "content"
	ModeSynonym Mode = "synonym"
)

// ErrUnknownMode is returned for any mode outside the closed set.
var ErrUnknownMode = errors.New("unknown assistant mode")

// ParseMode validates a raw mode string coming from a client.
func ParseMode(raw string) (Mode, error) {
	switch Mode(raw) {
	case ModeGrammar, ModeContent, ModeSynonym:
		return Mode(raw), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, raw)
	}
}

// Title returns the display name shown by the UI shell.
func (m Mode) Title() string {
	switch m {
	case ModeGrammar:
		return "Grammar Correction"
	case ModeContent:
		return "Content Creation"
	case ModeSynonym:
		return "Synonym Suggestions"
	default:
		return ""
	}
}

// Modes lists every selectable mode in display order.
func Modes() []Mode {
	return []Mode{ModeGrammar, ModeContent, ModeSynonym}
}
