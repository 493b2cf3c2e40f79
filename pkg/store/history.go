package store

import (
	"errors"
	"time"
)

// HistoryLimit caps how many completed submissions a session remembers.
const HistoryLimit = 20

// ErrNoSuchHistoryEntry is returned when an index points outside the
// retained history window.
var ErrNoSuchHistoryEntry = errors.New("no such history entry")

// HistoryEntry is one completed submission: the text that was sent, the
// generated output, and the mode that produced it.
type HistoryEntry struct {
	Input     string
	Output    string
	Mode      Mode
	CreatedAt time.Time
}

// History keeps the most recent entries newest-first, evicting the oldest
// once HistoryLimit is reached. It is not safe for concurrent use; the
// owning Session guards it.
type History struct {
	entries []HistoryEntry
}

// Record inserts an entry at the front and trims the tail past HistoryLimit.
func (h *History) Record(entry HistoryEntry) {
	h.entries = append([]HistoryEntry{entry}, h.entries...)
	if len(h.entries) > HistoryLimit {
		h.entries = h.entries[:HistoryLimit]
	}
}

// At returns the entry at index, 0 being the most recent.
func (h *History) At(index int) (HistoryEntry, error) {
	if index < 0 || index >= len(h.entries) {
		return HistoryEntry{}, ErrNoSuchHistoryEntry
	}
	return h.entries[index], nil
}

func (h *History) Len() int {
	return len(h.entries)
}

// Entries returns a copy so callers can render without holding the session.
func (h *History) Entries() []HistoryEntry {
	out := make([]HistoryEntry, len(h.entries))
	copy(out, h.entries)
	return out
}
