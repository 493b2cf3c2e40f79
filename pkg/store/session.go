package store

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

var (
	ErrSessionNotFound    = errors.New("session not found")
	ErrModeNotSet         = errors.New("no mode selected")
	ErrModeAlreadySet     = errors.New("mode already selected")
	ErrEmptyDraft         = errors.New("draft is empty")
	ErrSubmissionInFlight = errors.New("a submission is already being processed")
)

// Message is a single transcript turn.
type Message struct {
	Role      string
	Content   string
	CreatedAt time.Time
}

// Session represents the active user session state in memory. All methods
// are safe for concurrent use; handlers resolving the same session ID share
// one instance.
type Session struct {
	ID        uuid.UUID
	CreatedAt time.Time

	mu         sync.Mutex
	mode       Mode
	transcript []Message
	draft      string
	history    History
	processing bool
	updatedAt  time.Time
}

func NewSession() *Session {
	now := time.Now()
	return &Session{
		ID:        uuid.New(),
		CreatedAt: now,
		updatedAt: now,
	}
}

// SelectMode pins the session to a mode and seeds the transcript with the
// assistant greeting. A live session keeps its mode until Reset; replaying a
// history entry is the only other path that may change it.
func (s *Session) SelectMode(mode Mode, greeting string) error {
	if !validMode(mode) {
		return ErrUnknownMode
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mode != "" {
		return ErrModeAlreadySet
	}

	now := time.Now()
	s.mode = mode
	s.transcript = []Message{{
		Role:      RoleAssistant,
		Content:   greeting,
		CreatedAt: now,
	}}
	s.updatedAt = now
	return nil
}

// Mode returns the selected mode, or false while the session is on the
// mode-selection screen.
func (s *Session) Mode() (Mode, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode, s.mode != ""
}

func (s *Session) SetDraft(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = text
	s.updatedAt = time.Now()
}

func (s *Session) Draft() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// BeginSubmission validates the submit preconditions and acquires the
// single-flight latch in one step. On success it returns the draft and mode
// the generation call must use; every exit path afterwards must end with
// CompleteSubmission or AbortSubmission.
func (s *Session) BeginSubmission() (string, Mode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mode == "" {
		return "", "", ErrModeNotSet
	}
	if strings.TrimSpace(s.draft) == "" {
		return "", "", ErrEmptyDraft
	}
	if s.processing {
		return "", "", ErrSubmissionInFlight
	}

	s.processing = true
	return s.draft, s.mode, nil
}

// CompleteSubmission applies a successful generation: both turns are
// appended to the transcript, the exchange is recorded to history, and the
// draft is cleared. The second return is false when the session was reset
// while the call was in flight; the result is then discarded.
func (s *Session) CompleteSubmission(input, output string, mode Mode) (HistoryEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.processing = false
	if s.mode == "" {
		return HistoryEntry{}, false
	}

	now := time.Now()
	s.transcript = append(s.transcript,
		Message{Role: RoleUser, Content: input, CreatedAt: now},
		Message{Role: RoleAssistant, Content: output, CreatedAt: now},
	)

	entry := HistoryEntry{
		Input:     input,
		Output:    output,
		Mode:      mode,
		CreatedAt: now,
	}
	s.history.Record(entry)

	s.draft = ""
	s.updatedAt = now
	return entry, true
}

// AbortSubmission releases the latch after a failed generation. Nothing
// else is touched: the draft survives so the user can retry.
func (s *Session) AbortSubmission() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.processing = false
}

func (s *Session) Processing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.processing
}

// Reset returns the session to the mode-selection screen. History is kept.
// Resetting an already-reset session is a no-op.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.mode = ""
	s.transcript = nil
	s.draft = ""
	s.updatedAt = time.Now()
}

// HistoryEntries returns a newest-first copy of the retained submissions.
func (s *Session) HistoryEntries() []HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.Entries()
}

func (s *Session) HistoryAt(index int) (HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.At(index)
}

// ReplayHistory loads an old exchange back into the editor: the entry's
// input becomes the draft and its mode becomes the session mode. The
// transcript and the history itself are left untouched.
func (s *Session) ReplayHistory(index int) (HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, err := s.history.At(index)
	if err != nil {
		return HistoryEntry{}, err
	}

	s.draft = entry.Input
	s.mode = entry.Mode
	s.updatedAt = time.Now()
	return entry, nil
}

// Snapshot is a consistent copy of the session used for rendering.
type Snapshot struct {
	ID         uuid.UUID
	Mode       Mode
	Transcript []Message
	Draft      string
	History    []HistoryEntry
	Processing bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	transcript := make([]Message, len(s.transcript))
	copy(transcript, s.transcript)

	return Snapshot{
		ID:         s.ID,
		Mode:       s.mode,
		Transcript: transcript,
		Draft:      s.draft,
		History:    s.history.Entries(),
		Processing: s.processing,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.updatedAt,
	}
}

func validMode(m Mode) bool {
	switch m {
	case ModeGrammar, ModeContent, ModeSynonym:
		return true
	}
	return false
}
