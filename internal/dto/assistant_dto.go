package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateSessionResponse struct {
	Id        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

type MessageDTO struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// HistoryEntryDTO renders one past exchange. Timestamp uses the minute
// resolution layout the UI lists history with.
type HistoryEntryDTO struct {
	Index     int    `json:"index"`
	Input     string `json:"input"`
	Output    string `json:"output"`
	Mode      string `json:"mode"`
	Timestamp string `json:"timestamp"`
}

// SessionStateResponse is the render source for the UI shell. Mutating
// endpoints return it so the client can redraw without a second fetch.
type SessionStateResponse struct {
	Id         uuid.UUID         `json:"id"`
	Mode       string            `json:"mode,omitempty"`
	ModeTitle  string            `json:"mode_title,omitempty"`
	Messages   []MessageDTO      `json:"messages"`
	Draft      string            `json:"draft"`
	WordCount  int               `json:"word_count"`
	Processing bool              `json:"processing"`
	History    []HistoryEntryDTO `json:"history"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

type SelectModeRequest struct {
	Mode string `json:"mode" validate:"required,oneof=grammar content synonym"`
}

type UpdateDraftRequest struct {
	Draft string `json:"draft"` // empty clears the draft
}

type UpdateDraftResponse struct {
	Draft     string `json:"draft"`
	WordCount int    `json:"word_count"`
}

type ApplyTemplateRequest struct {
	Template string `json:"template" validate:"required"`
}

type ApplyTemplateResponse struct {
	Template  string `json:"template"`
	Draft     string `json:"draft"`
	WordCount int    `json:"word_count"`
}

type SubmitRequest struct {
	Draft string `json:"draft,omitempty"` // optional override, stored before dispatch
}

type SubmitResponse struct {
	SessionId uuid.UUID   `json:"session_id"`
	Mode      string      `json:"mode"`
	Sent      *MessageDTO `json:"sent"`
	Reply     *MessageDTO `json:"reply"`
}

type CopyTextRequest struct {
	Text string `json:"text" validate:"required"`
}

// CopyResponse reports whether the host clipboard took the text. Copied is
// false on headless hosts; the text is echoed back so clients can fall back
// to a browser-side copy.
type CopyResponse struct {
	Copied bool   `json:"copied"`
	Text   string `json:"text"`
}

type ModeDTO struct {
	Key   string `json:"key"`
	Title string `json:"title"`
}

type TemplateDTO struct {
	Name    string `json:"name"`
	Mode    string `json:"mode"`
	Pattern string `json:"pattern"`
}
