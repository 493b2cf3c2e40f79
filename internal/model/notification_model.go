package model

import (
	"time"

	"github.com/google/uuid"
)

// NotificationType maps an event code to the user-facing toast rendered for
// it. The registry lives in memory; nothing is persisted.
type NotificationType struct {
	Code        string `json:"code"`
	DisplayName string `json:"display_name"`
	Template    string `json:"template"`
}

// Notification is the payload pushed to a session's WebSocket connections
// when its state changes.
type Notification struct {
	ID        uuid.UUID              `json:"id"`
	SessionID uuid.UUID              `json:"session_id"`
	TypeCode  string                 `json:"type_code"`
	Title     string                 `json:"title"`
	Message   string                 `json:"message"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}
