package constant

const (
	// Seeded as the first assistant message when a mode is selected,
	// e.g. "I'm your Grammar Correction assistant. How can I help?"
	ModeGreetingFormat = "I'm your %s assistant. How can I help?"

	// Timestamp layout used when history entries are rendered for clients.
	HistoryTimeFormat = "2006-01-02 15:04"
)
