package memory

import (
	"testing"

	"github.com/google/uuid"

	"ai-writing-assistant-be/pkg/store"
)

func TestSessionRepositoryRoundTrip(t *testing.T) {
	repo := NewSessionRepository()
	session := store.NewSession()

	repo.Save(session)

	got, found := repo.Get(session.ID)
	if !found {
		t.Fatal("saved session not found")
	}
	if got != session {
		t.Error("Get should return the same session instance")
	}

	repo.Delete(session.ID)
	if _, found := repo.Get(session.ID); found {
		t.Error("deleted session should not be found")
	}
}

func TestSessionRepositoryUnknownId(t *testing.T) {
	repo := NewSessionRepository()

	if _, found := repo.Get(uuid.New()); found {
		t.Error("unknown session id should not be found")
	}
}
