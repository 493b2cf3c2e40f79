package template

import (
	"errors"
	"testing"

	"ai-writing-assistant-be/pkg/store"
)

func TestApply(t *testing.T) {
	tests := []struct {
		name    string
		mode    store.Mode
		tplName string
		draft   string
		want    string
		wantErr error
	}{
		{
			name:    "grammar template wraps draft",
			mode:    store.ModeGrammar,
			tplName: "Check Punctuation",
			draft:   "its a test",
			want:    "Check punctuation in:\nits a test",
		},
		{
			name:    "formal tone",
			mode:    store.ModeGrammar,
			tplName: "Formal Tone",
			draft:   "hey there",
			want:    "Make this more formal:\nhey there",
		},
		{
			name:    "content template replaces draft",
			mode:    store.ModeContent,
			tplName: "Business Email",
			draft:   "anything already typed",
			want:    "Write a professional email about: [subject]",
		},
		{
			name:    "unknown template",
			mode:    store.ModeGrammar,
			tplName: "Make It Rhyme",
			wantErr: ErrUnknownTemplate,
		},
		{
			name:    "template from another mode",
			mode:    store.ModeGrammar,
			tplName: "Blog Post",
			wantErr: ErrTemplateModeMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Apply(tt.mode, tt.tplName, tt.draft)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Apply = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestListByMode(t *testing.T) {
	grammar := ListByMode(store.ModeGrammar)
	if len(grammar) != 4 {
		t.Errorf("grammar templates = %d, want 4", len(grammar))
	}
	if grammar[0].Name != "Check Punctuation" {
		t.Errorf("first grammar template = %q, want Check Punctuation", grammar[0].Name)
	}

	content := ListByMode(store.ModeContent)
	if len(content) != 3 {
		t.Errorf("content templates = %d, want 3", len(content))
	}

	if got := ListByMode(store.ModeSynonym); len(got) != 0 {
		t.Errorf("synonym templates = %d, want 0", len(got))
	}
}
