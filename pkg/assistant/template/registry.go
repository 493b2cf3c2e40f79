// Package template holds the built-in quick templates a client can apply
// to the working draft. Grammar templates wrap the current draft text,
// content templates replace it with a scaffold the user fills in.
package template

import (
	"errors"
	"fmt"
	"strings"

	"ai-writing-assistant-be/pkg/store"
)

var (
	ErrUnknownTemplate      = errors.New("unknown template")
	ErrTemplateModeMismatch = errors.New("template does not belong to the selected mode")
)

// placeholder is substituted with the current draft when a template is applied.
const placeholder = "{text}"

type Template struct {
	Name    string
	Mode    store.Mode
	Pattern string
}

var registry = []Template{
	{Name: "Check Punctuation", Mode: store.ModeGrammar, Pattern: "Check punctuation in:\n{text}"},
	{Name: "Improve Clarity", Mode: store.ModeGrammar, Pattern: "Improve clarity of:\n{text}"},
	{Name: "Simplify Text", Mode: store.ModeGrammar, Pattern: "Simplify this text:\n{text}"},
	{Name: "Formal Tone", Mode: store.ModeGrammar, Pattern: "Make this more formal:\n{text}"},
	{Name: "Blog Post", Mode: store.ModeContent, Pattern: "Write a blog post about: [topic]"},
	{Name: "Business Email", Mode: store.ModeContent, Pattern: "Write a professional email about: [subject]"},
	{Name: "Report", Mode: store.ModeContent, Pattern: "Write a report on: [topic]"},
}

// ListByMode returns the templates available for a mode in display order.
func ListByMode(mode store.Mode) []Template {
	var out []Template
	for _, tpl := range registry {
		if tpl.Mode == mode {
			out = append(out, tpl)
		}
	}
	return out
}

// Apply resolves a template by name and renders it against the given draft.
func Apply(mode store.Mode, name, draft string) (string, error) {
	for _, tpl := range registry {
		if tpl.Name != name {
			continue
		}
		if tpl.Mode != mode {
			return "", fmt.Errorf("%w: %q belongs to %s", ErrTemplateModeMismatch, name, tpl.Mode)
		}
		return strings.ReplaceAll(tpl.Pattern, placeholder, draft), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTemplate, name)
}
