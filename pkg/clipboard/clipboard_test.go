package clipboard

import "testing"

func TestCopyRemembersLastText(t *testing.T) {
	svc := NewService()

	if got := svc.LastCopied(); got != "" {
		t.Errorf("LastCopied before any copy = %q, want empty", got)
	}

	svc.Copy("first output")
	if got := svc.LastCopied(); got != "first output" {
		t.Errorf("LastCopied = %q, want %q", got, "first output")
	}

	svc.Copy("second output")
	if got := svc.LastCopied(); got != "second output" {
		t.Errorf("LastCopied after overwrite = %q, want %q", got, "second output")
	}
}

func TestCopyFallbackStillRemembers(t *testing.T) {
	// Force the degraded path regardless of the host platform.
	svc := &Service{available: false}

	if copied := svc.Copy("kept anyway"); copied {
		t.Error("Copy should report false when no system clipboard is available")
	}
	if got := svc.LastCopied(); got != "kept anyway" {
		t.Errorf("LastCopied = %q, want %q", got, "kept anyway")
	}
}
