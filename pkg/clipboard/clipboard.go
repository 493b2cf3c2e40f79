// Package clipboard copies assistant output to the host clipboard. On
// hosts without a usable system clipboard it degrades to remembering the
// last copied text so the API can still echo it back.
package clipboard

import "sync"

type Service struct {
	mu        sync.Mutex
	last      string
	available bool
}

func NewService() *Service {
	return &Service{available: initClipboard() == nil}
}

// Copy places text on the system clipboard when one is available and always
// remembers it as the last copied text. The returned bool reports whether
// the system clipboard took the write.
func (s *Service) Copy(text string) bool {
	s.mu.Lock()
	s.last = text
	s.mu.Unlock()

	if !s.available {
		return false
	}
	return writeClipboard(text) == nil
}

// LastCopied returns the most recent text handed to Copy.
func (s *Service) LastCopied() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}
