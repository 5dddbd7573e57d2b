package cmdutil

import (
	"context"
	"strings"
	"sync"
)

// StubRunner is a Runner for tests. Responses are keyed by the command name
// joined with its arguments by single spaces; unknown invocations return ""
// exactly like a missing tool would in production.
type StubRunner struct {
	// Responses maps "name arg1 arg2" to canned stdout.
	Responses map[string]string

	// Paths maps tool names to LookPath results. A name with no entry is
	// reported as not installed.
	Paths map[string]string

	mu    sync.Mutex
	calls []string
}

// Output implements Runner.
func (s *StubRunner) Output(_ context.Context, name string, args ...string) string {
	key := strings.Join(append([]string{name}, args...), " ")
	s.mu.Lock()
	s.calls = append(s.calls, key)
	s.mu.Unlock()
	return s.Responses[key]
}

// LookPath implements Runner.
func (s *StubRunner) LookPath(name string) string {
	return s.Paths[name]
}

// Calls returns every invocation seen so far, in order.
func (s *StubRunner) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

// Called reports whether any recorded invocation starts with prefix.
func (s *StubRunner) Called(prefix string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, call := range s.calls {
		if strings.HasPrefix(call, prefix) {
			return true
		}
	}
	return false
}
