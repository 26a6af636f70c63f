package llm

import (
	"context"
	"sync"
)

// Stub is a scripted LLM double for tests: each call to Generate returns the
// next queued response (or Err if set), recording every invocation it saw so
// assertions like "zero LLM calls on cache hit" can be made.
type Stub struct {
	mu        sync.Mutex
	Responses []string
	Err       error
	calls     []([]Message)
}

// NewStub returns a Stub that yields responses in order, one per call,
// repeating the last one once exhausted.
func NewStub(responses ...string) *Stub {
	return &Stub{Responses: responses}
}

// Generate implements LLM.
func (s *Stub) Generate(_ context.Context, messages []Message) (*Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls = append(s.calls, messages)

	if s.Err != nil {
		return nil, s.Err
	}

	if len(s.Responses) == 0 {
		return &Response{Content: ""}, nil
	}

	idx := len(s.calls) - 1
	if idx >= len(s.Responses) {
		idx = len(s.Responses) - 1
	}
	return &Response{Content: s.Responses[idx]}, nil
}

// CallCount reports how many times Generate was invoked.
func (s *Stub) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

// StubFactory is a Factory returning the same Stub regardless of
// temperature, suitable for DI container test overrides.
type StubFactory struct {
	LLM *Stub
}

// ForTemperature implements Factory.
func (f *StubFactory) ForTemperature(float32) (LLM, error) {
	return f.LLM, nil
}
