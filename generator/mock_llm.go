package generator

import (
	"context"
	"sync"
)

// MockLLM is a scriptable LLMClient for tests. Replies are consumed in
// order; the last one repeats once the script runs out.
type MockLLM struct {
	mu      sync.Mutex
	replies []string
	err     error
	calls   int
	prompts []Prompt
}

func NewMockLLM(replies ...string) *MockLLM {
	return &MockLLM{replies: replies}
}

// Fail makes every subsequent Complete call return err.
func (m *MockLLM) Fail(err error) *MockLLM {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
	return m
}

func (m *MockLLM) Complete(_ context.Context, prompt Prompt) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.prompts = append(m.prompts, prompt)
	if m.err != nil {
		return "", m.err
	}
	if len(m.replies) == 0 {
		return "", nil
	}
	reply := m.replies[0]
	if len(m.replies) > 1 {
		m.replies = m.replies[1:]
	}
	return reply, nil
}

func (m *MockLLM) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Prompts returns a copy of every prompt seen so far.
func (m *MockLLM) Prompts() []Prompt {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Prompt(nil), m.prompts...)
}
