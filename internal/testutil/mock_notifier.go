// mock_notifier.go - Recording notifier for tests
package testutil

import (
	"sync"

	"github.com/doctoppt/client/internal/notify"
)

// Toast is one recorded notification.
type Toast struct {
	Level   notify.Level
	Message string
}

// MockNotifier records every notification it receives.
type MockNotifier struct {
	mu     sync.Mutex
	toasts []Toast
}

// NewMockNotifier creates an empty recorder.
func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

func (m *MockNotifier) Notify(level notify.Level, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.toasts = append(m.toasts, Toast{Level: level, Message: message})
}

// Toasts returns a copy of everything recorded so far.
func (m *MockNotifier) Toasts() []Toast {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Toast(nil), m.toasts...)
}

// Last returns the most recent toast and whether there was one.
func (m *MockNotifier) Last() (Toast, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.toasts) == 0 {
		return Toast{}, false
	}
	return m.toasts[len(m.toasts)-1], true
}

// Messages returns only the messages of the given level.
func (m *MockNotifier) Messages(level notify.Level) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []string
	for _, t := range m.toasts {
		if t.Level == level {
			out = append(out, t.Message)
		}
	}
	return out
}

// Reset forgets recorded toasts.
func (m *MockNotifier) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.toasts = nil
}
