// Package events dispatches named upload-flow events to registered handlers.
package events

import (
	"log/slog"
	"sync"
	"time"

	"github.com/doctoppt/client/internal/models"
	"github.com/doctoppt/client/internal/notify"
)

// Type names an event.
type Type string

const (
	FileChosen         Type = "file.chosen"
	FileRejected       Type = "file.rejected"
	FileRemoved        Type = "file.removed"
	TemplateChosen     Type = "template.chosen"
	SubmissionStarted  Type = "submission.started"
	SubmissionResolved Type = "submission.resolved"
	HealthDegraded     Type = "health.degraded"
)

// Event carries whatever the emitter knows; unused fields stay zero.
type Event struct {
	Type      Type
	File      *models.SelectedFile
	Reason    string
	Message   string
	AttemptID string
	Outcome   *models.Outcome
	Err       error
	Timestamp time.Time
}

// Handler reacts to an event.
type Handler func(Event)

// Bus is a synchronous publish/subscribe hub.
type Bus struct {
	mu       sync.RWMutex
	handlers map[Type][]Handler
	notifier notify.Notifier
	logger   *slog.Logger
}

// NewBus creates a Bus. Handler panics are reported through n.
func NewBus(n notify.Notifier, logger *slog.Logger) *Bus {
	return &Bus{
		handlers: make(map[Type][]Handler),
		notifier: n,
		logger:   logger.With("component", "events"),
	}
}

// On registers h for events of type t.
func (b *Bus) On(t Type, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[t] = append(b.handlers[t], h)
}

// Emit runs every handler registered for e.Type in registration order.
// A panicking handler does not stop the others.
func (b *Bus) Emit(e Event) {
	if b == nil {
		return
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}

	b.mu.RLock()
	handlers := append([]Handler(nil), b.handlers[e.Type]...)
	b.mu.RUnlock()

	b.logger.Debug("emit", "type", e.Type, "handlers", len(handlers))
	for _, h := range handlers {
		notify.Guard(b.notifier, b.logger, func() { h(e) })
	}
}
