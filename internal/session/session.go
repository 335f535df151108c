// Package session holds the single owned state object shared by the intake
// controller and the submission orchestrator.
package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/doctoppt/client/internal/models"
	"github.com/google/uuid"
)

var (
	ErrBusy              = errors.New("a submission is already in flight")
	ErrTerminal          = errors.New("the form was already submitted")
	ErrNoDocument        = errors.New("no document staged")
	ErrInvalidTransition = errors.New("invalid phase transition")
)

// DefaultSubmitLabel is the submit control text when none is configured.
const DefaultSubmitLabel = "Generate presentation"

// Session is the state of one upload form: staged files, the submit
// control, and the submission phase. Safe for concurrent use.
type Session struct {
	mu       sync.RWMutex
	document *models.SelectedFile
	template *models.SelectedFile
	phase    models.Phase
	attempt  *models.UploadAttempt
	label    string // current submit control text
	saved    string // label to restore after a failed attempt
	busy     bool
}

// New creates an idle session whose submit control shows label.
func New(label string) *Session {
	if label == "" {
		label = DefaultSubmitLabel
	}
	return &Session{
		phase: models.PhaseIdle,
		label: label,
	}
}

// Stage replaces the staged document. Callers validate f first.
func (s *Session) Stage(f *models.SelectedFile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.document = f.Clone()
}

// ClearDocument drops the staged document and reports whether one was staged.
func (s *Session) ClearDocument() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	had := s.document != nil
	s.document = nil
	if !s.busy && s.saved != "" {
		s.label = s.saved
		s.saved = ""
	}
	return had
}

// Document returns a copy of the staged document, or nil.
func (s *Session) Document() *models.SelectedFile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.document.Clone()
}

// StageTemplate replaces the staged template.
func (s *Session) StageTemplate(f *models.SelectedFile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.template = f.Clone()
}

// ClearTemplate drops the staged template.
func (s *Session) ClearTemplate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.template = nil
}

// Template returns a copy of the staged template, or nil.
func (s *Session) Template() *models.SelectedFile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.template.Clone()
}

// Payload snapshots the form contents.
func (s *Session) Payload() models.FormPayload {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.FormPayload{
		Document: s.document.Clone(),
		Template: s.template.Clone(),
	}
}

// Control derives the submit control from the current state. It is
// enabled exactly when a document is staged, nothing is in flight and
// the form has not been submitted successfully.
func (s *Session) Control() models.SubmitControl {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.SubmitControl{
		Enabled: s.document != nil && !s.busy && !s.phase.Terminal(),
		Busy:    s.busy,
		Label:   s.label,
	}
}

// Phase returns the current submission phase.
func (s *Session) Phase() models.Phase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.phase
}

// Attempt returns a copy of the current or last attempt, or nil.
func (s *Session) Attempt() *models.UploadAttempt {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.attempt == nil {
		return nil
	}
	a := *s.attempt
	return &a
}

// BeginValidation moves idle -> validating.
func (s *Session) BeginValidation() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case s.busy || s.phase == models.PhaseSubmitting:
		return ErrBusy
	case s.phase.Terminal():
		return ErrTerminal
	}
	return s.transition(models.PhaseValidating)
}

// Reject records a failed form validation: validating -> rejected -> idle.
func (s *Session) Reject() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.transition(models.PhaseRejected); err != nil {
		return err
	}
	return s.transition(models.PhaseIdle)
}

// Begin moves validating -> submitting, disables the control and swaps
// its text for busyLabel. The previous label is kept for Resolve.
func (s *Session) Begin(busyLabel string) (*models.UploadAttempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return nil, ErrBusy
	}
	if s.document == nil {
		return nil, ErrNoDocument
	}
	if err := s.transition(models.PhaseSubmitting); err != nil {
		return nil, err
	}

	s.busy = true
	s.saved = s.label
	if busyLabel != "" {
		s.label = busyLabel
	}
	s.attempt = models.NewUploadAttempt(uuid.New().String(), s.document.Clone(), s.template.Clone())
	a := *s.attempt
	return &a, nil
}

// SetBusyLabel replaces the busy text while a submission is in flight.
func (s *Session) SetBusyLabel(label string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		s.label = label
	}
}

// Resolve ends the in-flight attempt. A nil err marks success, which is
// terminal. Otherwise the control gets its exact prior label back, is
// re-enabled, and the phase returns to idle.
func (s *Session) Resolve(err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.busy || s.attempt == nil {
		return fmt.Errorf("%w: no submission in flight", ErrInvalidTransition)
	}

	now := time.Now()
	s.attempt.CompletedAt = &now
	s.busy = false

	if err == nil {
		s.attempt.Status = models.AttemptSucceeded
		return s.transition(models.PhaseSucceeded)
	}

	s.attempt.Status = models.AttemptFailed
	s.attempt.Error = err.Error()
	s.label = s.saved
	s.saved = ""
	if terr := s.transition(models.PhaseFailed); terr != nil {
		return terr
	}
	return s.transition(models.PhaseIdle)
}

// transition must be called with mu held.
func (s *Session) transition(next models.Phase) error {
	if !s.phase.CanTransition(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s.phase, next)
	}
	s.phase = next
	return nil
}
