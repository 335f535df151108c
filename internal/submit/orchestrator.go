// Package submit validates the staged form and drives one upload attempt
// from start to a success or retry-ready failure.
package submit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/doctoppt/client/internal/events"
	"github.com/doctoppt/client/internal/models"
	"github.com/doctoppt/client/internal/notify"
	"github.com/doctoppt/client/internal/session"
	"github.com/doctoppt/client/internal/upload"
	"github.com/doctoppt/client/internal/validation"
)

var (
	// ErrRejected means form validation failed and nothing was sent.
	ErrRejected = errors.New("form validation failed")
	// ErrInFlight means another submission has not resolved yet.
	ErrInFlight = errors.New("a submission is already in flight")
)

// Notification texts.
const (
	DefaultBusyLabel = "Sending file..."
	UploadingMessage = "Uploading file..."
)

// Uploader sends a form payload to the conversion server.
type Uploader interface {
	Upload(ctx context.Context, p models.FormPayload) (*models.Outcome, error)
}

// Orchestrator runs submissions against a session. It only reads the
// staged files; the intake controller owns them.
type Orchestrator struct {
	session   *session.Session
	uploader  Uploader
	bus       *events.Bus
	notifier  notify.Notifier
	busyLabel string
	logger    *slog.Logger
}

// NewOrchestrator creates an Orchestrator. An empty busyLabel uses DefaultBusyLabel.
func NewOrchestrator(s *session.Session, up Uploader, bus *events.Bus, n notify.Notifier, busyLabel string, logger *slog.Logger) *Orchestrator {
	if busyLabel == "" {
		busyLabel = DefaultBusyLabel
	}
	return &Orchestrator{
		session:   s,
		uploader:  up,
		bus:       bus,
		notifier:  n,
		busyLabel: busyLabel,
		logger:    logger.With("component", "submit"),
	}
}

// ValidateForm checks the document and the optional template, showing one
// notification for the first failure found.
func (o *Orchestrator) ValidateForm(p models.FormPayload) bool {
	checks := []func() validation.Result{
		func() validation.Result { return validation.CheckDocument(p.Document) },
		func() validation.Result { return validation.CheckTemplate(p.Template) },
	}
	for _, check := range checks {
		if res := check(); !res.Valid {
			o.logger.Info("form rejected", "reason", res.Reason)
			o.notifier.Notify(notify.LevelError, res.Message)
			return false
		}
	}
	return true
}

// Submit validates the session's form and uploads it. A validation failure
// returns ErrRejected without any network call. Once sent, the request is
// not cancelled by ctx and has no deadline.
func (o *Orchestrator) Submit(ctx context.Context) (*models.Outcome, error) {
	if err := o.session.BeginValidation(); err != nil {
		if errors.Is(err, session.ErrBusy) {
			return nil, ErrInFlight
		}
		return nil, err
	}

	if !o.ValidateForm(o.session.Payload()) {
		if err := o.session.Reject(); err != nil {
			o.logger.Error("reject form", "error", err)
		}
		return nil, ErrRejected
	}

	attempt, err := o.session.Begin(o.busyLabel)
	if err != nil {
		// The document went away between validation and start.
		if rerr := o.session.Reject(); rerr != nil {
			o.logger.Error("reject form", "error", rerr)
		}
		if errors.Is(err, session.ErrBusy) {
			return nil, ErrInFlight
		}
		return nil, err
	}

	o.logger.Info("submission started", "attempt", attempt.ID, "document", attempt.Document.Name)
	o.notifier.Notify(notify.LevelInfo, UploadingMessage)
	o.bus.Emit(events.Event{Type: events.SubmissionStarted, AttemptID: attempt.ID, File: attempt.Document})

	out, err := o.uploader.Upload(context.WithoutCancel(ctx), models.FormPayload{
		Document: attempt.Document,
		Template: attempt.Template,
	})
	if err != nil {
		return nil, o.fail(attempt, err)
	}

	out.AttemptID = attempt.ID
	if rerr := o.session.Resolve(nil); rerr != nil {
		o.logger.Error("resolve attempt", "attempt", attempt.ID, "error", rerr)
	}
	o.logger.Info("submission succeeded", "attempt", attempt.ID, "kind", out.Kind, "location", out.Location)
	o.notifier.Notify(notify.LevelSuccess, fmt.Sprintf("File %s uploaded successfully!", attempt.Document.Name))
	o.bus.Emit(events.Event{Type: events.SubmissionResolved, AttemptID: attempt.ID, Outcome: out})
	return out, nil
}

func (o *Orchestrator) fail(attempt *models.UploadAttempt, err error) error {
	o.logger.Warn("submission failed", "attempt", attempt.ID, "error", err)
	if rerr := o.session.Resolve(err); rerr != nil {
		o.logger.Error("resolve attempt", "attempt", attempt.ID, "error", rerr)
	}
	o.notifier.Notify(notify.LevelError, upload.UserMessage(err))
	o.bus.Emit(events.Event{Type: events.SubmissionResolved, AttemptID: attempt.ID, Err: err})
	return fmt.Errorf("submit attempt %s: %w", attempt.ID, err)
}
