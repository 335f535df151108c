// Package intake owns the staged document and everything the drop zone shows.
package intake

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/doctoppt/client/internal/events"
	"github.com/doctoppt/client/internal/format"
	"github.com/doctoppt/client/internal/models"
	"github.com/doctoppt/client/internal/notify"
	"github.com/doctoppt/client/internal/session"
	"github.com/doctoppt/client/internal/validation"
)

// UploadStatusText is shown in the preview while a submission is in flight.
const UploadStatusText = "Sending file for processing..."

// Chooser opens the native file picker.
type Chooser interface {
	Open()
}

// ChooserFunc adapts a function to Chooser.
type ChooserFunc func()

// Open calls f.
func (f ChooserFunc) Open() { f() }

// DragKind names a drag-and-drop event.
type DragKind string

const (
	DragEnter DragKind = "dragenter"
	DragOver  DragKind = "dragover"
	DragLeave DragKind = "dragleave"
	Drop      DragKind = "drop"
)

// DragEvent is a drag-and-drop event anywhere on the page.
type DragEvent struct {
	Kind   DragKind
	InZone bool
	Files  []*models.SelectedFile
}

// ClickTarget describes the element a click on the drop zone started from.
type ClickTarget struct {
	Tag     string // element tag name, e.g. "DIV", "LABEL", "BUTTON"
	InLabel bool   // the element sits inside a <label>
}

// Controller funnels the picker, drag-and-drop and paste channels into a
// single validate-then-stage path.
type Controller struct {
	mu       sync.Mutex
	view     View
	session  *session.Session
	bus      *events.Bus
	notifier notify.Notifier
	chooser  Chooser
	logger   *slog.Logger
}

// NewController creates a Controller over s. chooser may be nil.
func NewController(s *session.Session, bus *events.Bus, n notify.Notifier, chooser Chooser, logger *slog.Logger) *Controller {
	c := &Controller{
		view:     initialView(),
		session:  s,
		bus:      bus,
		notifier: n,
		chooser:  chooser,
		logger:   logger.With("component", "intake"),
	}
	if bus != nil {
		bus.On(events.SubmissionStarted, func(events.Event) { c.setStatus(UploadStatusText) })
		bus.On(events.SubmissionResolved, func(e events.Event) {
			if e.Err != nil {
				c.setStatus("")
			}
		})
	}
	return c
}

// SelectCandidate validates f as the document and stages it on success.
// A rejected candidate leaves the staged file and the view untouched.
func (c *Controller) SelectCandidate(f *models.SelectedFile) validation.Result {
	res := validation.CheckDocument(f)
	if !res.Valid {
		c.logger.Info("candidate rejected", "reason", res.Reason, "message", res.Message)
		c.notifier.Notify(notify.LevelError, res.Message)
		c.bus.Emit(events.Event{Type: events.FileRejected, File: f.Clone(), Reason: string(res.Reason), Message: res.Message})
		return res
	}

	c.session.Stage(f)

	c.mu.Lock()
	c.view.Preview = Preview{
		Visible: true,
		Name:    f.Name,
		Size:    format.FormatSize(f.Size),
		Icon:    format.IconClass(f.Extension()),
	}
	c.view.DropZoneVisible = false
	c.view.InputValue = inputValue(f)
	c.mu.Unlock()

	c.logger.Info("file staged", "name", f.Name, "size", f.Size, "mime", f.MimeType)
	c.bus.Emit(events.Event{Type: events.FileChosen, File: f.Clone()})
	return res
}

// Choose handles a file picker change. A nil file (picker cancelled) is ignored.
func (c *Controller) Choose(f *models.SelectedFile) validation.Result {
	if f == nil {
		return validation.Result{Reason: validation.ReasonMissingFile}
	}
	return c.SelectCandidate(f)
}

// Paste handles files pasted from the clipboard. Only the first is used.
func (c *Controller) Paste(files []*models.SelectedFile) validation.Result {
	if len(files) == 0 {
		return validation.Result{Reason: validation.ReasonMissingFile}
	}
	return c.SelectCandidate(files[0])
}

// HandleDrag processes a drag event and always reports the default
// action as prevented, so a drop anywhere never opens the file.
func (c *Controller) HandleDrag(ev DragEvent) bool {
	c.mu.Lock()
	c.view.DragActive = ev.InZone && (ev.Kind == DragEnter || ev.Kind == DragOver)
	c.mu.Unlock()

	if ev.Kind == Drop && ev.InZone && len(ev.Files) > 0 {
		c.SelectCandidate(ev.Files[0])
	}
	return true
}

// HandleClick opens the chooser for a click on the drop zone. Labels and
// buttons already open it natively, so clicks from them are ignored, as
// are clicks while a submission is in flight.
func (c *Controller) HandleClick(target ClickTarget) bool {
	if c.session.Control().Busy {
		return false
	}
	if target.InLabel || strings.EqualFold(target.Tag, "label") || strings.EqualFold(target.Tag, "button") {
		return false
	}
	if c.chooser == nil {
		return false
	}
	c.chooser.Open()
	return true
}

// RemoveSelected clears the staged document and restores the empty drop
// zone. Calling it with nothing staged changes nothing.
func (c *Controller) RemoveSelected() {
	had := c.session.ClearDocument()

	c.mu.Lock()
	template := c.view.TemplateName
	c.view = initialView()
	c.view.TemplateName = template
	c.mu.Unlock()

	if had {
		c.logger.Info("file removed")
		c.bus.Emit(events.Event{Type: events.FileRemoved})
	}
}

// SelectTemplate validates f as the optional template and stages it.
func (c *Controller) SelectTemplate(f *models.SelectedFile) validation.Result {
	if f == nil {
		return validation.OK()
	}
	res := validation.CheckTemplate(f)
	if !res.Valid {
		c.notifier.Notify(notify.LevelError, res.Message)
		c.bus.Emit(events.Event{Type: events.FileRejected, File: f.Clone(), Reason: string(res.Reason), Message: res.Message})
		return res
	}

	c.session.StageTemplate(f)
	c.mu.Lock()
	c.view.TemplateName = f.Name
	c.mu.Unlock()
	c.bus.Emit(events.Event{Type: events.TemplateChosen, File: f.Clone()})
	return res
}

// RemoveTemplate clears the staged template.
func (c *Controller) RemoveTemplate() {
	c.session.ClearTemplate()
	c.mu.Lock()
	c.view.TemplateName = ""
	c.mu.Unlock()
}

// View returns a snapshot of the intake area.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

func (c *Controller) setStatus(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.view.Preview.Visible {
		c.view.Preview.Status = text
	}
}

func inputValue(f *models.SelectedFile) string {
	if f.Path != "" {
		return f.Path
	}
	return f.Name
}
