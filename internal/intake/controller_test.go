package intake

import (
	"testing"

	"github.com/doctoppt/client/internal/events"
	"github.com/doctoppt/client/internal/logging"
	"github.com/doctoppt/client/internal/models"
	"github.com/doctoppt/client/internal/notify"
	"github.com/doctoppt/client/internal/session"
	"github.com/doctoppt/client/internal/testutil"
	"github.com/doctoppt/client/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mib = 1024 * 1024

type fixture struct {
	ctrl     *Controller
	sess     *session.Session
	bus      *events.Bus
	notifier *testutil.MockNotifier
	opened   int
	emitted  []events.Type
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		sess:     session.New("Generate"),
		notifier: testutil.NewMockNotifier(),
	}
	logger := logging.Discard()
	f.bus = events.NewBus(f.notifier, logger)
	for _, typ := range []events.Type{events.FileChosen, events.FileRejected, events.FileRemoved, events.TemplateChosen} {
		f.bus.On(typ, func(e events.Event) { f.emitted = append(f.emitted, e.Type) })
	}
	f.ctrl = NewController(f.sess, f.bus, f.notifier, ChooserFunc(func() { f.opened++ }), logger)
	return f
}

func TestController_ScenarioA_ValidPDF(t *testing.T) {
	f := newFixture(t)

	res := f.ctrl.SelectCandidate(testutil.Candidate("report.pdf", 2*mib))

	require.True(t, res.Valid)
	view := f.ctrl.View()
	assert.True(t, view.Preview.Visible)
	assert.Equal(t, "report.pdf", view.Preview.Name)
	assert.Equal(t, "2.00 MB", view.Preview.Size)
	assert.Equal(t, "bi-filetype-pdf file-pdf", view.Preview.Icon)
	assert.False(t, view.DropZoneVisible)
	assert.True(t, f.sess.Control().Enabled)
	assert.Equal(t, "report.pdf", f.sess.Document().Name)
	assert.Empty(t, f.notifier.Toasts())
	assert.Equal(t, []events.Type{events.FileChosen}, f.emitted)
}

func TestController_ScenarioB_UnsupportedType(t *testing.T) {
	f := newFixture(t)

	res := f.ctrl.SelectCandidate(testutil.Candidate("image.png", 1024))

	assert.False(t, res.Valid)
	assert.Equal(t, validation.ReasonUnsupportedType, res.Reason)
	assert.False(t, f.sess.Control().Enabled)
	assert.Nil(t, f.sess.Document())

	view := f.ctrl.View()
	assert.False(t, view.Preview.Visible)
	assert.True(t, view.DropZoneVisible)

	last, ok := f.notifier.Last()
	require.True(t, ok)
	assert.Equal(t, notify.LevelError, last.Level)
	assert.Contains(t, last.Message, "Unsupported file type: .png")
	assert.Equal(t, []events.Type{events.FileRejected}, f.emitted)
}

func TestController_ScenarioC_DroppedDocxTooLarge(t *testing.T) {
	f := newFixture(t)

	prevented := f.ctrl.HandleDrag(DragEvent{
		Kind:   Drop,
		InZone: true,
		Files:  []*models.SelectedFile{testutil.Candidate("doc.docx", 20*mib)},
	})

	assert.True(t, prevented)
	assert.Nil(t, f.sess.Document())
	assert.False(t, f.sess.Control().Enabled)
	last, ok := f.notifier.Last()
	require.True(t, ok)
	assert.Contains(t, last.Message, "Maximum: 16.00 MB")
}

func TestController_RejectionKeepsPreviousSelection(t *testing.T) {
	candidates := []*models.SelectedFile{
		testutil.Candidate("photo.jpeg", 100),
		testutil.Candidate("slides.pptx", 100),
		testutil.Candidate("archive.zip", 100),
		testutil.Candidate("huge.pdf", 17*mib),
		testutil.Candidate("empty.md", 0),
	}

	for _, candidate := range candidates {
		t.Run(candidate.Name, func(t *testing.T) {
			f := newFixture(t)
			require.True(t, f.ctrl.SelectCandidate(testutil.Candidate("first.txt", 10)).Valid)
			before := f.ctrl.View()

			res := f.ctrl.SelectCandidate(candidate)

			assert.False(t, res.Valid)
			assert.Equal(t, "first.txt", f.sess.Document().Name)
			assert.Equal(t, before, f.ctrl.View())
			assert.True(t, f.sess.Control().Enabled)
		})
	}
}

func TestController_EmptyFile(t *testing.T) {
	f := newFixture(t)
	res := f.ctrl.SelectCandidate(testutil.Candidate("notes.txt", 0))
	assert.Equal(t, validation.ReasonEmptyFile, res.Reason)
	assert.Equal(t, []string{"File is empty"}, f.notifier.Messages(notify.LevelError))
}

func TestController_NewSelectionReplacesOld(t *testing.T) {
	f := newFixture(t)
	f.ctrl.SelectCandidate(testutil.Candidate("a.pdf", 10))
	f.ctrl.Paste([]*models.SelectedFile{testutil.Candidate("b.md", 2048), testutil.Candidate("c.md", 1)})

	assert.Equal(t, "b.md", f.sess.Document().Name)
	assert.Equal(t, "b.md", f.ctrl.View().Preview.Name)
	assert.Equal(t, "2.00 KB", f.ctrl.View().Preview.Size)
	assert.Equal(t, "bi-markdown file-md", f.ctrl.View().Preview.Icon)
}

func TestController_RemoveSelectedIsIdempotent(t *testing.T) {
	f := newFixture(t)
	f.ctrl.SelectCandidate(testutil.Candidate("report.pdf", 2*mib))

	f.ctrl.RemoveSelected()
	once := f.ctrl.View()
	onceControl := f.sess.Control()

	f.ctrl.RemoveSelected()

	assert.Equal(t, once, f.ctrl.View())
	assert.Equal(t, onceControl, f.sess.Control())
	assert.True(t, once.DropZoneVisible)
	assert.False(t, once.Preview.Visible)
	assert.Empty(t, once.InputValue)
	assert.False(t, onceControl.Enabled)
	assert.Nil(t, f.sess.Document())
	assert.Equal(t, []events.Type{events.FileChosen, events.FileRemoved}, f.emitted)
}

func TestController_RemoveWithNothingStaged(t *testing.T) {
	f := newFixture(t)
	f.ctrl.RemoveSelected()
	assert.Equal(t, initialView(), f.ctrl.View())
	assert.Empty(t, f.emitted)
}

func TestController_HandleDrag(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name       string
		event      DragEvent
		wantActive bool
	}{
		{name: "enter zone", event: DragEvent{Kind: DragEnter, InZone: true}, wantActive: true},
		{name: "over zone", event: DragEvent{Kind: DragOver, InZone: true}, wantActive: true},
		{name: "over body", event: DragEvent{Kind: DragOver}, wantActive: false},
		{name: "enter again", event: DragEvent{Kind: DragEnter, InZone: true}, wantActive: true},
		{name: "leave zone", event: DragEvent{Kind: DragLeave, InZone: true}, wantActive: false},
		{name: "drop outside zone", event: DragEvent{Kind: Drop, Files: []*models.SelectedFile{testutil.Candidate("a.pdf", 1)}}, wantActive: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, f.ctrl.HandleDrag(tt.event), "default must always be prevented")
			assert.Equal(t, tt.wantActive, f.ctrl.View().DragActive)
		})
	}

	assert.Nil(t, f.sess.Document(), "drop outside the zone must not stage")
}

func TestController_DropInZoneStagesFirstFile(t *testing.T) {
	f := newFixture(t)
	f.ctrl.HandleDrag(DragEvent{Kind: DragOver, InZone: true})
	f.ctrl.HandleDrag(DragEvent{Kind: Drop, InZone: true, Files: []*models.SelectedFile{
		testutil.Candidate("one.txt", 5),
		testutil.Candidate("two.txt", 5),
	}})

	assert.Equal(t, "one.txt", f.sess.Document().Name)
	assert.False(t, f.ctrl.View().DragActive)
}

func TestController_HandleClick(t *testing.T) {
	tests := []struct {
		name       string
		target     ClickTarget
		wantOpened bool
	}{
		{name: "zone body", target: ClickTarget{Tag: "DIV"}, wantOpened: true},
		{name: "icon inside zone", target: ClickTarget{Tag: "I"}, wantOpened: true},
		{name: "label", target: ClickTarget{Tag: "LABEL"}, wantOpened: false},
		{name: "span inside label", target: ClickTarget{Tag: "SPAN", InLabel: true}, wantOpened: false},
		{name: "button", target: ClickTarget{Tag: "button"}, wantOpened: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			assert.Equal(t, tt.wantOpened, f.ctrl.HandleClick(tt.target))
			if tt.wantOpened {
				assert.Equal(t, 1, f.opened)
			} else {
				assert.Zero(t, f.opened)
			}
		})
	}
}

func TestController_HandleClickIgnoredWhileBusy(t *testing.T) {
	f := newFixture(t)
	f.ctrl.SelectCandidate(testutil.Candidate("a.pdf", 10))
	require.NoError(t, f.sess.BeginValidation())
	_, err := f.sess.Begin("Uploading...")
	require.NoError(t, err)

	assert.False(t, f.ctrl.HandleClick(ClickTarget{Tag: "DIV"}))
	assert.Zero(t, f.opened)
}

func TestController_ChooseAndPasteWithNothing(t *testing.T) {
	f := newFixture(t)
	assert.False(t, f.ctrl.Choose(nil).Valid)
	assert.False(t, f.ctrl.Paste(nil).Valid)
	assert.Empty(t, f.notifier.Toasts())
	assert.Empty(t, f.emitted)
}

func TestController_StatusLineFollowsSubmission(t *testing.T) {
	f := newFixture(t)
	f.ctrl.SelectCandidate(testutil.Candidate("a.pdf", 10))

	f.bus.Emit(events.Event{Type: events.SubmissionStarted})
	assert.Equal(t, UploadStatusText, f.ctrl.View().Preview.Status)

	f.bus.Emit(events.Event{Type: events.SubmissionResolved, Err: assert.AnError})
	assert.Empty(t, f.ctrl.View().Preview.Status)

	f.bus.Emit(events.Event{Type: events.SubmissionStarted})
	f.ctrl.RemoveSelected()
	assert.Empty(t, f.ctrl.View().Preview.Status)
}

func TestController_SelectTemplate(t *testing.T) {
	f := newFixture(t)

	res := f.ctrl.SelectTemplate(testutil.Candidate("theme.docx", 10))
	assert.Equal(t, validation.ReasonTemplateType, res.Reason)
	assert.Nil(t, f.sess.Template())

	res = f.ctrl.SelectTemplate(testutil.Candidate("theme.pptx", 10))
	require.True(t, res.Valid)
	assert.Equal(t, "theme.pptx", f.sess.Template().Name)
	assert.Equal(t, "theme.pptx", f.ctrl.View().TemplateName)
	assert.False(t, f.sess.Control().Enabled, "a template alone does not enable submit")

	f.ctrl.RemoveTemplate()
	assert.Nil(t, f.sess.Template())
	assert.Empty(t, f.ctrl.View().TemplateName)
}

func TestStat(t *testing.T) {
	staged := testutil.WriteFile(t, "report.pdf", []byte("%PDF-1.4\n%âãÏÓ\n1 0 obj\n<<>>\nendobj\n"))

	got, err := Stat(staged.Path)
	require.NoError(t, err)
	assert.Equal(t, "report.pdf", got.Name)
	assert.Equal(t, staged.Size, got.Size)
	assert.Equal(t, "application/pdf", got.MimeType)

	_, err = Stat(staged.Path + ".missing")
	assert.Error(t, err)

	_, err = Stat(t.TempDir())
	assert.Error(t, err)
}
