package notify

import (
	"bytes"
	"errors"
	"sync"
	"testing"

	"github.com/doctoppt/client/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorded struct {
	level   Level
	message string
}

type recorder struct {
	mu    sync.Mutex
	items []recorded
}

func (r *recorder) Notify(level Level, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, recorded{level, message})
}

func (r *recorder) all() []recorded {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]recorded(nil), r.items...)
}

func TestConsole_Notify(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf, "DocToPPT", false)

	c.Notify(LevelError, "File is empty")
	c.Notify(LevelInfo, "Uploading file...")

	assert.Equal(t, "[DocToPPT] ERROR File is empty\n[DocToPPT] INFO Uploading file...\n", buf.String())
}

func TestBanner_DeduplicatesWhileVisible(t *testing.T) {
	rec := &recorder{}
	b := NewBanner(rec)

	assert.True(t, b.Show("unstable"))
	assert.False(t, b.Show("unstable"))
	assert.False(t, b.Show("something else"))

	visible, msg := b.Visible()
	assert.True(t, visible)
	assert.Equal(t, "unstable", msg)
	assert.Len(t, rec.all(), 1)

	b.Dismiss()
	visible, _ = b.Visible()
	assert.False(t, visible)

	assert.True(t, b.Show("unstable again"))
	items := rec.all()
	require.Len(t, items, 2)
	assert.Equal(t, LevelWarning, items[1].level)
}

func TestGuard(t *testing.T) {
	rec := &recorder{}
	logger := logging.Discard()

	assert.False(t, Guard(rec, logger, func() {}))
	assert.Empty(t, rec.all())

	assert.True(t, Guard(rec, logger, func() { panic("boom") }))
	items := rec.all()
	require.Len(t, items, 1)
	assert.Equal(t, recorded{LevelError, UnexpectedErrorMessage}, items[0])
}

func TestGo(t *testing.T) {
	logger := logging.Discard()

	t.Run("success is silent", func(t *testing.T) {
		rec := &recorder{}
		err := <-Go(rec, logger, func() error { return nil })
		assert.NoError(t, err)
		assert.Empty(t, rec.all())
	})

	t.Run("error is surfaced", func(t *testing.T) {
		rec := &recorder{}
		want := errors.New("connection refused")
		err := <-Go(rec, logger, func() error { return want })
		assert.ErrorIs(t, err, want)
		assert.Equal(t, []recorded{{LevelError, AsyncErrorMessage}}, rec.all())
	})

	t.Run("panic is surfaced", func(t *testing.T) {
		rec := &recorder{}
		err := <-Go(rec, logger, func() error { panic("nil map") })
		assert.ErrorContains(t, err, "nil map")
		assert.Len(t, rec.all(), 1)
	})
}
