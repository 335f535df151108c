// Package notify delivers transient user-facing notifications.
package notify

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/gookit/color"
)

// Level is the severity of a notification.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notifier shows a transient message to the user.
type Notifier interface {
	Notify(level Level, message string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(level Level, message string)

// Notify calls f.
func (f NotifierFunc) Notify(level Level, message string) { f(level, message) }

var levelStyles = map[Level]color.Style{
	LevelInfo:    color.New(color.FgCyan),
	LevelSuccess: color.New(color.FgGreen),
	LevelWarning: color.New(color.FgYellow),
	LevelError:   color.New(color.FgRed, color.OpBold),
}

// Console writes one line per notification, optionally colourised.
type Console struct {
	mu      sync.Mutex
	w       io.Writer
	title   string
	colored bool
}

// NewConsole creates a Console notifier writing to w.
func NewConsole(w io.Writer, title string, colored bool) *Console {
	return &Console{w: w, title: title, colored: colored}
}

// Notify prints "[title] LEVEL message".
func (c *Console) Notify(level Level, message string) {
	tag := strings.ToUpper(string(level))
	if c.colored {
		if style, ok := levelStyles[level]; ok {
			tag = style.Sprint(tag)
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.w, "[%s] %s %s\n", c.title, tag, message)
}
