package notify

import "sync"

// Banner is a dismissible warning that is shown at most once at a time.
type Banner struct {
	mu       sync.Mutex
	notifier Notifier
	visible  bool
	message  string
}

// NewBanner creates a hidden banner that reports through n.
func NewBanner(n Notifier) *Banner {
	return &Banner{notifier: n}
}

// Show displays message unless a banner is already visible.
// It returns false when the call was suppressed.
func (b *Banner) Show(message string) bool {
	b.mu.Lock()
	if b.visible {
		b.mu.Unlock()
		return false
	}
	b.visible = true
	b.message = message
	b.mu.Unlock()

	b.notifier.Notify(LevelWarning, message)
	return true
}

// Dismiss hides the banner so the next Show is delivered.
func (b *Banner) Dismiss() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.visible = false
	b.message = ""
}

// Visible reports whether the banner is showing, and its text.
func (b *Banner) Visible() (bool, string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.visible, b.message
}
