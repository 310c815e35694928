package widget

import "sync"

// Label is a passive toolbar text item.
type Label struct {
	Base

	mu   sync.Mutex
	text string
}

// NewLabel creates a label with initial text.
func NewLabel(text string) *Label {
	return &Label{Base: NewBase(KindLabel), text: text}
}

// Text returns the label text.
func (l *Label) Text() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.text
}

// SetText replaces the label text.
func (l *Label) SetText(s string) {
	l.mu.Lock()
	l.text = s
	l.mu.Unlock()
}

// Icon returns zero; labels have no glyph.
func (l *Label) Icon() rune { return 0 }
