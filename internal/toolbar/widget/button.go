package widget

import "sync"

// Button is a clickable toolbar command button.
type Button struct {
	Base

	mu      sync.Mutex
	label   string
	icon    rune
	onClick func()
}

// NewButton creates a button with a label, glyph, and click handler.
// Any of them may be zero.
func NewButton(label string, icon rune, onClick func()) *Button {
	return &Button{
		Base:    NewBase(KindButton),
		label:   label,
		icon:    icon,
		onClick: onClick,
	}
}

// Text returns the button label.
func (b *Button) Text() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.label
}

// SetText replaces the button label.
func (b *Button) SetText(s string) {
	b.mu.Lock()
	b.label = s
	b.mu.Unlock()
}

// Icon returns the button glyph.
func (b *Button) Icon() rune {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.icon
}

// Click invokes the click handler. Clicking a disposed button is a
// no-op.
func (b *Button) Click() {
	if b.Disposed() {
		return
	}
	b.mu.Lock()
	fn := b.onClick
	b.mu.Unlock()
	if fn != nil {
		fn()
	}
}
