package widget

import "sync"

// Indicator is an icon plus title status display, used for the kernel
// status toolbar item.
type Indicator struct {
	Base

	mu    sync.Mutex
	icon  rune
	title string
}

// NewIndicator creates an indicator with an initial glyph and title.
func NewIndicator(icon rune, title string) *Indicator {
	return &Indicator{Base: NewBase(KindIndicator), icon: icon, title: title}
}

// Text returns the indicator title.
func (i *Indicator) Text() string {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.title
}

// Icon returns the indicator glyph.
func (i *Indicator) Icon() rune {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.icon
}

// Set atomically updates the glyph and title.
func (i *Indicator) Set(icon rune, title string) {
	i.mu.Lock()
	i.icon = icon
	i.title = title
	i.mu.Unlock()
}
