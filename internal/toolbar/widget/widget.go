// Package widget provides the UI handles produced by toolbar factories.
//
// Widgets are deliberately renderer-agnostic: they hold display state
// (text, icon, tooltip) and behavior (click handlers), while drawing is
// performed by a renderer that walks the resolved toolbar. Each widget
// carries a unique id and a dispose hook chain so that controls bound
// to external event sources can release their subscriptions.
package widget

import (
	"sync"

	"github.com/google/uuid"
)

// Kind identifies the structural role of a widget in a toolbar.
type Kind string

const (
	// KindButton is a clickable command button.
	KindButton Kind = "button"

	// KindLabel is a passive text label.
	KindLabel Kind = "label"

	// KindIndicator is an icon plus title status display.
	KindIndicator Kind = "indicator"

	// KindSpacer is flexible blank space.
	KindSpacer Kind = "spacer"

	// KindSeparator is a thin visual divider.
	KindSeparator Kind = "separator"
)

// Widget is an opaque UI handle held by a resolved toolbar item.
type Widget interface {
	// ID returns the widget's unique identifier.
	ID() string

	// Kind returns the widget's structural role.
	Kind() Kind

	// Text returns the widget's display text (may be empty).
	Text() string

	// Icon returns the widget's glyph (zero rune for none).
	Icon() rune

	// Tooltip returns the widget's hover text.
	Tooltip() string

	// SetTooltip replaces the hover text.
	SetTooltip(s string)

	// Disposed reports whether Dispose has been called.
	Disposed() bool

	// Dispose releases the widget and runs registered dispose hooks.
	Dispose()
}

// Base provides identity, tooltip, and disposal for concrete widgets.
type Base struct {
	mu       sync.Mutex
	id       string
	kind     Kind
	tooltip  string
	disposed bool
	hooks    []func()
}

// NewBase creates widget state for the given kind.
func NewBase(kind Kind) Base {
	return Base{id: uuid.NewString(), kind: kind}
}

// ID returns the widget's unique identifier.
func (b *Base) ID() string { return b.id }

// Kind returns the widget's structural role.
func (b *Base) Kind() Kind { return b.kind }

// Tooltip returns the widget's hover text.
func (b *Base) Tooltip() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.tooltip
}

// SetTooltip replaces the hover text.
func (b *Base) SetTooltip(s string) {
	b.mu.Lock()
	b.tooltip = s
	b.mu.Unlock()
}

// OnDispose registers a hook to run when the widget is disposed.
func (b *Base) OnDispose(fn func()) {
	b.mu.Lock()
	if b.disposed {
		b.mu.Unlock()
		fn()
		return
	}
	b.hooks = append(b.hooks, fn)
	b.mu.Unlock()
}

// Disposed reports whether Dispose has been called.
func (b *Base) Disposed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.disposed
}

// Dispose marks the widget disposed and runs hooks in registration
// order. Subsequent calls are no-ops.
func (b *Base) Dispose() {
	b.mu.Lock()
	if b.disposed {
		b.mu.Unlock()
		return
	}
	b.disposed = true
	hooks := b.hooks
	b.hooks = nil
	b.mu.Unlock()

	for _, fn := range hooks {
		fn()
	}
}
