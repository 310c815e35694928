package toolbar

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dshills/notebar/internal/i18n"
	"github.com/dshills/notebar/internal/session"
	"github.com/dshills/notebar/internal/toolbar/widget"
)

// Glyphs for the kernel-bound toolbar controls.
const (
	IconInterrupt  = '⏹'
	IconRestart    = '⟳'
	IconBusy       = '●'
	IconIdle       = '○'
	IconStarting   = '◐'
	IconConnecting = '◌'
	IconDead       = '✖'
	IconUnknown    = '?'
)

var titleCaser = cases.Title(language.English)

// NewInterruptButton creates a button that interrupts the session's
// kernel. Clicking with no kernel connected is a no-op.
func NewInterruptButton(ctx session.Context, tr i18n.Translator) *widget.Button {
	bundle := loadBundle(tr)
	b := widget.NewButton("", IconInterrupt, func() {
		if k := ctx.Kernel(); k != nil {
			_ = k.Interrupt()
		}
	})
	b.SetTooltip(bundle.Gettext("Interrupt the kernel"))
	return b
}

// NewRestartButton creates a button that restarts the session's
// kernel. Clicking with no kernel connected is a no-op.
func NewRestartButton(ctx session.Context, tr i18n.Translator) *widget.Button {
	bundle := loadBundle(tr)
	b := widget.NewButton("", IconRestart, func() {
		if k := ctx.Kernel(); k != nil {
			_ = k.Restart()
		}
	})
	b.SetTooltip(bundle.Gettext("Restart the kernel"))
	return b
}

// NewKernelNameItem creates a label bound to the session's kernel
// display name. The label follows kernel replacement until disposed.
func NewKernelNameItem(ctx session.Context, tr i18n.Translator) *widget.Label {
	bundle := loadBundle(tr)

	label := widget.NewLabel(ctx.KernelDisplayName())
	label.SetTooltip(bundle.Gettext("Kernel name"))

	sub := ctx.OnKernelChanged(func() {
		label.SetText(ctx.KernelDisplayName())
	})
	label.OnDispose(sub.Unsubscribe)
	return label
}

// NewKernelStatusItem creates an icon-and-title indicator tracking the
// session's kernel status. Before a kernel exists it shows the
// connecting glyph and the title "Kernel Connecting"; afterwards the
// title always contains the current status token in lowercase.
func NewKernelStatusItem(ctx session.Context, tr i18n.Translator) *widget.Indicator {
	bundle := loadBundle(tr)

	status := ctx.Status()
	ind := widget.NewIndicator(statusIcon(status), statusTitle(bundle, status))

	sub := ctx.OnStatusChanged(func(s session.Status) {
		ind.Set(statusIcon(s), statusTitle(bundle, s))
	})
	ind.OnDispose(sub.Unsubscribe)
	return ind
}

// statusIcon maps a kernel status to its glyph.
func statusIcon(s session.Status) rune {
	switch s {
	case session.StatusBusy:
		return IconBusy
	case session.StatusIdle:
		return IconIdle
	case session.StatusStarting, session.StatusRestarting, session.StatusAutorestarting:
		return IconStarting
	case session.StatusConnecting:
		return IconConnecting
	case session.StatusDead, session.StatusTerminating:
		return IconDead
	default:
		return IconUnknown
	}
}

// statusTitle renders the indicator title for a status.
func statusTitle(bundle *i18n.Bundle, s session.Status) string {
	if s == session.StatusConnecting {
		return bundle.Gettext("Kernel Connecting")
	}
	return bundle.Gettext("Kernel") + " " + titleCaser.String(s.String())
}

func loadBundle(tr i18n.Translator) *i18n.Bundle {
	if tr == nil {
		tr = i18n.Null()
	}
	return tr.Load("notebar")
}
