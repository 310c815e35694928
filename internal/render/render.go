// Package render draws resolved toolbars onto a tcell screen.
//
// Drawing is one row high. Spacers absorb leftover width evenly;
// everything else is laid out left to right. Draw returns the hit
// regions of the items it placed so callers can route mouse clicks
// back to widgets.
package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/notebar/internal/toolbar"
	"github.com/dshills/notebar/internal/toolbar/widget"
)

// Theme holds the styles used for toolbar drawing.
type Theme struct {
	Base      tcell.Style
	Button    tcell.Style
	Label     tcell.Style
	Indicator tcell.Style
	Separator tcell.Style
}

// DefaultTheme returns the standard dark toolbar styles.
func DefaultTheme() Theme {
	base := tcell.StyleDefault.Background(tcell.ColorDarkSlateGray).Foreground(tcell.ColorWhite)
	return Theme{
		Base:      base,
		Button:    base.Bold(true),
		Label:     base,
		Indicator: base.Foreground(tcell.ColorLightGreen),
		Separator: base.Foreground(tcell.ColorGray),
	}
}

// Region is the horizontal extent one item occupies after drawing.
type Region struct {
	// Item is the resolved item drawn in this region.
	Item toolbar.ResolvedItem

	// X0 and X1 are the inclusive start and exclusive end columns.
	X0, X1 int
}

// Contains reports whether a column falls inside the region.
func (r Region) Contains(x int) bool {
	return x >= r.X0 && x < r.X1
}

// Toolbar draws resolved toolbar items onto a screen row.
type Toolbar struct {
	theme Theme
}

// NewToolbar creates a renderer with the given theme.
func NewToolbar(theme Theme) *Toolbar {
	return &Toolbar{theme: theme}
}

// Draw renders items across row y and returns their hit regions.
func (t *Toolbar) Draw(s tcell.Screen, y int, items []toolbar.ResolvedItem) []Region {
	width, _ := s.Size()

	// Clear the row.
	for x := 0; x < width; x++ {
		s.SetContent(x, y, ' ', nil, t.theme.Base)
	}

	fixed := 0
	spacers := 0
	for _, item := range items {
		if item.Widget.Kind() == widget.KindSpacer {
			spacers++
			continue
		}
		fixed += cellWidth(item.Widget)
	}

	gap := 0
	if spacers > 0 && width > fixed {
		gap = (width - fixed) / spacers
	}

	regions := make([]Region, 0, len(items))
	x := 0
	for _, item := range items {
		if x >= width {
			break
		}

		w := item.Widget
		start := x
		switch w.Kind() {
		case widget.KindSpacer:
			x += gap
		case widget.KindSeparator:
			s.SetContent(x, y, w.Icon(), nil, t.theme.Separator)
			x += cellWidth(w)
		default:
			x = t.drawItem(s, x, y, w)
		}
		regions = append(regions, Region{Item: item, X0: start, X1: x})
	}
	return regions
}

// drawItem renders an icon-and-text item and returns the next column.
func (t *Toolbar) drawItem(s tcell.Screen, x, y int, w widget.Widget) int {
	style := t.styleFor(w.Kind())

	s.SetContent(x, y, ' ', nil, style)
	x++
	if icon := w.Icon(); icon != 0 {
		s.SetContent(x, y, icon, nil, style)
		x++
	}
	if text := w.Text(); text != "" {
		if w.Icon() != 0 {
			s.SetContent(x, y, ' ', nil, style)
			x++
		}
		for _, r := range text {
			s.SetContent(x, y, r, nil, style)
			x++
		}
	}
	s.SetContent(x, y, ' ', nil, style)
	return x + 1
}

// cellWidth is the number of columns an item occupies when drawn.
func cellWidth(w widget.Widget) int {
	switch w.Kind() {
	case widget.KindSpacer:
		return 0
	case widget.KindSeparator:
		return 1
	}

	// Leading and trailing pad.
	n := 2
	if w.Icon() != 0 {
		n++
	}
	if text := w.Text(); text != "" {
		if w.Icon() != 0 {
			n++
		}
		n += len([]rune(text))
	}
	return n
}

func (t *Toolbar) styleFor(kind widget.Kind) tcell.Style {
	switch kind {
	case widget.KindButton:
		return t.theme.Button
	case widget.KindIndicator:
		return t.theme.Indicator
	case widget.KindSeparator:
		return t.theme.Separator
	default:
		return t.theme.Label
	}
}

// HitTest returns the widget under column x, or nil.
func HitTest(regions []Region, x int) widget.Widget {
	for _, r := range regions {
		if r.Contains(x) {
			return r.Item.Widget
		}
	}
	return nil
}
