package widget

// Spacer is flexible blank space between toolbar items.
type Spacer struct {
	Base
}

// NewSpacer creates a spacer.
func NewSpacer() *Spacer {
	return &Spacer{Base: NewBase(KindSpacer)}
}

// Text returns the empty string.
func (s *Spacer) Text() string { return "" }

// Icon returns zero.
func (s *Spacer) Icon() rune { return 0 }

// Separator is a thin visual divider between toolbar items.
type Separator struct {
	Base
}

// NewSeparator creates a separator.
func NewSeparator() *Separator {
	return &Separator{Base: NewBase(KindSeparator)}
}

// Text returns the empty string.
func (s *Separator) Text() string { return "" }

// Icon returns the divider glyph.
func (s *Separator) Icon() rune { return '│' }
