package toolbar

// ItemType categorizes toolbar item specs.
type ItemType string

const (
	// ItemTypeCommand is a button bound to a command id. The zero
	// value of Type is treated as a command item.
	ItemTypeCommand ItemType = "command"

	// ItemTypeSpacer is flexible blank space; no constructor is
	// invoked for it.
	ItemTypeSpacer ItemType = "spacer"

	// ItemTypeSeparator is a visual divider; no constructor is
	// invoked for it.
	ItemTypeSeparator ItemType = "separator"
)

// DefaultRank is the sort key assigned to items that do not declare
// one. Ties preserve contribution order.
const DefaultRank = 50

// ItemSpec is the declarative description of one toolbar entry, as
// contributed by settings plugins.
type ItemSpec struct {
	// Name uniquely identifies the item within a resolved toolbar.
	Name string `json:"name"`

	// Command is the command id a button item triggers.
	Command string `json:"command,omitempty"`

	// Type is the item kind; empty means command.
	Type ItemType `json:"type,omitempty"`

	// Rank is the left-to-right sort key. Nil means DefaultRank.
	Rank *float64 `json:"rank,omitempty"`

	// Args carries extra arguments for the command.
	Args map[string]any `json:"args,omitempty"`

	// Disabled removes the item from resolved toolbars entirely.
	Disabled bool `json:"disabled,omitempty"`
}

// EffectiveRank returns the item's sort key.
func (s ItemSpec) EffectiveRank() float64 {
	if s.Rank == nil {
		return DefaultRank
	}
	return *s.Rank
}

// Structural reports whether the item is a spacer or separator.
func (s ItemSpec) Structural() bool {
	return s.Type == ItemTypeSpacer || s.Type == ItemTypeSeparator
}

// Rank creates a pointer to a float64 for use as an ItemSpec rank.
func Rank(v float64) *float64 {
	return &v
}
