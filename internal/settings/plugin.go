package settings

import (
	"strings"

	"github.com/tidwall/gjson"
)

// Schema keys recognized by the toolbar subsystem.
const (
	// ToolbarsKey maps toolbar factory names to item spec arrays.
	ToolbarsKey = "jupyter.lab.toolbars"

	// TransformKey opts a plugin into array-merge transform semantics.
	TransformKey = "jupyter.lab.transform"
)

// Plugin is one loaded settings plugin.
type Plugin struct {
	// ID is the unique plugin identifier (e.g. "notebar:notebook").
	ID string

	// Version is the plugin's declared version.
	Version string

	// Schema is the plugin's raw JSON schema.
	Schema []byte

	// Data is the composite settings object: schema defaults with user
	// overrides applied (see composeData).
	Data []byte

	// Raw is the user settings text as fetched, before composition.
	Raw string
}

// ToolbarContribution returns the raw JSON array this plugin's schema
// contributes under ToolbarsKey for the given factory name. The second
// return is false when the schema has no such entry; a missing or
// malformed key is not an error, it simply contributes nothing.
func (p *Plugin) ToolbarContribution(factoryName string) ([]byte, bool) {
	if p == nil || len(p.Schema) == 0 {
		return nil, false
	}
	res := gjson.GetBytes(p.Schema, escapeKey(ToolbarsKey)+"."+escapeKey(factoryName))
	if !res.IsArray() {
		return nil, false
	}
	return []byte(res.Raw), true
}

// Transformed reports whether the plugin opted into array-merge
// transform semantics.
func (p *Plugin) Transformed() bool {
	if p == nil || len(p.Schema) == 0 {
		return false
	}
	return gjson.GetBytes(p.Schema, escapeKey(TransformKey)).Bool()
}

// Get returns a value from the composite settings data by key.
func (p *Plugin) Get(key string) gjson.Result {
	if p == nil || len(p.Data) == 0 {
		return gjson.Result{}
	}
	return gjson.GetBytes(p.Data, escapeKey(key))
}

// escapeKey escapes path metacharacters so a literal JSON key (which
// may itself contain dots, as "jupyter.lab.toolbars" does) addresses a
// single object member.
func escapeKey(key string) string {
	r := strings.NewReplacer(".", `\.`, "*", `\*`, "?", `\?`)
	return r.Replace(key)
}
