package toolbar

import (
	"encoding/json"
	"sync"

	"github.com/tidwall/gjson"

	"github.com/dshills/notebar/internal/i18n"
	"github.com/dshills/notebar/internal/settings"
	"github.com/dshills/notebar/internal/toolbar/widget"
)

// ResolvedItem pairs an item name with its constructed UI handle.
type ResolvedItem struct {
	// Name is the item spec name.
	Name string

	// Widget is the constructed UI handle.
	Widget widget.Widget
}

// ItemFactory derives the ordered toolbar item list for one factory
// name from the settings registry, re-deriving it whenever a
// contributing plugin loads or refreshes.
type ItemFactory struct {
	mu sync.RWMutex

	registry    *WidgetRegistry
	settings    *settings.Registry
	factoryName string
	pluginID    string
	bundle      *i18n.Bundle

	// Per-plugin contributions in load-completion order.
	contribs map[string][]ItemSpec
	order    []string

	// Current merged list, replaced wholesale on each recompute.
	current []ItemSpec

	sub *settings.Subscription
}

// NewItemFactory creates an item factory for a toolbar factory name.
//
// It returns immediately: plugins that have already loaded seed the
// merged list, a subscription picks up later loads, and a load of
// pluginID is kicked off in the background so the primary plugin's
// contributions arrive without the caller waiting on settings.
func NewItemFactory(reg *WidgetRegistry, st *settings.Registry, factoryName, pluginID string, tr i18n.Translator) *ItemFactory {
	if tr == nil {
		tr = i18n.Null()
	}
	f := &ItemFactory{
		registry:    reg,
		settings:    st,
		factoryName: factoryName,
		pluginID:    pluginID,
		bundle:      tr.Load("notebar"),
		contribs:    make(map[string][]ItemSpec),
	}

	for _, p := range st.Plugins() {
		f.absorb(p)
	}
	f.recompute()

	f.sub = st.OnPluginChanged(func(change settings.Change) {
		if f.absorb(change.Plugin) {
			f.recompute()
		}
	})

	// The named plugin may not have loaded yet; request it. A failed
	// load leaves the merge as-is until a later load succeeds.
	st.LoadAsync(pluginID)

	return f
}

// CreateToolbarFactory returns the toolbar-producing function for a
// factory name. Each invocation resolves the current merged item list
// for the given host; callers re-invoke for a fresh snapshot after
// settings change.
func CreateToolbarFactory(reg *WidgetRegistry, st *settings.Registry, factoryName, pluginID string, tr i18n.Translator) func(Host) []ResolvedItem {
	return NewItemFactory(reg, st, factoryName, pluginID, tr).Items
}

// Items resolves the current merged list into widgets for a host.
// Disabled items are dropped; spacers and separators become passive
// placeholders without touching the registry.
func (f *ItemFactory) Items(host Host) []ResolvedItem {
	f.mu.RLock()
	specs := f.current
	f.mu.RUnlock()

	result := make([]ResolvedItem, 0, len(specs))
	for _, spec := range specs {
		if spec.Disabled {
			continue
		}

		var w widget.Widget
		switch spec.Type {
		case ItemTypeSpacer:
			w = widget.NewSpacer()
		case ItemTypeSeparator:
			w = widget.NewSeparator()
		default:
			w = f.registry.CreateWidget(f.factoryName, host, spec)
		}
		if w == nil {
			continue
		}
		if w.Tooltip() == "" && !spec.Structural() {
			w.SetTooltip(f.bundle.Gettext(spec.Name))
		}
		result = append(result, ResolvedItem{Name: spec.Name, Widget: w})
	}
	return result
}

// Specs returns the current merged item list.
func (f *ItemFactory) Specs() []ItemSpec {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]ItemSpec, len(f.current))
	copy(out, f.current)
	return out
}

// Dispose stops tracking settings changes.
func (f *ItemFactory) Dispose() {
	if f.sub != nil {
		f.sub.Unsubscribe()
	}
}

// absorb records a plugin's contribution for the factory name. It
// returns true when the plugin contributes (or previously contributed)
// items, meaning a recompute is warranted.
func (f *ItemFactory) absorb(p *settings.Plugin) bool {
	if p == nil {
		return false
	}

	items, ok := f.contribution(p)

	f.mu.Lock()
	defer f.mu.Unlock()

	_, known := f.contribs[p.ID]
	if !ok && !known {
		return false
	}

	if !known {
		f.order = append(f.order, p.ID)
	}
	f.contribs[p.ID] = items
	return true
}

// contribution extracts and decodes a plugin's item specs for the
// factory name. For the factory's own plugin, user toolbar overrides
// composed under the array-merge transform are applied over the schema
// contribution.
func (f *ItemFactory) contribution(p *settings.Plugin) ([]ItemSpec, bool) {
	raw, ok := p.ToolbarContribution(f.factoryName)
	if !ok {
		return nil, false
	}

	items := decodeItems(raw)

	if p.ID == f.pluginID && p.Transformed() {
		if user := p.Get("toolbar"); user.IsArray() {
			items = MergeItems(items, decodeItems([]byte(user.Raw)))
		}
	}
	return items, true
}

// recompute rebuilds the merged list from all contributions.
func (f *ItemFactory) recompute() {
	f.mu.Lock()
	defer f.mu.Unlock()

	contribs := make([]Contribution, 0, len(f.order))
	for _, id := range f.order {
		contribs = append(contribs, Contribution{PluginID: id, Items: f.contribs[id]})
	}
	f.current = MergeContributions(contribs)
}

// decodeItems unmarshals a JSON item spec array, tolerating malformed
// entries by dropping them.
func decodeItems(raw []byte) []ItemSpec {
	var items []ItemSpec
	if err := json.Unmarshal(raw, &items); err == nil {
		return items
	}

	// Fall back to per-element decoding so one bad entry does not
	// discard the plugin's whole contribution.
	var out []ItemSpec
	gjson.ParseBytes(raw).ForEach(func(_, el gjson.Result) bool {
		var item ItemSpec
		if json.Unmarshal([]byte(el.Raw), &item) == nil && item.Name != "" {
			out = append(out, item)
		}
		return true
	})
	return out
}
