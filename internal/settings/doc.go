// Package settings implements the settings plugin registry consumed by
// the toolbar subsystem.
//
// A settings plugin is identified by a string id and carries a JSON
// schema plus user-provided overrides. Plugins are fetched through a
// Connector and loaded through a single serial queue so that load
// completions are observed in the order the loads were issued. Loaded
// plugins are announced to observers, which is how toolbar factories
// learn about new contributions.
//
// The schema key "jupyter.lab.toolbars" maps toolbar factory names to
// arrays of declarative item specs. A plugin whose schema declares
// "jupyter.lab.transform": true opts into array-merge semantics when
// user data is composed over schema defaults: arrays are merged
// element-wise by item name instead of being overwritten wholesale.
package settings
