// Package toolbar builds notebook toolbars from declarative item specs
// contributed by settings plugins.
//
// Three pieces cooperate:
//
//   - WidgetRegistry maps (factory name, item name) pairs to widget
//     constructors, with a required process-wide default fallback.
//   - MergeContributions folds per-plugin item lists into one ordered,
//     rank-sorted, name-deduplicated list. It is a pure function so the
//     merge rules are testable without a live settings source.
//   - ItemFactory ties the two to a settings registry: it tracks every
//     plugin contributing items under a factory name and re-derives the
//     merged list whenever a contributing plugin loads or refreshes.
//
// The package also provides the kernel-bound controls (interrupt,
// restart, kernel name, kernel status) that notebook toolbars place
// next to the contributed items.
package toolbar
