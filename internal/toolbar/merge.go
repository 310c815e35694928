package toolbar

import "sort"

// Contribution is one settings plugin's item list for a toolbar
// factory name, in the order the plugin's load completed relative to
// other contributors.
type Contribution struct {
	// PluginID identifies the contributing plugin.
	PluginID string

	// Items are the plugin's declared item specs, in schema order.
	Items []ItemSpec
}

// MergeContributions folds contributions into the ordered toolbar item
// list:
//
//  1. Items concatenate in contribution order.
//  2. Duplicate names collapse to a single item; the last-loaded
//     contributor's spec wins, occupying the first contributor's slot
//     before sorting.
//  3. The result is stably sorted by rank ascending, so equal ranks
//     preserve contribution order.
//
// The inputs are not mutated.
func MergeContributions(contribs []Contribution) []ItemSpec {
	var merged []ItemSpec
	index := make(map[string]int)

	for _, c := range contribs {
		for _, item := range c.Items {
			if i, ok := index[item.Name]; ok {
				merged[i] = item
				continue
			}
			index[item.Name] = len(merged)
			merged = append(merged, item)
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].EffectiveRank() < merged[j].EffectiveRank()
	})
	return merged
}

// MergeItems merges a single new contribution over an existing list by
// item name (new entries win) and re-sorts by rank. It mirrors the
// array-merge transform applied to user toolbar overrides.
func MergeItems(existing, incoming []ItemSpec) []ItemSpec {
	return MergeContributions([]Contribution{
		{Items: existing},
		{Items: incoming},
	})
}
