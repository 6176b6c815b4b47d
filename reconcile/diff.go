// Package reconcile keeps the catalog in sync with the remote document
// store: it computes the set difference between a remote listing and the
// catalog, removes vanished entries, and classifies newly-appeared ones,
// persisting after every unit of work so a crash loses at most one item.
package reconcile

import (
	"sort"

	"github.com/manualdex/manualdex"
)

// Delta is the set difference between a remote listing and the catalog.
// Added and Removed are disjoint by construction.
type Delta struct {
	// Added holds remote files whose IDs are not yet in the catalog,
	// sorted by name for deterministic processing order.
	Added []manualdex.RemoteFile

	// Removed holds catalog IDs that no longer exist remotely, sorted.
	Removed []string
}

// Empty reports whether the delta contains no work.
func (d Delta) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0
}

// Diff computes the delta between a remote listing and the catalog.
// An ID present in both is neither added nor removed, even if its display
// name changed; name drift is handled separately by the Syncer without
// re-classification.
func Diff(remote []manualdex.RemoteFile, catalog manualdex.Catalog) Delta {
	var d Delta

	seen := make(map[string]struct{}, len(remote))
	for _, f := range remote {
		seen[f.ID] = struct{}{}
		if _, ok := catalog[f.ID]; !ok {
			d.Added = append(d.Added, f)
		}
	}

	for id := range catalog {
		if _, ok := seen[id]; !ok {
			d.Removed = append(d.Removed, id)
		}
	}

	sort.Slice(d.Added, func(i, j int) bool {
		if d.Added[i].Name != d.Added[j].Name {
			return d.Added[i].Name < d.Added[j].Name
		}
		return d.Added[i].ID < d.Added[j].ID
	})
	sort.Strings(d.Removed)

	return d
}
