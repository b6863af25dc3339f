package domain

import "time"

// InventoryChange announces that listings were added, updated or removed in
// the catalog backend.
type InventoryChange struct {
	EventID    string
	Source     string
	Reason     string
	ItemIDs    []string
	OccurredAt time.Time
}

// FilterMutation is one sidebar interaction applied to the state encoded in URL.
type FilterMutation struct {
	URL    string
	Facet  string
	Action string
	Values []string
}

type FilterMutationResult struct {
	Filters FilterState
	URL     string
}
