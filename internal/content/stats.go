package content

import "time"

// RecentWindow is how far back an item's creation counts as recent.
const RecentWindow = 7 * 24 * time.Hour

// Stats summarizes the items of one kind.
type Stats struct {
	Total  int            `json:"total"`
	Counts map[string]int `json:"counts"`
	Recent int            `json:"recent"`
}

// Aggregate computes the kind's stats over items as of now.
func Aggregate[T any, F any](kind Kind[T, F], items []T, now time.Time) Stats {
	stats := Stats{
		Total:  len(items),
		Counts: make(map[string]int, len(kind.Stats)),
	}
	for _, s := range kind.Stats {
		stats.Counts[s.Name] = 0
	}

	cutoff := now.Add(-RecentWindow)
	for _, item := range items {
		for _, s := range kind.Stats {
			if s.Match(item) {
				stats.Counts[s.Name]++
			}
		}
		created := kind.Created(item)
		if !created.Before(cutoff) && !created.After(now) {
			stats.Recent++
		}
	}
	return stats
}
