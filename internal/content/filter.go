package content

import "strings"

// Filter returns, in their original order, the items whose searchable
// fields contain query (case-insensitively) and that belong to facet.
// The query is matched as given, whitespace included. An empty query matches
// every item; an empty facet or FacetAll matches every item.
func Filter[T any, F any](kind Kind[T, F], items []T, query, facet string) ([]T, error) {
	if !kind.hasFacet(facet) {
		return nil, ErrUnknownFacet
	}

	needle := strings.ToLower(query)
	out := make([]T, 0, len(items))
	for _, item := range items {
		if !matchesQuery(kind, item, needle) {
			continue
		}
		if facet != "" && facet != FacetAll && !kind.Facet(item, facet) {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

func matchesQuery[T any, F any](kind Kind[T, F], item T, needle string) bool {
	if needle == "" {
		return true
	}
	for _, field := range kind.Searchable(item) {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}
