// Package content implements the back-office content manager: an item store
// for one kind of record, the search/facet filter over it, the create/edit
// form workflow, and the summary statistics shown above each admin list.
//
// A single generic Manager serves every kind; a Kind value supplies the
// record-specific pieces.
package content

import (
	"time"
)

// FacetAll is the pass-through facet.
const FacetAll = "all"

// Kind describes one kind of record to the generic manager.
//
// T is the record type and F the type of its edit form. Records are held by
// value; any slice fields must be copied by Build and Apply so that a saved
// record never shares memory with the form it came from.
type Kind[T any, F any] struct {
	// Name identifies the kind in logs and errors (e.g. "projects").
	Name string

	ID      func(T) int64
	WithID  func(T, int64) T
	Created func(T) time.Time
	Touch   func(T, time.Time) T

	// Searchable returns the fields matched by the free-text query. Every
	// element of a tag list should be returned as its own string.
	Searchable func(T) []string

	// Facets lists the facet names accepted besides FacetAll, and Facet
	// reports whether an item belongs to one of them.
	Facets []string
	Facet  func(T, string) bool

	// Stats are the named counters reported by StatsAggregator.
	Stats []Stat[T]

	// Flags maps a flag name to the function that flips it at the given
	// instant.
	Flags map[string]func(T, time.Time) T

	// Form hooks. A kind with a nil Defaults has no create/edit form.
	Defaults func() F
	FromItem func(T) F
	Valid    func(F) bool
	Build    func(F, time.Time) T
	Apply    func(T, F, time.Time) T
}

// Stat is a named counting predicate.
type Stat[T any] struct {
	Name  string
	Match func(T) bool
}

// HasForm reports whether records of this kind can be created or edited
// through a form.
func (k Kind[T, F]) HasForm() bool {
	return k.Defaults != nil
}

func (k Kind[T, F]) hasFacet(facet string) bool {
	if facet == "" || facet == FacetAll {
		return true
	}
	for _, f := range k.Facets {
		if f == facet {
			return true
		}
	}
	return false
}
