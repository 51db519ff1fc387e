// Package browse holds the state a client keeps while paging through the
// catalog: the current selections, the sort key and the page. It also
// provides the debouncer used by the live search channel and a store for
// server-held browse sessions.
package browse

import (
	"github.com/iliyamo/pitch-reservation/internal/catalog"
)

// State is an immutable browse position. Use the With* methods to derive a
// new State.
type State struct {
	Criteria catalog.Criteria `json:"criteria"`
	Sort     catalog.SortKey  `json:"sort"`
	Page     int              `json:"page"`
}

// NewState returns the first page of the given selections.
func NewState(c catalog.Criteria, sort catalog.SortKey) State {
	return State{Criteria: c.Normalize(), Sort: catalog.ParseSortKey(string(sort)), Page: 1}
}

// WithCriteria replaces the selections. Any change to them sends the client
// back to page 1; an equivalent set of selections keeps the page.
func (s State) WithCriteria(c catalog.Criteria) State {
	c = c.Normalize()
	if !s.Criteria.Equal(c) {
		s.Page = 1
	}
	s.Criteria = c
	return s
}

// WithSort changes the ordering and keeps the page.
func (s State) WithSort(k catalog.SortKey) State {
	s.Sort = catalog.ParseSortKey(string(k))
	return s
}

// WithPage moves to page p, clamped to at least 1.
func (s State) WithPage(p int) State {
	s.Page = max(p, 1)
	return s
}

// Run evaluates s against the catalog.
func (s State) Run(cat *catalog.Catalog) catalog.Result {
	return cat.Query(s.Criteria, s.Sort, s.Page)
}
