package catalog

import (
	"slices"

	"github.com/iliyamo/pitch-reservation/internal/model"
)

// Result is one rendered catalog page.
type Result struct {
	Items      []model.Pitch `json:"items"`
	Total      int           `json:"total"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
	TotalPages int           `json:"total_pages"`
	Pages      []PageLink    `json:"pages"`
}

// Query filters, sorts and paginates records in that order. With empty
// criteria and SortDefault it returns the collection unpermuted.
func Query(records []model.Pitch, c Criteria, key SortKey, page, size int) Result {
	if size < 1 {
		size = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}
	matched := SortPitches(ApplyFilters(records, c), key)
	items, totalPages := Paginate(matched, page, size)
	return Result{
		Items:      items,
		Total:      len(matched),
		Page:       page,
		PageSize:   size,
		TotalPages: totalPages,
		Pages:      PageLinks(page, totalPages),
	}
}

// Catalog serves queries over a collection fixed at construction.
type Catalog struct {
	pitches  []model.Pitch
	index    map[string]int
	pageSize int
	facets   Facets
}

// New copies pitches into a Catalog. A pageSize below 1 selects
// DefaultPageSize.
func New(pitches []model.Pitch, pageSize int) *Catalog {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	own := slices.Clone(pitches)
	index := make(map[string]int, len(own))
	for i, p := range own {
		index[p.ID] = i
	}
	return &Catalog{
		pitches:  own,
		index:    index,
		pageSize: pageSize,
		facets:   BuildFacets(own),
	}
}

// Query runs the pipeline for one page of the catalog.
func (c *Catalog) Query(criteria Criteria, key SortKey, page int) Result {
	return Query(c.pitches, criteria, key, page, c.pageSize)
}

// Get looks a pitch up by id.
func (c *Catalog) Get(id string) (model.Pitch, bool) {
	i, ok := c.index[id]
	if !ok {
		return model.Pitch{}, false
	}
	return c.pitches[i], true
}

// Facets returns the filter option lists of the collection.
func (c *Catalog) Facets() Facets { return c.facets }

// PageSize is the fixed number of items per page.
func (c *Catalog) PageSize() int { return c.pageSize }

// Len is the size of the collection.
func (c *Catalog) Len() int { return len(c.pitches) }
