package catalog

import (
	"slices"

	"github.com/iliyamo/pitch-reservation/internal/model"
)

// DefaultPageSize is the number of pitches shown per catalog page.
const DefaultPageSize = 18

// maxPlainPages is the largest page count rendered without ellipses.
const maxPlainPages = 5

// Paginate returns the page-th slice of size records and the total page
// count (at least 1). Pages below 1 are read as page 1 and pages past the
// end yield an empty, non-nil slice.
func Paginate(records []model.Pitch, page, size int) ([]model.Pitch, int) {
	if size < 1 {
		size = DefaultPageSize
	}
	totalPages := TotalPages(len(records), size)
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		return []model.Pitch{}, totalPages
	}
	start := (page - 1) * size
	if start >= len(records) {
		return []model.Pitch{}, totalPages
	}
	end := min(start+size, len(records))
	return slices.Clone(records[start:end]), totalPages
}

// TotalPages is ceil(n/size) with a floor of one page.
func TotalPages(n, size int) int {
	if size < 1 {
		size = DefaultPageSize
	}
	pages := (n + size - 1) / size
	if pages < 1 {
		return 1
	}
	return pages
}

// PageLink is one entry of the pager: either a page number or an ellipsis.
type PageLink struct {
	Page     int  `json:"page,omitempty"`
	Current  bool `json:"current,omitempty"`
	Ellipsis bool `json:"ellipsis,omitempty"`
}

// PageLinks builds the pager for current out of totalPages. Up to five
// pages are all listed; beyond that the first and last page and the
// neighbours of current are shown, with an ellipsis wherever shown numbers
// are not adjacent. A current page past the end is rendered around the
// last page, and no link is marked current.
func PageLinks(current, totalPages int) []PageLink {
	if totalPages < 1 {
		totalPages = 1
	}
	current = max(1, current)
	anchor := min(current, totalPages)

	var shown []int
	if totalPages <= maxPlainPages {
		for p := 1; p <= totalPages; p++ {
			shown = append(shown, p)
		}
	} else {
		shown = append(shown, 1)
		for p := anchor - 1; p <= anchor+1; p++ {
			if p > 1 && p < totalPages {
				shown = append(shown, p)
			}
		}
		shown = append(shown, totalPages)
	}

	links := make([]PageLink, 0, len(shown)+2)
	prev := 0
	for _, p := range shown {
		if prev > 0 && p-prev > 1 {
			links = append(links, PageLink{Ellipsis: true})
		}
		links = append(links, PageLink{Page: p, Current: p == current})
		prev = p
	}
	return links
}
