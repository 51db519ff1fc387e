// Package queue defines the search event exchanged over RabbitMQ and the
// background consumer that records it.
package queue

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/iliyamo/pitch-reservation/internal/catalog"
)

// SearchQueueName is the durable queue search events are published to.
const SearchQueueName = "catalog.searched"

// Event sources.
const (
	SourceList   = "list"
	SourceBrowse = "browse"
	SourceLive   = "live"
)

// SearchPerformedEvent is published after a catalog query was answered. It
// carries the selections and the outcome so consumers can build analytics
// without access to the catalog.
type SearchPerformedEvent struct {
	Source     string           `json:"source"`
	Criteria   catalog.Criteria `json:"criteria"`
	Sort       catalog.SortKey  `json:"sort"`
	Page       int              `json:"page"`
	Total      int              `json:"total"`
	Returned   int              `json:"returned"`
	LoggedIn   bool             `json:"logged_in"`
	SessionID  string           `json:"session_id,omitempty"`
	OccurredAt time.Time        `json:"occurred_at"`
}

// NewSearchEvent summarizes a query result.
func NewSearchEvent(source string, c catalog.Criteria, sort catalog.SortKey, res catalog.Result) SearchPerformedEvent {
	return SearchPerformedEvent{
		Source:     source,
		Criteria:   c,
		Sort:       sort,
		Page:       res.Page,
		Total:      res.Total,
		Returned:   len(res.Items),
		OccurredAt: time.Now().UTC(),
	}
}

// LogLine renders the event as one line of logs/search.log.
func (ev SearchPerformedEvent) LogLine() string {
	return fmt.Sprintf("[%s] Catalog searched | source=%s | sort=%s | page=%d | total=%d | returned=%d | logged_in=%t | filters=%s\n",
		ev.OccurredAt.UTC().Format(time.RFC3339), ev.Source, ev.Sort, ev.Page, ev.Total, ev.Returned, ev.LoggedIn, describe(ev.Criteria))
}

// describe lists the active filters as query-string pairs.
func describe(c catalog.Criteria) string {
	v := url.Values{}
	set := func(k, s string) {
		if s != "" {
			v.Set(k, s)
		}
	}
	num := func(k string, f *float64) {
		if f != nil {
			v.Set(k, fmt.Sprint(*f))
		}
	}
	set("city", c.City)
	set("district", c.District)
	set("capacity", c.Capacity)
	set("q", c.Search)
	num("min_price", c.MinPrice)
	num("max_price", c.MaxPrice)
	num("min_rating", c.MinRating)
	types := make([]string, len(c.PitchTypes))
	for i, t := range c.PitchTypes {
		types[i] = string(t)
	}
	set("type", strings.Join(types, ","))
	set("camera", strings.Join(c.CameraSystems, ","))
	set("shoe_rental", strings.Join(c.ShoeRentals, ","))
	if len(v) == 0 {
		return "none"
	}
	return v.Encode()
}
