package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/pitch-reservation/internal/catalog"
	"github.com/iliyamo/pitch-reservation/internal/queue"
)

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestListPitches(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(http.MethodGet, "/v1/pitches?camera=yes&sort=price-low", "")
	require.Equal(t, http.StatusOK, rec.Code)

	res := decode[ResultView](t, rec)
	// camera: 1, 3, 4 -> by price 4 (650), 3 (750), 1 (1200); two per page
	assert.Equal(t, 3, res.Total)
	assert.Equal(t, 2, res.TotalPages)
	assert.Equal(t, 2, res.PageSize)
	assert.Equal(t, []string{"4", "3"}, itemIDs(res.Items))
	assert.Equal(t, catalog.SortPriceLow, res.Sort)
	assert.Equal(t, []string{catalog.Yes}, res.Criteria.CameraSystems)
	assert.Equal(t, catalog.StarRating{Full: 4, Half: 0, Empty: 1}, res.Items[0].Stars)

	events := s.events.all()
	require.Len(t, events, 1)
	assert.Equal(t, queue.SourceList, events[0].Source)
	assert.Equal(t, 3, events[0].Total)
	assert.False(t, events[0].LoggedIn)
}

func TestListPitches_SecondPageAndCityExactMatch(t *testing.T) {
	s := newTestServer(t)
	res := decode[ResultView](t, s.do(http.MethodGet, "/v1/pitches?city=%C4%B0stanbul&page=2", ""))
	assert.Equal(t, 2, res.Total)
	assert.Empty(t, res.Items)
	assert.NotNil(t, res.Items)
	assert.Equal(t, 2, res.Page)

	res = decode[ResultView](t, s.do(http.MethodGet, "/v1/pitches?city=istanbul", ""))
	assert.Zero(t, res.Total)
}

func TestListPitches_MalformedParamsAreIgnored(t *testing.T) {
	s := newTestServer(t)
	res := decode[ResultView](t, s.do(http.MethodGet, "/v1/pitches?min_price=cheap&min_rating=NaN&page=abc&sort=bogus", ""))
	assert.Equal(t, 5, res.Total)
	assert.Equal(t, 1, res.Page)
	assert.Equal(t, catalog.SortDefault, res.Sort)
	assert.Equal(t, []string{"1", "2"}, itemIDs(res.Items))
}

func TestListPitches_SearchAndTypes(t *testing.T) {
	s := newTestServer(t)
	res := decode[ResultView](t, s.do(http.MethodGet, "/v1/pitches?q=ankara&type=outdoor", ""))
	assert.Equal(t, []string{"4"}, itemIDs(res.Items))
}

func TestGetPitch(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(http.MethodGet, "/v1/pitches/3", "")
	require.Equal(t, http.StatusOK, rec.Code)
	p := decode[PitchView](t, rec)
	assert.Equal(t, "Çamlık Arena", p.Name)
	assert.Equal(t, catalog.StarRating{Full: 4, Half: 1, Empty: 0}, p.Stars)

	rec = s.do(http.MethodGet, "/v1/pitches/999", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"pitch not found"}`, rec.Body.String())
}

func TestFacets(t *testing.T) {
	s := newTestServer(t)
	f := decode[catalog.Facets](t, s.do(http.MethodGet, "/v1/facets", ""))
	assert.Equal(t, []string{"Ankara", "İstanbul", "İzmir"}, f.Cities)
	assert.Equal(t, []string{"10 oyuncu", "12 oyuncu", "14 oyuncu"}, f.Capacities)
	assert.Equal(t, 600, f.MinPrice)
	assert.Equal(t, 1200, f.MaxPrice)
}
