package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/pitch-reservation/internal/browse"
	"github.com/iliyamo/pitch-reservation/internal/catalog"
	"github.com/iliyamo/pitch-reservation/internal/middleware"
	"github.com/iliyamo/pitch-reservation/internal/model"
	"github.com/iliyamo/pitch-reservation/internal/queue"
)

const testSecret = "test-secret"

func testCatalog() *catalog.Catalog {
	return catalog.New([]model.Pitch{
		{ID: "1", Name: "Zafer Spor", City: "İstanbul", District: "Kadıköy", Location: "Kadıköy, İstanbul", Price: 1200, Rating: 4.5, Capacity: "14 oyuncu", PitchType: model.PitchIndoor, CameraSystem: true, ShoeRental: true},
		{ID: "2", Name: "Dere Sahası", City: "İstanbul", District: "Beşiktaş", Location: "Beşiktaş, İstanbul", Price: 900, Rating: 3.8, Capacity: "10 oyuncu", PitchType: model.PitchOutdoor, ShoeRental: true},
		{ID: "3", Name: "Çamlık Arena", City: "Ankara", District: "Çankaya", Location: "Çankaya, Ankara", Price: 750, Rating: 4.5, Capacity: "12 oyuncu", PitchType: model.PitchIndoor, CameraSystem: true},
		{ID: "4", Name: "Gol Vadisi", City: "Ankara", District: "Yenimahalle", Location: "Yenimahalle, Ankara", Price: 650, Rating: 4.1, Capacity: "14 oyuncu", PitchType: model.PitchOutdoor, CameraSystem: true, ShoeRental: true},
		{ID: "5", Name: "Şehir Stadı", City: "İzmir", District: "Karşıyaka", Location: "Karşıyaka, İzmir", Price: 600, Rating: 3.2, Capacity: "10 oyuncu", PitchType: model.PitchOutdoor},
	}, 2)
}

type capturePublisher struct {
	mu     sync.Mutex
	events []queue.SearchPerformedEvent
}

func (p *capturePublisher) Publish(ev queue.SearchPerformedEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
}

func (p *capturePublisher) all() []queue.SearchPerformedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]queue.SearchPerformedEvent(nil), p.events...)
}

type testServer struct {
	e      *echo.Echo
	events *capturePublisher
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	cat := testCatalog()
	events := &capturePublisher{}
	e := echo.New()
	e.Use(middleware.SessionFlag(testSecret))

	pitches := NewCatalogHandler(cat, events, nil)
	br := NewBrowseHandler(cat, browse.NewMemoryStore(time.Minute), events, nil)
	live := NewLiveSearchHandler(cat, 50*time.Millisecond, events, nil)
	auth := NewAuthHandler(testSecret, time.Hour)

	e.GET("/healthz", Health)
	e.GET("/v1/pitches", pitches.List)
	e.GET("/v1/pitches/:id", pitches.Get)
	e.GET("/v1/facets", pitches.Facets)
	e.POST("/v1/browse", br.Create)
	e.GET("/v1/browse/:id", br.Get)
	e.PATCH("/v1/browse/:id", br.Update)
	e.GET("/v1/search/live", live.Serve)
	e.POST("/v1/auth/login", auth.Login)
	e.GET("/v1/auth/session", auth.Session)
	e.POST("/v1/auth/logout", auth.Logout)
	return &testServer{e: e, events: events}
}

func (s *testServer) do(method, target, body string, header ...string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func itemIDs(items []PitchView) []string {
	out := make([]string, len(items))
	for i, p := range items {
		out[i] = p.ID
	}
	return out
}
