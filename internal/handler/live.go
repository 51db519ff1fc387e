package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/pitch-reservation/internal/browse"
	"github.com/iliyamo/pitch-reservation/internal/catalog"
	"github.com/iliyamo/pitch-reservation/internal/metrics"
	"github.com/iliyamo/pitch-reservation/internal/queue"
	"github.com/iliyamo/pitch-reservation/internal/service"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 16 * 1024
)

// LiveSearchHandler serves search-as-you-type over a WebSocket. Each client
// message is a complete query; the server waits for the client to go idle
// and answers only the latest one.
type LiveSearchHandler struct {
	Catalog  *catalog.Catalog
	Debounce time.Duration
	Events   service.EventPublisher
	Log      *zap.Logger

	upgrader websocket.Upgrader
}

func NewLiveSearchHandler(cat *catalog.Catalog, debounce time.Duration, events service.EventPublisher, log *zap.Logger) *LiveSearchHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &LiveSearchHandler{
		Catalog:  cat,
		Debounce: debounce,
		Events:   events,
		Log:      log.Named("live-search"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     sameHostOrigin,
		},
	}
}

// liveQuery is one client message. Q, when set, replaces Criteria.Search.
type liveQuery struct {
	Seq      int              `json:"seq"`
	Q        string           `json:"q"`
	Criteria catalog.Criteria `json:"criteria"`
	Sort     catalog.SortKey  `json:"sort"`
	Page     int              `json:"page"`
}

type liveReply struct {
	Type   string      `json:"type"`
	Seq    int         `json:"seq"`
	Result *ResultView `json:"result,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// Serve answers GET /v1/search/live.
func (h *LiveSearchHandler) Serve(c echo.Context) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// Upgrade already wrote the HTTP error
		h.Log.Debug("upgrade failed", zap.Error(err))
		return nil
	}
	lc := &liveConn{conn: conn, log: h.Log}
	defer lc.close()

	loggedIn := sessionLoggedIn(c)
	deb := browse.NewDebouncer(h.Debounce, func(r liveReply) {
		if err := lc.write(r); err != nil {
			metrics.LiveSearchDeliveries.WithLabelValues("write_error").Inc()
			return
		}
		metrics.LiveSearchDeliveries.WithLabelValues("sent").Inc()
	})
	defer deb.Stop()

	stop := make(chan struct{})
	defer close(stop)
	go lc.pingLoop(stop)

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error { return conn.SetReadDeadline(time.Now().Add(pongWait)) })

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.Log.Warn("connection closed", zap.Error(err))
			}
			return nil
		}
		var q liveQuery
		if err := json.Unmarshal(raw, &q); err != nil {
			_ = lc.write(liveReply{Type: "error", Error: "invalid message"})
			continue
		}
		deb.Trigger(h.search(q, loggedIn))
	}
}

// search builds the debounced task for q. A superseded task reports false
// so its result is never sent.
func (h *LiveSearchHandler) search(q liveQuery, loggedIn bool) func(context.Context) (liveReply, bool) {
	return func(ctx context.Context) (liveReply, bool) {
		if ctx.Err() != nil {
			metrics.LiveSearchDeliveries.WithLabelValues("superseded").Inc()
			return liveReply{}, false
		}
		criteria := q.Criteria
		if s := strings.TrimSpace(q.Q); s != "" {
			criteria.Search = s
		}
		criteria = criteria.Normalize()
		sort := catalog.ParseSortKey(string(q.Sort))
		res := runQuery(h.Catalog, criteria, sort, max(q.Page, 1), queue.SourceLive)
		if ctx.Err() != nil {
			metrics.LiveSearchDeliveries.WithLabelValues("superseded").Inc()
			return liveReply{}, false
		}
		if h.Events != nil {
			ev := queue.NewSearchEvent(queue.SourceLive, criteria, sort, res)
			ev.LoggedIn = loggedIn
			h.Events.Publish(ev)
		}
		view := newResultView(res, criteria, sort)
		return liveReply{Type: "result", Seq: q.Seq, Result: &view}, true
	}
}

// liveConn serializes writes from the debouncer, the ping loop and the
// read loop.
type liveConn struct {
	conn *websocket.Conn
	log  *zap.Logger
	mu   sync.Mutex
}

func (lc *liveConn) write(r liveReply) error {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	_ = lc.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return lc.conn.WriteJSON(r)
}

func (lc *liveConn) pingLoop(stop <-chan struct{}) {
	t := time.NewTicker(pingPeriod)
	defer t.Stop()
	for {
		select {
		case <-stop:
			return
		case <-t.C:
			lc.mu.Lock()
			err := lc.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
			lc.mu.Unlock()
			if err != nil {
				return
			}
		}
	}
}

func (lc *liveConn) close() {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	_ = lc.conn.Close()
}

// sameHostOrigin accepts non-browser clients and pages served from the
// same host, ignoring the port.
func sameHostOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Hostname(), hostOnly(r.Host))
}

func hostOnly(hostport string) string {
	if u, err := url.Parse("//" + hostport); err == nil {
		return u.Hostname()
	}
	return hostport
}
