package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/pitch-reservation/internal/browse"
	"github.com/iliyamo/pitch-reservation/internal/catalog"
	"github.com/iliyamo/pitch-reservation/internal/metrics"
	"github.com/iliyamo/pitch-reservation/internal/queue"
	"github.com/iliyamo/pitch-reservation/internal/service"
)

// BrowseHandler keeps a server-side browse position per client so the
// page-reset rule is applied in one place.
type BrowseHandler struct {
	Catalog  *catalog.Catalog
	Sessions browse.SessionStore
	Events   service.EventPublisher
	Log      *zap.Logger
}

func NewBrowseHandler(cat *catalog.Catalog, sessions browse.SessionStore, events service.EventPublisher, log *zap.Logger) *BrowseHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &BrowseHandler{Catalog: cat, Sessions: sessions, Events: events, Log: log}
}

type createBrowseReq struct {
	Criteria catalog.Criteria `json:"criteria"`
	Sort     catalog.SortKey  `json:"sort"`
}

// updateBrowseReq carries the changes of one PATCH. Absent fields are left
// alone. Page is applied before the selections so that a changed filter
// still lands on page 1.
type updateBrowseReq struct {
	Criteria *catalog.Criteria `json:"criteria"`
	Sort     *catalog.SortKey  `json:"sort"`
	Page     *int              `json:"page"`
}

type browseResp struct {
	ID     string       `json:"id"`
	State  browse.State `json:"state"`
	Result ResultView   `json:"result"`
}

// Create answers POST /v1/browse. The body is optional.
func (h *BrowseHandler) Create(c echo.Context) error {
	var req createBrowseReq
	if c.Request().ContentLength != 0 {
		if err := c.Bind(&req); err != nil {
			return badRequest(c, "invalid body")
		}
	}
	sess, err := h.Sessions.Create(c.Request().Context(), browse.NewState(req.Criteria, req.Sort))
	if err != nil {
		h.Log.Error("create browse session", zap.Error(err))
		return jsonError(c, http.StatusInternalServerError, "session store error")
	}
	metrics.BrowseSessions.WithLabelValues("create").Inc()
	return h.respond(c, http.StatusCreated, sess)
}

// Get answers GET /v1/browse/:id with the current page of the session.
func (h *BrowseHandler) Get(c echo.Context) error {
	sess, err := h.Sessions.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.storeError(c, err)
	}
	metrics.BrowseSessions.WithLabelValues("get").Inc()
	return h.respond(c, http.StatusOK, sess)
}

// Update answers PATCH /v1/browse/:id.
func (h *BrowseHandler) Update(c echo.Context) error {
	var req updateBrowseReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	ctx := c.Request().Context()
	sess, err := h.Sessions.Get(ctx, c.Param("id"))
	if err != nil {
		return h.storeError(c, err)
	}

	st := sess.State
	if req.Page != nil {
		st = st.WithPage(*req.Page)
	}
	if req.Sort != nil {
		st = st.WithSort(*req.Sort)
	}
	if req.Criteria != nil {
		st = st.WithCriteria(*req.Criteria)
	}
	sess.State = st

	if err := h.Sessions.Save(ctx, sess); err != nil {
		return h.storeError(c, err)
	}
	metrics.BrowseSessions.WithLabelValues("update").Inc()
	return h.respond(c, http.StatusOK, sess)
}

func (h *BrowseHandler) respond(c echo.Context, status int, sess browse.Session) error {
	st := sess.State
	res := runQuery(h.Catalog, st.Criteria, st.Sort, st.Page, queue.SourceBrowse)
	ev := queue.NewSearchEvent(queue.SourceBrowse, st.Criteria, st.Sort, res)
	ev.SessionID = sess.ID
	publish(h.Events, c, ev)
	return c.JSON(status, browseResp{ID: sess.ID, State: st, Result: newResultView(res, st.Criteria, st.Sort)})
}

func (h *BrowseHandler) storeError(c echo.Context, err error) error {
	if errors.Is(err, browse.ErrSessionNotFound) {
		return jsonError(c, http.StatusNotFound, "browse session not found")
	}
	h.Log.Error("browse session store", zap.Error(err))
	return jsonError(c, http.StatusInternalServerError, "session store error")
}
