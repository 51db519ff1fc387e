package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/pitch-reservation/internal/catalog"
	"github.com/iliyamo/pitch-reservation/internal/model"
)

// PitchView is a pitch as rendered in list and detail responses, with the
// star breakdown the rating widget draws.
type PitchView struct {
	model.Pitch
	Stars catalog.StarRating `json:"stars"`
}

// ResultView is one page of a catalog query.
type ResultView struct {
	Items      []PitchView        `json:"items"`
	Total      int                `json:"total"`
	Page       int                `json:"page"`
	PageSize   int                `json:"page_size"`
	TotalPages int                `json:"total_pages"`
	Pages      []catalog.PageLink `json:"pages"`
	Sort       catalog.SortKey    `json:"sort"`
	Criteria   catalog.Criteria   `json:"criteria"`
}

func newPitchView(p model.Pitch) PitchView {
	return PitchView{Pitch: p, Stars: catalog.Stars(p.Rating)}
}

func newResultView(res catalog.Result, c catalog.Criteria, sort catalog.SortKey) ResultView {
	items := make([]PitchView, len(res.Items))
	for i, p := range res.Items {
		items[i] = newPitchView(p)
	}
	return ResultView{
		Items:      items,
		Total:      res.Total,
		Page:       res.Page,
		PageSize:   res.PageSize,
		TotalPages: res.TotalPages,
		Pages:      res.Pages,
		Sort:       sort,
		Criteria:   c,
	}
}

func jsonError(c echo.Context, status int, msg string) error {
	return c.JSON(status, echo.Map{"error": msg})
}

func badRequest(c echo.Context, msg string) error {
	return jsonError(c, http.StatusBadRequest, msg)
}
