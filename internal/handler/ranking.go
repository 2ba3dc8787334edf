package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/visolab/viso-tracker/internal/repository"
)

// RankingHandler serves the friendship-ranking table.
type RankingHandler struct {
	Rankings *repository.RankingRepo
}

func NewRankingHandler(rankings *repository.RankingRepo) *RankingHandler {
	if rankings == nil {
		panic("nil repository passed to NewRankingHandler")
	}
	return &RankingHandler{Rankings: rankings}
}

// ListRankings handles GET /v1/rankings with an optional ?limit= parameter.
func (h *RankingHandler) ListRankings(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid limit"})
		}
		limit = n
	}
	items, err := h.Rankings.ListTop(c.Request().Context(), limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// RebuildRankings handles POST /v1/rankings/rebuild (admin only). It
// recomputes the table from the interactions history, reconciling any
// events the consumer missed.
func (h *RankingHandler) RebuildRankings(c echo.Context) error {
	if err := h.Rankings.Rebuild(c.Request().Context()); err != nil {
		c.Logger().Errorf("ranking rebuild failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "rebuild failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
