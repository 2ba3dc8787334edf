package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/visolab/viso-tracker/internal/repository"
)

// StatsHandler serves aggregate counts over the registry.
type StatsHandler struct {
	Stats *repository.StatsRepo
}

func NewStatsHandler(stats *repository.StatsRepo) *StatsHandler {
	if stats == nil {
		panic("nil repository passed to NewStatsHandler")
	}
	return &StatsHandler{Stats: stats}
}

// GetStats handles GET /v1/stats: overall totals plus objects per class.
func (h *StatsHandler) GetStats(c echo.Context) error {
	ctx := c.Request().Context()
	totals, err := h.Stats.Totals(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	perClass, err := h.Stats.ObjectsPerClass(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"totals":    totals,
		"per_class": perClass,
	})
}
