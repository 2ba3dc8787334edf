package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/visolab/viso-tracker/internal/model"
	"github.com/visolab/viso-tracker/internal/repository"
)

// EnvironmentHandler serves environment/adjacency record endpoints.
type EnvironmentHandler struct {
	Environments *repository.EnvironmentRepo
	Objects      *repository.ObjectRepo
}

func NewEnvironmentHandler(envs *repository.EnvironmentRepo, objects *repository.ObjectRepo) *EnvironmentHandler {
	if envs == nil || objects == nil {
		panic("nil repository passed to NewEnvironmentHandler")
	}
	return &EnvironmentHandler{Environments: envs, Objects: objects}
}

// CreateEnvironment handles POST /v1/environments (admin only).
func (h *EnvironmentHandler) CreateEnvironment(c echo.Context) error {
	var body struct {
		ObjectID    uint64     `json:"object_id"`
		Zone        string     `json:"zone"`
		Temperature *float64   `json:"temperature"`
		Humidity    *float64   `json:"humidity"`
		RecordedAt  *time.Time `json:"recorded_at"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	e := &model.Environment{
		ObjectID:    body.ObjectID,
		Zone:        body.Zone,
		Temperature: body.Temperature,
		Humidity:    body.Humidity,
	}
	if body.RecordedAt != nil {
		e.RecordedAt = body.RecordedAt.UTC()
	}
	if err := h.Environments.Create(c.Request().Context(), e); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "unknown object"})
		case strings.Contains(err.Error(), "environment:"):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		default:
			c.Logger().Errorf("create environment failed: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create environment"})
		}
	}
	return c.JSON(http.StatusCreated, e)
}

// ListEnvironments handles GET /v1/environments.
func (h *EnvironmentHandler) ListEnvironments(c echo.Context) error {
	items, err := h.Environments.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// ListObjectEnvironments handles GET /v1/objects/:id/environments.
func (h *EnvironmentHandler) ListObjectEnvironments(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx := c.Request().Context()
	if _, err := h.Objects.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "object not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	items, err := h.Environments.ListByObject(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// DeleteEnvironment handles DELETE /v1/environments/:id (admin only).
func (h *EnvironmentHandler) DeleteEnvironment(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Environments.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "environment not found"})
		}
		c.Logger().Errorf("delete environment failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
