package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/visolab/viso-tracker/internal/model"
	"github.com/visolab/viso-tracker/internal/repository"
)

// ObjectHandler bundles repositories for object CRUD and the adjacency read.
type ObjectHandler struct {
	Objects *repository.ObjectRepo
}

func NewObjectHandler(objects *repository.ObjectRepo) *ObjectHandler {
	if objects == nil {
		panic("nil repository passed to NewObjectHandler")
	}
	return &ObjectHandler{Objects: objects}
}

// CreateObject handles POST /v1/objects (admin only). The UUID is generated
// server-side; clients never pick identifiers.
func (h *ObjectHandler) CreateObject(c echo.Context) error {
	adminID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body struct {
		Name    string  `json:"name"`
		Kind    string  `json:"kind"`
		ClassID *uint64 `json:"class_id"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if strings.TrimSpace(body.Name) == "" || strings.TrimSpace(body.Kind) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and kind are required"})
	}
	o := &model.Object{
		UUID:         uuid.NewString(),
		Name:         body.Name,
		Kind:         body.Kind,
		ClassID:      body.ClassID,
		RegisteredBy: adminID,
		IsActive:     true,
	}
	if err := h.Objects.Create(c.Request().Context(), o); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "object name already exists"})
		}
		c.Logger().Errorf("create object failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create object"})
	}
	return c.JSON(http.StatusCreated, o)
}

// GetObject handles GET /v1/objects/:id.
func (h *ObjectHandler) GetObject(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	o, err := h.Objects.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "object not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, o)
}

// ListObjects handles GET /v1/objects with an optional ?class_id= filter.
func (h *ObjectHandler) ListObjects(c echo.Context) error {
	classID, err := queryUint(c, "class_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid class_id"})
	}
	items, err := h.Objects.List(c.Request().Context(), classID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// UpdateObject handles PUT/PATCH /v1/objects/:id (admin only). Omitted
// fields keep their stored value.
func (h *ObjectHandler) UpdateObject(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body struct {
		Name     *string `json:"name"`
		Kind     *string `json:"kind"`
		ClassID  *uint64 `json:"class_id"`
		IsActive *bool   `json:"is_active"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	ctx := c.Request().Context()
	o, err := h.Objects.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "object not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if body.Name != nil {
		o.Name = *body.Name
	}
	if body.Kind != nil {
		o.Kind = *body.Kind
	}
	if body.ClassID != nil {
		o.ClassID = body.ClassID
	}
	if body.IsActive != nil {
		o.IsActive = *body.IsActive
	}
	if err := h.Objects.Update(ctx, &o); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "object not found"})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "object name already exists"})
		default:
			if strings.Contains(err.Error(), "object:") {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
		}
	}
	return c.JSON(http.StatusOK, o)
}

// DeleteObject handles DELETE /v1/objects/:id (admin only). Dependent
// interaction, environment and ranking rows are removed in the repository.
func (h *ObjectHandler) DeleteObject(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Objects.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "object not found"})
		}
		c.Logger().Errorf("delete object failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// Neighbors handles GET /v1/objects/:id/neighbors and returns the objects
// sharing an environment zone with the given one.
func (h *ObjectHandler) Neighbors(c echo.Context) error {
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
	items, err := h.Objects.Neighbors(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}
