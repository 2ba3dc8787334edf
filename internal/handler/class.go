package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/visolab/viso-tracker/internal/model"
	"github.com/visolab/viso-tracker/internal/repository"
)

// ClassHandler bundles repositories for class CRUD and class membership reads.
type ClassHandler struct {
	Classes *repository.ClassRepo
	Objects *repository.ObjectRepo
}

func NewClassHandler(classes *repository.ClassRepo, objects *repository.ObjectRepo) *ClassHandler {
	if classes == nil || objects == nil {
		panic("nil repository passed to NewClassHandler")
	}
	return &ClassHandler{Classes: classes, Objects: objects}
}

// CreateClass handles POST /v1/classes (admin only).
func (h *ClassHandler) CreateClass(c echo.Context) error {
	var body struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if strings.TrimSpace(body.Name) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	cl := &model.Class{Name: body.Name, Description: body.Description}
	if err := h.Classes.Create(c.Request().Context(), cl); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "class name already exists"})
		}
		c.Logger().Errorf("create class failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create class"})
	}
	return c.JSON(http.StatusCreated, cl)
}

// GetClass handles GET /v1/classes/:id.
func (h *ClassHandler) GetClass(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	cl, err := h.Classes.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "class not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, cl)
}

// ListClasses handles GET /v1/classes.
func (h *ClassHandler) ListClasses(c echo.Context) error {
	items, err := h.Classes.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// ListClassObjects handles GET /v1/classes/:id/objects.
func (h *ClassHandler) ListClassObjects(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx := c.Request().Context()
	if _, err := h.Classes.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "class not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	items, err := h.Objects.List(ctx, &id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// UpdateClass handles PUT/PATCH /v1/classes/:id (admin only).
func (h *ClassHandler) UpdateClass(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	ctx := c.Request().Context()
	cl, err := h.Classes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "class not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if body.Name != nil {
		cl.Name = *body.Name
	}
	if body.Description != nil {
		cl.Description = *body.Description
	}
	if err := h.Classes.Update(ctx, &cl); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "class not found"})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "class name already exists"})
		default:
			if strings.Contains(err.Error(), "class:") {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
		}
	}
	return c.JSON(http.StatusOK, cl)
}

// DeleteClass handles DELETE /v1/classes/:id (admin only). Member objects
// survive with class_id cleared.
func (h *ClassHandler) DeleteClass(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Classes.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "class not found"})
		}
		c.Logger().Errorf("delete class failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
