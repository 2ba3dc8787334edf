package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/visolab/viso-tracker/internal/model"
	queue_publisher "github.com/visolab/viso-tracker/internal/service"

	"github.com/visolab/viso-tracker/internal/queue"
	"github.com/visolab/viso-tracker/internal/repository"
)

// InteractionHandler records interactions and serves interaction reads
// including the per-day time series.
type InteractionHandler struct {
	Interactions *repository.InteractionRepo
	Publisher    *queue_publisher.Publisher
}

func NewInteractionHandler(interactions *repository.InteractionRepo, pub *queue_publisher.Publisher) *InteractionHandler {
	if interactions == nil || pub == nil {
		panic("nil dependency passed to NewInteractionHandler")
	}
	return &InteractionHandler{Interactions: interactions, Publisher: pub}
}

// CreateInteraction handles POST /v1/interactions (admin only). After the
// row is written an interaction.recorded event goes to the broker; a
// publish failure is logged but never fails the request, since the ranking
// table can always be rebuilt from the interactions table.
func (h *InteractionHandler) CreateInteraction(c echo.Context) error {
	var body struct {
		SubjectID  uint64     `json:"subject_id"`
		TargetID   uint64     `json:"target_id"`
		Kind       string     `json:"kind"`
		Strength   int        `json:"strength"`
		OccurredAt *time.Time `json:"occurred_at"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	in := &model.Interaction{
		SubjectID: body.SubjectID,
		TargetID:  body.TargetID,
		Kind:      body.Kind,
		Strength:  body.Strength,
	}
	if body.OccurredAt != nil {
		in.OccurredAt = body.OccurredAt.UTC()
	}
	ctx := c.Request().Context()
	if err := h.Interactions.Create(ctx, in); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "unknown object"})
		case strings.Contains(err.Error(), "interaction:"):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		default:
			c.Logger().Errorf("create interaction failed: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not record interaction"})
		}
	}

	ev := queue.InteractionRecordedEvent{
		InteractionID: in.ID,
		SubjectID:     in.SubjectID,
		TargetID:      in.TargetID,
		Kind:          in.Kind,
		Strength:      in.Strength,
		OccurredAt:    in.OccurredAt.UTC().Format(time.RFC3339),
	}
	if err := h.Publisher.PublishInteractionRecorded(ctx, ev); err != nil {
		c.Logger().Warnf("interaction %d recorded but event publish failed: %v", in.ID, err)
	}
	return c.JSON(http.StatusCreated, in)
}

// ListInteractions handles GET /v1/interactions with optional ?object_id=
// and ?limit= parameters.
func (h *InteractionHandler) ListInteractions(c echo.Context) error {
	objectID, err := queryUint(c, "object_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid object_id"})
	}
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid limit"})
		}
		limit = n
	}
	items, err := h.Interactions.List(c.Request().Context(), objectID, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Series handles GET /v1/interactions/series with optional ?object_id= and
// ?days= parameters and returns per-day interaction counts.
func (h *InteractionHandler) Series(c echo.Context) error {
	objectID, err := queryUint(c, "object_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid object_id"})
	}
	days := 0
	if raw := c.QueryParam("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid days"})
		}
		days = n
	}
	items, err := h.Interactions.SeriesByDay(c.Request().Context(), objectID, days)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}
