package router

import (
	"github.com/labstack/echo/v4"

	"github.com/visolab/viso-tracker/internal/handler"
	"github.com/visolab/viso-tracker/internal/middleware"
	"github.com/visolab/viso-tracker/internal/model"
)

// APIHandlers collects the handlers wired into the /v1 surface.
type APIHandlers struct {
	Objects      *handler.ObjectHandler
	Classes      *handler.ClassHandler
	Interactions *handler.InteractionHandler
	Environments *handler.EnvironmentHandler
	Rankings     *handler.RankingHandler
	Stats        *handler.StatsHandler
}

// RegisterAPI registers the registry endpoints under /v1.
//
// Two groups with distinct gates:
//   - reads: any authenticated role; GET responses go through the cache.
//   - mutations: admin only. A user-role token on these routes gets 403,
//     distinct from the 401 an unauthenticated request gets.
func RegisterAPI(e *echo.Echo, h APIHandlers, jwtSecret string, cache echo.MiddlewareFunc) {
	read := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleUser, model.RoleAdmin),
		cache,
	)

	// ---- Reads ----
	read.GET("/objects", h.Objects.ListObjects)
	read.GET("/objects/:id", h.Objects.GetObject)
	read.GET("/objects/:id/neighbors", h.Objects.Neighbors)
	read.GET("/objects/:id/environments", h.Environments.ListObjectEnvironments)
	read.GET("/classes", h.Classes.ListClasses)
	read.GET("/classes/:id", h.Classes.GetClass)
	read.GET("/classes/:id/objects", h.Classes.ListClassObjects)
	read.GET("/interactions", h.Interactions.ListInteractions)
	read.GET("/interactions/series", h.Interactions.Series)
	read.GET("/environments", h.Environments.ListEnvironments)
	read.GET("/rankings", h.Rankings.ListRankings)
	read.GET("/stats", h.Stats.GetStats)

	admin := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin),
	)

	// ---- Objects ----
	admin.POST("/objects", h.Objects.CreateObject)
	admin.PUT("/objects/:id", h.Objects.UpdateObject)
	admin.PATCH("/objects/:id", h.Objects.UpdateObject) // alias for clients that use PATCH
	admin.DELETE("/objects/:id", h.Objects.DeleteObject)

	// ---- Classes ----
	admin.POST("/classes", h.Classes.CreateClass)
	admin.PUT("/classes/:id", h.Classes.UpdateClass)
	admin.PATCH("/classes/:id", h.Classes.UpdateClass)
	admin.DELETE("/classes/:id", h.Classes.DeleteClass)

	// ---- Interactions / environments / rankings ----
	admin.POST("/interactions", h.Interactions.CreateInteraction)
	admin.POST("/environments", h.Environments.CreateEnvironment)
	admin.DELETE("/environments/:id", h.Environments.DeleteEnvironment)
	admin.POST("/rankings/rebuild", h.Rankings.RebuildRankings)
}
