// Package router defines how HTTP routes are registered for the API. Route
// groups are constructed with their middleware in a fixed order: the JWT
// authenticator always precedes the role check, so a request can never hit
// the authorizer without an attached identity.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/visolab/viso-tracker/internal/handler"
	"github.com/visolab/viso-tracker/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication.
// Currently it exposes only a health check, used by load balancers to
// verify that the service is up.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication-related routes. Unauthenticated
// operations live under /v1/auth and share the rate limiter; /v1/auth/me
// requires a valid access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string, limiter echo.MiddlewareFunc) {
	g := e.Group("/v1/auth", limiter)
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)
	g.GET("/me", a.Me, middleware.JWTAuth(jwtSecret))
}
