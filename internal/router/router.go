// Package router wires HTTP routes to handlers and middleware.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/tareas-service/internal/config"
	"github.com/iliyamo/tareas-service/internal/handler"
	"github.com/iliyamo/tareas-service/internal/middleware"
)

// Register mounts every route. The register and login endpoints are rate
// limited; the public tareas listing is cached; user listing and tarea
// mutations require a Bearer token. The rdb client may be nil, in which
// case rate limiting and caching become pass-throughs.
func Register(e *echo.Echo, cfg config.Config, u *handler.UsuarioHandler, t *handler.TareaHandler, rdb *redis.Client) {
	e.GET("/healthz", handler.Health)

	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	auth := middleware.JWTAuth(cfg.JWTSecret)

	usuarios := e.Group("/usuarios")
	usuarios.POST("/registrar", u.Registrar, limiter)
	usuarios.POST("/login", u.Login, limiter)
	usuarios.GET("/obtener", u.Obtener, auth)

	tareas := e.Group("/tareas")
	tareas.GET("/obtener", t.Obtener, cache)
	tareas.POST("/crear", t.Crear, auth)
	tareas.PUT("/modificar/:id", t.Modificar, auth)
}
