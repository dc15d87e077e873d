package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/tareas-service/internal/config"
	"github.com/iliyamo/tareas-service/internal/database"
	"github.com/iliyamo/tareas-service/internal/handler"
	"github.com/iliyamo/tareas-service/internal/queue"
	"github.com/iliyamo/tareas-service/internal/repository"
	"github.com/iliyamo/tareas-service/internal/router"
	queuepublisher "github.com/iliyamo/tareas-service/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file found, using environment variables")
	}
	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer func() { _ = db.Close() }()

	// Redis is optional: without it, rate limiting and caching are no-ops.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable: rate limiting and caching disabled")
	}

	usuarioHandler := handler.NewUsuarioHandler(cfg, repository.NewUsuarioRepo(db))
	tareaHandler := handler.NewTareaHandler(cfg, repository.NewTareaRepo(db))

	go queue.StartActividadConsumer(queuepublisher.BrokerURL())

	e := echo.New()
	router.Register(e, cfg, usuarioHandler, tareaHandler, rdb)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
