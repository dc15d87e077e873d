package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/tareas-service/internal/config"
	"github.com/iliyamo/tareas-service/internal/middleware"
	"github.com/iliyamo/tareas-service/internal/queue"
	"github.com/iliyamo/tareas-service/internal/repository"
	queuepublisher "github.com/iliyamo/tareas-service/internal/service"
	"github.com/iliyamo/tareas-service/internal/validation"
)

// TareaHandler bundles dependencies for the tareas endpoints.
type TareaHandler struct {
	Cfg    config.Config
	Tareas *repository.TareaRepo
}

func NewTareaHandler(cfg config.Config, t *repository.TareaRepo) *TareaHandler {
	return &TareaHandler{Cfg: cfg, Tareas: t}
}

// ----- DTOs -----

type crearTareaReq struct {
	Descripcion string `json:"descripcion"`
	UsuarioID   uint64 `json:"usuario_id"`
}

type modificarTareaReq struct {
	Descripcion string `json:"descripcion"`
}

// Obtener lists tareas joined with the owner's name, newest first. The
// optional usuario_id query parameter filters by owner. A user with no
// tareas gets 200 with an empty array, not an error.
func (h *TareaHandler) Obtener(c echo.Context) error {
	var usuarioID *uint64
	if raw := c.QueryParam("usuario_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "El usuario_id debe ser un número"})
		}
		usuarioID = &id
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	tareas, err := h.Tareas.List(ctx, usuarioID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Error al obtener las tareas"})
	}
	return c.JSON(http.StatusOK, echo.Map{"tareas": tareas})
}

// Crear creates a tarea owned by the authenticated user. A usuario_id in
// the body is accepted for compatibility but must match the token's
// subject; tasks cannot be created on someone else's behalf.
func (h *TareaHandler) Crear(c echo.Context) error {
	var req crearTareaReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Cuerpo de la solicitud inválido"})
	}
	if reason := validation.ValidarDescripcion(req.Descripcion); reason != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": reason})
	}

	ownerID, ok := middleware.CurrentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Token de acceso requerido"})
	}
	if req.UsuarioID != 0 && req.UsuarioID != ownerID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "No puedes crear tareas para otro usuario"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	t, err := h.Tareas.Create(ctx, req.Descripcion, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrUsuarioNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "El usuario no existe"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Error al crear la tarea"})
	}

	// Best effort: a broker outage never fails the creation.
	go func(evt queue.TareaCreadaEvent) {
		pubCtx, pubCancel := context.WithTimeout(context.Background(), dbTimeout)
		defer pubCancel()
		_ = queuepublisher.PublishTareaCreada(pubCtx, evt)
	}(queue.TareaCreadaEvent{
		TareaID:     t.ID,
		Descripcion: t.Descripcion,
		UsuarioID:   t.UsuarioID,
		CreadaEn:    t.CreadoEn.UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Tarea creada exitosamente",
		"tarea":   t,
	})
}

// Modificar updates a tarea's description. The owner relationship is fixed
// at creation and cannot be changed here.
func (h *TareaHandler) Modificar(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "El id de la tarea debe ser un número"})
	}

	var req modificarTareaReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Cuerpo de la solicitud inválido"})
	}
	if reason := validation.ValidarDescripcion(req.Descripcion); reason != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": reason})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	t, err := h.Tareas.UpdateDescripcion(ctx, id, req.Descripcion)
	if err != nil {
		if errors.Is(err, repository.ErrTareaNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "La tarea no existe"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Error al actualizar la tarea"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Tarea actualizada exitosamente",
		"tarea":   t,
	})
}
