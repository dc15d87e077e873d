// Package handler contains the HTTP handlers for the usuarios and tareas
// endpoints. Handlers validate input before touching the store, bound each
// store call with a request-scoped timeout, and map repository sentinel
// errors onto JSON responses with an "error" field. Raw driver errors never
// reach the client.
package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/tareas-service/internal/config"
	"github.com/iliyamo/tareas-service/internal/model"
	"github.com/iliyamo/tareas-service/internal/queue"
	"github.com/iliyamo/tareas-service/internal/repository"
	queuepublisher "github.com/iliyamo/tareas-service/internal/service"
	"github.com/iliyamo/tareas-service/internal/utils"
	"github.com/iliyamo/tareas-service/internal/validation"
)

const dbTimeout = 5 * time.Second

// UsuarioHandler bundles dependencies for the usuarios endpoints.
type UsuarioHandler struct {
	Cfg      config.Config
	Usuarios *repository.UsuarioRepo
}

func NewUsuarioHandler(cfg config.Config, u *repository.UsuarioRepo) *UsuarioHandler {
	return &UsuarioHandler{Cfg: cfg, Usuarios: u}
}

// ----- DTOs -----

type registrarReq struct {
	Nombre   string `json:"nombre"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type usuarioResumen struct {
	Nombre string `json:"nombre"`
	Email  string `json:"email"`
}

type loginUsuario struct {
	ID     uint64 `json:"id"`
	Nombre string `json:"nombre"`
	Email  string `json:"email"`
}

// Registrar creates a user account. Validation runs before any store
// access and the first failing field's reason is returned as a 400.
func (h *UsuarioHandler) Registrar(c echo.Context) error {
	var req registrarReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Cuerpo de la solicitud inválido"})
	}
	req.Nombre = strings.TrimSpace(req.Nombre)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	for _, reason := range []string{
		validation.ValidarNombre(req.Nombre),
		validation.ValidarEmail(req.Email),
		validation.ValidarPassword(req.Password),
	} {
		if reason != "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": reason})
		}
	}

	hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Error al registrar el usuario"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	u, err := h.Usuarios.Create(ctx, req.Nombre, req.Email, hash)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "El usuario ya existe"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Error al registrar el usuario"})
	}

	// Best effort: a broker outage never fails the registration.
	go func(evt queue.UsuarioRegistradoEvent) {
		pubCtx, pubCancel := context.WithTimeout(context.Background(), dbTimeout)
		defer pubCancel()
		_ = queuepublisher.PublishUsuarioRegistrado(pubCtx, evt)
	}(queue.UsuarioRegistradoEvent{
		UsuarioID:    u.ID,
		Nombre:       u.Nombre,
		Email:        u.Email,
		RegistradoEn: u.CreadoEn.UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Usuario registrado exitosamente",
		"user":    usuarioResumen{Nombre: u.Nombre, Email: u.Email},
	})
}

// Login verifies credentials and issues an access token. Unknown email and
// wrong password both answer 401 with the same message so the endpoint
// cannot be used to enumerate accounts.
func (h *UsuarioHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Cuerpo de la solicitud inválido"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Email y contraseña son obligatorios"})
	}
	if reason := validation.ValidarEmail(req.Email); reason != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": reason})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	u, err := h.Usuarios.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUsuarioNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Credenciales inválidas"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Error al iniciar sesión"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Credenciales inválidas"})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, u.Email, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Error al iniciar sesión"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"access_token": access.Token,
		"expira_en":    access.Exp,
		"user":         loginUsuario{ID: u.ID, Nombre: u.Nombre, Email: u.Email},
	})
}

// Obtener lists every user's public summary. Protected: requires a valid
// access token.
func (h *UsuarioHandler) Obtener(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	usuarios, err := h.Usuarios.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Error al obtener los usuarios"})
	}

	publicos := make([]model.UsuarioPublico, 0, len(usuarios))
	for _, u := range usuarios {
		publicos = append(publicos, u.Publico())
	}
	return c.JSON(http.StatusOK, echo.Map{
		"usuarios": publicos,
		"total":    len(publicos),
	})
}
