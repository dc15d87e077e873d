package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/tareas-service/internal/config"
	"github.com/iliyamo/tareas-service/internal/repository"
)

// The DB-free tests below cover everything that happens before the store is
// touched: binding, normalization and per-field validation. Passing a nil
// *sql.DB is safe because every rejected request returns first.

func newUsuarioHandler() *UsuarioHandler {
	cfg := config.Config{JWTSecret: "test-secret", AccessTTLMin: 60, BcryptCost: 4}
	return NewUsuarioHandler(cfg, repository.NewUsuarioRepo(nil))
}

func postJSON(path, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestRegistrar_InvalidBody(t *testing.T) {
	c, rec := postJSON("/usuarios/registrar", "{not json")
	require.NoError(t, newUsuarioHandler().Registrar(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegistrar_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			"missing nombre",
			`{"email":"ana@example.com","password":"abc123"}`,
			"El nombre es requerido",
		},
		{
			"bad nombre",
			`{"nombre":"Ana123","email":"ana@example.com","password":"abc123"}`,
			"El nombre solo puede contener letras, espacios, puntos, guiones y apóstrofes",
		},
		{
			"bad email",
			`{"nombre":"Ana Gómez","email":"ana-example.com","password":"abc123"}`,
			"El formato del email no es válido",
		},
		{
			"password without digit",
			`{"nombre":"Ana Gómez","email":"ana@example.com","password":"abcdef"}`,
			"La contraseña debe contener al menos una letra y un número",
		},
		{
			"password too short",
			`{"nombre":"Ana Gómez","email":"ana@example.com","password":"a1"}`,
			"La contraseña debe tener al menos 6 caracteres",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := postJSON("/usuarios/registrar", tt.body)
			require.NoError(t, newUsuarioHandler().Registrar(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.want)
		})
	}
}

func TestLogin_MissingFields(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty body", `{}`},
		{"missing password", `{"email":"ana@example.com"}`},
		{"missing email", `{"password":"abc123"}`},
		{"whitespace email", `{"email":"   ","password":"abc123"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := postJSON("/usuarios/login", tt.body)
			require.NoError(t, newUsuarioHandler().Login(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), "Email y contraseña son obligatorios")
		})
	}
}

func TestLogin_BadEmailFormat(t *testing.T) {
	c, rec := postJSON("/usuarios/login", `{"email":"not-an-email","password":"abc123"}`)
	require.NoError(t, newUsuarioHandler().Login(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "El formato del email no es válido")
}
