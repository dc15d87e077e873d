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

func newTareaHandler() *TareaHandler {
	cfg := config.Config{JWTSecret: "test-secret", AccessTTLMin: 60}
	return NewTareaHandler(cfg, repository.NewTareaRepo(nil))
}

func TestCrearTarea_InvalidBody(t *testing.T) {
	c, rec := postJSON("/tareas/crear", "{not json")
	require.NoError(t, newTareaHandler().Crear(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCrearTarea_DescripcionRequerida(t *testing.T) {
	for _, body := range []string{`{}`, `{"descripcion":"   "}`} {
		c, rec := postJSON("/tareas/crear", body)
		require.NoError(t, newTareaHandler().Crear(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "La descripcion es requerida")
	}
}

func TestCrearTarea_SinToken(t *testing.T) {
	// Routes mount Crear behind JWTAuth; a request that somehow reaches the
	// handler without claims in context is still rejected.
	c, rec := postJSON("/tareas/crear", `{"descripcion":"Comprar pan"}`)
	require.NoError(t, newTareaHandler().Crear(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCrearTarea_OtroUsuario(t *testing.T) {
	c, rec := postJSON("/tareas/crear", `{"descripcion":"Comprar pan","usuario_id":99}`)
	c.Set("user_id", uint64(7))
	require.NoError(t, newTareaHandler().Crear(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "No puedes crear tareas para otro usuario")
}

func putJSON(path, id, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPut, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/tareas/modificar/:id")
	c.SetParamNames("id")
	c.SetParamValues(id)
	return c, rec
}

func TestModificarTarea_IDInvalido(t *testing.T) {
	for _, id := range []string{"abc", "0", "-3"} {
		c, rec := putJSON("/tareas/modificar/"+id, id, `{"descripcion":"Comprar pan"}`)
		require.NoError(t, newTareaHandler().Modificar(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "El id de la tarea debe ser un número")
	}
}

func TestModificarTarea_DescripcionRequerida(t *testing.T) {
	c, rec := putJSON("/tareas/modificar/1", "1", `{"descripcion":""}`)
	require.NoError(t, newTareaHandler().Modificar(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "La descripcion es requerida")
}

func TestObtenerTareas_UsuarioIDInvalido(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/tareas/obtener?usuario_id=abc", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, newTareaHandler().Obtener(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "El usuario_id debe ser un número")
}
