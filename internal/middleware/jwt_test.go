package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/tareas-service/internal/utils"
)

const testSecret = "test-secret"

func callProtected(t *testing.T, authHeader string) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/usuarios/obtener", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	reached := false
	h := JWTAuth(testSecret)(func(c echo.Context) error {
		reached = true
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	return rec, reached
}

func TestJWTAuth_ValidToken(t *testing.T) {
	access, err := utils.NewAccessToken(testSecret, 7, "ana@example.com", 60)
	require.NoError(t, err)

	rec, reached := callProtected(t, "Bearer "+access.Token)
	assert.True(t, reached)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestJWTAuth_StoresClaimsInContext(t *testing.T) {
	access, err := utils.NewAccessToken(testSecret, 42, "ana@example.com", 60)
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/usuarios/obtener", nil)
	req.Header.Set("Authorization", "Bearer "+access.Token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := JWTAuth(testSecret)(func(c echo.Context) error {
		id, ok := CurrentUserID(c)
		assert.True(t, ok)
		assert.Equal(t, uint64(42), id)

		email, ok := CurrentEmail(c)
		assert.True(t, ok)
		assert.Equal(t, "ana@example.com", email)
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestJWTAuth_MissingHeader(t *testing.T) {
	rec, reached := callProtected(t, "")
	assert.False(t, reached)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Token de acceso requerido")
}

func TestJWTAuth_NotBearer(t *testing.T) {
	rec, reached := callProtected(t, "Basic abc123")
	assert.False(t, reached)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuth_ExpiredToken(t *testing.T) {
	access, err := utils.NewAccessToken(testSecret, 7, "ana@example.com", -1)
	require.NoError(t, err)

	rec, reached := callProtected(t, "Bearer "+access.Token)
	assert.False(t, reached)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "El token ha expirado")
}

func TestJWTAuth_ForgedToken(t *testing.T) {
	access, err := utils.NewAccessToken("other-secret", 7, "ana@example.com", 60)
	require.NoError(t, err)

	rec, reached := callProtected(t, "Bearer "+access.Token)
	assert.False(t, reached)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Token inválido")
}

func TestCurrentUserID_Unauthenticated(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	_, ok := CurrentUserID(c)
	assert.False(t, ok)
}
