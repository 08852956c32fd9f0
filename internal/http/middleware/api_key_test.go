package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	echo "github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesalista/backend/internal/config"
)

func callWithKey(t *testing.T, mw echo.MiddlewareFunc, key string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if key != "" {
		req.Header.Set("X-API-Key", key)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := mw(func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	require.NoError(t, handler(c))
	return rec, c
}

func TestAPIKeyMiddleware_ValidKey(t *testing.T) {
	mw := APIKeyMiddleware([]config.APIClient{
		{Name: "acme", Key: "secret-1", RPS: 25},
	})

	rec, c := callWithKey(t, mw, "secret-1")
	assert.Equal(t, http.StatusOK, rec.Code)

	name, ok := ClientFromCtx(c)
	require.True(t, ok)
	assert.Equal(t, "acme", name)
	assert.Equal(t, 25, c.Get("api_client_rps"))
}

func TestAPIKeyMiddleware_MissingKey(t *testing.T) {
	mw := APIKeyMiddleware([]config.APIClient{{Name: "acme", Key: "secret-1"}})

	rec, c := callWithKey(t, mw, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	_, ok := ClientFromCtx(c)
	assert.False(t, ok)
}

func TestAPIKeyMiddleware_UnknownKey(t *testing.T) {
	mw := APIKeyMiddleware([]config.APIClient{{Name: "acme", Key: "secret-1"}})

	rec, _ := callWithKey(t, mw, "wrong")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAPIKeyMiddleware_NoRPSWhenUnset(t *testing.T) {
	mw := APIKeyMiddleware([]config.APIClient{{Name: "acme", Key: "secret-1"}})

	_, c := callWithKey(t, mw, "secret-1")
	assert.Nil(t, c.Get("api_client_rps"))
}
