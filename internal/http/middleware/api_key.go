package middleware

import (
	"net/http"
	"strings"

	echo "github.com/labstack/echo/v4"

	"github.com/mesalista/backend/internal/config"
)

// ClientFromCtx extracts the authenticated API client name set by
// APIKeyMiddleware.
func ClientFromCtx(c echo.Context) (string, bool) {
	v := c.Get("api_client")
	name, ok := v.(string)
	return name, ok
}

// APIKeyMiddleware authenticates requests using the X-API-Key header against
// the configured client list. On success it stores the client name (and its
// rate limit, when set) in context.
func APIKeyMiddleware(clients []config.APIClient) echo.MiddlewareFunc {
	byKey := make(map[string]config.APIClient, len(clients))
	for _, cl := range clients {
		if cl.Key != "" {
			byKey[cl.Key] = cl
		}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := strings.TrimSpace(c.Request().Header.Get("X-API-Key"))
			if key == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing api key"})
			}
			cl, ok := byKey[key]
			if !ok {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid api key"})
			}
			c.Set("api_client", cl.Name)
			if cl.RPS > 0 {
				c.Set("api_client_rps", cl.RPS)
			}
			return next(c)
		}
	}
}
