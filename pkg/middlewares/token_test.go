package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"study_portal_service/pkg/token"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGuardedApp() *fiber.App {
	app := fiber.New()
	app.Get("/guarded", JWTMiddleware(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"userId": c.Locals(TokenUserID),
			"name":   c.Locals(TokenUserName),
			"role":   c.Locals(TokenRole),
		})
	})
	return app
}

func TestJWTMiddleware(t *testing.T) {
	tokenStr, err := token.GenerateJWT("u1", "Alice", string(token.RoleTeacher), "chat_service")
	require.NoError(t, err)

	t.Run("missing token", func(t *testing.T) {
		app := newGuardedApp()
		req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("invalid token", func(t *testing.T) {
		app := newGuardedApp()
		req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer not-a-jwt")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("authorization header", func(t *testing.T) {
		app := newGuardedApp()
		req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+tokenStr)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("query parameter", func(t *testing.T) {
		app := newGuardedApp()
		req := httptest.NewRequest(http.MethodGet, "/guarded?auth="+tokenStr, nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("cookie", func(t *testing.T) {
		app := newGuardedApp()
		req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
		req.AddCookie(&http.Cookie{Name: CookieToken, Value: tokenStr})
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}
