package auth_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"beasiswaku_backend/internals/configs"
	"beasiswaku_backend/internals/middlewares/auth"
)

const testSecret = "rahasia-test"

func signTestToken(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":   userID.String(),
		"role": "admin",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func newAuthTestApp() *fiber.App {
	app := fiber.New()
	app.Get("/whoami", auth.AuthMiddleware(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id": c.Locals("user_id"),
			"role":    c.Locals("role"),
		})
	})
	return app
}

// Token valid harus diterima lewat header Authorization.
func TestAuthMiddlewareAcceptsBearerHeader(t *testing.T) {
	configs.JWTSecret = testSecret
	signed := signTestToken(t, uuid.New())
	app := newAuthTestApp()

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

// Jalur cookie access_token juga harus diterima.
func TestAuthMiddlewareAcceptsCookieToken(t *testing.T) {
	configs.JWTSecret = testSecret
	signed := signTestToken(t, uuid.New())
	app := newAuthTestApp()

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Cookie", "access_token="+signed)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

// Tanpa token sama sekali → 401.
func TestAuthMiddlewareRejectsMissingToken(t *testing.T) {
	configs.JWTSecret = testSecret
	app := newAuthTestApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/whoami", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
