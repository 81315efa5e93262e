package http_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pregao-api/internal/domain/entity"
	httpapi "github.com/jhoicas/pregao-api/internal/interfaces/http"
	"github.com/jhoicas/pregao-api/pkg/jwt"
)

const testSecret = "secreto-de-prueba"

// buildTestApp arma una app mínima con una ruta protegida por rol y otra que
// solo exige token, para ejercitar la cadena AuthMiddleware → RequireRole.
func buildTestApp() *fiber.App {
	app := fiber.New()
	protected := app.Group("/", httpapi.AuthMiddleware(testSecret))
	protected.Get("/perfil", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id":    httpapi.GetUserID(c),
			"company_id": httpapi.GetCompanyID(c),
			"role":       httpapi.GetRole(c),
		})
	})
	protected.Post("/admin", httpapi.RequireRole(entity.RoleAdmin), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})
	return app
}

func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	token, err := jwt.Generate(testSecret, "pregao-api", 15*time.Minute, jwt.Identity{
		UserID: "u1", CompanyID: "c1", Role: role,
	})
	require.NoError(t, err)
	return token
}

func TestAuthMiddleware_TokenValido(t *testing.T) {
	app := buildTestApp()

	req := httptest.NewRequest("GET", "/perfil", nil)
	req.Header.Set("Authorization", "Bearer "+tokenForRole(t, entity.RoleVendedor))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAuthMiddleware_SinToken(t *testing.T) {
	app := buildTestApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/perfil", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_HeaderMalformado(t *testing.T) {
	app := buildTestApp()

	for _, header := range []string{"Basic abc", "Bearer", "Bearer "} {
		req := httptest.NewRequest("GET", "/perfil", nil)
		req.Header.Set("Authorization", header)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, "header %q", header)
	}
}

func TestAuthMiddleware_FirmaIncorrecta(t *testing.T) {
	app := buildTestApp()

	token, err := jwt.Generate("otro-secreto", "pregao-api", 15*time.Minute, jwt.Identity{
		UserID: "u1", CompanyID: "c1", Role: entity.RoleAdmin,
	})
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/perfil", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireRole_PermiteYRechaza(t *testing.T) {
	app := buildTestApp()

	req := httptest.NewRequest("POST", "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+tokenForRole(t, entity.RoleAdmin))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	req = httptest.NewRequest("POST", "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+tokenForRole(t, entity.RoleVendedor))
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
