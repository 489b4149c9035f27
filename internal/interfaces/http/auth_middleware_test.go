package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/libreria-facturacion/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/libreria-facturacion/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "user_2bX9"
	testIssuer    = "libreria-test"
	testExpMin    = 60
)

// buildAuthApp aplicación mínima con AuthMiddleware y un handler que devuelve el usuario.
func buildAuthApp() *fiber.App {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret, testIssuer), func(c *fiber.Ctx) error {
		u := apphttp.GetUsuario(c)
		return c.JSON(fiber.Map{"id": u.ID, "email": u.Email, "nombre": u.Nombre})
	})
	return app
}

func bearer(t *testing.T) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testIssuer,
		pkgjwt.Sesion{UserID: testUserID, Email: "ana@libreria.es", Nombre: "Ana"}, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

func getMe(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_CargaUsuario(t *testing.T) {
	resp := getMe(t, buildAuthApp(), bearer(t))
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["id"])
	assert.Equal(t, "ana@libreria.es", body["email"])
	assert.Equal(t, "Ana", body["nombre"])
}

func TestAuthMiddleware_SinHeader_Retorna401(t *testing.T) {
	resp := getMe(t, buildAuthApp(), "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_TOKEN")
}

func TestAuthMiddleware_FormatoIncorrecto_Retorna401(t *testing.T) {
	resp := getMe(t, buildAuthApp(), "Token abc")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_TOKEN")
}

func TestAuthMiddleware_TokenInvalido_Retorna401(t *testing.T) {
	resp := getMe(t, buildAuthApp(), "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_OtroEmisor_Retorna401(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, "otro", pkgjwt.Sesion{UserID: testUserID}, testExpMin)
	require.NoError(t, err)

	resp := getMe(t, buildAuthApp(), "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "el emisor debe coincidir")
}

func TestAuthMiddleware_TokenExpirado_Retorna401(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testIssuer, pkgjwt.Sesion{UserID: testUserID}, -1)
	require.NoError(t, err)

	resp := getMe(t, buildAuthApp(), "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
