package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test_secret")

func signTestToken(t *testing.T, secret []byte, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)
	return token
}

func runMiddleware(mw echo.MiddlewareFunc, authHeader string) (echo.Context, error) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	c := e.NewContext(req, httptest.NewRecorder())
	err := mw(func(c echo.Context) error { return nil })(c)
	return c, err
}

func TestRequireAuthMissingHeader(t *testing.T) {
	_, err := runMiddleware(RequireAuth(testSecret), "")
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	require.Equal(t, http.StatusUnauthorized, httpErr.Code)
}

func TestRequireAuthMalformedHeader(t *testing.T) {
	_, err := runMiddleware(RequireAuth(testSecret), "Basic abc123")
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	require.Equal(t, http.StatusUnauthorized, httpErr.Code)
}

func TestRequireAuthExpiredToken(t *testing.T) {
	token := signTestToken(t, testSecret, jwt.MapClaims{
		"sub": float64(7),
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	_, err := runMiddleware(RequireAuth(testSecret), "Bearer "+token)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	require.Equal(t, http.StatusForbidden, httpErr.Code)
}

func TestRequireAuthWrongSecret(t *testing.T) {
	token := signTestToken(t, []byte("other_secret"), jwt.MapClaims{
		"sub": float64(7),
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	_, err := runMiddleware(RequireAuth(testSecret), "Bearer "+token)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	require.Equal(t, http.StatusForbidden, httpErr.Code)
}

func TestRequireAuthSetsIdentity(t *testing.T) {
	token := signTestToken(t, testSecret, jwt.MapClaims{
		"sub":   float64(7),
		"roles": []string{"Tailor", "Seller"},
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	c, err := runMiddleware(RequireAuth(testSecret), "Bearer "+token)
	require.NoError(t, err)

	id, err := UserID(c)
	require.NoError(t, err)
	require.Equal(t, uint(7), id)
	require.Equal(t, []string{"Tailor", "Seller"}, Roles(c))
	require.True(t, HasRole(c, "Seller"))
	require.False(t, HasRole(c, "Admin"))
}

func TestRequireRole(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.Set("roles", []string{"MeasurementBoy"})

	next := func(c echo.Context) error { return nil }

	require.NoError(t, RequireRole("MeasurementBoy")(next)(c))
	require.NoError(t, RequireRole("Admin", "MeasurementBoy")(next)(c))

	err := RequireRole("Admin")(next)(c)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	require.Equal(t, http.StatusForbidden, httpErr.Code)
}
