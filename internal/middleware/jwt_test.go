package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinetix/backend/internal/utils"
)

const testSecret = "test-secret"

func runJWTAuth(t *testing.T, authorization string) (echo.Context, *httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := JWTAuth(testSecret)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})(c)
	return c, rec, err
}

func TestJWTAuthInjectsIdentityClaims(t *testing.T) {
	tok, err := utils.NewAccessToken(testSecret, "u1", "u1@example.com", "Dina", "user", 5)
	require.NoError(t, err)

	c, rec, err := runJWTAuth(t, "Bearer "+tok.Token)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "u1", c.Get("user_id"))
	assert.Equal(t, "user", c.Get("role"))
	assert.Equal(t, "u1@example.com", c.Get("email"))
	assert.Equal(t, "Dina", c.Get("full_name"))
}

func TestJWTAuthWithoutIdentityHints(t *testing.T) {
	tok, err := utils.NewAccessToken(testSecret, "u1", "", "", "admin", 5)
	require.NoError(t, err)

	c, rec, err := runJWTAuth(t, "Bearer "+tok.Token)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "u1", c.Get("user_id"))
	assert.Nil(t, c.Get("email"))
	assert.Nil(t, c.Get("full_name"))
}

func TestJWTAuthRejectsMissingBearer(t *testing.T) {
	_, rec, err := runJWTAuth(t, "")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthRejectsWrongSecret(t *testing.T) {
	tok, err := utils.NewAccessToken("other-secret", "u1", "u1@example.com", "Dina", "user", 5)
	require.NoError(t, err)

	_, rec, err := runJWTAuth(t, "Bearer "+tok.Token)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
