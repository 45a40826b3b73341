package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/airline-booking/internal/config"
	"github.com/iliyamo/airline-booking/internal/utils"
)

func okHandler(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func TestJWTAuthMissingToken(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, JWTAuth("secret")(okHandler)(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthValidToken(t *testing.T) {
	tok, err := utils.NewAccessToken("secret", 42, "CUSTOMER", 15)
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok.Token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, JWTAuth("secret")(okHandler)(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(42), c.Get("user_id"))
	assert.Equal(t, "CUSTOMER", c.Get("role"))
}

func TestJWTAuthWrongSecret(t *testing.T) {
	tok, err := utils.NewAccessToken("other", 42, "CUSTOMER", 15)
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok.Token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, JWTAuth("secret")(okHandler)(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRole(t *testing.T) {
	cases := []struct {
		name string
		role interface{}
		want int
	}{
		{name: "allowed", role: "ADMIN", want: http.StatusOK},
		{name: "wrong role", role: "CUSTOMER", want: http.StatusForbidden},
		{name: "missing role", role: nil, want: http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodPost, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			if tc.role != nil {
				c.Set("role", tc.role)
			}

			require.NoError(t, RequireRole("ADMIN")(okHandler)(c))
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}

func TestRateLimitDisabledWithoutRedis(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := RateLimit(nil, config.RateLimitConfig{Enabled: true, Limit: 1})
	require.NoError(t, mw(okHandler)(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCacheDisabledWithoutRedis(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Cache(nil, config.CacheConfig{Enabled: true})
	require.NoError(t, mw(okHandler)(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCacheKeyDependsOnQuery(t *testing.T) {
	e := echo.New()
	reqA := httptest.NewRequest(http.MethodGet, "/v1/flights?route=1", nil)
	reqB := httptest.NewRequest(http.MethodGet, "/v1/flights?route=2", nil)
	a := cacheKey("cache", e.NewContext(reqA, httptest.NewRecorder()))
	b := cacheKey("cache", e.NewContext(reqB, httptest.NewRecorder()))
	assert.NotEqual(t, a, b)
}

func TestClientKeyPrefersUserID(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	assert.Contains(t, clientKey(c), "ip:")

	c.Set("user_id", float64(7))
	assert.Equal(t, "u:7", clientKey(c))
}
