package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCachedEcho(t *testing.T, cfg CacheConfig, rdb *redis.Client, calls *int) *echo.Echo {
	t.Helper()
	e := echo.New()
	e.GET("/flight-details", func(c echo.Context) error {
		*calls++
		if c.QueryParam("date") == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Date is required"})
		}
		return c.JSON(http.StatusOK, echo.Map{"calls": *calls})
	}, NewRedisCache(cfg, rdb))
	return e
}

func do(e *echo.Echo, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestRedisCacheHit(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	calls := 0
	e := newCachedEcho(t, CacheConfig{Enabled: true, TTL: time.Minute, Prefix: "fw"}, rdb, &calls)

	first := do(e, "/flight-details?date=2024-01-01")
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "MISS", first.Header().Get("X-Cache"))

	second := do(e, "/flight-details?date=2024-01-01")
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, 1, calls)

	do(e, "/flight-details?date=2024-01-02")
	assert.Equal(t, 2, calls)
}

func TestRedisCacheSkipsErrors(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	calls := 0
	e := newCachedEcho(t, CacheConfig{Enabled: true, Prefix: "fw"}, rdb, &calls)

	do(e, "/flight-details")
	rec := do(e, "/flight-details")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 2, calls)
}

func TestRedisCacheDisabled(t *testing.T) {
	calls := 0
	e := newCachedEcho(t, CacheConfig{Enabled: false}, nil, &calls)

	do(e, "/flight-details?date=2024-01-01")
	rec := do(e, "/flight-details?date=2024-01-01")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("X-Cache"))
	assert.Equal(t, 2, calls)
}
