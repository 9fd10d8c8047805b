package cache

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCache_WriteRead(t *testing.T) {
	c := New(t.TempDir(), time.Minute)

	_, _, ok := c.Read("/api/services")
	assert.False(t, ok)

	require.NoError(t, c.Write("/api/services", "application/json; charset=utf-8", []byte(`{"docs":[]}`)))

	contentType, body, ok := c.Read("/api/services")
	require.True(t, ok)
	assert.Equal(t, "application/json; charset=utf-8", contentType)
	assert.Equal(t, `{"docs":[]}`, string(body))

	assert.NotEqual(t, c.Path("/api/services"), c.Path("/api/posts"))
	assert.Equal(t, c.Path("/api/services"), c.Path("/api/services"))
}

func TestCache_ReadSplitsOnFirstNewline(t *testing.T) {
	c := New(t.TempDir(), time.Minute)
	body := "<urlset>\n  <url/>\n</urlset>\n"
	require.NoError(t, c.Write("/sitemap.xml", "application/xml", []byte(body)))

	contentType, got, ok := c.Read("/sitemap.xml")
	require.True(t, ok)
	assert.Equal(t, "application/xml", contentType)
	assert.Equal(t, body, string(got))
}

func TestCache_Expiry(t *testing.T) {
	c := New(t.TempDir(), time.Minute)
	require.NoError(t, c.Write("old", "text/plain", []byte("x")))
	require.NoError(t, c.Write("fresh", "text/plain", []byte("y")))

	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(c.Path("old"), past, past))

	_, _, ok := c.Read("old")
	assert.False(t, ok)

	n, err := c.ClearOld()
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, _, ok = c.Read("fresh")
	assert.True(t, ok)
}

func TestCache_Clear(t *testing.T) {
	c := New(t.TempDir(), time.Minute)
	for _, k := range []string{"a", "b", "c"} {
		require.NoError(t, c.Write(k, "text/plain", []byte(k)))
	}

	n, err := c.Clear()
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = New(t.TempDir()+"/missing", time.Minute).Clear()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func setupTestRouter(c *Cache, calls *int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Middleware(c, zap.NewNop()))
	router.GET("/api/services", func(ctx *gin.Context) {
		*calls++
		ctx.JSON(http.StatusOK, gin.H{"calls": *calls})
	})
	router.GET("/api/missing", func(ctx *gin.Context) {
		*calls++
		ctx.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})
	router.POST("/api/services", func(ctx *gin.Context) {
		*calls++
		ctx.Status(http.StatusNoContent)
	})
	return router
}

func do(router *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestMiddleware_HitAfterMiss(t *testing.T) {
	calls := 0
	router := setupTestRouter(New(t.TempDir(), time.Minute), &calls)

	first := do(router, http.MethodGet, "/api/services")
	assert.Equal(t, "MISS", first.Header().Get("X-Cache"))

	second := do(router, http.MethodGet, "/api/services")
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, "application/json; charset=utf-8", second.Header().Get("Content-Type"))
	assert.Equal(t, 1, calls)
}

func TestMiddleware_SkipsErrorsAndWrites(t *testing.T) {
	calls := 0
	router := setupTestRouter(New(t.TempDir(), time.Minute), &calls)

	do(router, http.MethodGet, "/api/missing")
	w := do(router, http.MethodGet, "/api/missing")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "MISS", w.Header().Get("X-Cache"))

	do(router, http.MethodPost, "/api/services")
	do(router, http.MethodPost, "/api/services")
	assert.Equal(t, 4, calls)
}

func TestMiddleware_NilCache(t *testing.T) {
	calls := 0
	router := setupTestRouter(nil, &calls)

	do(router, http.MethodGet, "/api/services")
	w := do(router, http.MethodGet, "/api/services")
	assert.Empty(t, w.Header().Get("X-Cache"))
	assert.Equal(t, 2, calls)
}
