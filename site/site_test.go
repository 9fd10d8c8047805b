package site

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"episolve/cache"
	"episolve/cms"
	"episolve/models"
	"episolve/richtext"
	"episolve/storetest"
)

func setupTestRouter(t *testing.T, c *cache.Cache) (*gin.Engine, cms.Client) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store := storetest.Client(t)
	router := gin.New()
	NewSiteModule(store, c, "https://episolve.test/", zap.NewNop()).RegisterRoutes(router)
	return router, store
}

func create(t *testing.T, store cms.Client, collection string, v any) cms.Document {
	t.Helper()
	doc, err := store.Create(context.Background(), collection, cms.MustDocument(v))
	require.NoError(t, err)
	return doc
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	router.ServeHTTP(w, req)
	return w
}

type listBody struct {
	Docs      []cms.Document `json:"docs"`
	TotalDocs int64          `json:"totalDocs"`
}

func TestServices_OnlyPublished(t *testing.T) {
	router, store := setupTestRouter(t, nil)
	create(t, store, models.CollectionServices, models.Service{Title: "Cloud", Slug: "cloud", Order: 2, Status: models.StatusPublished})
	create(t, store, models.CollectionServices, models.Service{Title: "AI", Slug: "ai", Order: 1, Status: models.StatusPublished, Featured: true})
	create(t, store, models.CollectionServices, models.Service{Title: "Secret", Slug: "secret", Status: models.StatusDraft})

	w := get(router, "/api/services")
	require.Equal(t, http.StatusOK, w.Code)
	var body listBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, int64(2), body.TotalDocs)
	require.Len(t, body.Docs, 2)
	assert.Equal(t, "ai", body.Docs[0].String("slug"))

	w = get(router, "/api/services?featured=true")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, int64(1), body.TotalDocs)

	assert.Equal(t, http.StatusOK, get(router, "/api/services/cloud").Code)
	assert.Equal(t, http.StatusNotFound, get(router, "/api/services/secret").Code)
	assert.Equal(t, http.StatusNotFound, get(router, "/api/services/nope").Code)
}

func TestPost_RendersHTML(t *testing.T) {
	router, store := setupTestRouter(t, nil)
	now := time.Now()
	create(t, store, models.CollectionPosts, models.Post{
		Title:       "Hello",
		Slug:        "hello",
		Content:     richtext.Paragraph("Hello from the blog."),
		Status:      models.StatusPublished,
		PublishedAt: &now,
	})

	w := get(router, "/api/posts/hello")
	require.Equal(t, http.StatusOK, w.Code)

	var doc cms.Document
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	assert.Contains(t, doc.String("html"), "<p>")
	assert.Contains(t, doc.String("html"), "Hello from the blog.")
}

func TestGlobals(t *testing.T) {
	router, store := setupTestRouter(t, nil)

	assert.Equal(t, http.StatusNotFound, get(router, "/api/globals/header").Code)
	assert.Equal(t, http.StatusNotFound, get(router, "/api/globals/sidebar").Code)

	_, err := store.UpdateGlobal(context.Background(), models.GlobalHeader, cms.MustDocument(models.Header{
		NavItems: []models.Link{{Label: "Home", URL: "/"}},
	}))
	require.NoError(t, err)

	w := get(router, "/api/globals/header")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"label":"Home"`)
}

func TestSitemap(t *testing.T) {
	router, store := setupTestRouter(t, nil)
	create(t, store, models.CollectionServices, models.Service{Title: "Cloud", Slug: "cloud", Status: models.StatusPublished})
	create(t, store, models.CollectionServices, models.Service{Title: "Secret", Slug: "secret"})
	create(t, store, models.CollectionPages, models.Page{Title: "Home", Slug: "home", Status: models.StatusPublished})
	create(t, store, models.CollectionPages, models.Page{Title: "About", Slug: "about", Status: models.StatusPublished})

	w := get(router, "/sitemap.xml")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/xml; charset=utf-8", w.Header().Get("Content-Type"))

	body := w.Body.String()
	assert.Contains(t, body, "<loc>https://episolve.test/services/cloud</loc>")
	assert.Contains(t, body, "<loc>https://episolve.test/about</loc>")
	assert.Contains(t, body, "<lastmod>")
	assert.NotContains(t, body, "secret")
	assert.NotContains(t, body, "https://episolve.test/home<")
}

func TestSitemap_EscapesSlugs(t *testing.T) {
	router, store := setupTestRouter(t, nil)
	create(t, store, models.CollectionPages, models.Page{Title: "R&D", Slug: "r&d", Status: models.StatusPublished})
	create(t, store, models.CollectionPages, models.Page{Title: "Our Team", Slug: "our team", Status: models.StatusPublished})

	w := get(router, "/sitemap.xml")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<loc>https://episolve.test/r&amp;d</loc>")

	var urlset struct {
		URLs []struct {
			Loc string `xml:"loc"`
		} `xml:"url"`
	}
	require.NoError(t, xml.Unmarshal(w.Body.Bytes(), &urlset))
	var locs []string
	for _, u := range urlset.URLs {
		locs = append(locs, u.Loc)
	}
	assert.Contains(t, locs, "https://episolve.test/r&d")
	assert.Contains(t, locs, "https://episolve.test/our%20team")
}

func TestResponsesAreCached(t *testing.T) {
	router, store := setupTestRouter(t, cache.New(t.TempDir(), time.Minute))
	create(t, store, models.CollectionServices, models.Service{Title: "Cloud", Slug: "cloud", Status: models.StatusPublished})

	first := get(router, "/api/services")
	assert.Equal(t, "MISS", first.Header().Get("X-Cache"))

	create(t, store, models.CollectionServices, models.Service{Title: "AI", Slug: "ai", Status: models.StatusPublished})

	second := get(router, "/api/services")
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.Equal(t, first.Body.String(), second.Body.String())
}
