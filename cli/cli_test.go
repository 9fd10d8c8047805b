package cli

import (
	"bytes"
	"context"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"episolve/cache"
	"episolve/cms"
	"episolve/content"
	"episolve/models"
	"episolve/records"
	"episolve/storetest"
)

type harness struct {
	app    *App
	store  *cms.Store
	out    *bytes.Buffer
	errOut *bytes.Buffer
}

func newHarness(t *testing.T, input string) *harness {
	t.Helper()
	h := &harness{store: storetest.Client(t), out: &bytes.Buffer{}, errOut: &bytes.Buffer{}}
	ops := records.New(h.store, content.NewGenerator(rand.NewPCG(5, 6), content.DefaultBrand), zap.NewNop(),
		records.WithOutput(h.out),
		records.WithMedia(t.TempDir(), "/media"),
	)
	h.app = &App{
		Ops:   ops,
		Cache: cache.New(t.TempDir(), time.Hour),
		In:    strings.NewReader(input),
		Out:   h.out,
		Err:   h.errOut,
		Log:   zap.NewNop(),
	}
	return h
}

func (h *harness) run(args ...string) int {
	return Run(context.Background(), h.app, args)
}

func (h *harness) count(t *testing.T, collection string) int64 {
	t.Helper()
	n, err := h.store.Count(context.Background(), collection, cms.Query{})
	require.NoError(t, err)
	return n
}

func TestRun_GenerateCreateService(t *testing.T) {
	h := newHarness(t, "")

	code := h.run("generate", "service", "create", "--title", "Cloud Security", "--keywords", "AWS,compliance", "--icon", "shield")
	require.Equal(t, 0, code, h.out.String())

	res, err := h.store.Find(context.Background(), models.CollectionServices, cms.Query{
		Where: []cms.Condition{cms.Eq("slug", "cloud-security")},
	})
	require.NoError(t, err)
	require.Len(t, res.Docs, 1)
	assert.Equal(t, "shield", res.Docs[0].String("icon"))
	assert.Contains(t, h.out.String(), "URL: /services/cloud-security")
}

func TestRun_UsageErrorsExitOne(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"generate without action", []string{"generate", "service"}},
		{"generate missing title", []string{"generate", "service", "create"}},
		{"bulk-update without selector", []string{"bulk-update", "services"}},
		{"create-page without slug", []string{"create-page", "About"}},
		{"testimonials without action", []string{"testimonials"}},
		{"update-service without slug", []string{"update-service", "--featured", "true"}},
		{"upload-image without path", []string{"upload-image"}},
		{"unknown seed", []string{"seed", "everything"}},
		{"list unknown collection", []string{"list", "widgets"}},
		{"unknown command", []string{"deploy"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, "")
			assert.Equal(t, 1, h.run(tt.args...))
			assert.Contains(t, h.errOut.String(), "❌ Error:")
			assert.NotContains(t, h.out.String(), "❌ Error:")
		})
	}
}

func TestRun_BulkUpdateAllWithNoRecords(t *testing.T) {
	h := newHarness(t, "")

	assert.Equal(t, 0, h.run("bulk-update", "services", "all", "--featured", "false"))
	assert.Contains(t, h.out.String(), "No items found")
}

func TestRun_WritesClearTheCache(t *testing.T) {
	h := newHarness(t, "")
	require.NoError(t, h.app.Cache.Write("/api/services", "application/json", []byte(`{"docs":[]}`)))

	require.Equal(t, 0, h.run("create-page", "About Us", "about", "--published"))

	_, _, ok := h.app.Cache.Read("/api/services")
	assert.False(t, ok)
	assert.Equal(t, int64(1), h.count(t, models.CollectionPages))
}

func TestRun_ReadsKeepTheCache(t *testing.T) {
	h := newHarness(t, "")
	require.NoError(t, h.app.Cache.Write("/api/services", "application/json", []byte(`{"docs":[]}`)))

	require.Equal(t, 0, h.run("list", "services"))
	require.Equal(t, 0, h.run("generate", "blog", "generate", "--title", "AI in Healthcare"))

	_, _, ok := h.app.Cache.Read("/api/services")
	assert.True(t, ok)
}

func TestRun_TestimonialsLifecycle(t *testing.T) {
	h := newHarness(t, "")

	require.Equal(t, 0, h.run("testimonials", "create", "--quote", "Great partner.", "--name", "Jane", "--company", "Acme"))
	require.Equal(t, int64(1), h.count(t, models.CollectionTestimonials))

	res, err := h.store.Find(context.Background(), models.CollectionTestimonials, cms.Query{})
	require.NoError(t, err)
	id := res.Docs[0].ID()

	require.Equal(t, 0, h.run("testimonials", "update", id, "--featured", "true"))
	require.Equal(t, 0, h.run("testimonials", "list"))
	assert.Contains(t, h.out.String(), "Client: Jane (Acme)")

	require.Equal(t, 0, h.run("testimonials", "delete", id))
	assert.Zero(t, h.count(t, models.CollectionTestimonials))
}

func TestRun_SeedAndUpdateService(t *testing.T) {
	h := newHarness(t, "")

	require.Equal(t, 0, h.run("seed", "content"))
	require.Equal(t, 0, h.run("update-service", "it-consulting", "--featured", "false", "--order", "9"))

	res, err := h.store.Find(context.Background(), models.CollectionServices, cms.Query{
		Where: []cms.Condition{cms.Eq("slug", "it-consulting")},
	})
	require.NoError(t, err)
	require.Len(t, res.Docs, 1)
	assert.False(t, res.Docs[0].Bool("featured"))
	assert.Equal(t, 9, res.Docs[0].Int("order"))
}

func TestRun_UploadImage(t *testing.T) {
	h := newHarness(t, "")
	src := filepath.Join(t.TempDir(), "team.png")
	png := append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 64)...)
	require.NoError(t, os.WriteFile(src, png, 0o644))

	require.Equal(t, 0, h.run("upload-image", src, "--alt", "Our team"))
	assert.Equal(t, int64(1), h.count(t, models.CollectionMedia))
}

func TestRun_Leads(t *testing.T) {
	h := newHarness(t, "")
	lead, err := h.store.Create(context.Background(), models.CollectionLeads, cms.Document{
		"name": "Ann", "email": "ann@example.com", "message": "We need help with our cloud setup",
	})
	require.NoError(t, err)

	require.Equal(t, 0, h.run("leads", "status", lead.ID(), "contacted"))
	require.Equal(t, 0, h.run("leads", "list", "--status", "contacted"))
	assert.Contains(t, h.out.String(), "ann@example.com")

	assert.Equal(t, 1, h.run("leads", "status", lead.ID(), "won"))
}

func TestRun_Vibe(t *testing.T) {
	h := newHarness(t, "list services\nexit\n")

	require.Equal(t, 0, h.run("vibe"))
	assert.Contains(t, h.out.String(), "📋 Found 0 services:")
	assert.Contains(t, h.out.String(), "👋 See you later!")
}

func TestRun_CacheClear(t *testing.T) {
	h := newHarness(t, "")
	require.NoError(t, h.app.Cache.Write("/api/posts", "application/json", []byte(`{}`)))
	require.NoError(t, h.app.Cache.Write("/sitemap.xml", "application/xml", []byte(`<urlset/>`)))

	require.Equal(t, 0, h.run("cache", "clear"))
	assert.Contains(t, h.out.String(), "Cleared 2 cached responses")

	h.app.Cache = nil
	assert.Equal(t, 0, h.run("cache", "clear"))
	assert.Contains(t, h.out.String(), "not configured")
}
