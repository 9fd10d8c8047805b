// Package site exposes the published content as a read-only JSON API
// plus a sitemap.
package site

import (
	"context"
	"encoding/xml"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"episolve/apperr"
	"episolve/cache"
	"episolve/cms"
	"episolve/models"
)

type SiteModule struct {
	client    cms.Client
	cache     *cache.Cache
	serverURL string
	log       *zap.Logger
}

// NewSiteModule returns the module. A nil cache serves every request
// from the store.
func NewSiteModule(client cms.Client, c *cache.Cache, serverURL string, log *zap.Logger) *SiteModule {
	if serverURL == "" {
		serverURL = "http://localhost:8080"
	}
	return &SiteModule{
		client:    client,
		cache:     c,
		serverURL: strings.TrimSuffix(serverURL, "/"),
		log:       log,
	}
}

func (s *SiteModule) RegisterRoutes(router *gin.Engine) {
	cached := cache.Middleware(s.cache, s.log)

	api := router.Group("/api", cached)
	{
		api.GET("/services", s.list(models.CollectionServices, "order", true))
		api.GET("/services/:slug", s.detail(models.CollectionServices))
		api.GET("/posts", s.list(models.CollectionPosts, "-publishedAt", true))
		api.GET("/posts/:slug", s.post)
		api.GET("/pages/:slug", s.detail(models.CollectionPages))
		api.GET("/team-members", s.list(models.CollectionTeamMembers, "order", false))
		api.GET("/testimonials", s.list(models.CollectionTestimonials, "order", false))
		api.GET("/globals/:slug", s.global)
	}
	router.GET("/sitemap.xml", cached, s.sitemap)
}

func published(extra ...cms.Condition) []cms.Condition {
	return append([]cms.Condition{cms.Eq("status", string(models.StatusPublished))}, extra...)
}

// list serves a collection. ?featured=true narrows to featured records
// where the collection has the flag.
func (s *SiteModule) list(collection, sort string, publishedOnly bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var q cms.Query
		q.Sort = sort
		if publishedOnly {
			q.Where = published()
		}
		if c.Query("featured") == "true" && collection != models.CollectionTeamMembers && collection != models.CollectionPosts {
			q.Where = append(q.Where, cms.Eq("featured", true))
		}

		res, err := s.client.Find(c.Request.Context(), collection, q)
		if err != nil {
			s.fail(c, "listing "+collection, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"docs": res.Docs, "totalDocs": res.TotalDocs})
	}
}

func (s *SiteModule) detail(collection string) gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := s.findPublished(c.Request.Context(), collection, c.Param("slug"))
		if err != nil {
			s.fail(c, "loading "+collection, err)
			return
		}
		c.JSON(http.StatusOK, doc)
	}
}

func (s *SiteModule) post(c *gin.Context) {
	doc, err := s.findPublished(c.Request.Context(), models.CollectionPosts, c.Param("slug"))
	if err != nil {
		s.fail(c, "loading post", err)
		return
	}

	var post models.Post
	if err := cms.Decode(doc, &post); err != nil {
		s.fail(c, "decoding post", apperr.Store(err, "decoding post"))
		return
	}
	doc["html"] = post.Content.HTML()
	c.JSON(http.StatusOK, doc)
}

var globals = []string{models.GlobalHeader, models.GlobalFooter}

func (s *SiteModule) global(c *gin.Context) {
	slug := c.Param("slug")
	if !slices.Contains(globals, slug) {
		c.JSON(http.StatusNotFound, gin.H{"error": "global not found"})
		return
	}
	doc, err := s.client.FindGlobal(c.Request.Context(), slug)
	if err != nil {
		s.fail(c, "loading global", err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

func (s *SiteModule) findPublished(ctx context.Context, collection, slug string) (cms.Document, error) {
	res, err := s.client.Find(ctx, collection, cms.Query{
		Where: published(cms.Eq("slug", slug)),
		Limit: 1,
	})
	if err != nil {
		return nil, err
	}
	if len(res.Docs) == 0 {
		return nil, apperr.NotFound("%s %q not found", collection, slug)
	}
	return res.Docs[0], nil
}

func (s *SiteModule) fail(c *gin.Context, what string, err error) {
	if apperr.IsNotFound(err) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	s.log.Error(what+" failed", zap.String("code", apperr.Code(err)), zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong. Please try again later."})
}

type sitemapSection struct {
	collection string
	prefix     string
	changefreq string
	priority   string
}

var sitemapSections = []sitemapSection{
	{models.CollectionPages, "/", "monthly", "0.8"},
	{models.CollectionServices, "/services/", "monthly", "0.7"},
	{models.CollectionPosts, "/posts/", "monthly", "0.6"},
}

func (s *SiteModule) sitemap(c *gin.Context) {
	ctx := c.Request.Context()

	var sitemap strings.Builder
	sitemap.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	sitemap.WriteString("\n")
	sitemap.WriteString(`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`)
	sitemap.WriteString("\n")

	writeURL(&sitemap, s.serverURL+"/", "", "weekly", "1.0")
	writeURL(&sitemap, s.serverURL+"/services", "", "weekly", "0.9")
	writeURL(&sitemap, s.serverURL+"/posts", "", "daily", "0.9")

	for _, sec := range sitemapSections {
		for doc, err := range s.client.Iter(ctx, sec.collection, cms.Query{Where: published(), Sort: "slug"}) {
			if err != nil {
				s.fail(c, "building sitemap", err)
				return
			}
			slug := doc.String("slug")
			if sec.collection == models.CollectionPages && slug == "home" {
				continue
			}
			writeURL(&sitemap, s.serverURL+sec.prefix+url.PathEscape(slug), lastmod(doc), sec.changefreq, sec.priority)
		}
	}

	sitemap.WriteString("</urlset>\n")

	c.Data(http.StatusOK, "application/xml; charset=utf-8", []byte(sitemap.String()))
}

func writeURL(b *strings.Builder, loc, lastmod, changefreq, priority string) {
	b.WriteString("  <url>\n")
	writeElement(b, "loc", loc)
	if lastmod != "" {
		writeElement(b, "lastmod", lastmod)
	}
	writeElement(b, "changefreq", changefreq)
	writeElement(b, "priority", priority)
	b.WriteString("  </url>\n")
}

func writeElement(b *strings.Builder, name, value string) {
	b.WriteString("    <" + name + ">")
	xml.EscapeText(b, []byte(value))
	b.WriteString("</" + name + ">\n")
}

func lastmod(doc cms.Document) string {
	t, err := time.Parse(time.RFC3339Nano, doc.String("updatedAt"))
	if err != nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
