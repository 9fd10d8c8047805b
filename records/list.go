package records

import (
	"context"
	"maps"
	"slices"
	"strings"

	"episolve/apperr"
	"episolve/cms"
	"episolve/content"
	"episolve/models"
)

type listing struct {
	sort  string
	title string
	print func(o *Operations, doc cms.Document)
}

var listings = map[string]listing{
	models.CollectionServices: {"order", "📋 Found %d services:", func(o *Operations, d cms.Document) {
		o.printf("%s %s\n", star(d.Bool("featured")), d.String("title"))
		o.printf("   Slug: %s\n", d.String("slug"))
		o.printf("   Order: %d\n", d.Int("order"))
		o.printf("   Status: %s\n\n", d.String("status"))
	}},
	models.CollectionTeamMembers: {"order", "👥 Found %d team members:", func(o *Operations, d cms.Document) {
		o.printf("%s - %s\n", d.String("name"), d.String("role"))
		o.printf("   Order: %d\n", d.Int("order"))
		if email := d.String("email"); email != "" {
			o.printf("   Email: %s\n", email)
		}
		o.println()
	}},
	models.CollectionTestimonials: {"order", "💬 Found %d testimonials:", func(o *Operations, d cms.Document) {
		o.printf("ID: %s\n", d.ID())
		client := d.String("clientName")
		if company := d.String("clientCompany"); company != "" {
			client += " (" + company + ")"
		}
		o.printf("Client: %s\n", client)
		o.printf("Quote: %s\n", excerpt(d.String("quote"), 80))
		o.printf("Featured: %s\n", map[bool]string{true: "⭐", false: "✗"}[d.Bool("featured")])
		o.printf("Order: %d\n", d.Int("order"))
		o.println("---")
	}},
	models.CollectionPosts: {"-publishedAt", "📝 Found %d posts:", func(o *Operations, d cms.Document) {
		o.println(d.String("title"))
		o.printf("   Slug: %s\n", d.String("slug"))
		o.printf("   Status: %s\n\n", d.String("status"))
	}},
	models.CollectionPages: {"title", "📄 Found %d pages:", func(o *Operations, d cms.Document) {
		o.printf("%s (/%s)\n", d.String("title"), d.String("slug"))
		o.printf("   Status: %s\n\n", d.String("status"))
	}},
	models.CollectionCategories: {"title", "🏷️  Found %d categories:", func(o *Operations, d cms.Document) {
		o.printf("%s  [id %s]\n", d.String("title"), d.ID())
	}},
	models.CollectionMedia: {"-createdAt", "🖼️  Found %d media files:", func(o *Operations, d cms.Document) {
		o.printf("%s  %s\n", d.ID(), d.String("filename"))
		o.printf("   Alt: %s\n", d.String("alt"))
		o.printf("   URL: %s\n\n", d.String("url"))
	}},
	models.CollectionLeads: {"-createdAt", "📨 Found %d leads:", printLead},
	models.CollectionSubscribers: {"-createdAt", "📬 Found %d subscribers:", func(o *Operations, d cms.Document) {
		o.printf("%s  %s (%s)\n", d.String("email"), d.String("status"), d.String("source"))
	}},
}

// ListCollections returns the names List accepts.
func ListCollections() []string {
	return slices.Sorted(maps.Keys(listings))
}

// List prints every record of collection, streaming rows from the store.
func (o *Operations) List(ctx context.Context, collection string) error {
	l, ok := listings[collection]
	if !ok {
		return apperr.Usage("unknown collection %q, use one of: %s", collection, strings.Join(ListCollections(), ", "))
	}
	return o.list(ctx, collection, cms.Query{Sort: l.sort}, l)
}

// listLimit caps how many records one listing prints.
const listLimit = 100

func (o *Operations) list(ctx context.Context, collection string, q cms.Query, l listing) error {
	total, err := o.client.Count(ctx, collection, q)
	if err != nil {
		return err
	}
	q.Limit = listLimit
	shown := min(total, int64(listLimit))

	o.printf("\n"+l.title+"\n", shown)
	if shown < total {
		o.printf("   (showing the first %d of %d)\n", shown, total)
	}
	o.println()

	for doc, err := range o.client.Iter(ctx, collection, q) {
		if err != nil {
			return err
		}
		l.print(o, doc)
	}
	return nil
}

func star(featured bool) string {
	if featured {
		return "⭐"
	}
	return "  "
}

// excerpt cuts s to n runes, marking the cut with an ellipsis.
func excerpt(s string, n int) string {
	if short := content.Truncate(s, n); short != s {
		return short + "..."
	}
	return s
}
