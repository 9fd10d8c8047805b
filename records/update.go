package records

import (
	"context"
	"slices"
	"strings"

	"go.uber.org/zap"

	"episolve/apperr"
	"episolve/cms"
	"episolve/content"
	"episolve/models"
	"episolve/options"
)

const bulkLimit = 1000

// BulkCollections are the collections BulkUpdate accepts.
var BulkCollections = []string{
	models.CollectionServices,
	models.CollectionTeamMembers,
	models.CollectionTestimonials,
}

// UpdateService applies --field value pairs to the service with slug.
// Unknown fields are reported and skipped. The cta sub-fields are merged
// into the stored cta since the store replaces nested objects wholesale.
func (o *Operations) UpdateService(ctx context.Context, slug string, opts *options.Options) error {
	svc, err := o.findOne(ctx, models.CollectionServices, "slug", slug)
	if apperr.IsNotFound(err) {
		return apperr.NotFound("service not found: %s", slug)
	}
	if err != nil {
		return err
	}
	o.printf("Found service: %s (ID: %s)\n", svc.String("title"), svc.ID())

	updates := cms.Document{}
	var cta cms.Document

	for _, key := range opts.Keys() {
		value := opts.Get(key)
		switch key {
		case "title":
			updates["title"] = value
		case "short", "shortDescription":
			updates["shortDescription"] = value
		case "icon":
			updates["icon"] = value
		case "featured":
			updates["featured"] = value == "true"
		case "order":
			n, err := opts.Int(key)
			if err != nil {
				return err
			}
			updates["order"] = n
		case "cta-text", "cta-link":
			if cta == nil {
				cta = cms.Document{}
				for k, v := range svc.Doc("cta") {
					cta[k] = v
				}
			}
			cta[strings.TrimPrefix(key, "cta-")] = value
			updates["cta"] = cta
		default:
			o.printf("⚠️  Unknown field: %s\n", key)
		}
	}

	if len(updates) == 0 {
		o.println("No updates specified. Available fields:")
		o.println(`  --title "Service Title"`)
		o.println(`  --short "Short description"`)
		o.printf("  --icon \"%s\"\n", iconList())
		o.println("  --featured true|false")
		o.println("  --order 1")
		o.println(`  --cta-text "Button text"`)
		o.println(`  --cta-link "/contact"`)
		return nil
	}

	updated, err := o.client.Update(ctx, models.CollectionServices, svc.ID(), updates)
	if err != nil {
		return err
	}

	o.println("\n✅ Service updated successfully!")
	o.printf("Title: %s\n", updated.String("title"))
	o.printf("Slug: %s\n", updated.String("slug"))
	if _, ok := updates["shortDescription"]; ok {
		o.printf("Description: %s\n", updated.String("shortDescription"))
	}
	if _, ok := updates["featured"]; ok {
		o.printf("Featured: %t\n", updated.Bool("featured"))
	}
	if _, ok := updates["order"]; ok {
		o.printf("Order: %d\n", updated.Int("order"))
	}
	return nil
}

func iconList() string {
	names := make([]string, 0, len(models.Icons))
	for _, i := range models.Icons {
		names = append(names, string(i))
	}
	return strings.Join(names, "|")
}

// BulkUpdate applies the same changes to every record the selector
// matches. The selector is "all" (at most 1000 records), "id:N", or a
// comma-separated list of slugs. Records are written one at a time and
// a failure leaves earlier records updated.
func (o *Operations) BulkUpdate(ctx context.Context, collection, selector string, opts *options.Options) error {
	if !slices.Contains(BulkCollections, collection) {
		return apperr.Usage("invalid collection %q, use: %s", collection, strings.Join(BulkCollections, ", "))
	}

	updates := cms.Document{}
	increment := 0
	for _, key := range opts.Keys() {
		switch key {
		case "featured":
			updates["featured"] = opts.Bool(key)
		case "order":
			n, err := opts.Int(key)
			if err != nil {
				return err
			}
			updates["order"] = n
		case "order-increment":
			n, err := opts.Int(key)
			if err != nil {
				return err
			}
			increment = n
		default:
			updates[key] = opts.Get(key)
		}
	}

	docs, err := o.selectRecords(ctx, collection, selector)
	if err != nil {
		return err
	}
	return o.applyEach(ctx, collection, docs, updates, increment)
}

func (o *Operations) selectRecords(ctx context.Context, collection, selector string) ([]cms.Document, error) {
	selector = strings.TrimSpace(selector)

	switch {
	case selector == "":
		return nil, apperr.Usage("selector is required: all, id:N, or slug1,slug2")
	case selector == "all":
		res, err := o.client.Find(ctx, collection, cms.Query{Limit: bulkLimit})
		if err != nil {
			return nil, err
		}
		return res.Docs, nil
	case strings.HasPrefix(selector, "id:"):
		doc, err := o.client.FindByID(ctx, collection, strings.TrimPrefix(selector, "id:"))
		if err != nil {
			return nil, err
		}
		return []cms.Document{doc}, nil
	}

	var slugs []cms.Condition
	for _, slug := range strings.Split(selector, ",") {
		if slug = strings.TrimSpace(slug); slug != "" {
			slugs = append(slugs, cms.Eq("slug", slug))
		}
	}
	if len(slugs) == 0 {
		return nil, apperr.Usage("selector %q names no slugs", selector)
	}
	res, err := o.client.Find(ctx, collection, cms.Query{Any: slugs, Limit: bulkLimit})
	if err != nil {
		return nil, err
	}
	return res.Docs, nil
}

func (o *Operations) applyEach(ctx context.Context, collection string, docs []cms.Document, updates cms.Document, increment int) error {
	if len(docs) == 0 {
		o.println("⚠️  No items found matching selector")
		return nil
	}

	o.printf("📝 Updating %d items in %s...\n", len(docs), collection)

	for _, doc := range docs {
		changes := make(cms.Document, len(updates)+1)
		for k, v := range updates {
			changes[k] = v
		}
		if increment != 0 {
			changes["order"] = doc.Int("order") + increment
		}

		if _, err := o.client.Update(ctx, collection, doc.ID(), changes); err != nil {
			o.log.Warn("bulk update stopped", zap.String("collection", collection), zap.String("id", doc.ID()), zap.Error(err))
			return err
		}
		o.printf("  ✓ Updated: %s\n", displayName(doc))
	}

	o.printf("\n✅ Successfully updated %d items!\n", len(docs))
	return nil
}

// SetFeatured marks services featured (or not). target is "all" or a
// service title or slug; services whose slug matches except are skipped.
func (o *Operations) SetFeatured(ctx context.Context, target, except string, featured bool) error {
	target = strings.TrimSpace(target)
	if target == "" {
		return apperr.Usage("say which service to change, or \"all\"")
	}

	selector := target
	if target != "all" {
		selector = content.Slugify(target)
	}
	docs, err := o.selectRecords(ctx, models.CollectionServices, selector)
	if err != nil {
		return err
	}

	if skip := content.Slugify(except); skip != "" {
		docs = slices.DeleteFunc(docs, func(d cms.Document) bool {
			return d.String("slug") == skip
		})
	}
	return o.applyEach(ctx, models.CollectionServices, docs, cms.Document{"featured": featured}, 0)
}
