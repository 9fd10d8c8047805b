package records

import (
	"context"
	"fmt"
	"strings"

	"episolve/cms"
	"episolve/models"
	"episolve/richtext"
)

// CreatePage stores a page with a low-impact hero and a single content
// block holding placeholder text.
func (o *Operations) CreatePage(ctx context.Context, title, slug string, published bool) (cms.Document, error) {
	o.printf("📄 Creating page: %s (/%s)...\n", title, slug)

	legal := o.gen.Brand().LegalName
	page := models.Page{
		Title: title,
		Slug:  slug,
		Hero: models.Hero{
			Type:     models.HeroLowImpact,
			RichText: richtext.New(richtext.HeadingNode("h1", title)),
		},
		Layout: []models.Block{{
			BlockType: models.BlockContent,
			BlockName: "Main Content",
			Columns: []models.Column{{
				Size:     "full",
				RichText: richtext.Paragraph(fmt.Sprintf("This is the %s page. Add your content here.", title)),
			}},
		}},
		Meta: models.Meta{
			Title:       o.metaTitle(title),
			Description: fmt.Sprintf("Learn more about %s at %s.", strings.ToLower(title), legal),
		},
		Status: status(published),
	}
	if published {
		page.PublishedAt = o.timestamp()
	}

	doc, err := o.client.Create(ctx, models.CollectionPages, cms.MustDocument(page))
	if err != nil {
		return nil, err
	}

	o.println("✅ Page created successfully!")
	o.printf("   Title: %s\n", doc.String("title"))
	o.printf("   Slug: %s\n", doc.String("slug"))
	o.printf("   URL: /%s\n", doc.String("slug"))
	o.printf("   Status: %s\n", doc.String("status"))
	o.printf("   ID: %s\n", doc.ID())
	if !published {
		o.println("\n💡 Tip: Add --published flag to publish immediately")
	}
	return doc, nil
}
