package records

import (
	"context"
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"episolve/apperr"
	"episolve/cms"
	"episolve/content"
	"episolve/models"
	"episolve/richtext"
)

//go:embed seed/*.yaml
var seedFS embed.FS

type globalsSeed struct {
	Header models.Header `yaml:"header"`
	Footer models.Footer `yaml:"footer"`
}

type serviceSeed struct {
	Title            string      `yaml:"title"`
	Icon             models.Icon `yaml:"icon"`
	ShortDescription string      `yaml:"shortDescription"`
	FullDescription  []string    `yaml:"fullDescription"`
	Features         []string    `yaml:"features"`
	Featured         bool        `yaml:"featured"`
	Order            int         `yaml:"order"`
	CTA              models.CTA  `yaml:"cta"`
}

type memberSeed struct {
	Name     string `yaml:"name"`
	Role     string `yaml:"role"`
	Email    string `yaml:"email"`
	LinkedIn string `yaml:"linkedIn"`
	Order    int    `yaml:"order"`
}

type testimonialSeed struct {
	Quote         string `yaml:"quote"`
	ClientName    string `yaml:"clientName"`
	ClientRole    string `yaml:"clientRole"`
	ClientCompany string `yaml:"clientCompany"`
	Featured      bool   `yaml:"featured"`
	Order         int    `yaml:"order"`
}

type pageSeed struct {
	Title  string         `yaml:"title"`
	Slug   string         `yaml:"slug"`
	Hero   models.Hero    `yaml:"hero"`
	Layout []models.Block `yaml:"layout"`
	Meta   models.Meta    `yaml:"meta"`
}

type contentSeed struct {
	globalsSeed  `yaml:",inline"`
	Categories   []string          `yaml:"categories"`
	Services     []serviceSeed     `yaml:"services"`
	TeamMembers  []memberSeed      `yaml:"teamMembers"`
	Testimonials []testimonialSeed `yaml:"testimonials"`
	Pages        []pageSeed        `yaml:"pages"`
}

func loadSeed(name string, v any) error {
	raw, err := seedFS.ReadFile("seed/" + name)
	if err != nil {
		return fmt.Errorf("reading seed %s: %w", name, err)
	}
	if err := yaml.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("parsing seed %s: %w", name, err)
	}
	return nil
}

// SeedGlobals creates the header and footer globals with empty defaults
// when they do not exist yet. Existing globals are left alone.
func (o *Operations) SeedGlobals(ctx context.Context) error {
	var seed globalsSeed
	if err := loadSeed("globals.yaml", &seed); err != nil {
		return err
	}

	globals := []struct {
		slug, label string
		data        any
	}{
		{models.GlobalHeader, "Header", seed.Header},
		{models.GlobalFooter, "Footer", seed.Footer},
	}
	for _, g := range globals {
		_, err := o.client.FindGlobal(ctx, g.slug)
		if err == nil {
			o.printf("%s global already exists\n", g.label)
			continue
		}
		if !apperr.IsNotFound(err) {
			return err
		}

		o.printf("Creating %s global...\n", g.slug)
		if _, err := o.client.UpdateGlobal(ctx, g.slug, cms.MustDocument(g.data)); err != nil {
			return err
		}
		o.printf("✓ %s global created\n", g.label)
	}

	o.println("\n✓ Globals seeding complete!")
	return nil
}

// SeedContent loads the embedded sample content. Globals are overwritten;
// records are upserted by their natural key so running it twice does not
// duplicate anything.
func (o *Operations) SeedContent(ctx context.Context) error {
	var seed contentSeed
	if err := loadSeed("content.yaml", &seed); err != nil {
		return err
	}

	o.printf("🌱 Starting content seeding...\n\n")

	o.println("📋 Configuring Header navigation...")
	if _, err := o.client.UpdateGlobal(ctx, models.GlobalHeader, cms.MustDocument(seed.Header)); err != nil {
		return err
	}
	o.printf("✓ Header navigation configured\n\n")

	o.println("📋 Configuring Footer...")
	if _, err := o.client.UpdateGlobal(ctx, models.GlobalFooter, cms.MustDocument(seed.Footer)); err != nil {
		return err
	}
	o.printf("✓ Footer configured\n\n")

	o.println("🏷️  Creating categories...")
	for _, title := range seed.Categories {
		cat := models.Category{Title: title, Slug: content.Slugify(title)}
		if err := o.upsert(ctx, models.CollectionCategories, "title", title, cat, "category"); err != nil {
			return err
		}
	}
	o.println()

	o.println("🔧 Creating sample services...")
	for _, s := range seed.Services {
		paragraphs := make([]richtext.Node, 0, len(s.FullDescription))
		for _, p := range s.FullDescription {
			paragraphs = append(paragraphs, richtext.ParagraphNode(p))
		}
		svc := models.Service{
			Title:            s.Title,
			Slug:             content.Slugify(s.Title),
			Icon:             s.Icon,
			ShortDescription: s.ShortDescription,
			FullDescription:  richtext.New(paragraphs...),
			Features:         toFeatures(s.Features),
			Featured:         s.Featured,
			Order:            s.Order,
			CTA:              s.CTA,
			Meta:             models.Meta{Title: o.metaTitle(s.Title), Description: s.ShortDescription},
			Status:           models.StatusPublished,
		}
		if err := o.upsert(ctx, models.CollectionServices, "slug", svc.Slug, svc, "service"); err != nil {
			return err
		}
	}
	o.println()

	o.println("👥 Creating team members...")
	for _, m := range seed.TeamMembers {
		member := models.TeamMember{
			Name:     m.Name,
			Role:     m.Role,
			Bio:      richtext.Paragraph(o.gen.Bio(m.Name, m.Role, "")),
			Email:    m.Email,
			LinkedIn: m.LinkedIn,
			Order:    m.Order,
		}
		if err := o.upsert(ctx, models.CollectionTeamMembers, "name", m.Name, member, "team member"); err != nil {
			return err
		}
	}
	o.println()

	o.println("💬 Creating testimonials...")
	for _, t := range seed.Testimonials {
		testimonial := models.Testimonial{
			Quote:         t.Quote,
			ClientName:    t.ClientName,
			ClientRole:    t.ClientRole,
			ClientCompany: t.ClientCompany,
			Featured:      t.Featured,
			Order:         t.Order,
			PublishedAt:   o.timestamp(),
		}
		if err := o.upsert(ctx, models.CollectionTestimonials, "clientName", t.ClientName, testimonial, "testimonial from"); err != nil {
			return err
		}
	}
	o.println()

	o.println("🏠 Creating pages...")
	for _, p := range seed.Pages {
		page := models.Page{
			Title:       p.Title,
			Slug:        p.Slug,
			Hero:        p.Hero,
			Layout:      p.Layout,
			Meta:        p.Meta,
			PublishedAt: o.timestamp(),
			Status:      models.StatusPublished,
		}
		if err := o.upsert(ctx, models.CollectionPages, "slug", p.Slug, page, "page"); err != nil {
			return err
		}
	}

	o.printf("\n✅ Content seeding complete!\n\n")
	o.println("Summary:")
	o.println("  • Header navigation configured")
	o.println("  • Footer configured with company info")
	o.printf("  • %d categories\n", len(seed.Categories))
	o.printf("  • %d services\n", len(seed.Services))
	o.printf("  • %d team members\n", len(seed.TeamMembers))
	o.printf("  • %d testimonials\n", len(seed.Testimonials))
	o.printf("  • %d pages\n", len(seed.Pages))
	return nil
}

// upsert updates the record whose key field equals value, or creates it.
func (o *Operations) upsert(ctx context.Context, collection, key string, value any, record any, noun string) error {
	data := cms.MustDocument(record)
	label := displayName(data)

	existing, err := o.findOne(ctx, collection, key, value)
	switch {
	case apperr.IsNotFound(err):
		if _, err := o.client.Create(ctx, collection, data); err != nil {
			return err
		}
		o.printf("  ✓ Created %s: %s\n", noun, label)
		return nil
	case err != nil:
		return err
	}

	if _, err := o.client.Update(ctx, collection, existing.ID(), data); err != nil {
		return err
	}
	o.printf("  ↻ Updated %s: %s\n", noun, label)
	return nil
}
