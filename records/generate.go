package records

import (
	"context"
	"strings"

	"github.com/charmbracelet/glamour"

	"episolve/apperr"
	"episolve/cms"
	"episolve/content"
	"episolve/models"
	"episolve/options"
	"episolve/richtext"
)

const (
	ActionGenerate = "generate"
	ActionCreate   = "create"
	ActionEnhance  = "enhance"
)

var (
	GenerateTypes   = []string{"service", "blog", "bio", "testimonial"}
	GenerateActions = []string{ActionGenerate, ActionCreate, ActionEnhance}
)

// Generate runs one generator. The generate action only previews; create
// persists; enhance rewrites the copy of an existing service named by the
// first positional argument.
func (o *Operations) Generate(ctx context.Context, typ, action string, opts *options.Options) error {
	switch action {
	case ActionGenerate, ActionCreate, ActionEnhance:
	default:
		return apperr.Usage("unknown action %q, use one of: %s", action, strings.Join(GenerateActions, ", "))
	}

	switch typ {
	case "service":
		return o.generateService(ctx, action, opts)
	case "blog":
		return o.generateBlog(ctx, action, opts)
	case "bio":
		return o.generateBio(ctx, action, opts)
	case "testimonial":
		return o.generateTestimonial(ctx, action, opts)
	}
	return apperr.Usage("unknown type %q, use one of: %s", typ, strings.Join(GenerateTypes, ", "))
}

func (o *Operations) generateService(ctx context.Context, action string, opts *options.Options) error {
	if action == ActionEnhance {
		return o.EnhanceService(ctx, opts.Positional(0), opts)
	}
	if err := opts.Require("title"); err != nil {
		return err
	}

	title := opts.Get("title")
	keywords := opts.List("keywords")
	tone := opts.GetOr("tone", content.DefaultTone)

	o.printf("🤖 Generating service content for: %s\n", title)
	o.printf("   Keywords: %s\n", joinOr(keywords, "none"))
	o.printf("   Tone: %s\n", tone)

	if action == ActionGenerate {
		generated := o.gen.Service(title, keywords, tone)
		o.printf("\n📝 Generated Content:\n\n")
		o.println("Short Description:")
		o.println(generated.ShortDescription)
		o.println("\nFull Description:")
		o.println(generated.FullDescription)
		o.println("\nFeatures:")
		for i, f := range generated.Features {
			o.printf("  %d. %s\n", i+1, f)
		}
		o.println("\n💡 Use \"create\" action to save this to the CMS")
		return nil
	}

	order, err := opts.Int("order")
	if err != nil {
		return err
	}
	icon := models.Icon(opts.GetOr("icon", string(DefaultIcon)))

	_, err = o.CreateService(ctx, ServiceInput{
		Title:    title,
		Keywords: keywords,
		Tone:     tone,
		Icon:     icon,
		Featured: opts.Bool("featured"),
		Order:    order,
		Publish:  opts.Bool("publish"),
	})
	return err
}

// EnhanceService regenerates the descriptions and features of the service
// with the given slug. --title overrides the title used for generation
// and --focus adds one more keyword.
func (o *Operations) EnhanceService(ctx context.Context, slug string, opts *options.Options) error {
	if slug == "" {
		return apperr.Usage("enhance requires a service slug, e.g. generate service enhance it-consulting --focus benefits")
	}

	svc, err := o.findOne(ctx, models.CollectionServices, "slug", slug)
	if err != nil {
		return err
	}

	title := opts.GetOr("title", svc.String("title"))
	keywords := opts.List("keywords")
	if focus := opts.Get("focus"); focus != "" {
		keywords = append(keywords, focus)
	}
	generated := o.gen.Service(title, keywords, opts.GetOr("tone", content.DefaultTone))

	o.printf("🤖 Enhancing service: %s\n", svc.String("title"))

	meta := svc.Doc("meta")
	if meta == nil {
		meta = cms.Document{}
	}
	meta["description"] = generated.ShortDescription

	updated, err := o.client.Update(ctx, models.CollectionServices, svc.ID(), cms.Document{
		"shortDescription": generated.ShortDescription,
		"fullDescription":  richtext.Paragraph(generated.FullDescription),
		"features":         toFeatures(generated.Features),
		"meta":             meta,
	})
	if err != nil {
		return err
	}

	o.println("\n✅ Service enhanced!")
	o.printf("   Slug: %s\n", updated.String("slug"))
	o.printf("   Description: %s\n", updated.String("shortDescription"))
	o.printf("   Features: %d\n", len(generated.Features))
	return nil
}

func (o *Operations) generateBlog(ctx context.Context, action string, opts *options.Options) error {
	if action == ActionEnhance {
		return apperr.Usage("enhance is only supported for services")
	}
	if err := opts.Require("title"); err != nil {
		return err
	}
	title := opts.Get("title")

	o.printf("🤖 Generating blog post: %s\n", title)

	if action == ActionGenerate {
		post := o.gen.BlogPost(title, opts.GetOr("category", content.DefaultCategory))
		o.printf("\n📝 Generated Content:\n\n")
		o.printf("Title: %s\n", post.Title)
		o.printf("Excerpt: %s\n", post.Excerpt)
		o.println("\nContent Preview:")
		o.println(renderMarkdown(post.Preview(500)))
		o.println("💡 Use \"create\" action to save this to the CMS")
		return nil
	}

	_, err := o.CreateBlogPost(ctx, BlogInput{
		Title:    title,
		Category: opts.Get("category"),
		Publish:  opts.Bool("publish"),
	})
	return err
}

func (o *Operations) generateBio(ctx context.Context, action string, opts *options.Options) error {
	if action == ActionEnhance {
		return apperr.Usage("enhance is only supported for services")
	}
	if err := opts.Require("name", "role"); err != nil {
		return err
	}
	name, role := opts.Get("name"), opts.Get("role")

	o.printf("🤖 Generating bio for: %s (%s)\n", name, role)

	if action == ActionGenerate {
		o.printf("\n📝 Generated Bio:\n\n")
		o.println(o.gen.Bio(name, role, opts.Get("background")))
		o.println("\n💡 Use \"create\" action to save this to the CMS")
		return nil
	}

	order, err := opts.Int("order")
	if err != nil {
		return err
	}
	_, err = o.CreateTeamMember(ctx, MemberInput{
		Name:       name,
		Role:       role,
		Background: opts.Get("background"),
		Email:      opts.Get("email"),
		LinkedIn:   opts.Get("linkedin"),
		Order:      order,
	})
	return err
}

func (o *Operations) generateTestimonial(ctx context.Context, action string, opts *options.Options) error {
	if action == ActionEnhance {
		return apperr.Usage("enhance is only supported for services")
	}
	if err := opts.Require("name", "company"); err != nil {
		return err
	}
	name, company := opts.Get("name"), opts.Get("company")
	service := opts.GetOr("service", content.DefaultService)

	o.printf("🤖 Generating testimonial from: %s at %s\n", name, company)

	if action == ActionGenerate {
		o.printf("\n📝 Generated Testimonial:\n\n")
		o.printf("%q\n", o.gen.TestimonialQuote(company, service))
		attribution := name
		if role := opts.Get("role"); role != "" {
			attribution += ", " + role
		}
		o.printf("\n- %s, %s\n", attribution, company)
		o.println("\n💡 Use \"create\" action to save this to the CMS")
		return nil
	}

	order, err := opts.Int("order")
	if err != nil {
		return err
	}
	_, err = o.CreateTestimonial(ctx, TestimonialInput{
		ClientName:    name,
		ClientRole:    opts.Get("role"),
		ClientCompany: company,
		Service:       service,
		Featured:      opts.Bool("featured"),
		Order:         order,
	})
	return err
}

// renderMarkdown formats md for a terminal without color codes, falling
// back to the raw text.
func renderMarkdown(md string) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("notty"),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}

func joinOr(items []string, empty string) string {
	if len(items) == 0 {
		return empty
	}
	return strings.Join(items, ", ")
}
