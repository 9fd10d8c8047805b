package records

import (
	"context"

	"go.uber.org/zap"

	"episolve/apperr"
	"episolve/cms"
	"episolve/content"
	"episolve/models"
	"episolve/richtext"
)

const (
	DefaultIcon    models.Icon = "lightbulb"
	defaultCTAText             = "Request this Service"
	defaultCTALink             = "/contact"
)

type ServiceInput struct {
	Title    string
	Keywords []string
	Tone     string
	Icon     models.Icon
	Featured bool
	Order    int
	Publish  bool
}

// CreateService generates copy for in.Title and stores a new service.
// A slug collision surfaces as a validation error from the store.
func (o *Operations) CreateService(ctx context.Context, in ServiceInput) (cms.Document, error) {
	if in.Icon == "" {
		in.Icon = DefaultIcon
	}
	if in.Tone == "" {
		in.Tone = content.DefaultTone
	}
	generated := o.gen.Service(in.Title, in.Keywords, in.Tone)

	svc := models.Service{
		Title:            in.Title,
		Slug:             content.Slugify(in.Title),
		Icon:             in.Icon,
		ShortDescription: generated.ShortDescription,
		FullDescription:  richtext.Paragraph(generated.FullDescription),
		Features:         toFeatures(generated.Features),
		Featured:         in.Featured,
		Order:            in.Order,
		CTA:              models.CTA{Text: defaultCTAText, Link: defaultCTALink},
		Meta:             models.Meta{Title: o.metaTitle(in.Title), Description: generated.ShortDescription},
		Status:           status(in.Publish),
	}

	doc, err := o.client.Create(ctx, models.CollectionServices, cms.MustDocument(svc))
	if err != nil {
		return nil, err
	}
	o.log.Debug("service created", zap.String("slug", doc.String("slug")), zap.String("id", doc.ID()))

	o.println("\n✅ Service created!")
	o.printf("   ID: %s\n", doc.ID())
	o.printf("   Slug: %s\n", doc.String("slug"))
	o.printf("   Status: %s\n", doc.String("status"))
	o.printf("   URL: /services/%s\n", doc.String("slug"))
	return doc, nil
}

type BlogInput struct {
	Title    string
	Category string
	Publish  bool
}

// CreateBlogPost stores a generated article. The category is linked when
// a category with that exact title exists and ignored otherwise.
func (o *Operations) CreateBlogPost(ctx context.Context, in BlogInput) (cms.Document, error) {
	draft := o.gen.BlogPost(in.Title, in.Category)

	categories := []uint{}
	if in.Category != "" {
		cat, err := o.findOne(ctx, models.CollectionCategories, "title", in.Category)
		switch {
		case err == nil:
			categories = append(categories, uint(cat.Int("id")))
		case apperr.IsNotFound(err):
			o.log.Debug("blog category not found", zap.String("category", in.Category))
		default:
			return nil, err
		}
	}

	post := models.Post{
		Title:      draft.Title,
		Slug:       content.Slugify(in.Title),
		Categories: categories,
		Content:    richtext.Paragraph(draft.Body),
		Meta:       models.Meta{Title: draft.Title + " | " + o.gen.Brand().Insights, Description: draft.Excerpt},
		Status:     status(in.Publish),
	}
	if in.Publish {
		post.PublishedAt = o.timestamp()
	}

	doc, err := o.client.Create(ctx, models.CollectionPosts, cms.MustDocument(post))
	if err != nil {
		return nil, err
	}

	o.println("\n✅ Blog post created!")
	o.printf("   ID: %s\n", doc.ID())
	o.printf("   Slug: %s\n", doc.String("slug"))
	o.printf("   Status: %s\n", doc.String("status"))
	o.printf("   URL: /posts/%s\n", doc.String("slug"))
	return doc, nil
}

type MemberInput struct {
	Name       string
	Role       string
	Background string
	Email      string
	LinkedIn   string
	Order      int
}

func (o *Operations) CreateTeamMember(ctx context.Context, in MemberInput) (cms.Document, error) {
	member := models.TeamMember{
		Name:     in.Name,
		Role:     in.Role,
		Bio:      richtext.Paragraph(o.gen.Bio(in.Name, in.Role, in.Background)),
		Email:    in.Email,
		LinkedIn: in.LinkedIn,
		Order:    in.Order,
	}

	doc, err := o.client.Create(ctx, models.CollectionTeamMembers, cms.MustDocument(member))
	if err != nil {
		return nil, err
	}

	o.println("\n✅ Team member created!")
	o.printf("   ID: %s\n", doc.ID())
	o.printf("   Name: %s\n", doc.String("name"))
	o.printf("   Role: %s\n", doc.String("role"))
	return doc, nil
}

// TestimonialInput describes a testimonial. An empty Quote is generated
// from Service.
type TestimonialInput struct {
	Quote         string
	ClientName    string
	ClientRole    string
	ClientCompany string
	Service       string
	Featured      bool
	Order         int
}

func (o *Operations) CreateTestimonial(ctx context.Context, in TestimonialInput) (cms.Document, error) {
	if in.Quote == "" {
		in.Quote = o.gen.TestimonialQuote(in.ClientCompany, in.Service)
	}

	t := models.Testimonial{
		Quote:         in.Quote,
		ClientName:    in.ClientName,
		ClientRole:    in.ClientRole,
		ClientCompany: in.ClientCompany,
		Featured:      in.Featured,
		Order:         in.Order,
		PublishedAt:   o.timestamp(),
	}

	doc, err := o.client.Create(ctx, models.CollectionTestimonials, cms.MustDocument(t))
	if err != nil {
		return nil, err
	}

	o.println("\n✅ Testimonial created!")
	o.printf("   ID: %s\n", doc.ID())
	o.printf("   Client: %s\n", doc.String("clientName"))
	if company := doc.String("clientCompany"); company != "" {
		o.printf("   Company: %s\n", company)
	}
	o.printf("   Featured: %t\n", doc.Bool("featured"))
	return doc, nil
}

func toFeatures(items []string) []models.Feature {
	out := make([]models.Feature, 0, len(items))
	for _, f := range items {
		out = append(out, models.Feature{Feature: f})
	}
	return out
}

func status(publish bool) models.Status {
	if publish {
		return models.StatusPublished
	}
	return models.StatusDraft
}
