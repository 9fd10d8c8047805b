package models

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"episolve/apperr"
)

const MaxShortDescription = 150

const (
	CollectionServices     = "services"
	CollectionCategories   = "categories"
	CollectionPosts        = "posts"
	CollectionTeamMembers  = "team-members"
	CollectionTestimonials = "testimonials"
	CollectionPages        = "pages"
	CollectionMedia        = "media"
	CollectionLeads        = "leads"
	CollectionSubscribers  = "subscribers"
)

// Collections maps every collection name to its model.
func Collections() map[string]any {
	return map[string]any{
		CollectionServices:     &Service{},
		CollectionCategories:   &Category{},
		CollectionPosts:        &Post{},
		CollectionTeamMembers:  &TeamMember{},
		CollectionTestimonials: &Testimonial{},
		CollectionPages:        &Page{},
		CollectionMedia:        &Media{},
		CollectionLeads:        &Lead{},
		CollectionSubscribers:  &Subscriber{},
	}
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }

func validStatus(s Status) bool {
	return s == "" || s == StatusDraft || s == StatusPublished
}

func (s *Service) Validate() error {
	switch {
	case blank(s.Title):
		return apperr.Invalid("title is required")
	case blank(s.Slug):
		return apperr.Invalid("slug is required")
	case utf8.RuneCountInString(s.ShortDescription) > MaxShortDescription:
		return apperr.Invalid("shortDescription must be at most %d characters", MaxShortDescription)
	case s.Icon != "" && !slices.Contains(Icons, s.Icon):
		return apperr.Invalid("icon %q is not one of %v", s.Icon, Icons)
	case !validStatus(s.Status):
		return apperr.Invalid("status %q is invalid", s.Status)
	}
	return nil
}

func (c *Category) Validate() error {
	if blank(c.Title) {
		return apperr.Invalid("title is required")
	}
	return nil
}

func (p *Post) Validate() error {
	switch {
	case blank(p.Title):
		return apperr.Invalid("title is required")
	case blank(p.Slug):
		return apperr.Invalid("slug is required")
	case !validStatus(p.Status):
		return apperr.Invalid("status %q is invalid", p.Status)
	}
	return nil
}

func (m *TeamMember) Validate() error {
	switch {
	case blank(m.Name):
		return apperr.Invalid("name is required")
	case blank(m.Role):
		return apperr.Invalid("role is required")
	}
	return nil
}

func (t *Testimonial) Validate() error {
	switch {
	case blank(t.Quote):
		return apperr.Invalid("quote is required")
	case blank(t.ClientName):
		return apperr.Invalid("clientName is required")
	}
	return nil
}

func (p *Page) Validate() error {
	switch {
	case blank(p.Title):
		return apperr.Invalid("title is required")
	case blank(p.Slug):
		return apperr.Invalid("slug is required")
	case !validStatus(p.Status):
		return apperr.Invalid("status %q is invalid", p.Status)
	}
	switch p.Hero.Type {
	case "", HeroHighImpact, HeroMediumImpact, HeroLowImpact:
	default:
		return apperr.Invalid("hero type %q is invalid", p.Hero.Type)
	}
	for i, b := range p.Layout {
		if err := b.validate(); err != nil {
			return apperr.WrapInvalid(err, fmt.Sprintf("layout block %d (%s)", i, b.BlockType))
		}
	}
	return nil
}

func (b Block) validate() error {
	switch b.BlockType {
	case BlockContent, BlockTestimonials, BlockCTA, BlockForm:
	case BlockStats:
		if n := len(b.Stats); n < 2 || n > 4 {
			return apperr.Invalid("stats block needs 2 to 4 stats, got %d", n)
		}
	default:
		return apperr.Invalid("unknown block type %q", b.BlockType)
	}
	return nil
}

func (m *Media) Validate() error {
	switch {
	case blank(m.Filename):
		return apperr.Invalid("filename is required")
	case blank(m.Alt):
		return apperr.Invalid("alt is required")
	}
	return nil
}

func (l *Lead) Validate() error {
	switch {
	case blank(l.Name):
		return apperr.Invalid("name is required")
	case blank(l.Email):
		return apperr.Invalid("email is required")
	case blank(l.Message):
		return apperr.Invalid("message is required")
	case l.Source != "" && !slices.Contains(LeadSources, l.Source):
		return apperr.Invalid("source %q is invalid", l.Source)
	case l.Status != "" && !slices.Contains(LeadStatuses, l.Status):
		return apperr.Invalid("status %q is not one of %v", l.Status, LeadStatuses)
	}
	return nil
}

func (s *Subscriber) Validate() error {
	switch {
	case blank(s.Email):
		return apperr.Invalid("email is required")
	case s.Source != "" && !slices.Contains(SubscriberSources, s.Source):
		return apperr.Invalid("source %q is invalid", s.Source)
	case s.Status != "" && s.Status != SubscriberActive && s.Status != SubscriberUnsubscribed:
		return apperr.Invalid("status %q is invalid", s.Status)
	}
	return nil
}

// WriteOnce lists fields that may be set once and never changed.
func (*Lead) WriteOnce() []string       { return []string{"crmId"} }
func (*Subscriber) WriteOnce() []string { return []string{"crmId"} }
