// Package intent maps a free-text request typed into the vibe prompt to
// one of a fixed set of commands.
package intent

import (
	"regexp"
	"strings"
)

type Kind int

const (
	Unknown Kind = iota
	Exit
	Help
	List
	CreateService
	AddTeamMember
	CreateBlogPost
	CreateTestimonial
	SetFeatured
	Update
)

var kindNames = [...]string{
	Unknown:           "unknown",
	Exit:              "exit",
	Help:              "help",
	List:              "list",
	CreateService:     "create-service",
	AddTeamMember:     "add-team-member",
	CreateBlogPost:    "create-blog-post",
	CreateTestimonial: "create-testimonial",
	SetFeatured:       "set-featured",
	Update:            "update",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Intent is the classified request. Only the fields relevant to Kind are
// set; extracted values are suggestions the prompt offers as defaults.
type Intent struct {
	Kind Kind

	// List
	Collection string

	// CreateService, CreateBlogPost
	Title    string
	Keywords []string

	// AddTeamMember
	Name       string
	Role       string
	Background string

	// CreateTestimonial
	Client  string
	Company string

	// SetFeatured: Target is "all" or a service name.
	Target   string
	Except   string
	Featured bool
}

const (
	DefaultServiceTitle = "New Service"
	DefaultPostTitle    = "New Blog Post"
	DefaultMemberName   = "New Member"
	DefaultMemberRole   = "Team Member"
)

// Collection names offered by List.
const (
	ListServices     = "services"
	ListTeamMembers  = "team-members"
	ListTestimonials = "testimonials"
	ListPosts        = "posts"
)

var (
	createVerb = regexp.MustCompile(`\b(create|generate|add|write)\b`)
	updateVerb = regexp.MustCompile(`\b(make|update)\b`)
	allWord    = regexp.MustCompile(`\ball\b`)

	serviceTitle = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\babout (.+?)(?:\.|$)`),
		regexp.MustCompile(`(?i)\bcalled ["'](.+?)["']`),
		regexp.MustCompile(`(?i)\bnamed ["'](.+?)["']`),
		regexp.MustCompile(`(?i)\bfor (?:an? |the )?(.+?) service\b`),
	}
	keywords = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bwith keywords? (.+?)(?:\.|$)`),
	}
	memberName = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bnamed (.+?)(?: as |\.|$)`),
		regexp.MustCompile(`(?i)\bbio for (.+?)(?: as |\.|$)`),
	}
	memberRole = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bas (.+?)(?: with |\.|$)`),
	}
	memberBackground = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bwith (.+?)(?:\.|$)`),
	}
	postTitle = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\babout (.+?)(?:\.|$)`),
	}
	testimonialClient = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bfrom (.+?)(?: at |\.|$)`),
	}
	testimonialCompany = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bat (.+?)(?:\.|$)`),
	}
	featuredTarget = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(?:make|update) (?:the )?(.+?) service\b`),
	}
	featuredExcept = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bexcept (?:for )?(?:the )?(.+?)(?: services?)?(?:\.|$)`),
	}
)

// Classify maps phrase to an Intent. Rules are tried in order and the
// first that applies wins:
//
//  1. the whole phrase is exit/quit or help/?
//  2. "list" or "show me" anywhere
//  3. a create verb with a noun, nouns checked service, team/member/bio,
//     blog/post, testimonial
//  4. make/update mentioning "featured"
//  5. any other make/update
func Classify(phrase string) Intent {
	phrase = strings.TrimSpace(phrase)
	lower := strings.ToLower(phrase)

	switch lower {
	case "exit", "quit":
		return Intent{Kind: Exit}
	case "help", "?":
		return Intent{Kind: Help}
	}

	if strings.Contains(lower, "list") || strings.Contains(lower, "show me") {
		return Intent{Kind: List, Collection: listCollection(lower)}
	}

	if createVerb.MatchString(lower) {
		switch {
		case strings.Contains(lower, "service"):
			return Intent{
				Kind:     CreateService,
				Title:    extract(phrase, serviceTitle, DefaultServiceTitle),
				Keywords: splitList(extract(phrase, keywords, "")),
			}
		case containsAny(lower, "team", "member", "bio"):
			return Intent{
				Kind:       AddTeamMember,
				Name:       extract(phrase, memberName, DefaultMemberName),
				Role:       extract(phrase, memberRole, DefaultMemberRole),
				Background: extract(phrase, memberBackground, ""),
			}
		case containsAny(lower, "blog", "post"):
			return Intent{Kind: CreateBlogPost, Title: extract(phrase, postTitle, DefaultPostTitle)}
		case strings.Contains(lower, "testimonial"):
			return Intent{
				Kind:    CreateTestimonial,
				Client:  extract(phrase, testimonialClient, ""),
				Company: extract(phrase, testimonialCompany, ""),
			}
		}
	}

	if updateVerb.MatchString(lower) {
		if strings.Contains(lower, "featured") || strings.Contains(lower, "feature") {
			in := Intent{
				Kind:     SetFeatured,
				Featured: !negated(lower),
				Except:   extract(phrase, featuredExcept, ""),
			}
			if allWord.MatchString(lower) {
				in.Target = "all"
			} else {
				in.Target = extract(phrase, featuredTarget, "")
			}
			return in
		}
		return Intent{Kind: Update}
	}

	return Intent{Kind: Unknown}
}

func listCollection(lower string) string {
	switch {
	case strings.Contains(lower, "service"):
		return ListServices
	case containsAny(lower, "team", "member"):
		return ListTeamMembers
	case strings.Contains(lower, "testimonial"):
		return ListTestimonials
	case containsAny(lower, "post", "blog"):
		return ListPosts
	}
	return ""
}

func negated(lower string) bool {
	return containsAny(lower, "not featured", "unfeature", "un-feature", "remove featured", "no longer featured")
}

// extract returns the first capture of the first matching pattern.
func extract(phrase string, patterns []*regexp.Regexp, fallback string) string {
	for _, re := range patterns {
		if m := re.FindStringSubmatch(phrase); m != nil {
			if v := strings.TrimSpace(m[1]); v != "" {
				return v
			}
		}
	}
	return fallback
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
