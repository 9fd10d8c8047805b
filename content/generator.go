// Package content synthesizes marketing copy from templates. Every
// function is total: bad or empty input still yields text.
package content

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

const (
	DefaultTone     = "professional"
	TechnicalTone   = "technical"
	DefaultCategory = "Technology"
	DefaultService  = "consulting services"
)

// Brand carries the company names spliced into generated copy.
type Brand struct {
	Name      string `yaml:"name"`
	LegalName string `yaml:"legalName"`
	Insights  string `yaml:"insights"`
}

var DefaultBrand = Brand{
	Name:      "Episolve",
	LegalName: "Episolve LLC",
	Insights:  "Episolve Insights",
}

// Generator picks templates with its own random source. It is not safe
// for concurrent use.
type Generator struct {
	rnd   *rand.Rand
	brand Brand
}

// NewGenerator returns a generator drawing from src. A nil src seeds a
// fresh PCG source.
func NewGenerator(src rand.Source, brand Brand) *Generator {
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	if brand.Name == "" {
		brand = DefaultBrand
	}
	return &Generator{rnd: rand.New(src), brand: brand}
}

func (g *Generator) Brand() Brand {
	return g.brand
}

func (g *Generator) pick(templates []string) string {
	return templates[g.rnd.IntN(len(templates))]
}

var shortTemplates = []string{
	"Transform your business with %s solutions that drive growth and efficiency.",
	"Expert %s services tailored to your unique business needs and objectives.",
	"Leverage cutting-edge %s to gain competitive advantage and accelerate innovation.",
	"Professional %s that delivers measurable results and sustainable value.",
}

// ShortDescription returns a one-sentence summary of at most
// MaxShortDescription runes. The first two keywords, when given, are
// spliced in after the title.
func (g *Generator) ShortDescription(title string, keywords []string) string {
	subject := strings.ToLower(title)
	if len(keywords) > 0 {
		subject += " including " + strings.Join(keywords[:min(2, len(keywords))], " and ")
	}
	return Truncate(fmt.Sprintf(g.pick(shortTemplates), subject), MaxShortDescription)
}

const MaxShortDescription = 150

// Truncate cuts s to at most n runes.
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

func (g *Generator) FullDescription(title string, keywords []string, tone string) string {
	intro := fmt.Sprintf("Our %s service combines industry expertise with proven methodologies to deliver exceptional results for your organization.", title)

	approach := "We work collaboratively with your team to understand challenges, identify opportunities, and implement solutions that drive sustainable success."
	if tone == TechnicalTone {
		approach = "We employ rigorous analytical frameworks and best-in-class tools to architect solutions that scale with your business."
	}

	var capabilities string
	if len(keywords) > 0 {
		capabilities = fmt.Sprintf(" Our specialized capabilities include %s, ensuring comprehensive coverage of your technology needs.", strings.Join(keywords, ", "))
	}

	closing := fmt.Sprintf("Partner with %s to transform your %s capabilities and achieve your strategic objectives.", g.brand.Name, strings.ToLower(title))

	return intro + " " + approach + capabilities + " " + closing
}

var BaselineFeatures = []string{
	"Strategic planning and roadmap development",
	"Expert consultation and technical guidance",
	"Implementation support and best practices",
	"Ongoing optimization and performance monitoring",
	"Risk mitigation and compliance assurance",
}

// Features returns up to three keyword features followed by the first
// three baseline features, or the five baseline features when there are
// no keywords.
func (g *Generator) Features(title string, keywords []string) []string {
	if len(keywords) == 0 {
		return append([]string(nil), BaselineFeatures...)
	}

	out := make([]string, 0, 6)
	for _, k := range keywords[:min(3, len(keywords))] {
		out = append(out, fmt.Sprintf("Advanced %s implementation and integration", k))
	}
	return append(out, BaselineFeatures[:3]...)
}

// ServiceContent bundles the generated fields of a service.
type ServiceContent struct {
	ShortDescription string
	FullDescription  string
	Features         []string
}

func (g *Generator) Service(title string, keywords []string, tone string) ServiceContent {
	return ServiceContent{
		ShortDescription: g.ShortDescription(title, keywords),
		FullDescription:  g.FullDescription(title, keywords, tone),
		Features:         g.Features(title, keywords),
	}
}

// FirstName is the text before the first space.
func FirstName(name string) string {
	first, _, _ := strings.Cut(strings.TrimSpace(name), " ")
	return first
}

func (g *Generator) Bio(name, role, background string) string {
	first := FirstName(name)
	brand := g.brand.Name

	intro := fmt.Sprintf("%s serves as %s at %s, bringing extensive experience in technology leadership and strategic innovation.", name, role, brand)

	experience := fmt.Sprintf("%s has spent years helping organizations navigate digital transformation and achieve their strategic objectives.", first)
	if background != "" {
		experience = fmt.Sprintf("With %s, %s has developed deep expertise in solving complex business challenges through technology.", background, first)
	}

	expertise := fmt.Sprintf("%[1]s's approach combines technical depth with business acumen, enabling pragmatic solutions that deliver measurable value. Known for building high-performing teams and fostering cultures of innovation, %[1]s is passionate about leveraging technology to create competitive advantage.", first)

	closing := fmt.Sprintf("At %s, %s works closely with clients to understand their unique challenges and architect solutions that drive sustainable growth.", brand, first)

	return strings.Join([]string{intro, experience, expertise, closing}, " ")
}

var quoteTemplates = []string{
	"Working with {brand} transformed our approach to {service}. Their team's expertise and commitment to our success was evident from day one. The results exceeded our expectations.",
	"{brand} brought clarity to complex challenges and delivered solutions that made an immediate impact. Their {service} helped us achieve goals we didn't think were possible in our timeline.",
	"The {brand} team doesn't just deliver services, they become a true partner. Their deep understanding of {service} and business strategy helped us unlock significant value across our organization.",
	"{brand}'s approach to {service} is exactly what we needed. They took time to understand our unique situation and delivered tailored solutions that addressed our specific challenges.",
}

// TestimonialQuote returns a demo quote. company is accepted for symmetry
// with the testimonial fields but does not appear in any template.
func (g *Generator) TestimonialQuote(company, service string) string {
	if service == "" {
		service = DefaultService
	}
	r := strings.NewReplacer("{brand}", g.brand.Name, "{service}", service)
	return r.Replace(g.pick(quoteTemplates))
}
