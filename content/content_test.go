package content

import (
	"math/rand/v2"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGenerator(seed uint64) *Generator {
	return NewGenerator(rand.NewPCG(seed, seed), DefaultBrand)
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Cloud Security", "cloud-security"},
		{"  AI & ML: The Future!  ", "ai-ml-the-future"},
		{"Café Ops", "caf-ops"},
		{"Résumé Review", "r-sum-review"},
		{"Straße Plan", "stra-e-plan"},
		{"İstanbul Office", "i-stanbul-office"},
		{"5 Cloud Migration Tips", "5-cloud-migration-tips"},
		{"---", ""},
		{"", ""},
		{"already-a-slug", "already-a-slug"},
		{"CI/CD   pipelines", "ci-cd-pipelines"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := Slugify(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, Slugify(got), "not idempotent")
			assert.False(t, strings.HasPrefix(got, "-") || strings.HasSuffix(got, "-"))
			assert.NotContains(t, got, "--")
		})
	}
}

func TestShortDescription_Bounded(t *testing.T) {
	g := newTestGenerator(1)
	long := strings.Repeat("Enterprise Platform Modernization ", 10)

	for i := 0; i < 50; i++ {
		desc := g.ShortDescription(long, []string{"observability", "zero trust", "ignored"})
		assert.LessOrEqual(t, utf8.RuneCountInString(desc), MaxShortDescription)
	}
}

func TestShortDescription_Keywords(t *testing.T) {
	g := newTestGenerator(7)

	desc := g.ShortDescription("Cloud Security", []string{"AWS", "compliance", "encryption"})
	assert.Contains(t, desc, "cloud security including AWS and compliance")
	assert.NotContains(t, desc, "encryption")

	desc = g.ShortDescription("Cloud Security", nil)
	assert.Contains(t, desc, "cloud security")
	assert.NotContains(t, desc, "including")
}

func TestShortDescription_DeterministicWithSeed(t *testing.T) {
	a := newTestGenerator(42).ShortDescription("Data", nil)
	b := newTestGenerator(42).ShortDescription("Data", nil)
	assert.Equal(t, a, b)
}

func TestFullDescription(t *testing.T) {
	g := newTestGenerator(1)

	desc := g.FullDescription("Cloud Security", []string{"AWS", "compliance"}, TechnicalTone)
	assert.True(t, strings.HasPrefix(desc, "Our Cloud Security service combines"))
	assert.Contains(t, desc, "rigorous analytical frameworks")
	assert.Contains(t, desc, "Our specialized capabilities include AWS, compliance,")
	assert.True(t, strings.HasSuffix(desc, "Partner with Episolve to transform your cloud security capabilities and achieve your strategic objectives."))

	desc = g.FullDescription("Cloud Security", nil, DefaultTone)
	assert.Contains(t, desc, "We work collaboratively")
	assert.NotContains(t, desc, "specialized capabilities")
}

func TestFeatures(t *testing.T) {
	g := newTestGenerator(1)

	assert.Equal(t, BaselineFeatures, g.Features("X", nil))

	got := g.Features("X", []string{"AWS"})
	assert.Equal(t, []string{
		"Advanced AWS implementation and integration",
		BaselineFeatures[0], BaselineFeatures[1], BaselineFeatures[2],
	}, got)

	got = g.Features("X", []string{"a", "b", "c", "d", "e"})
	require.Len(t, got, 6)
	assert.Equal(t, "Advanced c implementation and integration", got[2])
	assert.Equal(t, BaselineFeatures[2], got[5])
}

func TestFeatures_DoesNotAliasBaseline(t *testing.T) {
	got := newTestGenerator(1).Features("X", nil)
	got[0] = "changed"
	assert.Equal(t, "Strategic planning and roadmap development", BaselineFeatures[0])
}

func TestBio(t *testing.T) {
	g := newTestGenerator(1)

	bio := g.Bio("Sarah Chen", "CTO", "")
	assert.True(t, strings.HasPrefix(bio, "Sarah Chen serves as CTO at Episolve,"))
	assert.Contains(t, bio, "Sarah has spent years")
	assert.Contains(t, bio, "Sarah's approach")
	assert.Contains(t, bio, "At Episolve, Sarah works closely")

	bio = g.Bio("Jane Doe", "CTO", "15 years experience")
	assert.Contains(t, bio, "With 15 years experience, Jane has developed deep expertise")
}

func TestTestimonialQuote(t *testing.T) {
	g := newTestGenerator(3)

	for i := 0; i < 20; i++ {
		q := g.TestimonialQuote("Acme", "cloud migration")
		assert.Contains(t, q, "Episolve")
		assert.Contains(t, q, "cloud migration")
	}
	assert.Contains(t, g.TestimonialQuote("Acme", ""), DefaultService)
}

func TestBlogPost(t *testing.T) {
	g := newTestGenerator(1)

	post := g.BlogPost("5 Cloud Migration Tips", "Cloud Solutions")
	assert.Equal(t, "5 Cloud Migration Tips", post.Title)
	assert.True(t, strings.HasPrefix(post.Body, "# 5 Cloud Migration Tips"))
	assert.Contains(t, post.Body, "cloud solutions continues to reshape")
	assert.Contains(t, post.Body, "When approaching 5 cloud migration tips")
	assert.Contains(t, post.Excerpt, "strategies for 5 cloud migration tips.")

	assert.Contains(t, g.BlogPost("X", "").Body, "technology continues")

	preview := post.Preview(100)
	assert.True(t, strings.HasSuffix(preview, "..."))
	assert.Equal(t, 103, utf8.RuneCountInString(preview))
}

func TestNewGenerator_Defaults(t *testing.T) {
	g := NewGenerator(nil, Brand{})
	assert.Equal(t, DefaultBrand, g.Brand())
	assert.NotEmpty(t, g.ShortDescription("X", nil))
}

func TestFirstName(t *testing.T) {
	assert.Equal(t, "Jane", FirstName("Jane Doe"))
	assert.Equal(t, "Cher", FirstName("Cher"))
	assert.Equal(t, "", FirstName(""))
}
