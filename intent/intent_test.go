package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify_Kinds(t *testing.T) {
	tests := []struct {
		phrase string
		kind   Kind
	}{
		{"exit", Exit},
		{"  QUIT ", Exit},
		{"help", Help},
		{"?", Help},
		{"please exit", Unknown},
		{"List all services", List},
		{"Show me testimonials", List},
		{"Create a service about cloud security", CreateService},
		{"Add a team member named Sarah as VP of Engineering", AddTeamMember},
		{"Create a bio for Jane Doe as CTO", AddTeamMember},
		{"Generate a blog post about AI in healthcare", CreateBlogPost},
		{"Write a post about observability", CreateBlogPost},
		{"Create a testimonial from John at Acme Corp", CreateTestimonial},
		{"Update the IT consulting service to be featured", SetFeatured},
		{"Make all services not featured except cloud solutions", SetFeatured},
		{"Update the IT consulting service description", Update},
		{"Make it pop", Update},
		{"what's the weather", Unknown},
		{"", Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.phrase, func(t *testing.T) {
			assert.Equal(t, tt.kind, Classify(tt.phrase).Kind)
		})
	}
}

func TestClassify_Precedence(t *testing.T) {
	// list beats create
	assert.Equal(t, List, Classify("create a list of services").Kind)
	// service is checked before team
	assert.Equal(t, CreateService, Classify("add a team service").Kind)
	// team is checked before blog
	assert.Equal(t, AddTeamMember, Classify("write a bio post").Kind)
	// blog is checked before testimonial
	assert.Equal(t, CreateBlogPost, Classify("create a blog post about a testimonial").Kind)
	// create beats update
	assert.Equal(t, CreateService, Classify("create a service and make it featured").Kind)
}

func TestClassify_ListCollection(t *testing.T) {
	assert.Equal(t, ListServices, Classify("list services").Collection)
	assert.Equal(t, ListTeamMembers, Classify("show me the team").Collection)
	assert.Equal(t, ListTestimonials, Classify("list testimonials").Collection)
	assert.Equal(t, ListPosts, Classify("list blog entries").Collection)
	assert.Equal(t, "", Classify("list everything").Collection)
}

func TestClassify_ServiceExtraction(t *testing.T) {
	in := Classify("Create a service about Cloud Security.")
	assert.Equal(t, "Cloud Security", in.Title)

	in = Classify(`Create a service called "Data Strategy"`)
	assert.Equal(t, "Data Strategy", in.Title)

	in = Classify(`Add a service named 'Zero Trust'`)
	assert.Equal(t, "Zero Trust", in.Title)

	in = Classify("Generate content for a DevOps service with keywords automation, CI/CD")
	assert.Equal(t, "DevOps", in.Title)
	assert.Equal(t, []string{"automation", "CI/CD"}, in.Keywords)

	in = Classify("create a service")
	assert.Equal(t, DefaultServiceTitle, in.Title)
	assert.Empty(t, in.Keywords)
}

func TestClassify_MemberExtraction(t *testing.T) {
	in := Classify("Add a team member named Sarah Chen as VP of Engineering")
	assert.Equal(t, "Sarah Chen", in.Name)
	assert.Equal(t, "VP of Engineering", in.Role)

	// a name containing "as" is not cut short
	in = Classify("Add a team member named Thomas as CTO")
	assert.Equal(t, "Thomas", in.Name)

	in = Classify("Create a bio for Jane Doe as CTO with 15 years experience")
	assert.Equal(t, "Jane Doe", in.Name)
	assert.Equal(t, "CTO", in.Role)
	assert.Equal(t, "15 years experience", in.Background)

	in = Classify("add a team member")
	assert.Equal(t, DefaultMemberName, in.Name)
	assert.Equal(t, DefaultMemberRole, in.Role)
}

func TestClassify_PostAndTestimonialExtraction(t *testing.T) {
	assert.Equal(t, "AI trends in 2025", Classify("Generate a blog post about AI trends in 2025").Title)
	assert.Equal(t, DefaultPostTitle, Classify("write a blog post").Title)

	in := Classify("Create a testimonial from John Smith at Acme Corp")
	assert.Equal(t, "John Smith", in.Client)
	assert.Equal(t, "Acme Corp", in.Company)

	in = Classify("create a testimonial")
	assert.Empty(t, in.Client)
	assert.Empty(t, in.Company)
}

func TestClassify_SetFeatured(t *testing.T) {
	in := Classify("Update the IT consulting service to be featured")
	assert.Equal(t, "IT consulting", in.Target)
	assert.True(t, in.Featured)

	in = Classify("Make all services not featured except cloud solutions")
	assert.Equal(t, "all", in.Target)
	assert.False(t, in.Featured)
	assert.Equal(t, "cloud solutions", in.Except)

	in = Classify("make all services featured except the IT consulting service")
	assert.True(t, in.Featured)
	assert.Equal(t, "IT consulting", in.Except)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "create-service", CreateService.String())
	assert.Equal(t, "unknown", Kind(99).String())
}
