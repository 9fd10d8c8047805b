// Package vibe is the interactive prompt that turns plain-English
// requests into record operations.
package vibe

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"episolve/content"
	"episolve/intent"
	"episolve/models"
	"episolve/records"
)

type Session struct {
	ops *records.Operations
	in  *bufio.Scanner
	out io.Writer
	log *zap.Logger
}

func NewSession(ops *records.Operations, in io.Reader, out io.Writer, log *zap.Logger) *Session {
	return &Session{ops: ops, in: bufio.NewScanner(in), out: out, log: log}
}

func (s *Session) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

// Run reads requests until "exit", end of input or ctx is done.
func (s *Session) Run(ctx context.Context) error {
	s.printf("\n🎨 Vibe Coding Interface\n")
	s.printf("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n")
	s.printf("Describe what you want in plain English.\n")
	s.printf("Type \"exit\" to quit, \"help\" for examples.\n\n")

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.printf("✨ What would you like to do? ")
		if !s.in.Scan() {
			s.printf("\n")
			return s.in.Err()
		}
		line := strings.TrimSpace(s.in.Text())
		if line == "" {
			continue
		}

		in := intent.Classify(line)
		s.log.Debug("classified request", zap.String("kind", in.Kind.String()))
		if in.Kind == intent.Exit {
			s.printf("\n👋 See you later!\n\n")
			return nil
		}

		if err := s.handle(ctx, in); err != nil {
			if err == io.EOF {
				s.printf("\n")
				return nil
			}
			s.printf("\n❌ Error: %v\n", err)
			s.printf("💡 Try rephrasing your request or type \"help\" for examples.\n\n")
		}
	}
}

func (s *Session) handle(ctx context.Context, in intent.Intent) error {
	switch in.Kind {
	case intent.Help:
		s.showHelp()
		return nil
	case intent.List:
		if in.Collection == "" {
			s.printf("\n💡 What would you like to list? (services, team members, testimonials, posts)\n\n")
			return nil
		}
		return s.ops.List(ctx, in.Collection)
	case intent.CreateService:
		return s.createService(ctx, in)
	case intent.AddTeamMember:
		return s.addTeamMember(ctx, in)
	case intent.CreateBlogPost:
		return s.createBlogPost(ctx, in)
	case intent.CreateTestimonial:
		return s.createTestimonial(ctx, in)
	case intent.SetFeatured:
		return s.setFeatured(ctx, in)
	case intent.Update:
		s.printf("\n🔄 To change a single service use:\n")
		s.printf("   content update-service <slug> --field value\n\n")
		return nil
	}

	s.printf("\n❓ I'm not sure what you mean. Try:\n")
	s.printf("  • \"list services\"\n")
	s.printf("  • \"create a service about [topic]\"\n")
	s.printf("  • \"add a team member named [name]\"\n")
	s.printf("  • Type \"help\" for more examples\n\n")
	return nil
}

// ask prompts with def as the default answer. End of input is io.EOF.
func (s *Session) ask(question, def string) (string, error) {
	if def != "" {
		s.printf("%s [%s]: ", question, def)
	} else {
		s.printf("%s: ", question)
	}
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	if answer := strings.TrimSpace(s.in.Text()); answer != "" {
		return answer, nil
	}
	return def, nil
}

func (s *Session) askYes(question string, def bool) (bool, error) {
	d := "n"
	if def {
		d = "y"
	}
	answer, err := s.ask(question+" (y/n)", d)
	if err != nil {
		return false, err
	}
	return strings.HasPrefix(strings.ToLower(answer), "y"), nil
}

func (s *Session) confirm() (bool, error) {
	ok, err := s.askYes("Save it?", true)
	if err == nil && !ok {
		s.printf("\n🚫 Cancelled, nothing was saved.\n\n")
	}
	return ok, err
}

func (s *Session) createService(ctx context.Context, in intent.Intent) error {
	s.printf("\n🔧 Creating a new service...\n\n")

	title, err := s.ask("Service title", in.Title)
	if err != nil {
		return err
	}
	keywords, err := s.ask("Keywords (comma-separated)", strings.Join(in.Keywords, ", "))
	if err != nil {
		return err
	}
	icon, err := s.ask("Icon (lightbulb/code/chart/shield/cloud/database/settings/users)", string(records.DefaultIcon))
	if err != nil {
		return err
	}
	featured, err := s.askYes("Featured on homepage?", false)
	if err != nil {
		return err
	}
	publish, err := s.askYes("Publish immediately?", true)
	if err != nil {
		return err
	}
	if ok, err := s.confirm(); !ok || err != nil {
		return err
	}

	s.printf("\n🤖 Generating content...\n")
	_, err = s.ops.CreateService(ctx, records.ServiceInput{
		Title:    title,
		Keywords: splitList(keywords),
		Icon:     models.Icon(icon),
		Featured: featured,
		Publish:  publish,
	})
	return err
}

func (s *Session) addTeamMember(ctx context.Context, in intent.Intent) error {
	s.printf("\n👤 Adding a new team member...\n\n")

	name, err := s.ask("Name", in.Name)
	if err != nil {
		return err
	}
	role, err := s.ask("Role", in.Role)
	if err != nil {
		return err
	}
	background, err := s.ask("Background [optional]", in.Background)
	if err != nil {
		return err
	}
	email, err := s.ask("Email [optional]", "")
	if err != nil {
		return err
	}
	linkedIn, err := s.ask("LinkedIn URL [optional]", "")
	if err != nil {
		return err
	}
	if ok, err := s.confirm(); !ok || err != nil {
		return err
	}

	s.printf("\n🤖 Generating bio...\n")
	_, err = s.ops.CreateTeamMember(ctx, records.MemberInput{
		Name:       name,
		Role:       role,
		Background: background,
		Email:      email,
		LinkedIn:   linkedIn,
	})
	return err
}

func (s *Session) createBlogPost(ctx context.Context, in intent.Intent) error {
	s.printf("\n📝 Creating a new blog post...\n\n")

	title, err := s.ask("Post title", in.Title)
	if err != nil {
		return err
	}
	category, err := s.ask("Category", content.DefaultCategory)
	if err != nil {
		return err
	}
	publish, err := s.askYes("Publish immediately?", true)
	if err != nil {
		return err
	}
	if ok, err := s.confirm(); !ok || err != nil {
		return err
	}

	s.printf("\n🤖 Generating content...\n")
	_, err = s.ops.CreateBlogPost(ctx, records.BlogInput{Title: title, Category: category, Publish: publish})
	return err
}

func (s *Session) createTestimonial(ctx context.Context, in intent.Intent) error {
	s.printf("\n💬 Creating a new testimonial...\n\n")

	name, err := s.ask("Client name", in.Client)
	if err != nil {
		return err
	}
	if name == "" {
		s.printf("\n⚠️  A client name is required, nothing was saved.\n\n")
		return nil
	}
	company, err := s.ask("Company", in.Company)
	if err != nil {
		return err
	}
	role, err := s.ask("Role [optional]", "")
	if err != nil {
		return err
	}
	quote, err := s.ask("Quote [leave empty to generate]", "")
	if err != nil {
		return err
	}
	if ok, err := s.confirm(); !ok || err != nil {
		return err
	}

	_, err = s.ops.CreateTestimonial(ctx, records.TestimonialInput{
		Quote:         quote,
		ClientName:    name,
		ClientRole:    role,
		ClientCompany: company,
	})
	return err
}

func (s *Session) setFeatured(ctx context.Context, in intent.Intent) error {
	target, err := s.ask("Which service? (name or \"all\")", in.Target)
	if err != nil {
		return err
	}
	if target == "" {
		s.printf("\n⚠️  No service named, nothing was changed.\n\n")
		return nil
	}

	state := "featured"
	if !in.Featured {
		state = "not featured"
	}
	plan := fmt.Sprintf("%s → %s", target, state)
	if in.Except != "" {
		plan += " (except " + in.Except + ")"
	}
	s.printf("\n🔄 %s\n", plan)

	if ok, err := s.askYes("Apply?", true); !ok || err != nil {
		if err == nil {
			s.printf("\n🚫 Cancelled, nothing was changed.\n\n")
		}
		return err
	}
	return s.ops.SetFeatured(ctx, target, in.Except, in.Featured)
}

func (s *Session) showHelp() {
	s.printf("\n📚 Example Commands:\n\n")
	s.printf("Content Creation:\n")
	s.printf("  \"Create a service about cloud security\"\n")
	s.printf("  \"Add a team member named Sarah as VP of Engineering\"\n")
	s.printf("  \"Generate a blog post about AI in healthcare\"\n")
	s.printf("  \"Create a testimonial from John at Acme Corp\"\n\n")
	s.printf("Content Management:\n")
	s.printf("  \"List all services\"\n")
	s.printf("  \"Show me testimonials\"\n")
	s.printf("  \"Update the IT consulting service to be featured\"\n")
	s.printf("  \"Make all services not featured except cloud solutions\"\n\n")
	s.printf("Content Generation:\n")
	s.printf("  \"Generate content for a DevOps service with keywords automation, CI/CD\"\n")
	s.printf("  \"Create a bio for Jane Doe as CTO with 15 years experience\"\n\n")
	s.printf("Navigation:\n")
	s.printf("  \"help\" - Show this help\n")
	s.printf("  \"exit\" - Quit\n\n")
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
