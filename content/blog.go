package content

import (
	"fmt"
	"strings"
)

type BlogPost struct {
	Title   string
	Excerpt string
	Body    string // markdown
}

// BlogPost drafts an article on title framed by category. An empty
// category falls back to DefaultCategory.
func (g *Generator) BlogPost(title, category string) BlogPost {
	if category == "" {
		category = DefaultCategory
	}
	subject := strings.ToLower(title)

	excerpt := fmt.Sprintf("Explore key insights and practical strategies for %s. Learn how forward-thinking organizations are leveraging technology to drive innovation and business value.", subject)

	body := strings.NewReplacer(
		"{title}", title,
		"{subject}", subject,
		"{category}", strings.ToLower(category),
		"{brand}", g.brand.Name,
	).Replace(blogTemplate)

	return BlogPost{Title: title, Excerpt: excerpt, Body: strings.TrimSpace(body)}
}

// Preview returns the first n runes of the body followed by an ellipsis.
func (p BlogPost) Preview(n int) string {
	if short := Truncate(p.Body, n); short != p.Body {
		return short + "..."
	}
	return p.Body
}

const blogTemplate = `
# {title}

In today's rapidly evolving business landscape, {category} continues to reshape how organizations operate and compete. Understanding the latest trends and best practices is essential for maintaining competitive advantage.

## The Current Landscape

Modern enterprises face unprecedented challenges and opportunities. Digital transformation initiatives are no longer optional; they're imperative for survival and growth in an increasingly connected world.

## Key Considerations

When approaching {subject}, organizations must balance multiple factors:

- Strategic alignment with business objectives
- Technical feasibility and resource requirements
- Risk management and compliance considerations
- Change management and organizational readiness
- Long-term sustainability and scalability

## Best Practices

Leading organizations share common approaches to success:

1. **Start with strategy** - Define clear objectives and success metrics
2. **Embrace agility** - Adopt iterative approaches that allow for course correction
3. **Invest in people** - Build capabilities and foster a culture of continuous learning
4. **Leverage partnerships** - Work with experienced advisors who understand your industry
5. **Measure and optimize** - Continuously monitor performance and refine your approach

## Moving Forward

The path to {subject} success requires careful planning, expert guidance, and sustained commitment. Organizations that invest in building the right capabilities and partnerships position themselves for long-term success.

## Get Expert Guidance

At {brand}, we help organizations navigate complex technology challenges and achieve their strategic objectives. Our team brings deep expertise and proven methodologies to every engagement.

Ready to learn more? [Contact us](/contact) to discuss your specific needs and explore how we can help.
`
