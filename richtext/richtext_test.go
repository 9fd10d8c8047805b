package richtext

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParagraph_SingleNode(t *testing.T) {
	doc := Paragraph("Hello there")

	require.Len(t, doc.Root.Children, 1)
	assert.Equal(t, TypeRoot, doc.Root.Type)
	assert.Equal(t, TypeParagraph, doc.Root.Children[0].Type)
	assert.Equal(t, "Hello there", doc.PlainText())
}

func TestParagraph_JSONShape(t *testing.T) {
	raw, err := json.Marshal(Paragraph("x"))
	require.NoError(t, err)

	assert.JSONEq(t, `{"root":{"type":"root","children":[{"type":"paragraph","children":[{"type":"text","text":"x"}]}]}}`, string(raw))
}

func TestHTML_Headings(t *testing.T) {
	doc := New(HeadingNode("h2", "About Us"), ParagraphNode("We help **small** firms."))

	html := doc.HTML()
	assert.Contains(t, html, "<h2>About Us</h2>")
	assert.Contains(t, html, "<strong>small</strong>")
}

func TestHTML_MarkdownInsideParagraph(t *testing.T) {
	doc := Paragraph("# Title\n\n- one\n- two\n\n[Contact us](/contact)")

	html := doc.HTML()
	assert.Contains(t, html, "<h1>Title</h1>")
	assert.Contains(t, html, "<li>one</li>")
	assert.Contains(t, html, `<a href="/contact">Contact us</a>`)
}

func TestIsZero(t *testing.T) {
	assert.True(t, Document{}.IsZero())
	assert.False(t, Paragraph("x").IsZero())
}
