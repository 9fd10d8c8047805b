// Package richtext holds the node tree stored in rich-text fields and
// renders it to HTML.
package richtext

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

const (
	TypeRoot      = "root"
	TypeParagraph = "paragraph"
	TypeHeading   = "heading"
	TypeText      = "text"
	TypeList      = "list"
	TypeListItem  = "listitem"
)

type Node struct {
	Type     string `json:"type" yaml:"type"`
	Tag      string `json:"tag,omitempty" yaml:"tag,omitempty"`
	Text     string `json:"text,omitempty" yaml:"text,omitempty"`
	Children []Node `json:"children,omitempty" yaml:"children,omitempty"`
}

type Document struct {
	Root Node `json:"root" yaml:"root"`
}

var md = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		extension.Linkify,
	),
)

// New builds a document from top-level blocks.
func New(blocks ...Node) Document {
	return Document{Root: Node{Type: TypeRoot, Children: blocks}}
}

// Paragraph wraps plain text in a single paragraph.
func Paragraph(text string) Document {
	return New(ParagraphNode(text))
}

func ParagraphNode(text string) Node {
	return Node{Type: TypeParagraph, Children: []Node{{Type: TypeText, Text: text}}}
}

func HeadingNode(tag, text string) Node {
	return Node{Type: TypeHeading, Tag: tag, Children: []Node{{Type: TypeText, Text: text}}}
}

func (d Document) IsZero() bool {
	return len(d.Root.Children) == 0
}

// PlainText joins the text of every block, one block per line.
func (d Document) PlainText() string {
	var lines []string
	for _, block := range d.Root.Children {
		lines = append(lines, block.text())
	}
	return strings.Join(lines, "\n")
}

func (n Node) text() string {
	if n.Type == TypeText {
		return n.Text
	}
	var b strings.Builder
	for _, c := range n.Children {
		b.WriteString(c.text())
	}
	return b.String()
}

// Markdown converts the tree to markdown. Paragraph text is passed
// through as-is since generated bodies are stored as markdown inside a
// single paragraph.
func (d Document) Markdown() string {
	var blocks []string
	for _, block := range d.Root.Children {
		switch block.Type {
		case TypeHeading:
			level := 1
			if len(block.Tag) == 2 && block.Tag[0] == 'h' && block.Tag[1] >= '1' && block.Tag[1] <= '6' {
				level = int(block.Tag[1] - '0')
			}
			blocks = append(blocks, strings.Repeat("#", level)+" "+block.text())
		case TypeList:
			var items []string
			for _, item := range block.Children {
				items = append(items, "- "+item.text())
			}
			blocks = append(blocks, strings.Join(items, "\n"))
		default:
			blocks = append(blocks, block.text())
		}
	}
	return strings.Join(blocks, "\n\n")
}

// HTML renders the document through goldmark, falling back to the plain
// text when conversion fails.
func (d Document) HTML() string {
	var buf bytes.Buffer
	if err := md.Convert([]byte(d.Markdown()), &buf); err != nil {
		return d.PlainText()
	}
	return buf.String()
}
