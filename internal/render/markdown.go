package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Markdown converts trusted free-text fields from markdown to HTML. Raw
// HTML in the source passes through untouched, so enabling it does not
// change what content is trusted.
type Markdown struct {
	md goldmark.Markdown
}

// NewMarkdown creates a converter. style names the chroma style used for
// fenced code blocks; empty means "github".
func NewMarkdown(style string) *Markdown {
	if style == "" {
		style = "github"
	}
	return &Markdown{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				highlighting.NewHighlighting(
					highlighting.WithStyle(style),
				),
			),
			goldmark.WithRendererOptions(
				html.WithUnsafe(),
			),
		),
	}
}

// Block converts src and returns the block-level HTML.
func (m *Markdown) Block(src string) (string, error) {
	var buf bytes.Buffer
	if err := m.md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("converting markdown: %w", err)
	}
	return strings.TrimSpace(buf.String()), nil
}

// Inline converts src and strips the wrapping paragraph when the result is
// a single paragraph, so it can sit inside an existing <p>.
func (m *Markdown) Inline(src string) (string, error) {
	out, err := m.Block(src)
	if err != nil {
		return "", err
	}
	if strings.HasPrefix(out, "<p>") && strings.HasSuffix(out, "</p>") && strings.Count(out, "<p>") == 1 {
		out = strings.TrimSuffix(strings.TrimPrefix(out, "<p>"), "</p>")
	}
	return out, nil
}
