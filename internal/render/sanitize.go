package render

import (
	"strings"

	"golang.org/x/net/html"
)

// EscapeText returns s as markup that displays s literally, by rendering
// it as a single text node.
func EscapeText(s string) string {
	var b strings.Builder
	if err := html.Render(&b, &html.Node{Type: html.TextNode, Data: s}); err != nil {
		return html.EscapeString(s)
	}
	return b.String()
}

// attrReplacer escapes & first so entities produced for the other
// characters are never escaped twice.
var attrReplacer = strings.NewReplacer(
	"&", "&amp;",
	`"`, "&quot;",
	"'", "&#39;",
	"<", "&lt;",
	">", "&gt;",
)

// EscapeAttr escapes s for use inside a quoted attribute value.
func EscapeAttr(s string) string {
	return attrReplacer.Replace(s)
}
