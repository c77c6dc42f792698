package render

import "strings"

// FormatHeading turns newlines into <br> and *text* spans into <em>text</em>.
//
// Asterisks pair left to right: an opening '*' closes at the nearest later
// '*' that leaves at least one character between them. An asterisk without
// such a partner is kept literally. "*a*b*c*" gives "<em>a</em>b<em>c</em>".
func FormatHeading(text string) string {
	return emphasize(strings.ReplaceAll(text, "\n", "<br>"))
}

func emphasize(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 16)

	for i := 0; i < len(s); {
		if s[i] != '*' {
			next := strings.IndexByte(s[i:], '*')
			if next < 0 {
				b.WriteString(s[i:])
				break
			}
			b.WriteString(s[i : i+next])
			i += next
			continue
		}

		closing := -1
		if i+2 <= len(s) {
			if j := strings.IndexByte(s[i+2:], '*'); j >= 0 {
				closing = i + 2 + j
			}
		}
		if closing < 0 {
			b.WriteByte('*')
			i++
			continue
		}

		b.WriteString("<em>")
		b.WriteString(s[i+1 : closing])
		b.WriteString("</em>")
		i = closing + 1
	}
	return b.String()
}
