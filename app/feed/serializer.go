package feed

import (
	"bytes"
	"io"
	"strings"
	"unicode/utf8"
)

const (
	Declaration = `<?xml version="1.0" encoding="utf-8"?>`
	Namespace   = "http://www.w3.org/2005/Atom"
)

var textEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"\r", "&#13;",
)

// Render serializes root as an indented Atom document.
func Render(root Element) string {
	var buf bytes.Buffer
	writeDocument(&buf, root)
	return buf.String()
}

func WriteTo(w io.Writer, root Element) (int64, error) {
	var buf bytes.Buffer
	writeDocument(&buf, root)
	return buf.WriteTo(w)
}

func writeDocument(buf *bytes.Buffer, root Element) {
	buf.WriteString(Declaration)
	buf.WriteString("\n")
	writeElement(buf, root, 0, ` xmlns="`+Namespace+`"`)
}

func writeElement(buf *bytes.Buffer, el Element, depth int, attrs string) {
	writeIndent(buf, depth)
	buf.WriteString("<")
	buf.WriteString(el.Name)
	buf.WriteString(attrs)

	if isEmpty(el) {
		buf.WriteString("/>\n")
		return
	}
	buf.WriteString(">")

	if hasText(el) {
		writeInline(buf, el.Children)
	} else {
		buf.WriteString("\n")
		for _, n := range el.Children {
			writeElement(buf, n.(Element), depth+1, "")
		}
		writeIndent(buf, depth)
	}

	buf.WriteString("</")
	buf.WriteString(el.Name)
	buf.WriteString(">\n")
}

// writeInline emits mixed content without added whitespace.
func writeInline(buf *bytes.Buffer, nodes []Node) {
	for _, n := range nodes {
		switch v := n.(type) {
		case Text:
			textEscaper.WriteString(buf, sanitize(string(v)))
		case Element:
			buf.WriteString("<")
			buf.WriteString(v.Name)
			if isEmpty(v) {
				buf.WriteString("/>")
				continue
			}
			buf.WriteString(">")
			writeInline(buf, v.Children)
			buf.WriteString("</")
			buf.WriteString(v.Name)
			buf.WriteString(">")
		}
	}
}

func writeIndent(buf *bytes.Buffer, depth int) {
	for i := 0; i < depth; i++ {
		buf.WriteString("  ")
	}
}

func isEmpty(el Element) bool {
	for _, n := range el.Children {
		if t, ok := n.(Text); !ok || t != "" {
			return false
		}
	}
	return true
}

func hasText(el Element) bool {
	for _, n := range el.Children {
		if _, ok := n.(Text); ok {
			return true
		}
	}
	return false
}

// sanitize replaces invalid UTF-8 and runes outside the XML Char range with U+FFFD.
func sanitize(s string) string {
	clean := true
	for _, r := range s {
		if r == utf8.RuneError || !isInCharacterRange(r) {
			clean = false
			break
		}
	}
	if clean {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, width := utf8.DecodeRuneInString(s[i:])
		if (r == utf8.RuneError && width == 1) || !isInCharacterRange(r) {
			b.WriteRune(utf8.RuneError)
		} else {
			b.WriteString(s[i : i+width])
		}
		i += width
	}
	return b.String()
}

func isInCharacterRange(r rune) bool {
	return r == 0x09 ||
		r == 0x0A ||
		r == 0x0D ||
		r >= 0x20 && r <= 0xD7FF ||
		r >= 0xE000 && r <= 0xFFFD ||
		r >= 0x10000 && r <= 0x10FFFF
}
