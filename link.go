// Copyright 2025 The Loom Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package markdown

import (
	"strings"

	"golang.org/x/text/cases"
)

// Note: Link and Image are the same underlying struct,
// so that code can safely convert between *Link and *Image.

// A Link is an [Inline] representing a link (<a> tag).
type Link struct {
	Inner Inlines
	URL   string
	Title string
}

// An Image is an [Inline] representing an image (<img> tag).
type Image struct {
	Inner Inlines
	URL   string
	Title string
}

func (*Link) Inline() {}

func (x *Link) printHTML(p *printer) {
	p.html(`<a href="`, htmlLinkEscaper.Replace(x.URL), `"`)
	if x.Title != "" {
		p.html(` title="`)
		p.html(htmlEscaper.Replace(x.Title))
		p.html(`"`)
	}
	p.html(">")
	for _, c := range x.Inner {
		c.printHTML(p)
	}
	p.html("</a>")
}

func (x *Link) printText(p *printer) {
	for _, c := range x.Inner {
		c.printText(p)
	}
}

func (*Image) Inline() {}

func (x *Image) printHTML(p *printer) {
	p.html(`<img src="`, htmlLinkEscaper.Replace(x.URL), `" alt="`)
	i := p.buf.Len()
	x.printText(p)
	// Newlines inside alt text become spaces.
	out := p.buf.Bytes()
	for ; i < len(out); i++ {
		if out[i] == '\n' {
			out[i] = ' '
		}
	}
	p.html(`"`)
	if x.Title != "" {
		p.html(` title="`)
		p.text(x.Title)
		p.html(`"`)
	}
	p.html(` />`)
}

func (x *Image) printText(p *printer) {
	for _, c := range x.Inner {
		c.printText(p)
	}
}

// parseLinkOpen is an [inlineParser] for a link open [.
// The caller has checked that s[start] == '['.
func parseLinkOpen(r *resolver, s string, start int) (Inline, int, int, bool) {
	return &openPlain{Plain{s[start : start+1]}, start + 1}, start, start + 1, true
}

// parseImageOpen is an [inlineParser] for an image open ![.
// The caller has checked that s[start] == '!'.
func parseImageOpen(r *resolver, s string, start int) (Inline, int, int, bool) {
	if start+1 < len(s) && s[start+1] == '[' {
		return &openPlain{Plain{s[start : start+2]}, start + 2}, start, start + 2, true
	}
	return nil, 0, 0, false
}

// parseLinkClose parses a link (or image) close ] or ](target) or
// ][label] matching open.
func parseLinkClose(r *resolver, s string, start int, open *openPlain) (*Link, int, bool) {
	i := start
	if i+1 < len(s) {
		switch s[i+1] {
		case '(':
			// Inline link - [Text](Dest Title), with Title or both
			// Dest and Title omitted.
			i := skipSpace(s, i+2)
			var dest, title string
			if i < len(s) && s[i] != ')' {
				var ok bool
				dest, i, ok = parseLinkDest(s, i)
				if !ok {
					break
				}
				i = skipSpace(s, i)
				if i < len(s) && s[i] != ')' {
					title, i, ok = parseLinkTitle(s, i)
					if !ok {
						break
					}
					i = skipSpace(s, i)
				}
			}
			if i < len(s) && s[i] == ')' {
				return &Link{URL: dest, Title: title}, i + 1, true
			}

		case '[':
			// Full reference link - [Text][Label]
			label, i, ok := parseLinkLabel(s, i+1)
			if !ok {
				break
			}
			if link, ok := r.links[normalizeLabel(label)]; ok {
				return &Link{URL: link.URL, Title: link.Title}, i, true
			}
			// An unknown label does not fall back to
			// trying [Text] as a shortcut reference.
			return nil, 0, false
		}
	}

	// Collapsed or shortcut reference link: [Text][] or [Text].
	end := i + 1
	if strings.HasPrefix(s[end:], "[]") {
		end += 2
	}

	if link, ok := r.links[normalizeLabel(s[open.i:i])]; ok {
		return &Link{URL: link.URL, Title: link.Title}, end, true
	}
	return nil, 0, false
}

// parseLinkRefDef parses a link reference definition at the start of s.
// It returns the normalized label, the link, the length of the
// definition, and whether one was found at all.
func parseLinkRefDef(s string) (string, *Link, int, bool) {
	// A link reference definition is a link label, optionally preceded
	// by up to three spaces of indentation, followed by a colon,
	// optional spaces or tabs (including up to one line ending),
	// a link destination, optional spaces or tabs (including up to one
	// line ending), and an optional link title, which if present must
	// be separated from the destination by spaces or tabs.
	// No further character may occur.
	i := skipSpace(s, 0)
	label, i, ok := parseLinkLabel(s, i)
	if !ok || i >= len(s) || s[i] != ':' {
		return "", nil, 0, false
	}
	i = skipSpace(s, i+1)
	dest, i, ok := parseLinkDest(s, i)
	if !ok {
		return "", nil, 0, false
	}
	moved := false
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		moved = true
		i++
	}

	// Take the title if present and it doesn't break the parse.
	j := i
	if j >= len(s) || s[j] == '\n' {
		moved = true
		if j < len(s) {
			j++
		}
	}

	var title string
	if moved {
		for j < len(s) && (s[j] == ' ' || s[j] == '\t') {
			j++
		}
		if t, j, ok := parseLinkTitle(s, j); ok {
			for j < len(s) && (s[j] == ' ' || s[j] == '\t') {
				j++
			}
			if j >= len(s) || s[j] == '\n' {
				i = j
				title = t
			}
		}
	}

	// Must end the line. Spaces already trimmed.
	if i < len(s) && s[i] != '\n' {
		return "", nil, 0, false
	}
	if i < len(s) {
		i++
	}

	return normalizeLabel(label), &Link{URL: dest, Title: title}, i, true
}

// parseLinkTitle parses a link title at s[i:], returning the title,
// the index just past its closing delimiter, and whether a title was
// found at all.
func parseLinkTitle(s string, i int) (title string, end int, found bool) {
	if i < len(s) && (s[i] == '"' || s[i] == '\'' || s[i] == '(') {
		want := s[i]
		if want == '(' {
			want = ')'
		}
		for j := i + 1; j < len(s); j++ {
			if s[j] == want {
				return s[i+1 : j], j + 1, true
			}
			if s[j] == '(' && want == ')' {
				break
			}
		}
	}
	return "", 0, false
}

// parseLinkLabel parses a link label at s[i:], returning the label,
// the end index just past the label, and whether a label was found
// at all.
func parseLinkLabel(s string, i int) (string, int, bool) {
	// A link label begins with [ and ends with the first ].
	// Between the brackets there must be at least one character that
	// is not a space, tab, or line ending, and no other brackets.
	// A label has at most 999 characters inside the brackets.
	if i >= len(s) || s[i] != '[' {
		return "", 0, false
	}
	j := i + 1
	for ; j < len(s); j++ {
		if s[j] == ']' {
			if j-(i+1) > 999 {
				break
			}
			if label := trimSpaceTabNewline(s[i+1 : j]); label != "" {
				return label, j + 1, true
			}
			break
		}
		if s[j] == '[' {
			break
		}
	}
	return "", 0, false
}

// normalizeLabel returns the normalized label for s,
// for uniquely identifying that label.
func normalizeLabel(s string) string {
	if strings.Contains(s, "[") || strings.Contains(s, "]") {
		// Labels cannot have [ ] so avoid the work of translating.
		// This is especially important for pathological cases like
		// [[[[[[[[[[a]]]]]]]]]] which would otherwise generate
		// quadratic amounts of garbage.
		return ""
	}

	// To normalize a label, perform the Unicode case fold, strip
	// leading and trailing spaces, tabs, and line endings, and collapse
	// consecutive internal spaces, tabs, and line endings to a single
	// space.
	s = trimSpaceTabNewline(s)
	var b strings.Builder
	space := false
	hi := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case ' ', '\t', '\n':
			space = true
			continue
		default:
			if space {
				b.WriteByte(' ')
				space = false
			}
			if 'A' <= c && c <= 'Z' {
				c += 'a' - 'A'
			}
			if c >= 0x80 {
				hi = true
			}
			b.WriteByte(c)
		}
	}
	s = b.String()
	if hi {
		s = cases.Fold().String(s)
	}
	return s
}

// parseLinkDest parses a link destination at s[i:], returning the
// destination, the end index just past it, and whether a destination
// was found.
func parseLinkDest(s string, i int) (string, int, bool) {
	if i >= len(s) {
		return "", 0, false
	}

	// A sequence of zero or more characters between an opening < and a
	// closing > that contains no line endings or other < characters.
	if s[i] == '<' {
		for j := i + 1; ; j++ {
			if j >= len(s) || s[j] == '\n' || s[j] == '<' {
				return "", 0, false
			}
			if s[j] == '>' {
				return s[i+1 : j], j + 1, true
			}
		}
	}

	// Or a nonempty sequence of characters that does not start with <,
	// does not include spaces or control characters, and includes
	// parentheses only in balanced pairs.
	depth := 0
	j := i
Loop:
	for ; j < len(s); j++ {
		switch s[j] {
		case '(':
			depth++
			if depth > 32 {
				// Avoid quadratic inputs by stopping if too deep.
				// This is the same depth that cmark-gfm uses.
				return "", 0, false
			}
		case ')':
			if depth == 0 {
				break Loop
			}
			depth--
		case ' ', '\t', '\n':
			break Loop
		}
	}

	if j == i {
		return "", 0, false
	}
	return s[i:j], j, true
}
