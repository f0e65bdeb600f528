// Copyright 2025 The Loom Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package markdown

// A ThematicBreak is a [Block] representing a thematic break (horizontal rule).
type ThematicBreak struct {
	Position
	raw string
}

func (*ThematicBreak) Block() {}

func (b *ThematicBreak) printHTML(p *printer) {
	p.html("<hr />\n")
}

func startThematicBreak(p *parser, s line) (line, bool) {
	t := s
	raw, ok := trimThematicBreak(&t)
	if !ok {
		return s, false
	}
	p.doneBlock(&ThematicBreak{Position{p.lineno, p.lineno}, raw})
	return line{}, true
}

// trimThematicBreak matches a full line of three or more -, _, or *
// characters, with up to three columns of indentation and any interior
// spaces and tabs.
func trimThematicBreak(s *line) (string, bool) {
	t := *s
	t.trimSpace(0, 3, false)
	start := t
	var c byte
	switch t.peek() {
	case '-', '_', '*':
		c = t.peek()
	default:
		return "", false
	}
	n := 0
	for !t.eof() {
		switch t.peek() {
		case c:
			t.skip(1)
			n++
		case ' ', '\t':
			t.trimSpace(1, 1, true)
		default:
			return "", false
		}
	}
	if n < 3 {
		return "", false
	}
	*s = t
	return trimRightSpaceTab(start.string()), true
}

// A HardBreak is an [Inline] representing a hard line break
// inside a paragraph.
type HardBreak struct{}

func (*HardBreak) Inline() {}

func (x *HardBreak) printHTML(p *printer) {
	p.html("<br />\n")
}

func (x *HardBreak) printText(p *printer) {
	p.text("\n")
}

// A SoftBreak is an [Inline] representing a soft line break
// inside a paragraph.
type SoftBreak struct{}

func (*SoftBreak) Inline() {}

func (x *SoftBreak) printHTML(p *printer) {
	p.html("\n")
}

func (x *SoftBreak) printText(p *printer) {
	p.text("\n")
}

// parseBreak turns the newline at s[i] into a hard or soft break.
// Two or more spaces before the newline make it hard; surrounding
// spaces and tabs are dropped from the adjacent text either way.
func parseBreak(r *resolver, s string, i int) (Inline, int, int, bool) {
	start := i
	for start > 0 && (s[start-1] == ' ' || s[start-1] == '\t') {
		start--
	}
	end := i + 1
	for end < len(s) && (s[end] == ' ' || s[end] == '\t') {
		end++
	}
	if i-start >= 2 && s[i-1] == ' ' && s[i-2] == ' ' {
		return &HardBreak{}, start, end, true
	}
	return &SoftBreak{}, start, end, true
}
