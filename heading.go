// Copyright 2025 The Loom Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package markdown

import (
	"fmt"
	"strings"
)

// A Heading is a [Block] representing an ATX heading.
type Heading struct {
	Position
	Level int // 1 through 6
	Text  *Text
}

func (*Heading) Block() {}

func (b *Heading) printHTML(p *printer) {
	fmt.Fprintf(p, "<h%d>", b.Level)
	b.Text.printHTML(p)
	fmt.Fprintf(p, "</h%d>\n", b.Level)
}

func startATXHeading(p *parser, s line) (line, bool) {
	n, ok := trimATX(&s)
	if !ok {
		return s, false
	}

	text := trimRightSpaceTab(s.string())
	// Strip a closing run of #s when space-separated from the text.
	if t := strings.TrimRight(text, "#"); t != trimRightSpaceTab(t) || t == "" {
		text = trimRightSpaceTab(t)
	}

	pos := Position{p.lineno, p.lineno}
	p.doneBlock(&Heading{pos, n, p.newText(pos, text)})
	return line{}, true
}

// trimATX consumes an ATX heading marker: up to three columns of
// indentation and one to six #s followed by a space, tab, or end of
// line. It returns the heading level.
func trimATX(s *line) (int, bool) {
	t := *s
	t.trimSpace(0, 3, false)
	if !t.trim('#') {
		return 0, false
	}
	n := 1
	for n < 6 && t.trim('#') {
		n++
	}
	if !t.trimSpace(1, 1, true) {
		return 0, false
	}
	t.skipSpace()
	*s = t
	return n, true
}
