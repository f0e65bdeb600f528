// Copyright 2025 The Loom Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package markdown

import (
	"strings"
)

// A CodeBlock is a [Block] representing an indented or fenced code
// block, displayed in <pre><code> tags.
type CodeBlock struct {
	Position
	Fence string   // opening fence; empty for an indented block
	Info  string   // info string following the opening fence
	Text  []string // lines of the code block
}

func (*CodeBlock) Block() {}

func (b *CodeBlock) printHTML(p *printer) {
	p.html("<pre><code")
	if b.Info != "" {
		// The first space-separated word of the info string names
		// the language of the sample.
		lang := b.Info
		for i, c := range lang {
			if isUnicodeSpace(c) {
				lang = lang[:i]
				break
			}
		}
		p.html(` class="language-`)
		p.text(lang)
		p.html(`"`)
	}
	p.html(">")
	for _, s := range b.Text {
		p.text(s)
		p.text("\n")
	}
	p.html("</code></pre>\n")
}

// startIndentedCodeBlock starts an indented [CodeBlock]: four columns
// of indentation and a non-blank remainder. Indented code cannot
// interrupt a paragraph.
func startIndentedCodeBlock(p *parser, s line) (line, bool) {
	peek := s
	if p.para() != nil || !peek.trimSpace(4, 4, false) || peek.isBlank() {
		return s, false
	}

	b := new(indentBuilder)
	p.addBlock(b)
	b.text = append(b.text, peek.string())
	return line{}, true
}

// startFencedCodeBlock starts a fenced [CodeBlock].
func startFencedCodeBlock(p *parser, s line) (line, bool) {
	indent, fence, info, ok := trimFence(&s)
	if !ok {
		return s, false
	}
	p.addBlock(&fenceBuilder{indent: indent, fence: fence, info: info})
	return line{}, true
}

// trimFence attempts to trim leading indentation (up to 3 columns),
// a run of at least three ` or ~ fence characters, and an info string
// from s. On success it consumes the whole line.
func trimFence(s *line) (indent int, fence, info string, ok bool) {
	t := *s
	indent = 0
	for indent < 3 && t.trimSpace(1, 1, false) {
		indent++
	}
	c := t.peek()
	if c != '`' && c != '~' {
		return
	}

	f := t.string()
	n := 0
	for t.trim(c) {
		n++
	}
	if n < 3 {
		return
	}

	// A backtick fence cannot have backticks in its info string,
	// or the line would be ambiguous with a code span.
	txt := t.trimString()
	if c == '`' && strings.Contains(txt, "`") {
		return
	}
	info = txt
	fence = f[:n]
	ok = true
	*s = line{}
	return
}

// An indentBuilder is the open-block state of an indented [CodeBlock].
type indentBuilder struct {
	text []string
}

func (c *indentBuilder) extend(p *parser, s line) (line, bool) {
	// Extension lines must start with 4 columns of space or be blank.
	if !s.trimSpace(4, 4, true) {
		return s, false
	}
	c.text = append(c.text, s.string())
	return line{}, true
}

func (c *indentBuilder) build(p *parser) Block {
	// Trailing blank lines separate the block from what follows;
	// they are not part of the code.
	for len(c.text) > 0 && c.text[len(c.text)-1] == "" {
		c.text = c.text[:len(c.text)-1]
	}
	return &CodeBlock{p.pos(), "", "", c.text}
}

// A fenceBuilder is the open-block state of a fenced [CodeBlock].
type fenceBuilder struct {
	indent int
	fence  string
	info   string
	text   []string
	done   bool // saw the closing fence
}

func (c *fenceBuilder) extend(p *parser, s line) (line, bool) {
	if c.done {
		return s, false
	}

	// A closing fence is at least as long as the opening fence,
	// has no info string, and may be indented less. It belongs to
	// this block but adds no content.
	peek := s
	if _, fence, info, ok := trimFence(&peek); ok && strings.HasPrefix(fence, c.fence) && info == "" {
		c.done = true
		return line{}, true
	}

	// Content lines shed up to the opening fence's indentation.
	if !s.trimSpace(c.indent, c.indent, false) {
		s.trimSpace(0, c.indent, false)
	}

	c.text = append(c.text, s.string())
	return line{}, true
}

func (c *fenceBuilder) build(p *parser) Block {
	return &CodeBlock{p.pos(), c.fence, c.info, c.text}
}
