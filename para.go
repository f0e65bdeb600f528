// Copyright 2025 The Loom Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package markdown

import "strings"

// An Empty is a [Block] that renders nothing: the remains of a
// paragraph that held only link reference definitions.
type Empty struct {
	Position
}

func (*Empty) Block() {}

func (b *Empty) printHTML(p *printer) {}

// A Text is a [Block] of text: the inline content of a paragraph,
// heading, table cell, or tight list item.
type Text struct {
	Position
	Inline Inlines

	raw  string // inline source, resolved into Inline after the block pass
	task *Task  // task list marker stripped from raw, if any
}

func (*Text) Block() {}

func (b *Text) printHTML(p *printer) {
	b.Inline.printHTML(p)
}

// resolve parses the leaf's raw text into its inline elements.
func (b *Text) resolve(r *resolver) {
	b.Inline = r.inline(b.raw)
	if b.task != nil {
		b.Inline = append(Inlines{b.task}, b.Inline...)
	}
}

// A Paragraph is a [Block] representing a paragraph of text.
type Paragraph struct {
	Position
	Text *Text
}

func (*Paragraph) Block() {}

func (b *Paragraph) printHTML(p *printer) {
	p.html("<p>")
	b.Text.printHTML(p)
	p.html("</p>\n")
}

type paraBuilder struct {
	text  []string
	table *tableBuilder
}

func (b *paraBuilder) extend(p *parser, s line) (line, bool) {
	return s, false
}

func (b *paraBuilder) build(p *parser) Block {
	if b.table != nil {
		return b.table.build(p)
	}

	s := strings.Join(b.text, "\n")

	// Leading link reference definitions are not paragraph content.
	// The reference collector usually recorded them already, but
	// container markers hide them from its raw-text scan, so keep
	// them for the post-pass merge.
	for s != "" {
		label, link, end, ok := parseLinkRefDef(s)
		if !ok {
			break
		}
		p.extraLinks = append(p.extraLinks, extraLink{label, link})
		s = s[skipSpace(s, end):]
	}

	if s == "" {
		return &Empty{p.pos()}
	}

	// The paragraph position is wrong when definitions were stripped,
	// but it lines up with the remaining text's line count.
	pos := p.pos()
	pos.StartLine += len(b.text) - (strings.Count(s, "\n") + 1)
	pos.EndLine = pos.StartLine + strings.Count(s, "\n")
	return &Paragraph{
		pos,
		p.newText(pos, s),
	}
}

func startParagraph(p *parser, s line) (line, bool) {
	b := p.para()
	indented := p.lineDepth == len(p.stack)-2 // fully indented, not lazy continuation
	text := s.trimSpaceString()

	// Continue or end an open table.
	if b != nil && b.table != nil {
		if indented && text != "" && text != "|" {
			b.table.addRow(text)
			return line{}, true
		}
		b = nil
	}

	// Does this line start a table?
	if p.Table && b != nil && indented && len(b.text) > 0 && isTableStart(b.text[len(b.text)-1], text) {
		hdr := b.text[len(b.text)-1]
		b.text = b.text[:len(b.text)-1]

		tb := new(paraBuilder)
		p.addBlock(tb)
		tb.table = new(tableBuilder)
		tb.table.start(hdr, text)
		return line{}, true
	}

	if b != nil {
		for i := p.lineDepth; i < len(p.stack); i++ {
			p.stack[i].pos.EndLine = p.lineno
		}
	} else {
		// Note: Ends anything without a matching prefix.
		b = new(paraBuilder)
		p.addBlock(b)
	}
	b.text = append(b.text, text)
	return line{}, true
}
