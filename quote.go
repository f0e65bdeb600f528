// Copyright 2025 The Loom Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package markdown

// A Quote is a [Block] representing a block quote.
type Quote struct {
	Position
	Blocks []Block
}

func (*Quote) Block() {}

func (b *Quote) printHTML(p *printer) {
	p.html("<blockquote>\n")
	for _, c := range b.Blocks {
		c.printHTML(p)
	}
	p.html("</blockquote>\n")
}

// trimQuote consumes a block quote marker: up to three columns of
// indentation, a '>', and up to one column of following space.
func trimQuote(s line) (line, bool) {
	t := s
	t.trimSpace(0, 3, false)
	if !t.trim('>') {
		return s, false
	}
	t.trimSpace(0, 1, true)
	return t, true
}

type quoteBuilder struct{}

func startBlockQuote(p *parser, s line) (line, bool) {
	s, ok := trimQuote(s)
	if !ok {
		return s, false
	}
	p.addBlock(new(quoteBuilder))
	return s, true
}

func (b *quoteBuilder) extend(p *parser, s line) (line, bool) {
	return trimQuote(s)
}

func (b *quoteBuilder) build(p *parser) Block {
	return &Quote{p.pos(), p.blocks()}
}
