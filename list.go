// Copyright 2025 The Loom Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package markdown

import (
	"fmt"
)

// A List is a [Block] representing a bullet or ordered list.
// Two list items belong to the same List when they use the same
// marker: the same bullet character, or the same ordered-list
// delimiter.
type List struct {
	Position
	Bullet rune // '-', '*', '+' for bullet lists; '.' or ')' for ordered
	Start  int  // number of first item, for ordered lists
	Loose  bool
	Items  []Block // always *Item
}

// An Item is a [Block] representing a single list item.
type Item struct {
	Position
	Blocks []Block
}

func (*List) Block() {}
func (*Item) Block() {}

func (b *List) printHTML(p *printer) {
	if b.Bullet == '.' || b.Bullet == ')' {
		p.html("<ol")
		if b.Start != 1 {
			fmt.Fprintf(p, ` start="%d"`, b.Start)
		}
		p.html(">\n")
	} else {
		p.html("<ul>\n")
	}
	for _, c := range b.Items {
		c.printHTML(p)
	}
	if b.Bullet == '.' || b.Bullet == ')' {
		p.html("</ol>\n")
	} else {
		p.html("</ul>\n")
	}
}

func (b *Item) printHTML(p *printer) {
	p.html("<li>")
	if len(b.Blocks) > 0 {
		if _, ok := b.Blocks[0].(*Text); !ok {
			p.html("\n")
		}
	}
	for i, c := range b.Blocks {
		c.printHTML(p)
		if i+1 < len(b.Blocks) {
			if _, ok := c.(*Text); ok {
				p.html("\n")
			}
		}
	}
	p.html("</li>\n")
}

type listBuilder struct {
	bullet rune
	num    int
	loose  bool
	item   *itemBuilder
	todo   func() line
}

type itemBuilder struct {
	list        *listBuilder
	width       int
	haveContent bool
}

func (c *listBuilder) extend(p *parser, s line) (line, bool) {
	d := c.item
	if d != nil && s.trimSpace(d.width, d.width, true) || d == nil && s.isBlank() {
		return s, true
	}
	return s, false
}

func (c *itemBuilder) extend(p *parser, s line) (line, bool) {
	if s.isBlank() && !c.haveContent {
		return s, false
	}
	if s.isBlank() {
		return line{}, true
	}
	c.haveContent = true
	return s, true
}

func (b *listBuilder) build(p *parser) Block {
	blocks := p.blocks()
	pos := p.pos()

	// The builder dance leaves the list position ending at its last
	// matched line, which may be a trailing blank; the real extent
	// ends with the last item.
	pos.EndLine = blocks[len(blocks)-1].Pos().EndLine

	// A list is loose when any two consecutive items, or any two
	// consecutive blocks within an item, are separated by a blank line.
Loose:
	for i, c := range blocks {
		c := c.(*Item)
		if i+1 < len(blocks) {
			if blocks[i+1].Pos().StartLine-c.EndLine > 1 {
				b.loose = true
				break Loose
			}
		}
		for j, d := range c.Blocks {
			endLine := d.Pos().EndLine
			if j+1 < len(c.Blocks) {
				if c.Blocks[j+1].Pos().StartLine-endLine > 1 {
					b.loose = true
					break Loose
				}
			}
		}
	}

	// Tight lists drop the paragraph wrappers.
	if !b.loose {
		for _, c := range blocks {
			c := c.(*Item)
			for i, d := range c.Blocks {
				if para, ok := d.(*Paragraph); ok {
					c.Blocks[i] = para.Text
				}
			}
		}
	}

	return &List{
		pos,
		b.bullet,
		b.num,
		b.loose,
		blocks,
	}
}

func (b *itemBuilder) build(p *parser) Block {
	b.list.item = nil
	return &Item{p.pos(), p.blocks()}
}

// newListItem starts a list item. Opening an item is a two-step dance:
// startListItem decides the marker and registers a todo on the list
// builder, and the next starter pass runs the todo to open the item
// itself, so that the item nests inside the list.
func newListItem(p *parser, s line) (line, bool) {
	if list, ok := p.curB().(*listBuilder); ok && list.todo != nil {
		s = list.todo()
		list.todo = nil
		return s, true
	}
	if p.startListItem(&s) {
		return s, true
	}
	return s, false
}

func (p *parser) startListItem(s *line) bool {
	t := *s
	n := 0
	for i := 0; i < 3; i++ {
		if !t.trimSpace(1, 1, false) {
			break
		}
		n++
	}
	bullet := t.peek()
	var num int
Switch:
	switch bullet {
	default:
		return false
	case '-', '*', '+':
		t.trim(bullet)
		n++
	case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		for j := t.i; ; j++ {
			if j >= len(t.text) {
				return false
			}
			c := t.text[j]
			if c == '.' || c == ')' {
				bullet = c
				j++
				n += j - t.i
				t.i = j
				break Switch
			}
			if c < '0' || '9' < c {
				return false
			}
			if j-t.i >= 9 {
				return false
			}
			num = num*10 + int(c) - '0'
		}
	}
	if !t.trimSpace(1, 1, true) {
		return false
	}
	n++

	// Up to three more columns of indentation belong to the marker,
	// unless the rest of the line is blank.
	tt := t
	m := 0
	for i := 0; i < 3 && tt.trimSpace(1, 1, false); i++ {
		m++
	}
	if !tt.trimSpace(1, 1, true) {
		n += m
		t = tt
	}

	// point of no return

	var list *listBuilder
	if c, ok := p.nextB().(*listBuilder); ok {
		list = c
	}
	if list == nil || list.bullet != rune(bullet) {
		// A list interrupting a paragraph must not begin with a blank
		// line, and an ordered one must start at 1.
		if list == nil && p.para() != nil &&
			(t.isBlank() || (bullet == '.' || bullet == ')') && num != 1) {
			return false
		}
		list = &listBuilder{bullet: rune(bullet), num: num}
		p.addBlock(list)
	}
	b := &itemBuilder{list: list, width: n, haveContent: !t.isBlank()}
	list.todo = func() line {
		p.addBlock(b)
		list.item = b
		return t
	}
	return true
}
