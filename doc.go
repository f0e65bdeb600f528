// Copyright 2025 The Loom Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package markdown implements a Markdown-to-HTML conversion engine.
//
// The engine covers the CommonMark v0.31.2 block and inline grammar for
// paragraphs, ATX headings, block quotes, lists, indented and fenced code
// blocks, thematic breaks, emphasis, code spans, links, and images, plus
// the GitHub-flavored table, strikethrough, and task list extensions.
// Setext headings, raw HTML, backslash escapes, and autolinks are not
// recognized; their syntax falls through to literal text.
//
// Parsing runs in two phases. The first phase builds the block tree from
// the input lines, maintaining a stack of open blocks whose continuation
// rules decide, line by line, which blocks stay open. The second phase
// resolves the raw text attached to each leaf block into inline elements
// using a delimiter stack. A reference collector pre-pass gathers link
// reference definitions so that a use may precede its definition.
//
// Parsing is total: every input produces a document and every document
// renders, with malformed constructs falling back to literal text.
package markdown

// A Document is the root [Block]: the parsed representation of an
// entire Markdown document.
type Document struct {
	Position
	Blocks []Block
	Links  map[string]*Link
}

func (*Document) Block() {}

func (b *Document) printHTML(p *printer) {
	for _, c := range b.Blocks {
		c.printHTML(p)
	}
}
