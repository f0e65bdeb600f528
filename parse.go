// Copyright 2025 The Loom Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package markdown

import (
	"runtime"
	"strings"
	"sync"
)

// A Position describes the extent of a block in the original input,
// in 1-indexed line numbers.
type Position struct {
	StartLine int
	EndLine   int
}

func (p Position) Pos() Position {
	return p
}

// A Block is a Markdown block element: one of [Document], [Paragraph],
// [Text], [Heading], [Quote], [List], [Item], [CodeBlock],
// [ThematicBreak], [Table], or [Empty].
type Block interface {
	Block()
	Pos() Position
	printHTML(*printer)
}

// A Parser is a Markdown parser.
// The exported fields enable the GitHub-flavored Markdown extensions;
// the zero value parses the plain CommonMark subset.
type Parser struct {
	// Table enables the table extension.
	Table bool

	// Strikethrough enables the ~~strikethrough~~ extension.
	Strikethrough bool

	// TaskList enables the task list item extension.
	TaskList bool
}

// parser holds the state of one Parse call. A new parser is used for
// every document, so a single Parser can parse concurrently.
type parser struct {
	*Parser

	root   *Document
	links  map[string]*Link
	lineno int
	stack  []openBlock
	texts  []*Text

	// extraLinks holds definitions stripped from paragraph starts that
	// the raw-text collector could not see behind container markers.
	// They fill gaps in the collected map after the block pass.
	extraLinks []extraLink

	// lineDepth is the index of the deepest open block that the current
	// line has been matched into, by an extend call or by a starter.
	lineDepth int
}

type openBlock struct {
	builder blockBuilder
	inner   []Block
	pos     Position
}

type extraLink struct {
	label string
	link  *Link
}

// A blockBuilder is the in-progress state of one open block.
//
// extend processes a continuation line: it consumes the block's own
// prefix from s and reports whether the block stays open on this line.
//
// build converts the finished builder into a Block. Container builds
// take their children from the parser stack entry being closed.
type blockBuilder interface {
	extend(p *parser, s line) (line, bool)
	build(p *parser) Block
}

// A starter tries to start a new block at the beginning of s.
// On success it returns the rest of the line, which may be the
// zero line if the block consumed the line entirely.
type starter func(p *parser, s line) (line, bool)

// starters lists the block starts in match priority order.
// startParagraph is last because it always claims the line.
var starters = []starter{
	startIndentedCodeBlock,
	startBlockQuote,
	startATXHeading,
	startThematicBreak,
	startFencedCodeBlock,
	newListItem,
	startParagraph,
}

type rootBuilder struct{}

func (b *rootBuilder) extend(p *parser, s line) (line, bool) {
	return s, true
}

func (b *rootBuilder) build(p *parser) Block {
	return &Document{p.pos(), p.blocks(), p.links}
}

// Parse parses a single Markdown document from text.
//
// Parsing is total: every input produces a document. Malformed
// constructs fall back to literal text rather than reporting errors.
func (p *Parser) Parse(text string) *Document {
	ps := &parser{Parser: p}
	return ps.parse(text)
}

func (p *parser) parse(text string) *Document {
	text = normalize(text)

	// Link reference definitions do not depend on block structure,
	// so the collector runs concurrently with the block pass.
	// Inline resolution needs the finished map and joins below.
	linksc := make(chan map[string]*Link, 1)
	go func() {
		linksc <- collectLinks(text)
	}()

	p.stack = append(p.stack, openBlock{builder: &rootBuilder{}, pos: Position{1, 1}})
	for t := text; t != ""; {
		var ln string
		if j := strings.IndexByte(t, '\n'); j >= 0 {
			ln, t = t[:j], t[j+1:]
		} else {
			ln, t = t, ""
		}
		p.lineno++
		p.addLine(makeLine(ln))
	}
	p.stack[0].pos.EndLine = p.lineno
	p.links = <-linksc
	if p.links == nil {
		p.links = make(map[string]*Link)
	}
	p.trimStack(0)
	for _, d := range p.extraLinks {
		if _, ok := p.links[d.label]; !ok {
			p.links[d.label] = d.link
		}
	}

	if p.TaskList {
		for _, b := range p.root.Blocks {
			rewriteTasks(b)
		}
	}
	p.resolveInlines()
	return p.root
}

// normalize rewrites input as required before line scanning:
// NUL bytes become U+FFFD, and CRLF and lone CR become LF.
func normalize(text string) string {
	if strings.ContainsAny(text, "\x00\r") {
		text = strings.ReplaceAll(text, "\x00", "�")
		text = strings.ReplaceAll(text, "\r\n", "\n")
		text = strings.ReplaceAll(text, "\r", "\n")
	}
	return text
}

func (p *parser) addLine(s line) {
	// Continuation: each open block, outermost first, consumes its
	// prefix. The first block that refuses ends the matched region.
	p.lineDepth = 0
	for i := 1; i < len(p.stack); i++ {
		old := s
		var ok bool
		s, ok = p.stack[i].builder.extend(p, s)
		if !old.isBlank() && (ok || s != old) {
			p.stack[i].pos.EndLine = p.lineno
		}
		if !ok {
			s = old
			break
		}
		p.lineDepth = i
	}

	if s.isBlank() {
		// A blank line closes every block below the matched region.
		// Blocks that extended across it stay open.
		p.trimStack(p.lineDepth + 1)
		return
	}

	// New blocks. A starter that claims the line may leave a remainder
	// for further starts, as a quote marker does for its first content.
Starters:
	for {
		for _, start := range starters {
			rest, ok := start(p, s)
			if !ok {
				continue
			}
			if rest.isBlank() {
				return
			}
			s = rest
			p.lineDepth++
			continue Starters
		}
		// unreachable: startParagraph always claims the line
		panic("markdown: no starter claimed line")
	}
}

func (p *parser) trimStack(depth int) {
	if len(p.stack) < depth {
		panic("trimStack")
	}
	for len(p.stack) > depth {
		p.closeBlock()
	}
}

func (p *parser) closeBlock() Block {
	b := &p.stack[len(p.stack)-1]
	blk := b.builder.build(p)
	p.stack = p.stack[:len(p.stack)-1]
	if len(p.stack) > 0 {
		t := &p.stack[len(p.stack)-1]
		t.inner = append(t.inner, blk)
	} else {
		p.root = blk.(*Document)
	}
	return blk
}

// addBlock opens c as a new block nested directly below the deepest
// block the current line matched, closing anything deeper first.
func (p *parser) addBlock(c blockBuilder) {
	p.trimStack(p.lineDepth + 1)
	p.stack = append(p.stack, openBlock{
		builder: c,
		pos:     Position{p.lineno, p.lineno},
	})
}

// doneBlock records b as a completed child of the deepest matched
// block, for blocks that never stay open past their own line.
func (p *parser) doneBlock(b Block) {
	p.trimStack(p.lineDepth + 1)
	t := &p.stack[len(p.stack)-1]
	t.inner = append(t.inner, b)
}

func (p *parser) para() *paraBuilder {
	if b, ok := p.stack[len(p.stack)-1].builder.(*paraBuilder); ok {
		return b
	}
	return nil
}

func (p *parser) curB() blockBuilder {
	if p.lineDepth < len(p.stack) {
		return p.stack[p.lineDepth].builder
	}
	return nil
}

func (p *parser) nextB() blockBuilder {
	if p.lineDepth+1 < len(p.stack) {
		return p.stack[p.lineDepth+1].builder
	}
	return nil
}

func (p *parser) pos() Position {
	return p.stack[len(p.stack)-1].pos
}

func (p *parser) blocks() []Block {
	return p.stack[len(p.stack)-1].inner
}

// newText allocates the Text leaf holding raw inline source.
// Every leaf is registered so resolveInlines can visit it later.
func (p *parser) newText(pos Position, text string) *Text {
	b := &Text{Position: pos, raw: text}
	p.texts = append(p.texts, b)
	return b
}

// resolveInlines converts the raw text of every leaf block into its
// inline elements. Once the block tree is final the leaves are mutually
// independent and the reference map is read-only, so the work fans out
// across GOMAXPROCS goroutines, each with private resolver state.
func (p *parser) resolveInlines() {
	n := runtime.GOMAXPROCS(0)
	if n > len(p.texts) {
		n = len(p.texts)
	}
	if n <= 1 {
		r := resolver{Parser: p.Parser, links: p.links}
		for _, t := range p.texts {
			t.resolve(&r)
		}
		return
	}
	var wg sync.WaitGroup
	for w := 0; w < n; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			r := resolver{Parser: p.Parser, links: p.links}
			for i := w; i < len(p.texts); i += n {
				p.texts[i].resolve(&r)
			}
		}(w)
	}
	wg.Wait()
}
