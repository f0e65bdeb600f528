// Copyright 2025 The Loom Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package markdown

import (
	"strings"
	"unicode/utf8"
)

// An Inline is an inline element: one of [Plain], [Code], [Emph],
// [Strong], [Del], [Link], [Image], [Task], [SoftBreak], or [HardBreak].
type Inline interface {
	Inline()
	printHTML(*printer)
	printText(*printer)
}

// Inlines is a list of [Inline] elements.
type Inlines []Inline

func (x Inlines) printHTML(p *printer) {
	for _, c := range x {
		c.printHTML(p)
	}
}

func (x Inlines) printText(p *printer) {
	for _, c := range x {
		c.printText(p)
	}
}

// A Plain is an [Inline] of plain text.
type Plain struct {
	Text string
}

func (*Plain) Inline() {}

func (x *Plain) printHTML(p *printer) {
	p.text(x.Text)
}

func (x *Plain) printText(p *printer) {
	p.text(x.Text)
}

// An openPlain is a potential link or image open bracket, held in the
// inline list until its closing bracket arrives or the text ends.
type openPlain struct {
	Plain
	i int // position in input just past the bracket text
}

// An emphPlain is a potential emphasis delimiter run, held in the
// inline list until the delimiter stack pass decides its fate.
type emphPlain struct {
	Plain
	canOpen  bool
	canClose bool
	i        int // position in output list
	n        int // length of the original delimiter run
}

// A Code is an [Inline] representing a code span.
type Code struct {
	Text string
}

func (*Code) Inline() {}

func (x *Code) printHTML(p *printer) {
	p.html("<code>")
	p.text(x.Text)
	p.html("</code>")
}

func (x *Code) printText(p *printer) {
	p.text(x.Text)
}

// Note: Emph, Strong, and Del are the same underlying struct,
// so that the emphasis matcher can build one and convert.

// An Emph is an [Inline] representing *emphasis*.
type Emph struct {
	Marker string
	Inner  Inlines
}

// A Strong is an [Inline] representing **strong emphasis**.
type Strong struct {
	Marker string
	Inner  Inlines
}

// A Del is an [Inline] representing ~~strikethrough~~ text,
// a GitHub-flavored Markdown extension.
type Del struct {
	Marker string
	Inner  Inlines
}

func (*Emph) Inline()   {}
func (*Strong) Inline() {}
func (*Del) Inline()    {}

func (x *Emph) printHTML(p *printer) {
	p.html("<em>")
	x.Inner.printHTML(p)
	p.html("</em>")
}

func (x *Strong) printHTML(p *printer) {
	p.html("<strong>")
	x.Inner.printHTML(p)
	p.html("</strong>")
}

func (x *Del) printHTML(p *printer) {
	p.html("<del>")
	x.Inner.printHTML(p)
	p.html("</del>")
}

func (x *Emph) printText(p *printer)   { x.Inner.printText(p) }
func (x *Strong) printText(p *printer) { x.Inner.printText(p) }
func (x *Del) printText(p *printer)    { x.Inner.printText(p) }

// An inlineParser parses a single inline element at s[start:].
// It returns the element, the input range [start, end) it covers,
// and whether it matched. parseCodeSpan has the same shape but is a
// method on its memoizing parser.
type inlineParser func(r *resolver, s string, start int) (x Inline, xstart, end int, ok bool)

var (
	_ inlineParser = parseLinkOpen
	_ inlineParser = parseImageOpen
	_ inlineParser = parseEmph
	_ inlineParser = parseBreak
)

// A resolver turns the raw text of one leaf block at a time into
// inline elements. It is not safe for concurrent use; parallel inline
// resolution gives each worker its own resolver over the shared
// read-only reference map.
type resolver struct {
	*Parser
	links map[string]*Link

	s         string
	list      Inlines
	emitted   int // s[:emitted] has been appended to list
	backticks backtickParser
}

// emit flushes plain text up to position i into the inline list.
func (r *resolver) emit(i int) {
	if r.emitted < i {
		r.list = append(r.list, &Plain{Text: r.s[r.emitted:i]})
		r.emitted = i
	}
}

// inline parses the inline elements of the leaf text s.
func (r *resolver) inline(s string) Inlines {
	s = strings.Trim(s, " \t")
	r.s = s
	r.list = nil
	r.emitted = 0
	r.backticks = backtickParser{}

	var opens []int       // indexes in r.list of pending [ and ![ opens
	ignoreLinkBefore := 0 // no link open before this position may match
	i := 0
	for i < len(s) {
		var x Inline
		var start, end int
		var ok bool
		switch s[i] {
		case '`':
			x, start, end, ok = r.backticks.parseCodeSpan(s, i)
		case '[':
			x, start, end, ok = parseLinkOpen(r, s, i)
		case '!':
			x, start, end, ok = parseImageOpen(r, s, i)
		case '*', '_':
			x, start, end, ok = parseEmph(r, s, i)
		case '~':
			if r.Strikethrough {
				x, start, end, ok = parseEmph(r, s, i)
			}
		case '\n':
			x, start, end, ok = parseBreak(r, s, i)
		case ']':
			if len(opens) > 0 {
				oi := opens[len(opens)-1]
				opens = opens[:len(opens)-1]
				open := r.list[oi].(*openPlain)
				// A link cannot contain another link: once a close
				// bracket completes a link, earlier [ opens are dead.
				if open.Text[0] == '!' || open.i >= ignoreLinkBefore {
					if link, end, ok := parseLinkClose(r, s, i, open); ok {
						r.emit(i)
						link.Inner = r.mergePlain(r.emph(nil, r.list[oi+1:]))
						if open.Text[0] == '!' {
							r.list = append(r.list[:oi], (*Image)(link))
						} else {
							r.list = append(r.list[:oi], link)
							ignoreLinkBefore = open.i
						}
						i = end
						r.emitted = i
						continue
					}
				}
			}
			i++
			continue
		}
		if ok {
			r.emit(start)
			if _, isOpen := x.(*openPlain); isOpen {
				opens = append(opens, len(r.list))
			}
			r.list = append(r.list, x)
			i = end
			r.emitted = i
			continue
		}
		i++
	}
	r.emit(len(s))
	return r.mergePlain(r.emph(nil, r.list))
}

// emph rebuilds src with emphasis delimiter runs matched into [Emph],
// [Strong], and [Del] nodes, appending the results to dst.
func (r *resolver) emph(dst, src Inlines) Inlines {
	// Pending openers are kept in separate stacks so a closer scans
	// only candidates that could possibly match: the same delimiter
	// character and, for the rule of three, the right length class.
	const (
		stackStrike = 0 // ~~
		stackStar   = 1 // *: 1..6 indexed by canClose and n%3
		stackUnder  = 7 // _: 7..12 indexed by canClose and n%3
		numStacks   = 13
	)
	var stack [numStacks][]*emphPlain

	stackOf := func(p *emphPlain) int {
		base := 0
		switch p.Text[0] {
		case '~':
			return stackStrike
		case '*':
			base = stackStar
		case '_':
			base = stackUnder
		}
		if p.canClose {
			base += 3
		}
		return base + p.n%3
	}

	trimStack := func() {
		for i := range stack {
			stk := &stack[i]
			for len(*stk) > 0 && (*stk)[len(*stk)-1].i >= len(dst) {
				*stk = (*stk)[:len(*stk)-1]
			}
		}
	}

	for j := 0; j < len(src); j++ {
		p, ok := src[j].(*emphPlain)
		if !ok {
			if open, ok := src[j].(*openPlain); ok {
				// Unmatched bracket; now just text.
				dst = append(dst, &open.Plain)
			} else {
				dst = append(dst, src[j])
			}
			continue
		}

	PText:
		for p.Text != "" && p.canClose {
			// Find the closest opener this closer is allowed to match.
			var start *emphPlain
			first, last := stackStar, stackUnder+5
			if p.Text[0] == '~' {
				first, last = stackStrike, stackStrike
			} else if p.Text[0] == '_' {
				first = stackUnder
			} else {
				last = stackStar + 5
			}
			for si := first; si <= last; si++ {
				stk := stack[si]
				if len(stk) == 0 {
					continue
				}
				cand := stk[len(stk)-1]
				if p.Text[0] != '~' && !emphAllowed(p, cand) {
					continue
				}
				if start == nil || cand.i > start.i {
					start = cand
				}
			}
			if start == nil {
				break PText
			}

			// Strong preference: take two delimiters when both
			// sides have at least two.
			d := 1
			if len(p.Text) >= 2 && len(start.Text) >= 2 {
				d = 2
			}
			del := p.Text[0] == '~'
			x := &Emph{
				Marker: p.Text[:d],
				Inner:  r.mergePlain(append(Inlines(nil), dst[start.i+1:]...)),
			}
			start.Text = start.Text[:len(start.Text)-d]
			p.Text = p.Text[d:]
			if start.Text == "" {
				dst = dst[:start.i]
			} else {
				dst = dst[:start.i+1]
			}
			trimStack()
			switch {
			case del:
				dst = append(dst, (*Del)(x))
			case d == 2:
				dst = append(dst, (*Strong)(x))
			default:
				dst = append(dst, x)
			}
		}

		if p.Text != "" {
			if p.canOpen {
				p.i = len(dst)
				dst = append(dst, p)
				si := stackOf(p)
				stack[si] = append(stack[si], p)
			} else {
				dst = append(dst, &p.Plain)
			}
		}
	}
	return dst
}

// emphAllowed applies the rule of three: when a delimiter run can both
// open and close, the sum of the run lengths must not be a multiple of
// three unless both lengths are.
func emphAllowed(p, start *emphPlain) bool {
	if !p.canOpen && !start.canClose {
		return true
	}
	if (p.n+start.n)%3 != 0 {
		return true
	}
	return p.n%3 == 0 && start.n%3 == 0
}

// mergePlain converts leftover delimiter nodes to plain text and
// merges adjacent plain text nodes.
func (r *resolver) mergePlain(list Inlines) Inlines {
	out := make(Inlines, 0, len(list))
	var text strings.Builder
	flush := func() {
		if text.Len() > 0 {
			out = append(out, &Plain{Text: text.String()})
			text.Reset()
		}
	}
	for _, x := range list {
		if s, ok := plainTextOf(x); ok {
			text.WriteString(s)
			continue
		}
		flush()
		out = append(out, x)
	}
	flush()
	return out
}

func plainTextOf(x Inline) (string, bool) {
	switch x := x.(type) {
	case *Plain:
		return x.Text, true
	case *openPlain:
		return x.Text, true
	case *emphPlain:
		return x.Text, true
	}
	return "", false
}

// parseEmph is an [inlineParser] for a delimiter run of *, _, or ~.
// It computes the flanking properties that decide whether the run can
// open or close emphasis.
func parseEmph(r *resolver, s string, start int) (Inline, int, int, bool) {
	c := s[start]
	i := start + 1
	for i < len(s) && s[i] == c {
		i++
	}
	n := i - start

	// Strikethrough runs must be exactly two tildes.
	if c == '~' && n != 2 {
		return &Plain{Text: s[start:i]}, start, i, true
	}

	var before, after rune
	if start == 0 {
		before = ' '
	} else {
		before, _ = utf8.DecodeLastRuneInString(s[:start])
	}
	if i >= len(s) {
		after = ' '
	} else {
		after, _ = utf8.DecodeRuneInString(s[i:])
	}

	// A left-flanking run is not followed by Unicode whitespace and
	// either not followed by punctuation, or followed by punctuation
	// and preceded by whitespace or punctuation. Right-flanking is
	// the mirror image.
	leftFlank := !isUnicodeSpace(after) &&
		(!isUnicodePunct(after) || isUnicodeSpace(before) || isUnicodePunct(before))
	rightFlank := !isUnicodeSpace(before) &&
		(!isUnicodePunct(before) || isUnicodeSpace(after) || isUnicodePunct(after))

	var canOpen, canClose bool
	if c == '_' {
		// Underscores do not open or close intraword emphasis.
		canOpen = leftFlank && (!rightFlank || isUnicodePunct(before))
		canClose = rightFlank && (!leftFlank || isUnicodePunct(after))
	} else {
		canOpen = leftFlank
		canClose = rightFlank
	}

	return &emphPlain{Plain: Plain{s[start:i]}, canOpen: canOpen, canClose: canClose, n: n}, start, i, true
}

// Code span scanning can go quadratic when the text is full of
// backtick runs that never match. The backtickParser remembers, per
// run length, where such a run was last seen, so that once the string
// has been scanned to the end, failed scans are skipped entirely.
const maxBackticks = 80

type backtickParser struct {
	last    [maxBackticks]int
	scanned bool
}

// parseCodeSpan is an [inlineParser] for a backtick code span.
// The caller has checked that s[start] == '`'.
func (b *backtickParser) parseCodeSpan(s string, start int) (Inline, int, int, bool) {
	// Count the opening run; the closing run must have the same length.
	n := 1
	for start+n < len(s) && s[start+n] == '`' {
		n++
	}

	if b.scanned && (n > maxBackticks || b.last[n-1] < start+n) {
		return &Plain{Text: s[start : start+n]}, start, start + n, true
	}

	for end := start + n; end < len(s); {
		if s[end] != '`' {
			end++
			continue
		}
		estart := end
		for end < len(s) && s[end] == '`' {
			end++
		}
		m := end - estart
		if m <= maxBackticks {
			b.last[m-1] = estart
		}
		if m == n {
			// Newlines in the content become spaces, and one space
			// is stripped from each end when both ends have one and
			// the content is not all spaces.
			text := s[start+n : estart]
			if strings.Contains(text, "\n") {
				text = strings.ReplaceAll(text, "\n", " ")
			}
			if len(text) >= 2 && text[0] == ' ' && text[len(text)-1] == ' ' && trimSpaceTab(text) != "" {
				text = text[1 : len(text)-1]
			}
			return &Code{Text: text}, start, end, true
		}
	}
	b.scanned = true
	return &Plain{Text: s[start : start+n]}, start, start + n, true
}
