// Copyright 2025 The Loom Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package markdown

import (
	"strings"
	"sync"
	"testing"
)

const mixedDoc = `# Title

intro *em* and **strong** with [a link](/url "t").

> quoted
> - [x] task one
> - [ ] task two

| h1 | h2 |
|:---|---:|
| ~~a~~ | ` + "`code`" + ` |

[ref]

[ref]: /found
`

func gfmParser() *Parser {
	return &Parser{Table: true, Strikethrough: true, TaskList: true}
}

// Rendering the same input must give identical output on every parse.
func TestDeterministic(t *testing.T) {
	p := gfmParser()
	first := ToHTML(p.Parse(mixedDoc))
	for i := 0; i < 10; i++ {
		if h := ToHTML(p.Parse(mixedDoc)); h != first {
			t.Fatalf("parse %d differs:\nhave %q\nwant %q", i, h, first)
		}
	}
}

// A single Parser must be safe for concurrent Parse calls.
func TestConcurrentParse(t *testing.T) {
	p := gfmParser()
	want := ToHTML(p.Parse(mixedDoc))
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if h := ToHTML(p.Parse(mixedDoc)); h != want {
				t.Errorf("concurrent parse differs:\nhave %q\nwant %q", h, want)
			}
		}()
	}
	wg.Wait()
}

// Parsing is total: no input may panic, and any non-empty rendering
// ends in a newline.
func TestNoPanic(t *testing.T) {
	inputs := []string{
		"",
		"\n",
		"\n\n\n",
		"\x00",
		"a\rb",
		"[",
		"]",
		"[]",
		"![",
		"`",
		"``",
		"***",
		"****a",
		"~~~",
		"~~",
		"|",
		"||",
		">",
		"> > > > >",
		"- ",
		"1. ",
		"#",
		"    ",
		strings.Repeat("> ", 200) + "deep",
		strings.Repeat("[", 500),
		strings.Repeat("*", 500),
		strings.Repeat("`x`", 300),
		"[a](" + strings.Repeat("(", 50) + ")",
	}
	p := gfmParser()
	for _, in := range inputs {
		h := ToHTML(p.Parse(in))
		if h != "" && !strings.HasSuffix(h, "\n") {
			t.Errorf("ToHTML(Parse(%q)) = %q, missing trailing newline", in, h)
		}
	}
}

func TestPositions(t *testing.T) {
	var p Parser
	doc := p.Parse("# h\n\npara\nmore\n\n> q\n")
	if len(doc.Blocks) != 3 {
		t.Fatalf("got %d blocks, want 3", len(doc.Blocks))
	}
	wants := []Position{{1, 1}, {3, 4}, {6, 6}}
	for i, b := range doc.Blocks {
		if b.Pos() != wants[i] {
			t.Errorf("block %d at %v, want %v", i, b.Pos(), wants[i])
		}
	}
	if doc.Pos().StartLine != 1 || doc.Pos().EndLine != 6 {
		t.Errorf("document at %v, want 1-6", doc.Pos())
	}
}

func TestNormalize(t *testing.T) {
	var p Parser
	if h := ToHTML(p.Parse("a\r\nb\rc\n")); h != "<p>a\nb\nc</p>\n" {
		t.Errorf("CR normalization: %q", h)
	}
	if h := ToHTML(p.Parse("a\x00b")); h != "<p>a�b</p>\n" {
		t.Errorf("NUL normalization: %q", h)
	}
}
