// Copyright 2025 The Loom Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package markdown

import "testing"

var normalizeLabelTests = []struct {
	in, out string
}{
	{"foo", "foo"},
	{"Foo", "foo"},
	{"  a  \t b ", "a b"},
	{"a\nb", "a b"},
	{"ΑΓΩ", "αγω"},
	{"[x]", ""},
	{"", ""},
}

func TestNormalizeLabel(t *testing.T) {
	for _, tt := range normalizeLabelTests {
		if out := normalizeLabel(tt.in); out != tt.out {
			t.Errorf("normalizeLabel(%q) = %q, want %q", tt.in, out, tt.out)
		}
	}
}

func TestCollectLinks(t *testing.T) {
	text := "[a]: /1\n[a]: /2\n[B]: /3 \"t\"\nnot a def\n   [c]: /4\n"
	links := collectLinks(text)
	if len(links) != 3 {
		t.Fatalf("collectLinks: %d definitions, want 3", len(links))
	}
	if l := links["a"]; l == nil || l.URL != "/1" {
		t.Errorf("links[a] = %+v, want URL /1 (first definition wins)", l)
	}
	if l := links["b"]; l == nil || l.URL != "/3" || l.Title != "t" {
		t.Errorf("links[b] = %+v, want URL /3 title t", l)
	}
	if l := links["c"]; l == nil || l.URL != "/4" {
		t.Errorf("links[c] = %+v, want URL /4", l)
	}
}

func TestParseLinkRefDef(t *testing.T) {
	label, link, n, ok := parseLinkRefDef("[Foo]: /url \"title\"\nrest")
	if !ok || label != "foo" || link.URL != "/url" || link.Title != "title" {
		t.Fatalf("parseLinkRefDef = %q, %+v, %v", label, link, ok)
	}
	if n != len("[Foo]: /url \"title\"\n") {
		t.Errorf("parseLinkRefDef length = %d, want %d", n, len("[Foo]: /url \"title\"\n"))
	}

	for _, bad := range []string{"[foo] /url", "[foo]:", "[]: /url", "[foo]: /url extra"} {
		if _, _, _, ok := parseLinkRefDef(bad); ok {
			t.Errorf("parseLinkRefDef(%q) succeeded, want failure", bad)
		}
	}
}

func TestDefinitionAfterUse(t *testing.T) {
	var p Parser
	html := ToHTML(p.Parse("[x]\n\n[x]: /u\n"))
	want := "<p><a href=\"/u\">x</a></p>\n"
	if html != want {
		t.Errorf("have %q, want %q", html, want)
	}
}

func TestDocumentLinks(t *testing.T) {
	var p Parser
	doc := p.Parse("[a]: /a\n\n> [b]: /b\n")
	if l := doc.Links["a"]; l == nil || l.URL != "/a" {
		t.Errorf("Links[a] = %+v, want /a", doc.Links["a"])
	}
	if l := doc.Links["b"]; l == nil || l.URL != "/b" {
		t.Errorf("Links[b] = %+v, want /b (definition inside block quote)", doc.Links["b"])
	}
}
