// Copyright 2025 The Loom Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package markdown

import (
	"bytes"
	"flag"
	"fmt"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/yuin/goldmark"
	gmext "github.com/yuin/goldmark/extension"
	ghtml "github.com/yuin/goldmark/renderer/html"
	"golang.org/x/tools/txtar"
)

var goldmarkFlag = flag.Bool("goldmark", false, "run goldmark differential tests")

func Test(t *testing.T) {
	files, err := filepath.Glob("testdata/*.txt")
	if err != nil {
		t.Fatal(err)
	}
	for _, file := range files {
		t.Run(strings.TrimSuffix(filepath.Base(file), ".txt"), func(t *testing.T) {
			a, err := txtar.ParseFile(file)
			if err != nil {
				t.Fatal(err)
			}

			var p Parser
			if err := setParserOptions(&p, a.Comment); err != nil {
				t.Fatal(err)
			}

			var ncase, npass int
			for i := 0; i+2 <= len(a.Files); i += 2 {
				ncase++
				md := a.Files[i]
				html := a.Files[i+1]
				name := strings.TrimSuffix(md.Name, ".md")
				if name != strings.TrimSuffix(html.Name, ".html") {
					t.Fatalf("mismatched file pair: %s and %s", md.Name, html.Name)
				}

				t.Run(name, func(t *testing.T) {
					doc := p.Parse(decode(string(md.Data)))
					h := encode(ToHTML(doc))
					if h != string(html.Data) {
						t.Fatalf("input %q\nparse:\n%s\nhave %q\nwant %q\ndingus: (https://spec.commonmark.org/dingus/?text=%s)", md.Data, dump(doc), h, html.Data, strings.ReplaceAll(url.QueryEscape(decode(string(md.Data))), "+", "%20"))
					}
					npass++
				})

				if !*goldmarkFlag {
					continue
				}
				t.Run("goldmark/"+name, func(t *testing.T) {
					opts := []goldmark.Option{goldmark.WithRendererOptions(ghtml.WithUnsafe())}
					var exts []goldmark.Extender
					if p.Table {
						exts = append(exts, gmext.Table)
					}
					if p.Strikethrough {
						exts = append(exts, gmext.Strikethrough)
					}
					if p.TaskList {
						exts = append(exts, gmext.TaskList)
					}
					if len(exts) > 0 {
						opts = append(opts, goldmark.WithExtensions(exts...))
					}
					gm := goldmark.New(opts...)
					var buf bytes.Buffer
					if err := gm.Convert([]byte(decode(string(md.Data))), &buf); err != nil {
						t.Fatal(err)
					}
					if buf.Len() > 0 && buf.Bytes()[buf.Len()-1] != '\n' {
						buf.WriteByte('\n')
					}
					want := string(html.Data)
					want = strings.ReplaceAll(want, " />", ">")
					out := encode(buf.String())
					out = strings.ReplaceAll(out, " />", ">")
					if out != want {
						t.Fatalf("\n    - input: ``%q``\n    - output: ``%q``\n    - golden: ``%q``\n    - [dingus](https://spec.commonmark.org/dingus/?text=%s)", md.Data, out, want, strings.ReplaceAll(url.QueryEscape(decode(string(md.Data))), "+", "%20"))
					}
					npass++
				})
			}
			t.Logf("%d/%d pass", npass, ncase)
		})
	}
}

// decode rewrites the control markers that keep txtar files editor-safe:
// ^J marks preserved trailing spaces, ^M a carriage return, ^D a missing
// final newline, ^@ a NUL byte.
func decode(s string) string {
	s = strings.ReplaceAll(s, "^J\n", "\n")
	s = strings.ReplaceAll(s, "^M", "\r")
	s = strings.ReplaceAll(s, "^D\n", "")
	s = strings.ReplaceAll(s, "^@", "\x00")
	return s
}

func encode(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "^M\n")
	s = strings.ReplaceAll(s, "\r", "^M^D\n")
	s = strings.ReplaceAll(s, " \n", " ^J\n")
	s = strings.ReplaceAll(s, "\t\n", "\t^J\n")
	s = strings.ReplaceAll(s, "\x00", "^@")
	if s != "" && !strings.HasSuffix(s, "\n") {
		s += "^D\n"
	}
	return s
}

// setParserOptions extracts lines of the form
//
//	key: value
//
// from data and sets the corresponding options on the Parser.
func setParserOptions(p *Parser, data []byte) error {
	for _, line := range strings.Split(string(data), "\n") {
		if strings.HasPrefix(line, "//") {
			continue
		}
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		value = strings.TrimSpace(value)
		b, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		switch key {
		case "Table":
			p.Table = b
		case "Strikethrough":
			p.Strikethrough = b
		case "TaskList":
			p.TaskList = b
		default:
			return fmt.Errorf("unknown option: %q", key)
		}
	}
	return nil
}

// dump formats the block tree for test failure messages.
func dump(b Block) string {
	var buf strings.Builder
	dumpTo(&buf, b, "")
	return buf.String()
}

func dumpTo(buf *strings.Builder, b Block, prefix string) {
	pos := b.Pos()
	fmt.Fprintf(buf, "%s%T %d-%d", prefix, b, pos.StartLine, pos.EndLine)
	switch b := b.(type) {
	case *Document:
		buf.WriteByte('\n')
		for _, c := range b.Blocks {
			dumpTo(buf, c, prefix+"\t")
		}
	case *Quote:
		buf.WriteByte('\n')
		for _, c := range b.Blocks {
			dumpTo(buf, c, prefix+"\t")
		}
	case *List:
		fmt.Fprintf(buf, " bullet=%q loose=%v\n", b.Bullet, b.Loose)
		for _, c := range b.Items {
			dumpTo(buf, c, prefix+"\t")
		}
	case *Item:
		buf.WriteByte('\n')
		for _, c := range b.Blocks {
			dumpTo(buf, c, prefix+"\t")
		}
	case *Paragraph:
		fmt.Fprintf(buf, " %q\n", b.Text.raw)
	case *Text:
		fmt.Fprintf(buf, " %q\n", b.raw)
	case *Heading:
		fmt.Fprintf(buf, " h%d %q\n", b.Level, b.Text.raw)
	case *CodeBlock:
		fmt.Fprintf(buf, " fence=%q info=%q %q\n", b.Fence, b.Info, strings.Join(b.Text, "\n"))
	case *Table:
		fmt.Fprintf(buf, " %d cols, %d rows\n", len(b.Header), len(b.Rows))
	default:
		buf.WriteByte('\n')
	}
}
