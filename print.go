// Copyright 2025 The Loom Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package markdown

import (
	"bytes"
	"strings"
)

// htmlEscaper escapes text for use as HTML element content or inside
// a double-quoted attribute.
var htmlEscaper = strings.NewReplacer(
	`"`, "&quot;",
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

// htmlLinkEscaper escapes text for use in an href or src attribute.
// Destination URLs keep & entity-escaped and the rest percent-encoded.
var htmlLinkEscaper = strings.NewReplacer(
	`"`, "%22",
	"&", "&amp;",
	"<", "%3C",
	">", "%3E",
	" ", "%20",
)

type printer struct {
	buf bytes.Buffer
}

// html writes literal HTML markup.
func (p *printer) html(args ...string) {
	for _, s := range args {
		p.buf.WriteString(s)
	}
}

// text writes text content, entity-escaped. Plain-text rendering
// (image alt text) goes through here too: alt is an attribute value,
// so it needs the same escaping.
func (p *printer) text(s string) {
	htmlEscaper.WriteString(&p.buf, s)
}

func (p *printer) Write(b []byte) (int, error) {
	return p.buf.Write(b)
}

// ToHTML returns the HTML rendering of b.
// The rendering of a non-empty document ends in a newline.
func ToHTML(b Block) string {
	var p printer
	b.printHTML(&p)
	return p.buf.String()
}
