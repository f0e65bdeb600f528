// Copyright 2025 The Loom Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package markdown

import "strings"

// collectLinks is the reference collector: a pre-pass over the raw
// document text that records every link reference definition before
// inline resolution begins, so a reference may be used before its
// definition appears.
//
// Definitions are recognized as lines of definition form anywhere in
// the source. The first definition of a label wins; later definitions
// of the same label are ignored.
func collectLinks(text string) map[string]*Link {
	var links map[string]*Link
	for i := 0; i < len(text); {
		// Cheap gate: a definition line starts with at most three
		// spaces of indentation and a bracket.
		if j := skipSpace(text[i:], 0); j > 3 || i+j >= len(text) || text[i+j] != '[' {
			i = nextLine(text, i)
			continue
		}
		label, link, end, ok := parseLinkRefDef(text[i:])
		if !ok {
			i = nextLine(text, i)
			continue
		}
		if links == nil {
			links = make(map[string]*Link)
		}
		if _, seen := links[label]; !seen {
			links[label] = link
		}
		i += end
	}
	return links
}

// nextLine returns the index just past the newline following text[i:],
// or len(text) if there is none.
func nextLine(text string, i int) int {
	j := strings.IndexByte(text[i:], '\n')
	if j < 0 {
		return len(text)
	}
	return i + j + 1
}
