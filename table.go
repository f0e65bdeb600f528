// Copyright 2025 The Loom Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package markdown

import (
	"strings"
)

// A Table is a [Block] representing a table,
// a GitHub-flavored Markdown extension.
// The header row fixes the column count: short body rows are padded
// with empty cells and long ones are truncated.
type Table struct {
	Position
	Header []*Text
	Align  []string // "left", "center", "right", or "" for unset
	Rows   [][]*Text
}

func (*Table) Block() {}

func (t *Table) printHTML(p *printer) {
	p.html("<table>\n")
	p.html("<thead>\n")
	p.html("<tr>\n")
	for i, hdr := range t.Header {
		p.html("<th")
		if t.Align[i] != "" {
			p.html(` align="`, t.Align[i], `"`)
		}
		p.html(">")
		hdr.printHTML(p)
		p.html("</th>\n")
	}
	p.html("</tr>\n")
	p.html("</thead>\n")
	if len(t.Rows) > 0 {
		p.html("<tbody>\n")
		for _, row := range t.Rows {
			p.html("<tr>\n")
			for i, cell := range row {
				p.html("<td")
				if i < len(t.Align) && t.Align[i] != "" {
					p.html(` align="`, t.Align[i], `"`)
				}
				p.html(">")
				cell.printHTML(p)
				p.html("</td>\n")
			}
			p.html("</tr>\n")
		}
		p.html("</tbody>\n")
	}
	p.html("</table>\n")
}

func isTableSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\v' || c == '\f'
}

func tableTrimSpace(s string) string {
	i := 0
	for i < len(s) && isTableSpace(s[i]) {
		i++
	}
	j := len(s)
	for j > i && isTableSpace(s[j-1]) {
		j--
	}
	return s[i:j]
}

func tableTrimOuter(row string) string {
	row = tableTrimSpace(row)
	if len(row) > 0 && row[0] == '|' {
		row = row[1:]
	}
	if len(row) > 0 && row[len(row)-1] == '|' {
		row = row[:len(row)-1]
	}
	return row
}

// isTableStart reports whether delim is a valid delimiter row whose
// column count matches the header row hdr.
// This runs on every paragraph line, so nothing expensive here.
func isTableStart(hdr, delim string) bool {
	col := 0
	delim = tableTrimOuter(delim)
	i := 0
	for ; ; col++ {
		for i < len(delim) && isTableSpace(delim[i]) {
			i++
		}
		if i >= len(delim) {
			break
		}
		if i < len(delim) && delim[i] == ':' {
			i++
		}
		if i >= len(delim) || delim[i] != '-' {
			return false
		}
		i++
		for i < len(delim) && delim[i] == '-' {
			i++
		}
		if i < len(delim) && delim[i] == ':' {
			i++
		}
		for i < len(delim) && isTableSpace(delim[i]) {
			i++
		}
		if i < len(delim) && delim[i] == '|' {
			i++
		}
	}
	return col == tableCount(hdr)
}

// tableCount counts the columns in a row whose outer pipes have been
// kept. A backslash escapes the next byte, so \| is not a separator.
func tableCount(row string) int {
	row = tableTrimOuter(row)
	col := 1
	for i := 0; i < len(row); i++ {
		c := row[i]
		if c == '\\' {
			i++
			continue
		}
		if c == '|' {
			col++
		}
	}
	return col
}

type tableBuilder struct {
	hdr   string
	delim string
	rows  []string
}

func (b *tableBuilder) start(hdr, delim string) {
	b.hdr = tableTrimOuter(hdr)
	b.delim = tableTrimOuter(delim)
}

func (b *tableBuilder) addRow(row string) {
	b.rows = append(b.rows, tableTrimOuter(row))
}

func (b *tableBuilder) build(p *parser) Block {
	pos := p.pos()
	pos.StartLine-- // builder does not count header
	pos.EndLine = pos.StartLine + 1 + len(b.rows)
	t := &Table{
		Position: pos,
	}
	width := tableCount(b.hdr)
	t.Header = b.parseRow(p, b.hdr, pos.StartLine, width)
	t.Align = b.parseAlign(b.delim, width)
	t.Rows = make([][]*Text, len(b.rows))
	for i, row := range b.rows {
		t.Rows[i] = b.parseRow(p, row, pos.StartLine+2+i, width)
	}
	return t
}

func (b *tableBuilder) parseRow(p *parser, row string, line int, width int) []*Text {
	out := make([]*Text, 0, width)
	pos := Position{StartLine: line, EndLine: line}
	start := 0
	unesc := nop
	for i := 0; i < len(row); i++ {
		c := row[i]
		if c == '\\' {
			i++
			if i < len(row) && row[i] == '|' {
				// Escaped pipe must be rewritten to a pipe in the cell.
				unesc = tableUnescape
			}
			continue
		}
		if c == '|' {
			out = append(out, p.newText(pos, unesc(strings.Trim(row[start:i], " \t\v\f"))))
			if len(out) == width {
				// Extra cells are discarded!
				return out
			}
			start = i + 1
			unesc = nop
		}
	}
	out = append(out, p.newText(pos, unesc(strings.Trim(row[start:], " \t\v\f"))))
	for len(out) < width {
		// Missing cells are considered empty.
		out = append(out, p.newText(pos, ""))
	}
	return out
}

func nop(text string) string {
	return text
}

func tableUnescape(text string) string {
	out := make([]byte, 0, len(text))
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c == '\\' && i+1 < len(text) && text[i+1] == '|' {
			i++
			c = '|'
		}
		out = append(out, c)
	}
	return string(out)
}

func (b *tableBuilder) parseAlign(delim string, n int) []string {
	align := make([]string, 0, n)
	start := 0
	for i := 0; i < len(delim); i++ {
		if delim[i] == '|' {
			align = append(align, tableAlign(delim[start:i]))
			start = i + 1
		}
	}
	align = append(align, tableAlign(delim[start:]))
	return align
}

func tableAlign(cell string) string {
	cell = tableTrimSpace(cell)
	l := cell[0] == ':'
	r := cell[len(cell)-1] == ':'
	switch {
	case l && r:
		return "center"
	case l:
		return "left"
	case r:
		return "right"
	}
	return ""
}
