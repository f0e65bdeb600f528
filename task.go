// Copyright 2025 The Loom Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package markdown

// A Task is an [Inline] representing a task list item marker,
// a GitHub-flavored Markdown extension.
type Task struct {
	Checked bool
}

func (*Task) Inline() {}

func (x *Task) printHTML(p *printer) {
	p.html("<input ")
	if x.Checked {
		p.html(`checked="" `)
	}
	p.html(`disabled="" type="checkbox"> `)
}

func (x *Task) printText(p *printer) {
	p.text("[")
	if x.Checked {
		p.text("x")
	} else {
		p.text(" ")
	}
	p.text("] ")
}

// rewriteTasks strips task markers from the items of every list
// reachable from b. It runs after the block structure is final and
// before inline resolution, while markers are still leading raw text.
func rewriteTasks(b Block) {
	switch b := b.(type) {
	case *Quote:
		for _, c := range b.Blocks {
			rewriteTasks(c)
		}
	case *List:
		for _, c := range b.Items {
			item := c.(*Item)
			rewriteTaskItem(item)
			for _, d := range item.Blocks {
				rewriteTasks(d)
			}
		}
	}
}

func rewriteTaskItem(item *Item) {
	if len(item.Blocks) == 0 {
		return
	}
	var t *Text
	switch b := item.Blocks[0].(type) {
	case *Paragraph:
		t = b.Text
	case *Text:
		t = b
	default:
		return
	}
	if task, rest, ok := trimTaskMarker(t.raw); ok {
		t.task = task
		t.raw = rest
	}
}

// trimTaskMarker matches "[ ] ", "[x] ", or "[X] " at the start of the
// item text.
func trimTaskMarker(s string) (*Task, string, bool) {
	if len(s) >= 4 && s[0] == '[' && s[2] == ']' && s[3] == ' ' {
		switch s[1] {
		case ' ':
			return &Task{}, s[4:], true
		case 'x', 'X':
			return &Task{Checked: true}, s[4:], true
		}
	}
	return nil, "", false
}
