package pretty

import (
	"github.com/mattn/go-runewidth"
)

// IndentWidth is the number of spaces added per indentation level.
const IndentWidth = 2

type mode uint8

const (
	modeBreak mode = iota
	modeFlat
)

type cmd struct {
	ind  int
	mode mode
	doc  Doc
}

// Render lays d out within width columns. Column widths are display widths,
// so wide characters count as two. Lines never end with spaces.
func Render(d Doc, width int) string {
	var (
		out   []byte
		pos   int
		stack = []cmd{{mode: modeBreak, doc: d}}
	)

	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch x := c.doc.(type) {
		case text:
			out = append(out, string(x)...)
			pos += runewidth.StringWidth(string(x))
		case comment:
			if n := len(out); n > 0 && out[n-1] != '\n' && out[n-1] != ' ' {
				out = append(out, ' ')
				pos++
			}
			out = append(out, string(x)...)
			pos += runewidth.StringWidth(string(x))
		case *concat:
			for i := len(x.parts) - 1; i >= 0; i-- {
				stack = append(stack, cmd{c.ind, c.mode, x.parts[i]})
			}
		case *indent:
			stack = append(stack, cmd{c.ind + IndentWidth, c.mode, x.doc})
		case *group:
			switch {
			case x.hard:
				stack = append(stack, cmd{c.ind, modeBreak, x.doc})
			case c.mode == modeFlat:
				stack = append(stack, cmd{c.ind, modeFlat, x.doc})
			default:
				flat := cmd{c.ind, modeFlat, x.doc}
				if fits(flat, stack, width-pos) {
					stack = append(stack, flat)
				} else {
					stack = append(stack, cmd{c.ind, modeBreak, x.doc})
				}
			}
		case line:
			if c.mode == modeFlat && !x.hard {
				if !x.soft {
					out = append(out, ' ')
					pos++
				}
				continue
			}
			for len(out) > 0 && out[len(out)-1] == ' ' {
				out = out[:len(out)-1]
			}
			out = append(out, '\n')
			for i := 0; i < c.ind; i++ {
				out = append(out, ' ')
			}
			pos = c.ind
		}
	}
	return string(out)
}

// fits reports whether next, rendered flat, and the commands after it up to
// the first line that breaks fit in width columns. rest is the pending
// command stack; its top is what follows next.
func fits(next cmd, rest []cmd, width int) bool {
	stack := []cmd{next}
	restIdx := len(rest)

	for width >= 0 {
		if len(stack) == 0 {
			if restIdx == 0 {
				return true
			}
			restIdx--
			stack = append(stack, rest[restIdx])
			continue
		}

		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch x := c.doc.(type) {
		case text:
			width -= runewidth.StringWidth(string(x))
		case comment:
			width -= 1 + runewidth.StringWidth(string(x))
		case *concat:
			for i := len(x.parts) - 1; i >= 0; i-- {
				stack = append(stack, cmd{c.ind, c.mode, x.parts[i]})
			}
		case *indent:
			stack = append(stack, cmd{c.ind + IndentWidth, c.mode, x.doc})
		case *group:
			m := c.mode
			if x.hard {
				m = modeBreak
			}
			stack = append(stack, cmd{c.ind, m, x.doc})
		case line:
			if c.mode == modeBreak || x.hard {
				return true
			}
			if !x.soft {
				width--
			}
		}
	}
	return false
}
