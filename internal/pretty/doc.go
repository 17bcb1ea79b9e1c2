// Package pretty implements a document model for line-breaking layout and a
// renderer that fits documents into a width.
//
// A document is built from text, line breaks, indentation and groups. A
// group is rendered flat (its lines become spaces or nothing) when the flat
// form, together with whatever follows it up to the next possible break, fits
// in the remaining width. Otherwise its lines become newlines. Groups are
// decided outermost first; an enclosing group that breaks does not force its
// inner groups to break. A group that contains a hard line always breaks, and
// so does every group around it.
package pretty

// Doc is a layout document.
type Doc interface {
	hasHardLine() bool
}

type text string

func (text) hasHardLine() bool { return false }

// comment is text that is separated from preceding text on the same line by
// a space.
type comment string

func (comment) hasHardLine() bool { return false }

type line struct {
	soft bool
	hard bool
}

func (l line) hasHardLine() bool { return l.hard }

type concat struct {
	parts []Doc
	hard  bool
}

func (c *concat) hasHardLine() bool { return c.hard }

type indent struct {
	doc  Doc
	hard bool
}

func (i *indent) hasHardLine() bool { return i.hard }

type group struct {
	doc  Doc
	hard bool
}

func (g *group) hasHardLine() bool { return g.hard }

var (
	// Line is a space when flat and a newline when broken.
	Line Doc = line{}
	// SoftLine is nothing when flat and a newline when broken.
	SoftLine Doc = line{soft: true}
	// HardLine is always a newline.
	HardLine Doc = line{hard: true}
)

// Text is literal text. It must not contain newlines.
func Text(s string) Doc { return text(s) }

// Comment is a line comment. Callers follow it with a HardLine.
func Comment(s string) Doc { return comment(s) }

// Concat lays out parts one after another. Nil parts are dropped.
func Concat(parts ...Doc) Doc {
	c := &concat{parts: make([]Doc, 0, len(parts))}
	for _, p := range parts {
		if p == nil {
			continue
		}
		if inner, ok := p.(*concat); ok {
			c.parts = append(c.parts, inner.parts...)
		} else {
			c.parts = append(c.parts, p)
		}
		c.hard = c.hard || p.hasHardLine()
	}
	return c
}

// Indent increases the indentation of lines broken inside parts.
func Indent(parts ...Doc) Doc {
	d := Concat(parts...)
	return &indent{doc: d, hard: d.hasHardLine()}
}

// Group marks parts as a unit that is tried flat before breaking.
func Group(parts ...Doc) Doc {
	d := Concat(parts...)
	return &group{doc: d, hard: d.hasHardLine()}
}

// Join places sep between docs.
func Join(sep Doc, docs []Doc) Doc {
	parts := make([]Doc, 0, 2*len(docs))
	for i, d := range docs {
		if i > 0 {
			parts = append(parts, sep)
		}
		parts = append(parts, d)
	}
	return Concat(parts...)
}
