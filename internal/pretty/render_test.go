package pretty

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func list(items ...string) Doc {
	docs := make([]Doc, len(items))
	for i, it := range items {
		docs[i] = Text(it)
	}
	return bracket(docs...)
}

func bracket(items ...Doc) Doc {
	return Group(
		Text("["),
		Indent(SoftLine, Join(Concat(Text(","), Line), items)),
		SoftLine,
		Text("]"),
	)
}

func TestRender(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		doc      Doc
		width    int
		expected string
	}{
		{"flat group", list("a", "b"), 80, "[a, b]"},
		{"exact fit", list("a", "b"), 6, "[a, b]"},
		{"broken group", list("a", "b"), 5, "[\n  a,\n  b\n]"},
		{
			"inner group stays flat when outer breaks",
			bracket(Text("first"), list("x", "y")),
			12,
			"[\n  first,\n  [x, y]\n]",
		},
		{
			"inner group breaks independently",
			bracket(list("aaaa", "bbbb"), Text("c")),
			8,
			"[\n  [\n    aaaa,\n    bbbb\n  ],\n  c\n]",
		},
		{
			"hard line breaks enclosing groups",
			Group(Text("a"), Line, Text("b"), HardLine, Text("c")),
			80,
			"a\nb\nc",
		},
		{
			"content after group counts toward fit",
			Concat(Group(Text("abc"), SoftLine, Text("def")), Text("ghij")),
			8,
			"abc\ndefghij",
		},
		{
			"content after a break does not count",
			Concat(Group(Text("abc"), SoftLine, Text("def")), HardLine, Text("ghijklmnop")),
			8,
			"abcdef\nghijklmnop",
		},
		{"wide characters", Group(Text("日本語"), Line, Text("x")), 8, "日本語 x"},
		{"wide characters break", Group(Text("日本語"), Line, Text("x")), 7, "日本語\nx"},
		{"no trailing spaces", Concat(Text("a "), HardLine, Text("b")), 80, "a\nb"},
		{"comment after text", Concat(Text("a"), Comment("// c"), HardLine, Text("b")), 80, "a // c\nb"},
		{"comment at line start", Indent(HardLine, Comment("// c"), HardLine, Text("b")), 80, "\n  // c\n  b"},
		{"nil parts dropped", Concat(Text("a"), nil, Text("b")), 80, "ab"},
		{"atomic text wider than width", Group(Text("abcdefghij"), Line, Text("k")), 4, "abcdefghij\nk"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, Render(tt.doc, tt.width))
		})
	}
}

func TestRenderDeepDocument(t *testing.T) {
	t.Parallel()
	// Rendering is iterative, so very deep documents are fine.
	d := Text("x")
	for i := 0; i < 100000; i++ {
		d = Group(Text("("), d, Text(")"))
	}
	out := Render(d, 80)
	assert.Equal(t, 200001, len(out)-strings.Count(out, "\n"))
}
