package lexer

import "github.com/gnolang/groqlint/internal/types"

// Kind is the category of a token.
type Kind uint8

const (
	Invalid Kind = iota
	EOF

	Ident
	Param  // $name
	Number // 12, 1.5, 3e10
	String // "..." or '...'

	True
	False
	Null
	In
	Match
	Asc
	Desc

	Star       // *
	At         // @
	Caret      // ^
	Dot        // .
	DotDot     // ..
	Ellipsis   // ...
	Arrow      // ->
	FatArrow   // =>
	Eq         // ==
	NotEq      // !=
	Lt         // <
	LtEq       // <=
	Gt         // >
	GtEq       // >=
	AndAnd     // &&
	OrOr       // ||
	Not        // !
	Plus       // +
	Minus      // -
	Slash      // /
	Percent    // %
	StarStar   // **
	Pipe       // |
	Comma      // ,
	Colon      // :
	ColonColon // ::
	LParen     // (
	RParen     // )
	LBracket   // [
	RBracket   // ]
	LBrace     // {
	RBrace     // }
)

var kindNames = [...]string{
	Invalid:    "invalid",
	EOF:        "end of input",
	Ident:      "identifier",
	Param:      "parameter",
	Number:     "number",
	String:     "string",
	True:       "true",
	False:      "false",
	Null:       "null",
	In:         "in",
	Match:      "match",
	Asc:        "asc",
	Desc:       "desc",
	Star:       "*",
	At:         "@",
	Caret:      "^",
	Dot:        ".",
	DotDot:     "..",
	Ellipsis:   "...",
	Arrow:      "->",
	FatArrow:   "=>",
	Eq:         "==",
	NotEq:      "!=",
	Lt:         "<",
	LtEq:       "<=",
	Gt:         ">",
	GtEq:       ">=",
	AndAnd:     "&&",
	OrOr:       "||",
	Not:        "!",
	Plus:       "+",
	Minus:      "-",
	Slash:      "/",
	Percent:    "%",
	StarStar:   "**",
	Pipe:       "|",
	Comma:      ",",
	Colon:      ":",
	ColonColon: "::",
	LParen:     "(",
	RParen:     ")",
	LBracket:   "[",
	RBracket:   "]",
	LBrace:     "{",
	RBrace:     "}",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

var keywords = map[string]Kind{
	"true":  True,
	"false": False,
	"null":  Null,
	"in":    In,
	"match": Match,
	"asc":   Asc,
	"desc":  Desc,
}

// LookupKeyword returns the keyword kind for ident, or Ident.
func LookupKeyword(ident string) Kind {
	if k, ok := keywords[ident]; ok {
		return k
	}
	return Ident
}

// IsWord reports whether the kind is spelled like an identifier.
func (k Kind) IsWord() bool {
	return k == Ident || (k >= True && k <= Desc)
}

// Token is a single lexical token.
type Token struct {
	Kind Kind
	Text string
	Span types.Span
}

// Comment is a `//` line comment; Text includes the slashes.
type Comment struct {
	Text string
	Span types.Span
}
