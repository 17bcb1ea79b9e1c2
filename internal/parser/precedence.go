package parser

import "github.com/gnolang/groqlint/internal/lexer"

// Binding powers, loosest first.
//
//	1  |                         left, right side must be a function call
//	2  =>                        right
//	3  ||                        left
//	4  &&                        left
//	5  == != < <= > >= in match  non-associative
//	6  .. ...                    non-associative
//	7  + -                       left
//	8  * / %                     left
//	9  prefix -                  (so -2**2 is -(2**2))
//	10 **                        right
//	11 prefix ! +
//	12 postfix . [] -> {}
const (
	precPipe = iota + 1
	precPair
	precOr
	precAnd
	precCompare
	precRange
	precAdd
	precMul
	precNeg
	precPow
	precPrefix
)

type assoc uint8

const (
	assocLeft assoc = iota
	assocRight
	assocNone
)

type opInfo struct {
	prec  int
	assoc assoc
}

var binaryOps = map[lexer.Kind]opInfo{
	lexer.Pipe:     {precPipe, assocLeft},
	lexer.FatArrow: {precPair, assocRight},
	lexer.OrOr:     {precOr, assocLeft},
	lexer.AndAnd:   {precAnd, assocLeft},
	lexer.Eq:       {precCompare, assocNone},
	lexer.NotEq:    {precCompare, assocNone},
	lexer.Lt:       {precCompare, assocNone},
	lexer.LtEq:     {precCompare, assocNone},
	lexer.Gt:       {precCompare, assocNone},
	lexer.GtEq:     {precCompare, assocNone},
	lexer.In:       {precCompare, assocNone},
	lexer.Match:    {precCompare, assocNone},
	lexer.DotDot:   {precRange, assocNone},
	lexer.Ellipsis: {precRange, assocNone},
	lexer.Plus:     {precAdd, assocLeft},
	lexer.Minus:    {precAdd, assocLeft},
	lexer.Star:     {precMul, assocLeft},
	lexer.Slash:    {precMul, assocLeft},
	lexer.Percent:  {precMul, assocLeft},
	lexer.StarStar: {precPow, assocRight},
}

// Precedence returns the binding power of a binary operator, or 0.
func Precedence(k lexer.Kind) int {
	return binaryOps[k].prec
}
