// Package token defines the lexical tokens of the Lumen surface syntax.
package token

import "github.com/lumen-lang/lumen/internal/source"

type TokenType string

const (
	ILLEGAL TokenType = "ILLEGAL"
	EOF     TokenType = "EOF"

	// Identifiers and literals
	IDENT  TokenType = "IDENT"  // foo, bar2, my-name
	INT    TokenType = "INT"    // 42, 0xFF, 0b1010
	FLOAT  TokenType = "FLOAT"  // 3.14, 1e10
	STRING TokenType = "STRING" // "hello"
	CHAR   TokenType = "CHAR"   // 'c'
	HOLE   TokenType = "HOLE"   // _

	// Punctuation
	LPAREN    TokenType = "("
	RPAREN    TokenType = ")"
	LBRACE    TokenType = "{"
	RBRACE    TokenType = "}"
	LBRACKET  TokenType = "["
	RBRACKET  TokenType = "]"
	COMMA     TokenType = ","
	SEMICOLON TokenType = ";"
	COLON     TokenType = ":"
	EQUALS    TokenType = "="
	DOT       TokenType = "."
	LAMBDA    TokenType = "\\"
	ARROW     TokenType = "->"
	DARROW    TokenType = "=>"
	CARET     TokenType = "^"

	// Keywords
	TYPE       TokenType = "Type"
	LET        TokenType = "let"
	IN         TokenType = "in"
	WHERE      TokenType = "where"
	IF         TokenType = "if"
	THEN       TokenType = "then"
	ELSE       TokenType = "else"
	CASE       TokenType = "case"
	RECORD     TokenType = "record"
	RECORDTYPE TokenType = "Record"
	IMPORT     TokenType = "import"
)

// Token is a single lexeme with its exact byte span in the source text.
type Token struct {
	Type   TokenType
	Lexeme string
	Span   source.Span
	Line   int
	Column int
}

var keywords = map[string]TokenType{
	"Type":   TYPE,
	"let":    LET,
	"in":     IN,
	"where":  WHERE,
	"if":     IF,
	"then":   THEN,
	"else":   ELSE,
	"case":   CASE,
	"record": RECORD,
	"Record": RECORDTYPE,
	"import": IMPORT,
}

// LookupIdent distinguishes keywords from plain identifiers.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}
