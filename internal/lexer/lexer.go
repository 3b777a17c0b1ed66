// Package lexer turns Lumen source text into a token stream. Every token
// carries its exact byte span so that later stages can anchor diagnostics
// without re-scanning the input.
package lexer

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/lumen-lang/lumen/internal/ast"
	"github.com/lumen-lang/lumen/internal/source"
	"github.com/lumen-lang/lumen/internal/token"
)

type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           rune // current char under examination
	line         int  // current line number
	column       int  // current column number
}

func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}

	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = len(l.input)
		l.readPosition = len(l.input) + 1
		l.column++
		return
	}

	r, w := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.position = l.readPosition
	l.readPosition += w
	l.column++
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

// NextToken scans and returns the next token.
func (l *Lexer) NextToken() token.Token {
	l.skipTrivia()

	start := l.position
	line, column := l.line, l.column

	mk := func(typ token.TokenType, lexeme string) token.Token {
		return token.Token{
			Type:   typ,
			Lexeme: lexeme,
			Span:   source.NewSpan(start, start+len(lexeme)),
			Line:   line,
			Column: column,
		}
	}

	switch {
	case l.ch == 0:
		return token.Token{Type: token.EOF, Span: source.NewSpan(start, start), Line: line, Column: column}
	case l.ch == '(':
		l.readChar()
		return mk(token.LPAREN, "(")
	case l.ch == ')':
		l.readChar()
		return mk(token.RPAREN, ")")
	case l.ch == '{':
		l.readChar()
		return mk(token.LBRACE, "{")
	case l.ch == '}':
		l.readChar()
		return mk(token.RBRACE, "}")
	case l.ch == '[':
		l.readChar()
		return mk(token.LBRACKET, "[")
	case l.ch == ']':
		l.readChar()
		return mk(token.RBRACKET, "]")
	case l.ch == ',':
		l.readChar()
		return mk(token.COMMA, ",")
	case l.ch == ';':
		l.readChar()
		return mk(token.SEMICOLON, ";")
	case l.ch == ':':
		l.readChar()
		return mk(token.COLON, ":")
	case l.ch == '.':
		l.readChar()
		return mk(token.DOT, ".")
	case l.ch == '\\':
		l.readChar()
		return mk(token.LAMBDA, "\\")
	case l.ch == '^':
		l.readChar()
		return mk(token.CARET, "^")
	case l.ch == '=':
		if l.peekChar() == '>' {
			l.readChar()
			l.readChar()
			return mk(token.DARROW, "=>")
		}
		l.readChar()
		return mk(token.EQUALS, "=")
	case l.ch == '-' && l.peekChar() == '>':
		l.readChar()
		l.readChar()
		return mk(token.ARROW, "->")
	case l.ch == '"':
		return l.readString(start, line, column)
	case l.ch == '\'':
		return l.readCharLit(start, line, column)
	case unicode.IsDigit(l.ch):
		return l.readNumber(start, line, column)
	case l.ch == '_' && !isIdentPart(l.peekChar()):
		l.readChar()
		return mk(token.HOLE, "_")
	case isIdentStart(l.ch):
		return l.readIdent(start, line, column)
	default:
		ch := l.ch
		l.readChar()
		return mk(token.ILLEGAL, string(ch))
	}
}

// skipTrivia skips whitespace and -- line comments.
func (l *Lexer) skipTrivia() {
	for {
		for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n' {
			l.readChar()
		}
		if l.ch == '-' && l.peekChar() == '-' {
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
			continue
		}
		return
	}
}

func isIdentStart(ch rune) bool {
	return unicode.IsLetter(ch) || ch == '_'
}

func isIdentPart(ch rune) bool {
	return unicode.IsLetter(ch) || unicode.IsDigit(ch) || ch == '_'
}

func (l *Lexer) readIdent(start, line, column int) token.Token {
	for isIdentPart(l.ch) || (l.ch == '-' && isIdentPart(l.peekChar())) {
		l.readChar()
	}
	lexeme := l.input[start:l.position]
	return token.Token{
		Type:   token.LookupIdent(lexeme),
		Lexeme: lexeme,
		Span:   source.NewSpan(start, l.position),
		Line:   line,
		Column: column,
	}
}

func (l *Lexer) readNumber(start, line, column int) token.Token {
	typ := token.INT

	if l.ch == '0' && (l.peekChar() == 'x' || l.peekChar() == 'b') {
		l.readChar() // 0
		base := l.ch
		l.readChar() // x or b
		for isHexDigit(l.ch) || (base == 'b' && (l.ch == '0' || l.ch == '1')) {
			l.readChar()
		}
	} else {
		for unicode.IsDigit(l.ch) {
			l.readChar()
		}
		if l.ch == '.' && unicode.IsDigit(l.peekChar()) {
			typ = token.FLOAT
			l.readChar()
			for unicode.IsDigit(l.ch) {
				l.readChar()
			}
		}
		if l.ch == 'e' || l.ch == 'E' {
			typ = token.FLOAT
			l.readChar()
			if l.ch == '+' || l.ch == '-' {
				l.readChar()
			}
			for unicode.IsDigit(l.ch) {
				l.readChar()
			}
		}
	}

	lexeme := l.input[start:l.position]
	return token.Token{
		Type:   typ,
		Lexeme: lexeme,
		Span:   source.NewSpan(start, l.position),
		Line:   line,
		Column: column,
	}
}

func isHexDigit(ch rune) bool {
	return unicode.IsDigit(ch) || ('a' <= ch && ch <= 'f') || ('A' <= ch && ch <= 'F')
}

func (l *Lexer) readString(start, line, column int) token.Token {
	l.readChar() // consume opening quote
	var sb strings.Builder
	for l.ch != '"' {
		if l.ch == 0 || l.ch == '\n' {
			return token.Token{
				Type:   token.ILLEGAL,
				Lexeme: l.input[start:l.position],
				Span:   source.NewSpan(start, l.position),
				Line:   line,
				Column: column,
			}
		}
		if l.ch == '\\' {
			l.readChar()
			sb.WriteRune(unescape(l.ch))
		} else {
			sb.WriteRune(l.ch)
		}
		l.readChar()
	}
	l.readChar() // consume closing quote
	return token.Token{
		Type:   token.STRING,
		Lexeme: sb.String(),
		Span:   source.NewSpan(start, l.position),
		Line:   line,
		Column: column,
	}
}

func (l *Lexer) readCharLit(start, line, column int) token.Token {
	l.readChar() // consume opening quote
	var value rune
	if l.ch == '\\' {
		l.readChar()
		value = unescape(l.ch)
	} else {
		value = l.ch
	}
	l.readChar()
	if l.ch != '\'' {
		return token.Token{
			Type:   token.ILLEGAL,
			Lexeme: l.input[start:l.position],
			Span:   source.NewSpan(start, l.position),
			Line:   line,
			Column: column,
		}
	}
	l.readChar() // consume closing quote
	return token.Token{
		Type:   token.CHAR,
		Lexeme: string(value),
		Span:   source.NewSpan(start, l.position),
		Line:   line,
		Column: column,
	}
}

func unescape(ch rune) rune {
	switch ch {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	case '0':
		return 0
	default:
		return ch
	}
}

// ParseInt decodes an INT token's lexeme into its value and written format.
func ParseInt(lexeme string) (uint64, ast.IntFormat, error) {
	switch {
	case strings.HasPrefix(lexeme, "0x"):
		v, err := strconv.ParseUint(lexeme[2:], 16, 64)
		return v, ast.IntFormatHex, err
	case strings.HasPrefix(lexeme, "0b"):
		v, err := strconv.ParseUint(lexeme[2:], 2, 64)
		return v, ast.IntFormatBin, err
	default:
		v, err := strconv.ParseUint(lexeme, 10, 64)
		return v, ast.IntFormatDec, err
	}
}

// ParseFloat decodes a FLOAT token's lexeme into its value and written
// format.
func ParseFloat(lexeme string) (float64, ast.FloatFormat, error) {
	format := ast.FloatFormatDec
	if strings.ContainsAny(lexeme, "eE") {
		format = ast.FloatFormatExp
	}
	v, err := strconv.ParseFloat(lexeme, 64)
	return v, format, err
}
