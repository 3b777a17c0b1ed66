package lexer

import (
	"testing"

	"github.com/lumen-lang/lumen/internal/ast"
	"github.com/lumen-lang/lumen/internal/token"
)

func collect(t *testing.T, input string) []token.Token {
	t.Helper()
	l := New(input)
	var toks []token.Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			return toks
		}
		if len(toks) > 1000 {
			t.Fatalf("lexer did not terminate on %q", input)
		}
	}
}

func TestNextTokenPunctuation(t *testing.T) {
	input := `( ) { } [ ] , ; : = . \ -> => ^`
	expected := []token.TokenType{
		token.LPAREN, token.RPAREN, token.LBRACE, token.RBRACE,
		token.LBRACKET, token.RBRACKET, token.COMMA, token.SEMICOLON,
		token.COLON, token.EQUALS, token.DOT, token.LAMBDA,
		token.ARROW, token.DARROW, token.CARET, token.EOF,
	}

	toks := collect(t, input)
	if len(toks) != len(expected) {
		t.Fatalf("expected %d tokens, got %d", len(expected), len(toks))
	}
	for i, typ := range expected {
		if toks[i].Type != typ {
			t.Errorf("token %d: expected %q, got %q (%q)", i, typ, toks[i].Type, toks[i].Lexeme)
		}
	}
}

func TestNextTokenKeywords(t *testing.T) {
	input := "Type let in where if then else case record Record import"
	expected := []token.TokenType{
		token.TYPE, token.LET, token.IN, token.WHERE, token.IF,
		token.THEN, token.ELSE, token.CASE, token.RECORD,
		token.RECORDTYPE, token.IMPORT, token.EOF,
	}

	toks := collect(t, input)
	if len(toks) != len(expected) {
		t.Fatalf("expected %d tokens, got %d", len(expected), len(toks))
	}
	for i, typ := range expected {
		if toks[i].Type != typ {
			t.Errorf("token %d: expected %q, got %q", i, typ, toks[i].Type)
		}
	}
}

func TestNextTokenIdentifiers(t *testing.T) {
	tests := []struct {
		input  string
		typ    token.TokenType
		lexeme string
	}{
		{"foo", token.IDENT, "foo"},
		{"bar2", token.IDENT, "bar2"},
		{"my-name", token.IDENT, "my-name"},
		{"_hole-adjacent", token.IDENT, "_hole-adjacent"},
		{"Typewriter", token.IDENT, "Typewriter"},
		{"_", token.HOLE, "_"},
		{"snake_case", token.IDENT, "snake_case"},
	}

	for _, tt := range tests {
		toks := collect(t, tt.input)
		if toks[0].Type != tt.typ {
			t.Errorf("%q: expected type %q, got %q", tt.input, tt.typ, toks[0].Type)
		}
		if toks[0].Lexeme != tt.lexeme {
			t.Errorf("%q: expected lexeme %q, got %q", tt.input, tt.lexeme, toks[0].Lexeme)
		}
	}
}

func TestHyphenIdentVersusArrow(t *testing.T) {
	// A trailing hyphen is not part of an identifier, so `a->b` must lex as
	// IDENT ARROW IDENT while `a-b` stays one identifier.
	toks := collect(t, "a->b")
	expected := []token.TokenType{token.IDENT, token.ARROW, token.IDENT, token.EOF}
	if len(toks) != len(expected) {
		t.Fatalf("a->b: expected %d tokens, got %d", len(expected), len(toks))
	}
	for i, typ := range expected {
		if toks[i].Type != typ {
			t.Errorf("a->b token %d: expected %q, got %q", i, typ, toks[i].Type)
		}
	}

	toks = collect(t, "a-b")
	if len(toks) != 2 || toks[0].Type != token.IDENT || toks[0].Lexeme != "a-b" {
		t.Errorf("a-b: expected single identifier, got %v", toks)
	}
}

func TestNextTokenNumbers(t *testing.T) {
	tests := []struct {
		input  string
		typ    token.TokenType
		lexeme string
	}{
		{"42", token.INT, "42"},
		{"0", token.INT, "0"},
		{"0xFF", token.INT, "0xFF"},
		{"0b1010", token.INT, "0b1010"},
		{"3.14", token.FLOAT, "3.14"},
		{"1e10", token.FLOAT, "1e10"},
		{"2.5e-3", token.FLOAT, "2.5e-3"},
		{"1E+2", token.FLOAT, "1E+2"},
	}

	for _, tt := range tests {
		toks := collect(t, tt.input)
		if toks[0].Type != tt.typ {
			t.Errorf("%q: expected type %q, got %q", tt.input, tt.typ, toks[0].Type)
		}
		if toks[0].Lexeme != tt.lexeme {
			t.Errorf("%q: expected lexeme %q, got %q", tt.input, tt.lexeme, toks[0].Lexeme)
		}
	}
}

func TestDotAfterIntIsProjection(t *testing.T) {
	// `r.1` style shifts do not exist, but `1.foo` must not swallow the dot
	// as a float: only digit.digit forms a float.
	toks := collect(t, "1.x")
	expected := []token.TokenType{token.INT, token.DOT, token.IDENT, token.EOF}
	for i, typ := range expected {
		if toks[i].Type != typ {
			t.Fatalf("1.x token %d: expected %q, got %q", i, typ, toks[i].Type)
		}
	}
}

func TestNextTokenStrings(t *testing.T) {
	tests := []struct {
		input  string
		lexeme string
	}{
		{`"hello"`, "hello"},
		{`""`, ""},
		{`"tab\there"`, "tab\there"},
		{`"line\nbreak"`, "line\nbreak"},
		{`"quote\"inside"`, `quote"inside`},
		{`"back\\slash"`, `back\slash`},
	}

	for _, tt := range tests {
		toks := collect(t, tt.input)
		if toks[0].Type != token.STRING {
			t.Errorf("%q: expected STRING, got %q", tt.input, toks[0].Type)
			continue
		}
		if toks[0].Lexeme != tt.lexeme {
			t.Errorf("%q: expected lexeme %q, got %q", tt.input, tt.lexeme, toks[0].Lexeme)
		}
	}
}

func TestUnterminatedStringIsIllegal(t *testing.T) {
	for _, input := range []string{`"oops`, "\"broken\nacross\""} {
		toks := collect(t, input)
		if toks[0].Type != token.ILLEGAL {
			t.Errorf("%q: expected ILLEGAL, got %q", input, toks[0].Type)
		}
	}
}

func TestNextTokenChars(t *testing.T) {
	tests := []struct {
		input string
		value string
	}{
		{`'c'`, "c"},
		{`'\n'`, "\n"},
		{`'\''`, "'"},
		{`'λ'`, "λ"},
	}

	for _, tt := range tests {
		toks := collect(t, tt.input)
		if toks[0].Type != token.CHAR {
			t.Errorf("%q: expected CHAR, got %q", tt.input, toks[0].Type)
			continue
		}
		if toks[0].Lexeme != tt.value {
			t.Errorf("%q: expected value %q, got %q", tt.input, tt.value, toks[0].Lexeme)
		}
	}

	toks := collect(t, "'ab'")
	if toks[0].Type != token.ILLEGAL {
		t.Errorf("'ab': expected ILLEGAL, got %q", toks[0].Type)
	}
}

func TestLineCommentsAreTrivia(t *testing.T) {
	input := "foo -- this is a comment\nbar -- another\n"
	toks := collect(t, input)
	expected := []string{"foo", "bar"}
	if len(toks) != 3 {
		t.Fatalf("expected 3 tokens, got %d: %v", len(toks), toks)
	}
	for i, lexeme := range expected {
		if toks[i].Type != token.IDENT || toks[i].Lexeme != lexeme {
			t.Errorf("token %d: expected identifier %q, got %q %q", i, lexeme, toks[i].Type, toks[i].Lexeme)
		}
	}
}

func TestTokenSpansAndPositions(t *testing.T) {
	input := "foo\n  bar"
	toks := collect(t, input)

	if toks[0].Span.Start != 0 || toks[0].Span.End != 3 {
		t.Errorf("foo span: got [%d,%d)", toks[0].Span.Start, toks[0].Span.End)
	}
	if toks[0].Line != 1 || toks[0].Column != 1 {
		t.Errorf("foo position: got line %d column %d", toks[0].Line, toks[0].Column)
	}

	if toks[1].Span.Start != 6 || toks[1].Span.End != 9 {
		t.Errorf("bar span: got [%d,%d)", toks[1].Span.Start, toks[1].Span.End)
	}
	if toks[1].Line != 2 || toks[1].Column != 3 {
		t.Errorf("bar position: got line %d column %d", toks[1].Line, toks[1].Column)
	}
}

func TestIllegalRune(t *testing.T) {
	toks := collect(t, "foo ? bar")
	if toks[1].Type != token.ILLEGAL || toks[1].Lexeme != "?" {
		t.Errorf("expected ILLEGAL %q, got %q %q", "?", toks[1].Type, toks[1].Lexeme)
	}
	// The lexer recovers after the bad rune.
	if toks[2].Type != token.IDENT || toks[2].Lexeme != "bar" {
		t.Errorf("expected recovery to identifier bar, got %q %q", toks[2].Type, toks[2].Lexeme)
	}
}

func TestParseInt(t *testing.T) {
	tests := []struct {
		lexeme string
		value  uint64
		format ast.IntFormat
	}{
		{"42", 42, ast.IntFormatDec},
		{"0", 0, ast.IntFormatDec},
		{"0xFF", 255, ast.IntFormatHex},
		{"0b1010", 10, ast.IntFormatBin},
		{"18446744073709551615", 18446744073709551615, ast.IntFormatDec},
	}

	for _, tt := range tests {
		v, format, err := ParseInt(tt.lexeme)
		if err != nil {
			t.Errorf("ParseInt(%q): unexpected error: %v", tt.lexeme, err)
			continue
		}
		if v != tt.value || format != tt.format {
			t.Errorf("ParseInt(%q) = %d, %v; expected %d, %v", tt.lexeme, v, format, tt.value, tt.format)
		}
	}

	if _, _, err := ParseInt("18446744073709551616"); err == nil {
		t.Error("ParseInt overflow: expected an error")
	}
}

func TestParseFloat(t *testing.T) {
	tests := []struct {
		lexeme string
		value  float64
		format ast.FloatFormat
	}{
		{"3.14", 3.14, ast.FloatFormatDec},
		{"1e10", 1e10, ast.FloatFormatExp},
		{"2.5E-3", 2.5e-3, ast.FloatFormatExp},
	}

	for _, tt := range tests {
		v, format, err := ParseFloat(tt.lexeme)
		if err != nil {
			t.Errorf("ParseFloat(%q): unexpected error: %v", tt.lexeme, err)
			continue
		}
		if v != tt.value || format != tt.format {
			t.Errorf("ParseFloat(%q) = %g, %v; expected %g, %v", tt.lexeme, v, format, tt.value, tt.format)
		}
	}
}
