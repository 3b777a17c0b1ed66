package nbe

import (
	"fmt"

	"github.com/lumen-lang/lumen/internal/diagnostics"
	"github.com/lumen-lang/lumen/internal/source"
)

// Error is a normalization failure. Outside of the depth guard and an
// unmatched case scrutinee these are always elaborator bugs: divergence or
// stuck states are unreachable from successfully elaborated programs.
type Error struct {
	Message  string
	Span     source.Span
	TooDeep  bool // set when the recursion depth guard fired
	BoundVar bool // set when a bound variable escaped its scope
	NoMatch  bool // set when no case branch matched a concrete scrutinee
	Index    int  // escaped index, when BoundVar is set
}

func (e *Error) Error() string {
	return fmt.Sprintf("nbe: %s", e.Message)
}

// ToDiagnostic renders the failure. The depth guard and an unmatched
// scrutinee are user-facing; everything else is a defect.
func (e *Error) ToDiagnostic() diagnostics.Diagnostic {
	switch {
	case e.TooDeep:
		return diagnostics.New(diagnostics.ErrE021, "term nesting exceeds the depth limit", e.Span, "too deeply nested")
	case e.NoMatch:
		return diagnostics.New(diagnostics.ErrE023, "no branch matches the case scrutinee", e.Span, "unmatched scrutinee")
	case e.BoundVar:
		return diagnostics.NewBug(diagnostics.ErrB001, e.Error(), e.Span, "bound variable escaped its scope")
	default:
		return diagnostics.NewBug(diagnostics.ErrB002, e.Error(), e.Span, "evaluation failed")
	}
}

func errBoundVar(span source.Span, index int) *Error {
	return &Error{
		Message:  fmt.Sprintf("unexpected bound variable @%d", index),
		Span:     span,
		BoundVar: true,
		Index:    index,
	}
}

func errTooDeep(span source.Span) *Error {
	return &Error{
		Message: "term nesting exceeds the evaluation depth limit",
		Span:    span,
		TooDeep: true,
	}
}

func errNoMatch(span source.Span) *Error {
	return &Error{
		Message: "no case branch matched the scrutinee",
		Span:    span,
		NoMatch: true,
	}
}
