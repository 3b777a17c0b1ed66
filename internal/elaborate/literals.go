package elaborate

import (
	"math"

	"github.com/lumen-lang/lumen/internal/ast/core"
	"github.com/lumen-lang/lumen/internal/ast/raw"
	"github.com/lumen-lang/lumen/internal/nbe"
	"github.com/lumen-lang/lumen/internal/source"
)

// checkLiteral elaborates a surface literal against an expected type value.
// The expected type must be one of the primitive literal types and must be
// compatible with the literal's surface kind; integer literals additionally
// have to fit the expected width.
func (e *Elaborator) checkLiteral(l raw.Literal, expected nbe.Value, span source.Span) (core.LitVal, error) {
	kind, ok := e.litTypeKind(expected)
	if !ok {
		return core.LitVal{}, &LiteralMismatch{Found: l.Kind(), Expected: e.render(expected), Span: span}
	}

	mismatch := func() error {
		return &LiteralMismatch{Found: l.Kind(), Expected: kind.TypeName(), Span: span}
	}

	switch l := l.(type) {
	case *raw.StringLit:
		if kind != core.LitString {
			return core.LitVal{}, mismatch()
		}
		return core.LitVal{Kind: core.LitString, Str: l.Value}, nil

	case *raw.CharLit:
		if kind != core.LitChar {
			return core.LitVal{}, mismatch()
		}
		return core.LitVal{Kind: core.LitChar, Rune: l.Value}, nil

	case *raw.IntLit:
		var max uint64
		switch kind {
		case core.LitU8:
			max = math.MaxUint8
		case core.LitU16:
			max = math.MaxUint16
		case core.LitU32:
			max = math.MaxUint32
		case core.LitU64:
			max = math.MaxUint64
		case core.LitS8:
			max = math.MaxInt8
		case core.LitS16:
			max = math.MaxInt16
		case core.LitS32:
			max = math.MaxInt32
		case core.LitS64:
			max = math.MaxInt64
		default:
			return core.LitVal{}, mismatch()
		}
		if l.Value > max {
			return core.LitVal{}, &LiteralMismatch{
				Found:      l.Kind(),
				Expected:   kind.TypeName(),
				Span:       span,
				OutOfRange: true,
			}
		}
		val := core.LitVal{Kind: kind, IntFormat: l.Format}
		switch kind {
		case core.LitU8, core.LitU16, core.LitU32, core.LitU64:
			val.Uint = l.Value
		default:
			val.Int = int64(l.Value)
		}
		return val, nil

	case *raw.FloatLit:
		if kind != core.LitF32 && kind != core.LitF64 {
			return core.LitVal{}, mismatch()
		}
		return core.LitVal{Kind: kind, Float: l.Value, FloatFormat: l.Format}, nil

	default:
		return core.LitVal{}, &Internal{Err: &Unimplemented{Span: span, Message: "unknown literal form"}}
	}
}

// litTypeKind recognizes an expected type value as one of the primitive
// literal types.
func (e *Elaborator) litTypeKind(expected nbe.Value) (core.LitKind, bool) {
	neutral, ok := expected.(*nbe.VNeutral)
	if !ok {
		return 0, false
	}
	nv, ok := neutral.N.(*nbe.NVar)
	if !ok {
		return 0, false
	}
	return e.base.LitKind(nv.Var)
}
