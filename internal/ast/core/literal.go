package core

import (
	"fmt"
	"strconv"

	"github.com/lumen-lang/lumen/internal/ast"
)

// LitKind is the concrete primitive type of an elaborated literal.
type LitKind int

const (
	LitString LitKind = iota
	LitChar
	LitBool
	LitU8
	LitU16
	LitU32
	LitU64
	LitS8
	LitS16
	LitS32
	LitS64
	LitF32
	LitF64
)

// TypeName returns the primitive type name inhabited by literals of this
// kind, matching the builtin context entries.
func (k LitKind) TypeName() string {
	switch k {
	case LitString:
		return "String"
	case LitChar:
		return "Char"
	case LitBool:
		return "Bool"
	case LitU8:
		return "U8"
	case LitU16:
		return "U16"
	case LitU32:
		return "U32"
	case LitU64:
		return "U64"
	case LitS8:
		return "S8"
	case LitS16:
		return "S16"
	case LitS32:
		return "S32"
	case LitS64:
		return "S64"
	case LitF32:
		return "F32"
	case LitF64:
		return "F64"
	default:
		return "?"
	}
}

// LitVal is a literal value together with its concrete primitive type.
// Unsigned integer kinds use Uint, signed kinds use Int; the unused fields
// are zero.
type LitVal struct {
	Kind  LitKind
	Str   string
	Rune  rune
	Bool  bool
	Uint  uint64
	Int   int64
	Float float64

	// Formats are preserved for faithful redisplay only.
	IntFormat   ast.IntFormat
	FloatFormat ast.FloatFormat
}

// Equal compares literal values, ignoring display formats.
func (v LitVal) Equal(o LitVal) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case LitString:
		return v.Str == o.Str
	case LitChar:
		return v.Rune == o.Rune
	case LitBool:
		return v.Bool == o.Bool
	case LitU8, LitU16, LitU32, LitU64:
		return v.Uint == o.Uint
	case LitS8, LitS16, LitS32, LitS64:
		return v.Int == o.Int
	case LitF32, LitF64:
		return v.Float == o.Float
	default:
		return false
	}
}

func (v LitVal) String() string {
	switch v.Kind {
	case LitString:
		return strconv.Quote(v.Str)
	case LitChar:
		return strconv.QuoteRune(v.Rune)
	case LitBool:
		return strconv.FormatBool(v.Bool)
	case LitU8, LitU16, LitU32, LitU64:
		switch v.IntFormat {
		case ast.IntFormatHex:
			return fmt.Sprintf("0x%X", v.Uint)
		case ast.IntFormatBin:
			return fmt.Sprintf("0b%b", v.Uint)
		default:
			return strconv.FormatUint(v.Uint, 10)
		}
	case LitS8, LitS16, LitS32, LitS64:
		return strconv.FormatInt(v.Int, 10)
	case LitF32, LitF64:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	default:
		return "?"
	}
}
