package elaborate

import (
	"github.com/lumen-lang/lumen/internal/ast"
	"github.com/lumen-lang/lumen/internal/ast/core"
	"github.com/lumen-lang/lumen/internal/config"
	"github.com/lumen-lang/lumen/internal/nbe"
)

// Base is the builtin context every elaboration starts from: the primitive
// literal types, the Array type former and the boolean constants, together
// with the name table the resolver consults for them.
type Base struct {
	Context *Context

	names    map[string]ast.FreeVar
	litKinds map[ast.FreeVar]core.LitKind
	kindVars map[core.LitKind]ast.FreeVar
	arrayVar ast.FreeVar
}

// NewBase mints fresh identities for every builtin and assembles the
// context:
//
//	String Char Bool U8..U64 S8..S64 F32 F64 : Type
//	Array : U64 -> Type -> Type
//	true false : Bool
//
// The primitive types and Array have no definitions; they stay neutral
// under evaluation. true and false are defined as boolean literal values so
// that case expressions over concrete booleans reduce.
func NewBase() *Base {
	b := &Base{
		names:    make(map[string]ast.FreeVar),
		litKinds: make(map[ast.FreeVar]core.LitKind),
		kindVars: make(map[core.LitKind]ast.FreeVar),
	}

	typ := &nbe.VUniverse{Level: 0}
	var ctx *Context

	declarePrim := func(name string, kind core.LitKind) ast.FreeVar {
		fv := ast.NewFreeVar(name)
		ctx = ctx.ExtendType(fv, typ)
		b.names[name] = fv
		b.litKinds[fv] = kind
		b.kindVars[kind] = fv
		return fv
	}

	declarePrim(config.StringTypeName, core.LitString)
	declarePrim(config.CharTypeName, core.LitChar)
	boolVar := declarePrim(config.BoolTypeName, core.LitBool)
	for i, name := range config.UnsignedTypeNames {
		declarePrim(name, core.LitU8+core.LitKind(i))
	}
	for i, name := range config.SignedTypeNames {
		declarePrim(name, core.LitS8+core.LitKind(i))
	}
	for i, name := range config.FloatTypeNames {
		declarePrim(name, core.LitF32+core.LitKind(i))
	}

	// Array : U64 -> Type -> Type
	b.arrayVar = ast.NewFreeVar(config.ArrayTypeName)
	u64Type := b.PrimType(core.LitU64)
	arrayType := &nbe.VPi{
		Binder: "",
		Ann:    u64Type,
		Body: nbe.Closure{
			Env: nbe.NewEnv(nil),
			Body: &core.Pi{
				Binder: "",
				Ann:    &core.Universe{Level: 0},
				Body:   &core.Universe{Level: 0},
			},
		},
	}
	ctx = ctx.ExtendType(b.arrayVar, arrayType)
	b.names[config.ArrayTypeName] = b.arrayVar

	boolType := &nbe.VNeutral{N: &nbe.NVar{Var: boolVar}}
	for _, c := range []struct {
		name  string
		value bool
	}{{config.TrueName, true}, {config.FalseName, false}} {
		fv := ast.NewFreeVar(c.name)
		def := &nbe.VLit{Val: core.LitVal{Kind: core.LitBool, Bool: c.value}}
		ctx = ctx.ExtendValue(fv, boolType, def)
		b.names[c.name] = fv
	}

	b.Context = ctx
	return b
}

// Lookup resolves a builtin name to its identity.
func (b *Base) Lookup(name string) (ast.FreeVar, bool) {
	fv, ok := b.names[name]
	return fv, ok
}

// ArrayVar is the identity of the Array type former.
func (b *Base) ArrayVar() ast.FreeVar { return b.arrayVar }

// LitKind maps a free variable to the literal kind it types, when it is one
// of the primitive literal types.
func (b *Base) LitKind(fv ast.FreeVar) (core.LitKind, bool) {
	k, ok := b.litKinds[fv]
	return k, ok
}

// PrimType returns the type value inhabited by literals of the given kind:
// a neutral variable for the corresponding primitive.
func (b *Base) PrimType(kind core.LitKind) nbe.Value {
	return &nbe.VNeutral{N: &nbe.NVar{Var: b.kindVars[kind]}}
}
