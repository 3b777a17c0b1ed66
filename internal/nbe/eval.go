package nbe

import (
	"fmt"

	"github.com/lumen-lang/lumen/internal/ast"
	"github.com/lumen-lang/lumen/internal/ast/core"
	"github.com/lumen-lang/lumen/internal/config"
	"github.com/lumen-lang/lumen/internal/source"
)

// Eval evaluates a core term to a value. Evaluation is call-by-value:
// definitions resolve through the environment, beta-redexes reduce, and
// anything blocked on an undefined free variable becomes a neutral.
func Eval(t core.Term, env *Env) (Value, error) {
	return eval(t, env, 0)
}

func eval(t core.Term, env *Env, depth int) (Value, error) {
	if depth > config.MaxTermDepth {
		return nil, errTooDeep(t.Span())
	}

	switch t := t.(type) {
	case *core.Universe:
		return &VUniverse{Level: t.Level}, nil

	case *core.Lit:
		return &VLit{Val: t.Val}, nil

	case *core.Var:
		switch v := t.Var.(type) {
		case ast.Bound:
			value, ok := env.lookupBound(v.Index)
			if !ok {
				return nil, errBoundVar(t.Span(), v.Index)
			}
			return value, nil
		case ast.Free:
			if value, ok := env.lookupFree(v.Var); ok {
				return value, nil
			}
			return &VNeutral{N: &NVar{Var: v.Var}}, nil
		default:
			return nil, &Error{Message: "unknown variable form", Span: t.Span()}
		}

	case *core.Pi:
		ann, err := eval(t.Ann, env, depth+1)
		if err != nil {
			return nil, err
		}
		return &VPi{Binder: t.Binder, Ann: ann, Body: Closure{Env: env, Body: t.Body}}, nil

	case *core.Lam:
		ann, err := eval(t.Ann, env, depth+1)
		if err != nil {
			return nil, err
		}
		return &VLam{Binder: t.Binder, Ann: ann, Body: Closure{Env: env, Body: t.Body}}, nil

	case *core.App:
		fn, err := eval(t.Fn, env, depth+1)
		if err != nil {
			return nil, err
		}
		arg, err := eval(t.Arg, env, depth+1)
		if err != nil {
			return nil, err
		}
		return Apply(fn, arg)

	case *core.ArrayIntro:
		elems := make([]Value, len(t.Elems))
		for i, e := range t.Elems {
			value, err := eval(e, env, depth+1)
			if err != nil {
				return nil, err
			}
			elems[i] = value
		}
		return &VArrayIntro{Elems: elems}, nil

	case *core.RecordType:
		return evalTelescope(t.Fields, env)

	case *core.RecordIntro:
		fields := make([]VRecordField, len(t.Fields))
		for i, f := range t.Fields {
			value, err := eval(f.Term, env, depth+1)
			if err != nil {
				return nil, err
			}
			fields[i] = VRecordField{Label: f.Label, Value: value}
		}
		return &VRecordIntro{Fields: fields}, nil

	case *core.RecordProj:
		expr, err := eval(t.Expr, env, depth+1)
		if err != nil {
			return nil, err
		}
		return Proj(expr, t.Label)

	case *core.Case:
		scrut, err := eval(t.Scrut, env, depth+1)
		if err != nil {
			return nil, err
		}
		return evalCase(t.Span(), scrut, t.Branches, env, depth)

	case *core.Let:
		inner := env
		for _, item := range t.Items {
			value, err := eval(item.Value, inner, depth+1)
			if err != nil {
				return nil, err
			}
			inner = inner.Define(item.Var, value)
		}
		return eval(t.Body, inner, depth+1)

	default:
		return nil, &Error{Message: fmt.Sprintf("unknown term form %T", t), Span: t.Span()}
	}
}

// Apply performs function application in the value domain: beta-reduction
// on function values, spine extension on neutrals.
func Apply(fn, arg Value) (Value, error) {
	switch fn := fn.(type) {
	case *VLam:
		return fn.Body.Apply(arg)
	case *VNeutral:
		return &VNeutral{N: &NApp{Fn: fn.N, Arg: arg}}, nil
	default:
		return nil, &Error{Message: fmt.Sprintf("applied argument to non-function value %T", fn)}
	}
}

// Proj performs record projection in the value domain.
func Proj(expr Value, label ast.Label) (Value, error) {
	switch expr := expr.(type) {
	case *VRecordIntro:
		for _, f := range expr.Fields {
			if f.Label == label {
				return f.Value, nil
			}
		}
		return nil, &Error{Message: fmt.Sprintf("record value has no field `%s`", label)}
	case *VNeutral:
		return &VNeutral{N: &NProj{Expr: expr.N, Label: label}}, nil
	default:
		return nil, &Error{Message: fmt.Sprintf("projected field from non-record value %T", expr)}
	}
}

// evalTelescope turns the remaining fields of a record type into a value
// telescope.
func evalTelescope(fields []core.RecordTypeField, env *Env) (Value, error) {
	if len(fields) == 0 {
		return &VRecordTypeEmpty{}, nil
	}
	ann, err := Eval(fields[0].Ann, env)
	if err != nil {
		return nil, err
	}
	return &VRecordType{
		Label: fields[0].Label,
		Ann:   ann,
		Rest:  TeleClosure{Env: env, Fields: fields[1:]},
	}, nil
}

// evalCase picks the first branch the scrutinee matches. A neutral
// scrutinee suspends the whole case unless a binder pattern is reached
// first, because the branch choice cannot be observed.
func evalCase(span source.Span, scrut Value, branches []core.CaseBranch, env *Env, depth int) (Value, error) {
	for _, br := range branches {
		switch pat := br.Pattern.(type) {
		case *core.PatternBinder:
			return eval(br.Body, env.Push(scrut), depth+1)

		case *core.PatternLit:
			lit, ok := scrut.(*VLit)
			if !ok {
				return suspendCase(scrut, branches, env)
			}
			if lit.Val.Equal(pat.Val) {
				return eval(br.Body, env, depth+1)
			}

		case *core.PatternConst:
			if neutral, ok := scrut.(*VNeutral); ok {
				if nvar, ok := neutral.N.(*NVar); ok && nvar.Var.Equal(pat.Var) {
					return eval(br.Body, env, depth+1)
				}
				// The scrutinee is stuck on something that is not this exact
				// constant; whether it matches cannot be observed yet.
				return suspendCase(scrut, branches, env)
			}
			// A concrete scrutinee matches a constant pattern when it is
			// definitionally equal to the constant's value. An undefined
			// constant stays a neutral and never equals a concrete value.
			constant, ok := env.lookupFree(pat.Var)
			if !ok {
				constant = &VNeutral{N: &NVar{Var: pat.Var}}
			}
			same, err := Convertible(scrut, constant)
			if err != nil {
				return nil, err
			}
			if same {
				return eval(br.Body, env, depth+1)
			}
		}
	}
	if neutral, ok := scrut.(*VNeutral); ok {
		return &VNeutral{N: &NCase{Scrut: neutral.N, Branches: branches, Env: env}}, nil
	}
	return nil, errNoMatch(span)
}

func suspendCase(scrut Value, branches []core.CaseBranch, env *Env) (Value, error) {
	neutral, ok := scrut.(*VNeutral)
	if !ok {
		return nil, &Error{Message: "case scrutinee has an unmatchable value form"}
	}
	return &VNeutral{N: &NCase{Scrut: neutral.N, Branches: branches, Env: env}}, nil
}
