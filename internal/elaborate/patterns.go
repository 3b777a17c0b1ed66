package elaborate

import (
	"github.com/lumen-lang/lumen/internal/ast"
	"github.com/lumen-lang/lumen/internal/ast/core"
	"github.com/lumen-lang/lumen/internal/ast/raw"
	"github.com/lumen-lang/lumen/internal/nbe"
)

// elabCase elaborates a case expression. With a nil expected type the
// result type is synthesized from the first branch and the remaining
// branches are checked against it; otherwise every branch is checked
// against expected. Pattern bindings are branch-local: each branch extends
// the pre-case context independently and the extension is discarded with
// the branch.
func (e *Elaborator) elabCase(t *raw.Case, expected nbe.Value, ctx *Context, depth int) (core.Term, nbe.Value, error) {
	scrut, scrutType, err := e.infer(t.Scrut, ctx, depth+1)
	if err != nil {
		return nil, nil, err
	}
	if len(t.Branches) == 0 && expected == nil {
		return nil, nil, &AmbiguousEmptyCase{Span: t.Span()}
	}

	resultType := expected
	branches := make([]core.CaseBranch, 0, len(t.Branches))
	for _, br := range t.Branches {
		pat, branchCtx, binder, err := e.elabPattern(br.Pattern, scrutType, ctx, depth)
		if err != nil {
			return nil, nil, err
		}
		body := br.Body
		if binder != nil {
			body = raw.Open(body, *binder)
		}
		var coreBody core.Term
		if resultType == nil {
			coreBody, resultType, err = e.infer(body, branchCtx, depth+1)
		} else {
			coreBody, err = e.check(body, resultType, branchCtx, depth+1)
		}
		if err != nil {
			return nil, nil, err
		}
		if binder != nil {
			coreBody = core.Close(coreBody, *binder)
		}
		branches = append(branches, core.CaseBranch{Pattern: pat, Body: coreBody})
	}
	return &core.Case{TermSpan: t.TermSpan, Scrut: scrut, Branches: branches}, resultType, nil
}

// elabPattern elaborates a pattern against the scrutinee's type. The
// returned context carries the pattern's binding, if any, and binder names
// the fresh variable a binder pattern was opened with so the branch body
// can be closed over it again.
func (e *Elaborator) elabPattern(p raw.Pattern, scrutType nbe.Value, ctx *Context, depth int) (core.Pattern, *Context, *ast.FreeVar, error) {
	switch p := p.(type) {
	case *raw.PatternAnn:
		_, annValue, _, err := e.isType(p.Type, ctx, depth+1)
		if err != nil {
			return nil, nil, nil, err
		}
		same, err := e.convertible(annValue, scrutType, p.Type.Span())
		if err != nil {
			return nil, nil, nil, err
		}
		if !same {
			return nil, nil, nil, &Mismatch{
				Span:     p.Type.Span(),
				Found:    e.render(annValue),
				Expected: e.render(scrutType),
			}
		}
		return e.elabPattern(p.Pattern, scrutType, ctx, depth)

	case *raw.PatternLit:
		val, err := e.checkLiteral(p.Literal, scrutType, p.Span())
		if err != nil {
			return nil, nil, nil, err
		}
		return &core.PatternLit{Val: val}, ctx, nil, nil

	case *raw.PatternBinder:
		fv := ast.NewFreeVar(p.Name)
		return &core.PatternBinder{Name: p.Name}, ctx.ExtendType(fv, scrutType), &fv, nil

	case *raw.PatternConst:
		typ, ok := ctx.LookupType(p.Var)
		if !ok {
			return nil, nil, nil, &UndefinedName{Span: p.Span(), Name: p.Var.Name}
		}
		same, err := e.convertible(typ, scrutType, p.Span())
		if err != nil {
			return nil, nil, nil, err
		}
		if !same {
			return nil, nil, nil, &Mismatch{
				Span:     p.Span(),
				Found:    e.render(typ),
				Expected: e.render(scrutType),
			}
		}
		// Constants defined as literal values match by value, so cases
		// over concrete scrutinees still reduce.
		if def, ok := ctx.LookupValue(p.Var); ok {
			if lit, isLit := def.(*nbe.VLit); isLit {
				return &core.PatternLit{Val: lit.Val}, ctx, nil, nil
			}
		}
		return &core.PatternConst{Var: p.Var}, ctx, nil, nil

	default:
		return nil, nil, nil, &Internal{Err: &Unimplemented{Span: p.Span(), Message: "unknown pattern form"}}
	}
}
