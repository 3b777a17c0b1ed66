package elaborate

import (
	"github.com/lumen-lang/lumen/internal/ast"
	"github.com/lumen-lang/lumen/internal/ast/core"
	"github.com/lumen-lang/lumen/internal/ast/raw"
	"github.com/lumen-lang/lumen/internal/nbe"
	"github.com/lumen-lang/lumen/internal/source"
)

type itemState struct {
	declared     bool
	declaredSpan source.Span
	defined      bool
	definedSpan  source.Span
	typ          nbe.Value
	coreAnn      core.Term
}

// ElaborateItems elaborates a block of declarations and definitions
// top-to-bottom, enforcing the ordering invariants: at most one declaration
// and one definition per name, with the declaration first. Each elaborated
// item extends the context seen by the items after it. Only definitions
// survive into core; names declared but never defined stay free in whatever
// follows. Module processing and the REPL use this entry point directly.
func (e *Elaborator) ElaborateItems(items []raw.LetItem, ctx *Context) (*Context, []core.LetItem, error) {
	return e.elabItems(items, ctx, 0)
}

func (e *Elaborator) elabItems(items []raw.LetItem, ctx *Context, depth int) (*Context, []core.LetItem, error) {
	states := make(map[ast.FreeVar]*itemState)
	var coreItems []core.LetItem

	for _, item := range items {
		switch item := item.(type) {
		case *raw.Declaration:
			st := states[item.Var]
			if st != nil && st.declared {
				return nil, nil, &DuplicateDeclarations{
					Name:      item.Name,
					Original:  st.declaredSpan,
					Duplicate: item.NameSpan,
				}
			}
			if st != nil && st.defined {
				return nil, nil, &DeclarationFollowedDefinition{
					Name:        item.Name,
					Definition:  st.definedSpan,
					Declaration: item.NameSpan,
				}
			}
			coreAnn, annValue, _, err := e.isType(item.Ann, ctx, depth+1)
			if err != nil {
				return nil, nil, err
			}
			ctx = ctx.ExtendType(item.Var, annValue)
			states[item.Var] = &itemState{
				declared:     true,
				declaredSpan: item.NameSpan,
				typ:          annValue,
				coreAnn:      coreAnn,
			}

		case *raw.Definition:
			st := states[item.Var]
			if st != nil && st.defined {
				return nil, nil, &DuplicateDefinitions{
					Name:      item.Name,
					Original:  st.definedSpan,
					Duplicate: item.NameSpan,
				}
			}
			var (
				body    core.Term
				typ     nbe.Value
				coreAnn core.Term
				err     error
			)
			if st != nil && st.declared {
				typ = st.typ
				coreAnn = st.coreAnn
				body, err = e.check(item.Body, typ, ctx, depth+1)
			} else {
				body, typ, err = e.infer(item.Body, ctx, depth+1)
				if err == nil {
					coreAnn, err = e.quoteValue(typ, item.Span())
				}
			}
			if err != nil {
				return nil, nil, err
			}
			value, err := e.eval(body, ctx, item.Span())
			if err != nil {
				return nil, nil, err
			}
			ctx = ctx.ExtendValue(item.Var, typ, value)
			if st == nil {
				st = &itemState{}
				states[item.Var] = st
			}
			st.defined = true
			st.definedSpan = item.NameSpan
			st.typ = typ
			coreItems = append(coreItems, core.LetItem{
				NameSpan: item.NameSpan,
				Name:     item.Name,
				Var:      item.Var,
				Ann:      coreAnn,
				Value:    body,
			})

		default:
			return nil, nil, &Internal{Err: &Unimplemented{Span: item.Span(), Message: "unknown item form"}}
		}
	}
	return ctx, coreItems, nil
}
