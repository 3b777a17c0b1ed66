package concrete

import "github.com/lumen-lang/lumen/internal/source"

// Item is a top-level entry in a module, let block or where block.
type Item interface {
	itemNode()
	Span() source.Span
}

// Declaration declares the type associated with a name, prior to its
// definition.
//
//	foo : some-type
type Declaration struct {
	NameSpan source.Span
	Name     string
	Ann      Term
}

func (*Declaration) itemNode() {}
func (i *Declaration) Span() source.Span {
	return i.NameSpan.Cover(i.Ann.Span())
}

// Definition defines the term associated with a name, possibly with sugar
// parameters and a return annotation.
//
//	foo = some-body
//	foo x (y : some-type) = some-body
type Definition struct {
	NameSpan  source.Span
	Name      string
	Params    []ParamGroup
	ReturnAnn Term // nil when absent
	Body      Term
}

func (*Definition) itemNode() {}
func (i *Definition) Span() source.Span {
	return i.NameSpan.Cover(i.Body.Span())
}

// ItemError marks an item that could not be correctly parsed. It is used
// for error recovery.
type ItemError struct {
	ItemSpan source.Span
}

func (*ItemError) itemNode()            {}
func (i *ItemError) Span() source.Span { return i.ItemSpan }

// Module is a parsed source file: a sequence of top-level items.
type Module struct {
	File  string
	Items []Item
}
