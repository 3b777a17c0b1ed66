package elaborate

import (
	"fmt"

	"github.com/lumen-lang/lumen/internal/ast"
	"github.com/lumen-lang/lumen/internal/diagnostics"
	"github.com/lumen-lang/lumen/internal/source"
)

// TypeError is a user-facing elaboration failure. The first failure aborts
// the enclosing elaboration call; nothing is accumulated or retried.
type TypeError interface {
	error
	typeError()
	ToDiagnostic() diagnostics.Diagnostic
}

// InternalError marks an elaborator defect: a state that must be
// unreachable on well-formed input. It is always surfaced to callers
// wrapped in Internal so they handle a single error kind.
type InternalError interface {
	error
	internalError()
	ToDiagnostic() diagnostics.Diagnostic
}

// Internal wraps an InternalError as a TypeError.
type Internal struct {
	Err InternalError
}

func (*Internal) typeError()     {}
func (e *Internal) Error() string { return e.Err.Error() }
func (e *Internal) Unwrap() error { return e.Err }

func (e *Internal) ToDiagnostic() diagnostics.Diagnostic { return e.Err.ToDiagnostic() }

// UnexpectedBoundVar reports a bound variable escaping the scope that
// introduced it.
type UnexpectedBoundVar struct {
	Span  source.Span
	Index int
}

func (*UnexpectedBoundVar) internalError() {}
func (e *UnexpectedBoundVar) Error() string {
	return fmt.Sprintf("unexpected bound variable @%d", e.Index)
}

func (e *UnexpectedBoundVar) ToDiagnostic() diagnostics.Diagnostic {
	return diagnostics.NewBug(diagnostics.ErrB001, e.Error(), e.Span, "bound variable escaped its scope")
}

// Unimplemented reports an intentionally stubbed elaboration path.
type Unimplemented struct {
	Span    source.Span
	Message string
}

func (*Unimplemented) internalError() {}
func (e *Unimplemented) Error() string {
	return fmt.Sprintf("unimplemented: %s", e.Message)
}

func (e *Unimplemented) ToDiagnostic() diagnostics.Diagnostic {
	return diagnostics.NewBug(diagnostics.ErrB002, e.Error(), e.Span, "unimplemented")
}

// DuplicateDeclarations reports a second declaration of an already declared
// name.
type DuplicateDeclarations struct {
	Name      string
	Original  source.Span
	Duplicate source.Span
}

func (*DuplicateDeclarations) typeError() {}
func (e *DuplicateDeclarations) Error() string {
	return fmt.Sprintf("duplicate declarations of `%s`", e.Name)
}

func (e *DuplicateDeclarations) ToDiagnostic() diagnostics.Diagnostic {
	return diagnostics.New(diagnostics.ErrE001, e.Error(), e.Duplicate, "duplicated declaration").
		WithSecondary(e.Original, "original declaration")
}

// DeclarationFollowedDefinition reports a declaration appearing after the
// name was already defined.
type DeclarationFollowedDefinition struct {
	Name        string
	Definition  source.Span
	Declaration source.Span
}

func (*DeclarationFollowedDefinition) typeError() {}
func (e *DeclarationFollowedDefinition) Error() string {
	return fmt.Sprintf("declaration of `%s` follows its definition", e.Name)
}

func (e *DeclarationFollowedDefinition) ToDiagnostic() diagnostics.Diagnostic {
	return diagnostics.New(diagnostics.ErrE002, e.Error(), e.Declaration, "declared after its definition").
		WithSecondary(e.Definition, "definition")
}

// DuplicateDefinitions reports a second definition of an already defined
// name.
type DuplicateDefinitions struct {
	Name      string
	Original  source.Span
	Duplicate source.Span
}

func (*DuplicateDefinitions) typeError() {}
func (e *DuplicateDefinitions) Error() string {
	return fmt.Sprintf("duplicate definitions of `%s`", e.Name)
}

func (e *DuplicateDefinitions) ToDiagnostic() diagnostics.Diagnostic {
	return diagnostics.New(diagnostics.ErrE003, e.Error(), e.Duplicate, "duplicated definition").
		WithSecondary(e.Original, "original definition")
}

// ArgAppliedToNonFunction reports an application whose head does not have a
// function type.
type ArgAppliedToNonFunction struct {
	HeadType string
	FnSpan   source.Span
	ArgSpan  source.Span
}

func (*ArgAppliedToNonFunction) typeError() {}
func (e *ArgAppliedToNonFunction) Error() string {
	return fmt.Sprintf("argument applied to non-function `%s`", e.HeadType)
}

func (e *ArgAppliedToNonFunction) ToDiagnostic() diagnostics.Diagnostic {
	return diagnostics.New(diagnostics.ErrE004, e.Error(), e.FnSpan,
		fmt.Sprintf("has type `%s`, which is not a function type", e.HeadType)).
		WithSecondary(e.ArgSpan, "argument applied here")
}

// FunctionParamNeedsAnnotation reports an unannotated function parameter
// with no expected function type to borrow an annotation from.
type FunctionParamNeedsAnnotation struct {
	Name string
	Span source.Span
}

func (*FunctionParamNeedsAnnotation) typeError() {}
func (e *FunctionParamNeedsAnnotation) Error() string {
	return fmt.Sprintf("parameter `%s` needs a type annotation", e.Name)
}

func (e *FunctionParamNeedsAnnotation) ToDiagnostic() diagnostics.Diagnostic {
	return diagnostics.New(diagnostics.ErrE005, e.Error(), e.Span, "needs a type annotation")
}

// AmbiguousRecordIntro reports a record introduction that cannot be
// inferred because a field is not self-describing.
type AmbiguousRecordIntro struct {
	Span      source.Span
	FieldSpan source.Span
}

func (*AmbiguousRecordIntro) typeError() {}
func (e *AmbiguousRecordIntro) Error() string {
	return "ambiguous record introduction"
}

func (e *AmbiguousRecordIntro) ToDiagnostic() diagnostics.Diagnostic {
	return diagnostics.New(diagnostics.ErrE006, e.Error(), e.Span, "type annotations needed").
		WithSecondary(e.FieldSpan, "this field is ambiguous")
}

// LiteralMismatch reports a literal checked against an incompatible type.
// Found names the literal's surface kind: "string", "character", "numeric"
// or "floating point".
type LiteralMismatch struct {
	Found      string
	Expected   string
	Span       source.Span
	OutOfRange bool
}

func (*LiteralMismatch) typeError() {}
func (e *LiteralMismatch) Error() string {
	if e.OutOfRange {
		return fmt.Sprintf("%s literal out of range for `%s`", e.Found, e.Expected)
	}
	return fmt.Sprintf("mismatched types: found a %s literal, expected `%s`", e.Found, e.Expected)
}

func (e *LiteralMismatch) ToDiagnostic() diagnostics.Diagnostic {
	return diagnostics.New(diagnostics.ErrE007, e.Error(), e.Span,
		fmt.Sprintf("expected `%s`", e.Expected))
}

// AmbiguousIntLiteral reports an integer literal inferred with no expected
// type to pick its width.
type AmbiguousIntLiteral struct {
	Span source.Span
}

func (*AmbiguousIntLiteral) typeError()      {}
func (e *AmbiguousIntLiteral) Error() string { return "ambiguous integer literal" }

func (e *AmbiguousIntLiteral) ToDiagnostic() diagnostics.Diagnostic {
	return diagnostics.New(diagnostics.ErrE008, e.Error(), e.Span, "type annotations needed")
}

// AmbiguousFloatLiteral reports a float literal inferred with no expected
// type.
type AmbiguousFloatLiteral struct {
	Span source.Span
}

func (*AmbiguousFloatLiteral) typeError()      {}
func (e *AmbiguousFloatLiteral) Error() string { return "ambiguous floating point literal" }

func (e *AmbiguousFloatLiteral) ToDiagnostic() diagnostics.Diagnostic {
	return diagnostics.New(diagnostics.ErrE009, e.Error(), e.Span, "type annotations needed")
}

// AmbiguousEmptyCase reports a case expression with no branches and no
// expected type.
type AmbiguousEmptyCase struct {
	Span source.Span
}

func (*AmbiguousEmptyCase) typeError()      {}
func (e *AmbiguousEmptyCase) Error() string { return "ambiguous result type of empty case" }

func (e *AmbiguousEmptyCase) ToDiagnostic() diagnostics.Diagnostic {
	return diagnostics.New(diagnostics.ErrE010, e.Error(), e.Span, "type annotations needed")
}

// UnableToElaborateHole reports a hole. Holes are never auto-resolved, so
// both the inference and the checking path report this. Expected is the
// rendered expected type when one was known, otherwise empty.
type UnableToElaborateHole struct {
	Span     source.Span
	Expected string
}

func (*UnableToElaborateHole) typeError()      {}
func (e *UnableToElaborateHole) Error() string { return "unable to elaborate hole" }

func (e *UnableToElaborateHole) ToDiagnostic() diagnostics.Diagnostic {
	label := "unable to elaborate this hole"
	if e.Expected != "" {
		label = fmt.Sprintf("expected `%s`", e.Expected)
	}
	return diagnostics.New(diagnostics.ErrE011, e.Error(), e.Span, label)
}

// Mismatch reports a definitional-equality failure between a term's
// inferred type and the type expected of it.
type Mismatch struct {
	Span     source.Span
	Found    string
	Expected string
}

func (*Mismatch) typeError() {}
func (e *Mismatch) Error() string {
	return fmt.Sprintf("mismatched types: found `%s`, expected `%s`", e.Found, e.Expected)
}

func (e *Mismatch) ToDiagnostic() diagnostics.Diagnostic {
	return diagnostics.New(diagnostics.ErrE012, e.Error(), e.Span,
		fmt.Sprintf("found `%s`, expected `%s`", e.Found, e.Expected))
}

// UnexpectedFunction reports a function introduction checked against a
// non-function type.
type UnexpectedFunction struct {
	Span     source.Span
	Expected string
}

func (*UnexpectedFunction) typeError() {}
func (e *UnexpectedFunction) Error() string {
	return fmt.Sprintf("found a function, expected `%s`", e.Expected)
}

func (e *UnexpectedFunction) ToDiagnostic() diagnostics.Diagnostic {
	return diagnostics.New(diagnostics.ErrE013, e.Error(), e.Span,
		fmt.Sprintf("expected `%s`, found a function", e.Expected))
}

// ExpectedUniverse reports a term used as a type whose type does not reduce
// to a universe.
type ExpectedUniverse struct {
	Span  source.Span
	Found string
}

func (*ExpectedUniverse) typeError() {}
func (e *ExpectedUniverse) Error() string {
	return fmt.Sprintf("expected a universe, found `%s`", e.Found)
}

func (e *ExpectedUniverse) ToDiagnostic() diagnostics.Diagnostic {
	return diagnostics.New(diagnostics.ErrE014, e.Error(), e.Span,
		fmt.Sprintf("found `%s`, expected a universe", e.Found))
}

// UndefinedImport reports an import with no entry in the import table.
type UndefinedImport struct {
	Span source.Span
	Name string
}

func (*UndefinedImport) typeError() {}
func (e *UndefinedImport) Error() string {
	return fmt.Sprintf("cannot find module for import `%s`", e.Name)
}

func (e *UndefinedImport) ToDiagnostic() diagnostics.Diagnostic {
	return diagnostics.New(diagnostics.ErrE015, e.Error(), e.Span, "module not found")
}

// LabelMismatch reports a record field whose label does not match the
// expected telescope at its position.
type LabelMismatch struct {
	Span     source.Span
	Found    ast.Label
	Expected ast.Label
}

func (*LabelMismatch) typeError() {}
func (e *LabelMismatch) Error() string {
	return fmt.Sprintf("mismatched field labels: found `%s`, expected `%s`", e.Found, e.Expected)
}

func (e *LabelMismatch) ToDiagnostic() diagnostics.Diagnostic {
	return diagnostics.New(diagnostics.ErrE016, e.Error(), e.Span,
		fmt.Sprintf("expected `%s`", e.Expected))
}

// ArrayLengthMismatch reports an array literal whose length differs from
// the expected array type's length.
type ArrayLengthMismatch struct {
	Span        source.Span
	FoundLen    uint64
	ExpectedLen uint64
}

func (*ArrayLengthMismatch) typeError() {}
func (e *ArrayLengthMismatch) Error() string {
	return fmt.Sprintf("mismatched array length: found %d elements, expected %d", e.FoundLen, e.ExpectedLen)
}

func (e *ArrayLengthMismatch) ToDiagnostic() diagnostics.Diagnostic {
	return diagnostics.New(diagnostics.ErrE017, e.Error(), e.Span,
		fmt.Sprintf("expected %d elements", e.ExpectedLen))
}

// AmbiguousArrayLiteral reports an array literal that cannot be inferred:
// either empty or with non-uniform element types.
type AmbiguousArrayLiteral struct {
	Span source.Span
}

func (*AmbiguousArrayLiteral) typeError()      {}
func (e *AmbiguousArrayLiteral) Error() string { return "ambiguous array literal" }

func (e *AmbiguousArrayLiteral) ToDiagnostic() diagnostics.Diagnostic {
	return diagnostics.New(diagnostics.ErrE018, e.Error(), e.Span, "type annotations needed")
}

// NoFieldInType reports a projection whose label is absent from the
// expression's record type.
type NoFieldInType struct {
	LabelSpan source.Span
	ExprSpan  source.Span
	Label     ast.Label
	Type      string
}

func (*NoFieldInType) typeError() {}
func (e *NoFieldInType) Error() string {
	return fmt.Sprintf("no field `%s` in type `%s`", e.Label, e.Type)
}

func (e *NoFieldInType) ToDiagnostic() diagnostics.Diagnostic {
	return diagnostics.New(diagnostics.ErrE019, e.Error(), e.LabelSpan, "unknown field").
		WithSecondary(e.ExprSpan, fmt.Sprintf("has type `%s`", e.Type))
}

// RecordSizeMismatch reports a record introduction whose field count
// differs from the expected telescope's.
type RecordSizeMismatch struct {
	Span          source.Span
	FoundCount    int
	ExpectedCount int
	Expected      string
}

func (*RecordSizeMismatch) typeError() {}
func (e *RecordSizeMismatch) Error() string {
	return fmt.Sprintf("mismatched record size: found %d fields, expected %d", e.FoundCount, e.ExpectedCount)
}

func (e *RecordSizeMismatch) ToDiagnostic() diagnostics.Diagnostic {
	return diagnostics.New(diagnostics.ErrE020, e.Error(), e.Span,
		fmt.Sprintf("expected `%s`", e.Expected))
}

// TooDeep reports term nesting that crossed the recursion depth limit. It
// is a resource error, not an elaborator defect.
type TooDeep struct {
	Span source.Span
}

func (*TooDeep) typeError()      {}
func (e *TooDeep) Error() string { return "term nesting exceeds the depth limit" }

func (e *TooDeep) ToDiagnostic() diagnostics.Diagnostic {
	return diagnostics.New(diagnostics.ErrE021, e.Error(), e.Span, "too deeply nested")
}

// UnmatchedCase reports a case whose concrete scrutinee matched none of the
// branches during evaluation.
type UnmatchedCase struct {
	Span source.Span
}

func (*UnmatchedCase) typeError()      {}
func (e *UnmatchedCase) Error() string { return "no branch matches the case scrutinee" }

func (e *UnmatchedCase) ToDiagnostic() diagnostics.Diagnostic {
	return diagnostics.New(diagnostics.ErrE023, e.Error(), e.Span, "unmatched scrutinee")
}

// UndefinedName reports a free variable with no entry in the context. Name
// resolution guarantees boundedness before elaboration runs, so a resolved
// name missing from the context is rendered at bug severity even though the
// message reads like a user error.
type UndefinedName struct {
	Span source.Span
	Name string
}

func (*UndefinedName) typeError() {}
func (e *UndefinedName) Error() string {
	return fmt.Sprintf("cannot find `%s` in scope", e.Name)
}

func (e *UndefinedName) ToDiagnostic() diagnostics.Diagnostic {
	return diagnostics.NewBug(diagnostics.ErrE022, e.Error(), e.Span, "not yet defined")
}
