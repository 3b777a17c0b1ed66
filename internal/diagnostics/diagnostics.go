// Package diagnostics defines the renderable diagnostic values exchanged
// between the language core and whatever front end displays them. The core
// only ever constructs Diagnostics; rendering to a terminal (or an editor
// protocol) is the caller's concern.
package diagnostics

import "github.com/lumen-lang/lumen/internal/source"

// Severity classifies a diagnostic.
type Severity int

const (
	// SeverityError is a well-defined user-facing failure.
	SeverityError Severity = iota
	// SeverityBug marks an elaborator defect. These must never occur on
	// well-formed input and are treated as assertion failures in tests.
	SeverityBug
)

func (s Severity) String() string {
	switch s {
	case SeverityBug:
		return "bug"
	default:
		return "error"
	}
}

// Label anchors part of a diagnostic message to a source span. The first
// label of a diagnostic is always the primary one.
type Label struct {
	Span    source.Span
	Message string
	Primary bool
}

// Diagnostic is a renderable description of a failure.
type Diagnostic struct {
	Severity Severity
	Code     ErrorCode
	Message  string
	Labels   []Label
}

// New constructs an error-severity diagnostic with a primary label.
func New(code ErrorCode, message string, span source.Span, labelMsg string) Diagnostic {
	return Diagnostic{
		Severity: SeverityError,
		Code:     code,
		Message:  message,
		Labels:   []Label{{Span: span, Message: labelMsg, Primary: true}},
	}
}

// NewBug constructs a bug-severity diagnostic with a primary label.
func NewBug(code ErrorCode, message string, span source.Span, labelMsg string) Diagnostic {
	d := New(code, message, span, labelMsg)
	d.Severity = SeverityBug
	return d
}

// WithSecondary appends a secondary label for a semantically related site
// (the original declaration of a duplicate, the argument of a bad
// application, and so on).
func (d Diagnostic) WithSecondary(span source.Span, message string) Diagnostic {
	d.Labels = append(d.Labels, Label{Span: span, Message: message})
	return d
}

// FromError converts an error into a Diagnostic, using the error's own
// conversion when it has one. Errors without one indicate a defect: every
// user-facing failure type carries its diagnostic rendering.
func FromError(err error) Diagnostic {
	if d, ok := err.(interface{ ToDiagnostic() Diagnostic }); ok {
		return d.ToDiagnostic()
	}
	return Diagnostic{
		Severity: SeverityBug,
		Code:     ErrB002,
		Message:  err.Error(),
		Labels:   []Label{{Primary: true}},
	}
}

// Primary returns the primary label.
func (d Diagnostic) Primary() Label {
	for _, l := range d.Labels {
		if l.Primary {
			return l
		}
	}
	if len(d.Labels) > 0 {
		return d.Labels[0]
	}
	return Label{}
}
