package diagnostics

// ErrorCode is a stable identifier for a diagnostic kind. P codes come from
// the parser, E codes are user-facing elaboration failures, B codes are
// internal bugs.
type ErrorCode string

const (
	// Parser
	ErrP001 ErrorCode = "P001" // unexpected token
	ErrP002 ErrorCode = "P002" // unterminated literal
	ErrP003 ErrorCode = "P003" // malformed number
	ErrP004 ErrorCode = "P004" // unknown REPL command

	// Elaboration
	ErrE001 ErrorCode = "E001" // duplicate declarations
	ErrE002 ErrorCode = "E002" // declaration followed definition
	ErrE003 ErrorCode = "E003" // duplicate definitions
	ErrE004 ErrorCode = "E004" // argument applied to non-function
	ErrE005 ErrorCode = "E005" // function parameter needs annotation
	ErrE006 ErrorCode = "E006" // ambiguous record introduction
	ErrE007 ErrorCode = "E007" // literal mismatch
	ErrE008 ErrorCode = "E008" // ambiguous integer literal
	ErrE009 ErrorCode = "E009" // ambiguous floating point literal
	ErrE010 ErrorCode = "E010" // ambiguous empty case
	ErrE011 ErrorCode = "E011" // unable to elaborate hole
	ErrE012 ErrorCode = "E012" // type mismatch
	ErrE013 ErrorCode = "E013" // unexpected function
	ErrE014 ErrorCode = "E014" // expected universe
	ErrE015 ErrorCode = "E015" // undefined import
	ErrE016 ErrorCode = "E016" // record label mismatch
	ErrE017 ErrorCode = "E017" // array length mismatch
	ErrE018 ErrorCode = "E018" // ambiguous array literal
	ErrE019 ErrorCode = "E019" // no such field in type
	ErrE020 ErrorCode = "E020" // record size mismatch
	ErrE021 ErrorCode = "E021" // term nesting too deep
	ErrE022 ErrorCode = "E022" // undefined name (rendered as a bug, see below)
	ErrE023 ErrorCode = "E023" // no case branch matched the scrutinee

	// Internal. ErrE022 also renders at bug severity: an undefined name
	// surviving name resolution means the resolver failed, not the user.
	ErrB001 ErrorCode = "B001" // unexpected bound variable
	ErrB002 ErrorCode = "B002" // unimplemented elaborator path
)

func (c ErrorCode) String() string { return string(c) }
