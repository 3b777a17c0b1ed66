package config

const SourceFileExt = ".lumen"

// SourceFileExtensions are all recognized source file extensions
var SourceFileExtensions = []string{".lumen", ".lm"}

// WorkspaceFileName is the per-project manifest read from the directory of
// the file being checked.
const WorkspaceFileName = "lumen.yaml"

// MaxTermDepth bounds term nesting during evaluation and type checking.
// Crossing it is reported as a regular error, not a crash.
const MaxTermDepth = 512

// Built-in type names
const (
	StringTypeName = "String"
	CharTypeName   = "Char"
	BoolTypeName   = "Bool"
	ArrayTypeName  = "Array"
	TrueName       = "true"
	FalseName      = "false"
)

// Unsigned, signed and floating point primitive type names, in declaration
// order of the base context.
var (
	UnsignedTypeNames = []string{"U8", "U16", "U32", "U64"}
	SignedTypeNames   = []string{"S8", "S16", "S32", "S64"}
	FloatTypeNames    = []string{"F32", "F64"}
)
