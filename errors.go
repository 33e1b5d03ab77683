package gestaltwerk

import (
	"fmt"
	"strings"
)

// Position locates a byte offset within a parsed source (a style document
// or a description document), plus the 1-based line/column for diagnostics.
type Position struct {
	Line   int
	Column int
	Offset int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// ParseError is returned by the style and description parsers. It always
// carries the Position the parser was at when it gave up.
type ParseError struct {
	Pos     Position
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at %s: %s", e.Pos, e.Message)
}

// EvalErrorKind distinguishes the ways evaluating a style expression can
// fail, matching the original implementation's ErrorKind variants that
// rule.rs's eval/eval_value/get_value produce.
type EvalErrorKind int

const (
	UnknownVariable EvalErrorKind = iota
	UnknownFunction
	CantOp
	FunctionFailed
)

func (k EvalErrorKind) String() string {
	switch k {
	case UnknownVariable:
		return "unknown variable"
	case UnknownFunction:
		return "unknown function"
	case CantOp:
		return "can't apply operator"
	case FunctionFailed:
		return "function failed"
	default:
		return "eval error"
	}
}

// EvalError is returned when evaluating a style expression fails; it
// always carries the Position of the offending sub-expression so a caller
// can render a caret against the original source with FormatError.
type EvalError struct {
	Kind   EvalErrorKind
	Name   string // variable or function name, when applicable
	Op     string // operator name ("add", "subtract", ...), when Kind == CantOp
	Pos    Position
	Cause  error // wrapped cause, e.g. for FunctionFailed
}

func (e *EvalError) Error() string {
	switch e.Kind {
	case UnknownVariable:
		return fmt.Sprintf("unknown variable %q at %s", e.Name, e.Pos)
	case UnknownFunction:
		return fmt.Sprintf("unknown function %q at %s", e.Name, e.Pos)
	case CantOp:
		return fmt.Sprintf("can't %s at %s", e.Op, e.Pos)
	case FunctionFailed:
		if e.Cause != nil {
			return fmt.Sprintf("function failed at %s: %v", e.Pos, e.Cause)
		}
		return fmt.Sprintf("function failed at %s", e.Pos)
	default:
		return fmt.Sprintf("eval error at %s", e.Pos)
	}
}

func (e *EvalError) Unwrap() error { return e.Cause }

// FormatParseError renders a caret-style diagnostic for a parse error
// against the original source text, grounded on the original
// implementation's format_parse_error helper (original_source/src/lib.rs).
func FormatParseError(source string, err *ParseError) string {
	return formatCaret(source, err.Pos, err.Message)
}

// FormatError renders a caret-style diagnostic for any Position-carrying
// error, grounded on format_error in original_source/src/lib.rs.
func FormatError(source string, pos Position, message string) string {
	return formatCaret(source, pos, message)
}

func formatCaret(source string, pos Position, message string) string {
	lines := strings.Split(source, "\n")
	if pos.Line < 1 || pos.Line > len(lines) {
		return fmt.Sprintf("%s (at %s)", message, pos)
	}
	line := lines[pos.Line-1]
	col := pos.Column
	if col < 1 {
		col = 1
	}
	caret := strings.Repeat(" ", col-1) + "^"
	return fmt.Sprintf("%s\n%s\n%s (at %s)", line, caret, message, pos)
}
