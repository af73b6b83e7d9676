// Package fail is the boundary the price estimation core signals failure
// through. It never recovers locally: a precondition violation or input
// error becomes a Violation value that the caller (CLI, HTTP handler, test)
// turns into a diagnostic and a non-zero exit, per the propagation policy
// the core follows throughout.
package fail

import (
	"fmt"
	"runtime"
)

// Kind distinguishes the three fatal error categories the core can signal.
// Soft absence (a volatility warm-up or a stale/empty estimate) is never a
// Violation — it is represented as a plain absent optional return value.
type Kind int

const (
	// Precondition marks a broken model/driver invariant: non-monotone
	// input, a nil volatility model, a negative configured value, an
	// out-of-range candle bucket, a zero divisor.
	Precondition Kind = iota
	// InputError marks a malformed external input: bad CLI form, an
	// unparseable value, mismatched column sizes, an empty column.
	InputError
	// Mismatch marks a replay comparison failure: the model's actual
	// output differed from the expected value by more than the
	// configured tolerance.
	Mismatch
)

func (k Kind) String() string {
	switch k {
	case Precondition:
		return "precondition violation"
	case InputError:
		return "input error"
	case Mismatch:
		return "comparison mismatch"
	default:
		return "error"
	}
}

// Violation is a fatal diagnostic naming the failed expression, the
// values involved, and the source location of the check that failed —
// the CLI's exit diagnostic per the external interface's requirement to
// name "the offending expression, file, line, and the values involved".
type Violation struct {
	Kind Kind
	Expr string
	Msg  string
	File string
	Line int
}

func (v *Violation) Error() string {
	loc := ""
	if v.File != "" {
		loc = fmt.Sprintf(" (%s:%d)", v.File, v.Line)
	}
	if v.Expr == "" {
		return fmt.Sprintf("%s: %s%s", v.Kind, v.Msg, loc)
	}
	return fmt.Sprintf("%s: %s: %s%s", v.Kind, v.Expr, v.Msg, loc)
}

// New builds a Violation, formatting Msg like fmt.Sprintf and recording
// the caller's source location.
func New(kind Kind, expr, format string, args ...any) *Violation {
	v := &Violation{Kind: kind, Expr: expr, Msg: fmt.Sprintf(format, args...)}
	if _, file, line, ok := runtime.Caller(1); ok {
		v.File, v.Line = file, line
	}
	return v
}

func newAt(kind Kind, expr, format string, args ...any) *Violation {
	v := &Violation{Kind: kind, Expr: expr, Msg: fmt.Sprintf(format, args...)}
	if _, file, line, ok := runtime.Caller(2); ok {
		v.File, v.Line = file, line
	}
	return v
}

// Require returns a Precondition Violation when cond is false, naming expr
// as the failed expression. Returns nil when cond holds.
func Require(cond bool, expr, format string, args ...any) error {
	if cond {
		return nil
	}
	return newAt(Precondition, expr, format, args...)
}

// RequireInput is Require for input errors (CLI/column-file boundary
// failures) rather than model-internal preconditions.
func RequireInput(cond bool, expr, format string, args ...any) error {
	if cond {
		return nil
	}
	return newAt(InputError, expr, format, args...)
}

// RequireMatch is Require for replay comparison failures.
func RequireMatch(cond bool, expr, format string, args ...any) error {
	if cond {
		return nil
	}
	return newAt(Mismatch, expr, format, args...)
}
