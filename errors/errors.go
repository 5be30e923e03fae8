package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseAlphabet Phase = "alphabet" // codec construction
	PhaseEncode   Phase = "encode"   // symbols to bits
	PhaseDecode   Phase = "decode"   // bits to symbols
	PhaseState    Phase = "state"    // house state changes and restores
	PhaseConfig   Phase = "config"   // CLI and house configuration
)

// Kind categorizes the error
type Kind string

const (
	KindInvalidSymbol    Kind = "invalid_symbol"
	KindInvalidBitVector Kind = "invalid_bit_vector"
	KindInvalidAlphabet  Kind = "invalid_alphabet"
	KindOutOfBounds      Kind = "out_of_bounds"
	KindInvalidData      Kind = "invalid_data"
	KindInvalidInput     Kind = "invalid_input"
)

// Error is the structured error type used throughout casita
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Detail string
	Path   []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the position of the offending value
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// InvalidSymbol creates an error for a symbol missing from the alphabet.
// Encoding such a symbol is a caller bug, not a learner mistake.
func InvalidSymbol(phase Phase, path []string, symbol rune) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidSymbol,
		Path:   path,
		Detail: fmt.Sprintf("symbol %q not in alphabet", symbol),
		Value:  symbol,
	}
}

// InvalidBitVector creates an error for a bit vector of the wrong length
// or one containing digits other than '0' and '1'.
func InvalidBitVector(phase Phase, path []string, bits string, detail string) *Error {
	preview := bits
	if len(preview) > 32 {
		preview = preview[:32] + "..."
	}
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidBitVector,
		Path:   path,
		Detail: fmt.Sprintf("%s: %q", detail, preview),
		Value:  bits,
	}
}

// InvalidAlphabet creates an alphabet construction error
func InvalidAlphabet(detail string) *Error {
	return &Error{
		Phase:  PhaseAlphabet,
		Kind:   KindInvalidAlphabet,
		Detail: detail,
	}
}

// OutOfBounds creates an out of bounds error
func OutOfBounds(phase Phase, path []string, index, length int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Path:   path,
		Detail: fmt.Sprintf("index %d out of bounds (length %d)", index, length),
		Value:  index,
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Path:   path,
		Detail: detail,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
