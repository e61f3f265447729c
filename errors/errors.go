package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseConvert  Phase = "convert"  // ownership conversions
	PhaseValue    Phase = "value"    // GValue and GVariant marshaling
	PhaseProperty Phase = "property" // property get/set
	PhaseSignal   Phase = "signal"   // signal connection
	PhaseClosure  Phase = "closure"  // closure registry and dispatch
	PhaseThread   Phase = "thread"   // thread affinity
	PhaseSettings Phase = "settings" // settings keys and schemas
	PhaseLoad     Phase = "load"     // native library loading
	PhaseNative   Phase = "native"   // native call reporting a failure
)

// Kind categorizes the error
type Kind string

const (
	KindTypeMismatch   Kind = "type_mismatch"
	KindNullHandle     Kind = "null_handle"
	KindReleased       Kind = "released"
	KindBorrowExpired  Kind = "borrow_expired"
	KindWrongThread    Kind = "wrong_thread"
	KindNotInitialized Kind = "not_initialized"
	KindNotFound       Kind = "not_found"
	KindReadOnly       Kind = "read_only"
	KindNotReadable    Kind = "not_readable"
	KindOutOfRange     Kind = "out_of_range"
	KindOverflow       Kind = "overflow"
	KindUnsupported    Kind = "unsupported"
	KindInvalidInput   Kind = "invalid_input"
	KindRegistration   Kind = "registration"
	KindAlreadyBound   Kind = "already_bound"
	KindMissingSymbol  Kind = "missing_symbol"
	KindNative         Kind = "native"
)

// Error is the structured error type used throughout the bridge
type Error struct {
	Value      any
	Cause      error
	Phase      Phase
	Kind       Kind
	GoType     string
	NativeType string
	Detail     string
	Path       []string
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

	if e.GoType != "" || e.NativeType != "" {
		b.WriteString(": ")
		switch {
		case e.GoType != "" && e.NativeType != "":
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
			b.WriteString(", native type ")
			b.WriteString(e.NativeType)
		case e.GoType != "":
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
		default:
			b.WriteString("native type ")
			b.WriteString(e.NativeType)
		}
	}

	if e.Detail != "" {
		if e.GoType != "" || e.NativeType != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
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

// Path sets the property or key path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// GoType sets the Go type name
func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

// NativeType sets the native type name
func (b *Builder) NativeType(t string) *Builder {
	b.err.NativeType = t
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

// Panic raises the constructed error as a programmer error
func (b *Builder) Panic() {
	panic(&b.err)
}

// Panic raises err as a programmer error. Callers that recover can
// inspect it with errors.As.
func Panic(err *Error) {
	panic(err)
}

// Convenience constructors for common error patterns

// TypeMismatch creates a type mismatch error
func TypeMismatch(phase Phase, path []string, goType, nativeType string) *Error {
	return &Error{
		Phase:      phase,
		Kind:       KindTypeMismatch,
		Path:       path,
		GoType:     goType,
		NativeType: nativeType,
	}
}

// NullHandle creates an error for a null pointer where a value is required
func NullHandle(phase Phase, nativeType string) *Error {
	return &Error{
		Phase:      phase,
		Kind:       KindNullHandle,
		NativeType: nativeType,
		Detail:     "unexpected null handle",
	}
}

// Released creates a use-after-release error
func Released(phase Phase, nativeType string) *Error {
	return &Error{
		Phase:      phase,
		Kind:       KindReleased,
		NativeType: nativeType,
		Detail:     "wrapper used after release",
	}
}

// BorrowExpired creates an error for a borrowed wrapper used outside its scope
func BorrowExpired(phase Phase, nativeType string) *Error {
	return &Error{
		Phase:      phase,
		Kind:       KindBorrowExpired,
		NativeType: nativeType,
		Detail:     "borrowed wrapper used after its scope ended",
	}
}

// WrongThread creates a thread affinity violation error
func WrongThread(nativeType string, owner, current int) *Error {
	return &Error{
		Phase:      PhaseThread,
		Kind:       KindWrongThread,
		NativeType: nativeType,
		Detail:     fmt.Sprintf("called from thread %d, main thread is %d", current, owner),
	}
}

// NotInitialized creates a not-initialized error
func NotInitialized(phase Phase, component string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotInitialized,
		Detail: fmt.Sprintf("%s has not been initialized", component),
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Path:   []string{name},
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// ReadOnly creates an error for a write to a non-writable property or key
func ReadOnly(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindReadOnly,
		Path:   path,
		Detail: detail,
	}
}

// OutOfRange creates an error for a value outside the allowed range
func OutOfRange(phase Phase, path []string, value any) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfRange,
		Path:   path,
		Detail: fmt.Sprintf("value %v is outside the allowed range", value),
		Value:  value,
	}
}

// Overflow creates an overflow error
func Overflow(phase Phase, path []string, value any, targetType string) *Error {
	return &Error{
		Phase:      phase,
		Kind:       KindOverflow,
		Path:       path,
		NativeType: targetType,
		Detail:     fmt.Sprintf("value %v overflows %s", value, targetType),
		Value:      value,
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
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

// Registration creates a registration error
func Registration(phase Phase, name string, cause error) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindRegistration,
		Detail: fmt.Sprintf("register %s", name),
		Cause:  cause,
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

// Load creates a library loading error
func Load(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindNative,
		Detail: detail,
		Cause:  cause,
	}
}

// NativeError is a GError converted at the boundary
type NativeError struct {
	Domain  string
	Message string
	Code    int32
}

func (e *NativeError) Error() string {
	return fmt.Sprintf("%s: %s (code %d)", e.Domain, e.Message, e.Code)
}

// Is matches another NativeError with the same domain and code
func (e *NativeError) Is(target error) bool {
	if t, ok := target.(*NativeError); ok {
		return e.Domain == t.Domain && e.Code == t.Code
	}
	return false
}

// MissingSymbol represents a single unresolved native symbol
type MissingSymbol struct {
	Library string // e.g., "libgio-2.0.so.0"
	Symbol  string // e.g., "g_settings_new"
}

// MissingSymbolsError is returned when a library lacks required functions
type MissingSymbolsError struct {
	Symbols []MissingSymbol
}

// NewMissingSymbolsError creates an error from a list of "library#symbol" strings
func NewMissingSymbolsError(symbols []string) *MissingSymbolsError {
	result := &MissingSymbolsError{
		Symbols: make([]MissingSymbol, 0, len(symbols)),
	}
	for _, sym := range symbols {
		lib, fn := parseSymbolKey(sym)
		result.Symbols = append(result.Symbols, MissingSymbol{
			Library: lib,
			Symbol:  fn,
		})
	}
	return result
}

func parseSymbolKey(key string) (library, symbol string) {
	lib, sym, found := strings.Cut(key, "#")
	if found {
		return lib, sym
	}
	return key, ""
}

func (e *MissingSymbolsError) Error() string {
	if len(e.Symbols) == 0 {
		return "[load] missing_symbol: no symbols specified"
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("missing %d native symbol(s):\n", len(e.Symbols)))

	// Group by library for cleaner output
	byLib := make(map[string][]string)
	var libOrder []string
	for _, s := range e.Symbols {
		if _, exists := byLib[s.Library]; !exists {
			libOrder = append(libOrder, s.Library)
		}
		byLib[s.Library] = append(byLib[s.Library], s.Symbol)
	}

	for _, lib := range libOrder {
		b.WriteString("\n  ")
		b.WriteString(lib)
		b.WriteString(":\n")
		for _, fn := range byLib[lib] {
			b.WriteString("    - ")
			b.WriteString(fn)
			b.WriteByte('\n')
		}
	}

	return strings.TrimSuffix(b.String(), "\n")
}

// Is reports whether target matches this error type
func (e *MissingSymbolsError) Is(target error) bool {
	_, ok := target.(*MissingSymbolsError)
	return ok
}
