package pdf

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures of a page extraction.
type ErrorKind int

const (
	// TypeKind means the page specification was not a string.
	TypeKind ErrorKind = iota + 1
	// FormatKind means a token of the page specification is neither a number nor a range.
	FormatKind
	// CredentialKind means the document is encrypted and the password was rejected or missing.
	CredentialKind
)

func (k ErrorKind) String() string {
	switch k {
	case TypeKind:
		return "type"
	case FormatKind:
		return "format"
	case CredentialKind:
		return "credential"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error is returned for every classified failure. Match it with errors.Is
// against ErrType, ErrFormat or ErrCredential.
type Error struct {
	Kind ErrorKind
	Msg  string
	Err  error
}

var (
	ErrType       = &Error{Kind: TypeKind}
	ErrFormat     = &Error{Kind: FormatKind}
	ErrCredential = &Error{Kind: CredentialKind}

	// ErrPageRange is wrapped when a selected page does not exist in the document.
	ErrPageRange = errors.New("page out of range")

	// ErrNoPages is returned when a page specification selects no pages at all.
	ErrNoPages = errors.New("no pages selected")
)

func (e *Error) Error() string {
	if e.Msg == "" {
		return e.Kind.String() + " error"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

func newError(kind ErrorKind, err error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: err}
}
