package errs

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"syscall"
)

type Kind int

const (
	Unhandled Kind = iota
	Parse
	NotFound
	Permission
	Timeout
	InvalidArgument
)

func (k Kind) String() string {
	switch k {
	case Parse:
		return "parse"
	case NotFound:
		return "not found"
	case Permission:
		return "permission"
	case Timeout:
		return "timeout"
	case InvalidArgument:
		return "invalid argument"
	}
	return "unhandled"
}

// Error is a failure tagged with its kind. Op is the command name or
// marker printed before the message.
type Error struct {
	Kind Kind
	Op   string
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Op == "" {
		return e.Msg
	}
	return e.Op + ": " + e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, op string, format string, args ...any) *Error {
	return &Error{
		Kind: kind,
		Op:   op,
		Msg:  fmt.Sprintf(format, args...),
	}
}

func NewNotFound(op string, format string, args ...any) *Error {
	return New(NotFound, op, format, args...)
}

func NewInvalid(op string, format string, args ...any) *Error {
	return New(InvalidArgument, op, format, args...)
}

func NewPermission(op string, format string, args ...any) *Error {
	return New(Permission, op, format, args...)
}

// MissingOperand is the conventional arity failure of a command.
func MissingOperand(op string) *Error {
	return New(InvalidArgument, op, "missing operand")
}

// KindOf returns the kind of the first tagged error in the chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unhandled
}

func Is(err error, kind Kind) bool {
	if err == nil {
		return false
	}
	return KindOf(err) == kind
}

// FromOS tags an error returned by the os package. path is printed before the
// POSIX-style description.
func FromOS(op string, path string, err error) *Error {
	var tagged *Error
	if errors.As(err, &tagged) {
		return tagged
	}
	ret := &Error{
		Kind: Unhandled,
		Op:   op,
		Err:  err,
	}
	var desc string
	switch {
	case errors.Is(err, fs.ErrNotExist):
		ret.Kind = NotFound
		desc = "No such file or directory"
	case errors.Is(err, fs.ErrPermission):
		ret.Kind = Permission
		desc = "Permission denied"
	case errors.Is(err, syscall.ENOTEMPTY):
		// ENOTEMPTY also matches fs.ErrExist
		ret.Kind = InvalidArgument
		desc = "Directory not empty"
	case errors.Is(err, fs.ErrExist):
		ret.Kind = InvalidArgument
		desc = "File exists"
	case errors.Is(err, syscall.ENOTDIR):
		ret.Kind = InvalidArgument
		desc = "Not a directory"
	default:
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			desc = pathErr.Err.Error()
		} else {
			desc = err.Error()
		}
	}
	if path == "" {
		ret.Msg = desc
	} else {
		ret.Msg = path + ": " + desc
	}
	return ret
}

// Format renders err as the text shown to the user. Joined errors are
// rendered one per line; untagged errors get the Error: marker.
func Format(err error) string {
	if err == nil {
		return ""
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var lines []string
		for _, e := range joined.Unwrap() {
			if line := Format(e); line != "" {
				lines = append(lines, line)
			}
		}
		return strings.Join(lines, "\n")
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Error()
	}
	return "Error: " + err.Error()
}
