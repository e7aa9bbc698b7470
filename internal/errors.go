package internal

import (
	"errors"
	"fmt"
	"strings"
)

// LexError is raised while scanning: an unrecognized character, a bad escape
// or an unterminated string.
type LexError struct {
	Line    int
	Message string
}

func (e *LexError) Error() string {
	return e.Message
}

// ParseError reports a grammar violation.
type ParseError struct {
	Line     int
	Expected string
	Found    string
}

func (e *ParseError) Error() string {
	if e.Found == "" {
		return e.Expected
	}
	return fmt.Sprintf("Expected %s, found %s", e.Expected, e.Found)
}

// NameError is raised when an identifier is not bound in any visible scope.
type NameError struct {
	Line        int
	Name        string
	Suggestions []string
}

func (e *NameError) Error() string {
	msg := fmt.Sprintf("%s: %s", errUndefinedVar.Error(), e.Name)
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean: %s?)", strings.Join(e.Suggestions, ", "))
	}
	return msg
}

// TypeError is raised when an operator or built-in receives a value it cannot
// work with.
type TypeError struct {
	Line      int
	Operation string
	Value     string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("Invalid operand for %s: %s", e.Operation, e.Value)
}

// RuntimeError wraps any other fatal condition raised during execution.
type RuntimeError struct {
	Line int
	Err  error
}

func (e *RuntimeError) Error() string {
	return e.Err.Error()
}

func (e *RuntimeError) Unwrap() error {
	return e.Err
}

// Runtime sentinels
var (
	ErrArity                 = errors.New("Invalid number of arguments")
	ErrReturnOutsideFunction = errors.New("Return outside function")
	ErrDivisionByZero        = errors.New("Division by zero")
	ErrStackOverflow         = errors.New("Stack overflow")
	ErrShadowsBuiltin        = errors.New("Function shadows a built-in")
	ErrOutput                = errors.New("Cannot write output")
	ErrNegativeShift         = errors.New("Negative shift count")
)

// errorLine extracts the source line from any engine error
func errorLine(err error) int {
	var (
		lexErr     *LexError
		parseErr   *ParseError
		nameErr    *NameError
		typeErr    *TypeError
		runtimeErr *RuntimeError
	)
	switch {
	case errors.As(err, &lexErr):
		return lexErr.Line
	case errors.As(err, &parseErr):
		return parseErr.Line
	case errors.As(err, &nameErr):
		return nameErr.Line
	case errors.As(err, &typeErr):
		return typeErr.Line
	case errors.As(err, &runtimeErr):
		return runtimeErr.Line
	}
	return 0
}

// IsSyntaxError reports whether err aborted the program before execution
func IsSyntaxError(err error) bool {
	var (
		lexErr   *LexError
		parseErr *ParseError
	)
	return errors.As(err, &lexErr) || errors.As(err, &parseErr)
}

// FormatError renders every error contained in err, one diagnostic per error
func FormatError(err error) string {
	var out strings.Builder
	for _, e := range unjoin(err) {
		fmt.Fprintf(&out, "Error on line %d\n\t%s\n", errorLine(e), e.Error())
	}
	return out.String()
}

func unjoin(err error) []error {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return joined.Unwrap()
	}
	return []error{err}
}

// withLine stamps line onto errors raised away from any token
func withLine(err error, line int) error {
	switch e := err.(type) {
	case *LexError:
		if e.Line == 0 {
			e.Line = line
		}
	case *ParseError:
		if e.Line == 0 {
			e.Line = line
		}
	case *NameError:
		if e.Line == 0 {
			e.Line = line
		}
	case *TypeError:
		if e.Line == 0 {
			e.Line = line
		}
	case *RuntimeError:
		if e.Line == 0 {
			e.Line = line
		}
	default:
		return &RuntimeError{Line: line, Err: err}
	}
	return err
}
