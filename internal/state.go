package internal

import (
	"errors"
	"fmt"
)

// interpreterState stores the state of a interpreter
type interpreterState struct {
	source string
	tokens []token
	stmts  []stmt
	errors []error
}

func newInterpreterState(source string) *interpreterState {
	return &interpreterState{source: source, errors: make([]error, 0)}
}

// stopParsing is the panic payload used to unwind out of the parser
type stopParsing struct{}

func (s *interpreterState) setError(err error) {
	s.errors = append(s.errors, err)
}

func (s *interpreterState) fatalError(err error) {
	s.setError(err)
	panic(stopParsing{})
}

// Valid returns true if the interpreter is in a valid states else false
func (s *interpreterState) Valid() bool {
	return len(s.errors) == 0
}

// err joins every collected error, nil when the state is valid
func (s *interpreterState) err() error {
	if s.Valid() {
		return nil
	}
	if len(s.errors) == 1 {
		return s.errors[0]
	}
	return errors.Join(s.errors...)
}

// Lexer errors
var errIllegalChar = errors.New("Illegal character")
var errUnclosedString = errors.New("Closing \" was expected")
var errInvalidEscape = errors.New("Invalid escape sequence")
var errMalformedNumber = errors.New("Malformed number")

func lexError(line int, err error, detail string) *LexError {
	msg := err.Error()
	if detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, detail)
	}
	return &LexError{Line: line, Message: msg}
}

// Parser expectations
const (
	expExpression   = "expression"
	expSemicolon    = "';' after statement"
	expEnd          = "'end'"
	expLeftParen    = "'('"
	expRightParen   = "')'"
	expComma        = "','"
	expFunctionName = "function name"
	expParam        = "parameter name"
	expTarget       = "assignment target"
)

// Parser semantic errors, reported without a found token
var errNestedDef = errors.New("Nested 'def's are not allowed")
var errDuplicateDef = errors.New("Function was already defined")
var errOnlyAllowedInsideLoop = errors.New("Only allowed inside a loop")
var errMaxArguments = errors.New("Max number of arguments is 255")
var errMaxParameters = errors.New("Max number of parameters is 255")

// Runtime errors
var errUndefinedVar = errors.New("Undefined variable")
var errOnlyFunction = errors.New("Can only call functions")
