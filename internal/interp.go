package internal

//go:generate sh -c "go run ../cmd/ast Stmt | gofmt > stmt.go"
//go:generate sh -c "go run ../cmd/ast Expr | gofmt > expr.go"

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

const (
	// DefaultMaxCallDepth bounds user function recursion
	DefaultMaxCallDepth = 10000
	// MaxCallDepthLimit is the deepest recursion the evaluator allows. Deeper
	// limits would exhaust the goroutine stack before the depth check fires.
	MaxCallDepthLimit = 100000
)

// IPrinter printer interface
type IPrinter interface {
	Print(a ...interface{}) (n int, err error)
	Fprintf(w io.Writer, format string, a ...interface{}) (n int, err error)
}

// Option configures an Interpreter
type Option func(*Interpreter)

// WithLogger sets the logger used for phase and call tracing
func WithLogger(logger logrus.FieldLogger) Option {
	return func(i *Interpreter) {
		i.logger = logger
	}
}

// WithMaxCallDepth sets how deep user functions may recurse, capped at
// MaxCallDepthLimit. Non-positive depths keep the default.
func WithMaxCallDepth(depth int) Option {
	return func(i *Interpreter) {
		switch {
		case depth > MaxCallDepthLimit:
			i.maxDepth = MaxCallDepthLimit
		case depth > 0:
			i.maxDepth = depth
		}
	}
}

// WithAutoMain toggles calling a zero parameter main that the program never called
func WithAutoMain(enabled bool) Option {
	return func(i *Interpreter) {
		i.autoMain = enabled
	}
}

// WithBuiltin registers a host function next to the standard built-ins.
// An arity of -1 accepts any number of arguments.
func WithBuiltin(name string, arity int, fn NativeFunc) Option {
	return func(i *Interpreter) {
		i.builtins = append(i.builtins, hostBuiltin{name: name, arity: arity, fn: fn})
	}
}

type hostBuiltin struct {
	name  string
	arity int
	fn    NativeFunc
}

// Interpreter runs programs, each on a fresh global scope
type Interpreter struct {
	printer  IPrinter
	logger   logrus.FieldLogger
	maxDepth int
	autoMain bool
	builtins []hostBuiltin
}

// NewInterpreter builds an interpreter writing program output to p
func NewInterpreter(p IPrinter, opts ...Option) *Interpreter {
	discard := logrus.New()
	discard.SetOutput(io.Discard)
	i := &Interpreter{
		printer:  p,
		logger:   discard,
		maxDepth: DefaultMaxCallDepth,
		autoMain: true,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

func (i *Interpreter) load(source string) (*interpreterState, error) {
	state := newInterpreterState(source)

	lexer := &lexer{
		line:  1,
		state: state,
	}
	lexer.scan()
	if !state.Valid() {
		return nil, state.err()
	}
	i.logger.WithField("tokens", len(state.tokens)).Debug("lexed")

	parser := &parser{
		state: state,
	}
	parser.parse()
	if !state.Valid() {
		return nil, state.err()
	}
	i.logger.WithField("statements", len(state.stmts)).Debug("parsed")

	return state, nil
}

// Run lexes, parses and executes source. Output printed before a runtime
// error is kept.
func (i *Interpreter) Run(source string) error {
	state, err := i.load(source)
	if err != nil {
		return err
	}

	core := newEnv(nil)
	defineGlobals(core, i.printer)
	for _, b := range i.builtins {
		defineHostBuiltin(core, b.name, b.arity, b.fn)
	}
	globals := newEnv(core)

	e := &exec{
		state:    state,
		core:     core,
		globals:  globals,
		env:      globals,
		logger:   i.logger,
		maxDepth: i.maxDepth,
		autoMain: i.autoMain,
	}
	return e.interpret()
}

// Tree parses source and renders its syntax tree
func (i *Interpreter) Tree(source string) (string, error) {
	state, err := i.load(source)
	if err != nil {
		return "", err
	}
	return state.PrintTree(), nil
}

// RunSourceWithPrinter runs source code on a fresh interpreter instance,
// reporting any error through p
func RunSourceWithPrinter(source string, p IPrinter, opts ...Option) error {
	err := NewInterpreter(p, opts...).Run(source)
	if err != nil {
		p.Fprintf(os.Stderr, "%s", FormatError(err))
	}
	return err
}
