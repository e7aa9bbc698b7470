package internal

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

type signalKind int

const (
	sigReturn signalKind = iota
	sigBreak
	sigContinue
)

// signal carries return, break and continue up the statement chain
type signal struct {
	kind    signalKind
	keyword *token
	value   slateValue
}

// runtimeFailure is the panic payload used to unwind out of the evaluator
type runtimeFailure struct {
	err error
}

type exec struct {
	state *interpreterState

	core    *env
	globals *env
	env     *env

	logger   logrus.FieldLogger
	depth    int
	maxDepth int
	autoMain bool
}

func (e *exec) interpret() (err error) {
	defer func() {
		if r := recover(); r != nil {
			failure, ok := r.(runtimeFailure)
			if !ok {
				panic(r)
			}
			err = failure.err
		}
	}()

	e.hoist()

	for _, s := range e.state.stmts {
		if sig := e.execute(s); sig != nil {
			e.fail(&RuntimeError{Line: sig.keyword.line, Err: ErrReturnOutsideFunction})
		}
	}

	if e.autoMain {
		e.invokeMain()
	}
	return nil
}

// hoist binds every def before the first statement runs
func (e *exec) hoist() {
	count := 0
	for _, s := range e.state.stmts {
		fn, ok := s.(*fnStmt)
		if !ok {
			continue
		}
		if _, builtin := e.core.lookup(fn.name.lexeme); builtin {
			e.fail(&RuntimeError{
				Line: fn.name.line,
				Err:  fmt.Errorf("%w: %s", ErrShadowsBuiltin, fn.name.lexeme),
			})
		}
		e.globals.define(fn.name.lexeme, &slateFunction{declaration: fn})
		count++
	}
	e.logger.WithField("functions", count).Debug("hoisted")
}

func (e *exec) invokeMain() {
	value, ok := e.globals.lookup("main")
	if !ok {
		return
	}
	fn, ok := value.(*slateFunction)
	if !ok || fn.arity() != 0 || fn.calls > 0 {
		return
	}
	e.logger.Debug("main invoked")
	e.callFunction(fn, nil, fn.declaration.name)
}

func (e *exec) fail(err error) {
	panic(runtimeFailure{err: err})
}

func (e *exec) execute(s stmt) *signal {
	sig, _ := s.accept(e).(*signal)
	return sig
}

func (e *exec) evaluate(ex expr) slateValue {
	value, _ := ex.accept(e).(slateValue)
	return value
}

func (e *exec) callFunction(fn *slateFunction, arguments []slateValue, site *token) slateValue {
	if e.depth >= e.maxDepth {
		e.fail(&RuntimeError{
			Line: site.line,
			Err:  fmt.Errorf("%w: max call depth is %d", ErrStackOverflow, e.maxDepth),
		})
	}
	e.depth++
	defer func() {
		e.depth--
	}()
	fn.calls++

	e.logger.WithFields(logrus.Fields{
		"fn":    fn.name(),
		"depth": e.depth,
		"line":  site.line,
	}).Trace("call")

	frame := newEnv(e.globals)
	for i, param := range fn.declaration.params {
		frame.define(param.lexeme, arguments[i])
	}

	sig := e.executeBlock(fn.declaration.body.stmts, frame)
	if sig != nil && sig.kind == sigReturn && sig.value != nil {
		return sig.value
	}
	return null
}

func (e *exec) executeBlock(stmts []stmt, env *env) *signal {
	previous := e.env
	defer func() {
		e.env = previous
	}()
	e.env = env
	return e.run(stmts)
}

// run executes stmts in the current scope, stopping at the first signal
func (e *exec) run(stmts []stmt) *signal {
	for _, s := range stmts {
		if sig := e.execute(s); sig != nil {
			return sig
		}
	}
	return nil
}

func (e *exec) visitExprStmt(stmt *exprStmt) R {
	e.evaluate(stmt.expression)
	return nil
}

// visitFnStmt is a no-op, functions are bound by hoist
func (e *exec) visitFnStmt(stmt *fnStmt) R {
	return nil
}

func (e *exec) visitIfStmt(stmt *ifStmt) R {
	for _, branch := range stmt.branches {
		if truthy(e.evaluate(branch.condition)) {
			return e.run(branch.body.stmts)
		}
	}
	if stmt.elseBranch != nil {
		return e.run(stmt.elseBranch.stmts)
	}
	return nil
}

func (e *exec) visitClassicForStmt(stmt *classicForStmt) R {
	for e.evaluate(stmt.initializer); truthy(e.evaluate(stmt.condition)); e.evaluate(stmt.increment) {
		if sig := e.run(stmt.body.stmts); sig != nil {
			if sig.kind == sigBreak {
				break
			}
			if sig.kind == sigReturn {
				return sig
			}
		}
	}
	return nil
}

func (e *exec) visitWhileStmt(stmt *whileStmt) R {
	for truthy(e.evaluate(stmt.condition)) {
		if sig := e.run(stmt.body.stmts); sig != nil {
			if sig.kind == sigBreak {
				break
			}
			if sig.kind == sigReturn {
				return sig
			}
		}
	}
	return nil
}

func (e *exec) visitReturnStmt(stmt *returnStmt) R {
	sig := &signal{kind: sigReturn, keyword: stmt.keyword, value: null}
	if stmt.value != nil {
		sig.value = e.evaluate(stmt.value)
	}
	return sig
}

func (e *exec) visitBreakStmt(stmt *breakStmt) R {
	return &signal{kind: sigBreak, keyword: stmt.keyword}
}

func (e *exec) visitContinueStmt(stmt *continueStmt) R {
	return &signal{kind: sigContinue, keyword: stmt.keyword}
}

func (e *exec) visitBlockStmt(stmt *blockStmt) R {
	return e.run(stmt.stmts)
}

func (e *exec) visitAssignExpr(expr *assignExpr) R {
	value := e.evaluate(expr.value)
	e.env.assign(expr.name, value)
	return value
}

func (e *exec) visitCompoundAssignExpr(expr *compoundAssignExpr) R {
	current, err := e.env.get(expr.name)
	if err != nil {
		e.fail(err)
	}
	right := e.evaluate(expr.value)
	apply := binaryOperations[compoundOperators[expr.operator.token]]
	value, err := apply(current, right)
	if err != nil {
		e.fail(withLine(err, expr.operator.line))
	}
	e.env.assign(expr.name, value)
	return value
}

func (e *exec) visitBinaryExpr(expr *binaryExpr) R {
	left := e.evaluate(expr.left)
	right := e.evaluate(expr.right)
	apply, ok := binaryOperations[expr.operator.token]
	if !ok {
		e.fail(&TypeError{Line: expr.operator.line, Operation: expr.operator.lexeme, Value: left.Repr()})
	}
	value, err := apply(left, right)
	if err != nil {
		e.fail(withLine(err, expr.operator.line))
	}
	return value
}

func (e *exec) visitUnaryExpr(expr *unaryExpr) R {
	value := e.evaluate(expr.right)
	switch expr.operator.token {
	case tkBang:
		return slateBool(!truthy(value))
	case tkMinus, tkPlus:
		n, err := toNumber(expr.operator.lexeme, value)
		if err != nil {
			e.fail(withLine(err, expr.operator.line))
		}
		if expr.operator.token == tkMinus {
			n = -n
		}
		return slateNumber(n)
	}
	e.fail(&TypeError{Line: expr.operator.line, Operation: expr.operator.lexeme, Value: value.Repr()})
	return nil
}

func (e *exec) visitCallExpr(expr *callExpr) R {
	callee := e.evaluate(expr.callee)
	arguments := make([]slateValue, len(expr.arguments))
	for i := range expr.arguments {
		arguments[i] = e.evaluate(expr.arguments[i])
	}

	fn, isFn := callee.(callable)
	if !isFn {
		e.fail(&RuntimeError{
			Line: expr.paren.line,
			Err:  fmt.Errorf("%w: %s", errOnlyFunction, callee.Repr()),
		})
	}

	if arity := fn.arity(); arity != variadic && arity != len(arguments) {
		e.fail(&RuntimeError{
			Line: expr.paren.line,
			Err:  fmt.Errorf("%w: %s expects %d, got %d", ErrArity, fn.name(), arity, len(arguments)),
		})
	}

	return fn.call(e, arguments, expr.paren)
}

func (e *exec) visitGroupingExpr(expr *groupingExpr) R {
	return e.evaluate(expr.expression)
}

func (e *exec) visitLiteralExpr(expr *literalExpr) R {
	return expr.value
}

func (e *exec) visitVariableExpr(expr *variableExpr) R {
	value, err := e.env.get(expr.name)
	if err != nil {
		e.fail(err)
	}
	return value
}
