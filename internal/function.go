package internal

import "fmt"

type callable interface {
	slateValue
	name() string
	arity() int
	call(exec *exec, arguments []slateValue, site *token) slateValue
}

// variadic marks a native that accepts any number of arguments
const variadic = -1

type slateFunction struct {
	declaration *fnStmt
	calls       int
}

// NativeFunc is the signature of host-provided built-ins
type NativeFunc func(arguments []Value) (Value, error)

type nativeFn struct {
	fnName     string
	arityValue int
	callFn     func(exec *exec, arguments []slateValue) (slateValue, error)
}

func (f *slateFunction) typeName() string { return "function" }
func (n *nativeFn) typeName() string      { return "function" }

func (f *slateFunction) name() string { return f.declaration.name.lexeme }
func (n *nativeFn) name() string      { return n.fnName }

func (f *slateFunction) arity() int {
	return len(f.declaration.params)
}

func (n *nativeFn) arity() int {
	return n.arityValue
}

func (f *slateFunction) call(exec *exec, arguments []slateValue, site *token) slateValue {
	return exec.callFunction(f, arguments, site)
}

func (n *nativeFn) call(exec *exec, arguments []slateValue, site *token) slateValue {
	result, err := n.callFn(exec, arguments)
	if err != nil {
		exec.fail(withLine(err, site.line))
	}
	if result == nil {
		return null
	}
	return result
}

func (f *slateFunction) String() string {
	return fmt.Sprintf("<fn %s>", f.name())
}

func (f *slateFunction) Repr() string {
	return f.String()
}

func (n *nativeFn) String() string {
	return fmt.Sprintf("<fn %s native>", n.fnName)
}

func (n *nativeFn) Repr() string {
	return n.String()
}
