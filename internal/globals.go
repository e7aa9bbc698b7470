package internal

import (
	"fmt"
	"math"
	"strings"
)

func defineGlobals(e *env, p IPrinter) {
	definePrint(e, p)
	defineMath(e)
	defineCond(e)
	defineTypeof(e)
}

func defineNative(e *env, name string, arity int, fn func(exec *exec, arguments []slateValue) (slateValue, error)) {
	e.define(name, &nativeFn{
		fnName:     name,
		arityValue: arity,
		callFn:     fn,
	})
}

func definePrint(e *env, p IPrinter) {
	defineNative(e, "print", variadic, func(exec *exec, arguments []slateValue) (slateValue, error) {
		if len(arguments) == 0 {
			return null, nil
		}
		var out strings.Builder
		for _, arg := range arguments {
			out.WriteString(arg.String())
		}
		if _, err := p.Print(out.String()); err != nil {
			return nil, &RuntimeError{Err: fmt.Errorf("%w: %v", ErrOutput, err)}
		}
		return null, nil
	})
}

func defineMath(e *env) {
	defineNative(e, "pow", 2, func(exec *exec, arguments []slateValue) (slateValue, error) {
		base, err := toNumber("pow", arguments[0])
		if err != nil {
			return nil, err
		}
		exp, err := toNumber("pow", arguments[1])
		if err != nil {
			return nil, err
		}
		return slateNumber(math.Pow(base, exp)), nil
	})
	defineUnaryMath(e, "trunc", math.Trunc)
	defineUnaryMath(e, "ceil", math.Ceil)
}

func defineUnaryMath(e *env, name string, fn func(float64) float64) {
	defineNative(e, name, 1, func(exec *exec, arguments []slateValue) (slateValue, error) {
		x, err := toNumber(name, arguments[0])
		if err != nil {
			return nil, err
		}
		return slateNumber(fn(x)), nil
	})
}

// cond is an ordinary call, both branches are already evaluated
func defineCond(e *env) {
	defineNative(e, "cond", 3, func(exec *exec, arguments []slateValue) (slateValue, error) {
		if truthy(arguments[0]) {
			return arguments[1], nil
		}
		return arguments[2], nil
	})
}

func defineTypeof(e *env) {
	defineNative(e, "typeof", 1, func(exec *exec, arguments []slateValue) (slateValue, error) {
		return slateString(arguments[0].typeName()), nil
	})
}

// defineHostBuiltin adapts a host function to the native calling convention
func defineHostBuiltin(e *env, name string, arity int, fn NativeFunc) {
	defineNative(e, name, arity, func(exec *exec, arguments []slateValue) (slateValue, error) {
		return fn(arguments)
	})
}
