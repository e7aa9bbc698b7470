package internal

import (
	"fmt"
	"math"
)

type operatorApply func(left, right slateValue) (slateValue, error)

var binaryOperations = map[tokenType]operatorApply{
	tkPlus:            arithmetic("+", func(x, y float64) float64 { return x + y }),
	tkMinus:           arithmetic("-", func(x, y float64) float64 { return x - y }),
	tkStar:            arithmetic("*", func(x, y float64) float64 { return x * y }),
	tkSlash:           divide,
	tkMod:             remainder,
	tkEqualEqual:      func(x, y slateValue) (slateValue, error) { return slateBool(looseEquals(x, y)), nil },
	tkBangEqual:       func(x, y slateValue) (slateValue, error) { return slateBool(!looseEquals(x, y)), nil },
	tkEqualEqualEqual: func(x, y slateValue) (slateValue, error) { return slateBool(strictEquals(x, y)), nil },
	tkBangEqualEqual:  func(x, y slateValue) (slateValue, error) { return slateBool(!strictEquals(x, y)), nil },
	tkLess: ordering("<",
		func(x, y float64) bool { return x < y },
		func(x, y string) bool { return x < y }),
	tkLessEqual: ordering("<=",
		func(x, y float64) bool { return x <= y },
		func(x, y string) bool { return x <= y }),
	tkGreater: ordering(">",
		func(x, y float64) bool { return x > y },
		func(x, y string) bool { return x > y }),
	tkGreaterEqual: ordering(">=",
		func(x, y float64) bool { return x >= y },
		func(x, y string) bool { return x >= y }),
	tkAnd: func(x, y slateValue) (slateValue, error) { return slateBool(truthy(x) && truthy(y)), nil },
	tkOr:  func(x, y slateValue) (slateValue, error) { return slateBool(truthy(x) || truthy(y)), nil },
	tkCaretCaret: func(x, y slateValue) (slateValue, error) {
		return slateBool(truthy(x) != truthy(y)), nil
	},
	tkAmp:            bitwise("&", func(x, y int64) int64 { return x & y }),
	tkPipe:           bitwise("|", func(x, y int64) int64 { return x | y }),
	tkCaret:          bitwise("^", func(x, y int64) int64 { return x ^ y }),
	tkLessLess:       shift("<<", func(x int64, n uint64) int64 { return x << n }),
	tkGreaterGreater: shift(">>", func(x int64, n uint64) int64 { return x >> n }),
}

// compoundOperators maps a compound assignment to the binary operator it applies
var compoundOperators = map[tokenType]tokenType{
	tkPlusEqual:  tkPlus,
	tkMinusEqual: tkMinus,
	tkStarEqual:  tkStar,
	tkSlashEqual: tkSlash,
	tkModEqual:   tkMod,

	tkAmpEqual:            tkAmp,
	tkPipeEqual:           tkPipe,
	tkCaretEqual:          tkCaret,
	tkLessLessEqual:       tkLessLess,
	tkGreaterGreaterEqual: tkGreaterGreater,
}

// toNumber applies the numeric coercion rule
func toNumber(operation string, value slateValue) (float64, error) {
	switch v := value.(type) {
	case slateNumber:
		return float64(v), nil
	case slateString:
		if n, ok := parseNumber(v); ok {
			return float64(n), nil
		}
	}
	return 0, &TypeError{Operation: operation, Value: value.Repr()}
}

// toInteger coerces value to a number and truncates it toward zero
func toInteger(operation string, value slateValue) (int64, error) {
	n, err := toNumber(operation, value)
	if err != nil {
		return 0, err
	}
	n = math.Trunc(n)
	if math.IsNaN(n) || n < math.MinInt64 || n >= math.MaxInt64 {
		return 0, &TypeError{Operation: operation, Value: value.Repr()}
	}
	return int64(n), nil
}

func bitwise(operation string, fn func(x, y int64) int64) operatorApply {
	return func(left, right slateValue) (slateValue, error) {
		x, err := toInteger(operation, left)
		if err != nil {
			return nil, err
		}
		y, err := toInteger(operation, right)
		if err != nil {
			return nil, err
		}
		return slateNumber(fn(x, y)), nil
	}
}

// shift rejects negative counts, counts past 63 shift every bit out
func shift(operation string, fn func(x int64, n uint64) int64) operatorApply {
	return func(left, right slateValue) (slateValue, error) {
		x, err := toInteger(operation, left)
		if err != nil {
			return nil, err
		}
		n, err := toInteger(operation, right)
		if err != nil {
			return nil, err
		}
		if n < 0 {
			return nil, &RuntimeError{Err: fmt.Errorf("%w: %d", ErrNegativeShift, n)}
		}
		return slateNumber(fn(x, uint64(n))), nil
	}
}

func arithmetic(operation string, fn func(x, y float64) float64) operatorApply {
	return func(left, right slateValue) (slateValue, error) {
		x, err := toNumber(operation, left)
		if err != nil {
			return nil, err
		}
		y, err := toNumber(operation, right)
		if err != nil {
			return nil, err
		}
		return slateNumber(fn(x, y)), nil
	}
}

func divide(left, right slateValue) (slateValue, error) {
	x, err := toNumber("/", left)
	if err != nil {
		return nil, err
	}
	y, err := toNumber("/", right)
	if err != nil {
		return nil, err
	}
	if y == 0 {
		return nil, &RuntimeError{Err: ErrDivisionByZero}
	}
	return slateNumber(x / y), nil
}

// remainder truncates both operands to integers first
func remainder(left, right slateValue) (slateValue, error) {
	x, err := toNumber("%", left)
	if err != nil {
		return nil, err
	}
	y, err := toNumber("%", right)
	if err != nil {
		return nil, err
	}
	if math.Trunc(y) == 0 {
		return nil, &RuntimeError{Err: ErrDivisionByZero}
	}
	return slateNumber(math.Mod(math.Trunc(x), math.Trunc(y))), nil
}

func ordering(operation string, numbers func(x, y float64) bool, texts func(x, y string) bool) operatorApply {
	return func(left, right slateValue) (slateValue, error) {
		switch x := left.(type) {
		case slateNumber:
			if y, ok := right.(slateNumber); ok {
				return slateBool(numbers(float64(x), float64(y))), nil
			}
		case slateString:
			if y, ok := right.(slateString); ok {
				return slateBool(texts(string(x), string(y))), nil
			}
		}
		offending := right
		if _, ok := left.(slateNumber); !ok {
			if _, ok := left.(slateString); !ok {
				offending = left
			}
		}
		return nil, &TypeError{Operation: operation, Value: offending.Repr()}
	}
}

func strictEquals(left, right slateValue) bool {
	switch x := left.(type) {
	case slateNumber:
		y, ok := right.(slateNumber)
		return ok && x == y
	case slateString:
		y, ok := right.(slateString)
		return ok && x == y
	case slateBool:
		y, ok := right.(slateBool)
		return ok && x == y
	case slateNull:
		_, ok := right.(slateNull)
		return ok
	case *slateFunction:
		y, ok := right.(*slateFunction)
		return ok && x == y
	case *nativeFn:
		y, ok := right.(*nativeFn)
		return ok && x == y
	}
	return false
}

// looseEquals brings both sides to a common type before comparing
func looseEquals(left, right slateValue) bool {
	if strictEquals(left, right) {
		return true
	}
	x, okX := looseNumber(left)
	y, okY := looseNumber(right)
	if !okX || !okY {
		return false
	}
	// two strings already compared textually above
	if _, isStr := left.(slateString); isStr {
		if _, isStr := right.(slateString); isStr {
			return false
		}
	}
	return x == y
}

func looseNumber(value slateValue) (float64, bool) {
	switch v := value.(type) {
	case slateNumber:
		return float64(v), true
	case slateString:
		n, ok := parseNumber(v)
		return float64(n), ok
	case slateBool:
		if v {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}
