package internal

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
)

type testPrinter struct {
	printed     string
	diagnostics string
}

func (t *testPrinter) Print(a ...interface{}) (n int, err error) {
	s := fmt.Sprint(a...)
	t.printed += s
	return len(s), nil
}

func (t *testPrinter) Fprintf(w io.Writer, format string, a ...interface{}) (n int, err error) {
	s := fmt.Sprintf(format, a...)
	t.diagnostics += s
	return len(s), nil
}

func (t *testPrinter) Equals(p string) bool {
	if t.printed == p {
		t.Reset()
		return true
	}
	return false
}

func (t *testPrinter) Reset() {
	t.printed = ""
	t.diagnostics = ""
}

func checkExpression(t *testing.T, exp string, result ...string) {
	t.Helper()
	source := "print(" + exp + ");"
	tp := &testPrinter{}
	RunSourceWithPrinter(source, tp)
	any := false
	for _, r := range result {
		if tp.Equals(r) {
			any = true
			break
		}
	}
	if !any {
		t.Errorf(
			"Error on: \n%s\n\tResult should be equal to %q instead of %q%s",
			exp,
			result,
			tp.printed,
			tp.diagnostics,
		)
	}
}

func checkErrorMsg(t *testing.T, source string, errorMsg string, line int) {
	t.Helper()
	result := fmt.Sprintf("Error on line %d\n\t%s\n", line, errorMsg)

	tp := &testPrinter{}
	RunSourceWithPrinter(source, tp)
	if tp.diagnostics != result {
		t.Errorf(
			"\nSource:\n----\n%s\n----\nExpected:\n----\n%s----\nFound:\n----\n%s----",
			source,
			result,
			tp.diagnostics,
		)
	}
}

func checkStatements(t *testing.T, code string, resultVar string, result string) {
	t.Helper()
	source := code + "\nprint(" + resultVar + ");"
	tp := &testPrinter{}
	RunSourceWithPrinter(source, tp)
	if !tp.Equals(result) {
		t.Errorf(
			"Error on: \n%s\n\t%s should be equal to %q instead of %q%s",
			code,
			resultVar,
			result,
			tp.printed,
			tp.diagnostics,
		)
	}
}

func checkOutput(t *testing.T, source string, output string, opts ...Option) error {
	t.Helper()
	tp := &testPrinter{}
	err := NewInterpreter(tp, opts...).Run(source)
	if tp.printed != output {
		t.Errorf(
			"\nSource:\n----\n%s\n----\nExpected output %q, found %q",
			source,
			output,
			tp.printed,
		)
	}
	return err
}

func TestExpressions(t *testing.T) {

	// Arithmethic
	{
		checkExpression(t, "1", "1")
		checkExpression(t, "-1", "-1")
		checkExpression(t, "+1", "1")
		checkExpression(t, "1 + 2 + 3", "6")
		checkExpression(t, "8 - 2", "6")
		checkExpression(t, "1 * 2 * 3", "6")
		checkExpression(t, "12 / 2", "6")
		checkExpression(t, "1 / 4", "0.25")
		checkExpression(t, "1 + 2 * 3", "7")
		checkExpression(t, "(1 + 2) * 3", "9")
		checkExpression(t, "(3 * 2) + (3 * 2)", "12")
		checkExpression(t, "0.1 + 0.2", "0.30000000000000004")

		// Remainder truncates first
		checkExpression(t, "7 % 3", "1")
		checkExpression(t, "7.9 % 3.2", "1")
		checkExpression(t, "-7 % 3", "-1")

		// Number literals
		checkExpression(t, "1e3", "1000")
		checkExpression(t, "2.5E-3", "0.0025")
		checkExpression(t, "1e+06", "1e+06")
		checkExpression(t, ".5", "0.5")
		checkExpression(t, "1e21", "1e+21")
		checkExpression(t, "100", "100")
	}

	// Coercion
	{
		checkExpression(t, `"3" + 1`, "4")
		checkExpression(t, `"2" * "3"`, "6")
		checkExpression(t, `" 5 " + 1`, "6")
		checkExpression(t, `+"4"`, "4")
		checkExpression(t, `-"2.5"`, "-2.5")
		checkExpression(t, `trunc("3" + 0.14)`, "3")
		checkExpression(t, `ceil("4.15")`, "5")
		checkExpression(t, `pow(3, 2)`, "9")
		checkExpression(t, `pow("2", "10")`, "1024")
		checkExpression(t, `trunc(-2.7)`, "-2")
	}

	// Logical
	{
		checkExpression(t, "true", "true")
		checkExpression(t, "false", "false")
		checkExpression(t, "null", "null")

		checkExpression(t, "!true", "false")
		checkExpression(t, "!false", "true")
		checkExpression(t, "!0", "true")
		checkExpression(t, `!""`, "true")
		checkExpression(t, "!null", "true")
		checkExpression(t, `!"a"`, "false")
		checkExpression(t, "!print", "false")

		checkExpression(t, "true && true", "true")
		checkExpression(t, "true && false", "false")
		checkExpression(t, "1 && 2", "true")
		checkExpression(t, "0 || null", "false")
		checkExpression(t, `null || "x"`, "true")
		checkExpression(t, "false || true && false", "false")
	}

	// Strings
	{
		checkExpression(t, `"test"`, "test")
		checkExpression(t, `"a\tb"`, "a\tb")
		checkExpression(t, `"\"q\""`, `"q"`)
		checkExpression(t, `"a\\b\/c"`, `a\b/c`)
		checkExpression(t, `""`, "")
	}

	// Equality
	{
		checkExpression(t, "1 === 1", "true")
		checkExpression(t, `1 === "1"`, "false")
		checkExpression(t, `1 == "1"`, "true")
		checkExpression(t, `1 !== "1"`, "true")
		checkExpression(t, `1 != "1"`, "false")
		checkExpression(t, `"1.0" == 1`, "true")
		checkExpression(t, `"1" == "1.0"`, "false")
		checkExpression(t, `1 == "abc"`, "false")
		checkExpression(t, "true == 1", "true")
		checkExpression(t, "false == 0", "true")
		checkExpression(t, `true == "1"`, "true")
		checkExpression(t, "true === 1", "false")
		checkExpression(t, "null == null", "true")
		checkExpression(t, "null === null", "true")
		checkExpression(t, "null == 0", "false")
		checkExpression(t, "null == false", "false")
		checkExpression(t, "print == print", "true")
		checkExpression(t, "print === print", "true")
		checkExpression(t, "pow == print", "false")
		checkExpression(t, "2 * 2 == 8 - 4", "true")
	}

	// Ordering
	{
		checkExpression(t, `"Hola" >= "Hala"`, "true")
		checkExpression(t, `"a" < "b"`, "true")
		checkExpression(t, `"a" > "b"`, "false")
		checkExpression(t, `"a" <= "a"`, "true")
		checkExpression(t, `"10" < "9"`, "true")
		checkExpression(t, "10 > 5", "true")
		checkExpression(t, "10 < 5", "false")
		checkExpression(t, "5 >= 5", "true")
		checkExpression(t, "4 >= 5", "false")
		checkExpression(t, "5 <= 5", "true")
	}

	// Bitwise operators truncate their operands to integers
	{
		checkExpression(t, "6 & 3", "2")
		checkExpression(t, "6 | 3", "7")
		checkExpression(t, "6 ^ 3", "5")
		checkExpression(t, "1 << 2", "4")
		checkExpression(t, "-8 >> 1", "-4")
		checkExpression(t, "1 << 64", "0")
		checkExpression(t, "7.9 & 3.2", "3")
		checkExpression(t, `"12" | 1`, "13")
		checkExpression(t, "(1 | 2) == 3", "true")
		checkExpression(t, "1 << 1 + 1", "4")
		checkExpression(t, "true ^^ false", "true")
		checkExpression(t, "1 ^^ 1", "false")
		checkExpression(t, `"" ^^ null`, "false")
	}

	// Built-ins
	{
		checkExpression(t, `cond(1, "a", "b")`, "a")
		checkExpression(t, `cond(0, "a", "b")`, "b")
		checkExpression(t, `cond(20 > 65, "old", cond(20 < 15, "young", "adult"))`, "adult")
		checkExpression(t, "typeof(1)", "number")
		checkExpression(t, `typeof("")`, "string")
		checkExpression(t, "typeof(true)", "boolean")
		checkExpression(t, "typeof(null)", "null")
		checkExpression(t, "typeof(print)", "function")
		checkExpression(t, "typeof(typeof(1))", "string")
		checkExpression(t, "print", "<fn print native>")
		checkExpression(t, "1, 2, 3", "123")
		checkExpression(t, "", "")
		checkExpression(t, `"a", null, true`, "anulltrue")
	}
}

func TestRuntimeErrors(t *testing.T) {
	// Expression errors
	{
		checkErrorMsg(t, `"a" - 1;`, `Invalid operand for -: "a"`, 1)
		checkErrorMsg(t, `1 < "a";`, `Invalid operand for <: "a"`, 1)
		checkErrorMsg(t, `null >= 1;`, `Invalid operand for >=: null`, 1)
		checkErrorMsg(t, `true + 1;`, `Invalid operand for +: true`, 1)
		checkErrorMsg(t, `-null;`, `Invalid operand for -: null`, 1)
		checkErrorMsg(t, `1 / 0;`, ErrDivisionByZero.Error(), 1)
		checkErrorMsg(t, `5 % 0.5;`, ErrDivisionByZero.Error(), 1)
		checkErrorMsg(t, `trunc("abc");`, `Invalid operand for trunc: "abc"`, 1)
		checkErrorMsg(t, `"B"();`, fmt.Sprintf(`%s: "B"`, errOnlyFunction.Error()), 1)
		checkErrorMsg(t, `true & 1;`, `Invalid operand for &: true`, 1)
		checkErrorMsg(t, `1 | "a";`, `Invalid operand for |: "a"`, 1)
		checkErrorMsg(t, `pow(2, 100) ^ 1;`, `Invalid operand for ^: 1.2676506002282294e+30`, 1)
		checkErrorMsg(t, `1 << -1;`, fmt.Sprintf("%s: -1", ErrNegativeShift.Error()), 1)
		checkErrorMsg(t, `pow(1);`, fmt.Sprintf("%s: pow expects 2, got 1", ErrArity.Error()), 1)
	}

	// Statement errors
	{
		checkErrorMsg(t, `x;`, "Undefined variable: x", 1)
		checkErrorMsg(t, `prnt(1);`, "Undefined variable: prnt (did you mean: print?)", 1)
		checkErrorMsg(t, `cel(1);`, "Undefined variable: cel (did you mean: ceil?)", 1)
		checkErrorMsg(t, `x = 1;
y = "a";
z = x * y;`, `Invalid operand for *: "a"`, 3)
		checkErrorMsg(t, `x += 1;`, "Undefined variable: x", 1)
		checkErrorMsg(t, `
return 1;`, ErrReturnOutsideFunction.Error(), 2)
		checkErrorMsg(t, `if (1) return; end`, ErrReturnOutsideFunction.Error(), 1)
		checkErrorMsg(t, `
def print(a)
end`, fmt.Sprintf("%s: print", ErrShadowsBuiltin.Error()), 2)
		checkErrorMsg(t, `def f(a) print("body"); end
f(1, 2);`, fmt.Sprintf("%s: f expects 1, got 2", ErrArity.Error()), 2)
	}
}

func TestErrorValues(t *testing.T) {
	tp := &testPrinter{}
	interp := NewInterpreter(tp)

	err := interp.Run(`pow(1, 2, 3);`)
	if !errors.Is(err, ErrArity) {
		t.Errorf("expected ErrArity, found %v", err)
	}

	err = interp.Run(`1 / 0;`)
	var runtimeErr *RuntimeError
	if !errors.As(err, &runtimeErr) || !errors.Is(err, ErrDivisionByZero) {
		t.Errorf("expected a division by zero RuntimeError, found %v", err)
	}

	err = interp.Run("\n\nprnt(1);")
	var nameErr *NameError
	if !errors.As(err, &nameErr) {
		t.Fatalf("expected NameError, found %v", err)
	}
	if nameErr.Line != 3 || nameErr.Name != "prnt" || len(nameErr.Suggestions) != 1 || nameErr.Suggestions[0] != "print" {
		t.Errorf("unexpected NameError %+v", nameErr)
	}

	err = interp.Run(`x = "a" < 1;`)
	var typeErr *TypeError
	if !errors.As(err, &typeErr) || typeErr.Operation != "<" {
		t.Errorf("expected TypeError for <, found %v", err)
	}
	if IsSyntaxError(err) {
		t.Errorf("type error reported as syntax error")
	}

	err = interp.Run(`print(1)`)
	if !IsSyntaxError(err) {
		t.Errorf("expected syntax error, found %v", err)
	}
}

type failingPrinter struct {
	testPrinter
}

func (f *failingPrinter) Print(a ...interface{}) (n int, err error) {
	return 0, errors.New("broken pipe")
}

func TestPrintFailure(t *testing.T) {
	err := NewInterpreter(&failingPrinter{}).Run(`print("a");`)
	if !errors.Is(err, ErrOutput) {
		t.Errorf("expected ErrOutput, found %v", err)
	}
	if line := errorLine(err); line != 1 {
		t.Errorf("expected error on line 1, found %d", line)
	}
}

func TestStackOverflow(t *testing.T) {
	err := checkOutput(t, `def f(n) return f(n + 1); end f(0);`, "", WithMaxCallDepth(50))
	if !errors.Is(err, ErrStackOverflow) {
		t.Errorf("expected ErrStackOverflow, found %v", err)
	}

	// Limits past the ceiling are capped
	if depth := NewInterpreter(&testPrinter{}, WithMaxCallDepth(1<<40)).maxDepth; depth != MaxCallDepthLimit {
		t.Errorf("expected depth capped at %d, found %d", MaxCallDepthLimit, depth)
	}
	if depth := NewInterpreter(&testPrinter{}, WithMaxCallDepth(-1)).maxDepth; depth != DefaultMaxCallDepth {
		t.Errorf("expected default depth %d, found %d", DefaultMaxCallDepth, depth)
	}

	// Deep but bounded recursion fits the default depth
	checkOutput(t, `
def down(n)
	if (n > 0)
		return down(n - 1);
	end
	return n;
end
print(down(5000));`, "0")
}

func TestStatements(t *testing.T) {
	// Order of execution
	checkOutput(t, `print("a"); print("b"); print("c");`, "abc")

	// Empty statements and comments
	checkOutput(t, `;;; print(1);; # trailing
# whole line
print(2);`, "12")

	// Hoisting
	checkOutput(t, `print(f()); def f() return 1; end`, "1")
	checkOutput(t, `
def a() return b(); end
def b() return "b"; end
print(a());`, "b")

	// Scoping
	checkOutput(t, `x = 1; def f() x = 2; return x; end print(f(), x);`, "21")
	checkOutput(t, `x = 1; def f() x += 1; return x; end print(f(), x);`, "21")
	checkOutput(t, `def f() y = 1; end f(); print(typeof(f));`, "function")
	checkErrorMsg(t, `def f() y = 1; end f(); print(y);`, "Undefined variable: y (did you mean: typeof?)", 1)

	// A call frame never sees the caller's locals
	checkErrorMsg(t, `def g() return z; end
def f() z = 1; return g(); end
f();`, "Undefined variable: z", 1)

	// Compound assignment
	checkStatements(t, `x = 1; x += 2; x *= 3; x -= 1; x /= 4; x %= 2;`, "x", "0")
	checkStatements(t, `x = "2"; x += 1;`, "typeof(x)", "number")
	checkStatements(t, `x = 12; x &= 10; x |= 1; x ^= 3; x <<= 2; x >>= 1;`, "x", "20")

	// Assignment is an expression
	checkOutput(t, `print("x = ", x = false, " typeof x = ", typeof(x));`, "x = false typeof x = boolean")
	checkStatements(t, `a = b = 3;`, "a + b", "6")

	// If chains
	checkStatements(t, `
	test = 1;
	if (test < 1)
		r = "lt";
	elif (test > 1)
		r = "gt";
	else
		r = "eq";
	end`, "r", "eq")
	checkStatements(t, `r = 0; if (0) r = 1; end`, "r", "0")
	checkStatements(t, `r = 0; if (1) r = 1; end`, "r", "1")
	checkStatements(t, `r = 0; if (0) r = 1; elif ("") r = 2; elif ("x") r = 3; else r = 4; end`, "r", "3")
	checkStatements(t, `r = 0; if (1) if (0) 0; end r = 5; end`, "r", "5")

	// For loops
	checkStatements(t, `x = 0; for (i = 0, i < 10, i += 1) x += 1; end`, "x", "10")
	checkStatements(t, `x = 0; for (i = 0, i < 0, i += 1) x += 1; end`, "x", "0")
	checkStatements(t, `s = 0; for (i = 0, i < 5, i += 1) if (i == 2) continue; end s += i; end`, "s", "8")
	checkStatements(t, `for (i = 0, i < 10, i += 1) if (i == 4) break; end end`, "i", "4")
	checkOutput(t, `
for (i = 1, i < 1e3, i += 1)
	if ((i % 100) == 0)
		print("i = ", i, " ");
	end
end`, "i = 100 i = 200 i = 300 i = 400 i = 500 i = 600 i = 700 i = 800 i = 900 ")

	// While loops
	checkStatements(t, `
	i = 0; s = 0;
	while (i < 10)
		i += 1;
		if (i % 2 == 0) continue; end
		if (i > 7) break; end
		s += i;
	end`, "s", "16")
	checkStatements(t, `
	n = 0;
	for (i = 0, i < 3, i += 1)
		j = 0;
		while (1)
			j += 1;
			if (j == 2) break; end
		end
		n += j;
	end`, "n", "6")

	// Functions
	checkStatements(t, `def square(x) return x * x; end`, "square(9)", "81")
	checkStatements(t, `def f() return; end`, "f()", "null")
	checkStatements(t, `def f() 1; end`, "f()", "null")
	checkStatements(t, `
	def f()
		for (i = 0, i < 10, i += 1)
			while (1)
				if (i == 3) return i; end
				break;
			end
		end
	end`, "f()", "3")
	checkStatements(t, `def square(x) return x * x; end f = square;`, "f(3)", "9")
	checkOutput(t, `g = print; g("hi");`, "hi")
	checkStatements(t, `def f() end`, "f", "<fn f>")
	checkOutput(t, `
def bar(var1, var2)
	x = 69;
	print(x, " ");
return;
	print("bar = ", var1, " ", var2);
end
bar("a", "b");`, "69 ")

	// Recursion prints during unwind
	checkOutput(t, `
def reverse(x, n)
	if (x < n)
		reverse(x + 1, n);
		print(x, " ");
	end
end
reverse(0, 10);`, "9 8 7 6 5 4 3 2 1 0 ")

	// Eager cond
	checkOutput(t, `def side(v) print(v); return v; end print(cond(1, side("a"), side("b")));`, "aba")

	// Built-ins may be shadowed by assignment
	checkOutput(t, `def foo() pow = pow(3, 2); print(pow); end foo(); print(pow(2, 2));`, "94")
	checkOutput(t, `pow = 5; print(pow);`, "5")
}

func TestEntryPoint(t *testing.T) {
	checkOutput(t, `def main() print("m"); end print("top");`, "topm")
	checkOutput(t, `def main() print("m"); end main();`, "m")
	checkOutput(t, `def main(a) print("m"); end`, "")
	checkOutput(t, `def main() print("m"); end`, "", WithAutoMain(false))
	checkOutput(t, `
def main()
	print(helper());
end
def helper() return "late"; end`, "late")
}

func TestFailureKeepsOutput(t *testing.T) {
	err := checkOutput(t, `print("a"); x; print("b");`, "a")
	var nameErr *NameError
	if !errors.As(err, &nameErr) {
		t.Errorf("expected NameError, found %v", err)
	}

	// The arity check runs before the body
	err = checkOutput(t, `def f(a) print("body"); end f(1, 2);`, "")
	if !errors.Is(err, ErrArity) {
		t.Errorf("expected ErrArity, found %v", err)
	}

	// A shadowing def fails before anything runs
	err = checkOutput(t, `print("a"); def typeof(x) end`, "")
	if !errors.Is(err, ErrShadowsBuiltin) {
		t.Errorf("expected ErrShadowsBuiltin, found %v", err)
	}
}

func TestHostBuiltins(t *testing.T) {
	var seen []string
	record := WithBuiltin("record", variadic, func(arguments []Value) (Value, error) {
		for _, arg := range arguments {
			seen = append(seen, TypeName(arg)+":"+arg.String())
		}
		return NumberValue(float64(len(arguments))), nil
	})
	fail := WithBuiltin("fail", 0, func(arguments []Value) (Value, error) {
		return nil, errors.New("host failure")
	})

	checkOutput(t, `print(record(1, "a", null));`, "3", record, fail)
	if strings.Join(seen, ",") != "number:1,string:a,null:null" {
		t.Errorf("unexpected host arguments %v", seen)
	}

	err := checkOutput(t, "\nfail();", "", record, fail)
	var runtimeErr *RuntimeError
	if !errors.As(err, &runtimeErr) || runtimeErr.Line != 2 || runtimeErr.Error() != "host failure" {
		t.Errorf("expected host failure RuntimeError on line 2, found %v", err)
	}

	err = checkOutput(t, `def record() end`, "", record)
	if !errors.Is(err, ErrShadowsBuiltin) {
		t.Errorf("expected ErrShadowsBuiltin, found %v", err)
	}
}

func TestLiteralRoundTrip(t *testing.T) {
	values := []slateValue{
		slateNumber(0),
		slateNumber(3.25),
		slateNumber(-0.5),
		slateNumber(1e21),
		slateNumber(1234567.125),
		slateString(""),
		slateString("plain"),
		slateString("q\"b\\s\n\t\r\b\f/"),
		slateBool(true),
		slateBool(false),
		null,
	}
	for _, value := range values {
		var captured slateValue
		capture := WithBuiltin("capture", 1, func(arguments []Value) (Value, error) {
			captured = arguments[0]
			return nil, nil
		})
		source := "capture(" + value.Repr() + ");"
		if err := NewInterpreter(&testPrinter{}, capture).Run(source); err != nil {
			t.Errorf("%s: %v", source, err)
			continue
		}
		if !strictEquals(value, captured) {
			t.Errorf("%s: round trip produced %#v", source, captured)
		}
	}
}

func BenchmarkLoop(b *testing.B) {
	source := `
a = 1;
while (a < 100000)
	a += 1;
end
`
	for i := 0; i < b.N; i++ {
		if err := NewInterpreter(&testPrinter{}).Run(source); err != nil {
			b.Fatal(err)
		}
	}
}
