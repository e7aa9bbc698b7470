package internal

import (
	"strconv"
	"strings"
)

// slateValue is the closed set of runtime values: slateNumber, slateString,
// slateBool, slateNull, *slateFunction and *nativeFn.
type slateValue interface {
	typeName() string
	String() string
	Repr() string
}

type slateNumber float64

type slateString string

type slateBool bool

type slateNull struct{}

var null = slateNull{}

func (n slateNumber) typeName() string { return "number" }
func (s slateString) typeName() string { return "string" }
func (b slateBool) typeName() string   { return "boolean" }
func (slateNull) typeName() string     { return "null" }

func (n slateNumber) String() string {
	return strconv.FormatFloat(float64(n), 'g', -1, 64)
}

func (n slateNumber) Repr() string {
	return n.String()
}

func (s slateString) String() string {
	return string(s)
}

func (s slateString) Repr() string {
	var out strings.Builder
	out.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '"':
			out.WriteString(`\"`)
		case '\\':
			out.WriteString(`\\`)
		case '\n':
			out.WriteString(`\n`)
		case '\t':
			out.WriteString(`\t`)
		case '\r':
			out.WriteString(`\r`)
		case '\b':
			out.WriteString(`\b`)
		case '\f':
			out.WriteString(`\f`)
		default:
			out.WriteByte(c)
		}
	}
	out.WriteByte('"')
	return out.String()
}

func (b slateBool) String() string {
	if b {
		return "true"
	}
	return "false"
}

func (b slateBool) Repr() string {
	return b.String()
}

func (slateNull) String() string {
	return "null"
}

func (slateNull) Repr() string {
	return "null"
}

// truthy maps any value to a boolean for conditions
func truthy(value slateValue) bool {
	switch v := value.(type) {
	case slateNumber:
		return v != 0
	case slateString:
		return v != ""
	case slateBool:
		return bool(v)
	case slateNull:
		return false
	case *slateFunction, *nativeFn:
		return true
	}
	return false
}

// parseNumber converts the textual form of a number, surrounding blanks allowed
func parseNumber(s slateString) (slateNumber, bool) {
	text := strings.TrimSpace(string(s))
	if text == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, false
	}
	return slateNumber(f), true
}

// Value is a runtime value as seen by host built-ins
type Value = slateValue

// NumberValue wraps f as a script number
func NumberValue(f float64) Value { return slateNumber(f) }

// StringValue wraps s as a script string
func StringValue(s string) Value { return slateString(s) }

// BoolValue wraps b as a script boolean
func BoolValue(b bool) Value { return slateBool(b) }

// NullValue returns the script null
func NullValue() Value { return null }

// TypeName returns the name typeof reports for v
func TypeName(v Value) string { return v.typeName() }
