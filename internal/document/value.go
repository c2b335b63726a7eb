package document

import (
	"fmt"
	"math"
	"strconv"
)

// Value is a field value. The set of variants is closed: Text, Integer,
// Number and Stringer. String returns the text handed to the analyzer.
type Value interface {
	fmt.Stringer
	isValue()
}

// Text is a plain textual value.
type Text string

func (t Text) String() string { return string(t) }
func (Text) isValue()         {}

// Integer is an exact whole number.
type Integer int64

func (i Integer) String() string { return strconv.FormatInt(int64(i), 10) }
func (Integer) isValue()         {}

// Number is a floating-point value. Integral numbers render in plain decimal
// notation, never with an exponent.
type Number float64

func (n Number) String() string {
	f := float64(n)
	if f == math.Trunc(f) && !math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
func (Number) isValue() {}

// Stringer adapts any fmt.Stringer.
type Stringer struct {
	V fmt.Stringer
}

func (s Stringer) String() string {
	if s.V == nil {
		return ""
	}
	return s.V.String()
}
func (Stringer) isValue() {}

// ValueOf converts a Go value into a Value. Strings become Text, integer kinds
// become Integer, float kinds become Number, fmt.Stringer values become
// Stringer and anything else is formatted with fmt.Sprint. Unsigned values
// above math.MaxInt64 are kept exactly as Text.
func ValueOf(v any) Value {
	switch x := v.(type) {
	case Value:
		return x
	case string:
		return Text(x)
	case int:
		return Integer(x)
	case int32:
		return Integer(x)
	case int64:
		return Integer(x)
	case uint:
		return unsigned(uint64(x))
	case uint32:
		return Integer(x)
	case uint64:
		return unsigned(x)
	case float32:
		return Number(x)
	case float64:
		return Number(x)
	case fmt.Stringer:
		return Stringer{V: x}
	case nil:
		return Text("")
	default:
		return Text(fmt.Sprint(x))
	}
}

func unsigned(u uint64) Value {
	if u > math.MaxInt64 {
		return Text(strconv.FormatUint(u, 10))
	}
	return Integer(u)
}
