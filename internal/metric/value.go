// Package metric holds the values produced by feature extractors and the flat
// record they are merged into.
package metric

import (
	"encoding/json"
	"math"
	"strconv"
)

// Kind discriminates the variants of Value.
type Kind uint8

const (
	KindNumber Kind = iota
	KindInt
	KindBool
	KindText
	// KindNaN marks a measure with no computable sample, such as idea
	// density over a text shorter than the window.
	KindNaN
	// KindNotApplicable marks a ratio whose denominator is zero.
	KindNotApplicable
	// KindUndefined marks a formula that is mathematically undefined for
	// its inputs, such as Honoré's R when every word type is a hapax.
	KindUndefined
	// KindUnsupported marks a measure that has no implementation for the
	// transcript language or task.
	KindUnsupported
)

// Sentinel renderings used by the JSON and tabular projections.
const (
	NotApplicableText = "N/A"
	UndefinedText     = "undefined"
	UnsupportedText   = "unsupported"
	NaNText           = "NaN"
)

// Value is a single measure: a number, a count, a flag, a label, or one of
// the absence markers.
type Value struct {
	kind Kind
	num  float64
	i    int
	b    bool
	s    string
}

func Float(f float64) Value {
	if math.IsNaN(f) {
		return NaN()
	}
	return Value{kind: KindNumber, num: f}
}

func Int(n int) Value            { return Value{kind: KindInt, i: n} }
func Bool(b bool) Value          { return Value{kind: KindBool, b: b} }
func Text(s string) Value        { return Value{kind: KindText, s: s} }
func NaN() Value                 { return Value{kind: KindNaN} }
func NotApplicable() Value       { return Value{kind: KindNotApplicable} }
func Undefined() Value           { return Value{kind: KindUndefined} }
func Unsupported() Value         { return Value{kind: KindUnsupported} }
func (v Value) Kind() Kind       { return v.kind }
func (v Value) IsSentinel() bool { return v.kind >= KindNaN }

// Ratio divides num by den, or returns NotApplicable when den is zero.
func Ratio(num, den float64) Value {
	if den == 0 {
		return NotApplicable()
	}
	return Float(num / den)
}

// Frequency divides count by total, or returns 0 when total is zero.
func Frequency(count, total int) Value {
	if total == 0 {
		return Float(0)
	}
	return Float(float64(count) / float64(total))
}

// Float64 returns the numeric content of v. The second result is false for
// flags, labels and sentinels.
func (v Value) Float64() (float64, bool) {
	switch v.kind {
	case KindNumber:
		return v.num, true
	case KindInt:
		return float64(v.i), true
	}
	return 0, false
}

// Bool returns the flag content of v.
func (v Value) Bool() (bool, bool) {
	return v.b, v.kind == KindBool
}

// String renders v the way it appears in a CSV cell.
func (v Value) String() string {
	switch v.kind {
	case KindNumber:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case KindInt:
		return strconv.Itoa(v.i)
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindText:
		return v.s
	case KindNaN:
		return NaNText
	case KindNotApplicable:
		return NotApplicableText
	case KindUndefined:
		return UndefinedText
	case KindUnsupported:
		return UnsupportedText
	}
	return ""
}

// Interface returns v as a plain Go value for encoders that do not know
// about Value, such as spreadsheet writers.
func (v Value) Interface() any {
	switch v.kind {
	case KindNumber:
		return v.num
	case KindInt:
		return v.i
	case KindBool:
		return v.b
	}
	return v.String()
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNumber:
		if math.IsInf(v.num, 0) {
			return json.Marshal(UndefinedText)
		}
		return json.Marshal(v.num)
	case KindInt:
		return json.Marshal(v.i)
	case KindBool:
		return json.Marshal(v.b)
	}
	return json.Marshal(v.String())
}

// UnmarshalJSON accepts numbers, booleans and strings. Strings equal to a
// sentinel rendering decode back to that sentinel.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch x := raw.(type) {
	case float64:
		if x == math.Trunc(x) && math.Abs(x) < 1<<53 && !containsFraction(data) {
			*v = Int(int(x))
		} else {
			*v = Float(x)
		}
	case bool:
		*v = Bool(x)
	case string:
		switch x {
		case NaNText:
			*v = NaN()
		case NotApplicableText:
			*v = NotApplicable()
		case UndefinedText:
			*v = Undefined()
		case UnsupportedText:
			*v = Unsupported()
		default:
			*v = Text(x)
		}
	case nil:
		*v = NotApplicable()
	default:
		*v = Text(string(data))
	}
	return nil
}

func containsFraction(data []byte) bool {
	for _, c := range data {
		if c == '.' || c == 'e' || c == 'E' {
			return true
		}
	}
	return false
}
