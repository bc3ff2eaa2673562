package datasets

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Value is a single cell: nil, int64, float64, string or bool.
type Value struct {
	v any
}

// Null is the missing-cell value
var Null = Value{}

func IntValue(i int64) Value     { return Value{v: i} }
func FloatValue(f float64) Value { return Value{v: f} }
func StringValue(s string) Value { return Value{v: s} }
func BoolValue(b bool) Value     { return Value{v: b} }

// NewValue normalises a value scanned from a database driver.
func NewValue(src any) Value {
	switch t := src.(type) {
	case nil:
		return Null
	case int64:
		return IntValue(t)
	case int:
		return IntValue(int64(t))
	case int32:
		return IntValue(int64(t))
	case float64:
		return floatOrNull(t)
	case float32:
		return floatOrNull(float64(t))
	case string:
		return StringValue(t)
	case []byte:
		return StringValue(string(t))
	case bool:
		return BoolValue(t)
	case time.Time:
		return StringValue(t.Format(time.RFC3339))
	default:
		return StringValue(fmt.Sprint(t))
	}
}

func floatOrNull(f float64) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Null
	}
	return FloatValue(f)
}

func (v Value) IsNull() bool {
	return v.v == nil
}

// Interface returns the underlying Go value
func (v Value) Interface() any {
	return v.v
}

// Float converts numeric cells (and numeric strings, as some drivers return
// DECIMAL columns as text) to float64.
func (v Value) Float() (float64, bool) {
	switch t := v.v.(type) {
	case int64:
		return float64(t), true
	case float64:
		return t, true
	case bool:
		if t {
			return 1, true
		}
		return 0, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// Int converts integral cells to int64. Floats with a fractional part are rejected.
func (v Value) Int() (int64, bool) {
	switch t := v.v.(type) {
	case int64:
		return t, true
	default:
		f, ok := v.Float()
		if !ok || f != math.Trunc(f) {
			return 0, false
		}
		return int64(f), true
	}
}

func (v Value) String() string {
	switch t := v.v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}

// Compare orders two values numerically when both are numeric, else by string form.
func Compare(a, b Value) int {
	af, aok := a.Float()
	bf, bok := b.Float()
	if aok && bok {
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(a.String(), b.String())
}
