package constraint

import (
	"encoding/json"
	"math"
	"reflect"
	"strconv"

	verity "github.com/verity-go/verity"
)

// Number is the rule family for numeric values. Raw numbers may arrive as
// json.Number (JSON with UseNumber), float64, or any Go integer kind (YAML);
// rules normalize through float64 for comparisons.
type Number struct{ *Constraint }

// NewNumber returns a number constraint with no rules attached.
func NewNumber() Number { return Number{New(Primitive(KindNumber))} }

// Float64Of extracts a float64 from any supported numeric representation.
func Float64Of(v any) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := strconv.ParseFloat(n.String(), 64)
		return f, err == nil
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int, int8, int16, int32, int64:
		return float64(reflect.ValueOf(n).Int()), true
	case uint, uint8, uint16, uint32, uint64:
		return float64(reflect.ValueOf(n).Uint()), true
	}
	return 0, false
}

func isIntegral(v any) bool {
	if n, ok := v.(json.Number); ok {
		if _, err := n.Int64(); err == nil {
			return true
		}
	}
	f, ok := Float64Of(v)
	return ok && !math.IsNaN(f) && !math.IsInf(f, 0) && math.Trunc(f) == f
}

// Min requires value >= n.
func (c Number) Min(n float64) Number {
	c.Add("min", verity.CodeTooSmall,
		func(v any) bool { f, ok := Float64Of(v); return ok && f >= n },
		ruleMsg(verity.CodeTooSmall, nil),
		map[string]any{"min": n})
	return c
}

// Max requires value <= n.
func (c Number) Max(n float64) Number {
	c.Add("max", verity.CodeTooBig,
		func(v any) bool { f, ok := Float64Of(v); return ok && f <= n },
		ruleMsg(verity.CodeTooBig, nil),
		map[string]any{"max": n})
	return c
}

// Positive requires value > 0.
func (c Number) Positive() Number {
	c.Add("positive", verity.CodeTooSmall,
		func(v any) bool { f, ok := Float64Of(v); return ok && f > 0 },
		ruleMsg(verity.CodeTooSmall, nil), nil)
	return c
}

// Negative requires value < 0.
func (c Number) Negative() Number {
	c.Add("negative", verity.CodeTooBig,
		func(v any) bool { f, ok := Float64Of(v); return ok && f < 0 },
		ruleMsg(verity.CodeTooBig, nil), nil)
	return c
}

// Int requires an integral value (no fractional part).
func (c Number) Int() Number {
	c.Add("int", verity.CodeNotInteger, isIntegral,
		ruleMsg(verity.CodeNotInteger, nil), nil)
	return c
}

// Float requires a value carrying a fractional part.
func (c Number) Float() Number {
	c.Add("float", verity.CodeInvalidFormat,
		func(v any) bool { return !isIntegral(v) },
		ruleMsg(verity.CodeInvalidFormat, nil), nil)
	return c
}

// Finite rejects NaN and infinities.
func (c Number) Finite() Number {
	c.Add("finite", verity.CodeNotFinite,
		func(v any) bool {
			f, ok := Float64Of(v)
			return ok && !math.IsNaN(f) && !math.IsInf(f, 0)
		},
		ruleMsg(verity.CodeNotFinite, nil), nil)
	return c
}

// Between requires min <= value <= max, inclusive on both ends.
func (c Number) Between(min, max float64) Number {
	c.Add("between", verity.CodeOutOfRange,
		func(v any) bool { f, ok := Float64Of(v); return ok && f >= min && f <= max },
		ruleMsg(verity.CodeOutOfRange, map[string]any{"min": min, "max": max}),
		map[string]any{"min": min, "max": max})
	return c
}

// Nullable permits null while keeping the Number wrapper for chaining.
func (c Number) Nullable() Number { c.Constraint.Nullable(); return c }

// Nullish permits null and absent while keeping the Number wrapper.
func (c Number) Nullish() Number { c.Constraint.Nullish(); return c }
