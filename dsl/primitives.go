package dsl

import (
	"encoding/json"
	"math"
	"reflect"
	"strconv"
	"time"

	verity "github.com/verity-go/verity"
	"github.com/verity-go/verity/constraint"
	"github.com/verity-go/verity/i18n"
)

// ---------------- String ----------------

// StringSchema validates string values.
type StringSchema struct{ core[string] }

var _ verity.Schema[string] = (*StringSchema)(nil)

// String returns a string schema. With Config.Coerce, numbers and booleans
// are stringified before validation.
func String(cfg ...Config) *StringSchema {
	c := pickConfig(cfg)
	con := c.Constraint
	if con == nil {
		con = constraint.NewString().Constraint
	}
	return &StringSchema{core[string]{
		con:       con,
		coercer:   coerceString,
		coerce:    c.Coerce,
		transform: stringTransform,
		desc:      c.Description,
	}}
}

func stringTransform(v any) (string, verity.Issues) {
	s, _ := v.(string)
	return s, nil
}

func coerceString(v any) any {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconvFormatFloat(t)
	case bool:
		return strconv.FormatBool(t)
	case int, int8, int16, int32, int64:
		return strconv.FormatInt(reflect.ValueOf(t).Int(), 10)
	case uint, uint8, uint16, uint32, uint64:
		return strconv.FormatUint(reflect.ValueOf(t).Uint(), 10)
	}
	return v
}

// Nullable permits an explicit null; the node is mutated in place.
func (s *StringSchema) Nullable() *StringSchema { s.con.Nullable(); return s }

// Nullish permits null and absent values; the node is mutated in place.
func (s *StringSchema) Nullish() *StringSchema { s.con.Nullish(); return s }

// Describe returns a copy of the node carrying the description.
func (s *StringSchema) Describe(text string) *StringSchema {
	return s.Copy(Config{Description: text})
}

// Copy returns a new node merging cfg over the current definition.
func (s *StringSchema) Copy(cfg Config, transform ...func(any) (string, verity.Issues)) *StringSchema {
	return &StringSchema{s.copyWith(cfg, transform...)}
}

// ---------------- Bool ----------------

// BoolSchema validates boolean values.
type BoolSchema struct{ core[bool] }

var _ verity.Schema[bool] = (*BoolSchema)(nil)

// Bool returns a bool schema. With Config.Coerce, the strings "true" and
// "false" are accepted.
func Bool(cfg ...Config) *BoolSchema {
	c := pickConfig(cfg)
	con := c.Constraint
	if con == nil {
		con = constraint.NewBool()
	}
	return &BoolSchema{core[bool]{
		con:     con,
		coercer: coerceBool,
		coerce:  c.Coerce,
		transform: func(v any) (bool, verity.Issues) {
			b, _ := v.(bool)
			return b, nil
		},
		desc: c.Description,
	}}
}

func coerceBool(v any) any {
	if s, ok := v.(string); ok {
		if b, err := strconv.ParseBool(s); err == nil {
			return b
		}
	}
	return v
}

func (s *BoolSchema) Nullable() *BoolSchema { s.con.Nullable(); return s }
func (s *BoolSchema) Nullish() *BoolSchema  { s.con.Nullish(); return s }
func (s *BoolSchema) Describe(text string) *BoolSchema {
	return &BoolSchema{s.copyWith(Config{Description: text})}
}
func (s *BoolSchema) Copy(cfg Config, transform ...func(any) (bool, verity.Issues)) *BoolSchema {
	return &BoolSchema{s.copyWith(cfg, transform...)}
}

// ---------------- Number ----------------

// NumberSchema validates numeric values, preserving json.Number precision.
type NumberSchema struct{ core[json.Number] }

var _ verity.Schema[json.Number] = (*NumberSchema)(nil)

// Number returns a number schema. With Config.Coerce, numeric strings are
// accepted and canonicalized.
func Number(cfg ...Config) *NumberSchema {
	c := pickConfig(cfg)
	con := c.Constraint
	if con == nil {
		con = constraint.NewNumber().Constraint
	}
	return &NumberSchema{core[json.Number]{
		con:       con,
		coercer:   coerceNumber,
		coerce:    c.Coerce,
		transform: numberTransform,
		desc:      c.Description,
	}}
}

func numberTransform(v any) (json.Number, verity.Issues) {
	switch n := v.(type) {
	case json.Number:
		return n, nil
	case float64:
		return json.Number(strconvFormatFloat(n)), nil
	case float32:
		return json.Number(strconvFormatFloat(float64(n))), nil
	case int, int8, int16, int32, int64:
		return json.Number(strconv.FormatInt(reflect.ValueOf(n).Int(), 10)), nil
	case uint, uint8, uint16, uint32, uint64:
		return json.Number(strconv.FormatUint(reflect.ValueOf(n).Uint(), 10)), nil
	}
	return json.Number(""), verity.AppendIssues(nil, verity.Issue{
		Code:    verity.CodeInvalidType,
		Message: i18n.T(verity.CodeInvalidType, map[string]string{"expected": "number", "given": constraint.KindOf(v).String()}),
	})
}

func coerceNumber(v any) any {
	if s, ok := v.(string); ok {
		// Canonicalize via float64 formatting for consistency with float64 input.
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return json.Number(strconvFormatFloat(f))
		}
	}
	return v
}

func (s *NumberSchema) Nullable() *NumberSchema { s.con.Nullable(); return s }
func (s *NumberSchema) Nullish() *NumberSchema  { s.con.Nullish(); return s }
func (s *NumberSchema) Describe(text string) *NumberSchema {
	return &NumberSchema{s.copyWith(Config{Description: text})}
}
func (s *NumberSchema) Copy(cfg Config, transform ...func(any) (json.Number, verity.Issues)) *NumberSchema {
	return &NumberSchema{s.copyWith(cfg, transform...)}
}

// ---------------- Int / Float projections ----------------

// IntSchema validates numbers with integer-only semantics, decoding to int64.
type IntSchema struct{ core[int64] }

var _ verity.Schema[int64] = (*IntSchema)(nil)

// Int returns an integer schema over the number constraint.
func Int(cfg ...Config) *IntSchema {
	c := pickConfig(cfg)
	con := c.Constraint
	if con == nil {
		con = constraint.NewNumber().Constraint
	}
	return &IntSchema{core[int64]{
		con:       con,
		coercer:   coerceNumber,
		coerce:    c.Coerce,
		transform: intTransform,
		desc:      c.Description,
	}}
}

func intTransform(v any) (int64, verity.Issues) {
	num, iss := numberTransform(v)
	if len(iss) > 0 {
		return 0, iss
	}
	if i64, err := num.Int64(); err == nil {
		return i64, nil
	}
	// Reject fractional values; tolerate integral floats like 3.0.
	if f, err := strconv.ParseFloat(num.String(), 64); err == nil && math.Trunc(f) == f && !math.IsInf(f, 0) {
		return int64(f), nil
	}
	return 0, verity.AppendIssues(nil, verity.Issue{
		Code:    verity.CodeNotInteger,
		Message: i18n.T(verity.CodeNotInteger, nil),
	})
}

func (s *IntSchema) Nullable() *IntSchema { s.con.Nullable(); return s }
func (s *IntSchema) Nullish() *IntSchema  { s.con.Nullish(); return s }
func (s *IntSchema) Describe(text string) *IntSchema {
	return &IntSchema{s.copyWith(Config{Description: text})}
}

// FloatSchema validates numbers decoding to float64.
type FloatSchema struct{ core[float64] }

var _ verity.Schema[float64] = (*FloatSchema)(nil)

// Float returns a float schema over the number constraint.
func Float(cfg ...Config) *FloatSchema {
	c := pickConfig(cfg)
	con := c.Constraint
	if con == nil {
		con = constraint.NewNumber().Constraint
	}
	return &FloatSchema{core[float64]{
		con:     con,
		coercer: coerceNumber,
		coerce:  c.Coerce,
		transform: func(v any) (float64, verity.Issues) {
			if f, ok := constraint.Float64Of(v); ok {
				return f, nil
			}
			return 0, verity.AppendIssues(nil, verity.Issue{
				Code:    verity.CodeInvalidType,
				Message: i18n.T(verity.CodeInvalidType, map[string]string{"expected": "number", "given": constraint.KindOf(v).String()}),
			})
		},
		desc: c.Description,
	}}
}

func (s *FloatSchema) Nullable() *FloatSchema { s.con.Nullable(); return s }
func (s *FloatSchema) Nullish() *FloatSchema  { s.con.Nullish(); return s }
func (s *FloatSchema) Describe(text string) *FloatSchema {
	return &FloatSchema{s.copyWith(Config{Description: text})}
}

// ---------------- Date ----------------

// DateSchema validates time.Time values.
type DateSchema struct{ core[time.Time] }

var _ verity.Schema[time.Time] = (*DateSchema)(nil)

// Date returns a date schema. With Config.Coerce, RFC3339 strings and Unix
// second numbers are converted before validation.
func Date(cfg ...Config) *DateSchema {
	c := pickConfig(cfg)
	con := c.Constraint
	if con == nil {
		con = constraint.NewDate().Constraint
	}
	return &DateSchema{core[time.Time]{
		con:     con,
		coercer: coerceDate,
		coerce:  c.Coerce,
		transform: func(v any) (time.Time, verity.Issues) {
			t, _ := v.(time.Time)
			return t, nil
		},
		desc: c.Description,
	}}
}

func coerceDate(v any) any {
	if t, ok := constraint.DefaultTimeConverter(v); ok {
		return t
	}
	return v
}

func (s *DateSchema) Nullable() *DateSchema { s.con.Nullable(); return s }
func (s *DateSchema) Nullish() *DateSchema  { s.con.Nullish(); return s }
func (s *DateSchema) Describe(text string) *DateSchema {
	return &DateSchema{s.copyWith(Config{Description: text})}
}

// ---------------- Any / Null / Nullish ----------------

// AnySchema accepts every value unchanged.
type AnySchema struct{ core[any] }

var _ verity.Schema[any] = (*AnySchema)(nil)

// Any returns a schema accepting any value, including null and absent.
func Any(cfg ...Config) *AnySchema {
	c := pickConfig(cfg)
	con := c.Constraint
	if con == nil {
		con = constraint.NewAny()
	}
	return &AnySchema{core[any]{
		con:       con,
		transform: func(v any) (any, verity.Issues) { return v, nil },
		desc:      c.Description,
	}}
}

func (s *AnySchema) Describe(text string) *AnySchema {
	return &AnySchema{s.copyWith(Config{Description: text})}
}

// Null returns a schema accepting exactly null.
func Null(cfg ...Config) *AnySchema {
	c := pickConfig(cfg)
	if c.Constraint == nil {
		c.Constraint = constraint.NewNull()
	}
	return Any(c)
}

// Nullish returns a schema accepting null or absent values.
func Nullish(cfg ...Config) *AnySchema {
	c := pickConfig(cfg)
	if c.Constraint == nil {
		c.Constraint = constraint.NewNullish()
	}
	return Any(c)
}

// strconvFormatFloat renders a float64 using the shortest JSON-compatible
// representation.
func strconvFormatFloat(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }
