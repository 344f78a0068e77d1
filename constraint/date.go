package constraint

import (
	"encoding/json"
	"time"

	verity "github.com/verity-go/verity"
)

// TimeConverter turns a raw value into a time.Time for date comparisons. The
// default handles time.Time, RFC3339 strings, and numeric Unix seconds;
// schema authors may plug their own.
type TimeConverter func(any) (time.Time, bool)

// DefaultTimeConverter is the built-in TimeConverter.
func DefaultTimeConverter(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case string:
		if ts, err := time.Parse(time.RFC3339Nano, t); err == nil {
			return ts, true
		}
		if ts, err := time.Parse(time.RFC3339, t); err == nil {
			return ts, true
		}
	case json.Number:
		if sec, err := t.Int64(); err == nil {
			return time.Unix(sec, 0).UTC(), true
		}
	case float64:
		return time.Unix(int64(t), 0).UTC(), true
	case int64:
		return time.Unix(t, 0).UTC(), true
	case int:
		return time.Unix(int64(t), 0).UTC(), true
	}
	return time.Time{}, false
}

// Date is the rule family for time values.
type Date struct {
	*Constraint
	conv TimeConverter
}

// NewDate returns a date constraint using the default converter.
func NewDate() Date { return NewDateWith(DefaultTimeConverter) }

// NewDateWith returns a date constraint comparing through conv.
func NewDateWith(conv TimeConverter) Date {
	if conv == nil {
		conv = DefaultTimeConverter
	}
	return Date{Constraint: New(Primitive(KindDate)), conv: conv}
}

// Min requires the value to be at or after t.
func (c Date) Min(t time.Time) Date {
	conv := c.conv
	c.Add("min", verity.CodeTooSmall,
		func(v any) bool {
			tv, ok := conv(v)
			return ok && !tv.Before(t)
		},
		ruleMsg(verity.CodeTooSmall, nil),
		map[string]any{"min": t})
	return c
}

// Max requires the value to be at or before t.
func (c Date) Max(t time.Time) Date {
	conv := c.conv
	c.Add("max", verity.CodeTooBig,
		func(v any) bool {
			tv, ok := conv(v)
			return ok && !tv.After(t)
		},
		ruleMsg(verity.CodeTooBig, nil),
		map[string]any{"max": t})
	return c
}

// Nullable permits null while keeping the Date wrapper for chaining.
func (c Date) Nullable() Date { c.Constraint.Nullable(); return c }

// Nullish permits null and absent while keeping the Date wrapper.
func (c Date) Nullish() Date { c.Constraint.Nullish(); return c }
