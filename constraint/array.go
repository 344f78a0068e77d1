package constraint

import (
	"reflect"

	verity "github.com/verity-go/verity"
)

// Array is the rule family for sequence values.
type Array struct{ *Constraint }

// NewArray returns an array constraint with no rules attached.
func NewArray() Array { return Array{New(Primitive(KindArray))} }

func seqLen(v any) int {
	if s, ok := v.([]any); ok {
		return len(s)
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		return rv.Len()
	}
	return 0
}

// Min requires at least n elements.
func (c Array) Min(n int) Array {
	c.Add("min", verity.CodeTooShort,
		func(v any) bool { return seqLen(v) >= n },
		ruleMsg(verity.CodeTooShort, nil),
		map[string]any{"min": n})
	return c
}

// Max requires at most n elements.
func (c Array) Max(n int) Array {
	c.Add("max", verity.CodeTooLong,
		func(v any) bool { return seqLen(v) <= n },
		ruleMsg(verity.CodeTooLong, nil),
		map[string]any{"max": n})
	return c
}

// Length requires exactly n elements.
func (c Array) Length(n int) Array {
	c.Add("length", verity.CodeInvalidLength,
		func(v any) bool { return seqLen(v) == n },
		ruleMsg(verity.CodeInvalidLength, map[string]any{"want": n}),
		map[string]any{"want": n})
	return c
}

// NonEmpty requires at least one element.
func (c Array) NonEmpty() Array {
	c.Add("nonempty", verity.CodeTooShort,
		func(v any) bool { return seqLen(v) > 0 },
		ruleMsg(verity.CodeTooShort, nil), nil)
	return c
}

// Nullable permits null while keeping the Array wrapper for chaining.
func (c Array) Nullable() Array { c.Constraint.Nullable(); return c }

// Nullish permits null and absent while keeping the Array wrapper.
func (c Array) Nullish() Array { c.Constraint.Nullish(); return c }
