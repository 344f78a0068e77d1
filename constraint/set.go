package constraint

import (
	"fmt"
	"reflect"

	verity "github.com/verity-go/verity"
)

// Set is the rule family for uniqueness-enforcing collections. Raw set input
// is a sequence (JSON has no set literal); cardinality rules count distinct
// elements, matching what the set parser will keep.
type Set struct{ *Constraint }

// NewSet returns a set constraint. Acceptance is structural: any sequence
// qualifies as set input.
func NewSet() Set {
	return Set{New(Predicate("set", func(v any) bool {
		switch KindOf(v) {
		case KindArray, KindSet:
			return true
		}
		return false
	}))}
}

// DistinctCount counts the distinct elements of a sequence. Non-comparable
// elements (nested maps, slices) are keyed by their printed form, the same
// convention the rules package uses for uniqueness checks.
func DistinctCount(v any) int {
	var elems []any
	switch s := v.(type) {
	case []any:
		elems = s
	default:
		rv := reflect.ValueOf(v)
		switch rv.Kind() {
		case reflect.Slice, reflect.Array:
			for i := 0; i < rv.Len(); i++ {
				elems = append(elems, rv.Index(i).Interface())
			}
		case reflect.Map:
			// Already a set container; keys are the elements.
			for _, k := range rv.MapKeys() {
				elems = append(elems, k.Interface())
			}
		default:
			return 0
		}
	}
	seen := make(map[string]struct{}, len(elems))
	for _, e := range elems {
		seen[fmt.Sprintf("%T:%v", e, e)] = struct{}{}
	}
	return len(seen)
}

// Min requires at least n distinct elements.
func (c Set) Min(n int) Set {
	c.Add("min", verity.CodeTooShort,
		func(v any) bool { return DistinctCount(v) >= n },
		ruleMsg(verity.CodeTooShort, nil),
		map[string]any{"min": n})
	return c
}

// Max requires at most n distinct elements.
func (c Set) Max(n int) Set {
	c.Add("max", verity.CodeTooLong,
		func(v any) bool { return DistinctCount(v) <= n },
		ruleMsg(verity.CodeTooLong, nil),
		map[string]any{"max": n})
	return c
}

// NonEmpty requires at least one element.
func (c Set) NonEmpty() Set {
	c.Add("nonempty", verity.CodeTooShort,
		func(v any) bool { return DistinctCount(v) > 0 },
		ruleMsg(verity.CodeTooShort, nil), nil)
	return c
}

// Nullable permits null while keeping the Set wrapper for chaining.
func (c Set) Nullable() Set { c.Constraint.Nullable(); return c }

// Nullish permits null and absent while keeping the Set wrapper.
func (c Set) Nullish() Set { c.Constraint.Nullish(); return c }
