package constraint

import (
	"strings"

	verity "github.com/verity-go/verity"
	"github.com/verity-go/verity/i18n"
)

// Object is the rule family for object (string-keyed) values.
type Object struct{ *Constraint }

// NewObject returns an object constraint with no rules attached.
func NewObject() Object { return Object{New(Primitive(KindObject))} }

// Required fails unless every one of the given keys is present on the value.
// The failure message lists exactly the keys found missing, recomputed from
// the value itself so the rule carries no state a Clone could alias.
func (c Object) Required(keys ...string) Object {
	missingOf := func(v any) []string {
		m, ok := v.(map[string]any)
		if !ok {
			return keys
		}
		var out []string
		for _, k := range keys {
			if _, present := m[k]; !present {
				out = append(out, k)
			}
		}
		return out
	}
	c.Add("required", verity.CodeRequired,
		func(v any) bool { return len(missingOf(v)) == 0 },
		func(v any) string {
			return i18n.T(verity.CodeRequired, map[string]string{"keys": strings.Join(missingOf(v), ", ")})
		},
		map[string]any{"keys": keys})
	return c
}

// Nullable permits null while keeping the Object wrapper for chaining.
func (c Object) Nullable() Object { c.Constraint.Nullable(); return c }

// Nullish permits null and absent while keeping the Object wrapper.
func (c Object) Nullish() Object { c.Constraint.Nullish(); return c }
