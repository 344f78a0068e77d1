// Package rules provides declarative cross-field refinements for object
// schemas: conditional checks, presence requirements, and uniqueness over
// collections. Every helper produces a dsl.RefineFunc pluggable into
// Object().Refine.
package rules

import (
	"context"
	"fmt"
	"reflect"

	verity "github.com/verity-go/verity"
	"github.com/verity-go/verity/constraint"
	"github.com/verity-go/verity/dsl"
	"github.com/verity-go/verity/internal/lookup"
)

// Op defines simple comparison operators for If(...).Then(...)
type Op int

const (
	Eq Op = iota
	Ne
	Lt
	Le
	Gt
	Ge
)

// Rule is an alias for a refinement function.
type Rule = dsl.RefineFunc

// Conditional composes conditional execution of rules.
type Conditional struct {
	path string
	op   Op
	want any
	all  []Conditional // composite AND
	any  []Conditional // composite OR
}

// If builds a conditional that evaluates a dotted path against a value using
// an operator, e.g. If("status", Eq, "active").
func If(path string, op Op, want any) Conditional {
	return Conditional{path: path, op: op, want: want}
}

// IfAll builds a conditional that requires all conditions to hold.
func IfAll(conds ...Conditional) Conditional { return Conditional{all: conds} }

// IfAny builds a conditional that requires any condition to hold.
func IfAny(conds ...Conditional) Conditional { return Conditional{any: conds} }

// And combines the receiver with additional conditions using logical AND.
func (c Conditional) And(others ...Conditional) Conditional {
	return IfAll(append([]Conditional{c}, others...)...)
}

// Or combines the receiver with additional conditions using logical OR.
func (c Conditional) Or(others ...Conditional) Conditional {
	return IfAny(append([]Conditional{c}, others...)...)
}

// Then attaches rules to run when the condition is satisfied.
func (c Conditional) Then(rules ...Rule) Rule {
	return func(ctx context.Context, v map[string]any) verity.Issues {
		if !evalConditional(v, c) {
			return nil
		}
		var all verity.Issues
		for _, r := range rules {
			if r == nil {
				continue
			}
			all = append(all, r(ctx, v)...)
		}
		return all
	}
}

// AtLeastOne ensures the collection at the dotted path has at least one
// element. Missing or non-collection values pass; presence is the field
// schema's concern.
func AtLeastOne(collectionPath string) Rule {
	return func(ctx context.Context, v map[string]any) verity.Issues {
		val, ok := lookup.Get(v, collectionPath)
		if !ok {
			return nil
		}
		rv := reflect.ValueOf(val)
		switch rv.Kind() {
		case reflect.Slice, reflect.Array:
			if rv.Len() == 0 {
				return verity.AppendIssues(nil, verity.Issue{
					Path:    collectionPath,
					Code:    verity.CodeTooShort,
					Message: "at least 1 item is required",
					Rule:    "at_least_one",
					Params:  map[string]any{"min": 1},
				})
			}
		}
		return nil
	}
}

// UniqueBy ensures elements in the collection at collectionPath have unique
// values at keyPath (relative, inside each element). Keys are compared by
// their printed form; prefer a single stable key type, since mixed types may
// stringify identically and collide.
func UniqueBy(collectionPath, keyPath string) Rule {
	return func(ctx context.Context, v map[string]any) verity.Issues {
		val, ok := lookup.Get(v, collectionPath)
		if !ok {
			return nil
		}
		rv := reflect.ValueOf(val)
		if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
			return nil
		}
		seen := map[string]int{}
		var out verity.Issues
		for i := 0; i < rv.Len(); i++ {
			kv, ok := lookup.Get(rv.Index(i).Interface(), keyPath)
			if !ok {
				continue
			}
			key := fmt.Sprint(kv)
			if j, dup := seen[key]; dup {
				out = verity.AppendIssues(out, verity.Issue{
					Path:    fmt.Sprintf("%s.%d.%s", collectionPath, i, keyPath),
					Code:    verity.CodeInvalidFormat,
					Message: "duplicate value",
					Rule:    "unique_by",
					Params:  map[string]any{"first": j, "dup": i, "key": key},
				})
			} else {
				seen[key] = i
			}
		}
		return out
	}
}

// Fail produces an issue at path whenever it runs; combine it with a
// Conditional to express "when X, Y is invalid".
func Fail(path, code, message string) Rule {
	return func(ctx context.Context, v map[string]any) verity.Issues {
		return verity.AppendIssues(nil, verity.Issue{Path: path, Code: code, Message: message})
	}
}

// Require produces an issue when the dotted path is absent.
func Require(path string) Rule {
	return func(ctx context.Context, v map[string]any) verity.Issues {
		if _, ok := lookup.Get(v, path); ok {
			return nil
		}
		return verity.AppendIssues(nil, verity.Issue{
			Path:    path,
			Code:    verity.CodeRequired,
			Message: "required",
			Rule:    "require",
		})
	}
}

// And executes all rules and concatenates issues.
func And(rules ...Rule) Rule {
	return func(ctx context.Context, v map[string]any) verity.Issues {
		var out verity.Issues
		for _, r := range rules {
			if r == nil {
				continue
			}
			out = append(out, r(ctx, v)...)
		}
		return out
	}
}

// Or succeeds if any rule returns no issues; when all fail it returns the
// branch with the fewest issues.
func Or(rules ...Rule) Rule {
	return func(ctx context.Context, v map[string]any) verity.Issues {
		var best verity.Issues
		bestSet := false
		for _, r := range rules {
			if r == nil {
				continue
			}
			iss := r(ctx, v)
			if len(iss) == 0 {
				return nil
			}
			if !bestSet || len(iss) < len(best) {
				best = iss
				bestSet = true
			}
		}
		if bestSet {
			return best
		}
		return nil
	}
}

// ------- helpers -------

func evalConditional(v map[string]any, c Conditional) bool {
	if len(c.all) > 0 {
		for _, it := range c.all {
			if !evalConditional(v, it) {
				return false
			}
		}
		return true
	}
	if len(c.any) > 0 {
		for _, it := range c.any {
			if evalConditional(v, it) {
				return true
			}
		}
		return false
	}
	cur, ok := lookup.Get(v, c.path)
	if !ok {
		return false
	}
	return compare(cur, c.op, c.want)
}

func compare(cur any, op Op, want any) bool {
	switch op {
	case Eq:
		return equal(cur, want)
	case Ne:
		return !equal(cur, want)
	default:
		a, aok := constraint.Float64Of(cur)
		b, bok := constraint.Float64Of(want)
		if !aok || !bok {
			return false
		}
		switch op {
		case Lt:
			return a < b
		case Le:
			return a <= b
		case Gt:
			return a > b
		case Ge:
			return a >= b
		}
		return false
	}
}

// equal compares numerics by value so json.Number("2") matches int 2; every
// other pairing falls back to deep equality.
func equal(cur, want any) bool {
	if a, aok := constraint.Float64Of(cur); aok {
		if b, bok := constraint.Float64Of(want); bok {
			return a == b
		}
		return false
	}
	return reflect.DeepEqual(cur, want)
}
