// Package constraint implements the stateful rule evaluators backing schema
// nodes: one constraint per node, holding an expected kind, an ordered
// registry of named rules, and nullability permissions.
//
// A constraint is reusable: Apply resets the issue list of the previous
// evaluation before running. It is not safe for concurrent Apply calls on the
// same instance.
package constraint

import (
	"fmt"

	verity "github.com/verity-go/verity"
	"github.com/verity-go/verity/i18n"
)

// rule is one named predicate+message entry in a constraint's registry. The
// message closure receives the evaluated value so it can describe the
// violation without keeping state between check and render.
type rule struct {
	name   string
	code   string
	check  func(any) bool
	msg    func(v any) string
	params map[string]any
}

// Constraint evaluates one expected kind plus its registered rules against a
// raw value. The issue list always reflects the most recent Apply call.
type Constraint struct {
	expect       Expect
	rules        []rule
	allowNull    bool
	allowNullish bool
	issues       verity.Issues
}

// New creates a constraint for the given expectation with no rules attached.
func New(e Expect) *Constraint { return &Constraint{expect: e} }

// Expect returns the constraint's expectation.
func (c *Constraint) Expect() Expect { return c.expect }

// AllowsNull reports whether an explicit null passes without evaluation.
func (c *Constraint) AllowsNull() bool { return c.allowNull }

// AllowsNullish reports whether null or an absent value passes without
// evaluation.
func (c *Constraint) AllowsNullish() bool { return c.allowNullish }

// Nullable permits an explicit null value. Chainable.
func (c *Constraint) Nullable() *Constraint {
	c.allowNull = true
	return c
}

// Nullish permits null and absent values. Chainable.
func (c *Constraint) Nullish() *Constraint {
	c.allowNullish = true
	return c
}

// Add registers a named rule. Rules run in registration order and all of them
// run on every Apply, so one evaluation can surface multiple violations.
func (c *Constraint) Add(name, code string, check func(any) bool, msg func(v any) string, params map[string]any) *Constraint {
	c.rules = append(c.rules, rule{name: name, code: code, check: check, msg: msg, params: params})
	return c
}

// Clone returns a deep copy sharing no mutable state with the receiver. Nodes
// clone their constraint on Describe/Copy so nullability toggles on the copy
// do not alias back.
func (c *Constraint) Clone() *Constraint {
	out := &Constraint{
		expect:       c.expect,
		allowNull:    c.allowNull,
		allowNullish: c.allowNullish,
	}
	out.rules = append(out.rules, c.rules...)
	return out
}

// Apply evaluates the value, replacing the result of any prior evaluation.
// Order: null permission, nullish permission, kind/predicate check (stops,
// single issue), then every named rule without short-circuiting.
func (c *Constraint) Apply(v any) *Constraint {
	c.issues = nil
	if c.allowNull && v == nil {
		return c
	}
	if c.allowNullish && (v == nil || verity.IsAbsent(v)) {
		return c
	}
	if !c.expect.check(v) {
		given := KindOf(v).String()
		if c.expect.IsPredicate() {
			c.issues = verity.AppendIssues(c.issues, verity.Issue{
				Code:    verity.CodeUnsupportedType,
				Message: i18n.T(verity.CodeUnsupportedType, map[string]string{"given": given}),
				Params:  map[string]any{"given": given},
			})
		} else {
			c.issues = verity.AppendIssues(c.issues, verity.Issue{
				Code:    verity.CodeInvalidType,
				Message: i18n.T(verity.CodeInvalidType, map[string]string{"expected": c.expect.Name(), "given": given}),
				Params:  map[string]any{"expected": c.expect.Name(), "given": given},
			})
		}
		return c
	}
	for _, r := range c.rules {
		if r.check(v) {
			continue
		}
		c.issues = verity.AppendIssues(c.issues, verity.Issue{
			Code:    r.code,
			Message: r.msg(v),
			Rule:    r.name,
			Params:  r.params,
		})
	}
	return c
}

// Fails reports whether the most recent Apply recorded any issue.
func (c *Constraint) Fails() bool { return len(c.issues) > 0 }

// Issues returns the issues of the most recent Apply.
func (c *Constraint) Issues() verity.Issues { return c.issues }

// Errors returns the plain message strings of the most recent Apply.
func (c *Constraint) Errors() []string { return c.issues.Messages() }

// ruleMsg builds a message closure rendering code through the catalog with
// stringified params.
func ruleMsg(code string, data map[string]any) func(any) string {
	return func(any) string {
		if len(data) == 0 {
			return i18n.T(code, nil)
		}
		sd := make(map[string]string, len(data))
		for k, v := range data {
			sd[k] = fmt.Sprint(v)
		}
		return i18n.T(code, sd)
	}
}
