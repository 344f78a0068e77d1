// Package dsl provides the schema node factories and composite parsers:
// primitives bound to constraints, arrays/sets/maps delegating to element
// schemas, and objects with forward/reverse key mapping.
package dsl

import (
	"context"

	verity "github.com/verity-go/verity"
	"github.com/verity-go/verity/constraint"
)

// Config bundles the options every schema factory recognizes.
type Config struct {
	// Coerce enables the kind's type coercion before validation.
	Coerce bool
	// Constraint overrides the default rule set for the node.
	Constraint *constraint.Constraint
	// Description labels the node in Parse error messages.
	Description string
}

func pickConfig(cfg []Config) Config {
	if len(cfg) == 0 {
		return Config{}
	}
	return cfg[len(cfg)-1]
}

// core is the leaf schema node shared by all primitive kinds: one constraint,
// an optional coercion, and the value transform producing T.
type core[T any] struct {
	con       *constraint.Constraint
	coercer   func(any) any
	coerce    bool
	transform func(any) (T, verity.Issues)
	desc      string
}

func (c *core[T]) SafeParse(ctx context.Context, v any) verity.Result[T] {
	var zero T
	// Null/absent short-circuits strictly before coercion, so an
	// intentionally-absent value is never coerced into a present one.
	if v == nil || verity.IsAbsent(v) {
		if c.con.Apply(v).Fails() {
			return verity.FailResult[T](c.con.Issues())
		}
		return verity.OKResult(zero)
	}
	raw := v
	if c.coerce && c.coercer != nil {
		raw = c.coercer(raw)
	}
	if c.con.Apply(raw).Fails() {
		return verity.FailResult[T](c.con.Issues())
	}
	out, iss := c.transform(raw)
	if len(iss) > 0 {
		return verity.FailResult[T](iss)
	}
	return verity.OKResult(out)
}

func (c *core[T]) Parse(ctx context.Context, v any) (T, error) {
	r := c.SafeParse(ctx, v)
	if !r.OK {
		var zero T
		return zero, &verity.ParseError{Description: c.desc, Issues: r.Issues}
	}
	return r.Value, nil
}

// Description returns the node's description label.
func (c *core[T]) Description() string { return c.desc }

// Constraint exposes the bound constraint for introspection.
func (c *core[T]) Constraint() *constraint.Constraint { return c.con }

// copyWith merges a partial config over the node definition, deep-copying the
// constraint so the copy and the original never alias rule or nullability
// state. A replacement transform may be supplied.
func (c core[T]) copyWith(cfg Config, transform ...func(any) (T, verity.Issues)) core[T] {
	out := c
	out.con = c.con.Clone()
	if cfg.Constraint != nil {
		out.con = cfg.Constraint
	}
	if cfg.Description != "" {
		out.desc = cfg.Description
	}
	if cfg.Coerce {
		out.coerce = true
	}
	if len(transform) > 0 && transform[0] != nil {
		out.transform = transform[0]
	}
	return out
}
