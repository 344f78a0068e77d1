package dsl

import (
	"context"
	"fmt"

	verity "github.com/verity-go/verity"
	"github.com/verity-go/verity/constraint"
)

// RefineFunc is a cross-field refinement over a successfully parsed object.
// Returned issues are reported under the object's namespace.
type RefineFunc func(ctx context.Context, v map[string]any) verity.Issues

// UnknownPolicy decides what happens to input keys no field declares.
type UnknownPolicy int

const (
	// UnknownStrip drops undeclared keys silently. The default.
	UnknownStrip UnknownPolicy = iota
	// UnknownStrict reports every undeclared key as an issue.
	UnknownStrict
)

type fieldDecl struct {
	name string
	ad   AnyAdapter
}

type refinement struct {
	name string
	fn   RefineFunc
}

// ObjectBuilder accumulates an object shape: named fields, input-key remaps,
// refinements, and the unknown-key policy. Build validates the declaration
// and returns the immutable-shape schema.
type ObjectBuilder struct {
	fields  []fieldDecl
	remaps  map[string]string
	refines []refinement
	unknown UnknownPolicy
	ns      string
	desc    string
	con     *constraint.Constraint
}

// Object starts an object schema declaration.
func Object() *ObjectBuilder {
	return &ObjectBuilder{remaps: map[string]string{}, ns: "root$"}
}

// Field declares a property under name, parsed by the adapter. Whether the
// property may be missing is decided entirely by the adapted schema's nullish
// permission.
func (b *ObjectBuilder) Field(name string, ad AnyAdapter) *ObjectBuilder {
	b.fields = append(b.fields, fieldDecl{name: name, ad: ad})
	return b
}

// Remap reads the field declared as outKey from inKey instead. Dotted input
// paths descend nested input values.
func (b *ObjectBuilder) Remap(outKey, inKey string) *ObjectBuilder {
	b.remaps[outKey] = inKey
	return b
}

// Refine registers a named cross-field check. Refinements run only when the
// per-field parse produced no issues.
func (b *ObjectBuilder) Refine(name string, fn RefineFunc) *ObjectBuilder {
	b.refines = append(b.refines, refinement{name: name, fn: fn})
	return b
}

// UnknownStrict makes undeclared top-level input keys an error.
func (b *ObjectBuilder) UnknownStrict() *ObjectBuilder { b.unknown = UnknownStrict; return b }

// UnknownStrip drops undeclared input keys (the default).
func (b *ObjectBuilder) UnknownStrip() *ObjectBuilder { b.unknown = UnknownStrip; return b }

// Namespace overrides the issue-path prefix for this object (default "root$").
func (b *ObjectBuilder) Namespace(ns string) *ObjectBuilder { b.ns = ns; return b }

// Describe labels the schema for Parse error messages.
func (b *ObjectBuilder) Describe(text string) *ObjectBuilder { b.desc = text; return b }

// Constraint overrides the default object constraint, e.g. to attach
// Required rules.
func (b *ObjectBuilder) Constraint(con *constraint.Constraint) *ObjectBuilder {
	b.con = con
	return b
}

// Build validates the declaration and returns the schema. Field names must be
// unique, and every remapped name must have been declared with Field.
func (b *ObjectBuilder) Build() (*ObjectSchema, error) {
	declared := make(map[string]struct{}, len(b.fields))
	for _, f := range b.fields {
		if _, dup := declared[f.name]; dup {
			return nil, fmt.Errorf("dsl: field %q declared twice", f.name)
		}
		declared[f.name] = struct{}{}
	}
	for out := range b.remaps {
		if _, ok := declared[out]; !ok {
			return nil, fmt.Errorf("dsl: remap references undeclared field %q", out)
		}
	}
	con := b.con
	if con == nil {
		con = constraint.NewObject().Constraint
	}
	remaps := make(map[string]string, len(b.remaps))
	for k, v := range b.remaps {
		remaps[k] = v
	}
	return &ObjectSchema{
		fields:  append([]fieldDecl(nil), b.fields...),
		remaps:  remaps,
		refines: append([]refinement(nil), b.refines...),
		unknown: b.unknown,
		ns:      b.ns,
		desc:    b.desc,
		con:     con,
	}, nil
}

// MustBuild is Build, panicking on a declaration error.
func (b *ObjectBuilder) MustBuild() *ObjectSchema {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}
