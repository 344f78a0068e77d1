package dsl

import (
	"context"
	"strings"
	"sync"

	verity "github.com/verity-go/verity"
	"github.com/verity-go/verity/constraint"
	"github.com/verity-go/verity/i18n"
	"github.com/verity-go/verity/internal/lookup"
)

// ObjectSchema parses string-keyed objects into map[string]any: each declared
// property reads from its input key (possibly remapped), parses through its
// adapter, and lands under its output key. Use Object() to build one.
type ObjectSchema struct {
	fields  []fieldDecl
	remaps  map[string]string // output key -> input key/path
	refines []refinement
	unknown UnknownPolicy
	ns      string
	desc    string
	con     *constraint.Constraint

	revOnce sync.Once
	rev     *ObjectSchema
}

var _ verity.Schema[map[string]any] = (*ObjectSchema)(nil)

// property is one resolved binding: where to read, how to parse, where to
// write. The set is recomputed per parse from the declaration.
type property struct {
	out string
	in  string
	ad  AnyAdapter
}

func (s *ObjectSchema) properties() []property {
	out := make([]property, 0, len(s.fields))
	for _, f := range s.fields {
		in := f.name
		if r, ok := s.remaps[f.name]; ok {
			in = r
		}
		out = append(out, property{out: f.name, in: in, ad: f.ad})
	}
	return out
}

func (s *ObjectSchema) SafeParse(ctx context.Context, v any) verity.Result[map[string]any] {
	if v == nil || verity.IsAbsent(v) {
		if s.con.Apply(v).Fails() {
			return verity.FailResult[map[string]any](s.con.Issues())
		}
		return verity.OKResult[map[string]any](nil)
	}
	if s.con.Apply(v).Fails() {
		return verity.FailResult[map[string]any](s.con.Issues())
	}
	src, ok := asObject(v)
	if !ok {
		return verity.FailResult[map[string]any](verity.AppendIssues(nil, verity.Issue{
			Code:    verity.CodeInvalidType,
			Message: i18n.T(verity.CodeInvalidType, map[string]string{"expected": "object", "given": constraint.KindOf(v).String()}),
		}))
	}

	props := s.properties()
	out := make(map[string]any, len(props))
	var iss verity.Issues
	for _, p := range props {
		raw, present := lookup.Get(src, p.in)
		if !present {
			raw = verity.Absent
		}
		r := p.ad.SafeParse(ctx, raw)
		if !r.OK {
			iss = append(iss, r.Issues.Rebase(verity.JoinPath(s.ns, p.in))...)
			continue
		}
		// Accepted-but-absent properties stay out of the output.
		if !present {
			continue
		}
		lookup.Set(out, p.out, r.Value)
	}

	if s.unknown == UnknownStrict {
		iss = append(iss, s.unknownKeys(src)...)
	}

	if len(iss) == 0 {
		for _, ref := range s.refines {
			if extra := ref.fn(ctx, out); len(extra) > 0 {
				iss = append(iss, extra.Rebase(s.ns)...)
			}
		}
	}

	if len(iss) > 0 {
		return verity.FailResult[map[string]any](iss)
	}
	return verity.OKResult(out)
}

func (s *ObjectSchema) Parse(ctx context.Context, v any) (map[string]any, error) {
	r := s.SafeParse(ctx, v)
	if !r.OK {
		return nil, &verity.ParseError{Description: s.desc, Issues: r.Issues}
	}
	return r.Value, nil
}

// unknownKeys reports top-level input keys no property reads. A dotted input
// path claims its first segment.
func (s *ObjectSchema) unknownKeys(src map[string]any) verity.Issues {
	claimed := make(map[string]struct{}, len(s.fields))
	for _, p := range s.properties() {
		seg := p.in
		if i := strings.IndexByte(seg, '.'); i >= 0 {
			seg = seg[:i]
		}
		claimed[seg] = struct{}{}
	}
	var iss verity.Issues
	for k := range src {
		if _, ok := claimed[k]; ok {
			continue
		}
		iss = verity.AppendIssues(iss, verity.Issue{
			Path:    verity.JoinPath(s.ns, k),
			Code:    verity.CodeUnknownKey,
			Message: i18n.T(verity.CodeUnknownKey, nil),
		})
	}
	return iss
}

// Nullable permits an explicit null object.
func (s *ObjectSchema) Nullable() *ObjectSchema { s.con.Nullable(); return s }

// Nullish permits null and absent objects.
func (s *ObjectSchema) Nullish() *ObjectSchema { s.con.Nullish(); return s }

// Describe returns a copy carrying the description. The reverse memo is not
// shared; the copy builds its own on first use.
func (s *ObjectSchema) Describe(text string) *ObjectSchema {
	out := s.shallowCopy()
	out.desc = text
	return out
}

// Description returns the node's description label.
func (s *ObjectSchema) Description() string { return s.desc }

// Constraint exposes the bound constraint for introspection.
func (s *ObjectSchema) Constraint() *constraint.Constraint { return s.con }

func (s *ObjectSchema) shallowCopy() *ObjectSchema {
	return &ObjectSchema{
		fields:  s.fields,
		remaps:  s.remaps,
		refines: s.refines,
		unknown: s.unknown,
		ns:      s.ns,
		desc:    s.desc,
		con:     s.con.Clone(),
	}
}

// Reverse returns the inverse schema: output keys of this schema become input
// keys of the reverse, remapped properties point back at their forward output
// keys, and nested object fields reverse recursively. Built lazily, exactly
// once, and memoized; the reverse's reverse is the receiver.
func (s *ObjectSchema) Reverse() *ObjectSchema {
	s.revOnce.Do(func() {
		rev := s.buildReverse()
		rev.rev = s
		rev.revOnce.Do(func() {})
		s.rev = rev
	})
	return s.rev
}

func (s *ObjectSchema) buildReverse() *ObjectSchema {
	b := Object().Namespace(s.ns).Describe(s.desc)
	if s.unknown == UnknownStrict {
		b.UnknownStrict()
	}
	for _, p := range s.properties() {
		ad := p.ad
		if ad.reversed != nil {
			ad = ad.reversed()
		}
		// Forward wrote under p.out, so the reverse reads from there and
		// restores the original input key.
		b.Field(p.in, ad)
		if p.in != p.out {
			b.Remap(p.in, p.out)
		}
	}
	return b.MustBuild()
}

// asObject views v as a string-keyed map. YAML decoding can yield
// map[any]any; keys stringify through the any-key branch only when they are
// strings already.
func asObject(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			ks, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[ks] = val
		}
		return out, true
	}
	return nil, false
}
