package dsl

import (
	"context"
	"strconv"

	verity "github.com/verity-go/verity"
	"github.com/verity-go/verity/constraint"
	"github.com/verity-go/verity/i18n"
)

// SetSchema parses sequences into a uniqueness-enforcing set container.
// Duplicates in the input collapse; set-rule cardinalities are checked against
// the raw sequence by the constraint, counting distinct elements.
type SetSchema[E comparable] struct {
	elem verity.Schema[E]
	con  *constraint.Constraint
	desc string
}

var _ verity.Schema[map[string]struct{}] = (*SetSchema[string])(nil)

// Set returns a set schema over elem producing map[E]struct{}.
func Set[E comparable](elem verity.Schema[E], cfg ...Config) *SetSchema[E] {
	c := pickConfig(cfg)
	con := c.Constraint
	if con == nil {
		con = constraint.NewSet().Constraint
	}
	return &SetSchema[E]{elem: elem, con: con, desc: c.Description}
}

func (s *SetSchema[E]) SafeParse(ctx context.Context, v any) verity.Result[map[E]struct{}] {
	if verity.IsAbsent(v) {
		if s.con.AllowsNullish() {
			return verity.OKResult(map[E]struct{}{})
		}
		// Absent behaves as an empty sequence against the set rules.
		if s.con.Apply([]any{}).Fails() {
			return verity.FailResult[map[E]struct{}](s.con.Issues())
		}
		return verity.OKResult(map[E]struct{}{})
	}
	if v == nil {
		if s.con.Apply(v).Fails() {
			return verity.FailResult[map[E]struct{}](s.con.Issues())
		}
		return verity.OKResult[map[E]struct{}](nil)
	}
	if s.con.Apply(v).Fails() {
		return verity.FailResult[map[E]struct{}](s.con.Issues())
	}
	items, ok := asSequence(v)
	if !ok {
		m, isSet := v.(map[E]struct{})
		if !isSet {
			return verity.FailResult[map[E]struct{}](verity.AppendIssues(nil, verity.Issue{
				Code:    verity.CodeInvalidType,
				Message: i18n.T(verity.CodeInvalidType, map[string]string{"expected": "set", "given": constraint.KindOf(v).String()}),
			}))
		}
		items = make([]any, 0, len(m))
		for e := range m {
			items = append(items, e)
		}
	}
	out := make(map[E]struct{}, len(items))
	var iss verity.Issues
	for i, it := range items {
		r := s.elem.SafeParse(ctx, it)
		if !r.OK {
			iss = append(iss, r.Issues.Rebase("*."+strconv.Itoa(i))...)
			continue
		}
		out[r.Value] = struct{}{}
	}
	if len(iss) > 0 {
		return verity.FailResult[map[E]struct{}](iss)
	}
	return verity.OKResult(out)
}

func (s *SetSchema[E]) Parse(ctx context.Context, v any) (map[E]struct{}, error) {
	r := s.SafeParse(ctx, v)
	if !r.OK {
		return nil, &verity.ParseError{Description: s.desc, Issues: r.Issues}
	}
	return r.Value, nil
}

func (s *SetSchema[E]) Nullable() *SetSchema[E] { s.con.Nullable(); return s }
func (s *SetSchema[E]) Nullish() *SetSchema[E]  { s.con.Nullish(); return s }

// Describe returns a copy carrying the description.
func (s *SetSchema[E]) Describe(text string) *SetSchema[E] {
	return &SetSchema[E]{elem: s.elem, con: s.con.Clone(), desc: text}
}

// Description returns the node's description label.
func (s *SetSchema[E]) Description() string { return s.desc }

// Constraint exposes the bound constraint for introspection.
func (s *SetSchema[E]) Constraint() *constraint.Constraint { return s.con }
