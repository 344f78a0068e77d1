package dsl

import (
	"context"
	"reflect"
	"strconv"

	verity "github.com/verity-go/verity"
	"github.com/verity-go/verity/constraint"
	"github.com/verity-go/verity/i18n"
)

// ArraySchema parses sequences, delegating each element to the element schema
// and aggregating failures under "*.<index>".
type ArraySchema[E any] struct {
	elem verity.Schema[E]
	con  *constraint.Constraint
	desc string
}

var _ verity.Schema[[]string] = (*ArraySchema[string])(nil)

// Array returns an array schema over elem. The constraint (kind plus any
// array rules) is checked against the raw sequence before elements parse.
func Array[E any](elem verity.Schema[E], cfg ...Config) *ArraySchema[E] {
	c := pickConfig(cfg)
	con := c.Constraint
	if con == nil {
		con = constraint.NewArray().Constraint
	}
	return &ArraySchema[E]{elem: elem, con: con, desc: c.Description}
}

func (s *ArraySchema[E]) SafeParse(ctx context.Context, v any) verity.Result[[]E] {
	if verity.IsAbsent(v) {
		if s.con.AllowsNullish() {
			return verity.OKResult([]E{})
		}
		// Absent behaves as an empty sequence, so the declared rules still see
		// it: Min/NonEmpty reject absent exactly as they reject [].
		if s.con.Apply([]any{}).Fails() {
			return verity.FailResult[[]E](s.con.Issues())
		}
		return verity.OKResult([]E{})
	}
	if v == nil {
		if s.con.Apply(v).Fails() {
			return verity.FailResult[[]E](s.con.Issues())
		}
		return verity.OKResult[[]E](nil)
	}
	if s.con.Apply(v).Fails() {
		return verity.FailResult[[]E](s.con.Issues())
	}
	items, ok := asSequence(v)
	if !ok {
		return verity.FailResult[[]E](verity.AppendIssues(nil, verity.Issue{
			Code:    verity.CodeInvalidType,
			Message: i18n.T(verity.CodeInvalidType, map[string]string{"expected": "array", "given": constraint.KindOf(v).String()}),
		}))
	}
	out := make([]E, 0, len(items))
	var iss verity.Issues
	for i, it := range items {
		r := s.elem.SafeParse(ctx, it)
		if !r.OK {
			iss = append(iss, r.Issues.Rebase("*."+strconv.Itoa(i))...)
			continue
		}
		out = append(out, r.Value)
	}
	if len(iss) > 0 {
		return verity.FailResult[[]E](iss)
	}
	return verity.OKResult(out)
}

func (s *ArraySchema[E]) Parse(ctx context.Context, v any) ([]E, error) {
	r := s.SafeParse(ctx, v)
	if !r.OK {
		return nil, &verity.ParseError{Description: s.desc, Issues: r.Issues}
	}
	return r.Value, nil
}

// Nullable permits an explicit null sequence.
func (s *ArraySchema[E]) Nullable() *ArraySchema[E] { s.con.Nullable(); return s }

// Nullish permits null and absent sequences.
func (s *ArraySchema[E]) Nullish() *ArraySchema[E] { s.con.Nullish(); return s }

// Describe returns a copy carrying the description.
func (s *ArraySchema[E]) Describe(text string) *ArraySchema[E] {
	return &ArraySchema[E]{elem: s.elem, con: s.con.Clone(), desc: text}
}

// Description returns the node's description label.
func (s *ArraySchema[E]) Description() string { return s.desc }

// Constraint exposes the bound constraint for introspection.
func (s *ArraySchema[E]) Constraint() *constraint.Constraint { return s.con }

// asSequence views v as []any, reflecting over typed slices when needed.
func asSequence(v any) ([]any, bool) {
	switch t := v.(type) {
	case []any:
		return t, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}
