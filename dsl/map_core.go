package dsl

import (
	"context"
	"fmt"
	"reflect"
	"sort"

	verity "github.com/verity-go/verity"
	"github.com/verity-go/verity/constraint"
	"github.com/verity-go/verity/i18n"
)

// MapSchema parses key/value collections, running the key and value schemas
// independently per entry. Entries iterate in sorted key order so issue
// ordering is deterministic; failures are keyed "*.<key>.key" and
// "*.<key>.value".
type MapSchema[K comparable, V any] struct {
	key  verity.Schema[K]
	val  verity.Schema[V]
	con  *constraint.Constraint
	desc string
}

var _ verity.Schema[map[string]int64] = (*MapSchema[string, int64])(nil)

// Map returns a map schema over the key and value schemas.
func Map[K comparable, V any](key verity.Schema[K], val verity.Schema[V], cfg ...Config) *MapSchema[K, V] {
	c := pickConfig(cfg)
	con := c.Constraint
	if con == nil {
		con = constraint.NewMap()
	}
	return &MapSchema[K, V]{key: key, val: val, con: con, desc: c.Description}
}

func (s *MapSchema[K, V]) SafeParse(ctx context.Context, v any) verity.Result[map[K]V] {
	if verity.IsAbsent(v) {
		if s.con.AllowsNullish() {
			return verity.OKResult(map[K]V{})
		}
		// Absent behaves as an empty map against the declared rules.
		if s.con.Apply(map[string]any{}).Fails() {
			return verity.FailResult[map[K]V](s.con.Issues())
		}
		return verity.OKResult(map[K]V{})
	}
	if v == nil {
		if s.con.Apply(v).Fails() {
			return verity.FailResult[map[K]V](s.con.Issues())
		}
		return verity.OKResult[map[K]V](nil)
	}
	if s.con.Apply(v).Fails() {
		return verity.FailResult[map[K]V](s.con.Issues())
	}
	entries, ok := asEntries(v)
	if !ok {
		return verity.FailResult[map[K]V](verity.AppendIssues(nil, verity.Issue{
			Code:    verity.CodeInvalidType,
			Message: i18n.T(verity.CodeInvalidType, map[string]string{"expected": "map", "given": constraint.KindOf(v).String()}),
		}))
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].label < entries[j].label })
	out := make(map[K]V, len(entries))
	var iss verity.Issues
	for _, e := range entries {
		kr := s.key.SafeParse(ctx, e.key)
		if !kr.OK {
			iss = append(iss, kr.Issues.Rebase("*."+e.label+".key")...)
		}
		vr := s.val.SafeParse(ctx, e.val)
		if !vr.OK {
			iss = append(iss, vr.Issues.Rebase("*."+e.label+".value")...)
		}
		// An entry survives only when both halves parsed.
		if kr.OK && vr.OK {
			out[kr.Value] = vr.Value
		}
	}
	if len(iss) > 0 {
		return verity.FailResult[map[K]V](iss)
	}
	return verity.OKResult(out)
}

func (s *MapSchema[K, V]) Parse(ctx context.Context, v any) (map[K]V, error) {
	r := s.SafeParse(ctx, v)
	if !r.OK {
		return nil, &verity.ParseError{Description: s.desc, Issues: r.Issues}
	}
	return r.Value, nil
}

func (s *MapSchema[K, V]) Nullable() *MapSchema[K, V] { s.con.Nullable(); return s }
func (s *MapSchema[K, V]) Nullish() *MapSchema[K, V]  { s.con.Nullish(); return s }

// Describe returns a copy carrying the description.
func (s *MapSchema[K, V]) Describe(text string) *MapSchema[K, V] {
	return &MapSchema[K, V]{key: s.key, val: s.val, con: s.con.Clone(), desc: text}
}

// Description returns the node's description label.
func (s *MapSchema[K, V]) Description() string { return s.desc }

// Constraint exposes the bound constraint for introspection.
func (s *MapSchema[K, V]) Constraint() *constraint.Constraint { return s.con }

type mapEntry struct {
	key   any
	val   any
	label string
}

// asEntries flattens any map shape to labelled entries. The label is the
// printed key, used both for sorting and for issue paths.
func asEntries(v any) ([]mapEntry, bool) {
	switch m := v.(type) {
	case map[string]any:
		out := make([]mapEntry, 0, len(m))
		for k, val := range m {
			out = append(out, mapEntry{key: k, val: val, label: k})
		}
		return out, true
	case map[any]any:
		out := make([]mapEntry, 0, len(m))
		for k, val := range m {
			out = append(out, mapEntry{key: k, val: val, label: fmt.Sprint(k)})
		}
		return out, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map {
		return nil, false
	}
	out := make([]mapEntry, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		k := iter.Key().Interface()
		out = append(out, mapEntry{key: k, val: iter.Value().Interface(), label: fmt.Sprint(k)})
	}
	return out, true
}
