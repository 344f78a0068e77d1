package dsl_test

import (
	"context"
	"encoding/json"
	"reflect"
	"testing"

	verity "github.com/verity-go/verity"
	"github.com/verity-go/verity/constraint"
	"github.com/verity-go/verity/dsl"
)

func TestArrayParsesElements(t *testing.T) {
	ctx := context.Background()
	arr := dsl.Array[string](dsl.String())

	got, err := arr.Parse(ctx, []any{"a", "b"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("want [a b], got %v", got)
	}
}

func TestArrayAggregatesAllFailures(t *testing.T) {
	ctx := context.Background()
	arr := dsl.Array[string](dsl.String())

	r := arr.SafeParse(ctx, []any{"ok", 1, true})
	if r.OK {
		t.Fatalf("expected failure")
	}
	if len(r.Issues) != 2 {
		t.Fatalf("want 2 issues, got %d: %v", len(r.Issues), r.Issues)
	}
	if r.Issues[0].Path != "*.1" || r.Issues[1].Path != "*.2" {
		t.Fatalf("want paths *.1 and *.2, got %q and %q", r.Issues[0].Path, r.Issues[1].Path)
	}
}

func TestArrayAbsentAndNull(t *testing.T) {
	ctx := context.Background()
	arr := dsl.Array[string](dsl.String())

	r := arr.SafeParse(ctx, verity.Absent)
	if !r.OK || len(r.Value) != 0 {
		t.Fatalf("absent input decodes to an empty sequence, got %v", r)
	}
	if r := arr.SafeParse(ctx, nil); r.OK {
		t.Fatalf("null must fail without Nullable")
	}
	if r := dsl.Array[string](dsl.String()).Nullable().SafeParse(ctx, nil); !r.OK {
		t.Fatalf("nullable array must accept null")
	}
}

func TestArrayConstraint(t *testing.T) {
	ctx := context.Background()
	arr := dsl.Array[string](dsl.String(), dsl.Config{
		Constraint: constraint.NewArray().Min(2).Constraint,
	})

	if r := arr.SafeParse(ctx, []any{"only"}); r.OK {
		t.Fatalf("Min(2) must reject one element")
	}
	if r := arr.SafeParse(ctx, []any{"a", "b"}); !r.OK {
		t.Fatalf("unexpected failure: %v", r.Issues)
	}
}

func TestArrayRulesApplyToAbsent(t *testing.T) {
	ctx := context.Background()

	// Absent behaves as an empty sequence, so it fails the same rules [] does.
	min2 := dsl.Array[string](dsl.String(), dsl.Config{
		Constraint: constraint.NewArray().Min(2).Constraint,
	})
	r := min2.SafeParse(ctx, verity.Absent)
	if r.OK {
		t.Fatalf("Min(2) must reject absent like an empty sequence")
	}
	if r.Issues[0].Code != verity.CodeTooShort {
		t.Fatalf("want too_short, got %s", r.Issues[0].Code)
	}

	nonEmpty := dsl.Array[string](dsl.String(), dsl.Config{
		Constraint: constraint.NewArray().NonEmpty().Constraint,
	})
	if r := nonEmpty.SafeParse(ctx, verity.Absent); r.OK {
		t.Fatalf("NonEmpty must reject absent like an empty sequence")
	}

	// Nullish overrides: an explicitly optional array accepts absent.
	optional := dsl.Array[string](dsl.String(), dsl.Config{
		Constraint: constraint.NewArray().Min(2).Nullish().Constraint,
	})
	r = optional.SafeParse(ctx, verity.Absent)
	if !r.OK || len(r.Value) != 0 {
		t.Fatalf("nullish array must accept absent as empty, got %v", r)
	}
}

func TestSetRulesApplyToAbsent(t *testing.T) {
	ctx := context.Background()

	min2 := dsl.Set[string](dsl.String(), dsl.Config{
		Constraint: constraint.NewSet().Min(2).Constraint,
	})
	r := min2.SafeParse(ctx, verity.Absent)
	if r.OK {
		t.Fatalf("Min(2) must reject absent like an empty sequence")
	}
	if r.Issues[0].Code != verity.CodeTooShort {
		t.Fatalf("want too_short, got %s", r.Issues[0].Code)
	}

	optional := dsl.Set[string](dsl.String(), dsl.Config{
		Constraint: constraint.NewSet().NonEmpty().Nullish().Constraint,
	})
	if r := optional.SafeParse(ctx, verity.Absent); !r.OK {
		t.Fatalf("nullish set must accept absent: %v", r.Issues)
	}
}

func TestSetDeduplicates(t *testing.T) {
	ctx := context.Background()
	set := dsl.Set[string](dsl.String())

	got, err := set.Parse(ctx, []any{"a", "b", "a"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("want 2 distinct elements, got %v", got)
	}
	if _, ok := got["a"]; !ok {
		t.Fatalf("missing element a")
	}
}

func TestSetCardinalityCountsDistinct(t *testing.T) {
	ctx := context.Background()
	set := dsl.Set[string](dsl.String(), dsl.Config{
		Constraint: constraint.NewSet().Min(2).Constraint,
	})

	// Two raw elements but one distinct value.
	if r := set.SafeParse(ctx, []any{"a", "a"}); r.OK {
		t.Fatalf("Min(2) counts distinct elements")
	}
	if r := set.SafeParse(ctx, []any{"a", "b"}); !r.OK {
		t.Fatalf("unexpected failure: %v", r.Issues)
	}
}

func TestSetElementFailurePaths(t *testing.T) {
	ctx := context.Background()
	set := dsl.Set[string](dsl.String())

	r := set.SafeParse(ctx, []any{"ok", 9})
	if r.OK {
		t.Fatalf("expected failure")
	}
	if len(r.Issues) != 1 || r.Issues[0].Path != "*.1" {
		t.Fatalf("want one issue at *.1, got %v", r.Issues)
	}
}

func TestSetAcceptsItsOwnOutput(t *testing.T) {
	ctx := context.Background()
	set := dsl.Set[string](dsl.String())

	first, err := set.Parse(ctx, []any{"x", "y"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	again, err := set.Parse(ctx, first)
	if err != nil {
		t.Fatalf("re-parse failed: %v", err)
	}
	if !reflect.DeepEqual(first, again) {
		t.Fatalf("round-trip changed the set: %v vs %v", first, again)
	}
}

func TestMapParsesEntries(t *testing.T) {
	ctx := context.Background()
	m := dsl.Map[string, int64](dsl.String(), dsl.Int())

	got, err := m.Parse(ctx, map[string]any{"a": json.Number("1"), "b": json.Number("2")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := map[string]int64{"a": 1, "b": 2}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("want %v, got %v", want, got)
	}
}

func TestMapEntryFailurePaths(t *testing.T) {
	ctx := context.Background()
	m := dsl.Map[string, int64](dsl.String(), dsl.Int())

	r := m.SafeParse(ctx, map[string]any{"a": json.Number("1"), "b": "oops"})
	if r.OK {
		t.Fatalf("expected failure")
	}
	if len(r.Issues) != 1 || r.Issues[0].Path != "*.b.value" {
		t.Fatalf("want one issue at *.b.value, got %v", r.Issues)
	}

	// A non-string key fails the key schema.
	r = m.SafeParse(ctx, map[any]any{1: json.Number("5")})
	if r.OK {
		t.Fatalf("expected key failure")
	}
	if r.Issues[0].Path != "*.1.key" {
		t.Fatalf("want *.1.key, got %q", r.Issues[0].Path)
	}
}

func TestMapDeterministicIssueOrder(t *testing.T) {
	ctx := context.Background()
	m := dsl.Map[string, int64](dsl.String(), dsl.Int())

	// Both values fail; issues come out in sorted key order regardless of map
	// iteration order.
	for i := 0; i < 10; i++ {
		r := m.SafeParse(ctx, map[string]any{"z": "bad", "a": "bad"})
		if r.OK || len(r.Issues) != 2 {
			t.Fatalf("want 2 issues, got %v", r.Issues)
		}
		if r.Issues[0].Path != "*.a.value" || r.Issues[1].Path != "*.z.value" {
			t.Fatalf("issues out of order: %q, %q", r.Issues[0].Path, r.Issues[1].Path)
		}
	}
}

func TestMapAbsentIsEmpty(t *testing.T) {
	ctx := context.Background()
	m := dsl.Map[string, int64](dsl.String(), dsl.Int())

	r := m.SafeParse(ctx, verity.Absent)
	if !r.OK || len(r.Value) != 0 {
		t.Fatalf("absent input decodes to an empty map, got %v", r)
	}
}
