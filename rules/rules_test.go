package rules_test

import (
	"context"
	"encoding/json"
	"testing"

	verity "github.com/verity-go/verity"
	"github.com/verity-go/verity/dsl"
	"github.com/verity-go/verity/rules"
)

func TestConditionalThen(t *testing.T) {
	ctx := context.Background()
	rule := rules.If("status", rules.Eq, "active").Then(rules.Require("activated_at"))

	iss := rule(ctx, map[string]any{"status": "active"})
	if len(iss) != 1 || iss[0].Code != verity.CodeRequired || iss[0].Path != "activated_at" {
		t.Fatalf("want required at activated_at, got %v", iss)
	}
	if iss := rule(ctx, map[string]any{"status": "inactive"}); len(iss) != 0 {
		t.Fatalf("condition not met, want no issues: %v", iss)
	}
	if iss := rule(ctx, map[string]any{"status": "active", "activated_at": "2024-01-01"}); len(iss) != 0 {
		t.Fatalf("satisfied rule must pass: %v", iss)
	}
}

func TestConditionalNumericCompare(t *testing.T) {
	ctx := context.Background()
	rule := rules.If("qty", rules.Gt, 3).Then(rules.Require("approval"))

	// json.Number and native ints compare by value.
	if iss := rule(ctx, map[string]any{"qty": json.Number("5")}); len(iss) == 0 {
		t.Fatalf("5 > 3 must trigger the rule")
	}
	if iss := rule(ctx, map[string]any{"qty": json.Number("2")}); len(iss) != 0 {
		t.Fatalf("2 > 3 must not trigger: %v", iss)
	}
	eq := rules.If("qty", rules.Eq, 2).Then(rules.Fail("qty", verity.CodeOutOfRange, "two is not allowed"))
	if iss := eq(ctx, map[string]any{"qty": json.Number("2")}); len(iss) != 1 {
		t.Fatalf("numeric equality across representations failed: %v", iss)
	}
}

func TestConditionalComposition(t *testing.T) {
	ctx := context.Background()
	rule := rules.If("a", rules.Eq, true).And(rules.If("b", rules.Eq, true)).
		Then(rules.Fail("a", verity.CodeInvalidFormat, "a and b are exclusive"))

	if iss := rule(ctx, map[string]any{"a": true, "b": true}); len(iss) != 1 {
		t.Fatalf("AND branch must fire: %v", iss)
	}
	if iss := rule(ctx, map[string]any{"a": true, "b": false}); len(iss) != 0 {
		t.Fatalf("partial AND must not fire: %v", iss)
	}

	either := rules.If("a", rules.Eq, true).Or(rules.If("b", rules.Eq, true)).
		Then(rules.Fail("a", verity.CodeInvalidFormat, "flagged"))
	if iss := either(ctx, map[string]any{"a": false, "b": true}); len(iss) != 1 {
		t.Fatalf("OR branch must fire: %v", iss)
	}
}

func TestAtLeastOne(t *testing.T) {
	ctx := context.Background()
	rule := rules.AtLeastOne("items")

	if iss := rule(ctx, map[string]any{"items": []any{}}); len(iss) != 1 {
		t.Fatalf("empty collection must fail: %v", iss)
	}
	if iss := rule(ctx, map[string]any{"items": []any{"x"}}); len(iss) != 0 {
		t.Fatalf("non-empty collection must pass: %v", iss)
	}
	// Missing collections are the field schema's concern, not this rule's.
	if iss := rule(ctx, map[string]any{}); len(iss) != 0 {
		t.Fatalf("missing collection must pass: %v", iss)
	}
}

func TestUniqueBy(t *testing.T) {
	ctx := context.Background()
	rule := rules.UniqueBy("items", "sku")

	iss := rule(ctx, map[string]any{"items": []any{
		map[string]any{"sku": "a"},
		map[string]any{"sku": "b"},
		map[string]any{"sku": "a"},
	}})
	if len(iss) != 1 {
		t.Fatalf("want one duplicate, got %v", iss)
	}
	if iss[0].Path != "items.2.sku" {
		t.Fatalf("want items.2.sku, got %q", iss[0].Path)
	}

	if iss := rule(ctx, map[string]any{"items": []any{
		map[string]any{"sku": "a"},
		map[string]any{"sku": "b"},
	}}); len(iss) != 0 {
		t.Fatalf("unique keys must pass: %v", iss)
	}
}

func TestRulesPlugIntoObjects(t *testing.T) {
	ctx := context.Background()
	obj := dsl.Object().
		Field("status", dsl.Of[string](dsl.String())).
		Field("activated_at", dsl.Of[string](dsl.String().Nullish())).
		Refine("active-needs-date", rules.If("status", rules.Eq, "active").Then(rules.Require("activated_at"))).
		MustBuild()

	r := obj.SafeParse(ctx, map[string]any{"status": "active"})
	if r.OK {
		t.Fatalf("expected refinement failure")
	}
	if r.Issues[0].Path != "root$.activated_at" {
		t.Fatalf("want root$.activated_at, got %q", r.Issues[0].Path)
	}
	if r := obj.SafeParse(ctx, map[string]any{"status": "active", "activated_at": "2024-01-01"}); !r.OK {
		t.Fatalf("unexpected failure: %v", r.Issues)
	}
}

func TestAndOrCombinators(t *testing.T) {
	ctx := context.Background()
	fail := rules.Fail("x", verity.CodeInvalidFormat, "nope")
	pass := rules.Rule(func(ctx context.Context, v map[string]any) verity.Issues { return nil })

	if iss := rules.And(fail, fail)(ctx, nil); len(iss) != 2 {
		t.Fatalf("And concatenates: %v", iss)
	}
	if iss := rules.Or(fail, pass)(ctx, nil); len(iss) != 0 {
		t.Fatalf("Or passes when any branch passes: %v", iss)
	}
	if iss := rules.Or(fail)(ctx, nil); len(iss) != 1 {
		t.Fatalf("Or surfaces the best failing branch: %v", iss)
	}
}
