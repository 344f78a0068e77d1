package lookup_test

import (
	"reflect"
	"testing"

	"github.com/verity-go/verity/internal/lookup"
)

func TestGet(t *testing.T) {
	v := map[string]any{
		"user": map[string]any{
			"address": map[string]any{"email": "a@b.c"},
			"tags":    []any{"x", "y"},
			"note":    nil,
		},
	}

	got, ok := lookup.Get(v, "user.address.email")
	if !ok || got != "a@b.c" {
		t.Fatalf("want a@b.c, got %v (%v)", got, ok)
	}
	got, ok = lookup.Get(v, "user.tags.1")
	if !ok || got != "y" {
		t.Fatalf("want y, got %v (%v)", got, ok)
	}

	// Present nil and absent are different answers.
	got, ok = lookup.Get(v, "user.note")
	if !ok || got != nil {
		t.Fatalf("present nil: got %v (%v)", got, ok)
	}
	if _, ok := lookup.Get(v, "user.missing"); ok {
		t.Fatalf("missing key must report absent")
	}
	if _, ok := lookup.Get(v, "user.tags.9"); ok {
		t.Fatalf("out-of-range index must report absent")
	}
	if _, ok := lookup.Get(v, "user.address.email.deeper"); ok {
		t.Fatalf("descending into a scalar must report absent")
	}
}

func TestGetEmptyPathIsIdentity(t *testing.T) {
	got, ok := lookup.Get("scalar", "")
	if !ok || got != "scalar" {
		t.Fatalf("want identity, got %v (%v)", got, ok)
	}
}

func TestSetCreatesIntermediates(t *testing.T) {
	m := map[string]any{}
	lookup.Set(m, "a.b.c", 1)
	lookup.Set(m, "a.b.d", 2)
	lookup.Set(m, "top", "v")

	want := map[string]any{
		"a":   map[string]any{"b": map[string]any{"c": 1, "d": 2}},
		"top": "v",
	}
	if !reflect.DeepEqual(m, want) {
		t.Fatalf("want %v, got %v", want, m)
	}
}

func TestSetReplacesScalarIntermediates(t *testing.T) {
	m := map[string]any{"a": "scalar"}
	lookup.Set(m, "a.b", 1)

	if !reflect.DeepEqual(m, map[string]any{"a": map[string]any{"b": 1}}) {
		t.Fatalf("scalar intermediate not replaced: %v", m)
	}
}
