package dsl

import (
	"context"

	verity "github.com/verity-go/verity"
)

// AnyAdapter erases a typed schema so heterogeneous nodes can live in one
// object shape. Object fields and map values go through adapters; the typed
// surface stays generic while the composite machinery works on any.
type AnyAdapter struct {
	safeParse func(ctx context.Context, v any) verity.Result[any]
	reversed  func() AnyAdapter
	orig      any
}

// Of wraps a typed schema into an adapter.
func Of[T any](s verity.Schema[T]) AnyAdapter {
	return AnyAdapter{
		safeParse: func(ctx context.Context, v any) verity.Result[any] {
			r := s.SafeParse(ctx, v)
			if !r.OK {
				return verity.FailResult[any](r.Issues)
			}
			return verity.OKResult[any](r.Value)
		},
		orig: s,
	}
}

// ObjectOf wraps an object schema, carrying its reverse so parent objects can
// mirror nested shapes when building their own reverse.
func ObjectOf(o *ObjectSchema) AnyAdapter {
	ad := Of[map[string]any](o)
	ad.reversed = func() AnyAdapter { return ObjectOf(o.Reverse()) }
	ad.orig = o
	return ad
}

// SafeParse runs the wrapped schema.
func (a AnyAdapter) SafeParse(ctx context.Context, v any) verity.Result[any] {
	if a.safeParse == nil {
		return verity.OKResult[any](v)
	}
	return a.safeParse(ctx, v)
}

// Unwrap returns the originally wrapped schema value.
func (a AnyAdapter) Unwrap() any { return a.orig }
