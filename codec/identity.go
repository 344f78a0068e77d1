// Package codec provides bidirectional transforms built on schema pairs: a
// wire-side schema validating input and a domain-side schema validating
// output, with Decode/Encode crossing between them.
package codec

import (
	"context"

	verity "github.com/verity-go/verity"
)

// identityCodec validates in both directions without changing representation.
type identityCodec[T any] struct {
	s verity.Schema[T]
}

// Identity returns a codec whose wire and domain representations coincide.
// Decode and Encode both run the schema, so invalid values cannot cross in
// either direction.
func Identity[T any](s verity.Schema[T]) verity.Codec[T, T] {
	return identityCodec[T]{s: s}
}

func (c identityCodec[T]) In() verity.Schema[T]  { return c.s }
func (c identityCodec[T]) Out() verity.Schema[T] { return c.s }

func (c identityCodec[T]) Decode(ctx context.Context, a T) (T, error) {
	return c.s.Parse(ctx, a)
}

func (c identityCodec[T]) Encode(ctx context.Context, b T) (T, error) {
	return c.s.Parse(ctx, b)
}
