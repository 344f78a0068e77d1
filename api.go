package verity

import "context"

// Schema is the composable unit of the engine: a node pairing a constraint
// with optional coercion and a value transform, exposing the two-mode parse
// contract.
type Schema[T any] interface {
	// Parse transforms an untyped input into T. It returns a *ParseError when
	// validation fails.
	Parse(ctx context.Context, v any) (T, error)
	// SafeParse is the non-throwing mode: it never returns an error, reporting
	// failures as data in the Result envelope.
	SafeParse(ctx context.Context, v any) Result[T]
}

// Codec performs bidirectional transformation and validation between the wire
// representation A and the domain representation B.
type Codec[A, B any] interface {
	In() Schema[A]                              // Wire schema (input side).
	Out() Schema[B]                             // Domain schema (output side).
	Decode(ctx context.Context, a A) (B, error) // A (wire) -> B (domain).
	Encode(ctx context.Context, b B) (A, error) // B (domain) -> A (wire).
}

// absentValue is the sentinel for "not present", distinct from a present nil.
type absentValue struct{}

// Absent marks a property or value that is missing from the input entirely.
// The object parser passes it to child schemas for keys the raw input does not
// carry; only schemas made Nullish accept it.
var Absent any = absentValue{}

// IsAbsent reports whether v is the Absent sentinel.
func IsAbsent(v any) bool {
	_, ok := v.(absentValue)
	return ok
}

// MustParse is the panicking variant of Parse, for schemas known statically to
// accept the input (test fixtures, embedded defaults).
func MustParse[T any](ctx context.Context, s Schema[T], v any) T {
	out, err := s.Parse(ctx, v)
	if err != nil {
		panic(err)
	}
	return out
}

// IsOptional probes whether the schema accepts an absent value. This is a
// derived property: it calls SafeParse with the Absent sentinel rather than
// inspecting stored flags.
func IsOptional[T any](ctx context.Context, s Schema[T]) bool {
	return s.SafeParse(ctx, Absent).OK
}

// IsNullable probes whether the schema accepts an explicit null.
func IsNullable[T any](ctx context.Context, s Schema[T]) bool {
	return s.SafeParse(ctx, nil).OK
}
