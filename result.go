package verity

// Result is the non-throwing parse envelope threaded through nested schema
// evaluations. Composite parsers merge child Results instead of propagating
// errors, so callers see every violation in one pass.
type Result[T any] struct {
	OK    bool
	Value T
	// Issues is defined iff OK is false.
	Issues Issues
	// Aborted is reserved for future fail-fast semantics; always false today.
	Aborted bool
}

// OKResult wraps a successfully produced value.
func OKResult[T any](v T) Result[T] { return Result[T]{OK: true, Value: v} }

// FailResult wraps an issue list as a failed envelope.
func FailResult[T any](iss Issues) Result[T] { return Result[T]{OK: false, Issues: iss} }
